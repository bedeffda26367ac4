// # internal/rename/allocator.go
package rename

import "sort"

// Mapping assigns each original procedure name a unique prefix of
// itself. Values are mutually distinct and never longer than their key.
type Mapping map[string]string

// Allocate assigns every name the shortest prefix not yet claimed.
// Names are processed shortest-first, ties broken lexicographically, so
// names that are already short preferentially keep their single-letter
// prefix. The processing order is part of the contract: it decides
// which name wins a shared prefix.
func Allocate(names []string) Mapping {
	sorted := append([]string(nil), names...)
	sort.Slice(sorted, func(i, j int) bool {
		if len(sorted[i]) != len(sorted[j]) {
			return len(sorted[i]) < len(sorted[j])
		}
		return sorted[i] < sorted[j]
	})

	mapping := make(Mapping, len(sorted))
	used := make(map[string]bool, len(sorted))

	for _, name := range sorted {
		assigned := false
		for l := 1; l <= len(name); l++ {
			candidate := name[:l]
			if !used[candidate] {
				mapping[name] = candidate
				used[candidate] = true
				assigned = true
				break
			}
		}
		if !assigned {
			// Unreachable while input names are unique; terminal fallback.
			mapping[name] = name
			used[name] = true
		}
	}

	return mapping
}

// Savings is the per-occurrence character saving for one entry.
func (m Mapping) Savings(name string) int {
	short, ok := m[name]
	if !ok {
		return 0
	}
	return len(name) - len(short)
}

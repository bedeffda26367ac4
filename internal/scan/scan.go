// # internal/scan/scan.go
package scan

import "sort"

// DefinitionIndex maps a normalized procedure name to the ordered line
// indices where it is declared. Multiple definitions of one name are
// tracked, not rejected.
type DefinitionIndex map[string][]int

// CallIndex maps a normalized procedure name to the ordered line
// indices where it appears to be invoked. Only names present in the
// DefinitionIndex are represented; a call to an undeclared name is
// invisible.
type CallIndex map[string][]int

// Definitions scans every line for definition statements.
func Definitions(lines []string, d *Dialect) DefinitionIndex {
	defs := make(DefinitionIndex)
	for i, line := range lines {
		name, ok := d.MatchDefinition(line)
		if !ok {
			continue
		}
		defs[name] = append(defs[name], i)
	}
	return defs
}

// Calls scans every line for probable call sites of each known name.
// Blank and comment lines are skipped, and a name's own definition
// lines are excluded even though they satisfy the call pattern.
func Calls(lines []string, d *Dialect, names []string) CallIndex {
	calls := make(CallIndex, len(names))
	for _, name := range names {
		calls[name] = []int{}
		re := d.callRe(name)

		for i, line := range lines {
			if d.IsBlank(line) || d.IsComment(line) {
				continue
			}
			if !re.MatchString(line) {
				continue
			}
			if defName, ok := d.MatchDefinition(line); ok && defName == name {
				continue
			}
			calls[name] = append(calls[name], i)
		}
	}
	return calls
}

// Names returns the known procedure names in sorted order.
func (di DefinitionIndex) Names() []string {
	names := make([]string, 0, len(di))
	for name := range di {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// # internal/prg/strings.go
package prg

import (
	"fmt"
	"os"
	"regexp"
	"sort"
	"strings"

	"basmin/internal/errors"
)

// loadAddressSize is the packed program header: the first two bytes
// hold the load address (e.g. $0801) and carry no program text.
const loadAddressSize = 2

var quotedRe = regexp.MustCompile(`"([^"]*)"`)

// StringCount is one quoted string and how often it occurs in the dump.
type StringCount struct {
	Value string
	Count int
}

// Decode maps the program bytes to scannable text: printable ASCII
// passes through, everything else becomes a line break so quoted
// strings never span binary gaps.
func Decode(data []byte) string {
	if len(data) > loadAddressSize {
		data = data[loadAddressSize:]
	} else {
		data = nil
	}

	var b strings.Builder
	b.Grow(len(data))
	for _, c := range data {
		if c >= 32 && c <= 126 {
			b.WriteByte(c)
		} else {
			b.WriteByte('\n')
		}
	}
	return b.String()
}

// ExtractStrings returns every quoted string in the dump, in order of
// appearance.
func ExtractStrings(data []byte) []string {
	matches := quotedRe.FindAllStringSubmatch(Decode(data), -1)
	out := make([]string, 0, len(matches))
	for _, m := range matches {
		out = append(out, m[1])
	}
	return out
}

// CountStrings tallies quoted strings, most frequent first; ties keep
// first-appearance order.
func CountStrings(data []byte) []StringCount {
	counts := make(map[string]int)
	order := make(map[string]int)
	for i, s := range ExtractStrings(data) {
		if _, seen := counts[s]; !seen {
			order[s] = i
		}
		counts[s]++
	}

	result := make([]StringCount, 0, len(counts))
	for s, n := range counts {
		result = append(result, StringCount{Value: s, Count: n})
	}
	sort.Slice(result, func(i, j int) bool {
		if result[i].Count != result[j].Count {
			return result[i].Count > result[j].Count
		}
		return order[result[i].Value] < order[result[j].Value]
	})
	return result
}

// ReportFile reads a packed program dump and renders the frequency
// report, one "Nx  \"s\"" line per distinct string.
func ReportFile(path string) (string, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return "", errors.AddContext(
			errors.Wrap(err, errors.CodeNotFound, "read program dump"),
			errors.CtxPath, path)
	}
	return Report(CountStrings(data)), nil
}

func Report(counts []StringCount) string {
	if len(counts) == 0 {
		return "No strings found.\n"
	}
	var b strings.Builder
	for _, c := range counts {
		fmt.Fprintf(&b, "%dx  %q\n", c.Count, c.Value)
	}
	return b.String()
}

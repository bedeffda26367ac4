// # internal/rename/rewriter.go
package rename

import (
	"regexp"
	"sort"
	"strings"

	"basmin/internal/scan"
)

// Rewriter replaces procedure names in listing lines with their
// assigned short names. Definition lines keep their label prefix and
// trailing whitespace; on every other non-blank, non-comment line each
// mapped name is replaced wherever it occurs as a whole word. All
// replacements for a line are computed against the original line
// content in a single pass over one combined pattern, so a short name
// inserted for one entry can never be picked up as another entry's
// original name.
type Rewriter struct {
	mapping Mapping
	dialect *scan.Dialect

	defRe  *regexp.Regexp
	wordRe *regexp.Regexp
}

func NewRewriter(mapping Mapping, d *scan.Dialect) *Rewriter {
	r := &Rewriter{mapping: mapping, dialect: d}

	r.defRe = regexp.MustCompile(
		`(?i)^(\s*\d*\s*` + regexp.QuoteMeta(d.Keyword) + `\s+)([A-Za-z][A-Za-z0-9]*)(\s*)$`)

	if len(mapping) > 0 {
		names := make([]string, 0, len(mapping))
		for name := range mapping {
			names = append(names, regexp.QuoteMeta(name))
		}
		// Longest alternative first; Go's alternation is leftmost-first.
		sort.Slice(names, func(i, j int) bool {
			if len(names[i]) != len(names[j]) {
				return len(names[i]) > len(names[j])
			}
			return names[i] < names[j]
		})
		r.wordRe = regexp.MustCompile(`(?i)\b(?:` + strings.Join(names, "|") + `)\b`)
	}

	return r
}

// Rewrite returns a new line slice; the input is not modified.
func (r *Rewriter) Rewrite(lines []string) []string {
	out := make([]string, len(lines))
	for i, line := range lines {
		out[i] = r.rewriteLine(line)
	}
	return out
}

func (r *Rewriter) rewriteLine(line string) string {
	if r.wordRe == nil {
		return line
	}

	if m := r.defRe.FindStringSubmatch(line); m != nil {
		if short, ok := r.mapping[strings.ToUpper(m[2])]; ok {
			return m[1] + short + m[3]
		}
		return line
	}

	if r.dialect.IsBlank(line) || r.dialect.IsComment(line) {
		return line
	}

	return r.wordRe.ReplaceAllStringFunc(line, func(tok string) string {
		return r.mapping[strings.ToUpper(tok)]
	})
}

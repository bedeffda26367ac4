// # internal/scan/dialect.go
package scan

import (
	"regexp"
	"strings"
)

// namePattern is the procedure-name token: a letter followed by letters
// and digits. Matching is case-insensitive; names are normalized to
// upper case for identity.
const namePattern = `[A-Za-z][A-Za-z0-9]*`

// Dialect holds the line-local lexical rules of the source language.
// This is a heuristic lexer over single lines, not a grammar: a
// definition is a full-trimmed-line match, a call is a whole-word
// occurrence with a restricted trailing context, and comment lines are
// skipped wholesale.
type Dialect struct {
	Keyword       string
	CommentPrefix string

	defRe *regexp.Regexp
}

func NewDialect(keyword, commentPrefix string) *Dialect {
	return &Dialect{
		Keyword:       keyword,
		CommentPrefix: commentPrefix,
		defRe: regexp.MustCompile(
			`(?i)^\s*(\d+\s+)?` + regexp.QuoteMeta(keyword) + `\s+(` + namePattern + `)\s*$`),
	}
}

// MatchDefinition reports whether the entire line is a definition
// statement, returning the declared name normalized to upper case.
// Trailing tokens after the name disqualify the line.
func (d *Dialect) MatchDefinition(line string) (string, bool) {
	m := d.defRe.FindStringSubmatch(line)
	if m == nil {
		return "", false
	}
	return strings.ToUpper(m[2]), true
}

// IsComment reports whether the trimmed line starts with the comment
// prefix. Empty lines are not comments.
func (d *Dialect) IsComment(line string) bool {
	trimmed := strings.TrimSpace(line)
	return trimmed != "" && strings.HasPrefix(trimmed, d.CommentPrefix)
}

func (d *Dialect) IsBlank(line string) bool {
	return strings.TrimSpace(line) == ""
}

// callRe builds the call-detection pattern for one name: the name as a
// whole word followed by whitespace, ':', '$', or end of line. The
// trailing set is carried over verbatim from the reference matcher and
// deliberately misses calls followed by other punctuation.
func (d *Dialect) callRe(name string) *regexp.Regexp {
	return regexp.MustCompile(`(?i)\b` + regexp.QuoteMeta(name) + `\b(?:[:$\s]|$)`)
}

// # internal/report/markdown.go
package report

import (
	"fmt"
	"strings"

	"basmin/internal/minify"
)

type MarkdownGenerator struct {
	result *minify.Result
}

func NewMarkdownGenerator(r *minify.Result) *MarkdownGenerator {
	return &MarkdownGenerator{result: r}
}

func (m *MarkdownGenerator) Generate() (string, error) {
	var buf strings.Builder

	buf.WriteString("# Procedure name mapping\n\n")
	fmt.Fprintf(&buf, "Input: `%s`  \n", m.result.InputPath)
	fmt.Fprintf(&buf, "Output: `%s`  \n", m.result.OutputPath)
	fmt.Fprintf(&buf, "Total character savings: **%d**\n\n", m.result.TotalSavings)

	buf.WriteString("| Name | Short | Definitions | Calls | Saved |\n")
	buf.WriteString("|------|-------|-------------|-------|-------|\n")

	for _, name := range m.result.Definitions.Names() {
		defs := len(m.result.Definitions[name])
		calls := len(m.result.Calls[name])
		saved := m.result.Mapping.Savings(name) * (defs + calls)
		fmt.Fprintf(&buf, "| %s | %s | %d | %d | %d |\n",
			name, m.result.Mapping[name], defs, calls, saved)
	}

	return buf.String(), nil
}

// # internal/report/styled.go
package report

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"basmin/internal/minify"
)

var (
	headerStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#3B82F6")).
			Bold(true)

	nameStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#FBBF24"))

	savingsStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981")).
			Bold(true)

	statusStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#64748B")).
			Italic(true)
)

// StyledSummary is the watch-mode console rendering: same facts as
// Summary, dressed for a terminal.
func StyledSummary(r *minify.Result) string {
	var b strings.Builder
	names := r.Definitions.Names()

	b.WriteString(headerStyle.Render(fmt.Sprintf("%d procedures", len(names))))
	b.WriteString("\n")
	for _, name := range names {
		b.WriteString(fmt.Sprintf("  %s -> %s  (%d defs, %d calls, saves %d)\n",
			nameStyle.Render(name),
			r.Mapping[name],
			len(r.Definitions[name]),
			len(r.Calls[name]),
			r.Mapping.Savings(name)*(len(r.Definitions[name])+len(r.Calls[name]))))
	}
	b.WriteString(savingsStyle.Render(fmt.Sprintf("total saved: %d chars", r.TotalSavings)))
	b.WriteString("\n")
	b.WriteString(statusStyle.Render(fmt.Sprintf("%s -> %s (%d -> %d bytes, %v)",
		r.InputPath, r.OutputPath, r.InputBytes, r.OutputBytes, r.Duration)))
	b.WriteString("\n")

	return b.String()
}

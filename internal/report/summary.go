// # internal/report/summary.go
package report

import (
	"fmt"
	"strings"

	"basmin/internal/minify"
)

// Summary renders the diagnostic block for one run: procedure counts,
// per-name definition/call statistics, the name mapping with per-entry
// savings, the total savings figure, and the output path confirmation.
// Section order and per-name sorting are fixed.
func Summary(r *minify.Result) string {
	var b strings.Builder
	names := r.Definitions.Names()

	fmt.Fprintf(&b, "Found %d unique procedures:\n", len(names))
	for _, name := range names {
		fmt.Fprintf(&b, "  %s (defined %d times)\n", name, len(r.Definitions[name]))
	}

	b.WriteString("\nProcedure call statistics:\n")
	for _, name := range names {
		fmt.Fprintf(&b, "  %s: %d definitions, %d calls\n",
			name, len(r.Definitions[name]), len(r.Calls[name]))
	}

	b.WriteString("\nName mapping:\n")
	for _, name := range names {
		fmt.Fprintf(&b, "  %s -> %s (saves %d chars)\n",
			name, r.Mapping[name], r.Mapping.Savings(name))
	}

	fmt.Fprintf(&b, "\nTotal character savings: %d\n", r.TotalSavings)
	fmt.Fprintf(&b, "\nModified code written to: %s\n", r.OutputPath)

	return b.String()
}

// # internal/report/tsv.go
package report

import (
	"fmt"
	"strings"
	"time"

	"basmin/internal/history"
	"basmin/internal/minify"
)

type TSVGenerator struct {
	result *minify.Result
}

func NewTSVGenerator(r *minify.Result) *TSVGenerator {
	return &TSVGenerator{result: r}
}

func (t *TSVGenerator) Generate() (string, error) {
	var buf strings.Builder

	buf.WriteString("Name\tShort\tDefinitions\tCalls\tSavedPerUse\tSavedTotal\n")

	for _, name := range t.result.Definitions.Names() {
		defs := len(t.result.Definitions[name])
		calls := len(t.result.Calls[name])
		perUse := t.result.Mapping.Savings(name)
		buf.WriteString(fmt.Sprintf("%s\t%s\t%d\t%d\t%d\t%d\n",
			name, t.result.Mapping[name], defs, calls, perUse, perUse*(defs+calls)))
	}

	return buf.String(), nil
}

// GenerateTrends renders the historical run table for --history-tsv.
func GenerateTrends(runs []history.Run) (string, error) {
	var buf strings.Builder

	buf.WriteString("Timestamp\tRunID\tInput\tProcedures\tDefinitions\tCalls\tCharactersSaved\tInputBytes\tOutputBytes\n")
	for _, run := range runs {
		buf.WriteString(fmt.Sprintf("%s\t%s\t%s\t%d\t%d\t%d\t%d\t%d\t%d\n",
			run.Timestamp.UTC().Format(time.RFC3339),
			run.RunID,
			run.InputPath,
			run.ProcedureCount,
			run.DefinitionCount,
			run.CallCount,
			run.CharactersSaved,
			run.InputBytes,
			run.OutputBytes,
		))
	}

	return buf.String(), nil
}

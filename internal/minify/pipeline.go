// # internal/minify/pipeline.go
package minify

import (
	"context"
	"path/filepath"
	"strings"
	"time"

	"basmin/internal/config"
	"basmin/internal/observability"
	"basmin/internal/rename"
	"basmin/internal/scan"
	"basmin/internal/source"
)

// Pipeline drives one minification pass: load the listing, index
// definitions and call sites, allocate short names, rewrite, persist.
// Each stage is a pure function of its inputs; the pipeline owns the
// two file accesses. There is no partial-output guarantee: a failed
// write leaves whatever the filesystem left behind.
type Pipeline struct {
	dialect *scan.Dialect
}

func New(d config.Dialect) *Pipeline {
	return &Pipeline{dialect: scan.NewDialect(d.Keyword, d.CommentPrefix)}
}

func (p *Pipeline) Dialect() *scan.Dialect {
	return p.dialect
}

// Result collects everything a single run produced.
type Result struct {
	InputPath  string
	OutputPath string

	Definitions scan.DefinitionIndex
	Calls       scan.CallIndex
	Mapping     rename.Mapping

	TotalSavings int
	InputBytes   int
	OutputBytes  int
	LineCount    int
	Duration     time.Duration
}

func (r *Result) ProcedureCount() int {
	return len(r.Definitions)
}

func (r *Result) DefinitionCount() int {
	n := 0
	for _, idx := range r.Definitions {
		n += len(idx)
	}
	return n
}

func (r *Result) CallCount() int {
	n := 0
	for _, idx := range r.Calls {
		n += len(idx)
	}
	return n
}

// Run executes the whole pass against the filesystem.
func (p *Pipeline) Run(ctx context.Context, inputPath, outputPath string) (*Result, error) {
	ctx, span := observability.Tracer.Start(ctx, "pipeline.Run")
	defer span.End()

	start := time.Now()

	listing, err := source.Load(inputPath)
	if err != nil {
		observability.RunErrorsTotal.Inc()
		return nil, err
	}

	result, rewritten, err := p.Process(ctx, listing)
	if err != nil {
		observability.RunErrorsTotal.Inc()
		return nil, err
	}

	if err := rewritten.Save(outputPath); err != nil {
		observability.RunErrorsTotal.Inc()
		return nil, err
	}

	result.InputPath = inputPath
	result.OutputPath = outputPath
	result.InputBytes = listing.Size()
	result.OutputBytes = rewritten.Size()
	result.Duration = time.Since(start)

	observability.RunsTotal.Inc()
	observability.RunDuration.Observe(result.Duration.Seconds())
	observability.ProceduresFound.Set(float64(result.ProcedureCount()))
	observability.CharactersSaved.Set(float64(result.TotalSavings))

	return result, nil
}

// Process runs the in-memory stages and returns the rewritten listing.
// Zero procedures found is not an error: the mapping is empty and the
// output listing equals the input.
func (p *Pipeline) Process(ctx context.Context, listing *source.Listing) (*Result, *source.Listing, error) {
	if err := ctx.Err(); err != nil {
		return nil, nil, err
	}

	lines := listing.Lines()

	defs := p.stageDefinitions(ctx, lines)
	calls := p.stageCalls(ctx, lines, defs.Names())
	mapping := p.stageAllocate(ctx, defs.Names())
	rewritten := p.stageRewrite(ctx, lines, mapping)

	result := &Result{
		Definitions: defs,
		Calls:       calls,
		Mapping:     mapping,
		LineCount:   listing.LineCount(),
	}

	for name, short := range mapping {
		diff := len(name) - len(short)
		occurrences := len(defs[name]) + len(calls[name])
		result.TotalSavings += diff * occurrences
	}

	return result, source.FromLines(rewritten), nil
}

func (p *Pipeline) stageDefinitions(ctx context.Context, lines []string) scan.DefinitionIndex {
	_, span := observability.Tracer.Start(ctx, "pipeline.scanDefinitions")
	defer span.End()
	defer p.observeStage("scan_definitions", time.Now())
	return scan.Definitions(lines, p.dialect)
}

func (p *Pipeline) stageCalls(ctx context.Context, lines []string, names []string) scan.CallIndex {
	_, span := observability.Tracer.Start(ctx, "pipeline.scanCalls")
	defer span.End()
	defer p.observeStage("scan_calls", time.Now())
	return scan.Calls(lines, p.dialect, names)
}

func (p *Pipeline) stageAllocate(ctx context.Context, names []string) rename.Mapping {
	_, span := observability.Tracer.Start(ctx, "pipeline.allocate")
	defer span.End()
	defer p.observeStage("allocate", time.Now())
	return rename.Allocate(names)
}

func (p *Pipeline) stageRewrite(ctx context.Context, lines []string, mapping rename.Mapping) []string {
	_, span := observability.Tracer.Start(ctx, "pipeline.rewrite")
	defer span.End()
	defer p.observeStage("rewrite", time.Now())
	return rename.NewRewriter(mapping, p.dialect).Rewrite(lines)
}

func (p *Pipeline) observeStage(stage string, start time.Time) {
	observability.StageDuration.WithLabelValues(stage).Observe(time.Since(start).Seconds())
}

// DefaultOutputPath derives the output name from the input, e.g.
// tsbv2.bas -> tsbv2_shortened.bas.
func DefaultOutputPath(inputPath string) string {
	ext := filepath.Ext(inputPath)
	stem := strings.TrimSuffix(inputPath, ext)
	return stem + "_shortened" + ext
}

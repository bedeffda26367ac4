// # cmd/basmin/app.go
package main

import (
	"context"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/gobwas/glob"

	"basmin/internal/config"
	"basmin/internal/history"
	"basmin/internal/minify"
	"basmin/internal/observability"
	"basmin/internal/report"
	"basmin/internal/watcher"
)

type App struct {
	Config   *config.Config
	Pipeline *minify.Pipeline
	Store    *history.Store

	obsServer  *observability.Server
	teaProgram *tea.Program

	inputs         []string
	explicitOutput string
	// Outputs we wrote ourselves; the watcher must never re-trigger on
	// them or dir mode would loop forever.
	outputs map[string]bool
}

func NewApp(cfg *config.Config, input, output string, store *history.Store) (*App, error) {
	a := &App{
		Config:         cfg,
		Pipeline:       minify.New(cfg.Dialect),
		Store:          store,
		explicitOutput: output,
		outputs:        make(map[string]bool),
	}

	info, err := os.Stat(input)
	if err != nil {
		return nil, fmt.Errorf("input %s: %w", input, err)
	}

	if !info.IsDir() {
		a.inputs = []string{input}
		return a, nil
	}

	if output != "" {
		return nil, fmt.Errorf("an explicit output path only applies to a single input file")
	}
	files, err := collectListings(input, cfg.Watch.Include, cfg.Watch.Exclude)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		return nil, fmt.Errorf("no listings matching %v under %s", cfg.Watch.Include, input)
	}
	a.inputs = files
	return a, nil
}

func collectListings(root string, include, exclude []string) ([]string, error) {
	includeGlobs := make([]glob.Glob, 0, len(include))
	for _, p := range include {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid include pattern %q: %w", p, err)
		}
		includeGlobs = append(includeGlobs, g)
	}

	excludeGlobs := make([]glob.Glob, 0, len(exclude))
	for _, p := range exclude {
		g, err := glob.Compile(p)
		if err != nil {
			return nil, fmt.Errorf("invalid exclude pattern %q: %w", p, err)
		}
		excludeGlobs = append(excludeGlobs, g)
	}

	var files []string
	err := filepath.WalkDir(root, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return nil
		}

		base := filepath.Base(path)
		for _, g := range excludeGlobs {
			if g.Match(base) {
				return nil
			}
		}
		for _, g := range includeGlobs {
			if g.Match(base) {
				files = append(files, path)
				return nil
			}
		}
		return nil
	})
	if err != nil {
		return nil, err
	}
	return files, nil
}

func (a *App) outputFor(input string) string {
	if a.explicitOutput != "" {
		return a.explicitOutput
	}
	return minify.DefaultOutputPath(input)
}

// RunAll executes one pass over every input and prints the diagnostic
// summary for each.
func (a *App) RunAll(ctx context.Context) error {
	for _, input := range a.inputs {
		result, err := a.runOne(ctx, input)
		if err != nil {
			return err
		}
		fmt.Print(report.Summary(result))
	}
	return nil
}

func (a *App) runOne(ctx context.Context, input string) (*minify.Result, error) {
	output := a.outputFor(input)

	abs, err := filepath.Abs(output)
	if err != nil {
		abs = output
	}
	a.outputs[abs] = true

	result, err := a.Pipeline.Run(ctx, input, output)
	if err != nil {
		return nil, err
	}

	if err := a.writeArtifacts(result); err != nil {
		slog.Error("failed to write report artifacts", "error", err)
	}

	if a.Store != nil {
		run := history.Run{
			ProjectKey:      a.Config.History.ProjectKey,
			InputPath:       result.InputPath,
			OutputPath:      result.OutputPath,
			ProcedureCount:  result.ProcedureCount(),
			DefinitionCount: result.DefinitionCount(),
			CallCount:       result.CallCount(),
			CharactersSaved: result.TotalSavings,
			InputBytes:      result.InputBytes,
			OutputBytes:     result.OutputBytes,
		}
		if err := a.Store.SaveRun(run); err != nil {
			slog.Error("failed to save run snapshot", "error", err)
		}
	}

	if a.obsServer != nil {
		a.obsServer.RecordRun(time.Now())
	}

	return result, nil
}

func (a *App) writeArtifacts(result *minify.Result) error {
	if a.Config.Output.TSV != "" {
		tsv, err := report.NewTSVGenerator(result).Generate()
		if err != nil {
			return err
		}
		if err := os.WriteFile(a.Config.Output.TSV, []byte(tsv), 0644); err != nil {
			return err
		}
	}

	if a.Config.Output.Markdown != "" {
		md, err := report.NewMarkdownGenerator(result).Generate()
		if err != nil {
			return err
		}
		if err := os.WriteFile(a.Config.Output.Markdown, []byte(md), 0644); err != nil {
			return err
		}
	}

	return nil
}

func (a *App) HandleChanges(paths []string) {
	slog.Info("detected changes", "count", len(paths))

	for _, path := range paths {
		abs, err := filepath.Abs(path)
		if err != nil {
			abs = path
		}
		if a.outputs[abs] {
			continue
		}
		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue
		}

		result, err := a.runOne(context.Background(), path)

		if a.teaProgram != nil {
			a.teaProgram.Send(updateMsg{result: result, err: err})
			continue
		}

		if err != nil {
			slog.Error("rescan failed", "path", path, "error", err)
			continue
		}
		if a.Config.Alerts.Terminal {
			fmt.Print(report.StyledSummary(result))
		}
		if a.Config.Alerts.Beep {
			fmt.Print("\a")
		}
	}
}

func (a *App) StartWatcher() error {
	w, err := watcher.NewWatcher(
		a.Config.Watch.Debounce,
		a.Config.Watch.MaxRunsPerSec,
		a.Config.Watch.Include,
		a.Config.Watch.Exclude,
		a.HandleChanges,
	)
	if err != nil {
		return err
	}

	paths := a.Config.Watch.Paths
	if len(paths) == 0 {
		paths = a.inputs
	}
	// Runs for the life of the process; no Close.
	return w.Watch(paths)
}

func (a *App) StartObservability(ctx context.Context, addr string) error {
	a.obsServer = observability.NewServer(addr)
	return a.obsServer.Start(ctx)
}

func (a *App) RunUI() error {
	m := initialModel()
	p := tea.NewProgram(m, tea.WithAltScreen())
	a.teaProgram = p

	// Seed the UI with a fresh pass over the first input.
	go func() {
		result, err := a.runOne(context.Background(), a.inputs[0])
		a.teaProgram.Send(updateMsg{result: result, err: err})
	}()

	_, err := p.Run()
	return err
}

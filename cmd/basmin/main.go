// # cmd/basmin/main.go
package main

import (
	"context"
	"flag"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"basmin/internal/config"
	"basmin/internal/history"
	"basmin/internal/observability"
	"basmin/internal/prg"
	"basmin/internal/report"
)

var (
	configPath  = flag.String("config", "./basmin.toml", "Path to config file")
	once        = flag.Bool("once", false, "Run a single pass and exit (the default)")
	watch       = flag.Bool("watch", false, "Keep running and rescan on file changes")
	ui          = flag.Bool("ui", false, "Enable terminal UI mode (implies -watch)")
	useHistory  = flag.Bool("history", false, "Record run snapshots; with no input, print past runs and exit")
	since       = flag.String("since", "", "With -history, only runs at or after this time (RFC3339 or YYYY-MM-DD)")
	historyTSV  = flag.String("history-tsv", "", "With -history, write the run table to this TSV file")
	strs        = flag.Bool("strings", false, "Extract quoted strings from a PRG binary and exit")
	metricsAddr = flag.String("metrics-addr", "", "Serve Prometheus metrics on this address (watch mode)")
	verbose     = flag.Bool("verbose", false, "Enable verbose logging")
	version     = flag.Bool("version", false, "Print version and exit")
)

const VERSION = "1.0.0"

func main() {
	flag.Parse()

	if *version {
		fmt.Printf("basmin v%s\n", VERSION)
		os.Exit(0)
	}

	// Setup logging
	logLevel := slog.LevelInfo
	if *verbose {
		logLevel = slog.LevelDebug
	}

	output := os.Stdout
	if *ui {
		// In UI mode, avoid stdout logs corrupting the TUI.
		logPath := resolveLogPath()
		if err := os.MkdirAll(filepath.Dir(logPath), 0700); err != nil {
			fmt.Fprintf(os.Stderr, "warning: failed to create log dir for %s: %v\n", logPath, err)
		} else {
			if fi, err := os.Lstat(logPath); err == nil && (fi.Mode()&os.ModeSymlink) != 0 {
				fmt.Fprintf(os.Stderr, "warning: refusing to write logs to symlink path %s\n", logPath)
			} else {
				f, err := os.OpenFile(logPath, os.O_APPEND|os.O_CREATE|os.O_WRONLY, 0600)
				if err == nil {
					output = f
				} else {
					fmt.Fprintf(os.Stderr, "warning: failed to open log file %s: %v\n", logPath, err)
				}
			}
		}
	}

	logger := slog.New(slog.NewTextHandler(output, &slog.HandlerOptions{
		Level: logLevel,
	}))
	slog.SetDefault(logger)

	if *strs {
		if flag.NArg() != 1 {
			fmt.Fprintln(os.Stderr, "strings mode requires one argument: basmin -strings <file.prg>")
			os.Exit(1)
		}
		out, err := prg.ReportFile(flag.Arg(0))
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}
		fmt.Print(out)
		os.Exit(0)
	}

	// Load config; a missing default config is not an error.
	cfg, err := config.Load(*configPath)
	if err != nil {
		if *configPath == "./basmin.toml" && os.IsNotExist(err) {
			cfg = config.Default()
		} else {
			slog.Error("failed to load config", "error", err)
			os.Exit(1)
		}
	}

	if *useHistory && flag.NArg() == 0 {
		printHistory(cfg)
		os.Exit(0)
	}

	if flag.NArg() < 1 || flag.NArg() > 2 {
		fmt.Fprintln(os.Stderr, "usage: basmin [flags] <input> [output]")
		os.Exit(1)
	}
	input := flag.Arg(0)
	outputPath := ""
	if flag.NArg() == 2 {
		outputPath = flag.Arg(1)
	}

	ctx := context.Background()

	shutdown, err := observability.SetupTracing(ctx, cfg.Observability.OTLPEndpoint, cfg.Observability.SampleRatio)
	if err != nil {
		slog.Error("failed to set up tracing", "error", err)
		os.Exit(1)
	}
	defer func() {
		flushCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		if err := shutdown(flushCtx); err != nil {
			slog.Warn("trace flush failed", "error", err)
		}
	}()

	var store *history.Store
	if *useHistory || cfg.History.Path != "" {
		store, err = history.Open(historyPath(cfg))
		if err != nil {
			slog.Error("failed to open history database", "error", err)
			os.Exit(1)
		}
		defer store.Close()
	}

	app, err := NewApp(cfg, input, outputPath, store)
	if err != nil {
		slog.Error("failed to initialize app", "error", err)
		os.Exit(1)
	}

	// Initial pass
	if !*ui {
		if err := app.RunAll(ctx); err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}
	}

	if *once || (!*watch && !*ui) {
		os.Exit(0)
	}

	// Watch mode
	addr := *metricsAddr
	if addr == "" {
		addr = cfg.Observability.MetricsAddr
	}
	if addr != "" {
		if err := app.StartObservability(ctx, addr); err != nil {
			slog.Error("failed to start observability server", "error", err)
			os.Exit(1)
		}
	}

	if err := app.StartWatcher(); err != nil {
		slog.Error("failed to start watcher", "error", err)
		os.Exit(1)
	}

	if *ui {
		if err := app.RunUI(); err != nil {
			slog.Error("failed to run UI", "error", err)
			os.Exit(1)
		}
	} else {
		// Block forever
		select {}
	}
}

func historyPath(cfg *config.Config) string {
	if cfg.History.Path != "" {
		return cfg.History.Path
	}
	return "./basmin_history.db"
}

func printHistory(cfg *config.Config) {
	store, err := history.Open(historyPath(cfg))
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}
	defer store.Close()

	var from time.Time
	if *since != "" {
		from, err = parseSince(*since)
		if err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}
	}

	runs, err := store.LoadRuns(cfg.History.ProjectKey, from)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	out, err := report.GenerateTrends(runs)
	if err != nil {
		fmt.Fprintln(os.Stderr, err.Error())
		os.Exit(1)
	}

	if *historyTSV != "" {
		if err := os.WriteFile(*historyTSV, []byte(out), 0644); err != nil {
			fmt.Fprintln(os.Stderr, err.Error())
			os.Exit(1)
		}
		fmt.Printf("Run history written to: %s\n", *historyTSV)
		return
	}
	fmt.Print(out)
}

func parseSince(value string) (time.Time, error) {
	if ts, err := time.Parse(time.RFC3339, value); err == nil {
		return ts, nil
	}
	if ts, err := time.Parse("2006-01-02", value); err == nil {
		return ts, nil
	}
	return time.Time{}, fmt.Errorf("invalid -since value %q, want RFC3339 or YYYY-MM-DD", value)
}

func resolveLogPath() string {
	if xdg := os.Getenv("XDG_STATE_HOME"); xdg != "" {
		return filepath.Join(xdg, "basmin", "basmin.log")
	}

	home, err := os.UserHomeDir()
	if err == nil && home != "" {
		return filepath.Join(home, ".local", "state", "basmin", "basmin.log")
	}

	return "basmin.log"
}

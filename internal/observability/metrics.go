package observability

import (
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics definitions
var (
	StageDuration = promauto.NewHistogramVec(prometheus.HistogramOpts{
		Name:    "basmin_stage_seconds",
		Help:    "Time spent in one pipeline stage.",
		Buckets: prometheus.DefBuckets,
	}, []string{"stage"})

	RunDuration = promauto.NewHistogram(prometheus.HistogramOpts{
		Name:    "basmin_run_seconds",
		Help:    "End-to-end duration of one minification run.",
		Buckets: prometheus.DefBuckets,
	})

	ProceduresFound = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "basmin_procedures_total",
		Help: "Unique procedures discovered in the last run.",
	})

	CharactersSaved = promauto.NewGauge(prometheus.GaugeOpts{
		Name: "basmin_characters_saved",
		Help: "Total character savings reported by the last run.",
	})

	RunsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "basmin_runs_total",
		Help: "Total number of completed minification runs.",
	})

	RunErrorsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "basmin_run_errors_total",
		Help: "Total number of failed minification runs.",
	})

	WatcherEventsTotal = promauto.NewCounter(prometheus.CounterOpts{
		Name: "basmin_watcher_events_total",
		Help: "Total number of file system events received by the watcher.",
	})

	WatcherRunsSuppressed = promauto.NewCounter(prometheus.CounterOpts{
		Name: "basmin_watcher_runs_suppressed_total",
		Help: "Rescans skipped because the rate limiter denied them.",
	})
)

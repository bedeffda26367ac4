// # internal/config/config.go
package config

import (
	"os"
	"time"

	"github.com/BurntSushi/toml"
)

type Config struct {
	Dialect       Dialect       `toml:"dialect"`
	Watch         Watch         `toml:"watch"`
	Output        Output        `toml:"output"`
	History       History       `toml:"history"`
	Observability Observability `toml:"observability"`
	Alerts        Alerts        `toml:"alerts"`
}

type Dialect struct {
	Keyword       string `toml:"keyword"`        // Procedure declaration keyword (e.g. PROC)
	CommentPrefix string `toml:"comment_prefix"` // Lines starting with this are never calls
}

type Watch struct {
	Paths         []string      `toml:"paths"`
	Debounce      time.Duration `toml:"debounce"`
	Include       []string      `toml:"include"`
	Exclude       []string      `toml:"exclude"`
	MaxRunsPerSec float64       `toml:"max_runs_per_sec"`
}

type Output struct {
	TSV      string `toml:"tsv"`
	Markdown string `toml:"markdown"`
}

type History struct {
	Path       string `toml:"path"`
	ProjectKey string `toml:"project_key"`
}

type Observability struct {
	MetricsAddr  string  `toml:"metrics_addr"`
	OTLPEndpoint string  `toml:"otlp_endpoint"`
	SampleRatio  float64 `toml:"sample_ratio"`
}

type Alerts struct {
	Beep     bool `toml:"beep"`
	Terminal bool `toml:"terminal"`
}

func Default() *Config {
	return &Config{
		Dialect: Dialect{
			Keyword:       "PROC",
			CommentPrefix: "#",
		},
		Watch: Watch{
			Debounce:      500 * time.Millisecond,
			Include:       []string{"*.bas"},
			MaxRunsPerSec: 4,
		},
		History: History{
			ProjectKey: "default",
		},
		Observability: Observability{
			SampleRatio: 1.0,
		},
		Alerts: Alerts{
			Terminal: true,
		},
	}
}

func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	var cfg Config
	if _, err := toml.Decode(string(data), &cfg); err != nil {
		return nil, err
	}

	applyDefaults(&cfg)
	return &cfg, nil
}

func applyDefaults(cfg *Config) {
	def := Default()

	if cfg.Dialect.Keyword == "" {
		cfg.Dialect.Keyword = def.Dialect.Keyword
	}
	if cfg.Dialect.CommentPrefix == "" {
		cfg.Dialect.CommentPrefix = def.Dialect.CommentPrefix
	}
	if cfg.Watch.Debounce == 0 {
		cfg.Watch.Debounce = def.Watch.Debounce
	}
	if len(cfg.Watch.Include) == 0 {
		cfg.Watch.Include = def.Watch.Include
	}
	if cfg.Watch.MaxRunsPerSec == 0 {
		cfg.Watch.MaxRunsPerSec = def.Watch.MaxRunsPerSec
	}
	if cfg.History.ProjectKey == "" {
		cfg.History.ProjectKey = def.History.ProjectKey
	}
	if cfg.Observability.SampleRatio == 0 {
		cfg.Observability.SampleRatio = def.Observability.SampleRatio
	}
}

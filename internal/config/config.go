// Package config defines service configuration structures and loading hooks.
//
// Conventions:
// - Provide New(ctx) to build a Config with defaults.
// - Load layers defaults, an optional YAML file and NBABRAIN_ env vars.
// - Validation failures wrap ErrInvalidConfig.
package config

import (
	"context"
	"fmt"
	"runtime"
	"strings"
	"time"

	"github.com/KrishalDhungana/NBABrain/internal/domain/ranking"
	"github.com/KrishalDhungana/NBABrain/internal/domain/window"
)

// Config contains process configuration.
type Config struct {
	// LogLevel controls verbosity: debug, info, warn, error.
	LogLevel string `koanf:"log_level"`

	// LogFormat selects the log handler: text or json.
	LogFormat string `koanf:"log_format"`

	// Addr configures the HTTP listen address, e.g. ":9080".
	Addr string `koanf:"addr"`

	// Source selects the data source: file, http or generate.
	Source string `koanf:"source"`

	// DataDir holds teams.json and players.json for the file source.
	DataDir string `koanf:"data_dir"`

	// TeamsURL and PlayersURL are fetched by the http source.
	TeamsURL   string `koanf:"teams_url"`
	PlayersURL string `koanf:"players_url"`

	// FetchTimeoutMS bounds one source fetch.
	FetchTimeoutMS int `koanf:"fetch_timeout_ms"`

	// RefreshIntervalS is the period between refreshes; 0 disables the loop.
	RefreshIntervalS int `koanf:"refresh_interval_s"`

	// WorkerCount sets the size of the per-entity derivation pool.
	WorkerCount int `koanf:"worker_count"`

	// Windows lists trailing game windows, e.g. ["7", "30", "season"].
	Windows []string `koanf:"windows"`

	// NeutralRating is the category rating used when no signal exists.
	NeutralRating int `koanf:"neutral_rating"`

	// GeneratorSeed, GeneratorTeams and GeneratorDays configure the synthetic source.
	GeneratorSeed  uint64 `koanf:"generator_seed"`
	GeneratorTeams int    `koanf:"generator_teams"`
	GeneratorDays  int    `koanf:"generator_days"`

	// MaxListLimit caps GET /rankings?limit.
	MaxListLimit int `koanf:"max_list_limit"`

	// MetricOrder overrides rank direction per metric ("asc" or "desc").
	MetricOrder map[string]string `koanf:"metric_order"`
}

// New creates a Config with defaults. Context is accepted first to satisfy
// the project-wide convention.
func New(_ context.Context) *Config {
	return &Config{
		LogLevel:         "info",
		LogFormat:        "text",
		Addr:             ":9080",
		Source:           "generate",
		DataDir:          "data",
		FetchTimeoutMS:   10_000,
		RefreshIntervalS: 300,
		WorkerCount:      runtime.NumCPU(),
		Windows:          []string{"7", "30", "season"},
		NeutralRating:    60,
		GeneratorSeed:    2025,
		GeneratorTeams:   30,
		GeneratorDays:    60,
		MaxListLimit:     100,
		MetricOrder:      map[string]string{},
	}
}

// FetchTimeout returns FetchTimeoutMS as a duration.
func (c *Config) FetchTimeout() time.Duration {
	return time.Duration(c.FetchTimeoutMS) * time.Millisecond
}

// RefreshInterval returns RefreshIntervalS as a duration.
func (c *Config) RefreshInterval() time.Duration {
	return time.Duration(c.RefreshIntervalS) * time.Second
}

// ParsedWindows converts Windows to window definitions.
func (c *Config) ParsedWindows() ([]window.Window, error) {
	out := make([]window.Window, 0, len(c.Windows))
	for _, raw := range c.Windows {
		w, err := window.ParseWindow(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: windows: %w", ErrInvalidConfig, err)
		}
		out = append(out, w)
	}
	return out, nil
}

// MetricOrders converts MetricOrder to ranking orders.
func (c *Config) MetricOrders() (map[string]ranking.Order, error) {
	out := make(map[string]ranking.Order, len(c.MetricOrder))
	for metric, raw := range c.MetricOrder {
		o, err := ranking.ParseOrder(raw)
		if err != nil {
			return nil, fmt.Errorf("%w: metric_order.%s: %w", ErrInvalidConfig, metric, err)
		}
		out[metric] = o
	}
	return out, nil
}

// Validate checks field ranges and cross-field requirements.
func (c *Config) Validate() error {
	if c.Addr == "" {
		return fmt.Errorf("%w: addr must not be empty", ErrInvalidConfig)
	}
	switch strings.ToLower(c.LogFormat) {
	case "text", "json":
	default:
		return fmt.Errorf("%w: log_format %q", ErrInvalidConfig, c.LogFormat)
	}
	switch c.Source {
	case "file":
		if c.DataDir == "" {
			return fmt.Errorf("%w: data_dir is required for the file source", ErrSourceSettings)
		}
	case "http":
		if c.TeamsURL == "" || c.PlayersURL == "" {
			return fmt.Errorf("%w: teams_url and players_url are required for the http source", ErrSourceSettings)
		}
	case "generate":
		if c.GeneratorTeams < 2 || c.GeneratorTeams > 30 {
			return fmt.Errorf("%w: generator_teams must be between 2 and 30", ErrSourceSettings)
		}
		if c.GeneratorDays < 1 {
			return fmt.Errorf("%w: generator_days must be positive", ErrSourceSettings)
		}
	default:
		return fmt.Errorf("%w %q", ErrUnknownSource, c.Source)
	}
	if c.FetchTimeoutMS <= 0 {
		return fmt.Errorf("%w: fetch_timeout_ms must be positive", ErrInvalidConfig)
	}
	if c.RefreshIntervalS < 0 {
		return fmt.Errorf("%w: refresh_interval_s must not be negative", ErrInvalidConfig)
	}
	if c.NeutralRating < 1 || c.NeutralRating > 99 {
		return fmt.Errorf("%w: neutral_rating must be within [1,99]", ErrInvalidConfig)
	}
	if c.MaxListLimit < 1 {
		return fmt.Errorf("%w: max_list_limit must be positive", ErrInvalidConfig)
	}
	if len(c.Windows) == 0 {
		return fmt.Errorf("%w: at least one window is required", ErrInvalidConfig)
	}
	if _, err := c.ParsedWindows(); err != nil {
		return err
	}
	if _, err := c.MetricOrders(); err != nil {
		return err
	}
	return nil
}

// Package config reads process configuration from the environment.
package config

import (
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/caarlos0/env/v11"
)

// Config is the process configuration. Command-line flags override it.
type Config struct {
	// DB is the SQLite file holding the profile and run history.
	DB string `env:"KNIFEHIT_DB" envDefault:"knifehit.db"`
	// Tuning is an optional CUE tuning file.
	Tuning string `env:"KNIFEHIT_TUNING"`
	// LogLevel is debug, info, warn or error.
	LogLevel string `env:"KNIFEHIT_LOG_LEVEL" envDefault:"warn"`
	// TickInterval paces interactive play.
	TickInterval time.Duration `env:"KNIFEHIT_TICK_INTERVAL" envDefault:"16ms"`
	// Seed fixes level layouts when non-zero.
	Seed uint64 `env:"KNIFEHIT_SEED"`
}

// Load parses the environment.
func Load() (Config, error) {
	var cfg Config
	if err := env.Parse(&cfg); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if _, err := ParseLevel(cfg.LogLevel); err != nil {
		return Config{}, err
	}
	if cfg.TickInterval <= 0 {
		return Config{}, fmt.Errorf("parse env: KNIFEHIT_TICK_INTERVAL must be positive, got %s", cfg.TickInterval)
	}
	return cfg, nil
}

// ParseLevel maps a level name to a slog level.
func ParseLevel(name string) (slog.Level, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "debug":
		return slog.LevelDebug, nil
	case "info":
		return slog.LevelInfo, nil
	case "warn", "warning", "":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	default:
		return 0, fmt.Errorf("unknown log level %q", name)
	}
}

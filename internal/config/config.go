// Package config loads the service configuration.
//
// Values start from Default, are overlaid by an optional YAML file, and then
// by QIYAAS_ prefixed environment variables (QIYAAS_STORE_PATH,
// QIYAAS_SERVER_ADDR, QIYAAS_SCHEDULE_TIMEZONE, ...).
package config

import (
	"errors"
	"fmt"
	"os"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/robfig/cron"
	"gopkg.in/yaml.v3"

	"github.com/roach88/qiyaas/internal/puzzle"
	"github.com/roach88/qiyaas/internal/store"
)

// EnvPrefix prefixes every environment override.
const EnvPrefix = "QIYAAS_"

// Config is the full service configuration.
type Config struct {
	Store      StoreConfig      `yaml:"store" envPrefix:"STORE_"`
	Server     ServerConfig     `yaml:"server" envPrefix:"SERVER_"`
	Metrics    MetricsConfig    `yaml:"metrics" envPrefix:"METRICS_"`
	Schedule   ScheduleConfig   `yaml:"schedule" envPrefix:"SCHEDULE_"`
	Generation GenerationConfig `yaml:"generation" envPrefix:"GENERATION_"`
	Log        LogConfig        `yaml:"log" envPrefix:"LOG_"`
}

// StoreConfig selects the KV backend.
type StoreConfig struct {
	Driver string `yaml:"driver" env:"DRIVER"` // "sqlite" | "badger"
	Path   string `yaml:"path" env:"PATH"`
}

// ServerConfig configures the read API.
type ServerConfig struct {
	Addr           string        `yaml:"addr" env:"ADDR"`
	CurrentTTL     time.Duration `yaml:"current_ttl" env:"CURRENT_TTL"`
	HistoricalTTL  time.Duration `yaml:"historical_ttl" env:"HISTORICAL_TTL"`
	AllowedOrigins []string      `yaml:"allowed_origins" env:"ALLOWED_ORIGINS"` // empty allows all
}

// MetricsConfig configures the Prometheus listener. An empty Addr disables it.
type MetricsConfig struct {
	Addr string `yaml:"addr" env:"ADDR"`
}

// ScheduleConfig configures the daily trigger.
type ScheduleConfig struct {
	Enabled  bool   `yaml:"enabled" env:"ENABLED"`
	Spec     string `yaml:"spec" env:"SPEC"` // cron spec with a seconds field
	Timezone string `yaml:"timezone" env:"TIMEZONE"`
}

// GenerationConfig tunes the composer.
type GenerationConfig struct {
	RerollProbability float64 `yaml:"reroll_probability" env:"REROLL_PROBABILITY"`
	Strategy          string  `yaml:"strategy" env:"STRATEGY"` // "last" | "duplicate"
}

// LogConfig configures slog.
type LogConfig struct {
	Level  string `yaml:"level" env:"LEVEL"`   // debug | info | warn | error
	Format string `yaml:"format" env:"FORMAT"` // text | json
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Store: StoreConfig{
			Driver: store.DriverSQLite,
			Path:   "qiyaas.db",
		},
		Server: ServerConfig{
			Addr:          ":8080",
			CurrentTTL:    time.Hour,
			HistoricalTTL: 24 * time.Hour,
		},
		Schedule: ScheduleConfig{
			Enabled:  true,
			Spec:     "0 0 0 * * *",
			Timezone: "America/New_York",
		},
		Generation: GenerationConfig{
			RerollProbability: puzzle.DefaultRerollProbability,
			Strategy:          puzzle.RerollLast.String(),
		},
		Log: LogConfig{
			Level:  "info",
			Format: "text",
		},
	}
}

// Load reads path (if non-empty) over the defaults, applies the environment
// and validates the result.
func Load(path string) (Config, error) {
	cfg := Default()
	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("read config: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parse config %s: %w", path, err)
		}
	}
	if err := env.ParseWithOptions(&cfg, env.Options{Prefix: EnvPrefix}); err != nil {
		return Config{}, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// Validate reports every invalid field.
func (c Config) Validate() error {
	var errs []error
	if c.Store.Driver != store.DriverSQLite && c.Store.Driver != store.DriverBadger {
		errs = append(errs, fmt.Errorf("store.driver: unknown driver %q", c.Store.Driver))
	}
	if c.Store.Path == "" {
		errs = append(errs, errors.New("store.path: required"))
	}
	if c.Server.CurrentTTL < 0 || c.Server.HistoricalTTL < 0 {
		errs = append(errs, errors.New("server: cache TTLs must not be negative"))
	}
	if _, err := c.Location(); err != nil {
		errs = append(errs, fmt.Errorf("schedule.timezone: %w", err))
	}
	if _, err := cron.Parse(c.Schedule.Spec); err != nil {
		errs = append(errs, fmt.Errorf("schedule.spec: %w", err))
	}
	if p := c.Generation.RerollProbability; p < 0 || p > 1 {
		errs = append(errs, fmt.Errorf("generation.reroll_probability: %v not in [0, 1]", p))
	}
	if _, err := puzzle.ParseRerollStrategy(c.Generation.Strategy); err != nil {
		errs = append(errs, fmt.Errorf("generation.strategy: %w", err))
	}
	switch c.Log.Level {
	case "debug", "info", "warn", "error":
	default:
		errs = append(errs, fmt.Errorf("log.level: unknown level %q", c.Log.Level))
	}
	if c.Log.Format != "text" && c.Log.Format != "json" {
		errs = append(errs, fmt.Errorf("log.format: unknown format %q", c.Log.Format))
	}
	return errors.Join(errs...)
}

// Location loads the schedule time zone.
func (c Config) Location() (*time.Location, error) {
	return time.LoadLocation(c.Schedule.Timezone)
}

// ComposeOptions converts the generation section.
func (c Config) ComposeOptions() (puzzle.Options, error) {
	strategy, err := puzzle.ParseRerollStrategy(c.Generation.Strategy)
	if err != nil {
		return puzzle.Options{}, err
	}
	return puzzle.Options{
		RerollProbability: c.Generation.RerollProbability,
		Strategy:          strategy,
	}, nil
}

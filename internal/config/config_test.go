package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/qiyaas/internal/puzzle"
)

func TestDefault_IsValid(t *testing.T) {
	cfg := Default()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, time.Hour, cfg.Server.CurrentTTL)
	assert.Equal(t, 24*time.Hour, cfg.Server.HistoricalTTL)
	assert.Equal(t, "America/New_York", cfg.Schedule.Timezone)
	assert.Equal(t, 0.5, cfg.Generation.RerollProbability)
}

func TestLoad_NoFile(t *testing.T) {
	cfg, err := Load("")
	require.NoError(t, err)
	assert.Equal(t, Default(), cfg)
}

func TestLoad_YAMLOverDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join("testdata", "qiyaas.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "badger", cfg.Store.Driver)
	assert.Equal(t, "/var/lib/qiyaas", cfg.Store.Path)
	assert.Equal(t, ":9000", cfg.Server.Addr)
	assert.Equal(t, 30*time.Minute, cfg.Server.CurrentTTL)
	assert.Equal(t, 24*time.Hour, cfg.Server.HistoricalTTL, "unset fields keep defaults")
	assert.Equal(t, []string{"https://qiyaas.example"}, cfg.Server.AllowedOrigins)
	assert.Equal(t, "UTC", cfg.Schedule.Timezone)
	assert.True(t, cfg.Schedule.Enabled)
	assert.Equal(t, "json", cfg.Log.Format)

	opts, err := cfg.ComposeOptions()
	require.NoError(t, err)
	assert.Equal(t, puzzle.Options{RerollProbability: 0.25, Strategy: puzzle.RerollDuplicate}, opts)
}

func TestLoad_EnvOverridesFile(t *testing.T) {
	t.Setenv("QIYAAS_STORE_PATH", "/tmp/other.db")
	t.Setenv("QIYAAS_STORE_DRIVER", "sqlite")
	t.Setenv("QIYAAS_SERVER_HISTORICAL_TTL", "2h")
	t.Setenv("QIYAAS_SCHEDULE_ENABLED", "false")
	t.Setenv("QIYAAS_SERVER_ALLOWED_ORIGINS", "https://a.example,https://b.example")

	cfg, err := Load(filepath.Join("testdata", "qiyaas.yaml"))
	require.NoError(t, err)

	assert.Equal(t, "sqlite", cfg.Store.Driver)
	assert.Equal(t, "/tmp/other.db", cfg.Store.Path)
	assert.Equal(t, 2*time.Hour, cfg.Server.HistoricalTTL)
	assert.False(t, cfg.Schedule.Enabled)
	assert.Equal(t, []string{"https://a.example", "https://b.example"}, cfg.Server.AllowedOrigins)
}

func TestLoad_MissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "read config")
}

func TestLoad_BadYAML(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	require.NoError(t, os.WriteFile(path, []byte("store: [unclosed"), 0644))
	_, err := Load(path)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "parse config")
}

func TestValidate_Rejects(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(*Config)
		want   string
	}{
		{"driver", func(c *Config) { c.Store.Driver = "redis" }, "store.driver"},
		{"path", func(c *Config) { c.Store.Path = "" }, "store.path"},
		{"ttl", func(c *Config) { c.Server.CurrentTTL = -time.Second }, "TTLs"},
		{"timezone", func(c *Config) { c.Schedule.Timezone = "Mars/Olympus" }, "schedule.timezone"},
		{"spec", func(c *Config) { c.Schedule.Spec = "every day" }, "schedule.spec"},
		{"probability", func(c *Config) { c.Generation.RerollProbability = 1.5 }, "reroll_probability"},
		{"strategy", func(c *Config) { c.Generation.Strategy = "random" }, "generation.strategy"},
		{"level", func(c *Config) { c.Log.Level = "trace" }, "log.level"},
		{"format", func(c *Config) { c.Log.Format = "xml" }, "log.format"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := Default()
			tt.mutate(&cfg)
			err := cfg.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
		})
	}
}

func TestValidate_JoinsErrors(t *testing.T) {
	cfg := Default()
	cfg.Store.Driver = "redis"
	cfg.Log.Format = "xml"
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "store.driver")
	assert.Contains(t, err.Error(), "log.format")
}

package config

import (
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func envOf(vars map[string]string) lookupFunc {
	return func(key string) (string, bool) {
		v, ok := vars[key]
		return v, ok
	}
}

func TestNewDefaultConfig_IsValid(t *testing.T) {
	cfg := NewDefaultConfig()
	require.NoError(t, cfg.Validate())
	assert.Equal(t, 8, cfg.Pool.ShardCount)
	assert.Equal(t, 256, cfg.Pool.QueueSize)
	assert.Equal(t, 15*time.Minute, cfg.Navigation.ReplanWindow)
	assert.Equal(t, 3, cfg.Solar.UTCOffsetHours)
}

func TestApplyEnv(t *testing.T) {
	cfg := NewDefaultConfig()
	err := cfg.applyEnv(envOf(map[string]string{
		"PORT":                 "9090",
		"GRAPH_PATH":           "/srv/edges.csv",
		"SHARD_COUNT":          "2",
		"QUEUE_SIZE":           "16",
		"SNAP_DISTANCE_METERS": "50.5",
		"REPLAN_WINDOW":        "5m",
		"UTC_OFFSET_HOURS":     "-4",
		"LOG_LEVEL":            "debug",
		"LOG_DEVELOPMENT":      "true",
		"DEFAULT_MAX_FACTOR":   "",
	}))
	require.NoError(t, err)

	assert.Equal(t, ":9090", cfg.Server.Port)
	assert.Equal(t, "/srv/edges.csv", cfg.Graph.Path)
	assert.Equal(t, 2, cfg.Pool.ShardCount)
	assert.Equal(t, 16, cfg.Pool.QueueSize)
	assert.Equal(t, 50.5, cfg.Navigation.SnapDistanceMeters)
	assert.Equal(t, 5*time.Minute, cfg.Navigation.ReplanWindow)
	assert.Equal(t, -4, cfg.Solar.UTCOffsetHours)
	assert.Equal(t, "debug", cfg.Log.Level)
	assert.True(t, cfg.Log.Development)
	// Empty values keep the default.
	assert.Equal(t, 10.0, cfg.Navigation.DefaultMaxFactor)
}

func TestApplyEnv_Malformed(t *testing.T) {
	tests := []struct {
		name string
		vars map[string]string
	}{
		{"int", map[string]string{"SHARD_COUNT": "many"}},
		{"float", map[string]string{"SNAP_DISTANCE_METERS": "far"}},
		{"duration", map[string]string{"REPLAN_WINDOW": "15"}},
		{"bool", map[string]string{"LOG_DEVELOPMENT": "sometimes"}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := NewDefaultConfig().applyEnv(envOf(tt.vars))
			require.Error(t, err)
			assert.True(t, errors.Is(err, ErrInvalidConfig))
		})
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name   string
		modify func(*Config)
	}{
		{"no shards", func(c *Config) { c.Pool.ShardCount = 0 }},
		{"negative queue", func(c *Config) { c.Pool.QueueSize = -1 }},
		{"negative snap", func(c *Config) { c.Navigation.SnapDistanceMeters = -1 }},
		{"zero window", func(c *Config) { c.Navigation.ReplanWindow = 0 }},
		{"max factor below one", func(c *Config) { c.Navigation.DefaultMaxFactor = 0.5 }},
		{"offset out of range", func(c *Config) { c.Solar.UTCOffsetHours = 15 }},
		{"no graph", func(c *Config) { c.Graph.Path = "" }},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := NewDefaultConfig()
			tt.modify(cfg)
			assert.ErrorIs(t, cfg.Validate(), ErrInvalidConfig)
		})
	}
}

func TestLoad_WithoutDotEnv(t *testing.T) {
	wd, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(wd) })
	t.Setenv("SHARD_COUNT", "3")

	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, 3, cfg.Pool.ShardCount)
}

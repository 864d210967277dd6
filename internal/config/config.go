// Package config centralizes all application configuration into typed structs.
//
// Go Learning Note — Configuration Management:
// Defaults live in NewDefaultConfig as plain struct literals. Load layers the
// process environment on top of them, after godotenv has copied any .env file
// into that environment. Typed fields (time.Duration, int, float64) mean a
// malformed value is caught once at startup instead of deep inside a request.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
)

var ErrInvalidConfig = errors.New("config: invalid value")

// Config is the top-level configuration container.
type Config struct {
	Server     ServerConfig
	Graph      GraphConfig
	Pool       PoolConfig
	Navigation NavigationConfig
	Solar      SolarConfig
	Log        LogConfig
}

// ServerConfig holds HTTP server settings.
type ServerConfig struct {
	Port            string
	ReadTimeout     time.Duration
	WriteTimeout    time.Duration
	ShutdownTimeout time.Duration
	GinMode         string
}

// GraphConfig points at the street graph loaded at startup.
type GraphConfig struct {
	Path string
}

// PoolConfig sizes each navigator pool. Both the distance and the shadow
// pool get ShardCount workers and a mailbox of QueueSize.
type PoolConfig struct {
	ShardCount int
	QueueSize  int
}

// NavigationConfig tunes the searches.
type NavigationConfig struct {
	// SnapDistanceMeters is how far a requested point may be from the
	// nearest vertex and still be routed.
	SnapDistanceMeters float64

	// MinOffset and OffsetFactor widen the search rectangle around the
	// endpoints, in degrees: max(delta*OffsetFactor, MinOffset) per axis.
	MinOffset    float64
	OffsetFactor float64

	AvoidPenalty     float64
	ReplanWindow     time.Duration
	DefaultMaxFactor float64

	// MaxShadowMapRadius caps the radius of a shadow map request, in meters.
	MaxShadowMapRadius float64
}

// SolarConfig fixes the zone whose clock feeds the solar model.
type SolarConfig struct {
	UTCOffsetHours int
}

// LogConfig configures zap.
type LogConfig struct {
	Level       string
	Development bool
}

// NewDefaultConfig returns a Config populated with sensible defaults.
func NewDefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Port:            ":8080",
			ReadTimeout:     10 * time.Second,
			WriteTimeout:    30 * time.Second,
			ShutdownTimeout: 10 * time.Second,
			GinMode:         "release",
		},
		Graph: GraphConfig{
			Path: "data/edges.csv",
		},
		Pool: PoolConfig{
			ShardCount: 8,
			QueueSize:  256,
		},
		Navigation: NavigationConfig{
			SnapDistanceMeters: 100,
			MinOffset:          0.05,
			OffsetFactor:       0.1,
			AvoidPenalty:       1000,
			ReplanWindow:       15 * time.Minute,
			DefaultMaxFactor:   10,
			MaxShadowMapRadius: 2000,
		},
		Solar: SolarConfig{
			UTCOffsetHours: 3,
		},
		Log: LogConfig{
			Level:       "info",
			Development: false,
		},
	}
}

// Load returns the defaults overlaid with the environment. A .env file in
// the working directory is read first if present; its absence is not an
// error.
func Load() (*Config, error) {
	if err := godotenv.Load(); err != nil && !errors.Is(err, os.ErrNotExist) {
		return nil, fmt.Errorf("config: reading .env: %w", err)
	}

	cfg := NewDefaultConfig()
	if err := cfg.applyEnv(os.LookupEnv); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

type lookupFunc func(key string) (string, bool)

func (c *Config) applyEnv(lookup lookupFunc) error {
	e := envReader{lookup: lookup}

	if port, ok := lookup("PORT"); ok && port != "" {
		if port[0] != ':' {
			port = ":" + port
		}
		c.Server.Port = port
	}
	e.str("GIN_MODE", &c.Server.GinMode)
	e.str("GRAPH_PATH", &c.Graph.Path)
	e.int("SHARD_COUNT", &c.Pool.ShardCount)
	e.int("QUEUE_SIZE", &c.Pool.QueueSize)
	e.float("SNAP_DISTANCE_METERS", &c.Navigation.SnapDistanceMeters)
	e.duration("REPLAN_WINDOW", &c.Navigation.ReplanWindow)
	e.float("DEFAULT_MAX_FACTOR", &c.Navigation.DefaultMaxFactor)
	e.int("UTC_OFFSET_HOURS", &c.Solar.UTCOffsetHours)
	e.str("LOG_LEVEL", &c.Log.Level)
	e.bool("LOG_DEVELOPMENT", &c.Log.Development)

	return e.err
}

// Validate rejects settings the services cannot run with.
func (c *Config) Validate() error {
	switch {
	case c.Pool.ShardCount < 1:
		return fmt.Errorf("%w: shard count %d, need at least 1", ErrInvalidConfig, c.Pool.ShardCount)
	case c.Pool.QueueSize < 0:
		return fmt.Errorf("%w: queue size %d", ErrInvalidConfig, c.Pool.QueueSize)
	case c.Navigation.SnapDistanceMeters < 0:
		return fmt.Errorf("%w: snap distance %v", ErrInvalidConfig, c.Navigation.SnapDistanceMeters)
	case c.Navigation.ReplanWindow <= 0:
		return fmt.Errorf("%w: re-plan window %v", ErrInvalidConfig, c.Navigation.ReplanWindow)
	case c.Navigation.DefaultMaxFactor < 1:
		return fmt.Errorf("%w: default max factor %v, need at least 1", ErrInvalidConfig, c.Navigation.DefaultMaxFactor)
	case c.Solar.UTCOffsetHours < -12 || c.Solar.UTCOffsetHours > 14:
		return fmt.Errorf("%w: utc offset %d", ErrInvalidConfig, c.Solar.UTCOffsetHours)
	case c.Graph.Path == "":
		return fmt.Errorf("%w: empty graph path", ErrInvalidConfig)
	}
	return nil
}

// envReader parses variables into typed fields and keeps the first error.
type envReader struct {
	lookup lookupFunc
	err    error
}

func (e *envReader) get(key string) (string, bool) {
	if e.err != nil {
		return "", false
	}
	v, ok := e.lookup(key)
	return v, ok && v != ""
}

func (e *envReader) fail(key, value string, err error) {
	e.err = fmt.Errorf("%w: %s=%q: %v", ErrInvalidConfig, key, value, err)
}

func (e *envReader) str(key string, dst *string) {
	if v, ok := e.get(key); ok {
		*dst = v
	}
}

func (e *envReader) int(key string, dst *int) {
	if v, ok := e.get(key); ok {
		n, err := strconv.Atoi(v)
		if err != nil {
			e.fail(key, v, err)
			return
		}
		*dst = n
	}
}

func (e *envReader) float(key string, dst *float64) {
	if v, ok := e.get(key); ok {
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			e.fail(key, v, err)
			return
		}
		*dst = f
	}
}

func (e *envReader) bool(key string, dst *bool) {
	if v, ok := e.get(key); ok {
		b, err := strconv.ParseBool(v)
		if err != nil {
			e.fail(key, v, err)
			return
		}
		*dst = b
	}
}

func (e *envReader) duration(key string, dst *time.Duration) {
	if v, ok := e.get(key); ok {
		d, err := time.ParseDuration(v)
		if err != nil {
			e.fail(key, v, err)
			return
		}
		*dst = d
	}
}

package goSession

import (
	"errors"
	"fmt"
	"time"
)

// ErrConfigInvalid is an exported constant or variable used by the session engine.
var ErrConfigInvalid = errors.New("invalid config")

// Config defines a public type used by goSession APIs.
//
// Config instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type Config struct {
	// GasToDeleteSession is the execution budget reserved for each
	// scheduled cleanup, paid at session-creation time.
	GasToDeleteSession uint64
	// MinimumSessionDuration is the shortest grant the engine accepts.
	MinimumSessionDuration time.Duration
	// TickDuration is the wall-clock length of one tick on the host's
	// monotonic counter (block time).
	TickDuration time.Duration

	Session SessionConfig
	Audit   AuditConfig
	Metrics MetricsConfig
}

/*
====================================
SESSION CONFIG
====================================
*/

// SessionConfig defines a public type used by goSession APIs.
//
// SessionConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type SessionConfig struct {
	RedisPrefix string
}

/*
====================================
AUDIT CONFIG
====================================
*/

// AuditConfig defines a public type used by goSession APIs.
//
// AuditConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type AuditConfig struct {
	Enabled    bool
	BufferSize int
	DropIfFull bool
}

/*
====================================
METRICS CONFIG
====================================
*/

// MetricsConfig defines a public type used by goSession APIs.
//
// MetricsConfig instances are intended to be configured during initialization and then treated as immutable unless documented otherwise.
type MetricsConfig struct {
	Enabled bool
}

// DefaultConfig returns the defaults used by [New]: a three-minute
// minimum grant, three-second ticks, and ten units of gas per scheduled
// cleanup in the host's billion-gas scale.
func DefaultConfig() Config {
	return Config{
		GasToDeleteSession:     10_000_000_000,
		MinimumSessionDuration: 3 * time.Minute,
		TickDuration:           3 * time.Second,
		Session: SessionConfig{
			RedisPrefix: "gs",
		},
		Audit: AuditConfig{
			Enabled:    false,
			BufferSize: 256,
			DropIfFull: true,
		},
		Metrics: MetricsConfig{
			Enabled: true,
		},
	}
}

// Validate checks the config for values the engine cannot operate with.
func (c Config) Validate() error {
	if c.TickDuration <= 0 {
		return fmt.Errorf("%w: tick duration must be positive", ErrConfigInvalid)
	}
	if c.MinimumSessionDuration <= 0 {
		return fmt.Errorf("%w: minimum session duration must be positive", ErrConfigInvalid)
	}
	if c.GasToDeleteSession == 0 {
		return fmt.Errorf("%w: cleanup gas budget must be positive", ErrConfigInvalid)
	}
	return nil
}

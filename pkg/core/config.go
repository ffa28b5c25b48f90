package core

import (
	"time"
)

// TimeoutConfig bounds the work done for one connection.
type TimeoutConfig struct {
	// ComponentEvent bounds HandleEvent and HandleInfo calls.
	ComponentEvent time.Duration
	// WebSocketRead is the idle read timeout of a connection.
	WebSocketRead time.Duration
	// WebSocketWrite bounds a single frame write.
	WebSocketWrite time.Duration
}

// SecurityConfig configures origin checks for the WebSocket upgrade.
type SecurityConfig struct {
	AllowedOrigins []string
	// InsecureDevMode disables origin checks. Development only.
	InsecureDevMode bool
}

// Config combines all live connection settings.
type Config struct {
	Timeouts TimeoutConfig
	Security SecurityConfig

	MaxMessageSize int64
	// MaxConnections caps concurrent sockets; 0 means unlimited
	MaxConnections int
}

// DefaultConfig returns the production defaults with same-origin checks.
func DefaultConfig() Config {
	return Config{
		Timeouts: TimeoutConfig{
			ComponentEvent: 3 * time.Second,
			WebSocketRead:  60 * time.Second,
			WebSocketWrite: 10 * time.Second,
		},
		MaxMessageSize: 64 * 1024,
		MaxConnections: 10000,
	}
}

// DevelopmentConfig relaxes timeouts and accepts any origin.
func DevelopmentConfig() Config {
	return Config{
		Timeouts: TimeoutConfig{
			ComponentEvent: 30 * time.Second,
			WebSocketRead:  300 * time.Second,
			WebSocketWrite: 30 * time.Second,
		},
		Security: SecurityConfig{
			AllowedOrigins:  []string{"*"},
			InsecureDevMode: true,
		},
		MaxMessageSize: 1024 * 1024,
		MaxConnections: 1000,
	}
}

// ProductionConfig returns the defaults restricted to origins.
func ProductionConfig(origins ...string) Config {
	cfg := DefaultConfig()
	cfg.Security.AllowedOrigins = origins
	return cfg
}

// Validate validates the configuration.
func (c Config) Validate() error {
	if c.MaxMessageSize <= 0 {
		return ErrInvalidMaxMessageSize
	}
	if c.MaxConnections < 0 {
		return ErrInvalidMaxConnections
	}
	if c.Timeouts.WebSocketWrite <= 0 {
		return ErrInvalidWriteTimeout
	}
	return nil
}

// Configuration errors.
var (
	ErrInvalidMaxMessageSize = configError("MaxMessageSize must be positive")
	ErrInvalidMaxConnections = configError("MaxConnections must not be negative")
	ErrInvalidWriteTimeout   = configError("Timeouts.WebSocketWrite must be positive")
)

type configError string

func (e configError) Error() string { return string(e) }

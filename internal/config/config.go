package config

import (
	"fmt"
	"time"
)

// Config holds the configuration surface the signaling core and its
// transport are constructed from.
type Config struct {
	Addr string `mapstructure:"addr" yaml:"addr"`

	MaxClients int `mapstructure:"max_clients" yaml:"max_clients"`
	MaxRooms   int `mapstructure:"max_rooms" yaml:"max_rooms"`

	ClientIdleTimeout time.Duration `mapstructure:"client_idle_timeout" yaml:"client_idle_timeout"`
	IngressCapacity   int           `mapstructure:"ingress_capacity" yaml:"ingress_capacity"`

	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout" yaml:"shutdown_timeout"`

	LogLevel string `mapstructure:"log_level" yaml:"log_level"`
}

// Default returns the configuration a fresh install starts with.
func Default() Config {
	return Config{
		Addr:              ":8080",
		MaxClients:        1024,
		MaxRooms:          256,
		ClientIdleTimeout: 60 * time.Second,
		IngressCapacity:   1024,
		ShutdownTimeout:   5 * time.Second,
		LogLevel:          "info",
	}
}

// UpdateFrom overwrites non-zero values from other into the receiver.
// Load does not call it; cmd/server uses it to apply command-line flags
// after Load, so set flags win over the config file and env vars.
func (c *Config) UpdateFrom(other Config) {
	if other.Addr != "" {
		c.Addr = other.Addr
	}
	if other.MaxClients != 0 {
		c.MaxClients = other.MaxClients
	}
	if other.MaxRooms != 0 {
		c.MaxRooms = other.MaxRooms
	}
	if other.ClientIdleTimeout != 0 {
		c.ClientIdleTimeout = other.ClientIdleTimeout
	}
	if other.IngressCapacity != 0 {
		c.IngressCapacity = other.IngressCapacity
	}
	if other.ShutdownTimeout != 0 {
		c.ShutdownTimeout = other.ShutdownTimeout
	}
	if other.LogLevel != "" {
		c.LogLevel = other.LogLevel
	}
}

// Validate enforces the configuration surface's stated bounds.
func (c Config) Validate() error {
	if c.MaxClients < 1 || c.MaxClients > 65536 {
		return fmt.Errorf("max_clients must be in [1, 65536], got %d", c.MaxClients)
	}
	if c.MaxRooms < 1 || c.MaxRooms > 10000 {
		return fmt.Errorf("max_rooms must be in [1, 10000], got %d", c.MaxRooms)
	}
	if c.ClientIdleTimeout < 30*time.Second {
		return fmt.Errorf("client_idle_timeout must be at least 30s, got %s", c.ClientIdleTimeout)
	}
	if c.IngressCapacity < 1 {
		return fmt.Errorf("ingress_capacity must be positive, got %d", c.IngressCapacity)
	}
	return nil
}

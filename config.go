package main

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"
)

// Config holds process-level settings. Gameplay tuning stays in
// compile-time constants; this covers only how the server is deployed.
type Config struct {
	Server    ServerConfig    `toml:"server"`
	Limits    LimitsConfig    `toml:"limits"`
	Analytics AnalyticsConfig `toml:"analytics"`
	Admin     AdminConfig     `toml:"admin"`
	Logging   LoggingConfig   `toml:"logging"`
}

type ServerConfig struct {
	Addr      string `toml:"addr"`
	PublicURL string `toml:"public_url"`
}

type LimitsConfig struct {
	MaxConnsPerIP int `toml:"max_conns_per_ip"`
	MaxTotalConns int `toml:"max_total_conns"`
}

type AnalyticsConfig struct {
	Path string `toml:"path"` // sqlite file; empty disables the journal
}

type AdminConfig struct {
	PasswordHash string `toml:"password_hash"` // bcrypt; empty disables admin endpoints
}

type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"` // "json" or "console"
}

// LoadConfig reads a TOML config file over the defaults
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	cfg := DefaultConfig()
	if err := toml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// DefaultConfig returns the configuration used when no file is given
func DefaultConfig() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:      ":8080",
			PublicURL: "http://localhost:8080",
		},
		Limits: LimitsConfig{
			MaxConnsPerIP: 5,
			MaxTotalConns: 1000,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "console",
		},
	}
}

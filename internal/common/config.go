// Package common provides shared utilities for Strata
package common

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	toml "github.com/pelletier/go-toml/v2"
)

// Config holds all configuration for Strata
type Config struct {
	Environment string        `toml:"environment"`
	Carrier     CarrierConfig `toml:"carrier"`
	Server      ServerConfig  `toml:"server"`
	Storage     StorageConfig `toml:"storage"`
	Auth        AuthConfig    `toml:"auth"`
	Limits      LimitsConfig  `toml:"limits"`
	Logging     LoggingConfig `toml:"logging"`
}

// CarrierConfig identifies our paper within submitted towers.
type CarrierConfig struct {
	Name   string `toml:"name"`   // full carrier name used on new towers
	Marker string `toml:"marker"` // case-insensitive substring identifying our layers
}

// ServerConfig holds HTTP server configuration
type ServerConfig struct {
	Host string `toml:"host"`
	Port int    `toml:"port"`
}

// StorageConfig holds path configuration for the two storage areas.
type StorageConfig struct {
	Internal AreaConfig `toml:"internal"` // underwriter accounts + session KV (BadgerHold)
	Data     AreaConfig `toml:"data"`     // submissions, options, endorsements, subjectivities (BadgerHold)
}

// AreaConfig holds path configuration for a storage area.
type AreaConfig struct {
	Path string `toml:"path"`
}

// AuthConfig holds authentication configuration.
type AuthConfig struct {
	JWTSecret         string `toml:"jwt_secret"`
	TokenExpiry       string `toml:"token_expiry"` // duration string, default "24h"
	BootstrapUser     string `toml:"bootstrap_user"`
	BootstrapPassword string `toml:"bootstrap_password"`
}

// GetTokenExpiry parses and returns the token expiry duration.
func (c *AuthConfig) GetTokenExpiry() time.Duration {
	d, err := time.ParseDuration(c.TokenExpiry)
	if err != nil {
		return 24 * time.Hour
	}
	return d
}

// LimitsConfig holds request rate limiting configuration.
type LimitsConfig struct {
	RequestsPerSecond int `toml:"requests_per_second"`
	Burst             int `toml:"burst"`
}

// LoggingConfig holds logging configuration
type LoggingConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// NewDefaultConfig returns a Config with sensible defaults
func NewDefaultConfig() *Config {
	return &Config{
		Environment: "development",
		Carrier: CarrierConfig{
			Name:   "CMAI Specialty",
			Marker: "CMAI",
		},
		Server: ServerConfig{
			Host: "0.0.0.0",
			Port: 8080,
		},
		Storage: StorageConfig{
			Internal: AreaConfig{Path: "data/internal"},
			Data:     AreaConfig{Path: "data/quotes"},
		},
		Auth: AuthConfig{
			JWTSecret:   "dev-jwt-secret-change-in-production",
			TokenExpiry: "24h",
		},
		Limits: LimitsConfig{
			RequestsPerSecond: 25,
			Burst:             50,
		},
		Logging: LoggingConfig{
			Level:  "info",
			Format: "json",
		},
	}
}

// LoadConfig loads configuration from files with environment overrides
func LoadConfig(paths ...string) (*Config, error) {
	config := NewDefaultConfig()

	// Load and merge each config file in order (later files override earlier)
	for _, path := range paths {
		if path == "" {
			continue
		}

		if _, err := os.Stat(path); os.IsNotExist(err) {
			continue // Skip missing files
		}

		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read config file %s: %w", path, err)
		}

		if err := toml.Unmarshal(data, config); err != nil {
			return nil, fmt.Errorf("failed to parse config file %s: %w", path, err)
		}
	}

	applyEnvOverrides(config)

	return config, nil
}

// applyEnvOverrides applies environment variable overrides to config
func applyEnvOverrides(config *Config) {
	if env := os.Getenv("STRATA_ENV"); env != "" {
		config.Environment = env
	}

	if host := os.Getenv("STRATA_HOST"); host != "" {
		config.Server.Host = host
	}

	if port := os.Getenv("STRATA_PORT"); port != "" {
		if p, err := strconv.Atoi(port); err == nil {
			config.Server.Port = p
		}
	}

	if level := os.Getenv("STRATA_LOG_LEVEL"); level != "" {
		config.Logging.Level = level
	}

	if path := os.Getenv("STRATA_DATA_PATH"); path != "" {
		config.Storage.Internal.Path = path + "/internal"
		config.Storage.Data.Path = path + "/quotes"
	}

	if marker := os.Getenv("STRATA_CARRIER_MARKER"); marker != "" {
		config.Carrier.Marker = marker
	}

	if v := os.Getenv("STRATA_AUTH_JWT_SECRET"); v != "" {
		config.Auth.JWTSecret = v
	}
	if v := os.Getenv("STRATA_AUTH_TOKEN_EXPIRY"); v != "" {
		config.Auth.TokenExpiry = v
	}
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	env := strings.ToLower(strings.TrimSpace(c.Environment))
	return env == "production" || env == "prod"
}

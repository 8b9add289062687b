// Package config provides centralized configuration management.
//
// Configuration is loaded from a YAML file when one is present, with
// environment variables as the fallback for deployments that do not
// ship a file.
package config

import (
	"fmt"
	"os"
	"strconv"

	"gopkg.in/yaml.v3"
)

// Config is the entire application configuration.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Logging  LoggingConfig  `yaml:"logging"`
	Analysis AnalysisConfig `yaml:"analysis"`
}

// ServerConfig holds the HTTP API settings.
type ServerConfig struct {
	Addr string `yaml:"addr"`
}

// LoggingConfig holds observability settings.
type LoggingConfig struct {
	Level  string `yaml:"level"`  // debug, info, warn, error
	Format string `yaml:"format"` // json or console
}

// AnalysisConfig holds analyzer tunables.
type AnalysisConfig struct {
	// DefaultCreditLimit stands in when a statement yields no limit.
	DefaultCreditLimit float64 `yaml:"default_credit_limit"`
	// RewardRate is the assumed flat reward rate on spend.
	RewardRate float64 `yaml:"reward_rate"`
}

// Default returns the built-in configuration.
func Default() *Config {
	return &Config{
		Server:  ServerConfig{Addr: ":8080"},
		Logging: LoggingConfig{Level: "info", Format: "console"},
		Analysis: AnalysisConfig{
			DefaultCreditLimit: 100_000,
			RewardRate:         0.01,
		},
	}
}

// Load reads configuration from a YAML file, layered over defaults.
func Load(path string) (*Config, error) {
	cfg := Default()
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config %s: %w", path, err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	return cfg, nil
}

// LoadOrEnv loads the given file if it exists, otherwise falls back to
// defaults overlaid with environment variables.
func LoadOrEnv(path string) (*Config, error) {
	if path != "" {
		if _, err := os.Stat(path); err == nil {
			return Load(path)
		}
	}
	cfg := Default()
	if v := os.Getenv("CARDSENSE_ADDR"); v != "" {
		cfg.Server.Addr = v
	}
	if v := os.Getenv("CARDSENSE_LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}
	if v := os.Getenv("CARDSENSE_LOG_FORMAT"); v != "" {
		cfg.Logging.Format = v
	}
	if v := os.Getenv("CARDSENSE_DEFAULT_LIMIT"); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil && f > 0 {
			cfg.Analysis.DefaultCreditLimit = f
		}
	}
	return cfg, nil
}

// Package config loads linguacart configuration from a YAML file with
// environment-variable overrides for paths. Every knob has a default, so
// the assistant runs with no config file at all.
package config

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Config holds all linguacart configuration.
type Config struct {
	Catalog CatalogConfig `yaml:"catalog"`
	Orders  OrdersConfig  `yaml:"orders"`
	Logging LoggingConfig `yaml:"logging"`
	UI      UIConfig      `yaml:"ui"`
}

// CatalogConfig points at the two catalog sources. Empty paths use the
// embedded default datasets.
type CatalogConfig struct {
	PrimaryPath string `yaml:"primary_path"`
	TabularPath string `yaml:"tabular_path"`
}

// OrdersConfig controls the order ledger.
type OrdersConfig struct {
	Path     string `yaml:"path"`
	Disabled bool   `yaml:"disabled"`
}

// LoggingConfig controls the zap logger.
type LoggingConfig struct {
	Level string `yaml:"level"` // debug, info, warn, error
}

// UIConfig controls the terminal chat appearance.
type UIConfig struct {
	Theme string `yaml:"theme"` // auto, light, dark
}

// Default returns the built-in configuration.
func Default() Config {
	return Config{
		Orders:  OrdersConfig{Path: "linguacart.db"},
		Logging: LoggingConfig{Level: "info"},
		UI:      UIConfig{Theme: "auto"},
	}
}

// Load reads the config file at path and applies environment overrides.
// An empty path yields the defaults (still with overrides applied).
func Load(path string) (Config, error) {
	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return cfg, fmt.Errorf("read config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return cfg, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment overrides for deployment without a config file.
	if v := os.Getenv("LINGUACART_CATALOG"); v != "" {
		cfg.Catalog.PrimaryPath = v
	}
	if v := os.Getenv("LINGUACART_BOOKS_CSV"); v != "" {
		cfg.Catalog.TabularPath = v
	}
	if v := os.Getenv("LINGUACART_ORDERS_DB"); v != "" {
		cfg.Orders.Path = v
	}

	if err := cfg.Validate(); err != nil {
		return cfg, fmt.Errorf("validate config: %w", err)
	}
	return cfg, nil
}

// Validate rejects values the rest of the system cannot work with.
func (c *Config) Validate() error {
	switch c.Logging.Level {
	case "", "debug", "info", "warn", "error":
	default:
		return fmt.Errorf("unknown logging level %q", c.Logging.Level)
	}
	switch c.UI.Theme {
	case "", "auto", "light", "dark":
	default:
		return fmt.Errorf("unknown ui theme %q", c.UI.Theme)
	}
	if !c.Orders.Disabled && c.Orders.Path == "" {
		return fmt.Errorf("orders path is required unless orders are disabled")
	}
	return nil
}

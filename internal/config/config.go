// Package config provides configuration management for Chisel using Viper
// for flexible loading from files, environment variables, and command-line
// flags.
//
// Configuration sources in precedence order: command-line flags, CHISEL_
// prefixed environment variables, and the .chisel.yml configuration file.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"
)

type Config struct {
	Server     ServerConfig     `yaml:"server"`
	Components ComponentsConfig `yaml:"components"`
	Catalog    CatalogConfig    `yaml:"catalog"`
	Sandbox    SandboxConfig    `yaml:"sandbox"`
	Store      StoreConfig      `yaml:"store"`
	LogLevel   string           `yaml:"log_level"`
	LogFormat  string           `yaml:"log_format"`
}

type ServerConfig struct {
	Host           string   `yaml:"host"`
	Port           int      `yaml:"port"`
	AllowedOrigins []string `yaml:"allowed_origins"`
}

type ComponentsConfig struct {
	ScanPaths       []string `yaml:"scan_paths"`
	ExcludePatterns []string `yaml:"exclude_patterns"`
}

type CatalogConfig struct {
	// Path points to a YAML styling-catalog overlay; empty means the
	// compiled-in default catalog
	Path string `yaml:"path"`
}

type SandboxConfig struct {
	// TimeoutMS bounds one compile-and-execute call
	TimeoutMS int `yaml:"timeout_ms"`
}

type StoreConfig struct {
	// Path is the SQLite database file; ":memory:" for ephemeral
	Path string `yaml:"path"`
}

// Load builds the configuration from viper's merged sources and applies
// defaults for anything unset.
func Load() (*Config, error) {
	var cfg Config
	if err := viper.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("loading configuration: %w", err)
	}

	if cfg.Server.Host == "" {
		cfg.Server.Host = viper.GetString("server.host")
	}
	if cfg.Server.Host == "" {
		cfg.Server.Host = "localhost"
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = viper.GetInt("server.port")
	}
	if cfg.Server.Port == 0 {
		cfg.Server.Port = 7331
	}
	if len(cfg.Components.ScanPaths) == 0 {
		cfg.Components.ScanPaths = viper.GetStringSlice("components.scan_paths")
	}
	if len(cfg.Components.ScanPaths) == 0 {
		cfg.Components.ScanPaths = []string{"./components"}
	}
	if len(cfg.Components.ExcludePatterns) == 0 {
		cfg.Components.ExcludePatterns = []string{"*.test.jsx", "*.test.tsx", "*.stories.*"}
	}
	if cfg.Catalog.Path == "" {
		cfg.Catalog.Path = viper.GetString("catalog.path")
	}
	if cfg.Sandbox.TimeoutMS == 0 {
		cfg.Sandbox.TimeoutMS = viper.GetInt("sandbox.timeout_ms")
	}
	if cfg.Sandbox.TimeoutMS == 0 {
		cfg.Sandbox.TimeoutMS = 2000
	}
	if cfg.Store.Path == "" {
		cfg.Store.Path = viper.GetString("store.path")
	}
	if cfg.Store.Path == "" {
		cfg.Store.Path = ".chisel/revisions.db"
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = stringKey("log-level", "log_level")
	}
	if cfg.LogLevel == "" {
		cfg.LogLevel = "info"
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = stringKey("log-format", "log_format")
	}
	if cfg.LogFormat == "" {
		cfg.LogFormat = "text"
	}

	if err := validate(&cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// stringKey returns the first non-empty viper value among alias keys;
// flags register dashed names while the config file uses snake_case.
func stringKey(keys ...string) string {
	for _, k := range keys {
		if v := viper.GetString(k); v != "" {
			return v
		}
	}
	return ""
}

// validate rejects configurations that cannot work.
func validate(cfg *Config) error {
	if cfg.Server.Port < 1 || cfg.Server.Port > 65535 {
		return fmt.Errorf("invalid server port %d", cfg.Server.Port)
	}
	for _, p := range cfg.Components.ScanPaths {
		if p == "" || strings.ContainsAny(p, "\x00\n\r") {
			return fmt.Errorf("invalid scan path %q", p)
		}
	}
	switch cfg.LogFormat {
	case "text", "json":
	default:
		return fmt.Errorf("invalid log format %q (text or json)", cfg.LogFormat)
	}
	return nil
}

// Package config provides application configuration management.
//
// This covers the process configuration only (listen address, tariff
// document location, logging). The tariff document itself is loaded and
// validated by core/tariff.
package config

import (
	"fmt"
	"strings"

	"github.com/spf13/viper"

	"tariff-engine/internal/logging"
)

// Config is the main application configuration
type Config struct {
	// Version is the configuration version
	Version string `json:"version" mapstructure:"version"`

	// Server contains HTTP server settings
	Server ServerConfig `json:"server" mapstructure:"server"`

	// Tariff contains tariff document settings
	Tariff TariffConfig `json:"tariff" mapstructure:"tariff"`

	// Logging contains logging configuration
	Logging logging.Config `json:"logging" mapstructure:"logging"`
}

// ServerConfig contains HTTP server settings
type ServerConfig struct {
	// Addr is the listen address
	Addr string `json:"addr" mapstructure:"addr"`

	// ReadTimeoutSeconds bounds request header/body reads
	ReadTimeoutSeconds int `json:"read_timeout_seconds" mapstructure:"read_timeout_seconds"`

	// ShutdownTimeoutSeconds bounds graceful shutdown
	ShutdownTimeoutSeconds int `json:"shutdown_timeout_seconds" mapstructure:"shutdown_timeout_seconds"`
}

// TariffConfig locates the confidential tariff document
type TariffConfig struct {
	// Path is the tariff document path
	Path string `json:"path" mapstructure:"path"`

	// Watch enables automatic reload when the document changes on disk
	Watch bool `json:"watch" mapstructure:"watch"`
}

// Default returns a default configuration
func Default() *Config {
	return &Config{
		Version: "1.0",
		Server: ServerConfig{
			Addr:                   ":8080",
			ReadTimeoutSeconds:     10,
			ShutdownTimeoutSeconds: 15,
		},
		Tariff: TariffConfig{
			Path:  "config/tariff_config.json",
			Watch: false,
		},
		Logging: logging.DefaultConfig(),
	}
}

// Load reads configuration from an optional file plus TARIFF_* environment
// variables. Env vars override file values (TARIFF_SERVER_ADDR,
// TARIFF_TARIFF_PATH, TARIFF_LOGGING_LEVEL, ...).
func Load(path string) (*Config, error) {
	v := viper.New()
	v.SetEnvPrefix("TARIFF")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_", "-", "_"))
	v.AutomaticEnv()

	if path != "" {
		v.SetConfigFile(path)
		if err := v.ReadInConfig(); err != nil {
			return nil, fmt.Errorf("reading config %s: %w", path, err)
		}
	}

	cfg := Default()
	if err := v.Unmarshal(cfg); err != nil {
		return nil, fmt.Errorf("unmarshaling config: %w", err)
	}

	// AutomaticEnv does not populate nested keys on Unmarshal unless they
	// are bound explicitly.
	if s := v.GetString("server.addr"); s != "" {
		cfg.Server.Addr = s
	}
	if p := v.GetString("tariff.path"); p != "" {
		cfg.Tariff.Path = p
	}
	if v.IsSet("tariff.watch") {
		cfg.Tariff.Watch = v.GetBool("tariff.watch")
	}
	if l := v.GetString("logging.level"); l != "" {
		cfg.Logging.Level = l
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// Validate checks that the configuration is usable.
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("server.addr must not be empty")
	}
	if c.Tariff.Path == "" {
		return fmt.Errorf("tariff.path must not be empty")
	}
	return nil
}

// Global configuration instance
var globalConfig = Default()

// Get returns the global configuration
func Get() *Config {
	return globalConfig
}

// Set sets the global configuration
func Set(config *Config) {
	globalConfig = config
}

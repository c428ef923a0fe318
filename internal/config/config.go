// Package config handles TOML configuration loading with environment variable substitution.
package config

import (
	"fmt"
	"os"
	"time"

	"github.com/BurntSushi/toml"

	"github.com/vmunix/mediascan/internal/channel"
)

// Config is the root configuration structure.
type Config struct {
	Server   ServerConfig   `toml:"server"`
	Database DatabaseConfig `toml:"database"`
	Channel  ChannelConfig  `toml:"channel"`
	Scanner  ScannerConfig  `toml:"scanner"`
	Plex     *PlexConfig    `toml:"plex"`
	Events   EventsConfig   `toml:"events"`
}

type ServerConfig struct {
	Host     string `toml:"host"`
	Port     int    `toml:"port"`
	LogLevel string `toml:"log_level"`
}

type DatabaseConfig struct {
	Path string `toml:"path"`
}

type ChannelConfig struct {
	Name string `toml:"name"`
}

type ScannerConfig struct {
	Workers   int              `toml:"workers"`
	QueueSize int              `toml:"queue_size"`
	Timeout   time.Duration    `toml:"timeout"`
	Local     LocalIndexConfig `toml:"local"`
}

type LocalIndexConfig struct {
	Enabled bool     `toml:"enabled"`
	Roots   []string `toml:"roots"`
}

type PlexConfig struct {
	URL        string `toml:"url"`
	Token      string `toml:"token"`
	LocalPath  string `toml:"local_path"`
	RemotePath string `toml:"remote_path"`
}

type EventsConfig struct {
	Retention time.Duration `toml:"retention"`
}

// Load reads, substitutes, decodes and validates the configuration file.
// Unresolved variables and validation failures are reported together as a
// *ConfigError.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading config: %w", err)
	}

	content, missing := substituteEnvVars(string(data))
	if len(missing) > 0 {
		return nil, &ConfigError{Path: path, Missing: missing}
	}

	var cfg Config
	if _, err := toml.Decode(content, &cfg); err != nil {
		return nil, fmt.Errorf("parsing config: %w", err)
	}

	cfg.applyDefaults()

	if errs := cfg.Validate(); len(errs) > 0 {
		return nil, &ConfigError{Path: path, Errors: errs}
	}

	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Host == "" {
		c.Server.Host = "127.0.0.1"
	}
	if c.Server.Port == 0 {
		c.Server.Port = 8585
	}
	if c.Server.LogLevel == "" {
		c.Server.LogLevel = "info"
	}
	if c.Database.Path == "" {
		c.Database.Path = "./data/mediascan.db"
	}
	if c.Channel.Name == "" {
		c.Channel.Name = channel.Name
	}
	if c.Scanner.Workers == 0 {
		c.Scanner.Workers = 2
	}
	if c.Scanner.QueueSize == 0 {
		c.Scanner.QueueSize = 100
	}
	if c.Scanner.Timeout == 0 {
		c.Scanner.Timeout = 30 * time.Second
	}
	if c.Events.Retention == 0 {
		c.Events.Retention = 7 * 24 * time.Hour
	}
}

// Default returns a configuration with every default applied.
func Default() *Config {
	cfg := &Config{}
	cfg.Scanner.Local.Enabled = true
	cfg.applyDefaults()
	return cfg
}

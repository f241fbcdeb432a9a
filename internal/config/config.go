// Package config loads the client configuration from a TOML file with
// VIDTUBE_* environment overrides.
package config

import (
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/BurntSushi/toml"
)

//go:embed config.example.toml
var exampleConf []byte

const appDir = "vidtube"

// Config represents the client configuration.
type Config struct {
	Server  ServerConfig  `toml:"server"`
	Storage StorageConfig `toml:"storage"`
	Log     LogConfig     `toml:"log"`
}

// ServerConfig contains backend connection settings.
type ServerConfig struct {
	BaseURL   string        `toml:"base_url"`
	Timeout   time.Duration `toml:"timeout"`
	RateLimit float64       `toml:"rate_limit"`
	RateBurst int           `toml:"rate_burst"`
}

// StorageConfig contains the credential database location.
type StorageConfig struct {
	Path string `toml:"path"`
}

// LogConfig contains logging settings.
type LogConfig struct {
	Level  string `toml:"level"`
	Format string `toml:"format"`
}

// DefaultConfig returns a Config with defaults loaded from the embedded example config.
func DefaultConfig() *Config {
	var config Config
	if err := toml.Unmarshal(exampleConf, &config); err != nil {
		panic(fmt.Sprintf("failed to parse embedded default config: %v", err))
	}
	return &config
}

// DefaultPath returns <user config dir>/vidtube/config.toml.
func DefaultPath() (string, error) {
	dir, err := os.UserConfigDir()
	if err != nil {
		return "", fmt.Errorf("failed to resolve config dir: %w", err)
	}
	return filepath.Join(dir, appDir, "config.toml"), nil
}

// LoadConfig reads a TOML file over the defaults. Keys missing from the
// file keep their default values.
func LoadConfig(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	config := DefaultConfig()
	if err := toml.Unmarshal(data, config); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	return config, nil
}

// Load builds the effective configuration: defaults, then the file at path
// (or the default path when empty; a missing default file is not an error),
// then environment overrides. The result is validated.
func Load(path string) (*Config, error) {
	explicit := path != ""
	if !explicit {
		p, err := DefaultPath()
		if err != nil {
			return nil, err
		}
		path = p
	}

	config, err := LoadConfig(path)
	switch {
	case err == nil:
	case !explicit && errors.Is(err, fs.ErrNotExist):
		config = DefaultConfig()
	default:
		return nil, err
	}

	config.ApplyEnv()

	if config.Storage.Path == "" {
		dir, err := os.UserConfigDir()
		if err != nil {
			return nil, fmt.Errorf("failed to resolve storage dir: %w", err)
		}
		config.Storage.Path = filepath.Join(dir, appDir, "client.db")
	}

	if err := config.Validate(); err != nil {
		return nil, err
	}
	return config, nil
}

// ApplyEnv overrides fields from VIDTUBE_* environment variables.
// Unparsable values are ignored.
func (c *Config) ApplyEnv() {
	c.Server.BaseURL = getString("VIDTUBE_SERVER_URL", c.Server.BaseURL)
	c.Server.Timeout = getDuration("VIDTUBE_TIMEOUT", c.Server.Timeout)
	c.Server.RateLimit = getFloat("VIDTUBE_RATE_LIMIT", c.Server.RateLimit)
	c.Server.RateBurst = getInt("VIDTUBE_RATE_BURST", c.Server.RateBurst)
	c.Storage.Path = getString("VIDTUBE_DB", c.Storage.Path)
	c.Log.Level = getString("VIDTUBE_LOG_LEVEL", c.Log.Level)
	c.Log.Format = getString("VIDTUBE_LOG_FORMAT", c.Log.Format)
}

// Validate checks the values that cannot be defaulted.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Server.BaseURL)
	if err != nil || (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return fmt.Errorf("invalid server.base_url %q: must be an absolute http(s) URL", c.Server.BaseURL)
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("invalid server.timeout %s: must be positive", c.Server.Timeout)
	}
	if c.Server.RateLimit < 0 {
		return fmt.Errorf("invalid server.rate_limit %v: must not be negative", c.Server.RateLimit)
	}
	return nil
}

// CreateConfigFile writes the example config to path. It fails if the file exists.
func CreateConfigFile(path string) error {
	if _, err := os.Stat(path); err == nil {
		return fmt.Errorf("config file already exists at %s", path)
	}

	if err := os.MkdirAll(filepath.Dir(path), 0o700); err != nil {
		return fmt.Errorf("failed to create config dir: %w", err)
	}
	if err := os.WriteFile(path, exampleConf, 0o600); err != nil {
		return fmt.Errorf("failed to write config file: %w", err)
	}

	return nil
}

func getString(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	i, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return i
}

func getFloat(key string, fallback float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return f
}

func getDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	d, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return d
}

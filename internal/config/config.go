// Package config provides configuration management for Skibidi Cash.
package config

import (
	"fmt"
	"net/url"
	"os"
	"path/filepath"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	skerr "github.com/jrakibi/skibidi-wallet-sub000/pkg/errors"
)

// Storage driver names.
const (
	StorageDriverFile = "file"
	StorageDriverBolt = "bolt"
)

// Config represents the application configuration.
type Config struct {
	Version int           `yaml:"version"`
	Home    string        `yaml:"home"`
	Backend BackendConfig `yaml:"backend"`
	Price   PriceConfig   `yaml:"price"`
	Storage StorageConfig `yaml:"storage"`
	Session SessionConfig `yaml:"session"`
	Wizard  WizardConfig  `yaml:"wizard"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// BackendConfig defines the wallet backend connection.
type BackendConfig struct {
	URL            string `yaml:"url"`
	Network        string `yaml:"network"`
	TimeoutSeconds int    `yaml:"timeout_seconds"`
}

// PriceConfig defines spot price settings.
type PriceConfig struct {
	URL               string  `yaml:"url"`
	StalenessMinutes  int     `yaml:"staleness_minutes"`
	FallbackUSD       float64 `yaml:"fallback_usd"`
	RequestsPerMinute int     `yaml:"requests_per_minute"`
}

// StorageConfig defines where the wallet list is persisted.
type StorageConfig struct {
	Driver  string `yaml:"driver"`
	Encrypt bool   `yaml:"encrypt"`

	// Passphrase is only ever read from the environment or a prompt.
	Passphrase string `yaml:"-"`
}

// SessionConfig defines session controller timing.
type SessionConfig struct {
	FocusDebounceMs      int `yaml:"focus_debounce_ms"`
	WatchIntervalSeconds int `yaml:"watch_interval_seconds"`
}

// WizardConfig defines the pauses between wizard steps.
type WizardConfig struct {
	GenerateDelayMs int `yaml:"generate_delay_ms"`
	CompleteDelayMs int `yaml:"complete_delay_ms"`
}

// OutputConfig defines output formatting settings.
type OutputConfig struct {
	DefaultFormat string `yaml:"default_format"`
	Color         string `yaml:"color"`
	Verbose       bool   `yaml:"verbose"`
}

// LoggingConfig defines logging settings.
type LoggingConfig struct {
	Level string `yaml:"level"`
	File  string `yaml:"file"`
}

// Load reads configuration from the specified file.
func Load(path string) (*Config, error) {
	// #nosec G304 -- config file path is from validated user input
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}

	cfg := Defaults()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Save writes configuration to the specified file.
func Save(cfg *Config, path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o750); err != nil {
		return err
	}

	data, err := yaml.Marshal(cfg)
	if err != nil {
		return err
	}

	return os.WriteFile(path, data, 0o600)
}

// Path returns the default config file path.
func Path(home string) string {
	return filepath.Join(home, "config.yaml")
}

// DefaultHome returns the default data directory.
func DefaultHome() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ".skibidi"
	}
	return filepath.Join(home, ".skibidi")
}

// Validate checks the values that would otherwise fail later in confusing ways.
func (c *Config) Validate() error {
	u, err := url.Parse(c.Backend.URL)
	if err != nil || u.Scheme == "" || u.Host == "" {
		return skerr.WithDetails(skerr.ErrConfigInvalid, map[string]string{"backend.url": c.Backend.URL})
	}

	switch c.Storage.Driver {
	case StorageDriverFile, StorageDriverBolt:
	default:
		return skerr.WithDetails(skerr.ErrConfigInvalid, map[string]string{"storage.driver": c.Storage.Driver})
	}

	if c.Price.StalenessMinutes <= 0 {
		return skerr.WithDetails(skerr.ErrConfigInvalid,
			map[string]string{"price.staleness_minutes": fmt.Sprint(c.Price.StalenessMinutes)})
	}

	return nil
}

// GetHome returns the data directory with a leading ~ expanded.
func (c *Config) GetHome() string {
	return ExpandHome(c.Home)
}

// GetBackendURL returns the backend base URL without a trailing slash.
func (c *Config) GetBackendURL() string {
	return strings.TrimRight(c.Backend.URL, "/")
}

// GetNetwork returns the bitcoin network passed to restore calls.
func (c *Config) GetNetwork() string {
	return c.Backend.Network
}

// GetBackendTimeout returns the per-request backend timeout.
func (c *Config) GetBackendTimeout() time.Duration {
	return time.Duration(c.Backend.TimeoutSeconds) * time.Second
}

// GetPriceStaleness returns how long a spot price stays fresh.
func (c *Config) GetPriceStaleness() time.Duration {
	return time.Duration(c.Price.StalenessMinutes) * time.Minute
}

// GetFocusDebounce returns the focus-regain debounce delay.
func (c *Config) GetFocusDebounce() time.Duration {
	return time.Duration(c.Session.FocusDebounceMs) * time.Millisecond
}

// GetWatchInterval returns the refresh interval used by the watch command.
func (c *Config) GetWatchInterval() time.Duration {
	return time.Duration(c.Session.WatchIntervalSeconds) * time.Second
}

// GetLoggingLevel returns the configured logging level.
func (c *Config) GetLoggingLevel() string {
	return c.Logging.Level
}

// GetLoggingFile returns the configured log file path.
func (c *Config) GetLoggingFile() string {
	return c.Logging.File
}

// GetOutputFormat returns the default output format.
func (c *Config) GetOutputFormat() string {
	return c.Output.DefaultFormat
}

// IsVerbose returns true if verbose output is enabled.
func (c *Config) IsVerbose() bool {
	return c.Output.Verbose
}

// ExpandHome replaces a leading "~/" with the user's home directory.
func ExpandHome(path string) string {
	if !strings.HasPrefix(path, "~/") {
		return path
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return path
	}
	return filepath.Join(home, path[2:])
}

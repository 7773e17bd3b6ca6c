package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/kelseyhightower/envconfig"
)

// EnvPrefix is prepended to every environment variable name.
const EnvPrefix = "SKIBIDI"

// Environment variable names.
const (
	EnvHome       = "SKIBIDI_HOME"
	EnvBackendURL = "SKIBIDI_BACKEND_URL"
	EnvPassphrase = "SKIBIDI_PASSPHRASE" // #nosec G101 -- false positive, this is a const name not a credential
	EnvNoColor    = "NO_COLOR"
)

// envOverrides mirrors the SKIBIDI_* variables. Empty values leave the
// configuration untouched. Names come from split_words so that no field
// falls back to an unprefixed variable such as HOME.
type envOverrides struct {
	Home          string `split_words:"true"`
	BackendURL    string `split_words:"true"`
	Network       string `split_words:"true"`
	StorageDriver string `split_words:"true"`
	Passphrase    string `split_words:"true"`
	OutputFormat  string `split_words:"true"`
	Verbose       string `split_words:"true"`
	LogLevel      string `split_words:"true"`
	PriceURL      string `split_words:"true"`
}

// ApplyEnvironment applies environment variable overrides to the configuration.
func ApplyEnvironment(cfg *Config) error {
	var env envOverrides
	if err := envconfig.Process(EnvPrefix, &env); err != nil {
		return fmt.Errorf("processing environment: %w", err)
	}

	if env.Home != "" {
		cfg.Home = env.Home
	}
	if env.BackendURL != "" {
		cfg.Backend.URL = strings.TrimSpace(env.BackendURL)
	}
	if env.Network != "" {
		cfg.Backend.Network = strings.ToLower(env.Network)
	}
	if env.StorageDriver != "" {
		cfg.Storage.Driver = strings.ToLower(env.StorageDriver)
	}
	if env.Passphrase != "" {
		cfg.Storage.Passphrase = env.Passphrase
	}
	if env.OutputFormat != "" {
		cfg.Output.DefaultFormat = strings.ToLower(env.OutputFormat)
	}
	if env.Verbose != "" {
		cfg.Output.Verbose = parseBool(env.Verbose)
	}
	if env.LogLevel != "" {
		cfg.Logging.Level = strings.ToLower(env.LogLevel)
	}
	if env.PriceURL != "" {
		cfg.Price.URL = strings.TrimSpace(env.PriceURL)
	}

	// NO_COLOR disables colored output
	if _, ok := os.LookupEnv(EnvNoColor); ok {
		cfg.Output.Color = "never"
	}

	return nil
}

// parseBool parses a boolean string value.
func parseBool(s string) bool {
	s = strings.ToLower(strings.TrimSpace(s))
	if s == "1" || s == "true" || s == "yes" || s == "on" {
		return true
	}
	b, _ := strconv.ParseBool(s)
	return b
}

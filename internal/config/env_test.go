package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseBool(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name     string
		input    string
		expected bool
	}{
		{"1", "1", true},
		{"true", "true", true},
		{"TRUE", "TRUE", true},
		{"yes", "yes", true},
		{"on", "on", true},
		{"with spaces", "  true  ", true},
		{"0", "0", false},
		{"false", "false", false},
		{"no", "no", false},
		{"empty", "", false},
		{"random", "random", false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()
			assert.Equal(t, tc.expected, parseBool(tc.input))
		})
	}
}

// Tests below use t.Setenv and cannot run in parallel.

func TestApplyEnvironment(t *testing.T) {
	t.Setenv(EnvHome, "/tmp/skibidi-home")
	t.Setenv(EnvBackendURL, " http://localhost:8090 ")
	t.Setenv("SKIBIDI_NETWORK", "MAINNET")
	t.Setenv("SKIBIDI_STORAGE_DRIVER", "Bolt")
	t.Setenv(EnvPassphrase, "hunter2")
	t.Setenv("SKIBIDI_OUTPUT_FORMAT", "JSON")
	t.Setenv("SKIBIDI_LOG_LEVEL", "DEBUG")
	t.Setenv("SKIBIDI_PRICE_URL", "http://localhost:8090")

	cfg := Defaults()
	require.NoError(t, ApplyEnvironment(cfg))

	assert.Equal(t, "/tmp/skibidi-home", cfg.Home)
	assert.Equal(t, "http://localhost:8090", cfg.Backend.URL)
	assert.Equal(t, "mainnet", cfg.Backend.Network)
	assert.Equal(t, StorageDriverBolt, cfg.Storage.Driver)
	assert.Equal(t, "hunter2", cfg.Storage.Passphrase)
	assert.Equal(t, "json", cfg.Output.DefaultFormat)
	assert.Equal(t, "debug", cfg.Logging.Level)
	assert.Equal(t, "http://localhost:8090", cfg.Price.URL)
}

func TestApplyEnvironment_EmptyLeavesDefaults(t *testing.T) {
	t.Setenv(EnvBackendURL, "")

	cfg := Defaults()
	require.NoError(t, ApplyEnvironment(cfg))

	assert.Equal(t, DefaultBackendURL, cfg.Backend.URL)
	assert.Equal(t, StorageDriverFile, cfg.Storage.Driver)
}

func TestApplyEnvironment_NoColor(t *testing.T) {
	t.Setenv(EnvNoColor, "")

	cfg := Defaults()
	require.NoError(t, ApplyEnvironment(cfg))
	assert.Equal(t, "never", cfg.Output.Color)
}

func TestApplyEnvironment_VerboseValues(t *testing.T) {
	tests := []struct {
		value    string
		expected bool
	}{
		{"1", true},
		{"yes", true},
		{"false", false},
		{"nope", false},
	}

	for _, tc := range tests {
		t.Run(tc.value, func(t *testing.T) {
			t.Setenv("SKIBIDI_VERBOSE", tc.value)

			cfg := Defaults()
			require.NoError(t, ApplyEnvironment(cfg))
			assert.Equal(t, tc.expected, cfg.Output.Verbose)
		})
	}
}

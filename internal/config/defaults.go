package config

// DefaultBackendURL is the hosted wallet backend.
const DefaultBackendURL = "https://api.skibidi.cash"

// DefaultPriceURL is the CoinGecko API root used for the BTC/USD spot price.
const DefaultPriceURL = "https://api.coingecko.com/api/v3"

// DefaultFallbackUSD is shown instead of $0.00 when the price API is down.
const DefaultFallbackUSD = 65000.0

// Defaults returns the default configuration.
func Defaults() *Config {
	return &Config{
		Version: 1,
		Home:    "~/.skibidi",
		Backend: BackendConfig{
			URL:            DefaultBackendURL,
			Network:        "testnet",
			TimeoutSeconds: 30,
		},
		Price: PriceConfig{
			URL:               DefaultPriceURL,
			StalenessMinutes:  5,
			FallbackUSD:       DefaultFallbackUSD,
			RequestsPerMinute: 10,
		},
		Storage: StorageConfig{
			Driver:  StorageDriverFile,
			Encrypt: false,
		},
		Session: SessionConfig{
			FocusDebounceMs:      300,
			WatchIntervalSeconds: 30,
		},
		Wizard: WizardConfig{
			GenerateDelayMs: 1500,
			CompleteDelayMs: 1000,
		},
		Output: OutputConfig{
			DefaultFormat: "auto",
			Color:         "auto",
			Verbose:       false,
		},
		Logging: LoggingConfig{
			Level: "error",
			File:  "~/.skibidi/skibidi.log",
		},
	}
}

package config

import (
	"log"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/spf13/viper"
)

type Config struct {
	Providers  ProvidersConfig  `mapstructure:"providers"`
	API        APIConfig        `mapstructure:"api"`
	Warrants   WarrantsConfig   `mapstructure:"warrants"`
	Poll       PollConfig       `mapstructure:"poll"`
	Log        LogConfig        `mapstructure:"log"`
	Postgres   PostgresConfig   `mapstructure:"postgres"`
	LocalStore LocalStoreConfig `mapstructure:"localstore"`
}

// ProvidersConfig groups the upstream market-data endpoints, one per asset class.
type ProvidersConfig struct {
	Crypto ProviderConfig `mapstructure:"crypto"`
	Stock  ProviderConfig `mapstructure:"stock"`
	Forex  ProviderConfig `mapstructure:"forex"`
}

// ProviderConfig describes a single upstream data source.
type ProviderConfig struct {
	Name    string        `mapstructure:"name"`
	BaseURL string        `mapstructure:"base_url"`
	APIKey  string        `mapstructure:"api_key"`
	Enabled bool          `mapstructure:"enabled"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// APIConfig points at the first-party OmniMarket backend.
type APIConfig struct {
	BaseURL string        `mapstructure:"base_url"`
	Timeout time.Duration `mapstructure:"timeout"`
}

// WarrantsConfig holds the warrants monitoring WebSocket endpoint and its
// reconnect policy.
type WarrantsConfig struct {
	URL         string        `mapstructure:"url"`
	BackoffBase time.Duration `mapstructure:"backoff_base"`
	BackoffCap  time.Duration `mapstructure:"backoff_cap"`
	MaxAttempts int           `mapstructure:"max_attempts"`
}

// PollConfig drives the real-time update loop.
type PollConfig struct {
	Interval time.Duration `mapstructure:"interval"`
	Symbols  []string      `mapstructure:"symbols"`
}

// LogConfig defines the logger configuration options.
type LogConfig struct {
	Level       string `mapstructure:"level"`       // log level: "debug", "info", "warn", "error"
	Format      string `mapstructure:"format"`      // log format: "json" or "console"
	OutputFile  string `mapstructure:"output_file"` // file path to store logs (optional)
	Environment string `mapstructure:"environment"` // environment: "dev" or "prod"
}

// LocalStoreConfig locates the durable local key-value store.
type LocalStoreConfig struct {
	Path string `mapstructure:"path"`
}

// Load loads application configuration using Viper.
// It reads from config.yaml and overrides with environment variables.
func Load() *Config {
	v := viper.New()

	v.SetConfigName("config") // config.yaml
	v.SetConfigType("yaml")

	ex, _ := os.Executable()
	if strings.Contains(ex, "go-build") {
		pwd, _ := os.Getwd()
		v.AddConfigPath(filepath.Join(pwd, "../../config"))
	} else {
		v.AddConfigPath(filepath.Join(filepath.Dir(ex), "../config"))
	}

	// Support environment variables with dot notation (e.g., WARRANTS_URL)
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	if err := v.ReadInConfig(); err != nil {
		log.Fatalf("failed to read config: %v", err)
	}

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		log.Fatalf("failed to unmarshal config: %v", err)
	}

	return &cfg
}

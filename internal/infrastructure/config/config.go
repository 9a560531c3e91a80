// Package config provides configuration management for the application.
// It follows the 12-Factor App methodology by loading configuration
// from environment variables and supporting external configuration files.
//
// 12-Factor App compliance:
//   - III. Config: Store config in the environment
//   - Sensitive data (the provider API key) only via environment
//   - No config files checked into version control
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all application configuration.
// All fields are populated from environment variables or config files.
type Config struct {
	// App contains application-level configuration.
	App AppConfig `mapstructure:"app"`

	// Server contains HTTP server configuration.
	Server ServerConfig `mapstructure:"server"`

	// Log contains logging configuration.
	Log LogConfig `mapstructure:"log"`

	// Provider contains AI estimation provider configuration.
	Provider ProviderConfig `mapstructure:"provider"`

	// Pricing contains currency-conversion overlays.
	Pricing PricingConfig `mapstructure:"pricing"`

	// Shipping contains the shipping rate profiles.
	Shipping ShippingConfig `mapstructure:"shipping"`
}

// AppConfig contains application-level configuration.
type AppConfig struct {
	// Name of the application.
	Name string `mapstructure:"name"`

	// Environment the application is running in (development, staging, production).
	Environment string `mapstructure:"environment"`

	// Version of the application.
	Version string `mapstructure:"version"`
}

// ServerConfig contains HTTP server configuration.
type ServerConfig struct {
	// Host is the server bind address.
	Host string `mapstructure:"host"`

	// Port is the server port.
	Port int `mapstructure:"port"`

	// ReadTimeout is the maximum duration for reading the entire request.
	ReadTimeout time.Duration `mapstructure:"read_timeout"`

	// WriteTimeout is the maximum duration before timing out response writes.
	WriteTimeout time.Duration `mapstructure:"write_timeout"`

	// IdleTimeout is the keep-alive idle limit.
	IdleTimeout time.Duration `mapstructure:"idle_timeout"`

	// RequestTimeout bounds end-to-end request handling, including
	// provider retries and backoff.
	RequestTimeout time.Duration `mapstructure:"request_timeout"`

	// ShutdownTimeout is the maximum duration for graceful server shutdown.
	ShutdownTimeout time.Duration `mapstructure:"shutdown_timeout"`

	// CORSAllowedOrigins is a list of allowed origins for CORS.
	CORSAllowedOrigins []string `mapstructure:"cors_allowed_origins"`
}

// LogConfig contains logging configuration.
type LogConfig struct {
	// Level is the minimum log level.
	Level string `mapstructure:"level"`

	// Format is json or console.
	Format string `mapstructure:"format"`
}

// ProviderConfig contains AI estimation provider configuration.
type ProviderConfig struct {
	// BaseURL is the provider origin.
	BaseURL string `mapstructure:"base_url"`

	// APIKey authenticates provider calls. Environment only.
	APIKey string `mapstructure:"api_key"`

	// Model is the completion model name.
	Model string `mapstructure:"model"`

	// RequestTimeout bounds a single provider call.
	RequestTimeout time.Duration `mapstructure:"request_timeout"`

	// MaxAttempts is the retry budget per description.
	MaxAttempts int `mapstructure:"max_attempts"`

	// BackoffBase is the exponential backoff unit delay.
	BackoffBase time.Duration `mapstructure:"backoff_base"`

	// Concurrency bounds in-flight provider calls during batch estimation.
	Concurrency int `mapstructure:"concurrency"`
}

// PricingConfig contains the conversion overlays applied before margin.
type PricingConfig struct {
	// ExchangeRate is the base KES-per-USD rate.
	ExchangeRate float64 `mapstructure:"exchange_rate"`

	// BankMarkupPct is the bank's exchange-rate spread.
	BankMarkupPct float64 `mapstructure:"bank_markup_pct"`

	// CardFeePct is the card/international-transaction fee.
	CardFeePct float64 `mapstructure:"card_fee_pct"`
}

// ShippingConfig selects and tunes the shipping rate profile.
type ShippingConfig struct {
	// Profile selects the rate model: "flat-per-kg-kes" or "graduated-usd".
	Profile string `mapstructure:"profile"`

	// BaseRateKES is the flat charge up to 1 kg (flat profile).
	BaseRateKES float64 `mapstructure:"base_rate_kes"`

	// PerKgRateKES is the per-kg rate above 1 kg (flat profile).
	PerKgRateKES float64 `mapstructure:"per_kg_rate_kes"`

	// LastMileFeeKES is the fixed hub-to-door fee (flat profile).
	LastMileFeeKES float64 `mapstructure:"last_mile_fee_kes"`
}

// Load loads the configuration from environment variables and config files.
// Precedence (highest to lowest):
//  1. Environment variables (prefix QGO)
//  2. Config file (if present)
//  3. Default values
//
// Returns:
//   - *Config: the loaded configuration
//   - error: any error encountered during loading
func Load() (*Config, error) {
	v := viper.New()

	setDefaults(v)

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./configs")
	v.AddConfigPath("/etc/quote-go")

	if err := v.ReadInConfig(); err != nil {
		// Config file not found is fine; env vars and defaults apply.
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.SetEnvPrefix("QGO")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	bindEnvVars(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	return &cfg, nil
}

// setDefaults sets default configuration values.
func setDefaults(v *viper.Viper) {
	// App defaults
	v.SetDefault("app.name", "quote-go")
	v.SetDefault("app.environment", "development")
	v.SetDefault("app.version", "1.0.0")

	// Server defaults
	v.SetDefault("server.host", "0.0.0.0")
	v.SetDefault("server.port", 8080)
	v.SetDefault("server.read_timeout", 15*time.Second)
	v.SetDefault("server.write_timeout", 30*time.Second)
	v.SetDefault("server.idle_timeout", 60*time.Second)
	v.SetDefault("server.request_timeout", 30*time.Second)
	v.SetDefault("server.shutdown_timeout", 30*time.Second)
	v.SetDefault("server.cors_allowed_origins", []string{"*"})

	// Log defaults
	v.SetDefault("log.level", "info")
	v.SetDefault("log.format", "json")

	// Provider defaults
	v.SetDefault("provider.base_url", "https://api.openai.com")
	v.SetDefault("provider.model", "gpt-4o-mini")
	v.SetDefault("provider.request_timeout", 10*time.Second)
	v.SetDefault("provider.max_attempts", 3)
	v.SetDefault("provider.backoff_base", time.Second)
	v.SetDefault("provider.concurrency", 4)

	// Pricing defaults
	v.SetDefault("pricing.exchange_rate", 130.0)
	v.SetDefault("pricing.bank_markup_pct", 0.02)
	v.SetDefault("pricing.card_fee_pct", 0.04)

	// Shipping defaults
	v.SetDefault("shipping.profile", "flat-per-kg-kes")
	v.SetDefault("shipping.base_rate_kes", 2080.0)
	v.SetDefault("shipping.per_kg_rate_kes", 2080.0)
	v.SetDefault("shipping.last_mile_fee_kes", 650.0)
}

// bindEnvVars binds specific environment variables to configuration keys.
func bindEnvVars(v *viper.Viper) {
	// These are explicitly bound for clarity.
	v.BindEnv("app.environment", "QGO_ENVIRONMENT")
	v.BindEnv("server.port", "PORT") // Common convention
	v.BindEnv("provider.api_key", "QGO_PROVIDER_API_KEY")
}

// MustLoad loads the configuration and panics on error.
// Use this in application entry points where configuration is required.
func MustLoad() *Config {
	cfg, err := Load()
	if err != nil {
		panic(fmt.Sprintf("failed to load config: %v", err))
	}
	return cfg
}

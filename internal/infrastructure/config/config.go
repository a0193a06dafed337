package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"github.com/spf13/viper"
)

// Config holds all application configuration
type Config struct {
	App   AppConfig
	Log   LogConfig
	Store StoreConfig
	HTTP  HTTPConfig
}

// AppConfig holds application-specific settings
type AppConfig struct {
	Name string
	Env  string
	Port string
}

// LogConfig holds logging configuration
type LogConfig struct {
	Level  string // debug, info, warn, error
	Format string // json, console
	Output string // stdout, stderr, or file path
}

// StoreConfig holds storefront business settings
type StoreConfig struct {
	Currency              string
	MinimumOrder          string // decimal string, e.g. "299.90"
	FreeShippingThreshold string // decimal string, e.g. "499.00"
	CartStorageKey        string
	CatalogPath           string
	DatabasePath          string
}

// HTTPConfig holds HTTP server configuration
type HTTPConfig struct {
	ReadTimeout      time.Duration
	WriteTimeout     time.Duration
	IdleTimeout      time.Duration
	CORSAllowOrigins []string
}

// Load loads configuration from TOML file and environment variables
// Priority (highest to lowest):
// 1. Environment variables with STOREFRONT_ prefix (e.g. STOREFRONT_STORE_MINIMUM_ORDER)
// 2. config.toml
// 3. Built-in defaults
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("toml")
	v.AddConfigPath(".")
	v.AddConfigPath("/app")

	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found is OK, we'll use defaults and env vars
	}

	v.SetEnvPrefix("STOREFRONT")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	cfg := &Config{
		App: AppConfig{
			Name: v.GetString("app.name"),
			Env:  v.GetString("app.env"),
			Port: v.GetString("app.port"),
		},
		Log: LogConfig{
			Level:  v.GetString("log.level"),
			Format: v.GetString("log.format"),
			Output: v.GetString("log.output"),
		},
		Store: StoreConfig{
			Currency:              v.GetString("store.currency"),
			MinimumOrder:          v.GetString("store.minimum_order"),
			FreeShippingThreshold: v.GetString("store.free_shipping_threshold"),
			CartStorageKey:        v.GetString("store.cart_storage_key"),
			CatalogPath:           v.GetString("store.catalog_path"),
			DatabasePath:          v.GetString("store.database_path"),
		},
		HTTP: HTTPConfig{
			ReadTimeout:      v.GetDuration("http.read_timeout"),
			WriteTimeout:     v.GetDuration("http.write_timeout"),
			IdleTimeout:      v.GetDuration("http.idle_timeout"),
			CORSAllowOrigins: v.GetStringSlice("http.cors_allow_origins"),
		},
	}

	applyDefaults(cfg)

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

// applyDefaults sets default values for any empty config fields
func applyDefaults(cfg *Config) {
	if cfg.App.Name == "" {
		cfg.App.Name = "storefront"
	}
	if cfg.App.Env == "" {
		cfg.App.Env = "development"
	}
	if cfg.App.Port == "" {
		cfg.App.Port = "8080"
	}
	if cfg.Log.Level == "" {
		cfg.Log.Level = "info"
	}
	if cfg.Log.Format == "" {
		cfg.Log.Format = "console"
	}
	if cfg.Log.Output == "" {
		cfg.Log.Output = "stdout"
	}
	if cfg.Store.Currency == "" {
		cfg.Store.Currency = "BRL"
	}
	if cfg.Store.MinimumOrder == "" {
		cfg.Store.MinimumOrder = "299.90"
	}
	if cfg.Store.FreeShippingThreshold == "" {
		cfg.Store.FreeShippingThreshold = "499.00"
	}
	if cfg.Store.CartStorageKey == "" {
		cfg.Store.CartStorageKey = "vape-cart"
	}
	if cfg.Store.CatalogPath == "" {
		cfg.Store.CatalogPath = "data/catalog.json"
	}
	if cfg.Store.DatabasePath == "" {
		cfg.Store.DatabasePath = "storefront.db"
	}
	if cfg.HTTP.ReadTimeout == 0 {
		cfg.HTTP.ReadTimeout = 15 * time.Second
	}
	if cfg.HTTP.WriteTimeout == 0 {
		cfg.HTTP.WriteTimeout = 15 * time.Second
	}
	if cfg.HTTP.IdleTimeout == 0 {
		cfg.HTTP.IdleTimeout = 60 * time.Second
	}
}

// validate performs validation on the configuration
func (c *Config) validate() error {
	minimum, err := decimal.NewFromString(c.Store.MinimumOrder)
	if err != nil {
		return fmt.Errorf("store.minimum_order is not a valid decimal: %w", err)
	}
	if minimum.IsNegative() {
		return fmt.Errorf("store.minimum_order cannot be negative")
	}

	threshold, err := decimal.NewFromString(c.Store.FreeShippingThreshold)
	if err != nil {
		return fmt.Errorf("store.free_shipping_threshold is not a valid decimal: %w", err)
	}
	if threshold.IsNegative() {
		return fmt.Errorf("store.free_shipping_threshold cannot be negative")
	}

	if c.Store.CartStorageKey == "" {
		return fmt.Errorf("store.cart_storage_key cannot be empty")
	}

	return nil
}

// MinimumOrderDecimal returns the configured minimum order as a decimal
// Load has already validated the string, so parse failures cannot occur
func (s *StoreConfig) MinimumOrderDecimal() decimal.Decimal {
	d, _ := decimal.NewFromString(s.MinimumOrder)
	return d
}

package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/spf13/viper"
)

// ItemConfig identifies one item of the price watch list
type ItemConfig struct {
	MarketHashName string `mapstructure:"market_hash_name"`
	AppID          int    `mapstructure:"appid"`
}

// Config holds all configuration for the market fetcher CLI
type Config struct {
	// Market client options. Unknown currencies and formats fall back to the defaults
	Currency string `mapstructure:"currency"`
	Format   string `mapstructure:"format"`

	// BaseURL of the market host (configurable for testing)
	BaseURL string `mapstructure:"base_url"`

	// Cookie is the steamLoginSecure value used by the account endpoints
	Cookie string `mapstructure:"steam_cookie"`

	// CDNFile is an optional yaml table of Counter-Strike image URLs
	CDNFile string `mapstructure:"cdn_file"`

	// RequestsPerSecond caps the request rate; 0 uses the per-endpoint defaults
	RequestsPerSecond float64       `mapstructure:"requests_per_second"`
	Timeout           time.Duration `mapstructure:"timeout"`

	LogLevel  string `mapstructure:"log_level"`
	LogFormat string `mapstructure:"log_format"`

	// Watchlist is priced by the batch command
	Watchlist []ItemConfig `mapstructure:"watchlist"`
}

// Load reads configuration from environment variables and optional config file.
// Environment variables take precedence over config file values.
//
// Recognized environment variables:
//   - MARKET_CURRENCY (default USD)
//   - MARKET_FORMAT (default json)
//   - MARKET_BASE_URL (optional, defaults to production)
//   - STEAM_COOKIE
//   - MARKET_CDN_FILE
//   - MARKET_REQUESTS_PER_SECOND
//   - MARKET_TIMEOUT (e.g. 30s)
//   - LOG_LEVEL, LOG_FORMAT
func Load() (*Config, error) {
	return LoadFrom(viper.New())
}

// LoadFrom is Load on a caller-provided viper instance, so command-line flags bound to v
// take part in the lookup
func LoadFrom(v *viper.Viper) (*Config, error) {
	v.SetDefault("currency", "USD")
	v.SetDefault("format", "json")
	v.SetDefault("base_url", "https://steamcommunity.com")
	v.SetDefault("requests_per_second", 0)
	v.SetDefault("timeout", 30*time.Second)
	v.SetDefault("log_level", "info")
	v.SetDefault("log_format", "text")

	// An explicitly named file must exist; the search paths are optional
	explicit := v.ConfigFileUsed() != ""
	if !explicit {
		v.SetConfigName("config")
		v.SetConfigType("yaml")
		v.AddConfigPath(".")
		v.AddConfigPath("$HOME/.marketfetcher")
	}

	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if explicit || !errors.As(err, &notFound) {
			return nil, fmt.Errorf("failed to read config file: %w", err)
		}
	}

	v.BindEnv("currency", "MARKET_CURRENCY")
	v.BindEnv("format", "MARKET_FORMAT")
	v.BindEnv("base_url", "MARKET_BASE_URL")
	v.BindEnv("steam_cookie", "STEAM_COOKIE")
	v.BindEnv("cdn_file", "MARKET_CDN_FILE")
	v.BindEnv("requests_per_second", "MARKET_REQUESTS_PER_SECOND")
	v.BindEnv("timeout", "MARKET_TIMEOUT")
	v.BindEnv("log_level", "LOG_LEVEL")
	v.BindEnv("log_format", "LOG_FORMAT")

	config := &Config{}
	if err := v.Unmarshal(config); err != nil {
		return nil, fmt.Errorf("failed to unmarshal config: %w", err)
	}

	if config.RequestsPerSecond < 0 {
		return nil, fmt.Errorf("invalid configuration: requests_per_second must not be negative")
	}
	if config.Timeout < 0 {
		return nil, fmt.Errorf("invalid configuration: timeout must not be negative")
	}
	for i, item := range config.Watchlist {
		if item.MarketHashName == "" || item.AppID <= 0 {
			return nil, fmt.Errorf("invalid configuration: watchlist entry %d needs market_hash_name and appid", i)
		}
	}

	return config, nil
}

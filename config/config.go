package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server    ServerConfig
	Amazon    AmazonConfig
	Retailers RetailersConfig
	Cache     CacheConfig
	Matching  MatchingConfig
	Analysis  AnalysisConfig
	RateLimit RateLimitConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// AmazonConfig holds Amazon lookup service configuration
type AmazonConfig struct {
	BaseURL     string `mapstructure:"base_url"`
	SearchLimit int    `mapstructure:"search_limit"`
}

// RetailersConfig maps each supported retailer to its search endpoint
type RetailersConfig struct {
	Walmart   string `mapstructure:"walmart"`
	Target    string `mapstructure:"target"`
	Walgreens string `mapstructure:"walgreens"`
}

// Endpoints returns the configured retailer endpoints as a map, omitting
// retailers with no URL.
func (r RetailersConfig) Endpoints() map[string]string {
	endpoints := make(map[string]string)
	if r.Walmart != "" {
		endpoints["walmart"] = r.Walmart
	}
	if r.Target != "" {
		endpoints["target"] = r.Target
	}
	if r.Walgreens != "" {
		endpoints["walgreens"] = r.Walgreens
	}
	return endpoints
}

// CacheConfig holds lookup cache configuration
type CacheConfig struct {
	TTL        time.Duration `mapstructure:"ttl"`
	MaxEntries int           `mapstructure:"max_entries"`
}

// MatchingConfig holds matching engine configuration
type MatchingConfig struct {
	MinScore           float64 `mapstructure:"min_score"`
	MinPriceRatio      float64 `mapstructure:"min_price_ratio"`
	MaxPriceRatio      float64 `mapstructure:"max_price_ratio"`
	EnableDebugLogging bool    `mapstructure:"enable_debug_logging"`
}

// AnalysisConfig holds deal analysis configuration
type AnalysisConfig struct {
	Workers         int     `mapstructure:"workers"`
	FeeRate         float64 `mapstructure:"fee_rate"`
	MinPrice        float64 `mapstructure:"min_price"`
	MinROI          float64 `mapstructure:"min_roi"`
	MinMonthlySales int     `mapstructure:"min_monthly_sales"`
}

// RateLimitConfig holds per-client request rate limiting configuration
type RateLimitConfig struct {
	PerIP int `mapstructure:"per_ip"` // requests per minute
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/flipradar/")

	v.SetEnvPrefix("FLIPRADAR")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	setDefaults(v)

	// Config file is optional - env vars and defaults cover everything
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	if err := validate(&config); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}

	return &config, nil
}

// setDefaults sets default configuration values
func setDefaults(v *viper.Viper) {
	// Server defaults
	v.SetDefault("server.port", "8080")
	v.SetDefault("server.environment", "development")
	v.SetDefault("server.allowed_origins", []string{"http://localhost:3000"})

	// Amazon lookup defaults
	v.SetDefault("amazon.base_url", "http://localhost:8081/api/amazon")
	v.SetDefault("amazon.search_limit", 10)

	// Retailer search endpoints
	v.SetDefault("retailers.walmart", "http://localhost:8081/api/walmart")
	v.SetDefault("retailers.target", "http://localhost:8081/api/target")
	v.SetDefault("retailers.walgreens", "http://localhost:8081/api/walgreens")

	// Cache defaults
	v.SetDefault("cache.ttl", "5m")
	v.SetDefault("cache.max_entries", 200)

	// Matching defaults
	v.SetDefault("matching.min_score", 0.2)
	v.SetDefault("matching.min_price_ratio", 0.4)
	v.SetDefault("matching.max_price_ratio", 3.0)
	v.SetDefault("matching.enable_debug_logging", false)

	// Analysis defaults
	v.SetDefault("analysis.workers", 4)
	v.SetDefault("analysis.fee_rate", 0.15)
	v.SetDefault("analysis.min_price", 0)
	v.SetDefault("analysis.min_roi", 25)
	v.SetDefault("analysis.min_monthly_sales", 100)

	// Rate limit defaults
	v.SetDefault("ratelimit.per_ip", 120)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Amazon.BaseURL == "" {
		return fmt.Errorf("amazon base URL is required (set FLIPRADAR_AMAZON_BASE_URL)")
	}

	if len(config.Retailers.Endpoints()) == 0 {
		return fmt.Errorf("at least one retailer endpoint must be configured")
	}

	if config.Matching.MinPriceRatio > config.Matching.MaxPriceRatio {
		return fmt.Errorf("matching.min_price_ratio (%v) must not exceed matching.max_price_ratio (%v)",
			config.Matching.MinPriceRatio, config.Matching.MaxPriceRatio)
	}

	if config.Analysis.FeeRate < 0 || config.Analysis.FeeRate >= 1 {
		return fmt.Errorf("analysis.fee_rate must be in [0, 1), got: %v", config.Analysis.FeeRate)
	}

	return nil
}

package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/spf13/viper"
)

// Config holds all configuration for the application
type Config struct {
	Server  ServerConfig
	Catalog CatalogConfig
	Cache   CacheConfig
	Engine  EngineConfig
	Stores  []StoreConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// CatalogConfig holds upstream catalog service configuration
type CatalogConfig struct {
	BaseURL           string `mapstructure:"base_url"`
	APIKey            string `mapstructure:"api_key"`
	RequestsPerMinute int    `mapstructure:"requests_per_minute"`
}

// CacheConfig holds catalog cache configuration
type CacheConfig struct {
	TTL       time.Duration `mapstructure:"ttl"`
	MaxStores int           `mapstructure:"max_stores"`
}

// EngineConfig holds decision engine configuration
type EngineConfig struct {
	MultiStoreEnabled          bool     `mapstructure:"multi_store_enabled"`
	AssumeSatisfiedWhenUnknown []string `mapstructure:"assume_satisfied_when_unknown"`
	MinRelevance               float64  `mapstructure:"min_relevance"`
	EnableFuzzyMatching        bool     `mapstructure:"enable_fuzzy_matching"`
	FuzzyEditDistance          int      `mapstructure:"fuzzy_edit_distance"`
	EnableDebugLogging         bool     `mapstructure:"enable_debug_logging"`
}

// StoreConfig describes one known store the host can scope requests to
type StoreConfig struct {
	Name     string `mapstructure:"name"`
	Location string `mapstructure:"location"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/cartwise/")

	// Environment variable settings
	v.SetEnvPrefix("CARTWISE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))
	v.AutomaticEnv()

	// Set default values
	setDefaults(v)

	// Read config file (optional - will use env vars if file doesn't exist)
	if err := v.ReadInConfig(); err != nil {
		if _, ok := err.(viper.ConfigFileNotFoundError); !ok {
			return nil, fmt.Errorf("error reading config file: %w", err)
		}
		// Config file not found; using environment variables and defaults
	}

	var config Config
	if err := v.Unmarshal(&config); err != nil {
		return nil, fmt.Errorf("unable to decode config: %w", err)
	}

	// Validate configuration
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

	// Catalog service defaults. The api_key default exists so the env
	// binding is visible to Unmarshal; the key itself is optional.
	v.SetDefault("catalog.base_url", "http://localhost:9090")
	v.SetDefault("catalog.api_key", "")
	v.SetDefault("catalog.requests_per_minute", 60)

	// Cache defaults
	v.SetDefault("cache.ttl", "15m")
	v.SetDefault("cache.max_stores", 64)

	// Engine defaults: conservative dietary policy, multi-store on,
	// relevance requires every item token to match
	v.SetDefault("engine.multi_store_enabled", true)
	v.SetDefault("engine.assume_satisfied_when_unknown", []string{})
	v.SetDefault("engine.min_relevance", 1.0)
	v.SetDefault("engine.enable_fuzzy_matching", true)
	v.SetDefault("engine.fuzzy_edit_distance", 1)
	v.SetDefault("engine.enable_debug_logging", false)

	// Known store roster
	v.SetDefault("stores", []map[string]interface{}{
		{"name": "Walmart", "location": "654 Super Center"},
		{"name": "Target", "location": "321 Shopping Center"},
		{"name": "Safeway", "location": "789 Grocery Ave"},
		{"name": "Whole Foods", "location": "456 Market St"},
		{"name": "Trader Joe's", "location": "123 Main St"},
	})
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Catalog.BaseURL == "" {
		return fmt.Errorf("catalog service base URL is required (set CARTWISE_CATALOG_BASE_URL)")
	}

	if config.Engine.MinRelevance <= 0 || config.Engine.MinRelevance > 1 {
		return fmt.Errorf("engine min_relevance must be in (0, 1], got: %v", config.Engine.MinRelevance)
	}

	if config.Engine.FuzzyEditDistance < 0 {
		return fmt.Errorf("engine fuzzy_edit_distance must be >= 0, got: %d", config.Engine.FuzzyEditDistance)
	}

	if len(config.Stores) == 0 {
		return fmt.Errorf("at least one known store must be configured")
	}

	return nil
}

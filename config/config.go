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
	Catalog   CatalogConfig
	Extractor ExtractorConfig
	Cache     CacheConfig
	Matching  MatchingConfig
}

// ServerConfig holds server-related configuration
type ServerConfig struct {
	Port           string   `mapstructure:"port"`
	Environment    string   `mapstructure:"environment"`
	AllowedOrigins []string `mapstructure:"allowed_origins"`
}

// CatalogConfig holds catalog input configuration
type CatalogConfig struct {
	Path string `mapstructure:"path"`
}

// ExtractorConfig holds external intent-extraction configuration.
// Provider "none" disables the external capability entirely; the engine then
// runs on its rule-based resolver alone.
type ExtractorConfig struct {
	Provider string        `mapstructure:"provider"` // "openai" or "none"
	APIKey   string        `mapstructure:"api_key"`
	BaseURL  string        `mapstructure:"base_url"`
	Model    string        `mapstructure:"model"`
	Timeout  time.Duration `mapstructure:"timeout"`
}

// CacheConfig holds result-cache configuration
type CacheConfig struct {
	TTL time.Duration `mapstructure:"ttl"`
}

// MatchingConfig holds engine debugging configuration
type MatchingConfig struct {
	EnableDebugLogging bool `mapstructure:"enable_debug_logging"`
}

// Load loads configuration from environment variables and config files
func Load() (*Config, error) {
	v := viper.New()

	// Set config name and paths
	v.SetConfigName("config")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	v.AddConfigPath("./config")
	v.AddConfigPath("/etc/shopmate/")

	// Environment variable settings
	v.SetEnvPrefix("SHOPMATE")
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
	v.SetDefault("server.allowed_origins", []string{"http://localhost:*"})

	// Catalog defaults
	v.SetDefault("catalog.path", "data/products.json")

	// Extractor defaults
	v.SetDefault("extractor.provider", "none")
	v.SetDefault("extractor.api_key", "")
	v.SetDefault("extractor.base_url", "https://api.openai.com/v1")
	v.SetDefault("extractor.model", "gpt-4o-mini")
	v.SetDefault("extractor.timeout", "30s")

	// Cache defaults
	v.SetDefault("cache.ttl", "5m")

	// Matching defaults
	v.SetDefault("matching.enable_debug_logging", false)
}

// validate validates the configuration
func validate(config *Config) error {
	if config.Extractor.Provider != "none" && config.Extractor.Provider != "openai" {
		return fmt.Errorf("extractor provider must be 'openai' or 'none', got: %s", config.Extractor.Provider)
	}

	if config.Extractor.Provider == "openai" && config.Extractor.APIKey == "" {
		return fmt.Errorf("extractor API key is required when provider is 'openai' (set SHOPMATE_EXTRACTOR_API_KEY)")
	}

	if config.Catalog.Path == "" {
		return fmt.Errorf("catalog path is required")
	}

	return nil
}

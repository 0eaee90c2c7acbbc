package config

import (
	"errors"

	"github.com/slideforge/layout-engine/internal/domain"
)

// Config is the layout engine's service configuration.
type Config struct {
	Service    ServiceConfig    `yaml:"service"`
	Catalog    CatalogConfig    `yaml:"catalog"`
	Vocabulary VocabularyConfig `yaml:"vocabulary"`
	Logging    LoggingConfig    `yaml:"logging"`
	Auth       AuthConfig       `yaml:"auth"`
	History    HistoryConfig    `yaml:"history"`
	RateLimit  RateLimitConfig  `yaml:"rate_limit"`
}

// ServiceConfig identifies the process and its listen port.
type ServiceConfig struct {
	Name    string `yaml:"name" env:"SERVICE_NAME"`
	Version string `yaml:"version" env:"SERVICE_VERSION"`
	Port    int    `yaml:"port" env:"PORT"`
	Debug   bool   `yaml:"debug" env:"DEBUG"`
}

// CatalogConfig points at the layout metadata document.
type CatalogConfig struct {
	Path string `yaml:"path" env:"CATALOG_PATH"`
}

// VocabularyConfig points at an optional keyword table override. An empty
// path means the compiled-in vocabulary.
type VocabularyConfig struct {
	Path string `yaml:"path" env:"VOCABULARY_PATH"`
}

// LoggingConfig controls log level and output format.
type LoggingConfig struct {
	Level       string `yaml:"level" env:"LOG_LEVEL"`
	Development bool   `yaml:"development" env:"LOG_DEVELOPMENT"`
}

// AuthConfig enables bearer token auth on the API when a secret is set.
type AuthConfig struct {
	JWTSecret string `yaml:"jwt_secret" env:"JWT_SECRET"`
}

// HistoryConfig controls the recommendation history store.
type HistoryConfig struct {
	Enabled bool   `yaml:"enabled" env:"HISTORY_ENABLED"`
	Path    string `yaml:"path" env:"HISTORY_PATH"`
}

// RateLimitConfig bounds request throughput per process.
type RateLimitConfig struct {
	RPS   float64 `yaml:"rps" env:"RATE_LIMIT_RPS"`
	Burst int     `yaml:"burst" env:"RATE_LIMIT_BURST"`
}

// SetDefaults fills zero-valued fields with working defaults.
func SetDefaults(cfg *Config) {
	if cfg.Service.Name == "" {
		cfg.Service.Name = "layout-engine"
	}
	if cfg.Service.Version == "" {
		cfg.Service.Version = "dev"
	}
	if cfg.Service.Port == 0 {
		cfg.Service.Port = 8080
	}
	if cfg.Catalog.Path == "" {
		cfg.Catalog.Path = "configs/layout_catalog.json"
	}
	if cfg.Logging.Level == "" {
		cfg.Logging.Level = "info"
	}
	if cfg.History.Path == "" {
		cfg.History.Path = "layout_history.db"
	}
	if cfg.RateLimit.RPS == 0 {
		cfg.RateLimit.RPS = 50
	}
	if cfg.RateLimit.Burst == 0 {
		cfg.RateLimit.Burst = 100
	}
}

// Validate rejects configurations the service cannot start with.
func (c *Config) Validate() error {
	if c.Service.Port <= 0 || c.Service.Port > 65535 {
		return &domain.ConfigurationError{Source: "service.port", Err: errors.New("port must be in 1-65535")}
	}
	if c.Catalog.Path == "" {
		return &domain.ConfigurationError{Source: "catalog.path", Err: errors.New("catalog path is required")}
	}
	if c.RateLimit.RPS < 0 || c.RateLimit.Burst < 0 {
		return &domain.ConfigurationError{Source: "rate_limit", Err: errors.New("rate limit values must be non-negative")}
	}
	return nil
}

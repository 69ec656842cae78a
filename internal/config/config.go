package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Config holds all configuration for the launcher service.
type Config struct {
	Server   ServerConfig   `yaml:"server"`
	Database DatabaseConfig `yaml:"database"`
	Redis    RedisConfig    `yaml:"redis"`
	Meta     MetaConfig     `yaml:"meta"`
	Media    MediaConfig    `yaml:"media"`
	Logging  LoggingConfig  `yaml:"logging"`
}

// ServerConfig holds the HTTP front-door settings.
type ServerConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// DatabaseConfig holds the Postgres connection settings.
type DatabaseConfig struct {
	URL string `yaml:"url"`
}

// RedisConfig holds the upload-cache settings.
type RedisConfig struct {
	Addr     string `yaml:"addr"`
	Password string `yaml:"password"`
	DB       int    `yaml:"db"`
	CacheTTL string `yaml:"cache_ttl"` // Go duration string, default 24h
}

// MetaConfig holds Graph API settings.
type MetaConfig struct {
	BaseURL        string  `yaml:"base_url"`
	APIVersion     string  `yaml:"api_version"`
	TimeoutSeconds int     `yaml:"timeout_seconds"`
	RatePerSecond  float64 `yaml:"rate_per_second"`
	RateBurst      int     `yaml:"rate_burst"`
}

// MediaConfig tunes the upload pipeline and its polling loops.
type MediaConfig struct {
	ChunkSizeBytes        int64 `yaml:"chunk_size_bytes"`
	ReadinessAttempts     int   `yaml:"readiness_attempts"`
	ReadinessDelaySeconds int   `yaml:"readiness_delay_seconds"`
	ThumbnailAttempts     int   `yaml:"thumbnail_attempts"`
	ThumbnailDelaySeconds int   `yaml:"thumbnail_delay_seconds"`
}

// LoggingConfig holds log settings.
type LoggingConfig struct {
	Level string `yaml:"level"`
}

// CacheTTLDuration parses the configured TTL, defaulting to 24h.
func (r RedisConfig) CacheTTLDuration() time.Duration {
	if r.CacheTTL == "" {
		return 24 * time.Hour
	}
	d, err := time.ParseDuration(r.CacheTTL)
	if err != nil {
		return 24 * time.Hour
	}
	return d
}

// Load reads config from a YAML file and applies defaults.
func Load(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}

	var cfg Config
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config: %w", err)
	}

	cfg.applyDefaults()
	return &cfg, nil
}

func (c *Config) applyDefaults() {
	if c.Server.Port == 0 {
		c.Server.Port = 8080
	}
	if c.Meta.BaseURL == "" {
		c.Meta.BaseURL = "https://graph.facebook.com"
	}
	if c.Meta.APIVersion == "" {
		c.Meta.APIVersion = "v21.0"
	}
	if c.Meta.TimeoutSeconds == 0 {
		c.Meta.TimeoutSeconds = 60
	}
	if c.Meta.RatePerSecond == 0 {
		c.Meta.RatePerSecond = 5
	}
	if c.Meta.RateBurst == 0 {
		c.Meta.RateBurst = 10
	}
	if c.Media.ChunkSizeBytes == 0 {
		c.Media.ChunkSizeBytes = 10 * 1024 * 1024
	}
	if c.Media.ReadinessAttempts == 0 {
		c.Media.ReadinessAttempts = 20
	}
	if c.Media.ReadinessDelaySeconds == 0 {
		c.Media.ReadinessDelaySeconds = 3
	}
	if c.Media.ThumbnailAttempts == 0 {
		c.Media.ThumbnailAttempts = 3
	}
	if c.Media.ThumbnailDelaySeconds == 0 {
		c.Media.ThumbnailDelaySeconds = 2
	}
	if c.Logging.Level == "" {
		c.Logging.Level = "info"
	}
}

// LoadFromEnv loads configuration with environment variable overrides. A
// .env file is loaded first if present, so secrets can live there locally
// and in real env vars when deployed.
func LoadFromEnv(path string) (*Config, error) {
	_ = godotenv.Load()

	cfg, err := Load(path)
	if err != nil {
		return nil, err
	}

	if v := os.Getenv("DATABASE_URL"); v != "" {
		cfg.Database.URL = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Redis.Addr = v
	}
	if v := os.Getenv("REDIS_PASSWORD"); v != "" {
		cfg.Redis.Password = v
	}
	if v := os.Getenv("META_BASE_URL"); v != "" {
		cfg.Meta.BaseURL = v
	}
	if v := os.Getenv("META_API_VERSION"); v != "" {
		cfg.Meta.APIVersion = v
	}
	if v := os.Getenv("PORT"); v != "" {
		if port, err := strconv.Atoi(v); err == nil {
			cfg.Server.Port = port
		}
	}
	if v := os.Getenv("LOG_LEVEL"); v != "" {
		cfg.Logging.Level = v
	}

	return cfg, nil
}

package config

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the resolved runtime configuration.
type Config struct {
	HTTPAddr string
	LogLevel string

	// RedisURL selects the Redis cache; empty means in-memory.
	RedisURL string
	CacheTTL time.Duration
	// CacheMaxEntries bounds the in-memory cache.
	CacheMaxEntries int

	RateLimit       int
	RateLimitWindow time.Duration
}

type configFile struct {
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	Log struct {
		Level string `yaml:"level"`
	} `yaml:"log"`
	Cache struct {
		RedisURL   string `yaml:"redis_url"`
		TTL        string `yaml:"ttl"`
		MaxEntries int    `yaml:"max_entries"`
	} `yaml:"cache"`
	RateLimit struct {
		Requests int    `yaml:"requests"`
		Window   string `yaml:"window"`
	} `yaml:"rate_limit"`
}

func defaults() Config {
	return Config{
		HTTPAddr:        ":8080",
		LogLevel:        "info",
		CacheTTL:        24 * time.Hour,
		CacheMaxEntries: 10000,
		RateLimit:       60,
		RateLimitWindow: time.Minute,
	}
}

// Load resolves configuration as defaults, then the YAML file at path, then
// environment variables. A missing file is not an error.
func Load(path string) (Config, error) {
	cfg := defaults()

	if path != "" {
		raw, err := os.ReadFile(path)
		switch {
		case errors.Is(err, os.ErrNotExist):
		case err != nil:
			return Config{}, fmt.Errorf("read config: %w", err)
		default:
			if err := applyFile(&cfg, raw); err != nil {
				return Config{}, err
			}
		}
	}

	if err := applyEnv(&cfg); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

func applyFile(cfg *Config, raw []byte) error {
	var f configFile
	if err := yaml.Unmarshal(raw, &f); err != nil {
		return fmt.Errorf("parse config file: %w", err)
	}

	if f.Server.Addr != "" {
		cfg.HTTPAddr = f.Server.Addr
	}
	if f.Log.Level != "" {
		cfg.LogLevel = f.Log.Level
	}
	if f.Cache.RedisURL != "" {
		cfg.RedisURL = f.Cache.RedisURL
	}
	if f.Cache.TTL != "" {
		d, err := time.ParseDuration(f.Cache.TTL)
		if err != nil {
			return fmt.Errorf("parse cache.ttl: %w", err)
		}
		cfg.CacheTTL = d
	}
	if f.Cache.MaxEntries != 0 {
		cfg.CacheMaxEntries = f.Cache.MaxEntries
	}
	if f.RateLimit.Requests != 0 {
		cfg.RateLimit = f.RateLimit.Requests
	}
	if f.RateLimit.Window != "" {
		d, err := time.ParseDuration(f.RateLimit.Window)
		if err != nil {
			return fmt.Errorf("parse rate_limit.window: %w", err)
		}
		cfg.RateLimitWindow = d
	}
	return nil
}

func applyEnv(cfg *Config) error {
	if v := os.Getenv("DEAL_ANALYZER_HTTP_ADDR"); v != "" {
		cfg.HTTPAddr = v
	}
	if v := os.Getenv("DEAL_ANALYZER_LOG_LEVEL"); v != "" {
		cfg.LogLevel = v
	}
	if v := os.Getenv("DEAL_ANALYZER_REDIS_URL"); v != "" {
		cfg.RedisURL = v
	}
	if v := os.Getenv("DEAL_ANALYZER_CACHE_TTL"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse DEAL_ANALYZER_CACHE_TTL: %w", err)
		}
		cfg.CacheTTL = d
	}
	if v := os.Getenv("DEAL_ANALYZER_CACHE_MAX_ENTRIES"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse DEAL_ANALYZER_CACHE_MAX_ENTRIES: %w", err)
		}
		cfg.CacheMaxEntries = n
	}
	if v := os.Getenv("DEAL_ANALYZER_RATE_LIMIT"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return fmt.Errorf("parse DEAL_ANALYZER_RATE_LIMIT: %w", err)
		}
		cfg.RateLimit = n
	}
	if v := os.Getenv("DEAL_ANALYZER_RATE_WINDOW"); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			return fmt.Errorf("parse DEAL_ANALYZER_RATE_WINDOW: %w", err)
		}
		cfg.RateLimitWindow = d
	}
	return nil
}

// Validate checks that the resolved values are usable.
func (c Config) Validate() error {
	if c.HTTPAddr == "" {
		return fmt.Errorf("server.addr is required")
	}
	if c.RateLimit <= 0 {
		return fmt.Errorf("rate_limit.requests must be positive")
	}
	if c.RateLimitWindow <= 0 {
		return fmt.Errorf("rate_limit.window must be positive")
	}
	if c.CacheMaxEntries <= 0 {
		return fmt.Errorf("cache.max_entries must be positive")
	}
	if c.CacheTTL < 0 {
		return fmt.Errorf("cache.ttl must not be negative")
	}
	if _, err := ParseLevel(c.LogLevel); err != nil {
		return err
	}
	return nil
}

// ParseLevel maps a config level name to a slog level.
func ParseLevel(level string) (slog.Level, error) {
	switch strings.ToLower(level) {
	case "debug":
		return slog.LevelDebug, nil
	case "", "info":
		return slog.LevelInfo, nil
	case "warn", "warning":
		return slog.LevelWarn, nil
	case "error":
		return slog.LevelError, nil
	}
	return slog.LevelInfo, fmt.Errorf("unknown log level %q", level)
}

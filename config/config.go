package config

import (
	"fmt"
	"os"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"
)

// Config holds deployment configuration. User-facing settings (API
// key, model, notification targets) live in the store instead and are
// editable at runtime.
type Config struct {
	Server struct {
		Addr string `yaml:"addr"`
	} `yaml:"server"`
	Feed struct {
		URL string `yaml:"url"`
		// ProxyURL is a raw-passthrough proxy prefix the encoded feed
		// URL is appended to, for feeds that sit behind cross-origin
		// or geo restrictions. Empty disables proxying.
		ProxyURL       string `yaml:"proxy_url"`
		RefreshSeconds int    `yaml:"refresh_seconds"`
	} `yaml:"feed"`
	Classifier struct {
		BaseURL string `yaml:"base_url"`
	} `yaml:"classifier"`
	Store struct {
		RedisAddr     string `yaml:"redis_addr"`
		RedisPassword string `yaml:"redis_password"`
		RedisDB       int    `yaml:"redis_db"`
		SQLitePath    string `yaml:"sqlite_path"`
	} `yaml:"store"`
	Cache struct {
		TTLSeconds int `yaml:"ttl_seconds"`
	} `yaml:"cache"`
}

// Load reads config from a YAML file, then applies environment
// variable overrides and defaults. A missing file is not an error.
func Load(path string) (*Config, error) {
	cfg := &Config{}

	data, err := os.ReadFile(path)
	if err != nil && !os.IsNotExist(err) {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if len(data) > 0 {
		if err := yaml.Unmarshal(data, cfg); err != nil {
			return nil, fmt.Errorf("parse config: %w", err)
		}
	}

	// Environment variable overrides
	if v := os.Getenv("PORT"); v != "" {
		cfg.Server.Addr = ":" + v
	}
	if v := os.Getenv("FEED_URL"); v != "" {
		cfg.Feed.URL = v
	}
	if v := os.Getenv("FEED_PROXY_URL"); v != "" {
		cfg.Feed.ProxyURL = v
	}
	if v := os.Getenv("FEED_REFRESH_SECONDS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			cfg.Feed.RefreshSeconds = secs
		}
	}
	if v := os.Getenv("CLASSIFIER_BASE_URL"); v != "" {
		cfg.Classifier.BaseURL = v
	}
	if v := os.Getenv("REDIS_ADDR"); v != "" {
		cfg.Store.RedisAddr = v
	}
	if v := os.Getenv("REDIS_PASS"); v != "" {
		cfg.Store.RedisPassword = v
	}
	if v := os.Getenv("SQLITE_PATH"); v != "" {
		cfg.Store.SQLitePath = v
	}
	if v := os.Getenv("CACHE_TTL_SECONDS"); v != "" {
		if secs, err := strconv.Atoi(v); err == nil && secs > 0 {
			cfg.Cache.TTLSeconds = secs
		}
	}

	// Defaults
	if cfg.Server.Addr == "" {
		cfg.Server.Addr = ":8080"
	}
	if cfg.Feed.URL == "" {
		cfg.Feed.URL = "https://www.forexlive.com/feed/news"
	}
	if cfg.Feed.ProxyURL == "" {
		cfg.Feed.ProxyURL = "https://api.allorigins.win/raw?url="
	}
	if cfg.Feed.RefreshSeconds == 0 {
		cfg.Feed.RefreshSeconds = 300
	}
	if cfg.Store.SQLitePath == "" {
		cfg.Store.SQLitePath = "data/analyzer.db"
	}
	if cfg.Cache.TTLSeconds == 0 {
		cfg.Cache.TTLSeconds = 300
	}

	return cfg, nil
}

// RefreshInterval returns the feed refresh period.
func (c *Config) RefreshInterval() time.Duration {
	return time.Duration(c.Feed.RefreshSeconds) * time.Second
}

// CacheTTL returns how long cached feed results stay fresh.
func (c *Config) CacheTTL() time.Duration {
	return time.Duration(c.Cache.TTLSeconds) * time.Second
}

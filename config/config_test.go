package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}

	if cfg.Server.Addr != ":8080" {
		t.Errorf("unexpected addr %q", cfg.Server.Addr)
	}
	if cfg.Feed.URL == "" || cfg.Feed.ProxyURL == "" {
		t.Error("expected default feed and proxy URLs")
	}
	if cfg.RefreshInterval() != 5*time.Minute {
		t.Errorf("expected 5m refresh interval, got %s", cfg.RefreshInterval())
	}
	if cfg.CacheTTL() != 5*time.Minute {
		t.Errorf("expected 5m cache TTL, got %s", cfg.CacheTTL())
	}
}

func TestLoadYAMLFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.yaml")
	content := `server:
  addr: ":9090"
feed:
  url: https://feeds.example.com/news
  refresh_seconds: 60
store:
  redis_addr: localhost:6379
cache:
  ttl_seconds: 120
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Addr != ":9090" {
		t.Errorf("unexpected addr %q", cfg.Server.Addr)
	}
	if cfg.Feed.URL != "https://feeds.example.com/news" {
		t.Errorf("unexpected feed URL %q", cfg.Feed.URL)
	}
	if cfg.Store.RedisAddr != "localhost:6379" {
		t.Errorf("unexpected redis addr %q", cfg.Store.RedisAddr)
	}
	if cfg.RefreshInterval() != time.Minute {
		t.Errorf("expected 1m refresh interval, got %s", cfg.RefreshInterval())
	}
	if cfg.CacheTTL() != 2*time.Minute {
		t.Errorf("expected 2m cache TTL, got %s", cfg.CacheTTL())
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("PORT", "7000")
	t.Setenv("FEED_URL", "https://env.example.com/rss")
	t.Setenv("CACHE_TTL_SECONDS", "30")

	cfg, err := Load(filepath.Join(t.TempDir(), "missing.yaml"))
	if err != nil {
		t.Fatalf("load: %v", err)
	}
	if cfg.Server.Addr != ":7000" {
		t.Errorf("unexpected addr %q", cfg.Server.Addr)
	}
	if cfg.Feed.URL != "https://env.example.com/rss" {
		t.Errorf("unexpected feed URL %q", cfg.Feed.URL)
	}
	if cfg.CacheTTL() != 30*time.Second {
		t.Errorf("expected 30s cache TTL, got %s", cfg.CacheTTL())
	}
}

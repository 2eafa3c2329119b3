package main

import (
	"context"
	"errors"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/joho/godotenv"

	"github.com/dilm-seo/ia-analyste/analysis"
	"github.com/dilm-seo/ia-analyste/api"
	"github.com/dilm-seo/ia-analyste/config"
	"github.com/dilm-seo/ia-analyste/feed"
	"github.com/dilm-seo/ia-analyste/notify"
	"github.com/dilm-seo/ia-analyste/pipeline"
	"github.com/dilm-seo/ia-analyste/schedule"
	"github.com/dilm-seo/ia-analyste/store"
)

func main() {
	// Load environment variables from .env if present (non-fatal if missing)
	_ = godotenv.Load()

	cfgPath := "config.yaml"
	if v := os.Getenv("CONFIG_PATH"); v != "" {
		cfgPath = v
	}
	cfg, err := config.Load(cfgPath)
	if err != nil {
		log.Fatalf("load config: %v", err)
	}

	kv := openStore(cfg)
	defer kv.Close()

	cache := store.NewCache(kv, cfg.CacheTTL())
	settings := store.NewSettingsStore(kv)
	history := store.NewSignalHistory(kv)

	fetcher := feed.NewFetcher(cfg.Feed.URL, cfg.Feed.ProxyURL, cache)
	classifier := analysis.NewClient(analysis.ClientConfig{BaseURL: cfg.Classifier.BaseURL})
	notifier := notify.NewNotifier()
	pipe := pipeline.New(fetcher, classifier, notifier, settings, history)

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	refresher, err := schedule.NewRefresher(cfg.RefreshInterval(), func() {
		if _, err := pipe.Refresh(ctx); err != nil {
			log.Printf("scheduled feed refresh failed: %v", err)
		}
	})
	if err != nil {
		log.Fatalf("init refresher: %v", err)
	}
	refresher.Start()
	defer refresher.Stop()

	// Initial load
	refresher.RunNow()

	r := api.NewRouter(pipe, settings, history)
	log.Printf("Starting API server on %s", cfg.Server.Addr)
	log.Println("API endpoints available:")
	log.Println("  GET  /api/health")
	log.Println("  GET  /api/news")
	log.Println("  POST /api/news/refresh")
	log.Println("  POST /api/analyze")
	log.Println("  GET  /api/signals")
	log.Println("  GET  /api/settings")
	log.Println("  PUT  /api/settings")

	srv := &http.Server{Addr: cfg.Server.Addr, Handler: r}
	go func() {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.Fatalf("server error: %v", err)
		}
	}()

	sigCh := make(chan os.Signal, 1)
	signal.Notify(sigCh, syscall.SIGINT, syscall.SIGTERM)
	<-sigCh

	log.Println("shutdown signal received, stopping...")
	shutdownCtx, shutdownCancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer shutdownCancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		log.Printf("server shutdown: %v", err)
	}
}

// openStore picks the KV backend: Redis when an address is configured,
// SQLite otherwise, with an in-memory fallback if SQLite cannot open.
func openStore(cfg *config.Config) store.KV {
	if cfg.Store.RedisAddr != "" {
		kv, err := store.NewRedisKV(store.RedisConfig{
			Addr:     cfg.Store.RedisAddr,
			Password: cfg.Store.RedisPassword,
			DB:       cfg.Store.RedisDB,
		})
		if err != nil {
			log.Fatalf("init redis store: %v", err)
		}
		log.Printf("using redis store at %s", cfg.Store.RedisAddr)
		return kv
	}

	kv, err := store.NewSQLiteKV(cfg.Store.SQLitePath)
	if err != nil {
		log.Printf("Warning: init sqlite store failed, using in-memory store: %v", err)
		return store.NewMemoryKV()
	}
	return kv
}

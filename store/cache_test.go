package store

import (
	"context"
	"errors"
	"testing"
	"time"
)

type failingKV struct{}

func (failingKV) Get(context.Context, string) ([]byte, bool, error) {
	return nil, false, errors.New("backend down")
}
func (failingKV) Set(context.Context, string, []byte) error { return errors.New("backend down") }
func (failingKV) Delete(context.Context, string) error      { return errors.New("backend down") }
func (failingKV) Close() error                              { return nil }

func TestCacheSetGetWithinTTL(t *testing.T) {
	kv := NewMemoryKV()
	cache := NewCache(kv, 300*time.Second)

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return base }

	cache.Set(context.Background(), "latest_news", []string{"a", "b"})

	cache.now = func() time.Time { return base.Add(299 * time.Second) }
	var got []string
	if !cache.Get(context.Background(), "latest_news", &got) {
		t.Fatal("expected cache hit within TTL")
	}
	if len(got) != 2 || got[0] != "a" || got[1] != "b" {
		t.Fatalf("unexpected cached value: %v", got)
	}
}

func TestCacheExpiryRemovesEntry(t *testing.T) {
	kv := NewMemoryKV()
	cache := NewCache(kv, 300*time.Second)

	base := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)
	cache.now = func() time.Time { return base }
	cache.Set(context.Background(), "latest_news", "stale")

	cache.now = func() time.Time { return base.Add(301 * time.Second) }
	var got string
	if cache.Get(context.Background(), "latest_news", &got) {
		t.Fatal("expected cache miss after TTL elapsed")
	}

	// The expired entry must have been deleted from the backend.
	if _, ok, _ := kv.Get(context.Background(), cachePrefix+"latest_news"); ok {
		t.Fatal("expected expired entry to be removed from the store")
	}
}

func TestCacheErrorDegradesToMiss(t *testing.T) {
	cache := NewCache(failingKV{}, 300*time.Second)

	// Writes must swallow the error.
	cache.Set(context.Background(), "latest_news", "value")

	var got string
	if cache.Get(context.Background(), "latest_news", &got) {
		t.Fatal("expected storage failure to read as a miss")
	}
}

func TestCacheCorruptEntryIsMiss(t *testing.T) {
	kv := NewMemoryKV()
	cache := NewCache(kv, 300*time.Second)

	if err := kv.Set(context.Background(), cachePrefix+"latest_news", []byte("not json")); err != nil {
		t.Fatalf("seed store: %v", err)
	}

	var got string
	if cache.Get(context.Background(), "latest_news", &got) {
		t.Fatal("expected corrupt entry to read as a miss")
	}
}

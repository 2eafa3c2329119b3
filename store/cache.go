package store

import (
	"context"
	"encoding/json"
	"log"
	"time"
)

const (
	cachePrefix = "forex_analyzer_"

	// DefaultCacheTTL is how long a cached entry stays visible.
	DefaultCacheTTL = 5 * time.Minute
)

// cacheEnvelope wraps a cached value with its write timestamp
// (unix milliseconds).
type cacheEnvelope struct {
	Data      json.RawMessage `json:"data"`
	Timestamp int64           `json:"timestamp"`
}

// Cache is a TTL cache on top of a KV. Entries older than the TTL are
// deleted lazily on read. Storage failures are logged and degrade to a
// cache miss; they never propagate to the caller.
type Cache struct {
	kv  KV
	ttl time.Duration
	now func() time.Time
}

func NewCache(kv KV, ttl time.Duration) *Cache {
	if ttl <= 0 {
		ttl = DefaultCacheTTL
	}
	return &Cache{kv: kv, ttl: ttl, now: time.Now}
}

// Set stores a value under the given key with the current time.
func (c *Cache) Set(ctx context.Context, key string, value interface{}) {
	data, err := json.Marshal(value)
	if err != nil {
		log.Printf("Warning: cache write failed for %q: %v", key, err)
		return
	}
	env, err := json.Marshal(cacheEnvelope{
		Data:      data,
		Timestamp: c.now().UnixMilli(),
	})
	if err != nil {
		log.Printf("Warning: cache write failed for %q: %v", key, err)
		return
	}
	if err := c.kv.Set(ctx, cachePrefix+key, env); err != nil {
		log.Printf("Warning: cache write failed for %q: %v", key, err)
	}
}

// Get loads the value stored under key into out. It returns false on a
// miss, on an expired entry (which is removed) and on any storage or
// decode error.
func (c *Cache) Get(ctx context.Context, key string, out interface{}) bool {
	raw, ok, err := c.kv.Get(ctx, cachePrefix+key)
	if err != nil {
		log.Printf("Warning: cache read failed for %q: %v", key, err)
		return false
	}
	if !ok {
		return false
	}

	var env cacheEnvelope
	if err := json.Unmarshal(raw, &env); err != nil {
		log.Printf("Warning: cache read failed for %q: %v", key, err)
		return false
	}

	age := c.now().Sub(time.UnixMilli(env.Timestamp))
	if age > c.ttl {
		if err := c.kv.Delete(ctx, cachePrefix+key); err != nil {
			log.Printf("Warning: failed to evict expired cache entry %q: %v", key, err)
		}
		return false
	}

	if err := json.Unmarshal(env.Data, out); err != nil {
		log.Printf("Warning: cache read failed for %q: %v", key, err)
		return false
	}
	return true
}

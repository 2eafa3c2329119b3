package store

import "context"

// KV is the minimal string-keyed byte store backing the news cache,
// the settings store and the signal history. Implementations must be
// safe for concurrent use. The second return value of Get reports
// whether the key was present.
type KV interface {
	Get(ctx context.Context, key string) ([]byte, bool, error)
	Set(ctx context.Context, key string, value []byte) error
	Delete(ctx context.Context, key string) error
	Close() error
}

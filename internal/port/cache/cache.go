package cache

import (
	"context"
	"time"
)

// CacheRepository fronts list/lookup reads for one resource type. Each
// resource type gets its own instance so Flush never touches another
// type's entries.
type CacheRepository interface {
	Get(ctx context.Context, key string) ([]byte, error)
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	Flush(ctx context.Context) error
}

type CacheError string

func (e CacheError) Error() string {
	return string(e)
}

const ErrNotFound = CacheError("key not found in cache")

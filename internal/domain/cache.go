package domain

import (
	"context"
	"time"
)

// Cache is a string key/value cache with TTL support.
type Cache interface {
	Get(ctx context.Context, key string) (string, error)
	Set(ctx context.Context, key string, value string, expiration time.Duration) error
	Delete(ctx context.Context, key string) error
	Ping(ctx context.Context) error
}

// ErrCacheMiss is returned by Cache.Get when the key is absent.
var ErrCacheMiss = NewNotFoundError("cache miss")

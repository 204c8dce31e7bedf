// Package cache fronts expensive per-site aggregates (channel tree,
// dictionary active sets, promotion windows) with an invalidate-on-write
// key/value store. Values round-trip as JSON.
package cache

import (
	"context"
	"errors"
	"fmt"
	"time"
)

// ErrNotFound reports a cache miss.
var ErrNotFound = errors.New("cache: key not found")

// Cache is injected into services so the invalidate-on-write discipline can
// be tested with fakes. Writes that change rows behind a cached aggregate
// must Delete/DeleteByPrefix its keys synchronously before returning.
type Cache interface {
	Get(ctx context.Context, key string, dest any) error
	Set(ctx context.Context, key string, value any, ttl time.Duration) error
	Delete(ctx context.Context, key string) error
	DeleteByPrefix(ctx context.Context, prefix string) error
}

// Key builds the canonical per-site key: site:{id}:{resource}:{view}.
func Key(siteID int64, resource, view string) string {
	return fmt.Sprintf("site:%d:%s:%s", siteID, resource, view)
}

// Prefix covers every view of one site resource.
func Prefix(siteID int64, resource string) string {
	return fmt.Sprintf("site:%d:%s:", siteID, resource)
}

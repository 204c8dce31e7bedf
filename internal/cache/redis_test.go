package cache

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
)

func newTestRedis(t *testing.T) (*miniredis.Miniredis, *RedisCache) {
	t.Helper()
	mr, err := miniredis.Run()
	if err != nil {
		t.Fatalf("gagal start miniredis: %v", err)
	}
	t.Cleanup(mr.Close)
	client := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = client.Close() })
	return mr, NewRedisCache(client)
}

type cachedTree struct {
	SiteID int64    `json:"siteId"`
	Names  []string `json:"names"`
}

func TestKeyAndPrefix(t *testing.T) {
	if got := Key(7, "channels", "tree"); got != "site:7:channels:tree" {
		t.Fatalf("unexpected key: %q", got)
	}
	if got := Prefix(7, "dictionaries"); got != "site:7:dictionaries:" {
		t.Fatalf("unexpected prefix: %q", got)
	}
}

func TestRedisCacheRoundTrip(t *testing.T) {
	_, c := newTestRedis(t)
	ctx := context.Background()

	in := cachedTree{SiteID: 7, Names: []string{"news", "blog"}}
	if err := c.Set(ctx, Key(7, "channels", "tree"), in, time.Minute); err != nil {
		t.Fatalf("set error: %v", err)
	}

	var out cachedTree
	if err := c.Get(ctx, Key(7, "channels", "tree"), &out); err != nil {
		t.Fatalf("get error: %v", err)
	}
	if out.SiteID != 7 || len(out.Names) != 2 || out.Names[0] != "news" {
		t.Fatalf("round trip mismatch: %+v", out)
	}
}

func TestRedisCacheMissReturnsErrNotFound(t *testing.T) {
	_, c := newTestRedis(t)

	var out cachedTree
	if err := c.Get(context.Background(), "absent", &out); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestRedisCacheEntryExpires(t *testing.T) {
	mr, c := newTestRedis(t)
	ctx := context.Background()

	if err := c.Set(ctx, "k", cachedTree{SiteID: 1}, time.Second); err != nil {
		t.Fatalf("set error: %v", err)
	}
	mr.FastForward(2 * time.Second)

	var out cachedTree
	if err := c.Get(ctx, "k", &out); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound after expiry, got %v", err)
	}
}

func TestRedisCacheDelete(t *testing.T) {
	_, c := newTestRedis(t)
	ctx := context.Background()

	if err := c.Set(ctx, "k", cachedTree{SiteID: 1}, 0); err != nil {
		t.Fatalf("set error: %v", err)
	}
	if err := c.Delete(ctx, "k"); err != nil {
		t.Fatalf("delete error: %v", err)
	}

	var out cachedTree
	if err := c.Get(ctx, "k", &out); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound after delete, got %v", err)
	}
}

func TestRedisCacheDeleteByPrefix(t *testing.T) {
	_, c := newTestRedis(t)
	ctx := context.Background()

	// Enough keys to cross the scan batch size at least once.
	for i := 0; i < 120; i++ {
		key := Key(7, "dictionaries", fmt.Sprintf("group-%d", i))
		if err := c.Set(ctx, key, cachedTree{SiteID: 7}, 0); err != nil {
			t.Fatalf("seed error: %v", err)
		}
	}
	if err := c.Set(ctx, Key(8, "dictionaries", "group-0"), cachedTree{SiteID: 8}, 0); err != nil {
		t.Fatalf("seed error: %v", err)
	}

	if err := c.DeleteByPrefix(ctx, Prefix(7, "dictionaries")); err != nil {
		t.Fatalf("delete by prefix error: %v", err)
	}

	var out cachedTree
	for i := 0; i < 120; i++ {
		key := Key(7, "dictionaries", fmt.Sprintf("group-%d", i))
		if err := c.Get(ctx, key, &out); err != ErrNotFound {
			t.Fatalf("key %s should be gone, got %v", key, err)
		}
	}
	if err := c.Get(ctx, Key(8, "dictionaries", "group-0"), &out); err != nil {
		t.Fatalf("other site's key must survive, got %v", err)
	}
}

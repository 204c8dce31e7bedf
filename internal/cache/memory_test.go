package cache

import (
	"context"
	"testing"
	"time"
)

func TestMemoryCacheRoundTrip(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	in := cachedTree{SiteID: 3, Names: []string{"opini"}}
	if err := c.Set(ctx, Key(3, "channels", "tree"), in, time.Minute); err != nil {
		t.Fatalf("set error: %v", err)
	}

	var out cachedTree
	if err := c.Get(ctx, Key(3, "channels", "tree"), &out); err != nil {
		t.Fatalf("get error: %v", err)
	}
	if out.SiteID != 3 || len(out.Names) != 1 || out.Names[0] != "opini" {
		t.Fatalf("round trip mismatch: %+v", out)
	}
}

func TestMemoryCacheMissReturnsErrNotFound(t *testing.T) {
	c := NewMemoryCache()

	var out cachedTree
	if err := c.Get(context.Background(), "absent", &out); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound, got %v", err)
	}
}

func TestMemoryCacheEntryExpires(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	if err := c.Set(ctx, "k", cachedTree{SiteID: 1}, time.Nanosecond); err != nil {
		t.Fatalf("set error: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	var out cachedTree
	if err := c.Get(ctx, "k", &out); err != ErrNotFound {
		t.Fatalf("expected ErrNotFound after expiry, got %v", err)
	}
}

func TestMemoryCacheZeroTTLNeverExpires(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	if err := c.Set(ctx, "k", cachedTree{SiteID: 1}, 0); err != nil {
		t.Fatalf("set error: %v", err)
	}
	time.Sleep(5 * time.Millisecond)

	var out cachedTree
	if err := c.Get(ctx, "k", &out); err != nil {
		t.Fatalf("get error: %v", err)
	}
	if out.SiteID != 1 {
		t.Fatalf("unexpected value: %+v", out)
	}
}

func TestMemoryCacheDeleteByPrefix(t *testing.T) {
	c := NewMemoryCache()
	ctx := context.Background()

	keep := Key(9, "promotions", "active")
	for _, key := range []string{Key(4, "promotions", "active"), Key(4, "promotions", "banner"), keep} {
		if err := c.Set(ctx, key, cachedTree{SiteID: 4}, 0); err != nil {
			t.Fatalf("seed error: %v", err)
		}
	}

	if err := c.DeleteByPrefix(ctx, Prefix(4, "promotions")); err != nil {
		t.Fatalf("delete by prefix error: %v", err)
	}

	var out cachedTree
	if err := c.Get(ctx, Key(4, "promotions", "active"), &out); err != ErrNotFound {
		t.Fatalf("prefixed key should be gone, got %v", err)
	}
	if err := c.Get(ctx, keep, &out); err != nil {
		t.Fatalf("other site's key must survive, got %v", err)
	}
}

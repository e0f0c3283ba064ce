package cacheinfra

import (
	"context"
	"errors"
	"testing"
	"time"
)

func testConfig() Config {
	return Config{
		Capacity:           100,
		NumShards:          2,
		TTL:                time.Minute,
		EvictionPercentage: 10,
	}
}

func TestNewRowCache_InvalidConfig(t *testing.T) {
	if _, err := NewRowCache[string](Config{}); err == nil {
		t.Fatal("expected error for zero-value config")
	}
}

func TestRowCache_FetchesOncePerKey(t *testing.T) {
	cache, err := NewRowCache[string](testConfig())
	if err != nil {
		t.Fatalf("failed to build cache: %v", err)
	}

	ctx := context.Background()
	calls := 0
	fetch := func(context.Context) (string, error) {
		calls++
		return "row-data", nil
	}

	for i := 0; i < 3; i++ {
		got, err := cache.GetOrFetch(ctx, "k1", fetch)
		if err != nil {
			t.Fatalf("GetOrFetch failed: %v", err)
		}
		if got != "row-data" {
			t.Errorf("unexpected value %q", got)
		}
	}
	if calls != 1 {
		t.Errorf("expected a single fetch for a cached key, got %d", calls)
	}
}

func TestRowCache_DeleteForcesRefetch(t *testing.T) {
	cache, err := NewRowCache[string](testConfig())
	if err != nil {
		t.Fatalf("failed to build cache: %v", err)
	}

	ctx := context.Background()
	calls := 0
	fetch := func(context.Context) (string, error) {
		calls++
		return "row-data", nil
	}

	if _, err := cache.GetOrFetch(ctx, "k1", fetch); err != nil {
		t.Fatalf("GetOrFetch failed: %v", err)
	}
	cache.Delete("k1")
	if _, err := cache.GetOrFetch(ctx, "k1", fetch); err != nil {
		t.Fatalf("GetOrFetch after delete failed: %v", err)
	}
	if calls != 2 {
		t.Errorf("expected a refetch after delete, got %d calls", calls)
	}
}

func TestRowCache_DeleteByPrefix(t *testing.T) {
	cache, err := NewRowCache[string](testConfig())
	if err != nil {
		t.Fatalf("failed to build cache: %v", err)
	}

	ctx := context.Background()
	calls := map[string]int{}
	fetchFor := func(key string) func(context.Context) (string, error) {
		return func(context.Context) (string, error) {
			calls[key]++
			return key, nil
		}
	}

	keys := []string{
		Key("orders", "k1"),
		Key("orders", "k2"),
		Key("users", "k1"),
	}
	for _, key := range keys {
		if _, err := cache.GetOrFetch(ctx, key, fetchFor(key)); err != nil {
			t.Fatalf("GetOrFetch failed: %v", err)
		}
	}

	cache.DeleteByPrefix("orders" + KeySeparator)

	for _, key := range keys {
		if _, err := cache.GetOrFetch(ctx, key, fetchFor(key)); err != nil {
			t.Fatalf("GetOrFetch failed: %v", err)
		}
	}
	if calls[keys[0]] != 2 || calls[keys[1]] != 2 {
		t.Errorf("expected dropped table keys to refetch, got %v", calls)
	}
	if calls[keys[2]] != 1 {
		t.Errorf("expected untouched table key to stay cached, got %v", calls)
	}
}

func TestRowCache_FetchErrorNotCached(t *testing.T) {
	cfg := testConfig()
	cache, err := NewRowCache[string](cfg)
	if err != nil {
		t.Fatalf("failed to build cache: %v", err)
	}

	ctx := context.Background()
	boom := errors.New("db unavailable")
	calls := 0
	fetch := func(context.Context) (string, error) {
		calls++
		if calls == 1 {
			return "", boom
		}
		return "row-data", nil
	}

	if _, err := cache.GetOrFetch(ctx, "k1", fetch); !errors.Is(err, boom) {
		t.Fatalf("expected fetch error, got %v", err)
	}
	got, err := cache.GetOrFetch(ctx, "k1", fetch)
	if err != nil {
		t.Fatalf("retry failed: %v", err)
	}
	if got != "row-data" {
		t.Errorf("unexpected value %q", got)
	}
}

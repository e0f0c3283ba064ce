package cacheinfra

import (
	"errors"
	"testing"
	"time"
)

func TestConfig_Validate(t *testing.T) {
	tests := []struct {
		name      string
		mutate    func(*Config)
		wantField string
	}{
		{name: "defaults", mutate: func(*Config) {}},
		{name: "zero capacity", mutate: func(c *Config) { c.Capacity = 0 }, wantField: "Capacity"},
		{name: "zero shards", mutate: func(c *Config) { c.NumShards = 0 }, wantField: "NumShards"},
		{name: "zero ttl", mutate: func(c *Config) { c.TTL = 0 }, wantField: "TTL"},
		{name: "eviction percentage too low", mutate: func(c *Config) { c.EvictionPercentage = 0 }, wantField: "EvictionPercentage"},
		{name: "eviction percentage too high", mutate: func(c *Config) { c.EvictionPercentage = 101 }, wantField: "EvictionPercentage"},
		{name: "negative refresh time", mutate: func(c *Config) {
			c.EarlyRefresh.SyncRefreshTime = -time.Second
		}, wantField: "EarlyRefresh"},
		{name: "min refresh above max", mutate: func(c *Config) {
			c.EarlyRefresh.MinAsyncRefreshTime = time.Minute
			c.EarlyRefresh.MaxAsyncRefreshTime = time.Second
		}, wantField: "EarlyRefresh"},
		{name: "no early refresh", mutate: func(c *Config) { c.EarlyRefresh = nil }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig()
			tt.mutate(&cfg)

			err := cfg.Validate()
			if tt.wantField == "" {
				if err != nil {
					t.Errorf("unexpected validation error: %v", err)
				}
				return
			}

			var cfgErr *ConfigError
			if !errors.As(err, &cfgErr) {
				t.Fatalf("expected ConfigError, got %v", err)
			}
			if cfgErr.Field != tt.wantField {
				t.Errorf("expected field %s, got %s", tt.wantField, cfgErr.Field)
			}
		})
	}
}

func TestConfig_ToSturdycOptions(t *testing.T) {
	cfg := DefaultConfig()
	if got := len(cfg.ToSturdycOptions()); got != 2 {
		t.Errorf("expected early refresh and missing record options, got %d", got)
	}

	cfg.EvictionInterval = time.Minute
	if got := len(cfg.ToSturdycOptions()); got != 3 {
		t.Errorf("expected eviction interval option to be added, got %d", got)
	}

	cfg.EarlyRefresh = nil
	cfg.MissingRecordStorage = false
	cfg.EvictionInterval = 0
	if got := len(cfg.ToSturdycOptions()); got != 0 {
		t.Errorf("expected no options, got %d", got)
	}
}

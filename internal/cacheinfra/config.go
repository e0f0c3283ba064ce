package cacheinfra

import (
	"time"

	"github.com/viccon/sturdyc"
)

// Config holds the tuning for the in-process row cache. It encapsulates the
// sturdyc options the store needs for cache initialization.
type Config struct {
	// Capacity is the maximum number of rows the cache holds. Must be > 0.
	Capacity int

	// NumShards is the shard count for concurrent access. Higher values
	// improve concurrency at the cost of memory. Must be > 0.
	NumShards int

	// TTL is the in-memory time-to-live for cached rows. This is the hot
	// cache's own freshness window, independent of entry expiration, which
	// is always re-checked against the mapped entry on read. Must be > 0.
	TTL time.Duration

	// EvictionPercentage is the share of rows evicted when the cache is
	// full. Must be between 1 and 100.
	EvictionPercentage int

	// EarlyRefresh enables stampede-protecting refreshes of hot rows before
	// they expire. Nil disables it.
	EarlyRefresh *EarlyRefreshConfig

	// MissingRecordStorage remembers keys that resolved to no row, so
	// repeated misses skip the database.
	MissingRecordStorage bool

	// EvictionInterval is how often expired rows are scanned for. Zero uses
	// the sturdyc default.
	EvictionInterval time.Duration
}

// EarlyRefreshConfig mirrors sturdyc's early refresh options.
type EarlyRefreshConfig struct {
	MinAsyncRefreshTime time.Duration
	MaxAsyncRefreshTime time.Duration
	SyncRefreshTime     time.Duration
	RetryBaseDelay      time.Duration
}

// DefaultConfig returns tuning that suits most read-heavy entry workloads.
func DefaultConfig() Config {
	return Config{
		Capacity:           10000,
		NumShards:          256,
		TTL:                5 * time.Minute,
		EvictionPercentage: 10,
		EarlyRefresh: &EarlyRefreshConfig{
			MinAsyncRefreshTime: 10 * time.Second,
			MaxAsyncRefreshTime: 20 * time.Second,
			SyncRefreshTime:     30 * time.Second,
			RetryBaseDelay:      100 * time.Millisecond,
		},
		MissingRecordStorage: true,
	}
}

// ToSturdycOptions maps the optional settings to sturdyc options. Capacity,
// NumShards, TTL and EvictionPercentage go to the sturdyc constructor
// directly and are not included here.
func (c Config) ToSturdycOptions() []sturdyc.Option {
	var options []sturdyc.Option

	if c.EarlyRefresh != nil {
		options = append(options, sturdyc.WithEarlyRefreshes(
			c.EarlyRefresh.MinAsyncRefreshTime,
			c.EarlyRefresh.MaxAsyncRefreshTime,
			c.EarlyRefresh.SyncRefreshTime,
			c.EarlyRefresh.RetryBaseDelay,
		))
	}
	if c.MissingRecordStorage {
		options = append(options, sturdyc.WithMissingRecordStorage())
	}
	if c.EvictionInterval > 0 {
		options = append(options, sturdyc.WithEvictionInterval(c.EvictionInterval))
	}
	return options
}

// Validate checks the configuration values are valid.
func (c Config) Validate() error {
	if c.Capacity <= 0 {
		return &ConfigError{Field: "Capacity", Message: "must be greater than 0"}
	}
	if c.NumShards <= 0 {
		return &ConfigError{Field: "NumShards", Message: "must be greater than 0"}
	}
	if c.TTL <= 0 {
		return &ConfigError{Field: "TTL", Message: "must be greater than 0"}
	}
	if c.EvictionPercentage < 1 || c.EvictionPercentage > 100 {
		return &ConfigError{Field: "EvictionPercentage", Message: "must be between 1 and 100"}
	}
	if er := c.EarlyRefresh; er != nil {
		if er.MinAsyncRefreshTime < 0 || er.MaxAsyncRefreshTime < 0 || er.SyncRefreshTime < 0 || er.RetryBaseDelay < 0 {
			return &ConfigError{Field: "EarlyRefresh", Message: "refresh times must be non-negative"}
		}
		if er.MinAsyncRefreshTime > er.MaxAsyncRefreshTime {
			return &ConfigError{Field: "EarlyRefresh", Message: "MinAsyncRefreshTime must not exceed MaxAsyncRefreshTime"}
		}
	}
	return nil
}

// ConfigError represents a configuration validation error.
type ConfigError struct {
	Field   string
	Message string
}

func (e *ConfigError) Error() string {
	return "cache config error in field " + e.Field + ": " + e.Message
}

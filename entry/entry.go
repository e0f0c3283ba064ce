package entry

import (
	"time"

	"github.com/goliatone/go-cache-store/codec"
)

// CacheEntry holds a cached value of type T plus its lifecycle metadata.
// Key and CreatedTime are immutable by contract once the factory returns.
type CacheEntry[T any] struct {
	// Key is the unique identity of the entry. Never reassign it.
	Key string

	// Value is the cached payload.
	Value T

	// TypeTag is the logical type name used to validate deserialization.
	TypeTag string

	// Size is the byte length of the serialized payload. Informational; the
	// mapper assigns it when the entry is turned into a row.
	Size int

	AbsoluteExpiration *time.Time
	SlidingExpiration  time.Duration
	ExpirationTime     *time.Time

	Tags     []string
	Metadata map[string]string

	// Priority is an eviction-ranking hint consumed by external policies.
	Priority int

	// AccessCount and LastAccessTime are read statistics. Reads are tracked
	// by the store, not by the entry's own accessors, so value methods stay
	// pure.
	AccessCount    int64
	LastAccessTime *time.Time

	CreatedTime   time.Time
	LastWriteTime time.Time

	// Version starts at 1 and only increases.
	Version int64

	// IsDeleted marks the entry as a tombstone. Tombstoned rows are skipped
	// by active reads but kept for audit and version history.
	IsDeleted bool

	now func() time.Time
}

// Factory creates entries with a fixed clock. The zero-value clock is the
// wall clock; tests pin it with WithClock.
type Factory[T any] struct {
	now func() time.Time
}

// FactoryOption customizes a Factory.
type FactoryOption[T any] func(*Factory[T])

// WithClock overrides the instant source used for CreatedTime,
// LastWriteTime and the expiration checks of entries the factory creates.
func WithClock[T any](now func() time.Time) FactoryOption[T] {
	return func(f *Factory[T]) {
		f.now = now
	}
}

// NewFactory creates an entry factory.
func NewFactory[T any](opts ...FactoryOption[T]) *Factory[T] {
	f := &Factory[T]{now: time.Now}
	for _, opt := range opts {
		opt(f)
	}
	return f
}

// New creates an entry, stamping CreatedTime and LastWriteTime from the
// factory clock and seeding Version at 1. opts may be nil. An empty key or
// invalid options fail with InvalidArgumentError.
func (f *Factory[T]) New(key string, value T, opts *Options) (*CacheEntry[T], error) {
	if key == "" {
		return nil, &InvalidArgumentError{Field: "key", Message: "must not be empty"}
	}

	now := f.now().UTC()
	e := &CacheEntry[T]{
		Key:           key,
		Value:         value,
		TypeTag:       codec.TypeTagOf[T](),
		CreatedTime:   now,
		LastWriteTime: now,
		Version:       1,
		now:           f.now,
	}

	if opts == nil {
		return e, nil
	}
	if err := opts.Validate(); err != nil {
		return nil, &InvalidArgumentError{Field: "options", Message: err.Error()}
	}

	e.AbsoluteExpiration = copyTime(opts.AbsoluteExpiration)
	e.SlidingExpiration = opts.SlidingExpiration
	e.ExpirationTime = copyTime(opts.ExpirationTime)
	e.Priority = opts.Priority
	if len(opts.Tags) > 0 {
		e.Tags = append([]string(nil), opts.Tags...)
	}
	if len(opts.Metadata) > 0 {
		e.Metadata = make(map[string]string, len(opts.Metadata))
		for k, v := range opts.Metadata {
			e.Metadata[k] = v
		}
	}
	return e, nil
}

// New creates an entry using the wall clock. See Factory.New.
func New[T any](key string, value T, opts *Options) (*CacheEntry[T], error) {
	return NewFactory[T]().New(key, value, opts)
}

// UpdateValue replaces the payload and refreshes LastWriteTime. Version is
// bumped unless incrementVersion is false; a suppressed bump still counts as
// a write for the sliding window.
func (e *CacheEntry[T]) UpdateValue(value T, incrementVersion bool) {
	e.Value = value
	e.LastWriteTime = e.clockNow().UTC()
	if incrementVersion {
		e.Version++
	}
}

// IsExpired reports whether the entry is past any configured deadline. The
// instant is sampled once per call so the three checks agree with each other
// under a pinned clock.
func (e *CacheEntry[T]) IsExpired() bool {
	now := e.clockNow()
	if e.AbsoluteExpiration != nil && now.After(*e.AbsoluteExpiration) {
		return true
	}
	if e.SlidingExpiration > 0 && now.After(e.LastWriteTime.Add(e.SlidingExpiration)) {
		return true
	}
	if e.ExpirationTime != nil && now.After(*e.ExpirationTime) {
		return true
	}
	return false
}

// RefreshExpiration restarts the sliding window from now. Entries without a
// sliding expiration are untouched; this is how callers implement
// touch-on-read.
func (e *CacheEntry[T]) RefreshExpiration() {
	if e.SlidingExpiration <= 0 {
		return
	}
	e.LastWriteTime = e.clockNow().UTC()
}

// MarkDeleted tombstones the entry.
func (e *CacheEntry[T]) MarkDeleted() {
	e.IsDeleted = true
}

// Touch records a read: increments AccessCount and stamps LastAccessTime.
// Called by the store's read path, not by entry accessors.
func (e *CacheEntry[T]) Touch() {
	now := e.clockNow().UTC()
	e.AccessCount++
	e.LastAccessTime = &now
}

func (e *CacheEntry[T]) clockNow() time.Time {
	if e.now != nil {
		return e.now()
	}
	return time.Now()
}

func copyTime(t *time.Time) *time.Time {
	if t == nil {
		return nil
	}
	u := t.UTC()
	return &u
}

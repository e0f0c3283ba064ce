// Package entry defines the cache entry value object: a typed payload plus
// the lifecycle metadata the store persists alongside it (expiration,
// versioning, tags, access statistics, soft deletion).
//
// Entries are pure data. Nothing in this package performs I/O; persistence
// belongs to the mapper and store packages, and eviction decisions belong to
// whatever policy consumes Priority and the access statistics.
//
// # Lifecycle
//
// Entries are created through a Factory (or the package-level New helper),
// which stamps CreatedTime and LastWriteTime, seeds Version at 1 and applies
// the supplied Options. After creation:
//
//   - UpdateValue replaces the payload, refreshes LastWriteTime and bumps
//     Version unless the bump is explicitly suppressed.
//   - RefreshExpiration restarts the sliding window; it is a no-op for
//     entries without a sliding expiration.
//   - MarkDeleted tombstones the entry. Tombstoned rows are excluded from
//     active reads but retained for audit and version history; physical
//     removal is a store concern.
//
// # Expiration
//
// Expiration is evaluated lazily at read time; no background sweeper exists.
// IsExpired samples the clock once per call and reports true when any of the
// configured deadlines has passed: the absolute expiration instant, the
// sliding window measured from LastWriteTime, or the entity-level
// ExpirationTime carried in from upstream metadata.
//
// # Ownership
//
// A CacheEntry is exclusively owned by the goroutine building or mutating it
// until it is handed to a batch or returned from a read. The struct holds no
// internal locking.
package entry

package mapper

import (
	"strconv"
	"time"

	"github.com/goliatone/go-cache-store/codec"
	"github.com/goliatone/go-cache-store/entry"
)

// Reserved metadata keys used to carry entry fields that have no dedicated
// column. They live inside the encoded metadata blob and are stripped back
// out on the way in, so callers never observe them.
const (
	metaExpirationTime    = "__expiration_time"
	metaSlidingExpiration = "__sliding_expiration"
)

// EntryMapper converts between CacheEntry[T] and the flat Row the store
// persists, and declares the schema that store must honor. Construction
// requires an explicit Serializer capability; there is no runtime type
// lookup. Mappers are stateless and safe to share across goroutines.
type EntryMapper[T any] struct {
	cfg        Config
	serializer codec.Serializer[T]
}

// New creates a mapper for T backed by the given serializer.
func New[T any](cfg Config, serializer codec.Serializer[T]) (*EntryMapper[T], error) {
	if serializer == nil {
		return nil, ErrNilSerializer
	}
	cfg = cfg.withDefaults()
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &EntryMapper[T]{cfg: cfg, serializer: serializer}, nil
}

// Config returns the mapper configuration.
func (m *EntryMapper[T]) Config() Config { return m.cfg }

// TypeTag returns the serializer's logical type name.
func (m *EntryMapper[T]) TypeTag() string { return m.serializer.TypeTag() }

// ToRow serializes the entry into its persisted row form. The value is
// serialized through the configured Serializer, tags and metadata are
// canonically encoded, and timestamps collapse to Unix seconds UTC. Size is
// assigned here from the serialized payload. Fails with SerializationError
// before anything is written.
func (m *EntryMapper[T]) ToRow(e *entry.CacheEntry[T]) (*Row, error) {
	if e == nil {
		return nil, ErrNilEntry
	}

	want := m.serializer.TypeTag()
	if m.cfg.TypeTagMode == TypeTagStrict && e.TypeTag != "" && e.TypeTag != want {
		return nil, &SerializationError{Key: e.Key, TypeTag: e.TypeTag,
			Cause: &DeserializationError{Key: e.Key, StoredTag: e.TypeTag, WantTag: want}}
	}

	payload, err := m.serializer.Serialize(e.Value)
	if err != nil {
		return nil, &SerializationError{Key: e.Key, TypeTag: want, Cause: err}
	}

	meta, err := m.encodeRowMetadata(e)
	if err != nil {
		return nil, err
	}

	tags := encodeTags(e.Tags)
	return &Row{
		Key:                e.Key,
		TypeTag:            want,
		Value:              payload,
		Size:               int64(len(payload)),
		AbsoluteExpiration: unixPtr(e.AbsoluteExpiration),
		Tags:               &tags,
		Metadata:           &meta,
		Priority:           e.Priority,
		AccessCount:        e.AccessCount,
		LastAccessTime:     unixPtr(e.LastAccessTime),
		CreatedTime:        e.CreatedTime.UTC().Unix(),
		LastWriteTime:      e.LastWriteTime.UTC().Unix(),
		Version:            e.Version,
		IsDeleted:          e.IsDeleted,
	}, nil
}

// FromRow is the inverse of ToRow. Legacy rows with NULL optional columns
// map to absent fields rather than failing. Under TypeTagStrict a stored tag
// that does not match the serializer's fails with DeserializationError;
// TypeTagLenient hands the raw column to the serializer regardless.
func (m *EntryMapper[T]) FromRow(row *Row) (*entry.CacheEntry[T], error) {
	if row == nil {
		return nil, ErrNilRow
	}

	want := m.serializer.TypeTag()
	if m.cfg.TypeTagMode == TypeTagStrict && row.TypeTag != "" && row.TypeTag != want {
		return nil, &DeserializationError{Key: row.Key, StoredTag: row.TypeTag, WantTag: want}
	}

	value, err := m.serializer.Deserialize(row.Value)
	if err != nil {
		return nil, &DeserializationError{Key: row.Key, StoredTag: row.TypeTag, WantTag: want, Cause: err}
	}

	e := &entry.CacheEntry[T]{
		Key:                row.Key,
		Value:              value,
		TypeTag:            row.TypeTag,
		Size:               int(row.Size),
		AbsoluteExpiration: timePtr(row.AbsoluteExpiration),
		Priority:           row.Priority,
		AccessCount:        row.AccessCount,
		LastAccessTime:     timePtr(row.LastAccessTime),
		CreatedTime:        time.Unix(row.CreatedTime, 0).UTC(),
		LastWriteTime:      time.Unix(row.LastWriteTime, 0).UTC(),
		Version:            row.Version,
		IsDeleted:          row.IsDeleted,
	}

	if row.Tags != nil {
		e.Tags = decodeTags(*row.Tags)
	}
	if row.Metadata != nil {
		meta := decodeMetadata(*row.Metadata)
		if v, ok := meta[metaExpirationTime]; ok {
			delete(meta, metaExpirationTime)
			if sec, err := strconv.ParseInt(v, 10, 64); err == nil {
				t := time.Unix(sec, 0).UTC()
				e.ExpirationTime = &t
			}
		}
		if v, ok := meta[metaSlidingExpiration]; ok {
			delete(meta, metaSlidingExpiration)
			if sec, err := strconv.ParseInt(v, 10, 64); err == nil {
				e.SlidingExpiration = time.Duration(sec) * time.Second
			}
		}
		if len(meta) > 0 {
			e.Metadata = meta
		}
	}
	return e, nil
}

// encodeRowMetadata folds the entry's free-form metadata together with the
// reserved carriers for ExpirationTime and SlidingExpiration, which have no
// dedicated column in the row layout.
func (m *EntryMapper[T]) encodeRowMetadata(e *entry.CacheEntry[T]) (string, error) {
	meta := make(map[string]string, len(e.Metadata)+2)
	for k, v := range e.Metadata {
		if k == metaExpirationTime || k == metaSlidingExpiration {
			return "", &SerializationError{Key: e.Key, TypeTag: m.serializer.TypeTag(),
				Cause: &InvalidMetadataKeyError{Key: k}}
		}
		meta[k] = v
	}
	if e.ExpirationTime != nil {
		meta[metaExpirationTime] = strconv.FormatInt(e.ExpirationTime.UTC().Unix(), 10)
	}
	if e.SlidingExpiration > 0 {
		meta[metaSlidingExpiration] = strconv.FormatInt(int64(e.SlidingExpiration/time.Second), 10)
	}
	return encodeMetadata(meta), nil
}

// InvalidMetadataKeyError reports caller metadata that collides with a
// reserved key.
type InvalidMetadataKeyError struct {
	Key string
}

func (e *InvalidMetadataKeyError) Error() string {
	return "metadata key " + e.Key + " is reserved"
}

func unixPtr(t *time.Time) *int64 {
	if t == nil {
		return nil
	}
	sec := t.UTC().Unix()
	return &sec
}

func timePtr(sec *int64) *time.Time {
	if sec == nil {
		return nil
	}
	t := time.Unix(*sec, 0).UTC()
	return &t
}

package mapper

import (
	"errors"
	"regexp"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// DefaultTable is the table name used when Config.Table is empty.
const DefaultTable = "cache_entries"

var tableNamePattern = regexp.MustCompile(`^[A-Za-z_][A-Za-z0-9_]*$`)

// TypeTagMode controls how FromRow treats a stored type tag that differs
// from the serializer's.
type TypeTagMode int

const (
	// TypeTagStrict rejects mismatched rows with a DeserializationError.
	TypeTagStrict TypeTagMode = iota

	// TypeTagLenient skips the tag check and lets the serializer decide
	// whether the raw column is still decodable.
	TypeTagLenient
)

// Config configures an EntryMapper.
type Config struct {
	// Table is the destination table name. Defaults to DefaultTable.
	Table string

	// RetainHistory keys rows by (key, version) and preserves every written
	// version as its own physical row. The default keys by key alone with
	// in-place overwrite. The flag only changes the declared schema and the
	// update statement the store issues; the mapper contract is identical.
	RetainHistory bool

	// TypeTagMode selects strict or lenient type-tag checking on reads.
	TypeTagMode TypeTagMode
}

// Validate checks the configuration values are valid.
func (c Config) Validate() error {
	return validation.ValidateStruct(&c,
		validation.Field(&c.Table, validation.Required, validation.Match(tableNamePattern)),
		validation.Field(&c.TypeTagMode, validation.By(knownTypeTagMode)),
	)
}

func knownTypeTagMode(value any) error {
	m, ok := value.(TypeTagMode)
	if !ok {
		return errors.New("must be a TypeTagMode")
	}
	if m != TypeTagStrict && m != TypeTagLenient {
		return errors.New("unknown mode")
	}
	return nil
}

func (c Config) withDefaults() Config {
	if c.Table == "" {
		c.Table = DefaultTable
	}
	return c
}

package entry

import (
	"errors"
	"time"

	validation "github.com/go-ozzo/ozzo-validation/v4"
)

// Options configures a new entry at creation time. The zero value is valid
// and produces an entry that never expires.
type Options struct {
	// AbsoluteExpiration invalidates the entry once the wall clock passes
	// this instant, regardless of activity.
	AbsoluteExpiration *time.Time

	// SlidingExpiration invalidates the entry once it has gone unwritten
	// and untouched for this long. Zero disables the window.
	SlidingExpiration time.Duration

	// ExpirationTime is an entity-level deadline carried in from upstream
	// metadata. It participates in the expiration check like an absolute
	// deadline but is tracked separately so round-trips preserve its origin.
	ExpirationTime *time.Time

	// Tags are non-unique labels for bulk queries.
	Tags []string

	// Metadata holds free-form annotations persisted with the entry.
	Metadata map[string]string

	// Priority is an eviction-ranking hint; higher survives pressure longer.
	// It is consumed by an external eviction policy, never enforced here.
	Priority int
}

// Validate checks the option values are usable.
func (o Options) Validate() error {
	return validation.ValidateStruct(&o,
		validation.Field(&o.SlidingExpiration, validation.By(nonNegativeDuration)),
		validation.Field(&o.Tags, validation.Each(validation.Required)),
	)
}

func nonNegativeDuration(value any) error {
	d, ok := value.(time.Duration)
	if !ok {
		return errors.New("must be a duration")
	}
	if d < 0 {
		return errors.New("must be non-negative")
	}
	return nil
}

package recommendation

import (
	"errors"
	"fmt"

	"github.com/google/uuid"
)

const (
	DefaultLimit = 5
	MaxLimit     = 50
)

var (
	ErrInvalidLimit       = errors.New("invalid recommendation limit")
	ErrInvalidExcludeType = errors.New("invalid recommendation exclude type")
)

// Options is the exclusion context and page size of a resolver call.
// ExcludeID applies only to the category named by ExcludeType.
type Options struct {
	ExcludeID   uuid.UUID
	ExcludeType Category
	// Limit caps each category. Zero selects DefaultLimit.
	Limit int
}

// Normalize fills defaults and rejects malformed values instead of
// silently degrading to an empty result.
func (o Options) Normalize() (Options, error) {
	if o.Limit == 0 {
		o.Limit = DefaultLimit
	}
	if o.Limit < 0 || o.Limit > MaxLimit {
		return Options{}, fmt.Errorf("%w: %d (want 1..%d)", ErrInvalidLimit, o.Limit, MaxLimit)
	}
	if o.ExcludeType != "" && !o.ExcludeType.Valid() {
		return Options{}, fmt.Errorf("%w: %q", ErrInvalidExcludeType, string(o.ExcludeType))
	}
	return o, nil
}

// Excludes reports whether the exclusion applies to category c.
func (o Options) Excludes(c Category) bool {
	return o.ExcludeID != uuid.Nil && o.ExcludeType == c
}

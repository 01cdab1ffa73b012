package domain

import (
	"fmt"
	"sort"
	"strings"

	"github.com/cockroachdb/errors"
)

var (
	ErrNotFound     = errors.New("not found")
	ErrDuplicateID  = errors.New("duplicate id")
	ErrValidation   = errors.New("validation failed")
	ErrInvalidState = errors.New("invalid state for operation")

	// ErrProductNotFound also matches ErrNotFound.
	ErrProductNotFound = errors.Mark(errors.New("product not found"), ErrNotFound)
)

// NotFoundf wraps ErrNotFound with the entity and id that were missing.
func NotFoundf(format string, args ...any) error {
	return errors.Wrapf(ErrNotFound, format, args...)
}

// ValidationError collects per-field problems with staff input.
type ValidationError struct {
	fields map[string][]string
}

func NewValidationError() *ValidationError {
	return &ValidationError{fields: make(map[string][]string)}
}

func (ve *ValidationError) Add(field, msg string) {
	ve.fields[field] = append(ve.fields[field], msg)
}

// Err returns nil when nothing was added.
func (ve *ValidationError) Err() error {
	if len(ve.fields) == 0 {
		return nil
	}
	return ve
}

func (ve *ValidationError) Fields() map[string][]string { return ve.fields }

func (ve *ValidationError) Error() string {
	keys := make([]string, 0, len(ve.fields))
	for k := range ve.fields {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	parts := make([]string, 0, len(keys))
	for _, k := range keys {
		parts = append(parts, fmt.Sprintf("%s: %s", k, strings.Join(ve.fields[k], ", ")))
	}
	return "validation failed: " + strings.Join(parts, "; ")
}

func (ve *ValidationError) Is(target error) bool { return target == ErrValidation }

// Invalid is shorthand for a single-field validation failure.
func Invalid(field, msg string) error {
	ve := NewValidationError()
	ve.Add(field, msg)
	return ve
}

// AsValidation extracts field details when err carries a ValidationError.
func AsValidation(err error) (*ValidationError, bool) {
	var ve *ValidationError
	if errors.As(err, &ve) {
		return ve, true
	}
	return nil, false
}

package tzif

import (
	"errors"
	"fmt"
)

var (
	// ErrBadMagic is returned when a header does not start with Magic.
	ErrBadMagic = errors.New("incorrect TZ_MAGIC, not a zoneinfo file")

	// ErrTruncated is returned when the input ends before a header or an
	// array has been read completely.
	ErrTruncated = errors.New("truncated input")

	// ErrMalformed marks findings reported by Check.
	ErrMalformed = errors.New("malformed")
)

// DecodeError reports which section and which field failed to decode.
type DecodeError struct {
	Section Width
	Field   string
	Err     error
}

func (e *DecodeError) Error() string {
	return fmt.Sprintf("%v: %s: %v", e.Section, e.Field, e.Err)
}

func (e *DecodeError) Unwrap() error { return e.Err }

package errors

import (
	"errors"
	"fmt"
)

var (
	ErrNotFound        = errors.New("not found")
	ErrInvalidInput    = errors.New("invalid input")
	ErrConflict        = errors.New("conflict")
	ErrUpstream        = errors.New("upstream request failed")
	ErrUnauthorized    = errors.New("unauthorized user")
	ErrNothingSelected = errors.New("no channels selected")
	ErrSuperseded      = errors.New("superseded by a newer request")

	// ErrChannelNotFound matches ErrNotFound with errors.Is.
	ErrChannelNotFound = fmt.Errorf("channel %w", ErrNotFound)
	ErrInvalidFilter   = fmt.Errorf("%w: filter", ErrInvalidInput)
)

// IsNotFound reports whether err matches ErrNotFound.
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// IsConflict reports whether err matches ErrConflict.
func IsConflict(err error) bool {
	return errors.Is(err, ErrConflict)
}

// Is reports whether any error in err's tree matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

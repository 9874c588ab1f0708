package errors

import (
	"errors"
	"fmt"
)

var (
	// ErrInternal marks failures of a backing dependency (storage, mostly).
	ErrInternal = errors.New("internal error")

	// ErrQueueFull marks a broadcast dropped because the dispatch queue is
	// saturated. The donation itself is already persisted at that point.
	ErrQueueFull = errors.New("broadcast queue full")
)

func NewInternal(format string, a ...any) error {
	return fmt.Errorf("%w: %s", ErrInternal, fmt.Sprintf(format, a...))
}

func IsInternal(err error) bool {
	return errors.Is(err, ErrInternal)
}

func IsQueueFull(err error) bool {
	return errors.Is(err, ErrQueueFull)
}

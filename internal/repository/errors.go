package repository

import "errors"

var (
	// ErrCorrupt is returned when a stored value cannot be decoded
	ErrCorrupt = errors.New("corrupt stored value")

	// ErrSequenceExhausted is returned when a sequence counter cannot be incremented
	ErrSequenceExhausted = errors.New("sequence exhausted")
)

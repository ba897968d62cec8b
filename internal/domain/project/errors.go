package project

import "errors"

var (
	// ErrAlreadyClosed indicates the project is not active.
	ErrAlreadyClosed = errors.New("project is already closed")
)

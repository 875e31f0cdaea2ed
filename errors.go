package schedsync

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a document is not present in the store
	ErrNotFound = errors.New("not found")
	// ErrInvalidInput is returned when request validation fails
	ErrInvalidInput = errors.New("invalid input")
	// ErrMissingContent is returned when an upload lacks a filename or content
	ErrMissingContent = fmt.Errorf("%w: missing filename or content", ErrInvalidInput)
	// ErrFilenameNotAllowed is returned when an upload targets a name outside the allow-list
	ErrFilenameNotAllowed = fmt.Errorf("%w: filename not allowed", ErrInvalidInput)
)

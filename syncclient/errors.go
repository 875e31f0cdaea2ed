package syncclient

import (
	"errors"
	"net/http"
	"strconv"
)

// Errors for profile operations.
var (
	ErrProfileNotFound = errors.New("profile not found")
	ErrNoProfiles      = errors.New("no profiles configured")
	ErrProfileExists   = errors.New("profile already exists")
)

// Errors for configuration and input validation.
var (
	ErrConfigRequired  = errors.New("config is required")
	ErrDataDirRequired = errors.New("data directory is required")
	ErrEmptyFilename   = errors.New("filename is required")
)

// APIError is a non-200 answer from the gateway. Message holds the "error"
// field of the JSON body when there is one, the raw body otherwise.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return "server error: " + strconv.Itoa(e.StatusCode) + " - " + e.Message
}

// Is reports whether target is an *APIError with the same StatusCode.
func (e *APIError) Is(target error) bool {
	var t *APIError
	if !errors.As(target, &t) {
		return false
	}
	return t.StatusCode == e.StatusCode
}

// ErrNotFound matches any 404 from the gateway via errors.Is.
var ErrNotFound = &APIError{StatusCode: http.StatusNotFound}

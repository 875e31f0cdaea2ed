package http

import (
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/sagarc03/schedsync"
)

// Client-facing messages. Callers match on these strings, so they are part of the API.
const (
	MsgMissingContent  = "Missing filename or content"
	MsgInvalidFilename = "Invalid filename. Only scheduler JSON files allowed."
	MsgFileNotFound    = "File not found"
	MsgRouteNotFound   = "Not found"
)

// ErrorResponse represents a JSON error response
type ErrorResponse struct {
	Error string `json:"error"`
}

// WriteError writes a JSON error response
func WriteError(w http.ResponseWriter, code int, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	if err := json.NewEncoder(w).Encode(ErrorResponse{Error: message}); err != nil {
		slog.Error("failed to encode error response", "error", err)
	}
}

// HandleError writes appropriate error response based on error type.
// Anything not recognised is a fault and is reported as 500 with its message.
func HandleError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, schedsync.ErrMissingContent):
		WriteError(w, http.StatusBadRequest, MsgMissingContent)
	case errors.Is(err, schedsync.ErrFilenameNotAllowed):
		WriteError(w, http.StatusBadRequest, MsgInvalidFilename)
	case errors.Is(err, schedsync.ErrNotFound):
		WriteError(w, http.StatusNotFound, MsgFileNotFound)
	default:
		slog.Error("request error", "error", err)
		WriteError(w, http.StatusInternalServerError, err.Error())
	}
}

// WriteJSON writes a JSON response
func WriteJSON(w http.ResponseWriter, code int, data any) error {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	return json.NewEncoder(w).Encode(data)
}

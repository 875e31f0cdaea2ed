package http_test

import (
	"errors"
	"fmt"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/sagarc03/schedsync"
	schedhttp "github.com/sagarc03/schedsync/http"
	"github.com/stretchr/testify/assert"
)

func TestHandleError_NotFound(t *testing.T) {
	rec := httptest.NewRecorder()

	schedhttp.HandleError(rec, schedsync.ErrNotFound)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.JSONEq(t, `{"error":"File not found"}`, rec.Body.String())
}

func TestHandleError_MissingContent(t *testing.T) {
	rec := httptest.NewRecorder()

	schedhttp.HandleError(rec, fmt.Errorf("upload document: %w", schedsync.ErrMissingContent))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Missing filename or content"}`, rec.Body.String())
}

func TestHandleError_FilenameNotAllowed(t *testing.T) {
	rec := httptest.NewRecorder()

	schedhttp.HandleError(rec, fmt.Errorf("upload document x: %w", schedsync.ErrFilenameNotAllowed))

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.JSONEq(t, `{"error":"Invalid filename. Only scheduler JSON files allowed."}`, rec.Body.String())
}

func TestHandleError_InternalError(t *testing.T) {
	rec := httptest.NewRecorder()

	schedhttp.HandleError(rec, errors.New("bucket unreachable"))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
	assert.JSONEq(t, `{"error":"bucket unreachable"}`, rec.Body.String())
}

func TestHandleError_BareInvalidInputIsFault(t *testing.T) {
	rec := httptest.NewRecorder()

	schedhttp.HandleError(rec, fmt.Errorf("put: %w", schedsync.ErrInvalidInput))

	assert.Equal(t, http.StatusInternalServerError, rec.Code)
}

func TestHandleError_WrappedNotFound(t *testing.T) {
	rec := httptest.NewRecorder()

	wrappedErr := errors.Join(errors.New("context"), schedsync.ErrNotFound)
	schedhttp.HandleError(rec, wrappedErr)

	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Contains(t, rec.Body.String(), "File not found")
}

func TestWriteError_Success(t *testing.T) {
	rec := httptest.NewRecorder()

	schedhttp.WriteError(rec, http.StatusBadRequest, "Invalid request")

	assert.Equal(t, http.StatusBadRequest, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.JSONEq(t, `{"error":"Invalid request"}`, rec.Body.String())
}

func TestWriteJSON_Success(t *testing.T) {
	rec := httptest.NewRecorder()

	data := map[string]string{"key": "value"}
	err := schedhttp.WriteJSON(rec, http.StatusOK, data)

	assert.NoError(t, err)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	assert.Contains(t, rec.Body.String(), `"key":"value"`)
}

func TestWriteJSON_EncodingError(t *testing.T) {
	rec := httptest.NewRecorder()

	// Channels cannot be JSON encoded
	data := make(chan int)
	err := schedhttp.WriteJSON(rec, http.StatusOK, data)

	assert.Error(t, err)
}

package schedsync

import (
	"context"
	"fmt"
)

// ObjectStore defines the key-object store the gateway synchronizes against.
// Implementations can use an in-process map, the local filesystem, a SQL
// database, Redis or any S3-compatible bucket.
//
// All methods accept a context for cancellation. Implementations must be safe
// for concurrent use; the gateway performs at most one call per request and
// never coordinates between calls.
type ObjectStore interface {
	// List returns every key currently held by the store.
	//
	// Implementations should return an empty, non-nil slice when the store is
	// empty. Order is unspecified.
	List(ctx context.Context) ([]string, error)

	// Put stores body under key, replacing any previous value.
	//
	// Parameters:
	//   - ctx: Context for cancellation and timeout
	//   - key: The document name
	//   - body: Full document content
	//   - contentType: Content type tag recorded with the object
	//
	// Put is last-write-wins: there is no merge and no history.
	Put(ctx context.Context, key string, body []byte, contentType string) error

	// Get retrieves the object stored under key.
	//
	// Returns:
	//   - Object: The complete stored object
	//   - error: ErrNotFound if no object exists under key, or other storage errors
	//
	// Implementations must never return a partially read body with a nil error.
	Get(ctx context.Context, key string) (Object, error)
}

// Pinger is implemented by stores that can report whether their backend is reachable.
type Pinger interface {
	Ping(ctx context.Context) error
}

// Service validates requests and forwards them to an ObjectStore.
type Service struct {
	store ObjectStore
}

// NewService creates a Service backed by store.
func NewService(store ObjectStore) *Service {
	return &Service{store: store}
}

// List enumerates all keys in the store.
func (s *Service) List(ctx context.Context) (ListResult, error) {
	keys, err := s.store.List(ctx)
	if err != nil {
		return ListResult{}, fmt.Errorf("list documents: %w", err)
	}

	if keys == nil {
		keys = []string{}
	}

	return ListResult{Files: keys, Count: len(keys)}, nil
}

// Upload writes a document after checking that both fields are present and
// that the filename is on the allow-list. Nothing is written when validation
// fails.
//
// Error types returned:
//   - ErrMissingContent: Filename or content is empty
//   - ErrFilenameNotAllowed: Filename is not one of AllowedFiles
//   - Wrapped storage errors: Issues writing to the store
func (s *Service) Upload(ctx context.Context, req UploadRequest) (UploadResult, error) {
	if req.Filename == "" || req.Content == "" {
		return UploadResult{}, fmt.Errorf("upload document: %w", ErrMissingContent)
	}

	if !IsAllowedFilename(req.Filename) {
		return UploadResult{}, fmt.Errorf("upload document %s: %w", req.Filename, ErrFilenameNotAllowed)
	}

	if err := s.store.Put(ctx, req.Filename, []byte(req.Content), JSONContentType); err != nil {
		return UploadResult{}, fmt.Errorf("upload document %s: %w", req.Filename, err)
	}

	return UploadResult{
		Success:  true,
		Filename: req.Filename,
		Size:     ContentLength(req.Content),
	}, nil
}

// Download returns the object stored under filename.
//
// The filename is deliberately not checked against AllowedFiles so that keys
// written by other tools remain retrievable.
func (s *Service) Download(ctx context.Context, filename string) (Object, error) {
	if filename == "" {
		return Object{}, fmt.Errorf("download document: %w", ErrNotFound)
	}

	obj, err := s.store.Get(ctx, filename)
	if err != nil {
		return Object{}, fmt.Errorf("download document %s: %w", filename, err)
	}

	return obj, nil
}

// Describe returns the static service description.
func (s *Service) Describe() ServiceDescription {
	return Describe()
}

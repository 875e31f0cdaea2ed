// Package filesystem provides a file system storage backend for schedsync.
// Each key is stored as one file under a sandboxed root. Writes are atomic
// (temp file then rename) and etags are SHA256 of the content.
package filesystem

import (
	"context"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"log/slog"
	"mime"
	"os"
	"path"
	"path/filepath"
	"strings"
	"unicode"
	"unicode/utf8"

	"github.com/google/uuid"
	"github.com/sagarc03/schedsync"
)

const tmpPrefix = ".t"

// Store provides file system storage operations.
type Store struct {
	root *os.Root
}

// NewFileStorage creates a new Store with the given root directory.
// The root provides sandboxed file operations preventing path traversal.
func NewFileStorage(root *os.Root) *Store {
	return &Store{root: root}
}

// Get reads the whole file stored under key. Returns schedsync.ErrNotFound if
// the file does not exist or key cannot name a file inside the root.
func (s *Store) Get(ctx context.Context, key string) (schedsync.Object, error) {
	if err := ctx.Err(); err != nil {
		return schedsync.Object{}, err
	}

	if !isValidKey(key) {
		return schedsync.Object{}, schedsync.ErrNotFound
	}

	f, err := s.root.Open(key)
	if err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return schedsync.Object{}, schedsync.ErrNotFound
		}
		return schedsync.Object{}, fmt.Errorf("failed to open file: %w", err)
	}
	defer func() { _ = f.Close() }()

	info, err := f.Stat()
	if err != nil {
		return schedsync.Object{}, fmt.Errorf("failed to stat file: %w", err)
	}

	if info.IsDir() {
		return schedsync.Object{}, schedsync.ErrNotFound
	}

	body, err := io.ReadAll(&ctxReader{ctx: ctx, r: f})
	if err != nil {
		return schedsync.Object{}, fmt.Errorf("failed to read file: %w", err)
	}

	return schedsync.Object{
		Key:         key,
		Body:        body,
		ContentType: detectContentType(key),
		Size:        int64(len(body)),
		ETag:        schedsync.ComputeETag(body),
		UpdatedAt:   info.ModTime().UTC(),
	}, nil
}

type ctxReader struct {
	ctx context.Context
	r   io.Reader
}

func (r *ctxReader) Read(p []byte) (n int, err error) {
	if err := r.ctx.Err(); err != nil {
		return 0, err
	}
	return r.r.Read(p)
}

// Put atomically writes body to key using a temp file and rename.
// It creates intermediate directories as needed. The content type is not
// persisted; Get derives it from the key's extension.
func (s *Store) Put(ctx context.Context, key string, body []byte, _ string) error {
	if ctxErr := ctx.Err(); ctxErr != nil {
		return ctxErr
	}

	if !isValidKey(key) {
		return fmt.Errorf("put %q: %w", key, schedsync.ErrInvalidInput)
	}

	tmpFile := tmpFileName()
	t, createErr := s.root.Create(tmpFile)
	if createErr != nil {
		return fmt.Errorf("could not open temp file: %w", createErr)
	}

	success := false
	defer func() {
		if closeErr := t.Close(); closeErr != nil {
			slog.Warn("failed to close tmp file", "err", closeErr)
		}
		if !success {
			if rmErr := s.root.Remove(tmpFile); rmErr != nil {
				slog.Warn("failed to remove tmp file", "err", rmErr)
			}
		}
	}()

	if _, err := t.Write(body); err != nil {
		return fmt.Errorf("could not write file contents: %w", err)
	}

	if err := t.Sync(); err != nil {
		return fmt.Errorf("could not sync written file: %w", err)
	}

	destDir := path.Dir(key)
	if destDir != "." {
		if err := s.root.MkdirAll(destDir, 0o755); err != nil {
			return fmt.Errorf("could not create intermediate directories: %w", err)
		}
	}

	if renameErr := s.root.Rename(tmpFile, key); renameErr != nil {
		return fmt.Errorf("failed to rename file: %w", renameErr)
	}

	success = true
	return nil
}

// List recursively walks the root directory and returns every stored key,
// using forward slashes for nested keys. In-flight temp files are skipped.
func (s *Store) List(ctx context.Context) ([]string, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	keys := []string{}

	err := s.walkDir(ctx, ".", &keys)
	if err != nil {
		return nil, fmt.Errorf("failed to list files: %w", err)
	}

	return keys, nil
}

func (s *Store) walkDir(ctx context.Context, dir string, keys *[]string) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	dirEntries, err := fs.ReadDir(s.root.FS(), dir)
	if err != nil {
		return err
	}

	for _, entry := range dirEntries {
		if err := ctx.Err(); err != nil {
			return err
		}

		entryPath := path.Join(dir, entry.Name())

		if entry.IsDir() {
			if err := s.walkDir(ctx, entryPath, keys); err != nil {
				return err
			}
			continue
		}

		if dir == "." && strings.HasPrefix(entry.Name(), tmpPrefix) {
			continue
		}

		*keys = append(*keys, entryPath)
	}

	return nil
}

// Ping checks that the storage root is still accessible.
func (s *Store) Ping(ctx context.Context) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	if _, err := s.root.Stat("."); err != nil {
		return fmt.Errorf("ping storage root: %w", err)
	}
	return nil
}

// isValidKey checks that key names a file strictly inside the root:
//   - not empty, ".", or absolute
//   - no trailing slash, ".." or "." segments, or empty segments
//   - valid UTF-8 without control characters or backslashes
func isValidKey(key string) bool {
	if key == "" || key == "." || key[0] == '/' {
		return false
	}

	if strings.HasSuffix(key, "/") || strings.Contains(key, "//") || strings.Contains(key, `\`) {
		return false
	}

	if !utf8.ValidString(key) {
		return false
	}

	for _, seg := range strings.Split(key, "/") {
		if seg == "." || seg == ".." {
			return false
		}
	}

	for _, r := range key {
		if r < 0x20 || r == 0x7f || (unicode.IsSpace(r) && r != ' ') {
			return false
		}
	}

	return true
}

func detectContentType(key string) string {
	ext := filepath.Ext(key)
	contentType := mime.TypeByExtension(ext)

	if contentType == "" {
		return "application/octet-stream"
	}

	return contentType
}

func tmpFileName() string {
	return fmt.Sprintf("%s%s", tmpPrefix, uuid.New().String())
}

package http

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/sagarc03/schedsync"
)

var errNullBody = errors.New("upload body is null")

// decodeUpload parses an upload body. The whole body must be a single JSON
// value. Fields are read loosely: a body that is not an object carries no
// fields, and a field counts as absent when it is null, false, 0 or "".
// A present filename that is not a string can never match the allow-list.
func decodeUpload(r io.Reader) (schedsync.UploadRequest, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return schedsync.UploadRequest{}, fmt.Errorf("read upload body: %w", err)
	}

	var doc any
	if err := json.Unmarshal(data, &doc); err != nil {
		return schedsync.UploadRequest{}, fmt.Errorf("decode upload body: %w", err)
	}

	fields, ok := doc.(map[string]any)
	if !ok {
		if doc == nil {
			return schedsync.UploadRequest{}, fmt.Errorf("decode upload body: %w", errNullBody)
		}
		return schedsync.UploadRequest{}, nil
	}

	filename, content := fields["filename"], fields["content"]
	if !truthy(filename) || !truthy(content) {
		return schedsync.UploadRequest{}, nil
	}

	name, ok := filename.(string)
	if !ok || !schedsync.IsAllowedFilename(name) {
		return schedsync.UploadRequest{}, fmt.Errorf("upload document: %w", schedsync.ErrFilenameNotAllowed)
	}

	text, ok := content.(string)
	if !ok {
		return schedsync.UploadRequest{}, fmt.Errorf("upload document %s: content must be a string, got %T", name, content)
	}

	return schedsync.UploadRequest{Filename: name, Content: text}, nil
}

func truthy(v any) bool {
	switch v := v.(type) {
	case nil:
		return false
	case bool:
		return v
	case float64:
		return v != 0
	case string:
		return v != ""
	default:
		return true
	}
}

package schedsync

import (
	"time"
)

// JSONContentType is the content type every uploaded document is tagged with.
const JSONContentType = "application/json"

// ServiceName and ServiceVersion are reported by the describe endpoint.
const (
	ServiceName    = "Daily Scheduler Sync API"
	ServiceVersion = "1.0.0"
)

// AllowedFiles is the fixed set of document names accepted for upload.
var AllowedFiles = []string{
	"config.json",
	"tasks.json",
	"timer_state.json",
	"completed_log.json",
	"incomplete_history.json",
	"daily_stats.json",
}

// Object is a stored document as returned by an ObjectStore.
type Object struct {
	Key         string
	Body        []byte
	ContentType string
	Size        int64
	ETag        string
	UpdatedAt   time.Time
}

// UploadRequest is the JSON body accepted by the upload operation.
type UploadRequest struct {
	Filename string `json:"filename"`
	Content  string `json:"content"`
}

// UploadResult is returned after a document has been written.
type UploadResult struct {
	Success  bool   `json:"success"`
	Filename string `json:"filename"`
	Size     int    `json:"size"`
}

// ListResult enumerates the keys currently held by the store.
type ListResult struct {
	Files []string `json:"files"`
	Count int      `json:"count"`
}

// ServiceDescription is the static document served at the root path.
type ServiceDescription struct {
	Service      string            `json:"service"`
	Version      string            `json:"version"`
	Endpoints    map[string]string `json:"endpoints"`
	AllowedFiles []string          `json:"allowed_files"`
}

// Describe returns the static service description. It never touches the store.
func Describe() ServiceDescription {
	files := make([]string, len(AllowedFiles))
	copy(files, AllowedFiles)

	return ServiceDescription{
		Service: ServiceName,
		Version: ServiceVersion,
		Endpoints: map[string]string{
			"GET /list":               "List all files in bucket",
			"POST /upload":            "Upload JSON file (body: {filename, content})",
			"GET /download/:filename": "Download JSON file from R2",
		},
		AllowedFiles: files,
	}
}

package syncclient

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/sagarc03/schedsync"
)

// Remote is the part of the gateway API a Syncer needs. *Client implements it.
type Remote interface {
	Upload(ctx context.Context, filename, content string) (*schedsync.UploadResult, error)
	Download(ctx context.Context, filename string) ([]byte, error)
}

// Action records what happened to one file during a push or pull.
type Action string

const (
	ActionUploaded   Action = "uploaded"
	ActionDownloaded Action = "downloaded"
	ActionMerged     Action = "merged"
	ActionSkipped    Action = "skipped"
	ActionFailed     Action = "failed"
)

// FileResult is the outcome for a single document.
type FileResult struct {
	Filename string `json:"filename"`
	Action   Action `json:"action"`
	Size     int    `json:"size,omitempty"`
	Err      error  `json:"-"` // nil unless Action is ActionFailed
}

// SyncStats aggregates the per-file results of a push or pull.
type SyncStats struct {
	Succeeded int          `json:"succeeded"`
	Failed    int          `json:"failed"`
	Skipped   int          `json:"skipped"`
	Results   []FileResult `json:"results"`
}

func (s *SyncStats) add(r FileResult) {
	switch r.Action {
	case ActionFailed:
		s.Failed++
	case ActionSkipped:
		s.Skipped++
	default:
		s.Succeeded++
	}
	s.Results = append(s.Results, r)
}

// SyncReport is the outcome of a full Sync.
type SyncReport struct {
	Push SyncStats `json:"push"`
	Pull SyncStats `json:"pull"`
}

// OK reports whether neither phase had a failure.
func (r *SyncReport) OK() bool {
	return r.Push.Failed == 0 && r.Pull.Failed == 0
}

// Syncer mirrors the scheduler's data directory to and from a gateway.
type Syncer struct {
	Client  Remote
	DataDir string
	// Files lists the documents to sync, in order. Empty means schedsync.AllowedFiles.
	Files []string
}

// NewSyncer returns a Syncer over every allow-listed document in dataDir.
func NewSyncer(client Remote, dataDir string) (*Syncer, error) {
	if dataDir == "" {
		return nil, ErrDataDirRequired
	}
	return &Syncer{Client: client, DataDir: dataDir}, nil
}

func (s *Syncer) files() []string {
	if len(s.Files) > 0 {
		return s.Files
	}
	return schedsync.AllowedFiles
}

// PushAll uploads every document present locally. Missing files are skipped.
// Per-file failures are recorded in the stats; only a canceled context
// stops the run early.
func (s *Syncer) PushAll(ctx context.Context) (SyncStats, error) {
	var stats SyncStats
	for _, name := range s.files() {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		stats.add(s.push(ctx, name))
	}
	return stats, nil
}

func (s *Syncer) push(ctx context.Context, name string) FileResult {
	content, err := os.ReadFile(filepath.Join(s.DataDir, name)) //#nosec G304 -- name comes from the allow-list
	if errors.Is(err, fs.ErrNotExist) {
		slog.Debug("skipping upload, file does not exist locally", "file", name)
		return FileResult{Filename: name, Action: ActionSkipped}
	}
	if err != nil {
		return FileResult{Filename: name, Action: ActionFailed, Err: fmt.Errorf("read local file: %w", err)}
	}

	result, err := s.Client.Upload(ctx, name, string(content))
	if err != nil {
		slog.Warn("upload failed", "file", name, "error", err)
		return FileResult{Filename: name, Action: ActionFailed, Err: err}
	}

	slog.Debug("uploaded", "file", name, "size", result.Size)
	return FileResult{Filename: name, Action: ActionUploaded, Size: result.Size}
}

// PullAll downloads every document. Documents the gateway does not have are
// skipped. tasks.json is merged with the local copy when one exists.
func (s *Syncer) PullAll(ctx context.Context) (SyncStats, error) {
	var stats SyncStats

	if err := os.MkdirAll(s.DataDir, 0o750); err != nil {
		return stats, fmt.Errorf("create data directory: %w", err)
	}

	for _, name := range s.files() {
		if err := ctx.Err(); err != nil {
			return stats, err
		}
		stats.add(s.pull(ctx, name))
	}
	return stats, nil
}

func (s *Syncer) pull(ctx context.Context, name string) FileResult {
	cloud, err := s.Client.Download(ctx, name)
	if errors.Is(err, ErrNotFound) {
		slog.Debug("skipping download, file not in cloud", "file", name)
		return FileResult{Filename: name, Action: ActionSkipped}
	}
	if err != nil {
		slog.Warn("download failed", "file", name, "error", err)
		return FileResult{Filename: name, Action: ActionFailed, Err: err}
	}

	path := filepath.Join(s.DataDir, name)
	content, action := cloud, ActionDownloaded

	if name == TasksFile {
		content, action = s.mergeWithLocal(path, cloud)
	}

	if err := os.WriteFile(path, content, 0o600); err != nil {
		return FileResult{Filename: name, Action: ActionFailed, Err: fmt.Errorf("write local file: %w", err)}
	}

	return FileResult{Filename: name, Action: action, Size: len(content)}
}

// mergeWithLocal applies MergeTasks against the local file at path. Without
// a usable local copy, or when the merge fails, the cloud copy wins.
func (s *Syncer) mergeWithLocal(path string, cloud []byte) ([]byte, Action) {
	local, err := os.ReadFile(path) //#nosec G304 -- path is inside DataDir
	if err != nil || len(local) == 0 {
		return cloud, ActionDownloaded
	}

	merged, err := MergeTasks(local, cloud)
	if err != nil {
		slog.Warn("tasks merge failed, using cloud version", "error", err)
		return cloud, ActionDownloaded
	}
	return merged, ActionMerged
}

// Sync pushes local changes, then pulls cloud updates.
func (s *Syncer) Sync(ctx context.Context) (*SyncReport, error) {
	report := &SyncReport{}

	var err error
	if report.Push, err = s.PushAll(ctx); err != nil {
		return report, fmt.Errorf("push: %w", err)
	}
	if report.Pull, err = s.PullAll(ctx); err != nil {
		return report, fmt.Errorf("pull: %w", err)
	}
	return report, nil
}

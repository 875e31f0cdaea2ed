package syncclient

import (
	"encoding/json"
	"fmt"
	"io"
	"slices"
	"strings"

	"github.com/sagarc03/schedsync"
)

// DownloadResult describes a document fetched to disk or stdout.
type DownloadResult struct {
	Filename  string `json:"filename"`
	LocalPath string `json:"local_path"`
	Size      int    `json:"size"`
}

// Formatter formats results for output.
type Formatter interface {
	FormatList(w io.Writer, result *schedsync.ListResult) error
	FormatUpload(w io.Writer, result *schedsync.UploadResult) error
	FormatDownload(w io.Writer, result *DownloadResult) error
	FormatStats(w io.Writer, phase string, stats *SyncStats) error
	FormatReport(w io.Writer, report *SyncReport) error
	FormatInfo(w io.Writer, desc *schedsync.ServiceDescription) error
	FormatPing(w io.Writer, endpoint string, err error) error
	FormatError(w io.Writer, err error) error
	FormatProfileList(w io.Writer, profiles []Profile, defaultName string) error
	FormatProfileShow(w io.Writer, profile Profile, isDefault bool) error
}

// NewFormatter returns the appropriate formatter based on flags.
func NewFormatter(jsonOutput, quiet bool) Formatter {
	if jsonOutput {
		return &JSONFormatter{}
	}
	return &HumanFormatter{Quiet: quiet}
}

// HumanFormatter outputs human-readable text. Quiet suppresses success lines.
type HumanFormatter struct {
	Quiet bool
}

func (f *HumanFormatter) FormatList(w io.Writer, result *schedsync.ListResult) error {
	if len(result.Files) == 0 {
		_, _ = fmt.Fprintln(w, "No files found")
		return nil
	}

	for _, name := range result.Files {
		_, _ = fmt.Fprintln(w, name)
	}
	if !f.Quiet {
		_, _ = fmt.Fprintf(w, "\n%d file(s)\n", result.Count)
	}
	return nil
}

func (f *HumanFormatter) FormatUpload(w io.Writer, result *schedsync.UploadResult) error {
	if !f.Quiet {
		_, _ = fmt.Fprintf(w, "Uploaded: %s (%s)\n", result.Filename, formatSize(result.Size))
	}
	return nil
}

func (f *HumanFormatter) FormatDownload(w io.Writer, result *DownloadResult) error {
	if f.Quiet || result.LocalPath == "-" {
		return nil
	}
	_, _ = fmt.Fprintf(w, "Downloaded: %s -> %s (%s)\n", result.Filename, result.LocalPath, formatSize(result.Size))
	return nil
}

func (f *HumanFormatter) FormatStats(w io.Writer, phase string, stats *SyncStats) error {
	for i := range stats.Results {
		r := &stats.Results[i]
		switch {
		case r.Err != nil:
			_, _ = fmt.Fprintf(w, "  x %s - %v\n", r.Filename, r.Err)
		case !f.Quiet:
			_, _ = fmt.Fprintf(w, "  %s %s (%s)\n", actionMarker(r.Action), r.Filename, r.Action)
		}
	}
	if !f.Quiet || stats.Failed > 0 {
		_, _ = fmt.Fprintf(w, "%s: %d succeeded, %d failed, %d skipped\n",
			capitalize(phase), stats.Succeeded, stats.Failed, stats.Skipped)
	}
	return nil
}

func (f *HumanFormatter) FormatReport(w io.Writer, report *SyncReport) error {
	_ = f.FormatStats(w, "push", &report.Push)
	_ = f.FormatStats(w, "pull", &report.Pull)

	if report.OK() {
		if !f.Quiet {
			_, _ = fmt.Fprintln(w, "Sync complete")
		}
	} else {
		_, _ = fmt.Fprintln(w, "Sync completed with errors")
	}
	return nil
}

func (f *HumanFormatter) FormatInfo(w io.Writer, desc *schedsync.ServiceDescription) error {
	_, _ = fmt.Fprintf(w, "Service: %s\n", desc.Service)
	_, _ = fmt.Fprintf(w, "Version: %s\n", desc.Version)

	_, _ = fmt.Fprintln(w, "Endpoints:")
	routes := make([]string, 0, len(desc.Endpoints))
	for route := range desc.Endpoints {
		routes = append(routes, route)
	}
	slices.Sort(routes)
	for _, route := range routes {
		_, _ = fmt.Fprintf(w, "  %-24s %s\n", route, desc.Endpoints[route])
	}

	_, _ = fmt.Fprintf(w, "Allowed files: %s\n", strings.Join(desc.AllowedFiles, ", "))
	return nil
}

func (f *HumanFormatter) FormatPing(w io.Writer, endpoint string, err error) error {
	if err != nil {
		_, _ = fmt.Fprintf(w, "Unreachable: %s - %v\n", endpoint, err)
		return nil
	}
	if !f.Quiet {
		_, _ = fmt.Fprintf(w, "OK: %s\n", endpoint)
	}
	return nil
}

func (f *HumanFormatter) FormatError(w io.Writer, err error) error {
	_, _ = fmt.Fprintf(w, "Error: %v\n", err)
	return nil
}

func (f *HumanFormatter) FormatProfileList(w io.Writer, profiles []Profile, defaultName string) error {
	maxNameLen := 4     // "NAME"
	maxEndpointLen := 8 // "ENDPOINT"
	for i := range profiles {
		maxNameLen = max(maxNameLen, len(profiles[i].Name))
		maxEndpointLen = max(maxEndpointLen, len(profiles[i].Endpoint))
	}
	maxNameLen = min(maxNameLen, 20)
	maxEndpointLen = min(maxEndpointLen, 50)

	_, _ = fmt.Fprintf(w, "  %-*s  %-*s  %s\n", maxNameLen, "NAME", maxEndpointLen, "ENDPOINT", "DATA DIR")
	_, _ = fmt.Fprintf(w, "  %s  %s  %s\n", strings.Repeat("-", maxNameLen), strings.Repeat("-", maxEndpointLen), strings.Repeat("-", 20))

	for i := range profiles {
		p := &profiles[i]
		marker := " "
		if p.Name == defaultName {
			marker = "*"
		}

		_, _ = fmt.Fprintf(w, "%s %-*s  %-*s  %s\n",
			marker,
			maxNameLen, truncate(p.Name, maxNameLen),
			maxEndpointLen, truncate(p.Endpoint, maxEndpointLen),
			orUnset(p.DataDir),
		)
	}

	return nil
}

func (f *HumanFormatter) FormatProfileShow(w io.Writer, profile Profile, isDefault bool) error {
	_, _ = fmt.Fprintf(w, "Name:     %s", profile.Name)
	if isDefault {
		_, _ = fmt.Fprintf(w, " (default)")
	}
	_, _ = fmt.Fprintln(w)
	_, _ = fmt.Fprintf(w, "Endpoint: %s\n", profile.Endpoint)
	_, _ = fmt.Fprintf(w, "Data dir: %s\n", orUnset(profile.DataDir))
	return nil
}

// JSONFormatter outputs JSON.
type JSONFormatter struct{}

func (f *JSONFormatter) FormatList(w io.Writer, result *schedsync.ListResult) error {
	return writeJSON(w, result)
}

func (f *JSONFormatter) FormatUpload(w io.Writer, result *schedsync.UploadResult) error {
	return writeJSON(w, result)
}

func (f *JSONFormatter) FormatDownload(w io.Writer, result *DownloadResult) error {
	if result.LocalPath == "-" {
		return nil
	}
	return writeJSON(w, result)
}

type jsonFileResult struct {
	Filename string `json:"filename"`
	Action   Action `json:"action"`
	Size     int    `json:"size,omitempty"`
	Error    string `json:"error,omitempty"`
}

type jsonStats struct {
	Succeeded int              `json:"succeeded"`
	Failed    int              `json:"failed"`
	Skipped   int              `json:"skipped"`
	Results   []jsonFileResult `json:"results"`
}

// toJSONStats converts errors to strings for JSON output.
func toJSONStats(stats *SyncStats) jsonStats {
	out := jsonStats{
		Succeeded: stats.Succeeded,
		Failed:    stats.Failed,
		Skipped:   stats.Skipped,
		Results:   make([]jsonFileResult, len(stats.Results)),
	}
	for i := range stats.Results {
		r := &stats.Results[i]
		jr := jsonFileResult{Filename: r.Filename, Action: r.Action, Size: r.Size}
		if r.Err != nil {
			jr.Error = r.Err.Error()
		}
		out.Results[i] = jr
	}
	return out
}

func (f *JSONFormatter) FormatStats(w io.Writer, phase string, stats *SyncStats) error {
	return writeJSON(w, struct {
		Phase string `json:"phase"`
		jsonStats
	}{Phase: phase, jsonStats: toJSONStats(stats)})
}

func (f *JSONFormatter) FormatReport(w io.Writer, report *SyncReport) error {
	return writeJSON(w, struct {
		Success bool      `json:"success"`
		Push    jsonStats `json:"push"`
		Pull    jsonStats `json:"pull"`
	}{
		Success: report.OK(),
		Push:    toJSONStats(&report.Push),
		Pull:    toJSONStats(&report.Pull),
	})
}

func (f *JSONFormatter) FormatInfo(w io.Writer, desc *schedsync.ServiceDescription) error {
	return writeJSON(w, desc)
}

func (f *JSONFormatter) FormatPing(w io.Writer, endpoint string, err error) error {
	output := struct {
		Endpoint string `json:"endpoint"`
		OK       bool   `json:"ok"`
		Error    string `json:"error,omitempty"`
	}{
		Endpoint: endpoint,
		OK:       err == nil,
	}
	if err != nil {
		output.Error = err.Error()
	}
	return writeJSON(w, output)
}

func (f *JSONFormatter) FormatError(w io.Writer, err error) error {
	output := struct {
		Error string `json:"error"`
	}{
		Error: err.Error(),
	}
	return writeJSON(w, output)
}

func (f *JSONFormatter) FormatProfileList(w io.Writer, profiles []Profile, defaultName string) error {
	type jsonProfile struct {
		Name     string `json:"name"`
		Endpoint string `json:"endpoint"`
		DataDir  string `json:"data_dir,omitempty"`
		Default  bool   `json:"default,omitempty"`
	}

	output := struct {
		Profiles []jsonProfile `json:"profiles"`
	}{
		Profiles: make([]jsonProfile, len(profiles)),
	}

	for i := range profiles {
		p := &profiles[i]
		output.Profiles[i] = jsonProfile{
			Name:     p.Name,
			Endpoint: p.Endpoint,
			DataDir:  p.DataDir,
			Default:  p.Name == defaultName,
		}
	}

	return writeJSON(w, output)
}

func (f *JSONFormatter) FormatProfileShow(w io.Writer, profile Profile, isDefault bool) error {
	output := struct {
		Name     string `json:"name"`
		Endpoint string `json:"endpoint"`
		DataDir  string `json:"data_dir"`
		Default  bool   `json:"default"`
	}{
		Name:     profile.Name,
		Endpoint: profile.Endpoint,
		DataDir:  profile.DataDir,
		Default:  isDefault,
	}
	return writeJSON(w, output)
}

// writeJSON writes a value as indented JSON.
func writeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

// formatSize formats a size in bytes as human-readable text.
func formatSize(n int) string {
	const (
		KB = 1024
		MB = KB * 1024
	)

	switch {
	case n >= MB:
		return fmt.Sprintf("%.1f MB", float64(n)/MB)
	case n >= KB:
		return fmt.Sprintf("%.1f KB", float64(n)/KB)
	default:
		return fmt.Sprintf("%d B", n)
	}
}

func actionMarker(a Action) string {
	if a == ActionSkipped {
		return "-"
	}
	return "+"
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}

func truncate(s string, n int) string {
	if len(s) <= n {
		return s
	}
	return s[:n-3] + "..."
}

func orUnset(s string) string {
	if s == "" {
		return "(not set)"
	}
	return s
}

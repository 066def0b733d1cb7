package report

import (
	"encoding/json"
	"os"
	"path/filepath"
)

// FileWriter implements domain.ArtifactWriter with JSON files on disk.
type FileWriter struct{}

func New() *FileWriter { return &FileWriter{} }

// WriteJSON marshals v with indentation and writes it to path, creating
// parent directories as needed.
func (w *FileWriter) WriteJSON(path string, v any) error {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		return err
	}
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	return os.WriteFile(path, append(data, '\n'), 0o644)
}

// EvidenceDir returns the conventional drift evidence directory for a
// target, or "" when the target has no 70_evidence/ area. A missing
// evidence area means console-only output, never a failed run.
func (w *FileWriter) EvidenceDir(root string) string {
	if _, err := os.Stat(filepath.Join(root, "70_evidence")); err != nil {
		return ""
	}
	return filepath.Join(root, "70_evidence", "drift")
}

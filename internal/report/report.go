package report

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/hamed0406/sitesmoke/internal/domain"
)

// File names are stable so CI jobs can archive them by pattern.
const (
	JSONFileName = "test_summary.json"
	HTMLFileName = "multi_site_report.html"
)

// Writer persists run summaries under a report directory. Serialization
// failure is fatal to the run: with no summary on disk there is nothing to
// report on.
type Writer struct {
	Dir string
}

func NewWriter(dir string) *Writer {
	if dir == "" {
		dir = "reports"
	}
	return &Writer{Dir: dir}
}

// WriteJSON writes the machine-readable summary and returns its path.
func (w *Writer) WriteJSON(s domain.RunSummary) (string, error) {
	if err := os.MkdirAll(w.Dir, 0o755); err != nil {
		return "", fmt.Errorf("create report dir: %w", err)
	}
	data, err := json.MarshalIndent(s, "", "  ")
	if err != nil {
		return "", fmt.Errorf("encode summary: %w", err)
	}
	path := filepath.Join(w.Dir, JSONFileName)
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write summary: %w", err)
	}
	return path, nil
}

// Load reads a summary back from disk. The API server uses it when the
// runner and the server share only the report directory.
func Load(path string) (domain.RunSummary, error) {
	var s domain.RunSummary
	data, err := os.ReadFile(path)
	if err != nil {
		return s, fmt.Errorf("read summary: %w", err)
	}
	if err := json.Unmarshal(data, &s); err != nil {
		return s, fmt.Errorf("decode summary: %w", err)
	}
	return s, nil
}

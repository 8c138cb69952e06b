// Package results persists quote snapshots and screenshots under a single
// results directory.
package results

import (
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/use-agent/quotesnap/models"
)

// Writer writes run artifacts into its results directory.
type Writer struct {
	dir string
}

// NewWriter creates the results directory if absent and returns a Writer
// rooted there.
func NewWriter(dir string) (*Writer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("create results dir %q: %w", dir, err)
	}
	return &Writer{dir: dir}, nil
}

// Dir returns the results directory.
func (w *Writer) Dir() string {
	return w.dir
}

// SaveSnapshot serializes snap as 2-space-indented JSON to
// <dir>/<symbol>_yahoo.json, overwriting any previous file of the same name,
// and returns the written path.
func (w *Writer) SaveSnapshot(snap *models.Snapshot) (string, error) {
	data, err := json.MarshalIndent(snap, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshal snapshot: %w", err)
	}
	path := filepath.Join(w.dir, snap.Symbol+"_yahoo.json")
	if err := os.WriteFile(path, data, 0o644); err != nil {
		return "", fmt.Errorf("write snapshot: %w", err)
	}
	return path, nil
}

// ScreenshotPath returns where the symbol's screenshot belongs.
func (w *Writer) ScreenshotPath(symbol string) string {
	return filepath.Join(w.dir, symbol+"_screenshot.png")
}

// Package fs provides file-based persistence for crawl results.
package fs

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/cespare/xxhash/v2"
	"github.com/fwojciec/specstitch"
)

// Ensure Writer implements specstitch.ResultWriter at compile time.
var _ specstitch.ResultWriter = (*Writer)(nil)

// Writer writes the finished definition and per-page payload blobs to disk.
type Writer struct {
	definitionPath string
	payloadDir     string
}

// NewWriter creates a Writer that writes the finished definition to
// definitionPath and per-page payload blobs under payloadDir.
func NewWriter(definitionPath, payloadDir string) *Writer {
	return &Writer{definitionPath: definitionPath, payloadDir: payloadDir}
}

// WriteDefinition writes the finished definition as pretty-printed JSON.
func (w *Writer) WriteDefinition(_ context.Context, def map[string]any) error {
	data, err := json.MarshalIndent(def, "", "  ")
	if err != nil {
		return fmt.Errorf("encode definition: %w", err)
	}

	if err := os.MkdirAll(filepath.Dir(w.definitionPath), 0755); err != nil {
		return err
	}
	return os.WriteFile(w.definitionPath, append(data, '\n'), 0644)
}

// WritePayload writes one page's payload blob for later inspection.
// The file is named by a hash of the page URL so a rerun overwrites the
// previous blob for the same page.
func (w *Writer) WritePayload(_ context.Context, page *specstitch.PageProps) error {
	payload := page.Raw
	if payload == "" {
		data, err := json.Marshal(page.Props)
		if err != nil {
			return fmt.Errorf("encode payload for %s: %w", page.URL, err)
		}
		payload = string(data)
	}

	if err := os.MkdirAll(w.payloadDir, 0755); err != nil {
		return err
	}

	name := fmt.Sprintf("%016x.json", xxhash.Sum64String(page.URL))
	return os.WriteFile(filepath.Join(w.payloadDir, name), []byte(payload), 0644)
}

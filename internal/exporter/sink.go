package exporter

import (
	"fmt"
	"os"
	"path/filepath"
)

// Save writes blob into dir and returns the full path
func Save(dir string, blob Blob) (string, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return "", fmt.Errorf("failed to create output directory: %w", err)
	}

	path := filepath.Join(dir, filepath.Base(blob.Name))
	if err := os.WriteFile(path, blob.Data, 0644); err != nil {
		return "", fmt.Errorf("failed to write %s: %w", path, err)
	}
	return path, nil
}

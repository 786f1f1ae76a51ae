// Package analysis orchestrates the ChargeScope pipeline: provider fetches,
// scoring, and result persistence for each analysis kind.
package analysis

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
)

// StorageClient abstracts blob storage for full report documents.
type StorageClient interface {
	PutReport(ctx context.Context, analysisID string, data []byte) error
	GetReport(ctx context.Context, analysisID string) ([]byte, error)
}

// LocalStorage implements StorageClient using the local filesystem.
// Useful for development, testing, and the CLI.
type LocalStorage struct {
	BaseDir string
}

// NewLocalStorage creates a LocalStorage rooted at the given directory.
func NewLocalStorage(baseDir string) *LocalStorage {
	return &LocalStorage{BaseDir: baseDir}
}

func (s *LocalStorage) path(analysisID string) string {
	return filepath.Join(s.BaseDir, "reports", analysisID+".json")
}

// PutReport stores a report blob.
func (s *LocalStorage) PutReport(ctx context.Context, analysisID string, data []byte) error {
	path := s.path(analysisID)
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return fmt.Errorf("create directory: %w", err)
	}
	return os.WriteFile(path, data, 0o644)
}

// GetReport retrieves a report blob.
func (s *LocalStorage) GetReport(ctx context.Context, analysisID string) ([]byte, error) {
	return os.ReadFile(s.path(analysisID))
}

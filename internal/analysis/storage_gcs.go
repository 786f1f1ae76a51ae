package analysis

import (
	"context"
	"fmt"
	"io"

	gcs "cloud.google.com/go/storage"
)

// GCSStorage implements StorageClient using Google Cloud Storage.
type GCSStorage struct {
	client *gcs.Client
	bucket string
}

// NewGCSStorage creates a GCS-backed StorageClient. It uses Application
// Default Credentials (Workload Identity, SA keys, gcloud auth).
func NewGCSStorage(ctx context.Context, bucket string) (*GCSStorage, error) {
	client, err := gcs.NewClient(ctx)
	if err != nil {
		return nil, fmt.Errorf("create gcs client: %w", err)
	}
	return &GCSStorage{client: client, bucket: bucket}, nil
}

func (s *GCSStorage) key(analysisID string) string {
	return "reports/" + analysisID + ".json"
}

// PutReport stores a report blob.
func (s *GCSStorage) PutReport(ctx context.Context, analysisID string, data []byte) error {
	w := s.client.Bucket(s.bucket).Object(s.key(analysisID)).NewWriter(ctx)
	w.ContentType = "application/json"
	if _, err := w.Write(data); err != nil {
		w.Close()
		return fmt.Errorf("gcs write %s: %w", s.key(analysisID), err)
	}
	if err := w.Close(); err != nil {
		return fmt.Errorf("gcs close %s: %w", s.key(analysisID), err)
	}
	return nil
}

// GetReport retrieves a report blob.
func (s *GCSStorage) GetReport(ctx context.Context, analysisID string) ([]byte, error) {
	r, err := s.client.Bucket(s.bucket).Object(s.key(analysisID)).NewReader(ctx)
	if err != nil {
		return nil, fmt.Errorf("gcs read %s: %w", s.key(analysisID), err)
	}
	defer r.Close()
	return io.ReadAll(r)
}

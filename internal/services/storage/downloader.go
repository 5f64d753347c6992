package storage

import (
	"context"
	"fmt"
)

// Download fetches an object from the Supabase bucket, rejecting objects
// larger than maxSize bytes.
func (s *StorageService) Download(ctx context.Context, path string, maxSize int64) ([]byte, error) {
	if !s.UploadsEnabled() {
		return nil, ErrUploadsDisabled
	}
	data, err := s.sbClient.DownloadFile(s.bucket, path)
	if err != nil {
		return nil, fmt.Errorf("download %s/%s: %w", s.bucket, path, err)
	}
	if int64(len(data)) > maxSize {
		return nil, fmt.Errorf("object %s exceeds maximum size %d", path, maxSize)
	}
	return data, nil
}

// Package adapters connects the leads bounded context to shared
// infrastructure adapters.
package adapters

import (
	"context"
	"fmt"
	"path/filepath"

	"alma_leads_backend/internal/adapters/storage"

	"github.com/google/uuid"
)

// ResumeStorage stores resume uploads in a dedicated object storage
// bucket, keyed as {leadID}/{filename}.
type ResumeStorage struct {
	store  storage.ObjectStorage
	bucket string
}

// NewResumeStorage creates the resume storage adapter.
func NewResumeStorage(store storage.ObjectStorage, bucket string) *ResumeStorage {
	return &ResumeStorage{store: store, bucket: bucket}
}

// Store writes the resume content and returns its storage key.
func (s *ResumeStorage) Store(ctx context.Context, leadID uuid.UUID, filename, contentType string, content []byte) (string, error) {
	// filepath.Base strips any client-supplied directory components.
	key := fmt.Sprintf("%s/%s", leadID.String(), filepath.Base(filename))
	if err := s.store.Upload(ctx, s.bucket, key, contentType, content); err != nil {
		return "", err
	}
	return key, nil
}

// Fetch reads back previously stored content by key.
func (s *ResumeStorage) Fetch(ctx context.Context, key string) ([]byte, error) {
	return s.store.Download(ctx, s.bucket, key)
}

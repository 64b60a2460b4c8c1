// Package ports defines the interfaces the leads service depends on,
// keeping the service testable without real infrastructure.
package ports

import (
	"context"

	"github.com/google/uuid"
)

// ResumeStorage persists uploaded resume files and hands back a stable
// storage key. Keys are namespaced by lead id so identical filenames
// from different leads never collide.
type ResumeStorage interface {
	// Store writes the resume content and returns its storage key.
	// Zero-length content is accepted.
	Store(ctx context.Context, leadID uuid.UUID, filename, contentType string, content []byte) (string, error)

	// Fetch reads back previously stored content by key.
	Fetch(ctx context.Context, key string) ([]byte, error)
}

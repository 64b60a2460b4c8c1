package repository

import (
	"context"
	"time"

	"alma_leads_backend/internal/leads/domain"

	"github.com/google/uuid"
)

// LeadReader provides read access to lead data. GetByID and List never
// surface soft-deleted records; GetAnyByID is the privileged raw lookup
// that ignores the soft-delete filter.
type LeadReader interface {
	GetByID(ctx context.Context, id uuid.UUID) (domain.Lead, error)
	GetAnyByID(ctx context.Context, id uuid.UUID) (domain.Lead, error)
	List(ctx context.Context) ([]domain.Lead, error)
}

// LeadWriter provides write operations for leads. UpdateState and
// SoftDelete are single-row updates that skip soft-deleted records and
// return ErrNotFound when no visible row matched.
type LeadWriter interface {
	Create(ctx context.Context, lead domain.Lead) (domain.Lead, error)
	UpdateState(ctx context.Context, id uuid.UUID, state domain.State, at time.Time) (domain.Lead, error)
	SoftDelete(ctx context.Context, id uuid.UUID, at time.Time) (domain.Lead, error)
}

// LeadStore is the full persistence contract the lifecycle service
// depends on.
type LeadStore interface {
	LeadReader
	LeadWriter
}

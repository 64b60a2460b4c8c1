// Package repository persists leads in Postgres.
package repository

import (
	"context"
	"errors"
	"time"

	"alma_leads_backend/internal/leads/domain"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// ErrNotFound is returned when no visible lead matches the lookup.
var ErrNotFound = errors.New("lead not found")

const leadColumns = `id, first_name, last_name, email, resume_path, state, created_at, updated_at, deleted_at`

const createLeadQuery = `
	INSERT INTO leads (id, first_name, last_name, email, resume_path, state, created_at, updated_at)
	VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
	RETURNING ` + leadColumns

const getLeadByIDQuery = `
	SELECT ` + leadColumns + `
	FROM leads
	WHERE id = $1 AND deleted_at IS NULL`

const getAnyLeadByIDQuery = `
	SELECT ` + leadColumns + `
	FROM leads
	WHERE id = $1`

const listLeadsQuery = `
	SELECT ` + leadColumns + `
	FROM leads
	WHERE deleted_at IS NULL
	ORDER BY created_at DESC`

const updateLeadStateQuery = `
	UPDATE leads
	SET state = $2, updated_at = $3
	WHERE id = $1 AND deleted_at IS NULL
	RETURNING ` + leadColumns

const softDeleteLeadQuery = `
	UPDATE leads
	SET deleted_at = $2, updated_at = $2
	WHERE id = $1 AND deleted_at IS NULL
	RETURNING ` + leadColumns

// Repository is the pgx-backed lead store.
type Repository struct {
	pool *pgxpool.Pool
}

// New creates a new lead repository.
func New(pool *pgxpool.Pool) *Repository {
	return &Repository{pool: pool}
}

// Create inserts a new lead row.
func (r *Repository) Create(ctx context.Context, lead domain.Lead) (domain.Lead, error) {
	row := r.pool.QueryRow(ctx, createLeadQuery,
		lead.ID, lead.FirstName, lead.LastName, lead.Email,
		lead.ResumePath, lead.State, lead.CreatedAt, lead.UpdatedAt,
	)
	return scanLead(row)
}

// GetByID returns a lead by id, excluding soft-deleted records.
func (r *Repository) GetByID(ctx context.Context, id uuid.UUID) (domain.Lead, error) {
	return r.getOne(ctx, getLeadByIDQuery, id)
}

// GetAnyByID returns a lead by id regardless of soft deletion.
// Used for privileged inspection only; never exposed over HTTP.
func (r *Repository) GetAnyByID(ctx context.Context, id uuid.UUID) (domain.Lead, error) {
	return r.getOne(ctx, getAnyLeadByIDQuery, id)
}

// List returns all non-deleted leads, most recent first.
func (r *Repository) List(ctx context.Context) ([]domain.Lead, error) {
	rows, err := r.pool.Query(ctx, listLeadsQuery)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	leads := make([]domain.Lead, 0)
	for rows.Next() {
		lead, err := scanLead(rows)
		if err != nil {
			return nil, err
		}
		leads = append(leads, lead)
	}
	return leads, rows.Err()
}

// UpdateState moves a lead to the given state. The WHERE clause keeps
// the update a single atomic row write; soft-deleted rows never match.
func (r *Repository) UpdateState(ctx context.Context, id uuid.UUID, state domain.State, at time.Time) (domain.Lead, error) {
	return r.getOne(ctx, updateLeadStateQuery, id, state, at)
}

// SoftDelete stamps deleted_at on a visible lead and returns the final
// snapshot. The row itself is never removed.
func (r *Repository) SoftDelete(ctx context.Context, id uuid.UUID, at time.Time) (domain.Lead, error) {
	return r.getOne(ctx, softDeleteLeadQuery, id, at)
}

func (r *Repository) getOne(ctx context.Context, query string, args ...any) (domain.Lead, error) {
	lead, err := scanLead(r.pool.QueryRow(ctx, query, args...))
	if errors.Is(err, pgx.ErrNoRows) {
		return domain.Lead{}, ErrNotFound
	}
	return lead, err
}

func scanLead(row pgx.Row) (domain.Lead, error) {
	var lead domain.Lead
	err := row.Scan(
		&lead.ID, &lead.FirstName, &lead.LastName, &lead.Email,
		&lead.ResumePath, &lead.State, &lead.CreatedAt, &lead.UpdatedAt,
		&lead.DeletedAt,
	)
	return lead, err
}

// Compile-time check that Repository satisfies the service contract.
var _ LeadStore = (*Repository)(nil)

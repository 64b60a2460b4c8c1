// Package transport defines the request and response shapes of the
// leads HTTP surface.
package transport

import (
	"time"

	"alma_leads_backend/internal/leads/domain"
)

// CreateLeadRequest is the multipart form payload of the public intake
// endpoint. The resume file travels separately as the "resume" part.
type CreateLeadRequest struct {
	FirstName string `form:"first_name" validate:"required,min=1,max=100"`
	LastName  string `form:"last_name" validate:"required,min=1,max=100"`
	Email     string `form:"email" validate:"required,email,max=255"`
}

// UpdateLeadStateRequest asks for a state transition. Whether the value
// names a legal transition is a business rule, not a shape check, so
// only presence is validated here.
type UpdateLeadStateRequest struct {
	State string `json:"state" validate:"required"`
}

// LeadResponse is the JSON representation of a lead. DeletedAt is
// deliberately absent: soft deletion is never exposed.
type LeadResponse struct {
	ID         string    `json:"id"`
	FirstName  string    `json:"first_name"`
	LastName   string    `json:"last_name"`
	Email      string    `json:"email"`
	ResumePath *string   `json:"resume_path"`
	State      string    `json:"state"`
	CreatedAt  time.Time `json:"created_at"`
	UpdatedAt  time.Time `json:"updated_at"`
}

// NewLeadResponse maps a domain lead to its JSON representation.
func NewLeadResponse(lead domain.Lead) LeadResponse {
	return LeadResponse{
		ID:         lead.ID.String(),
		FirstName:  lead.FirstName,
		LastName:   lead.LastName,
		Email:      lead.Email,
		ResumePath: lead.ResumePath,
		State:      string(lead.State),
		CreatedAt:  lead.CreatedAt,
		UpdatedAt:  lead.UpdatedAt,
	}
}

// NewLeadListResponse maps a slice of domain leads, keeping an empty
// slice (not null) for zero results.
func NewLeadListResponse(leads []domain.Lead) []LeadResponse {
	items := make([]LeadResponse, 0, len(leads))
	for _, lead := range leads {
		items = append(items, NewLeadResponse(lead))
	}
	return items
}

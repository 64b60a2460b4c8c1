// Package service implements the lead lifecycle: intake with resume
// storage and notification dispatch, listing, retrieval, the state
// machine, and soft deletion.
package service

import (
	"context"
	"errors"
	"strings"
	"time"

	"alma_leads_backend/internal/events"
	"alma_leads_backend/internal/leads/domain"
	"alma_leads_backend/internal/leads/ports"
	"alma_leads_backend/internal/leads/repository"
	"alma_leads_backend/platform/apperr"
	"alma_leads_backend/platform/logger"
	"alma_leads_backend/platform/validator"

	"github.com/google/uuid"
)

const msgLeadNotFound = "lead not found"

// ResumeUpload carries an optional resume file through lead creation.
type ResumeUpload struct {
	Filename    string
	ContentType string
	Content     []byte
}

// CreateLeadParams are the inputs for CreateLead.
type CreateLeadParams struct {
	FirstName string
	LastName  string
	Email     string
	Resume    *ResumeUpload
}

// Service provides the lead lifecycle operations.
type Service struct {
	repo    repository.LeadStore
	storage ports.ResumeStorage
	bus     events.Bus
	val     *validator.Validator
	log     *logger.Logger
}

// New creates a new lead lifecycle service.
func New(repo repository.LeadStore, storage ports.ResumeStorage, bus events.Bus, val *validator.Validator, log *logger.Logger) *Service {
	return &Service{repo: repo, storage: storage, bus: bus, val: val, log: log}
}

// CreateLead validates the submission, stores the resume (if any),
// persists the lead, and publishes the created event. The resume is
// stored before the row is written so a storage failure leaves nothing
// behind; notification dispatch happens only after the row exists and
// never affects the result.
func (s *Service) CreateLead(ctx context.Context, params CreateLeadParams) (domain.Lead, error) {
	params.FirstName = strings.TrimSpace(params.FirstName)
	params.LastName = strings.TrimSpace(params.LastName)
	params.Email = strings.TrimSpace(params.Email)

	if details := s.validateCreate(params); len(details) > 0 {
		return domain.Lead{}, apperr.Validation("validation failed").WithDetails(details)
	}

	id := uuid.New()
	now := time.Now().UTC()

	var resumePath *string
	if params.Resume != nil {
		key, err := s.storage.Store(ctx, id, params.Resume.Filename, params.Resume.ContentType, params.Resume.Content)
		if err != nil {
			return domain.Lead{}, apperr.Wrap(apperr.KindUnavailable, "failed to store resume", err)
		}
		resumePath = &key
	}

	lead, err := s.repo.Create(ctx, domain.Lead{
		ID:         id,
		FirstName:  params.FirstName,
		LastName:   params.LastName,
		Email:      params.Email,
		ResumePath: resumePath,
		State:      domain.StatePending,
		CreatedAt:  now,
		UpdatedAt:  now,
	})
	if err != nil {
		s.log.DatabaseError("create lead", err)
		return domain.Lead{}, apperr.Wrap(apperr.KindInternal, "failed to persist lead", err)
	}

	s.bus.Publish(ctx, events.LeadCreated{
		BaseEvent:  events.NewBaseEvent(),
		LeadID:     lead.ID,
		FirstName:  lead.FirstName,
		LastName:   lead.LastName,
		Email:      lead.Email,
		ResumePath: lead.ResumePath,
	})

	s.log.Info("lead created", "id", lead.ID, "hasResume", resumePath != nil)
	return lead, nil
}

func (s *Service) validateCreate(params CreateLeadParams) map[string]string {
	details := make(map[string]string)
	if params.FirstName == "" {
		details["first_name"] = "must not be empty"
	}
	if params.LastName == "" {
		details["last_name"] = "must not be empty"
	}
	if err := s.val.Var(params.Email, "required,email"); err != nil {
		details["email"] = "must be a valid email address"
	}
	return details
}

// ListLeads returns all non-deleted leads, most recent first.
func (s *Service) ListLeads(ctx context.Context) ([]domain.Lead, error) {
	leads, err := s.repo.List(ctx)
	if err != nil {
		s.log.DatabaseError("list leads", err)
		return nil, apperr.Wrap(apperr.KindInternal, "failed to list leads", err)
	}
	return leads, nil
}

// GetLead returns a lead by id. Soft-deleted leads are not found.
func (s *Service) GetLead(ctx context.Context, id uuid.UUID) (domain.Lead, error) {
	lead, err := s.repo.GetByID(ctx, id)
	if errors.Is(err, repository.ErrNotFound) {
		return domain.Lead{}, apperr.NotFound(msgLeadNotFound)
	}
	if err != nil {
		s.log.DatabaseError("get lead", err)
		return domain.Lead{}, apperr.Wrap(apperr.KindInternal, "failed to load lead", err)
	}
	return lead, nil
}

// GetResume returns the storage key and content of a lead's resume.
// Soft-deleted leads and leads without a resume are not found.
func (s *Service) GetResume(ctx context.Context, id uuid.UUID) (string, []byte, error) {
	lead, err := s.GetLead(ctx, id)
	if err != nil {
		return "", nil, err
	}
	if lead.ResumePath == nil {
		return "", nil, apperr.NotFound("lead has no resume")
	}

	content, err := s.storage.Fetch(ctx, *lead.ResumePath)
	if err != nil {
		return "", nil, apperr.Wrap(apperr.KindUnavailable, "failed to fetch resume", err)
	}
	return *lead.ResumePath, content, nil
}

// UpdateLeadState moves a lead through the state machine. The lookup
// runs first so a missing or soft-deleted lead is reported as not
// found before any transition rule fires.
func (s *Service) UpdateLeadState(ctx context.Context, id uuid.UUID, requested string) (domain.Lead, error) {
	state, err := domain.ParseState(requested)
	if err != nil {
		return domain.Lead{}, apperr.BadRequest(err.Error())
	}

	lead, err := s.GetLead(ctx, id)
	if err != nil {
		return domain.Lead{}, err
	}

	if reason := domain.ValidateTransition(lead.State, state); reason != "" {
		return domain.Lead{}, apperr.BadRequest(reason)
	}

	updated, err := s.repo.UpdateState(ctx, id, state, time.Now().UTC())
	if errors.Is(err, repository.ErrNotFound) {
		// Deleted between the lookup and the write.
		return domain.Lead{}, apperr.NotFound(msgLeadNotFound)
	}
	if err != nil {
		s.log.DatabaseError("update lead state", err)
		return domain.Lead{}, apperr.Wrap(apperr.KindInternal, "failed to update lead", err)
	}

	s.log.Info("lead state updated", "id", id, "state", state)
	return updated, nil
}

// SoftDeleteLead hides a lead from all subsequent reads and returns the
// final snapshot. The underlying record is kept forever.
func (s *Service) SoftDeleteLead(ctx context.Context, id uuid.UUID) (domain.Lead, error) {
	lead, err := s.repo.SoftDelete(ctx, id, time.Now().UTC())
	if errors.Is(err, repository.ErrNotFound) {
		return domain.Lead{}, apperr.NotFound(msgLeadNotFound)
	}
	if err != nil {
		s.log.DatabaseError("soft delete lead", err)
		return domain.Lead{}, apperr.Wrap(apperr.KindInternal, "failed to delete lead", err)
	}

	s.log.Info("lead soft-deleted", "id", id)
	return lead, nil
}

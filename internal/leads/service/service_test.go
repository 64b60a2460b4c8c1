package service

import (
	"context"
	"errors"
	"sort"
	"testing"
	"time"

	"alma_leads_backend/internal/events"
	"alma_leads_backend/internal/leads/domain"
	"alma_leads_backend/internal/leads/repository"
	"alma_leads_backend/platform/apperr"
	"alma_leads_backend/platform/logger"
	"alma_leads_backend/platform/validator"

	"github.com/google/uuid"
)

type fakeLeadStore struct {
	leads map[uuid.UUID]domain.Lead

	failReads  error
	failWrites error
}

func newFakeLeadStore() *fakeLeadStore {
	return &fakeLeadStore{leads: make(map[uuid.UUID]domain.Lead)}
}

func (s *fakeLeadStore) Create(_ context.Context, lead domain.Lead) (domain.Lead, error) {
	if s.failWrites != nil {
		return domain.Lead{}, s.failWrites
	}
	s.leads[lead.ID] = lead
	return lead, nil
}

func (s *fakeLeadStore) GetByID(_ context.Context, id uuid.UUID) (domain.Lead, error) {
	if s.failReads != nil {
		return domain.Lead{}, s.failReads
	}
	lead, ok := s.leads[id]
	if !ok || lead.DeletedAt != nil {
		return domain.Lead{}, repository.ErrNotFound
	}
	return lead, nil
}

func (s *fakeLeadStore) GetAnyByID(_ context.Context, id uuid.UUID) (domain.Lead, error) {
	lead, ok := s.leads[id]
	if !ok {
		return domain.Lead{}, repository.ErrNotFound
	}
	return lead, nil
}

func (s *fakeLeadStore) List(_ context.Context) ([]domain.Lead, error) {
	if s.failReads != nil {
		return nil, s.failReads
	}
	visible := make([]domain.Lead, 0, len(s.leads))
	for _, lead := range s.leads {
		if lead.DeletedAt == nil {
			visible = append(visible, lead)
		}
	}
	sort.Slice(visible, func(i, j int) bool {
		return visible[i].CreatedAt.After(visible[j].CreatedAt)
	})
	return visible, nil
}

func (s *fakeLeadStore) UpdateState(_ context.Context, id uuid.UUID, state domain.State, at time.Time) (domain.Lead, error) {
	if s.failWrites != nil {
		return domain.Lead{}, s.failWrites
	}
	lead, ok := s.leads[id]
	if !ok || lead.DeletedAt != nil {
		return domain.Lead{}, repository.ErrNotFound
	}
	lead.State = state
	lead.UpdatedAt = at
	s.leads[id] = lead
	return lead, nil
}

func (s *fakeLeadStore) SoftDelete(_ context.Context, id uuid.UUID, at time.Time) (domain.Lead, error) {
	if s.failWrites != nil {
		return domain.Lead{}, s.failWrites
	}
	lead, ok := s.leads[id]
	if !ok || lead.DeletedAt != nil {
		return domain.Lead{}, repository.ErrNotFound
	}
	lead.DeletedAt = &at
	lead.UpdatedAt = at
	s.leads[id] = lead
	return lead, nil
}

type fakeResumeStorage struct {
	failWith error
	stored   map[string][]byte
}

func newFakeResumeStorage() *fakeResumeStorage {
	return &fakeResumeStorage{stored: make(map[string][]byte)}
}

func (s *fakeResumeStorage) Store(_ context.Context, leadID uuid.UUID, filename, _ string, content []byte) (string, error) {
	if s.failWith != nil {
		return "", s.failWith
	}
	key := leadID.String() + "/" + filename
	s.stored[key] = content
	return key, nil
}

func (s *fakeResumeStorage) Fetch(_ context.Context, key string) ([]byte, error) {
	content, ok := s.stored[key]
	if !ok {
		return nil, errors.New("object not found")
	}
	return content, nil
}

type captureBus struct {
	published []events.Event
}

func (b *captureBus) Publish(_ context.Context, event events.Event) {
	b.published = append(b.published, event)
}

func (b *captureBus) PublishSync(_ context.Context, event events.Event) error {
	b.published = append(b.published, event)
	return nil
}

func (b *captureBus) Subscribe(string, events.Handler) {}

type serviceFixture struct {
	svc     *Service
	store   *fakeLeadStore
	storage *fakeResumeStorage
	bus     *captureBus
}

func newServiceFixture() serviceFixture {
	store := newFakeLeadStore()
	storage := newFakeResumeStorage()
	bus := &captureBus{}
	svc := New(store, storage, bus, validator.New(), logger.New("test"))
	return serviceFixture{svc: svc, store: store, storage: storage, bus: bus}
}

func validParams() CreateLeadParams {
	return CreateLeadParams{
		FirstName: "Jane",
		LastName:  "Doe",
		Email:     "jane.doe@example.com",
	}
}

func TestCreateLeadStartsPendingWithoutResume(t *testing.T) {
	f := newServiceFixture()

	lead, err := f.svc.CreateLead(context.Background(), validParams())
	if err != nil {
		t.Fatalf("CreateLead failed: %v", err)
	}

	if lead.State != domain.StatePending {
		t.Fatalf("expected new lead in PENDING, got %q", lead.State)
	}
	if lead.ResumePath != nil {
		t.Fatalf("expected no resume path, got %q", *lead.ResumePath)
	}
	if !lead.CreatedAt.Equal(lead.UpdatedAt) {
		t.Fatal("expected created_at and updated_at to match on creation")
	}
	if lead.DeletedAt != nil {
		t.Fatal("expected deleted_at to be unset on creation")
	}
}

func TestCreateLeadStoresResumeUnderLeadNamespace(t *testing.T) {
	f := newServiceFixture()

	params := validParams()
	params.Resume = &ResumeUpload{
		Filename:    "resume.pdf",
		ContentType: "application/pdf",
		Content:     []byte("%PDF-1.4 test"),
	}

	lead, err := f.svc.CreateLead(context.Background(), params)
	if err != nil {
		t.Fatalf("CreateLead failed: %v", err)
	}
	if lead.ResumePath == nil {
		t.Fatal("expected resume path to be set")
	}

	wantKey := lead.ID.String() + "/resume.pdf"
	if *lead.ResumePath != wantKey {
		t.Fatalf("expected resume key %q, got %q", wantKey, *lead.ResumePath)
	}

	// Read back through the service so the stored bytes round-trip.
	key, content, err := f.svc.GetResume(context.Background(), lead.ID)
	if err != nil {
		t.Fatalf("GetResume failed: %v", err)
	}
	if key != wantKey {
		t.Fatalf("expected fetched key %q, got %q", wantKey, key)
	}
	if string(content) != "%PDF-1.4 test" {
		t.Fatal("expected resume content to round-trip unchanged")
	}
}

func TestGetResumeForLeadWithoutResumeIsNotFound(t *testing.T) {
	f := newServiceFixture()

	lead, err := f.svc.CreateLead(context.Background(), validParams())
	if err != nil {
		t.Fatalf("CreateLead failed: %v", err)
	}

	if _, _, err := f.svc.GetResume(context.Background(), lead.ID); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found for lead without resume, got %v", err)
	}
}

func TestCreateLeadAcceptsEmptyResume(t *testing.T) {
	f := newServiceFixture()

	params := validParams()
	params.Resume = &ResumeUpload{Filename: "empty.pdf", Content: []byte{}}

	lead, err := f.svc.CreateLead(context.Background(), params)
	if err != nil {
		t.Fatalf("CreateLead failed: %v", err)
	}
	if lead.ResumePath == nil {
		t.Fatal("expected resume path for zero-length upload")
	}
}

func TestCreateLeadRejectsInvalidInputWithoutPersisting(t *testing.T) {
	f := newServiceFixture()

	cases := []CreateLeadParams{
		{FirstName: "", LastName: "Doe", Email: "jane@example.com"},
		{FirstName: "   ", LastName: "Doe", Email: "jane@example.com"},
		{FirstName: "Jane", LastName: "", Email: "jane@example.com"},
		{FirstName: "Jane", LastName: "Doe", Email: "not-an-email"},
		{FirstName: "Jane", LastName: "Doe", Email: ""},
	}

	for _, params := range cases {
		_, err := f.svc.CreateLead(context.Background(), params)
		if !apperr.Is(err, apperr.KindValidation) {
			t.Fatalf("expected validation error for %+v, got %v", params, err)
		}
	}

	if len(f.store.leads) != 0 {
		t.Fatal("expected no leads persisted after rejected submissions")
	}
	if len(f.bus.published) != 0 {
		t.Fatal("expected no events published after rejected submissions")
	}
}

func TestCreateLeadAbortsWhenStorageFails(t *testing.T) {
	f := newServiceFixture()
	f.storage.failWith = errors.New("bucket unreachable")

	params := validParams()
	params.Resume = &ResumeUpload{Filename: "resume.pdf", Content: []byte("x")}

	_, err := f.svc.CreateLead(context.Background(), params)
	if !apperr.Is(err, apperr.KindUnavailable) {
		t.Fatalf("expected unavailable error, got %v", err)
	}
	if len(f.store.leads) != 0 {
		t.Fatal("expected no lead persisted when resume storage fails")
	}
	if len(f.bus.published) != 0 {
		t.Fatal("expected no event published when resume storage fails")
	}
}

func TestCreateLeadSurfacesPersistenceFailureAsInternal(t *testing.T) {
	f := newServiceFixture()
	f.store.failWrites = errors.New("connection refused")

	_, err := f.svc.CreateLead(context.Background(), validParams())
	if !apperr.Is(err, apperr.KindInternal) {
		t.Fatalf("expected internal error when persistence fails, got %v", err)
	}
	if len(f.bus.published) != 0 {
		t.Fatal("expected no event published when persistence fails")
	}
}

func TestListLeadsSurfacesPersistenceFailureAsInternal(t *testing.T) {
	f := newServiceFixture()
	f.store.failReads = errors.New("connection refused")

	if _, err := f.svc.ListLeads(context.Background()); !apperr.Is(err, apperr.KindInternal) {
		t.Fatalf("expected internal error when listing fails, got %v", err)
	}
}

func TestUpdateLeadStateSurfacesPersistenceFailureAsInternal(t *testing.T) {
	f := newServiceFixture()

	lead, err := f.svc.CreateLead(context.Background(), validParams())
	if err != nil {
		t.Fatalf("CreateLead failed: %v", err)
	}

	f.store.failWrites = errors.New("connection refused")
	if _, err := f.svc.UpdateLeadState(context.Background(), lead.ID, "REACHED_OUT"); !apperr.Is(err, apperr.KindInternal) {
		t.Fatalf("expected internal error when the state write fails, got %v", err)
	}
}

func TestSoftDeleteLeadSurfacesPersistenceFailureAsInternal(t *testing.T) {
	f := newServiceFixture()

	lead, err := f.svc.CreateLead(context.Background(), validParams())
	if err != nil {
		t.Fatalf("CreateLead failed: %v", err)
	}

	f.store.failWrites = errors.New("connection refused")
	if _, err := f.svc.SoftDeleteLead(context.Background(), lead.ID); !apperr.Is(err, apperr.KindInternal) {
		t.Fatalf("expected internal error when the delete write fails, got %v", err)
	}
}

func TestCreateLeadPublishesCreatedEvent(t *testing.T) {
	f := newServiceFixture()

	lead, err := f.svc.CreateLead(context.Background(), validParams())
	if err != nil {
		t.Fatalf("CreateLead failed: %v", err)
	}

	if len(f.bus.published) != 1 {
		t.Fatalf("expected exactly one event, got %d", len(f.bus.published))
	}
	created, ok := f.bus.published[0].(events.LeadCreated)
	if !ok {
		t.Fatalf("expected LeadCreated event, got %T", f.bus.published[0])
	}
	if created.LeadID != lead.ID || created.Email != lead.Email {
		t.Fatal("expected event to carry the persisted lead's identity")
	}
}

func TestUpdateLeadStateTransitionsOnce(t *testing.T) {
	f := newServiceFixture()

	lead, err := f.svc.CreateLead(context.Background(), validParams())
	if err != nil {
		t.Fatalf("CreateLead failed: %v", err)
	}

	updated, err := f.svc.UpdateLeadState(context.Background(), lead.ID, "REACHED_OUT")
	if err != nil {
		t.Fatalf("UpdateLeadState failed: %v", err)
	}
	if updated.State != domain.StateReachedOut {
		t.Fatalf("expected REACHED_OUT, got %q", updated.State)
	}
	if !updated.UpdatedAt.After(updated.CreatedAt) && !updated.UpdatedAt.Equal(updated.CreatedAt) {
		t.Fatal("expected updated_at to advance with the transition")
	}

	_, err = f.svc.UpdateLeadState(context.Background(), lead.ID, "REACHED_OUT")
	if !apperr.Is(err, apperr.KindBadRequest) {
		t.Fatalf("expected repeated transition to be a bad request, got %v", err)
	}
}

func TestUpdateLeadStateRejectsUnknownState(t *testing.T) {
	f := newServiceFixture()

	lead, err := f.svc.CreateLead(context.Background(), validParams())
	if err != nil {
		t.Fatalf("CreateLead failed: %v", err)
	}

	_, err = f.svc.UpdateLeadState(context.Background(), lead.ID, "DONE")
	if !apperr.Is(err, apperr.KindBadRequest) {
		t.Fatalf("expected bad request for unknown state, got %v", err)
	}
}

func TestUpdateLeadStateReportsMissingLeadBeforeTransitionRules(t *testing.T) {
	f := newServiceFixture()

	_, err := f.svc.UpdateLeadState(context.Background(), uuid.New(), "REACHED_OUT")
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found for missing lead, got %v", err)
	}
}

func TestSoftDeletedLeadDisappearsFromReads(t *testing.T) {
	f := newServiceFixture()

	lead, err := f.svc.CreateLead(context.Background(), validParams())
	if err != nil {
		t.Fatalf("CreateLead failed: %v", err)
	}

	deleted, err := f.svc.SoftDeleteLead(context.Background(), lead.ID)
	if err != nil {
		t.Fatalf("SoftDeleteLead failed: %v", err)
	}
	if deleted.DeletedAt == nil {
		t.Fatal("expected deleted_at to be stamped")
	}

	if _, err := f.svc.GetLead(context.Background(), lead.ID); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected deleted lead to be not found, got %v", err)
	}

	visible, err := f.svc.ListLeads(context.Background())
	if err != nil {
		t.Fatalf("ListLeads failed: %v", err)
	}
	if len(visible) != 0 {
		t.Fatalf("expected deleted lead hidden from listing, got %d leads", len(visible))
	}

	// The row itself survives for privileged inspection.
	raw, err := f.store.GetAnyByID(context.Background(), lead.ID)
	if err != nil {
		t.Fatalf("raw lookup failed: %v", err)
	}
	if raw.Email != lead.Email {
		t.Fatal("expected soft-deleted row to keep its data")
	}
}

func TestSoftDeleteTwiceReportsNotFound(t *testing.T) {
	f := newServiceFixture()

	lead, err := f.svc.CreateLead(context.Background(), validParams())
	if err != nil {
		t.Fatalf("CreateLead failed: %v", err)
	}

	if _, err := f.svc.SoftDeleteLead(context.Background(), lead.ID); err != nil {
		t.Fatalf("first SoftDeleteLead failed: %v", err)
	}
	if _, err := f.svc.SoftDeleteLead(context.Background(), lead.ID); !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected second delete to be not found, got %v", err)
	}
}

func TestUpdateLeadStateRejectsSoftDeletedLead(t *testing.T) {
	f := newServiceFixture()

	lead, err := f.svc.CreateLead(context.Background(), validParams())
	if err != nil {
		t.Fatalf("CreateLead failed: %v", err)
	}
	if _, err := f.svc.SoftDeleteLead(context.Background(), lead.ID); err != nil {
		t.Fatalf("SoftDeleteLead failed: %v", err)
	}

	_, err = f.svc.UpdateLeadState(context.Background(), lead.ID, "REACHED_OUT")
	if !apperr.Is(err, apperr.KindNotFound) {
		t.Fatalf("expected not found for soft-deleted lead, got %v", err)
	}
}

func TestCreateLeadTrimsWhitespace(t *testing.T) {
	f := newServiceFixture()

	lead, err := f.svc.CreateLead(context.Background(), CreateLeadParams{
		FirstName: "  Jane ",
		LastName:  " Doe  ",
		Email:     " jane.doe@example.com ",
	})
	if err != nil {
		t.Fatalf("CreateLead failed: %v", err)
	}
	if lead.FirstName != "Jane" || lead.LastName != "Doe" || lead.Email != "jane.doe@example.com" {
		t.Fatalf("expected trimmed fields, got %q %q %q", lead.FirstName, lead.LastName, lead.Email)
	}
}

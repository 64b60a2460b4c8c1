// Package leads provides the leads bounded context module.
package leads

import (
	"alma_leads_backend/internal/adapters/storage"
	"alma_leads_backend/internal/events"
	apphttp "alma_leads_backend/internal/http"
	"alma_leads_backend/internal/leads/adapters"
	"alma_leads_backend/internal/leads/handler"
	"alma_leads_backend/internal/leads/repository"
	"alma_leads_backend/internal/leads/service"
	"alma_leads_backend/platform/logger"
	"alma_leads_backend/platform/validator"

	"github.com/jackc/pgx/v5/pgxpool"
)

// Module is the leads bounded context module implementing http.Module.
type Module struct {
	handler       *handler.Handler
	publicHandler *handler.PublicHandler
	service       *service.Service
	repo          *repository.Repository
}

// NewModule creates and initializes the leads module.
func NewModule(pool *pgxpool.Pool, store storage.ObjectStorage, bucket string, bus events.Bus, val *validator.Validator, log *logger.Logger) *Module {
	repo := repository.New(pool)
	resumeStore := adapters.NewResumeStorage(store, bucket)
	svc := service.New(repo, resumeStore, bus, val, log)

	return &Module{
		handler:       handler.New(svc, val),
		publicHandler: handler.NewPublic(svc, val, store.MaxFileSize()),
		service:       svc,
		repo:          repo,
	}
}

// Name returns the module identifier.
func (m *Module) Name() string {
	return "leads"
}

// Service returns the service layer for external use.
func (m *Module) Service() *service.Service {
	return m.service
}

// RegisterRoutes mounts lead routes on the provided router context.
func (m *Module) RegisterRoutes(ctx *apphttp.RouterContext) {
	// Public intake, rate limited per IP.
	public := ctx.API.Group("/leads")
	public.Use(ctx.IntakeRateLimiter.RateLimit())
	m.publicHandler.RegisterRoutes(public)

	// Internal management behind the API key.
	m.handler.RegisterRoutes(ctx.Protected.Group("/leads"))
}

// Compile-time check that Module implements http.Module
var _ apphttp.Module = (*Module)(nil)

// Package handler exposes the leads HTTP endpoints.
package handler

import (
	"net/http"
	"path"

	"alma_leads_backend/internal/leads/service"
	"alma_leads_backend/internal/leads/transport"
	"alma_leads_backend/platform/httpkit"
	"alma_leads_backend/platform/validator"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
)

const (
	msgInvalidRequest   = "invalid request"
	msgValidationFailed = "validation failed"
	msgLeadNotFound     = "lead not found"
)

// Handler handles the API-key protected lead management endpoints.
type Handler struct {
	svc *service.Service
	val *validator.Validator
}

// New creates a new leads handler.
func New(svc *service.Service, val *validator.Validator) *Handler {
	return &Handler{svc: svc, val: val}
}

// RegisterRoutes mounts the internal lead routes on an authenticated group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("", h.ListLeads)
	rg.GET("/:id", h.GetLead)
	rg.GET("/:id/resume", h.DownloadResume)
	rg.PUT("/:id", h.UpdateLeadState)
	rg.DELETE("/:id", h.DeleteLead)
}

// ListLeads returns all visible leads, most recent first.
// GET /api/leads
func (h *Handler) ListLeads(c *gin.Context) {
	leads, err := h.svc.ListLeads(c.Request.Context())
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.NewLeadListResponse(leads))
}

// GetLead returns a single lead by id.
// GET /api/leads/:id
func (h *Handler) GetLead(c *gin.Context) {
	id, ok := parseLeadID(c)
	if !ok {
		return
	}

	lead, err := h.svc.GetLead(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.NewLeadResponse(lead))
}

// DownloadResume streams a lead's stored resume back to the reviewer.
// GET /api/leads/:id/resume
func (h *Handler) DownloadResume(c *gin.Context) {
	id, ok := parseLeadID(c)
	if !ok {
		return
	}

	key, content, err := h.svc.GetResume(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}

	c.Header("Content-Disposition", `attachment; filename="`+path.Base(key)+`"`)
	c.Data(http.StatusOK, "application/octet-stream", content)
}

// UpdateLeadState transitions a lead to a new state.
// PUT /api/leads/:id
func (h *Handler) UpdateLeadState(c *gin.Context) {
	id, ok := parseLeadID(c)
	if !ok {
		return
	}

	var req transport.UpdateLeadStateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgInvalidRequest, nil)
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusBadRequest, msgValidationFailed, err.Error())
		return
	}

	lead, err := h.svc.UpdateLeadState(c.Request.Context(), id, req.State)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.NewLeadResponse(lead))
}

// DeleteLead soft-deletes a lead and returns its final snapshot.
// DELETE /api/leads/:id
func (h *Handler) DeleteLead(c *gin.Context) {
	id, ok := parseLeadID(c)
	if !ok {
		return
	}

	lead, err := h.svc.SoftDeleteLead(c.Request.Context(), id)
	if httpkit.HandleError(c, err) {
		return
	}
	httpkit.OK(c, transport.NewLeadResponse(lead))
}

// parseLeadID reads the :id path parameter. A malformed id cannot name
// any lead, so it is reported as not found rather than bad request.
func parseLeadID(c *gin.Context) (uuid.UUID, bool) {
	id, err := uuid.Parse(c.Param("id"))
	if err != nil {
		httpkit.Error(c, http.StatusNotFound, msgLeadNotFound, nil)
		return uuid.Nil, false
	}
	return id, true
}

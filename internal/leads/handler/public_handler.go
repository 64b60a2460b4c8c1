package handler

import (
	"errors"
	"io"
	"net/http"

	"alma_leads_backend/internal/leads/service"
	"alma_leads_backend/internal/leads/transport"
	"alma_leads_backend/platform/httpkit"
	"alma_leads_backend/platform/validator"

	"github.com/gin-gonic/gin"
)

// resumeFormField is the multipart part carrying the optional resume.
const resumeFormField = "resume"

// PublicHandler handles the unauthenticated lead intake endpoint.
type PublicHandler struct {
	svc           *service.Service
	val           *validator.Validator
	maxResumeSize int64
}

// NewPublic creates a new public intake handler.
func NewPublic(svc *service.Service, val *validator.Validator, maxResumeSize int64) *PublicHandler {
	return &PublicHandler{svc: svc, val: val, maxResumeSize: maxResumeSize}
}

// RegisterRoutes mounts the public intake route.
func (h *PublicHandler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.POST("", h.CreateLead)
}

// CreateLead accepts a prospect submission as a multipart form with an
// optional resume file and creates the lead in PENDING state.
// POST /api/leads
func (h *PublicHandler) CreateLead(c *gin.Context) {
	var req transport.CreateLeadRequest
	if err := c.ShouldBind(&req); err != nil {
		httpkit.Error(c, http.StatusUnprocessableEntity, msgValidationFailed, err.Error())
		return
	}
	if err := h.val.Struct(req); err != nil {
		httpkit.Error(c, http.StatusUnprocessableEntity, msgValidationFailed, err.Error())
		return
	}

	resume, err := h.readResume(c)
	if err != nil {
		httpkit.Error(c, http.StatusBadRequest, err.Error(), nil)
		return
	}

	lead, err := h.svc.CreateLead(c.Request.Context(), service.CreateLeadParams{
		FirstName: req.FirstName,
		LastName:  req.LastName,
		Email:     req.Email,
		Resume:    resume,
	})
	if httpkit.HandleError(c, err) {
		return
	}

	httpkit.RecordLeadCreated()
	httpkit.JSON(c, http.StatusCreated, transport.NewLeadResponse(lead))
}

// readResume extracts the optional resume part. A missing part is not
// an error; an oversized or unreadable one is.
func (h *PublicHandler) readResume(c *gin.Context) (*service.ResumeUpload, error) {
	fileHeader, err := c.FormFile(resumeFormField)
	if err != nil {
		if errors.Is(err, http.ErrMissingFile) {
			return nil, nil
		}
		return nil, errors.New("invalid resume upload")
	}

	if fileHeader.Size > h.maxResumeSize {
		return nil, errors.New("resume exceeds maximum allowed size")
	}

	file, err := fileHeader.Open()
	if err != nil {
		return nil, errors.New("could not read resume upload")
	}
	defer file.Close()

	content, err := io.ReadAll(io.LimitReader(file, h.maxResumeSize+1))
	if err != nil {
		return nil, errors.New("could not read resume upload")
	}
	if int64(len(content)) > h.maxResumeSize {
		return nil, errors.New("resume exceeds maximum allowed size")
	}

	return &service.ResumeUpload{
		Filename:    fileHeader.Filename,
		ContentType: fileHeader.Header.Get("Content-Type"),
		Content:     content,
	}, nil
}

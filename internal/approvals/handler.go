package approvals

import (
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"fleet-backend/internal/shared/server/respond"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches job and approval routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/jobs", h.list)
	rg.GET("/jobs/summary", h.summary)
	rg.GET("/jobs/:jobId", h.get)
	rg.PUT("/jobs/:jobId/recommendations/:recId/approval", h.setApproval)
	rg.POST("/jobs/:jobId/recommendations/:recId/approve", h.fixedStatus(StatusApproved))
	rg.POST("/jobs/:jobId/recommendations/:recId/decline", h.fixedStatus(StatusNotApproved))
	rg.POST("/jobs/:jobId/recommendations/:recId/reset", h.fixedStatus(StatusPending))
}

func (h *Handler) list(c *gin.Context) {
	filter, err := ParseFilter(c.Query("filter"))
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "filter must be all or needs_review", nil)
		return
	}

	jobs, err := h.Svc.List(c.Request.Context(), filter)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list jobs", nil)
		return
	}

	resp := make([]JobResponse, 0, len(jobs))
	for _, job := range jobs {
		resp = append(resp, toResponse(job))
	}
	respond.JSON(c, http.StatusOK, resp)
}

func (h *Handler) summary(c *gin.Context) {
	sum, err := h.Svc.Summary(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to summarize jobs", nil)
		return
	}
	respond.JSON(c, http.StatusOK, toSummaryResponse(sum))
}

func (h *Handler) get(c *gin.Context) {
	jobID := c.Param("jobId")
	c.Set("jobId", jobID)

	job, err := h.Svc.Get(c.Request.Context(), jobID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, toResponse(job))
}

type setApprovalRequest struct {
	Status string `json:"status"`
}

func (h *Handler) setApproval(c *gin.Context) {
	var req setApprovalRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	status, err := ParseStatus(req.Status)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "status must be pending, approved or not_approved", nil)
		return
	}
	h.apply(c, status)
}

func (h *Handler) fixedStatus(status ApprovalStatus) gin.HandlerFunc {
	return func(c *gin.Context) {
		h.apply(c, status)
	}
}

func (h *Handler) apply(c *gin.Context, status ApprovalStatus) {
	jobID := c.Param("jobId")
	recID := c.Param("recId")
	c.Set("jobId", jobID)
	c.Set("recommendationId", recID)

	t, err := h.Svc.SetApproval(c.Request.Context(), jobID, recID, status)
	if err != nil {
		h.writeError(c, err)
		return
	}
	c.Set("statusTransition", string(t.From)+"->"+string(t.To))
	respond.JSON(c, http.StatusOK, toTransitionResponse(t))
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "job or recommendation not found", nil)
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrInvalidStatus):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to process job", nil)
	}
}

package servicerequests

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"fleet-backend/internal/shared/server/middleware"
	"fleet-backend/internal/shared/server/respond"
	"fleet-backend/internal/shared/telemetry"
)

// Handler wires HTTP handlers to the service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches the request routes to the versioned API group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/service-requests/options", h.options)
	rg.POST("/service-requests", h.submit)
	rg.GET("/service-requests", h.list)
	rg.GET("/service-requests/:id", h.get)
}

// RegisterWebhookRoute attaches the placeholder webhook receiver.
func RegisterWebhookRoute(rg *gin.RouterGroup) {
	rg.POST("/webhook", receiveWebhook)
}

type submitResponse struct {
	Request      Request      `json:"request"`
	Confirmation Confirmation `json:"confirmation"`
}

func (h *Handler) options(c *gin.Context) {
	respond.JSON(c, http.StatusOK, gin.H{
		"services":    AvailableServices,
		"timeWindows": TimeWindows,
	})
}

func (h *Handler) submit(c *gin.Context) {
	var in Input
	if err := c.ShouldBindJSON(&in); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	req, err := h.Svc.Submit(c.Request.Context(), middleware.UserIDFromContext(c), in)
	if req.ID != "" {
		c.Set("serviceRequestId", req.ID)
	}
	if err != nil {
		var verr *ValidationError
		switch {
		case errors.As(err, &verr):
			respond.Error(c, http.StatusBadRequest, "validation_error", verr.Message, nil)
		case errors.Is(err, ErrDeliveryFailed):
			respond.Error(c, http.StatusBadGateway, "delivery_failed", "Failed to submit request. Please try again.", gin.H{"id": req.ID})
		default:
			respond.Error(c, http.StatusInternalServerError, "internal_error", "Failed to submit request. Please try again.", nil)
		}
		return
	}
	respond.JSON(c, http.StatusCreated, submitResponse{Request: req, Confirmation: req.Payload.Confirm()})
}

func (h *Handler) list(c *gin.Context) {
	limit, _ := strconv.Atoi(c.Query("limit"))
	reqs, err := h.Svc.List(c.Request.Context(), limit)
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list service requests", nil)
		return
	}
	if reqs == nil {
		reqs = []Request{}
	}
	respond.JSON(c, http.StatusOK, reqs)
}

func (h *Handler) get(c *gin.Context) {
	id := c.Param("id")
	c.Set("serviceRequestId", id)
	req, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		if errors.Is(err, ErrNotFound) {
			respond.Error(c, http.StatusNotFound, "not_found", "service request not found", nil)
			return
		}
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to load service request", nil)
		return
	}
	respond.JSON(c, http.StatusOK, req)
}

// receiveWebhook logs whatever JSON it receives and echoes it back.
func receiveWebhook(c *gin.Context) {
	raw, err := io.ReadAll(c.Request.Body)
	var body any
	if err == nil {
		err = json.Unmarshal(raw, &body)
	}
	if err != nil {
		telemetry.Error("webhook.receive_failed", map[string]any{
			"request_id": middleware.RequestIDFromContext(c),
			"error":      err.Error(),
		})
		c.JSON(http.StatusInternalServerError, gin.H{
			"success": false,
			"message": "Failed to process request",
		})
		return
	}

	telemetry.Info("webhook.received", map[string]any{
		"request_id": middleware.RequestIDFromContext(c),
		"payload":    body,
	})
	c.JSON(http.StatusOK, gin.H{
		"success": true,
		"message": "Service request received",
		"data":    body,
	})
}

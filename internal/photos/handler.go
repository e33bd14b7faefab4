package photos

import (
	"errors"
	"io"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"fleet-backend/internal/shared/server/respond"
	"fleet-backend/internal/shared/telemetry"
)

const maxPhotoBytes = 10 << 20

// Handler serves inspection photos.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches photo routes; rg is expected to be the /api group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/inspection-photos/:recId", h.get)
	rg.PUT("/inspection-photos/:recId", h.put)
}

func (h *Handler) get(c *gin.Context) {
	recID := c.Param("recId")
	c.Set("recommendationId", recID)

	rc, info, err := h.Svc.Open(c.Request.Context(), recID)
	if err != nil {
		h.writeError(c, err)
		return
	}
	defer rc.Close()

	c.Header("Cache-Control", "private, max-age=300")
	if info.Size > 0 {
		c.Header("Content-Length", strconv.FormatInt(info.Size, 10))
	}
	contentType := info.ContentType
	if contentType == "" {
		contentType = "application/octet-stream"
	}
	c.Header("Content-Type", contentType)
	c.Status(http.StatusOK)
	if _, err := io.Copy(c.Writer, rc); err != nil {
		telemetry.Error("photos.stream_failed", map[string]any{"recommendation_id": recID, "error": err.Error()})
	}
}

func (h *Handler) put(c *gin.Context) {
	recID := c.Param("recId")
	c.Set("recommendationId", recID)

	body := http.MaxBytesReader(c.Writer, c.Request.Body, maxPhotoBytes)
	info, err := h.Svc.Upload(c.Request.Context(), recID, body)
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respond.Error(c, http.StatusRequestEntityTooLarge, "too_large", "photo exceeds 10MB", nil)
			return
		}
		h.writeError(c, err)
		return
	}
	respond.JSON(c, http.StatusCreated, gin.H{
		"recommendationId": recID,
		"photoUrl":         URL(recID),
		"contentType":      info.ContentType,
		"sizeBytes":        info.Size,
	})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "photo not found", nil)
	case errors.Is(err, ErrInvalidID):
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid recommendation id", nil)
	case errors.Is(err, ErrNotImage):
		respond.Error(c, http.StatusUnsupportedMediaType, "unsupported_media_type", "photo must be an image", nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to process photo", nil)
	}
}

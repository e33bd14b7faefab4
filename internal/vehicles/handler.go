package vehicles

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"fleet-backend/internal/shared/server/respond"
)

const maxImportBytes = 5 << 20

// Handler wires HTTP handlers to the roster service.
type Handler struct {
	Svc *Service
}

// NewHandler constructs a Handler.
func NewHandler(svc *Service) *Handler {
	return &Handler{Svc: svc}
}

// RegisterRoutes attaches roster routes to the router group.
func (h *Handler) RegisterRoutes(rg *gin.RouterGroup) {
	rg.GET("/vehicles", h.list)
	rg.POST("/vehicles", h.create)
	rg.POST("/vehicles/import", h.importFile)
	rg.GET("/vehicles/:id", h.get)
	rg.PATCH("/vehicles/:id", h.update)
	rg.DELETE("/vehicles/:id", h.delete)
}

func (h *Handler) list(c *gin.Context) {
	vehicles, err := h.Svc.List(c.Request.Context())
	if err != nil {
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to list vehicles", nil)
		return
	}
	if vehicles == nil {
		vehicles = []Vehicle{}
	}
	respond.JSON(c, http.StatusOK, vehicles)
}

func (h *Handler) get(c *gin.Context) {
	id := c.Param("id")
	c.Set("vehicleId", id)
	v, err := h.Svc.Get(c.Request.Context(), id)
	if err != nil {
		h.writeError(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, v)
}

// create accepts one vehicle object or an array of them.
func (h *Handler) create(c *gin.Context) {
	body, err := c.GetRawData()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	inputs, many, err := decodeInputs(body)
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}

	created, err := h.Svc.CreateMany(c.Request.Context(), inputs)
	if err != nil {
		h.writeError(c, err)
		return
	}
	if many {
		respond.JSON(c, http.StatusCreated, created)
		return
	}
	c.Set("vehicleId", created[0].ID)
	respond.JSON(c, http.StatusCreated, created[0])
}

func (h *Handler) update(c *gin.Context) {
	id := c.Param("id")
	c.Set("vehicleId", id)

	var patch Patch
	if err := c.ShouldBindJSON(&patch); err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "invalid request body", nil)
		return
	}
	v, err := h.Svc.Update(c.Request.Context(), id, patch)
	if err != nil {
		h.writeError(c, err)
		return
	}
	respond.JSON(c, http.StatusOK, v)
}

func (h *Handler) delete(c *gin.Context) {
	id := c.Param("id")
	c.Set("vehicleId", id)
	if err := h.Svc.Delete(c.Request.Context(), id); err != nil {
		h.writeError(c, err)
		return
	}
	respond.NoContent(c)
}

// importFile parses a multipart "file" upload and stores the valid rows.
// With dryRun=true nothing is stored and the parsed rows are returned.
func (h *Handler) importFile(c *gin.Context) {
	dryRun, _ := strconv.ParseBool(c.Query("dryRun"))

	c.Request.Body = http.MaxBytesReader(c.Writer, c.Request.Body, maxImportBytes)
	fh, err := c.FormFile("file")
	if err != nil {
		var maxErr *http.MaxBytesError
		if errors.As(err, &maxErr) {
			respond.Error(c, http.StatusRequestEntityTooLarge, "too_large", "import file exceeds 5MB", nil)
			return
		}
		respond.Error(c, http.StatusBadRequest, "validation_error", "file is required", nil)
		return
	}
	f, err := fh.Open()
	if err != nil {
		respond.Error(c, http.StatusBadRequest, "validation_error", "unable to read file", nil)
		return
	}
	defer f.Close()

	parsed, err := ParseFile(fh.Filename, f)
	if err != nil {
		if errors.Is(err, ErrUnsupported) {
			respond.Error(c, http.StatusBadRequest, "unsupported_format", "file must be .csv or .xlsx", nil)
			return
		}
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
		return
	}

	result, err := h.Svc.Import(c.Request.Context(), parsed, dryRun)
	if err != nil {
		h.writeError(c, err)
		return
	}
	created := result.Created
	if created == nil {
		created = []Vehicle{}
	}
	status := http.StatusOK
	if !dryRun && len(result.Created) > 0 {
		status = http.StatusCreated
	}
	respond.JSON(c, status, gin.H{
		"dryRun":   dryRun,
		"valid":    len(result.Rows),
		"skipped":  len(result.Errors),
		"errors":   result.Errors,
		"rows":     result.Rows,
		"vehicles": created,
	})
}

func (h *Handler) writeError(c *gin.Context, err error) {
	switch {
	case errors.Is(err, ErrNotFound):
		respond.Error(c, http.StatusNotFound, "not_found", "vehicle not found", nil)
	case errors.Is(err, ErrInvalidInput):
		respond.Error(c, http.StatusBadRequest, "validation_error", err.Error(), nil)
	default:
		respond.Error(c, http.StatusInternalServerError, "internal_error", "failed to process vehicle", nil)
	}
}

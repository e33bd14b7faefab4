package server

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"fleet-backend/internal/approvals"
	"fleet-backend/internal/photos"
	"fleet-backend/internal/servicerequests"
	"fleet-backend/internal/services/health"
	"fleet-backend/internal/shared/config"
	"fleet-backend/internal/shared/metrics"
	"fleet-backend/internal/shared/server/middleware"
	"fleet-backend/internal/shared/server/respond"
	"fleet-backend/internal/vehicles"
)

// RouterDeps holds the handlers mounted by NewRouter.
type RouterDeps struct {
	Config                 config.Config
	JWTSecret              []byte
	JobsHandler            *approvals.Handler
	VehiclesHandler        *vehicles.Handler
	ServiceRequestsHandler *servicerequests.Handler
	PhotosHandler          *photos.Handler
	Health                 *health.Service
}

// NewRouter constructs the Gin engine with middleware and routes registered.
func NewRouter(deps RouterDeps) *gin.Engine {
	if deps.Config.Env == "production" {
		gin.SetMode(gin.ReleaseMode)
	}
	r := gin.New()

	devLike := deps.Config.IsDevLike()
	r.Use(
		middleware.RequestID(),
		middleware.Logging(),
		middleware.Recovery(),
		middleware.CORS(deps.Config.CORSAllowOrigin),
		middleware.Identity(middleware.IdentityConfig{
			Secret:         deps.JWTSecret,
			AllowHeader:    devLike,
			AllowAnonymous: devLike,
			Skip:           isPublic,
		}),
		middleware.RateLimit(middleware.RateLimitConfig{
			GroupFor: middleware.MutationGroup,
			Rules:    middleware.DefaultRateLimitRules(),
		}),
	)

	r.GET("/metrics", metrics.Handler())

	api := r.Group("/api")
	servicerequests.RegisterWebhookRoute(api)
	if deps.PhotosHandler != nil {
		deps.PhotosHandler.RegisterRoutes(api)
	}

	v1 := api.Group("/v1")
	v1.GET("/health", func(c *gin.Context) {
		status, err := deps.Health.Status(c.Request.Context())
		if err != nil {
			respond.Error(c, http.StatusServiceUnavailable, "unavailable", "database unreachable", status)
			return
		}
		respond.JSON(c, http.StatusOK, status)
	})
	registerMeRoutes(v1)
	if deps.JobsHandler != nil {
		deps.JobsHandler.RegisterRoutes(v1)
	}
	if deps.VehiclesHandler != nil {
		deps.VehiclesHandler.RegisterRoutes(v1)
	}
	if deps.ServiceRequestsHandler != nil {
		deps.ServiceRequestsHandler.RegisterRoutes(v1)
	}

	return r
}

// isPublic covers health, metrics, the webhook receiver and photo downloads,
// which are fetched by image tags without credentials.
func isPublic(c *gin.Context) bool {
	path := c.Request.URL.Path
	switch {
	case path == "/api/v1/health", path == "/metrics", path == "/api/webhook":
		return true
	case c.Request.Method == http.MethodGet && strings.HasPrefix(path, "/api/inspection-photos/"):
		return true
	default:
		return false
	}
}

// Addr normalizes the listen address.
func Addr(port string) string {
	if port == "" {
		return ":8080"
	}
	if port[0] == ':' {
		return port
	}
	return ":" + port
}

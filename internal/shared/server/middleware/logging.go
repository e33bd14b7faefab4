package middleware

import (
	"strings"
	"time"

	"github.com/gin-gonic/gin"

	"fleet-backend/internal/shared/telemetry"
)

// Logging emits a structured log per request.
func Logging() gin.HandlerFunc {
	return func(c *gin.Context) {
		if strings.EqualFold(c.Request.Method, "OPTIONS") {
			c.Next()
			return
		}

		start := time.Now()
		c.Next()
		latency := time.Since(start)

		fields := map[string]any{
			"request_id":        RequestIDFromContext(c),
			"method":            c.Request.Method,
			"path":              c.Request.URL.Path,
			"status":            c.Writer.Status(),
			"status_transition": c.GetString("statusTransition"),
			"duration_ms":       float64(latency.Microseconds()) / 1000.0,
			"user_id":           UserIDFromContext(c),
			"job_id":            c.GetString("jobId"),
			"recommendation_id": c.GetString("recommendationId"),
			"client_ip":         c.ClientIP(),
			"user_agent":        c.Request.UserAgent(),
		}
		if vehicleID := c.GetString("vehicleId"); vehicleID != "" {
			fields["vehicle_id"] = vehicleID
		}
		if requestID := c.GetString("serviceRequestId"); requestID != "" {
			fields["service_request_id"] = requestID
		}
		telemetry.Info("request.complete", fields)
	}
}

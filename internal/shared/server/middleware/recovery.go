package middleware

import (
	"net/http"
	"runtime/debug"

	"github.com/gin-gonic/gin"

	"fleet-backend/internal/shared/server/respond"
	"fleet-backend/internal/shared/telemetry"
)

// Recovery turns a handler panic into a 500 response and an error log line.
// Headers already flushed to the client cannot be replaced.
func Recovery() gin.HandlerFunc {
	return func(c *gin.Context) {
		defer func() {
			rec := recover()
			if rec == nil {
				return
			}
			fields := map[string]any{
				"request_id": RequestIDFromContext(c),
				"error":      rec,
				"stack":      string(debug.Stack()),
				"path":       c.Request.URL.Path,
				"method":     c.Request.Method,
			}
			if userID := UserIDFromContext(c); userID != "" {
				fields["user_id"] = userID
			}
			telemetry.Error("panic", fields)
			if !c.Writer.Written() {
				respond.Error(c, http.StatusInternalServerError, "internal", "Unexpected server error", nil)
			}
			c.Abort()
		}()
		c.Next()
	}
}

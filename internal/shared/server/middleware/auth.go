package middleware

import (
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"fleet-backend/internal/shared/auth"
	"fleet-backend/internal/shared/server/respond"
)

const (
	userIDKey   = "userId"
	userNameKey = "userName"

	// AnonymousUser is the principal used when dev environments allow
	// unauthenticated access.
	AnonymousUser = "anonymous"
)

// IdentityConfig controls how callers are identified.
type IdentityConfig struct {
	Secret []byte
	// AllowHeader accepts a plain X-User-Id header without a token.
	AllowHeader bool
	// AllowAnonymous lets requests without any identity through as AnonymousUser.
	AllowAnonymous bool
	// Skip reports requests that need no identity, such as health checks.
	Skip func(*gin.Context) bool
}

// Identity verifies bearer tokens or dev headers and stores the principal.
func Identity(cfg IdentityConfig) gin.HandlerFunc {
	return func(c *gin.Context) {
		if c.Request.Method == http.MethodOptions {
			c.AbortWithStatus(http.StatusNoContent)
			return
		}
		if cfg.Skip != nil && cfg.Skip(c) {
			c.Next()
			return
		}

		authHeader := strings.TrimSpace(c.GetHeader("Authorization"))
		if authHeader != "" {
			if !strings.HasPrefix(authHeader, "Bearer ") {
				respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
				return
			}
			token := strings.TrimSpace(strings.TrimPrefix(authHeader, "Bearer "))
			claims, err := auth.Verify(cfg.Secret, token)
			if err != nil {
				respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
				return
			}
			c.Set(userIDKey, claims.Subject)
			if claims.Name != "" {
				c.Set(userNameKey, claims.Name)
			}
			c.Next()
			return
		}

		if cfg.AllowHeader {
			if userID := strings.TrimSpace(c.GetHeader("X-User-Id")); userID != "" {
				c.Set(userIDKey, userID)
				c.Next()
				return
			}
		}

		if cfg.AllowAnonymous {
			c.Set(userIDKey, AnonymousUser)
			c.Next()
			return
		}

		respond.Error(c, http.StatusUnauthorized, "unauthorized", "Missing identity", nil)
	}
}

// UserIDFromContext fetches the user ID set by the identity middleware.
func UserIDFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	return c.GetString(userIDKey)
}

// UserNameFromContext fetches the display name carried by the token, if any.
func UserNameFromContext(c *gin.Context) string {
	if c == nil {
		return ""
	}
	return c.GetString(userNameKey)
}

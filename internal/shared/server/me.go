package server

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"fleet-backend/internal/shared/server/middleware"
	"fleet-backend/internal/shared/server/respond"
)

// registerMeRoutes attaches the /me endpoint.
func registerMeRoutes(rg *gin.RouterGroup) {
	rg.GET("/me", meHandler)
}

func meHandler(c *gin.Context) {
	userID := middleware.UserIDFromContext(c)
	if userID == "" {
		respond.Error(c, http.StatusUnauthorized, "unauthorized", "missing or invalid token", nil)
		return
	}

	response := gin.H{
		"userId":    userID,
		"anonymous": userID == middleware.AnonymousUser,
	}
	if name := middleware.UserNameFromContext(c); name != "" {
		response["name"] = name
	}
	respond.JSON(c, http.StatusOK, response)
}

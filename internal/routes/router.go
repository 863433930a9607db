package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/LoAnTTM/RentManager/internal/middleware"
)

// SetupRoutes wires all application routes onto the engine. Auth routes are
// public; everything under /api/v1 requires a valid token.
func SetupRoutes(r *gin.Engine) {
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "healthy"})
	})

	RegisterAuthRoutes(r)

	api := r.Group("/api/v1")
	api.Use(middleware.AuthMiddleware())
	{
		RegisterAPIRoutes(api)
	}
}

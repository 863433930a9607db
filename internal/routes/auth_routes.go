package routes

import (
	"github.com/gin-gonic/gin"

	"github.com/LoAnTTM/RentManager/internal/handlers"
	"github.com/LoAnTTM/RentManager/internal/middleware"
)

// RegisterAuthRoutes registers login and registration (public) and the
// current-user endpoint (authenticated).
func RegisterAuthRoutes(r *gin.Engine) {
	auth := r.Group("/api/v1/auth")
	{
		auth.POST("/login", handlers.LoginHandler)
		auth.POST("/register", handlers.RegisterHandler)
		auth.GET("/me", middleware.AuthMiddleware(), handlers.GetMeHandler)
	}
}

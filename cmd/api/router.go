package api

import (
	"net/http"

	"authsvc/internal/auth/delivery"
	authUsecase "authsvc/internal/auth/usecase"

	"github.com/gin-gonic/gin"
)

func SetupRoutes(r *gin.Engine, authUsecase authUsecase.AuthUsecase) {
	authHandler := delivery.NewAuthHandler(authUsecase)

	// Health check (no auth required)
	r.GET("/health", func(c *gin.Context) {
		c.JSON(http.StatusOK, gin.H{"status": "ok"})
	})

	r.POST("/register", authHandler.Register)
	r.POST("/token", authHandler.Token)
	r.POST("/refresh-token", authHandler.RefreshToken)

	// Protected routes
	users := r.Group("/users")
	users.Use(delivery.AuthMiddleware(authUsecase))
	{
		users.GET("/me", authHandler.Me)
	}
}

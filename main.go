package main

import (
	"log"

	api "authsvc/cmd/api"
	authdomain "authsvc/internal/auth/domain"
	authRepo "authsvc/internal/auth/repository"
	"authsvc/internal/auth/token"
	authUsecase "authsvc/internal/auth/usecase"
	"authsvc/pkg/config"
	"authsvc/pkg/database"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatal("Failed to load configuration:", err)
	}

	// Initialize database
	db, err := database.NewPostgresConnection(cfg)
	if err != nil {
		log.Fatal("Failed to connect to database:", err)
	}

	// Auto-migrate database schemas
	if err := db.AutoMigrate(&authdomain.User{}); err != nil {
		log.Fatal("Failed to migrate database:", err)
	}

	// Wire dependencies: the signing secret lives in the codec and nowhere else
	userRepo := authRepo.NewUserRepository(db)
	codec := token.NewCodec(cfg.JWTSecret, cfg.JWTAccessExpiry, cfg.JWTRefreshExpiry)
	authUsecaseInstance := authUsecase.NewAuthUsecase(userRepo, codec)

	handler := api.NewHandler(authUsecaseInstance)

	log.Printf("Server starting on port %s", cfg.Port)
	if err := handler.Start(":" + cfg.Port); err != nil {
		log.Fatal("Failed to start server:", err)
	}
}

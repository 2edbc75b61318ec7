package main

import (
	"context"
	"os"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"

	"github.com/tomaspeirotti/gastro-genius-ai/config"
	"github.com/tomaspeirotti/gastro-genius-ai/internal/api"
	"github.com/tomaspeirotti/gastro-genius-ai/internal/database"
	"github.com/tomaspeirotti/gastro-genius-ai/internal/middleware"
	"github.com/tomaspeirotti/gastro-genius-ai/internal/router"
	"github.com/tomaspeirotti/gastro-genius-ai/internal/server"
	"github.com/tomaspeirotti/gastro-genius-ai/internal/service"
)

func main() {
	_ = godotenv.Load()

	log := zerolog.New(os.Stdout).With().Timestamp().Logger()
	if config.IsDevelopment() {
		log = log.Output(zerolog.ConsoleWriter{Out: os.Stdout})
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatal().Err(err).Msg("failed to load configuration")
	}

	db, err := database.New(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to database")
	}

	if err := database.RunMigrations(db, "migrations", log); err != nil {
		log.Fatal().Err(err).Msg("failed to run migrations")
	}

	rdb, err := database.NewRedisClient(cfg, log)
	if err != nil {
		log.Fatal().Err(err).Msg("failed to connect to redis")
	}

	tokenService := service.NewTokenService(cfg.JWTSecret, cfg.JWTExpiry)
	authService := service.NewAuthService(db, tokenService, log)
	recipeService := service.NewRecipeService(db, log)

	var imageService *service.ImageService
	s3cfg, err := config.NewS3Config(context.Background(), cfg)
	if err != nil {
		log.Warn().Err(err).Msg("object storage unavailable, image uploads disabled")
	} else {
		imageService = service.NewImageService(s3cfg, log)
	}

	authHandler := api.NewAuthHandler(authService, log)
	recipeHandler := api.NewRecipeHandler(recipeService, imageService, log)

	var aiHandler *api.AIHandler
	if cfg.AIAPIKey != "" {
		aiService := service.NewAIService(cfg.AIAPIKey, cfg.AIBaseURL, cfg.AIModel, rdb, log)
		limiter := middleware.NewAIGenerationRateLimiter(rdb)
		aiHandler = api.NewAIHandler(aiService, recipeService, limiter, log)
	} else {
		log.Warn().Msg("AI_API_KEY not set, AI endpoints disabled")
	}

	engine := router.Setup(authHandler, recipeHandler, aiHandler, authService, cfg.AllowedOrigins, log)

	srv := server.New(cfg.ServerAddr(), engine, log)
	if err := srv.Run(); err != nil {
		log.Fatal().Err(err).Msg("server error")
	}
	log.Info().Msg("server stopped")
}

package main

import (
	"context"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"
	"time"

	"github.com/rs/zerolog/log"

	"github.com/lunavic/tidylist-be/internal/api"
	"github.com/lunavic/tidylist-be/internal/auth"
	"github.com/lunavic/tidylist-be/internal/config"
	"github.com/lunavic/tidylist-be/internal/database"
	"github.com/lunavic/tidylist-be/internal/logger"
	"github.com/lunavic/tidylist-be/internal/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Fprintf(os.Stderr, "Failed to load configuration: %v\n", err)
		os.Exit(1)
	}

	logger.Init(cfg.LogLevel)

	// Ensure the public image directory exists
	if err := os.MkdirAll(filepath.Join(cfg.PublicDir, "images"), 0755); err != nil {
		log.Fatal().Err(err).Msg("Failed to create image directory")
	}

	// Set up database
	db, err := database.New(cfg.DatabasePath)
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to initialize database")
	}
	defer db.Close()

	if err := database.Migrate(db); err != nil {
		log.Fatal().Err(err).Msg("Failed to apply database migrations")
	}

	// Set up services
	userService := services.NewUserService(db, cfg.EmailPattern(), cfg.PasswordMinLength, cfg.BcryptCost)
	listService := services.NewListService(db)
	photoService := services.NewPhotoService(db, cfg.PublicDir, cfg.AllowedFileTypes)
	tokenService := auth.New(cfg.JWTSecret, userService)

	// Set up router
	router := api.NewRouter(tokenService, userService, listService, photoService, cfg.ClientURL, cfg.PublicDir, cfg.MaxFilesizeBytes)

	// Set up server
	srv := &http.Server{
		Addr:    fmt.Sprintf(":%d", cfg.Port),
		Handler: router,
	}

	// Graceful shutdown
	go func() {
		log.Info().Int("port", cfg.Port).Msg("Server starting")
		if err := srv.ListenAndServe(); err != http.ErrServerClosed {
			log.Fatal().Err(err).Msg("ListenAndServe()")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	log.Info().Msg("Shutting down server...")

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatal().Err(err).Msg("Server forced to shutdown")
	}

	log.Info().Msg("Server exiting")
}

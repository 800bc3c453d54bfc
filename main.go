package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/gin-gonic/gin"
	log "github.com/sirupsen/logrus"
	"motodealer-api/config"
	"motodealer-api/database"
	"motodealer-api/jobs"
	"motodealer-api/middleware"
	"motodealer-api/routes"
	"motodealer-api/services"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.WithError(err).Fatal("Failed to load configuration")
	}

	if cfg.IsRelease() {
		log.SetFormatter(&log.JSONFormatter{})
		log.SetLevel(log.InfoLevel)
		gin.SetMode(gin.ReleaseMode)
	} else {
		log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
		log.SetLevel(log.DebugLevel)
		gin.SetMode(gin.DebugMode)
	}

	// Initialize database
	db, err := database.Initialize(cfg)
	if err != nil {
		log.WithError(err).Fatal("Failed to connect to database")
	}

	if err := database.Migrate(db); err != nil {
		log.WithError(err).Fatal("Failed to migrate database")
	}

	if err := database.SeedAdmin(db, cfg); err != nil {
		log.WithError(err).Warn("Failed to seed administrator account")
	}

	if !cfg.StrictAdminMutations {
		log.Warn("STRICT_ADMIN_MUTATIONS is off: any authenticated user can update or delete motorcycles, sales and users by id")
	}

	emailService := services.NewEmailService(cfg)
	authLimiter := middleware.NewRateLimiter(cfg.AuthRateLimitPerMinute, cfg.AuthRateLimitBurst)

	router := gin.New()
	router.Use(gin.Recovery())
	routes.SetupRoutes(router, db, cfg, emailService, authLimiter)

	cleanupJob := jobs.NewLimiterCleanupJob(authLimiter, 5*time.Minute, 10*time.Minute)
	cleanupJob.Start()

	srv := &http.Server{
		Addr:              ":" + cfg.Port,
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		log.WithField("port", cfg.Port).Info("Starting MotoDealer API server")
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			log.WithError(err).Fatal("Failed to start server")
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Info("Shutting down server...")
	cleanupJob.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		log.WithError(err).Error("Server forced to shutdown")
	}

	if sqlDB, err := db.DB(); err == nil {
		_ = sqlDB.Close()
	}
	log.Info("Server exited")
}

package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/jordan/postboard/internal/api"
	"github.com/jordan/postboard/internal/config"
	"github.com/jordan/postboard/internal/generation"
	"github.com/jordan/postboard/internal/quota"
	"github.com/jordan/postboard/internal/repository/postgres"
	"github.com/jordan/postboard/internal/service"
	"github.com/jordan/postboard/internal/storage"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("failed to load config: %v", err)
	}

	// Initialize database
	db, err := postgres.NewConnection(cfg.DatabaseURL)
	if err != nil {
		log.Fatalf("failed to connect to database: %v", err)
	}

	// Initialize repositories and services
	repos := postgres.NewRepositories(db)
	services := service.NewServices(repos, cfg)

	// Initialize blob storage
	uploader, err := storage.NewUploader(context.Background(), cfg)
	if err != nil {
		log.Fatalf("failed to initialize blob storage: %v", err)
	}

	// Initialize generation provider client
	genClient := generation.NewClient(cfg.GenerationURL, cfg.GenerationAPIKey)

	// Initialize AI quota store; the sweeper resets all counters each window
	quotaStore := quota.NewMemoryStore(cfg.QuotaCeiling, cfg.QuotaWindow)
	defer quotaStore.Stop()

	// Initialize router
	router := api.NewRouter(services, repos, uploader, genClient, quotaStore, cfg)

	// Create server
	srv := &http.Server{
		Addr:         "0.0.0.0:" + cfg.Port,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in goroutine
	go func() {
		log.Printf("Server starting on port %s", cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("failed to start server: %v", err)
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		log.Fatalf("server forced to shutdown: %v", err)
	}

	log.Println("Server stopped")
}

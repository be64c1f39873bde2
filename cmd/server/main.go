package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/svaidyan/Investment-Return-Calculator-Backend/internal/api"
	"github.com/svaidyan/Investment-Return-Calculator-Backend/internal/config"
	"github.com/svaidyan/Investment-Return-Calculator-Backend/internal/database"
	"github.com/svaidyan/Investment-Return-Calculator-Backend/internal/marketdata"
	"github.com/svaidyan/Investment-Return-Calculator-Backend/internal/repository"
	"github.com/svaidyan/Investment-Return-Calculator-Backend/internal/service"
)

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Open database connection and run migrations
	db, err := database.Open(cfg.Database.Path)
	if err != nil {
		log.Fatalf("Failed to open database: %v", err)
	}
	defer db.Close()

	log.Printf("Connected to database: %s", cfg.Database.Path)

	// Create repositories
	securityRepo := repository.NewSecurityRepository(db)
	settingsRepo, err := repository.NewSettingsRepository(db, cfg.Settings.EncryptionKey)
	if err != nil {
		log.Fatalf("Failed to create settings repository: %v", err)
	}

	// Create services
	marketDataClient := marketdata.NewChartClient()
	systemService := service.NewSystemService(db, settingsRepo)
	securityService := service.NewSecurityService(securityRepo, marketDataClient)
	returnService := service.NewReturnService(securityRepo, cfg.Benchmark.Rate)
	importService := service.NewImportService(securityRepo, cfg.Data.Dir)

	// Scheduled price refresh
	scheduler, err := service.NewRefreshScheduler(securityService, cfg.Data.RefreshSchedule)
	if err != nil {
		log.Fatalf("Failed to create refresh scheduler: %v", err)
	}
	scheduler.Start()
	defer scheduler.Stop()

	// Create router
	router := api.NewRouter(systemService, securityService, returnService, importService, cfg)

	// Create HTTP server
	server := &http.Server{
		Addr:         cfg.Server.Addr,
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Start server in a goroutine
	go func() {
		log.Printf("Starting server on %s", cfg.Server.Addr)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server failed to start: %v", err)
		}
	}()

	// Wait for interrupt signal for graceful shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	log.Println("Shutting down server...")

	// Graceful shutdown with timeout
	ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
	defer cancel()

	if err := server.Shutdown(ctx); err != nil {
		log.Fatalf("Server forced to shutdown: %v", err)
	}

	log.Println("Server exited")
}

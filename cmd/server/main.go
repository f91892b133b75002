package main

import (
	"context"
	"database/sql"
	"errors"
	"flag"
	"fmt"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	httpapi "rentdesk-backend/internal/api/http"
	"rentdesk-backend/internal/config"
	"rentdesk-backend/internal/logger"
	"rentdesk-backend/internal/repository/postgres"
	"rentdesk-backend/internal/security"
	"rentdesk-backend/internal/service"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting Rentdesk Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)
	logger.Info("Email configuration", "enabled", cfg.SendGrid.APIKey != "", "from", cfg.SendGrid.From)

	// Initialize Database
	logger.Debug("Connecting to database...", "connection_string", fmt.Sprintf("%s@%s:%d/%s", cfg.Database.User, cfg.Database.Host, cfg.Database.Port, cfg.Database.Database))
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()
	if cfg.Database.MaxOpenConns > 0 {
		db.SetMaxOpenConns(cfg.Database.MaxOpenConns)
	}

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(cfg.JWT.Secret, cfg.AccessTokenTTL())

	// Initialize Services
	rentalLocks := service.NewRentalLocks()
	reconciler := service.NewReconciler(store.RentalRepository, rentalLocks)
	services := httpapi.Services{
		Auth:        service.NewAuthService(store.UserRepository, tokenManager),
		Customer:    service.NewCustomerService(store.CustomerRepository),
		Equipment:   service.NewEquipmentService(store.CategoryRepository, store.EquipmentRepository),
		Rental:      service.NewRentalService(store.RentalRepository, store.RentalItemRepository, store.EquipmentRepository, rentalLocks),
		Payment:     service.NewPaymentService(store.PaymentRepository, reconciler),
		Maintenance: service.NewMaintenanceService(store.MaintenanceRepository, store.EquipmentRepository),
	}

	srv := &http.Server{
		Addr:         cfg.GetServerAddress(),
		Handler:      httpapi.NewRouter(services, tokenManager, db, cfg.CORS.AllowedOrigins),
		ReadTimeout:  time.Duration(cfg.Server.ReadTimeoutSeconds) * time.Second,
		WriteTimeout: time.Duration(cfg.Server.WriteTimeoutSeconds) * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", srv.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("HTTP server error", "error", err)
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	logger.Info("Shutting down HTTP server...")
	ctx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := srv.Shutdown(ctx); err != nil {
		logger.Error("Graceful shutdown failed", "error", err)
	}
	logger.Info("HTTP server stopped. Goodbye!")
}

package main

import (
	"context"
	"database/sql"
	"flag"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	firebase "firebase.google.com/go/v4"
	firebaseauth "firebase.google.com/go/v4/auth"
	"github.com/joho/godotenv"
	_ "github.com/lib/pq"
	"google.golang.org/api/option"

	api "farmsight-backend/internal/api/http"
	"farmsight-backend/internal/classifier"
	"farmsight-backend/internal/config"
	"farmsight-backend/internal/events"
	"farmsight-backend/internal/events/kafka"
	"farmsight-backend/internal/logger"
	"farmsight-backend/internal/repository/postgres"
	"farmsight-backend/internal/security"
	"farmsight-backend/internal/service"
	"farmsight-backend/internal/storage"
)

func main() {
	// Parse command-line flags
	configPath := flag.String("config", "config/config.dev.yaml", "Path to configuration file")
	flag.Parse()

	// Local development overrides live in .env; absence is fine.
	_ = godotenv.Load()

	// Load configuration
	cfg, err := config.Load(*configPath)
	if err != nil {
		log.Fatalf("Failed to load configuration: %v", err)
	}

	// Initialize logger
	logger.Initialize(cfg.Log.Level, cfg.Log.Format)
	logger.Info("Starting FarmSight Backend...", "log_level", cfg.Log.Level, "log_format", cfg.Log.Format)
	logger.Info("Server configuration", "address", cfg.GetServerAddress())
	logger.Info("Database configuration", "host", cfg.Database.Host, "port", cfg.Database.Port, "database", cfg.Database.Database, "user", cfg.Database.User)

	// Initialize Database
	db, err := sql.Open("postgres", cfg.GetDatabaseConnectionString())
	if err != nil {
		logger.Error("Failed to connect to database", "error", err)
		log.Fatalf("Failed to connect to database: %v", err)
	}
	defer db.Close()

	// Test database connection
	if err := db.Ping(); err != nil {
		logger.Error("Failed to ping database", "error", err)
		log.Fatalf("Failed to ping database: %v", err)
	}
	logger.Info("Database connection established")

	// Initialize Repositories
	store := postgres.NewStore(db)

	// Initialize Security
	tokenManager := security.NewTokenManager(
		cfg.JWT.Secret,
		time.Duration(cfg.JWT.AccessTokenExpiry)*time.Minute,
		time.Duration(cfg.JWT.RefreshTokenExpiry)*time.Minute,
	)

	// Initialize File Storage
	fileStorage, err := storage.NewLocalStorage(cfg.Storage.BaseURL, cfg.Storage.UploadDir)
	if err != nil {
		logger.Error("Failed to initialize file storage", "error", err)
		log.Fatalf("Failed to initialize file storage: %v", err)
	}
	logger.Info("Using local file storage", "upload_dir", cfg.Storage.UploadDir)

	// Initialize Firebase for Google sign-in; without credentials the
	// endpoint reports that the feature is disabled.
	var firebaseAuth *firebaseauth.Client
	if cfg.Firebase.CredentialsFile != "" {
		app, err := firebase.NewApp(context.Background(), nil, option.WithCredentialsFile(cfg.Firebase.CredentialsFile))
		if err != nil {
			logger.Error("Failed to initialize Firebase", "error", err)
			log.Fatalf("Failed to initialize Firebase: %v", err)
		}
		firebaseAuth, err = app.Auth(context.Background())
		if err != nil {
			logger.Error("Failed to initialize Firebase auth client", "error", err)
			log.Fatalf("Failed to initialize Firebase auth client: %v", err)
		}
		logger.Info("Google sign-in enabled")
	} else {
		logger.Warn("Google sign-in disabled: no Firebase credentials configured")
	}

	// Initialize Event Publisher
	var publisher events.Publisher = events.NoopPublisher{}
	if cfg.Events.Enabled {
		kafkaPublisher := kafka.NewPublisher(cfg.Events.Brokers, cfg.Events.Topic)
		defer kafkaPublisher.Close()
		publisher = kafkaPublisher
		logger.Info("Kafka event publishing enabled", "brokers", cfg.Events.Brokers, "topic", cfg.Events.Topic)
	}

	// Initialize Classifier Client
	classifierClient := classifier.New(
		cfg.Classifier.BaseURL,
		time.Duration(cfg.Classifier.TimeoutSeconds)*time.Second,
	)

	// Initialize Services
	authSvc := service.NewAuthService(store.UserRepository, tokenManager, firebaseAuth)
	userSvc := service.NewUserService(store.UserRepository)
	financeSvc := service.NewFinanceService(store.FinanceRepository, publisher)
	cropSvc := service.NewCropService(store.CropRepository)
	reminderSvc := service.NewReminderService(store.ReminderRepository)
	plotSvc := service.NewPlotService(store.PlotRepository, store.CropRepository)
	soilSvc := service.NewSoilService(store.SoilRepository, store.PlotRepository)
	diagnosisSvc := service.NewDiagnosisService(classifierClient, fileStorage)

	// Set up HTTP server
	router := api.NewRouter(cfg, tokenManager, fileStorage, api.Services{
		Auth:      authSvc,
		Users:     userSvc,
		Finances:  financeSvc,
		Crops:     cropSvc,
		Reminders: reminderSvc,
		Plots:     plotSvc,
		Soil:      soilSvc,
		Diagnosis: diagnosisSvc,
	})

	server := &http.Server{
		Addr:              cfg.GetServerAddress(),
		Handler:           router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		logger.Info("HTTP server listening", "address", cfg.GetServerAddress())
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("HTTP server error", "error", err)
			log.Fatalf("Failed to serve: %v", err)
		}
	}()

	// Wait for interrupt signal
	sigChan := make(chan os.Signal, 1)
	signal.Notify(sigChan, os.Interrupt, syscall.SIGTERM)
	<-sigChan

	// Graceful shutdown
	logger.Info("Shutting down HTTP server...")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 15*time.Second)
	defer cancel()
	if err := server.Shutdown(shutdownCtx); err != nil {
		logger.Error("Shutdown error", "error", err)
	}
	logger.Info("Server stopped. Goodbye!")
}

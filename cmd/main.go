package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	_ "github.com/lib/pq"

	"github.com/Dastan11/league-fixtures/config"
	"github.com/Dastan11/league-fixtures/db"
	"github.com/Dastan11/league-fixtures/fixtures"
	"github.com/Dastan11/league-fixtures/handlers"
	"github.com/Dastan11/league-fixtures/repositories"
	api "github.com/Dastan11/league-fixtures/routes"
	"github.com/Dastan11/league-fixtures/services"
	"github.com/Dastan11/league-fixtures/storage"
)

func main() {
	logger := slog.New(slog.NewJSONHandler(os.Stdout, &slog.HandlerOptions{Level: slog.LevelInfo}))

	cfg, err := config.Load()
	if err != nil {
		logger.Error("failed to load configuration", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("configuration loaded", slog.Int("port", cfg.ServerPort))

	dbConn, err := db.Connect(cfg.DatabaseURL, 5*time.Second)
	if err != nil {
		logger.Error("failed to connect to database", slog.Any("error", err))
		os.Exit(1)
	}
	defer func() {
		if err := dbConn.Close(); err != nil {
			logger.Error("failed to close database connection", slog.Any("error", err))
		}
	}()
	logger.Info("database connection established")

	uploader, err := storage.NewCloudflareR2Uploader(storage.CloudflareR2UploaderConfig{
		AccountID:       cfg.R2AccountID,
		AccessKeyID:     cfg.R2AccessKeyID,
		SecretAccessKey: cfg.R2SecretAccessKey,
		BucketName:      cfg.R2BucketName,
		PublicBaseURL:   cfg.R2PublicBaseURL,
	})
	if err != nil {
		logger.Error("failed to initialize Cloudflare R2 uploader", slog.Any("error", err))
		os.Exit(1)
	}
	logger.Info("object storage initialized")

	userRepo := repositories.NewPostgresUserRepository(dbConn)
	teamRepo := repositories.NewPostgresTeamRepository(dbConn)
	tournamentRepo := repositories.NewPostgresTournamentRepository(dbConn)
	registrationRepo := repositories.NewPostgresRegistrationRepository(dbConn)
	matchRepo := repositories.NewPostgresMatchRepository(dbConn)
	venueRepo := repositories.NewPostgresVenueRepository(dbConn)
	bookingRepo := repositories.NewPostgresBookingRepository(dbConn)
	transactor := repositories.NewSQLTransactor(dbConn)
	logger.Info("repositories initialized")

	authService := services.NewAuthService(userRepo, cfg.JWTSecretKey, cfg.TokenTTL)
	teamService := services.NewTeamService(teamRepo, uploader, logger)
	tournamentService := services.NewTournamentService(tournamentRepo, matchRepo, uploader, logger)
	registrationService := services.NewRegistrationService(tournamentRepo, teamRepo, registrationRepo, logger)
	venueService := services.NewVenueService(venueRepo, bookingRepo)
	fixtureService := services.NewFixtureService(
		transactor,
		tournamentRepo,
		registrationRepo,
		matchRepo,
		venueRepo,
		bookingRepo,
		fixtures.NewRandomOrder(),
		logger,
	)
	statisticsService := services.NewStatisticsService(tournamentRepo, registrationRepo, matchRepo, logger)
	logger.Info("services initialized")

	authHandler := handlers.NewAuthHandler(authService)
	teamHandler := handlers.NewTeamHandler(teamService)
	tournamentHandler := handlers.NewTournamentHandler(tournamentService, registrationService, statisticsService)
	fixtureHandler := handlers.NewFixtureHandler(fixtureService)
	venueHandler := handlers.NewVenueHandler(venueService)

	router := chi.NewRouter()
	api.SetupRoutes(
		router,
		authService,
		authHandler,
		teamHandler,
		tournamentHandler,
		fixtureHandler,
		venueHandler,
	)
	logger.Info("routes configured")

	server := &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.ServerPort),
		Handler:      router,
		ReadTimeout:  10 * time.Second,
		WriteTimeout: 10 * time.Second,
		IdleTimeout:  120 * time.Second,
		ErrorLog:     slog.NewLogLogger(logger.Handler(), slog.LevelError),
	}

	serverErrors := make(chan error, 1)
	go func() {
		logger.Info("starting server", slog.String("address", server.Addr))
		serverErrors <- server.ListenAndServe()
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", slog.Any("error", err))
			os.Exit(1)
		}
	case sig := <-quit:
		logger.Info("shutdown signal received", slog.String("signal", sig.String()))
		shutdownCtx, cancelShutdown := context.WithTimeout(context.Background(), 15*time.Second)
		defer cancelShutdown()

		if err := server.Shutdown(shutdownCtx); err != nil {
			logger.Error("graceful shutdown failed", slog.Any("error", err))
			if closeErr := server.Close(); closeErr != nil {
				logger.Error("failed to force close server", slog.Any("error", closeErr))
			}
			os.Exit(1)
		}
		logger.Info("server shutdown complete")
	}
}

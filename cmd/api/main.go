// cmd/api is the application entry point: it loads configuration, runs
// migrations, wires the layers together, and serves HTTP until interrupted.
package main

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"guestpass/config"
	"guestpass/internal/adapters/auth"
	"guestpass/internal/adapters/email"
	delivery "guestpass/internal/delivery/http"
	"guestpass/internal/delivery/http/controllers"
	"guestpass/internal/domain"
	"guestpass/internal/repository/postgres"
	"guestpass/internal/services"
)

const staffTokenExpiry = 12 * time.Hour

func main() {
	logger := config.NewLogger()

	cfg, err := config.Load()
	if err != nil {
		logger.Error("config load failed", "err", err)
		os.Exit(1)
	}

	if err := postgres.RunMigrations(cfg.DBUrl, cfg.MigrationsPath); err != nil {
		logger.Error("migrations failed", "err", err)
		os.Exit(1)
	}

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("database open failed", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Error("database ping failed", "err", err)
		os.Exit(1)
	}

	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.MailerProvider,
		FromAddress: cfg.MailFromAddress,
		FromName:    cfg.MailFromName,
		SES: email.SESConfig{
			Region:          cfg.SESRegion,
			AccessKeyID:     cfg.SESAccessKeyID,
			SecretAccessKey: cfg.SESSecretKey,
		},
	}, logger)
	if err != nil {
		logger.Error("mailer init failed", "err", err)
		os.Exit(1)
	}

	eventRepo := postgres.NewEventRepository(db)
	regRepo := postgres.NewRegistrationRepository(db)
	tokenRepo := postgres.NewTokenRepository(db)
	checkInRepo := postgres.NewCheckInRepository(db)

	eventSvc := services.NewEventService(eventRepo)
	resolver := services.NewConflictResolver(regRepo)
	regSvc := services.NewRegistrationService(eventSvc, regRepo, resolver, mailer, logger)
	tokenSvc := services.NewTokenService(regRepo, tokenRepo)
	checkInSvc := services.NewCheckInService(eventRepo, regRepo, tokenRepo, checkInRepo)

	tokens := auth.NewJWTTokens(cfg.JWTSecret)
	var verifier domain.TokenVerifier = tokens
	authSvc := services.NewAuthService(cfg.StaffPasswordHash, auth.NewBcryptComparer(), tokens, staffTokenExpiry)

	router := delivery.NewRouter(
		logger,
		verifier,
		cfg.AllowedOrigins,
		controllers.NewRegistrationController(logger, regSvc, tokenSvc),
		controllers.NewEventController(logger, eventSvc),
		controllers.NewCheckInController(logger, checkInSvc),
		controllers.NewAuthController(logger, authSvc),
	)

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%s", cfg.Port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "err", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}

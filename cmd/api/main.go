package main

import (
	"context"
	"database/sql"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	_ "github.com/lib/pq"

	"conferencehub/config"
	"conferencehub/internal/adapters/email"
	delivery "conferencehub/internal/delivery/http"
	"conferencehub/internal/delivery/http/controllers"
	"conferencehub/internal/delivery/http/middleware"
	"conferencehub/internal/repository/postgres"
	"conferencehub/internal/services"
)

const serviceTimeout = 5 * time.Second

// @title ConferenceHub API
// @version 1.0
// @description Conference, session, attendee, and registration management.
// @BasePath /
func main() {
	cfg, err := config.Load()
	if err != nil {
		os.Exit(1)
	}
	logger := config.NewLogger()

	db, err := sql.Open("postgres", cfg.DBUrl)
	if err != nil {
		logger.Error("open database", "err", err)
		os.Exit(1)
	}
	defer db.Close()
	if err := db.Ping(); err != nil {
		logger.Error("ping database", "err", err)
		os.Exit(1)
	}
	logger.Info("connected to database")

	// Repositories
	conferenceRepo := postgres.NewConferenceRepository(db)
	sessionRepo := postgres.NewSessionRepository(db)
	attendeeRepo := postgres.NewAttendeeRepository(db)
	registrationRepo := postgres.NewRegistrationRepository(db)

	// Email
	mailer, err := email.NewMailer(email.MailerConfig{
		Provider:    cfg.Email.Provider,
		FromAddress: cfg.Email.FromAddress,
		FromName:    cfg.Email.FromName,
		SES: email.SESConfig{
			Region:             cfg.Email.SESRegion,
			AccessKeyID:        cfg.Email.SESAccessKeyID,
			SecretAccessKey:    cfg.Email.SESSecretAccessKey,
			InsecureSkipVerify: cfg.Email.SESInsecureSkipTLS,
		},
	})
	if err != nil {
		logger.Error("create mailer", "err", err)
		os.Exit(1)
	}
	emailService := services.NewEmailService(mailer, email.NewTemplateRenderer())

	// Services
	conferenceService := services.NewConferenceService(conferenceRepo, serviceTimeout)
	sessionService := services.NewSessionService(sessionRepo, conferenceRepo, serviceTimeout)
	attendeeService := services.NewAttendeeService(attendeeRepo, sessionRepo, serviceTimeout)
	registrationService := services.NewRegistrationService(registrationRepo, sessionRepo, attendeeRepo, serviceTimeout)
	recommendationService := services.NewRecommendationService(attendeeRepo, sessionRepo, registrationRepo, emailService, serviceTimeout)
	reportService := services.NewReportService(conferenceRepo, sessionRepo, registrationRepo, serviceTimeout)
	searchService := services.NewSearchService(conferenceRepo, sessionRepo, serviceTimeout)

	// Controllers and router
	mux := delivery.NewRouter(
		controllers.NewConferenceController(logger, conferenceService),
		controllers.NewSessionController(logger, sessionService),
		controllers.NewAttendeeController(logger, attendeeService, recommendationService),
		controllers.NewRegistrationController(logger, registrationService),
		controllers.NewReportController(logger, reportService, searchService),
	)

	handler := middleware.CORS(cfg.AllowedOrigins, mux)
	handler = middleware.LoggingMiddleware(logger, handler)

	srv := &http.Server{
		Addr:         ":" + cfg.Port,
		Handler:      handler,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	// Background sweep that keeps conference statuses in line with the
	// calendar even when nobody reads them.
	sweepCtx, stopSweep := context.WithCancel(context.Background())
	go func() {
		ticker := time.NewTicker(cfg.StatusRefreshInterval)
		defer ticker.Stop()
		for {
			select {
			case <-sweepCtx.Done():
				return
			case <-ticker.C:
				n, err := conferenceService.RefreshStatuses(sweepCtx)
				if err != nil {
					logger.Error("refresh conference statuses", "err", err)
					continue
				}
				if n > 0 {
					logger.Info("refreshed conference statuses", "updated", n)
				}
			}
		}
	}()

	go func() {
		logger.Info("server listening", "port", cfg.Port, "env", cfg.Environment)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			logger.Error("server error", "err", err)
			os.Exit(1)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down")
	stopSweep()
	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		logger.Error("graceful shutdown failed", "err", err)
		os.Exit(1)
	}
	logger.Info("server stopped")
}

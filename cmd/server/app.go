package main

import (
	"database/sql"
	"fmt"
	"log/slog"

	"github.com/rchoud/task-manager-api/internal/config"
	"github.com/rchoud/task-manager-api/internal/events"
	"github.com/rchoud/task-manager-api/internal/platform/mail"
	"github.com/rchoud/task-manager-api/internal/platform/postgres"
	"github.com/rchoud/task-manager-api/internal/service"
	"github.com/rchoud/task-manager-api/internal/service/auth"
	"github.com/rchoud/task-manager-api/internal/store"
)

// application holds all the shared application dependencies to simplify
// management and ensure proper cleanup on shutdown.
type application struct {
	// Configuration
	config *config.Config

	// Core services
	logger *slog.Logger
	db     *sql.DB

	// Stores (using interfaces for proper abstraction)
	userStore    store.UserStore
	sessionStore store.SessionStore
	taskStore    store.TaskStore

	// Service layer
	jwtService     auth.JWTService
	tokenService   *auth.TokenService
	passwordHasher auth.PasswordHasher
	accountService service.AccountService

	// Event system
	dispatcher *events.Dispatcher
}

// newApplication creates a new application instance with all dependencies
// initialized. It accepts core dependencies that must be established before
// application initialization.
func newApplication(cfg *config.Config, logger *slog.Logger, db *sql.DB) (*application, error) {
	app := &application{
		config: cfg,
		logger: logger,
		db:     db,
	}

	var err error
	app.jwtService, err = auth.NewJWTService(cfg.Auth)
	if err != nil {
		return nil, fmt.Errorf("failed to initialize JWT service: %w", err)
	}
	logger.Info("JWT authentication service initialized",
		"token_lifetime_minutes", cfg.Auth.TokenLifetimeMinutes)

	app.passwordHasher = auth.NewBcryptHasher()

	app.userStore = postgres.NewPostgresUserStore(db, logger)
	app.sessionStore = postgres.NewPostgresSessionStore(db, logger)
	app.taskStore = postgres.NewPostgresTaskStore(db, logger)

	app.tokenService = auth.NewTokenService(app.jwtService, app.sessionStore)
	app.accountService = service.NewAccountService(db, app.userStore, app.taskStore, logger)

	app.dispatcher = events.NewDispatcher(logger)
	if cfg.Mail.APIKey != "" {
		sender := mail.NewSendGridSender(cfg.Mail, logger)
		app.dispatcher.RegisterHandler(mail.NewAccountMailer(sender, logger))
		logger.Info("Account email notifications enabled",
			"from", cfg.Mail.FromAddress)
	} else {
		logger.Info("Account email notifications disabled, no API key configured")
	}

	return app, nil
}

// cleanup drains in-flight event handlers before the process exits. The
// database handle is closed by the caller that opened it.
func (app *application) cleanup() {
	app.dispatcher.Wait()
}

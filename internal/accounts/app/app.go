package app

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	httpapi "github.com/parleychat/parley/internal/accounts/http"
	"github.com/parleychat/parley/internal/accounts/service"
	"github.com/parleychat/parley/internal/accounts/store"
	"github.com/parleychat/parley/internal/accounts/store/drivers/sqlite"
	"github.com/parleychat/parley/pkg/cryptox"
	"github.com/parleychat/parley/pkg/jwtx"
	"github.com/parleychat/parley/pkg/mailx"
	"github.com/parleychat/parley/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags. Later problem
	BuildVersion = "v0.1.0"
)

// Application encapsulates the accounts service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db     store.Store
	tokens *jwtx.Issuer
	mailer mailx.Mailer

	sessionService      *service.SessionService
	passwordService     *service.PasswordService
	profileService      *service.ProfileService
	housekeepingService *service.HousekeepingService

	server *http.Server
	router *httpapi.Router
}

// New creates a new Application instance with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "accounts-service",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
	}

	// Set pepper path for secret hashing
	cryptox.SetPepperPath(cfg.PepperFile)

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	app.tokens = jwtx.NewIssuer(cfg.Issuer, map[jwtx.Kind]jwtx.KindSpec{
		jwtx.KindAccess:       {Secret: []byte(cfg.AccessSecret), TTL: cfg.AccessTTL},
		jwtx.KindRefresh:      {Secret: []byte(cfg.RefreshSecret), TTL: cfg.RefreshTTL},
		jwtx.KindOTPChallenge: {Secret: []byte(cfg.ChallengeSecret), TTL: cfg.ChallengeTTL},
		jwtx.KindReset:        {Secret: []byte(cfg.ResetSecret), TTL: cfg.ResetTTL},
	})

	app.initMailer()
	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.housekeepingService.Start()

	app.logger.Info("accounts service starting", "port", app.cfg.Port, "version", BuildVersion)

	serverErrors := make(chan error, 1)
	go func() {
		serverErrors <- app.server.ListenAndServe()
	}()

	shutdown := make(chan os.Signal, 1)
	signal.Notify(shutdown, os.Interrupt, syscall.SIGTERM)

	select {
	case err := <-serverErrors:
		if err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server failed: %w", err)
		}
	case sig := <-shutdown:
		app.logger.Info("shutdown signal received", "signal", sig)

		if err := app.Shutdown(); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	}

	return nil
}

// Shutdown gracefully shuts down the application.
func (app *Application) Shutdown() error {
	app.logger.Info("shutting down accounts service...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	app.housekeepingService.Stop()

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("accounts service stopped")
	return nil
}

// initDatabase initializes the database and applies migrations.
func (app *Application) initDatabase() error {
	host := fmt.Sprintf("file:%s?_busy_timeout=5000&_journal_mode=WAL", app.cfg.DatabaseFile)
	db, err := sqlite.NewStore(host)
	if err != nil {
		return fmt.Errorf("failed to initialize database: %w", err)
	}
	app.db = db

	if err := db.ApplyMigrations(); err != nil {
		_ = db.Close()
		return fmt.Errorf("failed to apply database migrations: %w", err)
	}

	app.logger.Info("database migrations applied successfully")
	return nil
}

// initMailer selects the mail transport from config.
func (app *Application) initMailer() {
	if app.cfg.MailMode == "smtp" {
		app.mailer = mailx.NewSMTPMailer(mailx.SMTPConfig{
			Host:     app.cfg.SMTPHost,
			Port:     app.cfg.SMTPPort,
			Username: app.cfg.SMTPUsername,
			Password: app.cfg.SMTPPassword,
			From:     app.cfg.MailFrom,
		})
		app.logger.Info("smtp mailer enabled", "host", app.cfg.SMTPHost)
		return
	}
	app.mailer = &mailx.LogMailer{Logger: app.logger}
	app.logger.Info("log mailer enabled, mail will not be sent")
}

// initServices initializes all business logic services.
func (app *Application) initServices() {
	app.sessionService = service.NewSessionService(app.db, app.tokens, app.mailer, service.OTPConfig{
		TTL:            app.cfg.OTPTTL,
		MaxAttempts:    app.cfg.OTPMaxAttempts,
		LockDuration:   app.cfg.OTPLockDuration,
		ResendCooldown: app.cfg.OTPResendCooldown,
	})

	app.passwordService = service.NewPasswordService(app.db, app.tokens, app.mailer, app.cfg.ResetBaseURL)
	app.profileService = service.NewProfileService(app.db)

	app.housekeepingService = service.NewHousekeepingService(
		app.db,
		app.logger,
		app.cfg.HousekeepingInterval,
	)
}

// initHTTP initializes the HTTP router and server.
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.tokens,
		BuildVersion,
		app.cfg.IsProd(),
		app.db,
		app.logger,
	)

	router.SessionService = app.sessionService
	router.PasswordService = app.passwordService
	router.ProfileService = app.profileService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}

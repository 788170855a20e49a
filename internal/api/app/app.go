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

	"github.com/stripe/stripe-go/v82"

	httpapi "github.com/breathehq/breathe/internal/api/http"
	"github.com/breathehq/breathe/internal/api/service"
	"github.com/breathehq/breathe/internal/api/store"
	"github.com/breathehq/breathe/internal/api/store/drivers/sqlite"
	"github.com/breathehq/breathe/pkg/jwtx"
	"github.com/breathehq/breathe/pkg/slogx"
)

const (
	// BuildVersion should be set at build time via ldflags.
	BuildVersion = "v1.0.0"
)

// Application encapsulates the API service with all its dependencies.
type Application struct {
	cfg    Config
	logger *slog.Logger

	db     store.Store
	tokens *jwtx.HS256

	// Services
	accountService     *service.AccountService
	profileService     *service.ProfileService
	customerService    *service.CustomerService
	settingsService    *service.SettingsService
	bookmarkService    *service.BookmarkService
	screenTimeService  *service.ScreenTimeService
	improvementService *service.ImprovementService
	deviceService      *service.DeviceService
	billingService     *service.BillingService
	oauthService       *service.OAuthService

	// HTTP server
	server *http.Server
	router *httpapi.Router
}

// New creates an Application with all dependencies initialized.
func New(cfg Config) (*Application, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	app := &Application{
		cfg: cfg,
		logger: slogx.New(slogx.Config{
			Service: "breathe-api",
			Version: BuildVersion,
			Env:     cfg.Env,
			Level:   cfg.LogLevel,
			Format:  cfg.LogFormat,
		}),
		tokens: jwtx.NewHS256(cfg.JWTSecret),
	}

	// The Stripe bindings use a package-level key.
	stripe.Key = cfg.StripeSecretKey

	if err := app.initDatabase(); err != nil {
		return nil, err
	}

	app.initServices()
	app.initHTTP()

	return app, nil
}

// Run starts the application and blocks until shutdown is requested.
func (app *Application) Run() error {
	app.logger.Info("api starting", "port", app.cfg.Port, "version", BuildVersion)

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
	app.logger.Info("shutting down api...")

	ctx, cancel := context.WithTimeout(context.Background(), app.cfg.ShutdownGracePeriod)
	defer cancel()

	if err := app.server.Shutdown(ctx); err != nil {
		app.logger.Error("graceful server shutdown failed", "error", err)
		if err := app.server.Close(); err != nil {
			app.logger.Error("error closing server", "error", err)
		}
	}

	if err := app.db.Close(); err != nil {
		app.logger.Error("error closing database", "error", err)
		return err
	}

	app.logger.Info("api stopped")
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

// initServices initializes all business logic services.
func (app *Application) initServices() {
	app.accountService = &service.AccountService{
		Store:  app.db,
		Signer: app.tokens,
	}
	app.profileService = &service.ProfileService{Store: app.db}
	app.customerService = &service.CustomerService{Store: app.db}
	app.settingsService = &service.SettingsService{Store: app.db}
	app.bookmarkService = &service.BookmarkService{Store: app.db}
	app.screenTimeService = &service.ScreenTimeService{Store: app.db}
	app.improvementService = &service.ImprovementService{Store: app.db}
	app.deviceService = &service.DeviceService{Store: app.db}

	app.billingService = &service.BillingService{
		Store:         app.db,
		PlanID:        app.cfg.StripePlanID,
		SuccessURL:    app.cfg.FrontendURL + "/billing/success",
		CancelURL:     app.cfg.FrontendURL + "/billing/cancelled",
		WebhookSecret: app.cfg.StripeWebhookSecret,
	}

	app.oauthService = service.NewOAuthService(
		app.db,
		app.accountService,
		app.cfg.GoogleClientID,
		app.cfg.GoogleClientSecret,
		app.cfg.GoogleRedirectURL,
	)
}

// initHTTP initializes the HTTP router and server.
func (app *Application) initHTTP() {
	router := httpapi.NewRouter(
		app.tokens,
		BuildVersion,
		app.cfg.FrontendURL,
		app.db,
		app.logger,
	)

	// Wire services to router
	router.AccountService = app.accountService
	router.ProfileService = app.profileService
	router.CustomerService = app.customerService
	router.SettingsService = app.settingsService
	router.BookmarkService = app.bookmarkService
	router.ScreenTimeService = app.screenTimeService
	router.ImprovementService = app.improvementService
	router.DeviceService = app.deviceService
	router.BillingService = app.billingService
	router.OAuthService = app.oauthService
	router.ApplyRoutes()

	app.router = router

	app.server = &http.Server{
		Addr:              fmt.Sprintf(":%d", app.cfg.Port),
		Handler:           router,
		ReadHeaderTimeout: 3 * time.Second,
	}
}

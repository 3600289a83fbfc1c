package main

import (
	"context"
	"errors"

	"github.com/asaskevich/EventBus"
	"github.com/fekuna/omnipos-catalog-admin/config"
	"github.com/fekuna/omnipos-catalog-admin/internal/catalog"
	"github.com/fekuna/omnipos-catalog-admin/internal/gateway"
	"github.com/fekuna/omnipos-catalog-admin/internal/pkg/logger"
	"github.com/fekuna/omnipos-catalog-admin/internal/product"
	prodRepoPkg "github.com/fekuna/omnipos-catalog-admin/internal/product/repository"
	prodUCPkg "github.com/fekuna/omnipos-catalog-admin/internal/product/usecase"
	"github.com/fekuna/omnipos-catalog-admin/internal/session"
	sessRepoPkg "github.com/fekuna/omnipos-catalog-admin/internal/session/repository"
	"github.com/fekuna/omnipos-catalog-admin/internal/table"
	"github.com/fekuna/omnipos-catalog-admin/internal/user"
	userRepoPkg "github.com/fekuna/omnipos-catalog-admin/internal/user/repository"
	userUCPkg "github.com/fekuna/omnipos-catalog-admin/internal/user/usecase"
	"github.com/joho/godotenv"
	"go.uber.org/zap"
)

var (
	errNotSignedIn    = errors.New("not signed in; run 'admin signin' first")
	errSessionExpired = errors.New("your session has expired; run 'admin signin' again")
)

// app is the wiring shared by every command.
type app struct {
	logger   logger.ZapLogger
	session  *session.Session
	products product.UseCase
	users    user.UseCase
	view     *table.View

	closers []func() error
}

func newApp(ctx context.Context) (*app, error) {
	// 1. Configuration
	_ = godotenv.Load()
	cfg := config.LoadEnv()

	// 2. Logger
	logConfig := &logger.ZapLoggerConfig{
		Encoding:          cfg.Logger.Encoding,
		Level:             cfg.Logger.Level,
		DisableCaller:     cfg.Logger.DisableCaller,
		DisableStacktrace: cfg.Logger.DisableStacktrace,
		FilePath:          cfg.Logger.File,
		MaxSizeMB:         cfg.Logger.MaxSizeMB,
		MaxBackups:        cfg.Logger.MaxBackups,
	}
	if cfg.Server.AppEnv == "development" {
		logConfig.IsDevelopment = true
		logConfig.Level = "debug"
	}
	appLogger := logger.NewZapLogger(logConfig)
	a := &app{logger: appLogger, closers: []func() error{appLogger.Sync}}

	// 3. Session storage
	var store session.Repository
	if cfg.Session.DBPath == "" {
		store = sessRepoPkg.NewMemoryRepository()
	} else {
		db, err := sessRepoPkg.OpenSQLite(cfg.Session.DBPath)
		if err != nil {
			a.close()
			return nil, err
		}
		a.closers = append(a.closers, db.Close)
		store = db
	}
	sess, err := session.Open(ctx, store, appLogger)
	if err != nil {
		a.close()
		return nil, err
	}
	a.session = sess

	// 4. Gateway, repositories and use cases
	client := gateway.NewClient(gateway.Config{
		BaseURL: cfg.API.BaseURL,
		Timeout: cfg.API.Timeout,
	}, sess, appLogger.With(zap.String("component", "gateway")))

	bus := EventBus.New()
	collection := catalog.New(bus)
	a.view = table.NewProductView()
	if err := a.view.Subscribe(bus); err != nil {
		a.close()
		return nil, err
	}

	a.products = prodUCPkg.NewProductUseCase(prodRepoPkg.NewHTTPRepository(client), collection, sess, appLogger)
	a.users = userUCPkg.NewUserUseCase(userRepoPkg.NewHTTPRepository(client), sess, appLogger)

	appLogger.Debug("admin started",
		zap.String("api", cfg.API.BaseURL),
		zap.Bool("signed_in", sess.IsAuthenticated()),
	)
	return a, nil
}

// loadProducts gates product commands on a session and fills the collection.
func (a *app) loadProducts(ctx context.Context) error {
	if !a.session.IsAuthenticated() {
		return errNotSignedIn
	}
	if _, err := a.products.LoadProducts(ctx); err != nil {
		if !a.session.IsAuthenticated() {
			return errSessionExpired
		}
		return err
	}
	return nil
}

func (a *app) close() {
	for i := len(a.closers) - 1; i >= 0; i-- {
		_ = a.closers[i]()
	}
}

// withApp runs fn against a freshly wired app and releases it afterwards.
func withApp(ctx context.Context, fn func(*app) error) error {
	a, err := newApp(ctx)
	if err != nil {
		return err
	}
	defer a.close()
	return fn(a)
}

// surfaced prefers the single message a dialog shows over the raw cause.
func surfaced(message string, err error) error {
	if message != "" {
		return errors.New(message)
	}
	return err
}

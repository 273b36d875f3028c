package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"os/signal"
	"syscall"

	"gorm.io/gorm"

	"stadslab/internal/backoffice"
	"stadslab/internal/config"
	"stadslab/internal/db"
	"stadslab/internal/db/mock"
	"stadslab/internal/handlers"
	applog "stadslab/internal/log"
	"stadslab/internal/manuals"
	"stadslab/internal/obs"
	"stadslab/internal/seed"
	"stadslab/internal/server"
	"stadslab/internal/store"
)

type serverLifecycle interface {
	Start() error
	Stop() error
}

var (
	loadConfigFunc      = config.Load
	setLogLevelFunc     = applog.SetLevel
	setLogFormatFunc    = applog.SetFormat
	newMockDatabaseFunc = mock.New
	configureDatabase   = db.Configure
	newServerFunc       = func(cfg server.Config) (serverLifecycle, error) {
		return server.New(cfg)
	}
	subscribeShutdownSig = func() (<-chan os.Signal, func()) {
		ch := make(chan os.Signal, 1)
		signal.Notify(ch, syscall.SIGTERM, syscall.SIGINT)
		return ch, func() { signal.Stop(ch) }
	}
)

func main() {
	os.Exit(run(context.Background()))
}

func run(ctx context.Context) int {
	cfg, err := loadConfigFunc()
	if err != nil {
		applog.Error(ctx, "failed to load configuration", "error", err)
		return 1
	}
	if err := setLogLevelFunc(cfg.Logging.Level); err != nil {
		applog.Error(ctx, "invalid log level", "level", cfg.Logging.Level, "error", err)
		return 1
	}
	if err := setLogFormatFunc(cfg.Logging.Format); err != nil {
		applog.Error(ctx, "invalid log format", "format", cfg.Logging.Format, "error", err)
		return 1
	}

	database, err := openDatabase(ctx, cfg)
	if err != nil {
		applog.Error(ctx, "failed to configure database", "error", err)
		return 1
	}

	kv, err := store.NewGormStore(database, cfg.Storage.Namespace)
	if err != nil {
		applog.Error(ctx, "failed to open store", "error", err)
		return 1
	}

	var recorder backoffice.Recorder
	if cfg.Metrics.Enabled {
		recorder = obs.NewPlannerMetrics(cfg.Metrics.Namespace, nil)
	}
	planners := backoffice.NewService(kv, recorder)
	library := manuals.NewService(kv)
	if _, err := seed.Ensure(ctx, kv, planners, library); err != nil {
		applog.Error(ctx, "failed to seed store", "error", err)
		return 1
	}

	hash, err := handlers.HashAdminPassword(cfg.Auth.AdminPassword)
	if err != nil {
		applog.Error(ctx, "failed to hash admin password", "error", err)
		return 1
	}

	srv, err := newServerFunc(server.Config{
		Addr: cfg.Server.Addr,
		Session: server.SessionConfig{
			Lifetime:     cfg.Auth.Session.Lifetime,
			CookieName:   cfg.Auth.Session.CookieName,
			CookieDomain: cfg.Auth.Session.CookieDomain,
			CookieSecure: cfg.Auth.Session.CookieSecure,
		},
		Planner:           planners,
		Manuals:           library,
		AdminPasswordHash: hash,
		Metrics: server.MetricsConfig{
			Enabled:   cfg.Metrics.Enabled,
			Namespace: cfg.Metrics.Namespace,
		},
	})
	if err != nil {
		applog.Error(ctx, "failed to build server", "error", err)
		return 1
	}

	sigCh, stopSignals := subscribeShutdownSig()
	defer stopSignals()

	errCh := make(chan error, 1)
	go func() {
		applog.Info(ctx, "starting http server", "addr", cfg.Server.Addr)
		errCh <- srv.Start()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			applog.Error(ctx, "server encountered an error", "error", err)
			return 1
		}
		return 0
	case sig := <-sigCh:
		applog.Info(ctx, "shutting down http server", "signal", sig.String())
	case <-ctx.Done():
		applog.Info(ctx, "context cancelled, shutting down http server")
	}

	if err := srv.Stop(); err != nil {
		applog.Error(ctx, "graceful shutdown failed", "error", err)
		return 1
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		applog.Error(ctx, "server stopped with error", "error", err)
		return 1
	}
	return 0
}

func openDatabase(ctx context.Context, cfg config.Config) (*gorm.DB, error) {
	if cfg.Database.UseMock {
		applog.Info(ctx, "using in-memory mock database")
		return newMockDatabaseFunc(ctx, cfg.Storage.Namespace)
	}
	return configureDatabase(cfg.Database)
}

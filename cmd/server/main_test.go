package main

import (
	"context"
	"errors"
	"net/http"
	"os"
	"path/filepath"
	"syscall"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/gorm"

	"stadslab/internal/config"
	"stadslab/internal/db/mock"
	"stadslab/internal/handlers"
	"stadslab/internal/server"
)

// fakeServer stands in for the http server. Start blocks until Stop when
// block is set.
type fakeServer struct {
	startErr error
	stopErr  error
	block    bool

	started chan struct{}
	release chan struct{}
	stopped bool
}

func newFakeServer(startErr error, block bool) *fakeServer {
	return &fakeServer{
		startErr: startErr,
		block:    block,
		started:  make(chan struct{}),
		release:  make(chan struct{}),
	}
}

func (s *fakeServer) Start() error {
	close(s.started)
	if s.block {
		<-s.release
	}
	return s.startErr
}

func (s *fakeServer) Stop() error {
	s.stopped = true
	if s.block {
		close(s.release)
	}
	return s.stopErr
}

// stubSeams installs harmless defaults for every seam of run and restores the
// originals when the test ends. It returns the signal channel run listens on.
func stubSeams(t *testing.T, cfg config.Config, srv *fakeServer, got *server.Config) chan os.Signal {
	t.Helper()
	origLoad, origLevel, origFormat := loadConfigFunc, setLogLevelFunc, setLogFormatFunc
	origMock, origConfigure := newMockDatabaseFunc, configureDatabase
	origServer, origSignals := newServerFunc, subscribeShutdownSig
	t.Cleanup(func() {
		loadConfigFunc, setLogLevelFunc, setLogFormatFunc = origLoad, origLevel, origFormat
		newMockDatabaseFunc, configureDatabase = origMock, origConfigure
		newServerFunc, subscribeShutdownSig = origServer, origSignals
		handlers.Configure(handlers.Dependencies{})
	})

	loadConfigFunc = func() (config.Config, error) { return cfg, nil }
	setLogLevelFunc = func(string) error { return nil }
	setLogFormatFunc = func(string) error { return nil }
	newServerFunc = func(c server.Config) (serverLifecycle, error) {
		if got != nil {
			*got = c
		}
		return srv, nil
	}
	signals := make(chan os.Signal, 1)
	subscribeShutdownSig = func() (<-chan os.Signal, func()) { return signals, func() {} }
	return signals
}

func mockConfig() config.Config {
	return config.Config{
		Server:   config.ServerConfig{Addr: ":8080"},
		Database: config.DatabaseConfig{UseMock: true},
		Logging:  config.LoggingConfig{Level: "debug", Format: "text"},
		Auth: config.AuthConfig{
			AdminPassword: "test",
			Session:       config.SessionConfig{Lifetime: time.Hour, CookieName: "test", CookieSecure: true},
		},
		Storage: config.StorageConfig{Namespace: "maintest"},
	}
}

func TestRunWithMockDatabaseStopsOnSignal(t *testing.T) {
	srv := newFakeServer(http.ErrServerClosed, true)
	var got server.Config
	signals := stubSeams(t, mockConfig(), srv, &got)

	var namespace string
	newMockDatabaseFunc = func(ctx context.Context, ns string) (*gorm.DB, error) {
		namespace = ns
		return mock.New(ctx, ns)
	}
	configureDatabase = func(config.DatabaseConfig) (*gorm.DB, error) {
		t.Fatal("configureDatabase called in mock mode")
		return nil, nil
	}

	go func() {
		<-srv.started
		signals <- syscall.SIGTERM
	}()

	require.Equal(t, 0, run(context.Background()))
	assert.Equal(t, "maintest", namespace)
	assert.True(t, srv.stopped)

	require.NotNil(t, got.Planner)
	require.NotNil(t, got.Manuals)
	assert.NotEmpty(t, got.AdminPasswordHash)
	assert.Equal(t, "test", got.Session.CookieName)
	assert.True(t, got.Session.CookieSecure)

	state, err := got.Planner.State(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, state.Concepts)
	lib, err := got.Manuals.Library(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, lib.Manuals)
}

func TestRunWithSQLiteFileStopsOnCancel(t *testing.T) {
	cfg := mockConfig()
	cfg.Database = config.DatabaseConfig{URL: "sqlite://" + filepath.Join(t.TempDir(), "stadslab.db")}
	cfg.Metrics = config.MetricsConfig{Enabled: false}

	srv := newFakeServer(nil, true)
	var got server.Config
	stubSeams(t, cfg, srv, &got)
	newMockDatabaseFunc = func(context.Context, string) (*gorm.DB, error) {
		t.Fatal("mock database used although a URL is configured")
		return nil, nil
	}

	ctx, cancel := context.WithCancel(context.Background())
	go func() {
		<-srv.started
		cancel()
	}()

	require.Equal(t, 0, run(ctx))
	assert.True(t, srv.stopped)
	assert.False(t, got.Metrics.Enabled)

	state, err := got.Planner.State(context.Background())
	require.NoError(t, err)
	assert.Len(t, state.Concepts, 6)
}

func TestRunFailsWhenServerCannotStart(t *testing.T) {
	srv := newFakeServer(errors.New("address already in use"), false)
	stubSeams(t, mockConfig(), srv, nil)
	newMockDatabaseFunc = mock.New

	assert.Equal(t, 1, run(context.Background()))
	assert.False(t, srv.stopped)
}

func TestRunFailsBeforeServing(t *testing.T) {
	cases := map[string]func(){
		"config": func() {
			loadConfigFunc = func() (config.Config, error) { return config.Config{}, errors.New("bad env") }
		},
		"log level": func() {
			setLogLevelFunc = func(string) error { return errors.New("unknown log level") }
		},
		"log format": func() {
			setLogFormatFunc = func(string) error { return errors.New("unknown log format") }
		},
		"database": func() {
			configureDatabase = func(config.DatabaseConfig) (*gorm.DB, error) {
				return nil, errors.New("connection refused")
			}
		},
	}
	for name, breakSeam := range cases {
		t.Run(name, func(t *testing.T) {
			cfg := mockConfig()
			cfg.Database = config.DatabaseConfig{URL: "postgres://example"}
			srv := newFakeServer(nil, false)
			stubSeams(t, cfg, srv, nil)
			newServerFunc = func(server.Config) (serverLifecycle, error) {
				t.Fatal("server built after a startup failure")
				return nil, nil
			}
			breakSeam()

			assert.Equal(t, 1, run(context.Background()))
		})
	}
}

package server

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/alexedwards/scs/v2"
	"github.com/prometheus/client_golang/prometheus"

	"stadslab/internal/backoffice"
	"stadslab/internal/handlers"
	applog "stadslab/internal/log"
	"stadslab/internal/manuals"
	"stadslab/internal/obs"
)

// Config captures the runtime configuration for the HTTP server.
type Config struct {
	Addr              string
	Session           SessionConfig
	Planner           *backoffice.Service
	Manuals           *manuals.Service
	AdminPasswordHash []byte
	Metrics           MetricsConfig
}

// SessionConfig controls session behavior for the HTTP server.
type SessionConfig struct {
	Lifetime     time.Duration
	CookieName   string
	CookieDomain string
	CookieSecure bool
}

// MetricsConfig enables request metrics and the /metrics endpoint. A nil
// Registry means the default Prometheus registry.
type MetricsConfig struct {
	Enabled   bool
	Namespace string
	Registry  *prometheus.Registry
}

// Server wraps an http.Server and exposes helpers for bootstrapping a
// production-ready web service.
type Server struct {
	config     Config
	httpServer *http.Server
}

// New builds a new Server using the provided configuration.
func New(cfg Config) (*Server, error) {
	applog.Debug(context.Background(), "initializing server",
		"addr", cfg.Addr,
		"sessionLifetime", cfg.Session.Lifetime.String(),
		"sessionCookie", cfg.Session.CookieName,
		"metrics", cfg.Metrics.Enabled,
	)

	sessionManager := newSessionManager(cfg.Session)

	handlers.Configure(handlers.Dependencies{
		Sessions:          sessionManager,
		Planner:           cfg.Planner,
		Manuals:           cfg.Manuals,
		AdminPasswordHash: cfg.AdminPasswordHash,
	})
	applog.Debug(context.Background(), "handler dependencies configured")

	var (
		registerer prometheus.Registerer
		gatherer   prometheus.Gatherer
	)
	if cfg.Metrics.Enabled {
		registerer, gatherer = prometheus.DefaultRegisterer, prometheus.DefaultGatherer
		if cfg.Metrics.Registry != nil {
			registerer, gatherer = cfg.Metrics.Registry, cfg.Metrics.Registry
		}
	}

	var handler http.Handler = newRouter(gatherer)
	if registerer != nil {
		handler = obs.HTTPObs{Metrics: obs.NewHTTPMetrics(cfg.Metrics.Namespace, nil, registerer)}.Middleware(handler)
	}
	handler = sessionManager.LoadAndSave(obs.RequestLog(handler))

	applog.Debug(context.Background(), "http handler chain prepared")

	return &Server{
		config: cfg,
		httpServer: &http.Server{
			Addr:              cfg.Addr,
			Handler:           handler,
			ReadHeaderTimeout: 5 * time.Second,
		},
	}, nil
}

func newSessionManager(cfg SessionConfig) *scs.SessionManager {
	if cfg.Lifetime <= 0 {
		applog.Debug(context.Background(), "session lifetime not provided, using default")
		cfg.Lifetime = 12 * time.Hour
	}
	if strings.TrimSpace(cfg.CookieName) == "" {
		applog.Debug(context.Background(), "session cookie name not provided, using default")
		cfg.CookieName = "stadslab_session"
	}

	sessionManager := scs.New()
	sessionManager.Lifetime = cfg.Lifetime
	sessionManager.Cookie.Name = cfg.CookieName
	sessionManager.Cookie.Domain = cfg.CookieDomain
	sessionManager.Cookie.HttpOnly = true
	sessionManager.Cookie.Persist = true
	sessionManager.Cookie.SameSite = http.SameSiteLaxMode
	sessionManager.Cookie.Secure = cfg.CookieSecure

	applog.Debug(context.Background(), "session manager configured",
		"cookieName", cfg.CookieName,
		"cookieDomain", cfg.CookieDomain,
		"cookieSecure", cfg.CookieSecure,
	)
	return sessionManager
}

// Start begins serving HTTP traffic using the underlying http.Server.
func (s *Server) Start() error {
	applog.Debug(context.Background(), "server starting listener", "addr", s.httpServer.Addr)
	return s.httpServer.ListenAndServe()
}

// Stop gracefully shuts down the HTTP server with a timeout.
func (s *Server) Stop() error {
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	applog.Debug(ctx, "server initiating graceful shutdown")
	return s.httpServer.Shutdown(ctx)
}

// Handler exposes the configured HTTP handler, enabling integration tests.
func (s *Server) Handler() http.Handler {
	return s.httpServer.Handler
}

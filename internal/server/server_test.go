package server

import (
	"context"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"stadslab/internal/backoffice"
	"stadslab/internal/handlers"
	"stadslab/internal/manuals"
	"stadslab/internal/planner"
	"stadslab/internal/store"
)

func newTestServer(t *testing.T, cfg Config) *Server {
	t.Helper()

	ctx := context.Background()
	mem := store.NewMemoryStore()
	cfg.Planner = backoffice.NewService(mem, nil)
	require.NoError(t, cfg.Planner.Seed(ctx, planner.DefaultCatalog(), "Servertest"))
	cfg.Manuals = manuals.NewService(mem)
	require.NoError(t, cfg.Manuals.Seed(ctx, manuals.DemoLibrary()))

	hash, err := bcrypt.GenerateFromPassword([]byte("password123"), bcrypt.MinCost)
	require.NoError(t, err)
	cfg.AdminPasswordHash = hash

	srv, err := New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { handlers.Configure(handlers.Dependencies{}) })
	return srv
}

func TestNewAppliesSessionDefaults(t *testing.T) {
	srv := newTestServer(t, Config{Addr: ":8080", Session: SessionConfig{CookieSecure: true}})

	if srv.httpServer.Addr != ":8080" {
		t.Fatalf("expected server addr :8080, got %q", srv.httpServer.Addr)
	}

	data := url.Values{}
	data.Set("password", "password123")
	rr := httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/login", strings.NewReader(data.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	srv.Handler().ServeHTTP(rr, req)

	if rr.Code != http.StatusSeeOther {
		t.Fatalf("expected redirect after login, got %d", rr.Code)
	}
	cookies := rr.Result().Cookies()
	if len(cookies) == 0 {
		t.Fatal("expected session cookie to be set")
	}
	if cookies[0].Name != "stadslab_session" {
		t.Fatalf("expected default session cookie name, got %q", cookies[0].Name)
	}
	if !cookies[0].Secure {
		t.Fatal("expected cookie secure flag to be true")
	}

	// Admin routes need the session cookie.
	rr = httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/manuals", nil))
	assert.Equal(t, http.StatusUnauthorized, rr.Code)

	rr = httptest.NewRecorder()
	req = httptest.NewRequest(http.MethodPost, "/api/manuals", nil)
	req.AddCookie(cookies[0])
	srv.Handler().ServeHTTP(rr, req)
	assert.Equal(t, http.StatusCreated, rr.Code)
}

func TestServerPlanningRoundTrip(t *testing.T) {
	srv := newTestServer(t, Config{Addr: ":9090"})
	handler := srv.Handler()

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodPost, "/api/event/concepts/concept-pinsa/toggle", nil))
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())

	rr = httptest.NewRecorder()
	req := httptest.NewRequest(http.MethodPost, "/api/event/concepts/concept-pinsa/people", strings.NewReader(`{"people":80}`))
	req.Header.Set("Content-Type", "application/json")
	handler.ServeHTTP(rr, req)
	require.Equal(t, http.StatusOK, rr.Code, rr.Body.String())
	assert.Contains(t, rr.Body.String(), `"totalPeople":80`)

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Servertest")

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/manuals/pizza_wood", nil))
	assert.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), "Houtgestookt")
}

func TestServerMetrics(t *testing.T) {
	reg := prometheus.NewRegistry()
	srv := newTestServer(t, Config{Metrics: MetricsConfig{Enabled: true, Namespace: "servertest", Registry: reg}})
	handler := srv.Handler()

	rr := httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/healthz", nil))
	require.Equal(t, http.StatusOK, rr.Code)

	rr = httptest.NewRecorder()
	handler.ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	require.Equal(t, http.StatusOK, rr.Code)
	assert.Contains(t, rr.Body.String(), `servertest_http_requests_total{method="GET",route="GET /healthz",status="200"} 1`)
}

func TestServerWithoutMetrics(t *testing.T) {
	srv := newTestServer(t, Config{})

	rr := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rr, httptest.NewRequest(http.MethodGet, "/metrics", nil))
	assert.Equal(t, http.StatusNotFound, rr.Code)
}

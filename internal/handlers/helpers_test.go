package handlers

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/alexedwards/scs/v2"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"stadslab/internal/backoffice"
	"stadslab/internal/manuals"
	"stadslab/internal/planner"
	"stadslab/internal/store"
)

const testAdminPassword = "geheim"

// withTestDependencies configures fresh services and sessions for one test.
// Handler state is package level, so callers must not run in parallel.
func withTestDependencies(t *testing.T) Dependencies {
	t.Helper()

	ctx := context.Background()
	mem := store.NewMemoryStore()
	planners := backoffice.NewService(mem, nil)
	require.NoError(t, planners.Seed(ctx, planner.DefaultCatalog(), "Test"))
	library := manuals.NewService(mem)
	require.NoError(t, library.Seed(ctx, manuals.DemoLibrary()))

	hash, err := bcrypt.GenerateFromPassword([]byte(testAdminPassword), bcrypt.MinCost)
	require.NoError(t, err)

	deps := Dependencies{
		Sessions:          scs.New(),
		Planner:           planners,
		Manuals:           library,
		AdminPasswordHash: hash,
	}
	previous := Dependencies{
		Sessions:          sessionManager,
		Planner:           plannerService,
		Manuals:           manualsService,
		AdminPasswordHash: adminPasswordHash,
	}
	Configure(deps)
	t.Cleanup(func() { Configure(previous) })
	return deps
}

// serve runs h behind the session middleware, optionally as admin.
func serve(h http.Handler, req *http.Request, admin bool) *httptest.ResponseRecorder {
	inner := http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if admin {
			sessionManager.Put(r.Context(), sessionAdminKey, true)
		}
		h.ServeHTTP(w, r)
	})
	w := httptest.NewRecorder()
	sessionManager.LoadAndSave(inner).ServeHTTP(w, req)
	return w
}

func jsonRequest(method, target, body string, pathValues ...string) *http.Request {
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for i := 0; i+1 < len(pathValues); i += 2 {
		req.SetPathValue(pathValues[i], pathValues[i+1])
	}
	return req
}

package handlers

import (
	"errors"
	"net/http"

	"github.com/alexedwards/scs/v2"
	"github.com/go-playground/validator/v10"
	"golang.org/x/crypto/bcrypt"

	"stadslab/internal/backoffice"
	applog "stadslab/internal/log"
	"stadslab/internal/manuals"
)

const (
	sessionAdminKey        = "auth:admin"
	sessionLoginMessageKey = "auth:message"
	sessionThemeKey        = "ui:theme"
)

// Dependencies are the collaborators shared by the HTTP handlers.
type Dependencies struct {
	Sessions          *scs.SessionManager
	Planner           *backoffice.Service
	Manuals           *manuals.Service
	AdminPasswordHash []byte
}

var (
	sessionManager    *scs.SessionManager
	plannerService    *backoffice.Service
	manualsService    *manuals.Service
	adminPasswordHash []byte
	validate          = validator.New()
)

// Configure installs the shared dependencies used by the HTTP handlers.
func Configure(deps Dependencies) {
	sessionManager = deps.Sessions
	plannerService = deps.Planner
	manualsService = deps.Manuals
	adminPasswordHash = deps.AdminPasswordHash
}

// HashAdminPassword hashes the configured admin password for Configure.
func HashAdminPassword(password string) ([]byte, error) {
	if password == "" {
		return nil, errors.New("admin password must not be empty")
	}
	return bcrypt.GenerateFromPassword([]byte(password), bcrypt.DefaultCost)
}

// authenticate compares password with the admin hash and marks the session
// as admin when it matches.
func authenticate(r *http.Request, password string) bool {
	if sessionManager == nil || len(adminPasswordHash) == 0 {
		return false
	}
	if err := bcrypt.CompareHashAndPassword(adminPasswordHash, []byte(password)); err != nil {
		sessionManager.Put(r.Context(), sessionLoginMessageKey, "Onjuist wachtwoord. Probeer het opnieuw.")
		return false
	}
	if err := establishSession(r); err != nil {
		applog.Error(r.Context(), "failed to establish session", "error", err)
		sessionManager.Put(r.Context(), sessionLoginMessageKey, "Inloggen is niet gelukt. Probeer het opnieuw.")
		return false
	}
	return true
}

func establishSession(r *http.Request) error {
	if sessionManager == nil {
		return errors.New("session manager not configured")
	}
	if err := sessionManager.RenewToken(r.Context()); err != nil {
		return err
	}
	sessionManager.Put(r.Context(), sessionAdminKey, true)
	return nil
}

// IsAdmin reports whether the request carries an admin session.
func IsAdmin(r *http.Request) bool {
	if sessionManager == nil {
		return false
	}
	return sessionManager.GetBool(r.Context(), sessionAdminKey)
}

// RequireAdminAPI answers 401 to API calls without an admin session.
func RequireAdminAPI(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if !IsAdmin(r) {
			applog.Debug(r.Context(), "admin route refused", "path", r.URL.Path)
			writeJSONError(w, http.StatusUnauthorized, "beheerdersrechten vereist")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// Logout destroys the current session and redirects to the start page.
func Logout(w http.ResponseWriter, r *http.Request) {
	if sessionManager != nil {
		if err := sessionManager.Destroy(r.Context()); err != nil {
			applog.Error(r.Context(), "failed to destroy session", "error", err)
		}
	}
	redirectTo(w, r, "/")
}

func redirectTo(w http.ResponseWriter, r *http.Request, path string) {
	if isFragment(r) {
		w.Header().Set("HX-Redirect", path)
		w.WriteHeader(http.StatusSeeOther)
		return
	}
	http.Redirect(w, r, path, http.StatusSeeOther)
}

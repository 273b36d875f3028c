package handlers

import (
	"net/http"

	applog "stadslab/internal/log"
	"stadslab/internal/views/pages"
)

// Login renders the admin login form and processes submissions.
func Login(w http.ResponseWriter, r *http.Request) {
	applog.Debug(r.Context(), "handling login request", "method", r.Method, "fragment", isFragment(r))

	switch r.Method {
	case http.MethodGet, http.MethodHead:
		if IsAdmin(r) {
			applog.Debug(r.Context(), "admin session detected, redirecting to backoffice")
			redirectTo(w, r, "/backoffice")
			return
		}
		message := ""
		if sessionManager != nil {
			message = sessionManager.PopString(r.Context(), sessionLoginMessageKey)
		}
		renderLogin(w, r, http.StatusOK, message)
	case http.MethodPost:
		if sessionManager == nil || len(adminPasswordHash) == 0 {
			applog.Debug(r.Context(), "authentication dependencies unavailable", "hasSession", sessionManager != nil)
			http.Error(w, "authentication not available", http.StatusServiceUnavailable)
			return
		}
		if err := r.ParseForm(); err != nil {
			applog.Debug(r.Context(), "failed to parse login form", "error", err)
			http.Error(w, "invalid form submission", http.StatusBadRequest)
			return
		}
		password := r.PostFormValue("password")
		if password == "" {
			renderLogin(w, r, http.StatusUnprocessableEntity, "Vul het wachtwoord in.")
			return
		}

		if !authenticate(r, password) {
			applog.Debug(r.Context(), "authentication failed")
			message := sessionManager.PopString(r.Context(), sessionLoginMessageKey)
			if message == "" {
				message = "Inloggen is niet gelukt. Probeer het opnieuw."
			}
			renderLogin(w, r, http.StatusUnauthorized, message)
			return
		}

		applog.Info(r.Context(), "admin signed in")
		redirectTo(w, r, "/backoffice")
	default:
		w.WriteHeader(http.StatusMethodNotAllowed)
	}
}

func renderLogin(w http.ResponseWriter, r *http.Request, status int, message string) {
	renderPage(w, r, status, "Inloggen", "login", pages.LoginPartial(message))
}

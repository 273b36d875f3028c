package handlers

import (
	"net/http"

	"github.com/a-h/templ"

	applog "stadslab/internal/log"
	"stadslab/internal/views/components"
	"stadslab/internal/views/layout"
	"stadslab/internal/views/theme"
)

// renderPage writes content inside the layout, or on its own for fragment
// requests.
func renderPage(w http.ResponseWriter, r *http.Request, status int, title, section string, content templ.Component) {
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	component := content
	if !isFragment(r) {
		th := theme.Resolve(sessionTheme(r))
		nav := components.Nav(components.NavData{Active: section, Admin: IsAdmin(r), Theme: th.Key})
		component = layout.Layout(title, nav, content, th)
	}
	if status != http.StatusOK {
		w.WriteHeader(status)
	}
	if err := component.Render(r.Context(), w); err != nil {
		applog.Error(r.Context(), "failed to render page", "section", section, "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

func sessionTheme(r *http.Request) string {
	if sessionManager == nil {
		return theme.DefaultKey
	}
	if v := sessionManager.GetString(r.Context(), sessionThemeKey); v != "" {
		return v
	}
	return theme.DefaultKey
}

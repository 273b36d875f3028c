package handlers

import (
	"net/http"
	"strings"

	applog "stadslab/internal/log"
	"stadslab/internal/views/theme"
)

type preferencesResponse struct {
	Theme string `json:"theme"`
}

// UpdatePreferences stores the display theme in the session.
func UpdatePreferences(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Theme string `json:"theme"`
	}
	if err := decodeBody(r, &in); err != nil {
		writeJSONError(w, http.StatusBadRequest, "ongeldige invoer")
		return
	}

	themeConfig := theme.Resolve(in.Theme)
	if !strings.EqualFold(strings.TrimSpace(in.Theme), themeConfig.Key) {
		applog.Debug(r.Context(), "received invalid theme selection", "value", in.Theme)
		writeJSONError(w, http.StatusBadRequest, "onbekend thema")
		return
	}

	if sessionManager != nil {
		sessionManager.Put(r.Context(), sessionThemeKey, themeConfig.Key)
	}
	writeJSON(w, http.StatusOK, preferencesResponse{Theme: themeConfig.Key})
}

package handlers

import (
	"net/http"

	applog "stadslab/internal/log"
	"stadslab/internal/views/pages"
)

// Home renders the start page with the current event figures.
func Home(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	data := pages.HomeData{}
	if plannerService != nil {
		state, err := plannerService.State(r.Context())
		if err != nil {
			applog.Error(r.Context(), "failed to load planner state for home", "error", err)
		} else {
			data.EventName = state.EventName
			data.TotalPeople = state.TotalPeople
			data.ActiveConcepts = len(state.Order)
		}
	}
	if manualsService != nil {
		if lib, err := manualsService.Library(r.Context()); err == nil {
			data.Manuals = len(lib.Manuals)
		} else {
			applog.Error(r.Context(), "failed to load manuals for home", "error", err)
		}
	}
	if data.EventName == "" {
		data.EventName = "Stadslab"
	}
	renderPage(w, r, http.StatusOK, "Stadslab", "home", pages.Home(data))
}

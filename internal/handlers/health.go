package handlers

import (
	"encoding/json"
	"net/http"
	"time"

	applog "stadslab/internal/log"
)

type healthResponse struct {
	Status  string    `json:"status"`
	Planner bool      `json:"planner"`
	Manuals bool      `json:"manuals"`
	Time    time.Time `json:"time"`
}

// Health is a liveness probe. It also reports which services are wired.
func Health(w http.ResponseWriter, r *http.Request) {
	resp := healthResponse{
		Status:  "ok",
		Planner: plannerService != nil,
		Manuals: manualsService != nil,
		Time:    time.Now().UTC(),
	}

	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(resp); err != nil {
		applog.Error(r.Context(), "failed to encode health response", "error", err)
		http.Error(w, err.Error(), http.StatusInternalServerError)
	}
}

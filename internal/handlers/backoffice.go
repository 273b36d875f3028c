package handlers

import (
	"encoding/csv"
	"fmt"
	"io"
	"net/http"
	"strconv"
	"strings"

	"stadslab/internal/backoffice"
	applog "stadslab/internal/log"
	"stadslab/internal/planner"
	"stadslab/internal/views/pages"
)

// BackofficePage renders the event planner.
func BackofficePage(w http.ResponseWriter, r *http.Request) {
	if plannerService == nil {
		http.Error(w, "planner not available", http.StatusServiceUnavailable)
		return
	}
	state, err := plannerService.State(r.Context())
	if err != nil {
		applog.Error(r.Context(), "failed to load planner state", "error", err)
		http.Error(w, "planner state unavailable", http.StatusInternalServerError)
		return
	}
	renderPage(w, r, http.StatusOK, state.EventName+" | Backoffice", "backoffice", pages.Backoffice(pages.NewBackofficeSnapshot(state, IsAdmin(r))))
}

// EventState returns the planner state with derived results.
func EventState(w http.ResponseWriter, r *http.Request) {
	if !plannerReady(w) {
		return
	}
	state, err := plannerService.State(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

// SetEventName renames the event.
func SetEventName(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Name string `json:"name" validate:"max=120"`
	}
	applyEvent(w, r, &in, func() (backoffice.State, error) {
		return plannerService.SetEventName(r.Context(), in.Name)
	})
}

// ToggleConcept activates or deactivates a concept.
func ToggleConcept(w http.ResponseWriter, r *http.Request) {
	applyEvent(w, r, nil, func() (backoffice.State, error) {
		return plannerService.ToggleConcept(r.Context(), r.PathValue("id"))
	})
}

// SetPeople sets the people count of a concept. A blank value unsets it.
func SetPeople(w http.ResponseWriter, r *http.Request) {
	var in struct {
		People number `json:"people"`
	}
	applyEvent(w, r, &in, func() (backoffice.State, error) {
		var people *int
		if in.People.Set {
			n := planner.PeopleFromNumber(in.People.Value)
			people = &n
		}
		return plannerService.SetPeople(r.Context(), r.PathValue("id"), people)
	})
}

// SetOptionEnabled switches an option category on or off.
func SetOptionEnabled(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Enabled flag `json:"enabled"`
	}
	applyEvent(w, r, &in, func() (backoffice.State, error) {
		return plannerService.SetOptionEnabled(r.Context(), r.PathValue("id"), r.PathValue("key"), bool(in.Enabled))
	})
}

// SetOptionWeight pins an option weight.
func SetOptionWeight(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Weight number `json:"weight"`
	}
	applyEvent(w, r, &in, func() (backoffice.State, error) {
		return plannerService.SetOptionWeight(r.Context(), r.PathValue("id"), r.PathValue("key"), in.Weight.Or(0))
	})
}

// EqualizeWeights splits a concept's option weights evenly.
func EqualizeWeights(w http.ResponseWriter, r *http.Request) {
	applyEvent(w, r, nil, func() (backoffice.State, error) {
		return plannerService.EqualizeWeights(r.Context(), r.PathValue("id"))
	})
}

// SetSplitPercent gives a concept a share of the event's people.
func SetSplitPercent(w http.ResponseWriter, r *http.Request) {
	var in struct {
		Percent number `json:"percent"`
	}
	applyEvent(w, r, &in, func() (backoffice.State, error) {
		return plannerService.SetSplitPercent(r.Context(), r.PathValue("id"), in.Percent.Or(0))
	})
}

// EqualizeSplit spreads the people evenly over the active concepts.
func EqualizeSplit(w http.ResponseWriter, r *http.Request) {
	applyEvent(w, r, nil, func() (backoffice.State, error) {
		return plannerService.EqualizeSplit(r.Context())
	})
}

// OrderCSV downloads the combined order list.
func OrderCSV(w http.ResponseWriter, r *http.Request) {
	if !plannerReady(w) {
		return
	}
	state, err := plannerService.State(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="bestellijst.csv"`)
	if err := writeOrderCSV(w, state.Aggregate); err != nil {
		applog.Error(r.Context(), "failed to write order csv", "error", err)
	}
}

func writeOrderCSV(w io.Writer, rows []planner.AggregateRow) error {
	cw := csv.NewWriter(w)
	if err := cw.Write([]string{"naam", "eenheid", "aantal", "bronnen"}); err != nil {
		return err
	}
	for _, row := range rows {
		sources := make([]string, 0, len(row.Sources))
		for _, s := range row.Sources {
			sources = append(sources, fmt.Sprintf("%s/%s=%s", s.Concept, s.Category, strconv.FormatFloat(s.Raw, 'f', -1, 64)))
		}
		if err := cw.Write([]string{row.Name, row.Unit, strconv.Itoa(row.Shown), strings.Join(sources, "; ")}); err != nil {
			return err
		}
	}
	cw.Flush()
	return cw.Error()
}

func plannerReady(w http.ResponseWriter) bool {
	if plannerService == nil {
		writeJSONError(w, http.StatusServiceUnavailable, "planner not available")
		return false
	}
	return true
}

// applyEvent decodes the body into in (when given), validates it and runs
// apply, answering with the new state.
func applyEvent(w http.ResponseWriter, r *http.Request, in any, apply func() (backoffice.State, error)) {
	if !plannerReady(w) {
		return
	}
	if in != nil {
		if err := decodeBody(r, in); err != nil {
			applog.Debug(r.Context(), "invalid planner payload", "path", r.URL.Path, "error", err)
			writeJSONError(w, http.StatusBadRequest, "ongeldige invoer")
			return
		}
		if err := validate.Struct(in); err != nil {
			writeServiceError(w, r, err)
			return
		}
	}
	state, err := apply()
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, state)
}

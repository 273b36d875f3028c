package handlers

import (
	"net/http"
	"strings"

	applog "stadslab/internal/log"
	"stadslab/internal/manuals"
	"stadslab/internal/views/pages"
)

type manualResponse struct {
	Manual   manuals.Manual            `json:"manual"`
	Progress []manuals.SectionProgress `json:"progress"`
}

// ManualsPage renders the front office with the requested truck, or the
// default one when no id is given.
func ManualsPage(w http.ResponseWriter, r *http.Request) {
	if manualsService == nil {
		http.Error(w, "manuals not available", http.StatusServiceUnavailable)
		return
	}
	lib, err := manualsService.Library(r.Context())
	if err != nil {
		applog.Error(r.Context(), "failed to load manuals", "error", err)
		http.Error(w, "manuals unavailable", http.StatusInternalServerError)
		return
	}

	page := pages.ManualsPage{Manuals: lib.Manuals, Admin: IsAdmin(r)}
	id := r.PathValue("id")
	if id == "" {
		id = lib.DefaultID()
	}
	if id != "" {
		selected := lib.Find(id)
		if selected == nil {
			http.NotFound(w, r)
			return
		}
		page.Selected = selected
		page.Progress, err = manualsService.Progress(r.Context(), selected.ID)
		if err != nil {
			applog.Error(r.Context(), "failed to load manual progress", "manual", selected.ID, "error", err)
		}
	}

	title := "Handboeken"
	if page.Selected != nil {
		title = page.Selected.Name + " | " + title
	}
	renderPage(w, r, http.StatusOK, title, "manuals", pages.Manuals(page))
}

// ListManuals returns every manual.
func ListManuals(w http.ResponseWriter, r *http.Request) {
	if !manualsReady(w) {
		return
	}
	lib, err := manualsService.Library(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, lib.Manuals)
}

// GetManual returns one manual with today's progress.
func GetManual(w http.ResponseWriter, r *http.Request) {
	if !manualsReady(w) {
		return
	}
	manual, err := manualsService.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	progress, err := manualsService.Progress(r.Context(), manual.ID)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, manualResponse{Manual: manual, Progress: progress})
}

// ToggleProgress flips a checklist item for today.
func ToggleProgress(w http.ResponseWriter, r *http.Request) {
	if !manualsReady(w) {
		return
	}
	section, err := manuals.ParseSection(r.PathValue("section"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	progress, err := manualsService.Toggle(r.Context(), r.PathValue("id"), section, r.PathValue("item"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, progress)
}

// ResetProgress clears today's progress of a truck.
func ResetProgress(w http.ResponseWriter, r *http.Request) {
	if !manualsReady(w) {
		return
	}
	if err := manualsService.ResetToday(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// PacklistCSV downloads the packing list of a truck.
func PacklistCSV(w http.ResponseWriter, r *http.Request) {
	if !manualsReady(w) {
		return
	}
	manual, err := manualsService.Get(r.Context(), r.PathValue("id"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.Header().Set("Content-Type", "text/csv; charset=utf-8")
	w.Header().Set("Content-Disposition", `attachment; filename="`+manuals.PacklistFilename(manual.ID)+`"`)
	if err := manuals.WritePacklistCSV(w, manual.Packlist); err != nil {
		applog.Error(r.Context(), "failed to write packlist csv", "manual", manual.ID, "error", err)
	}
}

// CreateManual adds an empty truck.
func CreateManual(w http.ResponseWriter, r *http.Request) {
	if !manualsReady(w) {
		return
	}
	manual, err := manualsService.Create(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	applog.Info(r.Context(), "manual created", "manual", manual.ID)
	writeJSON(w, http.StatusCreated, manual)
}

// ReplaceManual overwrites a manual with the request body. The id comes from
// the path.
func ReplaceManual(w http.ResponseWriter, r *http.Request) {
	if !manualsReady(w) {
		return
	}
	var in manuals.Manual
	if err := decodeBody(r, &in); err != nil {
		writeJSONError(w, http.StatusBadRequest, "ongeldige invoer")
		return
	}
	in.ID = r.PathValue("id")
	if strings.TrimSpace(in.Name) == "" {
		in.Name = manuals.NewTruckName
	}
	if err := validate.Struct(in); err != nil {
		writeServiceError(w, r, err)
		return
	}
	saved, err := manualsService.Replace(r.Context(), in)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, saved)
}

// DeleteManual removes a truck.
func DeleteManual(w http.ResponseWriter, r *http.Request) {
	if !manualsReady(w) {
		return
	}
	if err := manualsService.Delete(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	applog.Info(r.Context(), "manual deleted", "manual", r.PathValue("id"))
	w.WriteHeader(http.StatusNoContent)
}

// AddManualItem appends a default record to one of a manual's lists.
func AddManualItem(w http.ResponseWriter, r *http.Request) {
	if !manualsReady(w) {
		return
	}
	id, err := manualsService.AddItem(r.Context(), r.PathValue("id"), manuals.Collection(r.PathValue("collection")))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, map[string]string{"id": id})
}

// RemoveManualItem deletes a record from one of a manual's lists.
func RemoveManualItem(w http.ResponseWriter, r *http.Request) {
	if !manualsReady(w) {
		return
	}
	err := manualsService.RemoveItem(r.Context(), r.PathValue("id"), manuals.Collection(r.PathValue("collection")), r.PathValue("itemID"))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func manualsReady(w http.ResponseWriter) bool {
	if manualsService == nil {
		writeJSONError(w, http.StatusServiceUnavailable, "manuals not available")
		return false
	}
	return true
}

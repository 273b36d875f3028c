package handlers

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"math"
	"mime"
	"net/http"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"

	"stadslab/internal/backoffice"
	applog "stadslab/internal/log"
	"stadslab/internal/manuals"
	"stadslab/internal/planner"
)

const maxBodySize = 1 << 20

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(payload); err != nil {
		applog.Error(context.Background(), "failed to encode json response", "error", err)
	}
}

func writeJSONError(w http.ResponseWriter, status int, message string) {
	writeJSON(w, status, map[string]string{"error": message})
}

// writeServiceError maps domain errors onto status codes.
func writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	var invalid validator.ValidationErrors
	switch {
	case errors.Is(err, planner.ErrConceptNotFound),
		errors.Is(err, planner.ErrProductNotFound),
		errors.Is(err, planner.ErrCategoryNotFound),
		errors.Is(err, manuals.ErrManualNotFound),
		errors.Is(err, manuals.ErrChecklistItemNotFound):
		writeJSONError(w, http.StatusNotFound, err.Error())
	case errors.Is(err, backoffice.ErrInactiveConcept):
		writeJSONError(w, http.StatusConflict, err.Error())
	case errors.Is(err, planner.ErrBasisCategory),
		errors.Is(err, planner.ErrInvalidCategory),
		errors.Is(err, manuals.ErrUnknownSection),
		errors.Is(err, manuals.ErrUnknownCollection):
		writeJSONError(w, http.StatusBadRequest, err.Error())
	case errors.As(err, &invalid):
		writeJSONError(w, http.StatusBadRequest, validationMessage(invalid))
	default:
		applog.Error(r.Context(), "request failed", "path", r.URL.Path, "error", err)
		writeJSONError(w, http.StatusInternalServerError, "er ging iets mis, probeer het opnieuw")
	}
}

func validationMessage(errs validator.ValidationErrors) string {
	parts := make([]string, 0, len(errs))
	for _, fe := range errs {
		parts = append(parts, fmt.Sprintf("%s: %s", fe.Namespace(), fe.Tag()))
	}
	return "ongeldige invoer (" + strings.Join(parts, ", ") + ")"
}

// decodeBody reads a JSON body, or a form body re-encoded as JSON so both
// land in the same struct. Empty bodies leave dst untouched.
func decodeBody(r *http.Request, dst any) error {
	mediaType, _, _ := mime.ParseMediaType(r.Header.Get("Content-Type"))
	if mediaType == "application/x-www-form-urlencoded" {
		if err := r.ParseForm(); err != nil {
			return err
		}
		fields := make(map[string]string, len(r.PostForm))
		for key := range r.PostForm {
			fields[key] = r.PostForm.Get(key)
		}
		payload, err := json.Marshal(fields)
		if err != nil {
			return err
		}
		return json.Unmarshal(payload, dst)
	}

	body, err := io.ReadAll(io.LimitReader(r.Body, maxBodySize))
	if err != nil {
		return err
	}
	if len(strings.TrimSpace(string(body))) == 0 {
		return nil
	}
	return json.Unmarshal(body, dst)
}

// number accepts JSON numbers and numeric strings. Blank and null leave it
// unset; any other input that does not parse to a finite number reads as 0.
type number struct {
	Value float64
	Set   bool
}

func (n *number) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = strings.TrimSpace(unquoted)
	}
	if s == "" || s == "null" {
		return nil
	}
	v, err := strconv.ParseFloat(strings.Replace(s, ",", ".", 1), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		v = 0
	}
	n.Value, n.Set = v, true
	return nil
}

// Or returns the value, or fallback when unset.
func (n number) Or(fallback float64) float64 {
	if !n.Set {
		return fallback
	}
	return n.Value
}

// flag accepts JSON booleans and the usual form spellings.
type flag bool

func (f *flag) UnmarshalJSON(b []byte) error {
	s := strings.TrimSpace(string(b))
	if unquoted, err := strconv.Unquote(s); err == nil {
		s = unquoted
	}
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "true", "on", "1", "yes", "ja":
		*f = true
	default:
		*f = false
	}
	return nil
}

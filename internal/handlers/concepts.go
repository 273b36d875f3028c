package handlers

import (
	"net/http"
	"strings"

	applog "stadslab/internal/log"
	"stadslab/internal/planner"
	"stadslab/internal/views/theme"
)

type conceptInput struct {
	Name  string `json:"name" validate:"max=80"`
	Color string `json:"color" validate:"omitempty,hexcolor"`
}

type productInput struct {
	Category   string `json:"category" validate:"max=80"`
	Name       string `json:"name" validate:"max=120"`
	Unit       string `json:"unit" validate:"max=32"`
	BasePer100 number `json:"basePer100"`
}

type baseInput struct {
	BasePer100 number `json:"basePer100"`
}

// ListConcepts returns the concept catalog.
func ListConcepts(w http.ResponseWriter, r *http.Request) {
	if !plannerReady(w) {
		return
	}
	catalog, err := plannerService.Catalog(r.Context())
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, catalog.Concepts)
}

// CreateConcept adds a concept. A missing colour is picked from the palette.
func CreateConcept(w http.ResponseWriter, r *http.Request) {
	if !plannerReady(w) {
		return
	}
	var in conceptInput
	if !decodeValid(w, r, &in) {
		return
	}
	color := strings.TrimSpace(in.Color)
	if color == "" {
		catalog, err := plannerService.Catalog(r.Context())
		if err != nil {
			writeServiceError(w, r, err)
			return
		}
		color = theme.ColorAt(len(catalog.Concepts))
	}
	concept, err := plannerService.AddConcept(r.Context(), in.Name, color)
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	applog.Info(r.Context(), "concept created", "concept", concept.ID, "name", concept.Name)
	writeJSON(w, http.StatusCreated, concept)
}

// DeleteConcept removes a concept and its event instance.
func DeleteConcept(w http.ResponseWriter, r *http.Request) {
	if !plannerReady(w) {
		return
	}
	if err := plannerService.RemoveConcept(r.Context(), r.PathValue("id")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// CreateProduct adds a product. The category may be a key or a label.
func CreateProduct(w http.ResponseWriter, r *http.Request) {
	if !plannerReady(w) {
		return
	}
	var in productInput
	if !decodeValid(w, r, &in) {
		return
	}
	product, err := plannerService.AddProduct(r.Context(), r.PathValue("id"), planner.CategoryKey(in.Category), planner.NewProduct{
		Name:       in.Name,
		Unit:       in.Unit,
		BasePer100: in.BasePer100.Or(0),
	})
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusCreated, product)
}

// UpdateProduct sets a product's rate per 100 people.
func UpdateProduct(w http.ResponseWriter, r *http.Request) {
	if !plannerReady(w) {
		return
	}
	var in baseInput
	if !decodeValid(w, r, &in) {
		return
	}
	product, err := plannerService.UpdateProductBase(r.Context(), r.PathValue("id"), r.PathValue("key"), r.PathValue("pid"), in.BasePer100.Or(0))
	if err != nil {
		writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, product)
}

// DeleteProduct removes a product.
func DeleteProduct(w http.ResponseWriter, r *http.Request) {
	if !plannerReady(w) {
		return
	}
	if err := plannerService.RemoveProduct(r.Context(), r.PathValue("id"), r.PathValue("key"), r.PathValue("pid")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

// DeleteCategory removes an option category.
func DeleteCategory(w http.ResponseWriter, r *http.Request) {
	if !plannerReady(w) {
		return
	}
	if err := plannerService.RemoveCategory(r.Context(), r.PathValue("id"), r.PathValue("key")); err != nil {
		writeServiceError(w, r, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func decodeValid(w http.ResponseWriter, r *http.Request, in any) bool {
	if err := decodeBody(r, in); err != nil {
		writeJSONError(w, http.StatusBadRequest, "ongeldige invoer")
		return false
	}
	if err := validate.Struct(in); err != nil {
		writeServiceError(w, r, err)
		return false
	}
	return true
}

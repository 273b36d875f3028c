package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stadslab/internal/manuals"
)

func TestManualsPage(t *testing.T) {
	withTestDependencies(t)

	w := serve(http.HandlerFunc(ManualsPage), httptest.NewRequest(http.MethodGet, "/manuals", nil), false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Gemaal – Frituurwagen")
	assert.NotContains(t, w.Body.String(), "Truck toevoegen")

	req := httptest.NewRequest(http.MethodGet, "/manuals/storm", nil)
	req.SetPathValue("id", "storm")
	w = serve(http.HandlerFunc(ManualsPage), req, true)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "Allergenenkaart verplicht")
	assert.Contains(t, w.Body.String(), "Truck toevoegen")

	req = httptest.NewRequest(http.MethodGet, "/manuals/ghost", nil)
	req.SetPathValue("id", "ghost")
	w = serve(http.HandlerFunc(ManualsPage), req, false)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestManualProgressEndpoints(t *testing.T) {
	withTestDependencies(t)

	w := serve(http.HandlerFunc(ToggleProgress), jsonRequest(http.MethodPost, "/", "",
		"id", "gemaal", "section", "opbouw", "item", "gemaal-opbouw-1"), false)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var progress manuals.SectionProgress
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &progress))
	assert.Equal(t, 20, progress.Percent)

	w = serve(http.HandlerFunc(GetManual), jsonRequest(http.MethodGet, "/", "", "id", "gemaal"), false)
	require.Equal(t, http.StatusOK, w.Code)
	var resp manualResponse
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &resp))
	assert.Equal(t, "gemaal", resp.Manual.ID)
	require.Len(t, resp.Progress, 3)
	assert.Equal(t, 1, resp.Progress[0].Checked)

	w = serve(http.HandlerFunc(ResetProgress), jsonRequest(http.MethodPost, "/", "", "id", "gemaal"), false)
	assert.Equal(t, http.StatusNoContent, w.Code)

	w = serve(http.HandlerFunc(ToggleProgress), jsonRequest(http.MethodPost, "/", "",
		"id", "gemaal", "section", "keuken", "item", "x"), false)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(http.HandlerFunc(ToggleProgress), jsonRequest(http.MethodPost, "/", "",
		"id", "gemaal", "section", "opbouw", "item", "nope"), false)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestListManualsAndPacklist(t *testing.T) {
	withTestDependencies(t)

	w := serve(http.HandlerFunc(ListManuals), jsonRequest(http.MethodGet, "/api/manuals", ""), false)
	require.Equal(t, http.StatusOK, w.Code)
	var list []manuals.Manual
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &list))
	assert.Len(t, list, 4)

	w = serve(http.HandlerFunc(PacklistCSV), jsonRequest(http.MethodGet, "/", "", "id", "storm"), false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Header().Get("Content-Disposition"), "storm-paklijst.csv")
	assert.True(t, strings.HasPrefix(w.Body.String(), `"naam","aantal","eenheid","opmerking","verplicht","categorie"`))

	w = serve(http.HandlerFunc(PacklistCSV), jsonRequest(http.MethodGet, "/", "", "id", "ghost"), false)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

func TestManualAdmin(t *testing.T) {
	withTestDependencies(t)

	w := serve(RequireAdminAPI(http.HandlerFunc(CreateManual)), jsonRequest(http.MethodPost, "/api/manuals", ""), false)
	assert.Equal(t, http.StatusUnauthorized, w.Code)

	w = serve(RequireAdminAPI(http.HandlerFunc(CreateManual)), jsonRequest(http.MethodPost, "/api/manuals", ""), true)
	require.Equal(t, http.StatusCreated, w.Code)
	var created manuals.Manual
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &created))
	assert.Equal(t, manuals.NewTruckName, created.Name)

	w = serve(http.HandlerFunc(AddManualItem), jsonRequest(http.MethodPost, "/", "", "id", created.ID, "collection", "paklijst"), true)
	require.Equal(t, http.StatusCreated, w.Code)
	var added map[string]string
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &added))
	require.NotEmpty(t, added["id"])

	w = serve(http.HandlerFunc(AddManualItem), jsonRequest(http.MethodPost, "/", "", "id", created.ID, "collection", "keuken"), true)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(http.HandlerFunc(RemoveManualItem), jsonRequest(http.MethodDelete, "/", "",
		"id", created.ID, "collection", "paklijst", "itemID", added["id"]), true)
	assert.Equal(t, http.StatusNoContent, w.Code)

	body := `{"id":"ignored","name":"","infra":{"power":"1x16A"},"buildUp":[{"text":"Keggen"}]}`
	w = serve(http.HandlerFunc(ReplaceManual), jsonRequest(http.MethodPut, "/", body, "id", created.ID), true)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var saved manuals.Manual
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &saved))
	assert.Equal(t, created.ID, saved.ID)
	assert.Equal(t, manuals.NewTruckName, saved.Name)
	assert.Equal(t, "1x16A", saved.Infra.Power)
	require.Len(t, saved.BuildUp, 1)
	assert.NotEmpty(t, saved.BuildUp[0].ID)

	w = serve(http.HandlerFunc(ReplaceManual), jsonRequest(http.MethodPut, "/", `{"truckPhotoUrl":"geen url"}`, "id", created.ID), true)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(http.HandlerFunc(DeleteManual), jsonRequest(http.MethodDelete, "/", "", "id", created.ID), true)
	assert.Equal(t, http.StatusNoContent, w.Code)
	w = serve(http.HandlerFunc(DeleteManual), jsonRequest(http.MethodDelete, "/", "", "id", created.ID), true)
	assert.Equal(t, http.StatusNotFound, w.Code)
}

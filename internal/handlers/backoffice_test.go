package handlers

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"stadslab/internal/backoffice"
	"stadslab/internal/planner"
)

func decodeState(t *testing.T, w *httptest.ResponseRecorder) backoffice.State {
	t.Helper()
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	var state backoffice.State
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &state))
	return state
}

func TestEventPlanningEndpoints(t *testing.T) {
	withTestDependencies(t)

	state := decodeState(t, serve(http.HandlerFunc(EventState), jsonRequest(http.MethodGet, "/api/event", ""), false))
	assert.Equal(t, "Test", state.EventName)
	assert.Empty(t, state.Order)

	state = decodeState(t, serve(http.HandlerFunc(ToggleConcept),
		jsonRequest(http.MethodPost, "/api/event/concepts/concept-gemaal/toggle", "", "id", "concept-gemaal"), false))
	assert.Equal(t, []string{"concept-gemaal"}, state.Order)

	state = decodeState(t, serve(http.HandlerFunc(SetPeople),
		jsonRequest(http.MethodPost, "/api/event/concepts/concept-gemaal/people", `{"people":"150"}`, "id", "concept-gemaal"), false))
	assert.Equal(t, 150, state.TotalPeople)

	form := url.Values{"enabled": {"on"}}
	req := httptest.NewRequest(http.MethodPost, "/api/event/concepts/concept-gemaal/options/parmeTruff/enabled", strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	req.SetPathValue("id", "concept-gemaal")
	req.SetPathValue("key", "parmeTruff")
	state = decodeState(t, serve(http.HandlerFunc(SetOptionEnabled), req, false))
	assert.True(t, state.Instances["concept-gemaal"].EnabledOptions["parmeTruff"])

	state = decodeState(t, serve(http.HandlerFunc(SetEventName),
		jsonRequest(http.MethodPost, "/api/event/name", `{"name":"Zomerfeest"}`), false))
	assert.Equal(t, "Zomerfeest", state.EventName)
	assert.NotEmpty(t, state.Aggregate)

	// A blank people value unsets the count.
	state = decodeState(t, serve(http.HandlerFunc(SetPeople),
		jsonRequest(http.MethodPost, "/api/event/concepts/concept-gemaal/people", `{"people":""}`, "id", "concept-gemaal"), false))
	assert.Equal(t, 0, state.TotalPeople)
}

func TestSetPeopleInputBounds(t *testing.T) {
	withTestDependencies(t)

	decodeState(t, serve(http.HandlerFunc(ToggleConcept),
		jsonRequest(http.MethodPost, "/api/event/concepts/concept-gemaal/toggle", "", "id", "concept-gemaal"), false))

	state := decodeState(t, serve(http.HandlerFunc(SetPeople),
		jsonRequest(http.MethodPost, "/api/event/concepts/concept-gemaal/people", `{"people":1e300}`, "id", "concept-gemaal"), false))
	assert.Equal(t, planner.MaxPeople, state.TotalPeople)

	// Non-numeric input counts as 0 rather than leaving the old value.
	state = decodeState(t, serve(http.HandlerFunc(SetPeople),
		jsonRequest(http.MethodPost, "/api/event/concepts/concept-gemaal/people", `{"people":"abc"}`, "id", "concept-gemaal"), false))
	assert.Equal(t, 0, state.TotalPeople)
	require.NotNil(t, state.Instances["concept-gemaal"].People)
	assert.Equal(t, 0, *state.Instances["concept-gemaal"].People)
}

func TestNumberDecoding(t *testing.T) {
	cases := []struct {
		in   string
		want number
	}{
		{in: `12`, want: number{Value: 12, Set: true}},
		{in: `"7,5"`, want: number{Value: 7.5, Set: true}},
		{in: `"abc"`, want: number{Value: 0, Set: true}},
		{in: `true`, want: number{Value: 0, Set: true}},
		{in: `" "`, want: number{}},
		{in: `null`, want: number{}},
	}
	for _, tc := range cases {
		t.Run(tc.in, func(t *testing.T) {
			var in struct {
				N number `json:"n"`
			}
			require.NoError(t, json.Unmarshal([]byte(`{"n":`+tc.in+`}`), &in))
			assert.Equal(t, tc.want, in.N)
		})
	}
}

func TestEventErrors(t *testing.T) {
	withTestDependencies(t)

	w := serve(http.HandlerFunc(SetPeople),
		jsonRequest(http.MethodPost, "/api/event/concepts/concept-gemaal/people", `{"people":10}`, "id", "concept-gemaal"), false)
	assert.Equal(t, http.StatusConflict, w.Code)

	w = serve(http.HandlerFunc(ToggleConcept),
		jsonRequest(http.MethodPost, "/api/event/concepts/ghost/toggle", "", "id", "ghost"), false)
	assert.Equal(t, http.StatusNotFound, w.Code)

	w = serve(http.HandlerFunc(SetEventName),
		jsonRequest(http.MethodPost, "/api/event/name", `{"name":`), false)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = serve(http.HandlerFunc(SetEventName),
		jsonRequest(http.MethodPost, "/api/event/name", `{"name":"`+strings.Repeat("x", 121)+`"}`), false)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "ongeldige invoer")
}

func TestSplitEndpoints(t *testing.T) {
	withTestDependencies(t)

	for _, id := range []string{"concept-gemaal", "concept-pinsa"} {
		decodeState(t, serve(http.HandlerFunc(ToggleConcept),
			jsonRequest(http.MethodPost, "/api/event/concepts/"+id+"/toggle", "", "id", id), false))
		decodeState(t, serve(http.HandlerFunc(SetPeople),
			jsonRequest(http.MethodPost, "/api/event/concepts/"+id+"/people", `{"people":100}`, "id", id), false))
	}

	state := decodeState(t, serve(http.HandlerFunc(SetSplitPercent),
		jsonRequest(http.MethodPost, "/api/event/concepts/concept-gemaal/split", `{"percent":"75"}`, "id", "concept-gemaal"), false))
	// The rest of the old total is added on top of the other concepts.
	assert.Equal(t, 150, state.Instances["concept-gemaal"].PeopleCount())
	assert.Equal(t, 150, state.Instances["concept-pinsa"].PeopleCount())
	assert.Equal(t, 300, state.TotalPeople)

	state = decodeState(t, serve(http.HandlerFunc(EqualizeSplit),
		jsonRequest(http.MethodPost, "/api/event/split/equalize", ""), false))
	assert.Equal(t, 150, state.Instances["concept-pinsa"].PeopleCount())
	assert.Equal(t, 300, state.TotalPeople)
}

func TestOrderCSV(t *testing.T) {
	withTestDependencies(t)

	decodeState(t, serve(http.HandlerFunc(ToggleConcept),
		jsonRequest(http.MethodPost, "/api/event/concepts/concept-gemaal/toggle", "", "id", "concept-gemaal"), false))
	decodeState(t, serve(http.HandlerFunc(SetPeople),
		jsonRequest(http.MethodPost, "/api/event/concepts/concept-gemaal/people", `{"people":100}`, "id", "concept-gemaal"), false))

	w := serve(http.HandlerFunc(OrderCSV), jsonRequest(http.MethodGet, "/api/order.csv", ""), false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "text/csv; charset=utf-8", w.Header().Get("Content-Type"))
	assert.Contains(t, w.Header().Get("Content-Disposition"), "bestellijst.csv")

	lines := strings.Split(strings.TrimSpace(w.Body.String()), "\n")
	require.Greater(t, len(lines), 1)
	assert.Equal(t, "naam,eenheid,aantal,bronnen", lines[0])
	assert.Contains(t, w.Body.String(), "Gemaal/")
}

func TestBackofficePage(t *testing.T) {
	withTestDependencies(t)

	w := serve(http.HandlerFunc(BackofficePage), httptest.NewRequest(http.MethodGet, "/backoffice", nil), false)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), "/api/event/split/equalize")
	assert.NotContains(t, w.Body.String(), "/api/import/pdf")

	w = serve(http.HandlerFunc(BackofficePage), httptest.NewRequest(http.MethodGet, "/backoffice", nil), true)
	assert.Contains(t, w.Body.String(), "/api/import/pdf")
}

func TestPlannerUnavailable(t *testing.T) {
	original := plannerService
	plannerService = nil
	t.Cleanup(func() { plannerService = original })

	w := httptest.NewRecorder()
	EventState(w, httptest.NewRequest(http.MethodGet, "/api/event", nil))
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

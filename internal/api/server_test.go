package api

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/ubck/survey-cli/internal/config"
	"github.com/ubck/survey-cli/internal/model"
	"github.com/ubck/survey-cli/internal/roster"
	"github.com/ubck/survey-cli/internal/store"
)

func testServer(t *testing.T) (*Server, *store.MemoryStore) {
	t.Helper()
	st := store.NewMemory()
	cfg := &config.Config{
		Roster: config.RosterConfig{
			MaxTries:    roster.DefaultMaxTries,
			PairWeight:  roster.DefaultWeights.Pair,
			SlotWeight:  roster.DefaultWeights.Slot,
			CarrierOnly: "promote",
		},
	}
	return NewServer(st, cfg, nil), st
}

func doJSON(t *testing.T, handler http.Handler, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func decodeBody(t *testing.T, rec *httptest.ResponseRecorder, v any) {
	t.Helper()
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), v))
}

func TestHealthz(t *testing.T) {
	srv, _ := testServer(t)
	rec := doJSON(t, srv.Router(), http.MethodGet, "/healthz", nil)
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestListDaysEmpty(t *testing.T) {
	srv, _ := testServer(t)
	rec := doJSON(t, srv.Router(), http.MethodGet, "/days", nil)
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Days []int `json:"days"`
	}
	decodeBody(t, rec, &body)
	assert.NotNil(t, body.Days)
	assert.Empty(t, body.Days)
}

func TestBuildAndGetDay(t *testing.T) {
	srv, st := testServer(t)
	router := srv.Router()

	rec := doJSON(t, router, http.MethodPost, "/days/1/build", map[string]any{
		"teams":         2,
		"investigators": []string{"I1", "I2"},
		"leaders":       []string{"L1", "L2"},
		"fillers":       []string{"F1", "F2"},
		"carriers":      []string{"F1"},
	})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	var body struct {
		Record model.DayRecord `json:"record"`
		Table  struct {
			Header []string   `json:"header"`
			Rows   [][]string `json:"rows"`
		} `json:"table"`
	}
	decodeBody(t, rec, &body)
	assert.Equal(t, 1, body.Record.Day)
	require.Len(t, body.Record.Teams, 2)
	assert.Equal(t, []string{"역할", "1조", "2조"}, body.Table.Header)

	// The build persists: the day is now readable and listed.
	saved, err := st.GetDay(context.Background(), 1)
	require.NoError(t, err)
	require.NotNil(t, saved)

	rec = doJSON(t, router, http.MethodGet, "/days/1", nil)
	assert.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/days", nil)
	var list struct {
		Days []int `json:"days"`
	}
	decodeBody(t, rec, &list)
	assert.Equal(t, []int{1}, list.Days)
}

func TestBuildValidation(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.Router()

	tests := []struct {
		name string
		body map[string]any
		want int
	}{
		{
			name: "missing teams",
			body: map[string]any{"investigators": []string{"A"}},
			want: http.StatusBadRequest,
		},
		{
			name: "pool shortfall",
			body: map[string]any{
				"teams":         2,
				"investigators": []string{"A"},
				"leaders":       []string{"L1", "L2"},
			},
			want: http.StatusUnprocessableEntity,
		},
		{
			name: "duplicate across pools",
			body: map[string]any{
				"teams":         1,
				"investigators": []string{"A"},
				"leaders":       []string{"A"},
			},
			want: http.StatusUnprocessableEntity,
		},
		{
			name: "unsatisfiable constraint",
			body: map[string]any{
				"teams":         1,
				"investigators": []string{"A"},
				"leaders":       []string{"B"},
				"together":      []string{"A-Ghost"},
				"max_tries":     20,
			},
			want: http.StatusConflict,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec := doJSON(t, router, http.MethodPost, "/days/1/build", tt.body)
			assert.Equal(t, tt.want, rec.Code, rec.Body.String())
		})
	}
}

func TestPutDayAndWarnings(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.Router()

	table := map[string]any{
		"header": []string{"역할", "1조"},
		"rows": [][]string{
			{"조사자", "A"},
			{"섹장", "B"},
		},
	}
	rec := doJSON(t, router, http.MethodPut, "/days/1", map[string]any{"table": table})
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	// The same roster on day 2 repeats everything day 1 established.
	rec = doJSON(t, router, http.MethodPut, "/days/2", map[string]any{"table": table})
	require.Equal(t, http.StatusOK, rec.Code)

	var body struct {
		Warnings []string `json:"warnings"`
	}
	decodeBody(t, rec, &body)
	assert.NotEmpty(t, body.Warnings)

	rec = doJSON(t, router, http.MethodGet, "/days/2/warnings", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	decodeBody(t, rec, &body)
	assert.NotEmpty(t, body.Warnings)
}

func TestPutDayRejectsBadTable(t *testing.T) {
	srv, _ := testServer(t)
	rec := doJSON(t, srv.Router(), http.MethodPut, "/days/1", map[string]any{
		"table": map[string]any{
			"header": []string{"역할", "1조"},
			"rows": [][]string{
				{"조사자", "A"},
				{"조사자", "B"},
			},
		},
	})
	assert.Equal(t, http.StatusUnprocessableEntity, rec.Code)
}

func TestGetDayNotFound(t *testing.T) {
	srv, _ := testServer(t)
	rec := doJSON(t, srv.Router(), http.MethodGet, "/days/9", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestDayParamValidation(t *testing.T) {
	srv, _ := testServer(t)
	router := srv.Router()

	for _, path := range []string{"/days/abc", "/days/0", "/days/-1"} {
		rec := doJSON(t, router, http.MethodGet, path, nil)
		assert.Equal(t, http.StatusBadRequest, rec.Code, path)
	}
}

func TestDeleteDay(t *testing.T) {
	srv, st := testServer(t)
	router := srv.Router()

	require.NoError(t, st.SaveDay(context.Background(), model.DayRecord{
		Day:   1,
		Teams: model.Partition{{Slot: 1, Investigator: "A", Leader: "B"}},
	}))

	rec := doJSON(t, router, http.MethodDelete, "/days/1", nil)
	assert.Equal(t, http.StatusNoContent, rec.Code)

	rec = doJSON(t, router, http.MethodGet, "/days/1", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestExportDay(t *testing.T) {
	srv, st := testServer(t)

	require.NoError(t, st.SaveDay(context.Background(), model.DayRecord{
		Day:   1,
		Teams: model.Partition{{Slot: 1, Investigator: "A", Leader: "B"}},
	}))

	rec := doJSON(t, srv.Router(), http.MethodGet, "/days/1/export", nil)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Header().Get("Content-Disposition"), "day_1.xlsx")
	assert.NotEmpty(t, rec.Body.Bytes())
}

func TestFormatNotesUnconfigured(t *testing.T) {
	srv, _ := testServer(t)
	rec := doJSON(t, srv.Router(), http.MethodPost, "/notes/format", map[string]string{"text": "x\t1"})
	assert.Equal(t, http.StatusServiceUnavailable, rec.Code)
}

func TestRoutesUnknownArea(t *testing.T) {
	srv, _ := testServer(t)
	rec := doJSON(t, srv.Router(), http.MethodGet, "/routes/nope", nil)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

package api

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/ubck/survey-cli/internal/export"
	"github.com/ubck/survey-cli/internal/input"
	"github.com/ubck/survey-cli/internal/model"
	"github.com/ubck/survey-cli/internal/roster"
	"github.com/ubck/survey-cli/internal/route"
)

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListDays(w http.ResponseWriter, r *http.Request) {
	days, err := s.store.ListDays(r.Context())
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if days == nil {
		days = []int{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"days": days})
}

func (s *Server) handleGetDay(w http.ResponseWriter, r *http.Request) {
	day, ok := dayParam(w, r)
	if !ok {
		return
	}

	rec, err := s.store.GetDay(r.Context(), day)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if rec == nil {
		writeError(w, http.StatusNotFound, errors.New("day has no record"))
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"record": rec,
		"table":  export.FormatTable(rec.Teams, rec.CarrierSet(), s.labels),
	})
}

// handlePutDay replaces a day's record with a hand-edited table. This is
// the API form of re-importing an edited spreadsheet: later days see the
// edit the next time they build.
func (s *Server) handlePutDay(w http.ResponseWriter, r *http.Request) {
	day, ok := dayParam(w, r)
	if !ok {
		return
	}

	var req struct {
		Table export.Table `json:"table"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	partition, carriers, err := export.ParseTable(req.Table, s.labels)
	if err != nil {
		writeError(w, http.StatusUnprocessableEntity, err)
		return
	}

	rec := model.DayRecord{Day: day, Teams: partition, Carriers: carriers}
	if err := s.store.SaveDay(r.Context(), rec); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	stats, err := roster.Aggregate(r.Context(), s.store, day)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"record":   rec,
		"warnings": roster.Warnings(partition, stats),
	})
}

func (s *Server) handleDeleteDay(w http.ResponseWriter, r *http.Request) {
	day, ok := dayParam(w, r)
	if !ok {
		return
	}
	if err := s.store.DeleteDay(r.Context(), day); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

type buildRequest struct {
	Teams         int      `json:"teams"`
	Investigators []string `json:"investigators"`
	Leaders       []string `json:"leaders"`
	Fillers       []string `json:"fillers"`
	Carriers      []string `json:"carriers"`
	Together      []string `json:"together"` // "A-B" form
	Apart         []string `json:"apart"`
	MaxTries      int      `json:"max_tries,omitempty"`
}

func (s *Server) handleBuild(w http.ResponseWriter, r *http.Request) {
	day, ok := dayParam(w, r)
	if !ok {
		return
	}

	var req buildRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}
	if req.Teams < 1 {
		writeError(w, http.StatusBadRequest, errors.New("teams must be >= 1"))
		return
	}

	stats, err := roster.Aggregate(r.Context(), s.store, day)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	carrierOnly, err := s.cfg.Roster.CarrierOnlyPolicy()
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	maxTries := req.MaxTries
	if maxTries <= 0 {
		maxTries = s.cfg.Roster.MaxTries
	}

	partition, err := roster.Build(roster.BuildRequest{
		Teams:         req.Teams,
		Investigators: req.Investigators,
		Leaders:       req.Leaders,
		Fillers:       req.Fillers,
		Carriers:      req.Carriers,
		Together:      parsePairStrings(req.Together),
		Apart:         parsePairStrings(req.Apart),
		MaxTries:      maxTries,
		Weights:       s.cfg.Roster.Weights(),
		CarrierOnly:   carrierOnly,
	}, stats)
	if err != nil {
		writeError(w, buildErrorStatus(err), err)
		return
	}

	rec := model.DayRecord{Day: day, Teams: partition, Carriers: req.Carriers}
	if err := s.store.SaveDay(r.Context(), rec); err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	writeJSON(w, http.StatusOK, map[string]any{
		"record":   rec,
		"table":    export.FormatTable(partition, rec.CarrierSet(), s.labels),
		"warnings": roster.Warnings(partition, stats),
	})
}

func (s *Server) handleWarnings(w http.ResponseWriter, r *http.Request) {
	day, ok := dayParam(w, r)
	if !ok {
		return
	}

	rec, err := s.store.GetDay(r.Context(), day)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if rec == nil {
		writeError(w, http.StatusNotFound, errors.New("day has no record"))
		return
	}

	stats, err := roster.Aggregate(r.Context(), s.store, day)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	warnings := roster.Warnings(rec.Teams, stats)
	if warnings == nil {
		warnings = []string{}
	}
	writeJSON(w, http.StatusOK, map[string]any{"warnings": warnings})
}

func (s *Server) handleExport(w http.ResponseWriter, r *http.Request) {
	day, ok := dayParam(w, r)
	if !ok {
		return
	}

	rec, err := s.store.GetDay(r.Context(), day)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}
	if rec == nil {
		writeError(w, http.StatusNotFound, errors.New("day has no record"))
		return
	}

	table := export.FormatTable(rec.Teams, rec.CarrierSet(), s.labels)

	w.Header().Set("Content-Type", "application/vnd.openxmlformats-officedocument.spreadsheetml.sheet")
	w.Header().Set("Content-Disposition", `attachment; filename="day_`+strconv.Itoa(day)+`.xlsx"`)
	if err := export.WriteXLSX(w, table, ""); err != nil {
		zap.L().Error("xlsx export failed", zap.Int("day", day), zap.Error(err))
	}
}

func (s *Server) handleFormatNotes(w http.ResponseWriter, r *http.Request) {
	if s.formatter == nil {
		writeError(w, http.StatusServiceUnavailable, errors.New("note formatting is not configured"))
		return
	}

	var req struct {
		Text string `json:"text"`
	}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeError(w, http.StatusBadRequest, errors.New("invalid request body"))
		return
	}

	formatted, err := s.formatter.Format(r.Context(), req.Text)
	if err != nil {
		writeError(w, http.StatusBadGateway, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]string{"formatted": formatted})
}

func (s *Server) handleRoutes(w http.ResponseWriter, r *http.Request) {
	name := chi.URLParam(r, "area")
	spec, ok := s.cfg.Routes.Area(name)
	if !ok {
		writeError(w, http.StatusNotFound, errors.New("unknown area"))
		return
	}

	area, err := route.LoadArea(r.Context(), spec)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	data, err := route.EncodeGeoJSON(area)
	if err != nil {
		writeError(w, http.StatusInternalServerError, err)
		return
	}

	w.Header().Set("Content-Type", "application/geo+json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

// --- helpers ---

func dayParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	day, err := strconv.Atoi(chi.URLParam(r, "day"))
	if err != nil || day < 1 {
		writeError(w, http.StatusBadRequest, errors.New("day must be a positive integer"))
		return 0, false
	}
	return day, true
}

func parsePairStrings(raw []string) []model.PairConstraint {
	var out []model.PairConstraint
	for _, s := range raw {
		out = append(out, input.ParsePairs(s)...)
	}
	return out
}

// buildErrorStatus maps the engine's failure taxonomy onto HTTP: pool and
// duplicate problems are bad inputs, budget exhaustion is a conflict the
// caller can resolve by loosening rules.
func buildErrorStatus(err error) int {
	var poolErr *roster.PoolError
	var dupErr *roster.DuplicateError
	var searchErr *roster.SearchError
	switch {
	case errors.As(err, &poolErr), errors.As(err, &dupErr):
		return http.StatusUnprocessableEntity
	case errors.As(err, &searchErr):
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, err error) {
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

package server

import (
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/google/uuid"

	"InvestAdvisor/internal/metrics"
	"InvestAdvisor/internal/model"
	"InvestAdvisor/internal/recorder"
	"InvestAdvisor/internal/service"
)

const (
	defaultRunsLimit = 20
	maxRunsLimit     = 200
)

type errorResponse struct {
	Error string `json:"error"`
}

// adviceEnvelope adds the run id to the advice payload.
type adviceEnvelope struct {
	RunID uuid.UUID `json:"run_id"`
	*model.AdviceResponse
}

type runEnvelope struct {
	RunID   uuid.UUID     `json:"run_id"`
	Trigger model.Trigger `json:"trigger"`
	*model.AdviceResponse
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorResponse{Error: msg})
}

// writeServiceError maps a service error to an HTTP status. Unexpected
// errors are logged and not echoed to the caller.
func (s *Server) writeServiceError(w http.ResponseWriter, r *http.Request, err error) {
	switch service.Outcome(err) {
	case metrics.OutcomeNotFound:
		writeError(w, http.StatusNotFound, err.Error())
	case metrics.OutcomeInvalid:
		writeError(w, http.StatusUnprocessableEntity, err.Error())
	default:
		s.log.Error().Err(err).Str("path", r.URL.Path).Msg("request failed")
		writeError(w, http.StatusInternalServerError, "internal error")
	}
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"clients": len(s.svc.Clients()),
	})
}

func (s *Server) handleAdvice(w http.ResponseWriter, r *http.Request) {
	clientID := chi.URLParam(r, "clientID")
	res, err := s.svc.Advise(r.Context(), clientID, model.TriggerAPI)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, adviceEnvelope{RunID: res.RunID, AdviceResponse: res.Response})
}

func (s *Server) handleClients(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.svc.Clients())
}

func (s *Server) handleClientRuns(w http.ResponseWriter, r *http.Request) {
	limit := defaultRunsLimit
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n <= 0 {
			writeError(w, http.StatusBadRequest, "limit must be a positive integer")
			return
		}
		limit = min(n, maxRunsLimit)
	}

	runs, err := s.svc.History(chi.URLParam(r, "clientID"), limit)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	if runs == nil {
		runs = []recorder.RunSummary{}
	}
	writeJSON(w, http.StatusOK, runs)
}

func (s *Server) handleMarket(w http.ResponseWriter, r *http.Request) {
	m, err := s.svc.MarketTrends()
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, m)
}

func (s *Server) handleRun(w http.ResponseWriter, r *http.Request) {
	runID, err := uuid.Parse(chi.URLParam(r, "runID"))
	if err != nil {
		writeError(w, http.StatusBadRequest, "invalid run id")
		return
	}
	run, err := s.svc.Run(runID)
	if err != nil {
		s.writeServiceError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, runEnvelope{RunID: run.RunID, Trigger: run.Trigger, AdviceResponse: run.Response})
}

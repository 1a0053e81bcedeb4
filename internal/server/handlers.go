package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"

	"github.com/go-chi/chi/v5"

	"github.com/rshade/esgsync/internal/bridge"
	"github.com/rshade/esgsync/internal/dashboard"
	"github.com/rshade/esgsync/internal/logging"
	"github.com/rshade/esgsync/internal/mapper"
	"github.com/rshade/esgsync/internal/validation"
	"github.com/rshade/esgsync/internal/wizard"
)

// MatchRequest is the body of POST /v1/bridge/match.
type MatchRequest struct {
	State *wizard.State `json:"state"`
	Need  bridge.Need   `json:"need"`
	Limit int           `json:"limit,omitempty"`
}

// MatchResponse is the response of POST /v1/bridge/match.
type MatchResponse struct {
	Readiness float64            `json:"readiness"`
	Matches   []bridge.Candidate `json:"matches"`
}

type errorBody struct {
	Error string `json:"error"`
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleMap(w http.ResponseWriter, r *http.Request) {
	state, ok := decodeState(w, r)
	if !ok {
		return
	}
	built, err := mapper.Build(chi.URLParam(r, "section"), state)
	if err != nil {
		if errors.Is(err, mapper.ErrUnknownSection) {
			writeError(w, http.StatusNotFound, err.Error())
			return
		}
		s.internalError(w, r, err)
		return
	}
	writeJSON(w, http.StatusOK, built)
}

func (s *Server) handleValidate(w http.ResponseWriter, r *http.Request) {
	mode := validation.ModeDraft
	if raw := r.URL.Query().Get("mode"); raw != "" {
		m, err := validation.ParseMode(raw)
		if err != nil {
			writeError(w, http.StatusBadRequest, err.Error())
			return
		}
		mode = m
	}
	state, ok := decodeState(w, r)
	if !ok {
		return
	}
	res := s.validator.Validate(state, mode)
	status := http.StatusOK
	if res.HasErrors() {
		status = http.StatusUnprocessableEntity
	}
	writeJSON(w, status, res)
}

func (s *Server) handleDashboard(w http.ResponseWriter, r *http.Request) {
	state, ok := decodeState(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, dashboard.Compute(state))
}

func (s *Server) handleBridgeMatch(w http.ResponseWriter, r *http.Request) {
	var req MatchRequest
	if !decode(w, r, &req) {
		return
	}
	if req.State == nil {
		writeError(w, http.StatusBadRequest, "state is required")
		return
	}
	if req.Limit < 0 {
		writeError(w, http.StatusBadRequest, "limit must not be negative")
		return
	}
	kpis := dashboard.Compute(req.State)
	matches := s.directory.Match(req.State.Profile, kpis, req.Need, req.Limit)
	if matches == nil {
		matches = []bridge.Candidate{}
	}
	writeJSON(w, http.StatusOK, MatchResponse{
		Readiness: kpis.Completeness.Ratio,
		Matches:   matches,
	})
}

func (s *Server) internalError(w http.ResponseWriter, r *http.Request, err error) {
	logging.FromContext(r.Context()).Error().Err(err).Msg("request failed")
	writeError(w, http.StatusInternalServerError, "internal error")
}

func decodeState(w http.ResponseWriter, r *http.Request) (*wizard.State, bool) {
	var s wizard.State
	if !decode(w, r, &s) {
		return nil, false
	}
	return &s, true
}

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	body := http.MaxBytesReader(w, r.Body, MaxBodyBytes)
	defer body.Close()
	if err := json.NewDecoder(body).Decode(v); err != nil {
		var tooLarge *http.MaxBytesError
		switch {
		case errors.As(err, &tooLarge):
			writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
		case errors.Is(err, io.EOF):
			writeError(w, http.StatusBadRequest, "request body is empty")
		default:
			writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
		}
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, errorBody{Error: msg})
}

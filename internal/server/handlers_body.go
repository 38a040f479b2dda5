package server

import (
	"encoding/json"
	"net/http"

	"github.com/claude/liftlog/internal/models"
	"github.com/go-chi/chi/v5"
)

func (s *Server) handleStatus(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.tracker.Status(r.Context()))
}

func (s *Server) handleWeightHistory(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.tracker.WeightHistory(r.Context()))
}

type upsertWeightRequest struct {
	Date   string        `json:"date"`
	Weight models.Number `json:"weight"`
}

// handleUpsertWeight is the commit half of the two-phase upsert: without
// confirm=true an existing entry for the date yields 409 and no change,
// and the UI re-posts with confirm=true once the user agrees to
// overwrite.
func (s *Server) handleUpsertWeight(w http.ResponseWriter, r *http.Request) {
	var req upsertWeightRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	confirmed := r.URL.Query().Get("confirm") == "true"
	if err := s.tracker.UpsertWeight(r.Context(), req.Date, float64(req.Weight), confirmed); err != nil {
		s.writeTrackerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.tracker.WeightHistory(r.Context()))
}

func (s *Server) handleDeleteWeight(w http.ResponseWriter, r *http.Request) {
	date := chi.URLParam(r, "date")
	if err := s.tracker.DeleteWeight(r.Context(), date); err != nil {
		s.writeTrackerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, s.tracker.WeightHistory(r.Context()))
}

func (s *Server) handleGetHeight(w http.ResponseWriter, r *http.Request) {
	height, ok := s.tracker.Height(r.Context())
	if !ok {
		writeJSON(w, http.StatusNotFound, map[string]string{"error": "no height saved"})
		return
	}
	writeJSON(w, http.StatusOK, map[string]float64{"height": height})
}

type saveHeightRequest struct {
	Height models.Number `json:"height"`
}

func (s *Server) handleSaveHeight(w http.ResponseWriter, r *http.Request) {
	var req saveHeightRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}
	if err := s.tracker.SaveHeight(r.Context(), float64(req.Height)); err != nil {
		s.writeTrackerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]float64{"height": float64(req.Height)})
}

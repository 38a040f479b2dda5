package server

import (
	"encoding/json"
	"errors"
	"net/http"
	"net/url"
	"strconv"
	"time"

	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/tracker"
	"github.com/go-chi/chi/v5"
)

func (s *Server) handleCatalog(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"muscleGroups": models.Catalog,
		"repPresets":   models.RepPresets,
	})
}

func (s *Server) handleWorkoutView(w http.ResponseWriter, r *http.Request) {
	date, err := dateParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return
	}
	writeJSON(w, http.StatusOK, s.tracker.View(r.Context(), date))
}

type addSetRequest struct {
	Date        string        `json:"date"`
	MuscleGroup string        `json:"muscleGroup"`
	Exercise    string        `json:"exercise"`
	WeightLbs   models.Number `json:"weightLbs"`
	Reps        models.Count  `json:"reps"`
}

func (s *Server) handleAddSet(w http.ResponseWriter, r *http.Request) {
	var req addSetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	date, err := parseFlexDate(req.Date)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid date: " + err.Error()})
		return
	}

	set, err := s.tracker.AddSet(r.Context(), tracker.AddSetInput{
		Date:        date,
		MuscleGroup: req.MuscleGroup,
		Exercise:    req.Exercise,
		WeightLbs:   float64(req.WeightLbs),
		Reps:        int(req.Reps),
	})
	if err != nil {
		s.writeTrackerError(w, err)
		return
	}
	writeJSON(w, http.StatusCreated, set)
}

func (s *Server) handleDeleteMuscleGroup(w http.ResponseWriter, r *http.Request) {
	group, date, ok := s.groupAndDate(w, r)
	if !ok {
		return
	}
	view, err := s.tracker.DeleteMuscleGroup(r.Context(), group, date)
	if err != nil {
		s.writeTrackerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleDeleteExercise(w http.ResponseWriter, r *http.Request) {
	group, exercise, date, ok := s.exerciseAndDate(w, r)
	if !ok {
		return
	}
	view, err := s.tracker.DeleteExercise(r.Context(), group, exercise, date)
	if err != nil {
		s.writeTrackerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

func (s *Server) handleDeleteSet(w http.ResponseWriter, r *http.Request) {
	group, exercise, date, ok := s.exerciseAndDate(w, r)
	if !ok {
		return
	}
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid set index"})
		return
	}
	view, err := s.tracker.DeleteSet(r.Context(), group, exercise, date, index)
	if err != nil {
		s.writeTrackerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

type editSetRequest struct {
	WeightLbs models.Number `json:"weightLbs"`
	Reps      models.Count  `json:"reps"`
}

func (s *Server) handleEditSet(w http.ResponseWriter, r *http.Request) {
	group, exercise, date, ok := s.exerciseAndDate(w, r)
	if !ok {
		return
	}
	index, err := strconv.Atoi(chi.URLParam(r, "index"))
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid set index"})
		return
	}

	var req editSetRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid JSON: " + err.Error()})
		return
	}

	view, err := s.tracker.EditSet(r.Context(), group, exercise, date, index,
		float64(req.WeightLbs), int(req.Reps))
	if err != nil {
		s.writeTrackerError(w, err)
		return
	}
	writeJSON(w, http.StatusOK, view)
}

// writeTrackerError maps the tracker's error taxonomy onto HTTP statuses.
func (s *Server) writeTrackerError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, tracker.ErrInvalidValue):
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
	case errors.Is(err, tracker.ErrConfirmRequired):
		writeJSON(w, http.StatusConflict, map[string]any{
			"error":           err.Error(),
			"confirmRequired": true,
		})
	default:
		s.log.Error("request failed", "error", err)
		writeJSON(w, http.StatusInternalServerError, map[string]string{"error": err.Error()})
	}
}

// groupAndDate extracts the muscle-group path param and the date query
// param, writing the error response itself on failure.
func (s *Server) groupAndDate(w http.ResponseWriter, r *http.Request) (string, time.Time, bool) {
	group, err := url.PathUnescape(chi.URLParam(r, "group"))
	if err != nil || group == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid muscle group"})
		return "", time.Time{}, false
	}
	date, err := dateParam(r)
	if err != nil {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": err.Error()})
		return "", time.Time{}, false
	}
	return group, date, true
}

func (s *Server) exerciseAndDate(w http.ResponseWriter, r *http.Request) (string, string, time.Time, bool) {
	group, date, ok := s.groupAndDate(w, r)
	if !ok {
		return "", "", time.Time{}, false
	}
	exercise, err := url.PathUnescape(chi.URLParam(r, "exercise"))
	if err != nil || exercise == "" {
		writeJSON(w, http.StatusBadRequest, map[string]string{"error": "invalid exercise"})
		return "", "", time.Time{}, false
	}
	return group, exercise, date, true
}

// dateParam reads the optional date query parameter, defaulting to today.
func dateParam(r *http.Request) (time.Time, error) {
	q := r.URL.Query().Get("date")
	if q == "" {
		return time.Now(), nil
	}
	return parseFlexDate(q)
}

// parseFlexDate accepts a calendar date or a full RFC 3339 timestamp.
// An empty value means now, matching the mobile app's default of the
// current date.
func parseFlexDate(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	t, err := time.Parse(models.DateLayout, s)
	if err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

package server

import (
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"path/filepath"
	"strings"
	"testing"

	"github.com/claude/liftlog/internal/kvstore"
	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/store"
	"github.com/claude/liftlog/internal/tracker"
)

func newTestServer(t *testing.T) *Server {
	t.Helper()

	path := filepath.Join(t.TempDir(), "liftlog.db")
	if err := kvstore.Migrate(path); err != nil {
		t.Fatalf("migrate: %v", err)
	}
	kv, err := kvstore.Open(path)
	if err != nil {
		t.Fatalf("open: %v", err)
	}
	t.Cleanup(func() { kv.Close() })

	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	return New(tracker.New(store.New(kv, log), log), log)
}

func doJSON(t *testing.T, s *Server, method, target, body string) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, target, reader)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	return v
}

// TestHandleCatalog verifies the catalog endpoint returns the muscle
// groups and rep presets.
func TestHandleCatalog(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodGet, "/api/v1/catalog", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("status = %d, want 200", rec.Code)
	}

	body := decode[struct {
		MuscleGroups []models.MuscleGroup `json:"muscleGroups"`
		RepPresets   []int                `json:"repPresets"`
	}](t, rec)
	if len(body.MuscleGroups) != 5 || body.MuscleGroups[0].Name != "Chest" {
		t.Errorf("muscleGroups = %+v", body.MuscleGroups)
	}
	if len(body.RepPresets) == 0 || body.RepPresets[0] != 5 {
		t.Errorf("repPresets = %v", body.RepPresets)
	}
}

// TestAddSetAndView verifies logging a set over HTTP and reading it back
// grouped by date.
func TestAddSetAndView(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/v1/workouts/sets",
		`{"date":"2024-01-05","muscleGroup":"Chest","exercise":"Bench Press","weightLbs":100,"reps":10}`)
	if rec.Code != http.StatusCreated {
		t.Fatalf("status = %d, want 201: %s", rec.Code, rec.Body)
	}
	set := decode[models.WorkoutSet](t, rec)
	if set.ID == "" || set.SetNumber != 1 {
		t.Errorf("created set = %+v", set)
	}
	if float64(set.WeightKg) != 45.36 {
		t.Errorf("weightKg = %v, want 45.36", set.WeightKg)
	}

	rec = doJSON(t, s, http.MethodGet, "/api/v1/workouts/view?date=2024-01-05", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("view status = %d", rec.Code)
	}
	view := decode[models.GroupedView](t, rec)
	if len(view.Sections) != 1 || view.Sections[0].Title != "Chest" {
		t.Errorf("view = %+v", view)
	}

	// Nothing on a different date.
	rec = doJSON(t, s, http.MethodGet, "/api/v1/workouts/view?date=2024-01-06", "")
	view = decode[models.GroupedView](t, rec)
	if len(view.Sections) != 0 {
		t.Errorf("other-date view = %+v, want empty", view.Sections)
	}
}

// TestAddSetValidationBoundary verifies the HTTP boundary rejects unknown
// catalog entries and non-positive numerics with 400.
func TestAddSetValidationBoundary(t *testing.T) {
	s := newTestServer(t)

	bodies := []string{
		`{"date":"2024-01-05","muscleGroup":"Chest","exercise":"Squat","weightLbs":100,"reps":10}`,
		`{"date":"2024-01-05","muscleGroup":"Chest","exercise":"Bench Press","weightLbs":0,"reps":10}`,
		`{"date":"2024-01-05","muscleGroup":"Chest","exercise":"Bench Press","weightLbs":100,"reps":-1}`,
		`{"date":"2024-01-05","muscleGroup":"Chest","exercise":"Bench Press","weightLbs":"abc","reps":10}`,
		`{"date":"not-a-date","muscleGroup":"Chest","exercise":"Bench Press","weightLbs":100,"reps":10}`,
	}
	for _, body := range bodies {
		rec := doJSON(t, s, http.MethodPost, "/api/v1/workouts/sets", body)
		if rec.Code != http.StatusBadRequest {
			t.Errorf("POST %s status = %d, want 400", body, rec.Code)
		}
	}
}

// TestDeleteAndEditSetOverHTTP verifies positional set mutations through
// escaped URL parameters.
func TestDeleteAndEditSetOverHTTP(t *testing.T) {
	s := newTestServer(t)

	for _, body := range []string{
		`{"date":"2024-01-05","muscleGroup":"Chest","exercise":"Bench Press","weightLbs":100,"reps":10}`,
		`{"date":"2024-01-05","muscleGroup":"Chest","exercise":"Bench Press","weightLbs":105,"reps":8}`,
	} {
		if rec := doJSON(t, s, http.MethodPost, "/api/v1/workouts/sets", body); rec.Code != http.StatusCreated {
			t.Fatalf("seed status = %d", rec.Code)
		}
	}

	// Edit the newest set (display position 0).
	rec := doJSON(t, s, http.MethodPut,
		"/api/v1/workouts/groups/Chest/exercises/Bench%20Press/sets/0?date=2024-01-05",
		`{"weightLbs":110,"reps":6}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("edit status = %d: %s", rec.Code, rec.Body)
	}
	view := decode[models.GroupedView](t, rec)
	sets := view.Sections[0].Exercises[0].Sets
	if float64(sets[0].WeightLbs) != 110 || sets[0].Reps != 6 {
		t.Errorf("edited set = %+v", sets[0])
	}

	// Delete it.
	rec = doJSON(t, s, http.MethodDelete,
		"/api/v1/workouts/groups/Chest/exercises/Bench%20Press/sets/0?date=2024-01-05", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status = %d", rec.Code)
	}
	view = decode[models.GroupedView](t, rec)
	if n := len(view.Sections[0].Exercises[0].Sets); n != 1 {
		t.Errorf("sets after delete = %d, want 1", n)
	}

	// Whole group.
	rec = doJSON(t, s, http.MethodDelete, "/api/v1/workouts/groups/Chest?date=2024-01-05", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("group delete status = %d", rec.Code)
	}
	view = decode[models.GroupedView](t, rec)
	if len(view.Sections) != 0 {
		t.Errorf("sections after group delete = %+v", view.Sections)
	}
}

// TestWeightConfirmFlowOverHTTP verifies the 409-then-confirm overwrite
// shape of the weight upsert.
func TestWeightConfirmFlowOverHTTP(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodPost, "/api/v1/weights", `{"date":"2024-01-05","weight":70}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("first upsert status = %d: %s", rec.Code, rec.Body)
	}

	rec = doJSON(t, s, http.MethodPost, "/api/v1/weights", `{"date":"2024-01-05","weight":71}`)
	if rec.Code != http.StatusConflict {
		t.Fatalf("unconfirmed overwrite status = %d, want 409", rec.Code)
	}
	conflict := decode[struct {
		ConfirmRequired bool `json:"confirmRequired"`
	}](t, rec)
	if !conflict.ConfirmRequired {
		t.Error("409 body missing confirmRequired flag")
	}

	rec = doJSON(t, s, http.MethodPost, "/api/v1/weights?confirm=true", `{"date":"2024-01-05","weight":71}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("confirmed overwrite status = %d", rec.Code)
	}
	history := decode[[]models.WeightEntry](t, rec)
	if len(history) != 1 || float64(history[0].Weight) != 71 {
		t.Errorf("history = %+v, want single entry of 71", history)
	}

	rec = doJSON(t, s, http.MethodDelete, "/api/v1/weights/2024-01-05", "")
	if rec.Code != http.StatusOK {
		t.Fatalf("delete status = %d", rec.Code)
	}
	history = decode[[]models.WeightEntry](t, rec)
	if len(history) != 0 {
		t.Errorf("history after delete = %+v, want empty", history)
	}
}

// TestHeightGateOverHTTP verifies the height endpoints and the status
// gate transition.
func TestHeightGateOverHTTP(t *testing.T) {
	s := newTestServer(t)

	rec := doJSON(t, s, http.MethodGet, "/api/v1/status", "")
	status := decode[tracker.Status](t, rec)
	if !status.NeedsHeight {
		t.Error("fresh store should need height")
	}

	rec = doJSON(t, s, http.MethodGet, "/api/v1/height", "")
	if rec.Code != http.StatusNotFound {
		t.Errorf("height before save status = %d, want 404", rec.Code)
	}

	rec = doJSON(t, s, http.MethodPut, "/api/v1/height", `{"height":-1}`)
	if rec.Code != http.StatusBadRequest {
		t.Errorf("invalid height status = %d, want 400", rec.Code)
	}

	rec = doJSON(t, s, http.MethodPut, "/api/v1/height", `{"height":172}`)
	if rec.Code != http.StatusOK {
		t.Fatalf("save height status = %d", rec.Code)
	}

	rec = doJSON(t, s, http.MethodGet, "/api/v1/status", "")
	status = decode[tracker.Status](t, rec)
	if status.NeedsHeight {
		t.Error("gate still needs height after save")
	}

	rec = doJSON(t, s, http.MethodGet, "/api/v1/height", "")
	body := decode[map[string]float64](t, rec)
	if body["height"] != 172 {
		t.Errorf("height = %v, want 172", body["height"])
	}
}

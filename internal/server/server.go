// Package server exposes the tracker over a local JSON API for UI
// clients. Access control is the listener: loopback in dev, the tailnet
// when tsnet is enabled.
package server

import (
	"log/slog"
	"net/http"

	"github.com/claude/liftlog/internal/tracker"
	"github.com/go-chi/chi/v5"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	tracker *tracker.Tracker
	log     *slog.Logger
	router  chi.Router
}

// New creates a new Server with all routes configured.
func New(tr *tracker.Tracker, log *slog.Logger) *Server {
	s := &Server{
		tracker: tr,
		log:     log,
		router:  chi.NewRouter(),
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Get("/catalog", s.handleCatalog)
		r.Get("/status", s.handleStatus)

		r.Get("/workouts/view", s.handleWorkoutView)
		r.Post("/workouts/sets", s.handleAddSet)
		r.Route("/workouts/groups/{group}", func(r chi.Router) {
			r.Delete("/", s.handleDeleteMuscleGroup)
			r.Route("/exercises/{exercise}", func(r chi.Router) {
				r.Delete("/", s.handleDeleteExercise)
				r.Delete("/sets/{index}", s.handleDeleteSet)
				r.Put("/sets/{index}", s.handleEditSet)
			})
		})

		r.Get("/weights", s.handleWeightHistory)
		r.Post("/weights", s.handleUpsertWeight)
		r.Delete("/weights/{date}", s.handleDeleteWeight)

		r.Get("/height", s.handleGetHeight)
		r.Put("/height", s.handleSaveHeight)
	})
}

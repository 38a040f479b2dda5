// Package store is the Record Store: whole-document persistence of the
// workout list, the weight-entry list, and the height record, each as one
// JSON value under a fixed key. Malformed or missing documents read as
// empty; write failures are always surfaced to the caller.
package store

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"strconv"
	"strings"
	"sync"

	"github.com/claude/liftlog/internal/kvstore"
	"github.com/claude/liftlog/internal/models"
)

// Storage keys, unchanged from the original mobile app so its documents
// remain readable.
const (
	keyWorkouts = "workouts"
	keyWeights  = "@weight_entries"
	keyHeight   = "@user_height"
)

// Store owns the canonical persisted state. A single mutex serializes all
// writes so read-modify-write sequences from concurrent callers cannot
// interleave.
type Store struct {
	kv  *kvstore.Store
	log *slog.Logger

	mu sync.Mutex
}

// New creates a Store over the given key-value backend.
func New(kv *kvstore.Store, log *slog.Logger) *Store {
	return &Store{kv: kv, log: log}
}

// LoadWorkouts returns every persisted workout set. A missing or
// unparseable document yields an empty list, never an error: the app must
// stay usable after a corrupted write.
func (s *Store) LoadWorkouts(ctx context.Context) []models.WorkoutSet {
	raw, ok, err := s.kv.Get(ctx, keyWorkouts)
	if err != nil {
		s.log.Warn("workout document read failed, treating as empty", "error", err)
		return nil
	}
	if !ok {
		return nil
	}

	var records []models.WorkoutSet
	if err := json.Unmarshal([]byte(raw), &records); err != nil {
		s.log.Warn("workout document malformed, treating as empty", "error", err)
		return nil
	}
	return records
}

// ReplaceWorkouts overwrites the full workout document. On error nothing
// is persisted and the caller must keep its previous state.
func (s *Store) ReplaceWorkouts(ctx context.Context, records []models.WorkoutSet) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if records == nil {
		records = []models.WorkoutSet{}
	}
	data, err := json.Marshal(records)
	if err != nil {
		return fmt.Errorf("encoding workouts: %w", err)
	}
	if err := s.kv.Put(ctx, keyWorkouts, string(data)); err != nil {
		return fmt.Errorf("persisting workouts: %w", err)
	}
	return nil
}

// LoadWeights returns every persisted weight entry in document order.
func (s *Store) LoadWeights(ctx context.Context) []models.WeightEntry {
	raw, ok, err := s.kv.Get(ctx, keyWeights)
	if err != nil {
		s.log.Warn("weight document read failed, treating as empty", "error", err)
		return nil
	}
	if !ok {
		return nil
	}

	var entries []models.WeightEntry
	if err := json.Unmarshal([]byte(raw), &entries); err != nil {
		s.log.Warn("weight document malformed, treating as empty", "error", err)
		return nil
	}
	return entries
}

// ReplaceWeights overwrites the full weight-entry document.
func (s *Store) ReplaceWeights(ctx context.Context, entries []models.WeightEntry) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if entries == nil {
		entries = []models.WeightEntry{}
	}
	data, err := json.Marshal(entries)
	if err != nil {
		return fmt.Errorf("encoding weight entries: %w", err)
	}
	if err := s.kv.Put(ctx, keyWeights, string(data)); err != nil {
		return fmt.Errorf("persisting weight entries: %w", err)
	}
	return nil
}

// LoadHeight returns the stored height and whether one exists. The value
// is stored as a bare string-encoded number, as the original app wrote it.
func (s *Store) LoadHeight(ctx context.Context) (float64, bool) {
	raw, ok, err := s.kv.Get(ctx, keyHeight)
	if err != nil {
		s.log.Warn("height read failed, treating as absent", "error", err)
		return 0, false
	}
	if !ok {
		return 0, false
	}

	v, err := strconv.ParseFloat(strings.TrimSpace(strings.Trim(raw, `"`)), 64)
	if err != nil {
		s.log.Warn("height value malformed, treating as absent", "value", raw)
		return 0, false
	}
	return v, true
}

// SaveHeight overwrites the single height record.
func (s *Store) SaveHeight(ctx context.Context, value float64) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if err := s.kv.Put(ctx, keyHeight, strconv.FormatFloat(value, 'f', -1, 64)); err != nil {
		return fmt.Errorf("persisting height: %w", err)
	}
	return nil
}

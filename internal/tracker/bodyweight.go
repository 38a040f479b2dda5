package tracker

import (
	"context"
	"fmt"
	"math"
	"sort"
	"time"

	"github.com/claude/liftlog/internal/models"
)

// WeightHistory returns all weight entries, newest date first.
func (t *Tracker) WeightHistory(ctx context.Context) []models.WeightEntry {
	entries := t.store.LoadWeights(ctx)
	// yyyy-mm-dd strings order lexically
	sort.SliceStable(entries, func(a, b int) bool {
		return entries[a].Date > entries[b].Date
	})
	if entries == nil {
		entries = []models.WeightEntry{}
	}
	return entries
}

// UpsertWeight records a body-weight measurement for a date. At most one
// entry exists per date: if one is already present and confirmed is
// false, ErrConfirmRequired is returned and nothing changes; the caller
// asks the user and retries with confirmed set. A confirmed upsert
// replaces the existing entry in place, never duplicating the date.
func (t *Tracker) UpsertWeight(ctx context.Context, date string, weight float64, confirmed bool) error {
	if _, err := time.Parse(models.DateLayout, date); err != nil {
		return fmt.Errorf("%w: date must be yyyy-mm-dd", ErrInvalidValue)
	}
	if math.IsNaN(weight) || math.IsInf(weight, 0) || weight <= 0 {
		return fmt.Errorf("%w: weight must be a positive number", ErrInvalidValue)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	entries := t.store.LoadWeights(ctx)
	entry := models.WeightEntry{Date: date, Weight: models.Number(weight)}

	existing := -1
	for i, e := range entries {
		if e.Date == date {
			existing = i
			break
		}
	}

	if existing >= 0 {
		if !confirmed {
			return fmt.Errorf("%w: a weight entry already exists for %s", ErrConfirmRequired, date)
		}
		entries[existing] = entry
	} else {
		entries = append(entries, entry)
	}

	if err := t.store.ReplaceWeights(ctx, entries); err != nil {
		return err
	}
	t.log.Info("weight recorded", "date", date, "overwrote", existing >= 0)
	return nil
}

// DeleteWeight removes the entry for the given date. Deleting a date with
// no entry is a no-op.
func (t *Tracker) DeleteWeight(ctx context.Context, date string) error {
	t.mu.Lock()
	defer t.mu.Unlock()

	entries := t.store.LoadWeights(ctx)
	kept := entries[:0:0]
	for _, e := range entries {
		if e.Date == date {
			continue
		}
		kept = append(kept, e)
	}
	return t.store.ReplaceWeights(ctx, kept)
}

// Height returns the stored height and whether one has been saved.
func (t *Tracker) Height(ctx context.Context) (float64, bool) {
	return t.store.LoadHeight(ctx)
}

// SaveHeight overwrites the single height record. There is no history and
// no delete: once a height exists the tracker stays in the ready state.
func (t *Tracker) SaveHeight(ctx context.Context, value float64) error {
	if math.IsNaN(value) || math.IsInf(value, 0) || value <= 0 {
		return fmt.Errorf("%w: height must be a positive number", ErrInvalidValue)
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	return t.store.SaveHeight(ctx, value)
}

// Status describes the height gate: weight entry is available only once a
// height has been saved.
type Status struct {
	NeedsHeight bool `json:"needsHeight"`
}

// Status reports whether the tracker still needs an initial height.
func (t *Tracker) Status(ctx context.Context) Status {
	_, ok := t.store.LoadHeight(ctx)
	return Status{NeedsHeight: !ok}
}

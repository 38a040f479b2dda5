// Package tracker implements the workout aggregation engine and the
// body-weight tracker on top of the record store. Views are derived, never
// cached: every read and every mutation works from the full persisted
// record list, so the view and the store cannot disagree.
package tracker

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"sync"
	"time"

	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/store"
	"github.com/google/uuid"
)

// ErrInvalidValue marks user-supplied values rejected by validation
// (non-positive or non-finite weight/reps/height, unknown exercise).
var ErrInvalidValue = errors.New("invalid value")

// ErrConfirmRequired is returned when an operation would overwrite an
// existing record and the caller has not confirmed the overwrite.
var ErrConfirmRequired = errors.New("confirmation required")

// Tracker applies reads and structural mutations to the workout history.
type Tracker struct {
	store *store.Store
	log   *slog.Logger

	// mu serializes mutations end to end (load, transform, persist) so
	// two callers cannot interleave read-modify-write sequences.
	mu sync.Mutex

	now   func() time.Time
	newID func() string
}

// New creates a Tracker over the given record store.
func New(st *store.Store, log *slog.Logger) *Tracker {
	return &Tracker{
		store: st,
		log:   log,
		now:   time.Now,
		newID: uuid.NewString,
	}
}

// View derives the grouped view of all sets logged on the given date.
func (t *Tracker) View(ctx context.Context, date time.Time) models.GroupedView {
	return DeriveView(t.store.LoadWorkouts(ctx), date)
}

// AddSetInput carries the fields of a new workout set.
type AddSetInput struct {
	Date        time.Time
	MuscleGroup string
	Exercise    string
	WeightLbs   float64
	Reps        int
}

// AddSet validates and appends one workout set. The set number is the
// count of already-stored sets for the same date, muscle group, and
// exercise, plus one; it is assigned once and never renumbered, so gaps
// can appear after deletions.
func (t *Tracker) AddSet(ctx context.Context, in AddSetInput) (models.WorkoutSet, error) {
	if !models.ValidSelection(in.MuscleGroup, in.Exercise) {
		return models.WorkoutSet{}, fmt.Errorf("%w: unknown exercise %q for muscle group %q",
			ErrInvalidValue, in.Exercise, in.MuscleGroup)
	}
	if err := validateSetValues(in.WeightLbs, in.Reps); err != nil {
		return models.WorkoutSet{}, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	records := t.store.LoadWorkouts(ctx)

	setNumber := 1
	for _, r := range records {
		if r.MuscleGroup == in.MuscleGroup && r.Exercise == in.Exercise &&
			models.SameCalendarDate(r.Date, in.Date) {
			setNumber++
		}
	}

	set := models.WorkoutSet{
		ID:          t.newID(),
		Date:        in.Date,
		MuscleGroup: in.MuscleGroup,
		Exercise:    in.Exercise,
		WeightLbs:   models.Number(in.WeightLbs),
		WeightKg:    models.Number(models.KgFromLbs(in.WeightLbs)),
		SetNumber:   models.Count(setNumber),
		Reps:        models.Count(in.Reps),
		CreatedAt:   t.now(),
	}

	if err := t.store.ReplaceWorkouts(ctx, append(records, set)); err != nil {
		return models.WorkoutSet{}, err
	}
	t.log.Info("set logged", "muscleGroup", set.MuscleGroup, "exercise", set.Exercise,
		"setNumber", setNumber)
	return set, nil
}

// DeleteMuscleGroup removes every set of the given muscle group on the
// given date. Sets of the same group on other dates are untouched.
// Applying it twice is a no-op the second time.
func (t *Tracker) DeleteMuscleGroup(ctx context.Context, group string, date time.Time) (models.GroupedView, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	records := t.store.LoadWorkouts(ctx)
	kept := records[:0:0]
	for _, r := range records {
		if r.MuscleGroup == group && models.SameCalendarDate(r.Date, date) {
			continue
		}
		kept = append(kept, r)
	}
	return t.persistAndDerive(ctx, kept, date)
}

// DeleteExercise removes every set matching muscle group, exercise, and
// date.
func (t *Tracker) DeleteExercise(ctx context.Context, group, exercise string, date time.Time) (models.GroupedView, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	records := t.store.LoadWorkouts(ctx)
	kept := records[:0:0]
	for _, r := range records {
		if r.MuscleGroup == group && r.Exercise == exercise &&
			models.SameCalendarDate(r.Date, date) {
			continue
		}
		kept = append(kept, r)
	}
	return t.persistAndDerive(ctx, kept, date)
}

// DeleteSet removes the set at the given display position within one
// exercise group. The matching subset is recomputed in display order
// immediately before resolving the index, and exactly that record is
// removed. A stale (out of range) index is a silent no-op.
func (t *Tracker) DeleteSet(ctx context.Context, group, exercise string, date time.Time, setIndex int) (models.GroupedView, error) {
	t.mu.Lock()
	defer t.mu.Unlock()

	records := t.store.LoadWorkouts(ctx)
	subset := displayOrder(records, group, exercise, date)
	if setIndex < 0 || setIndex >= len(subset) {
		t.log.Warn("delete set index out of range, ignoring",
			"exercise", exercise, "index", setIndex, "sets", len(subset))
		return DeriveView(records, date), nil
	}

	i := subset[setIndex]
	records = append(records[:i], records[i+1:]...)
	return t.persistAndDerive(ctx, records, date)
}

// EditSet updates weight and reps of the set at the given display
// position. Identity fields (id, date, set number, creation time) are
// preserved; the derived kg value is recomputed. A stale index is a
// silent no-op.
func (t *Tracker) EditSet(ctx context.Context, group, exercise string, date time.Time, setIndex int, weightLbs float64, reps int) (models.GroupedView, error) {
	if err := validateSetValues(weightLbs, reps); err != nil {
		return models.GroupedView{}, err
	}

	t.mu.Lock()
	defer t.mu.Unlock()

	records := t.store.LoadWorkouts(ctx)
	subset := displayOrder(records, group, exercise, date)
	if setIndex < 0 || setIndex >= len(subset) {
		t.log.Warn("edit set index out of range, ignoring",
			"exercise", exercise, "index", setIndex, "sets", len(subset))
		return DeriveView(records, date), nil
	}

	r := &records[subset[setIndex]]
	r.WeightLbs = models.Number(weightLbs)
	r.WeightKg = models.Number(models.KgFromLbs(weightLbs))
	r.Reps = models.Count(reps)
	return t.persistAndDerive(ctx, records, date)
}

// persistAndDerive writes the new record list through the store and
// re-derives the view. On a write fault the persisted state is unchanged
// and no view is returned.
func (t *Tracker) persistAndDerive(ctx context.Context, records []models.WorkoutSet, date time.Time) (models.GroupedView, error) {
	if err := t.store.ReplaceWorkouts(ctx, records); err != nil {
		return models.GroupedView{}, err
	}
	return DeriveView(records, date), nil
}

func validateSetValues(weightLbs float64, reps int) error {
	if math.IsNaN(weightLbs) || math.IsInf(weightLbs, 0) || weightLbs <= 0 {
		return fmt.Errorf("%w: weight must be a positive number", ErrInvalidValue)
	}
	if reps <= 0 {
		return fmt.Errorf("%w: reps must be a positive number", ErrInvalidValue)
	}
	return nil
}

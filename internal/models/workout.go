package models

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"
)

// PoundsPerKilogram converts between the stored primary unit (lbs) and the
// derived display unit (kg).
const PoundsPerKilogram = 2.20462

// Number is a float64 that also accepts the string encodings the original
// mobile client wrote ("100" instead of 100). NaN and infinities are
// rejected so a corrupted document is treated as malformed rather than
// poisoning derived views.
type Number float64

// UnmarshalJSON implements json.Unmarshaler.
func (n *Number) UnmarshalJSON(b []byte) error {
	s := strings.Trim(string(b), `"`)
	if s == "null" || s == "" {
		*n = 0
		return nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return fmt.Errorf("parsing number %q: %w", s, err)
	}
	if math.IsNaN(f) || math.IsInf(f, 0) {
		return fmt.Errorf("non-finite number %q", s)
	}
	*n = Number(f)
	return nil
}

// Count is an int that also accepts string and fractional JSON encodings
// (the original client stored text-input values verbatim and parseInt-ed
// them on edit).
type Count int

// UnmarshalJSON implements json.Unmarshaler.
func (c *Count) UnmarshalJSON(b []byte) error {
	var n Number
	if err := n.UnmarshalJSON(b); err != nil {
		return err
	}
	*c = Count(int(n))
	return nil
}

// WorkoutSet is one performed set of an exercise. Field names match the
// JSON documents the original mobile app persisted so existing data
// round-trips.
type WorkoutSet struct {
	ID          string    `json:"id"`
	Date        time.Time `json:"date"`
	MuscleGroup string    `json:"muscleGroup"`
	Exercise    string    `json:"exercise"`
	WeightLbs   Number    `json:"weightLbs"`
	WeightKg    Number    `json:"weightKg"` // derived from WeightLbs, never authoritative
	SetNumber   Count     `json:"setNumber"`
	Reps        Count     `json:"reps"`
	CreatedAt   time.Time `json:"createdAt"`
}

// KgFromLbs derives the display-unit weight, rounded to two decimals the
// way the original client did.
func KgFromLbs(lbs float64) float64 {
	return math.Round(lbs/PoundsPerKilogram*100) / 100
}

// SameCalendarDate reports whether two timestamps fall on the same
// calendar date, ignoring time of day.
func SameCalendarDate(a, b time.Time) bool {
	ay, am, ad := a.Date()
	by, bm, bd := b.Date()
	return ay == by && am == bm && ad == bd
}

// ExerciseGroup holds one exercise's sets for the selected date, newest
// first.
type ExerciseGroup struct {
	MuscleGroup string       `json:"muscleGroup"`
	Exercise    string       `json:"exercise"`
	Sets        []WorkoutSet `json:"sets"`
}

// MuscleGroupSection is one section of the grouped view.
type MuscleGroupSection struct {
	Title     string          `json:"title"`
	Exercises []ExerciseGroup `json:"exercises"`
}

// GroupedView is the derived two-level presentation of one date's sets.
// It is rebuilt from the full record list on every read and never
// persisted.
type GroupedView struct {
	Date     string               `json:"date"`
	Sections []MuscleGroupSection `json:"sections"`
}

// WeightEntry is one body-weight measurement. At most one entry exists per
// date.
type WeightEntry struct {
	Date   string `json:"date"` // yyyy-mm-dd
	Weight Number `json:"weight"`
}

// DateLayout is the calendar-date encoding used for weight entries and API
// date parameters.
const DateLayout = "2006-01-02"

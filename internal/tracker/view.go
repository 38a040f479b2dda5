package tracker

import (
	"sort"
	"time"

	"github.com/claude/liftlog/internal/models"
)

// DeriveView builds the grouped view of one date's sets from the full
// record list. It is a pure function: filter to the calendar date, group
// by muscle group then exercise in first-seen order, sort each exercise's
// sets newest-first (stable on ties). Groups with no matching sets are
// omitted entirely.
func DeriveView(records []models.WorkoutSet, date time.Time) models.GroupedView {
	view := models.GroupedView{
		Date:     date.Format(models.DateLayout),
		Sections: []models.MuscleGroupSection{},
	}

	type exKey struct {
		group, exercise string
	}
	sectionIdx := make(map[string]int)
	exerciseIdx := make(map[exKey]int)

	for _, r := range records {
		if !models.SameCalendarDate(r.Date, date) {
			continue
		}

		si, ok := sectionIdx[r.MuscleGroup]
		if !ok {
			si = len(view.Sections)
			sectionIdx[r.MuscleGroup] = si
			view.Sections = append(view.Sections, models.MuscleGroupSection{Title: r.MuscleGroup})
		}

		k := exKey{r.MuscleGroup, r.Exercise}
		ei, ok := exerciseIdx[k]
		if !ok {
			ei = len(view.Sections[si].Exercises)
			exerciseIdx[k] = ei
			view.Sections[si].Exercises = append(view.Sections[si].Exercises, models.ExerciseGroup{
				MuscleGroup: r.MuscleGroup,
				Exercise:    r.Exercise,
			})
		}

		view.Sections[si].Exercises[ei].Sets = append(view.Sections[si].Exercises[ei].Sets, r)
	}

	for si := range view.Sections {
		for ei := range view.Sections[si].Exercises {
			sets := view.Sections[si].Exercises[ei].Sets
			sort.SliceStable(sets, func(a, b int) bool {
				return sets[a].CreatedAt.After(sets[b].CreatedAt)
			})
		}
	}

	return view
}

// displayOrder returns the indices into records of the sets matching
// muscle group, exercise, and date, ordered exactly as the view displays
// them. Mutations that address a set by position resolve the position
// against this freshly recomputed ordering, never against a cached view.
func displayOrder(records []models.WorkoutSet, group, exercise string, date time.Time) []int {
	var idx []int
	for i, r := range records {
		if r.MuscleGroup == group && r.Exercise == exercise &&
			models.SameCalendarDate(r.Date, date) {
			idx = append(idx, i)
		}
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return records[idx[a]].CreatedAt.After(records[idx[b]].CreatedAt)
	})
	return idx
}

package models

// MuscleGroup is one top-level workout category with its allowed exercises.
type MuscleGroup struct {
	Name      string   `json:"name"`
	Exercises []string `json:"exercises"`
}

// Catalog is the closed enumeration of muscle groups and exercises the app
// offers, in display order.
var Catalog = []MuscleGroup{
	{Name: "Chest", Exercises: []string{"Bench Press", "Incline Dumbbell Press", "Push-up"}},
	{Name: "Back", Exercises: []string{"Pull-up", "Deadlift", "Bent-over Row"}},
	{Name: "Legs", Exercises: []string{"Squat", "Leg Press", "Lunges"}},
	{Name: "Shoulders", Exercises: []string{"Overhead Press", "Lateral Raise"}},
	{Name: "Arms", Exercises: []string{"Bicep Curl", "Tricep Extension"}},
}

// RepPresets are the quick-entry rep counts offered by UI clients.
var RepPresets = []int{5, 8, 10, 12, 15, 20, 25, 30, 45, 50}

// ValidSelection reports whether exercise belongs to the named muscle
// group's allowed exercise list.
func ValidSelection(group, exercise string) bool {
	for _, g := range Catalog {
		if g.Name != group {
			continue
		}
		for _, e := range g.Exercises {
			if e == exercise {
				return true
			}
		}
		return false
	}
	return false
}

package mcp

import (
	"context"
	"time"

	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/tracker"
)

// DataSource abstracts the tracker operations MCP tools need.
type DataSource interface {
	View(ctx context.Context, date time.Time) models.GroupedView
	AddSet(ctx context.Context, in tracker.AddSetInput) (models.WorkoutSet, error)
	EditSet(ctx context.Context, group, exercise string, date time.Time, setIndex int, weightLbs float64, reps int) (models.GroupedView, error)
	DeleteSet(ctx context.Context, group, exercise string, date time.Time, setIndex int) (models.GroupedView, error)
	WeightHistory(ctx context.Context) []models.WeightEntry
	UpsertWeight(ctx context.Context, date string, weight float64, confirmed bool) error
	Status(ctx context.Context) tracker.Status
}

// Compile-time check: *tracker.Tracker satisfies DataSource.
var _ DataSource = (*tracker.Tracker)(nil)

package mcp

import (
	"context"
	"time"

	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/tracker"
	"github.com/mark3labs/mcp-go/mcp"
)

// parseDate accepts a calendar date or a full RFC 3339 timestamp; empty
// means today.
func parseDate(s string) (time.Time, error) {
	if s == "" {
		return time.Now(), nil
	}
	t, err := time.Parse(models.DateLayout, s)
	if err == nil {
		return t, nil
	}
	return time.Parse(time.RFC3339, s)
}

// --- Tool definitions ---

var toolGetWorkoutView = mcp.NewTool("get_workout_view",
	mcp.WithDescription("Get the grouped workout view for one date: muscle groups, their exercises, and each exercise's sets newest-first."),
	mcp.WithString("date", mcp.Description("Calendar date (YYYY-MM-DD). Defaults to today.")),
)

var toolLogWorkoutSet = mcp.NewTool("log_workout_set",
	mcp.WithDescription("Log one performed set. The muscle group and exercise must come from the catalog resource. The set number is assigned automatically."),
	mcp.WithString("muscle_group", mcp.Required(), mcp.Description("Muscle group (e.g. Chest, Back, Legs, Shoulders, Arms)")),
	mcp.WithString("exercise", mcp.Required(), mcp.Description("Exercise within the muscle group (e.g. Bench Press)")),
	mcp.WithNumber("weight_lbs", mcp.Required(), mcp.Description("Weight in pounds (positive)")),
	mcp.WithNumber("reps", mcp.Required(), mcp.Description("Repetition count (positive integer)")),
	mcp.WithString("date", mcp.Description("Calendar date (YYYY-MM-DD). Defaults to today.")),
)

var toolEditWorkoutSet = mcp.NewTool("edit_workout_set",
	mcp.WithDescription("Change weight and reps of one set, addressed by its display position (0-based, newest first) within an exercise group on a date. A stale position is a no-op."),
	mcp.WithString("muscle_group", mcp.Required(), mcp.Description("Muscle group")),
	mcp.WithString("exercise", mcp.Required(), mcp.Description("Exercise")),
	mcp.WithNumber("set_index", mcp.Required(), mcp.Description("0-based display position of the set")),
	mcp.WithNumber("weight_lbs", mcp.Required(), mcp.Description("New weight in pounds")),
	mcp.WithNumber("reps", mcp.Required(), mcp.Description("New repetition count")),
	mcp.WithString("date", mcp.Description("Calendar date (YYYY-MM-DD). Defaults to today.")),
)

var toolDeleteWorkoutSet = mcp.NewTool("delete_workout_set",
	mcp.WithDescription("Delete one set, addressed by its display position (0-based, newest first) within an exercise group on a date. A stale position is a no-op."),
	mcp.WithString("muscle_group", mcp.Required(), mcp.Description("Muscle group")),
	mcp.WithString("exercise", mcp.Required(), mcp.Description("Exercise")),
	mcp.WithNumber("set_index", mcp.Required(), mcp.Description("0-based display position of the set")),
	mcp.WithString("date", mcp.Description("Calendar date (YYYY-MM-DD). Defaults to today.")),
)

var toolGetWeightHistory = mcp.NewTool("get_weight_history",
	mcp.WithDescription("Body-weight history, newest date first. One entry per date."),
)

var toolLogWeight = mcp.NewTool("log_weight",
	mcp.WithDescription("Record a body-weight measurement for a date. If an entry for that date already exists the call fails until confirm is true, which overwrites it."),
	mcp.WithString("date", mcp.Required(), mcp.Description("Calendar date (YYYY-MM-DD)")),
	mcp.WithNumber("weight", mcp.Required(), mcp.Description("Weight in kg (positive)")),
	mcp.WithBoolean("confirm", mcp.Description("Set true to overwrite an existing entry for the date")),
)

var toolGetStatus = mcp.NewTool("get_status",
	mcp.WithDescription("Tracker status: whether an initial height measurement is still needed before weight entry is available."),
)

// --- Tool handlers ---

func (h *handlers) getWorkoutView(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date, err := parseDate(req.GetString("date", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(h.ds.View(ctx, date))
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) logWorkoutSet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	group, err := req.RequireString("muscle_group")
	if err != nil {
		return mcp.NewToolResultError("muscle_group parameter is required"), nil
	}
	exercise, err := req.RequireString("exercise")
	if err != nil {
		return mcp.NewToolResultError("exercise parameter is required"), nil
	}
	weight, err := req.RequireFloat("weight_lbs")
	if err != nil {
		return mcp.NewToolResultError("weight_lbs parameter is required"), nil
	}
	reps, err := req.RequireInt("reps")
	if err != nil {
		return mcp.NewToolResultError("reps parameter is required"), nil
	}
	date, err := parseDate(req.GetString("date", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	set, err := h.ds.AddSet(ctx, tracker.AddSetInput{
		Date:        date,
		MuscleGroup: group,
		Exercise:    exercise,
		WeightLbs:   weight,
		Reps:        reps,
	})
	if err != nil {
		h.log.Error("mcp log_workout_set", "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(set)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) editWorkoutSet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	group, err := req.RequireString("muscle_group")
	if err != nil {
		return mcp.NewToolResultError("muscle_group parameter is required"), nil
	}
	exercise, err := req.RequireString("exercise")
	if err != nil {
		return mcp.NewToolResultError("exercise parameter is required"), nil
	}
	index, err := req.RequireInt("set_index")
	if err != nil {
		return mcp.NewToolResultError("set_index parameter is required"), nil
	}
	weight, err := req.RequireFloat("weight_lbs")
	if err != nil {
		return mcp.NewToolResultError("weight_lbs parameter is required"), nil
	}
	reps, err := req.RequireInt("reps")
	if err != nil {
		return mcp.NewToolResultError("reps parameter is required"), nil
	}
	date, err := parseDate(req.GetString("date", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	view, err := h.ds.EditSet(ctx, group, exercise, date, index, weight, reps)
	if err != nil {
		h.log.Error("mcp edit_workout_set", "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(view)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) deleteWorkoutSet(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	group, err := req.RequireString("muscle_group")
	if err != nil {
		return mcp.NewToolResultError("muscle_group parameter is required"), nil
	}
	exercise, err := req.RequireString("exercise")
	if err != nil {
		return mcp.NewToolResultError("exercise parameter is required"), nil
	}
	index, err := req.RequireInt("set_index")
	if err != nil {
		return mcp.NewToolResultError("set_index parameter is required"), nil
	}
	date, err := parseDate(req.GetString("date", ""))
	if err != nil {
		return mcp.NewToolResultError("invalid date format: " + err.Error()), nil
	}

	view, err := h.ds.DeleteSet(ctx, group, exercise, date, index)
	if err != nil {
		h.log.Error("mcp delete_workout_set", "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(view)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getWeightHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(h.ds.WeightHistory(ctx))
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) logWeight(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	date, err := req.RequireString("date")
	if err != nil {
		return mcp.NewToolResultError("date parameter is required"), nil
	}
	weight, err := req.RequireFloat("weight")
	if err != nil {
		return mcp.NewToolResultError("weight parameter is required"), nil
	}
	confirm := req.GetBool("confirm", false)

	if err := h.ds.UpsertWeight(ctx, date, weight, confirm); err != nil {
		h.log.Error("mcp log_weight", "error", err)
		return mcp.NewToolResultError(err.Error()), nil
	}

	result, err := mcp.NewToolResultJSON(h.ds.WeightHistory(ctx))
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

func (h *handlers) getStatus(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(h.ds.Status(ctx))
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

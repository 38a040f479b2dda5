package mcp

import (
	"context"
	"encoding/json"

	"github.com/claude/liftlog/internal/models"
	"github.com/mark3labs/mcp-go/mcp"
)

// --- Resource definitions ---

var resCatalog = mcp.NewResource(
	"liftlog://catalog",
	"Exercise Catalog",
	mcp.WithResourceDescription("Muscle groups with their allowed exercises, and the quick-entry rep presets"),
	mcp.WithMIMEType("application/json"),
)

var resRecentWeights = mcp.NewResource(
	"liftlog://recent_weights",
	"Recent Weights",
	mcp.WithResourceDescription("Body-weight entries, newest first"),
	mcp.WithMIMEType("application/json"),
)

// --- Resource handlers ---

func (h *handlers) catalog(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(map[string]any{
		"muscleGroups": models.Catalog,
		"repPresets":   models.RepPresets,
	})
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

func (h *handlers) recentWeights(ctx context.Context, req mcp.ReadResourceRequest) ([]mcp.ResourceContents, error) {
	data, err := json.Marshal(h.ds.WeightHistory(ctx))
	if err != nil {
		return nil, err
	}

	return []mcp.ResourceContents{
		mcp.TextResourceContents{
			URI:      req.Params.URI,
			MIMEType: "application/json",
			Text:     string(data),
		},
	}, nil
}

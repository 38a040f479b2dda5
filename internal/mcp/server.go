// Package mcp exposes the workout and body-weight trackers as MCP tools
// so an assistant can read and log training data.
package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("LiftLog", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("LiftLog workout tracker. Log and browse workout sets (muscle group, exercise, weight, reps) grouped per date, and body-weight history. Overwriting an existing weight entry requires confirm=true."),
	)

	h := &handlers{ds: ds, log: log}

	s.AddTools(
		server.ServerTool{Tool: toolGetWorkoutView, Handler: h.getWorkoutView},
		server.ServerTool{Tool: toolLogWorkoutSet, Handler: h.logWorkoutSet},
		server.ServerTool{Tool: toolEditWorkoutSet, Handler: h.editWorkoutSet},
		server.ServerTool{Tool: toolDeleteWorkoutSet, Handler: h.deleteWorkoutSet},
		server.ServerTool{Tool: toolGetWeightHistory, Handler: h.getWeightHistory},
		server.ServerTool{Tool: toolLogWeight, Handler: h.logWeight},
		server.ServerTool{Tool: toolGetStatus, Handler: h.getStatus},
	)

	s.AddResources(
		server.ServerResource{Resource: resCatalog, Handler: h.catalog},
		server.ServerResource{Resource: resRecentWeights, Handler: h.recentWeights},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
}

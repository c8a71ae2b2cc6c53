package mcp

import (
	"log/slog"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// New creates an MCP server with all tools and resources registered.
func New(ds DataSource, version string, log *slog.Logger) *server.MCPServer {
	s := server.NewMCPServer("LiftLog", version,
		server.WithToolCapabilities(false),
		server.WithResourceCapabilities(false, false),
		server.WithInstructions("LiftLog training and nutrition server. Look up today's scheduled workout, recent workout history, weekly training totals, previous exercise performance and nutrition logs. All tools are read-only."),
	)

	h := &handlers{ds: ds, log: log}

	// Tools
	s.AddTools(
		server.ServerTool{Tool: toolGetTodayWorkout, Handler: h.getTodayWorkout},
		server.ServerTool{Tool: toolGetWeeklyStats, Handler: h.getWeeklyStats},
		server.ServerTool{Tool: toolGetWorkoutHistory, Handler: h.getWorkoutHistory},
		server.ServerTool{Tool: toolGetPreviousExercise, Handler: h.getPreviousExercise},
		server.ServerTool{Tool: toolGetNutritionHistory, Handler: h.getNutritionHistory},
		server.ServerTool{Tool: toolGetNutritionAverage, Handler: h.getNutritionAverage},
	)

	// Resources
	s.AddResources(
		server.ServerResource{Resource: resActiveSession, Handler: h.activeSession},
	)

	return s
}

// handlers holds dependencies for MCP tool/resource handlers.
type handlers struct {
	ds  DataSource
	log *slog.Logger
}

// --- Resource definitions ---

var resActiveSession = mcp.NewResource(
	"liftlog://active_session",
	"Active Session",
	mcp.WithResourceDescription("The workout currently in progress with its exercises and sets, or null when none is running"),
	mcp.WithMIMEType("application/json"),
)

package mcp

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
)

// --- Tool definitions ---

var toolGetTodayWorkout = mcp.NewTool("get_today_workout",
	mcp.WithDescription("Get the workout template scheduled for today by the active weekly program. Reports a rest day when the program marks today as rest; without a program the built-in rotation is used."),
)

var toolGetWeeklyStats = mcp.NewTool("get_weekly_stats",
	mcp.WithDescription("Totals for workouts completed in the last 7 days: workout count, volume (weight × reps), duration in seconds and completed sets."),
)

var toolGetWorkoutHistory = mcp.NewTool("get_workout_history",
	mcp.WithDescription("Completed workouts, most recent first. Each record holds only completed sets with weight and reps as entered."),
	mcp.WithNumber("limit", mcp.Description("Maximum number of workouts. Defaults to 10; 0 returns all.")),
)

var toolGetPreviousExercise = mcp.NewTool("get_previous_exercise",
	mcp.WithDescription("The most recent recorded performance of an exercise: date plus the completed sets. Names match case-insensitively."),
	mcp.WithString("exercise", mcp.Required(), mcp.Description("Exercise name (e.g. 'Bench Press')")),
)

var toolGetNutritionHistory = mcp.NewTool("get_nutrition_history",
	mcp.WithDescription("Daily nutrition logs (entries, calorie/macro totals, water in ml), newest first."),
	mcp.WithNumber("days", mcp.Description("How many days back to include. Defaults to 7.")),
)

var toolGetNutritionAverage = mcp.NewTool("get_nutrition_average",
	mcp.WithDescription("Average daily calories and protein over the logged days of the last 7 days. Zero when nothing was logged."),
)

// --- Tool handlers ---

func (h *handlers) getTodayWorkout(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	today, err := h.ds.Today(ctx)
	if err != nil {
		h.log.Error("mcp get_today_workout", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(today)
}

func (h *handlers) getWeeklyStats(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	ws, err := h.ds.WeeklyStats(ctx)
	if err != nil {
		h.log.Error("mcp get_weekly_stats", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(ws)
}

func (h *handlers) getWorkoutHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	limit := req.GetInt("limit", 10)
	if limit < 0 {
		return mcp.NewToolResultError("limit must not be negative"), nil
	}
	entries, err := h.ds.History(ctx, limit)
	if err != nil {
		h.log.Error("mcp get_workout_history", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(entries)
}

func (h *handlers) getPreviousExercise(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := req.RequireString("exercise")
	if err != nil {
		return mcp.NewToolResultError("exercise parameter is required"), nil
	}
	prev, err := h.ds.PreviousExercise(ctx, name)
	if err != nil {
		h.log.Error("mcp get_previous_exercise", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	if prev == nil {
		return mcp.NewToolResultText("No recorded performance of " + name + "."), nil
	}
	return jsonResult(prev)
}

func (h *handlers) getNutritionHistory(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	days := req.GetInt("days", 7)
	if days < 0 {
		return mcp.NewToolResultError("days must not be negative"), nil
	}
	logs, err := h.ds.NutritionHistory(ctx, days)
	if err != nil {
		h.log.Error("mcp get_nutrition_history", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(logs)
}

func (h *handlers) getNutritionAverage(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	avg, err := h.ds.NutritionAverage(ctx)
	if err != nil {
		h.log.Error("mcp get_nutrition_average", "error", err)
		return mcp.NewToolResultError("query failed: " + err.Error()), nil
	}
	return jsonResult(avg)
}

func jsonResult(v any) (*mcp.CallToolResult, error) {
	result, err := mcp.NewToolResultJSON(v)
	if err != nil {
		return mcp.NewToolResultError("serialization failed"), nil
	}
	return result, nil
}

package mcp

import (
	"context"
	"time"

	"github.com/claude/liftlog/internal/app"
	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/nutrition"
	"github.com/claude/liftlog/internal/stats"
)

// DataSource abstracts the data layer for MCP tools. Both Local (in-process)
// and HTTPClient (remote via REST API) satisfy this interface. Lookups that
// find nothing return a nil pointer and no error.
type DataSource interface {
	Today(ctx context.Context) (app.Today, error)
	WeeklyStats(ctx context.Context) (stats.WeeklyStats, error)
	History(ctx context.Context, limit int) ([]models.WorkoutHistory, error)
	PreviousExercise(ctx context.Context, name string) (*stats.PreviousExercise, error)
	NutritionHistory(ctx context.Context, days int) ([]models.DailyNutrition, error)
	NutritionAverage(ctx context.Context) (nutrition.Average, error)
	ActiveSession(ctx context.Context) (*models.Workout, error)
}

// Local serves MCP queries straight from the in-process stores.
type Local struct {
	app *app.App
	now func() time.Time
}

var _ DataSource = (*Local)(nil)

// NewLocal creates a DataSource over a.
func NewLocal(a *app.App) *Local {
	return &Local{app: a, now: time.Now}
}

func (l *Local) Today(context.Context) (app.Today, error) {
	return l.app.Today(l.now()), nil
}

func (l *Local) WeeklyStats(context.Context) (stats.WeeklyStats, error) {
	return stats.Weekly(l.app.History.Entries(), l.now()), nil
}

func (l *Local) History(_ context.Context, limit int) ([]models.WorkoutHistory, error) {
	entries := l.app.History.Entries()
	if limit > 0 && limit < len(entries) {
		entries = entries[:limit]
	}
	return entries, nil
}

func (l *Local) PreviousExercise(_ context.Context, name string) (*stats.PreviousExercise, error) {
	prev, ok := stats.LastPerformance(l.app.History.Entries(), name)
	if !ok {
		return nil, nil
	}
	return &prev, nil
}

func (l *Local) NutritionHistory(_ context.Context, days int) ([]models.DailyNutrition, error) {
	return l.app.Nutrition.History(l.now(), days), nil
}

func (l *Local) NutritionAverage(context.Context) (nutrition.Average, error) {
	return l.app.Nutrition.WeeklyAverage(l.now()), nil
}

func (l *Local) ActiveSession(context.Context) (*models.Workout, error) {
	w, ok := l.app.Session.Current()
	if !ok {
		return nil, nil
	}
	return &w, nil
}

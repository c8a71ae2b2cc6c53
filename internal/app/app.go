// Package app wires the stores of one user together.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/claude/liftlog/internal/catalog"
	"github.com/claude/liftlog/internal/history"
	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/nutrition"
	"github.com/claude/liftlog/internal/outbox"
	"github.com/claude/liftlog/internal/storage"
	"github.com/claude/liftlog/internal/workout"
)

// Options configures an App.
type Options struct {
	UserID      string
	QueueSize   int
	SyncTimeout time.Duration
	// LoadTimeout bounds each startup document read.
	LoadTimeout time.Duration
}

// App owns the stores of one user and the outbox that mirrors them to the
// document store.
type App struct {
	UserID    string
	Catalog   *catalog.Catalog
	Session   *workout.Store
	History   *history.Log
	Nutrition *nutrition.Store

	docs  storage.DocumentStore
	queue *outbox.Queue
	log   *slog.Logger
}

// New loads the user's documents and builds the stores. A missing document
// starts that store empty; any other read error is logged and the store also
// starts empty, since local state is authoritative from then on.
func New(ctx context.Context, docs storage.DocumentStore, opts Options, log *slog.Logger) *App {
	if opts.LoadTimeout <= 0 {
		opts.LoadTimeout = 10 * time.Second
	}

	queue := outbox.New(opts.QueueSize, opts.SyncTimeout, log)
	mirror := outbox.NewMirror(queue, docs, opts.UserID, log)

	var (
		custom   []models.WorkoutTemplate
		programs []models.WeeklyProgram
		entries  []models.WorkoutHistory
		logs     []models.DailyNutrition
	)
	load := func(c storage.Collection, v any) {
		lctx, cancel := context.WithTimeout(ctx, opts.LoadTimeout)
		defer cancel()
		err := storage.Load(lctx, docs, opts.UserID, c, v)
		switch {
		case err == nil:
		case errors.Is(err, storage.ErrNotFound):
			log.Debug("no stored document", "collection", c)
		default:
			log.Error("loading document", "collection", c, "error", err)
		}
	}
	load(storage.CollectionTemplates, &custom)
	load(storage.CollectionPrograms, &programs)
	load(storage.CollectionHistory, &entries)
	load(storage.CollectionNutrition, &logs)

	hist := history.New(entries, mirror)
	a := &App{
		UserID:    opts.UserID,
		Catalog:   catalog.New(custom, programs, mirror, log),
		Session:   workout.New(hist, log),
		History:   hist,
		Nutrition: nutrition.New(logs, mirror, log),
		docs:      docs,
		queue:     queue,
		log:       log,
	}
	log.Info("app loaded",
		"user", opts.UserID,
		"templates", len(custom),
		"programs", len(programs),
		"history", len(entries),
		"nutrition_days", len(logs),
	)
	return a
}

// Today is the schedule lookup for one date.
type Today struct {
	Date     string                  `json:"date"`
	Weekday  int                     `json:"weekday"`
	Rest     bool                    `json:"rest"`
	Template *models.WorkoutTemplate `json:"template,omitempty"`
}

// Today resolves the workout scheduled for now.
func (a *App) Today(now time.Time) Today {
	t := Today{Date: models.DateKey(now), Weekday: int(now.Weekday())}
	tpl, ok := a.Catalog.TodaysWorkout(now)
	if !ok {
		t.Rest = true
		return t
	}
	t.Template = &tpl
	return t
}

// StartToday starts a session from today's scheduled template. It reports
// false on a rest day.
func (a *App) StartToday(now time.Time) (models.Workout, bool) {
	t, ok := a.Catalog.TodaysWorkout(now)
	if !ok {
		return models.Workout{}, false
	}
	return a.Session.StartFromTemplate(t), true
}

// SyncStatus describes the outbox and the stored documents.
type SyncStatus struct {
	Outbox    outbox.Stats           `json:"outbox"`
	Documents []storage.DocumentInfo `json:"documents"`
}

// Status reports outbox counters and the documents currently stored remotely.
func (a *App) Status(ctx context.Context) (SyncStatus, error) {
	docs, err := a.docs.ListDocuments(ctx, a.UserID)
	if err != nil {
		return SyncStatus{}, fmt.Errorf("listing documents: %w", err)
	}
	return SyncStatus{Outbox: a.queue.Stats(), Documents: docs}, nil
}

// Flush waits for every pending remote write.
func (a *App) Flush(ctx context.Context) error {
	return a.queue.Flush(ctx)
}

// Close drains the outbox and stops its worker.
func (a *App) Close() {
	a.queue.Close()
	a.log.Info("outbox closed", "stats", a.queue.Stats())
}

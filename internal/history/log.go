// Package history keeps the list of completed workouts, most recent first.
package history

import (
	"sync"

	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/storage"
)

// Log is append-only: new records are prepended and never edited.
type Log struct {
	mu      sync.RWMutex
	entries []models.WorkoutHistory
	syncer  storage.Syncer
}

// New creates a Log seeded with previously stored entries (most recent first).
func New(entries []models.WorkoutHistory, syncer storage.Syncer) *Log {
	if syncer == nil {
		syncer = storage.NopSyncer{}
	}
	return &Log{entries: entries, syncer: syncer}
}

// Prepend records h as the most recent entry.
func (l *Log) Prepend(h models.WorkoutHistory) {
	l.mu.Lock()
	next := make([]models.WorkoutHistory, 0, len(l.entries)+1)
	next = append(next, h)
	next = append(next, l.entries...)
	l.entries = next
	l.syncer.Sync(storage.CollectionHistory, next)
	l.mu.Unlock()
}

// Entries returns the current snapshot. Callers must not modify it.
func (l *Log) Entries() []models.WorkoutHistory {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return l.entries
}

// Get looks up an entry by id.
func (l *Log) Get(id string) (models.WorkoutHistory, bool) {
	l.mu.RLock()
	defer l.mu.RUnlock()
	for _, h := range l.entries {
		if h.ID == id {
			return h, true
		}
	}
	return models.WorkoutHistory{}, false
}

// Len returns the number of recorded workouts.
func (l *Log) Len() int {
	l.mu.RLock()
	defer l.mu.RUnlock()
	return len(l.entries)
}

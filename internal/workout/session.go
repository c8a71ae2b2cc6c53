// Package workout holds the single in-progress workout session.
//
// Every mutation builds a new Workout value, copying only the slices on the
// path to the edited set, and swaps it in under the lock. Snapshots returned
// by Current are therefore never modified afterwards.
package workout

import (
	"log/slog"
	"sync"
	"time"

	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/stats"
	"github.com/google/uuid"
)

// Recorder receives the history record of an ended session.
type Recorder interface {
	Prepend(h models.WorkoutHistory)
}

// Store owns the active session. Operations on a missing session or an
// unknown id are no-ops.
type Store struct {
	mu      sync.Mutex
	current *models.Workout
	history Recorder
	log     *slog.Logger

	now   func() time.Time
	newID func() string
}

// New creates an empty session store that records ended sessions into history.
func New(history Recorder, log *slog.Logger) *Store {
	return &Store{
		history: history,
		log:     log,
		now:     time.Now,
		newID:   uuid.NewString,
	}
}

// Current returns the active session.
func (s *Store) Current() (models.Workout, bool) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return models.Workout{}, false
	}
	return *s.current, true
}

// Active reports whether a session is in progress.
func (s *Store) Active() bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	return s.current != nil
}

// Start makes w the active session, replacing any session already running.
func (s *Store) Start(w models.Workout) {
	if w.ID == "" {
		w.ID = s.newID()
	}
	if w.StartTime.IsZero() {
		w.StartTime = s.now()
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != nil {
		s.log.Warn("replacing in-progress workout",
			"previous_id", s.current.ID,
			"previous_name", s.current.Name,
			"new_id", w.ID,
		)
	}
	s.current = &w
	s.log.Info("workout started", "id", w.ID, "name", w.Name, "exercises", len(w.Exercises))
}

// StartFromTemplate instantiates t with fresh identities and starts it.
func (s *Store) StartFromTemplate(t models.WorkoutTemplate) models.Workout {
	w := models.Workout{
		ID:         s.newID(),
		Name:       t.Name,
		TemplateID: t.ID,
		StartTime:  s.now(),
		Exercises:  make([]models.Exercise, 0, len(t.Exercises)),
	}
	for i, bp := range t.Exercises {
		n := bp.Sets
		if n < 1 {
			n = 1
		}
		ex := models.Exercise{
			ID:          s.newID(),
			Name:        bp.Name,
			MuscleGroup: bp.MuscleGroup,
			Sets:        make([]models.Set, 0, n),
			Expanded:    i == 0,
		}
		for j := 1; j <= n; j++ {
			ex.Sets = append(ex.Sets, s.blankSet(j))
		}
		w.Exercises = append(w.Exercises, ex)
	}
	s.Start(w)
	return w
}

// End records the session into history and clears it. It reports false when
// no session was active.
func (s *Store) End() (models.WorkoutHistory, bool) {
	s.mu.Lock()
	if s.current == nil {
		s.mu.Unlock()
		return models.WorkoutHistory{}, false
	}
	w := *s.current
	s.current = nil
	s.mu.Unlock()

	h := stats.Summarize(w, s.newID(), s.now())
	if s.history != nil {
		s.history.Prepend(h)
	}
	s.log.Info("workout ended",
		"id", w.ID,
		"duration_sec", h.Duration,
		"completed_sets", h.CompletedSets,
		"volume", h.TotalVolume,
	)
	return h, true
}

// Cancel discards the session without recording history.
func (s *Store) Cancel() {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current != nil {
		s.log.Info("workout cancelled", "id", s.current.ID)
	}
	s.current = nil
}

// AddExercise appends an exercise with one blank set.
func (s *Store) AddExercise(name, muscleGroup string) (models.Exercise, bool) {
	ex := models.Exercise{
		ID:          s.newID(),
		Name:        name,
		MuscleGroup: muscleGroup,
		Sets:        []models.Set{s.blankSet(1)},
		Expanded:    true,
	}
	ok := s.mutate(func(w models.Workout) (models.Workout, bool) {
		exercises := make([]models.Exercise, len(w.Exercises), len(w.Exercises)+1)
		copy(exercises, w.Exercises)
		w.Exercises = append(exercises, ex)
		return w, true
	})
	return ex, ok
}

// RemoveExercise deletes an exercise and its sets.
func (s *Store) RemoveExercise(exerciseID string) bool {
	return s.mutate(func(w models.Workout) (models.Workout, bool) {
		exercises := make([]models.Exercise, 0, len(w.Exercises))
		for _, ex := range w.Exercises {
			if ex.ID != exerciseID {
				exercises = append(exercises, ex)
			}
		}
		if len(exercises) == len(w.Exercises) {
			return w, false
		}
		w.Exercises = exercises
		return w, true
	})
}

// ToggleExpand flips the expanded flag of an exercise.
func (s *Store) ToggleExpand(exerciseID string) bool {
	return s.mutateExercise(exerciseID, func(ex models.Exercise) (models.Exercise, bool) {
		ex.Expanded = !ex.Expanded
		return ex, true
	})
}

// AddSet appends a blank set numbered after the existing ones.
func (s *Store) AddSet(exerciseID string) (models.Set, bool) {
	var added models.Set
	ok := s.mutateExercise(exerciseID, func(ex models.Exercise) (models.Exercise, bool) {
		added = s.blankSet(len(ex.Sets) + 1)
		sets := make([]models.Set, len(ex.Sets), len(ex.Sets)+1)
		copy(sets, ex.Sets)
		ex.Sets = append(sets, added)
		return ex, true
	})
	return added, ok
}

// UpdateSet stores value as the raw text of field. Unknown fields are ignored.
func (s *Store) UpdateSet(exerciseID, setID string, field models.SetField, value string) bool {
	if field != models.SetFieldWeight && field != models.SetFieldReps {
		return false
	}
	return s.mutateSet(exerciseID, setID, func(set models.Set) (models.Set, bool) {
		if field == models.SetFieldWeight {
			set.Weight = value
		} else {
			set.Reps = value
		}
		return set, true
	})
}

// CompleteSet marks a set done. Completing an already completed set keeps
// its original completion time.
func (s *Store) CompleteSet(exerciseID, setID string) bool {
	now := s.now()
	return s.mutateSet(exerciseID, setID, func(set models.Set) (models.Set, bool) {
		if set.Completed {
			return set, false
		}
		set.Completed = true
		set.CompletedAt = &now
		return set, true
	})
}

// UncompleteSet reverts a completed set.
func (s *Store) UncompleteSet(exerciseID, setID string) bool {
	return s.mutateSet(exerciseID, setID, func(set models.Set) (models.Set, bool) {
		if !set.Completed {
			return set, false
		}
		set.Completed = false
		set.CompletedAt = nil
		return set, true
	})
}

// DeleteSet removes a set and renumbers the remaining ones 1..N.
func (s *Store) DeleteSet(exerciseID, setID string) bool {
	return s.mutateExercise(exerciseID, func(ex models.Exercise) (models.Exercise, bool) {
		sets := make([]models.Set, 0, len(ex.Sets))
		for _, set := range ex.Sets {
			if set.ID == setID {
				continue
			}
			set.SetNumber = len(sets) + 1
			sets = append(sets, set)
		}
		if len(sets) == len(ex.Sets) {
			return ex, false
		}
		ex.Sets = sets
		return ex, true
	})
}

func (s *Store) blankSet(number int) models.Set {
	return models.Set{ID: s.newID(), SetNumber: number}
}

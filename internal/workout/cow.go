package workout

import "github.com/claude/liftlog/internal/models"

// mutate applies fn to the active session and installs the result when fn
// reports a change.
func (s *Store) mutate(fn func(models.Workout) (models.Workout, bool)) bool {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.current == nil {
		return false
	}
	next, changed := fn(*s.current)
	if !changed {
		return false
	}
	s.current = &next
	return true
}

// mutateExercise replaces one exercise, copying the exercise slice.
func (s *Store) mutateExercise(exerciseID string, fn func(models.Exercise) (models.Exercise, bool)) bool {
	return s.mutate(func(w models.Workout) (models.Workout, bool) {
		for i, ex := range w.Exercises {
			if ex.ID != exerciseID {
				continue
			}
			updated, changed := fn(ex)
			if !changed {
				return w, false
			}
			exercises := make([]models.Exercise, len(w.Exercises))
			copy(exercises, w.Exercises)
			exercises[i] = updated
			w.Exercises = exercises
			return w, true
		}
		return w, false
	})
}

// mutateSet replaces one set, copying the set and exercise slices.
func (s *Store) mutateSet(exerciseID, setID string, fn func(models.Set) (models.Set, bool)) bool {
	return s.mutateExercise(exerciseID, func(ex models.Exercise) (models.Exercise, bool) {
		for i, set := range ex.Sets {
			if set.ID != setID {
				continue
			}
			updated, changed := fn(set)
			if !changed {
				return ex, false
			}
			sets := make([]models.Set, len(ex.Sets))
			copy(sets, ex.Sets)
			sets[i] = updated
			ex.Sets = sets
			return ex, true
		}
		return ex, false
	})
}

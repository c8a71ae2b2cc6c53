// Package stats derives totals from store snapshots. Nothing here is cached:
// stores replace their state wholesale, so callers recompute on every read.
package stats

import (
	"strings"
	"time"

	"github.com/claude/liftlog/internal/models"
)

// SetVolume returns weight × reps for one set, ignoring completion.
func SetVolume(s models.Set) float64 {
	return models.ParseAmount(s.Weight) * models.ParseAmount(s.Reps)
}

// Volume sums weight × reps over the completed sets.
func Volume(sets []models.Set) float64 {
	var total float64
	for _, s := range sets {
		if s.Completed {
			total += SetVolume(s)
		}
	}
	return total
}

// WorkoutVolume sums Volume over every exercise of w.
func WorkoutVolume(w models.Workout) float64 {
	var total float64
	for _, ex := range w.Exercises {
		total += Volume(ex.Sets)
	}
	return total
}

// Progress describes how far through a session the user is.
type Progress struct {
	CompletedSets int     `json:"completed_sets"`
	TotalSets     int     `json:"total_sets"`
	Percent       float64 `json:"percent"`
	Volume        float64 `json:"volume"`
}

// SessionProgress counts completed sets over all sets of w.
func SessionProgress(w models.Workout) Progress {
	var p Progress
	for _, ex := range w.Exercises {
		for _, s := range ex.Sets {
			p.TotalSets++
			if s.Completed {
				p.CompletedSets++
			}
		}
	}
	if p.TotalSets > 0 {
		p.Percent = float64(p.CompletedSets) / float64(p.TotalSets) * 100
	}
	p.Volume = WorkoutVolume(w)
	return p
}

// Summarize builds the history record for w ending at end. Only completed
// sets are kept; exercises without completed sets are kept with an empty set
// list so the record mirrors the session layout.
func Summarize(w models.Workout, id string, end time.Time) models.WorkoutHistory {
	h := models.WorkoutHistory{
		ID:          id,
		WorkoutName: w.Name,
		Date:        end,
		Duration:    int64(end.Sub(w.StartTime).Seconds()),
		Exercises:   make([]models.HistoryExercise, 0, len(w.Exercises)),
	}
	if h.Duration < 0 {
		h.Duration = 0
	}
	for _, ex := range w.Exercises {
		done := make([]models.Set, 0, len(ex.Sets))
		for _, s := range ex.Sets {
			h.TotalSets++
			if s.Completed {
				done = append(done, s)
			}
		}
		h.CompletedSets += len(done)
		h.TotalVolume += Volume(done)
		h.Exercises = append(h.Exercises, models.HistoryExercise{
			Name:        ex.Name,
			MuscleGroup: ex.MuscleGroup,
			Sets:        done,
		})
	}
	return h
}

// WeeklyStats aggregates the history entries of the trailing week.
type WeeklyStats struct {
	Workouts      int     `json:"workouts"`
	TotalVolume   float64 `json:"total_volume"`
	TotalDuration int64   `json:"total_duration_sec"`
	TotalSets     int     `json:"total_sets"`
}

// Weekly aggregates entries dated within the 7 days before now.
func Weekly(entries []models.WorkoutHistory, now time.Time) WeeklyStats {
	cutoff := now.AddDate(0, 0, -7)
	var ws WeeklyStats
	for _, h := range entries {
		if h.Date.Before(cutoff) {
			continue
		}
		ws.Workouts++
		ws.TotalVolume += h.TotalVolume
		ws.TotalDuration += h.Duration
		ws.TotalSets += h.CompletedSets
	}
	return ws
}

// PreviousExercise is the last recorded performance of an exercise.
type PreviousExercise struct {
	Date     time.Time              `json:"date"`
	Exercise models.HistoryExercise `json:"exercise"`
}

// LastPerformance returns the exercise from the most recent entry (entries
// are most recent first) containing an exercise named name. Names match
// case-insensitively.
func LastPerformance(entries []models.WorkoutHistory, name string) (PreviousExercise, bool) {
	name = strings.TrimSpace(name)
	for _, h := range entries {
		for _, ex := range h.Exercises {
			if strings.EqualFold(strings.TrimSpace(ex.Name), name) {
				return PreviousExercise{Date: h.Date, Exercise: ex}, true
			}
		}
	}
	return PreviousExercise{}, false
}

// Ghost holds placeholder values for a new set.
type Ghost struct {
	Weight string `json:"weight"`
	Reps   string `json:"reps"`
}

// GhostSet returns the previous weight and reps for the set at setNumber.
// When the previous session had fewer sets, the last one is used.
func GhostSet(entries []models.WorkoutHistory, name string, setNumber int) (Ghost, bool) {
	prev, ok := LastPerformance(entries, name)
	if !ok || len(prev.Exercise.Sets) == 0 {
		return Ghost{}, false
	}
	sets := prev.Exercise.Sets
	idx := setNumber - 1
	if idx < 0 {
		idx = 0
	}
	if idx >= len(sets) {
		idx = len(sets) - 1
	}
	return Ghost{Weight: sets[idx].Weight, Reps: sets[idx].Reps}, true
}

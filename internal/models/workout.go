package models

import "time"

// SetField names an editable text field of a Set.
type SetField string

const (
	SetFieldWeight SetField = "weight"
	SetFieldReps   SetField = "reps"
)

// Set is a single set inside a session exercise. Weight and reps are kept as
// the raw text the user typed and parsed lazily with ParseAmount.
type Set struct {
	ID          string     `json:"id"`
	SetNumber   int        `json:"set_number"`
	Weight      string     `json:"weight"`
	Reps        string     `json:"reps"`
	Completed   bool       `json:"completed"`
	CompletedAt *time.Time `json:"completed_at,omitempty"`
}

// Exercise is a session-scoped exercise owned by its Workout.
type Exercise struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	MuscleGroup string `json:"muscle_group"`
	Sets        []Set  `json:"sets"`
	Expanded    bool   `json:"expanded"`
}

// Workout is the in-progress session.
type Workout struct {
	ID         string     `json:"id"`
	Name       string     `json:"name"`
	TemplateID string     `json:"template_id,omitempty"`
	Exercises  []Exercise `json:"exercises"`
	StartTime  time.Time  `json:"start_time"`
}

// HistoryExercise is the completed-set snapshot of one exercise.
type HistoryExercise struct {
	Name        string `json:"name"`
	MuscleGroup string `json:"muscle_group"`
	Sets        []Set  `json:"sets"`
}

// WorkoutHistory is the immutable record written when a session ends.
type WorkoutHistory struct {
	ID            string            `json:"id"`
	WorkoutName   string            `json:"workout_name"`
	Date          time.Time         `json:"date"`
	Duration      int64             `json:"duration_sec"`
	Exercises     []HistoryExercise `json:"exercises"`
	TotalVolume   float64           `json:"total_volume"`
	CompletedSets int               `json:"completed_sets"`
	TotalSets     int               `json:"total_sets"`
}

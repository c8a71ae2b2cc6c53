package catalog

import "github.com/claude/liftlog/internal/models"

// defaultTemplates are built in and cannot be edited or deleted. They also
// back the fallback weekday schedule.
var defaultTemplates = []models.WorkoutTemplate{
	{
		ID:   "default-push",
		Name: "Push Day",
		Exercises: []models.TemplateExercise{
			{ID: "default-push-1", Name: "Bench Press", MuscleGroup: "Chest", Sets: 4},
			{ID: "default-push-2", Name: "Overhead Press", MuscleGroup: "Shoulders", Sets: 3},
			{ID: "default-push-3", Name: "Incline Dumbbell Press", MuscleGroup: "Chest", Sets: 3},
			{ID: "default-push-4", Name: "Triceps Pushdown", MuscleGroup: "Triceps", Sets: 3},
		},
	},
	{
		ID:   "default-pull",
		Name: "Pull Day",
		Exercises: []models.TemplateExercise{
			{ID: "default-pull-1", Name: "Deadlift", MuscleGroup: "Back", Sets: 3},
			{ID: "default-pull-2", Name: "Pull-ups", MuscleGroup: "Back", Sets: 4},
			{ID: "default-pull-3", Name: "Barbell Row", MuscleGroup: "Back", Sets: 3},
			{ID: "default-pull-4", Name: "Biceps Curl", MuscleGroup: "Biceps", Sets: 3},
		},
	},
	{
		ID:   "default-legs",
		Name: "Leg Day",
		Exercises: []models.TemplateExercise{
			{ID: "default-legs-1", Name: "Squat", MuscleGroup: "Legs", Sets: 4},
			{ID: "default-legs-2", Name: "Romanian Deadlift", MuscleGroup: "Hamstrings", Sets: 3},
			{ID: "default-legs-3", Name: "Leg Press", MuscleGroup: "Legs", Sets: 3},
			{ID: "default-legs-4", Name: "Standing Calf Raises", MuscleGroup: "Calves", Sets: 4},
		},
	},
	{
		ID:   "default-upper",
		Name: "Upper Body",
		Exercises: []models.TemplateExercise{
			{ID: "default-upper-1", Name: "Bench Press", MuscleGroup: "Chest", Sets: 3},
			{ID: "default-upper-2", Name: "Barbell Row", MuscleGroup: "Back", Sets: 3},
			{ID: "default-upper-3", Name: "Lateral Raises", MuscleGroup: "Shoulders", Sets: 3},
		},
	},
	{
		ID:   "default-full",
		Name: "Full Body",
		Exercises: []models.TemplateExercise{
			{ID: "default-full-1", Name: "Squat", MuscleGroup: "Legs", Sets: 3},
			{ID: "default-full-2", Name: "Bench Press", MuscleGroup: "Chest", Sets: 3},
			{ID: "default-full-3", Name: "Pull-ups", MuscleGroup: "Back", Sets: 3},
			{ID: "default-full-4", Name: "Plank", MuscleGroup: "Core", Sets: 3},
		},
	},
}

// Defaults returns a copy of the built-in templates.
func Defaults() []models.WorkoutTemplate {
	out := make([]models.WorkoutTemplate, len(defaultTemplates))
	for i, t := range defaultTemplates {
		out[i] = cloneTemplate(t)
	}
	return out
}

func isDefault(id string) bool {
	for _, t := range defaultTemplates {
		if t.ID == id {
			return true
		}
	}
	return false
}

func cloneTemplate(t models.WorkoutTemplate) models.WorkoutTemplate {
	t.Exercises = append([]models.TemplateExercise(nil), t.Exercises...)
	return t
}

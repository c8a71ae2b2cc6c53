package models

import "time"

// DaysPerWeek is the number of Day entries in a WeeklyProgram.
const DaysPerWeek = 7

// TemplateExercise is an exercise blueprint inside a template.
type TemplateExercise struct {
	ID          string `json:"id"`
	Name        string `json:"name"`
	MuscleGroup string `json:"muscle_group"`
	Sets        int    `json:"sets"`
}

// WorkoutTemplate is a reusable list of exercise blueprints.
type WorkoutTemplate struct {
	ID        string             `json:"id"`
	Name      string             `json:"name"`
	Exercises []TemplateExercise `json:"exercises"`
	IsCustom  bool               `json:"is_custom"`
	CreatedAt time.Time          `json:"created_at"`
	UpdatedAt time.Time          `json:"updated_at"`
}

// Day is one weekday slot of a program. Index follows time.Weekday
// (0 = Sunday).
type Day struct {
	Index        int    `json:"index"`
	TemplateID   string `json:"template_id,omitempty"`
	TemplateName string `json:"template_name,omitempty"`
	IsRest       bool   `json:"is_rest"`
}

// Assigned reports whether the day is bound to a template.
func (d Day) Assigned() bool {
	return !d.IsRest && d.TemplateID != ""
}

// WeeklyProgram maps weekdays to templates.
type WeeklyProgram struct {
	ID        string           `json:"id"`
	Name      string           `json:"name"`
	Days      [DaysPerWeek]Day `json:"days"`
	IsActive  bool             `json:"is_active"`
	CreatedAt time.Time        `json:"created_at"`
	UpdatedAt time.Time        `json:"updated_at"`
}

// EmptyWeek returns seven unassigned days with their indexes set.
func EmptyWeek() [DaysPerWeek]Day {
	var days [DaysPerWeek]Day
	for i := range days {
		days[i].Index = i
	}
	return days
}

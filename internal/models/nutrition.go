package models

import "time"

// DateLayout is the ISO calendar date used to key nutrition logs.
const DateLayout = "2006-01-02"

// DateKey formats t as a nutrition log key in t's location.
func DateKey(t time.Time) string {
	return t.Format(DateLayout)
}

// MealType tags a food entry with the meal it belongs to.
type MealType string

const (
	MealBreakfast MealType = "breakfast"
	MealLunch     MealType = "lunch"
	MealDinner    MealType = "dinner"
	MealSnack     MealType = "snack"
)

// Valid reports whether m is a known meal type.
func (m MealType) Valid() bool {
	switch m {
	case MealBreakfast, MealLunch, MealDinner, MealSnack:
		return true
	}
	return false
}

// FoodEntry is one logged food. Calories and macros are per serving and are
// scaled by Quantity when totals are computed.
type FoodEntry struct {
	ID          string    `json:"id"`
	Name        string    `json:"name"`
	Calories    float64   `json:"calories"`
	Protein     float64   `json:"protein"`
	Carbs       float64   `json:"carbs"`
	Fat         float64   `json:"fat"`
	ServingSize float64   `json:"serving_size"`
	ServingUnit string    `json:"serving_unit"`
	Quantity    float64   `json:"quantity"`
	MealType    MealType  `json:"meal_type"`
	Timestamp   time.Time `json:"timestamp"`
}

// Servings returns the quantity multiplier, treating an unset quantity as one.
func (e FoodEntry) Servings() float64 {
	if e.Quantity <= 0 {
		return 1
	}
	return e.Quantity
}

// DailyNutrition aggregates the entries of one calendar date.
type DailyNutrition struct {
	Date          string      `json:"date"`
	Entries       []FoodEntry `json:"entries"`
	TotalCalories float64     `json:"total_calories"`
	TotalProtein  float64     `json:"total_protein"`
	TotalCarbs    float64     `json:"total_carbs"`
	TotalFat      float64     `json:"total_fat"`
	WaterIntake   float64     `json:"water_intake_ml"`
}

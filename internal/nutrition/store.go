// Package nutrition keeps the per-day food and water log.
package nutrition

import (
	"log/slog"
	"sort"
	"sync"
	"time"

	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/storage"
	"github.com/google/uuid"
)

// Average is the mean daily intake over a window.
type Average struct {
	Calories float64 `json:"calories"`
	Protein  float64 `json:"protein"`
	Days     int     `json:"days"`
}

// Store holds one DailyNutrition per date. Totals are always recomputed from
// the entries, never adjusted incrementally.
type Store struct {
	mu     sync.RWMutex
	logs   []models.DailyNutrition
	syncer storage.Syncer
	log    *slog.Logger

	now   func() time.Time
	newID func() string
}

// New creates a Store from previously stored daily logs.
func New(logs []models.DailyNutrition, syncer storage.Syncer, log *slog.Logger) *Store {
	if syncer == nil {
		syncer = storage.NopSyncer{}
	}
	return &Store{
		logs:   logs,
		syncer: syncer,
		log:    log,
		now:    time.Now,
		newID:  uuid.NewString,
	}
}

// Logs returns every daily log. Callers must not modify it.
func (s *Store) Logs() []models.DailyNutrition {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.logs
}

// Day returns the log for date, or an empty log when nothing was recorded.
func (s *Store) Day(date string) models.DailyNutrition {
	s.mu.RLock()
	defer s.mu.RUnlock()
	if i := s.index(date); i >= 0 {
		return s.logs[i]
	}
	return models.DailyNutrition{Date: date, Entries: []models.FoodEntry{}}
}

// AddFoodEntry appends e to the log of date, creating the day if needed.
func (s *Store) AddFoodEntry(date string, e models.FoodEntry) models.FoodEntry {
	if e.ID == "" {
		e.ID = s.newID()
	}
	if e.Timestamp.IsZero() {
		e.Timestamp = s.now()
	}
	if !e.MealType.Valid() {
		e.MealType = models.MealSnack
	}
	s.update(date, func(d *models.DailyNutrition) bool {
		entries := make([]models.FoodEntry, 0, len(d.Entries)+1)
		entries = append(entries, d.Entries...)
		d.Entries = append(entries, e)
		return true
	})
	s.log.Debug("food entry added", "date", date, "id", e.ID, "name", e.Name)
	return e
}

// RemoveFoodEntry deletes an entry from the log of date.
func (s *Store) RemoveFoodEntry(date, entryID string) bool {
	return s.update(date, func(d *models.DailyNutrition) bool {
		entries := make([]models.FoodEntry, 0, len(d.Entries))
		for _, e := range d.Entries {
			if e.ID != entryID {
				entries = append(entries, e)
			}
		}
		if len(entries) == len(d.Entries) {
			return false
		}
		d.Entries = entries
		return true
	})
}

// UpdateWaterIntake adds delta millilitres to the water total of date. The
// total never drops below zero.
func (s *Store) UpdateWaterIntake(date string, delta float64) float64 {
	var total float64
	s.update(date, func(d *models.DailyNutrition) bool {
		d.WaterIntake = max(d.WaterIntake+delta, 0)
		total = d.WaterIntake
		return true
	})
	return total
}

// WeeklyAverage averages calories and protein over the logs dated within the
// last seven days, today included.
func (s *Store) WeeklyAverage(now time.Time) Average {
	logs := s.History(now, 7)
	if len(logs) == 0 {
		return Average{}
	}
	var avg Average
	for _, d := range logs {
		avg.Calories += d.TotalCalories
		avg.Protein += d.TotalProtein
	}
	avg.Days = len(logs)
	avg.Calories /= float64(len(logs))
	avg.Protein /= float64(len(logs))
	return avg
}

// History returns the logs dated on or after now minus days, newest first.
func (s *Store) History(now time.Time, days int) []models.DailyNutrition {
	cutoff := models.DateKey(now.AddDate(0, 0, -days))
	s.mu.RLock()
	out := make([]models.DailyNutrition, 0, len(s.logs))
	for _, d := range s.logs {
		// ISO dates compare correctly as strings.
		if d.Date >= cutoff {
			out = append(out, d)
		}
	}
	s.mu.RUnlock()
	sort.Slice(out, func(i, j int) bool { return out[i].Date > out[j].Date })
	return out
}

// update applies fn to a copy of the day and installs it with fresh totals.
func (s *Store) update(date string, fn func(*models.DailyNutrition) bool) bool {
	s.mu.Lock()
	defer s.mu.Unlock()

	i := s.index(date)
	day := models.DailyNutrition{Date: date}
	if i >= 0 {
		day = s.logs[i]
	}
	if !fn(&day) {
		return false
	}
	recompute(&day)

	var next []models.DailyNutrition
	if i >= 0 {
		next = make([]models.DailyNutrition, len(s.logs))
		copy(next, s.logs)
		next[i] = day
	} else {
		next = make([]models.DailyNutrition, 0, len(s.logs)+1)
		next = append(next, s.logs...)
		next = append(next, day)
	}
	s.logs = next
	s.syncer.Sync(storage.CollectionNutrition, s.logs)
	return true
}

func (s *Store) index(date string) int {
	for i, d := range s.logs {
		if d.Date == date {
			return i
		}
	}
	return -1
}

func recompute(d *models.DailyNutrition) {
	d.TotalCalories, d.TotalProtein, d.TotalCarbs, d.TotalFat = 0, 0, 0, 0
	for _, e := range d.Entries {
		q := e.Servings()
		d.TotalCalories += e.Calories * q
		d.TotalProtein += e.Protein * q
		d.TotalCarbs += e.Carbs * q
		d.TotalFat += e.Fat * q
	}
	if d.Entries == nil {
		d.Entries = []models.FoodEntry{}
	}
}

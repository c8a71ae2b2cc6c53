// Package catalog stores workout templates and weekly programs.
package catalog

import (
	"log/slog"
	"sync"
	"time"

	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/storage"
	"github.com/google/uuid"
)

// Catalog holds the built-in templates, the user's custom templates and the
// user's programs. Every mutation swaps in new slices and mirrors the changed
// collection through the syncer; lookups of unknown ids report false.
type Catalog struct {
	mu       sync.RWMutex
	custom   []models.WorkoutTemplate
	programs []models.WeeklyProgram
	syncer   storage.Syncer
	log      *slog.Logger

	now   func() time.Time
	newID func() string
}

// New creates a Catalog from previously stored custom templates and programs.
func New(custom []models.WorkoutTemplate, programs []models.WeeklyProgram, syncer storage.Syncer, log *slog.Logger) *Catalog {
	if syncer == nil {
		syncer = storage.NopSyncer{}
	}
	return &Catalog{
		custom:   custom,
		programs: programs,
		syncer:   syncer,
		log:      log,
		now:      time.Now,
		newID:    uuid.NewString,
	}
}

// Templates returns the built-in templates followed by the custom ones.
func (c *Catalog) Templates() []models.WorkoutTemplate {
	c.mu.RLock()
	defer c.mu.RUnlock()
	out := Defaults()
	return append(out, c.custom...)
}

// CustomTemplates returns the user-defined templates.
func (c *Catalog) CustomTemplates() []models.WorkoutTemplate {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.custom
}

// Template looks up a built-in or custom template.
func (c *Catalog) Template(id string) (models.WorkoutTemplate, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.template(id)
}

func (c *Catalog) template(id string) (models.WorkoutTemplate, bool) {
	for _, t := range defaultTemplates {
		if t.ID == id {
			return cloneTemplate(t), true
		}
	}
	for _, t := range c.custom {
		if t.ID == id {
			return t, true
		}
	}
	return models.WorkoutTemplate{}, false
}

// AddTemplate stores t as a custom template. Missing ids are generated.
func (c *Catalog) AddTemplate(t models.WorkoutTemplate) models.WorkoutTemplate {
	now := c.now()
	if t.ID == "" || isDefault(t.ID) {
		t.ID = c.newID()
	}
	t.IsCustom = true
	t.CreatedAt = now
	t.UpdatedAt = now
	t.Exercises = c.withIDs(t.Exercises, false)

	c.mu.Lock()
	defer c.mu.Unlock()
	next := make([]models.WorkoutTemplate, 0, len(c.custom)+1)
	next = append(next, c.custom...)
	c.custom = append(next, t)
	c.syncer.Sync(storage.CollectionTemplates, c.custom)
	c.log.Info("template added", "id", t.ID, "name", t.Name)
	return t
}

// UpdateTemplate replaces the name and exercises of a custom template.
// Program days bound to it pick up the new name.
func (c *Catalog) UpdateTemplate(t models.WorkoutTemplate) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := c.customIndex(t.ID)
	if idx < 0 {
		return false
	}
	updated := c.custom[idx]
	updated.Name = t.Name
	updated.Exercises = c.withIDs(t.Exercises, false)
	updated.UpdatedAt = c.now()

	next := make([]models.WorkoutTemplate, len(c.custom))
	copy(next, c.custom)
	next[idx] = updated
	c.custom = next
	c.syncer.Sync(storage.CollectionTemplates, c.custom)

	c.rewriteDays(func(d models.Day) (models.Day, bool) {
		if d.TemplateID != updated.ID || d.TemplateName == updated.Name {
			return d, false
		}
		d.TemplateName = updated.Name
		return d, true
	})
	return true
}

// DeleteTemplate removes a custom template. Program days bound to it become
// rest days.
func (c *Catalog) DeleteTemplate(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	idx := c.customIndex(id)
	if idx < 0 {
		return false
	}
	next := make([]models.WorkoutTemplate, 0, len(c.custom)-1)
	next = append(next, c.custom[:idx]...)
	next = append(next, c.custom[idx+1:]...)
	c.custom = next
	c.syncer.Sync(storage.CollectionTemplates, c.custom)

	c.rewriteDays(func(d models.Day) (models.Day, bool) {
		if d.TemplateID != id {
			return d, false
		}
		return restDay(d.Index), true
	})
	c.log.Info("template deleted", "id", id)
	return true
}

// DuplicateTemplate deep-copies a built-in or custom template into a new
// custom template with fresh ids.
func (c *Catalog) DuplicateTemplate(id string) (models.WorkoutTemplate, bool) {
	c.mu.RLock()
	src, ok := c.template(id)
	c.mu.RUnlock()
	if !ok {
		return models.WorkoutTemplate{}, false
	}
	dup := models.WorkoutTemplate{
		ID:        c.newID(),
		Name:      src.Name + " (Copy)",
		Exercises: c.withIDs(src.Exercises, true),
	}
	return c.AddTemplate(dup), true
}

// withIDs copies exercises, assigning ids to blueprints that lack one, or to
// all of them when fresh is set.
func (c *Catalog) withIDs(exercises []models.TemplateExercise, fresh bool) []models.TemplateExercise {
	out := make([]models.TemplateExercise, len(exercises))
	for i, ex := range exercises {
		if fresh || ex.ID == "" {
			ex.ID = c.newID()
		}
		out[i] = ex
	}
	return out
}

func (c *Catalog) customIndex(id string) int {
	for i, t := range c.custom {
		if t.ID == id {
			return i
		}
	}
	return -1
}

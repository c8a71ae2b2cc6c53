package catalog

import (
	"time"

	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/storage"
)

func restDay(index int) models.Day {
	return models.Day{Index: index, IsRest: true}
}

func validDay(day int) bool {
	return day >= 0 && day < models.DaysPerWeek
}

// Programs returns the user's programs.
func (c *Catalog) Programs() []models.WeeklyProgram {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.programs
}

// Program looks up a program by id.
func (c *Catalog) Program(id string) (models.WeeklyProgram, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, p := range c.programs {
		if p.ID == id {
			return p, true
		}
	}
	return models.WeeklyProgram{}, false
}

// ActiveProgram returns the program flagged active, if any.
func (c *Catalog) ActiveProgram() (models.WeeklyProgram, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, p := range c.programs {
		if p.IsActive {
			return p, true
		}
	}
	return models.WeeklyProgram{}, false
}

// AddProgram creates a program with seven unassigned days. The first program
// a user creates becomes active.
func (c *Catalog) AddProgram(name string) models.WeeklyProgram {
	now := c.now()
	p := models.WeeklyProgram{
		ID:        c.newID(),
		Name:      name,
		Days:      models.EmptyWeek(),
		CreatedAt: now,
		UpdatedAt: now,
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	p.IsActive = !c.hasActive()
	next := make([]models.WeeklyProgram, 0, len(c.programs)+1)
	next = append(next, c.programs...)
	c.programs = append(next, p)
	c.syncer.Sync(storage.CollectionPrograms, c.programs)
	c.log.Info("program added", "id", p.ID, "name", name, "active", p.IsActive)
	return p
}

// UpdateProgram replaces the name and days of a program. The active flag is
// only changed through SetActiveProgram.
func (c *Catalog) UpdateProgram(p models.WeeklyProgram) bool {
	return c.updateProgram(p.ID, func(cur *models.WeeklyProgram) bool {
		cur.Name = p.Name
		for i := range p.Days {
			d := p.Days[i]
			d.Index = i
			if d.IsRest {
				d = restDay(i)
			}
			cur.Days[i] = d
		}
		return true
	})
}

// DeleteProgram removes a program. When the active program is removed the
// first remaining one is activated.
func (c *Catalog) DeleteProgram(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	next := make([]models.WeeklyProgram, 0, len(c.programs))
	wasActive := false
	for _, p := range c.programs {
		if p.ID == id {
			wasActive = p.IsActive
			continue
		}
		next = append(next, p)
	}
	if len(next) == len(c.programs) {
		return false
	}
	if wasActive && len(next) > 0 {
		next[0].IsActive = true
		next[0].UpdatedAt = c.now()
	}
	c.programs = next
	c.syncer.Sync(storage.CollectionPrograms, c.programs)
	c.log.Info("program deleted", "id", id)
	return true
}

// SetActiveProgram activates id and deactivates every other program in the
// same step.
func (c *Catalog) SetActiveProgram(id string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	found := false
	for _, p := range c.programs {
		if p.ID == id {
			found = true
			break
		}
	}
	if !found {
		return false
	}

	now := c.now()
	next := make([]models.WeeklyProgram, len(c.programs))
	for i, p := range c.programs {
		active := p.ID == id
		if p.IsActive != active {
			p.IsActive = active
			p.UpdatedAt = now
		}
		next[i] = p
	}
	c.programs = next
	c.syncer.Sync(storage.CollectionPrograms, c.programs)
	c.log.Info("program activated", "id", id)
	return true
}

// AssignTemplate binds a template to a weekday of a program.
func (c *Catalog) AssignTemplate(programID string, day int, templateID string) bool {
	if !validDay(day) {
		return false
	}
	c.mu.RLock()
	t, ok := c.template(templateID)
	c.mu.RUnlock()
	if !ok {
		return false
	}
	return c.updateProgram(programID, func(p *models.WeeklyProgram) bool {
		p.Days[day] = models.Day{Index: day, TemplateID: t.ID, TemplateName: t.Name}
		return true
	})
}

// ClearDay removes the template of a weekday, making it a rest day.
func (c *Catalog) ClearDay(programID string, day int) bool {
	if !validDay(day) {
		return false
	}
	return c.updateProgram(programID, func(p *models.WeeklyProgram) bool {
		p.Days[day] = restDay(day)
		return true
	})
}

// ToggleRestDay flips the rest flag of a weekday. Marking a day as rest
// drops its template.
func (c *Catalog) ToggleRestDay(programID string, day int) bool {
	if !validDay(day) {
		return false
	}
	return c.updateProgram(programID, func(p *models.WeeklyProgram) bool {
		if p.Days[day].IsRest {
			p.Days[day] = models.Day{Index: day}
		} else {
			p.Days[day] = restDay(day)
		}
		return true
	})
}

// SwapDays exchanges the assignments of two weekdays.
func (c *Catalog) SwapDays(programID string, a, b int) bool {
	if !validDay(a) || !validDay(b) {
		return false
	}
	return c.updateProgram(programID, func(p *models.WeeklyProgram) bool {
		if a == b {
			return false
		}
		p.Days[a], p.Days[b] = p.Days[b], p.Days[a]
		p.Days[a].Index = a
		p.Days[b].Index = b
		return true
	})
}

// TodaysWorkout resolves the template scheduled for now's weekday. A rest day
// in the active program reports false. Without an active program, or when the
// day has no usable template, the built-in schedule is used.
func (c *Catalog) TodaysWorkout(now time.Time) (models.WorkoutTemplate, bool) {
	weekday := int(now.Weekday())

	c.mu.RLock()
	defer c.mu.RUnlock()
	for _, p := range c.programs {
		if !p.IsActive {
			continue
		}
		d := p.Days[weekday]
		if d.IsRest {
			return models.WorkoutTemplate{}, false
		}
		if d.Assigned() {
			if t, ok := c.template(d.TemplateID); ok {
				return t, true
			}
			c.log.Warn("program day references unknown template", "program", p.ID, "day", weekday, "template", d.TemplateID)
		}
		break
	}
	return cloneTemplate(defaultTemplates[weekday%len(defaultTemplates)]), true
}

// updateProgram applies fn to a copy of one program and installs it.
func (c *Catalog) updateProgram(id string, fn func(*models.WeeklyProgram) bool) bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	for i, p := range c.programs {
		if p.ID != id {
			continue
		}
		if !fn(&p) {
			return false
		}
		p.UpdatedAt = c.now()
		next := make([]models.WeeklyProgram, len(c.programs))
		copy(next, c.programs)
		next[i] = p
		c.programs = next
		c.syncer.Sync(storage.CollectionPrograms, c.programs)
		return true
	}
	return false
}

// rewriteDays applies fn to every day of every program. The caller holds mu.
func (c *Catalog) rewriteDays(fn func(models.Day) (models.Day, bool)) {
	changed := false
	now := c.now()
	next := make([]models.WeeklyProgram, len(c.programs))
	for i, p := range c.programs {
		for j, d := range p.Days {
			if nd, ok := fn(d); ok {
				p.Days[j] = nd
				p.UpdatedAt = now
				changed = true
			}
		}
		next[i] = p
	}
	if changed {
		c.programs = next
		c.syncer.Sync(storage.CollectionPrograms, c.programs)
	}
}

func (c *Catalog) hasActive() bool {
	for _, p := range c.programs {
		if p.IsActive {
			return true
		}
	}
	return false
}

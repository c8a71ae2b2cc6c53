package server

import (
	"net/http"

	"github.com/claude/liftlog/internal/models"
	"github.com/go-chi/chi/v5"
)

type programRequest struct {
	Name string                         `json:"name"`
	Days *[models.DaysPerWeek]models.Day `json:"days,omitempty"`
}

type assignRequest struct {
	TemplateID string `json:"template_id"`
}

type swapRequest struct {
	A int `json:"a"`
	B int `json:"b"`
}

func (s *Server) handleListTemplates(w http.ResponseWriter, r *http.Request) {
	if r.URL.Query().Get("custom") == "true" {
		writeJSON(w, http.StatusOK, s.app.Catalog.CustomTemplates())
		return
	}
	writeJSON(w, http.StatusOK, s.app.Catalog.Templates())
}

func (s *Server) handleGetTemplate(w http.ResponseWriter, r *http.Request) {
	t, ok := s.app.Catalog.Template(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "template not found")
		return
	}
	writeJSON(w, http.StatusOK, t)
}

func (s *Server) handleAddTemplate(w http.ResponseWriter, r *http.Request) {
	var t models.WorkoutTemplate
	if !decodeJSON(w, r, &t) {
		return
	}
	if t.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	t.ID = ""
	writeJSON(w, http.StatusCreated, s.app.Catalog.AddTemplate(t))
}

func (s *Server) handleUpdateTemplate(w http.ResponseWriter, r *http.Request) {
	var t models.WorkoutTemplate
	if !decodeJSON(w, r, &t) {
		return
	}
	t.ID = chi.URLParam(r, "id")
	if !s.app.Catalog.UpdateTemplate(t) {
		writeError(w, http.StatusNotFound, "custom template not found")
		return
	}
	updated, _ := s.app.Catalog.Template(t.ID)
	writeJSON(w, http.StatusOK, updated)
}

func (s *Server) handleDeleteTemplate(w http.ResponseWriter, r *http.Request) {
	if !s.app.Catalog.DeleteTemplate(chi.URLParam(r, "id")) {
		writeError(w, http.StatusNotFound, "custom template not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleDuplicateTemplate(w http.ResponseWriter, r *http.Request) {
	t, ok := s.app.Catalog.DuplicateTemplate(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "template not found")
		return
	}
	writeJSON(w, http.StatusCreated, t)
}

func (s *Server) handleListPrograms(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.app.Catalog.Programs())
}

func (s *Server) handleAddProgram(w http.ResponseWriter, r *http.Request) {
	var req programRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	writeJSON(w, http.StatusCreated, s.app.Catalog.AddProgram(req.Name))
}

func (s *Server) handleActiveProgram(w http.ResponseWriter, r *http.Request) {
	p, ok := s.app.Catalog.ActiveProgram()
	if !ok {
		writeError(w, http.StatusNotFound, "no active program")
		return
	}
	writeJSON(w, http.StatusOK, p)
}

func (s *Server) handleGetProgram(w http.ResponseWriter, r *http.Request) {
	s.respondProgram(w, chi.URLParam(r, "id"), true)
}

func (s *Server) handleUpdateProgram(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	cur, ok := s.app.Catalog.Program(id)
	if !ok {
		writeError(w, http.StatusNotFound, "program not found")
		return
	}
	var req programRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Name != "" {
		cur.Name = req.Name
	}
	if req.Days != nil {
		cur.Days = *req.Days
	}
	s.respondProgram(w, id, s.app.Catalog.UpdateProgram(cur))
}

func (s *Server) handleDeleteProgram(w http.ResponseWriter, r *http.Request) {
	if !s.app.Catalog.DeleteProgram(chi.URLParam(r, "id")) {
		writeError(w, http.StatusNotFound, "program not found")
		return
	}
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleActivateProgram(w http.ResponseWriter, r *http.Request) {
	id := chi.URLParam(r, "id")
	s.respondProgram(w, id, s.app.Catalog.SetActiveProgram(id))
}

func (s *Server) handleSwapDays(w http.ResponseWriter, r *http.Request) {
	var req swapRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	id := chi.URLParam(r, "id")
	s.respondProgram(w, id, s.app.Catalog.SwapDays(id, req.A, req.B))
}

func (s *Server) handleAssignDay(w http.ResponseWriter, r *http.Request) {
	day, ok := dayParam(w, r)
	if !ok {
		return
	}
	var req assignRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	id := chi.URLParam(r, "id")
	s.respondProgram(w, id, s.app.Catalog.AssignTemplate(id, day, req.TemplateID))
}

func (s *Server) handleClearDay(w http.ResponseWriter, r *http.Request) {
	day, ok := dayParam(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")
	s.respondProgram(w, id, s.app.Catalog.ClearDay(id, day))
}

func (s *Server) handleToggleRest(w http.ResponseWriter, r *http.Request) {
	day, ok := dayParam(w, r)
	if !ok {
		return
	}
	id := chi.URLParam(r, "id")
	s.respondProgram(w, id, s.app.Catalog.ToggleRestDay(id, day))
}

func (s *Server) handleToday(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.app.Today(s.now()))
}

// respondProgram writes the program after an edit. The catalog does not say
// why an edit was ignored, so a missing program is 404 and anything else 400.
func (s *Server) respondProgram(w http.ResponseWriter, id string, changed bool) {
	p, ok := s.app.Catalog.Program(id)
	switch {
	case !ok:
		writeError(w, http.StatusNotFound, "program not found")
	case !changed:
		writeError(w, http.StatusBadRequest, "program not changed")
	default:
		writeJSON(w, http.StatusOK, p)
	}
}

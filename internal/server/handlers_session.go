package server

import (
	"net/http"

	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/stats"
	"github.com/go-chi/chi/v5"
)

type startRequest struct {
	TemplateID string `json:"template_id"`
	Name       string `json:"name"`
}

type exerciseRequest struct {
	Name        string `json:"name"`
	MuscleGroup string `json:"muscle_group"`
}

type setUpdateRequest struct {
	Field models.SetField `json:"field"`
	Value string          `json:"value"`
}

func (s *Server) handleGetSession(w http.ResponseWriter, r *http.Request) {
	cur, ok := s.app.Session.Current()
	if !ok {
		writeError(w, http.StatusNotFound, "no active session")
		return
	}
	writeJSON(w, http.StatusOK, cur)
}

func (s *Server) handleStartSession(w http.ResponseWriter, r *http.Request) {
	var req startRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.TemplateID != "" {
		t, ok := s.app.Catalog.Template(req.TemplateID)
		if !ok {
			writeError(w, http.StatusNotFound, "template not found")
			return
		}
		writeJSON(w, http.StatusCreated, s.app.Session.StartFromTemplate(t))
		return
	}
	if req.Name == "" {
		req.Name = "Workout"
	}
	s.app.Session.Start(models.Workout{Name: req.Name, Exercises: []models.Exercise{}})
	cur, _ := s.app.Session.Current()
	writeJSON(w, http.StatusCreated, cur)
}

func (s *Server) handleStartToday(w http.ResponseWriter, r *http.Request) {
	wo, ok := s.app.StartToday(s.now())
	if !ok {
		writeError(w, http.StatusConflict, "today is a rest day")
		return
	}
	writeJSON(w, http.StatusCreated, wo)
}

func (s *Server) handleCancelSession(w http.ResponseWriter, r *http.Request) {
	s.app.Session.Cancel()
	w.WriteHeader(http.StatusNoContent)
}

func (s *Server) handleEndSession(w http.ResponseWriter, r *http.Request) {
	h, ok := s.app.Session.End()
	if !ok {
		writeError(w, http.StatusConflict, "no active session")
		return
	}
	writeJSON(w, http.StatusOK, h)
}

func (s *Server) handleSessionProgress(w http.ResponseWriter, r *http.Request) {
	cur, ok := s.app.Session.Current()
	if !ok {
		writeError(w, http.StatusNotFound, "no active session")
		return
	}
	writeJSON(w, http.StatusOK, stats.SessionProgress(cur))
}

func (s *Server) handleAddExercise(w http.ResponseWriter, r *http.Request) {
	var req exerciseRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	ex, ok := s.app.Session.AddExercise(req.Name, req.MuscleGroup)
	if !ok {
		writeError(w, http.StatusConflict, "no active session")
		return
	}
	writeJSON(w, http.StatusCreated, ex)
}

func (s *Server) handleRemoveExercise(w http.ResponseWriter, r *http.Request) {
	s.respondSession(w, s.app.Session.RemoveExercise(chi.URLParam(r, "exerciseID")))
}

func (s *Server) handleToggleExpand(w http.ResponseWriter, r *http.Request) {
	s.respondSession(w, s.app.Session.ToggleExpand(chi.URLParam(r, "exerciseID")))
}

func (s *Server) handleAddSet(w http.ResponseWriter, r *http.Request) {
	set, ok := s.app.Session.AddSet(chi.URLParam(r, "exerciseID"))
	if !ok {
		s.respondSession(w, false)
		return
	}
	writeJSON(w, http.StatusCreated, set)
}

func (s *Server) handleUpdateSet(w http.ResponseWriter, r *http.Request) {
	var req setUpdateRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	if req.Field != models.SetFieldWeight && req.Field != models.SetFieldReps {
		writeError(w, http.StatusBadRequest, "field must be weight or reps")
		return
	}
	ok := s.app.Session.UpdateSet(chi.URLParam(r, "exerciseID"), chi.URLParam(r, "setID"), req.Field, req.Value)
	s.respondSession(w, ok)
}

func (s *Server) handleDeleteSet(w http.ResponseWriter, r *http.Request) {
	s.respondSession(w, s.app.Session.DeleteSet(chi.URLParam(r, "exerciseID"), chi.URLParam(r, "setID")))
}

// Completion is idempotent, so an unchanged set still answers with the session.
func (s *Server) handleCompleteSet(w http.ResponseWriter, r *http.Request) {
	s.app.Session.CompleteSet(chi.URLParam(r, "exerciseID"), chi.URLParam(r, "setID"))
	s.respondSession(w, true)
}

func (s *Server) handleUncompleteSet(w http.ResponseWriter, r *http.Request) {
	s.app.Session.UncompleteSet(chi.URLParam(r, "exerciseID"), chi.URLParam(r, "setID"))
	s.respondSession(w, true)
}

// respondSession writes the current session after a mutation. changed is
// false when the store ignored the mutation.
func (s *Server) respondSession(w http.ResponseWriter, changed bool) {
	cur, active := s.app.Session.Current()
	switch {
	case !active:
		writeError(w, http.StatusConflict, "no active session")
	case !changed:
		writeError(w, http.StatusNotFound, "exercise or set not found")
	default:
		writeJSON(w, http.StatusOK, cur)
	}
}

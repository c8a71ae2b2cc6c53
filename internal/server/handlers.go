package server

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/stats"
	"github.com/go-chi/chi/v5"
)

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":  "ok",
		"session": s.app.Session.Active(),
	})
}

func (s *Server) handleListHistory(w http.ResponseWriter, r *http.Request) {
	entries := s.app.History.Entries()
	if limit := queryInt(r, "limit", 0); limit > 0 && limit < len(entries) {
		entries = entries[:limit]
	}
	writeJSON(w, http.StatusOK, entries)
}

func (s *Server) handleGetHistory(w http.ResponseWriter, r *http.Request) {
	h, ok := s.app.History.Get(chi.URLParam(r, "id"))
	if !ok {
		writeError(w, http.StatusNotFound, "workout not found")
		return
	}
	writeJSON(w, http.StatusOK, h)
}

func (s *Server) handleWeeklyStats(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, stats.Weekly(s.app.History.Entries(), s.now()))
}

func (s *Server) handlePreviousExercise(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("exercise")
	if name == "" {
		writeError(w, http.StatusBadRequest, "exercise parameter required")
		return
	}
	prev, ok := stats.LastPerformance(s.app.History.Entries(), name)
	if !ok {
		writeError(w, http.StatusNotFound, "no previous performance")
		return
	}
	writeJSON(w, http.StatusOK, prev)
}

func (s *Server) handleGhostSet(w http.ResponseWriter, r *http.Request) {
	name := r.URL.Query().Get("exercise")
	if name == "" {
		writeError(w, http.StatusBadRequest, "exercise parameter required")
		return
	}
	g, ok := stats.GhostSet(s.app.History.Entries(), name, queryInt(r, "set", 1))
	if !ok {
		writeError(w, http.StatusNotFound, "no previous performance")
		return
	}
	writeJSON(w, http.StatusOK, g)
}

func (s *Server) handleSyncStatus(w http.ResponseWriter, r *http.Request) {
	status, err := s.app.Status(r.Context())
	if err != nil {
		s.log.Error("sync status", "error", err)
		writeError(w, http.StatusInternalServerError, err.Error())
		return
	}
	writeJSON(w, http.StatusOK, status)
}

func (s *Server) handleSyncFlush(w http.ResponseWriter, r *http.Request) {
	if err := s.app.Flush(r.Context()); err != nil {
		writeError(w, http.StatusServiceUnavailable, err.Error())
		return
	}
	s.handleSyncStatus(w, r)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

// decodeJSON reads the request body into v. An empty body leaves v untouched.
func decodeJSON(w http.ResponseWriter, r *http.Request, v any) bool {
	err := json.NewDecoder(r.Body).Decode(v)
	if err == nil || errors.Is(err, io.EOF) {
		return true
	}
	writeError(w, http.StatusBadRequest, "invalid JSON: "+err.Error())
	return false
}

func queryInt(r *http.Request, name string, def int) int {
	if v := r.URL.Query().Get(name); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return def
}

// dateParam resolves the {date} URL parameter. "today" maps to the server's
// current date.
func (s *Server) dateParam(w http.ResponseWriter, r *http.Request) (string, bool) {
	v := chi.URLParam(r, "date")
	if v == "today" {
		return models.DateKey(s.now()), true
	}
	if _, err := time.Parse(models.DateLayout, v); err != nil {
		writeError(w, http.StatusBadRequest, "date must be YYYY-MM-DD")
		return "", false
	}
	return v, true
}

func dayParam(w http.ResponseWriter, r *http.Request) (int, bool) {
	day, err := strconv.Atoi(chi.URLParam(r, "day"))
	if err != nil || day < 0 || day >= models.DaysPerWeek {
		writeError(w, http.StatusBadRequest, "day must be 0 (Sunday) to 6 (Saturday)")
		return 0, false
	}
	return day, true
}

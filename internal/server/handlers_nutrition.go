package server

import (
	"net/http"

	"github.com/claude/liftlog/internal/models"
	"github.com/go-chi/chi/v5"
)

type waterRequest struct {
	DeltaML float64 `json:"delta_ml"`
}

func (s *Server) handleGetDay(w http.ResponseWriter, r *http.Request) {
	date, ok := s.dateParam(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, s.app.Nutrition.Day(date))
}

func (s *Server) handleAddFood(w http.ResponseWriter, r *http.Request) {
	date, ok := s.dateParam(w, r)
	if !ok {
		return
	}
	var e models.FoodEntry
	if !decodeJSON(w, r, &e) {
		return
	}
	if e.Name == "" {
		writeError(w, http.StatusBadRequest, "name is required")
		return
	}
	e.ID = ""
	writeJSON(w, http.StatusCreated, s.app.Nutrition.AddFoodEntry(date, e))
}

func (s *Server) handleRemoveFood(w http.ResponseWriter, r *http.Request) {
	date, ok := s.dateParam(w, r)
	if !ok {
		return
	}
	if !s.app.Nutrition.RemoveFoodEntry(date, chi.URLParam(r, "entryID")) {
		writeError(w, http.StatusNotFound, "entry not found")
		return
	}
	writeJSON(w, http.StatusOK, s.app.Nutrition.Day(date))
}

func (s *Server) handleWater(w http.ResponseWriter, r *http.Request) {
	date, ok := s.dateParam(w, r)
	if !ok {
		return
	}
	var req waterRequest
	if !decodeJSON(w, r, &req) {
		return
	}
	s.app.Nutrition.UpdateWaterIntake(date, req.DeltaML)
	writeJSON(w, http.StatusOK, s.app.Nutrition.Day(date))
}

func (s *Server) handleNutritionAverage(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, s.app.Nutrition.WeeklyAverage(s.now()))
}

func (s *Server) handleNutritionHistory(w http.ResponseWriter, r *http.Request) {
	days := queryInt(r, "days", 30)
	if days < 0 {
		days = 0
	}
	writeJSON(w, http.StatusOK, s.app.Nutrition.History(s.now(), days))
}

package server

import (
	"bytes"
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"testing"
	"time"

	"github.com/claude/liftlog/internal/app"
	"github.com/claude/liftlog/internal/models"
	"github.com/claude/liftlog/internal/stats"
	"github.com/claude/liftlog/internal/storage"
)

// wednesday is the fixed clock for handler tests.
var wednesday = time.Date(2026, 3, 4, 18, 0, 0, 0, time.UTC)

func newTestServer(t *testing.T, apiKey string) *Server {
	t.Helper()
	log := slog.New(slog.NewTextHandler(io.Discard, nil))
	a := app.New(context.Background(), storage.NewMemory(), app.Options{UserID: "u1", QueueSize: 64, SyncTimeout: time.Second}, log)
	t.Cleanup(a.Close)
	s := New(a, apiKey, log)
	s.now = func() time.Time { return wednesday }
	return s
}

func do(t *testing.T, s *Server, method, path string, body any) *httptest.ResponseRecorder {
	t.Helper()
	var r io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			t.Fatal(err)
		}
		r = bytes.NewReader(data)
	}
	req := httptest.NewRequest(method, path, r)
	rec := httptest.NewRecorder()
	s.ServeHTTP(rec, req)
	return rec
}

func decode[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	if err := json.NewDecoder(rec.Body).Decode(&v); err != nil {
		t.Fatalf("decode error: %v", err)
	}
	return v
}

// TestSessionFlow drives a workout from template to history over HTTP.
func TestSessionFlow(t *testing.T) {
	s := newTestServer(t, "")

	if rec := do(t, s, http.MethodGet, "/api/v1/session", nil); rec.Code != http.StatusNotFound {
		t.Fatalf("GET session with none = %d, want 404", rec.Code)
	}

	rec := do(t, s, http.MethodPost, "/api/v1/session", startRequest{TemplateID: "default-push"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("start = %d, want 201: %s", rec.Code, rec.Body)
	}
	w := decode[models.Workout](t, rec)
	if w.TemplateID != "default-push" || len(w.Exercises) == 0 {
		t.Fatalf("workout = %+v", w)
	}
	ex := w.Exercises[0]
	base := "/api/v1/session/exercises/" + ex.ID + "/sets/"

	for _, set := range ex.Sets[:2] {
		if rec := do(t, s, http.MethodPatch, base+set.ID, setUpdateRequest{Field: models.SetFieldWeight, Value: "10"}); rec.Code != http.StatusOK {
			t.Fatalf("update weight = %d: %s", rec.Code, rec.Body)
		}
		do(t, s, http.MethodPatch, base+set.ID, setUpdateRequest{Field: models.SetFieldReps, Value: "5"})
		if rec := do(t, s, http.MethodPost, base+set.ID+"/complete", nil); rec.Code != http.StatusOK {
			t.Fatalf("complete = %d", rec.Code)
		}
	}

	rec = do(t, s, http.MethodGet, "/api/v1/session/progress", nil)
	p := decode[stats.Progress](t, rec)
	if p.CompletedSets != 2 || p.Volume != 100 {
		t.Errorf("progress = %+v", p)
	}

	rec = do(t, s, http.MethodPost, "/api/v1/session/end", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("end = %d", rec.Code)
	}
	h := decode[models.WorkoutHistory](t, rec)
	if h.TotalVolume != 100 || h.CompletedSets != 2 {
		t.Errorf("history = %+v", h)
	}

	if rec := do(t, s, http.MethodPost, "/api/v1/session/end", nil); rec.Code != http.StatusConflict {
		t.Errorf("second end = %d, want 409", rec.Code)
	}
	if rec := do(t, s, http.MethodGet, "/api/v1/history/"+h.ID, nil); rec.Code != http.StatusOK {
		t.Errorf("history lookup = %d, want 200", rec.Code)
	}

	rec = do(t, s, http.MethodGet, "/api/v1/stats/ghost?exercise="+url.QueryEscape(ex.Name)+"&set=5", nil)
	g := decode[stats.Ghost](t, rec)
	if g.Weight != "10" || g.Reps != "5" {
		t.Errorf("ghost = %+v", g)
	}
}

// TestSessionErrors verifies status codes for missing sessions and ids.
func TestSessionErrors(t *testing.T) {
	s := newTestServer(t, "")

	if rec := do(t, s, http.MethodPost, "/api/v1/session/exercises", exerciseRequest{Name: "Dips"}); rec.Code != http.StatusConflict {
		t.Errorf("add exercise without session = %d, want 409", rec.Code)
	}
	if rec := do(t, s, http.MethodPost, "/api/v1/session", startRequest{TemplateID: "nope"}); rec.Code != http.StatusNotFound {
		t.Errorf("unknown template = %d, want 404", rec.Code)
	}

	do(t, s, http.MethodPost, "/api/v1/session", startRequest{Name: "Free"})
	if rec := do(t, s, http.MethodDelete, "/api/v1/session/exercises/missing", nil); rec.Code != http.StatusNotFound {
		t.Errorf("remove unknown exercise = %d, want 404", rec.Code)
	}

	rec := do(t, s, http.MethodPost, "/api/v1/session/exercises", exerciseRequest{Name: "Dips", MuscleGroup: "Chest"})
	ex := decode[models.Exercise](t, rec)
	if rec := do(t, s, http.MethodPatch, "/api/v1/session/exercises/"+ex.ID+"/sets/"+ex.Sets[0].ID, setUpdateRequest{Field: "tempo", Value: "3"}); rec.Code != http.StatusBadRequest {
		t.Errorf("unknown field = %d, want 400", rec.Code)
	}

	if rec := do(t, s, http.MethodDelete, "/api/v1/session", nil); rec.Code != http.StatusNoContent {
		t.Errorf("cancel = %d, want 204", rec.Code)
	}
	if s.app.History.Len() != 0 {
		t.Error("cancel must not record history")
	}
}

// TestProgramEndpoints verifies program editing and the today lookup.
func TestProgramEndpoints(t *testing.T) {
	s := newTestServer(t, "")

	rec := do(t, s, http.MethodPost, "/api/v1/programs", programRequest{Name: "PPL"})
	if rec.Code != http.StatusCreated {
		t.Fatalf("add program = %d", rec.Code)
	}
	p := decode[models.WeeklyProgram](t, rec)
	if !p.IsActive {
		t.Error("first program should be active")
	}

	day := "/api/v1/programs/" + p.ID + "/days/3"
	if rec := do(t, s, http.MethodPut, day, assignRequest{TemplateID: "default-legs"}); rec.Code != http.StatusOK {
		t.Fatalf("assign = %d: %s", rec.Code, rec.Body)
	}
	if rec := do(t, s, http.MethodPut, "/api/v1/programs/"+p.ID+"/days/9", assignRequest{TemplateID: "default-legs"}); rec.Code != http.StatusBadRequest {
		t.Errorf("bad day = %d, want 400", rec.Code)
	}

	rec = do(t, s, http.MethodGet, "/api/v1/today", nil)
	today := decode[app.Today](t, rec)
	if today.Rest || today.Template == nil || today.Template.ID != "default-legs" {
		t.Errorf("today = %+v", today)
	}

	do(t, s, http.MethodPost, day+"/rest", nil)
	rec = do(t, s, http.MethodGet, "/api/v1/today", nil)
	today = decode[app.Today](t, rec)
	if !today.Rest || today.Template != nil {
		t.Errorf("today = %+v, want rest", today)
	}
	if rec := do(t, s, http.MethodPost, "/api/v1/session/today", nil); rec.Code != http.StatusConflict {
		t.Errorf("start on rest day = %d, want 409", rec.Code)
	}

	rec = do(t, s, http.MethodPost, "/api/v1/programs", programRequest{Name: "Second"})
	second := decode[models.WeeklyProgram](t, rec)
	do(t, s, http.MethodPost, "/api/v1/programs/"+second.ID+"/activate", nil)
	rec = do(t, s, http.MethodGet, "/api/v1/programs/active", nil)
	if active := decode[models.WeeklyProgram](t, rec); active.ID != second.ID {
		t.Errorf("active = %s, want %s", active.ID, second.ID)
	}
}

// TestTemplateEndpoints verifies defaults are protected and duplicates are custom.
func TestTemplateEndpoints(t *testing.T) {
	s := newTestServer(t, "")

	if rec := do(t, s, http.MethodDelete, "/api/v1/templates/default-push", nil); rec.Code != http.StatusNotFound {
		t.Errorf("delete default = %d, want 404", rec.Code)
	}
	rec := do(t, s, http.MethodPost, "/api/v1/templates/default-push/duplicate", nil)
	if rec.Code != http.StatusCreated {
		t.Fatalf("duplicate = %d", rec.Code)
	}
	dup := decode[models.WorkoutTemplate](t, rec)
	if !dup.IsCustom || dup.Name != "Push Day (Copy)" {
		t.Errorf("dup = %+v", dup)
	}

	dup.Name = "My Push"
	rec = do(t, s, http.MethodPut, "/api/v1/templates/"+dup.ID, dup)
	if got := decode[models.WorkoutTemplate](t, rec); got.Name != "My Push" {
		t.Errorf("updated name = %q", got.Name)
	}

	rec = do(t, s, http.MethodGet, "/api/v1/templates?custom=true", nil)
	if list := decode[[]models.WorkoutTemplate](t, rec); len(list) != 1 {
		t.Errorf("custom templates = %d, want 1", len(list))
	}
	if rec := do(t, s, http.MethodDelete, "/api/v1/templates/"+dup.ID, nil); rec.Code != http.StatusNoContent {
		t.Errorf("delete custom = %d, want 204", rec.Code)
	}
}

// TestNutritionEndpoints verifies entries, water and the weekly average.
func TestNutritionEndpoints(t *testing.T) {
	s := newTestServer(t, "")

	rec := do(t, s, http.MethodPost, "/api/v1/nutrition/today/entries", models.FoodEntry{Name: "Oats", Calories: 100, Protein: 10})
	if rec.Code != http.StatusCreated {
		t.Fatalf("add food = %d: %s", rec.Code, rec.Body)
	}
	oats := decode[models.FoodEntry](t, rec)
	do(t, s, http.MethodPost, "/api/v1/nutrition/2026-03-04/entries", models.FoodEntry{Name: "Steak", Calories: 200, Protein: 40})

	rec = do(t, s, http.MethodGet, "/api/v1/nutrition/2026-03-04", nil)
	if d := decode[models.DailyNutrition](t, rec); d.TotalCalories != 300 {
		t.Errorf("total = %v, want 300", d.TotalCalories)
	}

	rec = do(t, s, http.MethodDelete, "/api/v1/nutrition/today/entries/"+oats.ID, nil)
	if d := decode[models.DailyNutrition](t, rec); d.TotalCalories != 200 {
		t.Errorf("after remove total = %v, want 200", d.TotalCalories)
	}

	rec = do(t, s, http.MethodPost, "/api/v1/nutrition/today/water", waterRequest{DeltaML: -50})
	if d := decode[models.DailyNutrition](t, rec); d.WaterIntake != 0 {
		t.Errorf("water = %v, want 0", d.WaterIntake)
	}

	rec = do(t, s, http.MethodGet, "/api/v1/nutrition/average", nil)
	avg := decode[map[string]float64](t, rec)
	if avg["calories"] != 200 || avg["protein"] != 40 {
		t.Errorf("average = %v", avg)
	}

	if rec := do(t, s, http.MethodGet, "/api/v1/nutrition/04-03-2026", nil); rec.Code != http.StatusBadRequest {
		t.Errorf("bad date = %d, want 400", rec.Code)
	}
}

// TestSyncStatus verifies flushed writes show up as stored documents.
func TestSyncStatus(t *testing.T) {
	s := newTestServer(t, "")
	do(t, s, http.MethodPost, "/api/v1/programs", programRequest{Name: "P"})

	rec := do(t, s, http.MethodPost, "/api/v1/sync/flush", nil)
	if rec.Code != http.StatusOK {
		t.Fatalf("flush = %d", rec.Code)
	}
	status := decode[app.SyncStatus](t, rec)
	if len(status.Documents) != 1 || status.Documents[0].Collection != storage.CollectionPrograms {
		t.Errorf("documents = %+v", status.Documents)
	}
	if status.Outbox.Completed != 1 {
		t.Errorf("completed = %d, want 1", status.Outbox.Completed)
	}
}

// TestAPIKeyRequired verifies the API is guarded when a key is configured
// while the health check stays open.
func TestAPIKeyRequired(t *testing.T) {
	s := newTestServer(t, "k")
	if rec := do(t, s, http.MethodGet, "/api/v1/templates", nil); rec.Code != http.StatusUnauthorized {
		t.Errorf("no key = %d, want 401", rec.Code)
	}
	if rec := do(t, s, http.MethodGet, "/healthz", nil); rec.Code != http.StatusOK {
		t.Errorf("healthz = %d, want 200", rec.Code)
	}
}

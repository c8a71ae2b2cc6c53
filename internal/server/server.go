package server

import (
	"log/slog"
	"net/http"
	"time"

	"github.com/claude/liftlog/internal/app"
	"github.com/go-chi/chi/v5"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	app    *app.App
	log    *slog.Logger
	apiKey string
	router chi.Router
	now    func() time.Time
}

// New creates a new Server with all routes configured. An empty apiKey
// leaves the API open (tsnet handles access).
func New(a *app.App, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		app:    a,
		log:    log,
		apiKey: apiKey,
		router: chi.NewRouter(),
		now:    time.Now,
	}
	s.routes()
	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// Mount attaches an extra handler, such as the MCP endpoint, under pattern.
// It is guarded by the same API key as the REST routes.
func (s *Server) Mount(pattern string, h http.Handler) {
	if s.apiKey != "" {
		h = APIKeyAuth(s.apiKey)(h)
	}
	s.router.Mount(pattern, h)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	s.router.Get("/healthz", s.handleHealth)

	s.router.Route("/api/v1", func(r chi.Router) {
		if s.apiKey != "" {
			r.Use(APIKeyAuth(s.apiKey))
		}

		r.Route("/session", func(r chi.Router) {
			r.Get("/", s.handleGetSession)
			r.Post("/", s.handleStartSession)
			r.Delete("/", s.handleCancelSession)
			r.Post("/today", s.handleStartToday)
			r.Post("/end", s.handleEndSession)
			r.Get("/progress", s.handleSessionProgress)

			r.Post("/exercises", s.handleAddExercise)
			r.Route("/exercises/{exerciseID}", func(r chi.Router) {
				r.Delete("/", s.handleRemoveExercise)
				r.Post("/toggle", s.handleToggleExpand)
				r.Post("/sets", s.handleAddSet)
				r.Patch("/sets/{setID}", s.handleUpdateSet)
				r.Delete("/sets/{setID}", s.handleDeleteSet)
				r.Post("/sets/{setID}/complete", s.handleCompleteSet)
				r.Delete("/sets/{setID}/complete", s.handleUncompleteSet)
			})
		})

		r.Route("/templates", func(r chi.Router) {
			r.Get("/", s.handleListTemplates)
			r.Post("/", s.handleAddTemplate)
			r.Get("/{id}", s.handleGetTemplate)
			r.Put("/{id}", s.handleUpdateTemplate)
			r.Delete("/{id}", s.handleDeleteTemplate)
			r.Post("/{id}/duplicate", s.handleDuplicateTemplate)
		})

		r.Route("/programs", func(r chi.Router) {
			r.Get("/", s.handleListPrograms)
			r.Post("/", s.handleAddProgram)
			r.Get("/active", s.handleActiveProgram)
			r.Get("/{id}", s.handleGetProgram)
			r.Put("/{id}", s.handleUpdateProgram)
			r.Delete("/{id}", s.handleDeleteProgram)
			r.Post("/{id}/activate", s.handleActivateProgram)
			r.Post("/{id}/swap", s.handleSwapDays)
			r.Put("/{id}/days/{day}", s.handleAssignDay)
			r.Delete("/{id}/days/{day}", s.handleClearDay)
			r.Post("/{id}/days/{day}/rest", s.handleToggleRest)
		})

		r.Get("/today", s.handleToday)

		r.Get("/history", s.handleListHistory)
		r.Get("/history/{id}", s.handleGetHistory)

		r.Get("/stats/weekly", s.handleWeeklyStats)
		r.Get("/stats/previous", s.handlePreviousExercise)
		r.Get("/stats/ghost", s.handleGhostSet)

		r.Route("/nutrition", func(r chi.Router) {
			r.Get("/average", s.handleNutritionAverage)
			r.Get("/history", s.handleNutritionHistory)
			r.Get("/{date}", s.handleGetDay)
			r.Post("/{date}/entries", s.handleAddFood)
			r.Delete("/{date}/entries/{entryID}", s.handleRemoveFood)
			r.Post("/{date}/water", s.handleWater)
		})

		r.Get("/sync/status", s.handleSyncStatus)
		r.Post("/sync/flush", s.handleSyncFlush)
	})
}

package server

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimw "github.com/go-chi/chi/v5/middleware"

	"github.com/skillora/skillora/internal/authtoken"
	"github.com/skillora/skillora/internal/categorize"
	"github.com/skillora/skillora/internal/config"
	"github.com/skillora/skillora/internal/handler"
	"github.com/skillora/skillora/internal/learningpath"
	"github.com/skillora/skillora/internal/ledger"
	"github.com/skillora/skillora/internal/middleware"
	"github.com/skillora/skillora/internal/projectideas"
	"github.com/skillora/skillora/internal/repository"
	"github.com/skillora/skillora/internal/session"
	"github.com/skillora/skillora/internal/videosource"
	"github.com/skillora/skillora/internal/worker"
)

// Deps are the wired components the HTTP surface is built from.
// Source and RateLimiter may be nil when the matching configuration
// is absent.
type Deps struct {
	Config      *config.Config
	Sessions    *session.Store
	Verifier    *authtoken.Verifier
	Source      videosource.Source
	Categorizer *categorize.Categorizer
	Paths       *learningpath.Generator
	Ideas       *projectideas.Generator
	Ledger      *ledger.Ledger
	Profiles    *repository.ProfileRepository
	History     *repository.HistoryRepository
	PathRepo    *repository.PathRepository
	Projects    *repository.ProjectRepository
	RateLimiter *middleware.RateLimiter
	Reconciler  *worker.Worker
}

// Server represents the HTTP server
type Server struct {
	deps Deps
}

// New creates a new Server
func New(deps Deps) *Server {
	return &Server{deps: deps}
}

// Router returns the configured chi router
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	// Middleware
	r.Use(chimw.RequestID)
	r.Use(chimw.RealIP)
	r.Use(middleware.Logger)
	r.Use(chimw.Recoverer)

	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	// Provider-calling endpoints get a rate limit when Redis is
	// configured; everything else runs unlimited.
	limit := func(name string, n int, window time.Duration) func(http.Handler) http.Handler {
		if s.deps.RateLimiter == nil {
			return middleware.Passthrough()
		}
		return s.deps.RateLimiter.Limit(name, n, window)
	}

	// Session exchange
	authHandler := handler.NewAuthHandler(s.deps.Verifier, s.deps.Sessions, s.deps.Profiles)
	r.Post("/api/auth/session", authHandler.CreateSession)
	r.Delete("/api/auth/session", authHandler.DeleteSession)

	// Admin
	adminHandler := handler.NewAdminHandler(s.deps.Config.AdminKeyHash, s.deps.Reconciler)
	r.Post("/admin/reconcile", adminHandler.Reconcile)

	// Protected routes
	r.Group(func(r chi.Router) {
		r.Use(middleware.Auth(s.deps.Sessions))

		searchHandler := handler.NewSearchHandler(s.deps.Source, s.deps.Categorizer, s.deps.History)
		r.With(limit("search", 10, time.Minute)).Get("/api/search", searchHandler.Search)

		historyHandler := handler.NewHistoryHandler(s.deps.History)
		r.Get("/api/history", historyHandler.List)
		r.Patch("/api/history/{topic}/videos/{videoID}", historyHandler.SetWatched)

		pathHandler := handler.NewLearningPathHandler(s.deps.Paths, s.deps.PathRepo)
		r.With(limit("learning-paths", 5, time.Minute)).Post("/api/learning-paths", pathHandler.Create)
		r.Get("/api/learning-paths", pathHandler.List)
		r.Get("/api/learning-paths/{id}", pathHandler.Get)
		r.Put("/api/learning-paths/{id}", pathHandler.Update)
		r.Delete("/api/learning-paths/{id}", pathHandler.Delete)

		ideasHandler := handler.NewIdeasHandler(s.deps.Ideas)
		r.With(limit("project-ideas", 10, time.Minute)).Get("/api/project-ideas", ideasHandler.List)

		projectHandler := handler.NewProjectHandler(s.deps.Projects, s.deps.Ledger)
		r.Post("/api/projects", projectHandler.Create)
		r.Get("/api/projects", projectHandler.List)
		r.Get("/api/projects/{id}", projectHandler.Get)
		r.Put("/api/projects/{id}", projectHandler.Update)
		r.Delete("/api/projects/{id}", projectHandler.Delete)

		profileHandler := handler.NewProfileHandler(s.deps.Profiles)
		r.Get("/api/profile", profileHandler.Get)
	})

	return r
}

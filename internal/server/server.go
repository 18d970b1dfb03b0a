package server

import (
	"log"
	"net/http"

	"github.com/alfagnish/users-api/internal/config"
	"github.com/alfagnish/users-api/internal/events"
	"github.com/alfagnish/users-api/internal/handlers"
	mw "github.com/alfagnish/users-api/internal/middleware"
	"github.com/alfagnish/users-api/internal/users"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
)

// New creates a fully-configured chi router with all route groups,
// middleware, and handlers wired together.
func New(cfg *config.Config, repo *users.Repository, hub *events.Hub, logger *log.Logger) http.Handler {
	r := chi.NewRouter()

	// ── Middleware ───────────────────────────────────────────
	r.Use(cors.Handler(cors.Options{
		AllowedOrigins: cfg.AllowedOrigins,
		AllowedMethods: []string{"GET", "POST", "PUT", "DELETE", "PATCH", "OPTIONS"},
		AllowedHeaders: []string{"*"},
		ExposedHeaders: []string{mw.HeaderRequestID},
		MaxAge:         300,
	}))
	r.Use(mw.RequestID)
	r.Use(mw.RequestLogger(logger))
	r.Use(mw.Recoverer(logger, http.HandlerFunc(handlers.InternalError)))
	r.Use(middleware.RealIP)

	// Set before any Route call so sub-routers inherit them.
	r.NotFound(handlers.NotFound)
	r.MethodNotAllowed(handlers.MethodNotAllowed)

	// ── Handlers ────────────────────────────────────────────
	healthH := handlers.NewHealthHandler()
	usersH := handlers.NewUsersHandler(repo, hub)
	wsH := handlers.NewWSHandler(hub)

	// ── Route groups ────────────────────────────────────────
	r.Route("/health", healthH.Routes)
	r.Route("/api/health", healthH.Routes)

	r.Route("/api/users", func(r chi.Router) {
		r.Get("/ws", wsH.HandleWS)
		usersH.Routes(r)
	})

	return r
}

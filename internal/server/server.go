package server

import (
	"context"
	"io"
	"log/slog"
	"net/http"

	"github.com/claude/liftlog/internal/ingest"
	"github.com/claude/liftlog/internal/workout"
	"github.com/go-chi/chi/v5"
	"tailscale.com/client/local"
)

// UserDirectory resolves a login name to a user id, creating the user on
// first sight. Implemented by storage.DB.
type UserDirectory interface {
	GetOrCreateUser(ctx context.Context, login, displayName string) (int, error)
}

// Importer ingests an exported-session document on behalf of a user.
type Importer interface {
	Ingest(ctx context.Context, r io.Reader, userID int) (*ingest.Result, error)
}

// Server holds dependencies for HTTP handlers.
type Server struct {
	svc      *workout.Service
	users    UserDirectory
	importer Importer
	log      *slog.Logger
	apiKey   string
	router   chi.Router
	lc       *local.Client
}

// New creates a new Server with all routes configured.
func New(svc *workout.Service, users UserDirectory, importer Importer, apiKey string, log *slog.Logger) *Server {
	s := &Server{
		svc:      svc,
		users:    users,
		importer: importer,
		log:      log,
		apiKey:   apiKey,
		router:   chi.NewRouter(),
	}
	s.routes()
	return s
}

// SetTailscale wires the tsnet local client used to resolve request identity.
// Without it, identity falls back to the dev login header.
func (s *Server) SetTailscale(lc *local.Client) {
	s.lc = lc
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) routes() {
	s.router.Use(RequestLogging(s.log))
	s.router.Use(CORS)

	s.router.Route("/api/v1", func(r chi.Router) {
		r.Use(s.Identity)

		// Bulk import (API key required on top of identity)
		r.Group(func(r chi.Router) {
			r.Use(APIKeyAuth(s.apiKey))
			r.Post("/import", s.handleImport)
		})

		r.Get("/me", s.handleMe)
		r.Get("/units", s.handleUnits)

		r.Route("/routines", func(r chi.Router) {
			r.Get("/", s.handleListRoutines)
			r.Post("/", s.handleCreateRoutine)
			r.Get("/{id}", s.handleGetRoutine)
			r.Patch("/{id}", s.handleUpdateRoutine)
			r.Delete("/{id}", s.handleDeleteRoutine)
		})

		r.Route("/days", func(r chi.Router) {
			r.Post("/", s.handleCreateRoutineDay)
			r.Get("/{id}", s.handleGetRoutineDay)
			r.Patch("/{id}", s.handleUpdateRoutineDay)
			r.Delete("/{id}", s.handleDeleteRoutineDay)
		})

		r.Route("/sessions", func(r chi.Router) {
			r.Get("/", s.handleListSessions)
			r.Post("/", s.handleCreateSession)
			r.Get("/current", s.handleCurrentSession)
			r.Get("/{id}", s.handleGetSession)
			r.Patch("/{id}", s.handleUpdateSession)
			r.Delete("/{id}", s.handleDeleteSession)
		})

		r.Route("/setgroups", func(r chi.Router) {
			r.Post("/", s.handleCreateSetGroup)
			r.Post("/reorder", s.handleReorderSetGroups)
			r.Put("/{id}/comment", s.handleSetGroupComment)
			r.Post("/{id}/bulkedit", s.handleBulkEditSets)
			r.Delete("/{id}", s.handleDeleteSetGroup)
		})

		r.Route("/sets", func(r chi.Router) {
			r.Post("/", s.handleCreateSet)
			r.Post("/reorder", s.handleReorderSets)
			r.Patch("/{id}", s.handleUpdateSet)
			r.Delete("/{id}", s.handleDeleteSet)
		})
	})
}

package server

import (
	"context"
	"database/sql"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/notehub/apiserver/config"
	"github.com/notehub/apiserver/internal/db"
	"github.com/notehub/apiserver/internal/handlers"
	"github.com/notehub/apiserver/internal/services"
	"github.com/notehub/apiserver/internal/store"
)

const sessionPurgeInterval = time.Hour

// Server wraps the HTTP server and router.
type Server struct {
	httpServer *http.Server
	router     *chi.Mux
	db         *sql.DB
	sessions   *services.SessionService
	stopPurge  context.CancelFunc
}

// New constructs a Server with basic middleware and defaults.
func New(ctx context.Context, cfg config.Config) (*Server, error) {
	dbConn, err := db.Open(ctx, cfg)
	if err != nil {
		return nil, err
	}

	userRepo := store.NewUserRepository(dbConn)
	sessionRepo := store.NewSessionRepository(dbConn)
	noteRepo := store.NewNoteRepository(dbConn)

	userService := services.NewUserService(userRepo)
	sessionService := services.NewSessionService(sessionRepo, cfg.SessionTTL)
	noteService := services.NewNoteService(noteRepo)

	authMiddleware := handlers.RequireSession(sessionService)

	router := chi.NewRouter()
	router.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Recoverer,
		middleware.Logger,
		middleware.Timeout(60*time.Second),
	)
	router.Get("/healthz", handlers.Healthz)
	router.Route("/auth", func(r chi.Router) {
		handlers.AuthRouter(r, userService, sessionService, authMiddleware)
	})
	router.Route("/notes", func(r chi.Router) {
		handlers.NoteRouter(r, noteService, authMiddleware)
	})

	port := cfg.ServerPort
	if port == 0 {
		port = 8080
	}

	httpServer := &http.Server{
		Addr:         fmt.Sprintf(":%d", port),
		Handler:      router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return &Server{
		httpServer: httpServer,
		router:     router,
		db:         dbConn,
		sessions:   sessionService,
	}, nil
}

// Router exposes the chi router for route registration.
func (s *Server) Router() *chi.Mux {
	return s.router
}

// Start runs the HTTP server and the periodic purge of expired
// sessions.
func (s *Server) Start() error {
	purgeCtx, cancel := context.WithCancel(context.Background())
	s.stopPurge = cancel
	go s.purgeLoop(purgeCtx)

	return s.httpServer.ListenAndServe()
}

// purgeLoop removes expired session rows so the table does not grow
// unbounded. Expired sessions are already invalid before removal.
func (s *Server) purgeLoop(ctx context.Context) {
	ticker := time.NewTicker(sessionPurgeInterval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			return
		case <-ticker.C:
			_, _ = s.sessions.PurgeExpired(ctx)
		}
	}
}

// Shutdown attempts a graceful shutdown.
func (s *Server) Shutdown() error {
	if s.stopPurge != nil {
		s.stopPurge()
	}
	if s.db != nil {
		_ = s.db.Close()
	}
	return s.httpServer.Close()
}

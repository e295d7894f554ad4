package api

import (
	"net/http"
	"time"

	"smartnotes/internal/api/handler"
	"smartnotes/internal/api/middleware"
	"smartnotes/internal/app/service"
	"smartnotes/internal/common/security"
	"smartnotes/internal/domain/repository"

	"github.com/go-chi/chi/v5"
	chiMiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/jwtauth/v5"
)

func NewRouter(
	authService *service.AuthService,
	noteService *service.NoteService,
	sessions repository.SessionStore,
) http.Handler {
	r := chi.NewRouter()

	// Base Middlewares
	r.Use(chiMiddleware.RequestID)
	r.Use(chiMiddleware.RealIP)
	r.Use(chiMiddleware.Logger) // Chi's logger
	r.Use(chiMiddleware.Recoverer)
	r.Use(chiMiddleware.Timeout(60 * time.Second))

	// JWT Auth Middleware Setup
	// It will search for a token in "Authorization: Bearer T".
	r.Use(jwtauth.Verifier(security.TokenAuth)) // Verifies token, puts claims in context

	// Public health check
	r.Get("/health", func(w http.ResponseWriter, r *http.Request) {
		w.Write([]byte("OK"))
	})

	// API v1 Routes
	r.Route("/api/v1", func(v1 chi.Router) {
		// Auth routes (public)
		authHandler := handler.NewAuthHandler(authService)
		v1.Group(func(publicAuth chi.Router) {
			authHandler.RegisterRoutes(publicAuth)
		})

		// Session routes for the cookie-based web path (public)
		sessionHandler := handler.NewSessionHandler(authService)
		v1.Route("/session", sessionHandler.RegisterRoutes)

		// Note routes (bearer token required)
		noteHandler := handler.NewNoteHandler(noteService)
		v1.Route("/notes", noteHandler.RegisterRoutes)

		// The same note list behind the session cookie, for web clients
		v1.Group(func(web chi.Router) {
			web.Use(middleware.SessionAuthenticator(sessions))
			web.Get("/web/notes", noteHandler.ListNotesWeb)
		})
	})

	return r
}

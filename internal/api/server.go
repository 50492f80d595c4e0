// Package api provides the HTTP API server and handlers for the Book Space application.
package api

import (
	"log/slog"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"

	"github.com/bookspace/bookspace-server/internal/http/response"
	"github.com/bookspace/bookspace-server/internal/ratelimit"
	"github.com/bookspace/bookspace-server/internal/store"
)

// Server holds dependencies for HTTP handlers.
type Server struct {
	store       *store.Store
	services    Services
	authLimiter *ratelimit.KeyedRateLimiter
	serverName  string
	router      *chi.Mux
	logger      *slog.Logger
}

// NewServer creates a new HTTP server with all routes configured.
// authLimiter throttles the public auth endpoints per client IP; pass nil to
// disable rate limiting (tests).
func NewServer(store *store.Store, services Services, authLimiter *ratelimit.KeyedRateLimiter, serverName string, logger *slog.Logger) *Server {
	s := &Server{
		store:       store,
		services:    services,
		authLimiter: authLimiter,
		serverName:  serverName,
		router:      chi.NewRouter(),
		logger:      logger,
	}

	s.setupMiddleware()
	s.setupRoutes()

	return s
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// setupMiddleware configures the middleware stack.
func (s *Server) setupMiddleware() {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(middleware.Logger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Compress(5))
	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "PATCH", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		AllowCredentials: false,
		MaxAge:           300,
	}))
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	// Health check.
	s.router.Get("/health", s.handleHealthCheck)

	// API v1.
	s.router.Route("/api/v1", func(r chi.Router) {
		// Auth endpoints (public, rate limited per IP).
		r.Route("/auth", func(r chi.Router) {
			if s.authLimiter != nil {
				r.Use(rateLimitMiddleware(s.authLimiter, s.logger))
			}
			r.Post("/register", s.handleRegister)
			r.Post("/login", s.handleLogin)
		})

		// Current user.
		r.Route("/users/me", func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Get("/", s.handleGetCurrentUser)
			r.Get("/reviews", s.handleGetMyReviews)
		})

		// Catalog browsing and discovery.
		r.Route("/books", func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Get("/", s.handleListBooks)
			r.Post("/", s.handleCreateBook)
			r.Get("/search", s.handleSearchBooks)
			r.Get("/random", s.handleRandomBooks)
			r.Get("/popular", s.handlePopularBooks)
			r.Get("/moods", s.handleBooksByMoods)
			r.Get("/{id}", s.handleGetBook)
			r.Delete("/{id}", s.handleDeleteBook)
			r.Get("/{id}/recommendations", s.handleGetRecommendations)
			r.Get("/{id}/reviews", s.handleGetBookReviews)
			r.Post("/{id}/bookmark", s.handleBookmark)
			r.Post("/{id}/sessions", s.handleSaveSession)
		})

		// Collection.
		r.Route("/collection", func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Get("/", s.handleGetCollection)
		})

		// Reading goal (one per user).
		r.Route("/goal", func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Put("/", s.handleSetGoal)
			r.Get("/", s.handleGetGoal)
			r.Delete("/", s.handleDeleteGoal)
		})

		// Reviews.
		r.Route("/reviews", func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Post("/", s.handleCreateReview)
			r.Patch("/{id}", s.handleUpdateReview)
			r.Delete("/{id}", s.handleDeleteReview)
		})

		// Insights.
		r.Route("/insights", func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Get("/", s.handleGetInsights)
		})
	})
}

// handleHealthCheck returns server health status.
func (s *Server) handleHealthCheck(w http.ResponseWriter, _ *http.Request) {
	response.Success(w, map[string]string{
		"status": "healthy",
		"name":   s.serverName,
	}, s.logger)
}

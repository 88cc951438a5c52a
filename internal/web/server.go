// Package web provides the HTTP server and JSON handlers for the
// calculation service.
package web

import (
	"context"
	"net/http"

	"tanihitung/internal/auth"
	"tanihitung/internal/config"
	"tanihitung/internal/metrics"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
)

// Server is the HTTP server for the calculation service.
type Server struct {
	users       UserStore
	calculators CalculatorStore
	results     ResultStore
	tokens      *auth.TokenIssuer
	bcryptCost  int
	router      *chi.Mux
	server      *http.Server
}

// NewServer creates a new Server instance.
func NewServer(stores Stores, tokens *auth.TokenIssuer, cfg *config.Config) *Server {
	s := &Server{
		users:       stores.Users,
		calculators: stores.Calculators,
		results:     stores.Results,
		tokens:      tokens,
		bcryptCost:  cfg.Auth.BcryptCost,
		router:      chi.NewRouter(),
	}
	s.server = &http.Server{
		Addr:         cfg.Server.Addr(),
		Handler:      s.router,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
		IdleTimeout:  cfg.Server.IdleTimeout,
	}
	s.setupMiddleware(cfg)
	s.setupRoutes()
	return s
}

// setupMiddleware configures middleware for all routes.
func (s *Server) setupMiddleware(cfg *config.Config) {
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(requestLogger)
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.Timeout(cfg.Server.RequestTimeout))
	s.router.Use(securityHeaders)
}

// setupRoutes configures all HTTP routes.
func (s *Server) setupRoutes() {
	s.router.Get("/healthz", s.handleHealth)
	s.router.Handle("/metrics", metrics.Handler())

	s.router.Route("/api", func(r chi.Router) {
		r.Post("/register", s.handleRegister)
		r.Post("/login", s.handleLogin)

		r.Get("/calculators", s.handleListCalculators)
		r.Post("/calculators", s.handleCreateCalculator)
		r.Get("/calculators/{slug}", s.handleCalculatorBySlug)

		// Calculations need no account; saving them does.
		r.Post("/calculate", s.handleCalculate)

		r.Group(func(r chi.Router) {
			r.Use(s.requireAuth)
			r.Post("/results", s.handleSaveResult)
			r.Get("/results", s.handleHistory)
			r.Delete("/results/{id}", s.handleDeleteResult)
			r.Get("/export/history.csv", s.handleExportHistory)
		})
	})
}

// Handler exposes the router, primarily for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Start begins listening. Blocks until the server stops.
func (s *Server) Start() error {
	return s.server.ListenAndServe()
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

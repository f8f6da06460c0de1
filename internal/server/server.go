// Package server wires the application together: database, services,
// handlers, middleware, routes, and the HTTP server lifecycle. This is
// the composition root — every dependency is assembled here and nowhere
// else.
package server

import (
	"context"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"

	"github.com/karim/exercise-tracker/internal/config"
	"github.com/karim/exercise-tracker/internal/handler"
	"github.com/karim/exercise-tracker/internal/metrics"
	"github.com/karim/exercise-tracker/internal/middleware"
	sqliteRepo "github.com/karim/exercise-tracker/internal/repository/sqlite"
	"github.com/karim/exercise-tracker/internal/service"
)

// Server owns the router and the database handle. The database is
// opened once in New and closed when Start returns, so every request in
// between shares the same pool.
type Server struct {
	router *chi.Mux
	config *config.Config
	logger *slog.Logger
	db     *sqliteRepo.DB
}

// New opens the database and assembles the full dependency chain:
// sqlite.DB → services → handlers → routes.
func New(cfg *config.Config, logger *slog.Logger) (*Server, error) {
	db, err := sqliteRepo.New(cfg.DBPath)
	if err != nil {
		return nil, fmt.Errorf("opening database: %w", err)
	}

	s := &Server{
		router: chi.NewRouter(),
		config: cfg,
		logger: logger,
		db:     db,
	}
	s.setupRoutes()

	return s, nil
}

func (s *Server) setupRoutes() {
	registry := prometheus.NewRegistry()
	collector := metrics.NewCollector(registry)

	// Global middleware, in order: request id, real client ip, panic
	// recovery, then our logger (which also feeds the metrics) and CORS.
	s.router.Use(chimiddleware.RequestID)
	s.router.Use(chimiddleware.RealIP)
	s.router.Use(chimiddleware.Recoverer)
	s.router.Use(middleware.Logger(s.logger, collector))
	s.router.Use(middleware.CORS(s.config.CORSAllowedOrigin))

	// Services receive the repository interfaces; handlers receive the
	// services. The exercise service also takes the user repository
	// because it must verify user existence before any child access.
	userService := service.NewUserService(s.db, s.logger)
	exerciseService := service.NewExerciseService(s.db, s.db, s.logger)
	userHandler := handler.NewUserHandler(userService, s.logger)
	exerciseHandler := handler.NewExerciseHandler(exerciseService, s.logger)

	s.router.Route("/api/users", func(r chi.Router) {
		r.Get("/", userHandler.HandleList)
		r.Post("/", userHandler.HandleCreate)
		r.Get("/name/{username}", userHandler.HandleGetByUsername)
		r.Get("/{id}", userHandler.HandleGetByID)
		r.Post("/{id}/exercises", exerciseHandler.HandleAdd)
		r.Get("/{id}/logs", exerciseHandler.HandleLog)
	})

	s.router.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	s.router.Handle("/metrics", metrics.Handler(registry))
}

// Handler exposes the assembled router, mainly for httptest in
// integration-style tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Close releases the database handle. Start does this itself; Close
// exists for callers that never reach Start.
func (s *Server) Close() error {
	return s.db.Close()
}

// Start runs the HTTP server until SIGINT/SIGTERM, then drains in-flight
// requests for up to 30 seconds and closes the database so the WAL is
// flushed and the file lock released.
func (s *Server) Start() error {
	defer s.db.Close()

	srv := &http.Server{
		Addr:         fmt.Sprintf(":%d", s.config.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)

	serverErrors := make(chan error, 1)
	go func() {
		s.logger.Info("server starting",
			slog.Int("port", s.config.Port),
			slog.String("database", s.config.DBPath),
		)
		serverErrors <- srv.ListenAndServe()
	}()

	select {
	case err := <-serverErrors:
		if err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}

	case sig := <-quit:
		s.logger.Info("shutdown signal received", slog.String("signal", sig.String()))

		ctx, cancel := context.WithTimeout(context.Background(), 30*time.Second)
		defer cancel()

		if err := srv.Shutdown(ctx); err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
		s.logger.Info("server stopped gracefully")
	}

	return nil
}

package server

import (
	"context"
	"fmt"
	"net/http"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"tiktok-carousel/internal/core"
	"tiktok-carousel/internal/features/tiktok"
	"tiktok-carousel/internal/server/handlers"
)

type Server struct {
	config   *core.Config
	logger   *core.Logger
	db       *core.Database
	registry *core.Registry
	server   *http.Server
}

// New wires features into a router. The database is only opened when a
// feature needs it.
func New(config *core.Config, logger *core.Logger) (*Server, error) {
	registry := core.NewRegistry(logger)

	var db *core.Database
	if config.IsFeatureEnabled("tiktok") && config.Features.TikTok.FetchLog {
		var err error
		db, err = core.OpenDatabase(config.Database.Path, logger)
		if err != nil {
			return nil, err
		}
	}

	tiktokFeature := tiktok.NewFeature(logger, db, tiktok.NewConfig(config))
	if err := registry.Register(tiktokFeature); err != nil {
		return nil, fmt.Errorf("failed to register tiktok feature: %w", err)
	}

	srv := &Server{
		config:   config,
		logger:   logger,
		db:       db,
		registry: registry,
	}
	srv.setupRoutes()

	return srv, nil
}

// Handler returns the root HTTP handler
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

func (s *Server) setupRoutes() {
	statusHandler := handlers.NewStatusHandler(s.logger, s.registry)

	mux := chi.NewRouter()

	mux.Use(middleware.Recoverer)
	mux.Use(middleware.RequestID)
	mux.Use(middleware.RealIP)
	mux.Use(middleware.Logger)

	mux.Get("/health", statusHandler.HealthCheckHandler)
	mux.Get("/features", statusHandler.FeaturesHandler)

	s.registry.Mount(mux)

	s.server = &http.Server{
		Addr:    fmt.Sprintf("%s:%d", s.config.Server.Host, s.config.Server.Port),
		Handler: mux,
	}
}

// Init initializes all registered features
func (s *Server) Init(ctx context.Context) error {
	if err := s.registry.InitAll(ctx); err != nil {
		s.logger.Error("Failed to initialize features", "error", err)
		return err
	}
	return nil
}

// Start serves HTTP until the server is shut down
func (s *Server) Start() error {
	s.logger.Info("Starting server", "host", s.config.Server.Host, "port", s.config.Server.Port)

	if err := s.server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("Shutting down server...")

	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("failed to shutdown HTTP server: %w", err)
	}

	if err := s.registry.ShutdownAll(ctx); err != nil {
		s.logger.Error("Failed to shutdown features", "error", err)
	}

	if s.db != nil {
		if err := s.db.Close(); err != nil {
			return fmt.Errorf("failed to close database: %w", err)
		}
	}

	return nil
}

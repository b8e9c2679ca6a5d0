// Package server provides the HTTP server and routing for the LATSO dashboard API.
package server

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/go-chi/cors"
	"github.com/rs/zerolog"

	"github.com/latsoguy/latso-mvp-demo/internal/config"
	"github.com/latsoguy/latso-mvp-demo/internal/database"
	"github.com/latsoguy/latso-mvp-demo/internal/events"
	"github.com/latsoguy/latso-mvp-demo/internal/modules/briefing"
	"github.com/latsoguy/latso-mvp-demo/internal/modules/projects"
	"github.com/latsoguy/latso-mvp-demo/internal/modules/risks"
	"github.com/latsoguy/latso-mvp-demo/internal/modules/scenario"
	"github.com/latsoguy/latso-mvp-demo/internal/modules/vendors"
	"github.com/latsoguy/latso-mvp-demo/internal/reliability"
)

// Config holds server configuration
type Config struct {
	Log           zerolog.Logger
	DB            *database.DB
	Cfg           *config.Config
	Bus           *events.Bus
	ProjectRepo   *projects.Repository
	VendorRepo    *vendors.Repository
	RiskRepo      *risks.Repository
	BriefService  *briefing.Service
	BackupService *reliability.BackupService // nil when backups are disabled
}

// Server represents the HTTP server
type Server struct {
	router         *chi.Mux
	server         *http.Server
	log            zerolog.Logger
	db             *database.DB
	cfg            *config.Config
	bus            *events.Bus
	systemHandlers *SystemHandlers
}

// New creates a new HTTP server with all module routes mounted under /api
func New(cfg Config) *Server {
	s := &Server{
		router: chi.NewRouter(),
		log:    cfg.Log.With().Str("component", "server").Logger(),
		db:     cfg.DB,
		cfg:    cfg.Cfg,
		bus:    cfg.Bus,
	}

	s.systemHandlers = NewSystemHandlers(cfg.DB, cfg.BackupService, cfg.Log)

	s.setupMiddleware(cfg.Cfg.DevMode)
	s.setupRoutes(cfg)

	s.server = &http.Server{
		Addr:         fmt.Sprintf(":%d", cfg.Cfg.Port),
		Handler:      s.router,
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}

	return s
}

// setupMiddleware configures middleware
func (s *Server) setupMiddleware(devMode bool) {
	s.router.Use(middleware.Recoverer)
	s.router.Use(middleware.RequestID)
	s.router.Use(middleware.RealIP)
	s.router.Use(s.loggingMiddleware)
	s.router.Use(middleware.Timeout(60 * time.Second))

	s.router.Use(cors.Handler(cors.Options{
		AllowedOrigins:   []string{"*"},
		AllowedMethods:   []string{"GET", "POST", "PUT", "DELETE", "OPTIONS"},
		AllowedHeaders:   []string{"Accept", "Authorization", "Content-Type"},
		ExposedHeaders:   []string{"Link"},
		AllowCredentials: true,
		MaxAge:           300,
	}))

	if !devMode {
		s.router.Use(middleware.Compress(5))
	}
}

// setupRoutes configures all routes
func (s *Server) setupRoutes(cfg Config) {
	s.router.Get("/health", s.handleHealth)

	s.router.Route("/api", func(r chi.Router) {
		// SSE stream registered before the module routes
		eventsStreamHandler := NewEventsStreamHandler(s.bus, s.log)
		r.Get("/events/stream", eventsStreamHandler.ServeHTTP)

		r.Route("/system", func(r chi.Router) {
			r.Get("/status", s.systemHandlers.HandleSystemStatus)
			r.Get("/database/stats", s.systemHandlers.HandleDatabaseStats)
			r.Get("/backups/latest", s.systemHandlers.HandleLatestBackup)
		})

		projectHandler := projects.NewHandler(cfg.ProjectRepo, cfg.RiskRepo, s.log)
		projectHandler.RegisterRoutes(r)

		vendorHandler := vendors.NewHandler(cfg.VendorRepo, s.bus, s.log)
		vendorHandler.RegisterRoutes(r)

		riskHandler := risks.NewHandler(cfg.RiskRepo, s.log)
		riskHandler.RegisterRoutes(r)

		scenarioHandler := scenario.NewHandler(cfg.RiskRepo, s.bus, s.cfg.RemainingDays, s.log)
		scenarioHandler.RegisterRoutes(r)

		briefHandler := briefing.NewHandler(cfg.BriefService, s.log)
		briefHandler.RegisterRoutes(r)
	})
}

// Start starts the HTTP server
func (s *Server) Start() error {
	s.log.Info().Int("port", s.cfg.Port).Msg("Starting HTTP server")
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server
func (s *Server) Shutdown(ctx context.Context) error {
	s.log.Info().Msg("Shutting down HTTP server")
	return s.server.Shutdown(ctx)
}

// Router exposes the chi router, used by tests
func (s *Server) Router() http.Handler {
	return s.router
}

// loggingMiddleware logs HTTP requests
func (s *Server) loggingMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		s.log.Info().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", ww.Status()).
			Int("bytes", ww.BytesWritten()).
			Dur("duration_ms", time.Since(start)).
			Str("request_id", middleware.GetReqID(r.Context())).
			Msg("HTTP request")
	})
}

// Package server implements the HTTP API for board generation.
//
// The API mirrors what the web UI expects: a generate endpoint that plans
// and renders a full board, a preview endpoint that only computes the
// layout, component listing endpoints, and board retrieval with artifact
// downloads. Generated boards are kept in a Store; the memory store is the
// default, MongoDB is available for persistent deployments.
package server

import (
	"net/http"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/printforge/printboard/pkg/observability"
	"github.com/printforge/printboard/pkg/pipeline"
)

// Server is the HTTP API server.
type Server struct {
	runner     *pipeline.Runner
	store      Store
	logger     *log.Logger
	presetsDir string
	router     chi.Router
}

// Config holds server construction options.
type Config struct {
	// Runner executes the generation pipeline. Required.
	Runner *pipeline.Runner

	// Store persists generated boards. Defaults to an in-memory store.
	Store Store

	// Logger is the request logger. Defaults to the package default.
	Logger *log.Logger

	// PresetsDir is the directory scanned for TOML presets. Empty disables
	// the presets listing.
	PresetsDir string
}

// New creates a server and mounts its routes.
func New(cfg Config) *Server {
	if cfg.Store == nil {
		cfg.Store = NewMemoryStore()
	}
	if cfg.Logger == nil {
		cfg.Logger = log.Default()
	}
	s := &Server{
		runner:     cfg.Runner,
		store:      cfg.Store,
		logger:     cfg.Logger,
		presetsDir: cfg.PresetsDir,
	}
	s.router = s.routes()
	return s
}

// Handler returns the mounted HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.router
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Route("/api", func(r chi.Router) {
		r.Post("/generate", s.handleGenerate)
		r.Post("/preview", s.handlePreview)
		r.Get("/switches", s.handleSwitches)
		r.Get("/controllers", s.handleControllers)
		r.Get("/presets", s.handlePresets)
		r.Route("/boards/{id}", func(r chi.Router) {
			r.Get("/", s.handleBoard)
			r.Get("/files/{kind}", s.handleBoardFile)
		})
	})
	r.Get("/healthz", s.handleHealth)
	return r
}

// logRequests logs each request and feeds the HTTP observability hooks.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)

		observability.HTTP().OnRequest(r.Context(), r.Method, r.URL.Path)
		next.ServeHTTP(ww, r)

		duration := time.Since(start)
		observability.HTTP().OnResponse(r.Context(), r.Method, r.URL.Path, ww.Status(), duration)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", duration)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

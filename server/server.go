// Package server exposes the audit pipeline over HTTP.
// Routes:
//
//	POST /audit/url    — audit a live page by URL
//	POST /audit/image  — audit an uploaded screenshot (visual heuristics only)
//	GET  /health       — liveness probe
//	GET  /logs/audits  — recent audit history
//	GET  /logs/scoring — score outcomes of recent audits
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/gaurav-prasanna/a11ypipe/core"
	"github.com/gaurav-prasanna/a11ypipe/core/analyze"
	"github.com/gaurav-prasanna/a11ypipe/store"
)

// Config configures the HTTP server.
type Config struct {
	Port     int
	Fetcher  core.Fetcher
	Analyzer *analyze.Pipeline
	Enricher core.Enricher // optional; nil disables enrichment
	Store    *store.Store  // optional; nil disables history
	Logger   *slog.Logger
}

func (c *Config) defaults() {
	if c.Port <= 0 {
		c.Port = 8000
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	if c.Analyzer == nil {
		c.Analyzer = analyze.New(analyze.Config{Logger: c.Logger})
	}
}

// Server wires the pipeline behind a chi router.
type Server struct {
	cfg    Config
	router *chi.Mux
}

// New creates a Server. Config.Fetcher is required for /audit/url.
func New(cfg Config) *Server {
	cfg.defaults()

	s := &Server{cfg: cfg}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)
	r.Use(allowCORS)

	r.Post("/audit/url", s.handleAuditURL)
	r.Post("/audit/image", s.handleAuditImage)
	r.Get("/health", s.handleHealth)
	r.Get("/logs/audits", s.handleAuditLogs)
	r.Get("/logs/scoring", s.handleScoringLogs)

	s.router = r
	return s
}

// Handler returns the underlying http.Handler, mainly for tests.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              fmt.Sprintf(":%d", s.cfg.Port),
		Handler:           s.router,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.cfg.Logger.Info("server listening", "port", s.cfg.Port)
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			errCh <- err
		}
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		s.cfg.Logger.Info("server shutting down")
		return srv.Shutdown(shutdownCtx)
	case err := <-errCh:
		return fmt.Errorf("server error: %w", err)
	}
}

// logRequests logs each request with method, path, status, and duration.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.cfg.Logger.Info("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration_ms", time.Since(start).Milliseconds())
	})
}

// allowCORS permits browser clients on any origin.
func allowCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, code int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, code int, err error) {
	writeJSON(w, code, map[string]string{"error": err.Error()})
}

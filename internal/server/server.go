// Package server exposes the editing core over HTTP: extraction, property
// application, fast structural preview, live sandbox rendering, component
// listing with revision history, and a websocket channel that pushes
// registry change events for live reload.
package server

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/chisel-ui/chisel/internal/config"
	"github.com/chisel-ui/chisel/internal/extractor"
	"github.com/chisel-ui/chisel/internal/logging"
	"github.com/chisel-ui/chisel/internal/mutator"
	"github.com/chisel-ui/chisel/internal/registry"
	"github.com/chisel-ui/chisel/internal/renderer"
	"github.com/chisel-ui/chisel/internal/sandbox"
	"github.com/chisel-ui/chisel/internal/scanner"
	"github.com/chisel-ui/chisel/internal/store"
	"github.com/chisel-ui/chisel/internal/styles"
)

// Server wires the core components behind the HTTP API.
type Server struct {
	cfg       *config.Config
	logger    logging.Logger
	catalog   *styles.Catalog
	registry  *registry.ComponentRegistry
	scanner   *scanner.ComponentScanner
	extractor *extractor.Extractor
	mutator   *mutator.Mutator
	renderer  *renderer.Renderer
	sandbox   *sandbox.Sandbox
	store     *store.Store

	httpServer *http.Server
}

// New assembles a server from configuration. The revision store may be nil
// when persistence is disabled.
func New(cfg *config.Config, logger logging.Logger, catalog *styles.Catalog, revisions *store.Store) *Server {
	if catalog == nil {
		catalog = styles.Default()
	}
	reg := registry.NewComponentRegistry()
	ex := extractor.New(catalog)
	s := &Server{
		cfg:       cfg,
		logger:    logger.WithComponent("server"),
		catalog:   catalog,
		registry:  reg,
		scanner:   scanner.New(reg, ex, cfg.Components.ExcludePatterns),
		extractor: ex,
		mutator:   mutator.New(catalog),
		renderer:  renderer.New(catalog),
		sandbox:   sandbox.New(sandbox.WithTimeout(time.Duration(cfg.Sandbox.TimeoutMS) * time.Millisecond)),
		store:     revisions,
	}
	return s
}

// Registry returns the server's component registry.
func (s *Server) Registry() *registry.ComponentRegistry {
	return s.registry
}

// Scanner returns the server's component scanner.
func (s *Server) Scanner() *scanner.ComponentScanner {
	return s.scanner
}

// Routes builds the HTTP handler.
func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.RealIP)
	r.Use(s.requestLogger)
	r.Use(middleware.Recoverer)

	r.Get("/healthz", s.handleHealth)
	r.Get("/ws", s.handleWebSocket)

	r.Route("/api", func(r chi.Router) {
		r.Post("/extract", s.handleExtract)
		r.Post("/apply", s.handleApply)
		r.Post("/preview", s.handlePreview)
		r.Post("/render", s.handleRender)
		r.Get("/components", s.handleListComponents)
		r.Get("/components/{name}", s.handleGetComponent)
		r.Get("/components/{name}/history", s.handleHistory)
	})
	return r
}

// Start scans the configured paths and serves until the context ends.
func (s *Server) Start(ctx context.Context) error {
	if err := s.scanner.ScanPaths(s.cfg.Components.ScanPaths); err != nil {
		s.logger.Warn(ctx, err, "initial component scan reported errors")
	}
	s.logger.Info(ctx, "components discovered", "count", s.registry.Count())

	addr := fmt.Sprintf("%s:%d", s.cfg.Server.Host, s.cfg.Server.Port)
	s.httpServer = &http.Server{
		Addr:              addr,
		Handler:           s.Routes(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		s.logger.Info(ctx, "editor server listening", "addr", addr)
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return s.httpServer.Shutdown(shutdownCtx)
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	}
}

// requestLogger logs one line per request through the structured logger.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Debug(r.Context(), "request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start).String(),
		)
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":     "ok",
		"components": s.registry.Count(),
	})
}

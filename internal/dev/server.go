// Package dev implements the Glint development server: static file
// serving with an SPA fallback, a polling file watcher, and live reload
// over websocket.
package dev

import (
	"context"
	"log/slog"
	"net/http"
	"path/filepath"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"

	"github.com/glint-dev/glint/internal/config"
	"github.com/glint-dev/glint/pkg/middleware"
)

// Server is the development server.
type Server struct {
	cfg    *config.Config
	logger *slog.Logger

	static  *Static
	reload  *ReloadServer
	watcher *Watcher

	httpServer *http.Server
	liveReload bool
	handler    http.Handler
}

// ServerOption configures a Server.
type ServerOption func(*Server)

// WithLiveReload toggles the watcher and websocket reload endpoint.
func WithLiveReload(enabled bool) ServerOption {
	return func(s *Server) {
		s.liveReload = enabled
	}
}

// NewServer creates a development server for the project configuration.
func NewServer(cfg *config.Config, logger *slog.Logger, opts ...ServerOption) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	logger = logger.With("component", "dev-server")

	s := &Server{
		cfg:        cfg,
		logger:     logger,
		static:     NewStatic(cfg.StaticDir(), cfg.Static.Index),
		liveReload: cfg.Dev.Reload,
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.liveReload {
		s.reload = NewReloadServer()
		s.static.Inject(ClientScript)

		watchPaths := make([]string, 0, len(cfg.Dev.Watch))
		for _, p := range cfg.Dev.Watch {
			watchPaths = append(watchPaths, joinIfRelative(cfg.Dir(), p))
		}
		s.watcher = NewWatcher(WatcherConfig{
			Paths:  watchPaths,
			Ignore: cfg.Dev.Ignore,
		})
		s.watcher.OnChange(s.onChange)
	}

	return s
}

// Handler returns the HTTP handler: metrics and reload endpoints, then
// the static handler as the catch-all. The handler is built once; each
// server carries its own metrics registry so several can coexist.
func (s *Server) Handler() http.Handler {
	if s.handler != nil {
		return s.handler
	}

	reg := prometheus.NewRegistry()

	mux := chi.NewRouter()
	mux.Use(middleware.Recover(s.logger))
	mux.Use(middleware.Logging(s.logger))
	mux.Use(middleware.Metrics(middleware.WithRegistry(reg)))
	mux.Use(middleware.OpenTelemetry(middleware.WithTracerName("glint-dev")))

	mux.Handle("/metrics", promhttp.HandlerFor(reg, promhttp.HandlerOpts{}))
	if s.reload != nil {
		mux.Get(ReloadPath, s.reload.HandleWebSocket)
	}
	mux.NotFound(s.static.ServeHTTP)

	s.handler = mux
	return s.handler
}

// Start listens on the configured address and blocks until the context
// is cancelled or the listener fails.
func (s *Server) Start(ctx context.Context) error {
	s.httpServer = &http.Server{
		Addr:    s.cfg.DevAddress(),
		Handler: s.Handler(),
	}

	if s.watcher != nil {
		go s.watcher.Start(ctx)
	}

	s.logger.Info("dev server listening", "url", s.cfg.DevURL(), "reload", s.liveReload)

	errCh := make(chan error, 1)
	go func() {
		errCh <- s.httpServer.ListenAndServe()
	}()

	select {
	case <-ctx.Done():
		return s.Shutdown()
	case err := <-errCh:
		if err == http.ErrServerClosed {
			return nil
		}
		return err
	}
}

// Shutdown stops the server, watcher, and reload connections.
func (s *Server) Shutdown() error {
	if s.watcher != nil {
		s.watcher.Stop()
	}
	if s.reload != nil {
		s.reload.Close()
	}
	if s.httpServer == nil {
		return nil
	}
	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	return s.httpServer.Shutdown(ctx)
}

// onChange routes a file change to the right reload notification.
func (s *Server) onChange(c Change) {
	s.logger.Info("change detected", "path", c.Path)
	switch c.Type {
	case ChangeCSS:
		s.reload.NotifyCSS(c.Path)
	default:
		s.reload.NotifyReload()
	}
}

func joinIfRelative(dir, p string) string {
	if dir == "" || filepath.IsAbs(p) {
		return p
	}
	return filepath.Join(dir, p)
}

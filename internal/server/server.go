// Package server exposes problem generation and answer checking over HTTP.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"path/filepath"
	"sync/atomic"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/gin-gonic/gin"
	"golang.org/x/sync/errgroup"
	"golang.org/x/time/rate"

	"github.com/abhisek/arithtrainer/internal/prefs"
	"github.com/abhisek/arithtrainer/internal/problemgen"
)

// Config configures the HTTP server.
type Config struct {
	// Addr is the listen address.
	Addr string

	// Rate is the sustained request rate per second. Zero or less
	// disables rate limiting.
	Rate float64

	// Burst is the token bucket size.
	Burst int

	// PrefsPath is watched for changes. Empty disables hot reload.
	PrefsPath string

	Version string
}

// DefaultConfig returns the server defaults.
func DefaultConfig() Config {
	return Config{
		Addr:    "127.0.0.1:8080",
		Rate:    20,
		Burst:   40,
		Version: "(devel)",
	}
}

// Server is the HTTP API. The generation config is swapped atomically on
// preferences reload; requests in flight keep the snapshot they started
// with.
type Server struct {
	cfg     Config
	genCfg  atomic.Pointer[problemgen.Config]
	limiter *rate.Limiter
	engine  *gin.Engine
	logger  *slog.Logger
}

// New creates a server serving the given preferences.
func New(cfg Config, p prefs.Preferences, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}
	s := &Server{cfg: cfg, logger: logger.With("component", "server")}
	s.setPreferences(p)

	if cfg.Rate > 0 {
		burst := max(cfg.Burst, 1)
		s.limiter = rate.NewLimiter(rate.Limit(cfg.Rate), burst)
	}

	engine := gin.New()
	engine.Use(gin.Recovery(), RateLimit(s.limiter))
	RegisterMetrics(engine)
	handlers := NewHandlers(s.GenerationConfig, cfg.Version, s.logger)
	RegisterRoutes(engine.Group("/v1"), handlers)
	s.engine = engine
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler { return s.engine }

// GenerationConfig returns the config currently in effect.
func (s *Server) GenerationConfig() *problemgen.Config {
	return s.genCfg.Load()
}

func (s *Server) setPreferences(p prefs.Preferences) {
	cfg := p.GenerationConfig()
	s.genCfg.Store(&cfg)
}

// Reload re-reads the preferences file. On error the current config is
// kept.
func (s *Server) Reload() error {
	p, err := prefs.Load(s.cfg.PrefsPath)
	if err != nil {
		return err
	}
	s.setPreferences(p)
	s.logger.Info("preferences reloaded", "path", s.cfg.PrefsPath, "mode", p.Mode)
	return nil
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.cfg.Addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 5 * time.Second,
	}

	g, ctx := errgroup.WithContext(ctx)
	g.Go(func() error {
		s.logger.Info("listening", "addr", s.cfg.Addr)
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("listen: %w", err)
		}
		return nil
	})
	g.Go(func() error {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		return srv.Shutdown(shutdownCtx)
	})
	if s.cfg.PrefsPath != "" {
		g.Go(func() error {
			return s.watchPreferences(ctx)
		})
	}
	return g.Wait()
}

// watchPreferences reloads the preferences whenever the file is written or
// replaced. The parent directory is watched so editors that save by rename
// are seen.
func (s *Server) watchPreferences(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return fmt.Errorf("create watcher: %w", err)
	}
	defer watcher.Close()

	target := filepath.Clean(s.cfg.PrefsPath)
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		s.logger.Warn("preferences hot reload disabled", "path", target, "error", err)
		<-ctx.Done()
		return nil
	}

	for {
		select {
		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if filepath.Clean(event.Name) != target {
				continue
			}
			if !event.Has(fsnotify.Write) && !event.Has(fsnotify.Create) && !event.Has(fsnotify.Rename) {
				continue
			}
			if err := s.Reload(); err != nil {
				s.logger.Warn("preferences reload failed, keeping current", "error", err)
			}

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Warn("preferences watcher error", "error", err)

		case <-ctx.Done():
			return nil
		}
	}
}

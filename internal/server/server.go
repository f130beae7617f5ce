// Package server provides the HTTP API over a natives database.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net"
	"net/http"
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/nativedb/nativedb/pkg/generator"
	"github.com/nativedb/nativedb/pkg/natives"
	"golang.org/x/sync/errgroup"
)

// reloadDebounce delays reloads so a burst of writes loads the file once.
const reloadDebounce = 100 * time.Millisecond

// Server serves the natives API.
type Server struct {
	mu      sync.RWMutex
	db      *natives.Database
	version int

	nativesPath string
	port        int
	watch       bool
	language    string
	options     generator.Options
	searchLimit int
	logger      *slog.Logger
	notifier    *Notifier
}

// Config holds configuration for the API server.
type Config struct {
	// NativesPath is the file reloaded when Watch is set.
	NativesPath string
	Port        int
	Watch       bool
	// Language is used when a code request names no language.
	Language string
	// Options are the generator defaults; query parameters override them.
	Options     generator.Options
	SearchLimit int
	Logger      *slog.Logger
}

// New creates a server for db.
func New(cfg Config, db *natives.Database) *Server {
	logger := cfg.Logger
	if logger == nil {
		logger = slog.New(slog.DiscardHandler)
	}
	return &Server{
		db:          db,
		version:     1,
		nativesPath: cfg.NativesPath,
		port:        cfg.Port,
		watch:       cfg.Watch,
		language:    cfg.Language,
		options:     cfg.Options,
		searchLimit: cfg.SearchLimit,
		logger:      logger,
		notifier:    NewNotifier(),
	}
}

// Database returns the current database and its version. The version
// increases with every successful reload.
func (s *Server) Database() (*natives.Database, int) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.db, s.version
}

// Notifier returns the server's notifier for reload events.
func (s *Server) Notifier() *Notifier {
	return s.notifier
}

// Reload loads the natives file again. On failure the previous database
// stays in place.
func (s *Server) Reload() error {
	db, err := natives.LoadFile(s.nativesPath)
	if err != nil {
		return fmt.Errorf("reload %s: %w", s.nativesPath, err)
	}

	s.mu.Lock()
	s.db = db
	s.version++
	version := s.version
	s.mu.Unlock()

	s.logger.Info("natives reloaded", slog.String("path", s.nativesPath), slog.Int("natives", db.Len()), slog.Int("version", version))
	s.notifier.Broadcast()
	return nil
}

// Handler returns the HTTP handler with all routes mounted.
func (s *Server) Handler() http.Handler {
	r := chi.NewMux()
	r.Use(
		middleware.RequestID,
		middleware.RealIP,
		middleware.Logger,
		middleware.Recoverer,
		middleware.Compress(5),
	)

	r.Get("/healthz", s.handleHealth)
	r.Route("/api", func(r chi.Router) {
		r.Get("/events", s.handleEvents)
		r.Get("/stats", s.handleStats)
		r.Get("/languages", s.handleLanguages)
		r.Get("/search", s.handleSearch)
		r.Get("/natives/{native}", s.handleNative)
		r.Get("/natives/{native}/code", s.handleNativeCode)
		r.Get("/namespaces", s.handleNamespaces)
		r.Get("/namespaces/{namespace}/code", s.handleNamespaceCode)
		r.Get("/types", s.handleTypes)
		r.Get("/types/{type}", s.handleType)
	})

	return r
}

// Serve starts the API server and blocks until the context is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("starting API server", "addr", fmt.Sprintf("http://localhost:%d", s.port))

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:    addr,
		Handler: s.Handler(),
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start file watcher if enabled
	if s.watch && s.nativesPath != "" {
		eg.Go(func() error {
			return s.watchFile(egctx)
		})
	}

	// Start HTTP server
	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down API server...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

// watchFile reloads the database when the natives file changes. The
// directory is watched so editors that replace the file are seen too.
func (s *Server) watchFile(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	target, err := filepath.Abs(s.nativesPath)
	if err != nil {
		return err
	}
	if err := watcher.Add(filepath.Dir(target)); err != nil {
		s.logger.Error("failed to watch natives file", "error", err)
		// Don't fail - continue without watching
		<-ctx.Done()
		return nil
	}

	// Debounce timer
	var debounceTimer *time.Timer
	defer func() {
		if debounceTimer != nil {
			debounceTimer.Stop()
		}
	}()

	for {
		select {
		case <-ctx.Done():
			return nil

		case event, ok := <-watcher.Events:
			if !ok {
				return nil
			}
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Rename) == 0 {
				continue
			}
			if name, err := filepath.Abs(event.Name); err != nil || name != target {
				continue
			}

			// Debounce
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(reloadDebounce, func() {
				s.logger.Debug("natives file changed, reloading", "file", event.Name)
				if err := s.Reload(); err != nil {
					s.logger.Error("reload failed", "error", err)
				}
			})

		case err, ok := <-watcher.Errors:
			if !ok {
				return nil
			}
			s.logger.Error("watcher error", "error", err)
		}
	}
}

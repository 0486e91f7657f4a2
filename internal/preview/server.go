// Package preview serves a local web page of the pending release.
package preview

import (
	"context"
	"fmt"
	"html/template"
	"io/fs"
	"log/slog"
	"net"
	"net/http"
	"path/filepath"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"golang.org/x/sync/errgroup"

	"github.com/leapstack-labs/newsroom/internal/store"
)

// Server renders the pending release and recent history over HTTP and
// pushes reload pings to connected pages when entry files change.
type Server struct {
	newsDir    string
	repository string
	store      store.Store
	port       int
	watch      bool
	logger     *slog.Logger
	notifier   *Notifier
	tmpl       *template.Template
}

// Config holds configuration for the preview server.
type Config struct {
	NewsDir    string
	Repository string
	Store      store.Store
	Port       int
	Watch      bool
	Logger     *slog.Logger
}

// NewServer creates a new preview server instance.
func NewServer(cfg Config) *Server {
	return &Server{
		newsDir:    cfg.NewsDir,
		repository: cfg.Repository,
		store:      cfg.Store,
		port:       cfg.Port,
		watch:      cfg.Watch,
		logger:     cfg.Logger,
		notifier:   NewNotifier(),
		tmpl:       template.Must(template.New("preview").Parse(pageTemplate)),
	}
}

// Serve starts the preview server and blocks until the context is cancelled.
func (s *Server) Serve(ctx context.Context) error {
	addr := fmt.Sprintf(":%d", s.port)
	s.logger.Info("starting preview server", "addr", fmt.Sprintf("http://localhost:%d", s.port))

	eg, egctx := errgroup.WithContext(ctx)

	srv := &http.Server{
		Addr:    addr,
		Handler: s.routes(),
		BaseContext: func(_ net.Listener) context.Context {
			return egctx
		},
		ReadHeaderTimeout: 10 * time.Second,
	}

	// Start file watcher if enabled
	if s.watch {
		eg.Go(func() error {
			return s.watchFiles(egctx)
		})
	}

	// Start HTTP server
	eg.Go(func() error {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			return fmt.Errorf("server error: %w", err)
		}
		return nil
	})

	// Graceful shutdown
	eg.Go(func() error {
		<-egctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()

		s.logger.Debug("shutting down preview server...")
		return srv.Shutdown(shutdownCtx)
	})

	return eg.Wait()
}

// Notifier returns the server's notifier for reload pings.
func (s *Server) Notifier() *Notifier {
	return s.notifier
}

func (s *Server) routes() chi.Router {
	r := chi.NewMux()
	r.Use(
		middleware.Logger,
		middleware.Recoverer,
		middleware.Compress(5),
	)

	r.Get("/", s.handleIndex)
	r.Get("/events", s.handleEvents)
	r.Get("/healthz", s.handleHealthz)

	return r
}

// watchFiles watches for entry file changes in the news directory.
func (s *Server) watchFiles(ctx context.Context) error {
	watcher, err := fsnotify.NewWatcher()
	if err != nil {
		return err
	}
	defer func() { _ = watcher.Close() }()

	// Watch news directory recursively
	if err := watchDirRecursive(watcher, s.newsDir); err != nil {
		s.logger.Error("failed to watch news directory", "error", err)
		// Don't fail - continue without watching
	}

	// Debounce timer
	var debounceTimer *time.Timer

	for {
		select {
		case <-ctx.Done():
			return nil

		case event := <-watcher.Events:
			if event.Op&(fsnotify.Write|fsnotify.Create|fsnotify.Remove|fsnotify.Rename) == 0 {
				continue
			}

			if filepath.Ext(event.Name) != ".md" {
				continue
			}

			// Debounce
			if debounceTimer != nil {
				debounceTimer.Stop()
			}
			debounceTimer = time.AfterFunc(100*time.Millisecond, func() {
				s.logger.Debug("news entry changed", "file", event.Name)
				s.notifier.Broadcast()
			})

		case err := <-watcher.Errors:
			s.logger.Error("watcher error", "error", err)
		}
	}
}

// watchDirRecursive adds a directory and all subdirectories to the watcher.
func watchDirRecursive(watcher *fsnotify.Watcher, dir string) error {
	return filepath.WalkDir(dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			return err
		}
		if d.IsDir() {
			return watcher.Add(path)
		}
		return nil
	})
}

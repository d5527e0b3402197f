// Package server is the read-only HTTP API over stored puzzles.
package server

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"sync"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/roach88/qiyaas/internal/puzzle"
)

// Reader is the storage the API reads from.
type Reader interface {
	LoadCurrentPuzzle(ctx context.Context) (puzzle.Puzzle, error)
	LoadPuzzle(ctx context.Context, date string) (puzzle.Puzzle, error)
	LoadUsedWords(ctx context.Context) (puzzle.Ledger, error)
}

// Config configures the API.
type Config struct {
	CurrentTTL     time.Duration
	HistoricalTTL  time.Duration
	AllowedOrigins []string // empty allows any origin
	Logger         *slog.Logger
	Now            func() time.Time
}

// Server serves puzzles. Dated puzzles are memoized after the first
// successful read because they are never rewritten.
type Server struct {
	reader Reader
	cfg    Config
	logger *slog.Logger
	engine *gin.Engine

	mu   sync.RWMutex
	memo map[string]puzzle.Puzzle
}

// New builds the router.
func New(reader Reader, cfg Config) *Server {
	if cfg.CurrentTTL == 0 {
		cfg.CurrentTTL = time.Hour
	}
	if cfg.HistoricalTTL == 0 {
		cfg.HistoricalTTL = 24 * time.Hour
	}
	if cfg.Now == nil {
		cfg.Now = time.Now
	}
	logger := cfg.Logger
	if logger == nil {
		logger = slog.Default()
	}

	s := &Server{
		reader: reader,
		cfg:    cfg,
		logger: logger,
		memo:   make(map[string]puzzle.Puzzle),
	}
	s.engine = s.routes()
	return s
}

// Handler returns the HTTP handler.
func (s *Server) Handler() http.Handler {
	return s.engine
}

// ListenAndServe serves on addr until ctx is cancelled, then shuts down
// gracefully.
func (s *Server) ListenAndServe(ctx context.Context, addr string) error {
	return serve(ctx, s.logger, &http.Server{
		Addr:              addr,
		Handler:           s.engine,
		ReadHeaderTimeout: 10 * time.Second,
	})
}

// ServeMetrics serves h on addr until ctx is cancelled.
func ServeMetrics(ctx context.Context, logger *slog.Logger, addr string, h http.Handler) error {
	mux := http.NewServeMux()
	mux.Handle("/metrics", h)
	return serve(ctx, logger, &http.Server{
		Addr:              addr,
		Handler:           mux,
		ReadHeaderTimeout: 10 * time.Second,
	})
}

func serve(ctx context.Context, logger *slog.Logger, srv *http.Server) error {
	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", "addr", srv.Addr)
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return fmt.Errorf("listen %s: %w", srv.Addr, err)
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("shutdown %s: %w", srv.Addr, err)
	}
	logger.Info("server stopped", "addr", srv.Addr)
	return nil
}

func (s *Server) cachedPuzzle(date string) (puzzle.Puzzle, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()
	p, ok := s.memo[date]
	return p, ok
}

func (s *Server) remember(date string, p puzzle.Puzzle) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.memo[date] = p
}

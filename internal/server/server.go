// Package server exposes the analytics over a local JSON API.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/julianstephens/slotscore/internal/constants"
	"github.com/julianstephens/slotscore/internal/logger"
	"github.com/julianstephens/slotscore/internal/metrics"
	"github.com/julianstephens/slotscore/internal/service"
)

type Options struct {
	Addr string
	// LockDir holds the pidfile. Empty disables locking.
	LockDir string
	// Metrics enables /metrics and request instrumentation when non-nil.
	Metrics *metrics.Metrics
}

type Server struct {
	svc     *service.Service
	addr    string
	lockDir string
	metrics *metrics.Metrics
}

func New(svc *service.Service, opts Options) *Server {
	addr := opts.Addr
	if addr == "" {
		addr = constants.DefaultListenAddr
	}
	return &Server{
		svc:     svc,
		addr:    addr,
		lockDir: opts.LockDir,
		metrics: opts.Metrics,
	}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()

	r.Use(chimiddleware.RequestID)
	r.Use(chimiddleware.RealIP)
	r.Use(requestLogger)
	r.Use(chimiddleware.Recoverer)
	if s.metrics != nil {
		r.Use(s.metrics.Middleware)
		r.Method(http.MethodGet, "/metrics", s.metrics.Handler())
	}

	r.NotFound(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusNotFound, codeNotFound, "no such endpoint")
	})
	r.MethodNotAllowed(func(w http.ResponseWriter, r *http.Request) {
		writeError(w, http.StatusMethodNotAllowed, codeBadRequest, "method not allowed")
	})

	r.Route("/api/v1", func(r chi.Router) {
		r.Get("/health", s.handleHealth)

		r.Route("/logs", func(r chi.Router) {
			r.Get("/", s.handleGetLogs)
			r.Post("/", s.handleCreateLog)
			r.Delete("/{id}", s.handleDeleteLog)
		})

		r.Get("/goals", s.handleGetGoals)
		r.Put("/goals", s.handlePutGoals)

		r.Route("/categories", func(r chi.Router) {
			r.Get("/", s.handleListCategories)
			r.Post("/", s.handleAddCategory)
			r.Delete("/{name}", s.handleDeleteCategory)
		})

		r.Route("/analytics", func(r chi.Router) {
			r.Get("/summary", s.handleSummary)
			r.Get("/streaks", s.handleStreaks)
			r.Get("/compare", s.handleCompare)
			r.Get("/patterns", s.handlePatterns)
			r.Get("/heatmap", s.handleHeatmap)
			r.Get("/distribution", s.handleDistribution)
			r.Get("/recommendations", s.handleRecommendations)
			r.Get("/report", s.handleReport)
			r.Get("/calendar", s.handleCalendar)
			r.Get("/categories", s.handleCategoryBreakdown)
			r.Get("/trend", s.handleTrend)
			r.Get("/goals", s.handleGoalsProgress)
		})
	})
	return r
}

func requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		logger.Debug("HTTP request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"duration", time.Since(start),
			"request_id", chimiddleware.GetReqID(r.Context()),
		)
	})
}

// Run serves until ctx is cancelled, then drains in-flight requests.
func (s *Server) Run(ctx context.Context) error {
	if s.lockDir != "" {
		lock, err := AcquireLock(s.lockDir, s.addr)
		if err != nil {
			return err
		}
		defer func() {
			if err := lock.Release(); err != nil {
				logger.Warn("Failed to remove server lockfile", "error", err)
			}
		}()
	}

	ln, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}
	return s.Serve(ctx, ln)
}

// Serve is Run on an existing listener, without the lockfile.
func (s *Server) Serve(ctx context.Context, ln net.Listener) error {
	srv := &http.Server{
		Handler:           s.Router(),
		ReadTimeout:       constants.ServerReadTimeout,
		ReadHeaderTimeout: constants.ServerReadTimeout,
		WriteTimeout:      constants.ServerWriteTimeout,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("Server listening", "addr", ln.Addr().String())
		errCh <- srv.Serve(ln)
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
	}

	shutdownCtx, cancel := context.WithTimeout(context.Background(), constants.ServerShutdownPeriod)
	defer cancel()
	logger.Info("Server shutting down")
	if err := srv.Shutdown(shutdownCtx); err != nil {
		return fmt.Errorf("failed to shut down server: %w", err)
	}
	if err := <-errCh; err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

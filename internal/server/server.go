// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package server serves the web form: submit a topic, read the per-paper
// results, download the report, survey PDF, and survey CSV, and leave
// feedback.
package server

import (
	"context"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"go.uber.org/zap"

	"github.com/pdiddy/research-assistant/internal/pipeline"
	"github.com/pdiddy/research-assistant/pkg/types"
)

// Digester runs the pipeline for one query.
type Digester interface {
	Digest(ctx context.Context, query string, w io.Writer) (*pipeline.Result, error)
}

// DigestFunc adapts a function to Digester.
type DigestFunc func(ctx context.Context, query string, w io.Writer) (*pipeline.Result, error)

// Digest calls f.
func (f DigestFunc) Digest(ctx context.Context, query string, w io.Writer) (*pipeline.Result, error) {
	return f(ctx, query, w)
}

// Store is the persistence the server reads runs from and writes feedback to.
type Store interface {
	Run(ctx context.Context, id int64) (*types.Run, error)
	Runs(ctx context.Context, limit int) ([]types.Run, error)
	AddFeedback(ctx context.Context, page, text string) (int64, error)
	ExportFeedbackCSV(ctx context.Context, w io.Writer) error
}

// recentRuns is the number of past runs listed on the form.
const recentRuns = 10

// Server holds the handlers' collaborators.
type Server struct {
	digester Digester
	store    Store
	logger   *zap.Logger
}

// New returns a Server. A nil logger discards logs.
func New(d Digester, st Store, logger *zap.Logger) *Server {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Server{digester: d, store: st, logger: logger}
}

// Handler returns the router.
func (s *Server) Handler() http.Handler {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.requestLogger)

	r.Get("/", s.handleIndex)
	r.Post("/search", s.handleSearch)
	r.Route("/runs/{id}", func(r chi.Router) {
		r.Get("/report.pdf", s.handleFile(func(run *types.Run) string { return run.ReportPath }, "application/pdf"))
		r.Get("/survey.pdf", s.handleFile(func(run *types.Run) string { return run.SurveyPath }, "application/pdf"))
		r.Get("/survey.csv", s.handleFile(func(run *types.Run) string { return run.CSVPath }, "text/csv"))
	})
	r.Post("/feedback", s.handleFeedback)
	r.Get("/feedback.csv", s.handleFeedbackCSV)
	return r
}

// requestLogger logs one line per request with its status and duration.
func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		start := time.Now()
		next.ServeHTTP(ww, r)
		s.logger.Info("request",
			zap.String("method", r.Method),
			zap.String("path", r.URL.Path),
			zap.Int("status", ww.Status()),
			zap.Int("bytes", ww.BytesWritten()),
			zap.Duration("duration", time.Since(start)),
			zap.String("request_id", middleware.GetReqID(r.Context())))
	})
}

// ListenAndServe serves h on addr until ctx is cancelled, then shuts down
// gracefully.
func ListenAndServe(ctx context.Context, addr string, h http.Handler, logger *zap.Logger) error {
	if logger == nil {
		logger = zap.NewNop()
	}
	srv := &http.Server{
		Addr:              addr,
		Handler:           h,
		ReadHeaderTimeout: 10 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		logger.Info("listening", zap.String("addr", addr))
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if errors.Is(err, http.ErrServerClosed) {
			return nil
		}
		return err
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		logger.Info("shutting down")
		return srv.Shutdown(shutdownCtx)
	}
}

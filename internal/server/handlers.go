// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

package server

import (
	"bytes"
	"errors"
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/go-chi/chi/v5"
	"go.uber.org/zap"

	"github.com/pdiddy/research-assistant/internal/pipeline"
	"github.com/pdiddy/research-assistant/internal/store"
	"github.com/pdiddy/research-assistant/pkg/types"
)

// Messages shown on the form.
const (
	msgEmptyQuery    = "Please enter a research topic."
	msgNoPapers      = "No papers found. Try another topic."
	msgDigestFailed  = "The digest failed. Please try again."
	msgFeedbackSaved = "Thank you for your feedback!"
	msgEmptyFeedback = "Feedback cannot be empty."
)

func (s *Server) handleIndex(w http.ResponseWriter, r *http.Request) {
	var msg string
	if r.URL.Query().Get("feedback") == "ok" {
		msg = msgFeedbackSaved
	}
	s.renderIndex(w, r, http.StatusOK, msg)
}

func (s *Server) renderIndex(w http.ResponseWriter, r *http.Request, status int, msg string) {
	runs, err := s.store.Runs(r.Context(), recentRuns)
	if err != nil {
		s.logger.Warn("listing runs", zap.Error(err))
	}
	s.render(w, status, "index", indexPage{Message: msg, Runs: runs})
}

func (s *Server) handleSearch(w http.ResponseWriter, r *http.Request) {
	query := strings.TrimSpace(r.FormValue("query"))
	if query == "" {
		s.renderIndex(w, r, http.StatusBadRequest, msgEmptyQuery)
		return
	}

	var progress bytes.Buffer
	res, err := s.digester.Digest(r.Context(), query, &progress)
	switch {
	case errors.Is(err, pipeline.ErrNoPapers):
		s.renderIndex(w, r, http.StatusOK, msgNoPapers)
		return
	case err != nil:
		s.logger.Error("digest failed", zap.String("query", query), zap.Error(err))
		s.renderIndex(w, r, http.StatusInternalServerError, msgDigestFailed)
		return
	}

	s.render(w, http.StatusOK, "results", resultsPage{
		Query:    query,
		Result:   res,
		Progress: progress.String(),
	})
}

// handleFile serves one of a run's output files.
func (s *Server) handleFile(path func(*types.Run) string, contentType string) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		id, err := strconv.ParseInt(chi.URLParam(r, "id"), 10, 64)
		if err != nil || id <= 0 {
			http.Error(w, "invalid run id", http.StatusBadRequest)
			return
		}
		run, err := s.store.Run(r.Context(), id)
		if errors.Is(err, store.ErrNotFound) {
			http.NotFound(w, r)
			return
		}
		if err != nil {
			s.logger.Error("loading run", zap.Int64("run", id), zap.Error(err))
			http.Error(w, "internal error", http.StatusInternalServerError)
			return
		}

		p := path(run)
		if p == "" {
			http.NotFound(w, r)
			return
		}
		if _, err := os.Stat(p); err != nil {
			http.NotFound(w, r)
			return
		}
		w.Header().Set("Content-Type", contentType)
		w.Header().Set("Content-Disposition", fmt.Sprintf("attachment; filename=%q", filepath.Base(p)))
		http.ServeFile(w, r, p)
	}
}

func (s *Server) handleFeedback(w http.ResponseWriter, r *http.Request) {
	page := strings.TrimSpace(r.FormValue("page"))
	if page == "" {
		page = "Home"
	}
	_, err := s.store.AddFeedback(r.Context(), page, r.FormValue("feedback"))
	if errors.Is(err, store.ErrEmptyFeedback) {
		s.renderIndex(w, r, http.StatusBadRequest, msgEmptyFeedback)
		return
	}
	if err != nil {
		s.logger.Error("saving feedback", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	http.Redirect(w, r, "/?feedback=ok", http.StatusSeeOther)
}

func (s *Server) handleFeedbackCSV(w http.ResponseWriter, r *http.Request) {
	var buf bytes.Buffer
	if err := s.store.ExportFeedbackCSV(r.Context(), &buf); err != nil {
		s.logger.Error("exporting feedback", zap.Error(err))
		http.Error(w, "internal error", http.StatusInternalServerError)
		return
	}
	w.Header().Set("Content-Type", "text/csv")
	w.Header().Set("Content-Disposition", `attachment; filename="feedback.csv"`)
	w.Write(buf.Bytes())
}

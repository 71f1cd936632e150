package httpapi

import (
	"context"
	"encoding/json"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/cors"
	"go.uber.org/zap"

	"github.com/hamed0406/sitesmoke/internal/domain"
	"github.com/hamed0406/sitesmoke/internal/repo"
	"github.com/hamed0406/sitesmoke/internal/report"
)

// Server exposes run history and the dashboard over HTTP so the channel
// link in notifications has somewhere to point.
type Server struct {
	Logger *zap.Logger
	Runs   repo.RunStore
	// Trigger runs the suite synchronously; nil disables POST /api/runs.
	Trigger func(ctx context.Context) domain.RunSummary
}

func NewServer(l *zap.Logger, runs repo.RunStore, trigger func(ctx context.Context) domain.RunSummary) *Server {
	return &Server{Logger: l, Runs: runs, Trigger: trigger}
}

func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Use(cors.AllowAll().Handler)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusOK)
		_, _ = w.Write([]byte("ok"))
	})

	r.Get("/api/runs/latest", s.handleLatest)
	r.Get("/api/runs", s.handleList)
	r.Post("/api/runs", s.handleTrigger)
	r.Get("/report", s.handleReport)

	return r
}

func (s *Server) handleLatest(w http.ResponseWriter, r *http.Request) {
	sum, err := s.Runs.Latest(r.Context())
	if err != nil {
		s.Logger.Warn("latest_run_error", zap.Error(err))
		http.Error(w, "store error", http.StatusInternalServerError)
		return
	}
	if sum == nil {
		http.Error(w, "no runs yet", http.StatusNotFound)
		return
	}
	writeJSON(w, sum)
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	limit := 20
	if v := r.URL.Query().Get("limit"); v != "" {
		if n, err := strconv.Atoi(v); err == nil && n > 0 {
			limit = n
		}
	}
	runs, err := s.Runs.List(r.Context(), limit)
	if err != nil {
		s.Logger.Warn("list_runs_error", zap.Error(err))
		http.Error(w, "store error", http.StatusInternalServerError)
		return
	}
	if runs == nil {
		runs = []domain.RunSummary{}
	}
	writeJSON(w, runs)
}

// handleTrigger runs the suite synchronously for immediate feedback, the
// same trade the old add-target endpoint made: slow response, useful body.
func (s *Server) handleTrigger(w http.ResponseWriter, r *http.Request) {
	if s.Trigger == nil {
		http.Error(w, "runner not configured", http.StatusServiceUnavailable)
		return
	}
	sum := s.Trigger(r.Context())
	if err := s.Runs.Append(r.Context(), &sum); err != nil {
		s.Logger.Warn("store_run_error", zap.Error(err))
	}
	s.Logger.Info("run_triggered",
		zap.Int("total_sites", sum.TotalSites),
		zap.Int("sites_failed", sum.SitesFailed),
	)
	writeJSON(w, sum)
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	sum, err := s.Runs.Latest(r.Context())
	if err != nil {
		s.Logger.Warn("latest_run_error", zap.Error(err))
		http.Error(w, "store error", http.StatusInternalServerError)
		return
	}
	if sum == nil {
		http.Error(w, "no runs yet", http.StatusNotFound)
		return
	}
	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	if err := report.RenderHTML(w, *sum); err != nil {
		s.Logger.Warn("render_report_error", zap.Error(err))
	}
}

func writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	_ = json.NewEncoder(w).Encode(v)
}

// Package api declares HTTP contracts and route registration helpers.
package api

import (
	"context"
	"encoding/json"
	"net/http"

	"github.com/deckray/deckray/internal/app"
	"github.com/deckray/deckray/internal/domain/model"
)

// Analyzer runs one deck analysis. Implemented by the app service.
type Analyzer interface {
	Analyze(ctx context.Context, content []byte, filename, projectName string) (model.Report, error)
}

// StatsProvider exposes the operational snapshot.
type StatsProvider interface {
	GetStats() app.Stats
}

// Server wires HTTP routes for the analysis API.
type Server struct {
	uploadHandler *UploadHandler
	healthHandler *HealthHandler
	statsHandler  *StatsHandler
}

// NewServer creates a new API server with all handlers.
func NewServer(analyzer Analyzer, statsProvider StatsProvider) *Server {
	return &Server{
		uploadHandler: NewUploadHandler(analyzer),
		healthHandler: NewHealthHandler(),
		statsHandler:  NewStatsHandler(statsProvider),
	}
}

// Register attaches all HTTP routes to mux.
func (s *Server) Register(_ context.Context, mux *http.ServeMux) {
	mux.HandleFunc("/analysis/upload", MetricsMiddleware(s.uploadHandler.HandleUpload, "analysis_upload"))
	mux.HandleFunc("/healthz", MetricsMiddleware(s.healthHandler.HandleHealth, "healthz"))
	mux.HandleFunc("/metrics", s.healthHandler.HandleMetrics)
	mux.HandleFunc("/stats", MetricsMiddleware(s.statsHandler.HandleStats, "stats"))
}

type errorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code string, err error) {
	msg := http.StatusText(status)
	if err != nil {
		msg = err.Error()
	}
	writeJSON(w, status, errorResponse{Code: code, Message: msg})
}

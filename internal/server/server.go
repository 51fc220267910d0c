// Package server exposes the statistics side API consumed by the
// operator dashboard. It is read-only over the tracking window.
package server

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"go.uber.org/zap"

	"viralscout/internal/tracking"
)

// Server serves the stats/health endpoints.
type Server struct {
	srv     *http.Server
	tracker *tracking.Tracker
	log     *zap.Logger
}

// New builds the server on the given port.
func New(port int, tracker *tracking.Tracker, log *zap.Logger) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	s := &Server{tracker: tracker, log: log}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /", s.handleRoot)
	mux.HandleFunc("GET /api/health", s.handleHealth)
	mux.HandleFunc("GET /api/stats", s.handleStats)
	mux.HandleFunc("GET /api/content", s.handleContent)
	mux.HandleFunc("GET /api/logs", s.handleLogs)

	s.srv = &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: cors(mux),
	}
	return s
}

// ListenAndServe blocks serving requests until Stop or failure.
func (s *Server) ListenAndServe() error {
	s.log.Info("stats server listening", zap.String("addr", s.srv.Addr))
	if err := s.srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
		return err
	}
	return nil
}

// Stop gracefully shuts the server down.
func (s *Server) Stop(ctx context.Context) error {
	ctx, cancel := context.WithTimeout(ctx, 5*time.Second)
	defer cancel()
	return s.srv.Shutdown(ctx)
}

// cors permits the dashboard origin; the API carries no credentials.
func cors(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, Authorization")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusNoContent)
			return
		}
		next.ServeHTTP(w, r)
	})
}

func (s *Server) writeJSON(w http.ResponseWriter, v any) {
	w.Header().Set("Content-Type", "application/json")
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.log.Warn("response encode failed", zap.Error(err))
	}
}

func (s *Server) handleRoot(w http.ResponseWriter, r *http.Request) {
	if r.URL.Path != "/" {
		http.NotFound(w, r)
		return
	}
	s.writeJSON(w, map[string]string{
		"status":  "ok",
		"message": "viralscout API is running",
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, map[string]any{
		"status":     "ok",
		"botRunning": true,
	})
}

func (s *Server) handleStats(w http.ResponseWriter, _ *http.Request) {
	s.writeJSON(w, map[string]any{
		"totalSearches":  s.tracker.Total(),
		"totalUsers":     s.tracker.UniqueUsers(),
		"activeChannels": s.tracker.ActivePlatforms(),
		"viralScore":     s.tracker.ViralScore(),
		"platforms":      s.tracker.PlatformDistribution(),
		"categories":     s.tracker.CategoryDistribution(),
		"languages":      s.tracker.LanguageDistribution(),
		"daily":          s.tracker.Daily(7),
	})
}

func (s *Server) handleContent(w http.ResponseWriter, _ *http.Request) {
	recent := s.tracker.Recent(50)
	if recent == nil {
		recent = []tracking.Request{}
	}
	s.writeJSON(w, recent)
}

func (s *Server) handleLogs(w http.ResponseWriter, _ *http.Request) {
	logs := s.tracker.Logs()
	if logs == nil {
		logs = []tracking.Log{}
	}
	s.writeJSON(w, logs)
}

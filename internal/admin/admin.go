// Package admin serves the operational HTTP surface: a health check and a
// small stats endpoint. It runs beside the game listener and is shut down
// by the lifecycle coordinator before state is persisted.
package admin

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gorilla/mux"
)

// StatsSource exposes the counters the stats endpoint reports.
type StatsSource interface {
	ActiveSessions() int64
	CurrentSequence() int64
	RegisteredUsers() int
}

// Stats is the JSON body of GET /api/stats.
type Stats struct {
	ActiveSessions  int64 `json:"activeSessions"`
	WordSequence    int64 `json:"wordSequence"`
	RegisteredUsers int   `json:"registeredUsers"`
}

// NewRouter builds the admin router.
func NewRouter(src StatsSource) http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/healthz", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	}).Methods(http.MethodGet)

	r.HandleFunc("/api/stats", func(w http.ResponseWriter, _ *http.Request) {
		writeJSON(w, http.StatusOK, Stats{
			ActiveSessions:  src.ActiveSessions(),
			WordSequence:    src.CurrentSequence(),
			RegisteredUsers: src.RegisteredUsers(),
		})
	}).Methods(http.MethodGet)

	return r
}

func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(data)
}

// Server wraps the admin HTTP server with graceful shutdown support.
type Server struct {
	server *http.Server
	logger *slog.Logger
}

// NewServer creates the admin server on the given port.
func NewServer(port int, src StatsSource, logger *slog.Logger) *Server {
	return &Server{
		server: &http.Server{
			Addr:         fmt.Sprintf(":%d", port),
			Handler:      NewRouter(src),
			ReadTimeout:  10 * time.Second,
			WriteTimeout: 10 * time.Second,
		},
		logger: logger,
	}
}

// Start begins listening for HTTP requests.
func (s *Server) Start() error {
	s.logger.Info("starting admin server", slog.String("addr", s.server.Addr))

	if err := s.server.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("admin server error: %w", err)
	}
	return nil
}

// Shutdown gracefully stops the server.
func (s *Server) Shutdown(ctx context.Context) error {
	if err := s.server.Shutdown(ctx); err != nil {
		return fmt.Errorf("admin shutdown error: %w", err)
	}
	return nil
}

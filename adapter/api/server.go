// Package api provides the HTTP API for clinic scheduling.
package api

import (
	"context"
	"encoding/json"
	"log/slog"
	"net/http"
	"time"
)

// Server is the HTTP API server.
type Server struct {
	mux     *http.ServeMux
	server  *http.Server
	logger  *slog.Logger
	handler *AppointmentHandler
}

// ServerConfig holds configuration for the API server.
type ServerConfig struct {
	Addr         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration
}

// DefaultServerConfig returns the default server configuration.
func DefaultServerConfig() ServerConfig {
	return ServerConfig{
		Addr:         "127.0.0.1:8080",
		ReadTimeout:  15 * time.Second,
		WriteTimeout: 15 * time.Second,
		IdleTimeout:  60 * time.Second,
	}
}

// NewServer creates a new API server.
func NewServer(cfg ServerConfig, handler *AppointmentHandler, logger *slog.Logger) *Server {
	if logger == nil {
		logger = slog.Default()
	}

	mux := http.NewServeMux()

	s := &Server{
		mux:     mux,
		logger:  logger,
		handler: handler,
	}

	s.registerRoutes()

	s.server = &http.Server{
		Addr:         cfg.Addr,
		Handler:      s.mux,
		ReadTimeout:  cfg.ReadTimeout,
		WriteTimeout: cfg.WriteTimeout,
		IdleTimeout:  cfg.IdleTimeout,
	}

	return s
}

// registerRoutes sets up the API routes.
func (s *Server) registerRoutes() {
	s.mux.HandleFunc("GET /health", s.handleHealth)

	s.mux.HandleFunc("POST /api/v1/appointments", s.handler.Book)
	s.mux.HandleFunc("GET /api/v1/appointments/conflicts", s.handler.CheckConflicts)
	s.mux.HandleFunc("GET /api/v1/appointments/alternatives", s.handler.FindAlternatives)
	s.mux.HandleFunc("GET /api/v1/appointments/{appointmentID}", s.handler.Get)
	s.mux.HandleFunc("PATCH /api/v1/appointments/{appointmentID}", s.handler.Update)
	s.mux.HandleFunc("DELETE /api/v1/appointments/{appointmentID}", s.handler.Delete)
	s.mux.HandleFunc("POST /api/v1/appointments/{appointmentID}/cancel", s.handler.Cancel)
	s.mux.HandleFunc("POST /api/v1/appointments/{appointmentID}/complete", s.handler.Complete)
	s.mux.HandleFunc("POST /api/v1/appointments/{appointmentID}/no-show", s.handler.MarkNoShow)

	s.mux.HandleFunc("GET /api/v1/agenda", s.handler.Agenda)
}

// handleHealth handles health check requests.
func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{
		"status": "healthy",
		"time":   time.Now().UTC().Format(time.RFC3339),
	})
}

// Start starts the API server.
func (s *Server) Start() error {
	s.logger.Info("starting API server", "addr", s.server.Addr)
	return s.server.ListenAndServe()
}

// Shutdown gracefully shuts down the server.
func (s *Server) Shutdown(ctx context.Context) error {
	s.logger.Info("shutting down API server")
	return s.server.Shutdown(ctx)
}

// writeJSON writes a JSON response.
func writeJSON(w http.ResponseWriter, status int, data any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if data != nil {
		if err := json.NewEncoder(w).Encode(data); err != nil {
			slog.Error("failed to encode JSON response", "error", err)
		}
	}
}

// Package server exposes a store over the admin REST contract:
//
//	GET    /api                 {"models": [...]}
//	GET    /api/{model}         [record, ...]
//	POST   /api/{model}         {"id": n, "message": "..."}
//	GET    /api/{model}/{id}    record
//	PUT    /api/{model}/{id}    {"message": "..."}
//	DELETE /api/{model}/{id}    {"message": "..."}
//
// Failures are reported as {"detail": "..."}.
package server

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
	"sync"
	"time"

	"github.com/studiowebux/restadmin/internal/store"
	"go.uber.org/zap"
)

// Server represents the CRUD HTTP server
type Server struct {
	store      *store.Store
	logger     *zap.Logger
	addr       string
	httpServer *http.Server
	listener   net.Listener
	logs       []RequestLog
	logsMutex  sync.RWMutex
}

// New creates a new server. A nil logger disables logging.
func New(st *store.Store, addr string, logger *zap.Logger) *Server {
	if addr == "" {
		addr = "localhost:8000"
	}
	if logger == nil {
		logger = zap.NewNop()
	}

	return &Server{
		store:  st,
		logger: logger,
		addr:   addr,
		logs:   make([]RequestLog, 0),
	}
}

// Handler returns the HTTP handler serving the admin API
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("GET /api", s.handleModels)
	mux.HandleFunc("GET /api/{model}", s.handleList)
	mux.HandleFunc("POST /api/{model}", s.handleCreate)
	mux.HandleFunc("GET /api/{model}/{id}", s.handleGet)
	mux.HandleFunc("PUT /api/{model}/{id}", s.handleUpdate)
	mux.HandleFunc("DELETE /api/{model}/{id}", s.handleDelete)
	return s.withLogging(mux)
}

// Start starts listening in the background
func (s *Server) Start() error {
	listener, err := net.Listen("tcp", s.addr)
	if err != nil {
		return fmt.Errorf("failed to listen on %s: %w", s.addr, err)
	}
	s.listener = listener

	s.httpServer = &http.Server{
		Handler:           s.Handler(),
		ReadHeaderTimeout: 10 * time.Second,
	}

	go func() {
		if err := s.httpServer.Serve(listener); err != nil && !errors.Is(err, http.ErrServerClosed) {
			s.logger.Error("server error", zap.Error(err))
		}
	}()

	s.logger.Info("server started", zap.String("addr", s.Address()), zap.Strings("models", s.store.Models()))
	return nil
}

// Stop stops the server
func (s *Server) Stop() error {
	if s.httpServer == nil {
		return nil
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	return s.httpServer.Shutdown(ctx)
}

// Address returns the base URL the server listens on
func (s *Server) Address() string {
	if s.listener != nil {
		return "http://" + s.listener.Addr().String()
	}
	return "http://" + s.addr
}

// GetLogs returns a copy of the logged requests
func (s *Server) GetLogs() []RequestLog {
	s.logsMutex.RLock()
	defer s.logsMutex.RUnlock()

	logs := make([]RequestLog, len(s.logs))
	copy(logs, s.logs)
	return logs
}

// statusRecorder captures the status written by a handler
type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(status int) {
	r.status = status
	r.ResponseWriter.WriteHeader(status)
}

func (s *Server) withLogging(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}

		next.ServeHTTP(rec, r)

		entry := RequestLog{
			Timestamp: start,
			Method:    r.Method,
			Path:      r.URL.Path,
			Model:     r.PathValue("model"),
			Status:    rec.status,
			Duration:  time.Since(start),
		}
		s.logRequest(entry)

		s.logger.Info("request",
			zap.String("method", entry.Method),
			zap.String("path", entry.Path),
			zap.Int("status", entry.Status),
			zap.Duration("duration", entry.Duration),
		)
	})
}

// logRequest adds a request to the log
func (s *Server) logRequest(entry RequestLog) {
	s.logsMutex.Lock()
	defer s.logsMutex.Unlock()

	s.logs = append(s.logs, entry)
	if len(s.logs) > maxLogs {
		s.logs = s.logs[len(s.logs)-maxLogs:]
	}
}

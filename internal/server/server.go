// Package server exposes the pipeline over HTTP. This is wiring only;
// all policy lives in the pipeline.
package server

import (
	"net/http"

	"go.uber.org/zap"

	"ideaforge/internal/pipeline"
	"ideaforge/internal/store"
)

// Server is the HTTP API over the pipeline and store.
type Server struct {
	pipeline       *pipeline.Pipeline
	store          *store.Store
	log            *zap.Logger
	allowedOrigins []string
}

// New wires the HTTP server. A nil logger is replaced with a no-op
// logger; empty allowedOrigins disables CORS headers.
func New(p *pipeline.Pipeline, st *store.Store, log *zap.Logger, allowedOrigins []string) *Server {
	if log == nil {
		log = zap.NewNop()
	}
	return &Server{
		pipeline:       p,
		store:          st,
		log:            log.Named("http"),
		allowedOrigins: allowedOrigins,
	}
}

// Handler builds the routed handler with CORS and request logging
// applied.
func (s *Server) Handler() http.Handler {
	mux := http.NewServeMux()
	mux.HandleFunc("POST /api/users", s.handleCreateUser)
	mux.HandleFunc("POST /api/ideas", s.handleCreateIdea)
	mux.HandleFunc("POST /api/ideas/{id}/tasks", s.handleCreateIdeaTasks)
	mux.HandleFunc("GET /api/ideas/{id}", s.handleGetIdea)
	mux.HandleFunc("GET /api/healthz", s.handleHealth)

	return s.withLogging(s.withCORS(mux))
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]bool{"ok": true})
}

// Package server exposes the document versioning operations over HTTP. Route
// paths are kept compatible with the original web client.
package server

import (
	"encoding/json"
	"log"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"

	"github.com/acroford/brs-agent/internal/database"
	"github.com/acroford/brs-agent/internal/generator"
	"github.com/acroford/brs-agent/internal/usecase"
)

// Server routes document API requests to the use case layer. Handlers are
// stateless: every operation re-reads store state, nothing is cached across
// requests.
type Server struct {
	router *mux.Router
	uc     *usecase.Document
	logger *log.Logger
}

// New builds the HTTP server. gen may be nil when no generation provider is
// configured; the implement endpoint then reports a missing API key.
func New(dbCtx *database.Context, gen generator.Generator, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.Default()
	}

	s := &Server{
		router: mux.NewRouter(),
		uc:     usecase.NewDocument(dbCtx, gen),
		logger: logger,
	}
	s.routes()
	return s
}

func (s *Server) routes() {
	s.router.Use(s.requestLogger)

	s.router.HandleFunc("/api/legacy/data/createFile", s.handleCreateFile).Methods(http.MethodPost)
	s.router.HandleFunc("/api/legacy/data/writeInitialData", s.handleWriteInitialData).Methods(http.MethodPost)
	s.router.HandleFunc("/api/legacy/data/publishNewVersion", s.handlePublishNewVersion).Methods(http.MethodPost)
	s.router.HandleFunc("/api/legacy/data/listFiles", s.handleListFiles).Methods(http.MethodGet)
	s.router.HandleFunc("/api/v2/models/implementOverview", s.handleImplementOverview).Methods(http.MethodPost)
	s.router.HandleFunc("/api/v3/editor/rawFetch", s.handleRawFetch).Methods(http.MethodGet)
}

// Handler returns the root handler for tests and embedding.
func (s *Server) Handler() http.Handler {
	return s.router
}

// Run starts the HTTP server on addr and blocks.
func (s *Server) Run(addr string) error {
	s.logger.Printf("BRS agent API listening on %s", addr)
	return http.ListenAndServe(addr, s.router)
}

func (s *Server) requestLogger(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requestID := uuid.NewString()
		s.logger.Printf("%s %s id=%s", r.Method, r.URL.Path, requestID)
		w.Header().Set("X-Request-ID", requestID)
		next.ServeHTTP(w, r)
	})
}

func writeJSON(w http.ResponseWriter, status int, payload any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(payload)
}

package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/nao1215/xreport/internal/catalog"
)

// BuildStore is the part of the catalog the server reads.
type BuildStore interface {
	ListBuilds(ctx context.Context, name string, limit int) ([]catalog.Build, error)
	GetBuild(ctx context.Context, id string) (*catalog.Build, error)
}

// Server is the HTTP server for written reports.
type Server struct {
	router chi.Router
	root   string
	builds BuildStore
	log    *slog.Logger
}

// Option configures a Server.
type Option func(*Server)

// WithRoot serves dir at "/".
func WithRoot(dir string) Option {
	return func(s *Server) {
		s.root = dir
	}
}

// WithBuildStore enables the build routes.
func WithBuildStore(store BuildStore) Option {
	return func(s *Server) {
		s.builds = store
	}
}

// WithLogger sets the request logger.
func WithLogger(log *slog.Logger) Option {
	return func(s *Server) {
		if log != nil {
			s.log = log
		}
	}
}

// New creates and configures the server.
func New(opts ...Option) *Server {
	s := &Server{log: slog.Default()}
	for _, opt := range opts {
		opt(s)
	}
	s.setupRoutes()
	return s
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

func (s *Server) setupRoutes() {
	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(middleware.RequestID)
	r.Use(RequestLogger(s.log))

	r.Get("/health", s.handleHealth)

	if s.builds != nil {
		r.Get("/api/builds", s.handleListBuilds)
		r.Get("/api/builds/{buildID}", s.handleGetBuild)
		r.Get("/builds/{buildID}", s.handleBuildRedirect)
		r.Get("/builds/{buildID}/*", s.handleBuildFiles)
	}

	if s.root != "" {
		r.Handle("/*", http.FileServer(http.Dir(s.root)))
	}

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleListBuilds(w http.ResponseWriter, r *http.Request) {
	limit := 0
	if v := r.URL.Query().Get("limit"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil || n < 0 {
			writeError(w, http.StatusBadRequest, "limit must be a non-negative integer")
			return
		}
		limit = n
	}

	builds, err := s.builds.ListBuilds(r.Context(), r.URL.Query().Get("name"), limit)
	if err != nil {
		s.log.Error("list builds failed", "error", err)
		writeError(w, http.StatusInternalServerError, "failed to list builds")
		return
	}
	if builds == nil {
		builds = []catalog.Build{}
	}
	writeJSON(w, http.StatusOK, builds)
}

func (s *Server) handleGetBuild(w http.ResponseWriter, r *http.Request) {
	b, ok := s.lookupBuild(w, r)
	if !ok {
		return
	}
	writeJSON(w, http.StatusOK, b)
}

func (s *Server) handleBuildRedirect(w http.ResponseWriter, r *http.Request) {
	http.Redirect(w, r, r.URL.Path+"/", http.StatusMovedPermanently)
}

func (s *Server) handleBuildFiles(w http.ResponseWriter, r *http.Request) {
	b, ok := s.lookupBuild(w, r)
	if !ok {
		return
	}
	prefix := "/builds/" + b.ID
	http.StripPrefix(prefix, http.FileServer(http.Dir(b.Dir))).ServeHTTP(w, r)
}

// lookupBuild writes an error response and returns false when the build
// of the request cannot be loaded.
func (s *Server) lookupBuild(w http.ResponseWriter, r *http.Request) (*catalog.Build, bool) {
	id := chi.URLParam(r, "buildID")
	b, err := s.builds.GetBuild(r.Context(), id)
	if errors.Is(err, catalog.ErrBuildNotFound) {
		writeError(w, http.StatusNotFound, "build not found")
		return nil, false
	}
	if err != nil {
		s.log.Error("get build failed", "build", id, "error", err)
		writeError(w, http.StatusInternalServerError, "failed to load build")
		return nil, false
	}
	return b, true
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

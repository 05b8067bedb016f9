package web

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"docspell/internal/model"
	"docspell/internal/report"
)

// DefaultAddr is the listen address used when none is given.
const DefaultAddr = "localhost:8080"

// Server serves a finished run over HTTP.
type Server struct {
	router chi.Router
	result model.RunResult
	files  map[string]bool
	log    *slog.Logger
}

// NewServer creates the HTTP handler for result.
func NewServer(result model.RunResult, log *slog.Logger) *Server {
	if log == nil {
		log = slog.Default()
	}
	s := &Server{
		result: result,
		files:  make(map[string]bool, len(result.Files)),
		log:    log,
	}
	for _, fr := range result.Files {
		s.files[fr.Path] = true
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
	r.Get("/", s.handleText)
	r.Get("/api/report", s.handleReport)
	r.Get("/api/line-context", s.handleLineContext)

	s.router = r
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "application/json")
	w.Write([]byte(`{"status":"ok"}`))
}

func (s *Server) handleText(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	w.Write([]byte(report.GenerateReport(s.result)))
}

func (s *Server) handleReport(w http.ResponseWriter, r *http.Request) {
	response := struct {
		model.RunResult
		Report  string `json:"report"`
		Version string `json:"version"`
	}{
		RunResult: s.result,
		Report:    report.GenerateReport(s.result),
		Version:   model.Version,
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(response)
}

// handleLineContext only serves files that were part of the run.
func (s *Server) handleLineContext(w http.ResponseWriter, r *http.Request) {
	path := r.URL.Query().Get("path")
	lineNumStr := r.URL.Query().Get("line")
	if path == "" || lineNumStr == "" {
		jsonError(w, "path and line are required", http.StatusBadRequest)
		return
	}
	if !s.files[path] {
		jsonError(w, "path was not checked", http.StatusNotFound)
		return
	}
	lineNum, err := strconv.Atoi(lineNumStr)
	if err != nil {
		jsonError(w, "invalid line number", http.StatusBadRequest)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	json.NewEncoder(w).Encode(model.GetLineContext(path, lineNum))
}

func jsonError(w http.ResponseWriter, msg string, code int) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(code)
	json.NewEncoder(w).Encode(map[string]string{"error": msg})
}

// StartServer serves handler on addr until ctx is cancelled.
func StartServer(ctx context.Context, addr string, handler http.Handler, log *slog.Logger) error {
	if addr == "" {
		addr = DefaultAddr
	}
	httpServer := &http.Server{
		Addr:        addr,
		Handler:     handler,
		ReadTimeout: 10 * time.Second,
		IdleTimeout: 60 * time.Second,
	}

	go func() {
		<-ctx.Done()
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
		defer cancel()
		httpServer.Shutdown(shutdownCtx)
	}()

	log.Info("starting web view", "addr", "http://"+addr)
	if err := httpServer.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return err
	}
	return nil
}

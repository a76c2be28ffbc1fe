// Package http exposes the scrape job API over HTTP.
package http

import (
	"context"
	"encoding/json"
	"log/slog"
	"net"
	"net/http"
	"time"

	"github.com/gorilla/mux"
	"github.com/rmehra/pricekart"
	"github.com/rs/cors"
)

// Server serves the scrape job API.
type Server struct {
	server *http.Server
	ln     net.Listener

	// Addr is the bind address, e.g. ":8080".
	Addr string

	Jobs   pricekart.JobService
	Logger *slog.Logger
}

// NewServer creates a Server with its routes registered.
func NewServer() *Server {
	s := &Server{
		Logger: slog.Default(),
	}

	router := mux.NewRouter()
	router.HandleFunc("/health", s.handleHealth).Methods(http.MethodGet)
	router.HandleFunc("/api/scrape", s.handleScrape).Methods(http.MethodPost)
	router.HandleFunc("/api/jobs", s.handleListJobs).Methods(http.MethodGet)
	router.HandleFunc("/api/jobs/{id}", s.handleGetJob).Methods(http.MethodGet)
	router.Use(s.logRequests)

	handler := cors.Default().Handler(router)
	s.server = &http.Server{
		Handler:           handler,
		ReadHeaderTimeout: 5 * time.Second,
	}
	return s
}

// Handler returns the root handler, exposed for tests.
func (s *Server) Handler() http.Handler {
	return s.server.Handler
}

// Open begins listening on Addr. It does not block.
func (s *Server) Open() error {
	ln, err := net.Listen("tcp", s.Addr)
	if err != nil {
		return err
	}
	s.ln = ln

	go func() {
		if err := s.server.Serve(ln); err != nil && err != http.ErrServerClosed {
			s.Logger.Error("server terminated", "error", err)
		}
	}()
	return nil
}

// Close gracefully shuts the server down.
func (s *Server) Close(ctx context.Context) error {
	return s.server.Shutdown(ctx)
}

// URL returns the server's base URL once Open has succeeded.
func (s *Server) URL() string {
	if s.ln == nil {
		return ""
	}
	return "http://" + s.ln.Addr().String()
}

// scrapeRequest is the body of POST /api/scrape.
type scrapeRequest struct {
	Product  string `json:"product"`
	Location string `json:"location"`
}

func (s *Server) handleScrape(w http.ResponseWriter, r *http.Request) {
	var req scrapeRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.writeError(w, r, pricekart.Errorf(pricekart.EINVALID, "invalid request body"))
		return
	}

	job, err := s.Jobs.Enqueue(r.Context(), req.Product, req.Location)
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	s.writeJSON(w, http.StatusAccepted, map[string]string{
		"jobId":  job.ID,
		"status": string(job.Status),
	})
}

func (s *Server) handleGetJob(w http.ResponseWriter, r *http.Request) {
	id := mux.Vars(r)["id"]

	job, err := s.Jobs.FindJobByID(r.Context(), id)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, job)
}

func (s *Server) handleListJobs(w http.ResponseWriter, r *http.Request) {
	jobs, err := s.Jobs.FindJobs(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]any{
		"jobs":  jobs,
		"count": len(jobs),
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.Logger.Error("write response", "error", err)
	}
}

// errorResponse is the body returned for all error statuses.
type errorResponse struct {
	Error string `json:"error"`
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := pricekart.ErrorCode(err)
	status := statusFromCode(code)
	if status >= http.StatusInternalServerError {
		s.Logger.Error("request failed", "method", r.Method, "path", r.URL.Path, "error", err)
	}
	s.writeJSON(w, status, errorResponse{Error: pricekart.ErrorMessage(err)})
}

// statusFromCode maps application error codes to HTTP statuses.
func statusFromCode(code string) int {
	switch code {
	case pricekart.EINVALID:
		return http.StatusBadRequest
	case pricekart.ENOTFOUND:
		return http.StatusNotFound
	case pricekart.EUNAVAILABLE:
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

// logRequests logs one line per request.
func (s *Server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		begin := time.Now()
		next.ServeHTTP(w, r)
		s.Logger.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"duration", time.Since(begin),
		)
	})
}

// Package server exposes the solver over HTTP.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/askiada/bigm"
	"github.com/askiada/bigm/internal/metrics"
)

// DefaultMaxBodyBytes bounds the size of a problem document.
const DefaultMaxBodyBytes = 1 << 20

// Solver is the part of *bigm.Solver the handlers need.
type Solver interface {
	Solve(ctx context.Context, p bigm.Problem) (*bigm.Result, error)
}

// Options tunes NewHandler. The zero value is usable.
type Options struct {
	// Metrics is mounted on /metrics when set.
	Metrics      http.Handler
	Logger       *slog.Logger
	MaxBodyBytes int64
}

type server struct {
	solver  Solver
	logger  *slog.Logger
	maxBody int64
}

// ErrorResponse is the body of every non 2xx answer.
type ErrorResponse struct {
	Error string `json:"error"`
	// Code is one of the metrics outcome values, or "bad_request" for undecodable bodies.
	Code string `json:"code"`
}

// NewHandler routes POST /v1/solve, GET /healthz and GET /metrics.
func NewHandler(solver Solver, opts Options) http.Handler {
	s := &server{solver: solver, logger: opts.Logger, maxBody: opts.MaxBodyBytes}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	if s.maxBody <= 0 {
		s.maxBody = DefaultMaxBodyBytes
	}

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.logRequests)

	r.Get("/healthz", func(w http.ResponseWriter, r *http.Request) {
		writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
	})
	if opts.Metrics != nil {
		r.Method(http.MethodGet, "/metrics", opts.Metrics)
	}
	r.Route("/v1", func(r chi.Router) {
		r.Post("/solve", s.solve)
	})
	return r
}

func (s *server) solve(w http.ResponseWriter, r *http.Request) {
	var p bigm.Problem
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, s.maxBody))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&p); err != nil {
		writeJSON(w, http.StatusBadRequest, ErrorResponse{Error: "invalid request body: " + err.Error(), Code: "bad_request"})
		return
	}

	res, err := s.solver.Solve(r.Context(), p)
	if err != nil {
		writeJSON(w, statusFor(err), ErrorResponse{Error: err.Error(), Code: metrics.Outcome(err)})
		return
	}
	writeJSON(w, http.StatusOK, res)
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, bigm.ErrInvalidProblem):
		return http.StatusBadRequest
	case errors.Is(err, bigm.ErrUnbounded), errors.Is(err, bigm.ErrInfeasible), errors.Is(err, bigm.ErrIterationLimit):
		return http.StatusUnprocessableEntity
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *server) logRequests(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)
		s.logger.Info("http request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", ww.Status(),
			"request_id", middleware.GetReqID(r.Context()),
			"elapsed", time.Since(start))
	})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

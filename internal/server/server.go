// Package server exposes batch generation over HTTP.
//
// Routes:
//
//	GET /healthz                               liveness probe
//	GET /tiers                                 supported tier names
//	GET /batches?count=&tier=&seed=&full_range= generate (or replay) a batch
//
// Batches are returned as JSON. Errors are JSON objects carrying the error
// code and message, with 400 for bad input and 422 when a batch cannot be
// built from valid input.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"strconv"
	"time"

	"github.com/charmbracelet/log"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"

	"github.com/eskillate/lowpop/pkg/config"
	lperrors "github.com/eskillate/lowpop/pkg/errors"
	"github.com/eskillate/lowpop/pkg/observability"
	"github.com/eskillate/lowpop/pkg/pipeline"
	"github.com/eskillate/lowpop/pkg/tile"
)

// DefaultTimeout bounds the time spent on one request.
const DefaultTimeout = 10 * time.Second

// Server routes HTTP requests to a pipeline runner.
type Server struct {
	runner *pipeline.Runner
	cfg    config.Config
	logger *log.Logger
	router chi.Router
}

// New creates a server generating batches with cfg.
func New(runner *pipeline.Runner, cfg config.Config, logger *log.Logger) *Server {
	if logger == nil {
		logger = log.NewWithOptions(io.Discard, log.Options{})
	}
	s := &Server{
		runner: runner,
		cfg:    cfg,
		logger: logger,
	}
	s.router = s.routes()
	return s
}

func (s *Server) routes() chi.Router {
	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.Recoverer)
	r.Use(s.observe)
	r.Use(middleware.Timeout(DefaultTimeout))

	r.Get("/healthz", s.handleHealth)
	r.Get("/tiers", s.handleTiers)
	r.Get("/batches", s.handleBatch)
	return r
}

// ServeHTTP implements http.Handler.
func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	s.router.ServeHTTP(w, r)
}

// observe reports requests to the HTTP hooks and the debug log.
func (s *Server) observe(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		hooks := observability.HTTP()
		hooks.OnRequest(r.Context(), r.Method, r.URL.Path)

		ww := middleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		elapsed := time.Since(start)
		hooks.OnResponse(r.Context(), r.Method, r.URL.Path, status, elapsed)
		s.logger.Debug("request",
			"method", r.Method,
			"path", r.URL.Path,
			"status", status,
			"duration", elapsed,
			"request_id", middleware.GetReqID(r.Context()))
	})
}

func (s *Server) handleHealth(w http.ResponseWriter, _ *http.Request) {
	writeJSON(w, http.StatusOK, map[string]string{"status": "ok"})
}

func (s *Server) handleTiers(w http.ResponseWriter, _ *http.Request) {
	names := make([]string, 0, len(tile.Tiers()))
	for _, t := range tile.Tiers() {
		names = append(names, t.String())
	}
	writeJSON(w, http.StatusOK, map[string][]string{"tiers": names})
}

func (s *Server) handleBatch(w http.ResponseWriter, r *http.Request) {
	opts, err := s.batchOptions(r)
	if err != nil {
		s.writeError(w, err)
		return
	}

	res, err := s.runner.Execute(r.Context(), opts)
	if err != nil {
		s.writeError(w, err)
		return
	}

	if res.CacheInfo.Key != "" {
		w.Header().Set("X-Cache", cacheStatus(res.CacheInfo.Hit))
	}
	writeJSON(w, http.StatusOK, res)
}

// batchOptions reads pipeline options from the query string.
func (s *Server) batchOptions(r *http.Request) (pipeline.Options, error) {
	q := r.URL.Query()
	cfg := s.cfg
	opts := pipeline.Options{
		Count:  pipeline.DefaultCount,
		Tier:   pipeline.DefaultTier,
		Config: &cfg,
		Logger: s.logger,
	}

	if v := q.Get("count"); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			return opts, lperrors.New(lperrors.ErrCodeInvalidInput, "count must be an integer (got %q)", v)
		}
		opts.Count = n
	}
	if v := q.Get("tier"); v != "" {
		t, err := tile.ParseTier(v)
		if err != nil {
			return opts, err
		}
		opts.Tier = t
	}
	if v := q.Get("seed"); v != "" {
		seed, err := strconv.ParseUint(v, 10, 64)
		if err != nil {
			return opts, lperrors.New(lperrors.ErrCodeInvalidInput, "seed must be an unsigned integer (got %q)", v)
		}
		opts.Seed = seed
	}

	var err error
	if opts.FullRange, err = boolParam(q.Get("full_range")); err != nil {
		return opts, err
	}
	if opts.Refresh, err = boolParam(q.Get("refresh")); err != nil {
		return opts, err
	}
	return opts, nil
}

func boolParam(v string) (bool, error) {
	if v == "" {
		return false, nil
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return false, lperrors.New(lperrors.ErrCodeInvalidInput, "expected a boolean (got %q)", v)
	}
	return b, nil
}

func cacheStatus(hit bool) string {
	if hit {
		return "hit"
	}
	return "miss"
}

// errorBody is the JSON shape of error responses.
type errorBody struct {
	Code  string `json:"code"`
	Error string `json:"error"`
}

func (s *Server) writeError(w http.ResponseWriter, err error) {
	status := StatusFor(err)
	code := lperrors.GetCode(err)
	if code == "" {
		code = lperrors.ErrCodeInternal
	}
	if status >= http.StatusInternalServerError {
		s.logger.Error("batch failed", "error", err)
	}
	writeJSON(w, status, errorBody{Code: string(code), Error: lperrors.UserMessage(err)})
}

// StatusFor maps an error to an HTTP status code.
func StatusFor(err error) int {
	switch lperrors.GetCode(err) {
	case lperrors.ErrCodeInvalidInput, lperrors.ErrCodeUnsupportedTier:
		return http.StatusBadRequest
	case lperrors.ErrCodeGenerationExhausted, lperrors.ErrCodeInsufficientSlotSpace, lperrors.ErrCodeSlotsExhausted:
		return http.StatusUnprocessableEntity
	}
	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return http.StatusServiceUnavailable
	}
	return http.StatusInternalServerError
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

package http

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"
	"net/http"
	"strconv"
	"strings"

	"github.com/aretw0/bigroot"
	"github.com/aretw0/bigroot/internal/logging"
	"github.com/aretw0/bigroot/pkg/bigint"
	"github.com/aretw0/bigroot/pkg/domain"
	"github.com/aretw0/bigroot/pkg/ports"
	"github.com/go-chi/chi/v5"
	"github.com/go-chi/chi/v5/middleware"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// DefaultMaxBits caps the precision a single request may ask for.
const DefaultMaxBits = 1 << 20

// maxBodyBytes caps POST bodies (and therefore input size).
const maxBodyBytes = 1 << 20

// Calculator is the part of bigroot.Calculator the server needs.
type Calculator interface {
	Compute(ctx context.Context, q domain.Query) (*domain.Report, error)
}

// Server serves square roots over HTTP.
type Server struct {
	Calculator Calculator
	Store      ports.ResultStore
	Gatherer   prometheus.Gatherer
	MaxBits    uint64
	Logger     *slog.Logger
}

// Option configures the Server.
type Option func(*Server)

// WithStore exposes the cache keys on GET /cache.
func WithStore(store ports.ResultStore) Option {
	return func(s *Server) {
		s.Store = store
	}
}

// WithGatherer serves the gatherer's metrics on GET /metrics.
func WithGatherer(g prometheus.Gatherer) Option {
	return func(s *Server) {
		s.Gatherer = g
	}
}

// WithMaxBits sets the precision limit per request.
func WithMaxBits(bits uint64) Option {
	return func(s *Server) {
		s.MaxBits = bits
	}
}

// WithLogger sets the request logger.
func WithLogger(logger *slog.Logger) Option {
	return func(s *Server) {
		s.Logger = logger
	}
}

// NewHandler creates the HTTP handler for calc.
func NewHandler(calc Calculator, opts ...Option) http.Handler {
	s := &Server{
		Calculator: calc,
		MaxBits:    DefaultMaxBits,
		Logger:     logging.NewNop(),
	}
	for _, opt := range opts {
		opt(s)
	}

	r := chi.NewRouter()
	r.Use(middleware.Recoverer)
	r.Use(enableCORS)

	sqrt := chi.Chain()
	if router, err := loadRouter(); err != nil {
		s.Logger.Error("request validation disabled", "err", err)
	} else {
		sqrt = chi.Chain(s.validateRequest(router))
	}
	r.With(sqrt...).Get("/sqrt", s.GetSqrt)
	r.With(sqrt...).Post("/sqrt", s.PostSqrt)
	r.Get("/openapi.yaml", s.GetOpenAPI)
	r.Get("/healthz", s.GetHealth)
	r.Get("/info", s.GetInfo)
	if s.Store != nil {
		r.Get("/cache", s.GetCache)
	}
	if s.Gatherer != nil {
		r.Handle("/metrics", promhttp.HandlerFor(s.Gatherer, promhttp.HandlerOpts{}))
	}
	return r
}

func enableCORS(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", "*")
		w.Header().Set("Access-Control-Allow-Methods", "GET, POST, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type")
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}
		next.ServeHTTP(w, r)
	})
}

// SqrtRequest is the POST /sqrt body. Numbers may also be sent as JSON strings.
type SqrtRequest struct {
	N      json.Number `json:"n"`
	Bits   uint64      `json:"bits,omitempty"`
	Digits uint64      `json:"digits,omitempty"`
	Base   int         `json:"base,omitempty"`
	Golden bool        `json:"golden,omitempty"`
}

// GetSqrt handles GET /sqrt?n=&bits=&digits=&base=&golden=.
func (s *Server) GetSqrt(w http.ResponseWriter, r *http.Request) {
	q := r.URL.Query()
	req := SqrtRequest{N: json.Number(q.Get("n"))}

	var err error
	if req.Bits, err = parseUint(q.Get("bits")); err != nil {
		s.fail(w, fmt.Errorf("bits: %w", err))
		return
	}
	if req.Digits, err = parseUint(q.Get("digits")); err != nil {
		s.fail(w, fmt.Errorf("digits: %w", err))
		return
	}
	if v := q.Get("base"); v != "" {
		if req.Base, err = strconv.Atoi(v); err != nil {
			s.fail(w, fmt.Errorf("base %q: %w", v, domain.ErrInvalidArgument))
			return
		}
	}
	if v := q.Get("golden"); v != "" {
		if req.Golden, err = strconv.ParseBool(v); err != nil {
			s.fail(w, fmt.Errorf("golden %q: %w", v, domain.ErrInvalidArgument))
			return
		}
	}
	s.compute(w, r, req)
}

// PostSqrt handles POST /sqrt with a JSON SqrtRequest.
func (s *Server) PostSqrt(w http.ResponseWriter, r *http.Request) {
	var req SqrtRequest
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	dec.UseNumber()
	dec.DisallowUnknownFields()
	if err := dec.Decode(&req); err != nil {
		s.fail(w, fmt.Errorf("invalid request body: %v: %w", err, domain.ErrInvalidArgument))
		return
	}
	s.compute(w, r, req)
}

func (s *Server) compute(w http.ResponseWriter, r *http.Request, req SqrtRequest) {
	n, err := bigint.Parse(req.N.String())
	if err != nil {
		s.fail(w, err)
		return
	}
	base := req.Base
	if base == 0 {
		base = domain.DefaultBase
	}
	if err := domain.ValidateBase(base); err != nil {
		s.fail(w, err)
		return
	}
	bits := domain.ResolveBits(req.Bits, req.Digits, base)
	if bits > s.MaxBits {
		s.fail(w, fmt.Errorf("%d bits exceed the limit of %d: %w", bits, s.MaxBits, domain.ErrInvalidArgument))
		return
	}

	report, err := s.Calculator.Compute(r.Context(), domain.Query{
		Input:          n,
		FractionalBits: bits,
		Base:           base,
		Golden:         req.Golden,
	})
	if err != nil {
		s.fail(w, err)
		return
	}

	s.Logger.Debug("sqrt served", "input_bits", n.BitLen(), "bits", report.Bits, "cached", report.Cached)
	writeJSON(w, http.StatusOK, report)
}

// GetHealth handles GET /healthz.
func (s *Server) GetHealth(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Content-Type", "text/plain; charset=utf-8")
	_, _ = w.Write([]byte("ok"))
}

// GetInfo handles GET /info.
func (s *Server) GetInfo(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"app":      "bigroot-http",
		"version":  strings.TrimSpace(bigroot.Version),
		"max_bits": s.MaxBits,
	})
}

// GetCache handles GET /cache, listing the cached result keys.
func (s *Server) GetCache(w http.ResponseWriter, r *http.Request) {
	keys, err := s.Store.List(r.Context())
	if err != nil {
		s.fail(w, err)
		return
	}
	writeJSON(w, http.StatusOK, map[string]any{"keys": keys, "count": len(keys)})
}

// fail maps domain errors to status codes.
func (s *Server) fail(w http.ResponseWriter, err error) {
	status := http.StatusInternalServerError
	switch {
	case errors.Is(err, domain.ErrInvalidArgument), errors.Is(err, domain.ErrAllocationFailure):
		status = http.StatusBadRequest
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		status = http.StatusServiceUnavailable
	}
	if status == http.StatusInternalServerError {
		s.Logger.Error("request failed", "err", err)
	} else {
		s.Logger.Debug("request rejected", "status", status, "err", err)
	}
	writeJSON(w, status, map[string]string{"error": err.Error()})
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func parseUint(v string) (uint64, error) {
	if v == "" {
		return 0, nil
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%q is not a count: %w", v, domain.ErrInvalidArgument)
	}
	return n, nil
}

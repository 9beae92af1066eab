// Package server exposes the emoji matcher as a small HTTP API with
// Prometheus metrics, for callers that want a shared lookup service
// instead of linking the library.
package server

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"github.com/rs/zerolog/log"
	"golang.org/x/time/rate"

	demoji "github.com/AIM-Technologies-CO/demoji"
)

const maxBodyBytes = 1 << 20 // requests are text payloads, cap at 1 MiB

// Server serves emoji find/replace operations over HTTP.
type Server struct {
	scanner *demoji.Scanner
	addr    string
	limiter *rate.Limiter
}

// New creates a Server around an initialized Scanner. rps and burst bound
// the aggregate request rate; rps <= 0 disables limiting.
func New(scanner *demoji.Scanner, addr string, rps float64, burst int) *Server {
	var limiter *rate.Limiter
	if rps > 0 {
		limiter = rate.NewLimiter(rate.Limit(rps), burst)
	}
	return &Server{scanner: scanner, addr: addr, limiter: limiter}
}

// Router builds the HTTP routing table.
func (s *Server) Router() http.Handler {
	r := chi.NewRouter()
	r.Handle("/metrics", promhttp.Handler())
	r.Get("/healthz", s.handleHealth)

	r.Group(func(r chi.Router) {
		r.Use(s.throttle)
		r.Post("/v1/find", s.instrument("find", s.handleFind))
		r.Post("/v1/list", s.instrument("list", s.handleList))
		r.Post("/v1/replace", s.instrument("replace", s.handleReplace))
	})
	return r
}

// Run serves until ctx is cancelled, then shuts down gracefully.
func (s *Server) Run(ctx context.Context) error {
	srv := &http.Server{
		Addr:              s.addr,
		Handler:           s.Router(),
		ReadHeaderTimeout: 5 * time.Second,
	}

	errCh := make(chan error, 1)
	go func() {
		log.Info().Str("address", s.addr).Int("sequences", s.scanner.Len()).Msg("Starting demoji HTTP server")
		errCh <- srv.ListenAndServe()
	}()

	select {
	case err := <-errCh:
		if err != nil && !errors.Is(err, http.ErrServerClosed) {
			return fmt.Errorf("serving on %s: %w", s.addr, err)
		}
		return nil
	case <-ctx.Done():
		shutdownCtx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()
		log.Info().Msg("Shutting down demoji HTTP server")
		return srv.Shutdown(shutdownCtx)
	}
}

func (s *Server) throttle(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if s.limiter != nil && !s.limiter.Allow() {
			rateLimited.Inc()
			writeError(w, http.StatusTooManyRequests, "rate limit exceeded")
			return
		}
		next.ServeHTTP(w, r)
	})
}

// instrument wraps a handler with request logging and metrics.
func (s *Server) instrument(route string, next http.HandlerFunc) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		sw := &statusWriter{ResponseWriter: w, status: http.StatusOK}
		next(sw, r)
		elapsed := time.Since(start)
		requestsTotal.WithLabelValues(route, strconv.Itoa(sw.status)).Inc()
		requestDuration.WithLabelValues(route).Observe(elapsed.Seconds())
		log.Debug().Str("route", route).Int("status", sw.status).Dur("elapsed", elapsed).Msg("Handled request")
	}
}

type statusWriter struct {
	http.ResponseWriter
	status int
}

func (w *statusWriter) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

type textRequest struct {
	Text string `json:"text"`
	Desc bool   `json:"desc"`
}

type replaceRequest struct {
	Text            string `json:"text"`
	Replacement     string `json:"replacement"`
	WithDescription bool   `json:"with_description"`
	Separator       string `json:"separator"`
}

func (s *Server) handleHealth(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]any{
		"status":    "ok",
		"sequences": s.scanner.Len(),
		"refreshed": demoji.LastDownloadedTimestamp().Format(time.RFC3339Nano),
	})
}

func (s *Server) handleFind(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if !decode(w, r, &req) {
		return
	}
	found := s.scanner.FindAll(req.Text)
	sequencesMatched.Add(float64(len(found)))
	writeJSON(w, http.StatusOK, map[string]any{
		"matches": found,
		"count":   len(found),
	})
}

func (s *Server) handleList(w http.ResponseWriter, r *http.Request) {
	var req textRequest
	if !decode(w, r, &req) {
		return
	}
	occurrences := s.scanner.FindAllList(req.Text, req.Desc)
	if occurrences == nil {
		occurrences = []string{}
	}
	sequencesMatched.Add(float64(len(occurrences)))
	writeJSON(w, http.StatusOK, map[string]any{
		"occurrences": occurrences,
		"count":       len(occurrences),
	})
}

func (s *Server) handleReplace(w http.ResponseWriter, r *http.Request) {
	var req replaceRequest
	if !decode(w, r, &req) {
		return
	}
	var result string
	if req.WithDescription {
		sep := req.Separator
		if sep == "" {
			sep = ":"
		}
		result = s.scanner.ReplaceWithDesc(req.Text, sep)
	} else {
		result = s.scanner.Replace(req.Text, req.Replacement)
	}
	writeJSON(w, http.StatusOK, map[string]any{"result": result})
}

func decode(w http.ResponseWriter, r *http.Request, dst any) bool {
	dec := json.NewDecoder(http.MaxBytesReader(w, r.Body, maxBodyBytes))
	if err := dec.Decode(dst); err != nil {
		writeError(w, http.StatusBadRequest, "invalid JSON body: "+err.Error())
		return false
	}
	return true
}

func writeJSON(w http.ResponseWriter, status int, body any) {
	w.Header().Set("Content-Type", "application/json; charset=utf-8")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(body); err != nil {
		log.Error().Err(err).Msg("Failed to encode response")
	}
}

func writeError(w http.ResponseWriter, status int, msg string) {
	writeJSON(w, status, map[string]string{"error": msg})
}

package main

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
)

type ctxKey int

const requestIDKey ctxKey = iota

// requestIDFromContext returns the id assigned by requestIDMiddleware.
func requestIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(requestIDKey).(string)
	return id, ok
}

type server struct {
	service *PlanService
	logger  *slog.Logger
	origin  string
	maxBody int64
}

// newRouter wires the planner endpoints. metrics may be nil, in which case
// /metrics is not served. Plan request bodies larger than maxBody bytes are
// rejected.
func newRouter(service *PlanService, metrics *Metrics, logger *slog.Logger, corsOrigin string, maxBody int64) *mux.Router {
	s := &server{service: service, logger: logger, origin: corsOrigin, maxBody: maxBody}

	r := mux.NewRouter()
	r.Use(s.requestIDMiddleware, s.corsMiddleware)

	r.HandleFunc("/make_plan", s.makePlanHandler).Methods(http.MethodPost, http.MethodOptions)
	r.HandleFunc("/health", s.healthHandler).Methods(http.MethodGet, http.MethodOptions)
	r.HandleFunc("/map", s.mapHandler).Methods(http.MethodGet, http.MethodOptions)
	if metrics != nil {
		r.Handle("/metrics", metrics.Handler()).Methods(http.MethodGet)
	}
	return r
}

func (s *server) requestIDMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get("X-Request-Id")
		if id == "" {
			id = uuid.NewString()
		}
		w.Header().Set("X-Request-Id", id)
		next.ServeHTTP(w, r.WithContext(context.WithValue(r.Context(), requestIDKey, id)))
	})
}

// corsMiddleware adds CORS headers to allow frontend requests
func (s *server) corsMiddleware(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Access-Control-Allow-Origin", s.origin)
		w.Header().Set("Access-Control-Allow-Methods", "POST, GET, OPTIONS")
		w.Header().Set("Access-Control-Allow-Headers", "Content-Type, X-Request-Id")

		// Handle preflight
		if r.Method == http.MethodOptions {
			w.WriteHeader(http.StatusOK)
			return
		}

		next.ServeHTTP(w, r)
	})
}

// POST /make_plan - Compute a plan on the supplied costmap or the static map
func (s *server) makePlanHandler(w http.ResponseWriter, r *http.Request) {
	r.Body = http.MaxBytesReader(w, r.Body, s.maxBody)

	var req PlanRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		s.logger.Warn("invalid request body", slog.Any("err", err))
		var tooLarge *http.MaxBytesError
		if errors.As(err, &tooLarge) {
			s.writeError(w, http.StatusRequestEntityTooLarge, "request body too large")
			return
		}
		s.writeError(w, http.StatusBadRequest, "invalid request body")
		return
	}

	resp, err := s.service.MakePlan(r.Context(), req)
	if err != nil {
		s.writeError(w, statusFor(err), err.Error())
		return
	}
	s.writeJSON(w, http.StatusOK, resp)
}

// GET /health - Health check endpoint
func (s *server) healthHandler(w http.ResponseWriter, r *http.Request) {
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"status":       "ready",
		"hasStaticMap": s.service.StaticMap() != nil,
		"numZones":     s.service.ZoneCount(),
	})
}

// GET /map - Describe the loaded static map
func (s *server) mapHandler(w http.ResponseWriter, r *http.Request) {
	m := s.service.StaticMap()
	if m == nil {
		s.writeError(w, http.StatusNotFound, "no static map loaded")
		return
	}
	s.writeJSON(w, http.StatusOK, map[string]interface{}{
		"width":      m.Costmap.Width(),
		"height":     m.Costmap.Height(),
		"resolution": m.Costmap.Resolution(),
		"origin":     m.Costmap.Origin(),
		"metadata":   m.Metadata,
	})
}

func statusFor(err error) int {
	switch {
	case errors.Is(err, ErrInvalidInput), errors.Is(err, ErrMalformedGrid):
		return http.StatusBadRequest
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func (s *server) writeError(w http.ResponseWriter, status int, msg string) {
	s.writeJSON(w, status, map[string]string{"error": msg})
}

func (s *server) writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	if err := json.NewEncoder(w).Encode(v); err != nil {
		s.logger.Error("failed to write response", slog.Int("status", status), slog.Any("err", err))
	}
}

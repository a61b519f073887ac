package main

import (
	"context"
	"fmt"
	"log/slog"
	"sync"
	"time"
)

// PlanRequest mirrors the path planning plugin request: a flattened costmap,
// its dimensions and the start and goal cell indices.
type PlanRequest struct {
	Costmap      []int `json:"costmap_ros"`
	Width        int   `json:"width"`
	Height       int   `json:"height"`
	Start        int   `json:"start"`
	Goal         int   `json:"goal"`
	Trace        bool  `json:"trace,omitempty"`
	UseStaticMap bool  `json:"use_static_map,omitempty"`
}

// PlanResponse carries the computed plan. Plan is empty when no path exists.
type PlanResponse struct {
	Plan      []int        `json:"plan"`
	Found     bool         `json:"found"`
	Cost      float64      `json:"cost"`
	Expanded  int          `json:"expanded"`
	ElapsedMS float64      `json:"elapsed_ms"`
	Trace     []TraceEvent `json:"trace,omitempty"`
}

var errNoStaticMap = fmt.Errorf("%w: no static map loaded", ErrInvalidInput)

// PlanService turns planning requests into searches. It is safe for
// concurrent use: every request gets its own grid and search state.
type PlanService struct {
	cfg       Config
	heuristic Heuristic
	zones     *SpatialIndex
	metrics   *Metrics
	logger    *slog.Logger

	mu        sync.RWMutex
	staticMap *StaticMap
}

// NewPlanService validates cfg and builds a service. zones and metrics may be nil.
func NewPlanService(cfg Config, zones *SpatialIndex, metrics *Metrics, logger *slog.Logger) (*PlanService, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	h, err := ParseHeuristic(cfg.Heuristic)
	if err != nil {
		return nil, err
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &PlanService{
		cfg:       cfg,
		heuristic: h,
		zones:     zones,
		metrics:   metrics,
		logger:    logger,
	}, nil
}

// SetStaticMap replaces the map used by requests with UseStaticMap.
func (s *PlanService) SetStaticMap(m *StaticMap) {
	s.mu.Lock()
	s.staticMap = m
	s.mu.Unlock()
}

// StaticMap returns the loaded static map, or nil.
func (s *PlanService) StaticMap() *StaticMap {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return s.staticMap
}

// ZoneCount returns the number of indexed keep-out zones.
func (s *PlanService) ZoneCount() int { return s.zones.Len() }

// MakePlan builds the request grid, applies keep-out zones and runs A*.
// A missing path is reported in the response, not as an error.
func (s *PlanService) MakePlan(ctx context.Context, req PlanRequest) (PlanResponse, error) {
	logger := s.logger.With(
		slog.Int("start", req.Start),
		slog.Int("goal", req.Goal),
	)
	if id, ok := requestIDFromContext(ctx); ok {
		logger = logger.With(slog.String("request_id", id))
	}

	grid, err := s.requestGrid(req)
	if err != nil {
		s.observe(Result{}, err, 0)
		logger.Warn("rejected plan request", slog.Any("err", err))
		return PlanResponse{}, err
	}

	if s.zones.Len() > 0 {
		var marked int
		grid, marked = ApplyKeepOutZones(grid, s.zones)
		if marked > 0 {
			logger.Debug("applied keep-out zones", slog.Int("cells", marked))
		}
	}

	var trace *SearchTrace
	opts := []Option{
		WithHeuristic(s.heuristic),
		WithLethalCost(uint8(s.cfg.LethalCost)),
	}
	var obs []Observer
	if s.metrics != nil {
		obs = append(obs, s.metrics)
	}
	if req.Trace {
		trace = &SearchTrace{}
		obs = append(obs, trace)
	}
	opts = append(opts, WithObserver(observers(obs...)))

	logger.Debug("planning",
		slog.Int("width", grid.Width()),
		slog.Int("height", grid.Height()),
		slog.Float64("resolution", grid.Resolution()))

	began := time.Now()
	res, err := Plan(ctx, grid, req.Start, req.Goal, s.cfg.StepCostFor(grid.Resolution()), opts...)
	elapsed := time.Since(began)
	s.observe(res, err, elapsed)

	if err != nil {
		level := slog.LevelWarn
		if planOutcome(res, err) == outcomeError {
			level = slog.LevelError
		}
		logger.Log(ctx, level, "plan failed", slog.Any("err", err), slog.Duration("elapsed", elapsed))
		return PlanResponse{}, err
	}

	resp := PlanResponse{
		Plan:      res.Path,
		Found:     res.Found,
		Cost:      res.Cost,
		Expanded:  res.Expanded,
		ElapsedMS: float64(elapsed.Microseconds()) / 1000,
	}
	if trace != nil {
		resp.Trace = trace.Events
	}

	if !res.Found {
		logger.Warn("no path returned by A*",
			slog.Int("expanded", res.Expanded),
			slog.Duration("elapsed", elapsed))
		return resp, nil
	}

	logger.Info("A* execution metrics",
		slog.Duration("elapsed", elapsed),
		slog.Int("path_len", len(res.Path)),
		slog.Float64("cost", res.Cost),
		slog.Int("expanded", res.Expanded),
		slog.Int("discovered", res.Discovered))
	return resp, nil
}

func (s *PlanService) requestGrid(req PlanRequest) (*Costmap, error) {
	if req.UseStaticMap {
		m := s.StaticMap()
		if m == nil {
			return nil, errNoStaticMap
		}
		return m.Costmap, nil
	}
	return NewCostmapFromInts(req.Width, req.Height, s.cfg.Resolution, s.cfg.GridOrigin(), req.Costmap)
}

func (s *PlanService) observe(res Result, err error, elapsed time.Duration) {
	if s.metrics != nil {
		s.metrics.Observe(res, err, elapsed)
	}
}

package main

import (
	"context"
	"fmt"
	"math"
)

// Result is the outcome of one Plan call.
type Result struct {
	Path       []int   // cell indices from start to goal inclusive; empty if not found
	Cost       float64 // accumulated step cost of Path
	Expanded   int     // nodes moved to the closed set
	Discovered int     // nodes inserted into the open set, start excluded
	Found      bool
}

// Options configures a search.
type Options struct {
	Heuristic  Heuristic
	LethalCost uint8
	Observer   Observer
}

// Option is a function that modifies Options.
type Option func(*Options)

// WithHeuristic replaces the default Euclidean heuristic.
func WithHeuristic(h Heuristic) Option {
	return func(o *Options) { o.Heuristic = h }
}

// WithLethalCost sets the cost at or above which cells are impassable.
func WithLethalCost(c uint8) Option {
	return func(o *Options) { o.LethalCost = c }
}

// WithObserver attaches an observer notified when nodes are closed or discovered.
func WithObserver(obs Observer) Option {
	return func(o *Options) { o.Observer = obs }
}

// DefaultOptions returns the Euclidean heuristic, DefaultLethalCost and no observer.
func DefaultOptions() Options {
	return Options{
		Heuristic:  EuclideanDistance,
		LethalCost: DefaultLethalCost,
		Observer:   noopObserver{},
	}
}

// Plan computes a lowest-cost 8-connected path on grid from start to goal.
//
// Inputs are validated before the search: a malformed grid returns
// ErrMalformedGrid, an out-of-range endpoint ErrIndexOutOfRange, a lethal
// endpoint ErrLethalEndpoint and a non-positive step cost ErrBadStepCost.
// When the open set is exhausted without reaching goal, Plan returns a
// Result with Found == false and an empty Path, and a nil error.
//
// Heuristics measure world distance. When orthogonalStepCost is below the
// grid resolution they are scaled down by orthogonalStepCost/resolution so
// the returned path stays optimal.
//
// ctx is checked once per expansion; cancellation returns ctx.Err() and no
// partial result.
func Plan(ctx context.Context, grid *Costmap, start, goal int, orthogonalStepCost float64, opts ...Option) (Result, error) {
	cfg := DefaultOptions()
	for _, opt := range opts {
		opt(&cfg)
	}
	if cfg.Heuristic == nil {
		cfg.Heuristic = EuclideanDistance
	}
	if cfg.Observer == nil {
		cfg.Observer = noopObserver{}
	}

	if err := validatePlan(grid, start, goal, orthogonalStepCost, cfg.LethalCost); err != nil {
		return Result{}, err
	}

	s := newSearch(grid, start, goal, orthogonalStepCost, cfg)
	return s.run(ctx)
}

func validatePlan(grid *Costmap, start, goal int, orthogonalStepCost float64, lethalCost uint8) error {
	if grid == nil {
		return fmt.Errorf("%w: nil grid", ErrMalformedGrid)
	}
	if !cellCountMatches(grid.width, grid.height, len(grid.cost)) {
		return fmt.Errorf("%w: cost array has %d cells, want %dx%d", ErrMalformedGrid, len(grid.cost), grid.width, grid.height)
	}
	if grid.resolution <= 0 || math.IsNaN(grid.resolution) || math.IsInf(grid.resolution, 0) {
		return fmt.Errorf("%w: resolution %v", ErrMalformedGrid, grid.resolution)
	}
	if orthogonalStepCost <= 0 || math.IsNaN(orthogonalStepCost) || math.IsInf(orthogonalStepCost, 0) {
		return fmt.Errorf("%w: got %v", ErrBadStepCost, orthogonalStepCost)
	}
	if !grid.InBounds(start) {
		return fmt.Errorf("%w: start %d not in [0,%d)", ErrIndexOutOfRange, start, grid.Len())
	}
	if !grid.InBounds(goal) {
		return fmt.Errorf("%w: goal %d not in [0,%d)", ErrIndexOutOfRange, goal, grid.Len())
	}
	if grid.IsLethal(start, lethalCost) {
		return fmt.Errorf("%w: start %d has cost %d", ErrLethalEndpoint, start, grid.Cost(start))
	}
	if grid.IsLethal(goal, lethalCost) {
		return fmt.Errorf("%w: goal %d has cost %d", ErrLethalEndpoint, goal, grid.Cost(goal))
	}
	return nil
}

// search holds the mutable state of a single Plan call.
type search struct {
	grid     *Costmap
	start    int
	goal     int
	stepCost float64
	options  Options

	goalPos   Point
	hScale    float64       // keeps world-unit heuristics below step costs
	nodes     map[int]*node // discovered nodes, open or closed
	open      openSet
	neighbors []Neighbor // reused expansion buffer

	expanded   int
	discovered int
}

func newSearch(grid *Costmap, start, goal int, stepCost float64, options Options) *search {
	return &search{
		grid:      grid,
		start:     start,
		goal:      goal,
		stepCost:  stepCost,
		options:   options,
		goalPos:   grid.position(goal),
		hScale:    heuristicScale(stepCost, grid.resolution),
		nodes:     make(map[int]*node),
		open:      make(openSet, 0, 64),
		neighbors: make([]Neighbor, 0, len(directions)),
	}
}

// heuristic estimates the remaining cost from index to the goal.
func (s *search) heuristic(index int) float64 {
	return s.hScale * s.options.Heuristic(s.grid.position(index), s.goalPos)
}

// heuristicScale converts world distances into a lower bound on step cost.
// A move covering distance d costs at least d*stepCost/resolution, so world
// heuristics are only admissible as is when stepCost >= resolution.
func heuristicScale(stepCost, resolution float64) float64 {
	return math.Min(1, stepCost/resolution)
}

// run seeds the open set with the start node and expands until the goal is
// closed or the open set is empty.
func (s *search) run(ctx context.Context) (Result, error) {
	startNode := &node{
		index:  s.start,
		g:      0,
		f:      s.heuristic(s.start),
		parent: -1,
	}
	s.nodes[s.start] = startNode
	s.open.insert(startNode)

	for s.open.Len() > 0 {
		if err := ctx.Err(); err != nil {
			return Result{}, err
		}

		current := s.open.extractMin()
		current.closed = true
		s.expanded++
		s.options.Observer.NodeClosed(current.index)

		if current.index == s.goal {
			return Result{
				Path:       reconstructPath(s.nodes, s.start, s.goal),
				Cost:       current.g,
				Expanded:   s.expanded,
				Discovered: s.discovered,
				Found:      true,
			}, nil
		}

		s.expand(current)
	}

	return Result{
		Path:       []int{},
		Expanded:   s.expanded,
		Discovered: s.discovered,
		Found:      false,
	}, nil
}

// expand relaxes every passable neighbor of current.
func (s *search) expand(current *node) {
	s.neighbors = appendNeighbors(s.neighbors[:0], s.grid, current.index, s.stepCost, s.options.LethalCost)

	for _, nb := range s.neighbors {
		existing, seen := s.nodes[nb.Index]
		if seen && existing.closed {
			continue
		}

		tentativeG := current.g + nb.Cost
		tentativeF := tentativeG + s.heuristic(nb.Index)

		if !seen {
			nd := &node{
				index:  nb.Index,
				g:      tentativeG,
				f:      tentativeF,
				parent: current.index,
			}
			s.nodes[nb.Index] = nd
			s.open.insert(nd)
			s.discovered++
			s.options.Observer.NodeDiscovered(nb.Index)
			continue
		}

		if tentativeF < existing.f {
			existing.g = tentativeG
			existing.f = tentativeF
			existing.parent = current.index
			s.open.decreaseKey(existing)
		}
	}
}

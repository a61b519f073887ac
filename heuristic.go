package main

import (
	"fmt"
	"math"
	"strings"
)

// Heuristic estimates the remaining cost between two world positions.
// It must never overestimate the true cost for A* to return optimal paths.
type Heuristic func(from, to Point) float64

// EuclideanDistance is the straight-line distance between from and to. It is
// admissible whenever the orthogonal step cost is at least the grid
// resolution, since every step then costs at least the distance it covers.
func EuclideanDistance(from, to Point) float64 {
	return from.Distance(to)
}

// OctileDistance is the length of the shortest 8-connected move sequence
// between from and to, measured in world units. It dominates the Euclidean
// distance while staying admissible under the same conditions.
func OctileDistance(from, to Point) float64 {
	dx := math.Abs(from.X - to.X)
	dy := math.Abs(from.Y - to.Y)
	return math.Max(dx, dy) + (math.Sqrt2-1)*math.Min(dx, dy)
}

// ParseHeuristic maps a configuration name to a Heuristic.
func ParseHeuristic(name string) (Heuristic, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "", "euclidean":
		return EuclideanDistance, nil
	case "octile":
		return OctileDistance, nil
	default:
		return nil, fmt.Errorf("unknown heuristic %q", name)
	}
}

package main

import (
	"fmt"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
)

// Point is a position in the world frame, in meters.
type Point struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// Orb converts p to an orb.Point.
func (p Point) Orb() orb.Point { return orb.Point{p.X, p.Y} }

// Distance calculates Euclidean distance between two points
func (p Point) Distance(other Point) float64 {
	return planar.Distance(p.Orb(), other.Orb())
}

// IndexToWorld converts a flat grid index to world coordinates:
//
//	col = index % width, row = index / width
//	x = resolution*col + origin.X, y = resolution*row + origin.Y
//
// Only a negative index or a non-positive width can be detected here; use
// (*Costmap).World for a check against the grid height as well.
func IndexToWorld(index, width int, resolution float64, origin Point) (Point, error) {
	if width <= 0 {
		return Point{}, fmt.Errorf("%w: width %d", ErrMalformedGrid, width)
	}
	if index < 0 {
		return Point{}, fmt.Errorf("%w: %d", ErrIndexOutOfRange, index)
	}
	col := index % width
	row := index / width
	return Point{
		X: resolution*float64(col) + origin.X,
		Y: resolution*float64(row) + origin.Y,
	}, nil
}

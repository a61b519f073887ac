package main

import (
	"fmt"
	"math"
)

const (
	// DefaultLethalCost is the threshold at or above which a cell is impassable.
	DefaultLethalCost uint8 = 1
	// MaxCellCost is the largest cost a cell can carry; it normalises the traversal penalty.
	MaxCellCost = 255
	// occupiedCellCost and unknownCellCost follow the ROS costmap_2d convention.
	occupiedCellCost uint8 = 254
	unknownCellCost  uint8 = 255
)

// Costmap is a read-only view over a flattened, row-major 2-D cost array.
// It is never mutated after construction, so one Costmap may be shared by
// any number of concurrent searches.
type Costmap struct {
	width      int
	height     int
	resolution float64
	origin     Point
	cost       []uint8
}

// NewCostmap validates the grid metadata and copies cost into a new Costmap.
// Returns ErrMalformedGrid if the dimensions or resolution are not positive
// or if len(cost) != width*height.
func NewCostmap(width, height int, resolution float64, origin Point, cost []uint8) (*Costmap, error) {
	if width <= 0 || height <= 0 {
		return nil, fmt.Errorf("%w: dimensions %dx%d", ErrMalformedGrid, width, height)
	}
	if resolution <= 0 || math.IsNaN(resolution) || math.IsInf(resolution, 0) {
		return nil, fmt.Errorf("%w: resolution %v", ErrMalformedGrid, resolution)
	}
	if !cellCountMatches(width, height, len(cost)) {
		return nil, fmt.Errorf("%w: cost array has %d cells, want %dx%d", ErrMalformedGrid, len(cost), width, height)
	}

	cells := make([]uint8, len(cost))
	copy(cells, cost)

	return &Costmap{
		width:      width,
		height:     height,
		resolution: resolution,
		origin:     origin,
		cost:       cells,
	}, nil
}

// cellCountMatches reports whether width*height == n without overflowing.
func cellCountMatches(width, height, n int) bool {
	if width <= 0 || height <= 0 || height > math.MaxInt/width {
		return false
	}
	return width*height == n
}

// NewCostmapFromInts builds a Costmap from the integer cost array carried by
// planning requests, rejecting values outside [0,255].
func NewCostmapFromInts(width, height int, resolution float64, origin Point, cost []int) (*Costmap, error) {
	cells := make([]uint8, len(cost))
	for i, c := range cost {
		if c < 0 || c > MaxCellCost {
			return nil, fmt.Errorf("%w: cell %d has cost %d", ErrCostOutOfRange, i, c)
		}
		cells[i] = uint8(c)
	}
	return NewCostmap(width, height, resolution, origin, cells)
}

func (m *Costmap) Width() int          { return m.width }
func (m *Costmap) Height() int         { return m.height }
func (m *Costmap) Resolution() float64 { return m.resolution }
func (m *Costmap) Origin() Point       { return m.origin }

// Len returns the number of cells, width*height.
func (m *Costmap) Len() int { return len(m.cost) }

// Cost returns the cost of the cell at index. The index must be in bounds.
func (m *Costmap) Cost(index int) uint8 { return m.cost[index] }

// InBounds reports whether index addresses a cell of the grid.
func (m *Costmap) InBounds(index int) bool { return index >= 0 && index < len(m.cost) }

// Coordinate converts a row-major index to its (col, row) pair.
func (m *Costmap) Coordinate(index int) (col, row int) {
	return index % m.width, index / m.width
}

// Index converts (col, row) to a row-major index.
func (m *Costmap) Index(col, row int) int { return row*m.width + col }

// IsLethal reports whether the cell at index is impassable under lethalCost.
func (m *Costmap) IsLethal(index int, lethalCost uint8) bool {
	return m.cost[index] >= lethalCost
}

// World returns the world-frame position of the cell at index.
func (m *Costmap) World(index int) (Point, error) {
	if !m.InBounds(index) {
		return Point{}, fmt.Errorf("%w: %d not in [0,%d)", ErrIndexOutOfRange, index, len(m.cost))
	}
	return IndexToWorld(index, m.width, m.resolution, m.origin)
}

// position returns the world position of the cell at index without bounds checks.
func (m *Costmap) position(index int) Point {
	col, row := m.Coordinate(index)
	return Point{
		X: m.resolution*float64(col) + m.origin.X,
		Y: m.resolution*float64(row) + m.origin.Y,
	}
}

// withCells returns a copy of m that shares the metadata but owns cells.
func (m *Costmap) withCells(cells []uint8) *Costmap {
	return &Costmap{
		width:      m.width,
		height:     m.height,
		resolution: m.resolution,
		origin:     m.origin,
		cost:       cells,
	}
}

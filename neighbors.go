package main

import "math"

// Neighbor is an adjacent cell reachable in one step, with the cost of that step.
type Neighbor struct {
	Index int
	Cost  float64
}

// direction is a grid offset in cells; diagonal moves cost √2 times an orthogonal one.
type direction struct {
	dCol, dRow int
	diagonal   bool
}

// directions lists the eight moves: up, left, upper-left, upper-right,
// right, lower-left, down, lower-right.
var directions = [8]direction{
	{0, -1, false},
	{-1, 0, false},
	{-1, -1, true},
	{1, -1, true},
	{1, 0, false},
	{-1, 1, true},
	{0, 1, false},
	{1, 1, true},
}

// FindNeighbors returns the up to eight cells adjacent to index that lie
// inside the grid and whose cost is below lethalCost, each paired with its
// step cost: the geometric move length (orthogonalStepCost, or
// orthogonalStepCost*√2 on a diagonal) plus the destination cost / 255.
//
// Column and row bounds are checked separately for every direction, so the
// last cell of a row is never adjacent to the first cell of the next one.
func FindNeighbors(grid *Costmap, index int, orthogonalStepCost float64, lethalCost uint8) []Neighbor {
	return appendNeighbors(make([]Neighbor, 0, len(directions)), grid, index, orthogonalStepCost, lethalCost)
}

// appendNeighbors is FindNeighbors writing into dst, so the search loop can
// reuse one buffer for every expansion.
func appendNeighbors(dst []Neighbor, grid *Costmap, index int, orthogonalStepCost float64, lethalCost uint8) []Neighbor {
	diagonalStepCost := orthogonalStepCost * math.Sqrt2
	col, row := grid.Coordinate(index)

	for _, d := range directions {
		c, r := col+d.dCol, row+d.dRow
		if c < 0 || c >= grid.width || r < 0 || r >= grid.height {
			continue
		}
		n := grid.Index(c, r)
		cost := grid.cost[n]
		if cost >= lethalCost {
			continue
		}
		step := orthogonalStepCost
		if d.diagonal {
			step = diagonalStepCost
		}
		dst = append(dst, Neighbor{
			Index: n,
			Cost:  step + float64(cost)/MaxCellCost,
		})
	}
	return dst
}

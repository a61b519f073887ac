package main

import (
	"math"

	"github.com/paulmach/orb"
)

// worldBound returns the bounding box of all cell positions of the grid.
func (m *Costmap) worldBound() orb.Bound {
	last := m.position(m.Len() - 1)
	return orb.Bound{Min: m.origin.Orb(), Max: last.Orb()}
}

// ApplyKeepOutZones returns a new Costmap in which every cell whose world
// position lies inside an indexed zone carries unknownCellCost, together with
// the number of cells that were raised. grid itself is left untouched; when no
// zone touches the grid, grid is returned as is.
func ApplyKeepOutZones(grid *Costmap, index *SpatialIndex) (*Costmap, int) {
	zones := index.QueryRegion(grid.worldBound())
	if len(zones) == 0 {
		return grid, 0
	}

	cells := make([]uint8, len(grid.cost))
	copy(cells, grid.cost)

	marked := 0
	for _, z := range zones {
		minCol, minRow, maxCol, maxRow := grid.cellWindow(z.Bound())
		for row := minRow; row <= maxRow; row++ {
			for col := minCol; col <= maxCol; col++ {
				i := grid.Index(col, row)
				if cells[i] == unknownCellCost {
					continue
				}
				if z.Contains(grid.position(i)) {
					cells[i] = unknownCellCost
					marked++
				}
			}
		}
	}

	if marked == 0 {
		return grid, 0
	}
	return grid.withCells(cells), marked
}

// cellWindow clamps the cell range whose positions can fall inside b, padded
// by one cell on each side against rounding at the bound edges.
func (m *Costmap) cellWindow(b orb.Bound) (minCol, minRow, maxCol, maxRow int) {
	toCell := func(v, origin float64) float64 { return (v - origin) / m.resolution }

	minCol = clampInt(int(math.Ceil(toCell(b.Min.X(), m.origin.X)))-1, 0, m.width-1)
	maxCol = clampInt(int(math.Floor(toCell(b.Max.X(), m.origin.X)))+1, 0, m.width-1)
	minRow = clampInt(int(math.Ceil(toCell(b.Min.Y(), m.origin.Y)))-1, 0, m.height-1)
	maxRow = clampInt(int(math.Floor(toCell(b.Max.Y(), m.origin.Y)))+1, 0, m.height-1)
	return minCol, minRow, maxCol, maxRow
}

func clampInt(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

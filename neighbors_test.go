package main

import (
	"math"
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func neighborIndices(ns []Neighbor) []int {
	out := make([]int, 0, len(ns))
	for _, n := range ns {
		out = append(out, n.Index)
	}
	sort.Ints(out)
	return out
}

func TestFindNeighbors(t *testing.T) {
	grid := openGrid(t, 4, 3)

	cases := []struct {
		name  string
		index int
		want  []int
	}{
		{"top-left corner", 0, []int{1, 4, 5}},
		{"top-right corner", 3, []int{2, 6, 7}},
		{"bottom-left corner", 8, []int{4, 5, 9}},
		{"bottom-right corner", 11, []int{6, 7, 10}},
		{"left edge", 4, []int{0, 1, 5, 8, 9}},
		{"right edge", 7, []int{2, 3, 6, 10, 11}},
		{"interior", 5, []int{0, 1, 2, 4, 6, 8, 9, 10}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			got := FindNeighbors(grid, tc.index, 1, DefaultLethalCost)
			assert.Equal(t, tc.want, neighborIndices(got))
		})
	}
}

// The last cell of a row must not reach the first cell of the next row.
func TestFindNeighborsNoRowWrap(t *testing.T) {
	grid := openGrid(t, 3, 3)

	for _, n := range FindNeighbors(grid, 2, 1, DefaultLethalCost) {
		col, _ := grid.Coordinate(n.Index)
		assert.NotEqual(t, 0, col, "neighbor %d wraps to the next row", n.Index)
	}
	for _, n := range FindNeighbors(grid, 3, 1, DefaultLethalCost) {
		col, _ := grid.Coordinate(n.Index)
		assert.NotEqual(t, 2, col, "neighbor %d wraps to the previous row", n.Index)
	}
}

func TestFindNeighborsSymmetric(t *testing.T) {
	grid := openGrid(t, 5, 4)

	adjacent := func(a, b int) bool {
		for _, n := range FindNeighbors(grid, a, 1, DefaultLethalCost) {
			if n.Index == b {
				return true
			}
		}
		return false
	}
	for a := 0; a < grid.Len(); a++ {
		for _, n := range FindNeighbors(grid, a, 1, DefaultLethalCost) {
			require.Truef(t, adjacent(n.Index, a), "%d reaches %d but not the reverse", a, n.Index)
		}
	}
}

func TestFindNeighborsCosts(t *testing.T) {
	cost := []uint8{
		0, 51, 0,
		102, 0, 255,
		0, 0, 200,
	}
	grid := mustGrid(t, 3, 3, cost)

	got := map[int]float64{}
	for _, n := range FindNeighbors(grid, 4, 0.5, 255) {
		got[n.Index] = n.Cost
	}

	diag := 0.5 * math.Sqrt2
	want := map[int]float64{
		0: diag,
		1: 0.5 + 51.0/255,
		2: diag,
		3: 0.5 + 102.0/255,
		6: diag,
		7: 0.5,
		8: diag + 200.0/255,
	}
	require.Len(t, got, len(want), "cell 5 is lethal")
	for idx, c := range want {
		assert.InDeltaf(t, c, got[idx], 1e-12, "neighbor %d", idx)
	}
}

func TestFindNeighborsLethalThreshold(t *testing.T) {
	grid := mustGrid(t, 3, 1, []uint8{10, 0, 11})

	assert.Equal(t, []int{0}, neighborIndices(FindNeighbors(grid, 1, 1, 11)))
	assert.Empty(t, FindNeighbors(grid, 1, 1, 10))
	assert.Equal(t, []int{0, 2}, neighborIndices(FindNeighbors(grid, 1, 1, 12)))
}

func TestFindNeighborsSingleCell(t *testing.T) {
	grid := openGrid(t, 1, 1)
	assert.Empty(t, FindNeighbors(grid, 0, 1, DefaultLethalCost))
}

package main

import (
	"container/heap"
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/require"
)

// testOrigin is the default world origin of request grids.
var testOrigin = Point{X: -7.4, Y: -7.4}

// mustGrid builds a width x height grid with resolution 1 from cost.
func mustGrid(t testing.TB, width, height int, cost []uint8) *Costmap {
	t.Helper()
	grid, err := NewCostmap(width, height, 1, Point{}, cost)
	require.NoError(t, err)
	return grid
}

// openGrid returns a grid where every cell is free.
func openGrid(t testing.TB, width, height int) *Costmap {
	return mustGrid(t, width, height, make([]uint8, width*height))
}

// randomGrid scatters obstacles and traversal penalties over a grid. The
// first and last cells are always free.
func randomGrid(t testing.TB, rng *rand.Rand, width, height int) *Costmap {
	cost := make([]uint8, width*height)
	for i := range cost {
		switch r := rng.Float64(); {
		case r < 0.2:
			cost[i] = 255
		case r < 0.5:
			cost[i] = uint8(rng.Intn(200))
		}
	}
	cost[0] = 0
	cost[len(cost)-1] = 0
	return mustGrid(t, width, height, cost)
}

type distItem struct {
	index int
	dist  float64
}

type distQueue []distItem

func (q distQueue) Len() int            { return len(q) }
func (q distQueue) Less(i, j int) bool  { return q[i].dist < q[j].dist }
func (q distQueue) Swap(i, j int)       { q[i], q[j] = q[j], q[i] }
func (q *distQueue) Push(x interface{}) { *q = append(*q, x.(distItem)) }
func (q *distQueue) Pop() interface{} {
	old := *q
	it := old[len(old)-1]
	*q = old[:len(old)-1]
	return it
}

// dijkstra computes exact shortest distances from start over the same edge
// model FindNeighbors defines. Unreachable cells are +Inf.
func dijkstra(grid *Costmap, start int, orth float64, lethal uint8) []float64 {
	dist := make([]float64, grid.Len())
	for i := range dist {
		dist[i] = math.Inf(1)
	}
	dist[start] = 0

	q := &distQueue{{index: start}}
	for q.Len() > 0 {
		it := heap.Pop(q).(distItem)
		if it.dist > dist[it.index] {
			continue
		}
		for _, nb := range FindNeighbors(grid, it.index, orth, lethal) {
			if d := it.dist + nb.Cost; d < dist[nb.Index] {
				dist[nb.Index] = d
				heap.Push(q, distItem{index: nb.Index, dist: d})
			}
		}
	}
	return dist
}

// pathCost sums the step costs along path, failing if two consecutive
// cells are not neighbors.
func pathCost(t testing.TB, grid *Costmap, path []int, orth float64, lethal uint8) float64 {
	t.Helper()
	total := 0.0
	for i := 1; i < len(path); i++ {
		found := false
		for _, nb := range FindNeighbors(grid, path[i-1], orth, lethal) {
			if nb.Index == path[i] {
				total += nb.Cost
				found = true
				break
			}
		}
		require.Truef(t, found, "cells %d and %d are not adjacent", path[i-1], path[i])
	}
	return total
}

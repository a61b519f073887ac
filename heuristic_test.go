package main

import (
	"math"
	"math/rand"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestOctileDistance(t *testing.T) {
	assert.InDelta(t, 3+2*(math.Sqrt2-1), OctileDistance(Point{}, Point{X: 3, Y: -2}), 1e-12)
	assert.InDelta(t, 4*math.Sqrt2, OctileDistance(Point{}, Point{X: 4, Y: 4}), 1e-12)
	assert.Equal(t, 5.0, OctileDistance(Point{X: 1}, Point{X: 6}))
}

func TestOctileDominatesEuclidean(t *testing.T) {
	rng := rand.New(rand.NewSource(5))
	for i := 0; i < 200; i++ {
		a := Point{X: rng.Float64()*20 - 10, Y: rng.Float64()*20 - 10}
		b := Point{X: rng.Float64()*20 - 10, Y: rng.Float64()*20 - 10}
		assert.GreaterOrEqual(t, OctileDistance(a, b)+1e-12, EuclideanDistance(a, b))
	}
}

// Both heuristics must stay below the true remaining cost from every cell.
func TestHeuristicAdmissible(t *testing.T) {
	rng := rand.New(rand.NewSource(11))
	heuristics := map[string]Heuristic{
		"euclidean": EuclideanDistance,
		"octile":    OctileDistance,
	}

	for trial := 0; trial < 5; trial++ {
		grid := randomGrid(t, rng, 6, 6)
		goal := grid.Len() - 1
		goalPos := grid.position(goal)

		for from := 0; from < grid.Len(); from++ {
			if grid.IsLethal(from, 255) {
				continue
			}
			trueCost := dijkstra(grid, from, 1, 255)[goal]
			if math.IsInf(trueCost, 1) {
				continue
			}
			for name, h := range heuristics {
				assert.LessOrEqualf(t, h(grid.position(from), goalPos), trueCost+1e-9,
					"%s overestimates from %d (trial %d)", name, from, trial)
			}
		}
	}
}

func TestParseHeuristic(t *testing.T) {
	for _, name := range []string{"", "euclidean", "Euclidean", " octile "} {
		h, err := ParseHeuristic(name)
		require.NoError(t, err, name)
		require.NotNil(t, h)
	}

	_, err := ParseHeuristic("manhattan")
	require.Error(t, err)
}

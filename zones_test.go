package main

import (
	"context"
	"testing"

	"github.com/paulmach/orb"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func square(name string, minX, minY, maxX, maxY float64) KeepOutZone {
	return KeepOutZone{
		Name: name,
		Polygon: orb.Polygon{orb.Ring{
			{minX, minY}, {maxX, minY}, {maxX, maxY}, {minX, maxY}, {minX, minY},
		}},
	}
}

func TestKeepOutZoneContains(t *testing.T) {
	z := square("dock", 0, 0, 2, 2)

	assert.True(t, z.Contains(Point{X: 1, Y: 1}))
	assert.False(t, z.Contains(Point{X: 3, Y: 1}))
	assert.Equal(t, orb.Bound{Min: orb.Point{0, 0}, Max: orb.Point{2, 2}}, z.Bound())
}

func TestRemoveContainedZones(t *testing.T) {
	zones := []KeepOutZone{
		square("inner", 2, 2, 4, 4),
		square("outer", 0, 0, 10, 10),
		square("apart", 20, 20, 22, 22),
	}

	got := removeContainedZones(zones)
	require.Len(t, got, 2)
	assert.Equal(t, "outer", got[0].Name)
	assert.Equal(t, "apart", got[1].Name)
}

func TestRemoveContainedZonesDuplicates(t *testing.T) {
	// One of two identical zones survives.
	got := removeContainedZones([]KeepOutZone{square("a", 0, 0, 1, 1), square("b", 0, 0, 1, 1)})
	require.Len(t, got, 1)
}

func TestPrepareZonesSimplifies(t *testing.T) {
	z := KeepOutZone{Name: "bay", Polygon: orb.Polygon{orb.Ring{
		{0, 0}, {1, 0}, {2, 0}, {2, 2}, {0, 2}, {0, 0},
	}}}

	got := PrepareZones([]KeepOutZone{z}, 0.1, nil)
	require.Len(t, got, 1)
	assert.Less(t, len(got[0].Polygon[0]), len(z.Polygon[0]), "collinear vertex should be dropped")
	assert.True(t, got[0].Contains(Point{X: 1, Y: 1}))

	unchanged := PrepareZones([]KeepOutZone{z}, 0, nil)
	assert.Equal(t, z.Polygon, unchanged[0].Polygon)
}

func TestSpatialIndex(t *testing.T) {
	idx := NewSpatialIndex([]KeepOutZone{
		square("a", 0, 0, 2, 2),
		square("b", 5, 5, 7, 7),
		square("c", 1, 1, 6, 3),
	})
	require.Equal(t, 3, idx.Len())

	names := func(zs []KeepOutZone) []string {
		var out []string
		for _, z := range zs {
			out = append(out, z.Name)
		}
		return out
	}

	assert.ElementsMatch(t, []string{"a", "c"}, names(idx.QueryPoint(Point{X: 1.5, Y: 1.5})))
	assert.ElementsMatch(t, []string{"b"}, names(idx.QueryPoint(Point{X: 6, Y: 6})))
	assert.Empty(t, idx.QueryPoint(Point{X: 10, Y: 10}))
	assert.ElementsMatch(t, []string{"b", "c"},
		names(idx.QueryRegion(orb.Bound{Min: orb.Point{4, 2.5}, Max: orb.Point{5.5, 5.5}})))
}

func TestSpatialIndexEmpty(t *testing.T) {
	var nilIdx *SpatialIndex
	assert.Zero(t, nilIdx.Len())
	assert.Nil(t, nilIdx.QueryRegion(orb.Bound{}))

	assert.Zero(t, NewSpatialIndex(nil).Len())
}

func TestApplyKeepOutZones(t *testing.T) {
	grid := openGrid(t, 10, 10)
	idx := NewSpatialIndex([]KeepOutZone{square("pillar", 2.5, 2.5, 5.5, 5.5)})

	marked, n := ApplyKeepOutZones(grid, idx)
	require.Equal(t, 9, n)
	require.NotSame(t, grid, marked)

	for i := 0; i < grid.Len(); i++ {
		col, row := grid.Coordinate(i)
		inside := col >= 3 && col <= 5 && row >= 3 && row <= 5
		if inside {
			assert.Equal(t, unknownCellCost, marked.Cost(i), "cell %d", i)
		} else {
			assert.Zero(t, marked.Cost(i), "cell %d", i)
		}
		assert.Zero(t, grid.Cost(i), "source grid must stay untouched")
	}

	res, err := Plan(context.Background(), marked, 0, 99, 1)
	require.NoError(t, err)
	require.True(t, res.Found)
	for _, i := range res.Path {
		assert.Zero(t, marked.Cost(i), "path enters keep-out cell %d", i)
	}
}

func TestApplyKeepOutZonesMiss(t *testing.T) {
	grid := openGrid(t, 4, 4)

	far := NewSpatialIndex([]KeepOutZone{square("far", 100, 100, 101, 101)})
	got, n := ApplyKeepOutZones(grid, far)
	assert.Zero(t, n)
	assert.Same(t, grid, got)

	got, n = ApplyKeepOutZones(grid, nil)
	assert.Zero(t, n)
	assert.Same(t, grid, got)
}

package main

import (
	"math"

	"github.com/dhconnelly/rtreego"
	"github.com/paulmach/orb"
)

// minRectSide keeps degenerate (zero-width) zone bounds insertable.
const minRectSide = 1e-9

// zoneEntry wraps a zone for R-tree storage
type zoneEntry struct {
	zone KeepOutZone
	bbox rtreego.Rect
}

// Bounds implements rtreego.Spatial interface
func (e *zoneEntry) Bounds() rtreego.Rect {
	return e.bbox
}

// SpatialIndex answers which keep-out zones touch a region of the world.
type SpatialIndex struct {
	tree *rtreego.Rtree
	size int
}

// NewSpatialIndex creates a new spatial index
func NewSpatialIndex(zones []KeepOutZone) *SpatialIndex {
	tree := rtreego.NewTree(2, 25, 50) // 2D, min 25, max 50 entries per node

	size := 0
	for _, z := range zones {
		bbox, err := boundToRect(z.Bound())
		if err != nil {
			continue
		}
		tree.Insert(&zoneEntry{zone: z, bbox: bbox})
		size++
	}

	return &SpatialIndex{tree: tree, size: size}
}

// Len returns the number of indexed zones.
func (si *SpatialIndex) Len() int {
	if si == nil {
		return 0
	}
	return si.size
}

// QueryRegion returns zones whose bounding boxes intersect bound.
func (si *SpatialIndex) QueryRegion(bound orb.Bound) []KeepOutZone {
	if si.Len() == 0 {
		return nil
	}
	bbox, err := boundToRect(bound)
	if err != nil {
		return nil
	}

	results := si.tree.SearchIntersect(bbox)
	zones := make([]KeepOutZone, 0, len(results))
	for _, item := range results {
		zones = append(zones, item.(*zoneEntry).zone)
	}
	return zones
}

// QueryPoint returns the zones that contain p.
func (si *SpatialIndex) QueryPoint(p Point) []KeepOutZone {
	var hits []KeepOutZone
	for _, z := range si.QueryRegion(orb.Bound{Min: p.Orb(), Max: p.Orb()}) {
		if z.Contains(p) {
			hits = append(hits, z)
		}
	}
	return hits
}

func boundToRect(b orb.Bound) (rtreego.Rect, error) {
	return rtreego.NewRect(
		rtreego.Point{b.Min.X(), b.Min.Y()},
		[]float64{
			math.Max(b.Max.X()-b.Min.X(), minRectSide),
			math.Max(b.Max.Y()-b.Min.Y(), minRectSide),
		},
	)
}

package main

import (
	"log/slog"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/planar"
	"github.com/paulmach/orb/simplify"
)

// KeepOutZone is a world-frame polygon whose cells must never be entered.
type KeepOutZone struct {
	Name    string
	Polygon orb.Polygon
}

// Bound returns the axis-aligned bounding box of the zone.
func (z KeepOutZone) Bound() orb.Bound { return z.Polygon.Bound() }

// Contains reports whether p lies inside the zone.
func (z KeepOutZone) Contains(p Point) bool {
	return planar.PolygonContains(z.Polygon, p.Orb())
}

// PrepareZones simplifies zones with the Douglas-Peucker tolerance (0 keeps
// them as loaded) and drops zones fully contained in another zone.
func PrepareZones(zones []KeepOutZone, tolerance float64, logger *slog.Logger) []KeepOutZone {
	if tolerance > 0 {
		zones = simplifyZones(zones, tolerance)
	}
	filtered := removeContainedZones(zones)
	if logger != nil && len(filtered) != len(zones) {
		logger.Info("dropped contained keep-out zones",
			slog.Int("before", len(zones)),
			slog.Int("after", len(filtered)))
	}
	return filtered
}

func simplifyZones(zones []KeepOutZone, tolerance float64) []KeepOutZone {
	s := simplify.DouglasPeucker(tolerance)
	out := make([]KeepOutZone, 0, len(zones))
	for _, z := range zones {
		poly, ok := s.Simplify(z.Polygon.Clone()).(orb.Polygon)
		if !ok || len(poly) == 0 || len(poly[0]) < 4 {
			// Too small to survive simplification; keep the original outline.
			out = append(out, z)
			continue
		}
		out = append(out, KeepOutZone{Name: z.Name, Polygon: poly})
	}
	return out
}

// removeContainedZones removes zones that are fully contained within other zones
func removeContainedZones(zones []KeepOutZone) []KeepOutZone {
	if len(zones) <= 1 {
		return zones
	}

	contained := make([]bool, len(zones))
	for i := range zones {
		if contained[i] {
			continue
		}
		for j := range zones {
			if i == j || contained[j] {
				continue
			}
			if isZoneContainedIn(zones[i], zones[j]) {
				contained[i] = true
				break
			}
		}
	}

	result := make([]KeepOutZone, 0, len(zones))
	for i, z := range zones {
		if !contained[i] {
			result = append(result, z)
		}
	}
	return result
}

// isZoneContainedIn checks if every vertex of a's outer ring lies in b.
func isZoneContainedIn(a, b KeepOutZone) bool {
	if len(a.Polygon) == 0 || len(b.Polygon) == 0 {
		return false
	}

	ab, bb := a.Bound(), b.Bound()
	if !bb.Contains(ab.Min) || !bb.Contains(ab.Max) {
		return false
	}

	for _, v := range a.Polygon[0] {
		if !planar.PolygonContains(b.Polygon, v) {
			return false
		}
	}
	return true
}

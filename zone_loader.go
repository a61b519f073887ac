package main

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"

	"github.com/paulmach/orb"
	"github.com/paulmach/orb/geojson"
)

// LoadKeepOutZones loads every *.geojson file in dir. Files that cannot be
// read or parsed are logged and skipped; only a bad glob pattern is an error.
func LoadKeepOutZones(dir string, logger *slog.Logger) ([]KeepOutZone, error) {
	files, err := filepath.Glob(filepath.Join(dir, "*.geojson"))
	if err != nil {
		return nil, fmt.Errorf("failed to list keep-out zones: %w", err)
	}

	logger.Info("loading keep-out zones", slog.String("dir", dir), slog.Int("files", len(files)))

	var all []KeepOutZone
	for _, file := range files {
		data, err := os.ReadFile(file)
		if err != nil {
			logger.Warn("failed to read keep-out file", slog.String("file", file), slog.Any("err", err))
			continue
		}

		zones, err := ParseKeepOutZones(data)
		if err != nil {
			logger.Warn("failed to parse keep-out file", slog.String("file", file), slog.Any("err", err))
			continue
		}

		logger.Info("loaded keep-out zones", slog.String("file", filepath.Base(file)), slog.Int("zones", len(zones)))
		all = append(all, zones...)
	}

	logger.Info("keep-out zones loaded", slog.Int("total", len(all)))
	return all, nil
}

// ParseKeepOutZones reads the Polygon and MultiPolygon features of a GeoJSON
// FeatureCollection. Other geometry types are ignored. A feature's "name"
// property names its zones.
func ParseKeepOutZones(data []byte) ([]KeepOutZone, error) {
	fc, err := geojson.UnmarshalFeatureCollection(data)
	if err != nil {
		return nil, err
	}

	var zones []KeepOutZone
	for _, f := range fc.Features {
		name := f.Properties.MustString("name", "")
		switch g := f.Geometry.(type) {
		case orb.Polygon:
			if len(g) > 0 {
				zones = append(zones, KeepOutZone{Name: name, Polygon: g})
			}
		case orb.MultiPolygon:
			for _, p := range g {
				if len(p) > 0 {
					zones = append(zones, KeepOutZone{Name: name, Polygon: p})
				}
			}
		}
	}
	return zones, nil
}

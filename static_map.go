package main

import (
	"errors"
	"fmt"
	"image"
	"image/color"
	_ "image/png" // map_server also ships PNG maps
	"os"
	"path/filepath"

	_ "github.com/jbuchbinder/gopnm" // registers PGM decoding with image.Decode
	"gopkg.in/yaml.v3"
)

// MapMetadata is the ROS map_server YAML description of an occupancy image.
type MapMetadata struct {
	Image          string    `yaml:"image" json:"image"`
	Resolution     float64   `yaml:"resolution" json:"resolution"`
	Origin         []float64 `yaml:"origin" json:"origin"`
	Negate         int       `yaml:"negate" json:"negate"`
	OccupiedThresh float64   `yaml:"occupied_thresh" json:"occupied_thresh"`
	FreeThresh     float64   `yaml:"free_thresh" json:"free_thresh"`
}

// StaticMap is a costmap loaded from disk together with its description.
type StaticMap struct {
	Metadata MapMetadata
	Costmap  *Costmap
}

var errBadMapMetadata = errors.New("invalid map metadata")

// LoadStaticMap reads a map_server YAML file and the image it points to.
// The image path is resolved relative to the YAML file.
func LoadStaticMap(path string) (*StaticMap, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read map metadata: %w", err)
	}

	meta := MapMetadata{OccupiedThresh: 0.65, FreeThresh: 0.196}
	if err := yaml.Unmarshal(data, &meta); err != nil {
		return nil, fmt.Errorf("failed to parse map metadata: %w", err)
	}
	if err := meta.validate(); err != nil {
		return nil, err
	}

	imagePath := meta.Image
	if !filepath.IsAbs(imagePath) {
		imagePath = filepath.Join(filepath.Dir(path), imagePath)
	}

	f, err := os.Open(imagePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open map image: %w", err)
	}
	defer f.Close()

	img, _, err := image.Decode(f)
	if err != nil {
		return nil, fmt.Errorf("failed to decode map image %s: %w", imagePath, err)
	}

	grid, err := costmapFromImage(img, meta)
	if err != nil {
		return nil, err
	}
	return &StaticMap{Metadata: meta, Costmap: grid}, nil
}

func (m MapMetadata) validate() error {
	switch {
	case m.Image == "":
		return fmt.Errorf("%w: image is required", errBadMapMetadata)
	case m.Resolution <= 0:
		return fmt.Errorf("%w: resolution must be positive", errBadMapMetadata)
	case len(m.Origin) < 2:
		return fmt.Errorf("%w: origin needs x and y", errBadMapMetadata)
	case m.FreeThresh < 0 || m.OccupiedThresh > 1 || m.FreeThresh >= m.OccupiedThresh:
		return fmt.Errorf("%w: need 0 <= free_thresh < occupied_thresh <= 1", errBadMapMetadata)
	}
	return nil
}

// costmapFromImage converts pixel occupancy to cell costs: occupied cells
// get occupiedCellCost, unknown cells unknownCellCost and free cells 0.
// Image row 0 is the top of the map while grid row 0 is its bottom, so rows
// are flipped.
func costmapFromImage(img image.Image, meta MapMetadata) (*Costmap, error) {
	b := img.Bounds()
	width, height := b.Dx(), b.Dy()
	cells := make([]uint8, width*height)

	for y := 0; y < height; y++ {
		row := height - 1 - y
		for x := 0; x < width; x++ {
			v := float64(color.GrayModel.Convert(img.At(b.Min.X+x, b.Min.Y+y)).(color.Gray).Y)
			occ := (255 - v) / 255
			if meta.Negate != 0 {
				occ = v / 255
			}

			var c uint8
			switch {
			case occ > meta.OccupiedThresh:
				c = occupiedCellCost
			case occ < meta.FreeThresh:
				c = 0
			default:
				c = unknownCellCost
			}
			cells[row*width+x] = c
		}
	}

	origin := Point{X: meta.Origin[0], Y: meta.Origin[1]}
	return NewCostmap(width, height, meta.Resolution, origin, cells)
}

package main

import (
	"errors"
	"fmt"
	"log/slog"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// ErrInvalidConfig is wrapped by every configuration validation failure.
var ErrInvalidConfig = errors.New("invalid configuration")

// Config holds the service settings. Zero values in a config file fall back
// to DefaultConfig.
type Config struct {
	ListenAddr      string `yaml:"listen_addr"`
	MaxRequestBytes int64  `yaml:"max_request_bytes"`

	// Grid metadata applied to request costmaps, which carry only cell costs.
	Resolution float64    `yaml:"resolution"`
	Origin     [2]float64 `yaml:"origin"`

	// OrthogonalStepCost of 0 means "use the resolution of the planned grid".
	OrthogonalStepCost float64 `yaml:"orthogonal_step_cost"`
	LethalCost         int     `yaml:"lethal_cost"`
	Heuristic          string  `yaml:"heuristic"`

	StaticMap       string  `yaml:"static_map"`
	KeepOutDir      string  `yaml:"keepout_dir"`
	KeepOutSimplify float64 `yaml:"keepout_simplify"`

	LogLevel   string `yaml:"log_level"`
	LogFormat  string `yaml:"log_format"`
	CORSOrigin string `yaml:"cors_origin"`
}

// DefaultConfig returns 0.2 m cells with the map origin at (-7.4, -7.4),
// the grid layout assumed for request costmaps.
func DefaultConfig() Config {
	return Config{
		ListenAddr:      ":8080",
		MaxRequestBytes: 32 << 20,
		Resolution:      0.2,
		Origin:          [2]float64{-7.4, -7.4},
		LethalCost:      int(DefaultLethalCost),
		Heuristic:       "euclidean",
		LogLevel:        "info",
		LogFormat:       "text",
		CORSOrigin:      "*",
	}
}

// LoadConfig reads a YAML config file on top of DefaultConfig. An empty path
// returns the defaults.
func LoadConfig(path string) (Config, error) {
	cfg := DefaultConfig()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return cfg, fmt.Errorf("failed to read config: %w", err)
	}
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return cfg, fmt.Errorf("failed to parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return cfg, err
	}
	return cfg, nil
}

// Validate checks value ranges and names.
func (c Config) Validate() error {
	if c.Resolution <= 0 {
		return fmt.Errorf("%w: resolution must be positive, got %v", ErrInvalidConfig, c.Resolution)
	}
	if c.MaxRequestBytes <= 0 {
		return fmt.Errorf("%w: max_request_bytes must be positive", ErrInvalidConfig)
	}
	if c.OrthogonalStepCost < 0 {
		return fmt.Errorf("%w: orthogonal_step_cost must not be negative", ErrInvalidConfig)
	}
	if c.LethalCost < 1 || c.LethalCost > MaxCellCost {
		return fmt.Errorf("%w: lethal_cost must be in [1,255], got %d", ErrInvalidConfig, c.LethalCost)
	}
	if c.KeepOutSimplify < 0 {
		return fmt.Errorf("%w: keepout_simplify must not be negative", ErrInvalidConfig)
	}
	if _, err := ParseHeuristic(c.Heuristic); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	if _, err := parseLogLevel(c.LogLevel); err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidConfig, err)
	}
	switch strings.ToLower(c.LogFormat) {
	case "", "text", "json":
	default:
		return fmt.Errorf("%w: unknown log_format %q", ErrInvalidConfig, c.LogFormat)
	}
	return nil
}

// StepCost returns the orthogonal step cost used for request costmaps.
func (c Config) StepCost() float64 { return c.StepCostFor(c.Resolution) }

// StepCostFor returns the orthogonal step cost for a grid of the given
// resolution: the configured cost, or the resolution itself when unset.
func (c Config) StepCostFor(resolution float64) float64 {
	if c.OrthogonalStepCost > 0 {
		return c.OrthogonalStepCost
	}
	return resolution
}

// GridOrigin returns Origin as a Point.
func (c Config) GridOrigin() Point {
	return Point{X: c.Origin[0], Y: c.Origin[1]}
}

func parseLogLevel(s string) (slog.Level, error) {
	var level slog.Level
	if s == "" {
		return slog.LevelInfo, nil
	}
	if err := level.UnmarshalText([]byte(s)); err != nil {
		return level, fmt.Errorf("unknown log_level %q", s)
	}
	return level, nil
}

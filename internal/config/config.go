// Package config loads solver settings from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"runtime"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"

	"github.com/pdrpinto/ringmaze"
	"github.com/pdrpinto/ringmaze/internal/objmesh"
)

// ErrDistanceUnset is returned by Ring when no inter-pin distance was configured.
var ErrDistanceUnset = errors.New("inter_pin_distance is not set")

// Config holds all solver configuration.
type Config struct {
	Puzzle  PuzzleConfig  `yaml:"puzzle"`
	Start   *StartConfig  `yaml:"start,omitempty"`
	Search  SearchConfig  `yaml:"search"`
	Output  OutputConfig  `yaml:"output"`
	Logging LoggingConfig `yaml:"logging"`
}

// PuzzleConfig describes the physical ring, in grid units.
type PuzzleConfig struct {
	InterPinDistance *float64 `yaml:"inter_pin_distance" validate:"omitempty,gte=0"`
	PinDiameter      float64  `yaml:"pin_diameter" validate:"gte=0"`
	Tolerance        *float64 `yaml:"tolerance,omitempty" validate:"omitempty,gte=0"` // nil means half a cell diagonal
	SwapLayers       bool     `yaml:"swap_layers"`
}

// StartConfig places the pins explicitly as [x, y] pairs.
type StartConfig struct {
	Top    [2]int `yaml:"top"`
	Bottom [2]int `yaml:"bottom"`
}

type SearchConfig struct {
	MaxExpansions int `yaml:"max_expansions" validate:"gte=0"` // 0 = unlimited
	Workers       int `yaml:"workers" validate:"min=1"`        // mazes solved concurrently
}

type OutputConfig struct {
	Order         string  `yaml:"order" validate:"oneof=chronological terminal-first"`
	MeshThickness float64 `yaml:"mesh_thickness" validate:"gt=0"`
}

type LoggingConfig struct {
	Level string `yaml:"level" validate:"oneof=debug info warn error dpanic panic fatal"`
}

// DefaultConfig returns the default configuration.
func DefaultConfig() *Config {
	return &Config{
		Puzzle: PuzzleConfig{
			PinDiameter: 1,
		},
		Search: SearchConfig{
			Workers: runtime.NumCPU(),
		},
		Output: OutputConfig{
			Order:         ringmaze.Chronological.String(),
			MeshThickness: objmesh.DefaultThickness,
		},
		Logging: LoggingConfig{
			Level: "info",
		},
	}
}

// Load loads configuration from a YAML file. A missing file yields the defaults.
func Load(path string) (*Config, error) {
	cfg := DefaultConfig()

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			cfg.applyEnvOverrides()
			return cfg, nil
		}
		return nil, fmt.Errorf("failed to read config: %w", err)
	}

	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config: %w", err)
	}

	cfg.applyEnvOverrides()

	return cfg, nil
}

// Save saves configuration to a YAML file.
func (c *Config) Save(path string) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0755); err != nil {
		return fmt.Errorf("failed to create config directory: %w", err)
	}

	data, err := yaml.Marshal(c)
	if err != nil {
		return fmt.Errorf("failed to marshal config: %w", err)
	}

	if err := os.WriteFile(path, data, 0644); err != nil {
		return fmt.Errorf("failed to write config: %w", err)
	}

	return nil
}

func (c *Config) applyEnvOverrides() {
	if level := os.Getenv("RINGMAZE_LOG_LEVEL"); level != "" {
		c.Logging.Level = level
	}
}

var validate = validator.New()

// Validate checks field ranges, then that the puzzle section describes a
// buildable ring. An unset inter-pin distance is allowed here; Ring reports it.
func (c *Config) Validate() error {
	if err := validate.Struct(c); err != nil {
		return err
	}
	distance := 0.0
	if c.Puzzle.InterPinDistance != nil {
		distance = *c.Puzzle.InterPinDistance
	}
	if _, err := c.ring(distance); err != nil {
		return err
	}
	return nil
}

// Ring builds the ring constraint described by the puzzle section.
func (c *Config) Ring() (*ringmaze.Ring, error) {
	if c.Puzzle.InterPinDistance == nil {
		return nil, ErrDistanceUnset
	}
	return c.ring(*c.Puzzle.InterPinDistance)
}

func (c *Config) ring(distance float64) (*ringmaze.Ring, error) {
	var opts []ringmaze.RingOption
	if c.Puzzle.Tolerance != nil {
		opts = append(opts, ringmaze.WithTolerance(*c.Puzzle.Tolerance))
	}
	return ringmaze.NewRing(distance, c.Puzzle.PinDiameter, opts...)
}

// Order parses the output order.
func (c *Config) Order() (ringmaze.PathOrder, error) {
	return ringmaze.ParsePathOrder(c.Output.Order)
}

// StartState returns the configured start, or the reference puzzle start when none is set.
func (c *Config) StartState(maze *ringmaze.Maze, ring *ringmaze.Ring) (ringmaze.JointState, error) {
	if c.Start == nil {
		return ringmaze.DefaultStart(maze, ring)
	}
	s := ringmaze.JointState{
		Top:    maze.ToPosition(c.Start.Top[0], c.Start.Top[1]),
		Bottom: maze.ToPosition(c.Start.Bottom[0], c.Start.Bottom[1]),
	}
	if s.Top == ringmaze.None || s.Bottom == ringmaze.None {
		return s, fmt.Errorf("%w: start top=%v bottom=%v", ringmaze.ErrStartOutOfBounds, c.Start.Top, c.Start.Bottom)
	}
	return s, nil
}

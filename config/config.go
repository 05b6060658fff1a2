// Package config loads game settings from YAML.
package config

import (
	"errors"
	"fmt"
	"os"
	"sort"

	"github.com/plus3/blockfall/block"
	"github.com/plus3/blockfall/grid"
	"github.com/plus3/blockfall/logging"
	"github.com/plus3/blockfall/sim"
	"gopkg.in/yaml.v3"
)

// EnvPath names the environment variable consulted when no path is given.
const EnvPath = "BLOCKFALL_CONFIG"

type Config struct {
	Grid      GridConfig             `yaml:"grid"`
	BlockSize float32                `yaml:"block_size"`
	Window    WindowConfig           `yaml:"window"`
	Spawn     SpawnConfig            `yaml:"spawn"`
	Gravity   GravityConfig          `yaml:"gravity"`
	Shapes    map[string]ShapeConfig `yaml:"shapes"`
	Keys      KeyConfig              `yaml:"keys"`
	Log       LogConfig              `yaml:"log"`
	Metrics   MetricsConfig          `yaml:"metrics"`
}

type GridConfig struct {
	Cols uint32 `yaml:"cols"`
	Rows uint32 `yaml:"rows"`
}

type WindowConfig struct {
	Width  int    `yaml:"width"`
	Height int    `yaml:"height"`
	Title  string `yaml:"title"`
}

type SpawnConfig struct {
	Col     uint32 `yaml:"col"`
	Row     uint32 `yaml:"row"`
	Shape   string `yaml:"shape"`
	Respawn bool   `yaml:"respawn"`
}

type GravityConfig struct {
	BaseInterval    float64 `yaml:"base_interval"`
	SpeedMultiplier float64 `yaml:"speed_multiplier"`
	SpeedStep       float64 `yaml:"speed_step"`
}

// ShapeConfig lists a shape's dispositions, each a list of [col, row]
// offsets from the pivot.
type ShapeConfig [][][2]int32

// KeyConfig names the key bound to each action.
type KeyConfig struct {
	Rotate      string `yaml:"rotate"`
	TogglePause string `yaml:"toggle_pause"`
	SpeedUp     string `yaml:"speed_up"`
	ToggleDebug string `yaml:"toggle_debug"`
}

// Bindings maps each action to its configured key name.
func (k KeyConfig) Bindings() map[sim.Action]string {
	return map[sim.Action]string{
		sim.ActionRotate:      k.Rotate,
		sim.ActionTogglePause: k.TogglePause,
		sim.ActionSpeedUp:     k.SpeedUp,
		sim.ActionToggleDebug: k.ToggleDebug,
	}
}

type LogConfig struct {
	Level logging.Level `yaml:"level"`
}

type MetricsConfig struct {
	Addr string `yaml:"addr"`
}

// Default returns the settings the game ships with.
func Default() *Config {
	return &Config{
		Grid:      GridConfig{Cols: 10, Rows: 20},
		BlockSize: 30,
		Window:    WindowConfig{Width: 800, Height: 700, Title: "blockfall"},
		Spawn:     SpawnConfig{Col: 5, Row: 0, Shape: string(block.KindT)},
		Gravity: GravityConfig{
			BaseInterval:    sim.DefaultBaseInterval,
			SpeedMultiplier: sim.DefaultSpeedMultiplier,
			SpeedStep:       sim.DefaultSpeedStep,
		},
		Keys: KeyConfig{
			Rotate:      "Space",
			TogglePause: "Enter",
			SpeedUp:     "ArrowDown",
			ToggleDebug: "F1",
		},
		Log: LogConfig{Level: logging.LevelInfo},
	}
}

// Load reads a YAML file over the defaults. An empty path falls back to
// $BLOCKFALL_CONFIG, and to the defaults when that is unset too.
func Load(path string) (*Config, error) {
	if path == "" {
		path = os.Getenv(EnvPath)
	}

	cfg := Default()
	if path == "" {
		return cfg, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config: %w", err)
	}
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("parse config %s: %w", path, err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("config %s: %w", path, err)
	}
	return cfg, nil
}

// Validate reports every invalid setting at once.
func (c *Config) Validate() error {
	var errs []error
	if c.Grid.Cols == 0 || c.Grid.Rows == 0 {
		errs = append(errs, fmt.Errorf("grid: %w", grid.ErrEmptyGrid))
	}
	if !(c.BlockSize > 0) {
		errs = append(errs, fmt.Errorf("block_size must be positive, got %v", c.BlockSize))
	}
	if c.Window.Width <= 0 || c.Window.Height <= 0 {
		errs = append(errs, fmt.Errorf("window must have a positive size, got %dx%d", c.Window.Width, c.Window.Height))
	}
	if c.Grid.Cols > 0 && c.Spawn.Col >= c.Grid.Cols || c.Grid.Rows > 0 && c.Spawn.Row >= c.Grid.Rows {
		errs = append(errs, fmt.Errorf("spawn (%d,%d) is outside the %dx%d grid",
			c.Spawn.Col, c.Spawn.Row, c.Grid.Cols, c.Grid.Rows))
	}
	if _, err := c.GravityState(); err != nil {
		errs = append(errs, err)
	}
	catalog, err := c.Catalog()
	if err != nil {
		errs = append(errs, err)
	} else if _, ok := catalog.Lookup(block.Kind(c.Spawn.Shape)); !ok {
		errs = append(errs, fmt.Errorf("spawn shape %q: %w", c.Spawn.Shape, sim.ErrUnknownShape))
	}
	return errors.Join(errs...)
}

// Catalog returns the built-in shapes plus the shapes declared in the file.
func (c *Config) Catalog() (*block.Catalog, error) {
	catalog := block.NewCatalog()

	names := make([]string, 0, len(c.Shapes))
	for name := range c.Shapes {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		sets := make([][]block.Cell, 0, len(c.Shapes[name]))
		for _, disposition := range c.Shapes[name] {
			cells := make([]block.Cell, 0, len(disposition))
			for _, pair := range disposition {
				cells = append(cells, block.Cell{Col: pair[0], Row: pair[1]})
			}
			sets = append(sets, cells)
		}

		table, err := block.NewDispositionTable(sets...)
		if err != nil {
			return nil, fmt.Errorf("shape %q: %w", name, err)
		}
		if err := catalog.Add(&block.Shape{Kind: block.Kind(name), Table: table}); err != nil {
			return nil, err
		}
	}
	return catalog, nil
}

// GravityState returns the initial gravity timer.
func (c *Config) GravityState() (sim.GravityState, error) {
	g, err := sim.NewGravityState(c.Gravity.BaseInterval, c.Gravity.SpeedMultiplier, c.Gravity.SpeedStep)
	if err != nil {
		return sim.GravityState{}, fmt.Errorf("gravity: %w", err)
	}
	return g, nil
}

// NewGrid places the grid in the configured window.
func (c *Config) NewGrid() (*grid.Grid, error) {
	return grid.ForWindow(c.Grid.Cols, c.Grid.Rows, c.BlockSize, float32(c.Window.Width))
}

// NewWorld builds a world from the settings.
func (c *Config) NewWorld(log *logging.Logger) (*sim.World, error) {
	g, err := c.NewGrid()
	if err != nil {
		return nil, err
	}
	gravity, err := c.GravityState()
	if err != nil {
		return nil, err
	}
	catalog, err := c.Catalog()
	if err != nil {
		return nil, err
	}

	return sim.NewWorld(sim.Options{
		Grid:          g,
		BlockSize:     c.BlockSize,
		Gravity:       gravity,
		Catalog:       catalog,
		SpawnPosition: grid.Position{Col: c.Spawn.Col, Row: c.Spawn.Row},
		SpawnKind:     block.Kind(c.Spawn.Shape),
		Respawn:       c.Spawn.Respawn,
		Logger:        log,
	})
}

// YAML config loader with CUE validation integration
package config

import (
	"fmt"
	"log/slog"
	"os"

	"gopkg.in/yaml.v3"

	"vacuum-sim/internal/scenario"
)

// Invalid command policies.
const (
	OnInvalidHalt = "halt"
	OnInvalidSkip = "skip"
)

// Snapshot rendering modes.
const (
	RenderInitial = "initial"
	RenderEvery   = "every"
)

// SimulationConfig is the root configuration: the room layout, the robots,
// and the policies applied while replaying commands.
type SimulationConfig struct {
	// Room names a built-in room; RoomFile points at a room YAML file.
	// Inline Terrain/Occupancy/Robots override what the room provides.
	Room         string           `yaml:"room"`
	RoomFile     string           `yaml:"room_file"`
	Rules        string           `yaml:"rules"`
	Terrain      []string         `yaml:"terrain"`
	Occupancy    []string         `yaml:"occupancy"`
	Robots       []scenario.Robot `yaml:"robots"`
	Commands     string           `yaml:"commands"`
	Order        string           `yaml:"order"`
	OnInvalid    string           `yaml:"on_invalid"`
	Render       string           `yaml:"render"`
	CleanReset   bool             `yaml:"clean_reset"`
	DefaultRobot int              `yaml:"default_robot"`
}

// Load loads YAML config, validates it against a CUE schema when
// cueSchemaPath is set, and fills in room defaults.
func Load(configPath, cueSchemaPath string) (*SimulationConfig, error) {
	if cueSchemaPath != "" {
		if err := ValidateWithCue(configPath, cueSchemaPath); err != nil {
			return nil, err
		}
	}

	data, err := os.ReadFile(configPath)
	if err != nil {
		return nil, err
	}
	var cfg SimulationConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidConfig, err)
	}
	if err := cfg.resolve(); err != nil {
		return nil, err
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	slog.Debug("loaded configuration", "path", configPath, "rules", cfg.Rules, "robots", len(cfg.Robots))
	return &cfg, nil
}

// FromRoom builds a configuration around a room with default policies.
func FromRoom(r *scenario.Room) *SimulationConfig {
	cfg := &SimulationConfig{Room: r.Name}
	cfg.merge(r)
	cfg.applyDefaults()
	return cfg
}

// resolve merges the referenced room, environment overrides and defaults.
func (c *SimulationConfig) resolve() error {
	switch {
	case c.RoomFile != "":
		r, err := scenario.Load(c.RoomFile)
		if err != nil {
			return fmt.Errorf("%w: %w", ErrInvalidConfig, err)
		}
		c.merge(r)
	case c.Room != "":
		r, ok := scenario.Lookup(c.Room)
		if !ok {
			return fmt.Errorf("%w: unknown room %q (have %v)", ErrInvalidConfig, c.Room, scenario.Names())
		}
		c.merge(r)
	}
	if env := os.Getenv("VACUUM_RULES"); env != "" {
		c.Rules = env
	}
	c.applyDefaults()
	return nil
}

func (c *SimulationConfig) merge(r *scenario.Room) {
	if c.Rules == "" {
		c.Rules = r.Rules
	}
	if len(c.Terrain) == 0 {
		c.Terrain = append([]string(nil), r.Terrain...)
		if len(c.Occupancy) == 0 {
			c.Occupancy = append([]string(nil), r.Occupancy...)
		}
	}
	if len(c.Robots) == 0 {
		c.Robots = append([]scenario.Robot(nil), r.Robots...)
	}
}

func (c *SimulationConfig) applyDefaults() {
	if c.Rules == "" {
		c.Rules = "classic"
	}
	if c.Order == "" {
		c.Order = "interleave"
	}
	if c.OnInvalid == "" {
		c.OnInvalid = OnInvalidHalt
	}
	if c.Render == "" {
		c.Render = RenderInitial
	}
}

package scenario

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Room is a starting layout: terrain, obstacles, and robot placements.
type Room struct {
	Name        string   `yaml:"name,omitempty"`
	Description string   `yaml:"description,omitempty"`
	Rules       string   `yaml:"rules,omitempty"`
	Terrain     []string `yaml:"terrain"`
	Occupancy   []string `yaml:"occupancy,omitempty"`
	Robots      []Robot  `yaml:"robots"`
}

// Robot places one vacuum in a room.
type Robot struct {
	ID        int    `yaml:"id"`
	Row       int    `yaml:"row"`
	Col       int    `yaml:"col"`
	Direction string `yaml:"direction"`
	// Log is the plain-text action log path for this robot, if any.
	Log string `yaml:"log,omitempty"`
}

// Load reads a YAML room definition from disk.
func Load(path string) (*Room, error) {
	b, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read room: %w", err)
	}
	var r Room
	if err := yaml.Unmarshal(b, &r); err != nil {
		return nil, fmt.Errorf("parse room: %w", err)
	}
	return &r, nil
}

// Lookup returns a copy of the named built-in room.
func Lookup(name string) (*Room, bool) {
	r, ok := BuiltIn()[name]
	if !ok {
		return nil, false
	}
	return &r, true
}

// Dimensions returns the room's width and height.
func (r *Room) Dimensions() (w, h int) {
	if len(r.Terrain) == 0 {
		return 0, 0
	}
	return len(r.Terrain[0]), len(r.Terrain)
}

package scenario

import "sort"

// BuiltIn returns the predefined rooms.
func BuiltIn() map[string]Room {
	return map[string]Room{
		"revolution": {
			Name:        "revolution",
			Description: "A spotless 3x3 room with a single robot in the middle facing north.",
			Rules:       "classic",
			Terrain: []string{
				"...",
				"...",
				"...",
			},
			Robots: []Robot{{ID: 0, Row: 1, Col: 1, Direction: "N"}},
		},
		"revolution-large": {
			Name:        "revolution-large",
			Description: "A 10x10 room with four dirty patches and no obstacles.",
			Rules:       "classic",
			Terrain: []string{
				"..........",
				"..d.......",
				"..........",
				"..........",
				"..d..d....",
				"..........",
				"....d.....",
				"..........",
				"..........",
				"..........",
			},
			Robots: []Robot{{ID: 0, Row: 0, Col: 0, Direction: "SE"}},
		},
		"obstruction": {
			Name:        "obstruction",
			Description: "A 6x7 room with scattered dirt and a broken line of walls.",
			Rules:       "classic",
			Terrain: []string{
				".......",
				".d.....",
				"d.d...d",
				"...d...",
				".......",
				"......d",
			},
			Occupancy: []string{
				"....w.w",
				".....w.",
				"...w...",
				"..w....",
				".......",
				"..ww...",
			},
			Robots: []Robot{{ID: 0, Row: 4, Col: 4, Direction: "SE"}},
		},
		"cattery": {
			Name:        "cattery",
			Description: "A 10x10 room with a cat napping near the robot and two walls.",
			Rules:       "classic",
			Terrain: []string{
				"..........",
				"..........",
				"..........",
				"..........",
				"..........",
				"..........",
				"..........",
				"..........",
				"..........",
				"..........",
			},
			Occupancy: []string{
				"..........",
				"....c.....",
				"..........",
				"......w...",
				"..........",
				".w........",
				"..........",
				"..........",
				"..........",
				"..........",
			},
			Robots: []Robot{{ID: 0, Row: 2, Col: 2, Direction: "NE"}},
		},
		"scrub": {
			Name:        "scrub",
			Description: "A 6x5 room with puddles, dirt, and two walls.",
			Rules:       "puddle",
			Terrain: []string{
				"..d..",
				".....",
				"l....",
				"d....",
				".....",
				"...l.",
			},
			Occupancy: []string{
				".....",
				".w...",
				".....",
				".....",
				"w....",
				".....",
			},
			Robots: []Robot{{ID: 0, Row: 0, Col: 2, Direction: "SE"}},
		},
	}
}

// Names lists the built-in room names in sorted order.
func Names() []string {
	rooms := BuiltIn()
	out := make([]string, 0, len(rooms))
	for n := range rooms {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

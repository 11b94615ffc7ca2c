// Terrain rule tables shared by every engine configuration
package rules

import (
	"fmt"
	"sort"

	"vacuum-sim/internal/grid"
)

// Transition maps a cell's current terrain to its next terrain.
type Transition func(grid.Terrain) grid.Terrain

// Set describes how terrain reacts to cleaning and movement.
type Set struct {
	Name     string
	Terrains []grid.Terrain
	// Clean maps the robot's cell terrain to its terrain after "clean".
	// Missing entries leave the terrain unchanged.
	Clean map[grid.Terrain]grid.Terrain
	// Smear is keyed by the terrain being left and rewrites the target cell.
	Smear map[grid.Terrain]Transition
	// Slip is keyed by the terrain being left. The robot travels two cells
	// and the skipped cell is rewritten.
	Slip map[grid.Terrain]Transition
}

// Allows reports whether t belongs to the rule set's terrain variants.
func (s *Set) Allows(t grid.Terrain) bool {
	for _, v := range s.Terrains {
		if v == t {
			return true
		}
	}
	return false
}

// AfterClean returns the terrain left behind by cleaning a cell holding t.
func (s *Set) AfterClean(t grid.Terrain) grid.Terrain {
	if next, ok := s.Clean[t]; ok {
		return next
	}
	return t
}

// SmearFrom returns the transition applied to the target cell when leaving t.
func (s *Set) SmearFrom(t grid.Terrain) (Transition, bool) {
	tr, ok := s.Smear[t]
	return tr, ok
}

// SlipFrom returns the skipped-cell transition when leaving t, if t slips.
func (s *Set) SlipFrom(t grid.Terrain) (Transition, bool) {
	tr, ok := s.Slip[t]
	return tr, ok
}

const (
	Classic = "classic"
	Puddle  = "puddle"
	Soapy   = "soap"
)

func always(t grid.Terrain) Transition {
	return func(grid.Terrain) grid.Terrain { return t }
}

func dirtSmear(t grid.Terrain) grid.Terrain {
	switch t {
	case grid.Clean:
		return grid.Dirty
	case grid.Water:
		return grid.Mud
	}
	return t
}

func waterDeposit(t grid.Terrain) grid.Terrain {
	switch t {
	case grid.Clean:
		return grid.Water
	case grid.Dirty:
		return grid.Mud
	}
	return t
}

// NewClassic is the clean/dirty-only rule set.
func NewClassic() *Set {
	return &Set{
		Name:     Classic,
		Terrains: []grid.Terrain{grid.Clean, grid.Dirty},
		Clean:    map[grid.Terrain]grid.Terrain{grid.Dirty: grid.Clean},
		Smear: map[grid.Terrain]Transition{
			grid.Dirty: func(t grid.Terrain) grid.Terrain {
				if t == grid.Clean {
					return grid.Dirty
				}
				return t
			},
		},
	}
}

// NewPuddle adds water and mud. Water cannot be cleaned and makes the robot
// slip, depositing water on the skipped cell.
func NewPuddle() *Set {
	return &Set{
		Name:     Puddle,
		Terrains: []grid.Terrain{grid.Clean, grid.Dirty, grid.Water, grid.Mud},
		Clean:    map[grid.Terrain]grid.Terrain{grid.Dirty: grid.Clean},
		Smear: map[grid.Terrain]Transition{
			grid.Dirty: dirtSmear,
			grid.Mud:   always(grid.Mud),
		},
		Slip: map[grid.Terrain]Transition{
			grid.Water: waterDeposit,
		},
	}
}

// NewSoap extends the puddle rules with soap: cleaning water mops it into
// soap, and slipping on soap leaves the skipped cell clean.
func NewSoap() *Set {
	s := NewPuddle()
	s.Name = Soapy
	s.Terrains = append(s.Terrains, grid.Soap)
	s.Clean[grid.Water] = grid.Soap
	s.Slip[grid.Soap] = always(grid.Clean)
	return s
}

var builders = map[string]func() *Set{
	Classic: NewClassic,
	Puddle:  NewPuddle,
	Soapy:   NewSoap,
}

// Names lists the registered rule set names.
func Names() []string {
	out := make([]string, 0, len(builders))
	for n := range builders {
		out = append(out, n)
	}
	sort.Strings(out)
	return out
}

// Lookup returns a fresh copy of the named rule set.
func Lookup(name string) (*Set, error) {
	b, ok := builders[name]
	if !ok {
		return nil, fmt.Errorf("unknown rule set %q (have %v)", name, Names())
	}
	return b(), nil
}

// Check verifies every terrain on g belongs to s.
func (s *Set) Check(g *grid.Grid) error {
	for _, t := range g.Terrains() {
		if !s.Allows(t) {
			return fmt.Errorf("%w: terrain %s not supported by %s rules", grid.ErrInvalidLayout, t, s.Name)
		}
	}
	return nil
}

// Movement resolution for robots on a shared grid
package engine

import (
	"fmt"

	"vacuum-sim/internal/compass"
	"vacuum-sim/internal/grid"
	"vacuum-sim/internal/rules"
)

// Options toggles compatibility behaviour of the resolver.
type Options struct {
	// CleanReset restores the legacy behaviour: cleaning an already clean
	// cell wipes every robot marker from the grid before the acting robot is
	// placed back. Other robots are left without markers.
	CleanReset bool
}

// Resolver applies actions to robots on one grid under one rule set.
type Resolver struct {
	grid  *grid.Grid
	rules *rules.Set
	opts  Options
}

// NewResolver creates a resolver bound to g and rs.
func NewResolver(g *grid.Grid, rs *rules.Set, opts Options) *Resolver {
	return &Resolver{grid: g, rules: rs, opts: opts}
}

// Grid returns the grid the resolver mutates.
func (r *Resolver) Grid() *grid.Grid { return r.grid }

// Resolve performs action for robot and returns the action actually taken.
func (r *Resolver) Resolve(robot *Robot, action Action) (Action, error) {
	if r.opts.CleanReset {
		defer r.restoreMarker(robot)
	}
	switch action {
	case TurnLeft:
		robot.Dir = compass.Left(robot.Dir)
		return TurnLeft, nil
	case TurnRight:
		robot.Dir = compass.Right(robot.Dir)
		return TurnRight, nil
	case CleanCell:
		r.clean(robot)
		return CleanCell, nil
	case Forward:
		return r.forward(robot), nil
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidCommand, action)
}

func (r *Resolver) clean(robot *Robot) {
	cur := r.grid.Terrain(robot.Pos)
	if cur == grid.Clean && r.opts.CleanReset {
		r.grid.ClearAll(grid.Robot)
		_ = r.grid.Place(robot.Pos, grid.Robot)
	}
	r.grid.SetTerrain(robot.Pos, r.rules.AfterClean(cur))
}

func (r *Resolver) forward(robot *Robot) Action {
	g := r.grid
	target := ahead(robot.Pos, robot.Dir)
	if !g.InBounds(target) {
		return r.bounce(robot)
	}

	switch g.Occupant(target) {
	case grid.Wall:
		return r.bounce(robot)
	case grid.Robot:
		robot.Dir = compass.Left(robot.Dir)
		return TurnLeft
	case grid.Cat:
		beyond := ahead(target, robot.Dir)
		if g.InBounds(beyond) && g.Occupant(beyond) == grid.Empty {
			g.Relocate(target, beyond)
		}
		return r.bounce(robot)
	}

	leaving := g.Terrain(robot.Pos)
	if deposit, ok := r.rules.SlipFrom(leaving); ok {
		landing := ahead(target, robot.Dir)
		if !g.InBounds(landing) || g.Occupant(landing) != grid.Empty {
			return r.bounce(robot)
		}
		g.SetTerrain(target, deposit(g.Terrain(target)))
		r.move(robot, landing)
		return Forward
	}
	if smear, ok := r.rules.SmearFrom(leaving); ok {
		g.SetTerrain(target, smear(g.Terrain(target)))
	}
	r.move(robot, target)
	return Forward
}

// bounce is the blocked-move response: stay put and turn right.
func (r *Resolver) bounce(robot *Robot) Action {
	robot.Dir = compass.Right(robot.Dir)
	return TurnRight
}

// restoreMarker puts back a marker lost to a clean reset.
func (r *Resolver) restoreMarker(robot *Robot) {
	if r.grid.Occupant(robot.Pos) == grid.Empty {
		_ = r.grid.Place(robot.Pos, grid.Robot)
	}
}

func (r *Resolver) move(robot *Robot, to grid.Position) {
	r.grid.Relocate(robot.Pos, to)
	robot.Pos = to
}

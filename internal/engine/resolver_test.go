package engine

import (
	"errors"
	"math/rand"
	"testing"

	"vacuum-sim/internal/compass"
	"vacuum-sim/internal/grid"
	"vacuum-sim/internal/rules"
)

func newWorld(t *testing.T, rs *rules.Set, opts Options, terrain, occupancy []string, robots ...*Robot) *Resolver {
	t.Helper()
	g, err := grid.Parse(terrain, occupancy)
	if err != nil {
		t.Fatalf("grid.Parse: %v", err)
	}
	for _, r := range robots {
		if err := g.Place(r.Pos, grid.Robot); err != nil {
			t.Fatalf("place %s: %v", r, err)
		}
	}
	return NewResolver(g, rs, opts)
}

func pos(r, c int) grid.Position { return grid.Position{Row: r, Col: c} }

func mustResolve(t *testing.T, res *Resolver, robot *Robot, a Action) Action {
	t.Helper()
	got, err := res.Resolve(robot, a)
	if err != nil {
		t.Fatalf("Resolve(%s): %v", a, err)
	}
	return got
}

func TestForwardThenBoundary(t *testing.T) {
	robot := &Robot{ID: 1, Pos: pos(1, 1), Dir: compass.North}
	res := newWorld(t, rules.NewClassic(), Options{}, []string{"...", "...", "..."}, nil, robot)

	if got := mustResolve(t, res, robot, Forward); got != Forward {
		t.Fatalf("first forward = %s", got)
	}
	if robot.Pos != pos(0, 1) || robot.Dir != compass.North {
		t.Fatalf("after first forward: %s", robot)
	}
	if got := mustResolve(t, res, robot, Forward); got != TurnRight {
		t.Fatalf("second forward = %s, want turn-right", got)
	}
	if robot.Pos != pos(0, 1) || robot.Dir != compass.NorthEast {
		t.Fatalf("after second forward: %s", robot)
	}
	if res.Grid().Occupant(pos(0, 1)) != grid.Robot || res.Grid().Occupant(pos(1, 1)) != grid.Empty {
		t.Fatalf("marker not relocated:\n%s", res.Grid())
	}
}

func TestTurns(t *testing.T) {
	robot := &Robot{Pos: pos(0, 0), Dir: compass.North}
	res := newWorld(t, rules.NewClassic(), Options{}, []string{"."}, nil, robot)
	if got := mustResolve(t, res, robot, TurnLeft); got != TurnLeft || robot.Dir != compass.NorthWest {
		t.Fatalf("turn-left: %s %s", got, robot.Dir)
	}
	if got := mustResolve(t, res, robot, TurnRight); got != TurnRight || robot.Dir != compass.North {
		t.Fatalf("turn-right: %s %s", got, robot.Dir)
	}
}

func TestEdgeBoundsRejection(t *testing.T) {
	terrain := []string{"...", "...", "..."}
	type edge struct {
		at  grid.Position
		dir compass.Direction
	}
	var edges []edge
	for c := 0; c < 3; c++ {
		edges = append(edges, edge{pos(0, c), compass.North}, edge{pos(2, c), compass.South})
	}
	for r := 0; r < 3; r++ {
		edges = append(edges, edge{pos(r, 0), compass.West}, edge{pos(r, 2), compass.East})
	}
	edges = append(edges, edge{pos(0, 0), compass.NorthWest}, edge{pos(2, 2), compass.SouthEast})
	for _, e := range edges {
		robot := &Robot{Pos: e.at, Dir: e.dir}
		res := newWorld(t, rules.NewClassic(), Options{}, terrain, nil, robot)
		if got := mustResolve(t, res, robot, Forward); got != TurnRight {
			t.Fatalf("%s facing %s: effective %s", e.at, e.dir, got)
		}
		if robot.Pos != e.at || robot.Dir != compass.Right(e.dir) {
			t.Fatalf("%s facing %s: ended as %s", e.at, e.dir, robot)
		}
	}
}

func TestWallAhead(t *testing.T) {
	robot := &Robot{Pos: pos(1, 0), Dir: compass.East}
	res := newWorld(t, rules.NewClassic(), Options{}, []string{"...", "..."}, []string{"...", ".w."}, robot)
	if got := mustResolve(t, res, robot, Forward); got != TurnRight {
		t.Fatalf("effective %s", got)
	}
	if robot.Pos != pos(1, 0) || robot.Dir != compass.SouthEast {
		t.Fatalf("robot moved: %s", robot)
	}
	if res.Grid().Occupant(pos(1, 1)) != grid.Wall {
		t.Fatalf("wall changed")
	}
}

func TestRobotAheadTurnsLeft(t *testing.T) {
	a := &Robot{ID: 0, Pos: pos(0, 0), Dir: compass.East}
	b := &Robot{ID: 1, Pos: pos(0, 1), Dir: compass.West}
	res := newWorld(t, rules.NewClassic(), Options{}, []string{"..."}, nil, a, b)
	if got := mustResolve(t, res, a, Forward); got != TurnLeft {
		t.Fatalf("effective %s", got)
	}
	if a.Pos != pos(0, 0) || a.Dir != compass.NorthEast {
		t.Fatalf("robot a: %s", a)
	}
}

func TestCatPush(t *testing.T) {
	cases := []struct {
		name      string
		occupancy []string
		catAfter  grid.Position
	}{
		{"free", []string{".c.."}, pos(0, 2)},
		{"wall beyond", []string{".cw."}, pos(0, 1)},
		{"cat beyond", []string{".cc."}, pos(0, 1)},
		{"edge", []string{"..c"}, pos(0, 2)},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			start := pos(0, 0)
			if tc.name == "edge" {
				start = pos(0, 1)
			}
			terrain := make([]byte, len(tc.occupancy[0]))
			for i := range terrain {
				terrain[i] = 'd'
			}
			robot := &Robot{Pos: start, Dir: compass.East}
			res := newWorld(t, rules.NewClassic(), Options{}, []string{string(terrain)}, tc.occupancy, robot)
			if got := mustResolve(t, res, robot, Forward); got != TurnRight {
				t.Fatalf("effective %s", got)
			}
			if robot.Pos != start || robot.Dir != compass.SouthEast {
				t.Fatalf("robot moved: %s", robot)
			}
			if res.Grid().Occupant(tc.catAfter) != grid.Cat {
				t.Fatalf("cat not at %s:\n%s", tc.catAfter, res.Grid())
			}
			if res.Grid().Count(grid.Dirty) != len(terrain) {
				t.Fatalf("cat movement changed terrain")
			}
		})
	}
}

func TestDirtSmear(t *testing.T) {
	robot := &Robot{Pos: pos(0, 0), Dir: compass.East}
	res := newWorld(t, rules.NewClassic(), Options{}, []string{"d.."}, nil, robot)
	mustResolve(t, res, robot, Forward)
	if got := res.Grid().TerrainRows()[0]; got != "dd." {
		t.Fatalf("terrain = %q, want dd.", got)
	}
}

func TestPuddleSmears(t *testing.T) {
	cases := []struct {
		name    string
		terrain string
		want    string
	}{
		{"dirt into water", "dl.", "dm."},
		{"dirt onto clean", "d..", "dd."},
		{"mud onto clean", "m..", "mm."},
		{"mud onto dirt", "md.", "mm."},
		{"clean leaves nothing", ".d.", ".d."},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			robot := &Robot{Pos: pos(0, 0), Dir: compass.East}
			res := newWorld(t, rules.NewPuddle(), Options{}, []string{tc.terrain}, nil, robot)
			if got := mustResolve(t, res, robot, Forward); got != Forward {
				t.Fatalf("effective %s", got)
			}
			if got := res.Grid().TerrainRows()[0]; got != tc.want {
				t.Fatalf("terrain = %q, want %q", got, tc.want)
			}
			if robot.Pos != pos(0, 1) {
				t.Fatalf("robot at %s", robot.Pos)
			}
		})
	}
}

func TestWaterSlip(t *testing.T) {
	cases := []struct {
		terrain string
		want    string
	}{
		{"l...", "ll.."},
		{"ld..", "lm.."},
		{"ll..", "ll.."},
		{"lm..", "lm.."},
	}
	for _, tc := range cases {
		robot := &Robot{Pos: pos(0, 0), Dir: compass.East}
		res := newWorld(t, rules.NewPuddle(), Options{}, []string{tc.terrain}, nil, robot)
		if got := mustResolve(t, res, robot, Forward); got != Forward {
			t.Fatalf("%s: effective %s", tc.terrain, got)
		}
		if robot.Pos != pos(0, 2) {
			t.Fatalf("%s: robot at %s, want (0,2)", tc.terrain, robot.Pos)
		}
		if got := res.Grid().TerrainRows()[0]; got != tc.want {
			t.Fatalf("%s: terrain = %q, want %q", tc.terrain, got, tc.want)
		}
		if res.Grid().Occupant(pos(0, 1)) != grid.Empty || res.Grid().Occupant(pos(0, 0)) != grid.Empty {
			t.Fatalf("%s: stale marker:\n%s", tc.terrain, res.Grid())
		}
	}
}

func TestWaterSlipOutOfBounds(t *testing.T) {
	robot := &Robot{Pos: pos(0, 1), Dir: compass.East}
	res := newWorld(t, rules.NewPuddle(), Options{}, []string{".l."}, nil, robot)
	if got := mustResolve(t, res, robot, Forward); got != TurnRight {
		t.Fatalf("effective %s", got)
	}
	if robot.Pos != pos(0, 1) || robot.Dir != compass.SouthEast {
		t.Fatalf("robot: %s", robot)
	}
	if got := res.Grid().TerrainRows()[0]; got != ".l." {
		t.Fatalf("aborted slip changed terrain: %q", got)
	}
}

func TestWaterSlipOntoObstacle(t *testing.T) {
	for _, occ := range []string{"..w", "..c"} {
		robot := &Robot{Pos: pos(0, 0), Dir: compass.East}
		res := newWorld(t, rules.NewPuddle(), Options{}, []string{"l.."}, []string{occ}, robot)
		if got := mustResolve(t, res, robot, Forward); got != TurnRight {
			t.Fatalf("%s: effective %s", occ, got)
		}
		if robot.Pos != pos(0, 0) {
			t.Fatalf("%s: robot moved to %s", occ, robot.Pos)
		}
	}
}

func TestSoapRules(t *testing.T) {
	robot := &Robot{Pos: pos(0, 0), Dir: compass.East}
	res := newWorld(t, rules.NewSoap(), Options{}, []string{"sd.."}, nil, robot)
	mustResolve(t, res, robot, Forward)
	if robot.Pos != pos(0, 2) {
		t.Fatalf("robot at %s, want (0,2)", robot.Pos)
	}
	if got := res.Grid().TerrainRows()[0]; got != "s..." {
		t.Fatalf("terrain = %q, want s...", got)
	}

	mop := &Robot{Pos: pos(0, 0), Dir: compass.East}
	res = newWorld(t, rules.NewSoap(), Options{}, []string{"l"}, nil, mop)
	mustResolve(t, res, mop, CleanCell)
	if res.Grid().Terrain(pos(0, 0)) != grid.Soap {
		t.Fatalf("water should become soap")
	}
}

func TestCleanTerrain(t *testing.T) {
	robot := &Robot{Pos: pos(0, 0), Dir: compass.East}
	res := newWorld(t, rules.NewPuddle(), Options{}, []string{"d"}, nil, robot)
	if got := mustResolve(t, res, robot, CleanCell); got != CleanCell {
		t.Fatalf("effective %s", got)
	}
	if res.Grid().Terrain(pos(0, 0)) != grid.Clean {
		t.Fatalf("dirt not cleaned")
	}
	res.Grid().SetTerrain(pos(0, 0), grid.Water)
	mustResolve(t, res, robot, CleanCell)
	if res.Grid().Terrain(pos(0, 0)) != grid.Water {
		t.Fatalf("puddle rules must leave water")
	}
}

// Legacy mode wipes every robot marker when cleaning a clean cell.
// This is kept behind Options.CleanReset and is not part of normal play.
func TestCleanResetCompatibility(t *testing.T) {
	a := &Robot{ID: 0, Pos: pos(0, 0), Dir: compass.East}
	b := &Robot{ID: 1, Pos: pos(0, 2), Dir: compass.West}

	res := newWorld(t, rules.NewClassic(), Options{}, []string{"..."}, nil, a, b)
	mustResolve(t, res, a, CleanCell)
	if n := len(res.Grid().Find(grid.Robot)); n != 2 {
		t.Fatalf("default mode lost markers: %d left", n)
	}

	a = &Robot{ID: 0, Pos: pos(0, 0), Dir: compass.East}
	b = &Robot{ID: 1, Pos: pos(0, 2), Dir: compass.West}
	res = newWorld(t, rules.NewClassic(), Options{CleanReset: true}, []string{"..."}, nil, a, b)
	mustResolve(t, res, a, CleanCell)
	markers := res.Grid().Find(grid.Robot)
	if len(markers) != 1 || markers[0] != a.Pos {
		t.Fatalf("clean reset should leave only the acting robot, got %v", markers)
	}
	mustResolve(t, res, b, TurnLeft)
	if res.Grid().Occupant(b.Pos) != grid.Robot {
		t.Fatalf("acting robot marker should be restored")
	}
}

func TestResolveRejectsUnknownAction(t *testing.T) {
	robot := &Robot{Pos: pos(0, 0), Dir: compass.North}
	res := newWorld(t, rules.NewClassic(), Options{}, []string{"."}, nil, robot)
	if _, err := res.Resolve(robot, Action("mop")); !errors.Is(err, ErrInvalidCommand) {
		t.Fatalf("expected ErrInvalidCommand, got %v", err)
	}
}

func TestRandomWalkInvariants(t *testing.T) {
	terrain := []string{
		"..d..l.",
		".d..m..",
		"l...d.l",
		"..s....",
		"d....ll",
		"...m...",
	}
	occupancy := []string{
		"....w.w",
		".....w.",
		"...w...",
		"..w....",
		".c.....",
		"..ww..c",
	}
	robots := []*Robot{
		{ID: 0, Pos: pos(0, 0), Dir: compass.SouthEast},
		{ID: 1, Pos: pos(4, 4), Dir: compass.North},
		{ID: 2, Pos: pos(2, 6), Dir: compass.West},
	}
	res := newWorld(t, rules.NewSoap(), Options{}, terrain, occupancy, robots...)
	walls := res.Grid().Find(grid.Wall)
	cats := len(res.Grid().Find(grid.Cat))

	rng := rand.New(rand.NewSource(7))
	for step := 0; step < 2000; step++ {
		robot := robots[rng.Intn(len(robots))]
		a := Actions[rng.Intn(len(Actions))]
		if rng.Intn(3) > 0 {
			a = Forward
		}
		mustResolve(t, res, robot, a)

		markers := res.Grid().Find(grid.Robot)
		if len(markers) != len(robots) {
			t.Fatalf("step %d: %d markers for %d robots", step, len(markers), len(robots))
		}
		for _, r := range robots {
			if res.Grid().Occupant(r.Pos) != grid.Robot {
				t.Fatalf("step %d: no marker under %s", step, r)
			}
		}
		for _, w := range walls {
			if res.Grid().Occupant(w) != grid.Wall {
				t.Fatalf("step %d: wall at %s changed", step, w)
			}
		}
		if got := len(res.Grid().Find(grid.Cat)); got != cats {
			t.Fatalf("step %d: %d cats, want %d", step, got, cats)
		}
	}
}

package grid

import (
	"errors"
	"testing"
)

func TestParseLayout(t *testing.T) {
	g, err := Parse(
		[]string{"..d..", "l...."},
		[]string{".w...", "....c"},
	)
	if err != nil {
		t.Fatalf("Parse: %v", err)
	}
	if g.W != 5 || g.H != 2 {
		t.Fatalf("unexpected size %dx%d", g.W, g.H)
	}
	if g.Terrain(Position{0, 2}) != Dirty || g.Terrain(Position{1, 0}) != Water {
		t.Fatalf("terrain not parsed: %v", g.TerrainRows())
	}
	if g.Occupant(Position{0, 1}) != Wall || g.Occupant(Position{1, 4}) != Cat {
		t.Fatalf("occupancy not parsed: %v", g.Rows())
	}
	want := ".wd..\nl...c"
	if g.String() != want {
		t.Fatalf("render = %q, want %q", g.String(), want)
	}
}

func TestParseRejectsBadLayouts(t *testing.T) {
	cases := []struct {
		name      string
		terrain   []string
		occupancy []string
	}{
		{"empty", nil, nil},
		{"ragged terrain", []string{"...", ".."}, nil},
		{"unknown terrain", []string{".x."}, nil},
		{"row mismatch", []string{"...", "..."}, []string{"..."}},
		{"ragged occupancy", []string{"...", "..."}, []string{"...", ".."}},
		{"robot in occupancy", []string{"..."}, []string{".r."}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			if _, err := Parse(tc.terrain, tc.occupancy); !errors.Is(err, ErrInvalidLayout) {
				t.Fatalf("expected ErrInvalidLayout, got %v", err)
			}
		})
	}
}

func TestPlace(t *testing.T) {
	g, _ := Parse([]string{"...", "..."}, []string{".w.", "..."})
	if err := g.Place(Position{1, 1}, Robot); err != nil {
		t.Fatalf("Place: %v", err)
	}
	for _, p := range []Position{{-1, 0}, {2, 0}, {0, 3}, {0, 1}, {1, 1}} {
		if err := g.Place(p, Cat); !errors.Is(err, ErrInvalidLayout) {
			t.Fatalf("Place(%s) expected ErrInvalidLayout, got %v", p, err)
		}
	}
}

func TestInBounds(t *testing.T) {
	g, _ := New(3, 2)
	in := []Position{{0, 0}, {1, 2}}
	out := []Position{{-1, 0}, {0, -1}, {2, 0}, {0, 3}}
	for _, p := range in {
		if !g.InBounds(p) {
			t.Fatalf("%s should be in bounds", p)
		}
	}
	for _, p := range out {
		if g.InBounds(p) {
			t.Fatalf("%s should be out of bounds", p)
		}
	}
}

func TestRelocateKeepsWalls(t *testing.T) {
	g, _ := Parse([]string{"..."}, []string{"w.c"})
	g.Relocate(Position{0, 0}, Position{0, 1})
	if g.Occupant(Position{0, 0}) != Wall {
		t.Fatalf("wall must not move")
	}
	g.Relocate(Position{0, 2}, Position{0, 1})
	if g.Occupant(Position{0, 1}) != Cat || g.Occupant(Position{0, 2}) != Empty {
		t.Fatalf("cat not relocated: %v", g.Rows())
	}
}

func TestClearAllAndFind(t *testing.T) {
	g, _ := New(3, 3)
	_ = g.Place(Position{0, 0}, Robot)
	_ = g.Place(Position{2, 2}, Robot)
	if got := g.Find(Robot); len(got) != 2 || got[1] != (Position{2, 2}) {
		t.Fatalf("Find = %v", got)
	}
	if n := g.ClearAll(Robot); n != 2 {
		t.Fatalf("ClearAll removed %d", n)
	}
	if len(g.Find(Robot)) != 0 {
		t.Fatalf("robots left after ClearAll")
	}
}

// Co-indexed terrain and occupancy layers for the cleaning space
package grid

import (
	"errors"
	"fmt"
	"strings"
)

// ErrInvalidLayout is returned when a layout cannot describe a valid grid.
var ErrInvalidLayout = errors.New("invalid layout")

// Grid stores a terrain layer and an occupancy layer in row-major order.
// Its dimensions never change after construction.
type Grid struct {
	W, H      int
	terrain   []Terrain
	occupancy []Occupant
}

// New allocates an all-clean, empty grid of the given size.
func New(w, h int) (*Grid, error) {
	if w <= 0 || h <= 0 {
		return nil, fmt.Errorf("%w: dimensions %dx%d", ErrInvalidLayout, w, h)
	}
	return &Grid{
		W:         w,
		H:         h,
		terrain:   make([]Terrain, w*h),
		occupancy: make([]Occupant, w*h),
	}, nil
}

// Parse builds a grid from literal rows. Terrain rows use . d l m s and
// occupancy rows use . w c. A nil occupancy means no obstacles; otherwise
// both layers must have identical dimensions.
func Parse(terrain, occupancy []string) (*Grid, error) {
	if len(terrain) == 0 {
		return nil, fmt.Errorf("%w: empty terrain", ErrInvalidLayout)
	}
	width := len(terrain[0])
	g, err := New(width, len(terrain))
	if err != nil {
		return nil, err
	}
	for r, line := range terrain {
		if len(line) != width {
			return nil, fmt.Errorf("%w: terrain row %d has width %d, want %d", ErrInvalidLayout, r, len(line), width)
		}
		for c := 0; c < width; c++ {
			t, ok := ParseTerrain(line[c])
			if !ok {
				return nil, fmt.Errorf("%w: terrain symbol %q at (%d,%d)", ErrInvalidLayout, line[c], r, c)
			}
			g.terrain[g.index(Position{r, c})] = t
		}
	}
	if occupancy == nil {
		return g, nil
	}
	if len(occupancy) != g.H {
		return nil, fmt.Errorf("%w: occupancy has %d rows, terrain has %d", ErrInvalidLayout, len(occupancy), g.H)
	}
	for r, line := range occupancy {
		if len(line) != width {
			return nil, fmt.Errorf("%w: occupancy row %d has width %d, want %d", ErrInvalidLayout, r, len(line), width)
		}
		for c := 0; c < width; c++ {
			o, ok := ParseOccupant(line[c])
			if !ok {
				return nil, fmt.Errorf("%w: occupancy symbol %q at (%d,%d)", ErrInvalidLayout, line[c], r, c)
			}
			g.occupancy[g.index(Position{r, c})] = o
		}
	}
	return g, nil
}

func (g *Grid) index(p Position) int { return p.Row*g.W + p.Col }

// InBounds reports whether p addresses a cell of g.
func (g *Grid) InBounds(p Position) bool {
	return p.Row >= 0 && p.Col >= 0 && p.Row < g.H && p.Col < g.W
}

// Terrain returns the terrain at p. p must be in bounds.
func (g *Grid) Terrain(p Position) Terrain { return g.terrain[g.index(p)] }

// SetTerrain replaces the terrain at p. p must be in bounds.
func (g *Grid) SetTerrain(p Position, t Terrain) { g.terrain[g.index(p)] = t }

// Occupant returns the occupant at p. p must be in bounds.
func (g *Grid) Occupant(p Position) Occupant { return g.occupancy[g.index(p)] }

// Place puts o on an empty in-bounds cell.
func (g *Grid) Place(p Position, o Occupant) error {
	if !g.InBounds(p) {
		return fmt.Errorf("%w: %s %s out of bounds", ErrInvalidLayout, o, p)
	}
	if cur := g.Occupant(p); cur != Empty {
		return fmt.Errorf("%w: %s %s already holds %s", ErrInvalidLayout, o, p, cur)
	}
	g.occupancy[g.index(p)] = o
	return nil
}

// Relocate moves the occupant of from onto to in one step. Walls never move.
func (g *Grid) Relocate(from, to Position) {
	i, j := g.index(from), g.index(to)
	o := g.occupancy[i]
	if o == Wall || i == j {
		return
	}
	g.occupancy[i] = Empty
	g.occupancy[j] = o
}

// ClearAll removes every occupant of kind o and returns how many were removed.
func (g *Grid) ClearAll(o Occupant) int {
	n := 0
	for i, cur := range g.occupancy {
		if cur == o {
			g.occupancy[i] = Empty
			n++
		}
	}
	return n
}

// Find returns the positions holding occupant o in row-major order.
func (g *Grid) Find(o Occupant) []Position {
	var out []Position
	for i, cur := range g.occupancy {
		if cur == o {
			out = append(out, Position{Row: i / g.W, Col: i % g.W})
		}
	}
	return out
}

// Count returns how many cells carry terrain t.
func (g *Grid) Count(t Terrain) int {
	n := 0
	for _, cur := range g.terrain {
		if cur == t {
			n++
		}
	}
	return n
}

// Terrains reports each distinct terrain present on the grid.
func (g *Grid) Terrains() []Terrain {
	seen := map[Terrain]bool{}
	var out []Terrain
	for _, t := range g.terrain {
		if !seen[t] {
			seen[t] = true
			out = append(out, t)
		}
	}
	return out
}

// Rows renders one string per row. Occupants take precedence over terrain.
func (g *Grid) Rows() []string {
	rows := make([]string, g.H)
	var b strings.Builder
	for r := 0; r < g.H; r++ {
		b.Reset()
		for c := 0; c < g.W; c++ {
			p := Position{r, c}
			if o := g.Occupant(p); o != Empty {
				b.WriteByte(o.Symbol())
				continue
			}
			b.WriteByte(g.Terrain(p).Symbol())
		}
		rows[r] = b.String()
	}
	return rows
}

// TerrainRows renders the terrain layer alone.
func (g *Grid) TerrainRows() []string {
	rows := make([]string, g.H)
	for r := 0; r < g.H; r++ {
		b := make([]byte, g.W)
		for c := 0; c < g.W; c++ {
			b[c] = g.Terrain(Position{r, c}).Symbol()
		}
		rows[r] = string(b)
	}
	return rows
}

func (g *Grid) String() string { return strings.Join(g.Rows(), "\n") }

package grid

import "fmt"

// Terrain is the substance covering a cell.
type Terrain uint8

const (
	Clean Terrain = iota
	Dirty
	Water
	Mud
	Soap
)

// Occupant is the transient obstacle standing on a cell.
type Occupant uint8

const (
	Empty Occupant = iota
	Wall
	Cat
	Robot
)

var terrainSymbols = map[Terrain]byte{Clean: '.', Dirty: 'd', Water: 'l', Mud: 'm', Soap: 's'}

var terrainNames = map[Terrain]string{Clean: "clean", Dirty: "dirty", Water: "water", Mud: "mud", Soap: "soap"}

var occupantSymbols = map[Occupant]byte{Empty: '.', Wall: 'w', Cat: 'c', Robot: 'r'}

var occupantNames = map[Occupant]string{Empty: "empty", Wall: "wall", Cat: "cat", Robot: "robot"}

// Symbol returns the single-character layout form of t.
func (t Terrain) Symbol() byte { return terrainSymbols[t] }

func (t Terrain) String() string {
	if n, ok := terrainNames[t]; ok {
		return n
	}
	return fmt.Sprintf("terrain(%d)", uint8(t))
}

// Symbol returns the single-character layout form of o.
func (o Occupant) Symbol() byte { return occupantSymbols[o] }

func (o Occupant) String() string {
	if n, ok := occupantNames[o]; ok {
		return n
	}
	return fmt.Sprintf("occupant(%d)", uint8(o))
}

// ParseTerrain maps a layout symbol to its terrain. A space reads as Clean.
func ParseTerrain(c byte) (Terrain, bool) {
	if c == ' ' {
		return Clean, true
	}
	for t, s := range terrainSymbols {
		if s == c {
			return t, true
		}
	}
	return 0, false
}

// ParseOccupant maps a layout symbol to its occupant. Robots are placed
// separately, so 'r' is not accepted here.
func ParseOccupant(c byte) (Occupant, bool) {
	switch c {
	case '.', ' ':
		return Empty, true
	case 'w':
		return Wall, true
	case 'c':
		return Cat, true
	}
	return 0, false
}

// Position is a zero-based (row, col) coordinate.
type Position struct {
	Row int `json:"row" yaml:"row"`
	Col int `json:"col" yaml:"col"`
}

// Step returns p shifted by (drow, dcol).
func (p Position) Step(drow, dcol int) Position {
	return Position{Row: p.Row + drow, Col: p.Col + dcol}
}

func (p Position) String() string { return fmt.Sprintf("(%d,%d)", p.Row, p.Col) }

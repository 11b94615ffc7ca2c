// Eight-point compass used for robot headings
package compass

import (
	"errors"
	"fmt"
	"strings"
)

// ErrUnknownDirection is returned by Parse for names outside the compass.
var ErrUnknownDirection = errors.New("unknown direction")

// Direction is one of the eight compass headings.
type Direction string

const (
	North     Direction = "N"
	NorthEast Direction = "NE"
	East      Direction = "E"
	SouthEast Direction = "SE"
	South     Direction = "S"
	SouthWest Direction = "SW"
	West      Direction = "W"
	NorthWest Direction = "NW"
)

// All lists the headings clockwise starting at North.
var All = [...]Direction{North, NorthEast, East, SouthEast, South, SouthWest, West, NorthWest}

var displacements = map[Direction][2]int{
	North:     {-1, 0},
	NorthEast: {-1, 1},
	East:      {0, 1},
	SouthEast: {1, 1},
	South:     {1, 0},
	SouthWest: {1, -1},
	West:      {0, -1},
	NorthWest: {-1, -1},
}

// Index returns the clockwise position of d in All, or -1.
func (d Direction) Index() int {
	for i, c := range All {
		if c == d {
			return i
		}
	}
	return -1
}

// Valid reports whether d is one of the eight headings.
func (d Direction) Valid() bool { return d.Index() >= 0 }

func (d Direction) String() string { return string(d) }

// Rotate turns d by delta eighths of a full turn; positive is clockwise.
func Rotate(d Direction, delta int) Direction {
	n := len(All)
	i := d.Index()
	if i < 0 {
		i = 0
	}
	return All[((i+delta)%n+n)%n]
}

// Right is Rotate(d, +1).
func Right(d Direction) Direction { return Rotate(d, 1) }

// Left is Rotate(d, -1).
func Left(d Direction) Direction { return Rotate(d, -1) }

// Displacement returns the unit (drow, dcol) step for d.
func Displacement(d Direction) (drow, dcol int) {
	v := displacements[d]
	return v[0], v[1]
}

// Parse reads a heading name such as "ne" or "SW".
func Parse(s string) (Direction, error) {
	d := Direction(strings.ToUpper(strings.TrimSpace(s)))
	if !d.Valid() {
		return "", fmt.Errorf("%w: %q", ErrUnknownDirection, s)
	}
	return d, nil
}

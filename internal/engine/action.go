package engine

import (
	"errors"
	"fmt"
	"strings"

	"vacuum-sim/internal/compass"
	"vacuum-sim/internal/grid"
)

// ErrInvalidCommand is returned for command tokens that name no action.
var ErrInvalidCommand = errors.New("invalid command")

// Action is a robot command, either requested or effectively performed.
type Action string

const (
	TurnLeft  Action = "turn-left"
	TurnRight Action = "turn-right"
	CleanCell Action = "clean"
	Forward   Action = "forward"
)

// Actions lists every recognised action token.
var Actions = []Action{TurnLeft, TurnRight, CleanCell, Forward}

// ParseAction trims s and matches it against the action tokens.
func ParseAction(s string) (Action, error) {
	tok := strings.TrimSpace(s)
	for _, a := range Actions {
		if string(a) == tok {
			return a, nil
		}
	}
	return "", fmt.Errorf("%w: %q", ErrInvalidCommand, tok)
}

// Robot is the mutable state of one vacuum.
type Robot struct {
	ID  int               `json:"id"`
	Pos grid.Position     `json:"pos"`
	Dir compass.Direction `json:"dir"`
}

func (r Robot) String() string {
	return fmt.Sprintf("robot %d at %s facing %s", r.ID, r.Pos, r.Dir)
}

// ahead returns the cell one step in front of p along d.
func ahead(p grid.Position, d compass.Direction) grid.Position {
	dr, dc := compass.Displacement(d)
	return p.Step(dr, dc)
}

// Simulator replaying robot commands against a room
package sim

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/google/uuid"

	"vacuum-sim/internal/command"
	"vacuum-sim/internal/compass"
	"vacuum-sim/internal/config"
	"vacuum-sim/internal/engine"
	"vacuum-sim/internal/grid"
	"vacuum-sim/internal/rules"
	"vacuum-sim/internal/trace"
)

var (
	// ErrIO is returned when an action log sink cannot be created or written.
	ErrIO = errors.New("log sink unwritable")
	// ErrUnknownRobot marks commands addressed to a robot id that is not in the room.
	ErrUnknownRobot = errors.New("unknown robot")
	// ErrInvariant is returned by Verify when the grid and robot states disagree.
	ErrInvariant = errors.New("occupancy invariant violated")
)

// StepWriter receives one row per processed command.
type StepWriter interface {
	WriteStep(trace.StepRow) error
}

// Optional: writers can also support batch mode
type batchStepWriter interface {
	WriteSteps([]trace.StepRow) error
}

// Simulator owns the grid and robots of one run and drives commands through
// the dispatcher.
type Simulator struct {
	runID      string
	cfg        *config.SimulationConfig
	rules      *rules.Set
	grid       *grid.Grid
	dispatcher *engine.Dispatcher
	robots     map[int]*engine.Robot
	ids        []int
	logs       map[int][]engine.Action
	walls      []grid.Position
	writer     StepWriter
	snapshots  SnapshotWriter
	order      command.Order
	seq        int
	steps      int
	rejected   int
	effective  map[string]int
	now        func() time.Time
}

// NewSimulator builds the grid described by cfg and places its robots.
// Either writer may be nil.
func NewSimulator(cfg *config.SimulationConfig, writer StepWriter, sWriter SnapshotWriter) (*Simulator, error) {
	rs, err := rules.Lookup(cfg.Rules)
	if err != nil {
		return nil, err
	}
	order, err := command.ParseOrder(cfg.Order)
	if err != nil {
		return nil, err
	}
	g, err := grid.Parse(cfg.Terrain, cfg.Occupancy)
	if err != nil {
		return nil, err
	}
	if err := rs.Check(g); err != nil {
		return nil, err
	}

	s := &Simulator{
		runID:     uuid.NewString(),
		cfg:       cfg,
		rules:     rs,
		grid:      g,
		robots:    make(map[int]*engine.Robot),
		logs:      make(map[int][]engine.Action),
		walls:     g.Find(grid.Wall),
		writer:    writer,
		snapshots: sWriter,
		order:     order,
		effective: make(map[string]int),
		now:       time.Now,
	}
	for _, rc := range cfg.Robots {
		if _, dup := s.robots[rc.ID]; dup {
			return nil, fmt.Errorf("%w: duplicate robot id %d", grid.ErrInvalidLayout, rc.ID)
		}
		dir, err := compass.Parse(rc.Direction)
		if err != nil {
			return nil, fmt.Errorf("robot %d: %w", rc.ID, err)
		}
		pos := grid.Position{Row: rc.Row, Col: rc.Col}
		if err := g.Place(pos, grid.Robot); err != nil {
			return nil, fmt.Errorf("robot %d: %w", rc.ID, err)
		}
		s.robots[rc.ID] = &engine.Robot{ID: rc.ID, Pos: pos, Dir: dir}
		s.ids = append(s.ids, rc.ID)
	}
	sort.Ints(s.ids)

	res := engine.NewResolver(g, rs, engine.Options{CleanReset: cfg.CleanReset})
	s.dispatcher = engine.NewDispatcher(res)
	return s, nil
}

// RunID identifies this run in emitted rows.
func (s *Simulator) RunID() string { return s.runID }

// Robots returns copies of the robot states ordered by id.
func (s *Simulator) Robots() []engine.Robot {
	out := make([]engine.Robot, 0, len(s.ids))
	for _, id := range s.ids {
		out = append(out, *s.robots[id])
	}
	return out
}

// Logs returns the effective actions performed by each robot so far.
func (s *Simulator) Logs() map[int][]engine.Action {
	out := make(map[int][]engine.Action, len(s.logs))
	for id, l := range s.logs {
		out[id] = append([]engine.Action(nil), l...)
	}
	return out
}

// Render returns the current grid, one string per row.
func (s *Simulator) Render() []string { return s.grid.Rows() }

// Grid exposes the live grid. Callers must not mutate it while Run is active.
func (s *Simulator) Grid() *grid.Grid { return s.grid }

// Summary reports the counters of the run so far.
func (s *Simulator) Summary() trace.RunSummary {
	eff := make(map[string]int, len(s.effective))
	for k, v := range s.effective {
		eff[k] = v
	}
	return trace.RunSummary{
		RunID:     s.runID,
		Rules:     s.rules.Name,
		Steps:     s.steps,
		Rejected:  s.rejected,
		Effective: eff,
		Dirty:     s.grid.Count(grid.Dirty) + s.grid.Count(grid.Mud),
		Timestamp: s.now().UTC(),
	}
}

// Verify checks that every robot marker sits where its robot is recorded,
// that no stray markers exist, and that walls never moved.
func (s *Simulator) Verify() error {
	var errs []error
	markers := s.grid.Find(grid.Robot)
	if len(markers) != len(s.robots) {
		errs = append(errs, fmt.Errorf("%d robot markers for %d robots", len(markers), len(s.robots)))
	}
	for _, id := range s.ids {
		r := s.robots[id]
		if !s.grid.InBounds(r.Pos) {
			errs = append(errs, fmt.Errorf("robot %d out of bounds at %s", id, r.Pos))
			continue
		}
		if o := s.grid.Occupant(r.Pos); o != grid.Robot {
			errs = append(errs, fmt.Errorf("robot %d at %s but cell holds %s", id, r.Pos, o))
		}
	}
	walls := s.grid.Find(grid.Wall)
	if len(walls) != len(s.walls) {
		errs = append(errs, fmt.Errorf("wall count changed from %d to %d", len(s.walls), len(walls)))
	} else {
		for i, w := range walls {
			if w != s.walls[i] {
				errs = append(errs, fmt.Errorf("wall moved from %s", s.walls[i]))
				break
			}
		}
	}
	if len(errs) > 0 {
		return fmt.Errorf("%w: %w", ErrInvariant, errors.Join(errs...))
	}
	return nil
}

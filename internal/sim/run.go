package sim

import (
	"context"
	"errors"
	"fmt"

	"vacuum-sim/internal/command"
	"vacuum-sim/internal/config"
	"vacuum-sim/internal/engine"
	"vacuum-sim/internal/logging"
	"vacuum-sim/internal/trace"
)

// Run processes cmds one at a time in the configured order. Rejected
// commands are collected and returned joined; the run itself continues
// according to the on_invalid policy. A failing writer stops the run with
// ErrIO. Cancellation is checked between commands.
func (s *Simulator) Run(ctx context.Context, cmds []command.Command) error {
	log := logging.FromContext(ctx)
	seq := command.Sequence(cmds, s.order)
	log.Info("starting run", "run_id", s.runID, "rules", s.rules.Name, "robots", len(s.ids), "commands", len(seq), "order", s.order)

	if err := s.snapshot(trace.SnapshotInitial); err != nil {
		return err
	}

	var errs []error
	halted := make(map[int]bool)
	for _, c := range seq {
		if err := ctx.Err(); err != nil {
			errs = append(errs, err)
			break
		}
		if halted[c.RobotID] {
			log.Debug("dropping command for halted robot", "robot_id", c.RobotID, "line", c.Line, "action", c.Action)
			continue
		}
		if s.cfg.Render == config.RenderEvery && s.seq > 0 {
			if err := s.snapshot(trace.SnapshotStep); err != nil {
				return errors.Join(append(errs, err)...)
			}
		}

		row, err := s.step(c)
		if err != nil {
			errs = append(errs, err)
			log.Warn("command rejected", "robot_id", c.RobotID, "line", c.Line, "action", c.Action, "err", err)
			if s.cfg.OnInvalid != config.OnInvalidSkip {
				halted[c.RobotID] = true
			}
		}
		if err := s.emit(row); err != nil {
			return errors.Join(append(errs, err)...)
		}
	}
	if err := s.snapshot(trace.SnapshotFinal); err != nil {
		return errors.Join(append(errs, err)...)
	}
	log.Info("run finished", "run_id", s.runID, "steps", s.steps, "rejected", s.rejected)
	return errors.Join(errs...)
}

// step dispatches a single command and returns the row describing it.
func (s *Simulator) step(c command.Command) (trace.StepRow, error) {
	s.seq++
	row := trace.StepRow{
		RunID:     s.runID,
		Seq:       s.seq,
		RobotID:   c.RobotID,
		Line:      c.Line,
		Requested: c.Action,
		Timestamp: s.now().UTC(),
	}
	robot, ok := s.robots[c.RobotID]
	if !ok {
		s.rejected++
		err := fmt.Errorf("line %d: %w: %w %d", c.Line, engine.ErrInvalidCommand, ErrUnknownRobot, c.RobotID)
		row.Error = err.Error()
		return row, err
	}
	eff, err := s.dispatcher.Dispatch(robot, c.Action)
	row.Row, row.Col, row.Direction = robot.Pos.Row, robot.Pos.Col, robot.Dir.String()
	if err != nil {
		s.rejected++
		err = fmt.Errorf("robot %d line %d: %w", c.RobotID, c.Line, err)
		row.Error = err.Error()
		return row, err
	}
	s.steps++
	s.effective[string(eff)]++
	s.logs[c.RobotID] = append(s.logs[c.RobotID], eff)
	row.Effective = string(eff)
	return row, nil
}

func (s *Simulator) emit(row trace.StepRow) error {
	if s.writer == nil {
		return nil
	}
	err := s.writer.WriteStep(row)
	if err != nil && !errors.Is(err, ErrIO) {
		err = fmt.Errorf("%w: %w", ErrIO, err)
	}
	return err
}

func (s *Simulator) snapshot(kind string) error {
	if s.snapshots == nil {
		return nil
	}
	if kind == trace.SnapshotStep && s.cfg.Render != config.RenderEvery {
		return nil
	}
	row := trace.SnapshotRow{
		RunID:     s.runID,
		Seq:       s.seq,
		Kind:      kind,
		Rows:      s.grid.Rows(),
		Timestamp: s.now().UTC(),
	}
	if err := s.snapshots.WriteSnapshot(row); err != nil {
		return fmt.Errorf("%w: %w", ErrIO, err)
	}
	return nil
}

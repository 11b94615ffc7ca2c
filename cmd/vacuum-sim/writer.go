package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"golang.org/x/term"

	"vacuum-sim/internal/config"
	"vacuum-sim/internal/sim"
)

// rowWriter receives both steps and snapshots.
type rowWriter interface {
	sim.StepWriter
	sim.SnapshotWriter
}

type writerOptions struct {
	JSON      bool
	TUI       bool
	Hold      bool
	Quiet     bool
	TracePath string
	LogPaths  map[int]string
}

var isTerminal = func() bool { return term.IsTerminal(int(os.Stdout.Fd())) }

// newWriters sets up the console writer plus optional trace and action log
// files. The returned cleanup flushes and closes everything it opened.
func newWriters(cfg *config.SimulationConfig, opts writerOptions) (sim.StepWriter, sim.SnapshotWriter, func() error, error) {
	var closers []func() error
	cleanup := func() error {
		var errs []error
		for i := len(closers) - 1; i >= 0; i-- {
			errs = append(errs, closers[i]())
		}
		return errors.Join(errs...)
	}

	var steps []sim.StepWriter
	var snaps []sim.SnapshotWriter
	if base := baseWriter(cfg, opts); base != nil {
		steps = append(steps, base)
		snaps = append(snaps, base)
		if tw, ok := base.(*sim.TUIWriter); ok {
			closers = append(closers, tw.Close)
		}
	}

	if opts.TracePath != "" {
		fw, err := sim.NewFileWriter(opts.TracePath, opts.TracePath+".snapshots")
		if err != nil {
			_ = cleanup()
			return nil, nil, nil, fmt.Errorf("%w: %w", sim.ErrIO, err)
		}
		closers = append(closers, fw.Close)
		steps = append(steps, fw)
		snaps = append(snaps, fw)
	}

	if len(opts.LogPaths) > 0 {
		lw, err := sim.NewActionLogWriter(opts.LogPaths)
		if err != nil {
			_ = cleanup()
			return nil, nil, nil, err
		}
		closers = append(closers, lw.Close)
		steps = append(steps, lw)
	}

	if len(steps) == 1 && len(snaps) == 1 {
		if rw, ok := steps[0].(rowWriter); ok {
			return rw, rw, cleanup, nil
		}
	}
	mw := sim.NewMultiWriter(steps, snaps)
	return mw, mw, cleanup, nil
}

// baseWriter chooses the console writer: JSON, TUI, colour on a terminal,
// plain text otherwise, or nothing when quiet.
func baseWriter(cfg *config.SimulationConfig, opts writerOptions) rowWriter {
	switch {
	case opts.Quiet:
		return nil
	case opts.JSON:
		return sim.NewJSONStdoutWriter()
	case opts.TUI:
		return sim.NewTUIWriter(cfg, opts.Hold)
	case isTerminal():
		return sim.NewColorStdoutWriter(cfg)
	}
	return sim.NewStdoutWriter()
}

// logPaths maps robot ids to action log files. A shared file wins over a
// directory, which wins over per-robot paths from the configuration.
func logPaths(cfg *config.SimulationConfig, dir, file string) map[int]string {
	paths := make(map[int]string)
	for _, r := range cfg.Robots {
		switch {
		case file != "":
			paths[r.ID] = file
		case dir != "":
			paths[r.ID] = filepath.Join(dir, fmt.Sprintf("robot-%d.log", r.ID))
		case r.Log != "":
			paths[r.ID] = r.Log
		}
	}
	return paths
}

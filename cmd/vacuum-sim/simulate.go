package main

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/spf13/cobra"

	"vacuum-sim/internal/command"
	"vacuum-sim/internal/config"
	"vacuum-sim/internal/logging"
	"vacuum-sim/internal/scenario"
	"vacuum-sim/internal/sim"
)

var (
	simConfigPath string
	simSchemaPath string
	simRoom       string
	simCommands   string
	simLogDir     string
	simLogFile    string
	simTrace      string
	simOrder      string
	simOnInvalid  string
	simRender     string
	simJSON       bool
	simTUI        bool
	simHold       bool
	simQuiet      bool
)

var simulateCmd = &cobra.Command{
	Use:   "simulate",
	Short: "Replay a command script against a room",
	Long: "simulate loads a room from a configuration file or a built-in room, " +
		"runs the command script, and writes each robot's effective actions.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadSimulation(cmd)
		if err != nil {
			return err
		}
		cmds, err := loadCommands(cfg)
		if err != nil {
			return err
		}

		stepWriter, snapWriter, cleanup, err := newWriters(cfg, writerOptions{
			JSON:      simJSON,
			TUI:       simTUI,
			Hold:      simHold,
			Quiet:     simQuiet,
			TracePath: simTrace,
			LogPaths:  logPaths(cfg, simLogDir, simLogFile),
		})
		if err != nil {
			return err
		}

		simulator, err := sim.NewSimulator(cfg, stepWriter, snapWriter)
		if err != nil {
			_ = cleanup()
			return err
		}

		ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()
		log := slog.Default().With("run_id", simulator.RunID())
		ctx = logging.NewContext(ctx, log)

		runErr := simulator.Run(ctx, cmds)
		closeErr := cleanup()
		if err := simulator.Verify(); err != nil {
			runErr = errors.Join(runErr, err)
		}
		sum := simulator.Summary()
		log.Info("summary", "steps", sum.Steps, "rejected", sum.Rejected, "dirty_cells", sum.Dirty, "effective", sum.Effective)
		return errors.Join(runErr, closeErr)
	},
}

// loadSimulation builds the configuration from --room or --config and
// applies flag overrides.
func loadSimulation(cmd *cobra.Command) (*config.SimulationConfig, error) {
	var cfg *config.SimulationConfig
	if simRoom != "" {
		room, ok := scenario.Lookup(simRoom)
		if !ok {
			return nil, fmt.Errorf("%w: unknown room %q (have %v)", config.ErrInvalidConfig, simRoom, scenario.Names())
		}
		cfg = config.FromRoom(room)
	} else {
		var err error
		cfg, err = config.Load(simConfigPath, simSchemaPath)
		if err != nil {
			return nil, err
		}
		resolveRelative(cfg, filepath.Dir(simConfigPath))
	}
	flags := cmd.Flags()
	if flags.Changed("order") {
		cfg.Order = simOrder
	}
	if flags.Changed("on-invalid") {
		cfg.OnInvalid = simOnInvalid
	}
	if flags.Changed("render") {
		cfg.Render = simRender
	}
	if flags.Changed("commands") {
		cfg.Commands = simCommands
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

// resolveRelative anchors the script and robot log paths of a config file
// to the directory holding it.
func resolveRelative(cfg *config.SimulationConfig, dir string) {
	anchor := func(p string) string {
		if p == "" || p == "-" || filepath.IsAbs(p) {
			return p
		}
		return filepath.Join(dir, p)
	}
	cfg.Commands = anchor(cfg.Commands)
	for i := range cfg.Robots {
		cfg.Robots[i].Log = anchor(cfg.Robots[i].Log)
	}
}

// loadCommands reads the script named by the configuration; "-" is STDIN.
func loadCommands(cfg *config.SimulationConfig) ([]command.Command, error) {
	switch cfg.Commands {
	case "":
		return nil, fmt.Errorf("%w: no command script given (use --commands or the commands field)", command.ErrIO)
	case "-":
		return command.Parse("stdin", os.Stdin, cfg.DefaultRobot)
	}
	return command.ParseFile(cfg.Commands, cfg.DefaultRobot)
}

func init() {
	f := simulateCmd.Flags()
	f.StringVar(&simConfigPath, "config", "config/simulation.yaml", "Path to simulation configuration YAML")
	f.StringVar(&simSchemaPath, "schema", "schemas/simulation.cue", "Path to CUE schema file (empty to skip)")
	f.StringVar(&simRoom, "room", "", "Use a built-in room instead of --config (see 'rooms')")
	f.StringVar(&simCommands, "commands", "", "Command script path, or - for STDIN")
	f.StringVar(&simLogDir, "log-dir", "", "Write robot-<id>.log action logs into this directory")
	f.StringVar(&simLogFile, "log-file", "", "Write every robot's effective actions to one file")
	f.StringVar(&simTrace, "trace", "", "Export step rows (JSONL) to this path; snapshots go to <path>.snapshots")
	f.StringVar(&simOrder, "order", "interleave", "Command order: interleave or group")
	f.StringVar(&simOnInvalid, "on-invalid", config.OnInvalidHalt, "Invalid command policy: halt or skip")
	f.StringVar(&simRender, "render", config.RenderInitial, "Grid snapshots: initial or every")
	f.BoolVar(&simJSON, "json", false, "Print steps and snapshots as JSON")
	f.BoolVar(&simTUI, "tui", false, "Show an interactive terminal UI")
	f.BoolVar(&simHold, "hold", false, "Keep the TUI open after the run until q is pressed")
	f.BoolVar(&simQuiet, "quiet", false, "Print nothing to STDOUT")
	simulateCmd.MarkFlagsMutuallyExclusive("json", "tui", "quiet")
	simulateCmd.MarkFlagsMutuallyExclusive("room", "config")
}

package main

import (
	"github.com/spf13/cobra"

	"vacuum-sim/internal/sim"
	"vacuum-sim/internal/trace"
)

var renderCmd = &cobra.Command{
	Use:   "render",
	Short: "Print the starting grid of a room",
	Long:  "render validates a room from --config or --room and prints its starting grid without running any commands.",
	RunE: func(cmd *cobra.Command, args []string) error {
		cfg, err := loadSimulation(cmd)
		if err != nil {
			return err
		}
		s, err := sim.NewSimulator(cfg, nil, nil)
		if err != nil {
			return err
		}
		w := baseWriter(cfg, writerOptions{JSON: simJSON})
		return w.WriteSnapshot(trace.SnapshotRow{RunID: s.RunID(), Kind: trace.SnapshotInitial, Rows: s.Render()})
	},
}

func init() {
	f := renderCmd.Flags()
	f.StringVar(&simConfigPath, "config", "config/simulation.yaml", "Path to simulation configuration YAML")
	f.StringVar(&simSchemaPath, "schema", "schemas/simulation.cue", "Path to CUE schema file (empty to skip)")
	f.StringVar(&simRoom, "room", "", "Use a built-in room instead of --config")
	f.BoolVar(&simJSON, "json", false, "Print the grid as JSON")
	renderCmd.MarkFlagsMutuallyExclusive("room", "config")
}

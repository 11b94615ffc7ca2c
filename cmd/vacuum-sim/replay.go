package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"vacuum-sim/internal/sim"
)

var (
	replayInput string
	replaySpeed float64
	replayJSON  bool
)

var replayCmd = &cobra.Command{
	Use:   "replay",
	Short: "Replay a step trace file",
	Long:  "replay feeds step rows recorded with 'simulate --trace' back to STDOUT, honouring the recorded timing.",
	RunE: func(cmd *cobra.Command, args []string) error {
		if replayInput == "" {
			return fmt.Errorf("input file required")
		}
		writer := baseWriter(nil, writerOptions{JSON: replayJSON})
		return sim.ReplayLogFile(replayInput, writer, replaySpeed)
	},
}

func init() {
	replayCmd.Flags().StringVar(&replayInput, "input", "", "Path to step trace file")
	replayCmd.Flags().Float64Var(&replaySpeed, "speed", 1.0, "Playback speed multiplier (0 for no delay)")
	replayCmd.Flags().BoolVar(&replayJSON, "json", false, "Print rows as JSON")
	replayCmd.MarkFlagRequired("input")
}

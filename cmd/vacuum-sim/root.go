package main

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"vacuum-sim/internal/logging"
)

var logLevel string

var rootCmd = &cobra.Command{
	Use:   "vacuum-sim",
	Short: "Robot vacuum grid simulator",
	Long:  "vacuum-sim replays robot vacuum command scripts against a room grid and records the actions each robot actually performed.",
	PersistentPreRun: func(cmd *cobra.Command, args []string) {
		slog.SetDefault(logging.New(logLevel))
	},
	SilenceUsage: true,
}

// Execute runs the root command.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&logLevel, "log-level", "info", "Log level (debug, info, warn, error)")
	rootCmd.AddCommand(simulateCmd)
	rootCmd.AddCommand(replayCmd)
	rootCmd.AddCommand(renderCmd)
	rootCmd.AddCommand(roomsCmd)
}

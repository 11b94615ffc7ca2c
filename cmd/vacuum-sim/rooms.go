package main

import (
	"fmt"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"vacuum-sim/internal/scenario"
)

var roomsCmd = &cobra.Command{
	Use:   "rooms",
	Short: "List built-in rooms",
	RunE: func(cmd *cobra.Command, args []string) error {
		tw := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 0, 2, ' ', 0)
		fmt.Fprintln(tw, "NAME\tSIZE\tRULES\tROBOTS\tDESCRIPTION")
		for _, name := range scenario.Names() {
			r, _ := scenario.Lookup(name)
			w, h := r.Dimensions()
			fmt.Fprintf(tw, "%s\t%dx%d\t%s\t%d\t%s\n", r.Name, w, h, r.Rules, len(r.Robots), r.Description)
		}
		return tw.Flush()
	},
}

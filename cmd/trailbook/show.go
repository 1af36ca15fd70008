// ABOUTME: Show command for a stored trace
// ABOUTME: Prints stats, pace analytics, and direction change detection

package main

import (
	"fmt"

	"github.com/harper/trailbook/internal/analytics"
	"github.com/harper/trailbook/internal/ui"
	"github.com/spf13/cobra"
)

var showCmd = &cobra.Command{
	Use:   "show <name>",
	Short: "Show stats for a stored trace",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		trace, err := findTrace(args[0])
		if err != nil {
			return err
		}

		fmt.Print(ui.FormatTraceSummary(trace, analytics.Analyze(trace.Data)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(showCmd)
}

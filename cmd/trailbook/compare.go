// ABOUTME: Compare command measuring a trace against a reference
// ABOUTME: Reports mean deviation and start time offset, typically dog vs runner

package main

import (
	"fmt"

	"github.com/harper/trailbook/internal/analytics"
	"github.com/harper/trailbook/internal/ui"
	"github.com/spf13/cobra"
)

var compareCmd = &cobra.Command{
	Use:   "compare <trace> <reference>",
	Short: "Compare a trace with a reference trace",
	Long: `Measure how far a trace strays from a reference.

Each reference segment defines a circle around its first point with twice
the segment length as radius. Deviation is the total distance in meters by
which trace points fall outside every circle, so 0 means the trace never left
the reference corridor. The start offset is the time between the two
recordings' first timestamps.

Examples:
  trailbook compare dog-0412 runner-0412`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		trace, err := findTrace(args[0])
		if err != nil {
			return err
		}
		reference, err := findTrace(args[1])
		if err != nil {
			return err
		}

		cmp := analytics.Compare(trace.Data, reference.Data)
		fmt.Print(ui.FormatComparison(trace.Name, reference.Name, cmp))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(compareCmd)
}

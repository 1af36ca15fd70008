// ABOUTME: List command showing traces in the library
// ABOUTME: Optionally filters by trace kind

package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/harper/trailbook/internal/models"
	"github.com/harper/trailbook/internal/ui"
	"github.com/spf13/cobra"
)

var listCmd = &cobra.Command{
	Use:     "list",
	Aliases: []string{"ls"},
	Short:   "List stored traces",
	RunE: func(cmd *cobra.Command, args []string) error {
		traces, err := repo.ListTraces()
		if err != nil {
			return fmt.Errorf("failed to list traces: %w", err)
		}

		kindFlag, _ := cmd.Flags().GetString("kind")
		if kindFlag != "" {
			kind, err := models.ParseTraceKind(kindFlag)
			if err != nil {
				return err
			}
			traces = filterByKind(traces, kind)
		}

		if len(traces) == 0 {
			color.Yellow("No traces yet. Import one with 'trailbook import <file.gpx>'.")
			return nil
		}

		for _, trace := range traces {
			fmt.Println(ui.FormatTraceListItem(trace))
		}
		return nil
	},
}

func init() {
	listCmd.Flags().StringP("kind", "k", "", "only show traces of this kind")

	rootCmd.AddCommand(listCmd)
}

func filterByKind(traces []*models.Trace, kind models.TraceKind) []*models.Trace {
	var out []*models.Trace
	for _, t := range traces {
		if t.Kind == kind {
			out = append(out, t)
		}
	}
	return out
}

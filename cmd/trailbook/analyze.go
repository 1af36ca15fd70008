// ABOUTME: Analyze command for inspecting a GPX file without storing it
// ABOUTME: Prints distance, duration, pace, and direction change

package main

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/harper/trailbook/internal/analytics"
	"github.com/harper/trailbook/internal/models"
	"github.com/harper/trailbook/internal/ui"
	"github.com/spf13/cobra"
)

var analyzeCmd = &cobra.Command{
	Use:         "analyze <file.gpx>",
	Short:       "Show stats for a GPX file without importing it",
	Args:        cobra.ExactArgs(1),
	Annotations: noStorage(),
	RunE: func(cmd *cobra.Command, args []string) error {
		data, err := readGPXFile(args[0])
		if err != nil {
			return err
		}

		name := strings.TrimSuffix(filepath.Base(args[0]), filepath.Ext(args[0]))
		trace := &models.Trace{Name: name, Data: data}
		fmt.Print(ui.FormatTraceSummary(trace, analytics.Analyze(data)))
		return nil
	},
}

func init() {
	rootCmd.AddCommand(analyzeCmd)
}

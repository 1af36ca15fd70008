// ABOUTME: Trim command cutting a stored trace to a sub-range
// ABOUTME: Moves the editor's start and end handles, then previews or saves

package main

import (
	"errors"
	"fmt"
	"log/slog"
	"strings"

	"github.com/fatih/color"
	"github.com/harper/trailbook/internal/analytics"
	"github.com/harper/trailbook/internal/editor"
	"github.com/harper/trailbook/internal/models"
	"github.com/harper/trailbook/internal/storage"
	"github.com/harper/trailbook/internal/ui"
	"github.com/spf13/cobra"
)

var trimCmd = &cobra.Command{
	Use:   "trim <name> --start <fraction> --end <fraction>",
	Short: "Trim a trace to a sub-range",
	Long: `Cut a stored trace down to the part between two positions.

Positions are fractions of the trace from 0 (first point) to 1 (last point).
Statistics are recomputed for the trimmed range. A trim always keeps at
least two points.

Examples:
  trailbook trim dog-0412 --start 0.05 --end 0.9 --preview
  trailbook trim dog-0412 --start 0.05
  trailbook trim dog-0412 --end 0.5 --as dog-0412-first-half`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		start, _ := cmd.Flags().GetFloat64("start")
		end, _ := cmd.Flags().GetFloat64("end")
		if start < 0 || end > 1 || start >= end {
			return fmt.Errorf("invalid range %.2f-%.2f: need 0 <= start < end <= 1", start, end)
		}

		trace, err := findTrace(args[0])
		if err != nil {
			return err
		}

		ed, err := editor.New(trace.Data, editor.WithPreview(func(sub models.Path) {
			slog.Debug("selection moved", "trace", trace.Name, "points", len(sub))
		}))
		if err != nil {
			return fmt.Errorf("cannot trim '%s': %w", trace.Name, err)
		}
		if n := len(trace.Data.Timestamps); n > 0 && !trace.Data.TimestampsAligned() {
			color.Yellow("⚠ only %d of %d points have timestamps; duration covers the timed part", n, len(trace.Data.Path))
		}
		if n := len(trace.Data.Elevations); n > 0 && !trace.Data.ElevationsAligned() {
			color.Yellow("⚠ only %d of %d points have elevations; elevation gain is dropped", n, len(trace.Data.Path))
		}
		drag(ed, editor.HandleStart, start)
		drag(ed, editor.HandleEnd, end)

		sel := ed.Selection()
		preview, _ := cmd.Flags().GetBool("preview")
		if preview {
			data := ed.Preview()
			fmt.Printf("Points %d-%d of %d\n", sel.StartIndex, sel.EndIndex, len(sel.Path))
			fmt.Print(ui.FormatTraceSummary(&models.Trace{Name: trace.Name, Kind: trace.Kind, Data: data}, analytics.Analyze(data)))
			return nil
		}

		trimmed := ed.Commit()
		saveAs, _ := cmd.Flags().GetString("as")
		saveAs = strings.TrimSpace(saveAs)
		if saveAs != "" {
			if err := models.ValidateName(saveAs); err != nil {
				return err
			}
			copyTrace := models.NewTrace(saveAs, trace.Kind, trimmed)
			if err := repo.CreateTrace(copyTrace); err != nil {
				if errors.Is(err, storage.ErrDuplicateName) {
					return fmt.Errorf("a trace named '%s' already exists", saveAs)
				}
				return fmt.Errorf("failed to save trace: %w", err)
			}
			color.Green("✓ Saved %s (%d points, %s)", saveAs, len(trimmed.Path), ui.FormatDistance(trimmed.Distance))
			return nil
		}

		trace.Data = trimmed
		if err := repo.UpdateTrace(trace); err != nil {
			return fmt.Errorf("failed to save trace: %w", err)
		}
		color.Green("✓ Trimmed %s to %d points (%s)", trace.Name, len(trimmed.Path), ui.FormatDistance(trimmed.Distance))
		return nil
	},
}

func init() {
	trimCmd.Flags().Float64("start", 0, "start position as a fraction of the trace")
	trimCmd.Flags().Float64("end", 1, "end position as a fraction of the trace")
	trimCmd.Flags().Bool("preview", false, "print the trimmed stats without saving")
	trimCmd.Flags().String("as", "", "save the trimmed trace under a new name")

	rootCmd.AddCommand(trimCmd)
}

// drag moves one handle the way a pointer drag would.
func drag(ed *editor.Editor, h editor.Handle, fraction float64) {
	ed.BeginDrag(h)
	ed.UpdateDrag(fraction)
	ed.EndDrag()
}

// ABOUTME: Migrate command converting legacy GPX-JSON traces on the trail service
// ABOUTME: Rewrites trail and hike trace fields as GeoJSON, with a dry-run mode

package main

import (
	"fmt"
	"log/slog"

	"github.com/fatih/color"
	"github.com/harper/trailbook/internal/migrate"
	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Convert legacy traces on the trail service to GeoJSON",
	Long: `Scan every trail and hike on the trail service and rewrite trace fields
still stored in the old nested GPX-JSON shape as GeoJSON.

Fields that are already GeoJSON or null are left alone, so the command is
safe to run more than once. Fields in any other shape are reported and
skipped.

Examples:
  trailbook migrate --dry-run
  trailbook migrate`,
	Annotations: noStorage(),
	RunE: func(cmd *cobra.Command, args []string) error {
		client, err := newAPIClient()
		if err != nil {
			return err
		}

		dryRun, _ := cmd.Flags().GetBool("dry-run")
		m := migrate.New(client, migrate.DryRun(dryRun), migrate.WithLogger(slog.Default()))

		sum, err := m.Run(commandContext(cmd))
		if err != nil {
			return fmt.Errorf("migration aborted: %w", err)
		}

		printMigrationSummary(sum, dryRun)
		if sum.Failed > 0 {
			return fmt.Errorf("%d records failed to update", sum.Failed)
		}
		return nil
	},
}

func init() {
	migrateCmd.Flags().Bool("dry-run", false, "report conversions without writing")

	rootCmd.AddCommand(migrateCmd)
}

func printMigrationSummary(sum migrate.Summary, dryRun bool) {
	if dryRun {
		color.Yellow("Dry run: nothing was written")
	} else {
		color.Green("Migration complete")
	}
	fmt.Printf("  %d records scanned\n", sum.Records)
	fmt.Printf("  %d traces converted\n", sum.Converted)
	fmt.Printf("  %d traces skipped\n", sum.Skipped)
	if sum.Failed > 0 {
		color.Red("  %d records failed", sum.Failed)
		for _, e := range sum.Errors {
			fmt.Printf("    %s\n", e)
		}
	}
}

// ABOUTME: Backup and restore commands for the trace library
// ABOUTME: Writes and reads portable YAML backup files

package main

import (
	"fmt"
	"os"
	"time"

	"github.com/fatih/color"
	"github.com/harper/trailbook/internal/storage"
	"github.com/spf13/cobra"
)

var backupCmd = &cobra.Command{
	Use:   "backup",
	Short: "Create a YAML backup of all traces",
	Long: `Create a YAML backup file containing every stored trace.

The backup file can be used to:
- Move the library between machines
- Restore after data loss

Examples:
  trailbook backup --output traces.yaml
  trailbook backup -o ~/backups/trailbook-$(date +%Y%m%d).yaml`,
	RunE: func(cmd *cobra.Command, args []string) error {
		output, _ := cmd.Flags().GetString("output")

		data, err := storage.ExportBackup(repo)
		if err != nil {
			return fmt.Errorf("failed to create backup: %w", err)
		}

		if output == "" {
			output = fmt.Sprintf("trailbook-%s.yaml", time.Now().Format("20060102-150405"))
		}

		if err := os.WriteFile(output, data, 0644); err != nil { //nolint:gosec // 0644 is intentional for backup files
			return fmt.Errorf("failed to write backup: %w", err)
		}

		traces, _ := repo.ListTraces()

		color.Green("Backup created: %s", output)
		fmt.Printf("  %d traces\n", len(traces))
		return nil
	},
}

var restoreCmd = &cobra.Command{
	Use:   "restore <file>",
	Short: "Restore traces from a YAML backup",
	Long: `Restore traces from a backup created with 'trailbook backup'.

Traces are added to the library. A trace whose name already exists stops
the restore; traces restored before it are kept.

Examples:
  trailbook restore traces.yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := args[0]

		data, err := os.ReadFile(filename) //nolint:gosec // user-supplied path is the point of the command
		if err != nil {
			return fmt.Errorf("failed to read file: %w", err)
		}

		skip, _ := cmd.Flags().GetBool("confirm")
		if !skip && !confirm(cmd, fmt.Sprintf("Restore traces from '%s'?", filename)) {
			fmt.Println("Cancelled.")
			return nil
		}

		n, err := storage.ImportBackup(repo, data)
		if err != nil {
			return fmt.Errorf("failed to restore after %d traces: %w", n, err)
		}

		color.Green("Restore complete")
		fmt.Printf("  %d traces restored\n", n)
		return nil
	},
}

func init() {
	backupCmd.Flags().StringP("output", "o", "", "output file (default: trailbook-YYYYMMDD-HHMMSS.yaml)")
	restoreCmd.Flags().Bool("confirm", false, "skip confirmation prompt")

	rootCmd.AddCommand(backupCmd)
	rootCmd.AddCommand(restoreCmd)
}

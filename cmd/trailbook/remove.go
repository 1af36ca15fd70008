// ABOUTME: Remove command deleting a trace from the library
// ABOUTME: Asks for confirmation unless --confirm is given

package main

import (
	"fmt"

	"github.com/fatih/color"
	"github.com/spf13/cobra"
)

var removeCmd = &cobra.Command{
	Use:     "remove <name>",
	Aliases: []string{"rm"},
	Short:   "Remove a trace",
	Args:    cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		name := args[0]

		trace, err := findTrace(name)
		if err != nil {
			return err
		}

		skip, _ := cmd.Flags().GetBool("confirm")
		if !skip && !confirm(cmd, fmt.Sprintf("Remove '%s'?", name)) {
			fmt.Println("Cancelled.")
			return nil
		}

		if err := repo.DeleteTrace(trace.ID); err != nil {
			return fmt.Errorf("failed to remove trace: %w", err)
		}

		color.Green("✓ Removed %s", name)
		return nil
	},
}

func init() {
	removeCmd.Flags().Bool("confirm", false, "skip confirmation prompt")

	rootCmd.AddCommand(removeCmd)
}

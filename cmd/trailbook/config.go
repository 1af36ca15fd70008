// ABOUTME: Config commands for viewing and changing settings
// ABOUTME: Writes the JSON config file; environment overrides are shown but never saved

package main

import (
	"encoding/json"
	"fmt"

	"github.com/fatih/color"
	"github.com/harper/trailbook/internal/config"
	"github.com/spf13/cobra"
)

var configCmd = &cobra.Command{
	Use:         "config",
	Short:       "View or change settings",
	Annotations: noStorage(),
}

var configShowCmd = &cobra.Command{
	Use:         "show",
	Short:       "Print the effective configuration",
	Annotations: noStorage(),
	RunE: func(cmd *cobra.Command, args []string) error {
		out, err := json.MarshalIndent(cfg.Redacted(), "", "  ")
		if err != nil {
			return err
		}
		fmt.Println(string(out))
		fmt.Printf("Data directory: %s\n", cfg.GetDataDir())
		return nil
	},
}

var configSetCmd = &cobra.Command{
	Use:         "set <key> <value>",
	Short:       "Set a config value",
	Long:        "Set a config value. Keys: api_url, api_token, data_dir, log_level.",
	Args:        cobra.ExactArgs(2),
	Annotations: noStorage(),
	RunE: func(cmd *cobra.Command, args []string) error {
		if err := config.Set(args[0], args[1]); err != nil {
			return err
		}
		color.Green("✓ Set %s", args[0])
		return nil
	},
}

var configPathCmd = &cobra.Command{
	Use:         "path",
	Short:       "Print the config file location",
	Annotations: noStorage(),
	RunE: func(cmd *cobra.Command, args []string) error {
		fmt.Println(config.GetConfigPath())
		return nil
	},
}

func init() {
	configCmd.AddCommand(configShowCmd)
	configCmd.AddCommand(configSetCmd)
	configCmd.AddCommand(configPathCmd)
	rootCmd.AddCommand(configCmd)
}

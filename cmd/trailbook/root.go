// ABOUTME: Root Cobra command and global flags
// ABOUTME: Loads config and .env files, sets up logging, and opens the trace library

package main

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/harper/trailbook/internal/config"
	"github.com/harper/trailbook/internal/logging"
	"github.com/harper/trailbook/internal/models"
	"github.com/harper/trailbook/internal/storage"
	"github.com/spf13/cobra"
)

// version is set at build time with -ldflags "-X main.version=...".
var version = "dev"

var (
	cfg  *config.Config
	repo storage.Repository
)

// skipStorage marks commands that never touch the local library.
const skipStorage = "skip-storage"

var rootCmd = &cobra.Command{
	Use:   "trailbook",
	Short: "GPS trace analysis for mantrailing and hikes",
	Long: `
████████╗██████╗  █████╗ ██╗██╗     ██████╗  ██████╗  ██████╗ ██╗  ██╗
╚══██╔══╝██╔══██╗██╔══██╗██║██║     ██╔══██╗██╔═══██╗██╔═══██╗██║ ██╔╝
   ██║   ██████╔╝███████║██║██║     ██████╔╝██║   ██║██║   ██║█████╔╝
   ██║   ██╔══██╗██╔══██║██║██║     ██╔══██╗██║   ██║██║   ██║██╔═██╗
   ██║   ██║  ██║██║  ██║██║███████╗██████╔╝╚██████╔╝╚██████╔╝██║  ██╗
   ╚═╝   ╚═╝  ╚═╝╚═╝  ╚═╝╚═╝╚══════╝╚═════╝  ╚═════╝  ╚═════╝ ╚═╝  ╚═╝

      Import, compare, trim, and publish GPS traces

Examples:
  trailbook import dog-0412.gpx --kind dog
  trailbook import runner-0412.gpx --kind runner
  trailbook compare dog-0412 runner-0412
  trailbook trim dog-0412 --start 0.1 --end 0.9
  trailbook push trail 42 --dog dog-0412 --runner runner-0412`,
	Version:       version,
	SilenceUsage:  true,
	SilenceErrors: false,
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		if err := config.LoadEnvFiles(".env"); err != nil {
			return err
		}

		var err error
		cfg, err = config.Load()
		if err != nil {
			return fmt.Errorf("failed to load config: %w", err)
		}

		level := cfg.GetLogLevel()
		if flag, _ := cmd.Flags().GetString("log-level"); flag != "" {
			level = flag
		}
		logging.Setup(os.Stderr, level)

		if cmd.Annotations[skipStorage] == "true" {
			return nil
		}
		repo, err = cfg.OpenStorage()
		if err != nil {
			return fmt.Errorf("failed to open database: %w", err)
		}
		slog.Debug("opened trace library", "path", cfg.DBPath())
		return nil
	},
	PersistentPostRunE: func(cmd *cobra.Command, args []string) error {
		if repo != nil {
			err := repo.Close()
			repo = nil
			return err
		}
		return nil
	},
}

func init() {
	rootCmd.PersistentFlags().String("log-level", "", "log level: error, warn, info, debug (default from config)")
}

// noStorage returns annotations that skip opening the trace library.
func noStorage() map[string]string {
	return map[string]string{skipStorage: "true"}
}

// findTrace loads a stored trace by name with a user-facing error.
func findTrace(name string) (*models.Trace, error) {
	trace, err := repo.GetTraceByName(name)
	if errors.Is(err, storage.ErrNotFound) {
		return nil, fmt.Errorf("trace '%s' not found", name)
	}
	if err != nil {
		return nil, fmt.Errorf("failed to load trace '%s': %w", name, err)
	}
	return trace, nil
}

// confirm asks a yes/no question on the command's input.
func confirm(cmd *cobra.Command, prompt string) bool {
	fmt.Fprintf(cmd.OutOrStdout(), "%s [y/N] ", prompt)
	reader := bufio.NewReader(cmd.InOrStdin())
	response, err := reader.ReadString('\n')
	if err != nil && !errors.Is(err, io.EOF) {
		return false
	}
	response = strings.TrimSpace(strings.ToLower(response))
	return response == "y" || response == "yes"
}

// ABOUTME: Import command for adding GPX recordings to the library
// ABOUTME: Gates on the .gpx extension, parses, and stores the derived trace

package main

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/harper/trailbook/internal/gpx"
	"github.com/harper/trailbook/internal/models"
	"github.com/harper/trailbook/internal/storage"
	"github.com/harper/trailbook/internal/ui"
	"github.com/spf13/cobra"
)

var importCmd = &cobra.Command{
	Use:     "import <file.gpx>",
	Aliases: []string{"i"},
	Short:   "Import a GPX recording",
	Long: `Import a GPX recording into the local trace library.

Only files with a .gpx extension are accepted. The trace is stored under
its file name unless --name is given.

Examples:
  trailbook import dog-0412.gpx
  trailbook import runner.gpx --name runner-0412 --kind runner`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		filename := args[0]

		data, err := readGPXFile(filename)
		if err != nil {
			return err
		}

		kindFlag, _ := cmd.Flags().GetString("kind")
		kind, err := models.ParseTraceKind(kindFlag)
		if err != nil {
			return err
		}

		name, _ := cmd.Flags().GetString("name")
		if name == "" {
			name = strings.TrimSuffix(filepath.Base(filename), filepath.Ext(filename))
		}
		name = strings.TrimSpace(name)
		if err := models.ValidateName(name); err != nil {
			return err
		}

		trace := models.NewTrace(name, kind, data)
		if err := repo.CreateTrace(trace); err != nil {
			if errors.Is(err, storage.ErrDuplicateName) {
				return fmt.Errorf("a trace named '%s' already exists", name)
			}
			return fmt.Errorf("failed to save trace: %w", err)
		}

		color.Green("✓ Imported %s (%s, %d points)", name, kind, len(data.Path))
		fmt.Printf("  %s\n", ui.FormatDistance(data.Distance))
		return nil
	},
}

func init() {
	importCmd.Flags().StringP("name", "n", "", "trace name (default: file name)")
	importCmd.Flags().StringP("kind", "k", string(models.KindDog), "trace kind: dog, runner, or user")

	rootCmd.AddCommand(importCmd)
}

// readGPXFile applies the extension gate and parses the file.
func readGPXFile(filename string) (*models.GpxData, error) {
	if !gpx.HasGPXExtension(filename) {
		return nil, fmt.Errorf("unsupported file type %q: only .gpx files are accepted", filepath.Ext(filename))
	}

	f, err := os.Open(filename) //nolint:gosec // user-supplied path is the point of the command
	if err != nil {
		return nil, fmt.Errorf("failed to read file: %w", err)
	}
	defer func() { _ = f.Close() }()

	data, err := gpx.ParseReader(f)
	if err != nil {
		return nil, fmt.Errorf("failed to parse GPX file: %w", err)
	}
	return data, nil
}

// ABOUTME: Export command for writing a stored trace as GeoJSON, GPX, or YAML
// ABOUTME: Prints to stdout unless --output names a file

package main

import (
	"bytes"
	"encoding/json"
	"fmt"
	"os"

	"github.com/harper/trailbook/internal/geojson"
	"github.com/harper/trailbook/internal/gpx"
	"github.com/harper/trailbook/internal/models"
	"github.com/harper/trailbook/internal/storage"
	"github.com/spf13/cobra"
)

var exportCmd = &cobra.Command{
	Use:     "export <name>",
	Aliases: []string{"e"},
	Short:   "Export a trace as GeoJSON, GPX, or YAML",
	Long: `Export a stored trace.

GeoJSON output is the FeatureCollection sent to the trail service: a single
LineString feature with coordinates in [longitude, latitude] order and the
recording times in the "timestamps" property.

Examples:
  trailbook export dog-0412
  trailbook export dog-0412 --format gpx --output dog-0412.gpx
  trailbook export dog-0412 --format yaml`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		format, _ := cmd.Flags().GetString("format")
		if format != "geojson" && format != "gpx" && format != "yaml" {
			return fmt.Errorf("unsupported format: %s (use 'geojson', 'gpx', or 'yaml')", format)
		}

		trace, err := findTrace(args[0])
		if err != nil {
			return err
		}

		data, err := renderTrace(trace, format)
		if err != nil {
			return err
		}

		output, _ := cmd.Flags().GetString("output")
		if output != "" {
			if err := os.WriteFile(output, data, 0644); err != nil { //nolint:gosec // 0644 is intentional for data export files
				return fmt.Errorf("failed to write file: %w", err)
			}
			fmt.Fprintf(os.Stderr, "Wrote %s to %s\n", trace.Name, output)
			return nil
		}

		fmt.Print(string(data))
		return nil
	},
}

func init() {
	exportCmd.Flags().StringP("format", "f", "geojson", "output format: geojson, gpx, or yaml")
	exportCmd.Flags().StringP("output", "o", "", "output file (default: stdout)")

	rootCmd.AddCommand(exportCmd)
}

func renderTrace(trace *models.Trace, format string) ([]byte, error) {
	switch format {
	case "gpx":
		var buf bytes.Buffer
		if err := gpx.Write(&buf, trace.Data, trace.Name); err != nil {
			return nil, fmt.Errorf("failed to generate GPX: %w", err)
		}
		return buf.Bytes(), nil
	case "yaml":
		data, err := storage.ExportTraceYAML(trace)
		if err != nil {
			return nil, fmt.Errorf("failed to generate YAML: %w", err)
		}
		return data, nil
	default:
		raw, err := geojson.Marshal(geojson.ToGeoJSON(trace.Data))
		if err != nil {
			return nil, fmt.Errorf("failed to generate GeoJSON: %w", err)
		}
		var buf bytes.Buffer
		if err := json.Indent(&buf, raw, "", "  "); err != nil {
			return nil, fmt.Errorf("failed to generate GeoJSON: %w", err)
		}
		buf.WriteByte('\n')
		return buf.Bytes(), nil
	}
}

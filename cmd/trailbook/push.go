// ABOUTME: Push commands sending stored traces to the trail service
// ABOUTME: Updates a trail or hike record in place, or creates one when no id is given

package main

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log/slog"

	"github.com/fatih/color"
	"github.com/harper/trailbook/internal/api"
	"github.com/harper/trailbook/internal/geojson"
	"github.com/spf13/cobra"
)

var pushCmd = &cobra.Command{
	Use:   "push",
	Short: "Send traces to the trail service",
	Long: `Send stored traces to the trail service as GeoJSON.

Records are read, the named trace fields replaced, and the whole record
written back, so fields this tool does not know about are kept. Use a
--clear-* flag to send an explicit null for a field.

The service URL and token come from 'trailbook config set api_url ...' or
the TRAILBOOK_API_URL and TRAILBOOK_API_TOKEN environment variables.

Examples:
  trailbook push trail 42 --dog dog-0412 --runner runner-0412
  trailbook push trail --name "Park loop" --dog dog-0412
  trailbook push hike 7 --clear-user`,
}

var pushTrailCmd = &cobra.Command{
	Use:   "trail [id]",
	Short: "Push dog and runner traces to a trail",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dog, dogSet, err := traceField(cmd, "dog", "clear-dog")
		if err != nil {
			return err
		}
		runner, runnerSet, err := traceField(cmd, "runner", "clear-runner")
		if err != nil {
			return err
		}
		if !dogSet && !runnerSet && len(args) == 1 {
			return errNothingToPush
		}

		client, err := newAPIClient()
		if err != nil {
			return err
		}
		ctx := commandContext(cmd)

		if len(args) == 0 {
			name, _ := cmd.Flags().GetString("name")
			created, err := client.CreateTrail(ctx, &api.Trail{Name: name, DogTrace: dog, RunnerTrace: runner})
			if err != nil {
				return fmt.Errorf("failed to create trail: %w", err)
			}
			color.Green("✓ Created trail %s", created.ID)
			return nil
		}

		trail, err := client.GetTrail(ctx, args[0])
		if errors.Is(err, api.ErrNotFound) {
			return fmt.Errorf("trail '%s' not found", args[0])
		}
		if err != nil {
			return fmt.Errorf("failed to load trail: %w", err)
		}
		if dogSet {
			trail.DogTrace = dog
		}
		if runnerSet {
			trail.RunnerTrace = runner
		}
		if err := client.UpdateTrail(ctx, trail); err != nil {
			return fmt.Errorf("failed to update trail: %w", err)
		}
		color.Green("✓ Updated trail %s", trail.ID)
		return nil
	},
}

var pushHikeCmd = &cobra.Command{
	Use:   "hike [id]",
	Short: "Push dog and user tracks to a hike",
	Args:  cobra.MaximumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		dog, dogSet, err := traceField(cmd, "dog", "clear-dog")
		if err != nil {
			return err
		}
		user, userSet, err := traceField(cmd, "user", "clear-user")
		if err != nil {
			return err
		}
		if !dogSet && !userSet && len(args) == 1 {
			return errNothingToPush
		}

		client, err := newAPIClient()
		if err != nil {
			return err
		}
		ctx := commandContext(cmd)

		if len(args) == 0 {
			name, _ := cmd.Flags().GetString("name")
			created, err := client.CreateHike(ctx, &api.Hike{Name: name, DogTrack: dog, UserTrack: user})
			if err != nil {
				return fmt.Errorf("failed to create hike: %w", err)
			}
			color.Green("✓ Created hike %s", created.ID)
			return nil
		}

		hike, err := client.GetHike(ctx, args[0])
		if errors.Is(err, api.ErrNotFound) {
			return fmt.Errorf("hike '%s' not found", args[0])
		}
		if err != nil {
			return fmt.Errorf("failed to load hike: %w", err)
		}
		if dogSet {
			hike.DogTrack = dog
		}
		if userSet {
			hike.UserTrack = user
		}
		if err := client.UpdateHike(ctx, hike); err != nil {
			return fmt.Errorf("failed to update hike: %w", err)
		}
		color.Green("✓ Updated hike %s", hike.ID)
		return nil
	},
}

var errNothingToPush = errors.New("nothing to push: name a trace or use a --clear-* flag")

func init() {
	pushTrailCmd.Flags().String("dog", "", "stored trace to send as the dog trace")
	pushTrailCmd.Flags().String("runner", "", "stored trace to send as the runner trace")
	pushTrailCmd.Flags().Bool("clear-dog", false, "send null for the dog trace")
	pushTrailCmd.Flags().Bool("clear-runner", false, "send null for the runner trace")
	pushTrailCmd.Flags().String("name", "", "name for a newly created trail")
	pushTrailCmd.MarkFlagsMutuallyExclusive("dog", "clear-dog")
	pushTrailCmd.MarkFlagsMutuallyExclusive("runner", "clear-runner")

	pushHikeCmd.Flags().String("dog", "", "stored trace to send as the dog track")
	pushHikeCmd.Flags().String("user", "", "stored trace to send as your own track")
	pushHikeCmd.Flags().Bool("clear-dog", false, "send null for the dog track")
	pushHikeCmd.Flags().Bool("clear-user", false, "send null for your own track")
	pushHikeCmd.Flags().String("name", "", "name for a newly created hike")
	pushHikeCmd.MarkFlagsMutuallyExclusive("dog", "clear-dog")
	pushHikeCmd.MarkFlagsMutuallyExclusive("user", "clear-user")

	pushCmd.AddCommand(pushTrailCmd)
	pushCmd.AddCommand(pushHikeCmd)
	rootCmd.AddCommand(pushCmd)
}

// traceField resolves a trace flag pair to a wire value. The bool reports
// whether the field should be written at all.
func traceField(cmd *cobra.Command, traceFlag, clearFlag string) (json.RawMessage, bool, error) {
	if clear, _ := cmd.Flags().GetBool(clearFlag); clear {
		return json.RawMessage("null"), true, nil
	}
	name, _ := cmd.Flags().GetString(traceFlag)
	if name == "" {
		return nil, false, nil
	}

	trace, err := findTrace(name)
	if err != nil {
		return nil, false, err
	}
	raw, err := api.EncodeTrace(geojson.ToGeoJSON(trace.Data))
	if err != nil {
		return nil, false, err
	}
	return raw, true, nil
}

func newAPIClient() (*api.Client, error) {
	client, err := api.NewClient(cfg.APIURL, cfg.APIToken, api.WithLogger(slog.Default()))
	if errors.Is(err, api.ErrNoBaseURL) {
		return nil, fmt.Errorf("%w: run 'trailbook config set api_url <url>'", err)
	}
	return client, err
}

// commandContext returns the command's context, or Background when the
// command was invoked directly rather than through Execute.
func commandContext(cmd *cobra.Command) context.Context {
	if ctx := cmd.Context(); ctx != nil {
		return ctx
	}
	return context.Background()
}

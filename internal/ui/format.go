// ABOUTME: Terminal UI formatting utilities
// ABOUTME: Provides human-readable output for traces, stats, and comparisons

package ui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/fatih/color"
	"github.com/harper/trailbook/internal/analytics"
	"github.com/harper/trailbook/internal/geo"
	"github.com/harper/trailbook/internal/models"
)

var faint = color.New(color.Faint)

// FormatDistance formats meters, switching to kilometers from 1 km.
func FormatDistance(meters int64) string {
	if meters < 1000 {
		return fmt.Sprintf("%d m", meters)
	}
	return fmt.Sprintf("%.2f km", float64(meters)/1000)
}

// FormatDuration formats whole seconds as h/m/s. Nil means unknown.
func FormatDuration(secs *int64) string {
	if secs == nil {
		return faint.Sprint("-")
	}
	d := time.Duration(*secs) * time.Second
	h := int(d.Hours())
	m := int(d.Minutes()) % 60
	s := int(d.Seconds()) % 60
	if h > 0 {
		return fmt.Sprintf("%dh %02dm %02ds", h, m, s)
	}
	if m > 0 {
		return fmt.Sprintf("%dm %02ds", m, s)
	}
	return fmt.Sprintf("%ds", s)
}

// FormatSpeed formats meters per second along with minutes per kilometer.
func FormatSpeed(mps *float64) string {
	if mps == nil {
		return faint.Sprint("-")
	}
	if *mps <= 0 {
		return "0.00 m/s"
	}
	perKm := int(math.Round(1000 / *mps))
	return fmt.Sprintf("%.2f m/s (%d:%02d /km)", *mps, perKm/60, perKm%60)
}

// FormatPoint formats a coordinate as (lat, lon).
func FormatPoint(p models.GeoPoint) string {
	return fmt.Sprintf("(%.5f, %.5f)", p.Lat, p.Lon)
}

// FormatBounds formats the bounding box of a path as its south-west and
// north-east corners.
func FormatBounds(path models.Path) string {
	if len(path) == 0 {
		return faint.Sprint("-")
	}
	b := geo.Bound(path)
	return fmt.Sprintf("%s to %s", FormatPoint(geo.FromOrb(b.Min)), FormatPoint(geo.FromOrb(b.Max)))
}

// FormatTraceListItem formats a trace as a single list line.
func FormatTraceListItem(trace *models.Trace) string {
	if trace == nil {
		return faint.Sprint("(invalid trace)")
	}
	var stats string
	if trace.Data != nil {
		stats = fmt.Sprintf("%s, %s", FormatDistance(trace.Data.Distance), FormatDuration(trace.Data.Duration))
	}
	return fmt.Sprintf("%s %s %s - %s",
		color.GreenString(trace.Name),
		faint.Sprintf("[%s]", trace.Kind),
		stats,
		faint.Sprint(FormatRelativeTime(trace.CreatedAt)))
}

// FormatTraceSummary formats stats and pace analytics for a trace.
func FormatTraceSummary(trace *models.Trace, report analytics.Report) string {
	if trace == nil || trace.Data == nil {
		return faint.Sprint("(no data)")
	}
	d := trace.Data

	var sb strings.Builder
	fmt.Fprintf(&sb, "%s %s\n", color.New(color.Bold).Sprint(trace.Name), faint.Sprintf("[%s]", trace.Kind))
	row := func(label, value string) {
		fmt.Fprintf(&sb, "  %-16s %s\n", label, value)
	}
	row("Points", fmt.Sprintf("%d", len(d.Path)))
	row("Distance", FormatDistance(d.Distance))
	row("Duration", FormatDuration(d.Duration))
	row("Elevation gain", fmt.Sprintf("%d m", d.ElevationGain))
	row("Start", FormatPoint(d.StartPoint))
	row("End", FormatPoint(d.EndPoint))
	row("Center", FormatPoint(d.Center))
	row("Bounds", FormatBounds(d.Path))
	row("Max speed", FormatSpeed(report.PaceMax))
	row("Min speed", FormatSpeed(report.PaceMin))
	row("Average speed", FormatSpeed(report.PaceAverage))

	turn := "no"
	if report.DirectionChange {
		turn = color.YellowString("yes")
	}
	row("Sharp turns", turn)
	return sb.String()
}

// FormatComparison formats the deviation of a trace from its reference.
func FormatComparison(name, reference string, cmp analytics.Comparison) string {
	var sb strings.Builder
	fmt.Fprintf(&sb, "%s vs %s\n", color.GreenString(name), color.CyanString(reference))
	fmt.Fprintf(&sb, "  %-16s %.1f m\n", "Deviation", cmp.Deviation)
	fmt.Fprintf(&sb, "  %-16s %s / %s\n", "Distance",
		FormatDistance(cmp.TraceDistance), FormatDistance(cmp.ReferenceDistance))

	offset := faint.Sprint("-")
	if cmp.StartOffsetSecs != nil {
		offset = fmt.Sprintf("%+.0f s", *cmp.StartOffsetSecs)
	}
	fmt.Fprintf(&sb, "  %-16s %s\n", "Start offset", offset)
	return sb.String()
}

// FormatRelativeTime formats a time as relative to now.
func FormatRelativeTime(t time.Time) string {
	diff := time.Since(t)

	// Handle future times (clock skew, bad data)
	if diff < 0 {
		return color.YellowString("in the future")
	}

	if diff < time.Minute {
		return "just now"
	}
	if diff < time.Hour {
		mins := int(diff.Minutes())
		if mins == 1 {
			return "1 minute ago"
		}
		return fmt.Sprintf("%d minutes ago", mins)
	}
	if diff < 24*time.Hour {
		hours := int(diff.Hours())
		if hours == 1 {
			return "1 hour ago"
		}
		return fmt.Sprintf("%d hours ago", hours)
	}
	days := int(diff.Hours() / 24)
	if days == 1 {
		return "1 day ago"
	}
	return fmt.Sprintf("%d days ago", days)
}

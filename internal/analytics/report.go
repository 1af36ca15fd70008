// ABOUTME: Bundled analytics for a single trace or a trace pair
// ABOUTME: Converts non-finite sentinels into absent fields for display and JSON

package analytics

import (
	"math"

	"github.com/harper/trailbook/internal/models"
)

// Report holds per-trace analytics. Pace fields are nil when unavailable
// or not finite.
type Report struct {
	PaceMax         *float64 `json:"pace_max,omitempty" yaml:"pace_max,omitempty"`
	PaceMin         *float64 `json:"pace_min,omitempty" yaml:"pace_min,omitempty"`
	PaceAverage     *float64 `json:"pace_average,omitempty" yaml:"pace_average,omitempty"`
	DirectionChange bool     `json:"direction_change" yaml:"direction_change"`
}

// Comparison holds the result of comparing a trace with a reference.
type Comparison struct {
	Deviation         float64  `json:"deviation" yaml:"deviation"`
	StartOffsetSecs   *float64 `json:"start_offset_seconds,omitempty" yaml:"start_offset_seconds,omitempty"`
	TraceDistance     int64    `json:"trace_distance" yaml:"trace_distance"`
	ReferenceDistance int64    `json:"reference_distance" yaml:"reference_distance"`
}

func finite(v float64) *float64 {
	if math.IsInf(v, 0) || math.IsNaN(v) {
		return nil
	}
	return &v
}

// Analyze computes pace statistics and direction changes for a trace.
func Analyze(data *models.GpxData) Report {
	var report Report
	if data == nil {
		return report
	}
	report.DirectionChange = DetectDirectionChange(data.Path)

	points := TracePoints(data)
	if len(points) < 2 {
		return report
	}
	report.PaceMax = finite(PaceMax(points))
	report.PaceAverage = finite(PaceAverage(points))
	if pace, ok := PaceMin(points); ok {
		report.PaceMin = &pace
	}
	return report
}

// Compare measures trace against reference.
func Compare(trace, reference *models.GpxData) Comparison {
	cmp := Comparison{
		Deviation:         CompareTraces(trace.Path, reference.Path),
		TraceDistance:     trace.Distance,
		ReferenceDistance: reference.Distance,
	}
	if secs, ok := CompareTime(trace.Timestamps, reference.Timestamps); ok {
		cmp.StartOffsetSecs = &secs
	}
	return cmp
}

// ABOUTME: Derived statistics for a trace
// ABOUTME: Builds GpxData reports from a path and its optional series

package gpx

import (
	"math"
	"time"

	"github.com/harper/trailbook/internal/geo"
	"github.com/harper/trailbook/internal/models"
)

// Summarize derives distance, center, elevation gain, duration, and endpoints.
// Duration is only set when at least two timestamps exist.
func Summarize(path models.Path, timestamps models.TimestampSeries, elevations []float64) *models.GpxData {
	data := &models.GpxData{
		Path:          path,
		Distance:      int64(math.Round(geo.PathDistanceMeters(path))),
		Center:        geo.Center(path),
		ElevationGain: int64(math.Round(ElevationGain(elevations))),
		Duration:      DurationSeconds(timestamps),
		Timestamps:    timestamps,
		Elevations:    elevations,
	}
	if len(path) > 0 {
		data.StartPoint = path[0]
		data.EndPoint = path[len(path)-1]
	}
	return data
}

// ElevationGain sums strictly positive consecutive deltas. Descents are ignored.
func ElevationGain(elevations []float64) float64 {
	gain := 0.0
	for i := 1; i < len(elevations); i++ {
		if delta := elevations[i] - elevations[i-1]; delta > 0 {
			gain += delta
		}
	}
	return gain
}

// DurationSeconds returns whole seconds between the first and last timestamp.
func DurationSeconds(timestamps models.TimestampSeries) *int64 {
	if len(timestamps) < 2 {
		return nil
	}
	secs := int64(timestamps[len(timestamps)-1].Sub(timestamps[0]) / time.Second)
	return &secs
}

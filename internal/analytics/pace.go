// ABOUTME: Pace statistics over timestamped point sequences
// ABOUTME: Max, min, and average speed in meters per second

package analytics

import (
	"math"

	"github.com/harper/trailbook/internal/geo"
	"github.com/harper/trailbook/internal/models"
)

// pairPace returns the distance, elapsed seconds, and pace between two points.
func pairPace(a, b models.TracePoint) (dist, elapsed, pace float64) {
	dist = geo.DistanceMeters(a.Point, b.Point)
	elapsed = b.Time.Sub(a.Time).Seconds()
	return dist, elapsed, dist / elapsed
}

// PaceMax returns the highest pair pace, starting from 0.
// Zero-duration pairs are not skipped: a moving pair with no elapsed time
// yields +Inf, and a 0/0 pair (NaN) never wins the comparison.
func PaceMax(points []models.TracePoint) float64 {
	maxPace := 0.0
	for i := 1; i < len(points); i++ {
		_, _, pace := pairPace(points[i-1], points[i])
		if pace > maxPace {
			maxPace = pace
		}
	}
	return maxPace
}

// PaceMin returns the lowest pair pace, skipping pairs with zero distance or
// zero elapsed time. ok is false when no pair qualifies.
//
// Only PaceMin skips degenerate pairs; PaceMax and PaceAverage keep them.
// Whether that asymmetry is intended is an open question, so it is kept as is.
func PaceMin(points []models.TracePoint) (pace float64, ok bool) {
	minPace := math.Inf(1)
	for i := 1; i < len(points); i++ {
		dist, elapsed, p := pairPace(points[i-1], points[i])
		if dist == 0 || elapsed == 0 {
			continue
		}
		if p < minPace {
			minPace = p
		}
	}
	if math.IsInf(minPace, 1) {
		return 0, false
	}
	return minPace, true
}

// PaceAverage returns the mean of all pair paces.
// Zero-duration pairs contribute +Inf or NaN to the mean.
func PaceAverage(points []models.TracePoint) float64 {
	if len(points) < 2 {
		return 0
	}
	sum := 0.0
	for i := 1; i < len(points); i++ {
		_, _, pace := pairPace(points[i-1], points[i])
		sum += pace
	}
	return sum / float64(len(points)-1)
}

// TracePoints zips a path with its timestamps.
// Returns nil unless every point has a timestamp.
func TracePoints(data *models.GpxData) []models.TracePoint {
	if !data.TimestampsAligned() {
		return nil
	}
	points := make([]models.TracePoint, len(data.Path))
	for i, p := range data.Path {
		points[i] = models.TracePoint{Point: p, Time: data.Timestamps[i]}
	}
	return points
}

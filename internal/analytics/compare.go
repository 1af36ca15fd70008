// ABOUTME: Comparisons between a dog trace and a reference trace
// ABOUTME: Chain-of-circles deviation, start offset, and sharp turn detection

package analytics

import (
	"math"

	"github.com/harper/trailbook/internal/geo"
	"github.com/harper/trailbook/internal/models"
)

// circle is one link of the reference chain.
type circle struct {
	center models.GeoPoint
	radius float64
}

// referenceCircles builds one circle per consecutive pair, centered on the
// first point with twice the segment length as radius.
func referenceCircles(ref models.Path) []circle {
	if len(ref) < 2 {
		return nil
	}
	circles := make([]circle, 0, len(ref)-1)
	for i := 0; i < len(ref)-1; i++ {
		circles = append(circles, circle{
			center: ref[i],
			radius: 2 * geo.DistanceMeters(ref[i], ref[i+1]),
		})
	}
	return circles
}

// CompareTraces measures how far trace strays from reference, in meters.
// Each trace point inside any reference circle contributes 0, otherwise its
// smallest excess distance over all circles. A reference with fewer than two
// points has no circles and yields 0.
func CompareTraces(trace, reference models.Path) float64 {
	circles := referenceCircles(reference)
	if len(circles) == 0 {
		return 0
	}

	total := 0.0
	for _, p := range trace {
		minExcess := math.Inf(1)
		for _, c := range circles {
			if excess := geo.DistanceMeters(p, c.center) - c.radius; excess < minExcess {
				minExcess = excess
			}
		}
		if minExcess > 0 {
			total += minExcess
		}
	}
	return total
}

// CompareTime returns a[0] - b[0] in seconds. Positive means a started later.
// ok is false when either series is empty.
func CompareTime(a, b models.TimestampSeries) (seconds float64, ok bool) {
	if len(a) == 0 || len(b) == 0 {
		return 0, false
	}
	return a[0].Sub(b[0]).Seconds(), true
}

// DetectDirectionChange reports whether any turn is sharper than a right angle.
// For each triplet the turn is the bearing difference between the two
// segments, normalized to [0, 360); turns strictly between 90 and 270 count.
func DetectDirectionChange(path models.Path) bool {
	for i := 0; i+2 < len(path); i++ {
		if isSharpTurn(TurnAngle(path[i], path[i+1], path[i+2])) {
			return true
		}
	}
	return false
}

// TurnAngle returns the bearing change at b, in degrees within [0, 360).
func TurnAngle(a, b, c models.GeoPoint) float64 {
	angle := math.Mod(geo.Bearing(b, c)-geo.Bearing(a, b), 360)
	if angle < 0 {
		angle += 360
	}
	return angle
}

func isSharpTurn(angle float64) bool {
	return angle > 90 && angle < 270
}

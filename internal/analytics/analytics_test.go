// ABOUTME: Tests for pace statistics and trace comparisons
// ABOUTME: Pins the zero-duration asymmetry between min and max/average pace

package analytics

import (
	"math"
	"testing"
	"time"

	"github.com/harper/trailbook/internal/geo"
	"github.com/harper/trailbook/internal/models"
)

var t0 = time.Date(2025, 3, 9, 9, 0, 0, 0, time.UTC)

// northLine returns n points 0.001 degrees of latitude apart, every step seconds.
func northLine(n int, step time.Duration) []models.TracePoint {
	points := make([]models.TracePoint, n)
	for i := range points {
		points[i] = models.TracePoint{
			Point: models.GeoPoint{Lat: float64(i) * 0.001, Lon: 0},
			Time:  t0.Add(time.Duration(i) * step),
		}
	}
	return points
}

func pathOf(points []models.TracePoint) models.Path {
	path := make(models.Path, len(points))
	for i, p := range points {
		path[i] = p.Point
	}
	return path
}

func TestPace_Uniform(t *testing.T) {
	points := northLine(3, 10*time.Second)
	want := geo.DistanceMeters(points[0].Point, points[1].Point) / 10

	if got := PaceMax(points); math.Abs(got-want) > 1e-9 {
		t.Errorf("PaceMax: got %f, want %f", got, want)
	}
	if got, ok := PaceMin(points); !ok || math.Abs(got-want) > 1e-9 {
		t.Errorf("PaceMin: got %f (ok=%v), want %f", got, ok, want)
	}
	if got := PaceAverage(points); math.Abs(got-want) > 1e-9 {
		t.Errorf("PaceAverage: got %f, want %f", got, want)
	}
}

func TestPaceMin_AllIdenticalPoints(t *testing.T) {
	p := models.GeoPoint{Lat: 47.3, Lon: 8.5}
	points := []models.TracePoint{
		{Point: p, Time: t0},
		{Point: p, Time: t0.Add(5 * time.Second)},
		{Point: p, Time: t0.Add(10 * time.Second)},
	}

	if _, ok := PaceMin(points); ok {
		t.Error("expected no valid pace for a stationary trace")
	}
	if got := PaceMax(points); got != 0 {
		t.Errorf("PaceMax: got %f, want 0", got)
	}
	if got := PaceAverage(points); got != 0 {
		t.Errorf("PaceAverage: got %f, want 0", got)
	}
}

// Only PaceMin guards against zero-duration pairs. This pins that behavior
// until the intended semantics are settled.
func TestPace_ZeroDurationAsymmetry(t *testing.T) {
	points := northLine(3, 10*time.Second)
	points[2].Time = points[1].Time

	if got := PaceMax(points); !math.IsInf(got, 1) {
		t.Errorf("PaceMax: got %f, want +Inf", got)
	}
	if got := PaceAverage(points); !math.IsInf(got, 1) {
		t.Errorf("PaceAverage: got %f, want +Inf", got)
	}

	want := geo.DistanceMeters(points[0].Point, points[1].Point) / 10
	if got, ok := PaceMin(points); !ok || math.Abs(got-want) > 1e-9 {
		t.Errorf("PaceMin: got %f (ok=%v), want %f", got, ok, want)
	}
}

func TestPace_ZeroOverZero(t *testing.T) {
	points := northLine(2, 10*time.Second)
	points = append(points, points[1])

	if got := PaceAverage(points); !math.IsNaN(got) {
		t.Errorf("PaceAverage: got %f, want NaN", got)
	}
	want := geo.DistanceMeters(points[0].Point, points[1].Point) / 10
	if got := PaceMax(points); math.Abs(got-want) > 1e-9 {
		t.Errorf("PaceMax: got %f, want %f", got, want)
	}
}

func TestPace_TooFewPoints(t *testing.T) {
	points := northLine(1, time.Second)
	if PaceMax(points) != 0 || PaceAverage(points) != 0 {
		t.Error("expected zero pace for a single point")
	}
	if _, ok := PaceMin(points); ok {
		t.Error("expected no min pace for a single point")
	}
}

func TestCompareTraces_Identical(t *testing.T) {
	path := pathOf(northLine(5, time.Second))
	if got := CompareTraces(path, path); got != 0 {
		t.Errorf("got %f, want 0", got)
	}
}

func TestCompareTraces_Outlier(t *testing.T) {
	runner := models.Path{{Lat: 0, Lon: 0}, {Lat: 0.001, Lon: 0}}
	dog := models.Path{{Lat: 0, Lon: 0}, {Lat: 0.01, Lon: 0}}

	want := geo.DistanceMeters(dog[1], runner[0]) - 2*geo.DistanceMeters(runner[0], runner[1])
	got := CompareTraces(dog, runner)
	if math.Abs(got-want) > 1e-6 {
		t.Errorf("got %f, want %f", got, want)
	}
}

func TestCompareTraces_MinimumOverCircles(t *testing.T) {
	runner := models.Path{{Lat: 0, Lon: 0}, {Lat: 0.001, Lon: 0}, {Lat: 0.002, Lon: 0}, {Lat: 0.003, Lon: 0}}
	dog := models.Path{{Lat: 0.002, Lon: 0.01}}

	seg := geo.DistanceMeters(runner[0], runner[1])
	want := math.Inf(1)
	for i := 0; i < 3; i++ {
		want = math.Min(want, geo.DistanceMeters(dog[0], runner[i])-2*seg)
	}

	if got := CompareTraces(dog, runner); math.Abs(got-want) > 1e-3 {
		t.Errorf("got %f, want %f", got, want)
	}
}

func TestCompareTraces_ShortReference(t *testing.T) {
	dog := models.Path{{Lat: 1, Lon: 1}}
	if got := CompareTraces(dog, models.Path{{Lat: 0, Lon: 0}}); got != 0 {
		t.Errorf("got %f, want 0", got)
	}
}

func TestCompareTime(t *testing.T) {
	a := models.TimestampSeries{t0.Add(90 * time.Second)}
	b := models.TimestampSeries{t0}

	if got, ok := CompareTime(a, b); !ok || got != 90 {
		t.Errorf("got %f (ok=%v), want 90", got, ok)
	}
	if got, _ := CompareTime(b, a); got != -90 {
		t.Errorf("got %f, want -90", got)
	}
	if _, ok := CompareTime(nil, b); ok {
		t.Error("expected not ok for empty series")
	}
}

func TestDetectDirectionChange(t *testing.T) {
	straight := models.Path{{Lat: 0, Lon: 0}, {Lat: 0.001, Lon: 0}, {Lat: 0.002, Lon: 0}}
	if DetectDirectionChange(straight) {
		t.Error("straight line should not flag a direction change")
	}

	rightTurn := models.Path{{Lat: 0, Lon: 0}, {Lat: 0.001, Lon: 0}, {Lat: 0.001, Lon: 0.001}}
	if DetectDirectionChange(rightTurn) {
		t.Error("a right angle is not sharper than 90 degrees")
	}

	outAndBack := models.Path{{Lat: 0, Lon: 0}, {Lat: 0.001, Lon: 0}, {Lat: 0.002, Lon: 0}, {Lat: 0.001, Lon: 0}}
	if !DetectDirectionChange(outAndBack) {
		t.Error("reversal should flag a direction change")
	}

	if DetectDirectionChange(straight[:2]) {
		t.Error("two points cannot turn")
	}
}

func TestTurnAngle(t *testing.T) {
	a := models.GeoPoint{Lat: 0, Lon: 0}
	b := models.GeoPoint{Lat: 0.001, Lon: 0}
	if got := TurnAngle(a, b, a); math.Abs(got-180) > 1e-6 {
		t.Errorf("got %f, want 180", got)
	}
}

func TestAnalyze(t *testing.T) {
	points := northLine(4, 10*time.Second)
	data := &models.GpxData{Path: pathOf(points)}
	for _, p := range points {
		data.Timestamps = append(data.Timestamps, p.Time)
	}

	report := Analyze(data)
	if report.PaceMax == nil || report.PaceMin == nil || report.PaceAverage == nil {
		t.Fatalf("expected all pace fields, got %+v", report)
	}
	if report.DirectionChange {
		t.Error("expected no direction change")
	}

	data.Timestamps[3] = data.Timestamps[2]
	report = Analyze(data)
	if report.PaceMax != nil {
		t.Errorf("expected infinite max pace to be dropped, got %f", *report.PaceMax)
	}
	if report.PaceMin == nil {
		t.Error("expected min pace to survive")
	}
}

func TestAnalyze_NoTimestamps(t *testing.T) {
	report := Analyze(&models.GpxData{Path: pathOf(northLine(3, time.Second))})
	if report.PaceMax != nil || report.PaceMin != nil || report.PaceAverage != nil {
		t.Errorf("expected no pace without timestamps, got %+v", report)
	}
}

func TestCompare(t *testing.T) {
	dog := &models.GpxData{
		Path:       models.Path{{Lat: 0, Lon: 0}},
		Timestamps: models.TimestampSeries{t0.Add(time.Minute)},
		Distance:   10,
	}
	runner := &models.GpxData{
		Path:       models.Path{{Lat: 0, Lon: 0}, {Lat: 0.001, Lon: 0}},
		Timestamps: models.TimestampSeries{t0},
		Distance:   111,
	}

	cmp := Compare(dog, runner)
	if cmp.Deviation != 0 {
		t.Errorf("got deviation %f, want 0", cmp.Deviation)
	}
	if cmp.StartOffsetSecs == nil || *cmp.StartOffsetSecs != 60 {
		t.Errorf("expected start offset 60, got %v", cmp.StartOffsetSecs)
	}
	if cmp.TraceDistance != 10 || cmp.ReferenceDistance != 111 {
		t.Errorf("unexpected distances %+v", cmp)
	}
}

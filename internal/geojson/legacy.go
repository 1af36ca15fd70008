// ABOUTME: Migration of legacy nested GPX-JSON traces to GeoJSON
// ABOUTME: Validates the trk/trkseg/trkpt chain and normalizes point fields

package geojson

import (
	"errors"
	"math"
	"strconv"
	"strings"

	"github.com/harper/trailbook/internal/models"
	"github.com/tidwall/gjson"
)

// ErrUnrecognizedFormat is returned when input lacks the legacy trk[0].trkseg[0].trkpt chain.
var ErrUnrecognizedFormat = errors.New("unrecognized legacy trace format")

const legacyPointsPath = "trk.0.trkseg.0.trkpt"

// LegacyPoint is a validated legacy track point.
type LegacyPoint struct {
	Lat  float64
	Lon  float64
	Time string
}

// LegacyTrace is the validated content of a legacy GPX-JSON document.
type LegacyTrace struct {
	Points []LegacyPoint
	// Skipped counts points dropped for bad coordinates or missing time.
	Skipped int
}

// IsLegacyGpxJSON reports whether data has the legacy trace shape.
func IsLegacyGpxJSON(data []byte) bool {
	if !gjson.ValidBytes(data) {
		return false
	}
	return gjson.GetBytes(data, legacyPointsPath).IsArray()
}

// ParseLegacy validates a legacy GPX-JSON document and extracts its points.
// Points with unparsable coordinates or no time are skipped, not reported.
func ParseLegacy(data []byte) (*LegacyTrace, error) {
	if !IsLegacyGpxJSON(data) {
		return nil, ErrUnrecognizedFormat
	}

	trace := &LegacyTrace{}
	for _, pt := range gjson.GetBytes(data, legacyPointsPath).Array() {
		point, ok := parseLegacyPoint(pt)
		if !ok {
			trace.Skipped++
			continue
		}
		trace.Points = append(trace.Points, point)
	}
	return trace, nil
}

func parseLegacyPoint(pt gjson.Result) (LegacyPoint, bool) {
	attrs, ok := pt.Map()["$"]
	if !ok || !attrs.IsObject() {
		return LegacyPoint{}, false
	}

	lat, ok := legacyCoordinate(attrs.Get("lat"))
	if !ok {
		return LegacyPoint{}, false
	}
	lon, ok := legacyCoordinate(attrs.Get("lon"))
	if !ok {
		return LegacyPoint{}, false
	}

	ts := legacyTime(pt.Get("time"))
	if ts == "" {
		return LegacyPoint{}, false
	}
	return LegacyPoint{Lat: lat, Lon: lon, Time: ts}, true
}

// legacyCoordinate parses a coordinate attribute. NaN and Inf are rejected
// because they cannot be encoded as JSON.
func legacyCoordinate(v gjson.Result) (float64, bool) {
	f, err := strconv.ParseFloat(strings.TrimSpace(v.String()), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false
	}
	return f, true
}

// legacyTime unwraps one level of array, as produced by some XML-to-JSON parsers.
func legacyTime(v gjson.Result) string {
	if v.IsArray() {
		items := v.Array()
		if len(items) == 0 {
			return ""
		}
		v = items[0]
	}
	if v.Type != gjson.String {
		return ""
	}
	return strings.TrimSpace(v.String())
}

// ConvertLegacyGpxJSON converts a legacy document to a trace FeatureCollection.
// Returns nil when the input is not in the legacy format, including when it is
// already GeoJSON.
func ConvertLegacyGpxJSON(data []byte) *FeatureCollection {
	trace, err := ParseLegacy(data)
	if err != nil {
		return nil
	}
	return trace.ToGeoJSON()
}

// ToGeoJSON converts the validated points. Timestamps keep their original text.
func (t *LegacyTrace) ToGeoJSON() *FeatureCollection {
	path := make(models.Path, len(t.Points))
	timestamps := make([]string, len(t.Points))
	for i, p := range t.Points {
		path[i] = models.GeoPoint{Lat: p.Lat, Lon: p.Lon}
		timestamps[i] = p.Time
	}
	return newTraceCollection(toLineString(path), timestamps)
}

// ABOUTME: GeoJSON conversion for trace reports
// ABOUTME: Maps paths and timestamps to and from single-LineString FeatureCollections

package geojson

import (
	"time"

	"github.com/harper/trailbook/internal/geo"
	"github.com/harper/trailbook/internal/gpx"
	"github.com/harper/trailbook/internal/models"
	"github.com/paulmach/orb"
	orbjson "github.com/paulmach/orb/geojson"
)

// TimestampsProperty is the feature property holding per-point timestamps.
const TimestampsProperty = "timestamps"

// FeatureCollection is the storage and wire format for traces.
type FeatureCollection = orbjson.FeatureCollection

// toLineString flips internal [lat, lon] points to GeoJSON [lon, lat].
func toLineString(path models.Path) orb.LineString {
	ls := make(orb.LineString, len(path))
	for i, p := range path {
		ls[i] = geo.ToOrb(p)
	}
	return ls
}

// fromLineString flips GeoJSON [lon, lat] coordinates back to [lat, lon].
func fromLineString(ls orb.LineString) models.Path {
	path := make(models.Path, len(ls))
	for i, p := range ls {
		path[i] = geo.FromOrb(p)
	}
	return path
}

func newTraceCollection(ls orb.LineString, timestamps []string) *FeatureCollection {
	feature := orbjson.NewFeature(ls)
	feature.Properties[TimestampsProperty] = timestamps

	fc := orbjson.NewFeatureCollection()
	fc.Append(feature)
	return fc
}

// ToGeoJSON converts a trace report to a FeatureCollection with one
// LineString feature. Returns nil for nil data.
func ToGeoJSON(data *models.GpxData) *FeatureCollection {
	if data == nil {
		return nil
	}
	timestamps := make([]string, len(data.Timestamps))
	for i, ts := range data.Timestamps {
		timestamps[i] = ts.UTC().Format(time.RFC3339Nano)
	}
	return newTraceCollection(toLineString(data.Path), timestamps)
}

// lineString returns the first feature's LineString if fc has the trace shape.
func lineString(fc *FeatureCollection) (orb.LineString, *orbjson.Feature, bool) {
	if fc == nil || fc.Type != "FeatureCollection" || len(fc.Features) == 0 {
		return nil, nil, false
	}
	first := fc.Features[0]
	if first == nil {
		return nil, nil, false
	}
	ls, ok := first.Geometry.(orb.LineString)
	if !ok {
		return nil, nil, false
	}
	return ls, first, true
}

// FromGeoJSON extracts the path from a trace FeatureCollection.
// Any structural mismatch yields an empty path rather than an error.
func FromGeoJSON(fc *FeatureCollection) models.Path {
	ls, _, ok := lineString(fc)
	if !ok {
		return models.Path{}
	}
	return fromLineString(ls)
}

// FromGeoJSONBytes decodes raw JSON and extracts the path.
// Undecodable input yields an empty path.
func FromGeoJSONBytes(data []byte) models.Path {
	fc, err := orbjson.UnmarshalFeatureCollection(data)
	if err != nil {
		return models.Path{}
	}
	return FromGeoJSON(fc)
}

// TimestampsFromGeoJSON reads the timestamps property of a trace.
// Entries that do not parse are dropped.
func TimestampsFromGeoJSON(fc *FeatureCollection) models.TimestampSeries {
	_, feature, ok := lineString(fc)
	if !ok {
		return nil
	}

	var raw []string
	switch v := feature.Properties[TimestampsProperty].(type) {
	case []string:
		raw = v
	case []interface{}:
		for _, item := range v {
			if s, ok := item.(string); ok {
				raw = append(raw, s)
			}
		}
	}

	var series models.TimestampSeries
	for _, s := range raw {
		if ts, err := gpx.ParseTime(s); err == nil {
			series = append(series, ts)
		}
	}
	return series
}

// ToGpxData rebuilds a trace report from a stored FeatureCollection.
// Returns nil when no path can be extracted.
func ToGpxData(fc *FeatureCollection) *models.GpxData {
	path := FromGeoJSON(fc)
	if len(path) == 0 {
		return nil
	}
	return gpx.Summarize(path, TimestampsFromGeoJSON(fc), nil)
}

// Marshal encodes a trace FeatureCollection. A nil collection encodes as null.
func Marshal(fc *FeatureCollection) ([]byte, error) {
	if fc == nil {
		return []byte("null"), nil
	}
	return fc.MarshalJSON()
}

// Unmarshal decodes a trace FeatureCollection.
func Unmarshal(data []byte) (*FeatureCollection, error) {
	return orbjson.UnmarshalFeatureCollection(data)
}

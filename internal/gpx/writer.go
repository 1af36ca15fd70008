// ABOUTME: GPX 1.1 rendering of trace reports
// ABOUTME: Writes a single-track document using gpxgo

package gpx

import (
	"fmt"
	"io"

	"github.com/harper/trailbook/internal/models"
	gpxgo "github.com/tkrajina/gpxgo/gpx"
)

// Creator is written into the creator attribute of exported documents.
const Creator = "trailbook"

// ToGPX builds a gpxgo document with one track and one segment.
// Timestamps and elevations are attached only when aligned with the path.
func ToGPX(data *models.GpxData, name string) *gpxgo.GPX {
	points := make([]gpxgo.GPXPoint, len(data.Path))
	withTime := data.TimestampsAligned()
	withEle := data.ElevationsAligned()

	for i, p := range data.Path {
		var pt gpxgo.GPXPoint
		pt.Latitude = p.Lat
		pt.Longitude = p.Lon
		if withTime {
			pt.Timestamp = data.Timestamps[i]
		}
		if withEle {
			pt.Elevation.SetValue(data.Elevations[i])
		}
		points[i] = pt
	}

	return &gpxgo.GPX{
		Version: "1.1",
		Creator: Creator,
		Tracks: []gpxgo.GPXTrack{
			{
				Name:     name,
				Segments: []gpxgo.GPXTrackSegment{{Points: points}},
			},
		},
	}
}

// Write renders data as GPX 1.1 to w.
func Write(w io.Writer, data *models.GpxData, name string) error {
	if data == nil || len(data.Path) == 0 {
		return ErrNoTrackPoints
	}

	xmlBytes, err := ToGPX(data, name).ToXml(gpxgo.ToXmlParams{Version: "1.1", Indent: true})
	if err != nil {
		return fmt.Errorf("encode GPX: %w", err)
	}
	if _, err := w.Write(xmlBytes); err != nil {
		return fmt.Errorf("write GPX: %w", err)
	}
	return nil
}

// ABOUTME: GPX document parsing into normalized trace reports
// ABOUTME: Streams trkpt elements in document order with lenient attribute handling

package gpx

import (
	"encoding/xml"
	"errors"
	"fmt"
	"io"
	"math"
	"path/filepath"
	"strconv"
	"strings"
	"time"

	"github.com/harper/trailbook/internal/models"
)

// ErrMalformedXML is returned when the document cannot be parsed at all.
var ErrMalformedXML = errors.New("malformed GPX document")

// ErrNoTrackPoints is returned when a well-formed document has no trkpt elements.
var ErrNoTrackPoints = errors.New("no track points in GPX document")

// rawTrackPoint keeps attributes as strings so bad numbers don't abort the parse.
type rawTrackPoint struct {
	Lat  string  `xml:"lat,attr"`
	Lon  string  `xml:"lon,attr"`
	Ele  *string `xml:"ele"`
	Time *string `xml:"time"`
}

// Parse parses GPX text into a GpxData report.
func Parse(xmlText string) (*models.GpxData, error) {
	return ParseReader(strings.NewReader(xmlText))
}

// ParseReader parses GPX from an io.Reader.
// Every trkpt element is read in document order regardless of nesting.
func ParseReader(r io.Reader) (*models.GpxData, error) {
	decoder := xml.NewDecoder(r)

	var (
		path       models.Path
		timestamps models.TimestampSeries
		elevations []float64
		sawRoot    bool
	)

	for {
		tok, err := decoder.Token()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedXML, err)
		}

		start, ok := tok.(xml.StartElement)
		if !ok {
			continue
		}
		sawRoot = true
		if start.Name.Local != "trkpt" {
			continue
		}

		var raw rawTrackPoint
		if err := decoder.DecodeElement(&raw, &start); err != nil {
			return nil, fmt.Errorf("%w: %v", ErrMalformedXML, err)
		}

		path = append(path, models.GeoPoint{
			Lat: parseCoordinate(raw.Lat),
			Lon: parseCoordinate(raw.Lon),
		})
		if raw.Ele != nil {
			if ele, err := strconv.ParseFloat(strings.TrimSpace(*raw.Ele), 64); err == nil {
				elevations = append(elevations, ele)
			}
		}
		if raw.Time != nil {
			if ts, err := ParseTime(*raw.Time); err == nil {
				timestamps = append(timestamps, ts)
			}
		}
	}

	if !sawRoot {
		return nil, fmt.Errorf("%w: no root element", ErrMalformedXML)
	}
	if len(path) == 0 {
		return nil, ErrNoTrackPoints
	}

	return Summarize(path, timestamps, elevations), nil
}

// parseCoordinate reads a lat/lon attribute. Missing, unparsable, or
// non-finite values (NaN, Inf) become 0.
func parseCoordinate(s string) float64 {
	v, err := strconv.ParseFloat(strings.TrimSpace(s), 64)
	if err != nil || math.IsNaN(v) || math.IsInf(v, 0) {
		return 0
	}
	return v
}

// ParseTime parses an ISO-8601 timestamp as written by GPS devices.
func ParseTime(s string) (time.Time, error) {
	s = strings.TrimSpace(s)
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	// Some loggers omit the zone designator
	return time.Parse("2006-01-02T15:04:05", s)
}

// HasGPXExtension reports whether a filename carries the .gpx extension.
// This is the only format gate applied before parsing an upload.
func HasGPXExtension(filename string) bool {
	return strings.EqualFold(filepath.Ext(filename), ".gpx")
}

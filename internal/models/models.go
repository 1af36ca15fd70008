// ABOUTME: Core data models for GPS traces and the local trace library
// ABOUTME: Provides points, paths, derived trace reports, and named traces

package models

import (
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"
)

// GeoPoint is a WGS84 coordinate in decimal degrees.
type GeoPoint struct {
	Lat float64 `json:"lat" yaml:"lat"`
	Lon float64 `json:"lon" yaml:"lon"`
}

// Path is an ordered sequence of points in traversal order.
type Path []GeoPoint

// TimestampSeries holds absolute timestamps aligned by index with a Path.
// It may be shorter than the path or empty.
type TimestampSeries []time.Time

// TracePoint pairs a coordinate with the time it was recorded.
type TracePoint struct {
	Point GeoPoint  `json:"point"`
	Time  time.Time `json:"time"`
}

// GpxData is the derived report for a parsed or reconstructed trace.
type GpxData struct {
	Path          Path            `json:"path" yaml:"path"`
	Distance      int64           `json:"distance" yaml:"distance"`
	Center        GeoPoint        `json:"center" yaml:"center"`
	ElevationGain int64           `json:"elevation_gain" yaml:"elevation_gain"`
	Duration      *int64          `json:"duration,omitempty" yaml:"duration,omitempty"`
	StartPoint    GeoPoint        `json:"start_point" yaml:"start_point"`
	EndPoint      GeoPoint        `json:"end_point" yaml:"end_point"`
	Timestamps    TimestampSeries `json:"timestamps,omitempty" yaml:"timestamps,omitempty"`
	Elevations    []float64       `json:"elevations,omitempty" yaml:"elevations,omitempty"`
}

// HasDuration reports whether a duration could be derived.
func (g *GpxData) HasDuration() bool {
	return g != nil && g.Duration != nil
}

// TimestampsAligned reports whether every path point has a timestamp.
func (g *GpxData) TimestampsAligned() bool {
	return g != nil && len(g.Path) > 0 && len(g.Timestamps) == len(g.Path)
}

// ElevationsAligned reports whether every path point has an elevation.
func (g *GpxData) ElevationsAligned() bool {
	return g != nil && len(g.Path) > 0 && len(g.Elevations) == len(g.Path)
}

// TraceKind identifies whose movement a trace records.
type TraceKind string

const (
	// KindDog is the dog's trace (mantrailing and hikes).
	KindDog TraceKind = "dog"
	// KindRunner is the runner's laid trail in a mantrailing session.
	KindRunner TraceKind = "runner"
	// KindUser is the handler's own track on a hike.
	KindUser TraceKind = "user"
)

// ParseTraceKind validates a kind string.
func ParseTraceKind(s string) (TraceKind, error) {
	switch k := TraceKind(strings.ToLower(strings.TrimSpace(s))); k {
	case KindDog, KindRunner, KindUser:
		return k, nil
	default:
		return "", fmt.Errorf("unknown trace kind %q (use dog, runner, or user)", s)
	}
}

// Trace is a named trace held in the local library.
type Trace struct {
	ID        uuid.UUID `json:"id"`
	Name      string    `json:"name"`
	Kind      TraceKind `json:"kind"`
	Data      *GpxData  `json:"data"`
	CreatedAt time.Time `json:"created_at"`
}

// NewTrace creates a new trace with generated UUID and timestamp.
func NewTrace(name string, kind TraceKind, data *GpxData) *Trace {
	return &Trace{
		ID:        uuid.New(),
		Name:      name,
		Kind:      kind,
		Data:      data,
		CreatedAt: time.Now(),
	}
}

// ValidateName checks if a name is valid (non-empty, within length limits).
// Note: This validates the raw input - callers should trim whitespace themselves if needed.
func ValidateName(name string) error {
	trimmed := strings.TrimSpace(name)
	if trimmed == "" {
		return fmt.Errorf("name cannot be empty or whitespace")
	}
	if len(name) > 255 {
		return fmt.Errorf("name too long (max 255 characters)")
	}
	return nil
}

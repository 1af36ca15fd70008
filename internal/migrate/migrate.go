// ABOUTME: One-time migration of stored legacy GPX-JSON traces to GeoJSON
// ABOUTME: Walks trails and hikes through the trail service and writes converted records back

package migrate

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"

	"github.com/harper/trailbook/internal/api"
	"github.com/harper/trailbook/internal/geojson"
	"github.com/tidwall/gjson"
)

// Service is the part of the trail service the migrator needs.
type Service interface {
	ListTrails(ctx context.Context) ([]api.Trail, error)
	UpdateTrail(ctx context.Context, trail *api.Trail) error
	ListHikes(ctx context.Context) ([]api.Hike, error)
	UpdateHike(ctx context.Context, hike *api.Hike) error
}

// Compile-time check that the REST client satisfies Service.
var _ Service = (*api.Client)(nil)

// FieldState classifies a stored trace field.
type FieldState int

const (
	StateNull FieldState = iota
	StateGeoJSON
	StateLegacy
	StateUnrecognized
)

func (s FieldState) String() string {
	switch s {
	case StateNull:
		return "null"
	case StateGeoJSON:
		return "geojson"
	case StateLegacy:
		return "legacy"
	default:
		return "unrecognized"
	}
}

// Classify inspects a raw trace field.
func Classify(raw json.RawMessage) FieldState {
	if api.IsNull(raw) {
		return StateNull
	}
	if gjson.GetBytes(raw, "type").String() == "FeatureCollection" {
		return StateGeoJSON
	}
	if geojson.IsLegacyGpxJSON(raw) {
		return StateLegacy
	}
	return StateUnrecognized
}

// Summary reports what a run did. Records and Failed count records;
// Converted and Skipped count trace fields.
type Summary struct {
	Records   int      `json:"records"`
	Converted int      `json:"converted"`
	Skipped   int      `json:"skipped"`
	Failed    int      `json:"failed"`
	Errors    []string `json:"errors,omitempty"`
}

// Migrator converts legacy trace fields in place.
type Migrator struct {
	svc    Service
	dryRun bool
	logger *slog.Logger
}

// Option configures a Migrator.
type Option func(*Migrator)

// DryRun reports conversions without writing anything back.
func DryRun(enabled bool) Option {
	return func(m *Migrator) { m.dryRun = enabled }
}

// WithLogger sets the logger for per-record progress.
func WithLogger(l *slog.Logger) Option {
	return func(m *Migrator) { m.logger = l }
}

// New creates a migrator over svc.
func New(svc Service, opts ...Option) *Migrator {
	m := &Migrator{svc: svc, logger: slog.Default()}
	for _, opt := range opts {
		opt(m)
	}
	return m
}

// convertField rewrites a legacy field and reports whether it changed.
func (m *Migrator) convertField(kind, id, name string, field *json.RawMessage, sum *Summary) bool {
	state := Classify(*field)
	switch state {
	case StateLegacy:
		converted, err := api.EncodeTrace(geojson.ConvertLegacyGpxJSON(*field))
		if err != nil {
			sum.Skipped++
			m.logger.Warn("legacy trace not encodable", "kind", kind, "id", id, "field", name, "error", err)
			return false
		}
		*field = converted
		sum.Converted++
		m.logger.Info("converted legacy trace", "kind", kind, "id", id, "field", name)
		return true
	case StateUnrecognized:
		sum.Skipped++
		m.logger.Warn("unrecognized trace format", "kind", kind, "id", id, "field", name)
	}
	return false
}

func (m *Migrator) fail(sum *Summary, kind, id string, err error) {
	sum.Failed++
	sum.Errors = append(sum.Errors, fmt.Sprintf("%s %s: %v", kind, id, err))
	m.logger.Error("update failed", "kind", kind, "id", id, "error", err)
}

// Run migrates every trail and hike. Listing failures abort the run;
// update failures are counted and the run continues.
func (m *Migrator) Run(ctx context.Context) (Summary, error) {
	var sum Summary

	trails, err := m.svc.ListTrails(ctx)
	if err != nil {
		return sum, fmt.Errorf("list trails: %w", err)
	}
	for i := range trails {
		trail := &trails[i]
		sum.Records++
		dog := m.convertField("trail", trail.ID, api.FieldDogTrace, &trail.DogTrace, &sum)
		runner := m.convertField("trail", trail.ID, api.FieldRunnerTrace, &trail.RunnerTrace, &sum)
		if (dog || runner) && !m.dryRun {
			if err := m.svc.UpdateTrail(ctx, trail); err != nil {
				m.fail(&sum, "trail", trail.ID, err)
			}
		}
	}

	hikes, err := m.svc.ListHikes(ctx)
	if err != nil {
		return sum, fmt.Errorf("list hikes: %w", err)
	}
	for i := range hikes {
		hike := &hikes[i]
		sum.Records++
		dog := m.convertField("hike", hike.ID, api.FieldDogTrack, &hike.DogTrack, &sum)
		user := m.convertField("hike", hike.ID, api.FieldUserTrack, &hike.UserTrack, &sum)
		if (dog || user) && !m.dryRun {
			if err := m.svc.UpdateHike(ctx, hike); err != nil {
				m.fail(&sum, "hike", hike.ID, err)
			}
		}
	}

	return sum, nil
}

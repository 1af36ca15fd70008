// ABOUTME: Backup and restore of the trace library
// ABOUTME: Uses a versioned YAML format with GeoJSON trace bodies

package storage

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/harper/trailbook/internal/geojson"
	"github.com/harper/trailbook/internal/models"
	"gopkg.in/yaml.v3"
)

// BackupVersion is the current backup format version.
const BackupVersion = "1.0"

// backupTool identifies files written by this program.
const backupTool = "trailbook"

// Backup represents the YAML backup format.
type Backup struct {
	Version    string        `yaml:"version"`
	ExportedAt time.Time     `yaml:"exported_at"`
	Tool       string        `yaml:"tool"`
	Traces     []TraceBackup `yaml:"traces"`
}

// TraceBackup represents a trace in the backup format.
type TraceBackup struct {
	ID            string    `yaml:"id"`
	Name          string    `yaml:"name"`
	Kind          string    `yaml:"kind"`
	CreatedAt     time.Time `yaml:"created_at"`
	Distance      int64     `yaml:"distance"`
	ElevationGain int64     `yaml:"elevation_gain"`
	Duration      *int64    `yaml:"duration,omitempty"`
	Elevations    []float64 `yaml:"elevations,omitempty,flow"`
	GeoJSON       string    `yaml:"geojson"`
}

// NewTraceBackup converts a trace to its backup form.
func NewTraceBackup(trace *models.Trace) (TraceBackup, error) {
	raw, err := geojson.Marshal(geojson.ToGeoJSON(trace.Data))
	if err != nil {
		return TraceBackup{}, fmt.Errorf("encode %s: %w", trace.Name, err)
	}

	tb := TraceBackup{
		ID:        trace.ID.String(),
		Name:      trace.Name,
		Kind:      string(trace.Kind),
		CreatedAt: trace.CreatedAt,
		GeoJSON:   string(raw),
	}
	if trace.Data != nil {
		tb.Distance = trace.Data.Distance
		tb.ElevationGain = trace.Data.ElevationGain
		tb.Duration = trace.Data.Duration
		if trace.Data.ElevationsAligned() {
			tb.Elevations = trace.Data.Elevations
		}
	}
	return tb, nil
}

// Trace rebuilds the stored trace. Distance and duration are recomputed from the path.
func (tb TraceBackup) Trace() (*models.Trace, error) {
	id, err := uuid.Parse(tb.ID)
	if err != nil {
		return nil, fmt.Errorf("invalid trace ID %s: %w", tb.ID, err)
	}
	kind, err := models.ParseTraceKind(tb.Kind)
	if err != nil {
		return nil, err
	}

	fc, err := geojson.Unmarshal([]byte(tb.GeoJSON))
	if err != nil {
		return nil, fmt.Errorf("decode geojson for %s: %w", tb.Name, err)
	}
	data := geojson.ToGpxData(fc)
	if data == nil {
		return nil, fmt.Errorf("trace %s has no points", tb.Name)
	}
	if len(tb.Elevations) == len(data.Path) {
		data.Elevations = tb.Elevations
	}
	data.ElevationGain = tb.ElevationGain

	return &models.Trace{
		ID:        id,
		Name:      tb.Name,
		Kind:      kind,
		Data:      data,
		CreatedAt: tb.CreatedAt,
	}, nil
}

// ExportToYAML exports all traces to YAML format.
func ExportToYAML(repo TraceRepository) ([]byte, error) {
	traces, err := repo.ListTraces()
	if err != nil {
		return nil, fmt.Errorf("list traces: %w", err)
	}

	backup := Backup{
		Version:    BackupVersion,
		ExportedAt: time.Now().UTC(),
		Tool:       backupTool,
		Traces:     make([]TraceBackup, 0, len(traces)),
	}

	for _, trace := range traces {
		tb, err := NewTraceBackup(trace)
		if err != nil {
			return nil, err
		}
		backup.Traces = append(backup.Traces, tb)
	}

	return yaml.Marshal(backup)
}

// ImportFromYAML restores traces from YAML format.
// Traces whose name already exists are reported as ErrDuplicateName.
func ImportFromYAML(repo TraceRepository, data []byte) (int, error) {
	var backup Backup
	if err := yaml.Unmarshal(data, &backup); err != nil {
		return 0, fmt.Errorf("parse yaml: %w", err)
	}

	if backup.Version != BackupVersion {
		return 0, fmt.Errorf("unsupported backup version: %s (expected %s)", backup.Version, BackupVersion)
	}

	if backup.Tool != backupTool {
		return 0, fmt.Errorf("wrong tool: %s (expected %s)", backup.Tool, backupTool)
	}

	imported := 0
	for _, tb := range backup.Traces {
		trace, err := tb.Trace()
		if err != nil {
			return imported, err
		}
		if err := repo.CreateTrace(trace); err != nil {
			return imported, fmt.Errorf("create trace %s: %w", tb.Name, err)
		}
		imported++
	}

	return imported, nil
}

// ExportTraceYAML exports a single trace in the backup entry format.
func ExportTraceYAML(trace *models.Trace) ([]byte, error) {
	tb, err := NewTraceBackup(trace)
	if err != nil {
		return nil, err
	}
	return yaml.Marshal(tb)
}

// ExportBackup creates a YAML backup (alias for ExportToYAML).
func ExportBackup(repo TraceRepository) ([]byte, error) {
	return ExportToYAML(repo)
}

// ImportBackup restores from a YAML backup (alias for ImportFromYAML).
func ImportBackup(repo TraceRepository, data []byte) (int, error) {
	return ImportFromYAML(repo, data)
}

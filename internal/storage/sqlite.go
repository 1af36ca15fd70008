// ABOUTME: SQLite storage implementation for the trace library
// ABOUTME: Persists traces as GeoJSON text using pure Go SQLite driver

package storage

import (
	"database/sql"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/google/uuid"
	"github.com/harper/trailbook/internal/geojson"
	"github.com/harper/trailbook/internal/gpx"
	"github.com/harper/trailbook/internal/models"
	_ "modernc.org/sqlite"
)

// DBFilename is the database file name inside the data directory.
const DBFilename = "trailbook.db"

// SQLiteDB implements Repository with a local SQLite database.
type SQLiteDB struct {
	db   *sql.DB
	path string
}

// Compile-time check that SQLiteDB implements Repository.
var _ Repository = (*SQLiteDB)(nil)

// DefaultDBPath returns the default database path.
func DefaultDBPath() string {
	home, err := os.UserHomeDir()
	if err != nil {
		home = "."
	}
	return filepath.Join(home, ".local", "share", "trailbook", DBFilename)
}

// NewSQLiteDB creates a new SQLite database at the given path.
// Creates the directory and database file if they don't exist.
func NewSQLiteDB(path string) (*SQLiteDB, error) {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0750); err != nil { //nolint:gosec // 0750 is appropriate for user data directory
		return nil, fmt.Errorf("create directory: %w", err)
	}

	db, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, fmt.Errorf("open database: %w", err)
	}

	s := &SQLiteDB{db: db, path: path}

	if err := s.migrate(); err != nil {
		_ = db.Close()
		return nil, fmt.Errorf("migrate: %w", err)
	}

	return s, nil
}

// Path returns the database file location.
func (s *SQLiteDB) Path() string {
	return s.path
}

func (s *SQLiteDB) migrate() error {
	schema := `
		CREATE TABLE IF NOT EXISTS traces (
			id TEXT PRIMARY KEY,
			name TEXT NOT NULL UNIQUE,
			kind TEXT NOT NULL,
			geojson TEXT NOT NULL,
			elevation_gain INTEGER NOT NULL DEFAULT 0,
			elevations TEXT,
			created_at DATETIME NOT NULL DEFAULT CURRENT_TIMESTAMP
		);

		CREATE INDEX IF NOT EXISTS idx_traces_kind ON traces(kind);
	`
	_, err := s.db.Exec(schema)
	return err
}

// Close closes the database connection.
func (s *SQLiteDB) Close() error {
	return s.db.Close()
}

// Reset clears all traces from the database.
func (s *SQLiteDB) Reset() error {
	_, err := s.db.Exec("DELETE FROM traces")
	return err
}

// encodedTrace holds the column values for one trace row.
type encodedTrace struct {
	geojson       string
	elevationGain int64
	elevations    sql.NullString
}

func encodeTrace(trace *models.Trace) (*encodedTrace, error) {
	if trace.Data == nil || len(trace.Data.Path) == 0 {
		return nil, fmt.Errorf("trace %q has no points", trace.Name)
	}

	raw, err := geojson.Marshal(geojson.ToGeoJSON(trace.Data))
	if err != nil {
		return nil, fmt.Errorf("encode geojson: %w", err)
	}

	enc := &encodedTrace{geojson: string(raw), elevationGain: trace.Data.ElevationGain}
	if trace.Data.ElevationsAligned() {
		elev, err := json.Marshal(trace.Data.Elevations)
		if err != nil {
			return nil, fmt.Errorf("encode elevations: %w", err)
		}
		enc.elevations = sql.NullString{String: string(elev), Valid: true}
	}
	return enc, nil
}

// decodeTraceData rebuilds the report from stored columns.
// A stored gain is kept when the elevation series did not survive.
func decodeTraceData(raw string, gain int64, elevations sql.NullString) (*models.GpxData, error) {
	fc, err := geojson.Unmarshal([]byte(raw))
	if err != nil {
		return nil, fmt.Errorf("decode geojson: %w", err)
	}

	path := geojson.FromGeoJSON(fc)
	var elev []float64
	if elevations.Valid {
		if err := json.Unmarshal([]byte(elevations.String), &elev); err != nil {
			return nil, fmt.Errorf("decode elevations: %w", err)
		}
		if len(elev) != len(path) {
			elev = nil
		}
	}

	data := gpx.Summarize(path, geojson.TimestampsFromGeoJSON(fc), elev)
	if elev == nil {
		data.ElevationGain = gain
	}
	return data, nil
}

func isUniqueViolation(err error) bool {
	return err != nil && strings.Contains(err.Error(), "UNIQUE constraint failed")
}

// CreateTrace stores a new trace. Names are unique.
func (s *SQLiteDB) CreateTrace(trace *models.Trace) error {
	enc, err := encodeTrace(trace)
	if err != nil {
		return err
	}

	_, err = s.db.Exec(
		`INSERT INTO traces (id, name, kind, geojson, elevation_gain, elevations, created_at)
		 VALUES (?, ?, ?, ?, ?, ?, ?)`,
		trace.ID.String(), trace.Name, string(trace.Kind), enc.geojson,
		enc.elevationGain, enc.elevations, trace.CreatedAt,
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %s", ErrDuplicateName, trace.Name)
	}
	if err != nil {
		return fmt.Errorf("insert trace: %w", err)
	}
	return nil
}

const traceColumns = "id, name, kind, geojson, elevation_gain, elevations, created_at"

// GetTrace retrieves a trace by its UUID.
func (s *SQLiteDB) GetTrace(id uuid.UUID) (*models.Trace, error) {
	row := s.db.QueryRow("SELECT "+traceColumns+" FROM traces WHERE id = ?", id.String())
	return s.scanTrace(row)
}

// GetTraceByName retrieves a trace by its name.
func (s *SQLiteDB) GetTraceByName(name string) (*models.Trace, error) {
	row := s.db.QueryRow("SELECT "+traceColumns+" FROM traces WHERE name = ?", name)
	return s.scanTrace(row)
}

// ListTraces returns all traces sorted by name.
func (s *SQLiteDB) ListTraces() ([]*models.Trace, error) {
	rows, err := s.db.Query("SELECT " + traceColumns + " FROM traces ORDER BY name")
	if err != nil {
		return nil, fmt.Errorf("query traces: %w", err)
	}
	defer func() { _ = rows.Close() }()

	var traces []*models.Trace
	for rows.Next() {
		trace, err := s.scanTrace(rows)
		if err != nil {
			return nil, err
		}
		traces = append(traces, trace)
	}
	return traces, rows.Err()
}

// UpdateTrace replaces the name, kind, and data of an existing trace.
func (s *SQLiteDB) UpdateTrace(trace *models.Trace) error {
	enc, err := encodeTrace(trace)
	if err != nil {
		return err
	}

	result, err := s.db.Exec(
		`UPDATE traces SET name = ?, kind = ?, geojson = ?, elevation_gain = ?, elevations = ?
		 WHERE id = ?`,
		trace.Name, string(trace.Kind), enc.geojson, enc.elevationGain, enc.elevations,
		trace.ID.String(),
	)
	if isUniqueViolation(err) {
		return fmt.Errorf("%w: %s", ErrDuplicateName, trace.Name)
	}
	if err != nil {
		return fmt.Errorf("update trace: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// DeleteTrace removes a trace.
func (s *SQLiteDB) DeleteTrace(id uuid.UUID) error {
	result, err := s.db.Exec("DELETE FROM traces WHERE id = ?", id.String())
	if err != nil {
		return fmt.Errorf("delete trace: %w", err)
	}
	if n, _ := result.RowsAffected(); n == 0 {
		return ErrNotFound
	}
	return nil
}

// rowScanner is satisfied by both *sql.Row and *sql.Rows.
type rowScanner interface {
	Scan(dest ...any) error
}

func (s *SQLiteDB) scanTrace(row rowScanner) (*models.Trace, error) {
	var (
		idStr, kind, raw string
		gain             int64
		elevations       sql.NullString
		trace            models.Trace
	)
	err := row.Scan(&idStr, &trace.Name, &kind, &raw, &gain, &elevations, &trace.CreatedAt)
	if err == sql.ErrNoRows {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("scan trace: %w", err)
	}

	trace.ID, _ = uuid.Parse(idStr)
	trace.Kind = models.TraceKind(kind)
	trace.Data, err = decodeTraceData(raw, gain, elevations)
	if err != nil {
		return nil, fmt.Errorf("trace %s: %w", trace.Name, err)
	}
	return &trace, nil
}

// ABOUTME: Tests for CLI commands
// ABOUTME: Tests import, trim, export, remove, backup, push, migrate, and config commands

package main

import (
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/harper/trailbook/internal/config"
	"github.com/harper/trailbook/internal/models"
	"github.com/harper/trailbook/internal/storage"
	"github.com/spf13/cobra"
)

const testGPX = `<?xml version="1.0" encoding="UTF-8"?>
<gpx version="1.1" creator="test" xmlns="http://www.topografix.com/GPX/1/1">
  <trk><name>park</name><trkseg>
    <trkpt lat="48.1000" lon="11.5000"><ele>100</ele><time>2025-04-12T09:00:00Z</time></trkpt>
    <trkpt lat="48.1010" lon="11.5000"><ele>102</ele><time>2025-04-12T09:00:10Z</time></trkpt>
    <trkpt lat="48.1020" lon="11.5000"><ele>101</ele><time>2025-04-12T09:00:20Z</time></trkpt>
    <trkpt lat="48.1030" lon="11.5000"><ele>105</ele><time>2025-04-12T09:00:30Z</time></trkpt>
    <trkpt lat="48.1040" lon="11.5000"><ele>106</ele><time>2025-04-12T09:00:40Z</time></trkpt>
  </trkseg></trk>
</gpx>`

// testDB creates a temporary database for testing and sets the global repo variable.
func testDB(t *testing.T) {
	t.Helper()
	tmpDir := t.TempDir()
	dbPath := filepath.Join(tmpDir, "test.db")

	var err error
	repo, err = storage.NewSQLiteDB(dbPath)
	if err != nil {
		t.Fatalf("failed to create test db: %v", err)
	}
	t.Cleanup(func() {
		if repo != nil {
			_ = repo.Close()
			repo = nil
		}
	})
}

// writeFile writes content to a file in a temp directory and returns its path.
func writeFile(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	if err := os.WriteFile(path, []byte(content), 0600); err != nil {
		t.Fatalf("failed to write %s: %v", name, err)
	}
	return path
}

// setFlags sets flags on a shared command and restores their defaults after the test.
func setFlags(t *testing.T, cmd *cobra.Command, flags map[string]string) {
	t.Helper()
	for name, value := range flags {
		f := cmd.Flags().Lookup(name)
		if f == nil {
			t.Fatalf("flag %s not found on %s", name, cmd.Name())
		}
		def := f.DefValue
		if err := cmd.Flags().Set(name, value); err != nil {
			t.Fatalf("failed to set --%s: %v", name, err)
		}
		t.Cleanup(func() {
			_ = cmd.Flags().Set(name, def)
			f.Changed = false
		})
	}
}

// importTrace runs the import command for testGPX under the given name.
func importTrace(t *testing.T, name, kind string) {
	t.Helper()
	path := writeFile(t, "recording.gpx", testGPX)
	setFlags(t, importCmd, map[string]string{"name": name, "kind": kind})
	if err := importCmd.RunE(importCmd, []string{path}); err != nil {
		t.Fatalf("import failed: %v", err)
	}
}

// Tests for rootCmd

func TestRootCmd_Metadata(t *testing.T) {
	if rootCmd.Use != "trailbook" {
		t.Errorf("expected Use 'trailbook', got %q", rootCmd.Use)
	}
	if rootCmd.Short != "GPS trace analysis for mantrailing and hikes" {
		t.Errorf("unexpected Short: %q", rootCmd.Short)
	}
	if !strings.Contains(rootCmd.Long, "Import, compare, trim") {
		t.Error("expected description in Long")
	}
}

func TestRootCmd_Subcommands(t *testing.T) {
	want := []string{"import", "analyze", "list", "show", "compare", "trim", "export",
		"remove", "backup", "restore", "push", "migrate", "mcp", "config", "install-skill"}
	for _, name := range want {
		found := false
		for _, c := range rootCmd.Commands() {
			if c.Name() == name {
				found = true
				break
			}
		}
		if !found {
			t.Errorf("missing subcommand %q", name)
		}
	}
}

func TestStorageAnnotations(t *testing.T) {
	for _, cmd := range []*cobra.Command{analyzeCmd, migrateCmd, configShowCmd, configSetCmd, configPathCmd, installSkillCmd} {
		if cmd.Annotations[skipStorage] != "true" {
			t.Errorf("%s should not open the library", cmd.Name())
		}
	}
	for _, cmd := range []*cobra.Command{importCmd, trimCmd, pushTrailCmd, mcpCmd} {
		if cmd.Annotations[skipStorage] == "true" {
			t.Errorf("%s needs the library", cmd.Name())
		}
	}
}

// Tests for importCmd

func TestImportCmd_Metadata(t *testing.T) {
	if importCmd.Use != "import <file.gpx>" {
		t.Errorf("unexpected Use: %q", importCmd.Use)
	}
	kindFlag := importCmd.Flags().Lookup("kind")
	if kindFlag == nil {
		t.Fatal("kind flag not found")
	}
	if kindFlag.DefValue != "dog" {
		t.Errorf("expected default kind dog, got %q", kindFlag.DefValue)
	}
}

func TestImportCmd_RunE(t *testing.T) {
	testDB(t)
	importTrace(t, "park", "runner")

	trace, err := repo.GetTraceByName("park")
	if err != nil {
		t.Fatalf("trace not stored: %v", err)
	}
	if trace.Kind != models.KindRunner {
		t.Errorf("expected kind runner, got %s", trace.Kind)
	}
	if len(trace.Data.Path) != 5 {
		t.Errorf("expected 5 points, got %d", len(trace.Data.Path))
	}
	if !trace.Data.HasDuration() || *trace.Data.Duration != 40 {
		t.Errorf("expected duration 40, got %v", trace.Data.Duration)
	}
	if trace.Data.ElevationGain != 7 {
		t.Errorf("expected elevation gain 7, got %d", trace.Data.ElevationGain)
	}
}

func TestImportCmd_DefaultName(t *testing.T) {
	testDB(t)
	path := writeFile(t, "morning-walk.GPX", testGPX)

	if err := importCmd.RunE(importCmd, []string{path}); err != nil {
		t.Fatalf("import failed: %v", err)
	}
	if _, err := repo.GetTraceByName("morning-walk"); err != nil {
		t.Errorf("expected trace named after file: %v", err)
	}
}

func TestImportCmd_RejectsOtherExtensions(t *testing.T) {
	testDB(t)
	path := writeFile(t, "recording.kml", testGPX)

	err := importCmd.RunE(importCmd, []string{path})
	if err == nil || !strings.Contains(err.Error(), "only .gpx files") {
		t.Errorf("expected extension error, got %v", err)
	}
}

func TestImportCmd_ParseError(t *testing.T) {
	testDB(t)
	path := writeFile(t, "broken.gpx", "<gpx><trk><trkseg>")

	err := importCmd.RunE(importCmd, []string{path})
	if err == nil || !strings.HasPrefix(err.Error(), "failed to parse GPX file: ") {
		t.Errorf("expected parse error, got %v", err)
	}
}

func TestImportCmd_Duplicate(t *testing.T) {
	testDB(t)
	importTrace(t, "park", "dog")

	path := writeFile(t, "again.gpx", testGPX)
	setFlags(t, importCmd, map[string]string{"name": "park"})
	err := importCmd.RunE(importCmd, []string{path})
	if err == nil || !strings.Contains(err.Error(), "already exists") {
		t.Errorf("expected duplicate error, got %v", err)
	}
}

func TestImportCmd_BadKind(t *testing.T) {
	testDB(t)
	path := writeFile(t, "cat.gpx", testGPX)
	setFlags(t, importCmd, map[string]string{"kind": "cat"})

	if err := importCmd.RunE(importCmd, []string{path}); err == nil {
		t.Error("expected error for unknown kind")
	}
}

// Tests for analyze, show, compare, list

func TestAnalyzeCmd_RunE(t *testing.T) {
	path := writeFile(t, "walk.gpx", testGPX)
	if err := analyzeCmd.RunE(analyzeCmd, []string{path}); err != nil {
		t.Errorf("analyze failed: %v", err)
	}
}

func TestShowCmd_NotFound(t *testing.T) {
	testDB(t)
	err := showCmd.RunE(showCmd, []string{"ghost"})
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("expected not found error, got %v", err)
	}
}

func TestShowCmd_RunE(t *testing.T) {
	testDB(t)
	importTrace(t, "park", "dog")

	if err := showCmd.RunE(showCmd, []string{"park"}); err != nil {
		t.Errorf("show failed: %v", err)
	}
}

func TestCompareCmd_RunE(t *testing.T) {
	testDB(t)
	importTrace(t, "dog", "dog")
	importTrace(t, "runner", "runner")

	if err := compareCmd.RunE(compareCmd, []string{"dog", "runner"}); err != nil {
		t.Errorf("compare failed: %v", err)
	}
	if err := compareCmd.RunE(compareCmd, []string{"dog", "ghost"}); err == nil {
		t.Error("expected error for missing reference")
	}
}

func TestFilterByKind(t *testing.T) {
	traces := []*models.Trace{
		{Name: "a", Kind: models.KindDog},
		{Name: "b", Kind: models.KindRunner},
		{Name: "c", Kind: models.KindDog},
	}
	got := filterByKind(traces, models.KindDog)
	if len(got) != 2 || got[0].Name != "a" || got[1].Name != "c" {
		t.Errorf("unexpected filter result %v", got)
	}
}

func TestListCmd_RunE(t *testing.T) {
	testDB(t)
	if err := listCmd.RunE(listCmd, nil); err != nil {
		t.Errorf("list on empty library failed: %v", err)
	}

	importTrace(t, "park", "dog")
	setFlags(t, listCmd, map[string]string{"kind": "dog"})
	if err := listCmd.RunE(listCmd, nil); err != nil {
		t.Errorf("list failed: %v", err)
	}
}

// Tests for trimCmd

func TestTrimCmd_RunE(t *testing.T) {
	testDB(t)
	importTrace(t, "park", "dog")

	setFlags(t, trimCmd, map[string]string{"start": "0.25", "end": "0.75"})
	if err := trimCmd.RunE(trimCmd, []string{"park"}); err != nil {
		t.Fatalf("trim failed: %v", err)
	}

	trace, err := repo.GetTraceByName("park")
	if err != nil {
		t.Fatalf("trace lost: %v", err)
	}
	if len(trace.Data.Path) != 3 {
		t.Fatalf("expected 3 points, got %d", len(trace.Data.Path))
	}
	if trace.Data.Path[0].Lat != 48.1010 {
		t.Errorf("expected trim to start at the second point, got %v", trace.Data.Path[0])
	}
	if !trace.Data.HasDuration() || *trace.Data.Duration != 20 {
		t.Errorf("expected duration 20, got %v", trace.Data.Duration)
	}
	if trace.Data.ElevationGain != 4 {
		t.Errorf("expected elevation gain 4, got %d", trace.Data.ElevationGain)
	}
}

func TestTrimCmd_Preview(t *testing.T) {
	testDB(t)
	importTrace(t, "park", "dog")

	setFlags(t, trimCmd, map[string]string{"start": "0.5", "preview": "true"})
	if err := trimCmd.RunE(trimCmd, []string{"park"}); err != nil {
		t.Fatalf("trim preview failed: %v", err)
	}

	trace, _ := repo.GetTraceByName("park")
	if len(trace.Data.Path) != 5 {
		t.Errorf("preview must not save, got %d points", len(trace.Data.Path))
	}
}

func TestTrimCmd_SaveAs(t *testing.T) {
	testDB(t)
	importTrace(t, "park", "dog")

	setFlags(t, trimCmd, map[string]string{"end": "0.5", "as": "park-first-half"})
	if err := trimCmd.RunE(trimCmd, []string{"park"}); err != nil {
		t.Fatalf("trim failed: %v", err)
	}

	original, _ := repo.GetTraceByName("park")
	if len(original.Data.Path) != 5 {
		t.Errorf("original changed to %d points", len(original.Data.Path))
	}
	half, err := repo.GetTraceByName("park-first-half")
	if err != nil {
		t.Fatalf("copy not stored: %v", err)
	}
	if len(half.Data.Path) != 3 || half.Kind != models.KindDog {
		t.Errorf("unexpected copy: %d points, kind %s", len(half.Data.Path), half.Kind)
	}
}

func TestTrimCmd_InvalidRange(t *testing.T) {
	testDB(t)
	importTrace(t, "park", "dog")

	for _, flags := range []map[string]string{
		{"start": "0.8", "end": "0.2"},
		{"start": "-0.1"},
		{"end": "1.5"},
	} {
		t.Run(flags["start"]+"-"+flags["end"], func(t *testing.T) {
			setFlags(t, trimCmd, flags)
			if err := trimCmd.RunE(trimCmd, []string{"park"}); err == nil {
				t.Error("expected range error")
			}
		})
	}
}

// Tests for exportCmd

func TestExportCmd_Formats(t *testing.T) {
	testDB(t)
	importTrace(t, "park", "dog")

	cases := map[string]string{
		"geojson": `"FeatureCollection"`,
		"gpx":     "<gpx",
		"yaml":    "name: park",
	}
	for format, marker := range cases {
		t.Run(format, func(t *testing.T) {
			out := filepath.Join(t.TempDir(), "park."+format)
			setFlags(t, exportCmd, map[string]string{"format": format, "output": out})

			if err := exportCmd.RunE(exportCmd, []string{"park"}); err != nil {
				t.Fatalf("export failed: %v", err)
			}
			data, err := os.ReadFile(out)
			if err != nil {
				t.Fatalf("failed to read export: %v", err)
			}
			if !strings.Contains(string(data), marker) {
				t.Errorf("expected %q in output:\n%s", marker, data)
			}
		})
	}
}

func TestExportCmd_UnsupportedFormat(t *testing.T) {
	testDB(t)
	setFlags(t, exportCmd, map[string]string{"format": "kml"})

	err := exportCmd.RunE(exportCmd, []string{"park"})
	if err == nil || !strings.Contains(err.Error(), "unsupported format") {
		t.Errorf("expected unsupported format error, got %v", err)
	}
}

// Tests for removeCmd

func TestRemoveCmd_Confirm(t *testing.T) {
	testDB(t)
	importTrace(t, "park", "dog")

	setFlags(t, removeCmd, map[string]string{"confirm": "true"})
	if err := removeCmd.RunE(removeCmd, []string{"park"}); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if _, err := repo.GetTraceByName("park"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected trace gone, got %v", err)
	}
}

func TestRemoveCmd_Prompt(t *testing.T) {
	testDB(t)
	importTrace(t, "park", "dog")
	t.Cleanup(func() { removeCmd.SetIn(nil) })

	removeCmd.SetIn(strings.NewReader("n\n"))
	if err := removeCmd.RunE(removeCmd, []string{"park"}); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if _, err := repo.GetTraceByName("park"); err != nil {
		t.Errorf("declined prompt must keep the trace: %v", err)
	}

	removeCmd.SetIn(strings.NewReader("yes\n"))
	if err := removeCmd.RunE(removeCmd, []string{"park"}); err != nil {
		t.Fatalf("remove failed: %v", err)
	}
	if _, err := repo.GetTraceByName("park"); !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("expected trace gone, got %v", err)
	}
}

// Tests for backup and restore

func TestBackupRestore_RoundTrip(t *testing.T) {
	testDB(t)
	importTrace(t, "dog", "dog")
	importTrace(t, "runner", "runner")

	out := filepath.Join(t.TempDir(), "backup.yaml")
	setFlags(t, backupCmd, map[string]string{"output": out})
	if err := backupCmd.RunE(backupCmd, nil); err != nil {
		t.Fatalf("backup failed: %v", err)
	}

	if err := repo.Reset(); err != nil {
		t.Fatalf("reset failed: %v", err)
	}

	setFlags(t, restoreCmd, map[string]string{"confirm": "true"})
	if err := restoreCmd.RunE(restoreCmd, []string{out}); err != nil {
		t.Fatalf("restore failed: %v", err)
	}

	traces, _ := repo.ListTraces()
	if len(traces) != 2 {
		t.Fatalf("expected 2 traces, got %d", len(traces))
	}
	if *traces[0].Data.Duration != 40 {
		t.Errorf("expected restored duration 40, got %v", traces[0].Data.Duration)
	}
}

func TestRestoreCmd_MissingFile(t *testing.T) {
	testDB(t)
	if err := restoreCmd.RunE(restoreCmd, []string{"/nonexistent/backup.yaml"}); err == nil {
		t.Error("expected error for missing file")
	}
}

// fakeService records requests made by push and migrate.
type fakeService struct {
	puts    map[string][]byte
	created []byte
	auth    string
}

// newFakeService serves records keyed by "trails", "hikes", or "kind/id".
func newFakeService(t *testing.T, records map[string]string) *fakeService {
	t.Helper()
	fake := &fakeService{puts: map[string][]byte{}}

	mux := http.NewServeMux()
	mux.HandleFunc("GET /{kind}", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, records[r.PathValue("kind")])
	})
	mux.HandleFunc("GET /{kind}/{id}", func(w http.ResponseWriter, r *http.Request) {
		body, ok := records[r.PathValue("kind")+"/"+r.PathValue("id")]
		if !ok {
			http.NotFound(w, r)
			return
		}
		fake.auth = r.Header.Get("Authorization")
		w.Header().Set("Content-Type", "application/json")
		_, _ = io.WriteString(w, body)
	})
	mux.HandleFunc("PUT /{kind}/{id}", func(w http.ResponseWriter, r *http.Request) {
		body, _ := io.ReadAll(r.Body)
		fake.puts[r.PathValue("kind")+"/"+r.PathValue("id")] = body
		w.WriteHeader(http.StatusNoContent)
	})
	mux.HandleFunc("POST /{kind}", func(w http.ResponseWriter, r *http.Request) {
		fake.created, _ = io.ReadAll(r.Body)
		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(http.StatusCreated)
		_, _ = io.WriteString(w, `{"id":"99","dogTrace":null,"runnerTrace":null}`)
	})

	srv := httptest.NewServer(mux)
	t.Cleanup(srv.Close)

	prev := cfg
	cfg = &config.Config{APIURL: srv.URL, APIToken: "tok"}
	t.Cleanup(func() { cfg = prev })
	return fake
}

func decodeObject(t *testing.T, raw []byte) map[string]json.RawMessage {
	t.Helper()
	var obj map[string]json.RawMessage
	if err := json.Unmarshal(raw, &obj); err != nil {
		t.Fatalf("invalid JSON %s: %v", raw, err)
	}
	return obj
}

// Tests for pushCmd

func TestPushTrailCmd_Update(t *testing.T) {
	testDB(t)
	importTrace(t, "dog-0412", "dog")
	fake := newFakeService(t, map[string]string{
		"trails/42": `{"id":"42","name":"Park","dogTrace":null,"runnerTrace":{"kept":true},"weather":"sunny"}`,
	})

	setFlags(t, pushTrailCmd, map[string]string{"dog": "dog-0412"})
	if err := pushTrailCmd.RunE(pushTrailCmd, []string{"42"}); err != nil {
		t.Fatalf("push failed: %v", err)
	}

	if fake.auth != "Bearer tok" {
		t.Errorf("expected bearer token, got %q", fake.auth)
	}
	sent := decodeObject(t, fake.puts["trails/42"])
	dog := decodeObject(t, sent["dogTrace"])
	if string(dog["type"]) != `"FeatureCollection"` {
		t.Errorf("expected FeatureCollection, got %s", sent["dogTrace"])
	}
	if string(sent["runnerTrace"]) != `{"kept":true}` {
		t.Errorf("untouched field changed: %s", sent["runnerTrace"])
	}
	if string(sent["weather"]) != `"sunny"` {
		t.Errorf("unknown field not passed through: %s", sent["weather"])
	}
}

func TestPushHikeCmd_Clear(t *testing.T) {
	testDB(t)
	fake := newFakeService(t, map[string]string{
		"hikes/7": `{"id":"7","dogTrack":{"kept":true},"userTrack":{"old":true}}`,
	})

	setFlags(t, pushHikeCmd, map[string]string{"clear-user": "true"})
	if err := pushHikeCmd.RunE(pushHikeCmd, []string{"7"}); err != nil {
		t.Fatalf("push failed: %v", err)
	}

	sent := decodeObject(t, fake.puts["hikes/7"])
	if string(sent["userTrack"]) != "null" {
		t.Errorf("expected explicit null, got %s", sent["userTrack"])
	}
	if string(sent["dogTrack"]) != `{"kept":true}` {
		t.Errorf("untouched field changed: %s", sent["dogTrack"])
	}
}

func TestPushTrailCmd_Create(t *testing.T) {
	testDB(t)
	importTrace(t, "runner-0412", "runner")
	fake := newFakeService(t, nil)

	setFlags(t, pushTrailCmd, map[string]string{"runner": "runner-0412", "name": "Park loop"})
	if err := pushTrailCmd.RunE(pushTrailCmd, nil); err != nil {
		t.Fatalf("push failed: %v", err)
	}

	sent := decodeObject(t, fake.created)
	if string(sent["name"]) != `"Park loop"` {
		t.Errorf("unexpected name %s", sent["name"])
	}
	if string(sent["dogTrace"]) != "null" {
		t.Errorf("expected null dog trace, got %s", sent["dogTrace"])
	}
	if !strings.Contains(string(sent["runnerTrace"]), "LineString") {
		t.Errorf("expected runner trace geometry, got %s", sent["runnerTrace"])
	}
}

func TestPushTrailCmd_Errors(t *testing.T) {
	testDB(t)
	newFakeService(t, map[string]string{})

	if err := pushTrailCmd.RunE(pushTrailCmd, []string{"42"}); !errors.Is(err, errNothingToPush) {
		t.Errorf("expected errNothingToPush, got %v", err)
	}

	setFlags(t, pushTrailCmd, map[string]string{"clear-dog": "true"})
	err := pushTrailCmd.RunE(pushTrailCmd, []string{"404"})
	if err == nil || !strings.Contains(err.Error(), "not found") {
		t.Errorf("expected not found error, got %v", err)
	}
}

func TestPushTrailCmd_UnknownTrace(t *testing.T) {
	testDB(t)
	newFakeService(t, nil)

	setFlags(t, pushTrailCmd, map[string]string{"dog": "ghost"})
	if err := pushTrailCmd.RunE(pushTrailCmd, []string{"42"}); err == nil {
		t.Error("expected error for unknown trace")
	}
}

func TestNewAPIClient_NoURL(t *testing.T) {
	prev := cfg
	cfg = &config.Config{}
	t.Cleanup(func() { cfg = prev })

	_, err := newAPIClient()
	if err == nil || !strings.Contains(err.Error(), "config set api_url") {
		t.Errorf("expected hint to set api_url, got %v", err)
	}
}

// Tests for migrateCmd

const legacyTrail = `{"id":"1","dogTrace":{"trk":[{"trkseg":[{"trkpt":[
	{"$":{"lat":"48.1","lon":"11.5"},"time":["2025-04-12T09:00:00Z"]},
	{"$":{"lat":"48.2","lon":"11.6"},"time":["2025-04-12T09:00:10Z"]}
]}]}]},"runnerTrace":null}`

func TestMigrateCmd_DryRun(t *testing.T) {
	fake := newFakeService(t, map[string]string{
		"trails": "[" + legacyTrail + "]",
		"hikes":  "[]",
	})

	setFlags(t, migrateCmd, map[string]string{"dry-run": "true"})
	if err := migrateCmd.RunE(migrateCmd, nil); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}
	if len(fake.puts) != 0 {
		t.Errorf("dry run wrote %d records", len(fake.puts))
	}
}

func TestMigrateCmd_RunE(t *testing.T) {
	fake := newFakeService(t, map[string]string{
		"trails": "[" + legacyTrail + "]",
		"hikes":  "[]",
	})

	if err := migrateCmd.RunE(migrateCmd, nil); err != nil {
		t.Fatalf("migrate failed: %v", err)
	}

	sent := decodeObject(t, fake.puts["trails/1"])
	dog := decodeObject(t, sent["dogTrace"])
	if string(dog["type"]) != `"FeatureCollection"` {
		t.Errorf("expected converted trace, got %s", sent["dogTrace"])
	}
	if string(sent["runnerTrace"]) != "null" {
		t.Errorf("null field changed: %s", sent["runnerTrace"])
	}
}

// Tests for configCmd

func TestConfigSetCmd_RunE(t *testing.T) {
	t.Setenv("XDG_CONFIG_HOME", t.TempDir())
	t.Setenv("TRAILBOOK_API_URL", "")

	if err := configSetCmd.RunE(configSetCmd, []string{"api_url", "https://trails.example.com/api"}); err != nil {
		t.Fatalf("config set failed: %v", err)
	}

	loaded, err := config.Load()
	if err != nil {
		t.Fatalf("load failed: %v", err)
	}
	if loaded.APIURL != "https://trails.example.com/api" {
		t.Errorf("expected saved URL, got %q", loaded.APIURL)
	}

	if err := configSetCmd.RunE(configSetCmd, []string{"colour", "blue"}); err == nil {
		t.Error("expected error for unknown key")
	}
}

func TestConfigShowCmd_RunE(t *testing.T) {
	prev := cfg
	cfg = &config.Config{APIURL: "https://trails.example.com", APIToken: "secret"}
	t.Cleanup(func() { cfg = prev })

	if err := configShowCmd.RunE(configShowCmd, nil); err != nil {
		t.Errorf("config show failed: %v", err)
	}
}

// Tests for install-skill

func TestInstallSkill(t *testing.T) {
	home := t.TempDir()

	if err := installSkill(installSkillCmd, home, true); err != nil {
		t.Fatalf("installSkill failed: %v", err)
	}

	content, err := os.ReadFile(skillPath(home))
	if err != nil {
		t.Fatalf("skill file not written: %v", err)
	}
	embedded, _ := skillFS.ReadFile("skill/SKILL.md")
	if string(content) != string(embedded) {
		t.Error("installed skill differs from embedded copy")
	}
	if !strings.Contains(string(content), "name: trailbook") {
		t.Error("skill frontmatter missing name")
	}
}

func TestInstallSkill_Declined(t *testing.T) {
	home := t.TempDir()
	installSkillCmd.SetIn(strings.NewReader("n\n"))
	t.Cleanup(func() { installSkillCmd.SetIn(nil) })

	if err := installSkill(installSkillCmd, home, false); err != nil {
		t.Fatalf("installSkill failed: %v", err)
	}
	if _, err := os.Stat(skillPath(home)); !os.IsNotExist(err) {
		t.Error("declined install must not write the skill")
	}
}

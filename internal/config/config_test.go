package config

import (
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatalf("write config: %v", err)
	}
	return path
}

func TestLoad_MissingFileWritesDefaults(t *testing.T) {
	path := filepath.Join(t.TempDir(), "nested", "config.json")

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !reflect.DeepEqual(cfg, Default()) {
		t.Fatalf("cfg = %#v, want defaults", cfg)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("default file not written: %v", err)
	}
}

func TestLoad_MergesOverDefaults(t *testing.T) {
	path := writeConfig(t, `{"stops":[{"ID":"8592791"}],"max_departures":5}`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if cfg.MaxDepartures != 5 {
		t.Fatalf("MaxDepartures = %d, want 5", cfg.MaxDepartures)
	}
	if cfg.FetchInterval != 60 || !cfg.ShowClock || cfg.GridShrink != 0.7 {
		t.Fatalf("defaults not preserved: %#v", cfg)
	}
	if len(cfg.Stops) != 1 || cfg.Stops[0].ID != "8592791" {
		t.Fatalf("Stops = %#v, want one stop 8592791", cfg.Stops)
	}
}

func TestLoad_InvalidJSONIsFatal(t *testing.T) {
	path := writeConfig(t, `{not-json`)

	_, err := Load(path)
	if err == nil {
		t.Fatal("Load returned nil error, want *Error")
	}
	if !strings.Contains(err.Error(), "parse JSON") {
		t.Fatalf("error = %v, want parse JSON", err)
	}
	var cfgErr *Error
	if !errors.As(err, &cfgErr) {
		t.Fatalf("error type = %T, want *Error", err)
	}
}

func TestLoad_SchemaViolations(t *testing.T) {
	tests := []struct {
		name string
		body string
	}{
		{"empty stop id", `{"stops":[{"ID":""}]}`},
		{"missing stop id", `{"stops":[{"Limit":10}]}`},
		{"zero fetch interval", `{"fetch_interval":0}`},
		{"negative limit", `{"stops":[{"ID":"x","Limit":-1}]}`},
		{"both filters", `{"stops":[{"ID":"x","LinesInclude":{"10":null},"LinesExclude":{"22":null}}]}`},
		{"legacy mixed with new", `{"stops":[{"ID":"x","Lines":{"10":null},"LinesInclude":{"10":null}}]}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			path := writeConfig(t, tt.body)
			if _, err := Load(path); err == nil {
				t.Fatalf("Load(%s) returned nil error, want failure", tt.body)
			}
		})
	}
}

func TestLoad_MigratesLegacyLines(t *testing.T) {
	path := writeConfig(t, `{"stops":[{"ID":"8592791","Lines":{"10":"8587061","F":null}}]}`)

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	stop := cfg.Stops[0]
	if stop.Lines != nil {
		t.Fatalf("legacy Lines not cleared: %#v", stop.Lines)
	}
	if stop.LinesInclude == nil {
		t.Fatal("LinesInclude = nil, want migrated map")
	}
	if term := stop.LinesInclude["10"]; term == nil || *term != "8587061" {
		t.Fatalf("LinesInclude[10] = %v, want 8587061", term)
	}
	if term, ok := stop.LinesInclude["F"]; !ok || term != nil {
		t.Fatalf("LinesInclude[F] = %v/%v, want present nil", term, ok)
	}
}

func TestLoad_Idempotent(t *testing.T) {
	path := writeConfig(t, `{"stops":[{"ID":"8592791","LinesInclude":{"10":"8587061"}},{"ID":"8592855","Limit":300}],"max_minutes":90}`)

	first, err := Load(path)
	if err != nil {
		t.Fatalf("first Load returned error: %v", err)
	}
	second, err := Load(path)
	if err != nil {
		t.Fatalf("second Load returned error: %v", err)
	}
	if !reflect.DeepEqual(first, second) {
		t.Fatalf("loads differ:\nfirst:  %#v\nsecond: %#v", first, second)
	}
}

func TestSaveRoundTrip(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.json")
	cfg := Default()
	cfg.Stops = []Stop{{ID: "8592791", Limit: 200}}
	cfg.MaxDepartures = 6

	if err := Save(path, cfg); err != nil {
		t.Fatalf("Save returned error: %v", err)
	}
	loaded, err := Load(path)
	if err != nil {
		t.Fatalf("Load returned error: %v", err)
	}
	if !reflect.DeepEqual(cfg, loaded) {
		t.Fatalf("round trip mismatch:\nsaved:  %#v\nloaded: %#v", cfg, loaded)
	}
}

package config

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeConfig(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.json")
	if err := os.WriteFile(path, []byte(body), 0644); err != nil {
		t.Fatal(err)
	}
	return path
}

func TestLoad(t *testing.T) {
	path := writeConfig(t, `{"grid_cols": 4, "grid_rows": 3, "capacity": 64, "format": "webp", "verbose": true}`)
	got, err := Load(path)
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	want := Config{GridCols: 4, GridRows: 3, Capacity: 64, Format: "webp", Verbose: true}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Fatalf("config (-want +got):\n%s", diff)
	}
}

func TestLoadErrors(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.json")); err == nil {
		t.Error("expected error for missing file")
	}
	if _, err := Load(writeConfig(t, `{"grid_cols": "two"}`)); err == nil {
		t.Error("expected error for bad JSON")
	}
}

func TestResolveDefaults(t *testing.T) {
	var c Config
	c.Resolve(Flags{})
	want := Config{
		GridCols: 2,
		GridRows: 2,
		Capacity: 256,
		Workers:  runtime.NumCPU(),
		Format:   ".png",
	}
	if diff := cmp.Diff(want, c); diff != "" {
		t.Fatalf("defaults (-want +got):\n%s", diff)
	}
	if err := c.Validate(); err != nil {
		t.Fatalf("Validate: %v", err)
	}
}

func TestResolveFlagsOverride(t *testing.T) {
	c := Config{GridCols: 4, GridRows: 4, Workers: 8, Format: "tga"}
	c.Resolve(Flags{GridCols: 1, Workers: 2, Format: "WEBP", MaxIterations: 5, Verbose: true})
	want := Config{
		GridCols:      1,
		GridRows:      4,
		Capacity:      256,
		MaxIterations: 5,
		Workers:       2,
		Format:        ".webp",
		Verbose:       true,
	}
	if diff := cmp.Diff(want, c); diff != "" {
		t.Fatalf("resolved (-want +got):\n%s", diff)
	}
	if got := len(c.FillOptions()); got != 3 {
		t.Fatalf("FillOptions returned %d options", got)
	}
}

func TestValidateFormat(t *testing.T) {
	c := Config{Format: "jpg"}
	c.Resolve(Flags{})
	if err := c.Validate(); err == nil || !strings.Contains(err.Error(), ".jpg") {
		t.Fatalf("Validate = %v, want unsupported format error", err)
	}
}

func TestLoggerLevel(t *testing.T) {
	var buf bytes.Buffer
	c := Config{}
	if c.Logger(&buf).Enabled(context.Background(), slog.LevelDebug) {
		t.Error("debug enabled without Verbose")
	}
	c.Verbose = true
	l := c.Logger(&buf)
	l.Debug("hello", "k", 1)
	if !strings.Contains(buf.String(), "msg=hello k=1") {
		t.Errorf("log output = %q", buf.String())
	}
}

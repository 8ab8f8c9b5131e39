package batch

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"alpha-fill/internal/fill"
	"alpha-fill/internal/imageio"
	"alpha-fill/internal/pixbuf"

	"github.com/google/go-cmp/cmp"
)

// holeImage is a red w×h image with a transparent pixel at its centre.
func holeImage(w, h int) *pixbuf.Buffer {
	b := pixbuf.New(w, h)
	for y := 0; y < h; y++ {
		for x := 0; x < w; x++ {
			b.Set(pixbuf.Point{X: x, Y: y}, pixbuf.Color{R: 255, A: 255})
		}
	}
	b.Set(pixbuf.Point{X: w / 2, Y: h / 2}, pixbuf.Color{})
	return b
}

func setupDir(t *testing.T) string {
	t.Helper()
	dir := t.TempDir()
	for _, name := range []string{"a.png", "b.tiff"} {
		if err := imageio.Save(filepath.Join(dir, name), holeImage(5, 5)); err != nil {
			t.Fatal(err)
		}
	}
	if err := os.WriteFile(filepath.Join(dir, "broken.png"), []byte("nope"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "notes.txt"), []byte("skip"), 0644); err != nil {
		t.Fatal(err)
	}
	if err := os.Mkdir(filepath.Join(dir, "sub.png"), 0755); err != nil {
		t.Fatal(err)
	}
	return dir
}

func TestCollect(t *testing.T) {
	names, err := Collect(setupDir(t))
	if err != nil {
		t.Fatalf("Collect: %v", err)
	}
	if diff := cmp.Diff([]string{"a.png", "b.tiff", "broken.png"}, names); diff != "" {
		t.Fatalf("names (-want +got):\n%s", diff)
	}
}

func TestRun(t *testing.T) {
	in := setupDir(t)
	out := t.TempDir()
	names, err := Collect(in)
	if err != nil {
		t.Fatal(err)
	}

	results := Run(context.Background(), Config{
		InputDir:    in,
		OutputDir:   out,
		Format:      ".webp",
		Workers:     2,
		FillOptions: []fill.Option{fill.WithGrid(fill.Grid{Cols: 3, Rows: 1})},
	}, names)

	if len(results) != 3 {
		t.Fatalf("got %d results, want 3", len(results))
	}
	for _, r := range results[:2] {
		if !r.Success {
			t.Fatalf("%s failed: %s", r.Name, r.Error)
		}
		if r.Iterations != 2 || r.Filled != 1 {
			t.Errorf("%s: iterations=%d filled=%d, want 2 and 1", r.Name, r.Iterations, r.Filled)
		}
		buf, err := imageio.Load(filepath.Join(out, r.Output))
		if err != nil {
			t.Fatalf("Load %s: %v", r.Output, err)
		}
		if got := buf.At(pixbuf.Point{X: 2, Y: 2}); got != (pixbuf.Color{R: 255, A: 255}) {
			t.Errorf("%s centre = %v", r.Output, got)
		}
	}
	if results[0].Output != "a.webp" || results[1].Output != "b.webp" {
		t.Errorf("outputs = %q, %q", results[0].Output, results[1].Output)
	}
	if bad := results[2]; bad.Success || bad.Error == "" || bad.Output != "" {
		t.Errorf("broken.png result = %+v", bad)
	}

	manifest := filepath.Join(out, "manifest.json")
	if err := WriteManifest(manifest, results); err != nil {
		t.Fatalf("WriteManifest: %v", err)
	}
	data, err := os.ReadFile(manifest)
	if err != nil {
		t.Fatal(err)
	}
	var entries []ManifestEntry
	if err := json.Unmarshal(data, &entries); err != nil {
		t.Fatalf("manifest: %v", err)
	}
	want := []ManifestEntry{
		{Input: "a.png", Output: "a.webp", Iterations: 2, Filled: 1},
		{Input: "b.tiff", Output: "b.webp", Iterations: 2, Filled: 1},
		{Input: "broken.png", Error: results[2].Error},
	}
	if diff := cmp.Diff(want, entries); diff != "" {
		t.Fatalf("manifest (-want +got):\n%s", diff)
	}
}

func TestRunCanceled(t *testing.T) {
	in := setupDir(t)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()
	results := Run(ctx, Config{InputDir: in, OutputDir: t.TempDir(), Format: ".png"}, []string{"a.png"})
	if results[0].Success {
		t.Fatal("expected failure after cancel")
	}
}

func TestRunDuplicateOutputName(t *testing.T) {
	in := t.TempDir()
	out := t.TempDir()
	for _, name := range []string{"a.png", "a.tiff", "c.png"} {
		if err := imageio.Save(filepath.Join(in, name), holeImage(3, 3)); err != nil {
			t.Fatal(err)
		}
	}
	names, err := Collect(in)
	if err != nil {
		t.Fatal(err)
	}

	results := Run(context.Background(), Config{InputDir: in, OutputDir: out, Format: ".png", Workers: 3}, names)

	for _, r := range results[:2] {
		if r.Success || r.Output != "" || !strings.Contains(r.Error, "duplicate output name a.png") {
			t.Errorf("%s: result = %+v, want duplicate output error", r.Name, r)
		}
	}
	if !results[2].Success || results[2].Output != "c.png" {
		t.Errorf("c.png: result = %+v", results[2])
	}

	entries, err := os.ReadDir(out)
	if err != nil {
		t.Fatal(err)
	}
	var files []string
	for _, e := range entries {
		files = append(files, e.Name())
	}
	if diff := cmp.Diff([]string{"c.png"}, files); diff != "" {
		t.Fatalf("output dir (-want +got):\n%s", diff)
	}
}

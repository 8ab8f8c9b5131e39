package main

import (
	"context"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"path/filepath"
	"time"

	"alpha-fill/internal/batch"
	"alpha-fill/internal/config"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("alphafillbatch", flag.ContinueOnError)
	fs.SetOutput(stderr)

	// CLI flags
	configFile := fs.String("config", "", "Path to config.json file")
	workers := fs.Int("workers", 0, "Number of worker goroutines (default: NumCPU)")
	format := fs.String("format", "", "Output extension: png, webp, tga, bmp, tiff (default: png)")
	cols := fs.Int("cols", 0, "Scan grid columns per image (default: 2)")
	rows := fs.Int("rows", 0, "Scan grid rows per image (default: 2)")
	verbose := fs.Bool("v", false, "Enable debug logging")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: alphafillbatch [flags] <input-dir> <output-dir>")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 2 {
		fs.Usage()
		return 2
	}
	inDir, outDir := fs.Arg(0), fs.Arg(1)

	// Load config
	var cfg config.Config
	if *configFile != "" {
		var err error
		cfg, err = config.Load(*configFile)
		if err != nil {
			fmt.Fprintf(stderr, "Error loading config: %v\n", err)
			return 1
		}
	}

	// CLI flags override config file
	cfg.Resolve(config.Flags{
		GridCols: *cols,
		GridRows: *rows,
		Workers:  *workers,
		Format:   *format,
		Verbose:  *verbose,
	})
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 2
	}

	names, err := batch.Collect(inDir)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	if len(names) == 0 {
		fmt.Fprintln(stdout, "No images to fill.")
		return 0
	}
	if err := os.MkdirAll(outDir, 0755); err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}

	fmt.Fprintf(stdout, "Images: %d, Workers: %d\n", len(names), cfg.Workers)
	fmt.Fprintf(stdout, "Output: %s (%s)\n", outDir, cfg.Format)
	fmt.Fprintln(stdout, "------------------------------------------------------------")

	start := time.Now()

	results := batch.Run(ctx, batch.Config{
		InputDir:    inDir,
		OutputDir:   outDir,
		Format:      cfg.Format,
		Workers:     cfg.Workers,
		FillOptions: cfg.FillOptions(),
		Logger:      cfg.Logger(stderr),
		Progress:    stdout,
	}, names)

	elapsed := time.Since(start)
	fmt.Fprintln(stdout, "------------------------------------------------------------")
	fmt.Fprintf(stdout, "Done in %.1fs\n", elapsed.Seconds())

	// Count results
	var failed []batch.Result
	filled := 0
	for _, r := range results {
		if r.Success {
			filled += r.Filled
		} else {
			failed = append(failed, r)
		}
	}
	fmt.Fprintf(stdout, "Filled: %d/%d images, %d pixels\n", len(results)-len(failed), len(results), filled)

	if len(failed) > 0 {
		fmt.Fprintf(stdout, "\nFailed (%d):\n", len(failed))
		limit := min(len(failed), 20)
		for _, r := range failed[:limit] {
			fmt.Fprintf(stdout, "  %s: %s\n", r.Name, r.Error)
		}
	}

	// Write manifest
	manifestPath := filepath.Join(outDir, "manifest.json")
	if err := batch.WriteManifest(manifestPath, results); err != nil {
		fmt.Fprintf(stderr, "Warning: manifest write failed: %v\n", err)
	} else {
		fmt.Fprintf(stdout, "Manifest: %s\n", manifestPath)
	}

	if len(failed) > 0 {
		return 1
	}
	return 0
}

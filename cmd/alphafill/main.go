package main

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"os"
	"os/signal"
	"time"

	"alpha-fill/internal/config"
	"alpha-fill/internal/fill"
	"alpha-fill/internal/imageio"
)

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	code := run(ctx, os.Args[1:], os.Stdout, os.Stderr)
	stop()
	os.Exit(code)
}

func run(ctx context.Context, args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("alphafill", flag.ContinueOnError)
	fs.SetOutput(stderr)

	// CLI flags
	configFile := fs.String("config", "", "Path to config.json file")
	cols := fs.Int("cols", 0, "Scan grid columns (default: 2)")
	rows := fs.Int("rows", 0, "Scan grid rows (default: 2)")
	maxIter := fs.Int("max-iterations", 0, "Stop with an error after N scans (default: unlimited)")
	verbose := fs.Bool("v", false, "Enable debug logging")
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: alphafill [flags] <input-path> <output-path>")
		fs.PrintDefaults()
	}

	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() != 2 {
		fmt.Fprintf(stderr, "Error: expected 2 arguments, got %d\n", fs.NArg())
		fs.Usage()
		return 2
	}
	inPath, outPath := fs.Arg(0), fs.Arg(1)

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
		GridCols:      *cols,
		GridRows:      *rows,
		MaxIterations: *maxIter,
		Verbose:       *verbose,
	})
	logger := cfg.Logger(stderr)

	buf, err := imageio.Load(inPath)
	if err != nil {
		var fe *imageio.FormatError
		if errors.As(err, &fe) {
			fmt.Fprintf(stderr, "Error: unsupported input: %v\n", err)
		} else {
			fmt.Fprintf(stderr, "Error reading input: %v\n", err)
		}
		return 1
	}

	stats := buf.Stats()
	logger.Debug("loaded", "path", inPath, "width", buf.Width, "height", buf.Height,
		"opaque", stats.Opaque, "fillable", stats.Fillable())

	start := time.Now()
	opts := append(cfg.FillOptions(),
		fill.WithLogger(logger),
		fill.WithProgress(func(it fill.Iteration) {
			fmt.Fprintf(stdout, "Len %d\n", it.Changes)
		}),
	)
	res, err := fill.NewFiller(buf, opts...).Run(ctx)
	if err != nil {
		fmt.Fprintf(stderr, "Error: %v\n", err)
		return 1
	}
	logger.Debug("filled", "iterations", res.Iterations, "pixels", res.Filled,
		"elapsed", time.Since(start))

	if err := imageio.Save(outPath, buf); err != nil {
		fmt.Fprintf(stderr, "Error writing output: %v\n", err)
		return 1
	}
	return 0
}

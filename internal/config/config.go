package config

import (
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"os"
	"runtime"
	"slices"
	"strings"

	"alpha-fill/internal/fill"
	"alpha-fill/internal/imageio"
)

// Config holds fill and batch settings.
type Config struct {
	// Fill settings
	GridCols      int `json:"grid_cols"`
	GridRows      int `json:"grid_rows"`
	Capacity      int `json:"capacity"`
	MaxIterations int `json:"max_iterations"`

	// Batch settings
	Workers int    `json:"workers"`
	Format  string `json:"format"`

	Verbose bool `json:"verbose"`
}

// Load reads a JSON config file and returns Config.
// Fields not set in the file keep their zero values.
func Load(path string) (Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return Config{}, fmt.Errorf("config: read %s: %w", path, err)
	}

	var cfg Config
	if err := json.Unmarshal(data, &cfg); err != nil {
		return Config{}, fmt.Errorf("config: parse %s: %w", path, err)
	}

	return cfg, nil
}

// Resolve applies CLI overrides and fills in defaults.
// CLI flags take priority when non-zero/non-empty.
func (c *Config) Resolve(flags Flags) {
	// CLI flags override config file
	if flags.GridCols > 0 {
		c.GridCols = flags.GridCols
	}
	if flags.GridRows > 0 {
		c.GridRows = flags.GridRows
	}
	if flags.MaxIterations > 0 {
		c.MaxIterations = flags.MaxIterations
	}
	if flags.Workers > 0 {
		c.Workers = flags.Workers
	}
	if flags.Format != "" {
		c.Format = flags.Format
	}
	if flags.Verbose {
		c.Verbose = true
	}

	// Defaults
	if c.GridCols <= 0 {
		c.GridCols = fill.Quadrants.Cols
	}
	if c.GridRows <= 0 {
		c.GridRows = fill.Quadrants.Rows
	}
	if c.Capacity <= 0 {
		c.Capacity = fill.DefaultCapacity
	}
	if c.MaxIterations < 0 {
		c.MaxIterations = 0
	}
	if c.Workers <= 0 {
		c.Workers = runtime.NumCPU()
	}
	if c.Format == "" {
		c.Format = ".png"
	}
	c.Format = strings.ToLower(c.Format)
	if !strings.HasPrefix(c.Format, ".") {
		c.Format = "." + c.Format
	}
}

// Validate checks settings that have no sensible default.
func (c *Config) Validate() error {
	if !slices.Contains(imageio.Writable(), c.Format) {
		return fmt.Errorf("config: unsupported output format %q (want one of %s)",
			c.Format, strings.Join(imageio.Writable(), ", "))
	}
	return nil
}

// Flags holds CLI flag values that override config file settings.
type Flags struct {
	GridCols      int
	GridRows      int
	MaxIterations int
	Workers       int
	Format        string
	Verbose       bool
}

// FillOptions translates the settings into fill.Filler options.
func (c *Config) FillOptions() []fill.Option {
	return []fill.Option{
		fill.WithGrid(fill.Grid{Cols: c.GridCols, Rows: c.GridRows}),
		fill.WithCapacity(c.Capacity),
		fill.WithMaxIterations(c.MaxIterations),
	}
}

// Logger returns a text logger on w; Verbose enables debug records.
func (c *Config) Logger(w io.Writer) *slog.Logger {
	level := slog.LevelInfo
	if c.Verbose {
		level = slog.LevelDebug
	}
	return slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
}

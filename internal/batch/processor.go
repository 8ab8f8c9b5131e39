package batch

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"
	"sync/atomic"
	"time"

	"alpha-fill/internal/fill"
	"alpha-fill/internal/imageio"
)

// Config holds all shared settings for a batch run.
type Config struct {
	InputDir    string
	OutputDir   string
	Format      string // output extension, e.g. ".png"
	Workers     int
	FillOptions []fill.Option
	Logger      *slog.Logger
	Progress    io.Writer // periodic progress lines; nil disables
}

// Result holds the outcome of processing one file.
type Result struct {
	Name       string
	Output     string
	Iterations int
	Filled     int
	Success    bool
	Error      string
}

// Collect lists the decodable images directly inside dir, sorted by name.
func Collect(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("batch: read %s: %w", dir, err)
	}
	var names []string
	for _, e := range entries {
		if e.IsDir() || strings.HasPrefix(e.Name(), ".") || !imageio.IsImage(e.Name()) {
			continue
		}
		names = append(names, e.Name())
	}
	sort.Strings(names)
	return names, nil
}

// Run fills all files using a worker pool. Results are in input order.
func Run(ctx context.Context, cfg Config, names []string) []Result {
	total := len(names)
	results := make([]Result, total)
	var processed atomic.Int64

	if cfg.Logger == nil {
		cfg.Logger = slog.New(slog.DiscardHandler)
	}
	if cfg.Workers <= 0 {
		cfg.Workers = 1
	}

	start := time.Now()

	// Progress reporter
	done := make(chan struct{})
	if cfg.Progress != nil {
		go func() {
			ticker := time.NewTicker(2 * time.Second)
			defer ticker.Stop()
			for {
				select {
				case <-done:
					return
				case <-ticker.C:
					p := processed.Load()
					if p > 0 {
						elapsed := time.Since(start).Seconds()
						rate := float64(p) / elapsed
						fmt.Fprintf(cfg.Progress, "  [%d/%d] %.1f images/sec\n", p, total, rate)
					}
				}
			}
		}()
	}

	// Worker pool
	nameChan := make(chan int, cfg.Workers*2)
	var wg sync.WaitGroup

	for w := 0; w < cfg.Workers; w++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for idx := range nameChan {
				results[idx] = processFile(ctx, cfg, names[idx])
				processed.Add(1)
			}
		}()
	}

	// Inputs sharing a stem would overwrite each other's output.
	outputs := make(map[string]int, total)
	for _, name := range names {
		outputs[outputName(name, cfg.Format)]++
	}

	// Send work
	for i, name := range names {
		if out := outputName(name, cfg.Format); outputs[out] > 1 {
			results[i] = Result{Name: name, Error: fmt.Sprintf("duplicate output name %s", out)}
			cfg.Logger.Warn("fill skipped", "file", name, "output", out)
			processed.Add(1)
			continue
		}
		nameChan <- i
	}
	close(nameChan)

	wg.Wait()
	close(done)

	return results
}

func processFile(ctx context.Context, cfg Config, name string) Result {
	res := Result{Name: name}
	fail := func(err error) Result {
		res.Error = err.Error()
		cfg.Logger.Warn("fill failed", "file", name, "err", err)
		return res
	}

	if err := ctx.Err(); err != nil {
		return fail(err)
	}

	buf, err := imageio.Load(filepath.Join(cfg.InputDir, name))
	if err != nil {
		return fail(err)
	}

	opts := append(copyOptions(cfg.FillOptions), fill.WithLogger(cfg.Logger.With("file", name)))
	fr, err := fill.NewFiller(buf, opts...).Run(ctx)
	res.Iterations, res.Filled = fr.Iterations, fr.Filled
	if err != nil {
		return fail(err)
	}

	res.Output = outputName(name, cfg.Format)
	if err := imageio.Save(filepath.Join(cfg.OutputDir, res.Output), buf); err != nil {
		res.Output = ""
		return fail(err)
	}

	res.Success = true
	return res
}

// outputName replaces the extension of name with format.
func outputName(name, format string) string {
	return strings.TrimSuffix(name, filepath.Ext(name)) + format
}

// copyOptions returns a private copy of opts with room for one more option.
func copyOptions(opts []fill.Option) []fill.Option {
	return append(make([]fill.Option, 0, len(opts)+1), opts...)
}

package fill

import (
	"context"
	"errors"
	"fmt"
	"image"
	"log/slog"
	"sync"

	"alpha-fill/internal/pixbuf"
)

// DefaultCapacity pre-sizes each region's change list on the first scan.
const DefaultCapacity = 256

// ErrIterationLimit is returned when the loop hits its iteration cap before converging.
var ErrIterationLimit = errors.New("fill: iteration limit reached")

// Iteration describes one scan of the convergence loop.
type Iteration struct {
	Index   int // 1-based
	Changes int
}

// Result summarises a completed run.
type Result struct {
	Iterations int
	Filled     int
}

// Filler runs the scan/commit cycle over one buffer.
//
// Scan workers share a read lock on the buffer and commit takes the write
// lock, so reads of one iteration never overlap writes.
type Filler struct {
	mu      sync.RWMutex
	buf     *pixbuf.Buffer
	regions []image.Rectangle
	hints   []int

	grid     Grid
	capacity int
	maxIter  int
	logger   *slog.Logger
	progress func(Iteration)
}

// Option configures a Filler.
type Option func(*Filler)

// WithGrid sets the scan partition. The default is Quadrants.
func WithGrid(g Grid) Option {
	return func(f *Filler) { f.grid = g }
}

// WithCapacity sets the initial per-region change list capacity.
func WithCapacity(n int) Option {
	return func(f *Filler) {
		if n > 0 {
			f.capacity = n
		}
	}
}

// WithMaxIterations caps the number of scans. Zero means no cap.
func WithMaxIterations(n int) Option {
	return func(f *Filler) { f.maxIter = n }
}

// WithLogger sets the logger. Pass nil to discard.
func WithLogger(l *slog.Logger) Option {
	return func(f *Filler) { f.logger = l }
}

// WithProgress registers a callback invoked once per scan, including the final empty one.
func WithProgress(fn func(Iteration)) Option {
	return func(f *Filler) { f.progress = fn }
}

// NewFiller prepares buf for filling. buf is modified in place by Run.
func NewFiller(buf *pixbuf.Buffer, opts ...Option) *Filler {
	f := &Filler{
		buf:      buf,
		grid:     Quadrants,
		capacity: DefaultCapacity,
	}
	for _, opt := range opts {
		opt(f)
	}
	if f.logger == nil {
		f.logger = slog.New(slog.DiscardHandler)
	}

	f.regions = f.grid.Partition(buf.Width, buf.Height)
	f.hints = make([]int, len(f.regions))
	for i := range f.hints {
		f.hints[i] = f.capacity
	}
	return f
}

// Regions returns the scan partition in use.
func (f *Filler) Regions() []image.Rectangle {
	return f.regions
}

// Run repeats scan and commit until a scan proposes no changes.
// ctx is checked between iterations.
func (f *Filler) Run(ctx context.Context) (Result, error) {
	var res Result
	f.logger.Debug("fill start",
		"width", f.buf.Width, "height", f.buf.Height, "regions", len(f.regions))

	for {
		if err := ctx.Err(); err != nil {
			return res, fmt.Errorf("fill: after %d iterations: %w", res.Iterations, err)
		}
		if f.maxIter > 0 && res.Iterations >= f.maxIter {
			return res, fmt.Errorf("%w (%d)", ErrIterationLimit, f.maxIter)
		}

		lists := f.Scan()
		total := 0
		for _, l := range lists {
			total += len(l)
		}
		res.Iterations++

		f.logger.Debug("scan", "iteration", res.Iterations, "changes", total)
		if f.progress != nil {
			f.progress(Iteration{Index: res.Iterations, Changes: total})
		}

		if total == 0 {
			break
		}
		res.Filled += f.Commit(lists)
	}

	f.logger.Info("fill converged", "iterations", res.Iterations, "filled", res.Filled)
	return res, nil
}

// Scan runs one read-only pass, one goroutine per region, and returns the
// proposed changes in region order. Size hints are updated for the next scan.
func (f *Filler) Scan() [][]Change {
	lists := make([][]Change, len(f.regions))

	var wg sync.WaitGroup
	for i, r := range f.regions {
		wg.Add(1)
		go func() {
			defer wg.Done()
			f.mu.RLock()
			defer f.mu.RUnlock()
			lists[i] = ScanRegion(f.buf, r, f.hints[i])
		}()
	}
	wg.Wait()

	for i, l := range lists {
		f.hints[i] = len(l)
	}
	return lists
}

// Commit applies lists under the write lock.
func (f *Filler) Commit(lists [][]Change) int {
	f.mu.Lock()
	defer f.mu.Unlock()
	return Commit(f.buf, lists)
}

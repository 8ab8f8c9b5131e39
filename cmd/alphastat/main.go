package main

import (
	"flag"
	"fmt"
	"io"
	"os"

	"alpha-fill/internal/fill"
	"alpha-fill/internal/imageio"
	"alpha-fill/internal/pixbuf"
)

func main() {
	os.Exit(run(os.Args[1:], os.Stdout, os.Stderr))
}

func run(args []string, stdout, stderr io.Writer) int {
	fs := flag.NewFlagSet("alphastat", flag.ContinueOnError)
	fs.SetOutput(stderr)
	fs.Usage = func() {
		fmt.Fprintln(stderr, "Usage: alphastat <image>...")
	}
	if err := fs.Parse(args); err != nil {
		return 2
	}
	if fs.NArg() == 0 {
		fs.Usage()
		return 2
	}

	code := 0
	for _, path := range fs.Args() {
		buf, err := imageio.Load(path)
		if err != nil {
			fmt.Fprintf(stderr, "%s: %v\n", path, err)
			code = 1
			continue
		}
		report(stdout, path, buf)
	}
	return code
}

func report(w io.Writer, name string, buf *pixbuf.Buffer) {
	s := buf.Stats()
	fmt.Fprintf(w, "%s: %dx%d, opaque=%d/%d (%.0f%%) partial=%d transparent=%d\n",
		name, buf.Width, buf.Height, s.Opaque, s.Total,
		100*float64(s.Opaque)/float64(s.Total), s.Partial, s.Transparent)

	// Pixels the next scan would fill.
	next := 0
	for _, r := range fill.Quadrants.Partition(buf.Width, buf.Height) {
		next += len(fill.ScanRegion(buf, r, 0))
	}
	fmt.Fprintf(w, "  fillable now: %d\n", next)

	if holes := buf.Holes(); len(holes) > 0 {
		fmt.Fprintf(w, "  holes: %d, largest %d px\n", len(holes), holes[0])
	}
}

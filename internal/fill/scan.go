package fill

import (
	"image"

	"alpha-fill/internal/pixbuf"
)

// Change is a pixel write proposed by a scan and applied by Commit.
type Change struct {
	At    pixbuf.Point
	Color pixbuf.Color
}

// ScanRegion proposes changes for every non-opaque pixel in r, in row-major order.
// It only reads buf. Neighbours outside r are sampled as usual.
func ScanRegion(buf *pixbuf.Buffer, r image.Rectangle, capacity int) []Change {
	changes := make([]Change, 0, capacity)
	for y := r.Min.Y; y < r.Max.Y; y++ {
		for x := r.Min.X; x < r.Max.X; x++ {
			p := pixbuf.Point{X: x, Y: y}
			if buf.Opaque(p) {
				continue
			}
			if c, ok := Decide(Sample(buf, p)); ok {
				changes = append(changes, Change{At: p, Color: c})
			}
		}
	}
	return changes
}

// Commit applies every change list to buf and returns the number of writes.
// The caller must hold exclusive access.
func Commit(buf *pixbuf.Buffer, lists [][]Change) int {
	n := 0
	for _, changes := range lists {
		for _, c := range changes {
			buf.Set(c.At, c.Color)
		}
		n += len(changes)
	}
	return n
}

package fill

import "image"

// Grid splits the image into Cols×Rows scan regions.
type Grid struct {
	Cols int
	Rows int
}

// Quadrants is the default 2×2 split.
var Quadrants = Grid{Cols: 2, Rows: 2}

// Partition returns the regions covering [0,w)×[0,h), row by row, left to right.
// Split points are i*w/Cols so the regions tile the frame exactly for any size.
// Cols and Rows are clamped to [1, extent] so no region is empty; images
// narrower or shorter than the grid get fewer regions and scan workers.
func (g Grid) Partition(w, h int) []image.Rectangle {
	cols := clamp(g.Cols, 1, w)
	rows := clamp(g.Rows, 1, h)

	regions := make([]image.Rectangle, 0, cols*rows)
	for j := 0; j < rows; j++ {
		y0, y1 := j*h/rows, (j+1)*h/rows
		for i := 0; i < cols; i++ {
			x0, x1 := i*w/cols, (i+1)*w/cols
			regions = append(regions, image.Rect(x0, y0, x1, y1))
		}
	}
	return regions
}

func clamp(v, lo, hi int) int {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

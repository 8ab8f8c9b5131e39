package fill

import "alpha-fill/internal/pixbuf"

// Center is the kernel index of the sampled pixel itself.
const Center = 4

// Slot is one kernel entry. OK is false when the neighbour lies outside the frame.
type Slot struct {
	pixbuf.Wide
	OK bool
}

// Kernel is the 3×3 neighbourhood of a pixel, indexed (dx+1) + (dy+1)*3.
type Kernel [9]Slot

// Sample reads the 3×3 neighbourhood around p, top row first.
func Sample(buf *pixbuf.Buffer, p pixbuf.Point) Kernel {
	var k Kernel
	idx := 0
	for dy := -1; dy <= 1; dy++ {
		for dx := -1; dx <= 1; dx++ {
			q := p.Add(dx, dy)
			if buf.In(q) {
				k[idx] = Slot{Wide: buf.At(q).Wide(), OK: true}
			}
			idx++
		}
	}
	return k
}

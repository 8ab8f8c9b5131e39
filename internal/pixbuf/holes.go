package pixbuf

import "sort"

// Holes labels 8-connected groups of non-opaque pixels and returns their
// sizes, largest first.
func (b *Buffer) Holes() []int {
	w, h := b.Width, b.Height

	labels := make([]int, w*h)
	for i := range labels {
		labels[i] = -1
	}
	var sizes []int

	dx := [8]int{-1, 0, 1, -1, 1, -1, 0, 1}
	dy := [8]int{-1, -1, -1, 0, 0, 1, 1, 1}
	queue := make([]int, 0, 1024)

	for idx := range labels {
		if b.Pix[idx*4+3] == 255 || labels[idx] >= 0 {
			continue
		}

		// BFS from this pixel
		id := len(sizes)
		queue = append(queue[:0], idx)
		labels[idx] = id
		size := 0

		for len(queue) > 0 {
			curr := queue[0]
			queue = queue[1:]
			size++

			cy := curr / w
			cx := curr % w
			for d := 0; d < 8; d++ {
				nx := cx + dx[d]
				ny := cy + dy[d]
				if nx < 0 || nx >= w || ny < 0 || ny >= h {
					continue
				}
				ni := ny*w + nx
				if b.Pix[ni*4+3] != 255 && labels[ni] < 0 {
					labels[ni] = id
					queue = append(queue, ni)
				}
			}
		}
		sizes = append(sizes, size)
	}

	sort.Sort(sort.Reverse(sort.IntSlice(sizes)))
	return sizes
}

package fill

import "alpha-fill/internal/pixbuf"

// Threshold is the minimum number of opaque neighbours needed to fill a pixel.
const Threshold = 3

// Decide averages the opaque neighbours in k. It returns false when fewer than
// Threshold of them are opaque. Channels use truncating integer division and
// the result is always fully opaque.
//
// The caller is responsible for skipping opaque centres.
func Decide(k Kernel) (pixbuf.Color, bool) {
	var r, g, b, hits uint16
	for i, s := range k {
		if i == Center || !s.OK || s.A != 255 {
			continue
		}
		r += s.R
		g += s.G
		b += s.B
		hits++
	}
	if hits < Threshold {
		return pixbuf.Color{}, false
	}
	return pixbuf.Color{
		R: uint8(r / hits),
		G: uint8(g / hits),
		B: uint8(b / hits),
		A: 255,
	}, true
}

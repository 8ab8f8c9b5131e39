package pixbuf

import (
	"fmt"
	"image"
)

// Point is a pixel coordinate. It is signed so neighbour offsets can leave the frame.
type Point struct {
	X, Y int
}

// Add returns p shifted by (dx, dy).
func (p Point) Add(dx, dy int) Point {
	return Point{p.X + dx, p.Y + dy}
}

// Color is a non-premultiplied 8-bit RGBA value.
type Color struct {
	R, G, B, A uint8
}

// Opaque reports whether the alpha channel is at its maximum.
func (c Color) Opaque() bool { return c.A == 255 }

// Wide returns c widened for accumulation.
func (c Color) Wide() Wide {
	return Wide{uint16(c.R), uint16(c.G), uint16(c.B), uint16(c.A)}
}

// Wide is an accumulator colour. 16 bits hold the sum of eight 8-bit channels.
type Wide struct {
	R, G, B, A uint16
}

// Buffer holds the image as a flat slice for cache locality.
type Buffer struct {
	Width  int
	Height int
	Pix    []uint8 // RGBA interleaved, row-major, len = W*H*4
}

// New allocates a zeroed (fully transparent) buffer.
func New(w, h int) *Buffer {
	if w <= 0 || h <= 0 {
		panic(fmt.Sprintf("pixbuf: invalid size %dx%d", w, h))
	}
	return &Buffer{
		Width:  w,
		Height: h,
		Pix:    make([]uint8, w*h*4),
	}
}

// FromNRGBA copies img into a tightly packed buffer with origin (0, 0).
func FromNRGBA(img *image.NRGBA) *Buffer {
	b := img.Bounds()
	buf := New(b.Dx(), b.Dy())
	rowLen := buf.Width * 4
	for y := 0; y < buf.Height; y++ {
		srcOff := img.PixOffset(b.Min.X, b.Min.Y+y)
		copy(buf.Pix[y*rowLen:(y+1)*rowLen], img.Pix[srcOff:srcOff+rowLen])
	}
	return buf
}

// NRGBA returns an image view sharing the buffer's storage.
func (b *Buffer) NRGBA() *image.NRGBA {
	return &image.NRGBA{
		Pix:    b.Pix,
		Stride: b.Width * 4,
		Rect:   image.Rect(0, 0, b.Width, b.Height),
	}
}

// Bounds returns the buffer rectangle.
func (b *Buffer) Bounds() image.Rectangle {
	return image.Rect(0, 0, b.Width, b.Height)
}

// In reports whether p lies inside the frame.
func (b *Buffer) In(p Point) bool {
	return p.X >= 0 && p.Y >= 0 && p.X < b.Width && p.Y < b.Height
}

// Offset returns the index of p's red channel in Pix.
// Out-of-frame coordinates are a caller bug and panic.
func (b *Buffer) Offset(p Point) int {
	if !b.In(p) {
		panic(fmt.Sprintf("pixbuf: %v out of bounds %dx%d", p, b.Width, b.Height))
	}
	return (p.Y*b.Width + p.X) * 4
}

// At returns the colour at p.
func (b *Buffer) At(p Point) Color {
	i := b.Offset(p)
	return Color{b.Pix[i], b.Pix[i+1], b.Pix[i+2], b.Pix[i+3]}
}

// Set writes c at p. Callers must hold exclusive access to the buffer.
func (b *Buffer) Set(p Point, c Color) {
	i := b.Offset(p)
	b.Pix[i] = c.R
	b.Pix[i+1] = c.G
	b.Pix[i+2] = c.B
	b.Pix[i+3] = c.A
}

// Opaque reports whether the pixel at p has alpha 255.
func (b *Buffer) Opaque(p Point) bool {
	return b.Pix[b.Offset(p)+3] == 255
}

// Clone returns a deep copy.
func (b *Buffer) Clone() *Buffer {
	c := &Buffer{Width: b.Width, Height: b.Height, Pix: make([]uint8, len(b.Pix))}
	copy(c.Pix, b.Pix)
	return c
}

package pixbuf

// Stats counts pixels by alpha class.
type Stats struct {
	Total       int
	Opaque      int // alpha == 255
	Partial     int // 0 < alpha < 255
	Transparent int // alpha == 0
}

// Fillable is the number of pixels eligible for filling (any alpha below 255).
func (s Stats) Fillable() int { return s.Partial + s.Transparent }

// Stats walks the alpha channel once.
func (b *Buffer) Stats() Stats {
	s := Stats{Total: b.Width * b.Height}
	for i := 3; i < len(b.Pix); i += 4 {
		switch a := b.Pix[i]; {
		case a == 255:
			s.Opaque++
		case a == 0:
			s.Transparent++
		default:
			s.Partial++
		}
	}
	return s
}

package imageio

import (
	"bufio"
	"fmt"
	"image"
	"io"
	"os"

	"alpha-fill/internal/pixbuf"

	"golang.org/x/image/draw"
)

// Load reads an image file into an RGBA pixel buffer.
// Open and read failures are returned wrapped. Empty files, unknown
// containers, decode failures and colour layouts toNRGBA rejects yield a
// *FormatError.
func Load(path string) (*pixbuf.Buffer, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("imageio: open: %w", err)
	}
	defer f.Close()

	r := bufio.NewReader(f)
	header, err := r.Peek(16)
	if len(header) == 0 {
		if err == io.EOF {
			return nil, &FormatError{Path: path, Reason: "empty file"}
		}
		return nil, fmt.Errorf("imageio: read %s: %w", path, err)
	}

	ft := sniff(header, path)
	if ft == nil {
		return nil, &FormatError{Path: path, Reason: "unrecognised image format"}
	}

	img, err := ft.decode(r)
	if err != nil {
		return nil, &FormatError{Path: path, Format: ft.name, Reason: "decode", Err: err}
	}

	nrgba, reason := toNRGBA(img)
	if nrgba == nil {
		return nil, &FormatError{Path: path, Format: ft.name, Reason: reason}
	}
	if nrgba.Rect.Empty() {
		return nil, &FormatError{Path: path, Format: ft.name, Reason: "zero-sized image"}
	}
	return pixbuf.FromNRGBA(nrgba), nil
}

// toNRGBA converts colour images to 8-bit non-premultiplied RGBA. Types
// without a stored alpha (RGBA from truecolour PNG, opaque palettes) come out
// fully opaque. Grey+alpha PNGs decode to NRGBA and are accepted as-is.
// Grey, YCbCr and CMYK layouts return nil and a reason.
func toNRGBA(src image.Image) (*image.NRGBA, string) {
	switch s := src.(type) {
	case *image.NRGBA:
		return s, ""
	case *image.NRGBA64, *image.RGBA, *image.RGBA64, *image.NYCbCrA, *image.Paletted:
		// 16-bit sources are truncated to their high byte.
	default:
		return nil, fmt.Sprintf("%T has no RGBA representation", src)
	}

	b := src.Bounds()
	dst := image.NewNRGBA(image.Rect(0, 0, b.Dx(), b.Dy()))
	draw.Draw(dst, dst.Bounds(), src, b.Min, draw.Src)
	return dst, ""
}

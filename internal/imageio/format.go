package imageio

import (
	"image"
	"image/gif"
	"image/jpeg"
	"image/png"
	"io"
	"path/filepath"
	"strings"

	"github.com/HugoSmits86/nativewebp"
	"github.com/ftrvxmtrx/tga"
	"golang.org/x/image/bmp"
	"golang.org/x/image/tiff"
	"golang.org/x/image/webp"
)

// format describes one image container. decode or encode may be nil when the
// container is read-only or cannot carry the result.
type format struct {
	name   string
	exts   []string
	magic  []string // '?' matches any byte
	decode func(io.Reader) (image.Image, error)
	encode func(io.Writer, image.Image) error
}

// Formats are sniffed by magic in table order; TGA has no signature and is
// only chosen by extension.
var formats = []format{
	{
		name:   "png",
		exts:   []string{".png"},
		magic:  []string{"\x89PNG\r\n\x1a\n"},
		decode: png.Decode,
		encode: png.Encode,
	},
	{
		name:   "webp",
		exts:   []string{".webp"},
		magic:  []string{"RIFF????WEBPVP8"},
		decode: webp.Decode,
		encode: func(w io.Writer, m image.Image) error {
			// nativewebp writes lossless VP8L.
			return nativewebp.Encode(w, m, nil)
		},
	},
	{
		name:   "tiff",
		exts:   []string{".tif", ".tiff"},
		magic:  []string{"II*\x00", "MM\x00*"},
		decode: tiff.Decode,
		encode: func(w io.Writer, m image.Image) error {
			return tiff.Encode(w, m, &tiff.Options{Compression: tiff.Deflate})
		},
	},
	{
		name:   "bmp",
		exts:   []string{".bmp"},
		magic:  []string{"BM"},
		decode: bmp.Decode,
		encode: bmp.Encode,
	},
	{
		name:   "gif",
		exts:   []string{".gif"},
		magic:  []string{"GIF87a", "GIF89a"},
		decode: gif.Decode,
	},
	{
		name:   "jpeg",
		exts:   []string{".jpg", ".jpeg"},
		magic:  []string{"\xff\xd8"},
		decode: jpeg.Decode,
	},
	{
		name:   "tga",
		exts:   []string{".tga"},
		decode: tga.Decode,
		encode: tga.Encode,
	},
}

// sniff picks a decoder from the leading bytes, falling back to the extension.
func sniff(header []byte, path string) *format {
	for i := range formats {
		for _, m := range formats[i].magic {
			if match(m, header) {
				return &formats[i]
			}
		}
	}
	return byExt(path)
}

func byExt(path string) *format {
	ext := strings.ToLower(filepath.Ext(path))
	for i := range formats {
		for _, e := range formats[i].exts {
			if e == ext {
				return &formats[i]
			}
		}
	}
	return nil
}

func match(magic string, b []byte) bool {
	if len(magic) > len(b) {
		return false
	}
	for i, c := range []byte(magic) {
		if c != '?' && c != b[i] {
			return false
		}
	}
	return true
}

// Writable lists the output extensions Save understands.
func Writable() []string {
	var exts []string
	for _, f := range formats {
		if f.encode != nil {
			exts = append(exts, f.exts...)
		}
	}
	return exts
}

// IsImage reports whether path has an extension Load can decode.
func IsImage(path string) bool {
	return byExt(path) != nil
}


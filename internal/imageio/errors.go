package imageio

import (
	"errors"
	"fmt"
)

// ErrUnsupportedExt is returned by Save for an output extension with no encoder.
var ErrUnsupportedExt = errors.New("imageio: unsupported output extension")

// FormatError reports an input that could not be decoded or has no 8-bit RGBA
// representation.
type FormatError struct {
	Path   string
	Format string // empty when the container was not recognised
	Reason string
	Err    error
}

func (e *FormatError) Error() string {
	msg := fmt.Sprintf("imageio: %s: %s", e.Path, e.Reason)
	if e.Format != "" {
		msg = fmt.Sprintf("imageio: %s (%s): %s", e.Path, e.Format, e.Reason)
	}
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *FormatError) Unwrap() error { return e.Err }

package imageio

import (
	"bufio"
	"fmt"
	"os"
	"path/filepath"

	"alpha-fill/internal/pixbuf"
)

// Save encodes buf to path, choosing the container by extension.
// The file is written to a temporary sibling and renamed into place, so a
// failed save never leaves a partial file at path.
func Save(path string, buf *pixbuf.Buffer) (err error) {
	ft := byExt(path)
	if ft == nil || ft.encode == nil {
		return fmt.Errorf("%w: %q", ErrUnsupportedExt, filepath.Ext(path))
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("imageio: create %s: %w", path, err)
	}
	defer func() {
		if err != nil {
			tmp.Close()
			os.Remove(tmp.Name())
		}
	}()

	w := bufio.NewWriter(tmp)
	if err := ft.encode(w, buf.NRGBA()); err != nil {
		return fmt.Errorf("imageio: encode %s as %s: %w", path, ft.name, err)
	}
	if err := w.Flush(); err != nil {
		return fmt.Errorf("imageio: write %s: %w", path, err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("imageio: write %s: %w", path, err)
	}
	if err := os.Chmod(tmp.Name(), 0644); err != nil {
		return fmt.Errorf("imageio: chmod %s: %w", path, err)
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return fmt.Errorf("imageio: rename %s: %w", path, err)
	}
	return nil
}

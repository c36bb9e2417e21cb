package picklable

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"modelpack/internal/common/fsutil"
)

// Saver is a native handle that can persist itself to a filesystem path.
type Saver interface {
	SaveModel(path string) error
}

// defaultFilename is the name of the single file inside each scoped temp dir.
const defaultFilename = "model.bin"

// tempBase is the parent of scoped temp dirs; empty means os.TempDir().
var tempBase string

// SetTempDir sets the parent directory for scoped temp dirs. Call it before
// any Capture or Load runs.
func SetTempDir(dir string) { tempBase = dir }

// Codec moves a native handle to and from bytes using the handle's own
// path-based persistence. Load is the library's load-from-path routine.
type Codec[H Saver] struct {
	Filename string
	Load     func(path string) (H, error)
}

func (c Codec[H]) filename() string {
	if c.Filename == "" {
		return defaultFilename
	}
	return c.Filename
}

// Capture saves h into a fresh temp dir and returns the file contents. The
// dir is removed before Capture returns. h is not modified.
func (c Codec[H]) Capture(h H) ([]byte, error) {
	var out []byte
	err := fsutil.WithTempDir(tempBase, "modelpack-capture-*", func(dir string) error {
		p := filepath.Join(dir, c.filename())
		if err := h.SaveModel(p); err != nil {
			return err
		}
		b, err := os.ReadFile(p)
		if err != nil {
			return err
		}
		out = b
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

// Restore builds a fresh handle from src.
//
// A Path is loaded directly, or yields a NotFound error without touching the
// filesystem when nothing exists there. Bytes are written to a fresh temp dir
// and loaded from there; the dir is removed before Restore returns. Errors
// from Load are returned unmodified.
func (c Codec[H]) Restore(src Source) (H, error) {
	var zero H
	switch s := src.(type) {
	case Path:
		p := string(s)
		if p == "" || !fsutil.PathExists(p) {
			return zero, ErrNotFound(p)
		}
		return c.Load(p)
	case Bytes:
		var (
			h      H
			loaded bool
		)
		err := fsutil.WithTempDir(tempBase, "modelpack-restore-*", func(dir string) error {
			p := filepath.Join(dir, c.filename())
			if err := os.WriteFile(p, s, 0o600); err != nil {
				return err
			}
			var err error
			h, err = c.Restore(Path(p))
			loaded = err == nil
			return err
		})
		if err != nil {
			// a load can succeed before the dir removal fails
			if loaded {
				release(h)
			}
			return zero, err
		}
		return h, nil
	case nil:
		return zero, fmt.Errorf("%w: nil", ErrUnsupportedSource)
	default:
		return zero, fmt.Errorf("%w: %T", ErrUnsupportedSource, src)
	}
}

// release closes h when it holds native resources.
func release(h any) {
	if c, ok := h.(io.Closer); ok {
		_ = c.Close()
	}
}

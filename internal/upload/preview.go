package upload

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/google/uuid"
)

// Preview is a client-local resource derived from a selected file. It must be
// released on every path that clears the file, or it leaks.
type Preview interface {
	Path() string
	Release() error
}

// Previewer acquires a preview for a selected file.
type Previewer interface {
	Acquire(path string) (Preview, error)
}

// TempPreviewer keeps previews as copies under a scratch directory, so the
// draft holds a stable local snapshot even if the source file moves.
type TempPreviewer struct {
	dir string
}

func NewTempPreviewer(dir string) (*TempPreviewer, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, fmt.Errorf("creating preview directory: %w", err)
	}

	return &TempPreviewer{dir: dir}, nil
}

func (p *TempPreviewer) Acquire(path string) (Preview, error) {
	src, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("opening file: %w", err)
	}
	defer src.Close()

	target := filepath.Join(p.dir, uuid.NewString()+filepath.Ext(path))

	dst, err := os.Create(target)
	if err != nil {
		return nil, fmt.Errorf("creating preview: %w", err)
	}
	defer dst.Close()

	if _, err := io.Copy(dst, src); err != nil {
		_ = os.Remove(target)
		return nil, fmt.Errorf("copying preview: %w", err)
	}

	return &filePreview{path: target}, nil
}

type filePreview struct {
	path string
}

func (p *filePreview) Path() string { return p.path }

func (p *filePreview) Release() error {
	return os.Remove(p.path)
}

package source

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path"
	"strings"
)

// FileSource reads datasets from a directory tree. Paths are slash
// separated and may not escape the root.
type FileSource struct {
	root string
	fsys fs.FS
}

// NewFileSource creates a source rooted at dir.
func NewFileSource(dir string) (*FileSource, error) {
	info, err := os.Stat(dir)
	if err != nil {
		return nil, fmt.Errorf("results dir: %w", err)
	}
	if !info.IsDir() {
		return nil, fmt.Errorf("results dir %s is not a directory", dir)
	}
	return &FileSource{root: dir, fsys: os.DirFS(dir)}, nil
}

// Root returns the directory the source reads from.
func (s *FileSource) Root() string { return s.root }

// Kind implements Source.
func (s *FileSource) Kind() string { return KindFile }

// Fetch reads the dataset file.
func (s *FileSource) Fetch(ctx context.Context, ref DatasetRef) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	name := path.Clean(strings.TrimPrefix(ref.Path, "/"))
	if !fs.ValidPath(name) {
		return "", fmt.Errorf("invalid dataset path %q", ref.Path)
	}

	data, err := fs.ReadFile(s.fsys, name)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", fmt.Errorf("%s: %w", name, ErrNotFound)
		}
		return "", fmt.Errorf("read %s: %w", name, err)
	}
	return string(data), nil
}

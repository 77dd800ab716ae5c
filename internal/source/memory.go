package source

import (
	"context"
	"fmt"
	"sync"
)

// MemorySource serves datasets from an in-process map keyed by path.
type MemorySource struct {
	mu    sync.RWMutex
	files map[string]string
}

// NewMemorySource creates a source holding a copy of files.
func NewMemorySource(files map[string]string) *MemorySource {
	s := &MemorySource{files: make(map[string]string, len(files))}
	for p, content := range files {
		s.files[p] = content
	}
	return s
}

// Put stores or replaces the dataset at path.
func (s *MemorySource) Put(path, content string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.files[path] = content
}

// Kind implements Source.
func (s *MemorySource) Kind() string { return KindMemory }

// Fetch returns the stored dataset.
func (s *MemorySource) Fetch(ctx context.Context, ref DatasetRef) (string, error) {
	if err := ctx.Err(); err != nil {
		return "", err
	}

	s.mu.RLock()
	defer s.mu.RUnlock()

	content, ok := s.files[ref.Path]
	if !ok {
		return "", fmt.Errorf("%s: %w", ref.Path, ErrNotFound)
	}
	return content, nil
}

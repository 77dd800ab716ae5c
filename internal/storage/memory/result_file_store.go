package memory

import (
	"context"
	"sort"
	"sync"
	"time"

	"allocation-dashboard/internal/domain"
	"allocation-dashboard/internal/storage"
)

// ResultFileStore is an in-memory implementation of storage.ResultFileStore.
type ResultFileStore struct {
	mu   sync.RWMutex
	data map[string]*domain.ResultFile // keyed by path
	now  func() time.Time
}

// NewResultFileStore creates a new in-memory result file store.
func NewResultFileStore() *ResultFileStore {
	return &ResultFileStore{
		data: make(map[string]*domain.ResultFile),
		now:  time.Now,
	}
}

// Insert adds a new file. Returns ErrDuplicateKey if path exists.
func (s *ResultFileStore) Insert(_ context.Context, f *domain.ResultFile) error {
	if f == nil || f.Path == "" {
		return storage.ErrInvalidInput
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.data[f.Path]; exists {
		return storage.ErrDuplicateKey
	}

	fileCopy := *f
	fileCopy.CreatedAt = s.now().UnixMilli()
	s.data[f.Path] = &fileCopy
	return nil
}

// GetByPath retrieves a file by its path. Returns ErrNotFound if not exists.
func (s *ResultFileStore) GetByPath(_ context.Context, path string) (*domain.ResultFile, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	f, exists := s.data[path]
	if !exists {
		return nil, storage.ErrNotFound
	}

	fileCopy := *f
	return &fileCopy, nil
}

// ListPaths returns all stored paths, ordered ASC.
func (s *ResultFileStore) ListPaths(_ context.Context) ([]string, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	paths := make([]string, 0, len(s.data))
	for p := range s.data {
		paths = append(paths, p)
	}
	sort.Strings(paths)
	return paths, nil
}

var _ storage.ResultFileStore = (*ResultFileStore)(nil)

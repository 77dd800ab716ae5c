package postgres

import (
	"context"
	"fmt"
	"time"

	"allocation-dashboard/internal/domain"
	"allocation-dashboard/internal/storage"
)

// ResultFileStore implements storage.ResultFileStore on the result_files table.
type ResultFileStore struct {
	pool *Pool
}

// NewResultFileStore creates a new ResultFileStore.
func NewResultFileStore(pool *Pool) *ResultFileStore {
	return &ResultFileStore{pool: pool}
}

var _ storage.ResultFileStore = (*ResultFileStore)(nil)

// Insert adds a new file. Returns ErrDuplicateKey if path exists.
func (s *ResultFileStore) Insert(ctx context.Context, f *domain.ResultFile) error {
	if f == nil || f.Path == "" {
		return storage.ErrInvalidInput
	}

	_, err := s.pool.Exec(ctx,
		`INSERT INTO result_files (path, content) VALUES ($1, $2)`,
		f.Path, f.Content,
	)
	if err != nil {
		if isDuplicateKeyError(err) {
			return storage.ErrDuplicateKey
		}
		return fmt.Errorf("insert result file: %w", err)
	}
	return nil
}

// GetByPath retrieves a file by its path. Returns ErrNotFound if not exists.
func (s *ResultFileStore) GetByPath(ctx context.Context, path string) (*domain.ResultFile, error) {
	var (
		f         domain.ResultFile
		createdAt time.Time
	)
	err := s.pool.QueryRow(ctx,
		`SELECT path, content, created_at FROM result_files WHERE path = $1`,
		path,
	).Scan(&f.Path, &f.Content, &createdAt)
	if err != nil {
		if isNotFoundError(err) {
			return nil, storage.ErrNotFound
		}
		return nil, fmt.Errorf("get result file %s: %w", path, err)
	}
	f.CreatedAt = createdAt.UnixMilli()
	return &f, nil
}

// ListPaths returns all stored paths, ordered ASC.
func (s *ResultFileStore) ListPaths(ctx context.Context) ([]string, error) {
	rows, err := s.pool.Query(ctx, `SELECT path FROM result_files ORDER BY path ASC`)
	if err != nil {
		return nil, fmt.Errorf("list result files: %w", err)
	}
	defer rows.Close()

	var paths []string
	for rows.Next() {
		var p string
		if err := rows.Scan(&p); err != nil {
			return nil, fmt.Errorf("scan result file path: %w", err)
		}
		paths = append(paths, p)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate result files: %w", err)
	}
	return paths, nil
}

package storage

import (
	"context"

	"allocation-dashboard/internal/domain"
)

// ResultFileStore provides access to result_files storage.
type ResultFileStore interface {
	// Insert adds a new file. Returns ErrDuplicateKey if path exists.
	Insert(ctx context.Context, f *domain.ResultFile) error

	// GetByPath retrieves a file by its path. Returns ErrNotFound if not exists.
	GetByPath(ctx context.Context, path string) (*domain.ResultFile, error)

	// ListPaths returns all stored paths, ordered ASC.
	ListPaths(ctx context.Context) ([]string, error)
}

// AllocationRowStore provides access to allocation_rows storage.
type AllocationRowStore interface {
	// InsertBulk adds rows atomically. Fails entire batch on any duplicate
	// (period, strategy_tag, row_index).
	InsertBulk(ctx context.Context, rows []*domain.AllocationRow) error

	// GetByPeriodStrategy retrieves rows for one dataset, ordered by row_index ASC.
	// Returns ErrNotFound if the dataset has no rows.
	GetByPeriodStrategy(ctx context.Context, period, strategyTag string) ([]*domain.AllocationRow, error)
}

// Package source fetches the delimited text of one dataset: one strategy's
// allocation results for one period.
package source

import (
	"context"
	"errors"

	"allocation-dashboard/internal/domain"
)

// Source kinds accepted by Open.
const (
	KindFile       = "file"
	KindHTTP       = "http"
	KindPostgres   = "postgres"
	KindClickHouse = "clickhouse"
	KindMemory     = "memory"
)

// ErrNotFound is returned when a dataset does not exist at its resource path.
var ErrNotFound = errors.New("dataset not found")

// DatasetRef identifies one dataset. Path is the resolved resource path;
// database-backed sources may key on Period and Strategy instead.
type DatasetRef struct {
	Period   string
	Strategy domain.Strategy
	Path     string
}

// Source retrieves dataset text. Implementations must honour ctx
// cancellation and must not retry.
type Source interface {
	Fetch(ctx context.Context, ref DatasetRef) (string, error)
	Kind() string
}

// FetchError reports a failed dataset load. Its message names only the
// resource path; the cause is kept for errors.Is/As and logging.
type FetchError struct {
	Path string
	Err  error
}

func (e *FetchError) Error() string {
	return "failed to load: " + e.Path
}

func (e *FetchError) Unwrap() error {
	return e.Err
}

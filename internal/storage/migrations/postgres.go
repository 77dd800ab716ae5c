package migrations

import (
	"context"
	"fmt"

	"allocation-dashboard/internal/storage/postgres"
)

// RunPostgresMigrations applies every embedded PostgreSQL file in lexical
// order. Files are idempotent, so reruns are safe.
func RunPostgresMigrations(ctx context.Context, pool *postgres.Pool) error {
	files, err := load(PostgresFS, "postgres")
	if err != nil {
		return err
	}

	for _, m := range files {
		if _, err := pool.Exec(ctx, m.sql); err != nil {
			return fmt.Errorf("apply migration %s: %w", m.name, err)
		}
	}
	return nil
}

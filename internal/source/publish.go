package source

import (
	"context"
	"fmt"

	"allocation-dashboard/internal/domain"
	"allocation-dashboard/internal/storage"
	"allocation-dashboard/internal/table"
)

// Publisher stores fetched datasets into the database-backed stores so
// the postgres and clickhouse sources can serve them. Either store may be nil.
type Publisher struct {
	Files storage.ResultFileStore
	Rows  storage.AllocationRowStore
}

// Publish writes content as the raw file at ref.Path and as typed rows for
// (ref.Period, ref.Strategy). It returns the number of rows parsed.
func (p *Publisher) Publish(ctx context.Context, ref DatasetRef, content string) (int, error) {
	if p.Files != nil {
		err := p.Files.Insert(ctx, &domain.ResultFile{Path: ref.Path, Content: content})
		if err != nil {
			return 0, fmt.Errorf("publish file %s: %w", ref.Path, err)
		}
	}

	t := table.Parse(content)
	if p.Rows == nil || t.Len() == 0 {
		return t.Len(), nil
	}

	rows := make([]*domain.AllocationRow, len(t.Records))
	for i, r := range t.Records {
		rows[i] = domain.AllocationRowFromRecord(ref.Period, ref.Strategy.Tag, i, r)
	}
	if err := p.Rows.InsertBulk(ctx, rows); err != nil {
		return 0, fmt.Errorf("publish rows %s: %w", ref.Path, err)
	}
	return len(rows), nil
}

package source

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"strings"

	"allocation-dashboard/internal/domain"
	"allocation-dashboard/internal/storage"
)

// StoreSource serves raw dataset text from a ResultFileStore, keyed by path.
type StoreSource struct {
	files storage.ResultFileStore
	kind  string
}

// NewStoreSource wraps files. kind is reported by Kind (e.g. KindPostgres).
func NewStoreSource(files storage.ResultFileStore, kind string) *StoreSource {
	return &StoreSource{files: files, kind: kind}
}

// Kind implements Source.
func (s *StoreSource) Kind() string { return s.kind }

// Fetch returns the stored file content.
func (s *StoreSource) Fetch(ctx context.Context, ref DatasetRef) (string, error) {
	f, err := s.files.GetByPath(ctx, ref.Path)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", fmt.Errorf("%s: %w", ref.Path, ErrNotFound)
		}
		return "", err
	}
	return f.Content, nil
}

// RowSource serves datasets from typed allocation rows keyed by period and
// strategy tag, rendered back into delimited text so they take the same
// parse path as every other source.
type RowSource struct {
	rows storage.AllocationRowStore
	kind string
}

// NewRowSource wraps rows. kind is reported by Kind (e.g. KindClickHouse).
func NewRowSource(rows storage.AllocationRowStore, kind string) *RowSource {
	return &RowSource{rows: rows, kind: kind}
}

// Kind implements Source.
func (s *RowSource) Kind() string { return s.kind }

// Fetch loads the rows of (period, strategy) and renders them.
func (s *RowSource) Fetch(ctx context.Context, ref DatasetRef) (string, error) {
	rows, err := s.rows.GetByPeriodStrategy(ctx, ref.Period, ref.Strategy.Tag)
	if err != nil {
		if errors.Is(err, storage.ErrNotFound) {
			return "", fmt.Errorf("%s/%s: %w", ref.Period, ref.Strategy.Tag, ErrNotFound)
		}
		return "", err
	}
	return RenderRows(rows), nil
}

// rowHeader is the column order RenderRows writes.
var rowHeader = []string{
	domain.FieldRegion,
	domain.FieldZone,
	domain.FieldFacilityType,
	domain.FieldPredictedDemandMW,
	domain.FieldPriorityLevel,
	domain.FieldOutageRisk,
	domain.FieldDecisionX,
	domain.FieldAllocationLevel,
	domain.FieldAllocatedMW,
	domain.FieldUnmetMW,
	domain.FieldScore,
	domain.SupplyLimitAliases[0],
}

// RenderRows writes rows as comma separated text with a header line.
// Commas inside text values are replaced by spaces since the record
// format has no quoting.
func RenderRows(rows []*domain.AllocationRow) string {
	var b strings.Builder
	b.WriteString(strings.Join(rowHeader, ","))
	for _, r := range rows {
		b.WriteByte('\n')
		vals := []string{
			text(r.Region),
			text(r.Zone),
			text(r.FacilityType),
			num(r.PredictedDemandMW),
			num(r.PriorityLevel),
			num(r.OutageRisk),
			num(r.DecisionX),
			num(r.AllocationLevel),
			num(r.AllocatedMW),
			num(r.UnmetMW),
			num(r.Score),
			num(r.SupplyMWLimit),
		}
		b.WriteString(strings.Join(vals, ","))
	}
	b.WriteByte('\n')
	return b.String()
}

func text(s string) string {
	return strings.ReplaceAll(s, ",", " ")
}

func num(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

package table

import (
	"cmp"
	"slices"

	"allocation-dashboard/internal/domain"
)

// ByPriorityThenScore orders records by descending priority_level, then
// descending score. Both are read with the coerce-or-zero rule.
// It is the comparator every renderer must use for display order.
func ByPriorityThenScore(a, b domain.Record) int {
	if c := cmp.Compare(b.Num(domain.FieldPriorityLevel), a.Num(domain.FieldPriorityLevel)); c != 0 {
		return c
	}
	return cmp.Compare(b.Num(domain.FieldScore), a.Num(domain.FieldScore))
}

// SortForDisplay returns a display-ordered copy of records.
// The sort is stable, so equal rows keep input order. The input is not modified.
func SortForDisplay(records []domain.Record) []domain.Record {
	sorted := slices.Clone(records)
	slices.SortStableFunc(sorted, ByPriorityThenScore)
	return sorted
}

// DisplayColumns returns domain.DisplayFields that t declares, in display order.
func DisplayColumns(t *domain.RawTable) []string {
	cols := make([]string, 0, len(domain.DisplayFields))
	for _, f := range domain.DisplayFields {
		if t.HasField(f) {
			cols = append(cols, f)
		}
	}
	return cols
}

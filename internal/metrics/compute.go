package metrics

import "allocation-dashboard/internal/domain"

// computeUsed sums allocated_mw over all records.
func computeUsed(records []domain.Record) float64 {
	used := 0.0
	for _, r := range records {
		used += r.Num(domain.FieldAllocatedMW)
	}
	return used
}

// computeServed counts records with allocation_level strictly above 0.
// Non-numeric or missing levels coerce to 0 and never count.
func computeServed(records []domain.Record) int {
	served := 0
	for _, r := range records {
		if r.Num(domain.FieldAllocationLevel) > 0 {
			served++
		}
	}
	return served
}

// computeTotalScore sums score * allocation_level.
func computeTotalScore(records []domain.Record) float64 {
	total := 0.0
	for _, r := range records {
		total += r.Num(domain.FieldScore) * r.Num(domain.FieldAllocationLevel)
	}
	return total
}

// declaredSupplyLimit reads the supply ceiling from the first record only.
// Aliases are tried in domain.SupplyLimitAliases order; the first nonzero wins.
func declaredSupplyLimit(records []domain.Record) float64 {
	if len(records) == 0 {
		return 0
	}
	first := records[0]
	for _, alias := range domain.SupplyLimitAliases {
		if v := first.Num(alias); v != 0 {
			return v
		}
	}
	return 0
}

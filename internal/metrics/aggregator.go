package metrics

import (
	"fmt"

	"allocation-dashboard/internal/domain"
)

// SupplyPolicy selects where Metrics.SupplyLimit comes from.
type SupplyPolicy string

const (
	// SupplyDeclared reads the limit from the first record's alias fields.
	SupplyDeclared SupplyPolicy = "declared"
	// SupplyFromUsed sets the limit equal to Used. Single-strategy datasets
	// that carry no supply field use this.
	SupplyFromUsed SupplyPolicy = "used"
)

// ParseSupplyPolicy validates a policy name. Empty selects SupplyDeclared.
func ParseSupplyPolicy(s string) (SupplyPolicy, error) {
	switch SupplyPolicy(s) {
	case "", SupplyDeclared:
		return SupplyDeclared, nil
	case SupplyFromUsed:
		return SupplyFromUsed, nil
	default:
		return "", fmt.Errorf("unknown supply policy %q (want %q or %q)", s, SupplyDeclared, SupplyFromUsed)
	}
}

// Aggregator computes Metrics under a fixed supply policy.
type Aggregator struct {
	policy SupplyPolicy
}

// NewAggregator creates an aggregator. An empty policy means SupplyDeclared.
func NewAggregator(policy SupplyPolicy) *Aggregator {
	if policy == "" {
		policy = SupplyDeclared
	}
	return &Aggregator{policy: policy}
}

// Policy returns the aggregator's supply policy.
func (a *Aggregator) Policy() SupplyPolicy {
	return a.policy
}

// Aggregate computes the summary of one strategy's records.
func (a *Aggregator) Aggregate(records []domain.Record) domain.Metrics {
	return Aggregate(records, a.policy)
}

// Aggregate computes Metrics for records. It is a pure function:
// summation order does not affect the verdict, and the input is not modified.
func Aggregate(records []domain.Record, policy SupplyPolicy) domain.Metrics {
	m := domain.Metrics{
		Used:       computeUsed(records),
		Served:     computeServed(records),
		TotalScore: computeTotalScore(records),
	}

	switch policy {
	case SupplyFromUsed:
		m.SupplyLimit = m.Used
	default:
		m.SupplyLimit = declaredSupplyLimit(records)
	}

	return m
}

// CombinedSupply is the headline supply of a comparison view:
// A's limit if nonzero, otherwise B's.
func CombinedSupply(a, b domain.Metrics) float64 {
	if a.SupplyLimit != 0 {
		return a.SupplyLimit
	}
	return b.SupplyLimit
}

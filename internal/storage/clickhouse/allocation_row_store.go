package clickhouse

import (
	"context"
	"fmt"

	"allocation-dashboard/internal/domain"
	"allocation-dashboard/internal/storage"
)

const allocationRowColumns = `
	period, strategy_tag, row_index,
	region, zone, facility_type,
	predicted_demand_mw, priority_level, outage_risk, decision_x,
	allocation_level, allocated_mw, unmet_mw, score, supply_mw_limit`

// AllocationRowStore implements storage.AllocationRowStore on the
// allocation_rows table.
type AllocationRowStore struct {
	conn *Conn
}

// NewAllocationRowStore creates a new AllocationRowStore.
func NewAllocationRowStore(conn *Conn) *AllocationRowStore {
	return &AllocationRowStore{conn: conn}
}

var _ storage.AllocationRowStore = (*AllocationRowStore)(nil)

// InsertBulk adds rows atomically. Fails entire batch on any duplicate.
// MergeTree does not enforce keys, so duplicates are checked up front.
func (s *AllocationRowStore) InsertBulk(ctx context.Context, rows []*domain.AllocationRow) error {
	if len(rows) == 0 {
		return nil
	}

	seen := make(map[string]struct{}, len(rows))
	datasets := make(map[[2]string]struct{})
	for _, r := range rows {
		if r == nil || r.Period == "" || r.StrategyTag == "" || r.RowIndex < 0 {
			return storage.ErrInvalidInput
		}
		key := fmt.Sprintf("%s|%s|%d", r.Period, r.StrategyTag, r.RowIndex)
		if _, exists := seen[key]; exists {
			return storage.ErrDuplicateKey
		}
		seen[key] = struct{}{}
		datasets[[2]string{r.Period, r.StrategyTag}] = struct{}{}
	}

	for ds := range datasets {
		existing, err := s.existingIndexes(ctx, ds[0], ds[1])
		if err != nil {
			return fmt.Errorf("check exists: %w", err)
		}
		for _, r := range rows {
			if r.Period != ds[0] || r.StrategyTag != ds[1] {
				continue
			}
			if _, dup := existing[uint32(r.RowIndex)]; dup {
				return storage.ErrDuplicateKey
			}
		}
	}

	batch, err := s.conn.PrepareBatch(ctx, "INSERT INTO allocation_rows ("+allocationRowColumns+")")
	if err != nil {
		return fmt.Errorf("prepare batch: %w", err)
	}

	for _, r := range rows {
		err = batch.Append(
			r.Period, r.StrategyTag, uint32(r.RowIndex),
			r.Region, r.Zone, r.FacilityType,
			r.PredictedDemandMW, r.PriorityLevel, r.OutageRisk, r.DecisionX,
			r.AllocationLevel, r.AllocatedMW, r.UnmetMW, r.Score, r.SupplyMWLimit,
		)
		if err != nil {
			return fmt.Errorf("append to batch: %w", err)
		}
	}

	if err := batch.Send(); err != nil {
		return fmt.Errorf("send batch: %w", err)
	}
	return nil
}

// GetByPeriodStrategy retrieves rows for one dataset, ordered by row_index ASC.
func (s *AllocationRowStore) GetByPeriodStrategy(ctx context.Context, period, strategyTag string) ([]*domain.AllocationRow, error) {
	query := "SELECT" + allocationRowColumns + `
		FROM allocation_rows
		WHERE period = ? AND strategy_tag = ?
		ORDER BY row_index ASC`

	rows, err := s.conn.Query(ctx, query, period, strategyTag)
	if err != nil {
		return nil, fmt.Errorf("query allocation rows: %w", err)
	}
	defer rows.Close()

	var result []*domain.AllocationRow
	for rows.Next() {
		var (
			r   domain.AllocationRow
			idx uint32
		)
		err := rows.Scan(
			&r.Period, &r.StrategyTag, &idx,
			&r.Region, &r.Zone, &r.FacilityType,
			&r.PredictedDemandMW, &r.PriorityLevel, &r.OutageRisk, &r.DecisionX,
			&r.AllocationLevel, &r.AllocatedMW, &r.UnmetMW, &r.Score, &r.SupplyMWLimit,
		)
		if err != nil {
			return nil, fmt.Errorf("scan allocation row: %w", err)
		}
		r.RowIndex = int(idx)
		result = append(result, &r)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterate allocation rows: %w", err)
	}

	if len(result) == 0 {
		return nil, storage.ErrNotFound
	}
	return result, nil
}

func (s *AllocationRowStore) existingIndexes(ctx context.Context, period, strategyTag string) (map[uint32]struct{}, error) {
	rows, err := s.conn.Query(ctx,
		`SELECT row_index FROM allocation_rows WHERE period = ? AND strategy_tag = ?`,
		period, strategyTag,
	)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	out := make(map[uint32]struct{})
	for rows.Next() {
		var idx uint32
		if err := rows.Scan(&idx); err != nil {
			return nil, err
		}
		out[idx] = struct{}{}
	}
	return out, rows.Err()
}

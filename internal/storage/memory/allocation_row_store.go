package memory

import (
	"context"
	"fmt"
	"sort"
	"sync"

	"allocation-dashboard/internal/domain"
	"allocation-dashboard/internal/storage"
)

// AllocationRowStore is an in-memory implementation of storage.AllocationRowStore.
type AllocationRowStore struct {
	mu   sync.RWMutex
	data map[string][]*domain.AllocationRow // keyed by period|strategy
	keys map[string]struct{}                // period|strategy|row_index
}

// NewAllocationRowStore creates a new in-memory allocation row store.
func NewAllocationRowStore() *AllocationRowStore {
	return &AllocationRowStore{
		data: make(map[string][]*domain.AllocationRow),
		keys: make(map[string]struct{}),
	}
}

func datasetKey(period, strategyTag string) string {
	return period + "|" + strategyTag
}

func rowKey(r *domain.AllocationRow) string {
	return fmt.Sprintf("%s|%s|%d", r.Period, r.StrategyTag, r.RowIndex)
}

// InsertBulk adds rows atomically. Fails entire batch on any duplicate.
func (s *AllocationRowStore) InsertBulk(_ context.Context, rows []*domain.AllocationRow) error {
	if len(rows) == 0 {
		return nil
	}

	s.mu.Lock()
	defer s.mu.Unlock()

	// First pass: validate and check duplicates (existing + intra-batch)
	batchKeys := make(map[string]struct{}, len(rows))
	for _, r := range rows {
		if r == nil || r.Period == "" || r.StrategyTag == "" {
			return storage.ErrInvalidInput
		}
		k := rowKey(r)
		if _, exists := s.keys[k]; exists {
			return storage.ErrDuplicateKey
		}
		if _, exists := batchKeys[k]; exists {
			return storage.ErrDuplicateKey
		}
		batchKeys[k] = struct{}{}
	}

	// Second pass: insert all
	for _, r := range rows {
		rowCopy := *r
		dk := datasetKey(r.Period, r.StrategyTag)
		s.data[dk] = append(s.data[dk], &rowCopy)
		s.keys[rowKey(r)] = struct{}{}
	}

	return nil
}

// GetByPeriodStrategy retrieves rows for one dataset, ordered by row_index ASC.
func (s *AllocationRowStore) GetByPeriodStrategy(_ context.Context, period, strategyTag string) ([]*domain.AllocationRow, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	stored := s.data[datasetKey(period, strategyTag)]
	if len(stored) == 0 {
		return nil, storage.ErrNotFound
	}

	result := make([]*domain.AllocationRow, len(stored))
	for i, r := range stored {
		rowCopy := *r
		result[i] = &rowCopy
	}
	sort.Slice(result, func(i, j int) bool {
		return result[i].RowIndex < result[j].RowIndex
	})
	return result, nil
}

var _ storage.AllocationRowStore = (*AllocationRowStore)(nil)

package memory

import (
	"context"
	"errors"
	"testing"

	"allocation-dashboard/internal/domain"
	"allocation-dashboard/internal/storage"
)

func row(period, tag string, idx int, region string) *domain.AllocationRow {
	return &domain.AllocationRow{
		Period:          period,
		StrategyTag:     tag,
		RowIndex:        idx,
		Region:          region,
		AllocationLevel: 1,
		AllocatedMW:     10,
	}
}

func TestAllocationRowStore_InsertBulkAndGet(t *testing.T) {
	store := NewAllocationRowStore()
	ctx := context.Background()

	rows := []*domain.AllocationRow{
		row("3", "quantum_allocation", 1, "South"),
		row("3", "quantum_allocation", 0, "North"),
		row("3", "classical_greedy", 0, "East"),
	}
	if err := store.InsertBulk(ctx, rows); err != nil {
		t.Fatalf("InsertBulk failed: %v", err)
	}

	got, err := store.GetByPeriodStrategy(ctx, "3", "quantum_allocation")
	if err != nil {
		t.Fatalf("GetByPeriodStrategy failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("Expected 2 rows, got %d", len(got))
	}
	if got[0].Region != "North" || got[1].Region != "South" {
		t.Errorf("rows not ordered by row_index: %s, %s", got[0].Region, got[1].Region)
	}
}

func TestAllocationRowStore_EmptyBatch(t *testing.T) {
	store := NewAllocationRowStore()
	if err := store.InsertBulk(context.Background(), nil); err != nil {
		t.Errorf("empty batch should be a no-op, got %v", err)
	}
}

func TestAllocationRowStore_DuplicateFailsWholeBatch(t *testing.T) {
	store := NewAllocationRowStore()
	ctx := context.Background()

	if err := store.InsertBulk(ctx, []*domain.AllocationRow{row("3", "q", 0, "North")}); err != nil {
		t.Fatalf("InsertBulk failed: %v", err)
	}

	err := store.InsertBulk(ctx, []*domain.AllocationRow{
		row("3", "q", 1, "South"),
		row("3", "q", 0, "North"),
	})
	if !errors.Is(err, storage.ErrDuplicateKey) {
		t.Fatalf("Expected ErrDuplicateKey, got %v", err)
	}

	got, _ := store.GetByPeriodStrategy(ctx, "3", "q")
	if len(got) != 1 {
		t.Errorf("failed batch must not be partially applied, got %d rows", len(got))
	}
}

func TestAllocationRowStore_IntraBatchDuplicate(t *testing.T) {
	store := NewAllocationRowStore()
	err := store.InsertBulk(context.Background(), []*domain.AllocationRow{
		row("3", "q", 0, "North"),
		row("3", "q", 0, "North"),
	})
	if !errors.Is(err, storage.ErrDuplicateKey) {
		t.Errorf("Expected ErrDuplicateKey, got %v", err)
	}
}

func TestAllocationRowStore_InvalidInput(t *testing.T) {
	store := NewAllocationRowStore()
	err := store.InsertBulk(context.Background(), []*domain.AllocationRow{row("", "q", 0, "North")})
	if !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("Expected ErrInvalidInput, got %v", err)
	}
}

func TestAllocationRowStore_NotFound(t *testing.T) {
	store := NewAllocationRowStore()
	_, err := store.GetByPeriodStrategy(context.Background(), "9", "q")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

package memory

import (
	"context"
	"errors"
	"sync"
	"testing"

	"allocation-dashboard/internal/domain"
	"allocation-dashboard/internal/storage"
)

func TestResultFileStore_InsertAndGet(t *testing.T) {
	store := NewResultFileStore()
	ctx := context.Background()

	f := &domain.ResultFile{
		Path:    "results/quantum_allocation_hour_3.csv",
		Content: "region,score\nNorth,2\n",
	}

	if err := store.Insert(ctx, f); err != nil {
		t.Fatalf("Insert failed: %v", err)
	}

	got, err := store.GetByPath(ctx, f.Path)
	if err != nil {
		t.Fatalf("GetByPath failed: %v", err)
	}
	if got.Content != f.Content {
		t.Errorf("Content mismatch: got %q, want %q", got.Content, f.Content)
	}
	if got.CreatedAt == 0 {
		t.Error("CreatedAt should be set on insert")
	}

	// Mutating the returned copy must not leak into the store.
	got.Content = "changed"
	again, _ := store.GetByPath(ctx, f.Path)
	if again.Content != f.Content {
		t.Errorf("store content mutated through returned copy: %q", again.Content)
	}
}

func TestResultFileStore_DuplicateKey(t *testing.T) {
	store := NewResultFileStore()
	ctx := context.Background()

	f := &domain.ResultFile{Path: "a.csv", Content: "x"}
	if err := store.Insert(ctx, f); err != nil {
		t.Fatalf("First insert failed: %v", err)
	}

	err := store.Insert(ctx, f)
	if !errors.Is(err, storage.ErrDuplicateKey) {
		t.Errorf("Expected ErrDuplicateKey, got %v", err)
	}
}

func TestResultFileStore_InvalidInput(t *testing.T) {
	store := NewResultFileStore()
	ctx := context.Background()

	if err := store.Insert(ctx, nil); !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("nil file: expected ErrInvalidInput, got %v", err)
	}
	if err := store.Insert(ctx, &domain.ResultFile{Content: "x"}); !errors.Is(err, storage.ErrInvalidInput) {
		t.Errorf("empty path: expected ErrInvalidInput, got %v", err)
	}
}

func TestResultFileStore_NotFound(t *testing.T) {
	store := NewResultFileStore()

	_, err := store.GetByPath(context.Background(), "missing.csv")
	if !errors.Is(err, storage.ErrNotFound) {
		t.Errorf("Expected ErrNotFound, got %v", err)
	}
}

func TestResultFileStore_ListPaths(t *testing.T) {
	store := NewResultFileStore()
	ctx := context.Background()

	for _, p := range []string{"c.csv", "a.csv", "b.csv"} {
		if err := store.Insert(ctx, &domain.ResultFile{Path: p}); err != nil {
			t.Fatalf("Insert %s failed: %v", p, err)
		}
	}

	paths, err := store.ListPaths(ctx)
	if err != nil {
		t.Fatalf("ListPaths failed: %v", err)
	}
	want := []string{"a.csv", "b.csv", "c.csv"}
	if len(paths) != len(want) {
		t.Fatalf("Expected %d paths, got %d", len(want), len(paths))
	}
	for i := range want {
		if paths[i] != want[i] {
			t.Errorf("paths[%d]: got %s, want %s", i, paths[i], want[i])
		}
	}
}

func TestResultFileStore_ConcurrentInsert(t *testing.T) {
	store := NewResultFileStore()
	ctx := context.Background()

	var wg sync.WaitGroup
	errs := make(chan error, 10)
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			errs <- store.Insert(ctx, &domain.ResultFile{Path: "same.csv"})
		}()
	}
	wg.Wait()
	close(errs)

	success := 0
	for err := range errs {
		if err == nil {
			success++
		}
	}
	if success != 1 {
		t.Errorf("Expected exactly one successful insert, got %d", success)
	}
}

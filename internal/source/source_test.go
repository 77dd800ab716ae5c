package source

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"testing"
	"time"

	"allocation-dashboard/internal/domain"
	"allocation-dashboard/internal/storage/memory"
	"allocation-dashboard/internal/table"
)

const sample = "region,priority_level,allocation_level,allocated_mw,score\nNorth,2,1,10,5\n"

func ref(path string) DatasetRef {
	return DatasetRef{Period: "3", Strategy: domain.StrategyQuantum, Path: path}
}

func TestFetchError_Message(t *testing.T) {
	cause := errors.New("connection refused")
	err := error(&FetchError{Path: "results/x.csv", Err: cause})

	if err.Error() != "failed to load: results/x.csv" {
		t.Errorf("Error() = %q", err.Error())
	}
	if !errors.Is(err, cause) {
		t.Error("FetchError should unwrap to its cause")
	}

	var fe *FetchError
	if !errors.As(err, &fe) || fe.Path != "results/x.csv" {
		t.Errorf("errors.As failed: %v", fe)
	}
}

func TestHTTPSource_Fetch(t *testing.T) {
	var gotPath string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		w.Header().Set("Content-Type", "text/csv")
		_, _ = w.Write([]byte(sample))
	}))
	defer server.Close()

	s, err := NewHTTPSource(server.URL + "/static")
	if err != nil {
		t.Fatalf("NewHTTPSource: %v", err)
	}

	got, err := s.Fetch(context.Background(), ref("results/quantum_allocation_hour_3.csv"))
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if got != sample {
		t.Errorf("body = %q, want %q", got, sample)
	}
	if gotPath != "/static/results/quantum_allocation_hour_3.csv" {
		t.Errorf("request path = %s", gotPath)
	}
	if s.Kind() != KindHTTP {
		t.Errorf("Kind = %s", s.Kind())
	}
}

func TestHTTPSource_NotFound(t *testing.T) {
	server := httptest.NewServer(http.NotFoundHandler())
	defer server.Close()

	s, _ := NewHTTPSource(server.URL)
	_, err := s.Fetch(context.Background(), ref("missing.csv"))
	if !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestHTTPSource_ServerError(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
	}))
	defer server.Close()

	s, _ := NewHTTPSource(server.URL)
	_, err := s.Fetch(context.Background(), ref("x.csv"))
	if err == nil {
		t.Fatal("expected error for status 500")
	}
	if errors.Is(err, ErrNotFound) {
		t.Error("500 should not be reported as not found")
	}
}

func TestHTTPSource_Timeout(t *testing.T) {
	release := make(chan struct{})
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	defer server.Close()
	defer close(release)

	s, _ := NewHTTPSource(server.URL, WithTimeout(50*time.Millisecond))
	if _, err := s.Fetch(context.Background(), ref("slow.csv")); err == nil {
		t.Error("expected timeout error")
	}
}

func TestHTTPSource_MaxBytes(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		_, _ = w.Write([]byte(sample))
	}))
	defer server.Close()

	s, _ := NewHTTPSource(server.URL, WithMaxBytes(8))
	if _, err := s.Fetch(context.Background(), ref("big.csv")); err == nil {
		t.Error("expected size limit error")
	}
}

func TestNewHTTPSource_RejectsScheme(t *testing.T) {
	if _, err := NewHTTPSource("ftp://example.com"); err == nil {
		t.Error("expected error for ftp scheme")
	}
}

func TestFileSource_Fetch(t *testing.T) {
	dir := t.TempDir()
	if err := os.MkdirAll(filepath.Join(dir, "results"), 0o755); err != nil {
		t.Fatal(err)
	}
	if err := os.WriteFile(filepath.Join(dir, "results", "a.csv"), []byte(sample), 0o644); err != nil {
		t.Fatal(err)
	}

	s, err := NewFileSource(dir)
	if err != nil {
		t.Fatalf("NewFileSource: %v", err)
	}

	got, err := s.Fetch(context.Background(), ref("results/a.csv"))
	if err != nil {
		t.Fatalf("Fetch: %v", err)
	}
	if got != sample {
		t.Errorf("content = %q", got)
	}

	if _, err := s.Fetch(context.Background(), ref("results/missing.csv")); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
	if _, err := s.Fetch(context.Background(), ref("../outside.csv")); err == nil {
		t.Error("expected error for path escaping the root")
	}
}

func TestFileSource_CancelledContext(t *testing.T) {
	s, err := NewFileSource(t.TempDir())
	if err != nil {
		t.Fatal(err)
	}
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, err := s.Fetch(ctx, ref("a.csv")); !errors.Is(err, context.Canceled) {
		t.Errorf("expected context.Canceled, got %v", err)
	}
}

func TestNewFileSource_NotADirectory(t *testing.T) {
	f := filepath.Join(t.TempDir(), "file")
	if err := os.WriteFile(f, nil, 0o644); err != nil {
		t.Fatal(err)
	}
	if _, err := NewFileSource(f); err == nil {
		t.Error("expected error for regular file")
	}
}

func TestMemorySource(t *testing.T) {
	files := map[string]string{"a.csv": "x"}
	s := NewMemorySource(files)
	files["a.csv"] = "mutated"

	got, err := s.Fetch(context.Background(), ref("a.csv"))
	if err != nil || got != "x" {
		t.Errorf("Fetch = %q, %v", got, err)
	}

	s.Put("b.csv", "y")
	if got, _ := s.Fetch(context.Background(), ref("b.csv")); got != "y" {
		t.Errorf("Put not visible: %q", got)
	}

	if _, err := s.Fetch(context.Background(), ref("c.csv")); !errors.Is(err, ErrNotFound) {
		t.Errorf("expected ErrNotFound, got %v", err)
	}
}

func TestPublisher_StoreAndRowSources(t *testing.T) {
	files := memory.NewResultFileStore()
	rows := memory.NewAllocationRowStore()
	pub := &Publisher{Files: files, Rows: rows}
	ctx := context.Background()

	content := "region,priority_level,allocation_level,allocated_mw,score,supply_mw_limit\n" +
		"North,2,1,10,5,40\n" +
		"South,1,0.5,4.25,3,\n"
	r := ref("results/quantum_allocation_hour_3.csv")

	n, err := pub.Publish(ctx, r, content)
	if err != nil {
		t.Fatalf("Publish: %v", err)
	}
	if n != 2 {
		t.Errorf("published %d rows, want 2", n)
	}

	raw, err := NewStoreSource(files, KindPostgres).Fetch(ctx, r)
	if err != nil {
		t.Fatalf("StoreSource.Fetch: %v", err)
	}
	if raw != content {
		t.Errorf("raw content mismatch: %q", raw)
	}

	rendered, err := NewRowSource(rows, KindClickHouse).Fetch(ctx, r)
	if err != nil {
		t.Fatalf("RowSource.Fetch: %v", err)
	}
	parsed := table.Parse(rendered)
	if parsed.Len() != 2 {
		t.Fatalf("rendered rows = %d, want 2", parsed.Len())
	}
	if parsed.Records[0].Get("region") != "North" {
		t.Errorf("first region = %q", parsed.Records[0].Get("region"))
	}
	if parsed.Records[1].Num("allocated_mw") != 4.25 {
		t.Errorf("allocated_mw = %v", parsed.Records[1].Num("allocated_mw"))
	}
	if parsed.Records[0].Num("supply_mw_limit") != 40 {
		t.Errorf("supply_mw_limit = %v", parsed.Records[0].Num("supply_mw_limit"))
	}
}

func TestStoreSources_NotFound(t *testing.T) {
	ctx := context.Background()
	r := ref("missing.csv")

	if _, err := NewStoreSource(memory.NewResultFileStore(), KindPostgres).Fetch(ctx, r); !errors.Is(err, ErrNotFound) {
		t.Errorf("StoreSource: expected ErrNotFound, got %v", err)
	}
	if _, err := NewRowSource(memory.NewAllocationRowStore(), KindClickHouse).Fetch(ctx, r); !errors.Is(err, ErrNotFound) {
		t.Errorf("RowSource: expected ErrNotFound, got %v", err)
	}
}

func TestRenderRows_ReplacesCommas(t *testing.T) {
	out := RenderRows([]*domain.AllocationRow{{Region: "North, East", AllocatedMW: 1.5}})
	parsed := table.Parse(out)
	if got := parsed.Records[0].Get("region"); got != "North  East" {
		t.Errorf("region = %q", got)
	}
	if got := parsed.Records[0].Get("allocated_mw"); got != "1.5" {
		t.Errorf("allocated_mw = %q", got)
	}
}

func TestOpen(t *testing.T) {
	ctx := context.Background()

	s, closeFn, err := Open(ctx, Options{Kind: KindMemory, Files: map[string]string{"a": "b"}})
	if err != nil {
		t.Fatalf("Open memory: %v", err)
	}
	closeFn()
	if s.Kind() != KindMemory {
		t.Errorf("Kind = %s", s.Kind())
	}

	s, _, err = Open(ctx, Options{Kind: KindFile, Dir: t.TempDir()})
	if err != nil || s.Kind() != KindFile {
		t.Errorf("Open file: %v", err)
	}

	s, _, err = Open(ctx, Options{Kind: KindHTTP, BaseURL: "http://localhost:1", Timeout: time.Second})
	if err != nil || s.Kind() != KindHTTP {
		t.Errorf("Open http: %v", err)
	}

	_, closeFn, err = Open(ctx, Options{Kind: "ftp"})
	if err == nil {
		t.Error("expected error for unknown kind")
	}
	closeFn()
}

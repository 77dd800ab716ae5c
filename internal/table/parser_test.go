package table

import (
	"testing"

	"github.com/google/go-cmp/cmp"

	"allocation-dashboard/internal/domain"
)

func TestParse_HeaderAndRows(t *testing.T) {
	tbl := Parse("a,b,c\n1,2,3\n4,5,6\n7,8,9")

	if diff := cmp.Diff([]string{"a", "b", "c"}, tbl.Fields); diff != "" {
		t.Errorf("fields mismatch (-want +got):\n%s", diff)
	}
	if tbl.Len() != 3 {
		t.Fatalf("expected 3 records, got %d", tbl.Len())
	}
	want := domain.Record{"a": "4", "b": "5", "c": "6"}
	if diff := cmp.Diff(want, tbl.Records[1]); diff != "" {
		t.Errorf("record 1 mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_HeaderOnly(t *testing.T) {
	tbl := Parse("a,b,c\n")

	if diff := cmp.Diff([]string{"a", "b", "c"}, tbl.Fields); diff != "" {
		t.Errorf("fields mismatch (-want +got):\n%s", diff)
	}
	if tbl.Len() != 0 {
		t.Errorf("expected 0 records, got %d", tbl.Len())
	}
}

func TestParse_EmptyInput(t *testing.T) {
	for _, in := range []string{"", "   ", "\r\n\n\t"} {
		tbl := Parse(in)
		if tbl == nil {
			t.Fatalf("Parse(%q) returned nil", in)
		}
		if len(tbl.Fields) != 0 || tbl.Len() != 0 {
			t.Errorf("Parse(%q) = %+v, want empty table", in, tbl)
		}
	}
}

func TestParse_ShortRowPadsEmpty(t *testing.T) {
	tbl := Parse("h1,h2\nx")

	want := []domain.Record{{"h1": "x", "h2": ""}}
	if diff := cmp.Diff(want, tbl.Records); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_ExtraColumnsDropped(t *testing.T) {
	tbl := Parse("h1\na,b,c")

	want := []domain.Record{{"h1": "a"}}
	if diff := cmp.Diff(want, tbl.Records); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_CRLFAndTrimming(t *testing.T) {
	tbl := Parse("  name , score \r\n alpha , 1.5 \r\nbeta,2\r\n\r\n")

	if diff := cmp.Diff([]string{"name", "score"}, tbl.Fields); diff != "" {
		t.Errorf("fields mismatch (-want +got):\n%s", diff)
	}
	want := []domain.Record{
		{"name": "alpha", "score": "1.5"},
		{"name": "beta", "score": "2"},
	}
	if diff := cmp.Diff(want, tbl.Records); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_NoQuoteHandling(t *testing.T) {
	// An embedded comma inside quotes still splits the column.
	tbl := Parse(`region,zone` + "\n" + `"Gaza, North",Z1`)

	want := []domain.Record{{"region": `"Gaza`, "zone": `North"`}}
	if diff := cmp.Diff(want, tbl.Records); diff != "" {
		t.Errorf("records mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_DuplicateHeaderLastWins(t *testing.T) {
	tbl := Parse("a,b,a\n1,2,3")

	if diff := cmp.Diff([]string{"a", "b", "a"}, tbl.Fields); diff != "" {
		t.Errorf("fields mismatch (-want +got):\n%s", diff)
	}
	want := domain.Record{"a": "3", "b": "2"}
	if diff := cmp.Diff(want, tbl.Records[0]); diff != "" {
		t.Errorf("record mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_BlankInteriorLineIsEmptyRecord(t *testing.T) {
	tbl := Parse("a,b\n1,2\n\n3,4")

	if tbl.Len() != 3 {
		t.Fatalf("expected 3 records, got %d", tbl.Len())
	}
	want := domain.Record{"a": "", "b": ""}
	if diff := cmp.Diff(want, tbl.Records[1]); diff != "" {
		t.Errorf("blank line record mismatch (-want +got):\n%s", diff)
	}
}

func TestParse_ByteOrderMark(t *testing.T) {
	tbl := Parse("\ufeffregion,score\r\nNorth,2\r\n")

	if diff := cmp.Diff([]string{"region", "score"}, tbl.Fields); diff != "" {
		t.Errorf("fields mismatch (-want +got):\n%s", diff)
	}
	if tbl.Len() != 1 {
		t.Fatalf("expected 1 record, got %d", tbl.Len())
	}
	if got := tbl.Records[0].Get("region"); got != "North" {
		t.Errorf("region = %q, want North", got)
	}
	if diff := cmp.Diff([]string{"region", "score"}, DisplayColumns(tbl)); diff != "" {
		t.Errorf("display columns mismatch (-want +got):\n%s", diff)
	}
}

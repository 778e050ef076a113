package table

import (
	"io"
	"strings"
	"testing"
)

func TestColumnIndex(t *testing.T) {
	tbl := New([]string{"id", "series_path", "label"}, nil)

	idx, ok := tbl.ColumnIndex("series_path")
	if !ok {
		t.Fatal("ColumnIndex(series_path) not found")
	}
	if idx != 1 {
		t.Errorf("ColumnIndex(series_path) = %d, want 1", idx)
	}

	if _, ok := tbl.ColumnIndex("missing"); ok {
		t.Error("ColumnIndex(missing) found, want not found")
	}
}

func TestCell_ShortRow(t *testing.T) {
	tbl := New(
		[]string{"a", "b", "c"},
		[][]string{{"1", "2"}},
	)

	if got := tbl.Cell(0, 1); got != "2" {
		t.Errorf("Cell(0,1) = %q, want %q", got, "2")
	}
	if got := tbl.Cell(0, 2); got != "" {
		t.Errorf("Cell(0,2) = %q, want empty for short row", got)
	}
}

func TestReadCSVFrom(t *testing.T) {
	data := "id,series_path\n1,a.csv\n2,b.csv\n"

	tbl, err := ReadCSVFrom(strings.NewReader(data))
	if err != nil {
		t.Fatalf("ReadCSVFrom() error = %v", err)
	}

	if len(tbl.Columns) != 2 || tbl.Columns[1] != "series_path" {
		t.Errorf("Columns = %v, want [id series_path]", tbl.Columns)
	}
	if tbl.NumRows() != 2 {
		t.Fatalf("NumRows() = %d, want 2", tbl.NumRows())
	}
	if got := tbl.Cell(1, 1); got != "b.csv" {
		t.Errorf("Cell(1,1) = %q, want %q", got, "b.csv")
	}
}

func TestReadCSVFrom_BOM(t *testing.T) {
	data := "\xEF\xBB\xBFid,series_path\n1,a.csv\n"

	tbl, err := ReadCSVFrom(strings.NewReader(data))
	if err != nil {
		t.Fatalf("ReadCSVFrom() error = %v", err)
	}

	if tbl.Columns[0] != "id" {
		t.Errorf("first column = %q, want %q (BOM should be stripped)", tbl.Columns[0], "id")
	}
}

func TestBOMSkippingReader(t *testing.T) {
	tests := []struct {
		name string
		in   string
		want string
	}{
		{"strips leading bom", "\xEF\xBB\xBFa,b\n", "a,b\n"},
		{"no bom untouched", "a,b\n", "a,b\n"},
		{"shorter than bom", "ab", "ab"},
		{"empty", "", ""},
		{"bom only", "\xEF\xBB\xBF", ""},
		{"mid-stream bom kept", "a\xEF\xBB\xBFb", "a\xEF\xBB\xBFb"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := io.ReadAll(NewBOMSkippingReader(strings.NewReader(tt.in)))
			if err != nil {
				t.Fatalf("ReadAll() error = %v", err)
			}
			if string(got) != tt.want {
				t.Errorf("read %q, want %q", got, tt.want)
			}
		})
	}
}

func TestReadCSVFrom_Empty(t *testing.T) {
	if _, err := ReadCSVFrom(strings.NewReader("")); err == nil {
		t.Error("ReadCSVFrom(empty) expected error for missing header")
	}
}

func TestReadCSVFrom_HeaderOnly(t *testing.T) {
	tbl, err := ReadCSVFrom(strings.NewReader("id,series_path\n"))
	if err != nil {
		t.Fatalf("ReadCSVFrom() error = %v", err)
	}
	if tbl.NumRows() != 0 {
		t.Errorf("NumRows() = %d, want 0", tbl.NumRows())
	}
}

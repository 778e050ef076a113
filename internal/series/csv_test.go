package series

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"testing"
)

func writeFile(t *testing.T, dir, name, content string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("writing fixture %s: %v", name, err)
	}
	return path
}

func TestCSVParser_Defaults(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "s.csv", "time,value\nt1,1.5\nt2,2\nt3,-3.25\n")

	p, err := NewCSVParser(Options{BaseDir: dir})
	if err != nil {
		t.Fatalf("NewCSVParser() error = %v", err)
	}

	rec, err := p.Parse(context.Background(), "s.csv")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if rec.Len() != 3 {
		t.Fatalf("Len() = %d, want 3", rec.Len())
	}
	wantTS := []string{"t1", "t2", "t3"}
	wantV := []float64{1.5, 2, -3.25}
	for i, p := range rec.Points {
		if p.Timestamp != wantTS[i] {
			t.Errorf("point %d timestamp = %q, want %q", i, p.Timestamp, wantTS[i])
		}
		if p.Value != wantV[i] {
			t.Errorf("point %d value = %v, want %v", i, p.Value, wantV[i])
		}
	}
}

func TestCSVParser_AbsoluteRef(t *testing.T) {
	dir := t.TempDir()
	path := writeFile(t, dir, "s.csv", "time,value\nt1,1\n")

	p, err := NewCSVParser(Options{BaseDir: t.TempDir()})
	if err != nil {
		t.Fatalf("NewCSVParser() error = %v", err)
	}

	// Absolute references bypass the base directory
	rec, err := p.Parse(context.Background(), path)
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if rec.Len() != 1 {
		t.Errorf("Len() = %d, want 1", rec.Len())
	}
}

func TestCSVParser_NotFound(t *testing.T) {
	p, err := NewCSVParser(Options{BaseDir: t.TempDir()})
	if err != nil {
		t.Fatalf("NewCSVParser() error = %v", err)
	}

	_, err = p.Parse(context.Background(), "nope.csv")
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("Parse() error = %v, want *NotFoundError", err)
	}
	if nf.Ref != "nope.csv" {
		t.Errorf("NotFoundError.Ref = %q, want %q", nf.Ref, "nope.csv")
	}
}

func TestCSVParser_BadValue(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "s.csv", "time,value\nt1,abc\n")

	p, _ := NewCSVParser(Options{BaseDir: dir})
	_, err := p.Parse(context.Background(), "s.csv")

	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("Parse() error = %v, want *ParseError", err)
	}
	if pe.Ref != "s.csv" {
		t.Errorf("ParseError.Ref = %q, want %q", pe.Ref, "s.csv")
	}
}

func TestCSVParser_DuplicateTimestamp(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "s.csv", "time,value\nt1,1\nt1,2\n")

	p, _ := NewCSVParser(Options{BaseDir: dir})
	_, err := p.Parse(context.Background(), "s.csv")

	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("Parse() error = %v, want *ParseError for duplicate timestamp", err)
	}
}

func TestCSVParser_UnorderedNumericTimestamps(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "s.csv", "time,value\n10,1\n5,2\n")

	p, _ := NewCSVParser(Options{BaseDir: dir})
	_, err := p.Parse(context.Background(), "s.csv")

	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("Parse() error = %v, want *ParseError for unordered timestamps", err)
	}
}

func TestCSVParser_TextLabelsNotOrderChecked(t *testing.T) {
	// Plain labels carry no usable order; only uniqueness applies.
	dir := t.TempDir()
	writeFile(t, dir, "s.csv", "time,value\nzulu,1\nalpha,2\n")

	p, _ := NewCSVParser(Options{BaseDir: dir})
	rec, err := p.Parse(context.Background(), "s.csv")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if rec.Len() != 2 {
		t.Errorf("Len() = %d, want 2", rec.Len())
	}
}

func TestCSVParser_CustomColumns(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "s.csv", "id,val,ts\nx,7,t1\ny,8,t2\n")

	p, err := NewCSVParser(Options{BaseDir: dir, TimeColumn: 2, ValueColumn: 1})
	if err != nil {
		t.Fatalf("NewCSVParser() error = %v", err)
	}

	rec, err := p.Parse(context.Background(), "s.csv")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if rec.Points[0].Timestamp != "t1" || rec.Points[0].Value != 7 {
		t.Errorf("point 0 = %+v, want {t1 7}", rec.Points[0])
	}
}

func TestCSVParser_NoHeader(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "s.csv", "t1,1\nt2,2\n")

	p, _ := NewCSVParser(Options{BaseDir: dir, NoHeader: true})
	rec, err := p.Parse(context.Background(), "s.csv")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if rec.Len() != 2 {
		t.Errorf("Len() = %d, want 2", rec.Len())
	}
}

func TestCSVParser_EmptyFile(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "s.csv", "time,value\n")

	p, _ := NewCSVParser(Options{BaseDir: dir})
	rec, err := p.Parse(context.Background(), "s.csv")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	// Zero observations parse fine; the pipeline classifies them later
	if rec.Len() != 0 {
		t.Errorf("Len() = %d, want 0", rec.Len())
	}
}

func TestCSVParser_CancelledContext(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "s.csv", "time,value\nt1,1\n")

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p, _ := NewCSVParser(Options{BaseDir: dir})
	if _, err := p.Parse(ctx, "s.csv"); !errors.Is(err, context.Canceled) {
		t.Errorf("Parse() error = %v, want context.Canceled", err)
	}
}

func TestCSVParser_SameTimeValueColumn(t *testing.T) {
	if _, err := NewCSVParser(Options{TimeColumn: 2, ValueColumn: 2}); err == nil {
		t.Error("NewCSVParser() with equal columns expected error")
	}
}

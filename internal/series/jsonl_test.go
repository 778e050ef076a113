package series

import (
	"context"
	"errors"
	"testing"
)

func TestJSONLParser_Defaults(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "s.jsonl", `{"timestamp":"t1","value":1.5}
{"timestamp":"t2","value":2}

{"timestamp":"t3","value":3}
`)

	p := NewJSONLParser(Options{BaseDir: dir})
	rec, err := p.Parse(context.Background(), "s.jsonl")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}

	if rec.Len() != 3 {
		t.Fatalf("Len() = %d, want 3 (blank lines skipped)", rec.Len())
	}
	if rec.Points[1].Timestamp != "t2" || rec.Points[1].Value != 2 {
		t.Errorf("point 1 = %+v, want {t2 2}", rec.Points[1])
	}
}

func TestJSONLParser_CustomFields(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "s.jsonl", `{"ts":"t1","reading":9.5}
`)

	p := NewJSONLParser(Options{BaseDir: dir, TimestampField: "ts", ValueField: "reading"})
	rec, err := p.Parse(context.Background(), "s.jsonl")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if rec.Points[0].Value != 9.5 {
		t.Errorf("value = %v, want 9.5", rec.Points[0].Value)
	}
}

func TestJSONLParser_NumericTimestamps(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "s.jsonl", `{"timestamp":100,"value":1}
{"timestamp":200,"value":2}
`)

	p := NewJSONLParser(Options{BaseDir: dir})
	rec, err := p.Parse(context.Background(), "s.jsonl")
	if err != nil {
		t.Fatalf("Parse() error = %v", err)
	}
	if rec.Points[0].Timestamp != "100" {
		t.Errorf("timestamp label = %q, want %q", rec.Points[0].Timestamp, "100")
	}
}

func TestJSONLParser_MissingField(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "s.jsonl", `{"timestamp":"t1"}
`)

	p := NewJSONLParser(Options{BaseDir: dir})
	_, err := p.Parse(context.Background(), "s.jsonl")

	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("Parse() error = %v, want *ParseError for missing value field", err)
	}
}

func TestJSONLParser_NonNumericValue(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "s.jsonl", `{"timestamp":"t1","value":"high"}
`)

	p := NewJSONLParser(Options{BaseDir: dir})
	_, err := p.Parse(context.Background(), "s.jsonl")

	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("Parse() error = %v, want *ParseError for non-numeric value", err)
	}
}

func TestJSONLParser_NotJSON(t *testing.T) {
	dir := t.TempDir()
	writeFile(t, dir, "s.jsonl", "t1,1\n")

	p := NewJSONLParser(Options{BaseDir: dir})
	_, err := p.Parse(context.Background(), "s.jsonl")

	var pe *ParseError
	if !errors.As(err, &pe) {
		t.Fatalf("Parse() error = %v, want *ParseError", err)
	}
}

func TestJSONLParser_NotFound(t *testing.T) {
	p := NewJSONLParser(Options{BaseDir: t.TempDir()})

	_, err := p.Parse(context.Background(), "nope.jsonl")
	var nf *NotFoundError
	if !errors.As(err, &nf) {
		t.Fatalf("Parse() error = %v, want *NotFoundError", err)
	}
}

package pipeline

import (
	"errors"
	"testing"

	"github.com/datashape/serieswide/internal/series"
)

func record(ref string, labels ...string) series.Record {
	points := make([]series.Point, len(labels))
	for i, l := range labels {
		points[i] = series.Point{Timestamp: l, Value: float64(i)}
	}
	return series.Record{Ref: ref, Points: points}
}

func TestValidate(t *testing.T) {
	records := []series.Record{
		record("a.csv", "t1", "t2", "t3"),
		record("b.csv", "t1", "t2", "t3"),
	}

	reference, err := Validate(records)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}
	if len(reference) != 3 || reference[0] != "t1" || reference[2] != "t3" {
		t.Errorf("reference = %v, want [t1 t2 t3]", reference)
	}
}

func TestValidate_Empty(t *testing.T) {
	if _, err := Validate(nil); !errors.Is(err, ErrEmptyInput) {
		t.Errorf("Validate(nil) error = %v, want ErrEmptyInput", err)
	}
}

func TestValidate_EmptySeries(t *testing.T) {
	tests := []struct {
		name    string
		records []series.Record
		wantRow int
	}{
		{"first empty", []series.Record{record("a.csv")}, 0},
		{"later empty", []series.Record{record("a.csv", "t1"), record("b.csv")}, 1},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Validate(tt.records)
			var es *EmptySeriesError
			if !errors.As(err, &es) {
				t.Fatalf("Validate() error = %v, want *EmptySeriesError", err)
			}
			if es.Row != tt.wantRow {
				t.Errorf("EmptySeriesError.Row = %d, want %d", es.Row, tt.wantRow)
			}
		})
	}
}

func TestValidate_Mismatch(t *testing.T) {
	records := []series.Record{
		record("a.csv", "t1", "t2", "t3"),
		record("b.csv", "t1", "t2", "t4"),
	}

	_, err := Validate(records)
	var tm *TimestampMismatchError
	if !errors.As(err, &tm) {
		t.Fatalf("Validate() error = %v, want *TimestampMismatchError", err)
	}
	if tm.Row != 1 {
		t.Errorf("Row = %d, want 1", tm.Row)
	}
	if tm.Ref != "b.csv" {
		t.Errorf("Ref = %q, want %q", tm.Ref, "b.csv")
	}
	if tm.Position != 2 {
		t.Errorf("Position = %d, want 2", tm.Position)
	}
	if tm.ExpectedSample != "t3" || tm.ActualSample != "t4" {
		t.Errorf("samples = %q/%q, want t3/t4", tm.ExpectedSample, tm.ActualSample)
	}
}

func TestValidate_LengthMismatch(t *testing.T) {
	tests := []struct {
		name         string
		second       series.Record
		wantPosition int
	}{
		{"shorter", record("b.csv", "t1", "t2"), 2},
		{"longer", record("b.csv", "t1", "t2", "t3", "t4"), 3},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			records := []series.Record{
				record("a.csv", "t1", "t2", "t3"),
				tt.second,
			}

			_, err := Validate(records)
			var tm *TimestampMismatchError
			if !errors.As(err, &tm) {
				t.Fatalf("Validate() error = %v, want *TimestampMismatchError", err)
			}
			if tm.ExpectedLen != 3 {
				t.Errorf("ExpectedLen = %d, want 3", tm.ExpectedLen)
			}
			if tm.ActualLen != tt.second.Len() {
				t.Errorf("ActualLen = %d, want %d", tm.ActualLen, tt.second.Len())
			}
			if tm.Position != tt.wantPosition {
				t.Errorf("Position = %d, want %d", tm.Position, tt.wantPosition)
			}
		})
	}
}

func TestValidate_SameLabelsDifferentOrder(t *testing.T) {
	records := []series.Record{
		record("a.csv", "t1", "t2", "t3"),
		record("b.csv", "t1", "t3", "t2"),
	}

	_, err := Validate(records)
	var tm *TimestampMismatchError
	if !errors.As(err, &tm) {
		t.Fatalf("Validate() error = %v, want *TimestampMismatchError for reordered labels", err)
	}
	if tm.Position != 1 {
		t.Errorf("Position = %d, want 1", tm.Position)
	}
}

func TestValidate_DoesNotMutate(t *testing.T) {
	records := []series.Record{
		record("a.csv", "t1", "t2"),
		record("b.csv", "t1", "t2"),
	}

	reference, err := Validate(records)
	if err != nil {
		t.Fatalf("Validate() error = %v", err)
	}

	// Mutating the returned reference must not reach into the records
	reference[0] = "changed"
	if records[0].Points[0].Timestamp == "changed" {
		t.Error("Validate() returned a slice aliasing record storage")
	}
}

package pipeline

// errors.go defines the terminal failure kinds the pipeline can report.
// Every kind carries the row index and/or file reference needed to localize
// the fault without re-running the pipeline. None of them trigger retries;
// retry policy belongs to the caller.

import (
	"errors"
	"fmt"
)

// ErrEmptyInput is returned when the input table has zero rows. An empty
// wide table is not a silent success; downstream consumers expect at least
// one row.
var ErrEmptyInput = errors.New("input table has no rows")

// MissingColumnError reports that the named reference column does not exist
// in the input table.
type MissingColumnError struct {
	Column    string
	Available []string
}

func (e *MissingColumnError) Error() string {
	return fmt.Sprintf("reference column %q not found (available: %v)", e.Column, e.Available)
}

// InvalidReferenceError reports a row whose reference cell holds no usable
// file reference.
type InvalidReferenceError struct {
	Row   int
	Value string
}

func (e *InvalidReferenceError) Error() string {
	return fmt.Sprintf("row %d: invalid file reference %q", e.Row, e.Value)
}

// EmptySeriesError reports a series file that parsed to zero observations.
type EmptySeriesError struct {
	Row int
	Ref string
}

func (e *EmptySeriesError) Error() string {
	return fmt.Sprintf("row %d: series %s contains no observations", e.Row, e.Ref)
}

// TimestampMismatchError reports a series whose timestamp sequence differs
// from the reference sequence established by the first series. Position is
// the first differing index; the samples hold the labels at that position
// (empty when the mismatch is past the shorter sequence's end).
type TimestampMismatchError struct {
	Row            int
	Ref            string
	ExpectedLen    int
	ActualLen      int
	Position       int
	ExpectedSample string
	ActualSample   string
}

func (e *TimestampMismatchError) Error() string {
	if e.ExpectedLen != e.ActualLen {
		return fmt.Sprintf("row %d: series %s has %d timestamps, expected %d (first difference at position %d: %q vs %q)",
			e.Row, e.Ref, e.ActualLen, e.ExpectedLen, e.Position, e.ExpectedSample, e.ActualSample)
	}
	return fmt.Sprintf("row %d: series %s timestamp mismatch at position %d: expected %q, got %q",
		e.Row, e.Ref, e.Position, e.ExpectedSample, e.ActualSample)
}

// RowError wraps a per-reference parse failure with the input row it belongs
// to, preserving the underlying cause for errors.As inspection.
type RowError struct {
	Row int
	Ref string
	Err error
}

func (e *RowError) Error() string {
	return fmt.Sprintf("row %d (%s): %v", e.Row, e.Ref, e.Err)
}

func (e *RowError) Unwrap() error {
	return e.Err
}

package pipeline

// validate.go enforces the load-bearing assumption of the whole system:
// every parsed series shares one identical ordered timestamp sequence. The
// check is fail-fast; the first deviating series aborts the run with enough
// detail to identify the offending source file.

import (
	"github.com/datashape/serieswide/internal/series"
)

// Validate establishes the reference timestamp sequence from the first
// record and checks every subsequent record against it for exact equality
// (same length, same labels, same order). Returns the reference sequence on
// success. Records are not mutated.
func Validate(records []series.Record) ([]string, error) {
	if len(records) == 0 {
		return nil, ErrEmptyInput
	}

	if records[0].Len() == 0 {
		return nil, &EmptySeriesError{Row: 0, Ref: records[0].Ref}
	}
	reference := records[0].Timestamps()

	for i := 1; i < len(records); i++ {
		rec := records[i]
		if rec.Len() == 0 {
			return nil, &EmptySeriesError{Row: i, Ref: rec.Ref}
		}
		if err := compare(i, rec, reference); err != nil {
			return nil, err
		}
	}

	return reference, nil
}

// compare checks one record's timestamps against the reference sequence and
// builds the mismatch report at the first differing position.
func compare(row int, rec series.Record, reference []string) error {
	n := len(reference)
	if rec.Len() < n {
		n = rec.Len()
	}

	for j := 0; j < n; j++ {
		if rec.Points[j].Timestamp != reference[j] {
			return &TimestampMismatchError{
				Row:            row,
				Ref:            rec.Ref,
				ExpectedLen:    len(reference),
				ActualLen:      rec.Len(),
				Position:       j,
				ExpectedSample: reference[j],
				ActualSample:   rec.Points[j].Timestamp,
			}
		}
	}

	if rec.Len() != len(reference) {
		mismatch := &TimestampMismatchError{
			Row:         row,
			Ref:         rec.Ref,
			ExpectedLen: len(reference),
			ActualLen:   rec.Len(),
			Position:    n,
		}
		if n < len(reference) {
			mismatch.ExpectedSample = reference[n]
		}
		if n < rec.Len() {
			mismatch.ActualSample = rec.Points[n].Timestamp
		}
		return mismatch
	}

	return nil
}

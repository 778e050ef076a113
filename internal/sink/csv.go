package sink

// csv.go writes the wide table as a CSV file: header row of timestamp
// labels, then one row of values per series. Floats are formatted with the
// shortest round-trippable representation so repeated runs produce
// byte-identical output.

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"

	"github.com/datashape/serieswide/internal/table"
)

// CSVSink writes the wide table to a CSV file at Path.
type CSVSink struct {
	Path string
}

// Write implements Sink.
func (s *CSVSink) Write(ctx context.Context, w *table.Wide) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := os.Create(s.Path)
	if err != nil {
		return fmt.Errorf("create output file %s: %w", s.Path, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(w.Columns); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	record := make([]string, len(w.Columns))
	for i, row := range w.Rows {
		for j, v := range row {
			record[j] = strconv.FormatFloat(v, 'g', -1, 64)
		}
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing output: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing output file: %w", err)
	}
	return nil
}

// WriteLong implements LongSink.
func (s *CSVSink) WriteLong(ctx context.Context, l *table.Long) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	f, err := os.Create(s.Path)
	if err != nil {
		return fmt.Errorf("create output file %s: %w", s.Path, err)
	}
	defer f.Close()

	cw := csv.NewWriter(f)
	if err := cw.Write(l.ColumnNames()); err != nil {
		return fmt.Errorf("writing header: %w", err)
	}

	record := make([]string, len(l.InputColumns)+3)
	for i, row := range l.Rows {
		n := copy(record, row.Input)
		record[n] = strconv.Itoa(row.SeriesID)
		record[n+1] = row.Timestamp
		record[n+2] = strconv.FormatFloat(row.Value, 'g', -1, 64)
		if err := cw.Write(record); err != nil {
			return fmt.Errorf("writing row %d: %w", i, err)
		}
	}

	cw.Flush()
	if err := cw.Error(); err != nil {
		return fmt.Errorf("flushing output: %w", err)
	}
	if err := f.Close(); err != nil {
		return fmt.Errorf("closing output file: %w", err)
	}
	return nil
}

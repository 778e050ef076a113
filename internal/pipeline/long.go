package pipeline

// long.go implements the stacked output shape. Series are resolved and
// parsed exactly as for the wide shape, but instead of pivoting timestamps
// into columns, every observation becomes one output row carrying the fields
// of the input row that referenced it. Stacking does not require series to
// share a timestamp sequence, so this path skips cross-series validation.

import (
	"context"
	"time"

	"github.com/datashape/serieswide/internal/series"
	"github.com/datashape/serieswide/internal/table"
)

// AssembleLong stacks the parsed series into a long table. Output rows
// follow the input: all of row 0's observations, then row 1's, and so on,
// each series in its own observation order. records[i] must belong to input
// row i. The input table is not mutated.
func AssembleLong(t *table.Table, records []series.Record) *table.Long {
	total := 0
	for _, rec := range records {
		total += rec.Len()
	}

	long := &table.Long{
		InputColumns: append([]string(nil), t.Columns...),
		Rows:         make([]table.LongRow, 0, total),
	}

	for i, rec := range records {
		input := make([]string, len(t.Columns))
		for c := range t.Columns {
			input[c] = t.Cell(i, c)
		}
		for _, pt := range rec.Points {
			long.Rows = append(long.Rows, table.LongRow{
				Input:     input,
				SeriesID:  i,
				Timestamp: pt.Timestamp,
				Value:     pt.Value,
			})
		}
	}

	return long
}

// RunLong executes the stacked variant of the pipeline against the input
// table. Parsing behaves exactly as in Run: bounded parallelism, fail-fast
// on the first failure, no partial output. A series with zero observations
// contributes zero rows rather than failing the run.
func (p *Pipeline) RunLong(ctx context.Context, t *table.Table, refColumn string) (*table.Long, error) {
	start := time.Now()
	logger := p.logger
	logger.Info("pipeline starting", "shape", "long", "rows", t.NumRows(), "reference_column", refColumn)

	refs, err := Resolve(t, refColumn)
	if err != nil {
		logger.Error("reference resolution failed", "error", err)
		return nil, err
	}
	if len(refs) == 0 {
		logger.Error("input table has no rows")
		return nil, ErrEmptyInput
	}

	records, err := p.parseAll(ctx, refs)
	if err != nil {
		logger.Error("series parsing failed", "error", err)
		return nil, err
	}
	logger.Debug("all series parsed", "count", len(records))

	long := AssembleLong(t, records)
	logger.Info("pipeline complete",
		"shape", "long",
		"rows", long.NumRows(),
		"elapsed", time.Since(start),
	)
	return long, nil
}

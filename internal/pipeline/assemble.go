package pipeline

// assemble.go builds the wide output table from validated records. Assembly
// performs no further validation; it runs only after Validate has accepted
// every record.

import (
	"github.com/datashape/serieswide/internal/series"
	"github.com/datashape/serieswide/internal/table"
)

// Assemble produces the M×N wide table: row i holds the values of record i
// in timestamp order, and the column labels are the reference timestamp
// sequence. Construction is fully deterministic; identical input always
// yields an identical table.
func Assemble(records []series.Record, reference []string) *table.Wide {
	columns := make([]string, len(reference))
	copy(columns, reference)

	rows := make([][]float64, len(records))
	for i, rec := range records {
		rows[i] = rec.Values()
	}

	return &table.Wide{Columns: columns, Rows: rows}
}

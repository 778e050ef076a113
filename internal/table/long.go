package table

// long.go defines the stacked output shape: instead of pivoting each series
// into one row of timestamp columns, every observation becomes its own row
// joined with the fields of the input row that referenced it.

// Names of the columns appended after the input columns in long output.
const (
	SeriesIDColumn  = "series_id"
	TimestampColumn = "timestamp"
	ValueColumn     = "value"
)

// Long is the stacked output table: one row per observation, in input row
// order and then observation order within each series.
type Long struct {
	// InputColumns are the input table's column names, in input order.
	InputColumns []string
	Rows         []LongRow
}

// LongRow joins one input row with one observation of its series.
type LongRow struct {
	// Input holds the originating input row's cells, aligned with
	// InputColumns. Rows from the same series share the slice; treat it as
	// read-only.
	Input []string

	// SeriesID is the input row index the observation came from.
	SeriesID int

	Timestamp string
	Value     float64
}

// NumRows returns the number of observation rows.
func (l *Long) NumRows() int {
	return len(l.Rows)
}

// ColumnNames returns the full output header: the input columns followed by
// series_id, timestamp, and value.
func (l *Long) ColumnNames() []string {
	out := make([]string, 0, len(l.InputColumns)+3)
	out = append(out, l.InputColumns...)
	out = append(out, SeriesIDColumn, TimestampColumn, ValueColumn)
	return out
}

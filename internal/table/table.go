// Package table provides the ordered, in-memory table structures that flow
// through the pipeline: the caller-supplied input table and the wide output
// table. Both preserve row and column order; neither is backed by maps on
// any ordering-sensitive path.
package table

// Table is an ordered table with named columns and rows of string cells.
// The pipeline treats it as read-only input.
type Table struct {
	Columns []string
	Rows    [][]string
}

// New builds a Table from a header and rows.
func New(columns []string, rows [][]string) *Table {
	return &Table{Columns: columns, Rows: rows}
}

// NumRows returns the number of data rows.
func (t *Table) NumRows() int {
	return len(t.Rows)
}

// ColumnIndex returns the position of the named column.
// Returns false if the column does not exist.
func (t *Table) ColumnIndex(name string) (int, bool) {
	for i, c := range t.Columns {
		if c == name {
			return i, true
		}
	}
	return 0, false
}

// Cell returns the cell at (row, col). Rows shorter than the header are
// treated as having empty trailing cells.
func (t *Table) Cell(row, col int) string {
	r := t.Rows[row]
	if col >= len(r) {
		return ""
	}
	return r[col]
}

// Wide is the M×N output table: one row per input series, one float64 column
// per shared timestamp. Columns holds the timestamp labels in series order.
type Wide struct {
	Columns []string
	Rows    [][]float64
}

// NumRows returns the number of series rows.
func (w *Wide) NumRows() int {
	return len(w.Rows)
}

// NumColumns returns the number of timestamp columns.
func (w *Wide) NumColumns() int {
	return len(w.Columns)
}

package pipeline

// resolve.go extracts the ordered list of file references from the
// designated column of the input table. Pure read, no file access.

import (
	"strings"

	"github.com/datashape/serieswide/internal/table"
)

// Resolve returns one file reference per input row, in row order.
// Fails with *MissingColumnError if the named column is absent and with
// *InvalidReferenceError for a row whose cell is empty or blank.
func Resolve(t *table.Table, column string) ([]string, error) {
	idx, ok := t.ColumnIndex(column)
	if !ok {
		available := make([]string, len(t.Columns))
		copy(available, t.Columns)
		return nil, &MissingColumnError{Column: column, Available: available}
	}

	refs := make([]string, t.NumRows())
	for i := range t.Rows {
		ref := t.Cell(i, idx)
		if strings.TrimSpace(ref) == "" || strings.ContainsRune(ref, '\x00') {
			return nil, &InvalidReferenceError{Row: i, Value: ref}
		}
		refs[i] = ref
	}
	return refs, nil
}

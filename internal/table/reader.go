package table

// reader.go provides the CSV input-table collaborator: it reads a header row
// plus data rows into a Table, stripping the UTF-8 BOM that Windows tools
// prepend to exported files.

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"fmt"
	"io"
	"os"
)

// ReadCSV reads a CSV file into a Table. The first record is the header.
func ReadCSV(path string) (*Table, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open input table %s: %w", path, err)
	}
	defer f.Close()

	t, err := ReadCSVFrom(f)
	if err != nil {
		return nil, fmt.Errorf("read input table %s: %w", path, err)
	}
	return t, nil
}

// ReadCSVFrom reads CSV data from r into a Table. The first record is the
// header. Rows may be ragged; short rows read back as empty trailing cells.
func ReadCSVFrom(r io.Reader) (*Table, error) {
	cr := csv.NewReader(NewBOMSkippingReader(r))
	cr.FieldsPerRecord = -1

	header, err := cr.Read()
	if err == io.EOF {
		return nil, fmt.Errorf("missing header row")
	}
	if err != nil {
		return nil, fmt.Errorf("reading header: %w", err)
	}

	var rows [][]string
	for {
		rec, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading row %d: %w", len(rows)+1, err)
		}
		rows = append(rows, rec)
	}

	return New(header, rows), nil
}

// utf8BOM is the byte order mark Windows tools prepend to exported CSV files.
var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// NewBOMSkippingReader returns a reader that yields r's content with a
// leading UTF-8 BOM removed. Content shorter than the BOM, or starting with
// anything else, passes through untouched.
func NewBOMSkippingReader(r io.Reader) io.Reader {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		br.Discard(len(utf8BOM))
	}
	return br
}

package series

// csv.go implements the CSV series format: one observation per record, with
// positional time and value columns (defaults 0 and 1) and an optional
// header row.

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"

	"github.com/datashape/serieswide/internal/table"
)

func init() {
	Register("csv", func(opts Options) (Parser, error) {
		return NewCSVParser(opts)
	})
}

// CSVParser parses one series file in CSV form.
type CSVParser struct {
	baseDir     string
	timeColumn  int
	valueColumn int
	noHeader    bool
}

// NewCSVParser builds a CSV parser from options. The zero options give the
// conventional layout: timestamp in column 0, value in column 1, header row
// present.
func NewCSVParser(opts Options) (*CSVParser, error) {
	if opts.TimeColumn < 0 || opts.ValueColumn < 0 {
		return nil, fmt.Errorf("csv parser: column indices must be non-negative")
	}
	if opts.TimeColumn == opts.ValueColumn && !(opts.TimeColumn == 0 && opts.ValueColumn == 0) {
		return nil, fmt.Errorf("csv parser: time and value columns must differ")
	}
	p := &CSVParser{
		baseDir:     opts.BaseDir,
		timeColumn:  opts.TimeColumn,
		valueColumn: opts.ValueColumn,
		noHeader:    opts.NoHeader,
	}
	// Zero options mean "use the defaults", not "both columns are 0".
	if opts.TimeColumn == 0 && opts.ValueColumn == 0 {
		p.valueColumn = 1
	}
	return p, nil
}

// Parse implements Parser.
func (p *CSVParser) Parse(ctx context.Context, ref string) (Record, error) {
	if err := ctx.Err(); err != nil {
		return Record{}, err
	}

	path := ref
	if p.baseDir != "" && !filepath.IsAbs(ref) {
		path = filepath.Join(p.baseDir, ref)
	}

	f, err := os.Open(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return Record{}, &NotFoundError{Ref: ref, Err: err}
		}
		return Record{}, &ParseError{Ref: ref, Reason: "open failed", Err: err}
	}
	defer f.Close()

	rec, err := p.parse(ctx, ref, f)
	if err != nil {
		return Record{}, err
	}
	return rec, nil
}

func (p *CSVParser) parse(ctx context.Context, ref string, r io.Reader) (Record, error) {
	cr := csv.NewReader(table.NewBOMSkippingReader(r))
	cr.FieldsPerRecord = -1

	if !p.noHeader {
		if _, err := cr.Read(); err != nil && err != io.EOF {
			return Record{}, &ParseError{Ref: ref, Reason: "reading header", Err: err}
		}
	}

	need := p.timeColumn
	if p.valueColumn > need {
		need = p.valueColumn
	}

	var points []Point
	line := 0
	for {
		if err := ctx.Err(); err != nil {
			return Record{}, err
		}

		row, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return Record{}, &ParseError{Ref: ref, Reason: fmt.Sprintf("reading record %d", line), Err: err}
		}
		line++

		if len(row) <= need {
			return Record{}, &ParseError{
				Ref:    ref,
				Reason: fmt.Sprintf("record %d has %d fields, need at least %d", line, len(row), need+1),
			}
		}

		ts := strings.TrimSpace(row[p.timeColumn])
		if ts == "" {
			return Record{}, &ParseError{Ref: ref, Reason: fmt.Sprintf("record %d has an empty timestamp", line)}
		}

		v, err := strconv.ParseFloat(strings.TrimSpace(row[p.valueColumn]), 64)
		if err != nil {
			return Record{}, &ParseError{
				Ref:    ref,
				Reason: fmt.Sprintf("record %d has a non-numeric value %q", line, row[p.valueColumn]),
				Err:    err,
			}
		}

		points = append(points, Point{Timestamp: ts, Value: v})
	}

	if err := checkLabels(points); err != nil {
		return Record{}, &ParseError{Ref: ref, Reason: err.Error()}
	}

	return Record{Ref: ref, Points: points}, nil
}

package sink

// arrow.go writes the wide table as an Arrow IPC file with one float64
// field per timestamp column, for handoff to columnar tooling.

import (
	"context"
	"fmt"
	"os"

	"github.com/apache/arrow/go/v18/arrow"
	"github.com/apache/arrow/go/v18/arrow/array"
	"github.com/apache/arrow/go/v18/arrow/ipc"
	"github.com/apache/arrow/go/v18/arrow/memory"

	"github.com/datashape/serieswide/internal/table"
)

// ArrowSink writes the wide table to an Arrow IPC file at Path.
type ArrowSink struct {
	Path string

	// Mem defaults to the Go allocator when nil.
	Mem memory.Allocator
}

// Write implements Sink.
func (s *ArrowSink) Write(ctx context.Context, w *table.Wide) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	mem := s.Mem
	if mem == nil {
		mem = memory.NewGoAllocator()
	}

	rec, err := NewArrowRecord(w, mem)
	if err != nil {
		return err
	}
	defer rec.Release()

	return s.writeRecord(rec, mem)
}

// WriteLong implements LongSink.
func (s *ArrowSink) WriteLong(ctx context.Context, l *table.Long) error {
	if err := ctx.Err(); err != nil {
		return err
	}

	mem := s.Mem
	if mem == nil {
		mem = memory.NewGoAllocator()
	}

	rec, err := NewLongArrowRecord(l, mem)
	if err != nil {
		return err
	}
	defer rec.Release()

	return s.writeRecord(rec, mem)
}

func (s *ArrowSink) writeRecord(rec arrow.Record, mem memory.Allocator) error {
	f, err := os.Create(s.Path)
	if err != nil {
		return fmt.Errorf("create arrow file %s: %w", s.Path, err)
	}
	defer f.Close()

	fw, err := ipc.NewFileWriter(f, ipc.WithSchema(rec.Schema()), ipc.WithAllocator(mem))
	if err != nil {
		return fmt.Errorf("creating arrow writer: %w", err)
	}
	if err := fw.Write(rec); err != nil {
		fw.Close()
		return fmt.Errorf("writing arrow record: %w", err)
	}
	if err := fw.Close(); err != nil {
		return fmt.Errorf("closing arrow writer: %w", err)
	}
	return f.Close()
}

// NewLongArrowRecord converts the long table to an Arrow record: one string
// field per input column, then an int64 series_id, a string timestamp, and a
// float64 value. The caller owns the returned record and must Release it.
func NewLongArrowRecord(l *table.Long, mem memory.Allocator) (arrow.Record, error) {
	names := l.ColumnNames()
	fields := make([]arrow.Field, len(names))
	for i, c := range l.InputColumns {
		fields[i] = arrow.Field{Name: c, Type: arrow.BinaryTypes.String}
	}
	n := len(l.InputColumns)
	fields[n] = arrow.Field{Name: table.SeriesIDColumn, Type: arrow.PrimitiveTypes.Int64}
	fields[n+1] = arrow.Field{Name: table.TimestampColumn, Type: arrow.BinaryTypes.String}
	fields[n+2] = arrow.Field{Name: table.ValueColumn, Type: arrow.PrimitiveTypes.Float64}
	schema := arrow.NewSchema(fields, nil)

	b := array.NewRecordBuilder(mem, schema)
	defer b.Release()

	for j := range l.InputColumns {
		sb := b.Field(j).(*array.StringBuilder)
		sb.Reserve(len(l.Rows))
		for _, row := range l.Rows {
			sb.Append(row.Input[j])
		}
	}
	ib := b.Field(n).(*array.Int64Builder)
	tb := b.Field(n + 1).(*array.StringBuilder)
	vb := b.Field(n + 2).(*array.Float64Builder)
	ib.Reserve(len(l.Rows))
	tb.Reserve(len(l.Rows))
	vb.Reserve(len(l.Rows))
	for _, row := range l.Rows {
		ib.Append(int64(row.SeriesID))
		tb.Append(row.Timestamp)
		vb.Append(row.Value)
	}

	return b.NewRecord(), nil
}

// NewArrowRecord converts the wide table to an Arrow record with one float64
// field per timestamp column. The caller owns the returned record and must
// Release it.
func NewArrowRecord(w *table.Wide, mem memory.Allocator) (arrow.Record, error) {
	if len(w.Columns) == 0 {
		return nil, fmt.Errorf("wide table has no columns")
	}

	fields := make([]arrow.Field, len(w.Columns))
	for i, c := range w.Columns {
		fields[i] = arrow.Field{Name: c, Type: arrow.PrimitiveTypes.Float64}
	}
	schema := arrow.NewSchema(fields, nil)

	b := array.NewRecordBuilder(mem, schema)
	defer b.Release()

	for j := range w.Columns {
		fb := b.Field(j).(*array.Float64Builder)
		fb.Reserve(len(w.Rows))
		for _, row := range w.Rows {
			fb.Append(row[j])
		}
	}

	return b.NewRecord(), nil
}

package sink

// postgres.go loads the wide table into a Postgres table: a row_id column
// preserving input row order plus one double-precision column per timestamp,
// bulk-loaded with COPY. The target table is replaced on each run.

import (
	"context"
	"fmt"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/datashape/serieswide/internal/table"
)

// rowIDColumn orders output rows; it always matches the input row index.
const rowIDColumn = "row_id"

// PGConn is the subset of pgx operations the sink needs.
// Satisfied by *pgxpool.Pool, *pgx.Conn, and pgx.Tx.
type PGConn interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	CopyFrom(ctx context.Context, tableName pgx.Identifier, columnNames []string, rowSrc pgx.CopyFromSource) (int64, error)
}

// PostgresSink writes the wide table into the named Postgres table.
type PostgresSink struct {
	Conn  PGConn
	Table string
}

// Write implements Sink. It drops and recreates the target table, then
// COPYs all rows in input order.
func (s *PostgresSink) Write(ctx context.Context, w *table.Wide) error {
	if s.Table == "" {
		return fmt.Errorf("postgres sink: table name is required")
	}
	for _, c := range w.Columns {
		if c == rowIDColumn {
			return fmt.Errorf("postgres sink: timestamp label %q collides with the row id column", c)
		}
	}

	target := pgx.Identifier{s.Table}

	if _, err := s.Conn.Exec(ctx, "DROP TABLE IF EXISTS "+target.Sanitize()); err != nil {
		return fmt.Errorf("dropping existing table %s: %w", s.Table, err)
	}

	if _, err := s.Conn.Exec(ctx, createTableSQL(target, w.Columns)); err != nil {
		return fmt.Errorf("creating table %s: %w", s.Table, err)
	}

	columns := make([]string, 0, len(w.Columns)+1)
	columns = append(columns, rowIDColumn)
	columns = append(columns, w.Columns...)

	rows := make([][]any, len(w.Rows))
	for i, row := range w.Rows {
		vals := make([]any, 0, len(row)+1)
		vals = append(vals, i)
		for _, v := range row {
			vals = append(vals, v)
		}
		rows[i] = vals
	}

	n, err := s.Conn.CopyFrom(ctx, target, columns, pgx.CopyFromRows(rows))
	if err != nil {
		return fmt.Errorf("copying rows into %s: %w", s.Table, err)
	}
	if n != int64(len(rows)) {
		return fmt.Errorf("copy into %s wrote %d of %d rows", s.Table, n, len(rows))
	}
	return nil
}

// WriteLong implements LongSink. The target table gets one text column per
// input column, plus series_id, timestamp, and value columns; a row_id
// primary key preserves observation order.
func (s *PostgresSink) WriteLong(ctx context.Context, l *table.Long) error {
	if s.Table == "" {
		return fmt.Errorf("postgres sink: table name is required")
	}
	reserved := map[string]bool{
		rowIDColumn:           true,
		table.SeriesIDColumn:  true,
		table.TimestampColumn: true,
		table.ValueColumn:     true,
	}
	for _, c := range l.InputColumns {
		if reserved[c] {
			return fmt.Errorf("postgres sink: input column %q collides with a generated column", c)
		}
	}

	target := pgx.Identifier{s.Table}

	if _, err := s.Conn.Exec(ctx, "DROP TABLE IF EXISTS "+target.Sanitize()); err != nil {
		return fmt.Errorf("dropping existing table %s: %w", s.Table, err)
	}

	if _, err := s.Conn.Exec(ctx, createLongTableSQL(target, l.InputColumns)); err != nil {
		return fmt.Errorf("creating table %s: %w", s.Table, err)
	}

	columns := make([]string, 0, len(l.InputColumns)+4)
	columns = append(columns, rowIDColumn)
	columns = append(columns, l.InputColumns...)
	columns = append(columns, table.SeriesIDColumn, table.TimestampColumn, table.ValueColumn)

	rows := make([][]any, len(l.Rows))
	for i, row := range l.Rows {
		vals := make([]any, 0, len(columns))
		vals = append(vals, i)
		for _, c := range row.Input {
			vals = append(vals, c)
		}
		vals = append(vals, row.SeriesID, row.Timestamp, row.Value)
		rows[i] = vals
	}

	n, err := s.Conn.CopyFrom(ctx, target, columns, pgx.CopyFromRows(rows))
	if err != nil {
		return fmt.Errorf("copying rows into %s: %w", s.Table, err)
	}
	if n != int64(len(rows)) {
		return fmt.Errorf("copy into %s wrote %d of %d rows", s.Table, n, len(rows))
	}
	return nil
}

func createTableSQL(target pgx.Identifier, columns []string) string {
	var b strings.Builder
	b.WriteString("CREATE TABLE ")
	b.WriteString(target.Sanitize())
	b.WriteString(" (")
	b.WriteString(pgx.Identifier{rowIDColumn}.Sanitize())
	b.WriteString(" integer PRIMARY KEY")
	for _, c := range columns {
		b.WriteString(", ")
		b.WriteString(pgx.Identifier{c}.Sanitize())
		b.WriteString(" double precision")
	}
	b.WriteString(")")
	return b.String()
}

func createLongTableSQL(target pgx.Identifier, inputColumns []string) string {
	var b strings.Builder
	b.WriteString("CREATE TABLE ")
	b.WriteString(target.Sanitize())
	b.WriteString(" (")
	b.WriteString(pgx.Identifier{rowIDColumn}.Sanitize())
	b.WriteString(" integer PRIMARY KEY")
	for _, c := range inputColumns {
		b.WriteString(", ")
		b.WriteString(pgx.Identifier{c}.Sanitize())
		b.WriteString(" text")
	}
	b.WriteString(", ")
	b.WriteString(pgx.Identifier{table.SeriesIDColumn}.Sanitize())
	b.WriteString(" integer, ")
	b.WriteString(pgx.Identifier{table.TimestampColumn}.Sanitize())
	b.WriteString(" text, ")
	b.WriteString(pgx.Identifier{table.ValueColumn}.Sanitize())
	b.WriteString(" double precision)")
	return b.String()
}

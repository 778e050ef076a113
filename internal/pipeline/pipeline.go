// Package pipeline implements the load-validate-assemble pipeline: it
// resolves file references out of an input table, parses each referenced
// series in parallel, enforces timestamp consistency across all series, and
// assembles the wide output table. A stacked long-format variant is
// available through RunLong. The whole run is one synchronous call with no
// state shared across invocations.
package pipeline

import (
	"context"
	"log/slog"
	"runtime"
	"time"

	"golang.org/x/sync/errgroup"

	"github.com/datashape/serieswide/internal/series"
	"github.com/datashape/serieswide/internal/table"
)

// Pipeline coordinates one load-validate-assemble run. Safe for concurrent
// use; each Run is independent.
type Pipeline struct {
	parser  series.Parser
	workers int
	logger  *slog.Logger
}

// New builds a Pipeline around the given series parser. workers bounds the
// number of files parsed in parallel; values <= 0 fall back to the host CPU
// count.
func New(parser series.Parser, workers int) *Pipeline {
	if workers <= 0 {
		workers = runtime.NumCPU()
	}
	return &Pipeline{
		parser:  parser,
		workers: workers,
		logger:  slog.Default(),
	}
}

// SetLogger replaces the pipeline's logger. Intended for callers that carry
// their own structured context.
func (p *Pipeline) SetLogger(l *slog.Logger) {
	p.logger = l
}

// Run executes the pipeline against the input table: resolve references from
// the named column, parse every series, validate timestamp consistency, and
// assemble the wide table. It returns either a fully validated table or a
// classified error; it never returns partial output.
//
// Parsing is fail-fast: the first parse failure cancels in-flight parses and
// aborts the run, wrapped in a *RowError naming the offending row.
func (p *Pipeline) Run(ctx context.Context, t *table.Table, refColumn string) (*table.Wide, error) {
	start := time.Now()
	logger := p.logger
	logger.Info("pipeline starting", "rows", t.NumRows(), "reference_column", refColumn)

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

	reference, err := Validate(records)
	if err != nil {
		logger.Error("timestamp validation failed", "error", err)
		return nil, err
	}

	wide := Assemble(records, reference)
	logger.Info("pipeline complete",
		"rows", wide.NumRows(),
		"columns", wide.NumColumns(),
		"elapsed", time.Since(start),
	)
	return wide, nil
}

// parseAll parses every reference with bounded parallelism, collecting
// results by row index so completion order never affects row order. The
// errgroup cancels the shared context on the first failure, stopping
// in-flight parses early.
func (p *Pipeline) parseAll(ctx context.Context, refs []string) ([]series.Record, error) {
	records := make([]series.Record, len(refs))

	g, ctx := errgroup.WithContext(ctx)
	g.SetLimit(p.workers)

	for i, ref := range refs {
		g.Go(func() error {
			rec, err := p.parser.Parse(ctx, ref)
			if err != nil {
				return &RowError{Row: i, Ref: ref, Err: err}
			}
			records[i] = rec
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}
	return records, nil
}

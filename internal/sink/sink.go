// Package sink provides output collaborators that persist the wide table.
// Each sink is a strategy over a single operation; the pipeline core never
// depends on any particular output format.
package sink

import (
	"context"

	"github.com/datashape/serieswide/internal/table"
)

// Sink writes one wide table to a destination.
type Sink interface {
	Write(ctx context.Context, w *table.Wide) error
}

// LongSink is implemented by sinks that can also write the stacked
// long-format table. All sinks in this package implement it.
type LongSink interface {
	WriteLong(ctx context.Context, l *table.Long) error
}

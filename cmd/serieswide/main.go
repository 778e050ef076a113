package main

import (
	"context"
	"fmt"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/joho/godotenv"

	"github.com/datashape/serieswide/internal/config"
	"github.com/datashape/serieswide/internal/logging"
	"github.com/datashape/serieswide/internal/manifest"
	"github.com/datashape/serieswide/internal/pipeline"
	"github.com/datashape/serieswide/internal/series"
	"github.com/datashape/serieswide/internal/sink"
	"github.com/datashape/serieswide/internal/table"
)

func main() {
	if len(os.Args) != 2 {
		fmt.Fprintf(os.Stderr, "usage: %s <manifest.yaml>\n", os.Args[0])
		os.Exit(2)
	}

	// Load .env file if it exists (Overload overwrites existing env vars)
	if err := godotenv.Overload(); err != nil {
		slog.Info("no .env file found, using environment variables")
	} else {
		slog.Info("loaded .env file (overwriting existing env vars)")
	}

	// Load and validate configuration
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load configuration", "error", err)
		os.Exit(1)
	}

	// Setup structured logging based on config
	logging.Setup(cfg.Logging.Level, cfg.Logging.Format)

	if err := run(cfg, os.Args[1]); err != nil {
		slog.Error("job failed", "error", err)
		os.Exit(1)
	}
}

func run(cfg *config.Config, manifestPath string) error {
	m, err := manifest.Load(manifestPath)
	if err != nil {
		return err
	}

	logger, runID := logging.NewRunLogger()
	logger.Info("job starting",
		"manifest", manifestPath,
		"input", m.Input.Path,
		"format", m.Series.Format,
		"shape", m.Shape,
		"outputs", len(m.Outputs),
	)

	// Cancel on SIGINT/SIGTERM so in-flight parses stop promptly
	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()
	ctx, cancel := context.WithTimeout(ctx, cfg.Pipeline.Timeout)
	defer cancel()

	parser, err := series.NewParser(m.Series.Format, m.ParserOptions())
	if err != nil {
		return err
	}

	tbl, err := table.ReadCSV(m.Input.Path)
	if err != nil {
		return err
	}

	p := pipeline.New(parser, cfg.Pipeline.Workers)
	p.SetLogger(logger)

	// The sinks write whichever shape the manifest selected.
	var write func(s sink.Sink) error
	var rows int
	if m.Shape == manifest.ShapeLong {
		long, err := p.RunLong(ctx, tbl, m.Input.ReferenceColumn)
		if err != nil {
			return err
		}
		rows = long.NumRows()
		write = func(s sink.Sink) error {
			ls, ok := s.(sink.LongSink)
			if !ok {
				return fmt.Errorf("sink does not support the long shape")
			}
			return ls.WriteLong(ctx, long)
		}
	} else {
		wide, err := p.Run(ctx, tbl, m.Input.ReferenceColumn)
		if err != nil {
			return err
		}
		rows = wide.NumRows()
		write = func(s sink.Sink) error {
			return s.Write(ctx, wide)
		}
	}

	sinks, cleanup, err := buildSinks(ctx, cfg, m)
	if err != nil {
		return err
	}
	defer cleanup()

	for i, s := range sinks {
		if err := write(s); err != nil {
			return fmt.Errorf("output %d (%s): %w", i, m.Outputs[i].Kind, err)
		}
		logger.Info("output written", "kind", m.Outputs[i].Kind)
	}

	logger.Info("job complete", "run_id", runID, "shape", m.Shape, "rows", rows)
	return nil
}

// buildSinks turns manifest outputs into sinks, connecting to Postgres only
// when a postgres output is present.
func buildSinks(ctx context.Context, cfg *config.Config, m manifest.Manifest) ([]sink.Sink, func(), error) {
	cleanup := func() {}
	var pool *pgxpool.Pool

	sinks := make([]sink.Sink, 0, len(m.Outputs))
	for _, out := range m.Outputs {
		switch out.Kind {
		case manifest.KindCSV:
			sinks = append(sinks, &sink.CSVSink{Path: out.Path})

		case manifest.KindArrow:
			sinks = append(sinks, &sink.ArrowSink{Path: out.Path})

		case manifest.KindPostgres:
			if pool == nil {
				if cfg.Database.URL == "" {
					return nil, cleanup, fmt.Errorf("manifest has a postgres output but DATABASE_URL is not set")
				}
				poolConfig, err := pgxpool.ParseConfig(cfg.Database.URL)
				if err != nil {
					return nil, cleanup, fmt.Errorf("parsing database URL: %w", err)
				}
				poolConfig.MaxConns = int32(cfg.Database.MaxConns)

				pool, err = pgxpool.NewWithConfig(ctx, poolConfig)
				if err != nil {
					return nil, cleanup, fmt.Errorf("connecting to database: %w", err)
				}
				cleanup = pool.Close

				if err := pool.Ping(ctx); err != nil {
					pool.Close()
					return nil, func() {}, fmt.Errorf("pinging database: %w", err)
				}
			}
			sinks = append(sinks, &sink.PostgresSink{Conn: pool, Table: out.Table})
		}
	}
	return sinks, cleanup, nil
}

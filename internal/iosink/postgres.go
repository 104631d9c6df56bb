package iosink

import (
	"context"
	"fmt"
	"log/slog"
	"maps"
	"slices"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gnclimate/internal/iodb"
	"github.com/gnames/gnclimate/pkg/aggregate"
	"github.com/gnames/gnclimate/pkg/climate"
	"github.com/gnames/gnclimate/pkg/config"
	"github.com/gnames/gnclimate/pkg/db"
	"github.com/gnames/gnclimate/pkg/lifecycle"
	"github.com/gnames/gnclimate/pkg/schema"
	"github.com/jackc/pgx/v5"
)

type pgSink struct {
	operator  db.Operator
	batchSize int
	// tables that received rows and need fresh planner statistics
	touched map[string]struct{}
}

// NewPostgres creates a sink that stores results in long form in
// PostgreSQL. The operator must be connected and the schema created
// with 'gnclimate create'. The sink closes the operator on Close.
func NewPostgres(
	ctx context.Context,
	op db.Operator,
	cfg *config.DatabaseConfig,
) (lifecycle.Sink, error) {
	exists, err := op.TableExists(ctx, schema.Run{}.TableName())
	if err != nil {
		return nil, err
	}
	if !exists {
		return nil, iodb.EmptyDatabaseError(cfg.Host, cfg.Database)
	}
	res := &pgSink{
		operator:  op,
		batchSize: cfg.BatchSize,
		touched:   make(map[string]struct{}),
	}
	return res, nil
}

func (s *pgSink) WriteSeries(ctx context.Context, t *climate.Table) error {
	return s.write(ctx, seriesRecords(t))
}

func (s *pgSink) WriteRegions(
	ctx context.Context,
	res *aggregate.RegionResult,
) error {
	rec, err := regionRecords(res)
	if err != nil {
		return OutputWriteError(res.Label+" regions", err)
	}
	return s.write(ctx, rec)
}

func (s *pgSink) WriteHexes(
	ctx context.Context,
	res *aggregate.HexResult,
) error {
	rec, err := hexRecords(res)
	if err != nil {
		return OutputWriteError(res.Label+" hexes", err)
	}
	return s.write(ctx, rec)
}

// Close reclaims space of replaced rows and updates statistics of
// written tables, then closes the operator.
func (s *pgSink) Close() error {
	defer s.operator.Close()
	return s.vacuumAnalyze(context.Background())
}

// vacuumAnalyze cannot run inside a transaction block.
func (s *pgSink) vacuumAnalyze(ctx context.Context) error {
	if len(s.touched) == 0 {
		return nil
	}
	tables := slices.Sorted(maps.Keys(s.touched))
	timeStart := time.Now()
	for _, table := range tables {
		q := "VACUUM ANALYZE " + pgx.Identifier{table}.Sanitize()
		if _, err := s.operator.Pool().Exec(ctx, q); err != nil {
			return OutputWriteError(table, err)
		}
	}
	slog.Info("VACUUM ANALYZE completed",
		"tables", len(tables),
		"duration", time.Since(timeStart).String())
	clear(s.touched)
	return nil
}

// write replaces rows of a run in one transaction. Rows are sent with
// CopyFrom in batches.
func (s *pgSink) write(ctx context.Context, rec *runRecords) error {
	target := fmt.Sprintf("%s %s run", rec.run.Label, rec.run.Kind)

	tx, err := s.operator.Pool().Begin(ctx)
	if err != nil {
		return OutputWriteError(target, err)
	}
	defer tx.Rollback(ctx)

	for _, table := range runTables() {
		q := fmt.Sprintf("DELETE FROM %s WHERE run_id = $1", table)
		if _, err = tx.Exec(ctx, q, rec.run.ID); err != nil {
			return OutputWriteError(target, err)
		}
	}
	runTable := schema.Run{}.TableName()
	q := fmt.Sprintf("DELETE FROM %s WHERE id = $1", runTable)
	if _, err = tx.Exec(ctx, q, rec.run.ID); err != nil {
		return OutputWriteError(target, err)
	}

	_, err = tx.CopyFrom(
		ctx,
		pgx.Identifier{runTable},
		schema.Columns(schema.Run{}),
		pgx.CopyFromRows([][]any{runRow(rec.run)}),
	)
	if err != nil {
		return OutputWriteError(target, err)
	}

	for _, t := range rec.tables {
		var count int64
		for batch := range batches(t.rows, s.batchSize) {
			n, err := tx.CopyFrom(
				ctx,
				pgx.Identifier{t.table},
				t.columns,
				pgx.CopyFromRows(batch),
			)
			if err != nil {
				return OutputWriteError(target, err)
			}
			count += n
		}
		slog.Info("Rows inserted",
			"table", t.table, "run", rec.run.ID,
			"count", humanize.Comma(count))
	}

	if err = tx.Commit(ctx); err != nil {
		return OutputWriteError(target, err)
	}

	s.touched[runTable] = struct{}{}
	for _, t := range rec.tables {
		s.touched[t.table] = struct{}{}
	}
	return nil
}

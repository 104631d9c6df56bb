package iosink

import (
	"context"
	"database/sql"
	"fmt"
	"log/slog"
	"strings"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gnclimate/pkg/aggregate"
	"github.com/gnames/gnclimate/pkg/climate"
	"github.com/gnames/gnclimate/pkg/lifecycle"
	"github.com/gnames/gnclimate/pkg/schema"
	_ "modernc.org/sqlite" // Pure Go SQLite driver (no CGo)
)

// SQLiteFile is the name of the SQLite output database.
const SQLiteFile = "gnclimate.sqlite"

type sqliteSink struct {
	db        *sql.DB
	path      string
	batchSize int
}

// NewSQLite opens or creates a SQLite database at path and creates
// output tables that do not exist yet. The tables are the same as in
// PostgreSQL.
func NewSQLite(
	ctx context.Context,
	path string,
	batchSize int,
) (lifecycle.Sink, error) {
	sqlDB, err := sql.Open("sqlite", path)
	if err != nil {
		return nil, OutputWriteError(path, err)
	}
	// one writer at a time
	sqlDB.SetMaxOpenConns(1)

	for _, g := range schema.Generators() {
		stmts := append([]string{g.TableDDL()}, g.IndexDDL()...)
		for _, q := range stmts {
			if _, err = sqlDB.ExecContext(ctx, q); err != nil {
				sqlDB.Close()
				return nil, OutputWriteError(path, err)
			}
		}
	}
	return &sqliteSink{db: sqlDB, path: path, batchSize: batchSize}, nil
}

func (s *sqliteSink) WriteSeries(ctx context.Context, t *climate.Table) error {
	return s.write(ctx, seriesRecords(t))
}

func (s *sqliteSink) WriteRegions(
	ctx context.Context,
	res *aggregate.RegionResult,
) error {
	rec, err := regionRecords(res)
	if err != nil {
		return OutputWriteError(res.Label+" regions", err)
	}
	return s.write(ctx, rec)
}

func (s *sqliteSink) WriteHexes(
	ctx context.Context,
	res *aggregate.HexResult,
) error {
	rec, err := hexRecords(res)
	if err != nil {
		return OutputWriteError(res.Label+" hexes", err)
	}
	return s.write(ctx, rec)
}

func (s *sqliteSink) Close() error {
	return s.db.Close()
}

// write replaces rows of a run in one transaction.
func (s *sqliteSink) write(ctx context.Context, rec *runRecords) error {
	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		return OutputWriteError(s.path, err)
	}
	defer tx.Rollback()

	for _, table := range runTables() {
		q := fmt.Sprintf("DELETE FROM %s WHERE run_id = ?", table)
		if _, err = tx.ExecContext(ctx, q, rec.run.ID); err != nil {
			return OutputWriteError(s.path, err)
		}
	}
	runTable := schema.Run{}.TableName()
	q := fmt.Sprintf("DELETE FROM %s WHERE id = ?", runTable)
	if _, err = tx.ExecContext(ctx, q, rec.run.ID); err != nil {
		return OutputWriteError(s.path, err)
	}

	q = insertSQL(runTable, schema.Columns(schema.Run{}))
	if _, err = tx.ExecContext(ctx, q, runRow(rec.run)...); err != nil {
		return OutputWriteError(s.path, err)
	}

	for _, t := range rec.tables {
		count, err := insertRows(ctx, tx, t, s.batchSize)
		if err != nil {
			return OutputWriteError(s.path, err)
		}
		slog.Info("Rows inserted",
			"table", t.table, "run", rec.run.ID,
			"count", humanize.Comma(count))
	}

	if err = tx.Commit(); err != nil {
		return OutputWriteError(s.path, err)
	}
	return nil
}

func insertRows(
	ctx context.Context,
	tx *sql.Tx,
	t tableRows,
	batchSize int,
) (int64, error) {
	stmt, err := tx.PrepareContext(ctx, insertSQL(t.table, t.columns))
	if err != nil {
		return 0, err
	}
	defer stmt.Close()

	var count int64
	for batch := range batches(t.rows, batchSize) {
		if err = ctx.Err(); err != nil {
			return count, err
		}
		for _, row := range batch {
			if _, err = stmt.ExecContext(ctx, row...); err != nil {
				return count, err
			}
			count++
		}
	}
	return count, nil
}

func insertSQL(table string, columns []string) string {
	marks := strings.TrimSuffix(strings.Repeat("?, ", len(columns)), ", ")
	return fmt.Sprintf("INSERT INTO %s (%s) VALUES (%s)",
		table, strings.Join(columns, ", "), marks)
}

// Package iosink stores finished tables. CSV files are the default
// output; PostgreSQL and SQLite keep the same results in long form,
// one row per observed value.
package iosink

import (
	"context"
	"path/filepath"

	"github.com/gnames/gnclimate/internal/iodb"
	"github.com/gnames/gnclimate/internal/iofs"
	"github.com/gnames/gnclimate/pkg/config"
	"github.com/gnames/gnclimate/pkg/lifecycle"
)

// New creates a sink for the configured output format.
func New(ctx context.Context, cfg *config.Config) (lifecycle.Sink, error) {
	switch cfg.Output.Format {
	case "csv":
		return NewCSV(cfg.OutputPath()), nil
	case "sqlite":
		dir := cfg.OutputPath()
		if err := iofs.TouchDir(dir); err != nil {
			return nil, err
		}
		path := filepath.Join(dir, SQLiteFile)
		return NewSQLite(ctx, path, cfg.Database.BatchSize)
	case "postgres":
		op := iodb.NewPgxOperator()
		if err := op.Connect(ctx, &cfg.Database); err != nil {
			return nil, err
		}
		sink, err := NewPostgres(ctx, op, &cfg.Database)
		if err != nil {
			op.Close()
			return nil, err
		}
		return sink, nil
	default:
		return nil, OutputFormatError(cfg.Output.Format)
	}
}

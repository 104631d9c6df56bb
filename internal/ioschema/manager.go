// Package ioschema implements SchemaManager interface for
// the PostgreSQL output schema. This is an impure I/O package
// that wraps GORM AutoMigrate functionality.
package ioschema

import (
	"context"
	"log/slog"

	"github.com/gnames/gn"
	"github.com/gnames/gnclimate/pkg/config"
	"github.com/gnames/gnclimate/pkg/db"
	"github.com/gnames/gnclimate/pkg/lifecycle"
	"github.com/gnames/gnclimate/pkg/schema"
	"github.com/jackc/pgx/v5/stdlib"
	"gorm.io/driver/postgres"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// manager implements the lifecycle.SchemaManager interface
// using GORM AutoMigrate.
type manager struct {
	operator db.Operator
}

// NewManager creates a new SchemaManager.
func NewManager(op db.Operator) lifecycle.SchemaManager {
	return &manager{operator: op}
}

// Create creates output tables using GORM AutoMigrate and
// sets byte-order collation on name columns, so the database
// sorts regions the same way as CSV output. With force, all
// existing tables are dropped first.
func (m *manager) Create(
	ctx context.Context,
	cfg *config.Config,
	force bool,
) error {
	if m.operator.Pool() == nil {
		return NotConnectedError()
	}

	if force {
		hasTables, err := m.operator.HasTables(ctx)
		if err != nil {
			return err
		}
		if hasTables {
			slog.Info("Dropping existing tables",
				"database", cfg.Database.Database)
			gn.Info("Dropping existing tables in <em>%s</em>",
				cfg.Database.Database)
			if err = m.operator.DropAllTables(ctx); err != nil {
				return err
			}
		}
	}

	gormDB, err := m.gorm()
	if err != nil {
		return err
	}

	if err := schema.Migrate(gormDB.WithContext(ctx)); err != nil {
		return CreateSchemaError(cfg.Database.Database, err)
	}

	if err := m.setCollation(ctx); err != nil {
		return err
	}

	slog.Info("Schema created", "database", cfg.Database.Database)
	return nil
}

// Migrate updates output tables to the latest models
// using GORM AutoMigrate.
func (m *manager) Migrate(
	ctx context.Context,
	cfg *config.Config,
) error {
	if m.operator.Pool() == nil {
		return NotConnectedError()
	}

	gormDB, err := m.gorm()
	if err != nil {
		return err
	}

	if err := schema.Migrate(gormDB.WithContext(ctx)); err != nil {
		return MigrateSchemaError(cfg.Database.Database, err)
	}

	slog.Info("Schema migrated", "database", cfg.Database.Database)
	return nil
}

func (m *manager) gorm() (*gorm.DB, error) {
	sqlDB := stdlib.OpenDBFromPool(m.operator.Pool())

	gormDB, err := gorm.Open(
		postgres.New(postgres.Config{Conn: sqlDB}),
		&gorm.Config{Logger: logger.Default.LogMode(logger.Silent)},
	)
	if err != nil {
		return nil, GORMConnectionError(err)
	}
	return gormDB, nil
}

// setCollation sets "C" collation on name columns.
func (m *manager) setCollation(ctx context.Context) error {
	pool := m.operator.Pool()
	if pool == nil {
		return NotConnectedError()
	}

	type columnDef struct {
		table, column string
	}

	var columns []columnDef
	for _, table := range []string{
		schema.Region{}.TableName(),
		schema.RegionValue{}.TableName(),
		schema.RegionGeometry{}.TableName(),
	} {
		columns = append(columns,
			columnDef{table, "name"},
			columnDef{table, "parent"},
		)
	}

	qStr := `ALTER TABLE %s ALTER COLUMN %s ` +
		`TYPE VARCHAR(255) COLLATE "C"`

	for _, col := range columns {
		q := formatCollationSQL(qStr, col.table, col.column)
		if _, err := pool.Exec(ctx, q); err != nil {
			return CollationError(col.table, col.column, err)
		}
	}

	return nil
}

package lifecycle

import (
	"context"

	"github.com/gnames/gnclimate/pkg/config"
)

// SchemaManager defines the interface for management of the PostgreSQL
// output schema. It uses GORM AutoMigrate, so schema management is
// idempotent and safe to run multiple times.
type SchemaManager interface {
	// Create creates the output tables. Existing tables are dropped first
	// when force is true.
	Create(ctx context.Context, cfg *config.Config, force bool) error

	// Migrate updates existing output tables to the latest models.
	Migrate(ctx context.Context, cfg *config.Config) error
}

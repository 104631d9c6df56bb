package lifecycle

import (
	"context"

	"github.com/gnames/gnclimate/pkg/aggregate"
	"github.com/gnames/gnclimate/pkg/climate"
)

// Sink receives finished tables. Implementations write CSV files, a
// PostgreSQL database, or a SQLite file. A sink must never receive a
// partial table; writing the same result twice produces the same output.
type Sink interface {
	// WriteSeries stores a merged cell table.
	WriteSeries(ctx context.Context, t *climate.Table) error

	// WriteRegions stores aggregated region values and region geometries.
	WriteRegions(ctx context.Context, res *aggregate.RegionResult) error

	// WriteHexes stores aggregated hexagon values and hexagon boundaries.
	WriteHexes(ctx context.Context, res *aggregate.HexResult) error

	// Close releases files or connections held by the sink.
	Close() error
}

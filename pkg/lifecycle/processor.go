package lifecycle

import (
	"context"

	"github.com/gnames/gnclimate/pkg/aggregate"
	"github.com/gnames/gnclimate/pkg/climate"
)

// Processor runs the conversion pipeline: rasters of every configured
// year are read and built into per-year tables in parallel, merged into
// one series per variable, and aggregated.
//
// Variables are processed independently. A failing variable is reported
// and skipped; an error is returned only if no variable succeeded.
type Processor interface {
	// Series builds the merged cell table of one variable over the
	// configured years. Failures of all years are reported together.
	Series(ctx context.Context, v climate.Variable) (*climate.Table, error)

	// Export writes the series of the configured variables to the sink.
	Export(ctx context.Context, sink Sink) error

	// Regions aggregates the series of the configured variables onto
	// region polygons and writes the results to the sink.
	Regions(ctx context.Context, set *aggregate.RegionSet, sink Sink) error

	// Hexes aggregates the series of the configured variables onto H3
	// cells, keeps cells that touch the territory, and writes the results
	// to the sink.
	Hexes(ctx context.Context, ter *aggregate.Territory, sink Sink) error
}

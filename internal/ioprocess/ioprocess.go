// Package ioprocess implements the Processor interface. It reads rasters
// of the configured years, builds and merges them into series, and sends
// series or their aggregates to a sink.
package ioprocess

import (
	"context"
	"log/slog"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/gnames/gn"
	"github.com/gnames/gnclimate/pkg/aggregate"
	"github.com/gnames/gnclimate/pkg/climate"
	"github.com/gnames/gnclimate/pkg/config"
	"github.com/gnames/gnclimate/pkg/lifecycle"
	"github.com/gnames/gnfmt"
	"golang.org/x/sync/errgroup"
)

type processor struct {
	cfg     *config.Config
	catalog *climate.Catalog
	reader  climate.Reader
}

// New creates a Processor. The catalog describes raster locations and
// partial years, the reader opens rasters.
func New(
	cfg *config.Config,
	cat *climate.Catalog,
	r climate.Reader,
) lifecycle.Processor {
	return &processor{cfg: cfg, catalog: cat, reader: r}
}

// unit is a table that is aggregated and written as a whole: the series
// of one variable, or combined series of several variables.
type unit struct {
	label string
	vars  []climate.Variable
}

func (p *processor) Series(
	ctx context.Context,
	v climate.Variable,
) (*climate.Table, error) {
	if !v.Valid() {
		return nil, climate.UnsupportedVariableError(v.String())
	}
	if _, ok := p.catalog.Source(v); !ok {
		return nil, climate.UnsupportedVariableError(v.String())
	}

	cov := p.catalog.Coverage(p.cfg.Raster.FirstYear, p.cfg.Raster.LastYear)
	years := cov.Years()
	if len(years) == 0 {
		return nil, climate.SeriesEmptyError(v)
	}

	tables := make([]*climate.Table, len(years))
	errs := make([]error, len(years))

	bar := newProgressBar(len(years), v.String()+" years ")
	var g errgroup.Group
	g.SetLimit(max(p.cfg.JobsNumber, 1))
	for i, year := range years {
		g.Go(func() error {
			defer bar.Increment()
			if err := ctx.Err(); err != nil {
				errs[i] = err
				return nil
			}
			tables[i], errs[i] = p.yearTable(ctx, v, year, cov.MonthCount(year))
			return nil
		})
	}
	_ = g.Wait()
	bar.Finish()

	if err := ctx.Err(); err != nil {
		return nil, CancelledError(err)
	}

	var failed []yearError
	for i, err := range errs {
		if err == nil {
			continue
		}
		slog.Error("Cannot build yearly table",
			"variable", v.String(), "year", years[i], "error", err)
		failed = append(failed, yearError{year: years[i], err: err})
	}
	if len(failed) > 0 {
		return nil, SeriesBuildError(v, failed)
	}

	res, err := climate.Merge(tables)
	if err != nil {
		return nil, err
	}
	res.CRS = p.catalog.GridCRS

	slog.Info("Series merged",
		"variable", v.String(),
		"cells", res.Len(),
		"columns", len(res.Columns),
	)
	return res, nil
}

// yearTable reads and flattens a raster of one year.
func (p *processor) yearTable(
	ctx context.Context,
	v climate.Variable,
	year, months int,
) (*climate.Table, error) {
	r, err := p.reader.Read(ctx, v, year)
	if err != nil {
		return nil, err
	}
	if extra := len(r.Months) - months; extra > 0 {
		slog.Warn("Raster has more months than expected, extra months are ignored",
			"variable", v.String(), "year", year,
			"months", len(r.Months), "used", months)
	}
	return climate.Build(r, months)
}

func (p *processor) Export(ctx context.Context, sink lifecycle.Sink) error {
	return p.run(ctx, "series", func(ctx context.Context, t *climate.Table) error {
		return sink.WriteSeries(ctx, t)
	})
}

func (p *processor) Regions(
	ctx context.Context,
	set *aggregate.RegionSet,
	sink lifecycle.Sink,
) error {
	return p.run(ctx, "regions", func(ctx context.Context, t *climate.Table) error {
		res, err := aggregate.Regions(withoutEmpty(t), set)
		if err != nil {
			return err
		}
		var nearest int
		for _, r := range res.Rows {
			if r.Distance > 0 {
				nearest++
			}
		}
		slog.Info("Regions aggregated",
			"label", res.Label,
			"regions", len(res.Rows),
			"nearest", nearest,
		)
		gn.Info("Aggregated <em>%s</em> onto %s regions (%d by nearest cell)",
			res.Label, humanize.Comma(int64(len(res.Rows))), nearest)
		return sink.WriteRegions(ctx, res)
	})
}

func (p *processor) Hexes(
	ctx context.Context,
	ter *aggregate.Territory,
	sink lifecycle.Sink,
) error {
	return p.run(ctx, "hexes", func(ctx context.Context, t *climate.Table) error {
		res, err := aggregate.Hexes(withoutEmpty(t), p.cfg.Hex.Resolution, ter)
		if err != nil {
			return err
		}
		slog.Info("Hexes aggregated",
			"label", res.Label,
			"resolution", res.Resolution,
			"hexes", len(res.Rows),
		)
		gn.Info("Aggregated <em>%s</em> onto %s hexagons of resolution %d",
			res.Label, humanize.Comma(int64(len(res.Rows))), res.Resolution)
		return sink.WriteHexes(ctx, res)
	})
}

// withoutEmpty removes cells without observations, such as cells over
// the ocean.
func withoutEmpty(t *climate.Table) *climate.Table {
	res, dropped := t.DropEmpty()
	if dropped > 0 {
		slog.Info("Cells without observations removed",
			"label", t.Label(), "count", dropped)
	}
	return res
}

// run builds every unit and passes it to fn. Units are independent: a
// failed unit is reported and the next one is processed. An error is
// returned only if all units failed or processing was cancelled.
func (p *processor) run(
	ctx context.Context,
	task string,
	fn func(context.Context, *climate.Table) error,
) error {
	startTime := time.Now()
	units, err := p.units()
	if err != nil {
		return err
	}

	successCount := 0
	errorCount := 0
	for _, u := range units {
		select {
		case <-ctx.Done():
			return CancelledError(ctx.Err())
		default:
		}

		unitStart := time.Now()
		gn.Info("Processing <em>%s</em>", u.label)
		slog.Info("Processing unit", "task", task, "label", u.label)

		err := p.runUnit(ctx, u, fn)
		if err != nil {
			if ctx.Err() != nil {
				return CancelledError(ctx.Err())
			}
			errorCount++
			slog.Error("Failed to process unit",
				"task", task, "label", u.label, "error", err)
			gn.Warn("Failed to process <em>%s</em>", u.label)
			continue
		}

		successCount++
		dur := gnfmt.TimeString(time.Since(unitStart).Seconds())
		slog.Info("Unit processed", "task", task, "label", u.label,
			"duration", dur)
		gn.Info("Completed <em>%s</em> in %s", u.label, dur)
	}

	totalDuration := gnfmt.TimeString(time.Since(startTime).Seconds())
	slog.Info("Processing complete",
		"task", task,
		"success", successCount,
		"errors", errorCount,
		"duration", totalDuration,
	)
	gn.Info(`Processing of %s complete
Variables succeeded: %d, failed %d, total %d.
Elapsed time: <em>%s</em>`,
		task, successCount, errorCount, len(units), totalDuration)

	if errorCount > 0 && successCount == 0 {
		return AllVariablesFailedError(errorCount)
	}
	return nil
}

func (p *processor) runUnit(
	ctx context.Context,
	u unit,
	fn func(context.Context, *climate.Table) error,
) error {
	tables := make([]*climate.Table, len(u.vars))
	for i, v := range u.vars {
		t, err := p.Series(ctx, v)
		if err != nil {
			return err
		}
		tables[i] = t
	}
	t := tables[0]
	if len(tables) > 1 {
		var err error
		if t, err = climate.Combine(tables); err != nil {
			return err
		}
	}
	return fn(ctx, t)
}

// units returns processing units of configured variables. Without
// configured variables all variables of the catalog are used.
func (p *processor) units() ([]unit, error) {
	var vars []climate.Variable
	if len(p.cfg.Variables) == 0 {
		for _, v := range climate.Variables() {
			if _, ok := p.catalog.Source(v); ok {
				vars = append(vars, v)
			}
		}
	}
	seen := make(map[climate.Variable]struct{})
	for _, s := range p.cfg.Variables {
		v, ok := climate.ParseVariable(s)
		if !ok {
			return nil, climate.UnsupportedVariableError(s)
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		vars = append(vars, v)
	}
	if len(vars) == 0 {
		return nil, climate.UnsupportedVariableError(strings.Join(p.cfg.Variables, ","))
	}

	if p.cfg.Combine && len(vars) > 1 {
		names := make([]string, len(vars))
		for i, v := range vars {
			names[i] = v.String()
		}
		return []unit{{label: strings.Join(names, "_"), vars: vars}}, nil
	}

	res := make([]unit, len(vars))
	for i, v := range vars {
		res[i] = unit{label: v.String(), vars: []climate.Variable{v}}
	}
	return res, nil
}

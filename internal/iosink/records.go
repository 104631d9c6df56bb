package iosink

import (
	"fmt"
	"iter"
	"math"
	"strings"

	"github.com/gnames/gnclimate/pkg/aggregate"
	"github.com/gnames/gnclimate/pkg/climate"
	"github.com/gnames/gnclimate/pkg/schema"
	"github.com/gnames/gnuuid"
)

// runRecords is a result in long form, ready for a database.
type runRecords struct {
	run    schema.Run
	tables []tableRows
}

// tableRows is a stream of rows of one table. Values follow the order
// of columns.
type tableRows struct {
	table   string
	columns []string
	rows    iter.Seq[[]any]
}

// newRun creates run metadata. Its ID depends only on the run
// parameters and the source dataset, so a rerun replaces earlier rows.
func newRun(
	kind, label string,
	res int,
	source string,
	keys []climate.Column,
) schema.Run {
	first, last := yearRange(keys)
	id := gnuuid.New(
		fmt.Sprintf("%s|%s|%d|%s|%d|%d", kind, label, res, source, first, last),
	)
	return schema.Run{
		ID:            id.String(),
		Kind:          kind,
		Label:         label,
		Units:         units(keys),
		Source:        source,
		Resolution:    res,
		FirstYear:     first,
		LastYear:      last,
		ColumnsNumber: len(keys),
	}
}

func yearRange(keys []climate.Column) (int, int) {
	if len(keys) == 0 {
		return 0, 0
	}
	first, last := keys[0].Period.Year, keys[0].Period.Year
	for _, k := range keys[1:] {
		first = min(first, k.Period.Year)
		last = max(last, k.Period.Year)
	}
	return first, last
}

// units lists units of the variables of columns in order of their
// first appearance.
func units(keys []climate.Column) string {
	var res []string
	seen := make(map[climate.Variable]struct{})
	for _, k := range keys {
		if _, ok := seen[k.Variable]; ok {
			continue
		}
		seen[k.Variable] = struct{}{}
		res = append(res, k.Variable.Meta().Units)
	}
	return strings.Join(res, ",")
}

func runRow(r schema.Run) []any {
	return []any{
		r.ID, r.Kind, r.Label, r.Units, r.Source, r.Resolution,
		r.FirstYear, r.LastYear, r.ColumnsNumber,
	}
}

// valueRows yields one row per observed value. NaN values are skipped.
func valueRows(
	keys []climate.Column,
	n int,
	prefix func(i int) []any,
	values func(i int) []float64,
) iter.Seq[[]any] {
	return func(yield func([]any) bool) {
		for i := range n {
			pre := prefix(i)
			for j, v := range values(i) {
				if math.IsNaN(v) {
					continue
				}
				k := keys[j]
				row := make([]any, 0, len(pre)+4)
				row = append(row, pre...)
				row = append(row,
					k.Variable.String(), k.Period.Year, k.Period.Month, v,
				)
				if !yield(row) {
					return
				}
			}
		}
	}
}

func seriesRecords(t *climate.Table) *runRecords {
	run := newRun(schema.KindSeries, t.Label(), 0, "", t.Columns)
	values := tableRows{
		table:   schema.CellValue{}.TableName(),
		columns: schema.Columns(schema.CellValue{}),
		rows: valueRows(t.Columns, t.Len(),
			func(i int) []any {
				return []any{run.ID, t.Cells[i].Lat, t.Cells[i].Lon}
			},
			func(i int) []float64 { return t.Values[i] },
		),
	}
	return &runRecords{run: run, tables: []tableRows{values}}
}

func regionRecords(res *aggregate.RegionResult) (*runRecords, error) {
	wkts, err := regionWKT(res)
	if err != nil {
		return nil, err
	}
	run := newRun(schema.KindRegions, res.Label, 0, res.Source, res.ColumnKeys)
	regions := tableRows{
		table:   schema.Region{}.TableName(),
		columns: schema.Columns(schema.Region{}),
		rows: func(yield func([]any) bool) {
			for _, r := range res.Rows {
				row := []any{run.ID, r.Name, r.Parent, r.Cells, r.Distance}
				if !yield(row) {
					return
				}
			}
		},
	}
	values := tableRows{
		table:   schema.RegionValue{}.TableName(),
		columns: schema.Columns(schema.RegionValue{}),
		rows: valueRows(res.ColumnKeys, len(res.Rows),
			func(i int) []any {
				return []any{run.ID, res.Rows[i].Name, res.Rows[i].Parent}
			},
			func(i int) []float64 { return res.Rows[i].Values },
		),
	}
	geoms := tableRows{
		table:   schema.RegionGeometry{}.TableName(),
		columns: schema.Columns(schema.RegionGeometry{}),
		rows: func(yield func([]any) bool) {
			for i, g := range res.Geometries {
				row := []any{
					run.ID, i, g.Name, g.Parent, wkts[i],
				}
				if !yield(row) {
					return
				}
			}
		},
	}
	return &runRecords{run: run, tables: []tableRows{regions, values, geoms}}, nil
}

func hexRecords(res *aggregate.HexResult) (*runRecords, error) {
	wkts, err := hexWKT(res)
	if err != nil {
		return nil, err
	}
	run := newRun(
		schema.KindHexes, res.Label, res.Resolution, res.Source, res.ColumnKeys,
	)
	hexes := tableRows{
		table:   schema.Hex{}.TableName(),
		columns: schema.Columns(schema.Hex{}),
		rows: func(yield func([]any) bool) {
			for i, r := range res.Rows {
				if !yield([]any{run.ID, r.Index, r.Cells, wkts[i]}) {
					return
				}
			}
		},
	}
	values := tableRows{
		table:   schema.HexValue{}.TableName(),
		columns: schema.Columns(schema.HexValue{}),
		rows: valueRows(res.ColumnKeys, len(res.Rows),
			func(i int) []any { return []any{run.ID, res.Rows[i].Index} },
			func(i int) []float64 { return res.Rows[i].Values },
		),
	}
	return &runRecords{run: run, tables: []tableRows{hexes, values}}, nil
}

// batches groups rows of a stream into slices of at most size rows.
func batches(rows iter.Seq[[]any], size int) iter.Seq[[][]any] {
	size = max(size, 1)
	return func(yield func([][]any) bool) {
		batch := make([][]any, 0, size)
		for row := range rows {
			batch = append(batch, row)
			if len(batch) >= size {
				if !yield(batch) {
					return
				}
				batch = make([][]any, 0, size)
			}
		}
		if len(batch) > 0 {
			yield(batch)
		}
	}
}

// runTables lists tables keyed by run_id, so that old rows of a run
// can be removed.
func runTables() []string {
	var res []string
	for _, g := range schema.Generators() {
		if g.TableName() == (schema.Run{}).TableName() {
			continue
		}
		res = append(res, g.TableName())
	}
	return res
}

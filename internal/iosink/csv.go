package iosink

import (
	"context"
	"encoding/csv"
	"fmt"
	"log/slog"
	"math"
	"os"
	"path/filepath"
	"strconv"

	"github.com/gnames/gnclimate/internal/iofs"
	"github.com/gnames/gnclimate/pkg/aggregate"
	"github.com/gnames/gnclimate/pkg/climate"
	"github.com/gnames/gnclimate/pkg/lifecycle"
)

type csvSink struct {
	dir string
}

// NewCSV creates a sink that writes CSV files to dir. Values and
// geometries go to separate files. Rerunning the same conversion
// produces byte-identical files.
func NewCSV(dir string) lifecycle.Sink {
	return &csvSink{dir: dir}
}

// SeriesFile is the name of the CSV file of a series table.
func SeriesFile(label string) string {
	return label + "_series.csv"
}

// RegionFiles are names of CSV files with region values and region
// geometries.
func RegionFiles(label string) (string, string) {
	return label + "_regions.csv", label + "_region_geometries.csv"
}

// HexFiles are names of CSV files with hex values and hex geometries.
func HexFiles(label string, res int) (string, string) {
	return fmt.Sprintf("%s_hexes_r%d.csv", label, res),
		fmt.Sprintf("%s_hex_geometries_r%d.csv", label, res)
}

func (s *csvSink) WriteSeries(ctx context.Context, t *climate.Table) error {
	header := append([]string{"lat", "lon"}, t.ColumnNames()...)
	rows := func(yield func([]string) bool) {
		for i, c := range t.Cells {
			row := make([]string, 0, len(header))
			row = append(row,
				aggregate.FormatFloat(c.Lat), aggregate.FormatFloat(c.Lon))
			row = appendValues(row, t.Values[i])
			if !yield(row) {
				return
			}
		}
	}
	return s.write(ctx, SeriesFile(t.Label()), header, rows)
}

func (s *csvSink) WriteRegions(
	ctx context.Context,
	res *aggregate.RegionResult,
) error {
	valuesFile, geomFile := RegionFiles(res.Label)

	header := append(
		[]string{"name", "parent", "cells", "distance"}, res.Columns...,
	)
	rows := func(yield func([]string) bool) {
		for _, r := range res.Rows {
			row := make([]string, 0, len(header))
			row = append(row,
				r.Name, r.Parent, strconv.Itoa(r.Cells),
				aggregate.FormatFloat(r.Distance),
			)
			row = appendValues(row, r.Values)
			if !yield(row) {
				return
			}
		}
	}
	if err := s.write(ctx, valuesFile, header, rows); err != nil {
		return err
	}

	wkts, err := regionWKT(res)
	if err != nil {
		return OutputWriteError(geomFile, err)
	}
	geoms := func(yield func([]string) bool) {
		for i, g := range res.Geometries {
			if !yield([]string{g.Name, g.Parent, wkts[i]}) {
				return
			}
		}
	}
	return s.write(ctx, geomFile, []string{"name", "parent", "wkt"}, geoms)
}

func (s *csvSink) WriteHexes(
	ctx context.Context,
	res *aggregate.HexResult,
) error {
	valuesFile, geomFile := HexFiles(res.Label, res.Resolution)

	header := append([]string{"hex_id", "cells"}, res.Columns...)
	rows := func(yield func([]string) bool) {
		for _, r := range res.Rows {
			row := make([]string, 0, len(header))
			row = append(row, r.Index, strconv.Itoa(r.Cells))
			row = appendValues(row, r.Values)
			if !yield(row) {
				return
			}
		}
	}
	if err := s.write(ctx, valuesFile, header, rows); err != nil {
		return err
	}

	wkts, err := hexWKT(res)
	if err != nil {
		return OutputWriteError(geomFile, err)
	}
	geoms := func(yield func([]string) bool) {
		for i, g := range res.Geometries {
			if !yield([]string{g.Index, wkts[i]}) {
				return
			}
		}
	}
	return s.write(ctx, geomFile, []string{"hex_id", "wkt"}, geoms)
}

func (s *csvSink) Close() error {
	return nil
}

// write creates the file under a temporary name and renames it when
// all rows are written, so a failed run leaves no partial file.
func (s *csvSink) write(
	ctx context.Context,
	name string,
	header []string,
	rows func(yield func([]string) bool),
) error {
	if err := iofs.TouchDir(s.dir); err != nil {
		return err
	}
	path := filepath.Join(s.dir, name)

	f, err := os.CreateTemp(s.dir, name+".*.tmp")
	if err != nil {
		return OutputWriteError(path, err)
	}
	tmp := f.Name()
	defer os.Remove(tmp)

	w := csv.NewWriter(f)
	err = w.Write(header)
	var count int
	for row := range rows {
		if err != nil {
			break
		}
		if count%10_000 == 0 {
			if err = ctx.Err(); err != nil {
				break
			}
		}
		err = w.Write(row)
		count++
	}
	if err == nil {
		w.Flush()
		err = w.Error()
	}
	if cerr := f.Close(); err == nil {
		err = cerr
	}
	if err != nil {
		return OutputWriteError(path, err)
	}

	if err = os.Rename(tmp, path); err != nil {
		return OutputWriteError(path, err)
	}
	slog.Info("CSV file written", "path", path, "rows", count)
	return nil
}

// appendValues formats values; NaN becomes an empty field.
func appendValues(row []string, vals []float64) []string {
	for _, v := range vals {
		if math.IsNaN(v) {
			row = append(row, "")
			continue
		}
		row = append(row, aggregate.FormatFloat(v))
	}
	return row
}

// Package ioraster reads monthly climate grids from NetCDF files.
package ioraster

import (
	"context"
	"fmt"
	"log/slog"
	"math"

	"github.com/batchatco/go-native-netcdf/netcdf"
	"github.com/batchatco/go-native-netcdf/netcdf/api"
	"github.com/gnames/gnclimate/pkg/climate"
)

var (
	latNames = []string{"lat", "latitude"}
	lonNames = []string{"lon", "longitude"}
)

type ioraster struct {
	cat     *climate.Catalog
	dataDir string
}

// New creates a NetCDF reader. Raster paths come from the catalog,
// with dataDir replacing the {data} placeholder.
func New(cat *climate.Catalog, dataDir string) climate.Reader {
	return &ioraster{cat: cat, dataDir: dataDir}
}

// Read returns all monthly grids of the variable for the year.
func (r *ioraster) Read(
	ctx context.Context,
	v climate.Variable,
	year int,
) (*climate.Raster, error) {
	if !v.Valid() {
		return nil, climate.UnsupportedVariableError(v.String())
	}
	src, ok := r.cat.Source(v)
	if !ok {
		return nil, climate.UnsupportedVariableError(v.String())
	}
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	path := src.Path(r.dataDir, year)
	slog.Debug("Reading raster", "variable", v, "year", year, "path", path)

	nc, err := netcdf.Open(path)
	if err != nil {
		return nil, climate.RasterMissingError(v, year, path, err)
	}
	defer nc.Close()

	stage := fmt.Sprintf("read %s raster for %d", v, year)
	res := &climate.Raster{Variable: v, Year: year}
	res.Lat, err = axis(nc, latNames)
	if err != nil {
		return nil, climate.SchemaMismatchError(stage, "%s: %v", path, err)
	}
	res.Lon, err = axis(nc, lonNames)
	if err != nil {
		return nil, climate.SchemaMismatchError(stage, "%s: %v", path, err)
	}

	vg, err := nc.GetVarGetter(src.DataVar)
	if err != nil {
		return nil, climate.SchemaMismatchError(stage,
			"%s: no variable %q: %v", path, src.DataVar, err)
	}
	enc := newEncoding(vg.Attributes())

	steps := vg.Len()
	res.Months = make([][][]float64, 0, steps)
	for i := range steps {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		slice, err := vg.GetSlice(i, i+1)
		if err != nil {
			return nil, climate.RasterMissingError(v, year, path, err)
		}
		grid, err := enc.grid(slice)
		if err != nil {
			return nil, climate.SchemaMismatchError(stage, "%s, month %d: %v",
				path, i+1, err)
		}
		res.Months = append(res.Months, grid)
	}
	return res, nil
}

// axis reads the first of the named coordinate variables.
func axis(nc api.Group, names []string) ([]float64, error) {
	for _, name := range names {
		vg, err := nc.GetVarGetter(name)
		if err != nil {
			continue
		}
		vals, err := vg.Values()
		if err != nil {
			return nil, fmt.Errorf("axis %s: %w", name, err)
		}
		switch vs := vals.(type) {
		case []float64:
			return vs, nil
		case []float32:
			return widen(vs), nil
		default:
			return nil, fmt.Errorf("axis %s has unsupported type %T", name, vals)
		}
	}
	return nil, fmt.Errorf("none of %v axes found", names)
}

// encoding holds packing attributes of a data variable.
type encoding struct {
	scale   float64
	offset  float64
	fills   []float64
	hasFill bool
}

func newEncoding(attrs api.AttributeMap) encoding {
	res := encoding{scale: 1}
	if attrs == nil {
		return res
	}
	if f, ok := attrFloat(attrs, "scale_factor"); ok {
		res.scale = f
	}
	if f, ok := attrFloat(attrs, "add_offset"); ok {
		res.offset = f
	}
	for _, key := range []string{"_FillValue", "missing_value"} {
		if f, ok := attrFloat(attrs, key); ok {
			res.fills = append(res.fills, f)
			res.hasFill = true
		}
	}
	return res
}

func (e encoding) value(raw float64) float64 {
	if math.IsNaN(raw) {
		return raw
	}
	if e.hasFill {
		for _, f := range e.fills {
			if raw == f {
				return math.NaN()
			}
		}
	}
	return raw*e.scale + e.offset
}

// grid converts one time step [1][lat][lon] to float64 values.
func (e encoding) grid(slice any) ([][]float64, error) {
	switch s := slice.(type) {
	case [][][]float64:
		return convert(e, s)
	case [][][]float32:
		return convert(e, s)
	case [][][]int32:
		return convert(e, s)
	case [][][]int16:
		return convert(e, s)
	case [][][]int8:
		return convert(e, s)
	default:
		return nil, fmt.Errorf("unsupported data type %T", slice)
	}
}

func convert[T float64 | float32 | int32 | int16 | int8](e encoding, s [][][]T) ([][]float64, error) {
	if len(s) != 1 {
		return nil, fmt.Errorf("expected one time step, got %d", len(s))
	}
	res := make([][]float64, len(s[0]))
	for i, row := range s[0] {
		res[i] = make([]float64, len(row))
		for j, v := range row {
			res[i][j] = e.value(float64(v))
		}
	}
	return res, nil
}

func widen(vs []float32) []float64 {
	res := make([]float64, len(vs))
	for i, v := range vs {
		res[i] = float64(v)
	}
	return res
}

func attrFloat(attrs api.AttributeMap, key string) (float64, bool) {
	val, ok := attrs.Get(key)
	if !ok {
		return 0, false
	}
	switch v := val.(type) {
	case float64:
		return v, true
	case float32:
		return float64(v), true
	case int32:
		return float64(v), true
	case int16:
		return float64(v), true
	case int8:
		return float64(v), true
	case []float64:
		if len(v) > 0 {
			return v[0], true
		}
	case []float32:
		if len(v) > 0 {
			return float64(v[0]), true
		}
	case []int32:
		if len(v) > 0 {
			return float64(v[0]), true
		}
	case []int16:
		if len(v) > 0 {
			return float64(v[0]), true
		}
	}
	return 0, false
}

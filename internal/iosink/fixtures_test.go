package iosink

import (
	"math"

	"github.com/ctessum/geom"
	"github.com/gnames/gnclimate/pkg/aggregate"
	"github.com/gnames/gnclimate/pkg/climate"
)

const testCRS = "+proj=longlat +datum=WGS84 +no_defs"

func testColumns() []climate.Column {
	return []climate.Column{
		{Variable: climate.Precip, Period: climate.Period{Year: 2019, Month: 12}},
		{Variable: climate.Precip, Period: climate.Period{Year: 2020, Month: 1}},
	}
}

func testTable() *climate.Table {
	return &climate.Table{
		Variables: []climate.Variable{climate.Precip},
		CRS:       testCRS,
		Cells: []climate.Cell{
			{Lat: -35.5, Lon: 149.25},
			{Lat: -35.45, Lon: 149.3},
		},
		Columns: testColumns(),
		Values: [][]float64{
			{10.5, math.NaN()},
			{0, 3.25},
		},
	}
}

func square(x, y, size float64) geom.Polygon {
	return geom.Polygon{{
		{X: x, Y: y}, {X: x + size, Y: y}, {X: x + size, Y: y + size},
		{X: x, Y: y + size}, {X: x, Y: y},
	}}
}

func testRegions() *aggregate.RegionResult {
	cols := testColumns()
	return &aggregate.RegionResult{
		Label:      "precip",
		Source:     "/data/SAL_2021_AUST_GDA2020.shp",
		Columns:    []string{cols[0].Period.ColumnName(), cols[1].Period.ColumnName()},
		ColumnKeys: cols,
		Rows: []aggregate.RegionRow{
			{Name: "Acton", Parent: "ACT", Cells: 2, Values: []float64{5.25, 3.25}},
			{Name: "Yass, NSW", Parent: "New South Wales", Cells: 1,
				Distance: 0.125, Values: []float64{0, math.NaN()}},
		},
		Geometries: []aggregate.RegionGeometry{
			{Name: "Yass, NSW", Parent: "New South Wales", Geometry: square(149, -35, 0.5)},
			{Name: "Acton", Parent: "ACT", Geometry: square(149, -36, 1)},
		},
	}
}

func testHexes() *aggregate.HexResult {
	cols := testColumns()
	return &aggregate.HexResult{
		Label:      "precip",
		Resolution: 6,
		Source:     "/data/STE_2021_AUST_GDA2020.shp",
		Columns:    []string{cols[0].Period.ColumnName(), cols[1].Period.ColumnName()},
		ColumnKeys: cols,
		Rows: []aggregate.HexRow{
			{Index: "86be0e357ffffff", Cells: 2, Values: []float64{5.25, 3.25}},
		},
		Geometries: []aggregate.HexGeometry{
			{Index: "86be0e357ffffff", Boundary: square(149.2, -35.5, 0.1)},
		},
	}
}

package ioprocess_test

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"testing"

	"github.com/ctessum/geom"
	"github.com/gnames/gn"
	"github.com/gnames/gnclimate/internal/ioprocess"
	"github.com/gnames/gnclimate/pkg/aggregate"
	"github.com/gnames/gnclimate/pkg/climate"
	"github.com/gnames/gnclimate/pkg/config"
	"github.com/gnames/gnclimate/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const testCRS = "+proj=longlat +datum=WGS84 +no_defs"

// fakeReader returns 2x2 rasters with 12 months. Value of a cell is
// k*k*100 + month, where k is the row-major cell index.
type fakeReader struct {
	mu    sync.Mutex
	fail  map[climate.Variable]map[int]bool
	reads int
}

func (r *fakeReader) Read(
	ctx context.Context,
	v climate.Variable,
	year int,
) (*climate.Raster, error) {
	r.mu.Lock()
	r.reads++
	r.mu.Unlock()

	if r.fail[v][year] {
		return nil, climate.MissingInputError(
			fmt.Sprintf("%s_%d.nc", v, year), errors.New("no such file"))
	}
	res := &climate.Raster{
		Variable: v,
		Year:     year,
		Lat:      []float64{10, 11},
		Lon:      []float64{100, 101},
	}
	for m := 1; m <= 12; m++ {
		grid := [][]float64{
			{float64(0 + m), float64(100 + m)},
			{float64(400 + m), float64(900 + m)},
		}
		res.Months = append(res.Months, grid)
	}
	return res, nil
}

type fakeSink struct {
	series  []*climate.Table
	regions []*aggregate.RegionResult
	hexes   []*aggregate.HexResult
}

func (s *fakeSink) WriteSeries(_ context.Context, t *climate.Table) error {
	s.series = append(s.series, t)
	return nil
}

func (s *fakeSink) WriteRegions(_ context.Context, r *aggregate.RegionResult) error {
	s.regions = append(s.regions, r)
	return nil
}

func (s *fakeSink) WriteHexes(_ context.Context, r *aggregate.HexResult) error {
	s.hexes = append(s.hexes, r)
	return nil
}

func (s *fakeSink) Close() error {
	return nil
}

func testCatalog() *climate.Catalog {
	res := &climate.Catalog{
		GridCRS: testCRS,
		Partial: map[int]int{2020: 5},
		Sources: make(map[climate.Variable]climate.Source),
	}
	for _, v := range climate.Variables() {
		res.Sources[v] = climate.Source{
			Variable: v, DataVar: v.String(), Dir: "{data}", File: "{year}.nc",
		}
	}
	return res
}

func testConfig(opts ...config.Option) *config.Config {
	cfg := config.New()
	cfg.Update(append([]config.Option{
		config.OptRasterYears(2019, 2020),
		config.OptJobsNumber(2),
	}, opts...))
	return cfg
}

func rect(x, y, w, h float64) geom.Polygon {
	return geom.Polygon{{
		{X: x, Y: y}, {X: x + w, Y: y}, {X: x + w, Y: y + h},
		{X: x, Y: y + h}, {X: x, Y: y},
	}}
}

func testRegions() *aggregate.RegionSet {
	return &aggregate.RegionSet{
		CRS: testCRS,
		Regions: []aggregate.Region{
			{Name: "A", Parent: "P", Geometry: rect(99.5, 9.5, 1, 2)},
			{Name: "B", Parent: "P", Geometry: rect(105, 10, 1, 1)},
		},
	}
}

func errCode(t *testing.T, err error) gn.ErrorCode {
	t.Helper()
	var gnErr *gn.Error
	require.ErrorAs(t, err, &gnErr)
	return gnErr.Code
}

func TestSeries(t *testing.T) {
	r := &fakeReader{}
	p := ioprocess.New(testConfig(), testCatalog(), r)

	tbl, err := p.Series(context.Background(), climate.Precip)
	require.NoError(t, err)

	assert.Equal(t, 4, tbl.Len())
	// 2020 is a partial year with 5 months, extra months are ignored
	assert.Len(t, tbl.Columns, 12+5)
	assert.Equal(t, testCRS, tbl.CRS)
	assert.Equal(t, "2019_month_1", tbl.ColumnNames()[0])
	assert.Equal(t, "2020_month_5", tbl.ColumnNames()[16])
	assert.Equal(t, 2, r.reads)
}

func TestSeriesFailedYears(t *testing.T) {
	r := &fakeReader{fail: map[climate.Variable]map[int]bool{
		climate.Tmin: {2017: true, 2019: true},
	}}
	cfg := testConfig(config.OptRasterYears(2017, 2020))
	p := ioprocess.New(cfg, testCatalog(), r)

	_, err := p.Series(context.Background(), climate.Tmin)
	assert.Equal(t, errcode.SeriesBuildError, errCode(t, err))

	var gnErr *gn.Error
	require.ErrorAs(t, err, &gnErr)
	assert.Equal(t, []any{"tmin", "2017, 2019"}, gnErr.Vars)
	assert.Equal(t, 4, r.reads, "all years are attempted")
}

func TestSeriesUnsupported(t *testing.T) {
	cat := testCatalog()
	delete(cat.Sources, climate.Tmax)
	r := &fakeReader{}
	p := ioprocess.New(testConfig(), cat, r)

	_, err := p.Series(context.Background(), climate.Tmax)
	assert.Equal(t, errcode.UnsupportedVariableError, errCode(t, err))
	_, err = p.Series(context.Background(), climate.Unknown)
	assert.Equal(t, errcode.UnsupportedVariableError, errCode(t, err))
	assert.Zero(t, r.reads, "no I/O for unsupported variables")
}

func TestExport(t *testing.T) {
	sink := &fakeSink{}
	p := ioprocess.New(testConfig(), testCatalog(), &fakeReader{})

	require.NoError(t, p.Export(context.Background(), sink))
	require.Len(t, sink.series, 3)
	for i, v := range climate.Variables() {
		assert.Equal(t, v.String(), sink.series[i].Label())
	}
}

func TestRegions(t *testing.T) {
	sink := &fakeSink{}
	cfg := testConfig(config.OptVariables([]string{"precip"}))
	p := ioprocess.New(cfg, testCatalog(), &fakeReader{})

	require.NoError(t, p.Regions(context.Background(), testRegions(), sink))
	require.Len(t, sink.regions, 1)

	res := sink.regions[0]
	require.Len(t, res.Rows, 2)

	a, b := res.Rows[0], res.Rows[1]
	assert.Equal(t, "A", a.Name)
	assert.Equal(t, 2, a.Cells)
	assert.Zero(t, a.Distance)
	assert.Equal(t, 201.0, a.Values[0])

	// B is away from all cells, (10, 101) and (11, 101) are
	// equidistant, the first row wins.
	assert.Equal(t, "B", b.Name)
	assert.Equal(t, 1, b.Cells)
	assert.Equal(t, 4.0, b.Distance)
	assert.Equal(t, 101.0, b.Values[0])
}

func TestRegionsPartialFailure(t *testing.T) {
	sink := &fakeSink{}
	r := &fakeReader{fail: map[climate.Variable]map[int]bool{
		climate.Tmax: {2020: true},
	}}
	cfg := testConfig(config.OptVariables([]string{"tmax", "precip"}))
	p := ioprocess.New(cfg, testCatalog(), r)

	require.NoError(t, p.Regions(context.Background(), testRegions(), sink))
	require.Len(t, sink.regions, 1)
	assert.Equal(t, "precip", sink.regions[0].Label)
}

func TestAllVariablesFailed(t *testing.T) {
	r := &fakeReader{fail: map[climate.Variable]map[int]bool{
		climate.Precip: {2019: true},
		climate.Tmin:   {2020: true},
	}}
	cfg := testConfig(config.OptVariables([]string{"precip", "tmin"}))
	p := ioprocess.New(cfg, testCatalog(), r)

	sink := &fakeSink{}
	err := p.Hexes(context.Background(),
		aggregate.TerritoryFromRegions(testRegions()), sink)
	assert.Equal(t, errcode.AllVariablesFailedError, errCode(t, err))
	assert.Empty(t, sink.hexes)
}

func TestCombine(t *testing.T) {
	sink := &fakeSink{}
	cfg := testConfig(
		config.OptVariables([]string{"tmin", "precip"}),
		config.OptCombine(true),
	)
	p := ioprocess.New(cfg, testCatalog(), &fakeReader{})

	require.NoError(t, p.Regions(context.Background(), testRegions(), sink))
	require.Len(t, sink.regions, 1)

	res := sink.regions[0]
	assert.Equal(t, "tmin_precip", res.Label)
	assert.Len(t, res.Columns, 2*(12+5))
	assert.Equal(t, "tmin_2019_month_1", res.Columns[0])
	assert.Equal(t, "precip_2019_month_1", res.Columns[17])
}

func TestHexes(t *testing.T) {
	sink := &fakeSink{}
	cfg := testConfig(
		config.OptVariables([]string{"tmax"}),
		config.OptHexResolution(5),
	)
	p := ioprocess.New(cfg, testCatalog(), &fakeReader{})

	ter := aggregate.TerritoryFromRegions(testRegions())
	require.NoError(t, p.Hexes(context.Background(), ter, sink))
	require.Len(t, sink.hexes, 1)

	res := sink.hexes[0]
	assert.Equal(t, 5, res.Resolution)
	// only cells at longitude 100 are near the territory
	assert.Len(t, res.Rows, 2)
	for _, r := range res.Rows {
		assert.Equal(t, 1, r.Cells)
	}
}

func TestUnknownVariable(t *testing.T) {
	r := &fakeReader{}
	cfg := testConfig(config.OptVariables([]string{"precip", "snow"}))
	p := ioprocess.New(cfg, testCatalog(), r)

	err := p.Export(context.Background(), &fakeSink{})
	assert.Equal(t, errcode.UnsupportedVariableError, errCode(t, err))
	assert.Zero(t, r.reads)
}

func TestCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	p := ioprocess.New(testConfig(), testCatalog(), &fakeReader{})

	err := p.Export(ctx, &fakeSink{})
	assert.Equal(t, errcode.CancelledError, errCode(t, err))

	_, err = p.Series(ctx, climate.Precip)
	assert.Equal(t, errcode.CancelledError, errCode(t, err))
}

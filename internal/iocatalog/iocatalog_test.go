package iocatalog_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/gnclimate/internal/iocatalog"
	"github.com/gnames/gnclimate/internal/iofs"
	"github.com/gnames/gnclimate/pkg/climate"
	"github.com/gnames/gnclimate/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseDefault(t *testing.T) {
	cat, err := iocatalog.Parse([]byte(iofs.VariablesYAML))
	require.NoError(t, err)

	assert.Contains(t, cat.GridCRS, "+proj=longlat")
	assert.Equal(t, 5, cat.Coverage(2000, 2020).MonthCount(2020))
	assert.Equal(t, 12, cat.Coverage(2000, 2020).MonthCount(2019))
	assert.Len(t, cat.Sources, 3)

	src, ok := cat.Source(climate.Precip)
	require.True(t, ok)
	assert.Equal(t, "precip", src.DataVar)
	assert.Equal(t,
		filepath.Join("/data", "precip", "agcd_v1_precip_total_r005_monthly_2020.nc"),
		src.Path("/data", 2020),
	)
}

func TestParse(t *testing.T) {
	tests := []struct {
		msg  string
		yaml string
		err  bool
	}{
		{
			msg: "minimal",
			yaml: `grid_crs: "+proj=longlat"
variables:
  tmax:
    file: "tmax_{year}.nc"`,
		},
		{
			msg:  "no crs",
			yaml: "variables:\n  tmax:\n    file: a.nc",
			err:  true,
		},
		{
			msg:  "no variables",
			yaml: `grid_crs: "+proj=longlat"`,
			err:  true,
		},
		{
			msg: "no file template",
			yaml: `grid_crs: "+proj=longlat"
variables:
  tmax:
    dir: "{data}"`,
			err: true,
		},
		{
			msg: "bad month count",
			yaml: `grid_crs: "+proj=longlat"
partial_years:
  2020: 0
variables:
  tmax:
    file: "tmax_{year}.nc"`,
			err: true,
		},
		{
			msg:  "bad yaml",
			yaml: "grid_crs: [",
			err:  true,
		},
	}

	for _, tt := range tests {
		cat, err := iocatalog.Parse([]byte(tt.yaml))
		if tt.err {
			assert.Error(t, err, tt.msg)
			continue
		}
		require.NoError(t, err, tt.msg)
		src, ok := cat.Source(climate.Tmax)
		require.True(t, ok, tt.msg)
		assert.Equal(t, "tmax", src.DataVar, tt.msg)
	}
}

func TestParseUnsupported(t *testing.T) {
	yml := `grid_crs: "+proj=longlat"
variables:
  humidity:
    file: "h_{year}.nc"`
	_, err := iocatalog.Parse([]byte(yml))
	require.Error(t, err)
	var gnErr *gn.Error
	require.True(t, errors.As(err, &gnErr))
	assert.Equal(t, errcode.CatalogVariableError, gnErr.Code)
}

func TestLoad(t *testing.T) {
	dir := t.TempDir()

	_, err := iocatalog.Load(filepath.Join(dir, "absent.yaml"))
	var gnErr *gn.Error
	require.True(t, errors.As(err, &gnErr))
	assert.Equal(t, errcode.CatalogReadError, gnErr.Code)

	path := filepath.Join(dir, "variables.yaml")
	require.NoError(t, os.WriteFile(path, []byte("grid_crs: ''"), 0644))
	_, err = iocatalog.Load(path)
	require.True(t, errors.As(err, &gnErr))
	assert.Equal(t, errcode.CatalogParseError, gnErr.Code)

	require.NoError(t, os.WriteFile(path, []byte(iofs.VariablesYAML), 0644))
	cat, err := iocatalog.Load(path)
	require.NoError(t, err)
	assert.Len(t, cat.Sources, 3)
}

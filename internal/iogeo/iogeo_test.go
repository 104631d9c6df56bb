package iogeo_test

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/encoding/shp"
	"github.com/gnames/gn"
	"github.com/gnames/gnclimate/internal/iogeo"
	"github.com/gnames/gnclimate/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const (
	gridCRS = "+proj=longlat +ellps=GRS80 +towgs84=0,0,0,0,0,0,0 +no_defs"
	wgs84   = `GEOGCS["GCS_WGS_1984",DATUM["D_WGS_1984",` +
		`SPHEROID["WGS_1984",6378137.0,298.257223563]],` +
		`PRIMEM["Greenwich",0.0],UNIT["Degree",0.0174532925199433]]`
)

// suburb follows the attribute layout of ABS suburb boundaries.
type suburb struct {
	geom.Polygon
	SAL_NAME21 string
	STE_NAME21 string
}

func square(x0, y0, x1, y1 float64) geom.Polygon {
	return geom.Polygon{{
		{X: x0, Y: y0}, {X: x0, Y: y1}, {X: x1, Y: y1}, {X: x1, Y: y0}, {X: x0, Y: y0},
	}}
}

func writeShapefile(t *testing.T, dir string, withPrj bool) string {
	t.Helper()
	path := filepath.Join(dir, "sal.shp")
	e, err := shp.NewEncoder(path, suburb{})
	require.NoError(t, err)
	recs := []suburb{
		{Polygon: square(150, -34, 150.1, -33.9), SAL_NAME21: "Ashfield", STE_NAME21: "New South Wales"},
		{Polygon: square(144.9, -37.9, 145, -37.8), SAL_NAME21: "Brunswick", STE_NAME21: "Victoria"},
	}
	for _, r := range recs {
		require.NoError(t, e.Encode(r))
	}
	e.Close()
	if withPrj {
		err = os.WriteFile(filepath.Join(dir, "sal.prj"), []byte(wgs84), 0644)
		require.NoError(t, err)
	}
	return path
}

func code(t *testing.T, err error) gn.ErrorCode {
	t.Helper()
	var gnErr *gn.Error
	require.True(t, errors.As(err, &gnErr), "expected gn.Error, got %v", err)
	return gnErr.Code
}

func TestLoadRegions(t *testing.T) {
	path := writeShapefile(t, t.TempDir(), true)

	set, err := iogeo.LoadRegions(path, "SAL_NAME21", "STE_NAME21", gridCRS)
	require.NoError(t, err)
	assert.Equal(t, gridCRS, set.CRS)
	require.Len(t, set.Regions, 2)
	assert.Equal(t, "Ashfield", set.Regions[0].Name)
	assert.Equal(t, "New South Wales", set.Regions[0].Parent)
	assert.Equal(t, "Brunswick", set.Regions[1].Name)

	b := set.Regions[0].Geometry.Bounds()
	assert.InDelta(t, 150, b.Min.X, 1e-6)
	assert.InDelta(t, -34, b.Min.Y, 1e-6)
	assert.InDelta(t, 150.1, b.Max.X, 1e-6)
	assert.InDelta(t, -33.9, b.Max.Y, 1e-6)
}

func TestLoadTerritory(t *testing.T) {
	path := writeShapefile(t, t.TempDir(), true)

	ter, err := iogeo.LoadTerritory(path, gridCRS)
	require.NoError(t, err)
	assert.Equal(t, gridCRS, ter.CRS)
	assert.Len(t, ter.Parts, 2)
}

func TestLoadErrors(t *testing.T) {
	dir := t.TempDir()

	_, err := iogeo.LoadRegions(filepath.Join(dir, "absent.shp"),
		"SAL_NAME21", "STE_NAME21", gridCRS)
	require.Error(t, err)
	assert.Equal(t, errcode.MissingInputError, code(t, err))

	path := writeShapefile(t, dir, false)
	_, err = iogeo.LoadRegions(path, "SAL_NAME21", "STE_NAME21", gridCRS)
	require.Error(t, err)
	assert.Equal(t, errcode.SchemaMismatchError, code(t, err))

	require.NoError(t, os.WriteFile(filepath.Join(dir, "sal.prj"), []byte(wgs84), 0644))
	_, err = iogeo.LoadRegions(path, "NAME", "STE_NAME21", gridCRS)
	require.Error(t, err)
	// unknown attribute is reported either by the decoder or by the row check
	assert.Contains(t,
		[]gn.ErrorCode{errcode.SchemaMismatchError, errcode.MissingInputError},
		code(t, err),
	)
}

package iosink

import (
	"context"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func readFile(t *testing.T, path string) string {
	t.Helper()
	bs, err := os.ReadFile(path)
	require.NoError(t, err)
	return string(bs)
}

func TestCSVSeries(t *testing.T) {
	dir := t.TempDir()
	sink := NewCSV(dir)
	require.NoError(t, sink.WriteSeries(context.Background(), testTable()))

	got := readFile(t, filepath.Join(dir, "precip_series.csv"))
	exp := "lat,lon,2019_month_12,2020_month_1\n" +
		"-35.5,149.25,10.5,\n" +
		"-35.45,149.3,0,3.25\n"
	assert.Equal(t, exp, got)
}

func TestCSVRegions(t *testing.T) {
	dir := t.TempDir()
	sink := NewCSV(dir)
	require.NoError(t, sink.WriteRegions(context.Background(), testRegions()))

	got := readFile(t, filepath.Join(dir, "precip_regions.csv"))
	exp := "name,parent,cells,distance,2019_month_12,2020_month_1\n" +
		"Acton,ACT,2,0,5.25,3.25\n" +
		"\"Yass, NSW\",New South Wales,1,0.125,0,\n"
	assert.Equal(t, exp, got)

	got = readFile(t, filepath.Join(dir, "precip_region_geometries.csv"))
	exp = "name,parent,wkt\n" +
		"\"Yass, NSW\",New South Wales," +
		"\"POLYGON((149 -35,149.5 -35,149.5 -34.5,149 -34.5,149 -35))\"\n" +
		"Acton,ACT," +
		"\"POLYGON((149 -36,150 -36,150 -35,149 -35,149 -36))\"\n"
	assert.Equal(t, exp, got)
}

func TestCSVHexes(t *testing.T) {
	dir := t.TempDir()
	sink := NewCSV(dir)
	require.NoError(t, sink.WriteHexes(context.Background(), testHexes()))

	got := readFile(t, filepath.Join(dir, "precip_hexes_r6.csv"))
	exp := "hex_id,cells,2019_month_12,2020_month_1\n" +
		"86be0e357ffffff,2,5.25,3.25\n"
	assert.Equal(t, exp, got)

	got = readFile(t, filepath.Join(dir, "precip_hex_geometries_r6.csv"))
	assert.Contains(t, got, "hex_id,wkt\n86be0e357ffffff,\"POLYGON((149.2 -35.5,")
}

func TestCSVDeterministic(t *testing.T) {
	ctx := context.Background()
	write := func(dir string) {
		sink := NewCSV(dir)
		require.NoError(t, sink.WriteSeries(ctx, testTable()))
		require.NoError(t, sink.WriteRegions(ctx, testRegions()))
		require.NoError(t, sink.WriteHexes(ctx, testHexes()))
		require.NoError(t, sink.Close())
	}

	dir1, dir2 := t.TempDir(), t.TempDir()
	write(dir1)
	write(dir2)
	// rerun into the same directory replaces files
	write(dir1)

	entries, err := os.ReadDir(dir1)
	require.NoError(t, err)
	assert.Len(t, entries, 5, "no temporary files are left")

	for _, e := range entries {
		a := readFile(t, filepath.Join(dir1, e.Name()))
		b := readFile(t, filepath.Join(dir2, e.Name()))
		assert.Equal(t, a, b, e.Name())
	}
}

func TestCSVCancelled(t *testing.T) {
	dir := t.TempDir()
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	err := NewCSV(dir).WriteSeries(ctx, testTable())
	assert.Error(t, err)

	entries, err := os.ReadDir(dir)
	require.NoError(t, err)
	assert.Empty(t, entries, "no partial file is written")
}

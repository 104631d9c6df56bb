package iosink_test

import (
	"context"
	"math"
	"testing"

	"github.com/gnames/gnclimate/internal/iodb"
	"github.com/gnames/gnclimate/internal/ioschema"
	"github.com/gnames/gnclimate/internal/iosink"
	"github.com/gnames/gnclimate/internal/iotesting"
	"github.com/gnames/gnclimate/pkg/climate"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPostgres(t *testing.T) {
	iotesting.SkipWithoutDatabase(t)

	ctx := context.Background()
	cfg := iotesting.GetTestConfig()

	op := iodb.NewPgxOperator()
	require.NoError(t, op.Connect(ctx, &cfg.Database))
	require.NoError(t, ioschema.NewManager(op).Create(ctx, cfg, true))

	sink, err := iosink.NewPostgres(ctx, op, &cfg.Database)
	require.NoError(t, err)

	tbl := &climate.Table{
		Variables: []climate.Variable{climate.Tmax},
		Cells: []climate.Cell{
			{Lat: -35.5, Lon: 149.25},
			{Lat: -35.45, Lon: 149.3},
		},
		Columns: []climate.Column{
			{Variable: climate.Tmax, Period: climate.Period{Year: 2020, Month: 1}},
			{Variable: climate.Tmax, Period: climate.Period{Year: 2020, Month: 2}},
		},
		Values: [][]float64{{30.5, math.NaN()}, {29, 28.75}},
	}

	// batch size of the test config is smaller than the row count
	require.NoError(t, sink.WriteSeries(ctx, tbl))
	require.NoError(t, sink.WriteSeries(ctx, tbl))

	var runs, values int
	err = op.Pool().QueryRow(ctx, "SELECT count(*) FROM runs").Scan(&runs)
	require.NoError(t, err)
	err = op.Pool().QueryRow(ctx, "SELECT count(*) FROM cell_values").
		Scan(&values)
	require.NoError(t, err)
	assert.Equal(t, 1, runs)
	assert.Equal(t, 3, values)

	// closing runs VACUUM ANALYZE on written tables
	require.NoError(t, sink.Close())
}

func TestPostgresWithoutSchema(t *testing.T) {
	iotesting.SkipWithoutDatabase(t)

	ctx := context.Background()
	cfg := iotesting.GetTestConfig()

	op := iodb.NewPgxOperator()
	require.NoError(t, op.Connect(ctx, &cfg.Database))
	defer op.Close()
	require.NoError(t, op.DropAllTables(ctx))

	_, err := iosink.NewPostgres(ctx, op, &cfg.Database)
	assert.Error(t, err)
}

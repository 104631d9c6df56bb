package ioschema_test

import (
	"context"
	"testing"

	"github.com/gnames/gnclimate/internal/iodb"
	"github.com/gnames/gnclimate/internal/ioschema"
	"github.com/gnames/gnclimate/internal/iotesting"
	"github.com/gnames/gnclimate/pkg/lifecycle"
	"github.com/gnames/gnclimate/pkg/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestManager_ImplementsInterface verifies manager
// implements lifecycle.SchemaManager interface.
func TestManager_ImplementsInterface(t *testing.T) {
	op := iodb.NewPgxOperator()
	var _ lifecycle.SchemaManager = ioschema.NewManager(op)
}

// TestManager_NotConnected verifies that schema operations
// need a connection.
func TestManager_NotConnected(t *testing.T) {
	mgr := ioschema.NewManager(iodb.NewPgxOperator())
	cfg := iotesting.GetTestConfig()

	assert.Error(t, mgr.Create(context.Background(), cfg, false))
	assert.Error(t, mgr.Migrate(context.Background(), cfg))
}

// TestManager_Create runs against the test database.
func TestManager_Create(t *testing.T) {
	iotesting.SkipWithoutDatabase(t)

	ctx := context.Background()
	cfg := iotesting.GetTestConfig()
	op := iodb.NewPgxOperator()
	require.NoError(t, op.Connect(ctx, &cfg.Database))
	defer op.Close()

	mgr := ioschema.NewManager(op)
	require.NoError(t, mgr.Create(ctx, cfg, true))

	for _, g := range schema.Generators() {
		exists, err := op.TableExists(ctx, g.TableName())
		require.NoError(t, err)
		assert.True(t, exists, g.TableName())
	}

	// idempotent
	require.NoError(t, mgr.Create(ctx, cfg, false))
	require.NoError(t, mgr.Migrate(ctx, cfg))
}

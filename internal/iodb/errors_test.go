package iodb

import (
	"errors"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/gnclimate/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// TestConnectionError_Structure verifies error structure.
func TestConnectionError_Structure(t *testing.T) {
	originalErr := errors.New("connection refused")

	err := ConnectionError("localhost", 5432, "test", "postgres",
		originalErr)

	require.NotNil(t, err)

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok, "Error should be of type *gn.Error")

	assert.Equal(t, errcode.DBConnectionError, gnErr.Code)
	assert.NotEmpty(t, gnErr.Msg)
	assert.Len(t, gnErr.Vars, 5)
	assert.ErrorIs(t, gnErr.Err, originalErr)
}

// TestEmptyDatabaseError_Structure verifies error structure.
func TestEmptyDatabaseError_Structure(t *testing.T) {
	err := EmptyDatabaseError("localhost", "test_db")

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok, "Error should be of type *gn.Error")

	assert.Equal(t, errcode.DBEmptyDatabaseError, gnErr.Code)
	assert.Equal(t, []any{"test_db", "localhost"}, gnErr.Vars)
	assert.Contains(t, gnErr.Msg, "gnclimate create")
}

// TestNotConnectedError_Structure verifies error structure.
func TestNotConnectedError_Structure(t *testing.T) {
	err := NotConnectedError()

	gnErr, ok := err.(*gn.Error)
	require.True(t, ok, "Error should be of type *gn.Error")

	assert.Equal(t, errcode.DBNotConnectedError, gnErr.Code)
	assert.Contains(t, gnErr.Err.Error(), "not connected")
}

// TestAllErrors_ErrorWrapping verifies codes and wrapping.
func TestAllErrors_ErrorWrapping(t *testing.T) {
	originalErr := errors.New("root cause")

	tests := []struct {
		name  string
		error error
		code  gn.ErrorCode
	}{
		{
			name:  "TableCheckError",
			error: TableCheckError(originalErr),
			code:  errcode.DBTableCheckError,
		},
		{
			name:  "TableExistsCheckError",
			error: TableExistsCheckError("table", originalErr),
			code:  errcode.DBTableCheckError,
		},
		{
			name:  "QueryTablesError",
			error: QueryTablesError(originalErr),
			code:  errcode.DBQueryTablesError,
		},
		{
			name:  "ScanTableError",
			error: ScanTableError(originalErr),
			code:  errcode.DBScanTableError,
		},
		{
			name:  "DropTableError",
			error: DropTableError("table", originalErr),
			code:  errcode.DBDropTableError,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			gnErr, ok := tt.error.(*gn.Error)
			require.True(t, ok)
			assert.Equal(t, tt.code, gnErr.Code)
			assert.NotEmpty(t, gnErr.Msg)
			assert.ErrorIs(t, gnErr.Err, originalErr,
				"Should wrap original error")
		})
	}
}

// TestOperatorNotConnected verifies that queries fail before Connect.
func TestOperatorNotConnected(t *testing.T) {
	op := NewPgxOperator()
	assert.Nil(t, op.Pool())

	_, err := op.TableExists(t.Context(), "runs")
	var gnErr *gn.Error
	require.ErrorAs(t, err, &gnErr)
	assert.Equal(t, errcode.DBNotConnectedError, gnErr.Code)

	_, err = op.HasTables(t.Context())
	assert.Error(t, err)
	assert.Error(t, op.DropAllTables(t.Context()))
	assert.NoError(t, op.Close())
}

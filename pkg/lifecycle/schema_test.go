package lifecycle_test

import (
	"testing"

	"github.com/gnames/gnclimate/internal/iodb"
	"github.com/gnames/gnclimate/internal/ioschema"
	"github.com/gnames/gnclimate/pkg/lifecycle"
	"github.com/stretchr/testify/assert"
)

// TestSchemaManagerContract ensures that the ioschema manager satisfies
// the lifecycle.SchemaManager interface.
func TestSchemaManagerContract(t *testing.T) {
	// The following line is a compile-time check.
	var _ lifecycle.SchemaManager = ioschema.NewManager(iodb.NewPgxOperator())

	// This assertion is a runtime check to confirm the test was executed.
	assert.True(t, true, "ioschema manager should implement lifecycle.SchemaManager")
}

package db_test

import (
	"testing"

	"github.com/gnames/gnclimate/internal/iodb"
	"github.com/gnames/gnclimate/pkg/db"
)

// TestPgxOperatorImplementsInterface verifies that the pgx operator
// implements the db.Operator interface.
func TestPgxOperatorImplementsInterface(t *testing.T) {
	var _ db.Operator = iodb.NewPgxOperator()
}

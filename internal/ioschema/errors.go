package ioschema

import (
	"fmt"

	"github.com/gnames/gn"
	"github.com/gnames/gnclimate/pkg/errcode"
)

// NotConnectedError creates an error for when schema
// operation is attempted without database connection.
func NotConnectedError() error {
	msg := "Schema operation attempted without database connection"

	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("not connected to database"),
	}
}

// GORMConnectionError creates an error for GORM
// connection failures.
func GORMConnectionError(err error) error {
	msg := `Cannot connect to database with GORM

<em>How to fix:</em>
  1. Ensure database operator is connected
  2. Check database settings in config.yaml`

	return &gn.Error{
		Code: errcode.SchemaGORMConnectionError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("failed to connect with GORM: %w", err),
	}
}

// CreateSchemaError creates an error for schema
// creation failures.
func CreateSchemaError(database string, err error) error {
	msg := `Cannot create gnclimate tables in <em>%s</em>

<em>Possible causes:</em>
  - Insufficient database permissions
  - Tables with the same names but other columns exist

<em>How to fix:</em>
  1. Check database user has CREATE permissions
  2. Recreate tables with <em>gnclimate create --force</em>`

	return &gn.Error{
		Code: errcode.SchemaCreateError,
		Msg:  msg,
		Vars: []any{database},
		Err:  fmt.Errorf("failed to create schema in %s: %w", database, err),
	}
}

// MigrateSchemaError creates an error for schema
// migration failures.
func MigrateSchemaError(database string, err error) error {
	msg := `Cannot migrate gnclimate tables in <em>%s</em>

Incompatible changes need a new schema:
  <em>gnclimate create --force</em>`

	return &gn.Error{
		Code: errcode.SchemaMigrateError,
		Msg:  msg,
		Vars: []any{database},
		Err:  fmt.Errorf("failed to migrate schema in %s: %w", database, err),
	}
}

// CollationError creates an error for collation
// setting failures.
func CollationError(table, column string, err error) error {
	msg := `Cannot set collation on <em>%s.%s</em>

<em>How to fix:</em>
  1. Ensure table was created successfully
  2. Check database user has ALTER permissions`

	vars := []any{table, column}

	return &gn.Error{
		Code: errcode.SchemaCollationError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf(
			"failed to set collation on %s.%s: %w",
			table, column, err),
	}
}

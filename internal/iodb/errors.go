package iodb

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gnclimate/pkg/errcode"
)

// ConnectionError is returned when database connection fails.
func ConnectionError(
	host string, port int, database, user string, err error,
) error {
	msg := `Could not connect to PostgreSQL database

<em>Possible causes:</em>
  - PostgreSQL is not running
  - Database configuration is incorrect
  - Network connectivity issues

<em>How to fix:</em>
  1. Check if PostgreSQL is running:
     <em>pg_isready -h %s -p %d</em>

  2. Verify database exists:
     <em>psql -h %s -U %s -l</em>

  3. Check database settings in
     <em>~/.config/gnclimate/config.yaml</em>
     (database: %s)`
	vars := []any{host, port, host, user, database}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBConnectionError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: failed to connect to %s:%d/%s: %w",
			fn.Name(), host, port, database, err),
	}
}

// TableCheckError is returned when checking for tables fails.
func TableCheckError(err error) error {
	msg := "Could not verify database state"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBTableCheckError,
		Msg:  msg,
		Err: fmt.Errorf("from %s: failed to check database tables: %w",
			fn.Name(), err),
	}
}

// EmptyDatabaseError is returned when the output tables were not
// created yet.
func EmptyDatabaseError(host, database string) error {
	msg := `Database <em>%s</em> at %s has no gnclimate tables

Create them first:
  <em>gnclimate create</em>`
	vars := []any{database, host}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBEmptyDatabaseError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: database %s has no tables, run 'gnclimate create'",
			fn.Name(), database),
	}
}

// NotConnectedError is returned when an operation runs before Connect.
func NotConnectedError() error {
	msg := "Database operation attempted without connection"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBNotConnectedError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: database is not connected", fn.Name()),
	}
}

// TableExistsCheckError is returned when a table lookup fails.
func TableExistsCheckError(table string, err error) error {
	msg := "Cannot check if table <em>%s</em> exists"
	vars := []any{table}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBTableCheckError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: failed to check table %s: %w",
			fn.Name(), table, err),
	}
}

// QueryTablesError is returned when listing tables fails.
func QueryTablesError(err error) error {
	msg := "Cannot list database tables"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBQueryTablesError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: failed to query tables: %w", fn.Name(), err),
	}
}

// ScanTableError is returned when reading a table name fails.
func ScanTableError(err error) error {
	msg := "Cannot read database table names"
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBScanTableError,
		Msg:  msg,
		Err:  fmt.Errorf("from %s: failed to scan table name: %w", fn.Name(), err),
	}
}

// DropTableError is returned when a table cannot be dropped.
func DropTableError(table string, err error) error {
	msg := "Cannot drop table <em>%s</em>"
	vars := []any{table}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.DBDropTableError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: failed to drop table %s: %w",
			fn.Name(), table, err),
	}
}

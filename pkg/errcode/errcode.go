package errcode

import (
	"github.com/gnames/gn"
)

const (
	UnknownError gn.ErrorCode = iota
	CancelledError

	// File System errors
	CreateDirError
	CopyFileError
	ReadFileError

	// Logging errors
	CreateLogFileError

	// Catalog errors
	CatalogReadError
	CatalogParseError
	CatalogVariableError

	// Input errors
	UnsupportedVariableError
	MissingInputError
	SchemaMismatchError

	// Series errors
	SeriesYearsError
	SeriesEmptyError
	SeriesBuildError

	// Aggregation errors
	HexResolutionError
	AggregateEmptyError
	AllVariablesFailedError

	// Database errors
	DBConnectionError
	DBTableCheckError
	DBNotConnectedError
	DBQueryTablesError
	DBScanTableError
	DBDropTableError
	DBEmptyDatabaseError

	// Schema errors
	SchemaGORMConnectionError
	SchemaCreateError
	SchemaMigrateError
	SchemaCollationError

	// Output errors
	OutputFormatError
	OutputWriteError
)

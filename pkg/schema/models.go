// Package schema provides the long-form output models of gnclimate.
// The same models back the PostgreSQL schema (GORM AutoMigrate) and the
// SQLite schema (DDL generated from struct tags).
package schema

// DDLGenerator defines how Go models generate portable SQL DDL.
type DDLGenerator interface {
	// TableDDL returns the CREATE TABLE statement for this model.
	TableDDL() string

	// IndexDDL returns CREATE INDEX statements for this model.
	// Returns empty slice if no indexes needed.
	IndexDDL() []string

	// TableName returns the table name for this model.
	TableName() string
}

// Run kinds.
const (
	KindSeries  = "series"
	KindRegions = "regions"
	KindHexes   = "hexes"
)

// Run describes one written result. Rerunning the same conversion gives
// the same ID, and its rows replace the previous ones.
type Run struct {
	// ID is a UUIDv5 generated from the run parameters.
	ID string `db:"id" ddl:"TEXT PRIMARY KEY" gorm:"type:uuid;primaryKey"`

	// Kind is one of "series", "regions", "hexes".
	Kind string `db:"kind" ddl:"TEXT NOT NULL" gorm:"type:varchar(20);not null"`

	// Label is the variable name, or names joined by "_" for combined
	// tables.
	Label string `db:"label" ddl:"TEXT NOT NULL" gorm:"type:varchar(100);not null"`

	// Units of the variables in label order, joined by ",".
	Units string `db:"units" ddl:"TEXT NOT NULL" gorm:"type:varchar(100);not null"`

	// Source is the region or territory dataset, empty for series.
	Source string `db:"source" ddl:"TEXT NOT NULL DEFAULT ''" gorm:"type:text;not null;default:''"`

	// Resolution of the H3 grid, 0 for other kinds.
	Resolution int `db:"resolution" ddl:"INTEGER NOT NULL DEFAULT 0" gorm:"not null;default:0"`

	// FirstYear and LastYear are the observed years.
	FirstYear int `db:"first_year" ddl:"INTEGER NOT NULL" gorm:"not null"`
	LastYear  int `db:"last_year" ddl:"INTEGER NOT NULL" gorm:"not null"`

	// ColumnsNumber is the number of periods of the wide table.
	ColumnsNumber int `db:"columns_number" ddl:"INTEGER NOT NULL" gorm:"not null"`
}

// CellValue is one observation of a grid cell.
type CellValue struct {
	RunID    string  `db:"run_id" ddl:"TEXT NOT NULL" gorm:"type:uuid;not null;index"`
	Lat      float64 `db:"lat" ddl:"DOUBLE PRECISION NOT NULL" gorm:"not null"`
	Lon      float64 `db:"lon" ddl:"DOUBLE PRECISION NOT NULL" gorm:"not null"`
	Variable string  `db:"variable" ddl:"TEXT NOT NULL" gorm:"type:varchar(20);not null"`
	Year     int     `db:"year" ddl:"INTEGER NOT NULL" gorm:"not null"`
	Month    int     `db:"month" ddl:"INTEGER NOT NULL" gorm:"not null"`
	Value    float64 `db:"value" ddl:"DOUBLE PRECISION NOT NULL" gorm:"not null"`
}

// Region is a (name, parent) group with its contributing cells.
type Region struct {
	RunID  string `db:"run_id" ddl:"TEXT NOT NULL" gorm:"type:uuid;not null;index"`
	Name   string `db:"name" ddl:"TEXT NOT NULL" gorm:"type:varchar(255);not null"`
	Parent string `db:"parent" ddl:"TEXT NOT NULL" gorm:"type:varchar(255);not null"`

	// CellsNumber is the number of grid cells used for means.
	CellsNumber int `db:"cells_number" ddl:"INTEGER NOT NULL" gorm:"not null"`

	// Distance is the largest distance from a contributing cell to the
	// region, 0 when all cells are inside.
	Distance float64 `db:"distance" ddl:"DOUBLE PRECISION NOT NULL" gorm:"not null"`
}

// RegionValue is a mean of one region for one period.
type RegionValue struct {
	RunID    string  `db:"run_id" ddl:"TEXT NOT NULL" gorm:"type:uuid;not null;index"`
	Name     string  `db:"name" ddl:"TEXT NOT NULL" gorm:"type:varchar(255);not null"`
	Parent   string  `db:"parent" ddl:"TEXT NOT NULL" gorm:"type:varchar(255);not null"`
	Variable string  `db:"variable" ddl:"TEXT NOT NULL" gorm:"type:varchar(20);not null"`
	Year     int     `db:"year" ddl:"INTEGER NOT NULL" gorm:"not null"`
	Month    int     `db:"month" ddl:"INTEGER NOT NULL" gorm:"not null"`
	Value    float64 `db:"value" ddl:"DOUBLE PRECISION NOT NULL" gorm:"not null"`
}

// RegionGeometry is a polygon of the region dataset as WKT.
type RegionGeometry struct {
	RunID string `db:"run_id" ddl:"TEXT NOT NULL" gorm:"type:uuid;not null;index"`

	// Ord is the position of the polygon in the region dataset.
	Ord    int    `db:"ord" ddl:"INTEGER NOT NULL" gorm:"not null"`
	Name   string `db:"name" ddl:"TEXT NOT NULL" gorm:"type:varchar(255);not null"`
	Parent string `db:"parent" ddl:"TEXT NOT NULL" gorm:"type:varchar(255);not null"`
	WKT    string `db:"wkt" ddl:"TEXT NOT NULL" gorm:"column:wkt;type:text;not null"`
}

// Hex is an H3 cell retained by the territory filter.
type Hex struct {
	RunID       string `db:"run_id" ddl:"TEXT NOT NULL" gorm:"type:uuid;not null;index"`
	HexID       string `db:"hex_id" ddl:"TEXT NOT NULL" gorm:"type:varchar(16);not null"`
	CellsNumber int    `db:"cells_number" ddl:"INTEGER NOT NULL" gorm:"not null"`
	WKT         string `db:"wkt" ddl:"TEXT NOT NULL" gorm:"column:wkt;type:text;not null"`
}

// HexValue is a mean of one hexagon for one period.
type HexValue struct {
	RunID    string  `db:"run_id" ddl:"TEXT NOT NULL" gorm:"type:uuid;not null;index"`
	HexID    string  `db:"hex_id" ddl:"TEXT NOT NULL" gorm:"type:varchar(16);not null"`
	Variable string  `db:"variable" ddl:"TEXT NOT NULL" gorm:"type:varchar(20);not null"`
	Year     int     `db:"year" ddl:"INTEGER NOT NULL" gorm:"not null"`
	Month    int     `db:"month" ddl:"INTEGER NOT NULL" gorm:"not null"`
	Value    float64 `db:"value" ddl:"DOUBLE PRECISION NOT NULL" gorm:"not null"`
}

// Package config provides configuration management for gnclimate.
//
// This package has no I/O dependencies (no file operations, no network calls).
// Validation functions may write user-facing warnings via gn.Warn().
//
// # Configuration Sources
//
// Precedence (highest to lowest): CLI flags > env vars > config.yaml > defaults
//
// # Design Principles
//
// - Default config (from New()) is always valid - no validation needed
// - All mutations go through Option functions - the only way to modify Config
// - Invalid options are rejected with gn.Warn() - config remains in valid state
// - ToOptions() converts persistent fields (those in config.yaml)
// - Environment variables match ToOptions() fields exactly
//
// # Persistent vs Runtime Fields
//
// Persistent fields (in ToOptions, config.yaml, and env vars):
//   - Raster: data_dir, first_year, last_year
//   - Regions: path, name_field, parent_field
//   - Hex: resolution, territory_path
//   - Output: format, dir
//   - Database: host, port, user, password, database, ssl_mode, batch_size
//   - Log: level, format, destination
//   - General: jobs_number
//
// Runtime-only fields (CLI flags only):
//   - Variables, Combine (per-command)
//   - HomeDir (set once at startup)
//
// # Environment Variables
//
// Use GNCLIMATE_ prefix with underscores for nesting:
//
//	GNCLIMATE_RASTER_DATA_DIR=/data/agcd
//	GNCLIMATE_HEX_RESOLUTION=6
//	GNCLIMATE_OUTPUT_FORMAT=postgres
//	GNCLIMATE_LOG_LEVEL=info
//	GNCLIMATE_JOBS_NUMBER=8
package config

import (
	"runtime"
)

// Config represents the complete gnclimate configuration.
type Config struct {
	// Raster describes where yearly raster files are found and which
	// years are processed.
	Raster RasterConfig `mapstructure:"raster" yaml:"raster"`

	// Regions describes the administrative polygon dataset.
	Regions RegionsConfig `mapstructure:"regions" yaml:"regions"`

	// Hex contains settings of the hexagonal aggregation.
	Hex HexConfig `mapstructure:"hex" yaml:"hex"`

	// Output determines the format and location of results.
	Output OutputConfig `mapstructure:"output" yaml:"output"`

	// Database contains PostgreSQL connection settings, used when
	// Output.Format is "postgres".
	Database DatabaseConfig `mapstructure:"database" yaml:"database"`

	Log LogConfig `mapstructure:"log" yaml:"log"`

	// JobsNumber is the number of concurrent workers reading rasters.
	// Default value is set according to the number of available threads.
	JobsNumber int `mapstructure:"jobs_number" yaml:"jobs_number"`

	// Variables is the list of climate variables to process.
	// Empty slice means all variables from the catalog.
	Variables []string `mapstructure:"variables" yaml:"variables"`

	// Combine is true when the series of all requested variables are
	// joined into one table before aggregation.
	Combine bool `mapstructure:"combine" yaml:"combine"`

	// HomeDir determines where config, data and logs directories reside.
	// It must be set by CLI during init, there is no default value for it.
	HomeDir string
}

// RasterConfig contains settings of the raster input.
type RasterConfig struct {
	// DataDir replaces the {data} placeholder of the location templates
	// in the variables catalog. If empty, DataDir(HomeDir) is used.
	DataDir string `mapstructure:"data_dir" yaml:"data_dir"`

	// FirstYear is the first year of the processed range (inclusive).
	FirstYear int `mapstructure:"first_year" yaml:"first_year"`

	// LastYear is the last year of the processed range (inclusive).
	LastYear int `mapstructure:"last_year" yaml:"last_year"`
}

// RegionsConfig contains settings of the region polygon dataset.
type RegionsConfig struct {
	// Path to an ESRI shapefile with region polygons. The shapefile
	// must come with a .prj file.
	Path string `mapstructure:"path" yaml:"path"`

	// NameField is the attribute with the region name.
	NameField string `mapstructure:"name_field" yaml:"name_field"`

	// ParentField is the attribute with the name of the parent area.
	ParentField string `mapstructure:"parent_field" yaml:"parent_field"`
}

// HexConfig contains settings of the hexagonal aggregation.
type HexConfig struct {
	// Resolution of the H3 grid, from 0 (largest cells) to 15.
	Resolution int `mapstructure:"resolution" yaml:"resolution"`

	// TerritoryPath is a shapefile with the outline of the area of
	// interest. If empty, region polygons are used as the territory.
	TerritoryPath string `mapstructure:"territory_path" yaml:"territory_path"`
}

// OutputConfig contains settings of the results.
type OutputConfig struct {
	// Format can be 'csv', 'postgres' or 'sqlite'.
	Format string `mapstructure:"format" yaml:"format"`

	// Dir is where CSV files and the SQLite database are written.
	// If empty, OutputDir(HomeDir) is used.
	Dir string `mapstructure:"dir" yaml:"dir"`
}

// DatabaseConfig contains PostgreSQL connection parameters.
type DatabaseConfig struct {
	// Host is the PostgreSQL server hostname or IP address.
	Host string `mapstructure:"host" yaml:"host"`

	// Port is the PostgreSQL server port number.
	Port int `mapstructure:"port" yaml:"port"`

	// User is the PostgreSQL database username.
	User string `mapstructure:"user" yaml:"user"`

	// Password is the PostgreSQL database password.
	Password string `mapstructure:"password" yaml:"password"`

	// Database is the PostgreSQL database name to connect to.
	Database string `mapstructure:"database" yaml:"database"`

	// SSLMode specifies the SSL connection mode.
	// Valid values: "disable", "require", "verify-ca", "verify-full"
	SSLMode string `mapstructure:"ssl_mode" yaml:"ssl_mode"`

	// BatchSize defines the number of rows sent per COPY batch.
	BatchSize int `mapstructure:"batch_size" yaml:"batch_size"`
}

// LogConfig provides typical settings for application logs.
type LogConfig struct {
	// Format can be 'json', 'text' or 'tint' (user-facing and colored).
	Format string `mapstructure:"format"      yaml:"format"`
	// Level of logging -- 'error', 'warn', 'info', 'debug'
	Level string `mapstructure:"level"       yaml:"level"`
	// Destination can be a log file (to default place), STDERR or STDOUT
	Destination string `mapstructure:"destination" yaml:"destination"`
}

// New creates a Config with sensible default values.
// The returned config is always valid and ready to use.
// Default values can be overridden using Option functions via Update().
func New() *Config {
	res := &Config{
		Raster: RasterConfig{
			FirstYear: 2000,
			LastYear:  2020,
		},
		Regions: RegionsConfig{
			NameField:   "SAL_NAME21",
			ParentField: "STE_NAME21",
		},
		Hex: HexConfig{
			Resolution: 6,
		},
		Output: OutputConfig{
			Format: "csv",
		},
		Database: DatabaseConfig{
			Host:      "localhost",
			Port:      5432,
			User:      "postgres",
			Password:  "postgres",
			Database:  "gnclimate",
			SSLMode:   "disable",
			BatchSize: 50_000,
		},
		Log: LogConfig{
			Format: "json",
			Level:  "info",
			// for now file is rewritten every time the log starts
			Destination: "file",
		},
		JobsNumber: runtime.NumCPU(),
	}

	return res
}

// DataPath returns the directory that replaces {data} in raster
// location templates.
func (c *Config) DataPath() string {
	if c.Raster.DataDir != "" {
		return c.Raster.DataDir
	}
	return DataDir(c.HomeDir)
}

// OutputPath returns the directory for CSV and SQLite output.
func (c *Config) OutputPath() string {
	if c.Output.Dir != "" {
		return c.Output.Dir
	}
	return OutputDir(c.HomeDir)
}

package config

import (
	"strings"

	"github.com/gnames/gn"
)

// Option is a function that modifies a Config.
// Options validate inputs and reject invalid values with warnings.
type Option func(*Config)

// OptRasterDataDir sets the directory that replaces {data} in the
// raster location templates.
func OptRasterDataDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Raster Data Dir", s) {
			c.Raster.DataDir = s
		}
	}
}

// OptRasterFirstYear sets the first year of the processed range.
// The year cannot be later than the current last year.
func OptRasterFirstYear(i int) Option {
	return func(c *Config) {
		if !isValidInt("Raster First Year", i) {
			return
		}
		if i > c.Raster.LastYear {
			gn.Warn(
				"<em>Raster First Year</em> %d is after last year %d, ignoring",
				i, c.Raster.LastYear,
			)
			return
		}
		c.Raster.FirstYear = i
	}
}

// OptRasterLastYear sets the last year of the processed range.
// The year cannot be earlier than the current first year.
func OptRasterLastYear(i int) Option {
	return func(c *Config) {
		if !isValidInt("Raster Last Year", i) {
			return
		}
		if i < c.Raster.FirstYear {
			gn.Warn(
				"<em>Raster Last Year</em> %d is before first year %d, ignoring",
				i, c.Raster.FirstYear,
			)
			return
		}
		c.Raster.LastYear = i
	}
}

// OptRasterYears sets both ends of the processed range at once.
func OptRasterYears(first, last int) Option {
	return func(c *Config) {
		if !isValidInt("Raster First Year", first) ||
			!isValidInt("Raster Last Year", last) {
			return
		}
		if first > last {
			gn.Warn(
				"<em>Raster Years</em> range %d-%d is reversed, ignoring",
				first, last,
			)
			return
		}
		c.Raster.FirstYear = first
		c.Raster.LastYear = last
	}
}

// OptRegionsPath sets the path to the region polygons shapefile.
func OptRegionsPath(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Regions Path", s) {
			c.Regions.Path = s
		}
	}
}

// OptRegionsNameField sets the attribute holding region names.
func OptRegionsNameField(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Regions Name Field", s) {
			c.Regions.NameField = s
		}
	}
}

// OptRegionsParentField sets the attribute holding parent area names.
func OptRegionsParentField(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Regions Parent Field", s) {
			c.Regions.ParentField = s
		}
	}
}

// OptHexResolution sets the H3 resolution.
// Valid values: 0..15.
func OptHexResolution(i int) Option {
	return func(c *Config) {
		if i < 0 || i > MaxHexResolution {
			gn.Warn(
				"<em>Hex Resolution</em> has to be between 0 and %d, ignoring %d",
				MaxHexResolution, i,
			)
			return
		}
		c.Hex.Resolution = i
	}
}

// OptHexTerritoryPath sets the path to the territory outline shapefile.
func OptHexTerritoryPath(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Hex Territory Path", s) {
			c.Hex.TerritoryPath = s
		}
	}
}

// OptOutputFormat sets the output format.
// Valid values: "csv", "postgres", "sqlite".
func OptOutputFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Output.Format", s) {
			c.Output.Format = s
		}
	}
}

// OptOutputDir sets the directory for CSV and SQLite output.
func OptOutputDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Output Dir", s) {
			c.Output.Dir = s
		}
	}
}

// OptDatabaseHost sets the PostgreSQL server hostname or IP address.
func OptDatabaseHost(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Host", s) {
			c.Database.Host = s
		}
	}
}

// OptDatabasePort sets the PostgreSQL server port number.
func OptDatabasePort(i int) Option {
	return func(c *Config) {
		if isValidInt("Database Port", i) {
			c.Database.Port = i
		}
	}
}

// OptDatabaseUser sets the PostgreSQL database username.
func OptDatabaseUser(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database User", s) {
			c.Database.User = s
		}
	}
}

// OptDatabasePassword sets the PostgreSQL database password.
func OptDatabasePassword(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Password", s) {
			c.Database.Password = s
		}
	}
}

// OptDatabaseDatabase sets the PostgreSQL database name to connect to.
func OptDatabaseDatabase(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Database Name", s) {
			c.Database.Database = s
		}
	}
}

// OptDatabaseSSLMode sets the SSL connection mode.
// Valid values: "disable", "require", "verify-ca", "verify-full".
func OptDatabaseSSLMode(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Database.SSLMode", s) {
			c.Database.SSLMode = s
		}
	}
}

// OptDatabaseBatchSize sets the number of rows per COPY batch.
func OptDatabaseBatchSize(i int) Option {
	return func(c *Config) {
		if isValidInt("Batch Size", i) {
			c.Database.BatchSize = i
		}
	}
}

// OptLogLevel sets the logging level.
// Valid values: "debug", "info", "warn", "error".
func OptLogLevel(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Level", s) {
			c.Log.Level = s
		}
	}
}

// OptLogFormat sets the log output format.
// Valid values: "json", "text", "tint".
func OptLogFormat(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Format", s) {
			c.Log.Format = s
		}
	}
}

// OptLogDestination sets where logs are written.
// Valid values: "file", "stderr", "stdout".
func OptLogDestination(s string) Option {
	s = strings.TrimSpace(s)
	s = strings.ToLower(s)
	return func(c *Config) {
		if isValidEnum("Log.Destination", s) {
			c.Log.Destination = s
		}
	}
}

// OptJobsNumber sets the number of concurrent workers for parallel operations.
// Default is runtime.NumCPU().
func OptJobsNumber(i int) Option {
	return func(c *Config) {
		if isValidInt("Jobs Number", i) {
			c.JobsNumber = i
		}
	}
}

// OptVariables sets the climate variables to process.
// Names are lower-cased, empty entries are dropped.
// Runtime-only field - not in ToOptions().
func OptVariables(ss []string) Option {
	var vars []string
	for _, s := range ss {
		s = strings.ToLower(strings.TrimSpace(s))
		if s != "" {
			vars = append(vars, s)
		}
	}
	return func(c *Config) {
		if len(vars) > 0 {
			c.Variables = vars
		}
	}
}

// OptCombine sets whether variables are joined into one table before
// aggregation.
// Runtime-only field - not in ToOptions().
func OptCombine(b bool) Option {
	return func(c *Config) {
		c.Combine = b
	}
}

// OptHomeDir sets the home directory for config, data, and log locations.
// Set once at startup from os.UserHomeDir().
// Runtime-only field - not in ToOptions().
func OptHomeDir(s string) Option {
	s = strings.TrimSpace(s)
	return func(c *Config) {
		if isValidString("Home Directory", s) {
			c.HomeDir = s
		}
	}
}

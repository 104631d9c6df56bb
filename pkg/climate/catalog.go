package climate

import (
	"path/filepath"
	"strconv"
	"strings"
)

// Source tells where the rasters of a variable are and how to read them.
type Source struct {
	Variable Variable
	// DataVar is the name of the value variable inside a raster file.
	DataVar string
	// Dir is a directory template. It may contain {data} and {variable}
	// placeholders.
	Dir string
	// File is a file name template. It may contain {variable}, {statistic}
	// and {year} placeholders.
	File string
}

// Path returns the raster location for a year. The {data} placeholder is
// replaced by dataDir.
func (s Source) Path(dataDir string, year int) string {
	m := s.Variable.Meta()
	r := strings.NewReplacer(
		"{data}", dataDir,
		"{variable}", m.Name,
		"{statistic}", m.Statistic,
		"{year}", strconv.Itoa(year),
	)
	return filepath.Join(r.Replace(s.Dir), r.Replace(s.File))
}

// Catalog maps supported variables to their raster locations. It also
// carries properties shared by all rasters of a dataset.
type Catalog struct {
	// GridCRS is a proj4 definition of the raster coordinates.
	GridCRS string
	// Partial maps a year to the month count for years with fewer than
	// twelve months.
	Partial map[int]int
	Sources map[Variable]Source
}

// Source returns the location strategy of a variable.
func (c *Catalog) Source(v Variable) (Source, bool) {
	s, ok := c.Sources[v]
	return s, ok
}

// Coverage returns the coverage of a year range using partial years of
// the catalog.
func (c *Catalog) Coverage(first, last int) Coverage {
	return Coverage{First: first, Last: last, Partial: c.Partial}
}

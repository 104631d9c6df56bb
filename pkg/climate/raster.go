package climate

import "context"

// Raster contains monthly grids of one variable and year. Months[m][i][j]
// is the value of month m+1 at latitude Lat[i] and longitude Lon[j].
// Missing observations are NaN.
type Raster struct {
	Variable Variable
	Year     int
	Lat      []float64
	Lon      []float64
	Months   [][][]float64
}

// Reader opens rasters of a variable for a year.
type Reader interface {
	// Read returns every month present in the raster. It fails with
	// UnsupportedVariableError before any I/O, and with MissingInputError
	// when the raster cannot be opened.
	Read(ctx context.Context, v Variable, year int) (*Raster, error)
}

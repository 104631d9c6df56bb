package climate

// Build flattens the first months grids of a raster into a wide table.
//
// Grid rows follow latitudes and grid columns follow longitudes, so the
// cell order is row-major over (Lat, Lon). A raster with fewer grids than
// months, or with grids that do not match its axes, is rejected. Grids
// after the first months are not used.
func Build(r *Raster, months int) (*Table, error) {
	if !r.Variable.Valid() {
		return nil, UnsupportedVariableError(r.Variable.String())
	}
	stage := "build " + r.Variable.String() + " table"
	if months < 1 || months > MonthsInYear {
		return nil, SchemaMismatchError(stage,
			"year %d: month count %d is out of 1-%d range",
			r.Year, months, MonthsInYear)
	}
	if len(r.Months) < months {
		return nil, SchemaMismatchError(stage,
			"year %d: raster has %d months, expected %d",
			r.Year, len(r.Months), months)
	}

	nLat, nLon := len(r.Lat), len(r.Lon)
	for m := range months {
		grid := r.Months[m]
		if len(grid) != nLat {
			return nil, SchemaMismatchError(stage,
				"year %d, month %d: %d grid rows for %d latitudes",
				r.Year, m+1, len(grid), nLat)
		}
		for i := range grid {
			if len(grid[i]) != nLon {
				return nil, SchemaMismatchError(stage,
					"year %d, month %d: %d grid columns for %d longitudes",
					r.Year, m+1, len(grid[i]), nLon)
			}
		}
	}

	res := &Table{
		Variables: []Variable{r.Variable},
		Cells:     make([]Cell, 0, nLat*nLon),
		Columns:   make([]Column, months),
		Values:    make([][]float64, 0, nLat*nLon),
	}
	for m := range months {
		res.Columns[m] = Column{
			Variable: r.Variable,
			Period:   Period{Year: r.Year, Month: m + 1},
		}
	}

	for i, lat := range r.Lat {
		for j, lon := range r.Lon {
			row := make([]float64, months)
			for m := range months {
				row[m] = r.Months[m][i][j]
			}
			res.Cells = append(res.Cells, Cell{Lat: lat, Lon: lon})
			res.Values = append(res.Values, row)
		}
	}
	return res, nil
}

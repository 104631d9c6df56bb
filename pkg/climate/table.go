package climate

import (
	"math"
	"strings"
)

// Cell is a point of the regular raster grid.
type Cell struct {
	Lat float64
	Lon float64
}

// Column describes one value column of a Table.
type Column struct {
	Variable Variable
	Period   Period
}

// Table is a wide table with one row per distinct grid cell and one
// column per observed period. Values[i][j] belongs to Cells[i] and
// Columns[j]; NaN marks a missing observation.
type Table struct {
	// Variables of the table in column order. A table built from one
	// raster or merged across years has one variable.
	Variables []Variable
	// CRS is a proj4 definition of the cell coordinates.
	CRS     string
	Cells   []Cell
	Columns []Column
	Values  [][]float64
}

// Label is used in names of produced artifacts.
func (t *Table) Label() string {
	names := make([]string, len(t.Variables))
	for i, v := range t.Variables {
		names[i] = v.String()
	}
	return strings.Join(names, "_")
}

// ColumnNames returns names of value columns. Columns of tables with
// several variables are prefixed with the variable name.
func (t *Table) ColumnNames() []string {
	res := make([]string, len(t.Columns))
	prefix := len(t.Variables) > 1
	for i, c := range t.Columns {
		name := c.Period.ColumnName()
		if prefix {
			name = c.Variable.String() + "_" + name
		}
		res[i] = name
	}
	return res
}

// Len returns the number of rows.
func (t *Table) Len() int {
	return len(t.Cells)
}

// DropEmpty returns a table without cells that have no observations at
// all, and the number of removed cells. Raster cells over the ocean are
// such cells.
func (t *Table) DropEmpty() (*Table, int) {
	res := &Table{
		Variables: t.Variables,
		CRS:       t.CRS,
		Columns:   t.Columns,
	}
	for i, row := range t.Values {
		if isEmptyRow(row) {
			continue
		}
		res.Cells = append(res.Cells, t.Cells[i])
		res.Values = append(res.Values, row)
	}
	return res, len(t.Cells) - len(res.Cells)
}

func isEmptyRow(row []float64) bool {
	for _, v := range row {
		if !math.IsNaN(v) {
			return false
		}
	}
	return true
}

// index maps cell coordinates to row numbers. It fails if a cell
// appears twice.
func (t *Table) index(stage string) (map[Cell]int, error) {
	res := make(map[Cell]int, len(t.Cells))
	for i, c := range t.Cells {
		if _, ok := res[c]; ok {
			return nil, SchemaMismatchError(stage,
				"duplicate grid cell (%g, %g)", c.Lat, c.Lon)
		}
		res[c] = i
	}
	return res, nil
}

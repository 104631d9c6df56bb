package climate

import "fmt"

// Merge joins yearly tables of one variable into a series. Tables must be
// in strictly ascending year order. The first table supplies the cells,
// rows of later tables are matched by coordinates, so their row order does
// not matter, but their cell sets must be identical.
func Merge(tables []*Table) (*Table, error) {
	if len(tables) == 0 {
		return nil, SeriesEmptyError(Unknown)
	}
	v := tableVariable(tables[0])
	stage := "merge " + v.String() + " series"

	prev := 0
	for i, t := range tables {
		if len(t.Variables) != 1 || t.Variables[0] != v {
			return nil, SchemaMismatchError(stage,
				"table %d has variables %v, expected %s", i, t.Variables, v)
		}
		if len(t.Columns) == 0 {
			return nil, SchemaMismatchError(stage, "table %d has no columns", i)
		}
		first := t.Columns[0].Period.Year
		last := t.Columns[len(t.Columns)-1].Period.Year
		if i > 0 && first <= prev {
			return nil, SeriesYearsError(v, prev, first)
		}
		prev = last
	}

	return join(stage, tables)
}

// Combine joins series of different variables into one table by cell
// coordinates. Column names of the result carry variable prefixes.
func Combine(tables []*Table) (*Table, error) {
	if len(tables) == 0 {
		return nil, SeriesEmptyError(Unknown)
	}
	stage := "combine series"
	seen := make(map[Variable]struct{})
	for _, t := range tables {
		for _, v := range t.Variables {
			if _, ok := seen[v]; ok {
				return nil, SchemaMismatchError(stage,
					"variable %s is repeated", v)
			}
			seen[v] = struct{}{}
		}
		if t.CRS != tables[0].CRS {
			return nil, SchemaMismatchError(stage,
				"CRS of %s differs from CRS of %s",
				t.Label(), tables[0].Label())
		}
	}
	return join(stage, tables)
}

func tableVariable(t *Table) Variable {
	if len(t.Variables) == 0 {
		return Unknown
	}
	return t.Variables[0]
}

// join appends value columns of all tables to the cells of the first one.
func join(stage string, tables []*Table) (*Table, error) {
	base := tables[0]
	idx, err := base.index(stage)
	if err != nil {
		return nil, err
	}

	var width int
	var vars []Variable
	seen := make(map[Variable]struct{})
	for _, t := range tables {
		width += len(t.Columns)
		for _, v := range t.Variables {
			if _, ok := seen[v]; !ok {
				seen[v] = struct{}{}
				vars = append(vars, v)
			}
		}
	}

	res := &Table{
		Variables: vars,
		CRS:       base.CRS,
		Cells:     make([]Cell, len(base.Cells)),
		Columns:   make([]Column, 0, width),
		Values:    make([][]float64, len(base.Cells)),
	}
	copy(res.Cells, base.Cells)
	for i := range res.Values {
		res.Values[i] = make([]float64, 0, width)
	}

	for _, t := range tables {
		if len(t.Cells) != len(base.Cells) {
			return nil, SchemaMismatchError(stage,
				"%s has %d cells, %s has %d",
				tableName(t), len(t.Cells), tableName(base), len(base.Cells))
		}
		rows := make([]int, len(t.Cells))
		used := make([]bool, len(base.Cells))
		for i, c := range t.Cells {
			j, ok := idx[c]
			if !ok {
				return nil, SchemaMismatchError(stage,
					"cell (%g, %g) of %s is absent in %s",
					c.Lat, c.Lon, tableName(t), tableName(base))
			}
			if used[j] {
				return nil, SchemaMismatchError(stage,
					"duplicate grid cell (%g, %g) in %s", c.Lat, c.Lon, tableName(t))
			}
			used[j] = true
			rows[i] = j
		}
		res.Columns = append(res.Columns, t.Columns...)
		for i, j := range rows {
			res.Values[j] = append(res.Values[j], t.Values[i]...)
		}
	}
	return res, nil
}

// tableName names a table in messages by its variable and year span.
func tableName(t *Table) string {
	if len(t.Columns) == 0 {
		return t.Label()
	}
	first := t.Columns[0].Period.Year
	last := t.Columns[len(t.Columns)-1].Period.Year
	if first == last {
		return fmt.Sprintf("%s %d", t.Label(), first)
	}
	return fmt.Sprintf("%s %d-%d", t.Label(), first, last)
}

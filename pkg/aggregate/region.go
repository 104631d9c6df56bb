package aggregate

import (
	"cmp"
	"slices"

	"github.com/ctessum/geom"
	"github.com/gnames/gnclimate/pkg/climate"
)

// RegionRow holds means of one (Name, Parent) group.
type RegionRow struct {
	Name   string
	Parent string
	// Cells is the number of distinct grid cells that contributed.
	Cells int
	// Distance is the largest distance from a contributing cell to its
	// polygon, zero when all cells lie inside.
	Distance float64
	Values   []float64
}

// RegionGeometry is a polygon of a region, stored apart from the values.
type RegionGeometry struct {
	Name     string
	Parent   string
	Geometry geom.Polygonal
}

// RegionResult is an aggregated region table with its geometries.
type RegionResult struct {
	Label   string
	Columns []string

	// Source is the source of the region set.
	Source string

	// ColumnKeys hold the variable and period of every column.
	ColumnKeys []climate.Column

	// Rows are sorted by (Name, Parent).
	Rows []RegionRow

	// Geometries follow the dataset order.
	Geometries []RegionGeometry
}

// Regions aggregates table cells onto region polygons.
//
// A cell that is inside or on the edge of several polygons belongs to the
// first of them in dataset order. A polygon that contains no cells takes
// its nearest cell, and equidistant cells resolve to the lowest table row.
// Polygons sharing (Name, Parent) form one row.
func Regions(t *climate.Table, set *RegionSet) (*RegionResult, error) {
	stage := "region aggregation of " + t.Label()
	if !sameCRS(t.CRS, set.CRS) {
		return nil, climate.SchemaMismatchError(stage,
			"grid CRS %q differs from regions CRS %q", t.CRS, set.CRS)
	}
	if t.Len() == 0 {
		return nil, AggregateEmptyError(stage, "climate table has no cells")
	}
	if len(set.Regions) == 0 {
		return nil, AggregateEmptyError(stage, "region dataset is empty")
	}

	ix := newPointIndex(t.Cells)
	owner := make([]int, t.Len())
	for i := range owner {
		owner[i] = -1
	}

	members := make([][]int, len(set.Regions))
	dists := make([]float64, len(set.Regions))
	for i, r := range set.Regions {
		for _, cp := range ix.within(r.Geometry) {
			if owner[cp.row] >= 0 {
				continue
			}
			owner[cp.row] = i
			members[i] = append(members[i], cp.row)
		}
	}
	for i, r := range set.Regions {
		if len(members[i]) > 0 {
			continue
		}
		row, dist := ix.nearest(r.Geometry)
		members[i] = []int{row}
		dists[i] = dist
	}

	type key struct{ name, parent string }
	groups := make(map[key]*groupRows)
	var keys []key
	for i, r := range set.Regions {
		k := key{r.Name, r.Parent}
		g, ok := groups[k]
		if !ok {
			g = &groupRows{seen: make(map[int]struct{})}
			groups[k] = g
			keys = append(keys, k)
		}
		g.add(members[i], dists[i])
	}

	slices.SortFunc(keys, func(a, b key) int {
		return cmp.Or(cmp.Compare(a.name, b.name), cmp.Compare(a.parent, b.parent))
	})

	width := len(t.Columns)
	res := &RegionResult{
		Label:      t.Label(),
		Columns:    t.ColumnNames(),
		Source:     set.Source,
		ColumnKeys: t.Columns,
		Rows:       make([]RegionRow, len(keys)),
		Geometries: make([]RegionGeometry, len(set.Regions)),
	}
	for i, k := range keys {
		g := groups[k]
		res.Rows[i] = RegionRow{
			Name:     k.name,
			Parent:   k.parent,
			Cells:    len(g.rows),
			Distance: g.dist,
			Values:   meanRows(t.Values, g.rows, width),
		}
	}
	for i, r := range set.Regions {
		res.Geometries[i] = RegionGeometry(r)
	}
	return res, nil
}

// groupRows collects distinct rows of polygons that share a name.
type groupRows struct {
	rows []int
	seen map[int]struct{}
	dist float64
}

func (g *groupRows) add(rows []int, dist float64) {
	for _, r := range rows {
		if _, ok := g.seen[r]; ok {
			continue
		}
		g.seen[r] = struct{}{}
		g.rows = append(g.rows, r)
	}
	g.dist = max(g.dist, dist)
}

package aggregate

import (
	"cmp"
	"slices"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/index/rtree"
	"github.com/gnames/gnclimate/pkg/climate"
	"github.com/uber/h3-go/v4"
)

// MaxResolution is the finest resolution of the H3 grid.
const MaxResolution = 15

// HexRow holds means of the cells that fall into one hexagon.
type HexRow struct {
	Index  string
	Cells  int
	Values []float64
}

// HexGeometry is a hexagon boundary, stored apart from the values.
type HexGeometry struct {
	Index    string
	Boundary geom.Polygon
}

// HexResult is an aggregated hex table with its geometries. Rows and
// Geometries are sorted by index and have one entry per hexagon.
type HexResult struct {
	Label      string
	Resolution int
	// Source is the source of the territory.
	Source     string
	Columns    []string
	ColumnKeys []climate.Column
	Rows       []HexRow
	Geometries []HexGeometry
}

type hexGroup struct {
	index string
	cell  h3.Cell
	rows  []int
}

// Hexes aggregates table cells into H3 hexagons of the given resolution.
// Only hexagons whose boundary intersects the territory are kept, partial
// overlap included.
func Hexes(t *climate.Table, res int, ter *Territory) (*HexResult, error) {
	if res < 0 || res > MaxResolution {
		return nil, HexResolutionError(res)
	}
	stage := "hex aggregation of " + t.Label()
	if ter == nil || len(ter.Parts) == 0 {
		return nil, AggregateEmptyError(stage, "territory is empty")
	}
	if !sameCRS(t.CRS, ter.CRS) {
		return nil, climate.SchemaMismatchError(stage,
			"grid CRS %q differs from territory CRS %q", t.CRS, ter.CRS)
	}
	if t.Len() == 0 {
		return nil, AggregateEmptyError(stage, "climate table has no cells")
	}

	byCell := make(map[h3.Cell]*hexGroup)
	for i, c := range t.Cells {
		cell := h3.LatLngToCell(h3.NewLatLng(c.Lat, c.Lon), res)
		g, ok := byCell[cell]
		if !ok {
			g = &hexGroup{index: cell.String(), cell: cell}
			byCell[cell] = g
		}
		g.rows = append(g.rows, i)
	}

	groups := make([]*hexGroup, 0, len(byCell))
	for _, g := range byCell {
		groups = append(groups, g)
	}
	slices.SortFunc(groups, func(a, b *hexGroup) int {
		return cmp.Compare(a.index, b.index)
	})

	tree := rtree.NewTree(25, 50)
	for _, p := range ter.Parts {
		tree.Insert(p)
	}

	width := len(t.Columns)
	result := &HexResult{
		Label:      t.Label(),
		Resolution: res,
		Source:     ter.Source,
		Columns:    t.ColumnNames(),
		ColumnKeys: t.Columns,
	}
	for _, g := range groups {
		boundary := hexBoundary(g.cell)
		if !intersectsAny(tree, boundary) {
			continue
		}
		result.Rows = append(result.Rows, HexRow{
			Index:  g.index,
			Cells:  len(g.rows),
			Values: meanRows(t.Values, g.rows, width),
		})
		result.Geometries = append(result.Geometries, HexGeometry{
			Index:    g.index,
			Boundary: boundary,
		})
	}
	return result, nil
}

// hexBoundary converts the boundary of a hexagon to a closed ring with
// longitude as X and latitude as Y.
func hexBoundary(c h3.Cell) geom.Polygon {
	bnd := c.Boundary()
	ring := make(geom.Path, 0, len(bnd)+1)
	for _, ll := range bnd {
		ring = append(ring, geom.Point{X: ll.Lng, Y: ll.Lat})
	}
	if len(ring) > 0 {
		ring = append(ring, ring[0])
	}
	return geom.Polygon{ring}
}

func intersectsAny(tree *rtree.Rtree, g geom.Polygonal) bool {
	for _, s := range tree.SearchIntersect(g.Bounds()) {
		if intersects(g, s.(geom.Polygonal)) {
			return true
		}
	}
	return false
}

// Package aggregate assigns grid cells of a climate table to target
// geometries and computes per-column means for each of them.
//
// Two targets are supported. Regions receive cells they contain, and a
// region without such cells receives its nearest cell, so every region
// gets a value. Hexagons of the H3 grid receive cells by containment and
// are kept only if they intersect a territory outline.
package aggregate

import (
	"math"
	"strings"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/index/rtree"
	"github.com/gnames/gnclimate/pkg/climate"
)

// Region is a named administrative polygon.
type Region struct {
	Name     string
	Parent   string
	Geometry geom.Polygonal
}

// RegionSet is an immutable reference dataset of regions. The order of
// Regions is the dataset order.
type RegionSet struct {
	// CRS is a proj4 definition of region coordinates.
	CRS string
	// Source names the dataset the regions came from, usually its path.
	Source  string
	Regions []Region
}

// Territory is an outline of the area of interest.
type Territory struct {
	CRS    string
	Source string
	Parts  []geom.Polygonal
}

// TerritoryFromRegions uses region polygons as the territory.
func TerritoryFromRegions(set *RegionSet) *Territory {
	res := &Territory{
		CRS:    set.CRS,
		Source: set.Source,
		Parts:  make([]geom.Polygonal, len(set.Regions)),
	}
	for i, r := range set.Regions {
		res.Parts[i] = r.Geometry
	}
	return res
}

// sameCRS compares proj4 definitions ignoring whitespace differences.
func sameCRS(a, b string) bool {
	return strings.Join(strings.Fields(a), " ") == strings.Join(strings.Fields(b), " ")
}

// cellPoint is a grid cell stored in an R-tree.
type cellPoint struct {
	geom.Point
	row int
}

// pointIndex is a spatial index of table cells.
type pointIndex struct {
	tree   *rtree.Rtree
	bounds *geom.Bounds
	// step is a rough grid spacing, used as the first search radius.
	step float64
}

func newPointIndex(cells []climate.Cell) *pointIndex {
	res := &pointIndex{
		tree:   rtree.NewTree(25, 50),
		bounds: geom.NewBounds(),
	}
	for i, c := range cells {
		p := geom.Point{X: c.Lon, Y: c.Lat}
		res.tree.Insert(&cellPoint{Point: p, row: i})
		res.bounds.Extend(p.Bounds())
	}
	w := res.bounds.Max.X - res.bounds.Min.X
	h := res.bounds.Max.Y - res.bounds.Min.Y
	res.step = math.Sqrt(w * h / float64(len(cells)))
	if res.step == 0 || math.IsNaN(res.step) {
		res.step = math.Max(math.Max(w, h), 1e-6)
	}
	return res
}

// within returns table rows of points inside or on the edge of g.
func (ix *pointIndex) within(g geom.Polygonal) []*cellPoint {
	var res []*cellPoint
	for _, s := range ix.tree.SearchIntersect(g.Bounds()) {
		cp := s.(*cellPoint)
		if cp.Within(g) != geom.Outside {
			res = append(res, cp)
		}
	}
	return res
}

// nearest returns the row of the point closest to g and its distance.
// Equidistant points resolve to the lowest row.
func (ix *pointIndex) nearest(g geom.Polygonal) (int, float64) {
	gb := g.Bounds()
	r := ix.step
	for {
		box := &geom.Bounds{
			Min: geom.Point{X: gb.Min.X - r, Y: gb.Min.Y - r},
			Max: geom.Point{X: gb.Max.X + r, Y: gb.Max.Y + r},
		}
		row, dist := -1, math.Inf(1)
		for _, s := range ix.tree.SearchIntersect(box) {
			cp := s.(*cellPoint)
			d := pointDistance(cp.Point, g)
			if d < dist || (d == dist && cp.row < row) {
				row, dist = cp.row, d
			}
		}
		// every point within distance r of g lies inside the box
		if row >= 0 && dist <= r {
			return row, dist
		}
		if covers(box, ix.bounds) {
			return row, dist
		}
		r *= 2
	}
}

func covers(a, b *geom.Bounds) bool {
	return a.Min.X <= b.Min.X && a.Min.Y <= b.Min.Y &&
		a.Max.X >= b.Max.X && a.Max.Y >= b.Max.Y
}

// pointDistance is a planar distance from p to the closest part of g,
// zero when p is inside or on the edge.
func pointDistance(p geom.Point, g geom.Polygonal) float64 {
	if p.Within(g) != geom.Outside {
		return 0
	}
	res := math.Inf(1)
	for _, poly := range g.Polygons() {
		for _, path := range poly {
			res = math.Min(res, closedRing(path).Distance(p))
		}
	}
	return res
}

// closedRing returns the ring as a line string that ends at its first
// point.
func closedRing(path geom.Path) geom.LineString {
	if len(path) == 0 || path[0] == path[len(path)-1] {
		return geom.LineString(path)
	}
	res := make(geom.LineString, len(path), len(path)+1)
	copy(res, path)
	return append(res, path[0])
}

// eachSegment calls fn for every edge of a ring, including the closing
// edge. Iteration stops when fn returns false.
func eachSegment(path geom.Path, fn func(a, b geom.Point) bool) bool {
	n := len(path)
	if n == 0 {
		return true
	}
	for i := range n {
		if !fn(path[i], path[(i+1)%n]) {
			return false
		}
	}
	return true
}

// intersects is true when two polygonal geometries share at least one
// point: a vertex of one lies in the other, or their edges cross.
func intersects(a, b geom.Polygonal) bool {
	ab, bb := a.Bounds(), b.Bounds()
	if !ab.Overlaps(bb) {
		return false
	}
	if vertexWithin(a, b, bb) || vertexWithin(b, a, ab) {
		return true
	}
	for _, pa := range a.Polygons() {
		for _, ra := range pa {
			crossed := !eachSegment(ra, func(a1, a2 geom.Point) bool {
				sb := segmentBounds(a1, a2)
				if !sb.Overlaps(bb) {
					return true
				}
				for _, pb := range b.Polygons() {
					for _, rb := range pb {
						hit := !eachSegment(rb, func(b1, b2 geom.Point) bool {
							return !segmentsCross(a1, a2, b1, b2)
						})
						if hit {
							return false
						}
					}
				}
				return true
			})
			if crossed {
				return true
			}
		}
	}
	return false
}

// vertexWithin is true if any vertex of a that falls into bounds of b is
// inside or on the edge of b.
func vertexWithin(a, b geom.Polygonal, bb *geom.Bounds) bool {
	for _, poly := range a.Polygons() {
		for _, path := range poly {
			for _, p := range path {
				if !inBounds(p, bb) {
					continue
				}
				if p.Within(b) != geom.Outside {
					return true
				}
			}
		}
	}
	return false
}

func inBounds(p geom.Point, b *geom.Bounds) bool {
	return p.X >= b.Min.X && p.X <= b.Max.X && p.Y >= b.Min.Y && p.Y <= b.Max.Y
}

func segmentBounds(a, b geom.Point) *geom.Bounds {
	return &geom.Bounds{
		Min: geom.Point{X: math.Min(a.X, b.X), Y: math.Min(a.Y, b.Y)},
		Max: geom.Point{X: math.Max(a.X, b.X), Y: math.Max(a.Y, b.Y)},
	}
}

// segmentsCross is true when segments a1a2 and b1b2 share a point.
func segmentsCross(a1, a2, b1, b2 geom.Point) bool {
	d1 := orientation(b1, b2, a1)
	d2 := orientation(b1, b2, a2)
	d3 := orientation(a1, a2, b1)
	d4 := orientation(a1, a2, b2)
	if ((d1 > 0 && d2 < 0) || (d1 < 0 && d2 > 0)) &&
		((d3 > 0 && d4 < 0) || (d3 < 0 && d4 > 0)) {
		return true
	}
	switch {
	case d1 == 0 && onSegment(b1, b2, a1):
		return true
	case d2 == 0 && onSegment(b1, b2, a2):
		return true
	case d3 == 0 && onSegment(a1, a2, b1):
		return true
	case d4 == 0 && onSegment(a1, a2, b2):
		return true
	}
	return false
}

func orientation(a, b, c geom.Point) float64 {
	return (b.X-a.X)*(c.Y-a.Y) - (b.Y-a.Y)*(c.X-a.X)
}

func onSegment(a, b, p geom.Point) bool {
	return p.X >= math.Min(a.X, b.X) && p.X <= math.Max(a.X, b.X) &&
		p.Y >= math.Min(a.Y, b.Y) && p.Y <= math.Max(a.Y, b.Y)
}

// meanRows computes NaN-skipping means of the given rows per column.
// A column without observations gets NaN.
func meanRows(values [][]float64, rows []int, width int) []float64 {
	res := make([]float64, width)
	counts := make([]int, width)
	for _, r := range rows {
		for j, v := range values[r] {
			if math.IsNaN(v) {
				continue
			}
			res[j] += v
			counts[j]++
		}
	}
	for j := range res {
		if counts[j] == 0 {
			res[j] = math.NaN()
			continue
		}
		res[j] /= float64(counts[j])
	}
	return res
}

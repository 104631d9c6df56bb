package iosink

import (
	"github.com/ctessum/geom"
	"github.com/ctessum/geom/encoding/wkt"
	"github.com/gnames/gnclimate/pkg/aggregate"
)

// encodeWKT returns well-known text of geometries in the same order.
func encodeWKT(gs []geom.Polygonal) ([]string, error) {
	res := make([]string, len(gs))
	for i, g := range gs {
		b, err := wkt.Encode(g)
		if err != nil {
			return nil, err
		}
		res[i] = string(b)
	}
	return res, nil
}

func regionWKT(res *aggregate.RegionResult) ([]string, error) {
	gs := make([]geom.Polygonal, len(res.Geometries))
	for i, g := range res.Geometries {
		gs[i] = g.Geometry
	}
	return encodeWKT(gs)
}

func hexWKT(res *aggregate.HexResult) ([]string, error) {
	gs := make([]geom.Polygonal, len(res.Geometries))
	for i, g := range res.Geometries {
		gs[i] = g.Boundary
	}
	return encodeWKT(gs)
}

// Package iogeo loads region polygons and territory outlines from ESRI
// shapefiles and aligns them with the coordinates of the climate grid.
package iogeo

import (
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/ctessum/geom"
	"github.com/ctessum/geom/encoding/shp"
	"github.com/ctessum/geom/proj"
	"github.com/gnames/gnclimate/pkg/aggregate"
	"github.com/gnames/gnclimate/pkg/climate"
)

// LoadRegions reads named polygons from a shapefile and reprojects them
// to gridCRS. The shapefile must have a .prj file.
func LoadRegions(
	path, nameField, parentField, gridCRS string,
) (*aggregate.RegionSet, error) {
	stage := "loading regions " + path
	var regions []aggregate.Region
	err := decode(path, gridCRS, stage, []string{nameField, parentField},
		func(g geom.Polygonal, fields map[string]string) error {
			name, ok := fields[nameField]
			if !ok {
				return climate.SchemaMismatchError(stage,
					"missing attribute %s", nameField)
			}
			parent, ok := fields[parentField]
			if !ok {
				return climate.SchemaMismatchError(stage,
					"missing attribute %s", parentField)
			}
			regions = append(regions, aggregate.Region{
				Name:     strings.TrimSpace(name),
				Parent:   strings.TrimSpace(parent),
				Geometry: g,
			})
			return nil
		})
	if err != nil {
		return nil, err
	}
	slog.Info("Loaded regions", "path", path, "regions", len(regions))
	res := &aggregate.RegionSet{CRS: gridCRS, Source: path, Regions: regions}
	return res, nil
}

// LoadTerritory reads all polygons of a shapefile as one territory
// outline in gridCRS.
func LoadTerritory(path, gridCRS string) (*aggregate.Territory, error) {
	stage := "loading territory " + path
	res := &aggregate.Territory{CRS: gridCRS, Source: path}
	err := decode(path, gridCRS, stage, nil,
		func(g geom.Polygonal, _ map[string]string) error {
			res.Parts = append(res.Parts, g)
			return nil
		})
	if err != nil {
		return nil, err
	}
	slog.Info("Loaded territory", "path", path, "parts", len(res.Parts))
	return res, nil
}

func decode(
	path, gridCRS, stage string,
	fields []string,
	fn func(geom.Polygonal, map[string]string) error,
) error {
	if _, err := os.Stat(path); err != nil {
		return climate.MissingInputError(path, err)
	}
	prj := strings.TrimSuffix(path, ".shp") + ".prj"
	if _, err := os.Stat(prj); err != nil {
		return climate.SchemaMismatchError(stage,
			"coordinate reference system is unknown, %s is missing", prj)
	}

	d, err := shp.NewDecoder(path)
	if err != nil {
		return climate.MissingInputError(path, err)
	}
	defer d.Close()

	trans, err := transform(d, gridCRS)
	if err != nil {
		return climate.SchemaMismatchError(stage, "%v", err)
	}

	var row, skipped int
	for {
		g, vals, more := d.DecodeRowFields(fields...)
		if !more {
			break
		}
		row++
		if g == nil {
			skipped++
			continue
		}
		gg, err := g.Transform(trans)
		if err != nil {
			return climate.SchemaMismatchError(stage,
				"row %d: cannot reproject: %v", row, err)
		}
		poly, ok := gg.(geom.Polygonal)
		if !ok {
			return climate.SchemaMismatchError(stage,
				"row %d: shape %T is not a polygon", row, gg)
		}
		if len(poly.Polygons()) == 0 {
			skipped++
			continue
		}
		if err := fn(poly, vals); err != nil {
			return err
		}
	}
	if err := d.Error(); err != nil {
		return climate.MissingInputError(path, err)
	}
	if skipped > 0 {
		slog.Warn("Skipped rows without geometry", "path", path, "rows", skipped)
	}
	return nil
}

func transform(d *shp.Decoder, gridCRS string) (proj.Transformer, error) {
	src, err := d.SR()
	if err != nil {
		return nil, fmt.Errorf("cannot parse projection: %w", err)
	}
	dst, err := proj.Parse(gridCRS)
	if err != nil {
		return nil, fmt.Errorf("cannot parse grid CRS %q: %w", gridCRS, err)
	}
	return src.NewTransform(dst)
}

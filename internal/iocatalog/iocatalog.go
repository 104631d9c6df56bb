// Package iocatalog loads the raster catalog (variables.yaml) that maps
// climate variables to their raster locations.
package iocatalog

import (
	"errors"
	"fmt"
	"maps"
	"os"
	"slices"

	"github.com/gnames/gn"
	"github.com/gnames/gnclimate/pkg/climate"
	"gopkg.in/yaml.v3"
)

type catalogFile struct {
	GridCRS      string                `yaml:"grid_crs"`
	PartialYears map[int]int           `yaml:"partial_years"`
	Variables    map[string]sourceFile `yaml:"variables"`
}

type sourceFile struct {
	DataVar string `yaml:"data_var"`
	Dir     string `yaml:"dir"`
	File    string `yaml:"file"`
}

// Load reads and validates a catalog file.
func Load(path string) (*climate.Catalog, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, CatalogReadError(path, err)
	}
	res, err := Parse(data)
	if err != nil {
		var gnErr *gn.Error
		if errors.As(err, &gnErr) {
			return nil, err
		}
		return nil, CatalogParseError(path, err)
	}
	return res, nil
}

// Parse converts YAML content to a catalog.
func Parse(data []byte) (*climate.Catalog, error) {
	var cf catalogFile
	if err := yaml.Unmarshal(data, &cf); err != nil {
		return nil, err
	}

	if cf.GridCRS == "" {
		return nil, errors.New("grid_crs is required")
	}

	res := &climate.Catalog{
		GridCRS: cf.GridCRS,
		Partial: cf.PartialYears,
		Sources: make(map[climate.Variable]climate.Source),
	}
	if res.Partial == nil {
		res.Partial = make(map[int]int)
	}
	cov := climate.Coverage{Partial: res.Partial}
	if err := cov.Validate(); err != nil {
		return nil, fmt.Errorf("partial_years: %w", err)
	}

	if len(cf.Variables) == 0 {
		return nil, errors.New("no variables in catalog")
	}
	for _, name := range slices.Sorted(maps.Keys(cf.Variables)) {
		v, ok := climate.ParseVariable(name)
		if !ok {
			return nil, CatalogVariableError(name)
		}
		sf := cf.Variables[name]
		if sf.File == "" {
			return nil, fmt.Errorf("variable %s: file template is required", name)
		}
		if sf.DataVar == "" {
			sf.DataVar = v.String()
		}
		res.Sources[v] = climate.Source{
			Variable: v,
			DataVar:  sf.DataVar,
			Dir:      sf.Dir,
			File:     sf.File,
		}
	}
	return res, nil
}

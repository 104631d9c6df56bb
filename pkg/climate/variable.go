// Package climate holds the grid cell model of gnclimate: monthly raster
// grids of one variable and year, the wide per-cell tables built from them,
// and the series that join those tables across years.
package climate

import (
	"strings"
)

// Variable is one of the supported climate metrics.
type Variable int

const (
	// Unknown is a zero value of Variable, it is never accepted as input.
	Unknown Variable = iota
	// Precip is the monthly total of precipitation.
	Precip
	// Tmin is the monthly mean of daily minimum temperature.
	Tmin
	// Tmax is the monthly mean of daily maximum temperature.
	Tmax
)

// Meta describes properties of a variable that do not depend on the
// location of its rasters.
type Meta struct {
	// Name is the identifier used in paths, column prefixes and the CLI.
	Name string
	// Statistic is the monthly statistic stored by the raster, "total" or
	// "mean".
	Statistic string
	// Units of the raster values.
	Units string
}

var metas = map[Variable]Meta{
	Precip: {Name: "precip", Statistic: "total", Units: "mm"},
	Tmin:   {Name: "tmin", Statistic: "mean", Units: "degC"},
	Tmax:   {Name: "tmax", Statistic: "mean", Units: "degC"},
}

// Variables returns all supported variables in canonical order.
func Variables() []Variable {
	return []Variable{Precip, Tmin, Tmax}
}

// ParseVariable converts a name to Variable. The second value is false
// for names that are not supported.
func ParseVariable(s string) (Variable, bool) {
	s = strings.ToLower(strings.TrimSpace(s))
	for _, v := range Variables() {
		if metas[v].Name == s {
			return v, true
		}
	}
	return Unknown, false
}

// Meta returns metadata of the variable.
func (v Variable) Meta() Meta {
	return metas[v]
}

// Valid is true for supported variables.
func (v Variable) Valid() bool {
	_, ok := metas[v]
	return ok
}

func (v Variable) String() string {
	if m, ok := metas[v]; ok {
		return m.Name
	}
	return "unknown"
}

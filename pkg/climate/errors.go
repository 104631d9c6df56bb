package climate

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gnclimate/pkg/errcode"
)

func caller() string {
	pc, _, _, _ := runtime.Caller(2)
	fn := runtime.FuncForPC(pc)
	if fn == nil {
		return "unknown"
	}
	return fn.Name()
}

// UnsupportedVariableError is returned for names other than precip, tmin
// and tmax.
func UnsupportedVariableError(name string) error {
	msg := "Variable <em>%s</em> is not supported, use precip, tmin or tmax"
	vars := []any{name}
	return &gn.Error{
		Code: errcode.UnsupportedVariableError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: unsupported variable %q",
			caller(), name),
	}
}

// RasterMissingError is returned when a raster of a (variable, year) unit
// cannot be opened or read.
func RasterMissingError(v Variable, year int, path string, err error) error {
	msg := "Cannot read %s raster for %d from <em>%s</em>"
	vars := []any{v, year, path}
	return &gn.Error{
		Code: errcode.MissingInputError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot read %s/%d raster %s: %w",
			caller(), v, year, path, err),
	}
}

// MissingInputError is returned when a reference dataset is absent or
// unreadable.
func MissingInputError(path string, err error) error {
	msg := "Cannot read <em>%s</em>"
	vars := []any{path}
	return &gn.Error{
		Code: errcode.MissingInputError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: cannot read %s: %w",
			caller(), path, err),
	}
}

// SchemaMismatchError is returned when data do not fit the expected
// shape: wrong month counts, misaligned grids or different CRS.
func SchemaMismatchError(stage, format string, args ...any) error {
	detail := fmt.Sprintf(format, args...)
	msg := "Schema mismatch during %s: %s"
	vars := []any{stage, detail}
	return &gn.Error{
		Code: errcode.SchemaMismatchError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: %s: %s",
			caller(), stage, detail),
	}
}

// SeriesYearsError is returned when yearly tables are not in strictly
// ascending order.
func SeriesYearsError(v Variable, prev, year int) error {
	msg := "Years of %s series are out of order: %d follows %d"
	vars := []any{v, year, prev}
	return &gn.Error{
		Code: errcode.SeriesYearsError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: %s year %d after %d",
			caller(), v, year, prev),
	}
}

// SeriesEmptyError is returned when there is nothing to merge.
func SeriesEmptyError(v Variable) error {
	msg := "No yearly tables for %s series"
	vars := []any{v}
	return &gn.Error{
		Code: errcode.SeriesEmptyError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: empty %s series", caller(), v),
	}
}

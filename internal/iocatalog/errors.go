package iocatalog

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gnclimate/pkg/errcode"
)

func CatalogReadError(path string, err error) error {
	msg := "Cannot read raster catalog <em>%s</em>"
	vars := []any{path}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CatalogReadError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot read catalog: %w", fn.Name(), err),
	}
}

// CatalogParseError creates an error for a catalog that cannot be used.
func CatalogParseError(path string, err error) error {
	msg := `Cannot load raster catalog

<em>Catalog file:</em> %s
<em>Problem:</em> %s

<em>How to fix:</em>
  1. Validate YAML syntax
  2. Remove the file to restore defaults on the next run`

	vars := []any{path, err.Error()}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CatalogParseError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: invalid catalog %s: %w", fn.Name(), path, err),
	}
}

func CatalogVariableError(name string) error {
	msg := "Raster catalog lists unsupported variable <em>%s</em>"
	vars := []any{name}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.CatalogVariableError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: unsupported catalog variable %q", fn.Name(), name),
	}
}

package iosink

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gnclimate/pkg/errcode"
)

// OutputFormatError is returned for an unknown output format.
func OutputFormatError(format string) error {
	msg := "Unknown output format <em>%s</em>, use csv, postgres or sqlite"
	vars := []any{format}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.OutputFormatError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: unknown output format %q", fn.Name(), format),
	}
}

// OutputWriteError is returned when a result cannot be stored. Nothing
// of the result is kept in that case.
func OutputWriteError(target string, err error) error {
	msg := "Cannot write <em>%s</em>"
	vars := []any{target}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.OutputWriteError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: cannot write %s: %w", fn.Name(), target, err),
	}
}

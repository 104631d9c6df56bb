package ioprocess

import (
	"errors"
	"fmt"
	"strconv"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/gnclimate/pkg/climate"
	"github.com/gnames/gnclimate/pkg/errcode"
)

// yearError keeps a failure of one (variable, year) unit.
type yearError struct {
	year int
	err  error
}

// SeriesBuildError reports all years of a variable that could not be
// read or built.
func SeriesBuildError(v climate.Variable, failed []yearError) error {
	years := make([]string, len(failed))
	errs := make([]error, len(failed))
	for i, f := range failed {
		years[i] = strconv.Itoa(f.year)
		errs[i] = fmt.Errorf("%s %d: %w", v, f.year, f.err)
	}
	msg := "Cannot build <em>%s</em> series, failed years: %s"
	vars := []any{v.String(), strings.Join(years, ", ")}
	return &gn.Error{
		Code: errcode.SeriesBuildError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("%d year(s) of %s failed: %w",
			len(failed), v, errors.Join(errs...)),
	}
}

// AllVariablesFailedError is returned when no variable was processed.
func AllVariablesFailedError(count int) error {
	msg := "Failed number of variables: <em>%d</em>"
	vars := []any{count}

	plural := "s"
	if count == 1 {
		plural = ""
	}

	return &gn.Error{
		Code: errcode.AllVariablesFailedError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("%d variable%s failed to process", count, plural),
	}
}

// CancelledError is returned when processing stops on context
// cancellation.
func CancelledError(err error) error {
	msg := "Processing was cancelled"

	return &gn.Error{
		Code: errcode.CancelledError,
		Msg:  msg,
		Vars: nil,
		Err:  fmt.Errorf("processing cancelled: %w", err),
	}
}

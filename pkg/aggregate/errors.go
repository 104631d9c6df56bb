package aggregate

import (
	"fmt"
	"runtime"

	"github.com/gnames/gn"
	"github.com/gnames/gnclimate/pkg/errcode"
)

func HexResolutionError(res int) error {
	msg := "Hex resolution %d is out of supported 0-%d range"
	vars := []any{res, MaxResolution}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.HexResolutionError,
		Msg:  msg,
		Vars: vars,
		Err: fmt.Errorf("from %s: resolution %d is out of range",
			fn.Name(), res),
	}
}

func AggregateEmptyError(stage, reason string) error {
	msg := "Nothing to aggregate during %s: %s"
	vars := []any{stage, reason}
	pc, _, _, _ := runtime.Caller(1)
	fn := runtime.FuncForPC(pc)
	return &gn.Error{
		Code: errcode.AggregateEmptyError,
		Msg:  msg,
		Vars: vars,
		Err:  fmt.Errorf("from %s: %s: %s", fn.Name(), stage, reason),
	}
}

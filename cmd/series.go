/*
Copyright © 2025 Dmitry Mozzherin <dmozzherin@gmail.com>

Permission is hereby granted, free of charge, to any person obtaining a copy
of this software and associated documentation files (the "Software"), to deal
in the Software without restriction, including without limitation the rights
to use, copy, modify, merge, publish, distribute, sublicense, and/or sell
copies of the Software, and to permit persons to whom the Software is
furnished to do so, subject to the following conditions:

The above copyright notice and this permission notice shall be included in
all copies or substantial portions of the Software.

THE SOFTWARE IS PROVIDED "AS IS", WITHOUT WARRANTY OF ANY KIND, EXPRESS OR
IMPLIED, INCLUDING BUT NOT LIMITED TO THE WARRANTIES OF MERCHANTABILITY,
FITNESS FOR A PARTICULAR PURPOSE AND NONINFRINGEMENT. IN NO EVENT SHALL THE
AUTHORS OR COPYRIGHT HOLDERS BE LIABLE FOR ANY CLAIM, DAMAGES OR OTHER
LIABILITY, WHETHER IN AN ACTION OF CONTRACT, TORT OR OTHERWISE, ARISING FROM,
OUT OF OR IN CONNECTION WITH THE SOFTWARE OR THE USE OR OTHER DEALINGS IN
THE SOFTWARE.
*/
package cmd

import (
	"github.com/gnames/gn"
	"github.com/spf13/cobra"
)

// getSeriesCmd returns the series command.
func getSeriesCmd() *cobra.Command {
	res := &cobra.Command{
		Use:   "series",
		Short: "Build per-cell time series tables",
		Long: `Series reads monthly rasters of the configured years and writes
one wide table per variable.

Each row is a grid cell (lat, lon), each column is one
variable, year and month, for example precip_2019_month_1.
Cells that are empty in every column are kept.

Examples:
  gnclimate series -v precip
  gnclimate series -v tmin,tmax --first-year 2010 --last-year 2020
  gnclimate series -f sqlite`,
		RunE: runSeries,
	}

	variablesFlag(res)
	yearsFlags(res)
	outputFlags(res)
	return res
}

func runSeries(_ *cobra.Command, _ []string) error {
	ctx, cancel := commandContext()
	defer cancel()

	p, err := newPipeline(ctx, cfg)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer p.close()

	if err = p.proc.Export(ctx, p.sink); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	return nil
}

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
	"github.com/gnames/gnclimate/internal/iogeo"
	"github.com/spf13/cobra"
)

// getRegionsCmd returns the regions command.
func getRegionsCmd() *cobra.Command {
	res := &cobra.Command{
		Use:   "regions",
		Short: "Aggregate climate series by region polygons",
		Long: `Regions averages grid cells that fall inside each region polygon.

A region without cells takes the values of its nearest cell,
so every region of the shapefile gets a row. Region polygons
come from regions.path in the config file; name and parent
attributes are set by regions.name_field and
regions.parent_field.

With --combine all requested variables are joined into one
table before aggregation.

Examples:
  gnclimate regions -v precip
  gnclimate regions -v precip,tmin --combine
  gnclimate regions -f postgres`,
		RunE: runRegions,
	}

	variablesFlag(res)
	yearsFlags(res)
	outputFlags(res)
	res.Flags().Bool("combine", false,
		"join all variables into one table")
	return res
}

func runRegions(_ *cobra.Command, _ []string) error {
	ctx, cancel := commandContext()
	defer cancel()

	p, err := newPipeline(ctx, cfg)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer p.close()

	set, err := iogeo.LoadRegions(
		cfg.Regions.Path,
		cfg.Regions.NameField,
		cfg.Regions.ParentField,
		p.cat.GridCRS,
	)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	gn.Info("Loaded <em>%d</em> regions", len(set.Regions))

	if err = p.proc.Regions(ctx, set, p.sink); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	return nil
}

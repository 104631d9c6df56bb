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
	"github.com/gnames/gnclimate/pkg/aggregate"
	"github.com/spf13/cobra"
)

// getHexesCmd returns the hexes command.
func getHexesCmd() *cobra.Command {
	res := &cobra.Command{
		Use:   "hexes",
		Short: "Aggregate climate series by H3 hexagons",
		Long: `Hexes averages grid cells that fall into each H3 hexagon of the
given resolution.

Only hexagons that intersect the territory are written. The
territory is read from hex.territory_path; when it is not set,
the region polygons from regions.path are used.

Examples:
  gnclimate hexes -v tmax -r 6
  gnclimate hexes -v precip -r 4 -f sqlite`,
		RunE: runHexes,
	}

	variablesFlag(res)
	yearsFlags(res)
	outputFlags(res)
	res.Flags().IntP("resolution", "r", 0,
		"H3 resolution from 0 to 15 (default from config)")
	return res
}

func runHexes(_ *cobra.Command, _ []string) error {
	ctx, cancel := commandContext()
	defer cancel()

	p, err := newPipeline(ctx, cfg)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	defer p.close()

	ter, err := loadTerritory(p.cat.GridCRS)
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = p.proc.Hexes(ctx, ter, p.sink); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}
	return nil
}

func loadTerritory(gridCRS string) (*aggregate.Territory, error) {
	if cfg.Hex.TerritoryPath != "" {
		return iogeo.LoadTerritory(cfg.Hex.TerritoryPath, gridCRS)
	}

	gn.Info("No territory file, using region polygons as territory")
	set, err := iogeo.LoadRegions(
		cfg.Regions.Path,
		cfg.Regions.NameField,
		cfg.Regions.ParentField,
		gridCRS,
	)
	if err != nil {
		return nil, err
	}
	return aggregate.TerritoryFromRegions(set), nil
}

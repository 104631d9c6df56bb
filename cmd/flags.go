package cmd

import (
	"github.com/gnames/gnclimate/pkg/aggregate"
	"github.com/gnames/gnclimate/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
)

type funcFlag func(cmd *cobra.Command, f *pflag.Flag) config.Option

// optionFlags maps flag names to the config options they set.
var optionFlags = map[string]funcFlag{
	"variables": func(cmd *cobra.Command, _ *pflag.Flag) config.Option {
		vars, _ := cmd.Flags().GetStringSlice("variables")
		return config.OptVariables(vars)
	},
	"combine": func(cmd *cobra.Command, _ *pflag.Flag) config.Option {
		b, _ := cmd.Flags().GetBool("combine")
		return config.OptCombine(b)
	},
	"resolution": func(cmd *cobra.Command, _ *pflag.Flag) config.Option {
		i, _ := cmd.Flags().GetInt("resolution")
		return config.OptHexResolution(i)
	},
	"format": func(_ *cobra.Command, f *pflag.Flag) config.Option {
		return config.OptOutputFormat(f.Value.String())
	},
	"output-dir": func(_ *cobra.Command, f *pflag.Flag) config.Option {
		return config.OptOutputDir(f.Value.String())
	},
	"jobs": func(cmd *cobra.Command, _ *pflag.Flag) config.Option {
		i, _ := cmd.Flags().GetInt("jobs")
		return config.OptJobsNumber(i)
	},
}

// flagOptions returns options for the flags that were set on the
// command line. Years are applied as one range on top of the years
// of c.
func flagOptions(cmd *cobra.Command, c *config.Config) []config.Option {
	var res []config.Option
	first, last := c.Raster.FirstYear, c.Raster.LastYear
	var years bool
	cmd.Flags().Visit(func(f *pflag.Flag) {
		switch f.Name {
		case "first-year":
			first, _ = cmd.Flags().GetInt(f.Name)
			years = true
		case "last-year":
			last, _ = cmd.Flags().GetInt(f.Name)
			years = true
		default:
			if fn, ok := optionFlags[f.Name]; ok {
				res = append(res, fn(cmd, f))
			}
		}
	})
	if years {
		res = append(res, config.OptRasterYears(first, last))
	}
	return res
}

// checkResolution rejects a --resolution outside of the H3 range.
func checkResolution(cmd *cobra.Command) error {
	f := cmd.Flags().Lookup("resolution")
	if f == nil || !f.Changed {
		return nil
	}
	i, _ := cmd.Flags().GetInt("resolution")
	if i < 0 || i > aggregate.MaxResolution {
		return aggregate.HexResolutionError(i)
	}
	return nil
}

func variablesFlag(cmd *cobra.Command) {
	cmd.Flags().StringSliceP("variables", "v", nil,
		"climate variables to process: precip, tmin, tmax "+
			"(default: all catalog variables)")
}

func yearsFlags(cmd *cobra.Command) {
	cmd.Flags().Int("first-year", 0, "first year of the period")
	cmd.Flags().Int("last-year", 0, "last year of the period")
}

func outputFlags(cmd *cobra.Command) {
	cmd.Flags().StringP("format", "f", "",
		"output format: csv, sqlite, postgres")
	cmd.Flags().StringP("output-dir", "o", "",
		"directory for csv and sqlite output")
	cmd.Flags().IntP("jobs", "j", 0, "number of parallel raster reads")
}

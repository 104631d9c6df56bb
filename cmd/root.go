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
	"fmt"
	"log/slog"
	"os"
	"strings"

	"github.com/gnames/gn"
	"github.com/gnames/gnclimate/internal/iofs"
	"github.com/gnames/gnclimate/internal/iologger"
	app "github.com/gnames/gnclimate/pkg"
	"github.com/gnames/gnclimate/pkg/config"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

var (
	homeDir string
	opts    []config.Option
	cfg     *config.Config
)

// rootCmd represents the base command when called without any subcommands
var rootCmd = getRootCmd()

func getRootCmd() *cobra.Command {
	res := &cobra.Command{
		Version: fmt.Sprintf("version: %s\nbuild:   %s", app.Version, app.Build),
		Use:     "gnclimate",
		Short:   "gnclimate aggregates gridded climate rasters",
		Long: `gnclimate turns monthly climate rasters into tables.

Commands:
  - series: long per-cell tables, one column per variable, year and month
  - regions: per-region means, every region gets a value
  - hexes: per-hexagon means on the H3 grid
  - create, migrate: PostgreSQL schema for the database output

Configuration precedence (highest to lowest):
  1. CLI flags
  2. Environment variables (GNCLIMATE_*)
  3. Config file (~/.config/gnclimate/config.yaml)
  4. Built-in defaults

Nested fields use underscores
(database.host becomes GNCLIMATE_DATABASE_HOST).`,
		PersistentPreRunE: bootstrap,
		RunE: func(cmd *cobra.Command, args []string) error {
			return cmd.Help()
		},
		SilenceErrors: true,
		SilenceUsage:  true,
	}

	// Remove the automatic "gnclimate version" prefix
	res.SetVersionTemplate("{{.Version}}\n")

	// Override version flag to use -V (consistent with other gn projects)
	res.Flags().BoolP("version", "V", false, "version for gnclimate")

	res.AddCommand(
		getSeriesCmd(),
		getRegionsCmd(),
		getHexesCmd(),
		getCreateCmd(),
		getMigrateCmd(),
	)
	return res
}

func bootstrap(cmd *cobra.Command, args []string) error {
	var err error
	if err = checkResolution(cmd); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	homeDir, err = os.UserHomeDir()
	if err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureDirs(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	// Initialize logging with hardcoded defaults
	// Will be reconfigured later with user's config settings
	defaultLog := config.LogConfig{
		Format:      "json",
		Level:       "info",
		Destination: "file",
	}
	if err = iologger.Init(config.LogDir(homeDir), defaultLog, false); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureConfigFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	if err = iofs.EnsureCatalogFile(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	gn.Info(
		"Configuration files are available at <em>%s</em>",
		config.ConfigDir(homeDir),
	)

	var cfgViper *config.Config
	if cfgViper, err = initConfig(homeDir); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	cfg = config.New()
	opts = cfgViper.ToOptions()
	cfg.Update(opts)

	// Set HomeDir after config is loaded
	cfg.Update([]config.Option{config.OptHomeDir(homeDir)})

	// Flags of the running command override file and env settings
	cfg.Update(flagOptions(cmd, cfg))

	// Reconfigure logging with user's settings, appending to the log
	// started above
	if err = iologger.Init(config.LogDir(cfg.HomeDir), cfg.Log, true); err != nil {
		gn.PrintErrorMessage(err)
		return err
	}

	slog.Info("Configuration loaded",
		"config_file", config.ConfigFilePath(homeDir),
		"command", cmd.Name(),
	)

	return nil
}

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	err := rootCmd.Execute()
	if err != nil {
		os.Exit(1)
	}
}

func initConfig(home string) (*config.Config, error) {
	var err error
	cfgPath := config.ConfigFilePath(home)
	v := viper.New()
	v.SetConfigFile(cfgPath)

	initEnvVars(v)

	if err = v.ReadInConfig(); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	var res config.Config
	if err = v.Unmarshal(&res); err != nil {
		return nil, iofs.ReadFileError(cfgPath, err)
	}

	return &res, nil
}

func initEnvVars(v *viper.Viper) {
	// Set environment variables we want.
	// We set them manually so we can see clearly which env variables are allowed.
	// These match the fields included in config.ToOptions() - i.e., persistent
	// configuration that can be stored in config.yaml.
	v.SetEnvPrefix("GNCLIMATE")
	v.SetEnvKeyReplacer(strings.NewReplacer(".", "_"))

	// Raster configuration
	v.BindEnv("raster.data_dir", "RASTER_DATA_DIR")
	v.BindEnv("raster.first_year", "RASTER_FIRST_YEAR")
	v.BindEnv("raster.last_year", "RASTER_LAST_YEAR")

	// Regions configuration
	v.BindEnv("regions.path", "REGIONS_PATH")
	v.BindEnv("regions.name_field", "REGIONS_NAME_FIELD")
	v.BindEnv("regions.parent_field", "REGIONS_PARENT_FIELD")

	// Hex configuration
	v.BindEnv("hex.resolution", "HEX_RESOLUTION")
	v.BindEnv("hex.territory_path", "HEX_TERRITORY_PATH")

	// Output configuration
	v.BindEnv("output.format", "OUTPUT_FORMAT")
	v.BindEnv("output.dir", "OUTPUT_DIR")

	// Database configuration
	v.BindEnv("database.host", "DATABASE_HOST")
	v.BindEnv("database.port", "DATABASE_PORT")
	v.BindEnv("database.user", "DATABASE_USER")
	v.BindEnv("database.password", "DATABASE_PASSWORD")
	v.BindEnv("database.database", "DATABASE_DATABASE")
	v.BindEnv("database.ssl_mode", "DATABASE_SSL_MODE")
	v.BindEnv("database.batch_size", "DATABASE_BATCH_SIZE")

	// Log configuration
	v.BindEnv("log.level", "LOG_LEVEL")
	v.BindEnv("log.format", "LOG_FORMAT")
	v.BindEnv("log.destination", "LOG_DESTINATION")

	// General configuration
	v.BindEnv("jobs_number", "JOBS_NUMBER")

	v.AutomaticEnv()
}

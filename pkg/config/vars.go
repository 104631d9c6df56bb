package config

import (
	"path/filepath"
)

var (
	// AppName is used in generating file system paths.
	AppName = "gnclimate"
)

// MaxHexResolution is the finest resolution of the H3 grid.
const MaxHexResolution = 15

// ConfigDir returns the directory path for configuration files.
// Returns ~/.config/gnclimate by default.
func ConfigDir(homeDir string) string {
	return filepath.Join(homeDir, ".config", AppName)
}

// DataDir returns the default directory for raster files.
// Returns ~/.local/share/gnclimate/data by default.
func DataDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "data")
}

// OutputDir returns the default directory for results.
// Returns ~/.local/share/gnclimate/output by default.
func OutputDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "output")
}

// LogDir returns the directory path for log files.
// Returns ~/.local/share/gnclimate/logs by default.
func LogDir(homeDir string) string {
	return filepath.Join(homeDir, ".local", "share", AppName, "logs")
}

// ConfigFilePath returns the full path to the config.yaml file.
// Returns ~/.config/gnclimate/config.yaml by default.
func ConfigFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "config.yaml")
}

// CatalogFilePath returns the full path to the variables.yaml file.
// Returns ~/.config/gnclimate/variables.yaml by default.
func CatalogFilePath(homeDir string) string {
	return filepath.Join(ConfigDir(homeDir), "variables.yaml")
}

// Package iofs prepares directories and default files of gnclimate.
package iofs

import (
	_ "embed"
	"os"

	"github.com/gnames/gnclimate/pkg/config"
)

//go:embed config.yaml
var ConfigYAML string

//go:embed variables.yaml
var VariablesYAML string

// EnsureDirs creates config, data, output and log directories.
func EnsureDirs(homeDir string) error {
	dirs := []string{
		config.ConfigDir(homeDir),
		config.DataDir(homeDir),
		config.OutputDir(homeDir),
		config.LogDir(homeDir),
	}
	for _, v := range dirs {
		if err := TouchDir(v); err != nil {
			return err
		}
	}
	return nil
}

// TouchDir creates a directory if it does not exist.
func TouchDir(dir string) error {
	info, err := os.Stat(dir)
	if err == nil && info.IsDir() {
		return nil
	}

	if err := os.MkdirAll(dir, 0755); err != nil {
		return CreateDirError(dir, err)
	}

	return nil
}

// EnsureConfigFile writes the default config.yaml unless it exists.
func EnsureConfigFile(homeDir string) error {
	return ensureFile(config.ConfigFilePath(homeDir), ConfigYAML)
}

// EnsureCatalogFile writes the default variables.yaml unless it exists.
func EnsureCatalogFile(homeDir string) error {
	return ensureFile(config.CatalogFilePath(homeDir), VariablesYAML)
}

func ensureFile(path, content string) error {
	if _, err := os.Stat(path); err == nil {
		return nil
	}

	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		return CopyFileError(path, err)
	}

	return nil
}

package iofs

import (
	"errors"
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/gn"
	"github.com/gnames/gnclimate/pkg/errcode"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnsureDirs(t *testing.T) {
	tmpDir := t.TempDir()

	// repeated calls must succeed
	for range 2 {
		err := EnsureDirs(tmpDir)
		require.NoError(t, err)
	}

	dirs := []string{
		filepath.Join(tmpDir, ".config", "gnclimate"),
		filepath.Join(tmpDir, ".local", "share", "gnclimate", "data"),
		filepath.Join(tmpDir, ".local", "share", "gnclimate", "output"),
		filepath.Join(tmpDir, ".local", "share", "gnclimate", "logs"),
	}
	for _, dir := range dirs {
		info, err := os.Stat(dir)
		require.NoError(t, err, dir)
		assert.True(t, info.IsDir(), dir)
		assert.Equal(t, os.FileMode(0755), info.Mode().Perm(), dir)
	}
}

func TestTouchDirError(t *testing.T) {
	tmpDir := t.TempDir()
	file := filepath.Join(tmpDir, "file")
	require.NoError(t, os.WriteFile(file, []byte("x"), 0644))

	err := TouchDir(filepath.Join(file, "sub"))
	require.Error(t, err)
	var gnErr *gn.Error
	require.True(t, errors.As(err, &gnErr))
	assert.Equal(t, errcode.CreateDirError, gnErr.Code)
	assert.Equal(t, filepath.Join(file, "sub"), gnErr.Vars[0])
}

func TestEnsureFiles(t *testing.T) {
	tests := []struct {
		msg     string
		fn      func(string) error
		file    string
		content string
	}{
		{"config", EnsureConfigFile, "config.yaml", ConfigYAML},
		{"catalog", EnsureCatalogFile, "variables.yaml", VariablesYAML},
	}

	for _, tt := range tests {
		t.Run(tt.msg, func(t *testing.T) {
			tmpDir := t.TempDir()
			require.NoError(t, EnsureDirs(tmpDir))
			require.NoError(t, tt.fn(tmpDir))

			path := filepath.Join(tmpDir, ".config", "gnclimate", tt.file)
			content, err := os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, tt.content, string(content))

			info, err := os.Stat(path)
			require.NoError(t, err)
			assert.Equal(t, os.FileMode(0644), info.Mode().Perm())

			// existing file is not overwritten
			custom := "# custom\n"
			require.NoError(t, os.WriteFile(path, []byte(custom), 0644))
			require.NoError(t, tt.fn(tmpDir))
			content, err = os.ReadFile(path)
			require.NoError(t, err)
			assert.Equal(t, custom, string(content))
		})
	}
}

func TestEmbedded(t *testing.T) {
	assert.Contains(t, ConfigYAML, "raster:")
	assert.Contains(t, ConfigYAML, "hex:")
	assert.Contains(t, VariablesYAML, "grid_crs:")
	assert.Contains(t, VariablesYAML, "partial_years:")
	for _, v := range []string{"precip:", "tmin:", "tmax:"} {
		assert.Contains(t, VariablesYAML, v)
	}
}

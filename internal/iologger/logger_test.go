package iologger_test

import (
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/gnames/gnclimate/internal/iologger"
	"github.com/gnames/gnclimate/pkg/config"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestInitFile(t *testing.T) {
	dir := t.TempDir()
	defer slog.SetDefault(slog.Default())

	cfg := config.LogConfig{Format: "json", Level: "debug", Destination: "file"}
	err := iologger.Init(dir, cfg, false)
	require.NoError(t, err)

	slog.Debug("hex aggregation", "variable", "tmax")
	bs, err := os.ReadFile(filepath.Join(dir, iologger.LogFile))
	require.NoError(t, err)
	assert.Contains(t, string(bs), `"variable":"tmax"`)

	// truncates on restart, keeps content in append mode
	err = iologger.Init(dir, cfg, true)
	require.NoError(t, err)
	slog.Info("second")
	bs, err = os.ReadFile(filepath.Join(dir, iologger.LogFile))
	require.NoError(t, err)
	assert.Contains(t, string(bs), "tmax")
	assert.Contains(t, string(bs), "second")

	err = iologger.Init(dir, cfg, false)
	require.NoError(t, err)
	bs, err = os.ReadFile(filepath.Join(dir, iologger.LogFile))
	require.NoError(t, err)
	assert.Empty(t, bs)
}

func TestInitBadDir(t *testing.T) {
	cfg := config.LogConfig{Format: "text", Level: "info", Destination: "file"}
	err := iologger.Init(filepath.Join(t.TempDir(), "absent"), cfg, false)
	assert.Error(t, err)
}

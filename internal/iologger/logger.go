// Package iologger sets up the slog logger of gnclimate.
package iologger

import (
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"time"

	"github.com/gnames/gnclimate/pkg/config"
)

// LogFile is the name of the log file inside the log directory.
const LogFile = "gnclimate.log"

// Init sets the default slog logger according to cfg.
// With "file" destination the log is written to LogFile in logDir,
// truncating the previous log unless append is true.
func Init(logDir string, cfg config.LogConfig, append bool) error {
	w, err := writer(logDir, cfg.Destination, append)
	if err != nil {
		return err
	}

	opts := &slog.HandlerOptions{Level: parseLevel(cfg.Level)}

	var handler slog.Handler
	switch cfg.Format {
	case "text":
		handler = slog.NewTextHandler(w, opts)
	case "tint":
		// compact text for terminals
		opts.ReplaceAttr = shortTime
		handler = slog.NewTextHandler(w, opts)
	default:
		handler = slog.NewJSONHandler(w, opts)
	}

	slog.SetDefault(slog.New(handler))
	return nil
}

func writer(logDir, dest string, append bool) (io.Writer, error) {
	switch dest {
	case "stdout":
		return os.Stdout, nil
	case "file":
		path := filepath.Join(logDir, LogFile)
		flags := os.O_CREATE | os.O_WRONLY | os.O_TRUNC
		if append {
			flags = os.O_CREATE | os.O_WRONLY | os.O_APPEND
		}
		f, err := os.OpenFile(path, flags, 0644)
		if err != nil {
			return nil, CreateLogFileError(path, err)
		}
		return f, nil
	default:
		return os.Stderr, nil
	}
}

func shortTime(_ []string, a slog.Attr) slog.Attr {
	if a.Key == slog.TimeKey && a.Value.Kind() == slog.KindTime {
		a.Value = slog.StringValue(a.Value.Time().Format(time.TimeOnly))
	}
	return a
}

// parseLevel converts string level to slog.Level.
func parseLevel(level string) slog.Level {
	switch level {
	case "debug":
		return slog.LevelDebug
	case "warn":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

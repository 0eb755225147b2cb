// Package log routes the process-wide slog default to a rotated file, so
// logging never draws over the TUI.
package log

import (
	"log/slog"
	"os"
	"path/filepath"

	charmlog "github.com/charmbracelet/log/v2"
	"gopkg.in/natefinch/lumberjack.v2"
)

func Setup(path string, debug bool) error {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return err
	}
	writer := &lumberjack.Logger{
		Filename:   path,
		MaxSize:    5, // megabytes
		MaxBackups: 2,
		Compress:   true,
	}
	level := charmlog.InfoLevel
	if debug {
		level = charmlog.DebugLevel
	}
	logger := charmlog.NewWithOptions(writer, charmlog.Options{
		ReportTimestamp: true,
		Level:           level,
	})
	slog.SetDefault(slog.New(logger))
	return nil
}

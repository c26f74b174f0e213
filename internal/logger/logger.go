// Package logger builds the application zap logger. Output goes to a file
// under the data directory: the terminal is owned by the TUI, and anything
// written to stderr would corrupt the rendered frame.
package logger

import (
	"fmt"
	"path/filepath"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New creates a logger writing to fcsprep.log inside dataDir at the given
// level. Unknown level names fall back to info.
func New(dataDir, level string) (*zap.Logger, error) {
	lvl, err := zapcore.ParseLevel(level)
	if err != nil {
		lvl = zapcore.InfoLevel
	}

	cfg := zap.NewProductionConfig()
	cfg.Level = zap.NewAtomicLevelAt(lvl)
	cfg.OutputPaths = []string{filepath.Join(dataDir, "fcsprep.log")}
	cfg.ErrorOutputPaths = cfg.OutputPaths

	log, err := cfg.Build()
	if err != nil {
		return nil, fmt.Errorf("build logger: %w", err)
	}
	return log, nil
}

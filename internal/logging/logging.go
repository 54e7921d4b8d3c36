// Package logging builds the zap loggers used by the mpexport commands.
package logging

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New returns a console logger writing to stderr. Verbose lowers the
// threshold from Info to Debug and prefixes each message with its level.
func New(verbose bool) *zap.Logger {
	level := zapcore.InfoLevel
	levelKey := ""
	if verbose {
		level = zapcore.DebugLevel
		levelKey = "level"
	}
	encoder := zapcore.NewConsoleEncoder(zapcore.EncoderConfig{
		MessageKey:       "msg",
		LevelKey:         levelKey,
		EncodeLevel:      zapcore.CapitalLevelEncoder,
		ConsoleSeparator: "\t",
	})
	return zap.New(zapcore.NewCore(encoder, zapcore.Lock(os.Stderr), level))
}

// Nop returns a logger that discards everything.
func Nop() *zap.Logger {
	return zap.NewNop()
}

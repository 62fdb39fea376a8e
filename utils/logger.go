package utils

import (
	"fmt"
	"strings"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the process logger. It discards everything until InitLogger runs,
// which keeps tests quiet.
var Log = zap.NewNop()

// InitLogger replaces Log with a production (JSON) or development (console)
// logger at the given level.
func InitLogger(level string, development bool) error {
	lvl, err := zapcore.ParseLevel(strings.ToLower(strings.TrimSpace(level)))
	if err != nil {
		return fmt.Errorf("parse log level %q: %w", level, err)
	}

	cfg := zap.NewProductionConfig()
	if development {
		cfg = zap.NewDevelopmentConfig()
	}
	cfg.Level = zap.NewAtomicLevelAt(lvl)

	logger, err := cfg.Build()
	if err != nil {
		return fmt.Errorf("build logger: %w", err)
	}
	Log = logger.Named("jackpot")
	return nil
}

// SyncLogger flushes buffered entries. Errors from syncing stdout/stderr are
// ignored.
func SyncLogger() {
	_ = Log.Sync()
}

// BotLogf logs a formatted line tagged with the subsystem it came from.
func BotLogf(area string, format string, args ...interface{}) {
	Log.Sugar().With("area", area).Infof(format, args...)
}

package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the process-wide structured logger. It is a no-op until Init runs,
// so packages can log from tests without setup.
var Log = zap.NewNop().Sugar()

// Init builds the global logger. Release mode gets JSON on stdout,
// everything else a colored console encoder at debug level.
func Init(release bool) error {
	var cfg zap.Config
	if release {
		cfg = zap.NewProductionConfig()
		cfg.EncoderConfig.TimeKey = "timestamp"
		cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
		cfg.EncoderConfig.MessageKey = "message"
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.OutputPaths = []string{"stdout"}
	cfg.ErrorOutputPaths = []string{"stderr"}

	base, err := cfg.Build(zap.AddStacktrace(zapcore.ErrorLevel))
	if err != nil {
		return err
	}
	Log = base.Sugar()
	return nil
}

// Base returns the unsugared logger for libraries that want *zap.Logger
func Base() *zap.Logger {
	return Log.Desugar()
}

// Sync flushes buffered entries; call it on shutdown
func Sync() {
	_ = Log.Sync()
}

package configslog

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Log is the structured logger, SLog the sugared variant. Both are
// initialized by InitLogger and safe for concurrent use.
var (
	Log  *zap.Logger
	SLog *zap.SugaredLogger
)

// InitLogger configures the global loggers. Development mode switches to
// console encoding with colored levels.
func InitLogger(env string) {
	var cfg zap.Config
	if env == "production" {
		cfg = zap.NewProductionConfig()
	} else {
		cfg = zap.NewDevelopmentConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
	}
	cfg.OutputPaths = []string{"stdout"}

	logger, err := cfg.Build(zap.AddCallerSkip(0))
	if err != nil {
		os.Stderr.WriteString("logger init failed: " + err.Error() + "\n")
		os.Exit(1)
	}
	Log = logger
	SLog = logger.Sugar()
}

// Sync flushes buffered log entries. Called on shutdown.
func Sync() {
	if Log != nil {
		_ = Log.Sync()
	}
}

func init() {
	// Fallback so packages can log before main configures the logger.
	if Log == nil {
		Log = zap.NewNop()
		SLog = Log.Sugar()
	}
}

package logging

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// Logger wraps zap.Logger. Callers attach context with zap fields.
type Logger struct {
	*zap.Logger
}

// New builds a logger from the configured level. Production output is
// JSON on stdout; development gets a colored console encoder and keeps
// stacktraces. An unrecognized level falls back to the mode's default
// rather than failing startup.
func New(level string, development bool) *Logger {
	lvl := zapcore.InfoLevel
	if development {
		lvl = zapcore.DebugLevel
	}
	if level != "" {
		_ = lvl.UnmarshalText([]byte(level))
	}

	cfg := zap.Config{
		Level:             zap.NewAtomicLevelAt(lvl),
		Development:       development,
		Encoding:          "json",
		EncoderConfig:     zap.NewProductionEncoderConfig(),
		OutputPaths:       []string{"stdout"},
		ErrorOutputPaths:  []string{"stderr"},
		DisableStacktrace: true,
	}
	if development {
		cfg.Encoding = "console"
		cfg.EncoderConfig = zap.NewDevelopmentEncoderConfig()
		cfg.EncoderConfig.EncodeLevel = zapcore.CapitalColorLevelEncoder
		cfg.DisableStacktrace = false
	}
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder

	logger, err := cfg.Build()
	if err != nil {
		return &Logger{Logger: zap.NewNop()}
	}
	return &Logger{Logger: logger}
}

// NewDefault creates a production logger at info level.
func NewDefault() *Logger {
	return New("info", false)
}

// NewDevelopment creates a console logger at debug level.
func NewDevelopment() *Logger {
	return New("debug", true)
}

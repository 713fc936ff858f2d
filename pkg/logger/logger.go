package logger

import (
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// New instantiates a zap logger with console-friendly defaults. Debug
// widens the level to include engine diagnostics.
func New(debug bool) (*zap.Logger, error) {
	cfg := zap.NewProductionConfig()
	cfg.Encoding = "console"
	cfg.EncoderConfig.TimeKey = "timestamp"
	cfg.EncoderConfig.EncodeTime = zapcore.ISO8601TimeEncoder
	if debug {
		cfg.Level = zap.NewAtomicLevelAt(zapcore.DebugLevel)
	}
	return cfg.Build()
}

// Must panics when the logger cannot be created.
func Must(log *zap.Logger, err error) *zap.Logger {
	if err != nil {
		panic(err)
	}
	return log
}

// Engine adapts a zap sugared logger to the calculation engine's Logger
// interface.
type Engine struct {
	S *zap.SugaredLogger
}

func (e Engine) Debugf(format string, args ...any) { e.S.Debugf(format, args...) }
func (e Engine) Infof(format string, args ...any)  { e.S.Infof(format, args...) }
func (e Engine) Warnf(format string, args ...any)  { e.S.Warnf(format, args...) }
func (e Engine) Errorf(format string, args ...any) { e.S.Errorf(format, args...) }

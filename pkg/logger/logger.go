package logger

import (
	"os"

	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

// NewLogger builds the process logger. Release mode logs JSON, everything
// else uses the human readable console encoder.
func NewLogger(level string, ginMode string) (*zap.Logger, *zap.AtomicLevel) {
	atomicLevel := zap.NewAtomicLevel()
	atomicLevel.SetLevel(mapLogLevel(level))

	var encoder zapcore.Encoder
	if ginMode == "release" {
		encoder = zapcore.NewJSONEncoder(zap.NewProductionEncoderConfig())
	} else {
		encoder = zapcore.NewConsoleEncoder(zap.NewDevelopmentEncoderConfig())
	}

	logger := zap.New(zapcore.NewCore(
		encoder,
		zapcore.Lock(os.Stdout),
		atomicLevel,
	), zap.AddCaller())

	return logger, &atomicLevel
}

func mapLogLevel(level string) zapcore.Level {
	switch level {
	case "debug":
		return zapcore.DebugLevel
	case "info":
		return zapcore.InfoLevel
	case "warn":
		return zapcore.WarnLevel
	default:
		return zapcore.ErrorLevel
	}
}

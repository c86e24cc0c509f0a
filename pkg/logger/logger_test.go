package logger

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap/zapcore"
)

func TestMapLogLevel(t *testing.T) {
	cases := map[string]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"info":    zapcore.InfoLevel,
		"warn":    zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"unknown": zapcore.ErrorLevel,
	}
	for in, want := range cases {
		assert.Equal(t, want, mapLogLevel(in), in)
	}
}

func TestNewLogger_Level(t *testing.T) {
	log, level := NewLogger("warn", "release")
	assert.NotNil(t, log)
	assert.Equal(t, zapcore.WarnLevel, level.Level())
	assert.False(t, log.Core().Enabled(zapcore.InfoLevel))
}

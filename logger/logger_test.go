package logger

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestParseLevel(t *testing.T) {
	cases := map[LogLevel]zapcore.Level{
		"debug":   zapcore.DebugLevel,
		"INFO":    zapcore.InfoLevel,
		" warn ":  zapcore.WarnLevel,
		"error":   zapcore.ErrorLevel,
		"verbose": zapcore.InfoLevel,
		"":        zapcore.InfoLevel,
	}
	for in, want := range cases {
		assert.Equal(t, want, ParseLevel(in), "level %q", in)
	}
}

func TestHelpersWriteToReplacedLogger(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	ReplaceLogger(zap.New(core))
	t.Cleanup(func() { ReplaceLogger(zap.NewNop()) })

	Debug("dropped")
	Info("session completed", Int64("sessionId", 7), String("device", "42"))
	Error("upload failed", ErrorField(errors.New("boom")))

	entries := logs.All()
	if assert.Len(t, entries, 2) {
		assert.Equal(t, "session completed", entries[0].Message)
		assert.Equal(t, int64(7), entries[0].ContextMap()["sessionId"])
		assert.Equal(t, zapcore.ErrorLevel, entries[1].Level)
	}
}

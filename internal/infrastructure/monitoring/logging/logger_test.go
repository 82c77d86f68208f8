package logging

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap/zapcore"
	"go.uber.org/zap/zaptest/observer"
)

func TestToZapFields_TypedConstructors(t *testing.T) {
	fields := []Field{
		String("s", "v"),
		Int("i", 7),
		Int64("i64", 9),
		Float64("f", 1.5),
		Bool("b", true),
		Duration("d", time.Second),
		Any("any", map[string]int{"k": 1}),
	}
	zf := toZapFields(fields)
	require.Len(t, zf, len(fields))
	assert.Equal(t, "s", zf[0].Key)
	assert.Equal(t, "d", zf[5].Key)
}

func TestErr_NilError(t *testing.T) {
	f := Err(nil)
	assert.Equal(t, "error", f.Key)
	assert.Equal(t, "<nil>", f.Value)
}

func TestNewLogger_DefaultsApplied(t *testing.T) {
	l, err := NewLogger(Config{})
	require.NoError(t, err)
	require.NotNil(t, l)
	l.Info("startup check") // must not panic
}

func TestLogger_WithAddsFields(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	l := NewLoggerFromCore(core)

	l.With(String("case_id", "HRPM-001")).Info("derived claim status")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "derived claim status", entries[0].Message)
	assert.Equal(t, "HRPM-001", entries[0].ContextMap()["case_id"])
}

func TestLogger_NamedPropagates(t *testing.T) {
	core, logs := observer.New(zapcore.InfoLevel)
	l := NewLoggerFromCore(core).Named("correlation")

	l.Warn("requirement catalog empty")

	entries := logs.All()
	require.Len(t, entries, 1)
	assert.Equal(t, "correlation", entries[0].LoggerName)
}

func TestNopLogger_DiscardsEverything(t *testing.T) {
	l := NewNopLogger()
	l.Debug("x")
	l.Info("x")
	l.Warn("x")
	l.Error("x")
	assert.NotNil(t, l.With(String("k", "v")))
	assert.NotNil(t, l.Named("sub"))
}

func TestDefault_SetAndGet(t *testing.T) {
	orig := Default()
	defer SetDefault(orig)

	l := NewNopLogger()
	SetDefault(l)
	assert.Equal(t, l, Default())

	SetDefault(nil) // ignored
	assert.Equal(t, l, Default())
}

func TestParseLevel(t *testing.T) {
	assert.Equal(t, zapcore.DebugLevel, parseLevel("debug"))
	assert.Equal(t, zapcore.WarnLevel, parseLevel("WARN"))
	assert.Equal(t, zapcore.ErrorLevel, parseLevel("error"))
	assert.Equal(t, zapcore.InfoLevel, parseLevel("bogus"))
}

package xlog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"strings"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"

	"github.com/benz9527/xstl/lib/infra"
)

func TestLogLevelString(t *testing.T) {
	testcases := []struct {
		text     string
		expected zapcore.Level
	}{
		{"", zapcore.DebugLevel},
		{"debug", zapcore.DebugLevel},
		{"info", zapcore.InfoLevel},
		{"WARN", zapcore.WarnLevel},
		{"Error", zapcore.ErrorLevel},
		{"unknown", zapcore.DebugLevel},
	}
	for _, tc := range testcases {
		t.Run(tc.text, func(tt *testing.T) {
			require.Equal(tt, tc.expected, getLogLevelOrDefault(tc.text))
		})
	}
	require.Equal(t, zapcore.WarnLevel, LogLevelWarn.zapLevel())
	require.Equal(t, "INFO", LogLevelInfo.String())
}

func decodeLines(tt *testing.T, buf *bytes.Buffer) []map[string]any {
	lines := strings.Split(strings.TrimSpace(buf.String()), "\n")
	res := make([]map[string]any, 0, len(lines))
	for _, line := range lines {
		if len(line) == 0 {
			continue
		}
		m := map[string]any{}
		require.NoError(tt, json.Unmarshal([]byte(line), &m))
		res = append(res, m)
	}
	return res
}

func TestXLogger_AllAPIs(t *testing.T) {
	buf := &bytes.Buffer{}
	logger := NewXLogger(
		WithXLoggerWriter(buf),
		WithXLoggerLevel(LogLevelDebug),
		WithXLoggerEncoder(JSON),
		WithXLoggerTimeEncoder(zapcore.EpochMillisTimeEncoder),
		WithXLoggerLevelEncoder(zapcore.CapitalLevelEncoder),
		WithXLoggerContextFieldExtract("traceId"),
		WithXLoggerContextFieldExtract("tree", "container"),
	)
	require.Equal(t, "debug", logger.Level())

	ctx := ContextWithField(context.TODO(), "traceId", "abc")
	ctx = ContextWithField(ctx, "tree", "rbtree")

	logger.Debug("debug", zap.Int("n", 1))
	logger.Info("info")
	logger.Warn("warn")
	logger.Error(errors.New("plain"), "error")
	logger.ErrorStack(infra.NewErrorStack("stack"), "error stack")
	logger.DebugContext(ctx, "debug ctx")
	logger.InfoContext(ctx, "info ctx")
	logger.WarnContext(ctx, "warn ctx")
	logger.ErrorContext(ctx, errors.New("ctx"), "error ctx")
	logger.ErrorStackContext(ctx, infra.WrapErrorStack(errors.New("ctx stack")), "error stack ctx")
	logger.Logf(zapcore.InfoLevel, "logf %d", 7)
	logger.Named("child").Info("named")
	require.NoError(t, logger.Sync())

	entries := decodeLines(t, buf)
	require.Len(t, entries, 12)
	require.Equal(t, "DEBUG", entries[0]["lvl"])
	require.Equal(t, float64(1), entries[0]["n"])
	require.Equal(t, "plain", entries[3]["error"])
	require.Equal(t, "stack", entries[4]["error"])
	require.NotEmpty(t, entries[4]["errorStack"])
	require.Equal(t, "abc", entries[5]["traceId"])
	require.Equal(t, "rbtree", entries[5]["container"])
	require.Equal(t, "ctx", entries[8]["error"])
	require.Equal(t, "ctx stack", entries[9]["error"])
	require.Equal(t, "logf 7", entries[10]["msg"])
	require.Equal(t, "child", entries[11]["component"])

	buf.Reset()
	logger.IncreaseLogLevel(zapcore.ErrorLevel)
	logger.Info("dropped")
	logger.Named("child").Warn("dropped")
	require.NoError(t, logger.Sync())
	require.Empty(t, buf.String())
}

func TestXLogger_Options(t *testing.T) {
	require.Panics(t, func() {
		NewXLogger(WithXLoggerEncoder(_encMax))
	})
	require.Panics(t, func() {
		NewXLogger(WithXLoggerWriter(nil))
	})
	require.Panics(t, func() {
		//nolint:staticcheck
		NewXLogger(WithXLoggerContext(nil))
	})

	buf := &bytes.Buffer{}
	logger := NewXLogger(
		nil,
		WithXLoggerWriter(buf),
		WithXLoggerEncoder(PlainText),
		WithXLoggerLevel(LogLevelWarn),
		WithXLoggerLevelEncoder(nil),
		WithXLoggerTimeEncoder(nil),
		WithXLoggerContextFieldExtract(""),
		WithXLoggerContextFieldExtract("omit", ContextKeyMapToOmitempty),
	)
	logger.InfoContext(context.TODO(), "dropped")
	logger.WarnContext(context.TODO(), "plain text")
	require.NoError(t, logger.Sync())
	require.Contains(t, buf.String(), "plain text")
	require.NotContains(t, buf.String(), "dropped")
	require.NotContains(t, buf.String(), "omit")
}

func TestNopXLogger(t *testing.T) {
	logger := NewNopXLogger()
	logger.Debug("nop")
	logger.ErrorStack(infra.NewErrorStack("nop"), "nop")
	logger.Named("nop").Info("nop")
	require.NoError(t, logger.Sync())
}

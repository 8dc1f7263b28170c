package xlog

import (
	"bytes"
	"context"
	"testing"

	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

func TestConsoleCore(t *testing.T) {
	lvlEnabler := zap.NewAtomicLevelAt(LogLevelDebug.zapLevel())
	var cc xLogCore = newConsoleCore(
		context.TODO(),
		&lvlEnabler,
		JSON,
		nil,
		zapcore.CapitalLevelEncoder,
		zapcore.ISO8601TimeEncoder,
	)
	require.Nil(t, cc)

	buf := &bytes.Buffer{}
	cc = newConsoleCore(
		context.TODO(),
		&lvlEnabler,
		JSON,
		zapcore.AddSync(buf),
		zapcore.CapitalLevelEncoder,
		zapcore.ISO8601TimeEncoder,
	)
	require.NotNil(t, cc.outEncoder())
	require.NotNil(t, cc.writeSyncer())
	require.NotNil(t, cc.levelEncoder())
	require.NotNil(t, cc.timeEncoder())
	require.NotNil(t, cc.context())
	require.NotNil(t, cc.(*consoleCore).core.lvlEnabler)
	require.NotNil(t, cc.(*consoleCore).core.core)

	require.True(t, cc.Enabled(zapcore.DebugLevel))
	require.True(t, cc.Enabled(zapcore.InfoLevel))
	require.True(t, cc.Enabled(zapcore.WarnLevel))
	require.True(t, cc.Enabled(zapcore.ErrorLevel))

	lvlEnabler.SetLevel(zapcore.ErrorLevel)
	require.False(t, cc.Enabled(zapcore.DebugLevel))
	require.False(t, cc.Enabled(zapcore.InfoLevel))
	require.False(t, cc.Enabled(zapcore.WarnLevel))
	require.True(t, cc.Enabled(zapcore.ErrorLevel))
	require.Nil(t, cc.Check(zapcore.Entry{Level: zapcore.DebugLevel}, nil))

	lvlEnabler.SetLevel(zapcore.DebugLevel)

	core := cc.With([]zap.Field{zap.String("key", "value")})
	require.NotNil(t, core)

	ent := cc.Check(zapcore.Entry{Level: zapcore.DebugLevel, Message: "console"}, nil)
	require.NotNil(t, ent)
	err := cc.Write(ent.Entry, []zap.Field{zap.String("key", "value")})
	require.NoError(t, err)
	require.NoError(t, cc.Sync())
	require.Contains(t, buf.String(), `"msg":"console"`)
	require.Contains(t, buf.String(), `"key":"value"`)
	require.Contains(t, buf.String(), `"lvl":"DEBUG"`)
}

func TestMultiCore(t *testing.T) {
	tee := make(xLogMultiCore, 0, 2)
	require.Nil(t, tee.context())
	require.Nil(t, tee.writeSyncer())
	require.Nil(t, tee.levelEncoder())
	require.Nil(t, tee.timeEncoder())
	require.Nil(t, tee.outEncoder())

	lvlEnabler := zap.NewAtomicLevelAt(LogLevelInfo.zapLevel())
	buf1, buf2 := &bytes.Buffer{}, &bytes.Buffer{}
	for _, buf := range []*bytes.Buffer{buf1, buf2} {
		tee = append(tee, newConsoleCore(
			context.TODO(),
			&lvlEnabler,
			PlainText,
			zapcore.AddSync(buf),
			zapcore.CapitalLevelEncoder,
			zapcore.ISO8601TimeEncoder,
		))
	}
	require.False(t, tee.Enabled(zapcore.DebugLevel))
	require.True(t, tee.Enabled(zapcore.InfoLevel))
	require.Equal(t, zapcore.InfoLevel, tee.Level())
	require.Equal(t, zapcore.InvalidLevel, xLogMultiCore{}.Level())
	require.NoError(t, tee.With([]zap.Field{zap.String("tree", "a")}).Write(
		zapcore.Entry{Level: zapcore.WarnLevel, Message: "with"}, nil,
	))

	ce := tee.Check(zapcore.Entry{Level: zapcore.InfoLevel, Message: "tee"}, nil)
	require.NotNil(t, ce)
	ce.Write(zap.Int("n", 2))
	require.NoError(t, tee.Sync())
	require.Contains(t, buf1.String(), "tee")
	require.Contains(t, buf2.String(), "tee")
	require.Contains(t, buf1.String(), `"tree"`)
}

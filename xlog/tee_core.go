package xlog

import (
	"context"

	"go.uber.org/multierr"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

var _ xLogCore = (xLogMultiCore)(nil)

// xLogMultiCore fans every entry out to all of its cores. It carries no
// encoder or writer of its own.
type xLogMultiCore []xLogCore

func (mc xLogMultiCore) context() context.Context           { return nil }
func (mc xLogMultiCore) levelEncoder() zapcore.LevelEncoder { return nil }
func (mc xLogMultiCore) timeEncoder() zapcore.TimeEncoder   { return nil }
func (mc xLogMultiCore) writeSyncer() zapcore.WriteSyncer   { return nil }
func (mc xLogMultiCore) outEncoder() func(cfg zapcore.EncoderConfig) zapcore.Encoder {
	return nil
}

// each runs fn over all cores and merges their errors.
func (mc xLogMultiCore) each(fn func(core xLogCore) error) error {
	var merr error
	for _, core := range mc {
		merr = multierr.Append(merr, fn(core))
	}
	return merr
}

func (mc xLogMultiCore) With(fields []zap.Field) zapcore.Core {
	withs := make([]zapcore.Core, 0, len(mc))
	for _, core := range mc {
		withs = append(withs, core.With(fields))
	}
	return zapcore.NewTee(withs...)
}

// Level is the lowest level any core accepts.
func (mc xLogMultiCore) Level() zapcore.Level {
	lowest := zapcore.InvalidLevel
	for _, core := range mc {
		if lvl := zapcore.LevelOf(core); lowest == zapcore.InvalidLevel || lvl < lowest {
			lowest = lvl
		}
	}
	return lowest
}

func (mc xLogMultiCore) Enabled(lvl zapcore.Level) bool {
	for _, core := range mc {
		if core.Enabled(lvl) {
			return true
		}
	}
	return false
}

func (mc xLogMultiCore) Check(ent zapcore.Entry, ce *zapcore.CheckedEntry) *zapcore.CheckedEntry {
	for _, core := range mc {
		ce = core.Check(ent, ce)
	}
	return ce
}

func (mc xLogMultiCore) Write(ent zapcore.Entry, fields []zap.Field) error {
	return mc.each(func(core xLogCore) error {
		return core.Write(ent, fields)
	})
}

func (mc xLogMultiCore) Sync() error {
	return mc.each(func(core xLogCore) error {
		return core.Sync()
	})
}

func XLogTeeCore(cores ...xLogCore) xLogCore {
	return xLogMultiCore(cores)
}

// Package log15adapter provides a logger that writes to a github.com/inconshreveable/log15.Logger
// log.
package log15adapter

import (
	"context"
	"sort"

	"github.com/rangekit/pgrange/tracelog"
)

// Log15Logger interface defines the subset of
// github.com/inconshreveable/log15.Logger that this adapter uses.
type Log15Logger interface {
	Debug(msg string, ctx ...any)
	Info(msg string, ctx ...any)
	Warn(msg string, ctx ...any)
	Error(msg string, ctx ...any)
	Crit(msg string, ctx ...any)
}

type Logger struct {
	l Log15Logger
}

func NewLogger(l Log15Logger) *Logger {
	return &Logger{l: l}
}

// Log passes data to log15 as context pairs sorted by key. log15 has no trace level, so trace is logged as debug
// with a PGRANGE_LOG_LEVEL pair.
func (l *Logger) Log(ctx context.Context, level tracelog.LogLevel, msg string, data map[string]any) {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	logArgs := make([]any, 0, len(data)*2+2)
	for _, k := range keys {
		logArgs = append(logArgs, k, data[k])
	}

	switch level {
	case tracelog.LogLevelTrace:
		l.l.Debug(msg, append(logArgs, "PGRANGE_LOG_LEVEL", level)...)
	case tracelog.LogLevelDebug:
		l.l.Debug(msg, logArgs...)
	case tracelog.LogLevelInfo:
		l.l.Info(msg, logArgs...)
	case tracelog.LogLevelWarn:
		l.l.Warn(msg, logArgs...)
	case tracelog.LogLevelError:
		l.l.Error(msg, logArgs...)
	default:
		l.l.Error(msg, append(logArgs, "INVALID_PGRANGE_LOG_LEVEL", level)...)
	}
}

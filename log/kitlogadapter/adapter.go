// Package kitlogadapter provides a logger that writes to a github.com/go-kit/log.Logger.
package kitlogadapter

import (
	"context"
	"sort"

	"github.com/go-kit/log"
	kitlevel "github.com/go-kit/log/level"
	"github.com/rangekit/pgrange/tracelog"
)

type Logger struct {
	l log.Logger
}

func NewLogger(l log.Logger) *Logger {
	return &Logger{l: l}
}

// Log writes the data fields sorted by key, followed by the message. Trace has no go-kit level and is written with
// a PGRANGE_LOG_LEVEL field instead.
func (l *Logger) Log(ctx context.Context, level tracelog.LogLevel, msg string, data map[string]any) {
	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	keyvals := make([]any, 0, 2*len(data)+4)
	for _, k := range keys {
		keyvals = append(keyvals, k, data[k])
	}

	switch level {
	case tracelog.LogLevelTrace:
		l.l.Log(append([]any{"PGRANGE_LOG_LEVEL", level}, append(keyvals, "msg", msg)...)...)
	case tracelog.LogLevelDebug:
		kitlevel.Debug(l.l).Log(append(keyvals, "msg", msg)...)
	case tracelog.LogLevelInfo:
		kitlevel.Info(l.l).Log(append(keyvals, "msg", msg)...)
	case tracelog.LogLevelWarn:
		kitlevel.Warn(l.l).Log(append(keyvals, "msg", msg)...)
	case tracelog.LogLevelError:
		kitlevel.Error(l.l).Log(append(keyvals, "msg", msg)...)
	default:
		l.l.Log(append([]any{"INVALID_PGRANGE_LOG_LEVEL", level}, append(keyvals, "error", msg)...)...)
	}
}

// Package testingadapter provides a logger that writes to a test or benchmark
// log.
package testingadapter

import (
	"context"
	"fmt"
	"sort"

	"github.com/rangekit/pgrange/tracelog"
)

// TestingLogger interface defines the subset of testing.TB methods used by this
// adapter.
type TestingLogger interface {
	Log(args ...any)
}

type Logger struct {
	l TestingLogger
}

func NewLogger(l TestingLogger) *Logger {
	return &Logger{l: l}
}

// Log writes the level, the message and the data fields sorted by key. When the logger is a testing.TB the line is
// attributed to the caller of Log rather than to this package.
func (l *Logger) Log(ctx context.Context, level tracelog.LogLevel, msg string, data map[string]any) {
	if h, ok := l.l.(interface{ Helper() }); ok {
		h.Helper()
	}

	keys := make([]string, 0, len(data))
	for k := range data {
		keys = append(keys, k)
	}
	sort.Strings(keys)

	logArgs := make([]any, 0, 2+len(data))
	logArgs = append(logArgs, level, msg)
	for _, k := range keys {
		logArgs = append(logArgs, fmt.Sprintf("%s=%v", k, data[k]))
	}
	l.l.Log(logArgs...)
}

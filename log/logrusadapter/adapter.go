// Package logrusadapter provides a logger that writes to a github.com/sirupsen/logrus.Logger
// log.
package logrusadapter

import (
	"context"

	"github.com/rangekit/pgrange/tracelog"
	"github.com/sirupsen/logrus"
)

type Logger struct {
	l        logrus.FieldLogger
	withFunc func(context.Context, logrus.FieldLogger) logrus.FieldLogger
}

type option func(logger *Logger)

// WithContextFunc adds fields taken from the context.Context, such as a request id, before each line is logged.
func WithContextFunc(withFunc func(context.Context, logrus.FieldLogger) logrus.FieldLogger) option {
	return func(logger *Logger) {
		logger.withFunc = withFunc
	}
}

// NewLogger accepts a *logrus.Logger or *logrus.Entry.
func NewLogger(l logrus.FieldLogger, options ...option) *Logger {
	logger := &Logger{l: l}
	for _, opt := range options {
		opt(logger)
	}
	return logger
}

// traceLogger is implemented by *logrus.Logger and *logrus.Entry but is not part of logrus.FieldLogger.
type traceLogger interface {
	Trace(args ...any)
}

func (l *Logger) Log(ctx context.Context, level tracelog.LogLevel, msg string, data map[string]any) {
	logger := l.l
	if l.withFunc != nil {
		logger = l.withFunc(ctx, logger)
	}
	if data != nil {
		logger = logger.WithFields(data)
	}

	switch level {
	case tracelog.LogLevelTrace:
		logger = logger.WithField("PGRANGE_LOG_LEVEL", level)
		if tl, ok := logger.(traceLogger); ok {
			tl.Trace(msg)
		} else {
			logger.Debug(msg)
		}
	case tracelog.LogLevelDebug:
		logger.Debug(msg)
	case tracelog.LogLevelInfo:
		logger.Info(msg)
	case tracelog.LogLevelWarn:
		logger.Warn(msg)
	case tracelog.LogLevelError:
		logger.Error(msg)
	default:
		logger.WithField("INVALID_PGRANGE_LOG_LEVEL", level).Error(msg)
	}
}

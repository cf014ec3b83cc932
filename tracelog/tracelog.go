// Package tracelog provides a tracer that acts as a traditional logger.
package tracelog

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"
	"unicode/utf8"

	"github.com/rangekit/pgrange/pgwire"
	"github.com/rangekit/pgrange/rangeop"
)

// LogLevel represents the pgrange logging level. See LogLevel* constants for
// possible values.
type LogLevel int

// The values for log levels are chosen such that the zero value means that no
// log level was specified.
const (
	LogLevelTrace = LogLevel(6)
	LogLevelDebug = LogLevel(5)
	LogLevelInfo  = LogLevel(4)
	LogLevelWarn  = LogLevel(3)
	LogLevelError = LogLevel(2)
	LogLevelNone  = LogLevel(1)
)

func (ll LogLevel) String() string {
	switch ll {
	case LogLevelTrace:
		return "trace"
	case LogLevelDebug:
		return "debug"
	case LogLevelInfo:
		return "info"
	case LogLevelWarn:
		return "warn"
	case LogLevelError:
		return "error"
	case LogLevelNone:
		return "none"
	default:
		return fmt.Sprintf("invalid level %d", ll)
	}
}

// Logger is the interface used to get log output from pgrange.
type Logger interface {
	// Log a message at the given level with data key/value pairs. data may be nil.
	Log(ctx context.Context, level LogLevel, msg string, data map[string]any)
}

// LoggerFunc is a wrapper around a function to satisfy the Logger interface
type LoggerFunc func(ctx context.Context, level LogLevel, msg string, data map[string]any)

// Log delegates the logging request to the wrapped function
func (f LoggerFunc) Log(ctx context.Context, level LogLevel, msg string, data map[string]any) {
	f(ctx, level, msg, data)
}

// LogLevelFromString converts log level string to constant
//
// Valid levels:
//
//	trace
//	debug
//	info
//	warn
//	error
//	none
func LogLevelFromString(s string) (LogLevel, error) {
	switch s {
	case "trace":
		return LogLevelTrace, nil
	case "debug":
		return LogLevelDebug, nil
	case "info":
		return LogLevelInfo, nil
	case "warn":
		return LogLevelWarn, nil
	case "error":
		return LogLevelError, nil
	case "none":
		return LogLevelNone, nil
	default:
		return 0, errors.New("invalid log level")
	}
}

// truncate shortens long range texts, such as ranges over long strings, to 64 bytes on a rune boundary.
func truncate(s string) string {
	if len(s) <= 64 {
		return s
	}
	l := 0
	for w := 0; l < 64; l += w {
		_, w = utf8.DecodeRuneInString(s[l:])
	}
	if len(s) > l {
		return fmt.Sprintf("%s (truncated %d bytes)", s[:l], len(s)-l)
	}
	return s
}

// TraceLogConfig holds the configuration for key names
type TraceLogConfig struct {
	TimeKey string
}

// DefaultTraceLogConfig returns the default configuration for TraceLog
func DefaultTraceLogConfig() *TraceLogConfig {
	return &TraceLogConfig{
		TimeKey: "time",
	}
}

// TraceLog implements rangeop.Tracer and pgwire.DecodeTracer. Logger and LogLevel are required. Config will be
// automatically initialized on the first use if nil.
type TraceLog struct {
	Logger   Logger
	LogLevel LogLevel

	Config           *TraceLogConfig
	ensureConfigOnce sync.Once
}

// ensureConfig initializes the Config field with default values if it is nil.
func (tl *TraceLog) ensureConfig() {
	tl.ensureConfigOnce.Do(
		func() {
			if tl.Config == nil {
				tl.Config = DefaultTraceLogConfig()
			}
		},
	)
}

type ctxKey int

const (
	_ ctxKey = iota
	tracelogApplyCtxKey
	tracelogDecodeCtxKey
)

type traceApplyData struct {
	startTime time.Time
	op        rangeop.Operator
	left      string
	right     string
}

func (tl *TraceLog) TraceApplyStart(ctx context.Context, data rangeop.TraceApplyStartData) context.Context {
	return context.WithValue(ctx, tracelogApplyCtxKey, &traceApplyData{
		startTime: time.Now(),
		op:        data.Op,
		left:      data.Left,
		right:     data.Right,
	})
}

func (tl *TraceLog) TraceApplyEnd(ctx context.Context, data rangeop.TraceApplyEndData) {
	tl.ensureConfig()
	applyData, ok := ctx.Value(tracelogApplyCtxKey).(*traceApplyData)
	if !ok {
		return
	}

	endTime := time.Now()
	interval := endTime.Sub(applyData.startTime)

	fields := map[string]any{
		"op":              applyData.op.String(),
		"left":            truncate(applyData.left),
		"right":           truncate(applyData.right),
		tl.Config.TimeKey: interval,
	}

	if data.Err != nil {
		if tl.shouldLog(LogLevelError) {
			fields["err"] = data.Err
			tl.log(ctx, LogLevelError, "Apply", fields)
		}
		return
	}

	if tl.shouldLog(LogLevelInfo) {
		fields["result"] = truncate(data.Result)
		tl.log(ctx, LogLevelInfo, "Apply", fields)
	}
}

type traceDecodeData struct {
	startTime time.Time
	typeName  string
	oid       uint32
	format    int16
}

func (tl *TraceLog) TraceDecodeStart(ctx context.Context, data pgwire.TraceDecodeStartData) context.Context {
	return context.WithValue(ctx, tracelogDecodeCtxKey, &traceDecodeData{
		startTime: time.Now(),
		typeName:  data.TypeName,
		oid:       data.OID,
		format:    data.Format,
	})
}

func (tl *TraceLog) TraceDecodeEnd(ctx context.Context, data pgwire.TraceDecodeEndData) {
	tl.ensureConfig()
	decodeData, ok := ctx.Value(tracelogDecodeCtxKey).(*traceDecodeData)
	if !ok {
		return
	}

	endTime := time.Now()
	interval := endTime.Sub(decodeData.startTime)

	fields := map[string]any{
		"type":            decodeData.typeName,
		"oid":             decodeData.oid,
		"format":          decodeData.format,
		tl.Config.TimeKey: interval,
	}

	if data.Err != nil {
		if tl.shouldLog(LogLevelError) {
			fields["err"] = data.Err
			tl.log(ctx, LogLevelError, "Decode", fields)
		}
		return
	}

	if tl.shouldLog(LogLevelDebug) {
		fields["value"] = truncate(data.Value)
		tl.log(ctx, LogLevelDebug, "Decode", fields)
	}
}

func (tl *TraceLog) shouldLog(lvl LogLevel) bool {
	return tl.LogLevel >= lvl
}

func (tl *TraceLog) log(ctx context.Context, lvl LogLevel, msg string, data map[string]any) {
	if data == nil {
		data = map[string]any{}
	}

	tl.Logger.Log(ctx, lvl, msg, data)
}

package tracelog_test

import (
	"bytes"
	"context"
	"log"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/rangekit/pgrange"
	"github.com/rangekit/pgrange/pgtype"
	"github.com/rangekit/pgrange/pgwire"
	"github.com/rangekit/pgrange/rangeop"
	"github.com/rangekit/pgrange/tracelog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type testLog struct {
	lvl  tracelog.LogLevel
	msg  string
	data map[string]any
}

type testLogger struct {
	logs []testLog

	mux sync.Mutex
}

type ctxDataKey struct{}

func (l *testLogger) Log(ctx context.Context, level tracelog.LogLevel, msg string, data map[string]any) {
	l.mux.Lock()
	defer l.mux.Unlock()

	data["ctxdata"] = ctx.Value(ctxDataKey{})
	l.logs = append(l.logs, testLog{lvl: level, msg: msg, data: data})
}

func (l *testLogger) Clear() {
	l.mux.Lock()
	defer l.mux.Unlock()

	l.logs = l.logs[0:0]
}

func (l *testLogger) FilterByMsg(msg string) (res []testLog) {
	l.mux.Lock()
	defer l.mux.Unlock()

	for _, log := range l.logs {
		if log.msg == msg {
			res = append(res, log)
		}
	}

	return res
}

func mustParse(t testing.TB, s string) pgrange.Range[int32] {
	t.Helper()
	r, err := pgrange.Parse[int32](pgrange.Int4, s)
	require.NoError(t, err)
	return r
}

func TestLogLevel(t *testing.T) {
	t.Parallel()

	for _, s := range []string{"trace", "debug", "info", "warn", "error", "none"} {
		ll, err := tracelog.LogLevelFromString(s)
		require.NoError(t, err)
		assert.Equal(t, s, ll.String())
	}

	_, err := tracelog.LogLevelFromString("loud")
	assert.Error(t, err)
	assert.Equal(t, "invalid level 0", tracelog.LogLevel(0).String())
}

func TestContextGetsPassedToLogMethod(t *testing.T) {
	t.Parallel()

	logger := &testLogger{}
	ev := &rangeop.Evaluator{Tracer: &tracelog.TraceLog{
		Logger:   logger,
		LogLevel: tracelog.LogLevelTrace,
	}}

	ctx := context.WithValue(context.Background(), ctxDataKey{}, "foo")
	_, err := rangeop.Evaluate(ctx, ev, rangeop.Overlaps, mustParse(t, "[1,5)"), mustParse(t, "[3,8)"))
	require.NoError(t, err)
	require.Len(t, logger.logs, 1)
	require.Equal(t, "foo", logger.logs[0].data["ctxdata"])
}

func TestLoggerFunc(t *testing.T) {
	t.Parallel()

	const testMsg = "foo"

	buf := bytes.Buffer{}
	logger := log.New(&buf, "", 0)

	createAdapterFn := func(logger *log.Logger) tracelog.LoggerFunc {
		return func(ctx context.Context, level tracelog.LogLevel, msg string, data map[string]interface{}) {
			logger.Printf("%s", testMsg)
		}
	}

	ev := &rangeop.Evaluator{Tracer: &tracelog.TraceLog{
		Logger:   createAdapterFn(logger),
		LogLevel: tracelog.LogLevelTrace,
	}}

	if _, err := rangeop.Evaluate(context.TODO(), ev, rangeop.Contains, mustParse(t, "[1,5)"), mustParse(t, "[2,3)")); err != nil {
		t.Fatal(err)
	}

	if strings.TrimSpace(buf.String()) != testMsg {
		t.Errorf("Expected logger function to return '%s', but it was '%s'", testMsg, buf.String())
	}
}

func TestLogApply(t *testing.T) {
	t.Parallel()

	logger := &testLogger{}
	ev := &rangeop.Evaluator{Tracer: &tracelog.TraceLog{
		Logger:   logger,
		LogLevel: tracelog.LogLevelTrace,
	}}
	ctx := context.Background()

	_, err := rangeop.Evaluate(ctx, ev, rangeop.Union, mustParse(t, "[1,5)"), mustParse(t, "[5,10)"))
	require.NoError(t, err)

	logs := logger.FilterByMsg("Apply")
	require.Len(t, logs, 1)
	require.Equal(t, tracelog.LogLevelInfo, logs[0].lvl)
	require.Equal(t, "+", logs[0].data["op"])
	require.Equal(t, "[1,5)", logs[0].data["left"])
	require.Equal(t, "[5,10)", logs[0].data["right"])
	require.Equal(t, "[1,10)", logs[0].data["result"])
	require.IsType(t, time.Duration(0), logs[0].data["time"])

	logger.Clear()

	_, err = rangeop.Evaluate(ctx, ev, rangeop.Difference, mustParse(t, "[1,10)"), mustParse(t, "[3,5)"))
	require.Error(t, err)

	logs = logger.FilterByMsg("Apply")
	require.Len(t, logs, 1)
	require.Equal(t, tracelog.LogLevelError, logs[0].lvl)
	require.Equal(t, err, logs[0].data["err"])
}

func TestLogLevelFiltering(t *testing.T) {
	t.Parallel()

	logger := &testLogger{}
	ev := &rangeop.Evaluator{Tracer: &tracelog.TraceLog{
		Logger:   logger,
		LogLevel: tracelog.LogLevelError,
	}}
	ctx := context.Background()

	_, err := rangeop.Evaluate(ctx, ev, rangeop.Union, mustParse(t, "[1,5)"), mustParse(t, "[5,10)"))
	require.NoError(t, err)
	require.Empty(t, logger.logs)

	_, err = rangeop.Evaluate(ctx, ev, rangeop.Union, mustParse(t, "[1,5)"), mustParse(t, "[6,10)"))
	require.Error(t, err)
	require.Len(t, logger.logs, 1)
}

func TestCustomTimeKey(t *testing.T) {
	t.Parallel()

	logger := &testLogger{}
	ev := &rangeop.Evaluator{Tracer: &tracelog.TraceLog{
		Logger:   logger,
		LogLevel: tracelog.LogLevelInfo,
		Config:   &tracelog.TraceLogConfig{TimeKey: "elapsed"},
	}}

	_, err := rangeop.Evaluate(context.Background(), ev, rangeop.Intersection, mustParse(t, "[1,5)"), mustParse(t, "[3,10)"))
	require.NoError(t, err)
	require.Len(t, logger.logs, 1)
	require.Contains(t, logger.logs[0].data, "elapsed")
	require.NotContains(t, logger.logs[0].data, "time")
}

func TestLogApplyTruncatesUTF8(t *testing.T) {
	t.Parallel()

	logger := &testLogger{}
	tracer := &tracelog.TraceLog{
		Logger:   logger,
		LogLevel: tracelog.LogLevelTrace,
	}

	var s string
	for i := 0; i < 63; i++ {
		s += "0"
	}
	s += "😊"

	ctx := tracer.TraceApplyStart(context.Background(), rangeop.TraceApplyStartData{Op: rangeop.Contains, Left: s, Right: s + "000"})
	tracer.TraceApplyEnd(ctx, rangeop.TraceApplyEndData{Result: "true"})

	logs := logger.FilterByMsg("Apply")
	require.Len(t, logs, 1)
	require.Equal(t, s, logs[0].data["left"])
	require.Equal(t, s+" (truncated 3 bytes)", logs[0].data["right"])
}

func TestLogDecode(t *testing.T) {
	t.Parallel()

	logger := &testLogger{}
	dec := &pgwire.Decoder{
		Map: pgtype.NewMap(),
		Tracer: &tracelog.TraceLog{
			Logger:   logger,
			LogLevel: tracelog.LogLevelDebug,
		},
	}

	ctx := context.Background()
	_, err := dec.Decode(ctx, pgtype.Int4rangeOID, pgrange.TextFormatCode, []byte("[1,5)"))
	require.NoError(t, err)

	logs := logger.FilterByMsg("Decode")
	require.Len(t, logs, 1)
	require.Equal(t, tracelog.LogLevelDebug, logs[0].lvl)
	require.Equal(t, "int4range", logs[0].data["type"])
	require.Equal(t, "[1,5)", logs[0].data["value"])

	logger.Clear()

	_, err = dec.Decode(ctx, pgtype.Int4rangeOID, pgrange.TextFormatCode, []byte("[1,5"))
	require.Error(t, err)

	logs = logger.FilterByMsg("Decode")
	require.Len(t, logs, 1)
	require.Equal(t, tracelog.LogLevelError, logs[0].lvl)
	require.Equal(t, err, logs[0].data["err"])
}

func TestTraceEndWithoutStart(t *testing.T) {
	t.Parallel()

	logger := &testLogger{}
	tracer := &tracelog.TraceLog{Logger: logger, LogLevel: tracelog.LogLevelTrace}
	tracer.TraceApplyEnd(context.Background(), rangeop.TraceApplyEndData{Result: "true"})
	tracer.TraceDecodeEnd(context.Background(), pgwire.TraceDecodeEndData{Value: "x"})
	assert.Empty(t, logger.logs)
}

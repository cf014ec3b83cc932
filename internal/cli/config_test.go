package cli

import (
	"bytes"
	"context"
	"testing"

	"github.com/rangekit/pgrange"
	"github.com/rangekit/pgrange/rangeop"
	"github.com/rangekit/pgrange/tracelog"
	"github.com/spf13/pflag"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newFlags(t *testing.T, args ...string) *pflag.FlagSet {
	flags := pflag.NewFlagSet("test", pflag.ContinueOnError)
	addConfigFlags(flags)
	require.NoError(t, flags.Parse(args))
	return flags
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := loadConfig(newFlags(t))
	require.NoError(t, err)
	assert.Equal(t, tracelog.LogLevelNone, cfg.LogLevel)
	assert.Equal(t, "console", cfg.LogFormat)
	assert.Equal(t, "shopspring", cfg.Numeric)
	assert.Equal(t, "", cfg.ServerVersion)
}

func TestLoadConfigPrecedence(t *testing.T) {
	t.Setenv(envLogLevel, "debug")
	t.Setenv(envNumeric, "apd")

	cfg, err := loadConfig(newFlags(t))
	require.NoError(t, err)
	assert.Equal(t, tracelog.LogLevelDebug, cfg.LogLevel)
	assert.Equal(t, "apd", cfg.Numeric)

	cfg, err = loadConfig(newFlags(t, "--log-level", "warn", "--numeric", "shopspring"))
	require.NoError(t, err)
	assert.Equal(t, tracelog.LogLevelWarn, cfg.LogLevel)
	assert.Equal(t, "shopspring", cfg.Numeric)
}

func TestLoadConfigInvalid(t *testing.T) {
	tests := []struct {
		args []string
		msg  string
	}{
		{args: []string{"--log-level", "loud"}, msg: `invalid log level: "loud"`},
		{args: []string{"--log-format", "xml"}, msg: `invalid log format "xml"`},
		{args: []string{"--numeric", "float"}, msg: `invalid numeric implementation "float"`},
	}

	for _, tt := range tests {
		_, err := loadConfig(newFlags(t, tt.args...))
		assert.EqualError(t, err, tt.msg, "%v", tt.args)
	}
}

func TestConfigNewMap(t *testing.T) {
	for _, impl := range []string{"shopspring", "apd"} {
		cfg := &Config{Numeric: impl}
		m := cfg.newMap()

		v, err := m.Parse("numrange", "[1.5,3)")
		require.NoError(t, err, impl)
		assert.Equal(t, "[1.5,3)", v.String(), impl)
	}
}

func TestConfigTraceLog(t *testing.T) {
	cfg := &Config{LogLevel: tracelog.LogLevelNone}
	assert.Nil(t, cfg.traceLog(&bytes.Buffer{}))

	buf := &bytes.Buffer{}
	cfg = &Config{LogLevel: tracelog.LogLevelInfo, LogFormat: "json"}
	tl := cfg.traceLog(buf)
	require.NotNil(t, tl)

	a, err := pgrange.Parse[int32](pgrange.Int4, "[1,5)")
	require.NoError(t, err)
	b, err := pgrange.Parse[int32](pgrange.Int4, "[3,8)")
	require.NoError(t, err)

	_, err = rangeop.Evaluate(context.Background(), &rangeop.Evaluator{Tracer: tl}, rangeop.Intersection, a, b)
	require.NoError(t, err)

	out := buf.String()
	assert.Contains(t, out, `"level":"info"`)
	assert.Contains(t, out, `"result":"[3,5)"`)
	assert.Contains(t, out, `"module":"pgrange"`)
}

func TestStatsTracer(t *testing.T) {
	st := &statsTracer{}
	ctx := context.Background()

	a, err := pgrange.Parse[int32](pgrange.Int4, "[1,5)")
	require.NoError(t, err)
	b, err := pgrange.Parse[int32](pgrange.Int4, "[7,9)")
	require.NoError(t, err)

	ev := &rangeop.Evaluator{Tracer: st}
	_, err = rangeop.Evaluate(ctx, ev, rangeop.Overlaps, a, b)
	require.NoError(t, err)
	_, err = rangeop.Evaluate(ctx, ev, rangeop.Union, a, b)
	require.Error(t, err)

	buf := &bytes.Buffer{}
	st.write(buf)
	assert.Equal(t, "decoded 0, applied 2, failed 1\n", buf.String())
}

package kitlogadapter_test

import (
	"bytes"
	"context"
	"testing"

	"github.com/go-kit/log"
	"github.com/rangekit/pgrange/log/kitlogadapter"
	"github.com/rangekit/pgrange/tracelog"
	"github.com/stretchr/testify/assert"
)

func TestLogger(t *testing.T) {
	tests := []struct {
		level tracelog.LogLevel
		msg   string
		data  map[string]any
		want  string
	}{
		{tracelog.LogLevelInfo, "Apply", map[string]any{"op": "&&"}, "level=info op=&& msg=Apply\n"},
		{
			tracelog.LogLevelInfo,
			"Apply",
			map[string]any{"right": "[3,8)", "op": "*", "left": "[1,5)", "result": "[3,5)"},
			"level=info left=[1,5) op=* result=[3,5) right=[3,8) msg=Apply\n",
		},
		{tracelog.LogLevelDebug, "Apply", nil, "level=debug msg=Apply\n"},
		{tracelog.LogLevelWarn, "Apply", nil, "level=warn msg=Apply\n"},
		{tracelog.LogLevelError, "Apply", map[string]any{"err": "boom"}, "level=error err=boom msg=Apply\n"},
		{tracelog.LogLevelTrace, "Apply", nil, "PGRANGE_LOG_LEVEL=trace msg=Apply\n"},
		{tracelog.LogLevelTrace, "Decode", map[string]any{"type": "int4range"}, "PGRANGE_LOG_LEVEL=trace type=int4range msg=Decode\n"},
		{tracelog.LogLevel(9), "Apply", nil, "INVALID_PGRANGE_LOG_LEVEL=\"invalid level 9\" error=Apply\n"},
	}

	for i, tt := range tests {
		var buf bytes.Buffer
		logger := kitlogadapter.NewLogger(log.NewLogfmtLogger(&buf))
		logger.Log(context.Background(), tt.level, tt.msg, tt.data)
		assert.Equalf(t, tt.want, buf.String(), "%d", i)
	}
}

package cli

import (
	"context"
	"fmt"
	"io"
	"sync/atomic"

	"github.com/rangekit/pgrange/pgwire"
	"github.com/rangekit/pgrange/rangeop"
)

// statsTracer counts traced operations for --stats.
type statsTracer struct {
	applies  atomic.Int64
	decodes  atomic.Int64
	failures atomic.Int64
}

func (st *statsTracer) TraceApplyStart(ctx context.Context, data rangeop.TraceApplyStartData) context.Context {
	st.applies.Add(1)
	return ctx
}

func (st *statsTracer) TraceApplyEnd(ctx context.Context, data rangeop.TraceApplyEndData) {
	if data.Err != nil {
		st.failures.Add(1)
	}
}

func (st *statsTracer) TraceDecodeStart(ctx context.Context, data pgwire.TraceDecodeStartData) context.Context {
	st.decodes.Add(1)
	return ctx
}

func (st *statsTracer) TraceDecodeEnd(ctx context.Context, data pgwire.TraceDecodeEndData) {
	if data.Err != nil {
		st.failures.Add(1)
	}
}

func (st *statsTracer) write(w io.Writer) {
	fmt.Fprintf(w, "decoded %d, applied %d, failed %d\n", st.decodes.Load(), st.applies.Load(), st.failures.Load())
}

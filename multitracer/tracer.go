// Package multitracer provides a Tracer that can combine several tracers into one.
package multitracer

import (
	"context"

	"github.com/rangekit/pgrange/pgwire"
	"github.com/rangekit/pgrange/rangeop"
)

// Tracer can combine several tracers into one.
// You can use New to automatically split tracers by interface.
type Tracer struct {
	ApplyTracers  []rangeop.Tracer
	DecodeTracers []pgwire.DecodeTracer
}

// New returns new Tracer from tracers with automatically split tracers by interface.
func New(tracers ...rangeop.Tracer) *Tracer {
	var t Tracer

	for i := range tracers {
		t.ApplyTracers = append(t.ApplyTracers, tracers[i])

		if decodeTracer, ok := tracers[i].(pgwire.DecodeTracer); ok {
			t.DecodeTracers = append(t.DecodeTracers, decodeTracer)
		}
	}

	return &t
}

func (t *Tracer) TraceApplyStart(ctx context.Context, data rangeop.TraceApplyStartData) context.Context {
	for i := range t.ApplyTracers {
		ctx = t.ApplyTracers[i].TraceApplyStart(ctx, data)
	}

	return ctx
}

func (t *Tracer) TraceApplyEnd(ctx context.Context, data rangeop.TraceApplyEndData) {
	for i := range t.ApplyTracers {
		t.ApplyTracers[i].TraceApplyEnd(ctx, data)
	}
}

func (t *Tracer) TraceDecodeStart(ctx context.Context, data pgwire.TraceDecodeStartData) context.Context {
	for i := range t.DecodeTracers {
		ctx = t.DecodeTracers[i].TraceDecodeStart(ctx, data)
	}

	return ctx
}

func (t *Tracer) TraceDecodeEnd(ctx context.Context, data pgwire.TraceDecodeEndData) {
	for i := range t.DecodeTracers {
		t.DecodeTracers[i].TraceDecodeEnd(ctx, data)
	}
}

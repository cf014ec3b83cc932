package rangeop

import "context"

// Tracer traces operator applications made through an Evaluator.
type Tracer interface {
	// TraceApplyStart is called before an operator is applied. The returned context is passed to TraceApplyEnd.
	TraceApplyStart(ctx context.Context, data TraceApplyStartData) context.Context

	TraceApplyEnd(ctx context.Context, data TraceApplyEndData)
}

type TraceApplyStartData struct {
	Op    Operator
	Left  string
	Right string
}

type TraceApplyEndData struct {
	Result string
	Err    error
}

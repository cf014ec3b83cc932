package rangeop

import (
	"context"
	"fmt"
	"strconv"

	"github.com/rangekit/pgrange"
)

// Result is the outcome of applying an Operator. Predicates set Bool; combining operators set Range.
type Result[T any] struct {
	Op    Operator
	Bool  bool
	Range pgrange.Range[T]
}

// String returns "true" or "false" for predicates and the text form of Range otherwise.
func (r Result[T]) String() string {
	if r.Op.IsPredicate() {
		return strconv.FormatBool(r.Bool)
	}
	return r.Range.String()
}

// Apply evaluates a op b.
func Apply[T any](op Operator, a, b pgrange.Range[T]) (Result[T], error) {
	res := Result[T]{Op: op}

	switch op {
	case Contains:
		res.Bool = a.ContainsRange(b)
	case ContainedBy:
		res.Bool = a.ContainedBy(b)
	case Overlaps:
		res.Bool = a.Overlaps(b)
	case StrictlyLeftOf:
		res.Bool = a.StrictlyLeftOf(b)
	case StrictlyRightOf:
		res.Bool = a.StrictlyRightOf(b)
	case NotExtendRightOf:
		res.Bool = a.NotExtendRightOf(b)
	case NotExtendLeftOf:
		res.Bool = a.NotExtendLeftOf(b)
	case AdjacentTo:
		res.Bool = a.AdjacentTo(b)
	case Union:
		r, err := a.Union(b)
		if err != nil {
			return Result[T]{}, err
		}
		res.Range = r
	case Difference:
		r, err := a.Difference(b)
		if err != nil {
			return Result[T]{}, err
		}
		res.Range = r
	case Intersection:
		res.Range = a.Intersection(b)
	default:
		return Result[T]{}, fmt.Errorf("unknown range operator %v", op)
	}

	return res, nil
}

// ApplyElement evaluates a op v for an element v. Only Contains accepts an element operand.
func ApplyElement[T any](op Operator, a pgrange.Range[T], v T) (Result[T], error) {
	if op != Contains {
		return Result[T]{}, fmt.Errorf("operator %v does not accept an element operand", op)
	}
	return Result[T]{Op: op, Bool: a.Contains(v)}, nil
}

// Evaluator applies operators and reports each application to Tracer. The zero value is ready to use and traces
// nothing.
type Evaluator struct {
	Tracer Tracer
}

// Evaluate is Apply with tracing through ev. ev may be nil.
func Evaluate[T any](ctx context.Context, ev *Evaluator, op Operator, a, b pgrange.Range[T]) (Result[T], error) {
	if ev == nil || ev.Tracer == nil {
		return Apply(op, a, b)
	}

	ctx = ev.Tracer.TraceApplyStart(ctx, TraceApplyStartData{Op: op, Left: a.String(), Right: b.String()})
	res, err := Apply(op, a, b)
	ev.Tracer.TraceApplyEnd(ctx, traceApplyEndData(res, err))
	return res, err
}

// EvaluateElement is ApplyElement with tracing through ev. ev may be nil.
func EvaluateElement[T any](ctx context.Context, ev *Evaluator, op Operator, a pgrange.Range[T], v T) (Result[T], error) {
	if ev == nil || ev.Tracer == nil {
		return ApplyElement(op, a, v)
	}

	right := ""
	if dom := a.Domain(); dom != nil {
		right = dom.FormatValue(v)
	}

	ctx = ev.Tracer.TraceApplyStart(ctx, TraceApplyStartData{Op: op, Left: a.String(), Right: right})
	res, err := ApplyElement(op, a, v)
	ev.Tracer.TraceApplyEnd(ctx, traceApplyEndData(res, err))
	return res, err
}

func traceApplyEndData[T any](res Result[T], err error) TraceApplyEndData {
	if err != nil {
		return TraceApplyEndData{Err: err}
	}
	return TraceApplyEndData{Result: res.String()}
}

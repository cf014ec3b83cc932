package pgtype

import (
	"context"
	"fmt"
	"strconv"

	"github.com/rangekit/pgrange"
	"github.com/rangekit/pgrange/rangeop"
)

// Codec decodes the wire formats of one range type into a Value.
type Codec interface {
	// DecodeValue decodes src in the given format code. src must not be nil. Ranges over discrete domains are
	// returned in the canonical [) form PostgreSQL stores them in.
	DecodeValue(format int16, src []byte) (Value, error)

	// ValueOf wraps a pgrange.Range of the codec's element type. It returns false if r has another element type.
	ValueOf(r any) (Value, bool)
}

// Value is a range of any registered type. Two Values can only be combined when they were produced by codecs with
// the same element type.
type Value interface {
	String() string
	IsEmpty() bool

	// Encode appends the range in the given format code to buf.
	Encode(format int16, buf []byte) ([]byte, error)

	// Range returns the underlying pgrange.Range.
	Range() any

	// Apply evaluates v op other.
	Apply(ctx context.Context, ev *rangeop.Evaluator, op rangeop.Operator, other Value) (Result, error)

	// ApplyElement evaluates v op elem where elem is the text form of a single element.
	ApplyElement(ctx context.Context, ev *rangeop.Evaluator, op rangeop.Operator, elem string) (Result, error)
}

// Result is the outcome of Value.Apply. Range is nil for predicates.
type Result struct {
	Op    rangeop.Operator
	Bool  bool
	Range Value
}

func (r Result) String() string {
	if r.Range == nil {
		return strconv.FormatBool(r.Bool)
	}
	return r.Range.String()
}

type rangeCodec[T any] struct {
	dom pgrange.Domain[T]
}

// NewRangeCodec returns a Codec for ranges over dom.
func NewRangeCodec[T any](dom pgrange.Domain[T]) Codec {
	return &rangeCodec[T]{dom: dom}
}

func (c *rangeCodec[T]) DecodeValue(format int16, src []byte) (Value, error) {
	if src == nil {
		return nil, fmt.Errorf("cannot decode NULL into range")
	}

	r, err := pgrange.Decode(c.dom, format, src)
	if err != nil {
		return nil, err
	}
	return rangeValue[T]{r: r.Canonical()}, nil
}

func (c *rangeCodec[T]) ValueOf(r any) (Value, bool) {
	switch r := r.(type) {
	case pgrange.Range[T]:
		return rangeValue[T]{r: r}, true
	case *pgrange.Range[T]:
		if r == nil {
			return nil, false
		}
		return rangeValue[T]{r: *r}, true
	default:
		return nil, false
	}
}

// RangeOf returns the pgrange.Range behind v.
func RangeOf[T any](v Value) (pgrange.Range[T], bool) {
	rv, ok := v.(rangeValue[T])
	if !ok {
		return pgrange.Range[T]{}, false
	}
	return rv.r, true
}

type rangeValue[T any] struct {
	r pgrange.Range[T]
}

func (v rangeValue[T]) String() string {
	return v.r.String()
}

func (v rangeValue[T]) IsEmpty() bool {
	return v.r.IsEmpty()
}

func (v rangeValue[T]) Encode(format int16, buf []byte) ([]byte, error) {
	return v.r.Encode(format, buf)
}

func (v rangeValue[T]) Range() any {
	return v.r
}

func (v rangeValue[T]) Apply(ctx context.Context, ev *rangeop.Evaluator, op rangeop.Operator, other Value) (Result, error) {
	o, ok := other.(rangeValue[T])
	if !ok {
		return Result{}, fmt.Errorf("cannot apply %v to %T and %T", op, v, other)
	}

	res, err := rangeop.Evaluate(ctx, ev, op, v.r, o.r)
	if err != nil {
		return Result{}, err
	}
	return v.result(res), nil
}

func (v rangeValue[T]) ApplyElement(ctx context.Context, ev *rangeop.Evaluator, op rangeop.Operator, elem string) (Result, error) {
	dom := v.r.Domain()
	if dom == nil {
		return Result{}, pgrange.ErrNoDomain
	}

	e, err := dom.ParseValue(elem)
	if err != nil {
		return Result{}, fmt.Errorf("invalid element %q: %w", elem, err)
	}

	res, err := rangeop.EvaluateElement(ctx, ev, op, v.r, e)
	if err != nil {
		return Result{}, err
	}
	return v.result(res), nil
}

func (v rangeValue[T]) result(res rangeop.Result[T]) Result {
	out := Result{Op: res.Op, Bool: res.Bool}
	if !res.Op.IsPredicate() {
		out.Range = rangeValue[T]{r: res.Range}
	}
	return out
}

package pgrange

import "fmt"

// Bounds describes the inclusivity of both edges of a range. The first character governs the lower edge and the
// second the upper edge: '[' and ']' are inclusive, '(' and ')' exclusive.
type Bounds string

const (
	BoundsOpen       Bounds = "()"
	BoundsClosedOpen Bounds = "[)"
	BoundsOpenClosed Bounds = "(]"
	BoundsClosed     Bounds = "[]"

	// DefaultBounds is used when no bounds are given.
	DefaultBounds = BoundsClosedOpen
)

// ParseBounds validates s as a Bounds value. An empty string yields DefaultBounds.
func ParseBounds(s string) (Bounds, error) {
	switch b := Bounds(s); b {
	case "":
		return DefaultBounds, nil
	case BoundsOpen, BoundsClosedOpen, BoundsOpenClosed, BoundsClosed:
		return b, nil
	default:
		return "", fmt.Errorf("%w: %q", ErrInvalidBounds, s)
	}
}

func (b Bounds) orDefault() Bounds {
	if b == "" {
		return DefaultBounds
	}
	return b
}

// LowerInc reports whether the lower edge is inclusive.
func (b Bounds) LowerInc() bool {
	return b.orDefault()[0] == '['
}

// UpperInc reports whether the upper edge is inclusive.
func (b Bounds) UpperInc() bool {
	return b.orDefault()[1] == ']'
}

func makeBounds(lowerInc, upperInc bool) Bounds {
	switch {
	case lowerInc && upperInc:
		return BoundsClosed
	case lowerInc:
		return BoundsClosedOpen
	case upperInc:
		return BoundsOpenClosed
	default:
		return BoundsOpen
	}
}

// BoundType is the kind of one side of a range as it appears on the wire.
type BoundType byte

const (
	Inclusive  = BoundType('i')
	Exclusive  = BoundType('e')
	Unbounded  = BoundType('U')
	EmptyBound = BoundType('E')
)

func (bt BoundType) String() string {
	return string(bt)
}

// Bound is an optional range bound. The zero value is unbounded.
type Bound[T any] struct {
	Value T
	Valid bool
}

// Finite returns a bound at v.
func Finite[T any](v T) Bound[T] {
	return Bound[T]{Value: v, Valid: true}
}

// Side identifies which end of a range an edge belongs to.
type Side int8

const (
	LowerSide Side = iota
	UpperSide
)

func (s Side) String() string {
	if s == LowerSide {
		return "lower"
	}
	return "upper"
}

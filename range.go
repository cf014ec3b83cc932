package pgrange

import "fmt"

// Range is an immutable interval over the elements of a Domain. Operations never modify a Range; they return new
// values.
//
// The zero value is the unbounded range [,) without a domain. Use New or Empty to build ranges that can compare finite
// values.
//
// A Range carries the bracket of an unbounded side even though it has no effect on containment, so [,5) and (,5)
// print differently but contain the same values.
type Range[T any] struct {
	dom    Domain[T]
	lower  Bound[T]
	upper  Bound[T]
	bounds Bounds
	empty  bool
}

// New returns the range between lower and upper. An invalid Bound is unbounded on that side. An empty bounds string
// means DefaultBounds.
//
// New fails with ErrInvalidBounds when bounds is not one of "()", "[)", "(]" and "[]" or when lower is greater than
// upper. A range whose edges cross only because of their inclusivity, such as [5,5) or the integer range (4,5), is
// returned as the empty range.
func New[T any](dom Domain[T], lower, upper Bound[T], bounds Bounds) (Range[T], error) {
	if dom == nil {
		return Range[T]{}, ErrNoDomain
	}

	bounds, err := ParseBounds(string(bounds))
	if err != nil {
		return Range[T]{}, err
	}

	r := Range[T]{dom: dom, lower: lower, upper: upper, bounds: bounds}

	if next, ok := stepOf(dom); ok {
		for _, b := range []Bound[T]{lower, upper} {
			if b.Valid && dom.Compare(next(b.Value), b.Value) <= 0 {
				return Range[T]{}, fmt.Errorf("%w: %s", ErrStepOverflow, dom.FormatValue(b.Value))
			}
		}
	}

	if lower.Valid && upper.Valid {
		if dom.Compare(lower.Value, upper.Value) > 0 {
			return Range[T]{}, fmt.Errorf("%w: range lower bound must be less than or equal to range upper bound", ErrInvalidBounds)
		}
		if CompareEdges(dom, r.LowerEdge(), r.UpperEdge(), false) > 0 {
			return Empty(dom), nil
		}
	}

	return r, nil
}

// Empty returns the empty range of dom. The empty range contains no values, is the identity of Union and is
// contained by every range.
func Empty[T any](dom Domain[T]) Range[T] {
	return Range[T]{dom: dom, bounds: DefaultBounds, empty: true}
}

// Domain returns the domain r was built with.
func (r Range[T]) Domain() Domain[T] {
	return r.dom
}

// IsEmpty reports whether r is the empty range.
func (r Range[T]) IsEmpty() bool {
	return r.empty
}

// Truth returns the boolean value of r under an inverted convention: it is true for the empty range and false for
// every non-empty range.
//
// This matches the behavior of the range objects the rest of a SQL layer may exchange with this package, where a
// range's truthiness is its empty flag. It is NOT "does r contain anything". Code that branches on ranges should use
// IsEmpty instead.
func (r Range[T]) Truth() bool {
	return r.empty
}

// Lower returns the lower bound value and true, or false if r is unbounded below or empty.
func (r Range[T]) Lower() (T, bool) {
	if r.empty {
		var zero T
		return zero, false
	}
	return r.lower.Value, r.lower.Valid
}

// Upper returns the upper bound value and true, or false if r is unbounded above or empty.
func (r Range[T]) Upper() (T, bool) {
	if r.empty {
		var zero T
		return zero, false
	}
	return r.upper.Value, r.upper.Valid
}

// Bounds returns the bracket pair of r.
func (r Range[T]) Bounds() Bounds {
	return r.bounds.orDefault()
}

// LowerInc reports whether the lower bound is inclusive. It is false for empty and unbounded ranges.
func (r Range[T]) LowerInc() bool {
	return !r.empty && r.lower.Valid && r.Bounds().LowerInc()
}

// UpperInc reports whether the upper bound is inclusive. It is false for empty and unbounded ranges.
func (r Range[T]) UpperInc() bool {
	return !r.empty && r.upper.Valid && r.Bounds().UpperInc()
}

// LowerInf reports whether r is unbounded below.
func (r Range[T]) LowerInf() bool {
	return !r.empty && !r.lower.Valid
}

// UpperInf reports whether r is unbounded above.
func (r Range[T]) UpperInf() bool {
	return !r.empty && !r.upper.Valid
}

// LowerEdge returns the lower edge of r. The result is meaningless for the empty range.
func (r Range[T]) LowerEdge() Edge[T] {
	if !r.lower.Valid {
		return InfiniteEdge[T](LowerSide)
	}
	return FiniteEdge(r.lower.Value, r.Bounds().LowerInc(), LowerSide)
}

// UpperEdge returns the upper edge of r. The result is meaningless for the empty range.
func (r Range[T]) UpperEdge() Edge[T] {
	if !r.upper.Valid {
		return InfiniteEdge[T](UpperSide)
	}
	return FiniteEdge(r.upper.Value, r.Bounds().UpperInc(), UpperSide)
}

// Equal reports whether r and other have the same bounds, brackets and emptiness. All empty ranges are equal. Equal
// does not normalize discrete ranges; compare Canonical forms for that.
func (r Range[T]) Equal(other Range[T]) bool {
	if r.empty || other.empty {
		return r.empty == other.empty
	}
	if r.Bounds() != other.Bounds() {
		return false
	}
	return r.equalBound(r.lower, other.lower) && r.equalBound(r.upper, other.upper)
}

func (r Range[T]) equalBound(a, b Bound[T]) bool {
	if a.Valid != b.Valid {
		return false
	}
	if !a.Valid {
		return true
	}
	return r.compare(a.Value, b.Value) == 0
}

// Canonical returns r rewritten in the [) form when its domain is discrete, the way PostgreSQL canonicalizes
// int4range, int8range and daterange. Ranges over continuous domains are returned unchanged.
func (r Range[T]) Canonical() Range[T] {
	if r.empty || r.dom == nil {
		return r
	}
	if _, ok := stepOf(r.dom); !ok {
		return r
	}

	lower := normalize(r.dom, r.LowerEdge())
	upper := normalize(r.dom, r.UpperEdge())

	lowerMarker, upperMarker := r.Bounds()[0], r.Bounds()[1]
	if lower.finite {
		lowerMarker = '['
	}
	if upper.finite {
		upperMarker = ')'
	}
	return r.withEdges(lower, upper, lowerMarker, upperMarker)
}

func (r Range[T]) compare(a, b T) int {
	return r.dom.Compare(a, b)
}

// domainWith returns the domain used to compare r with other. The zero Range has no domain but only infinite edges,
// so borrowing the domain of other is safe.
func (r Range[T]) domainWith(other Range[T]) Domain[T] {
	if r.dom != nil {
		return r.dom
	}
	return other.dom
}

// withEdges builds a range over the domain of r from a lower and an upper edge.
func (r Range[T]) withEdges(lower, upper Edge[T], lowerMarker, upperMarker byte) Range[T] {
	n := Range[T]{dom: r.dom, bounds: Bounds([]byte{lowerMarker, upperMarker})}
	if lower.finite {
		n.lower = Finite(lower.value)
	}
	if upper.finite {
		n.upper = Finite(upper.value)
	}
	return n
}

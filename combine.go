package pgrange

import "fmt"

// Union returns the smallest range containing both r and other (PostgreSQL +). The empty range is the identity of
// Union. Ranges that neither overlap nor are adjacent cannot be represented by a single range; Union returns a
// *CombinationError wrapping ErrInvalidCombination for them.
func (r Range[T]) Union(other Range[T]) (Range[T], error) {
	if r.empty {
		return other, nil
	}
	if other.empty {
		return r, nil
	}

	if !r.Overlaps(other) && !r.AdjacentTo(other) {
		return Range[T]{}, &CombinationError{
			Op:     "union",
			Left:   r.String(),
			Right:  other.String(),
			Reason: "ranges are neither overlapping nor adjacent",
		}
	}

	dom := r.domainWith(other)
	rb, ob := r.Bounds(), other.Bounds()

	lower, lowerMarker := other.LowerEdge(), ob[0]
	if CompareEdges(dom, r.LowerEdge(), other.LowerEdge(), false) < 0 {
		lower, lowerMarker = r.LowerEdge(), rb[0]
	}

	upper, upperMarker := other.UpperEdge(), ob[1]
	if CompareEdges(dom, r.UpperEdge(), other.UpperEdge(), false) > 0 {
		upper, upperMarker = r.UpperEdge(), rb[1]
	}

	u := r.withEdges(lower, upper, lowerMarker, upperMarker)
	u.dom = dom
	return u, nil
}

// Difference returns the values of r that are not in other (PostgreSQL -). Subtracting the empty range, or
// subtracting from it, returns r unchanged.
//
// When other lies strictly inside r the result would be two ranges; Difference returns a *CombinationError wrapping
// ErrInvalidCombination instead.
func (r Range[T]) Difference(other Range[T]) (Range[T], error) {
	if r.empty || other.empty {
		return r, nil
	}

	dom := r.domainWith(other)
	rl, ru := r.LowerEdge(), r.UpperEdge()
	ol, ou := other.LowerEdge(), other.UpperEdge()

	rlVsOl := CompareEdges(dom, rl, ol, false)
	ruVsOu := CompareEdges(dom, ru, ou, false)
	if rlVsOl < 0 && ruVsOu > 0 {
		return Range[T]{}, &CombinationError{
			Op:     "difference",
			Left:   r.String(),
			Right:  other.String(),
			Reason: "result would not be contiguous",
		}
	}

	rlVsOu := CompareEdges(dom, rl, ou, false)
	ruVsOl := CompareEdges(dom, ru, ol, false)

	// Disjoint ranges.
	if rlVsOu > 0 || ruVsOl < 0 {
		return r, nil
	}

	// r is inside other.
	if rlVsOl >= 0 && ruVsOu <= 0 {
		return Empty(dom), nil
	}

	// r starts before other and ends inside it: keep [r.lower, other.lower).
	if rlVsOl <= 0 && ruVsOl >= 0 && ruVsOu <= 0 {
		upperMarker := byte(']')
		if ol.Inclusive() {
			upperMarker = ')'
		}
		upper := FiniteEdge(ol.value, upperMarker == ']', UpperSide)
		if CompareEdges(dom, rl, upper, false) > 0 {
			return Empty(dom), nil
		}
		d := r.withEdges(rl, upper, r.Bounds()[0], upperMarker)
		d.dom = dom
		return d, nil
	}

	// r starts inside other and ends after it: keep (other.upper, r.upper].
	if rlVsOl >= 0 && ruVsOu >= 0 && rlVsOu <= 0 {
		lowerMarker := byte('[')
		if ou.Inclusive() {
			lowerMarker = '('
		}
		lower := FiniteEdge(ou.value, lowerMarker == '[', LowerSide)
		if CompareEdges(dom, lower, ru, false) > 0 {
			return Empty(dom), nil
		}
		d := r.withEdges(lower, ru, lowerMarker, r.Bounds()[1])
		d.dom = dom
		return d, nil
	}

	return Range[T]{}, &InvariantViolationError{
		Op: "difference",
		Detail: fmt.Sprintf("unhandled edge configuration for %s - %s (%d, %d, %d, %d)",
			r, other, rlVsOl, ruVsOu, rlVsOu, ruVsOl),
	}
}

// Intersection returns the values common to r and other (PostgreSQL *). It is empty when the ranges do not overlap.
func (r Range[T]) Intersection(other Range[T]) Range[T] {
	dom := r.domainWith(other)
	if !r.Overlaps(other) {
		return Empty(dom)
	}

	rb, ob := r.Bounds(), other.Bounds()

	lower, lowerMarker := r.LowerEdge(), rb[0]
	if CompareEdges(dom, r.LowerEdge(), other.LowerEdge(), false) < 0 {
		lower, lowerMarker = other.LowerEdge(), ob[0]
	}

	upper, upperMarker := r.UpperEdge(), rb[1]
	if CompareEdges(dom, r.UpperEdge(), other.UpperEdge(), false) > 0 {
		upper, upperMarker = other.UpperEdge(), ob[1]
	}

	i := r.withEdges(lower, upper, lowerMarker, upperMarker)
	i.dom = dom
	return i
}

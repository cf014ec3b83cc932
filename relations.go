package pgrange

// Contains reports whether v lies within r. The empty range contains no values.
func (r Range[T]) Contains(v T) bool {
	if r.empty {
		return false
	}

	if r.lower.Valid {
		c := r.compare(v, r.lower.Value)
		if c < 0 || (c == 0 && !r.Bounds().LowerInc()) {
			return false
		}
	}

	if r.upper.Valid {
		c := r.compare(v, r.upper.Value)
		if c > 0 || (c == 0 && !r.Bounds().UpperInc()) {
			return false
		}
	}

	return true
}

// ContainsRange reports whether other lies entirely within r. Every range contains the empty range.
func (r Range[T]) ContainsRange(other Range[T]) bool {
	return other.ContainedBy(r)
}

// ContainedBy reports whether r lies entirely within other. The empty range is contained by every range; the empty
// range contains no range but itself.
func (r Range[T]) ContainedBy(other Range[T]) bool {
	if r.empty {
		return true
	}
	if other.empty {
		return false
	}

	dom := r.domainWith(other)
	return CompareEdges(dom, r.LowerEdge(), other.LowerEdge(), false) >= 0 &&
		CompareEdges(dom, r.UpperEdge(), other.UpperEdge(), false) <= 0
}

// Overlaps reports whether r and other have any value in common. The empty range overlaps nothing.
func (r Range[T]) Overlaps(other Range[T]) bool {
	if r.empty || other.empty {
		return false
	}

	dom := r.domainWith(other)
	rl, ru := r.LowerEdge(), r.UpperEdge()
	ol, ou := other.LowerEdge(), other.UpperEdge()

	if CompareEdges(dom, rl, ol, false) >= 0 && CompareEdges(dom, rl, ou, false) <= 0 {
		return true
	}

	return CompareEdges(dom, ol, rl, false) >= 0 && CompareEdges(dom, ol, ru, false) <= 0
}

// StrictlyLeftOf reports whether every value of r is less than every value of other (PostgreSQL <<). Empty ranges are
// neither left nor right of anything.
func (r Range[T]) StrictlyLeftOf(other Range[T]) bool {
	if r.empty || other.empty {
		return false
	}
	return CompareEdges(r.domainWith(other), r.UpperEdge(), other.LowerEdge(), false) < 0
}

// StrictlyRightOf reports whether every value of r is greater than every value of other (PostgreSQL >>).
func (r Range[T]) StrictlyRightOf(other Range[T]) bool {
	if r.empty || other.empty {
		return false
	}
	return CompareEdges(r.domainWith(other), r.LowerEdge(), other.UpperEdge(), false) > 0
}

// NotExtendLeftOf reports whether r does not extend to the left of other (PostgreSQL &>).
func (r Range[T]) NotExtendLeftOf(other Range[T]) bool {
	if r.empty || other.empty {
		return false
	}
	return CompareEdges(r.domainWith(other), r.LowerEdge(), other.LowerEdge(), false) >= 0
}

// NotExtendRightOf reports whether r does not extend to the right of other (PostgreSQL &<).
func (r Range[T]) NotExtendRightOf(other Range[T]) bool {
	if r.empty || other.empty {
		return false
	}
	return CompareEdges(r.domainWith(other), r.UpperEdge(), other.UpperEdge(), false) <= 0
}

// AdjacentTo reports whether r and other touch without overlapping and without a gap between them (PostgreSQL -|-).
// Empty ranges are adjacent to nothing.
func (r Range[T]) AdjacentTo(other Range[T]) bool {
	if r.empty || other.empty {
		return false
	}

	dom := r.domainWith(other)
	return upperEdgeAdjacentToLower(dom, r.UpperEdge(), other.LowerEdge()) ||
		upperEdgeAdjacentToLower(dom, other.UpperEdge(), r.LowerEdge())
}

// upperEdgeAdjacentToLower reports whether lower starts immediately after upper ends. After discrete normalization
// the edges must share a value with exactly one of them inclusive: 5) meets [5, 5] meets (5, and for integers 5]
// meets [6 because 5] normalizes to 6).
func upperEdgeAdjacentToLower[T any](dom Domain[T], upper, lower Edge[T]) bool {
	if !upper.finite || !lower.finite {
		return false
	}

	if CompareEdges(dom, upper, lower, true) != 0 {
		return false
	}

	upper = normalize(dom, upper)
	lower = normalize(dom, lower)
	return upper.inclusive != lower.inclusive
}

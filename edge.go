package pgrange

// Edge is one endpoint of a range: either infinite on a side, or a finite value that is inclusive or exclusive.
// Construct edges with InfiniteEdge and FiniteEdge.
type Edge[T any] struct {
	value     T
	side      Side
	finite    bool
	inclusive bool
}

// InfiniteEdge returns the edge at negative infinity for LowerSide and positive infinity for UpperSide.
func InfiniteEdge[T any](side Side) Edge[T] {
	return Edge[T]{side: side}
}

// FiniteEdge returns an edge at value.
func FiniteEdge[T any](value T, inclusive bool, side Side) Edge[T] {
	return Edge[T]{value: value, side: side, finite: true, inclusive: inclusive}
}

// Value returns the edge value and true, or the zero value and false for an infinite edge.
func (e Edge[T]) Value() (T, bool) {
	return e.value, e.finite
}

func (e Edge[T]) Side() Side {
	return e.side
}

func (e Edge[T]) IsInfinite() bool {
	return !e.finite
}

// Inclusive reports whether a finite edge includes its value. Infinite edges are never inclusive.
func (e Edge[T]) Inclusive() bool {
	return e.finite && e.inclusive
}

// Marker returns the bracket character of the edge: '[' or '(' on the lower side, ']' or ')' on the upper side.
func (e Edge[T]) Marker() byte {
	if e.side == LowerSide {
		if e.Inclusive() {
			return '['
		}
		return '('
	}
	if e.Inclusive() {
		return ']'
	}
	return ')'
}

// normalize rewrites a finite edge of a discrete domain into the '[' / ')' form: an exclusive lower edge (v becomes
// [next(v), and an inclusive upper edge v] becomes next(v)).
func normalize[T any](dom Domain[T], e Edge[T]) Edge[T] {
	if !e.finite {
		return e
	}
	next, ok := stepOf(dom)
	if !ok {
		return e
	}

	if e.side == LowerSide && !e.inclusive {
		return FiniteEdge(next(e.value), true, LowerSide)
	}
	if e.side == UpperSide && e.inclusive {
		return FiniteEdge(next(e.value), false, UpperSide)
	}
	return e
}

// CompareEdges returns -1, 0 or 1 when edge a sorts before, equal to or after edge b.
//
// Infinite edges are equal when they are on the same side; otherwise the lower infinite edge sorts first. A finite
// edge sorts after negative infinity and before positive infinity. Edges of a discrete domain are normalized before
// their values are compared, so (0 and [1 are equal for integers. When onlyValues is true the inclusivity of edges
// with equal values is ignored.
func CompareEdges[T any](dom Domain[T], a, b Edge[T], onlyValues bool) int {
	switch {
	case !a.finite && !b.finite:
		if a.side == b.side {
			return 0
		}
		if a.side == LowerSide {
			return -1
		}
		return 1
	case !a.finite:
		if a.side == LowerSide {
			return -1
		}
		return 1
	case !b.finite:
		if b.side == LowerSide {
			return 1
		}
		return -1
	}

	if a.side == b.side && a.inclusive == b.inclusive && dom.Compare(a.value, b.value) == 0 {
		return 0
	}

	a = normalize(dom, a)
	b = normalize(dom, b)

	if c := dom.Compare(a.value, b.value); c != 0 {
		if c < 0 {
			return -1
		}
		return 1
	}

	if onlyValues {
		return 0
	}

	switch {
	case a.inclusive && b.inclusive:
		return 0
	case !a.inclusive && !b.inclusive:
		if a.side == b.side {
			return 0
		}
		if a.side == LowerSide {
			return 1
		}
		return -1
	case !a.inclusive:
		if a.side == LowerSide {
			return 1
		}
		return -1
	default:
		if b.side == LowerSide {
			return -1
		}
		return 1
	}
}

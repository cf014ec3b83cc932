// Package pgrange implements PostgreSQL style range values and their algebra.
/*
A Range is an interval over the elements of a Domain. Each side is either unbounded or a finite bound that is
inclusive or exclusive:

	r, err := pgrange.New(pgrange.Int4, pgrange.Finite[int32](10), pgrange.Finite[int32](50), pgrange.BoundsClosedOpen)
	// r.String() == "[10,50)"

Ranges can also be parsed from the PostgreSQL text format:

	r, err := pgrange.Parse(pgrange.Date, "[2022-12-01,2023-01-01)")

Domains

A Domain supplies ordering and text formatting for the element type. Domains that also implement DiscreteDomain have a
successor step (integers, dates). Edges of discrete ranges are normalized before they are compared, so the integer
ranges (0,5] and [1,6) describe the same values and [1,5] is adjacent to [6,10]. Continuous domains (floats,
timestamps, numerics) have no step. The step is always an explicit capability of the domain; WithStep turns any
ordered domain into a discrete one.

Built in domains are Int2, Int4, Int8, Float8, Date, Timestamp, Timestamptz and Text. Further domains for
github.com/shopspring/decimal, github.com/cockroachdb/apd, github.com/gofrs/uuid, netip.Addr and collated text live in
the ext directory.

Relations and combinations

Range implements the PostgreSQL range operators as methods: Contains and ContainsRange (@>), ContainedBy (<@),
Overlaps (&&), StrictlyLeftOf (<<), StrictlyRightOf (>>), NotExtendRightOf (&<), NotExtendLeftOf (&>), AdjacentTo
(-|-), Union (+), Difference (-) and Intersection (*). The empty range overlaps and is adjacent to nothing, is contained
by everything and is the identity of Union.

Union of ranges that neither overlap nor touch, and Difference that would split a range in two, return a
*CombinationError that wraps ErrInvalidCombination.

Truthiness

Range.Truth follows an inverted convention shared with other range implementations: it returns true for the empty
range. Use IsEmpty in conditionals.

Concurrency

Range values are immutable and every operation is a pure function, so ranges may be shared freely between goroutines.
*/
package pgrange

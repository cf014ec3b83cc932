package pgrange_test

import (
	"math"
	"testing"

	"github.com/rangekit/pgrange"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func int4Range(t testing.TB, lower, upper int32, bounds pgrange.Bounds) pgrange.Range[int32] {
	t.Helper()
	r, err := pgrange.New(pgrange.Int4, pgrange.Finite(lower), pgrange.Finite(upper), bounds)
	require.NoError(t, err)
	return r
}

func float8Range(t testing.TB, lower, upper float64, bounds pgrange.Bounds) pgrange.Range[float64] {
	t.Helper()
	r, err := pgrange.New(pgrange.Float8, pgrange.Finite(lower), pgrange.Finite(upper), bounds)
	require.NoError(t, err)
	return r
}

func mustParse[T any](t testing.TB, dom pgrange.Domain[T], s string) pgrange.Range[T] {
	t.Helper()
	r, err := pgrange.Parse(dom, s)
	require.NoError(t, err)
	return r
}

func TestNew(t *testing.T) {
	r, err := pgrange.New(pgrange.Int4, pgrange.Finite[int32](10), pgrange.Finite[int32](50), "")
	require.NoError(t, err)
	assert.Equal(t, "[10,50)", r.String())
	assert.Equal(t, pgrange.BoundsClosedOpen, r.Bounds())

	lower, ok := r.Lower()
	assert.True(t, ok)
	assert.EqualValues(t, 10, lower)
	upper, ok := r.Upper()
	assert.True(t, ok)
	assert.EqualValues(t, 50, upper)

	assert.True(t, r.LowerInc())
	assert.False(t, r.UpperInc())
	assert.False(t, r.LowerInf())
	assert.False(t, r.UpperInf())
	assert.False(t, r.IsEmpty())
}

func TestNewUnbounded(t *testing.T) {
	r, err := pgrange.New(pgrange.Int4, pgrange.Bound[int32]{}, pgrange.Finite[int32](5), pgrange.BoundsClosedOpen)
	require.NoError(t, err)

	assert.True(t, r.LowerInf())
	assert.False(t, r.LowerInc())
	assert.Equal(t, "[,5)", r.String())
	_, ok := r.Lower()
	assert.False(t, ok)

	assert.True(t, r.Contains(math.MinInt32))
	assert.False(t, r.Contains(5))
}

func TestNewErrors(t *testing.T) {
	_, err := pgrange.New(pgrange.Int4, pgrange.Finite[int32](1), pgrange.Finite[int32](2), "<>")
	assert.ErrorIs(t, err, pgrange.ErrInvalidBounds)

	_, err = pgrange.New(pgrange.Int4, pgrange.Finite[int32](10), pgrange.Finite[int32](5), pgrange.BoundsClosed)
	assert.ErrorIs(t, err, pgrange.ErrInvalidBounds)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "range lower bound must be less than or equal to range upper bound")

	_, err = pgrange.New(pgrange.Int4, pgrange.Finite[int32](1), pgrange.Finite[int32](math.MaxInt32), pgrange.BoundsClosed)
	assert.ErrorIs(t, err, pgrange.ErrStepOverflow)

	_, err = pgrange.New[int32](nil, pgrange.Finite[int32](1), pgrange.Finite[int32](2), "")
	assert.ErrorIs(t, err, pgrange.ErrNoDomain)
}

func TestNewCollapsesToEmpty(t *testing.T) {
	tests := []struct {
		lower, upper int32
		bounds       pgrange.Bounds
		empty        bool
	}{
		{lower: 5, upper: 5, bounds: "[)", empty: true},
		{lower: 5, upper: 5, bounds: "(]", empty: true},
		{lower: 5, upper: 5, bounds: "()", empty: true},
		{lower: 5, upper: 5, bounds: "[]", empty: false},
		{lower: 4, upper: 5, bounds: "()", empty: true},
		{lower: 4, upper: 5, bounds: "(]", empty: false},
		{lower: 4, upper: 6, bounds: "()", empty: false},
	}

	for i, tt := range tests {
		r, err := pgrange.New(pgrange.Int4, pgrange.Finite(tt.lower), pgrange.Finite(tt.upper), tt.bounds)
		require.NoErrorf(t, err, "%d", i)
		assert.Equalf(t, tt.empty, r.IsEmpty(), "%d. %d,%d %s", i, tt.lower, tt.upper, tt.bounds)
	}

	// Continuous domains have no step, so (4,5) keeps the values between 4 and 5.
	assert.False(t, float8Range(t, 4, 5, "()").IsEmpty())
	assert.True(t, float8Range(t, 5, 5, "()").IsEmpty())
	assert.False(t, float8Range(t, 5, 5, "[]").IsEmpty())
}

func TestEmpty(t *testing.T) {
	e := pgrange.Empty[int32](pgrange.Int4)

	assert.True(t, e.IsEmpty())
	assert.Equal(t, "empty", e.String())
	assert.False(t, e.LowerInc())
	assert.False(t, e.UpperInc())
	assert.False(t, e.LowerInf())
	assert.False(t, e.UpperInf())

	_, ok := e.Lower()
	assert.False(t, ok)
	_, ok = e.Upper()
	assert.False(t, ok)
}

func TestTruthIsTheEmptyFlag(t *testing.T) {
	assert.True(t, pgrange.Empty[int32](pgrange.Int4).Truth())
	assert.False(t, int4Range(t, 1, 5, "[)").Truth())
}

func TestEqual(t *testing.T) {
	a := int4Range(t, 1, 5, "[]")
	assert.True(t, a.Equal(int4Range(t, 1, 5, "[]")))
	assert.False(t, a.Equal(int4Range(t, 1, 6, "[)")))
	assert.False(t, a.Equal(int4Range(t, 1, 5, "[)")))
	assert.False(t, a.Equal(pgrange.Empty[int32](pgrange.Int4)))

	assert.True(t, pgrange.Empty[int32](pgrange.Int4).Equal(int4Range(t, 5, 5, "[)")))

	unbounded, err := pgrange.New(pgrange.Int4, pgrange.Bound[int32]{}, pgrange.Finite[int32](5), "[)")
	require.NoError(t, err)
	assert.False(t, unbounded.Equal(int4Range(t, 0, 5, "[)")))
}

func TestCanonical(t *testing.T) {
	tests := []struct {
		src      string
		expected string
	}{
		{src: "(0,5]", expected: "[1,6)"},
		{src: "[1,5]", expected: "[1,6)"},
		{src: "[1,6)", expected: "[1,6)"},
		{src: "(,5]", expected: "(,6)"},
		{src: "(3,]", expected: "[4,]"},
		{src: "empty", expected: "empty"},
	}

	for i, tt := range tests {
		r := mustParse[int32](t, pgrange.Int4, tt.src)
		assert.Equalf(t, tt.expected, r.Canonical().String(), "%d. %s", i, tt.src)
	}

	assert.True(t, mustParse[int32](t, pgrange.Int4, "(0,5]").Canonical().Equal(mustParse[int32](t, pgrange.Int4, "[1,5]").Canonical()))

	f := float8Range(t, 0, 5, "(]")
	assert.True(t, f.Canonical().Equal(f))
}

func TestZeroValueRange(t *testing.T) {
	var r pgrange.Range[int32]

	assert.False(t, r.IsEmpty())
	assert.True(t, r.LowerInf())
	assert.True(t, r.UpperInf())
	assert.Equal(t, "[,)", r.String())

	assert.True(t, r.ContainsRange(int4Range(t, 1, 5, "[)")))
	assert.True(t, r.Overlaps(int4Range(t, 1, 5, "[)")))
}

func TestWithStep(t *testing.T) {
	// Even integers only.
	evens := pgrange.WithStep[int32](pgrange.Int4, func(v int32) int32 { return v + 2 })

	a, err := pgrange.New[int32](evens, pgrange.Finite[int32](0), pgrange.Finite[int32](4), pgrange.BoundsClosed)
	require.NoError(t, err)
	b, err := pgrange.New[int32](evens, pgrange.Finite[int32](6), pgrange.Finite[int32](8), pgrange.BoundsClosed)
	require.NoError(t, err)

	assert.True(t, a.AdjacentTo(b))
	assert.Equal(t, "[0,6)", a.Canonical().String())

	c := pgrange.Continuous[int32](pgrange.Int4)
	x, err := pgrange.New(c, pgrange.Finite[int32](1), pgrange.Finite[int32](5), pgrange.BoundsClosed)
	require.NoError(t, err)
	y, err := pgrange.New(c, pgrange.Finite[int32](6), pgrange.Finite[int32](10), pgrange.BoundsClosed)
	require.NoError(t, err)
	assert.False(t, x.AdjacentTo(y))
}

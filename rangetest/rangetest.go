// Package rangetest provides utilities for testing pgrange and packages that build domains on top of it.
package rangetest

import (
	"errors"
	"math/rand"
	"os"
	"strconv"
	"testing"
	"time"

	"github.com/rangekit/pgrange"
)

// SeedEnvVar names the environment variable that fixes the seed returned by NewRand.
const SeedEnvVar = "RANGETEST_SEED"

// NewRand returns a random source for randomized tests. The seed is logged so that a failure can be replayed by
// setting RANGETEST_SEED.
func NewRand(t testing.TB) *rand.Rand {
	seed := time.Now().UnixNano()
	if s := os.Getenv(SeedEnvVar); s != "" {
		n, err := strconv.ParseInt(s, 10, 64)
		if err != nil {
			t.Fatalf("invalid %s: %v", SeedEnvVar, err)
		}
		seed = n
	}
	t.Logf("%s=%d", SeedEnvVar, seed)
	return rand.New(rand.NewSource(seed))
}

// Generator produces random ranges over Domain. Value must return values from a small set so that generated ranges
// frequently share edges. All fields except Domain and Value are optional.
type Generator[T any] struct {
	Domain pgrange.Domain[T]
	Value  func(rng *rand.Rand) T

	// EmptyChance is the probability of returning the empty range.
	EmptyChance float64

	// UnboundedChance is the probability of each side being unbounded.
	UnboundedChance float64
}

var allBounds = []pgrange.Bounds{
	pgrange.BoundsOpen,
	pgrange.BoundsClosedOpen,
	pgrange.BoundsOpenClosed,
	pgrange.BoundsClosed,
}

// Range returns a random range. Lower and upper values are swapped as needed so that construction never fails.
func (g Generator[T]) Range(rng *rand.Rand) pgrange.Range[T] {
	if rng.Float64() < g.EmptyChance {
		return pgrange.Empty(g.Domain)
	}

	var lower, upper pgrange.Bound[T]
	if rng.Float64() >= g.UnboundedChance {
		lower = pgrange.Finite(g.Value(rng))
	}
	if rng.Float64() >= g.UnboundedChance {
		upper = pgrange.Finite(g.Value(rng))
	}
	if lower.Valid && upper.Valid && g.Domain.Compare(lower.Value, upper.Value) > 0 {
		lower, upper = upper, lower
	}

	r, err := pgrange.New(g.Domain, lower, upper, allBounds[rng.Intn(len(allBounds))])
	if err != nil {
		panic(err)
	}
	return r
}

// Int4Generator returns a Generator of int4 ranges with bounds between lo and hi inclusive.
func Int4Generator(lo, hi int32) Generator[int32] {
	return Generator[int32]{
		Domain: pgrange.Int4,
		Value: func(rng *rand.Rand) int32 {
			return lo + rng.Int31n(hi-lo+1)
		},
		EmptyChance:     0.05,
		UnboundedChance: 0.15,
	}
}

// Float8Generator returns a Generator of float8 ranges with whole number bounds between lo and hi inclusive.
func Float8Generator(lo, hi int) Generator[float64] {
	return Generator[float64]{
		Domain: pgrange.Float8,
		Value: func(rng *rand.Rand) float64 {
			return float64(lo + rng.Intn(hi-lo+1))
		},
		EmptyChance:     0.05,
		UnboundedChance: 0.15,
	}
}

// CheckPair verifies the algebraic laws of the range operators on a and b. samples are the element values used to
// check that each combined range holds exactly the values it should; they must cover every bound value of a and b
// and the values around them.
func CheckPair[T any](t testing.TB, a, b pgrange.Range[T], samples []T) {
	t.Helper()

	if a.Overlaps(b) != b.Overlaps(a) {
		t.Errorf("%v && %v is not symmetric", a, b)
	}
	if a.AdjacentTo(b) != b.AdjacentTo(a) {
		t.Errorf("%v -|- %v is not symmetric", a, b)
	}
	if a.AdjacentTo(b) && a.Overlaps(b) {
		t.Errorf("%v is both adjacent to and overlapping %v", a, b)
	}
	if a.StrictlyLeftOf(b) {
		if a.StrictlyRightOf(b) {
			t.Errorf("%v is both left and right of %v", a, b)
		}
		if !b.StrictlyRightOf(a) {
			t.Errorf("%v << %v but not %v >> %v", a, b, b, a)
		}
		if a.Overlaps(b) {
			t.Errorf("%v << %v but they overlap", a, b)
		}
	}
	if !a.IsEmpty() && !a.ContainsRange(a) {
		t.Errorf("%v does not contain itself", a)
	}
	if a.ContainedBy(b) != b.ContainsRange(a) {
		t.Errorf("%v <@ %v disagrees with %v @> %v", a, b, b, a)
	}

	if u, err := a.Union(pgrange.Empty(a.Domain())); err != nil || !u.Equal(a) {
		t.Errorf("%v + empty = %v, %v", a, u, err)
	}
	if d, err := a.Difference(pgrange.Empty(a.Domain())); err != nil || !d.Equal(a) {
		t.Errorf("%v - empty = %v, %v", a, d, err)
	}

	union, unionErr := a.Union(b)
	if unionErr != nil {
		if !errors.Is(unionErr, pgrange.ErrInvalidCombination) {
			t.Errorf("%v + %v: unexpected error %v", a, b, unionErr)
		}
		if a.Overlaps(b) || a.AdjacentTo(b) {
			t.Errorf("%v + %v failed for overlapping or adjacent ranges: %v", a, b, unionErr)
		}
	} else if !union.ContainsRange(a) || !union.ContainsRange(b) {
		t.Errorf("%v + %v = %v does not contain both operands", a, b, union)
	}

	diff, diffErr := a.Difference(b)
	if diffErr != nil {
		var ive *pgrange.InvariantViolationError
		if errors.As(diffErr, &ive) {
			t.Errorf("%v - %v: %v", a, b, diffErr)
		} else if !errors.Is(diffErr, pgrange.ErrInvalidCombination) {
			t.Errorf("%v - %v: unexpected error %v", a, b, diffErr)
		}
	} else if !diff.ContainedBy(a) {
		t.Errorf("%v - %v = %v is not contained by %v", a, b, diff, a)
	}

	inter := a.Intersection(b)
	if inter.IsEmpty() == a.Overlaps(b) {
		t.Errorf("%v * %v = %v disagrees with &&", a, b, inter)
	}

	for _, v := range samples {
		inA, inB := a.Contains(v), b.Contains(v)
		fv := a.Domain().FormatValue(v)

		if a.ContainedBy(b) && inA && !inB {
			t.Errorf("%v <@ %v but %s is only in the former", a, b, fv)
		}
		if unionErr == nil && union.Contains(v) != (inA || inB) {
			t.Errorf("%v + %v = %v: wrong membership of %s", a, b, union, fv)
		}
		if diffErr == nil && diff.Contains(v) != (inA && !inB) {
			t.Errorf("%v - %v = %v: wrong membership of %s", a, b, diff, fv)
		}
		if inter.Contains(v) != (inA && inB) {
			t.Errorf("%v * %v = %v: wrong membership of %s", a, b, inter, fv)
		}
	}
}

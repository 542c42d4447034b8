package sbasis

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-sbasis/internal/testutil"
)

var sampleTs = []float64{0, 0.1, 0.25, 0.4, 0.5, 0.6, 0.75, 0.9, 1}

// TestAdd_Pointwise tests that addition is pointwise for mismatched lengths.
func TestAdd_Pointwise(t *testing.T) {
	r := testutil.NewRand()
	for _, n := range [][2]int{{0, 0}, {1, 3}, {3, 1}, {4, 4}} {
		a := randomSBasis(r, n[0], 2)
		b := randomSBasis(r, n[1], 2)
		sum := Add(a, b)
		assert.Len(t, sum, max(n[0], n[1]))
		for _, x := range sampleTs {
			assert.InDelta(t, a.ValueAt(x)+b.ValueAt(x), sum.ValueAt(x), 1e-13, "n=%v t=%g", n, x)
		}
	}
}

// TestSub_RoundTrip tests (A-B)+B == A when B is longer than A.
func TestSub_RoundTrip(t *testing.T) {
	a := New(NewLinear(1, 2))
	b := New(NewLinear(0.5, 0.5), NewLinear(3, -1), NewLinear(2, 2))

	diff := Sub(a, b)
	testutil.AssertPairsApprox(t, [][2]float64{{0.5, 1.5}, {-3, 1}, {-2, -2}}, pairs(diff), 0)

	back := Add(diff, b)
	back.Normalize()
	testutil.AssertPairsApprox(t, pairs(a), pairs(back), 0)

	r := testutil.NewRand()
	for range 10 {
		x := randomSBasis(r, 1+r.IntN(4), 5)
		y := randomSBasis(r, 1+r.IntN(4), 5)
		assert.True(t, Equal(x, Add(Sub(x, y), y), 1e-12))
		for _, s := range sampleTs {
			assert.InDelta(t, x.ValueAt(s)-y.ValueAt(s), Sub(x, y).ValueAt(s), 1e-12)
		}
	}
}

// TestAdditiveInverse tests that A + (-1)·A and A + Neg(A) vanish.
func TestAdditiveInverse(t *testing.T) {
	r := testutil.NewRand()
	for n := range 5 {
		a := randomSBasis(r, n, 10)
		assert.True(t, Add(a, Scale(a, -1)).IsZero(0), "n=%d", n)
		assert.True(t, Add(a, Neg(a)).IsZero(0), "n=%d", n)
		assert.True(t, Sub(a, a).IsZero(0), "n=%d", n)
	}
}

// TestScalarOps tests scalar addition, subtraction, scaling and division.
func TestScalarOps(t *testing.T) {
	p := cubic()

	q := AddScalar(p, 2)
	assert.Equal(t, NewLinear(2, 3), q[0])
	assert.Equal(t, p[1], q[1])
	assert.Equal(t, NewLinear(0, 1), p[0], "operand must not change")

	assert.Equal(t, FromScalar(4), AddScalar(nil, 4))
	assert.Equal(t, FromScalar(-4), SubScalar(SBasis{}, 4))

	for _, x := range sampleTs {
		assert.InDelta(t, x*x*x-0.5, SubScalar(p, 0.5).ValueAt(x), 1e-15)
		assert.InDelta(t, 3*x*x*x, Scale(p, 3).ValueAt(x), 1e-15)
		assert.InDelta(t, x*x*x/4, Div(p, 4).ValueAt(x), 1e-15)
	}
}

// TestShift tests multiplication by powers of s and dropping terms.
func TestShift(t *testing.T) {
	p := New(NewLinear(1, 2), NewLinear(3, 4))

	s2 := Shift(p, 2)
	require.Len(t, s2, 4)
	assert.Equal(t, Linear{}, s2[0])
	assert.Equal(t, Linear{}, s2[1])
	assert.Equal(t, p[0], s2[2])
	for _, x := range sampleTs {
		s := x * (1 - x)
		assert.InDelta(t, s*s*p.ValueAt(x), s2.ValueAt(x), 1e-15)
	}

	assert.Equal(t, p, Shift(p, 0))
	assert.Equal(t, New(NewLinear(3, 4)), Shift(p, -1))
	assert.Empty(t, Shift(p, -2))
	assert.Empty(t, Shift(p, -5))
}

// TestReverse tests p(1-t).
func TestReverse(t *testing.T) {
	r := testutil.NewRand()
	p := randomSBasis(r, 4, 1)
	rev := Reverse(p)
	for _, x := range sampleTs {
		assert.InDelta(t, p.ValueAt(1-x), rev.ValueAt(x), 1e-14)
	}
	assert.Equal(t, p, Reverse(rev))
}

// Package testutil provides reusable test helper functions for S-basis tests.
package testutil

import (
	"math"
	"math/rand/v2"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/stretchr/testify/assert"
)

// Default tolerances for various test scenarios.
const (
	DefaultTolerance = 1e-10
	ExactTolerance   = 1e-13
	FiniteDiffStep   = 1e-5
	FiniteDiffTol    = 1e-6
)

// Seed is the fixed seed used by generated test polynomials.
const Seed = 0x5ba515

// AssertNoNaNOrInf verifies that no elements in the slice are NaN or Inf.
func AssertNoNaNOrInf(t *testing.T, s []float64, msgAndArgs ...any) bool {
	t.Helper()
	for i, v := range s {
		if math.IsNaN(v) {
			return assert.Fail(t, "found NaN", "s[%d] is NaN", i)
		}
		if math.IsInf(v, 0) {
			return assert.Fail(t, "found Inf", "s[%d] is Inf", i)
		}
	}
	return true
}

// AssertRelativeError verifies that the relative error between actual and expected is within tolerance.
func AssertRelativeError(t *testing.T, expected, actual, tolerance float64, msgAndArgs ...any) bool {
	t.Helper()
	if expected == 0 {
		return assert.InDelta(t, expected, actual, tolerance, msgAndArgs...)
	}
	relError := math.Abs(actual-expected) / math.Abs(expected)
	return assert.LessOrEqual(t, relError, tolerance,
		"relative error %e exceeds tolerance %e (expected=%f, actual=%f)",
		relError, tolerance, expected, actual)
}

// AssertInRange verifies that a value is within [min, max].
func AssertInRange(t *testing.T, value, minVal, maxVal float64, msgAndArgs ...any) bool {
	t.Helper()
	if value < minVal || value > maxVal {
		return assert.Fail(t, "value out of range",
			"value %f is outside range [%f, %f]", value, minVal, maxVal)
	}
	return true
}

// AssertFuncsNear verifies that f and g agree within tolerance at n evenly
// spaced points of [lo, hi].
func AssertFuncsNear(t *testing.T, f, g func(float64) float64, lo, hi float64, n int, tolerance float64) bool {
	t.Helper()
	for i := range n {
		x := lo
		if n > 1 {
			x = lo + (hi-lo)*float64(i)/float64(n-1)
		}
		if !assert.InDelta(t, f(x), g(x), tolerance, "at t=%g", x) {
			return false
		}
	}
	return true
}

// MaxDeviation returns max |f(x) - g(x)| over n evenly spaced points of
// [lo, hi].
func MaxDeviation(f, g func(float64) float64, lo, hi float64, n int) float64 {
	var worst float64
	for i := range n {
		x := lo
		if n > 1 {
			x = lo + (hi-lo)*float64(i)/float64(n-1)
		}
		worst = max(worst, math.Abs(f(x)-g(x)))
	}
	return worst
}

// AssertPairsApprox compares coefficient pairs with go-cmp under an
// absolute tolerance and reports the diff on mismatch.
func AssertPairsApprox(t *testing.T, want, got [][2]float64, tolerance float64) bool {
	t.Helper()
	if diff := cmp.Diff(want, got, cmpopts.EquateApprox(0, tolerance), cmpopts.EquateEmpty()); diff != "" {
		return assert.Fail(t, "coefficients differ", "(-want +got):\n%s", diff)
	}
	return true
}

// NewRand returns a deterministic generator for randomized tests.
func NewRand() *rand.Rand {
	return rand.New(rand.NewPCG(Seed, Seed))
}

// RandomPairs returns n coefficient pairs drawn uniformly from [-scale, scale].
func RandomPairs(r *rand.Rand, n int, scale float64) [][2]float64 {
	out := make([][2]float64, n)
	for i := range out {
		out[i] = [2]float64{(2*r.Float64() - 1) * scale, (2*r.Float64() - 1) * scale}
	}
	return out
}

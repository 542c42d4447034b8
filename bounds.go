package sbasis

import (
	"github.com/tphakala/go-sbasis/internal/mathutil"
)

// BoundsFast returns an enclosing interval for the fragments of a with index
// >= order, that is for Σ_{k>=order} d_k(t)·s(t)^k over t in [0, 1].
//
// The fragments are folded from the highest index down. With the running
// bound [lo, hi] standing in for the tail, fragment (a, b) contributes
// (1-t)a + tb + v·t(1-t) for v = lo or hi. The minimum (maximum) of that
// quadratic is taken at its stationary point when that lies in [0, 1],
// otherwise at an endpoint. The result is scaled by 0.25^order since
// s(t) <= 1/4. The bound is cheap and sound but generally not tight.
func BoundsFast(a SBasis, order int) Interval {
	order = max(order, 0)

	var res Interval
	for j := len(a) - 1; j >= order; j-- {
		lo, hi := a[j].A, a[j].B

		var t float64
		v := res.Min()
		if v < 0 {
			t = ((hi-lo)/v + 1) / 2
		}
		if v >= 0 || t < 0 || t > 1 {
			res.SetMin(mathutil.Min2(lo, hi))
		} else {
			res.SetMin(mathutil.Lerp(t, lo+v*t, hi))
		}

		v = res.Max()
		if v > 0 {
			t = ((hi-lo)/v + 1) / 2
		}
		if v <= 0 || t < 0 || t > 1 {
			res.SetMax(mathutil.Max2(lo, hi))
		} else {
			res.SetMax(mathutil.Lerp(t, lo+v*t, hi))
		}
	}

	if order > 0 {
		res = res.Scale(mathutil.PowInt(boundsShrinkFactor, order))
	}
	return res
}

// TailError bounds the magnitude of everything a contributes from fragment
// tail upward, i.e. the error of truncating a to tail fragments.
func (a SBasis) TailError(tail int) float64 {
	return BoundsFast(a, tail).MaxAbs()
}

// Package vecops provides the vector kernels used by the S-basis product.
//
// Coefficient endpoints are stored as separate float64 slices so that the
// direct and correction passes of the exact product reduce to dot products
// of one operand against the reversed other, which maps onto the SIMD
// kernels of github.com/tphakala/simd.
package vecops

import (
	"github.com/tphakala/simd/f64"
)

// Ops provides the kernels used by the algebra.
// Function pointers allow swapping the SIMD implementation for a scalar
// reference in tests.
type Ops struct {
	// DotProduct returns Σ a[i]*b[i] over the shorter of the two slices.
	DotProduct func(a, b []float64) float64

	// Scale multiplies each element by scalar s: dst[i] = a[i] * s
	Scale func(dst, a []float64, s float64)

	// Sum returns the sum of all elements.
	Sum func(a []float64) float64
}

var (
	simdOps = Ops{
		DotProduct: f64.DotProduct,
		Scale:      f64.Scale,
		Sum:        f64.Sum,
	}
	scalarOps = Ops{
		DotProduct: scalarDot,
		Scale:      scalarScale,
		Sum:        scalarSum,
	}
)

// SIMD returns the SIMD-accelerated operations.
func SIMD() *Ops {
	return &simdOps
}

// Scalar returns the pure Go reference operations.
func Scalar() *Ops {
	return &scalarOps
}

// minDotWindow is the shortest window handed to DotProduct. Shorter windows
// are summed inline, where the kernel call would cost more than the work.
const minDotWindow = 4

// ConvolveAdd accumulates the full linear convolution of a and b into dst:
//
//	dst[n] += Σ_{i+j=n} a[i]*b[j]
//
// dst must have length >= len(a)+len(b)-1. Each output term is a single dot
// product of a window of a against the reversed b.
func (o *Ops) ConvolveAdd(dst, a, b []float64) {
	rev := make([]float64, len(b))
	Reverse(rev, b)
	o.ConvolveAddReversed(dst, a, rev)
}

// ConvolveAddReversed is ConvolveAdd for a second operand that is already
// stored in reverse order. It does not allocate.
func (o *Ops) ConvolveAddReversed(dst, a, rev []float64) {
	la, lb := len(a), len(rev)
	if la == 0 || lb == 0 {
		return
	}

	for n := range la + lb - 1 {
		lo := max(0, n-(lb-1))
		hi := min(n, la-1)
		off := lb - 1 - n
		x, y := a[lo:hi+1], rev[off+lo:off+hi+1]
		if len(x) < minDotWindow {
			dst[n] += scalarDot(x, y)
			continue
		}
		dst[n] += o.DotProduct(x, y)
	}
}

// Reverse writes src into dst back to front. dst must not be shorter than
// src.
func Reverse(dst, src []float64) {
	last := len(src) - 1
	for m := range src {
		dst[m] = src[last-m]
	}
}

func scalarDot(a, b []float64) float64 {
	n := min(len(a), len(b))
	var sum float64
	for i := range n {
		sum += a[i] * b[i]
	}
	return sum
}

func scalarScale(dst, a []float64, s float64) {
	for i := range min(len(dst), len(a)) {
		dst[i] = a[i] * s
	}
}

func scalarSum(a []float64) float64 {
	var sum float64
	for _, v := range a {
		sum += v
	}
	return sum
}

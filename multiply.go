package sbasis

import (
	"github.com/tphakala/go-sbasis/internal/vecops"
)

// kernels performs the convolutions of the exact product.
var kernels = vecops.SIMD()

// Multiply returns the exact pointwise product a·b.
func Multiply(a, b SBasis) SBasis {
	return MultiplyAdd(a, b, nil)
}

// MultiplyLinear returns the product of a with a single fragment.
func MultiplyLinear(a SBasis, l Linear) SBasis {
	return MultiplyAdd(a, SBasis{l}, nil)
}

// MultiplyAdd returns a·b + c, computed exactly and normalized.
//
// The product of fragments x·s^i and y·s^j is
//
//	(x.A·y.A, x.B·y.B)·s^(i+j) − Tri(x)·Tri(y)·s^(i+j+1)
//
// so the endpoint products convolve into index i+j and the negated slope
// products convolve into index i+j+1. If either factor is the zero
// polynomial the result is a copy of c.
func MultiplyAdd(a, b, c SBasis) SBasis {
	if len(a) == 0 || len(b) == 0 || a.IsZero(0) || b.IsZero(0) {
		return c.Clone()
	}

	la, lb := len(a), len(b)
	n := max(la+lb, len(c))

	// One scratch allocation holds the result accumulators, the split
	// operands (b reversed) and the correction terms.
	buf := make([]float64, 2*n+3*la+3*lb+la+lb-1)
	resA, buf := buf[:n], buf[n:]
	resB, buf := buf[:n], buf[n:]
	aA, buf := buf[:la], buf[la:]
	aB, buf := buf[:la], buf[la:]
	aTri, buf := buf[:la], buf[la:]
	bA, buf := buf[:lb], buf[lb:]
	bB, buf := buf[:lb], buf[lb:]
	bTri, corr := buf[:lb], buf[lb:]

	for i, l := range c {
		resA[i], resB[i] = l.A, l.B
	}
	for i, l := range a {
		aA[i], aB[i], aTri[i] = l.A, l.B, -l.Tri()
	}
	for j, l := range b {
		r := lb - 1 - j
		bA[r], bB[r], bTri[r] = l.A, l.B, l.Tri()
	}

	// Correction pass, shifted up one order.
	kernels.ConvolveAddReversed(corr, aTri, bTri)
	for i, v := range corr {
		resA[i+1] += v
		resB[i+1] += v
	}

	// Direct pass.
	kernels.ConvolveAddReversed(resA, aA, bA)
	kernels.ConvolveAddReversed(resB, aB, bB)

	out := make(SBasis, n)
	for i := range out {
		out[i] = NewLinear(resA[i], resB[i])
	}
	out.Normalize()
	return out
}

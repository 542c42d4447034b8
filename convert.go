package sbasis

import (
	"errors"
	"fmt"

	"gonum.org/v1/gonum/floats"

	"github.com/tphakala/go-sbasis/internal/fit"
)

// FromMonomial converts power-basis coefficients, coeffs[i] multiplying
// t^i, to the S-power basis. The conversion is exact up to rounding.
func FromMonomial(coeffs []float64) SBasis {
	var r SBasis
	for i := len(coeffs) - 1; i >= 0; i-- {
		r = AddScalar(MultiplyLinear(r, NewLinear(0, 1)), coeffs[i])
	}
	r.Normalize()
	return r
}

// Sample evaluates a at n uniformly spaced points covering [0, 1]. For
// n == 1 the single sample is p(0); for n <= 0 the result is nil.
func Sample(a SBasis, n int) []float64 {
	switch {
	case n <= 0:
		return nil
	case n < minSpanSamples:
		return []float64{a.ValueAt(0)}
	}

	ys := floats.Span(make([]float64, n), 0, 1)
	for i, t := range ys {
		ys[i] = a.ValueAt(t)
	}
	return ys
}

// Fit returns the order-fragment polynomial closest in the least-squares
// sense to the samples (ts[i], ys[i]). At least 2·order samples are needed.
func Fit(ts, ys []float64, order int) (SBasis, error) {
	if order < 1 {
		return nil, fmt.Errorf("%w: k=%d, need at least 1", ErrInvalidOrder, order)
	}

	coeffs, err := fit.LeastSquares(ts, ys, order)
	if err != nil {
		if errors.Is(err, fit.ErrMismatch) || errors.Is(err, fit.ErrUnderdetermined) || errors.Is(err, fit.ErrNotFinite) {
			return nil, fmt.Errorf("%w: %w", ErrInvalidSamples, err)
		}
		return nil, err
	}

	out := make(SBasis, order)
	for k := range out {
		out[k] = NewLinear(coeffs[fragmentUnknowns*k], coeffs[fragmentUnknowns*k+1])
	}
	out.Normalize()
	return out, nil
}

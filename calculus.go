package sbasis

import (
	"fmt"
	"math"
)

// Integral returns the antiderivative of c that vanishes at t = 0.
//
// The slope of each fragment is absorbed into the next order up as a
// constant fragment, then the remaining symmetric parts are integrated from
// the top down, each feeding a triangle term into the order below.
func Integral(c SBasis) SBasis {
	a := make(SBasis, len(c)+1)
	for k := 1; k <= len(c); k++ {
		a[k] = Constant(-c[k-1].Tri() / float64(2*k))
	}

	var aTri float64
	for k := len(c) - 1; k >= 0; k-- {
		hatDen := (c[k].A + c[k].B) / integralHalf
		aTri = (hatDen + float64(k+1)*aTri/integralHalf) / float64(2*k+1)
		a[k].A -= aTri / integralHalf
		a[k].B += aTri / integralHalf
	}

	a.Normalize()
	if len(a) == 0 {
		return a
	}
	return SubScalar(a, a.At0())
}

// Divide returns the series quotient a/b truncated to k fragments.
//
// Each step divides the remainder's fragment i by b's constant fragment
// endpoint-wise and subtracts the corresponding multiple of b. b must have
// nonzero endpoints.
func Divide(a, b SBasis, k int) (SBasis, error) {
	if k < 1 {
		return nil, fmt.Errorf("%w: k=%d, need at least 1", ErrInvalidOrder, k)
	}
	if len(b) == 0 || b[0].A == 0 || b[0].B == 0 {
		return nil, fmt.Errorf("%w: divisor constant fragment %v", ErrDivisionByZero, b.term(0))
	}

	c := make(SBasis, k)
	r := a.Clone()
	if len(r) < k {
		r = append(r, make(SBasis, k-len(r))...)
	}

	for i := range k {
		ci := NewLinear(r[i].A/b[0].A, r[i].B/b[0].B)
		c[i] = c[i].Add(ci)
		r = Sub(r, Shift(MultiplyLinear(b, ci), i))
		r.Truncate(k + 1)
		if r.TailError(i) == 0 {
			break
		}
	}

	c.Normalize()
	return c, nil
}

// Reciprocal returns the series 1/a truncated to k fragments.
func Reciprocal(a SBasis, k int) (SBasis, error) {
	return Divide(FromScalar(1), a, k)
}

// Sqrt returns the series square root of a truncated to k fragments.
//
// Starting from the endpoint square roots, each step picks the fragment c_i
// that cancels the leading remainder term of a - c² and updates the
// remainder with (2c + c_i s^i)·c_i s^i. Both endpoints of a must be
// strictly positive.
func Sqrt(a SBasis, k int) (SBasis, error) {
	if k < 1 {
		return nil, fmt.Errorf("%w: k=%d, need at least 1", ErrInvalidOrder, k)
	}
	if a.IsZero(0) {
		return SBasis{}, nil
	}
	if !(a[0].A > 0 && a[0].B > 0) {
		return nil, fmt.Errorf("%w: sqrt needs positive endpoints, have %v", ErrDomain, a[0])
	}

	c := FromLinear(NewLinear(math.Sqrt(a[0].A), math.Sqrt(a[0].B)))
	r := Sub(a, Multiply(c, c))

	for i := 1; i < k && i < len(r); i++ {
		ci := NewLinear(r[i].A/(sqrtDoubling*c[0].A), r[i].B/(sqrtDoubling*c[0].B))
		cisi := Shift(FromLinear(ci), i)
		r = Sub(r, MultiplyLinear(Shift(Add(Scale(c, sqrtDoubling), cisi), i), ci))
		r.Truncate(k + 1)
		c = Add(c, cisi)
		if r.TailError(i) == 0 {
			break
		}
	}

	c.Truncate(k)
	c.Normalize()
	return c, nil
}

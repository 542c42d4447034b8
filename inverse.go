package sbasis

import (
	"fmt"

	"go.uber.org/zap"
)

// Inverse returns the functional inverse of a truncated to k fragments, the
// series c with c(a(t)) ≈ t.
//
// a should map [0, 1] monotonically onto [0, 1] (a(0) = 0, a(1) = 1). Other
// maps are normalized by removing the offset a(0) and dividing by the slope
// of the linear fragment; the same offset and slope are then removed from
// the inverted series. For such non-unit maps the result is therefore NOT
// the functional inverse of a: c(a(t)) ≈ t does not hold. Callers that need
// it should invert (a - a(0)) / slope themselves and map the input back.
// The error of the result shrinks as k grows, and an a that is exactly the
// identity yields the identity for every k.
//
// It returns ErrEmpty for the zero polynomial, ErrInvalidOrder for k < 1 and
// ErrNotInvertible when the normalized slope is exactly zero.
func Inverse(a SBasis, k int) (SBasis, error) {
	if len(a) == 0 {
		return nil, ErrEmpty
	}
	if k < 1 {
		return nil, fmt.Errorf("%w: k=%d, need at least 1", ErrInvalidOrder, k)
	}

	a = a.Clone()
	a0 := a[0].A
	if a0 != 0 {
		a = SubScalar(a, a0)
	}
	a1 := a[0].B
	if a1 == 0 {
		return nil, fmt.Errorf("%w: zero slope after removing offset %g", ErrNotInvertible, a0)
	}
	if a1 != 1 {
		a = Div(a, a1)
	}

	c := make(SBasis, k)
	switch {
	case len(a) >= closedFormInverseOrder && k == closedFormInverseOrder:
		c[0] = NewLinear(0, 1)
		t1 := NewLinear(1+a[1].A, 1-a[1].B)
		c[1] = NewLinear(-a[1].A/t1.A, -a[1].B/t1.B)
	case len(a) >= closedFormInverseOrder:
		reversion(a, c)
	default:
		c[0] = NewLinear(0, 1)
	}

	c = SubScalar(c, a0)
	c = Div(c, a1)
	c.Normalize()
	return c, nil
}

// reversion fills c with the series reversion of the unit-range map a.
//
// Writing t(u) = (1-a(u))·a(u) for the image of the basis generator, each
// step reads the next inverse fragment off the remainder r (scaled by the
// accumulated power of the linear factor 1/t_1), subtracts its contribution
// c_i(u)·t(u)^i from r, and stops once r has nothing left from order i up.
// Terms past len(c) cannot affect the result, so r is truncated there.
func reversion(a, c SBasis) {
	log := Logger()
	k := len(c)

	r := Identity()
	one := Constant(1)
	t1 := NewLinear(1/(1+a[1].A), 1/(1-a[1].B))
	t1i := one
	oneMinusA := Sub(FromLinear(one), a)
	t := Multiply(oneMinusA, a)
	ti := FromLinear(one)

	for i := range k {
		if len(r) <= i {
			r = append(r, make(SBasis, i+1-len(r))...)
		}

		ci := NewLinear(r[i].A*t1i.A, r[i].B*t1i.B)
		t1i.A *= t1.A
		t1i.B *= t1.B
		c[i] = ci

		// ci is in the v parameterisation; map it back to u.
		civ := Add(Scale(oneMinusA, ci.A), Scale(a, ci.B))
		r = Sub(r, Multiply(civ, ti))
		r.Truncate(k)

		tail := r.TailError(i)
		if ce := log.Check(zap.DebugLevel, "Reversion step"); ce != nil {
			ce.Write(zap.Int("step", i), zap.Stringer("coefficient", ci), zap.Float64("tail_error", tail))
		}
		if tail == 0 {
			log.Debug("Reversion converged", zap.Int("steps", i+1), zap.Int("order", k))
			return
		}
		ti = Multiply(ti, t)
	}
}

package sbasis

import (
	"fmt"
	"math"

	"github.com/tphakala/go-sbasis/internal/mathutil"
)

// Linear is a degree-one fragment: the interpolant (1-t)·A + t·B taking the
// value A at t=0 and B at t=1. Fragment k of an SBasis is the coefficient of
// s(t)^k.
type Linear struct {
	A, B float64
}

// NewLinear returns the fragment with endpoint values a and b.
func NewLinear(a, b float64) Linear {
	return Linear{A: a, B: b}
}

// Constant returns the fragment with both endpoints equal to v.
func Constant(v float64) Linear {
	return Linear{A: v, B: v}
}

// Hat is an alias of Constant.
func Hat(v float64) Linear {
	return Constant(v)
}

// At returns A for i == 0 and B for i == 1. Any other index panics.
func (l Linear) At(i int) float64 {
	switch i {
	case 0:
		return l.A
	case 1:
		return l.B
	}
	panic(fmt.Sprintf("sbasis: Linear index %d out of range [0,1]", i))
}

// ValueAt evaluates the fragment at t.
func (l Linear) ValueAt(t float64) float64 {
	return mathutil.Lerp(t, l.A, l.B)
}

// Add returns l + o.
func (l Linear) Add(o Linear) Linear {
	return Linear{A: l.A + o.A, B: l.B + o.B}
}

// Sub returns l - o.
func (l Linear) Sub(o Linear) Linear {
	return Linear{A: l.A - o.A, B: l.B - o.B}
}

// AddScalar adds v to both endpoints.
func (l Linear) AddScalar(v float64) Linear {
	return Linear{A: l.A + v, B: l.B + v}
}

// Scale multiplies both endpoints by k.
func (l Linear) Scale(k float64) Linear {
	return Linear{A: l.A * k, B: l.B * k}
}

// Neg returns -l.
func (l Linear) Neg() Linear {
	return Linear{A: -l.A, B: -l.B}
}

// Tri returns the slope term B - A. The product of two fragments differs
// from the fragment of endpoint products by -Tri(x)·Tri(y)·s(t).
func (l Linear) Tri() float64 {
	return l.B - l.A
}

// IsZero reports whether both endpoints are within eps of zero.
func (l Linear) IsZero(eps float64) bool {
	return math.Abs(l.A) <= eps && math.Abs(l.B) <= eps
}

// IsConstant reports whether the endpoints are within eps of each other.
func (l Linear) IsConstant(eps float64) bool {
	return mathutil.Near(l.A, l.B, eps)
}

// IsFinite reports whether both endpoints are finite.
func (l Linear) IsFinite() bool {
	return mathutil.IsFinite(l.A) && mathutil.IsFinite(l.B)
}

// Bounds returns the range of the fragment over [0, 1].
func (l Linear) Bounds() Interval {
	return NewInterval(mathutil.Min2(l.A, l.B), mathutil.Max2(l.A, l.B))
}

func (l Linear) String() string {
	return fmt.Sprintf("(%g, %g)", l.A, l.B)
}

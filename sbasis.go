package sbasis

import (
	"errors"
	"slices"
	"strings"

	"github.com/tphakala/go-sbasis/internal/mathutil"
)

// SBasis is a polynomial in the S-power basis. Element k is the fragment
// multiplying s(t)^k. The empty SBasis is the zero polynomial.
//
// Normalization is explicit: operations may leave trailing (0, 0) fragments
// behind, and Normalize removes them.
type SBasis []Linear

// Common errors returned by the series operations.
var (
	// ErrEmpty indicates an operation that needs at least one fragment
	// received the zero polynomial.
	ErrEmpty = errors.New("empty polynomial")

	// ErrNotInvertible indicates a map whose linear term has zero slope.
	ErrNotInvertible = errors.New("polynomial is not invertible")

	// ErrInvalidOrder indicates a truncation order below one.
	ErrInvalidOrder = errors.New("invalid truncation order")

	// ErrDivisionByZero indicates a divisor whose constant fragment has a
	// zero endpoint.
	ErrDivisionByZero = errors.New("division by zero")

	// ErrDomain indicates an argument outside the domain of the series,
	// such as a negative endpoint under a square root.
	ErrDomain = errors.New("argument outside domain")

	// ErrInvalidSamples indicates sample data unsuitable for fitting.
	ErrInvalidSamples = errors.New("invalid samples")
)

// New returns an SBasis holding a copy of fragments.
func New(fragments ...Linear) SBasis {
	return slices.Clone(SBasis(fragments))
}

// FromScalar returns the constant polynomial v.
func FromScalar(v float64) SBasis {
	return SBasis{Constant(v)}
}

// FromLinear returns the polynomial consisting of the single fragment l.
func FromLinear(l Linear) SBasis {
	return SBasis{l}
}

// Identity returns p(t) = t.
func Identity() SBasis {
	return SBasis{NewLinear(0, 1)}
}

// Clone returns an independent copy of a.
func (a SBasis) Clone() SBasis {
	return slices.Clone(a)
}

// term returns fragment i, or the zero fragment past the end.
func (a SBasis) term(i int) Linear {
	if i < len(a) {
		return a[i]
	}
	return Linear{}
}

// At0 returns p(0).
func (a SBasis) At0() float64 {
	if len(a) == 0 {
		return 0
	}
	return a[0].A
}

// At1 returns p(1).
func (a SBasis) At1() float64 {
	if len(a) == 0 {
		return 0
	}
	return a[0].B
}

// ValueAt evaluates the polynomial at t.
//
// Both endpoint series are accumulated from the highest fragment down in
// powers of s = t(1-t), then blended: (1-t)·Σ a_k s^k + t·Σ b_k s^k.
func (a SBasis) ValueAt(t float64) float64 {
	s := t * (1 - t)
	var p0, p1 float64
	for k := len(a) - 1; k >= 0; k-- {
		p0 = p0*s + a[k].A
		p1 = p1*s + a[k].B
	}
	return (1-t)*p0 + t*p1
}

// ValueAndDerivatives returns p(t) followed by the first n derivatives at t.
func (a SBasis) ValueAndDerivatives(t float64, n int) []float64 {
	ret := make([]float64, max(n, 0)+1)
	ret[0] = a.ValueAt(t)
	tmp := a.Clone()
	for i := 1; i < len(ret); i++ {
		tmp.Derive()
		ret[i] = tmp.ValueAt(t)
	}
	return ret
}

// IsZero reports whether every fragment is zero within eps.
// The empty polynomial is zero.
func (a SBasis) IsZero(eps float64) bool {
	for _, l := range a {
		if !l.IsZero(eps) {
			return false
		}
	}
	return true
}

// IsConstant reports whether the polynomial is constant within eps: the
// first fragment has equal endpoints and every higher fragment is zero.
func (a SBasis) IsConstant(eps float64) bool {
	if len(a) == 0 {
		return true
	}
	if !a[0].IsConstant(eps) {
		return false
	}
	return a[1:].IsZero(eps)
}

// IsFinite reports whether every coefficient is finite.
func (a SBasis) IsFinite() bool {
	for _, l := range a {
		if !l.IsFinite() {
			return false
		}
	}
	return true
}

// Derive replaces a with its derivative. The degree drops by at most one.
func (a *SBasis) Derive() {
	c := *a
	if len(c) == 0 {
		return
	}

	last := len(c) - 1
	for k := range last {
		d := float64(2*k+1) * (c[k].B - c[k].A)
		c[k].A = d + float64(k+1)*c[k+1].A
		c[k].B = d - float64(k+1)*c[k+1].B
	}

	d := float64(2*last+1) * (c[last].B - c[last].A)
	if d == 0 {
		*a = c[:last]
		return
	}
	c[last] = Constant(d)
}

// Derivative returns the derivative of a, leaving a unchanged.
func Derivative(a SBasis) SBasis {
	c := a.Clone()
	c.Derive()
	return c
}

// Normalize drops trailing (0, 0) fragments.
func (a *SBasis) Normalize() {
	c := *a
	for len(c) > 0 && c[len(c)-1].A == 0 && c[len(c)-1].B == 0 {
		c = c[:len(c)-1]
	}
	*a = c
}

// Truncate keeps the first k fragments. It is a no-op when a is already
// that short.
func (a *SBasis) Truncate(k int) {
	k = max(k, 0)
	if k < len(*a) {
		*a = (*a)[:k]
	}
}

// Equal reports whether a and b agree coefficient-wise within eps. Missing
// high fragments compare as zero, so normalization does not matter.
func Equal(a, b SBasis, eps float64) bool {
	for i := range max(len(a), len(b)) {
		x, y := a.term(i), b.term(i)
		if !mathutil.Near(x.A, y.A, eps) || !mathutil.Near(x.B, y.B, eps) {
			return false
		}
	}
	return true
}

func (a SBasis) String() string {
	var sb strings.Builder
	sb.WriteByte('{')
	for i, l := range a {
		if i > 0 {
			sb.WriteString(", ")
		}
		sb.WriteString(l.String())
	}
	sb.WriteByte('}')
	return sb.String()
}

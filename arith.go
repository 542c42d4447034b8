package sbasis

// Add returns a + b. The result has as many fragments as the longer operand.
func Add(a, b SBasis) SBasis {
	out := make(SBasis, max(len(a), len(b)))
	for i := range out {
		out[i] = a.term(i).Add(b.term(i))
	}
	return out
}

// Sub returns a - b. Fragments present only in b are negated.
func Sub(a, b SBasis) SBasis {
	out := make(SBasis, max(len(a), len(b)))
	for i := range out {
		out[i] = a.term(i).Sub(b.term(i))
	}
	return out
}

// Neg returns -a.
func Neg(a SBasis) SBasis {
	out := make(SBasis, len(a))
	for i, l := range a {
		out[i] = l.Neg()
	}
	return out
}

// AddScalar returns a + v. Only the constant fragment changes; the zero
// polynomial becomes the constant v.
func AddScalar(a SBasis, v float64) SBasis {
	if len(a) == 0 {
		return FromScalar(v)
	}
	out := a.Clone()
	out[0] = out[0].AddScalar(v)
	return out
}

// SubScalar returns a - v.
func SubScalar(a SBasis, v float64) SBasis {
	return AddScalar(a, -v)
}

// Scale returns k·a.
func Scale(a SBasis, k float64) SBasis {
	out := make(SBasis, len(a))
	for i, l := range a {
		out[i] = l.Scale(k)
	}
	return out
}

// Div returns a/k, computed as multiplication by 1/k.
func Div(a SBasis, k float64) SBasis {
	return Scale(a, 1/k)
}

// Shift returns a·s(t)^n for n >= 0. A negative n drops the -n lowest
// fragments instead.
func Shift(a SBasis, n int) SBasis {
	if n < 0 {
		if -n >= len(a) {
			return SBasis{}
		}
		return a[-n:].Clone()
	}
	out := make(SBasis, n+len(a))
	copy(out[n:], a)
	return out
}

// Reverse returns p(1-t).
func Reverse(a SBasis) SBasis {
	out := make(SBasis, len(a))
	for i, l := range a {
		out[i] = NewLinear(l.B, l.A)
	}
	return out
}

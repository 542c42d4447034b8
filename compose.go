package sbasis

// Compose returns a(b(t)).
//
// With s = (1-b)·b substituted for the basis generator, a is evaluated by a
// Horner recurrence from its highest fragment down:
//
//	r = r·s + ((1-b)·a_i.A + b·a_i.B)
//
// Composition imposes no range check on b; a is simply extrapolated where
// b leaves [0, 1].
func Compose(a, b SBasis) SBasis {
	s := Multiply(Sub(FromScalar(1), b), b)

	var r SBasis
	for i := len(a) - 1; i >= 0; i-- {
		term := Add(Sub(FromScalar(a[i].A), Scale(b, a[i].A)), Scale(b, a[i].B))
		r = MultiplyAdd(r, s, term)
	}
	return r
}

// ComposeTrunc returns a(b(t)) truncated to its first k fragments.
func ComposeTrunc(a, b SBasis, k int) SBasis {
	r := Compose(a, b)
	r.Truncate(k)
	return r
}

// Portion returns a restricted to [from, to] and reparameterised so that
// the result spans that sub-interval as t runs over [0, 1]. Swapping from
// and to reverses the direction.
func Portion(a SBasis, from, to float64) SBasis {
	return Compose(a, FromLinear(NewLinear(from, to)))
}

// BoundsLocal returns BoundsFast of a restricted to the sub-interval i.
func BoundsLocal(a SBasis, i Interval, order int) Interval {
	return BoundsFast(Portion(a, i.Min(), i.Max()), order)
}

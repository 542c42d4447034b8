// Package sbasis provides exact polynomial algebra in the S-power basis.
//
// An [SBasis] represents a smooth function on the domain [0, 1] as
//
//	p(t) = Σ_k d_k(t) · s(t)^k,   s(t) = t(1-t),   d_k(t) = (1-t)·a_k + t·b_k
//
// where each d_k is a [Linear] fragment holding the pair (a_k, b_k). The
// basis is well suited to curve geometry: the endpoints of the curve are
// read directly from the constant term, products are exact, and since
// 0 ≤ s(t) ≤ 1/4 on [0, 1] every higher-order term is cheap to bound.
//
// # Features
//
//   - Evaluation, endpoint queries and repeated derivatives
//   - Addition, subtraction, scalar arithmetic
//   - Exact pointwise multiplication with the basis-correction term
//   - Functional composition a(b(t)), with optional truncation
//   - Truncated series inversion of monotonic unit-range maps
//   - Fast interval bounds and tail-error estimates for truncation analysis
//   - Integral, reversal, restriction to a sub-interval, truncated division
//     and square root
//   - Conversion from the power basis and least-squares fitting to samples
//
// # Quick Start
//
//	p := sbasis.New(sbasis.NewLinear(0, 1), sbasis.NewLinear(0.2, 0.2))
//	fmt.Println(p.ValueAt(0.5))
//
//	sq := sbasis.Multiply(p, p)            // exact p²
//	inv, err := sbasis.Inverse(p, 8)       // p⁻¹ to 8 terms
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(inv.ValueAt(p.ValueAt(0.3))) // ≈ 0.3
//	fmt.Println(sbasis.BoundsFast(sq, 0))
//
// # Truncation
//
// Composition, inversion, division and square root produce series that are
// only exact in the limit. Operations that truncate take an order k, the
// number of lowest-degree fragments retained. [SBasis.TailError] and
// [BoundsFast] bound what a truncation discards; requesting fewer terms than
// the exact result needs is never an error.
//
// # Errors
//
// Precondition violations are reported as wrapped sentinel errors such as
// [ErrEmpty] and [ErrNotInvertible]. Numerical degeneracy is not signalled:
// non-finite coefficients propagate, and callers check [SBasis.IsFinite]
// where it matters.
//
// # Thread Safety
//
// All free functions are pure and return values that share no storage with
// their operands. The in-place methods [SBasis.Derive], [SBasis.Truncate]
// and [SBasis.Normalize] mutate only their receiver; an instance must not be
// mutated while another goroutine reads it. The package logger set by
// [SetLogger] may be replaced at any time.
package sbasis

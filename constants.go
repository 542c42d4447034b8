package sbasis

import "github.com/tphakala/go-sbasis/internal/mathutil"

// DefaultEpsilon is a general purpose tolerance for the fragment predicates
// IsZero and IsConstant.
const DefaultEpsilon = mathutil.DefaultEpsilon

// Bound scaling
const (
	// boundsShrinkFactor is the maximum of s(t) = t(1-t) on [0, 1]. Each basis
	// order skipped by BoundsFast scales the bound by this factor.
	boundsShrinkFactor = 0.25
)

// Series construction
const (
	// closedFormInverseOrder is the truncation order for which Inverse uses
	// the two-term closed form instead of series reversion.
	closedFormInverseOrder = 2

	// integralHalf halves the triangle term while distributing it over the
	// endpoints of an integrated fragment.
	integralHalf = 2.0

	// sqrtDoubling is the 2 in (c + x)² = c² + 2cx + x².
	sqrtDoubling = 2.0
)

// Sampling limits
const (
	// minSpanSamples is the fewest points a uniform grid over [0, 1] can hold
	// with both endpoints included.
	minSpanSamples = 2

	// fragmentUnknowns is the number of fit unknowns per fragment (a and b).
	fragmentUnknowns = 2
)

package mathutil

// Tolerance constants
const (
	// DefaultEpsilon is the near-zero threshold used by fragment predicates
	// when the caller has no better estimate of coefficient magnitude.
	DefaultEpsilon = 1e-6

	// halfDivisor is used for midpoints and the bounds split parameter.
	halfDivisor = 2.0
)

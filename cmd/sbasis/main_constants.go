package main

// Evaluation defaults
const (
	defaultDerivatives = 0
	defaultBoundsOrder = 0
)

// Accuracy grids stay away from the domain ends, where inversion error is
// largest and least interesting.
const (
	roundTripLo = 0.05
	roundTripHi = 0.95
)

// Reference functions for the fit command
const (
	funcExp         = "exp"
	funcLog1p       = "log1p"
	funcPow         = "pow"
	defaultExponent = 0.5
)

// Package accuracy measures how closely S-basis approximations track their
// targets.
//
// Error samples are summarized with github.com/montanaflynn/stats. Targets
// can be evaluated in extended precision: ReferenceValue evaluates a
// polynomial with math/big, and Exp, Log1p and Pow use
// github.com/ALTree/bigfloat, so the reported error is that of the
// approximation rather than of float64 rounding in the reference.
package accuracy

import (
	"errors"
	"fmt"
	"math"
	"math/big"

	"github.com/ALTree/bigfloat"
	"github.com/montanaflynn/stats"
	"gonum.org/v1/gonum/floats"

	"github.com/tphakala/go-sbasis"
)

// DefaultPrec is the mantissa size, in bits, of reference evaluations.
const DefaultPrec = 256

// tailPercentile is the percentile reported alongside the maximum.
const tailPercentile = 99

// minSamples is the fewest samples a comparison grid may have.
const minSamples = 2

// ErrNoSamples indicates an empty error set.
var ErrNoSamples = errors.New("no samples")

// Report summarizes absolute errors.
type Report struct {
	Samples int
	Max     float64
	Mean    float64
	StdDev  float64
	P99     float64
}

func (r Report) String() string {
	return fmt.Sprintf("n=%d max=%.3e mean=%.3e stddev=%.3e p99=%.3e", r.Samples, r.Max, r.Mean, r.StdDev, r.P99)
}

// Summarize computes the report for the absolute values of errs.
func Summarize(errs []float64) (Report, error) {
	if len(errs) == 0 {
		return Report{}, ErrNoSamples
	}

	abs := make(stats.Float64Data, len(errs))
	for i, e := range errs {
		abs[i] = math.Abs(e)
	}

	var (
		r   = Report{Samples: len(abs)}
		err error
	)
	if r.Max, err = stats.Max(abs); err != nil {
		return Report{}, err
	}
	if r.Mean, err = stats.Mean(abs); err != nil {
		return Report{}, err
	}
	if r.StdDev, err = stats.StandardDeviation(abs); err != nil {
		return Report{}, err
	}
	if r.P99, err = stats.PercentileNearestRank(abs, tailPercentile); err != nil {
		return Report{}, err
	}
	return r, nil
}

// Grid returns n evenly spaced points covering [lo, hi].
func Grid(lo, hi float64, n int) []float64 {
	if n < minSamples {
		return []float64{lo}
	}
	return floats.Span(make([]float64, n), lo, hi)
}

// Compare reports |got(t) - want(t)| over n points of [lo, hi].
func Compare(got, want func(float64) float64, lo, hi float64, n int) (Report, error) {
	ts := Grid(lo, hi, n)
	errs := make([]float64, len(ts))
	for i, t := range ts {
		errs[i] = got(t) - want(t)
	}
	return Summarize(errs)
}

// RoundTrip reports |inv(a(t)) - t| over n points of [lo, hi].
func RoundTrip(a, inv sbasis.SBasis, lo, hi float64, n int) (Report, error) {
	return Compare(
		func(t float64) float64 { return inv.ValueAt(a.ValueAt(t)) },
		func(t float64) float64 { return t },
		lo, hi, n)
}

// ReferenceValue evaluates a at t with prec bits of precision, using the
// same Horner scheme as SBasis.ValueAt.
func ReferenceValue(a sbasis.SBasis, t float64, prec uint) *big.Float {
	bt := newFloat(t, prec)
	one := newFloat(1, prec)
	omt := newFloat(0, prec).Sub(one, bt)
	s := newFloat(0, prec).Mul(bt, omt)

	p0, p1 := newFloat(0, prec), newFloat(0, prec)
	for k := len(a) - 1; k >= 0; k-- {
		p0.Mul(p0, s).Add(p0, newFloat(a[k].A, prec))
		p1.Mul(p1, s).Add(p1, newFloat(a[k].B, prec))
	}

	p0.Mul(p0, omt)
	p1.Mul(p1, bt)
	return p0.Add(p0, p1)
}

// Exp returns e^x rounded to float64 from a prec-bit evaluation.
func Exp(x float64, prec uint) float64 {
	v, _ := bigfloat.Exp(newFloat(x, prec)).Float64()
	return v
}

// Log1p returns ln(1+x) for x > -1 rounded to float64 from a prec-bit
// evaluation. The sum 1+x is formed exactly in extended precision.
func Log1p(x float64, prec uint) float64 {
	if x <= -1 {
		if x == -1 {
			return math.Inf(-1)
		}
		return math.NaN()
	}
	arg := newFloat(1, prec)
	arg.Add(arg, newFloat(x, prec))
	v, _ := bigfloat.Log(arg).Float64()
	return v
}

// Pow returns x^y for x > 0 rounded to float64 from a prec-bit evaluation.
func Pow(x, y float64, prec uint) float64 {
	if x <= 0 {
		return math.Pow(x, y)
	}
	v, _ := bigfloat.Pow(newFloat(x, prec), newFloat(y, prec)).Float64()
	return v
}

func newFloat(x float64, prec uint) *big.Float {
	return new(big.Float).SetPrec(prec).SetFloat64(x)
}

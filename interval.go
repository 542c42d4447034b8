package sbasis

import (
	"fmt"

	"github.com/tphakala/go-sbasis/internal/mathutil"
)

// Interval is a closed range [Min, Max]. The zero value is [0, 0].
//
// Constructors do not sort their arguments; keeping Min <= Max is the
// caller's responsibility when building an Interval directly.
type Interval struct {
	min, max float64
}

// NewInterval returns [lo, hi].
func NewInterval(lo, hi float64) Interval {
	return Interval{min: lo, max: hi}
}

// PointInterval returns the degenerate interval [v, v].
func PointInterval(v float64) Interval {
	return Interval{min: v, max: v}
}

// Min returns the lower bound.
func (i Interval) Min() float64 { return i.min }

// Max returns the upper bound.
func (i Interval) Max() float64 { return i.max }

// At returns Min for 0 and Max for 1. Any other index panics.
func (i Interval) At(idx int) float64 {
	switch idx {
	case 0:
		return i.min
	case 1:
		return i.max
	}
	panic(fmt.Sprintf("sbasis: Interval index %d out of range [0,1]", idx))
}

// SetMin assigns the lower bound. The bounds are not re-sorted.
func (i *Interval) SetMin(v float64) { i.min = v }

// SetMax assigns the upper bound. The bounds are not re-sorted.
func (i *Interval) SetMax(v float64) { i.max = v }

// Scale multiplies both bounds by k. A negative k swaps the bounds so the
// result stays ordered.
func (i Interval) Scale(k float64) Interval {
	lo, hi := i.min*k, i.max*k
	if k < 0 {
		lo, hi = hi, lo
	}
	return Interval{min: lo, max: hi}
}

// Union returns the smallest interval containing both i and o.
func (i Interval) Union(o Interval) Interval {
	return Interval{
		min: mathutil.Min2(i.min, o.min),
		max: mathutil.Max2(i.max, o.max),
	}
}

// Extend returns the smallest interval containing i and v.
func (i Interval) Extend(v float64) Interval {
	if v < i.min {
		i.min = v
	}
	if v > i.max {
		i.max = v
	}
	return i
}

// Contains reports whether min <= v <= max.
func (i Interval) Contains(v float64) bool {
	return i.min <= v && v <= i.max
}

// ContainsInterval reports whether o lies entirely within i.
func (i Interval) ContainsInterval(o Interval) bool {
	return i.min <= o.min && o.max <= i.max
}

// Extent returns max - min.
func (i Interval) Extent() float64 {
	return i.max - i.min
}

// Middle returns the midpoint of the interval.
func (i Interval) Middle() float64 {
	return mathutil.Midpoint(i.min, i.max)
}

// MaxAbs returns the larger of |min| and |max|.
func (i Interval) MaxAbs() float64 {
	lo, hi := i.min, i.max
	if lo < 0 {
		lo = -lo
	}
	if hi < 0 {
		hi = -hi
	}
	return mathutil.Max2(lo, hi)
}

func (i Interval) String() string {
	return fmt.Sprintf("[%g, %g]", i.min, i.max)
}

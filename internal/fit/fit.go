// Package fit computes least-squares S-basis coefficients for sampled data.
//
// A polynomial with n fragments has 2n unknowns (a_k, b_k). Each sample
// (t, y) contributes one row of the design matrix, with the columns
//
//	(1-t)·s^k   and   t·s^k,   s = t(1-t),   k = 0..n-1
//
// The overdetermined system is solved in the least-squares sense by gonum's
// QR-backed SolveVec.
package fit

import (
	"errors"
	"fmt"
	"math"

	"gonum.org/v1/gonum/floats"
	"gonum.org/v1/gonum/mat"

	"github.com/tphakala/go-sbasis/internal/mathutil"
)

// columnsPerFragment is the number of unknowns carried by one fragment.
const columnsPerFragment = 2

var (
	// ErrMismatch indicates abscissae and ordinates of different lengths.
	ErrMismatch = errors.New("sample length mismatch")

	// ErrUnderdetermined indicates fewer samples than unknowns.
	ErrUnderdetermined = errors.New("too few samples for requested order")

	// ErrNotFinite indicates a NaN or Inf in the sample data.
	ErrNotFinite = errors.New("non-finite sample")
)

// DesignMatrix builds the len(ts) x 2·fragments basis matrix.
func DesignMatrix(ts []float64, fragments int) *mat.Dense {
	cols := columnsPerFragment * fragments
	m := mat.NewDense(len(ts), cols, nil)
	for r, t := range ts {
		s := mathutil.SPower(t)
		sk := 1.0
		for k := range fragments {
			m.Set(r, columnsPerFragment*k, (1-t)*sk)
			m.Set(r, columnsPerFragment*k+1, t*sk)
			sk *= s
		}
	}
	return m
}

// LeastSquares returns the coefficients a_0, b_0, a_1, b_1, ... of the
// fragments-term polynomial closest to the samples in the 2-norm.
func LeastSquares(ts, ys []float64, fragments int) ([]float64, error) {
	if len(ts) != len(ys) {
		return nil, fmt.Errorf("%w: %d abscissae, %d ordinates", ErrMismatch, len(ts), len(ys))
	}
	if fragments < 1 {
		return nil, fmt.Errorf("%w: %d fragments", ErrUnderdetermined, fragments)
	}
	if n := columnsPerFragment * fragments; len(ts) < n {
		return nil, fmt.Errorf("%w: %d samples, %d unknowns", ErrUnderdetermined, len(ts), n)
	}
	if !allFinite(ts) || !allFinite(ys) {
		return nil, ErrNotFinite
	}

	a := DesignMatrix(ts, fragments)
	b := mat.NewVecDense(len(ys), append([]float64(nil), ys...))

	// A Condition error only reports poor conditioning; x is still usable.
	var x mat.VecDense
	var cond mat.Condition
	if err := x.SolveVec(a, b); err != nil && !errors.As(err, &cond) {
		return nil, fmt.Errorf("solve least squares: %w", err)
	}
	return mat.Col(nil, 0, &x), nil
}

// Residual returns the largest absolute deviation of the fitted
// coefficients from the samples.
func Residual(ts, ys, coeffs []float64) float64 {
	fragments := len(coeffs) / columnsPerFragment
	if len(ys) == 0 || fragments == 0 {
		return 0
	}
	a := DesignMatrix(ts, fragments)

	var fitted mat.VecDense
	fitted.MulVec(a, mat.NewVecDense(columnsPerFragment*fragments, coeffs[:columnsPerFragment*fragments]))

	diff := make([]float64, len(ys))
	floats.SubTo(diff, mat.Col(nil, 0, &fitted), ys)
	return floats.Norm(diff, math.Inf(1))
}

func allFinite(s []float64) bool {
	for _, v := range s {
		if !mathutil.IsFinite(v) {
			return false
		}
	}
	return true
}

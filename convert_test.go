package sbasis

import (
	"math"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-sbasis/internal/testutil"
)

// TestFromMonomial tests power-basis conversion.
func TestFromMonomial(t *testing.T) {
	tests := []struct {
		name   string
		coeffs []float64
		want   [][2]float64
	}{
		{"Empty", nil, [][2]float64{}},
		{"Constant", []float64{3}, [][2]float64{{3, 3}}},
		{"Identity", []float64{0, 1}, [][2]float64{{0, 1}}},
		{"Square", []float64{0, 0, 1}, [][2]float64{{0, 1}, {-1, -1}}},
		{"Cubic", []float64{0, 0, 0, 1}, [][2]float64{{0, 1}, {-1, -2}}},
		{"Trailing zeros", []float64{1, 2, 0, 0}, [][2]float64{{1, 3}}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			testutil.AssertPairsApprox(t, tt.want, pairs(FromMonomial(tt.coeffs)), 1e-15)
		})
	}
}

// TestFromMonomial_Values tests a quintic pointwise.
func TestFromMonomial_Values(t *testing.T) {
	c := []float64{0.5, -1, 2, 0, -3, 1.25}
	p := FromMonomial(c)
	for _, x := range sampleTs {
		var want float64
		for i := len(c) - 1; i >= 0; i-- {
			want = want*x + c[i]
		}
		assert.InDelta(t, want, p.ValueAt(x), 1e-13, "t=%g", x)
	}
}

// TestSample tests the uniform grid including both endpoints.
func TestSample(t *testing.T) {
	p := cubic()
	got := Sample(p, 5)
	assert.InDeltaSlice(t, []float64{0, 0.015625, 0.125, 0.421875, 1}, got, 1e-15)

	dense := Sample(p, 1001)
	testutil.AssertNoNaNOrInf(t, dense)
	for _, v := range dense {
		testutil.AssertInRange(t, v, 0, 1)
	}

	assert.Nil(t, Sample(p, 0))
	assert.Nil(t, Sample(p, -1))
	assert.Equal(t, []float64{0}, Sample(p, 1))
	assert.Equal(t, []float64{0, 0, 0}, Sample(nil, 3))
}

// TestFit_Exact tests that a polynomial is recovered from its samples.
func TestFit_Exact(t *testing.T) {
	r := testutil.NewRand()
	p := randomSBasis(r, 3, 1)

	ts := make([]float64, 30)
	for i := range ts {
		ts[i] = float64(i) / float64(len(ts)-1)
	}
	ys := make([]float64, len(ts))
	for i, x := range ts {
		ys[i] = p.ValueAt(x)
	}

	got, err := Fit(ts, ys, 3)
	require.NoError(t, err)
	assert.True(t, Equal(p, got, 1e-8), "want %v, got %v", p, got)
}

// TestFit_Exp tests fitting a smooth non-polynomial function.
func TestFit_Exp(t *testing.T) {
	ts := make([]float64, 65)
	for i := range ts {
		ts[i] = float64(i) / 64
	}
	ys := make([]float64, len(ts))
	for i, x := range ts {
		ys[i] = math.Exp(x)
	}

	p, err := Fit(ts, ys, 4)
	require.NoError(t, err)
	testutil.AssertFuncsNear(t, math.Exp, p.ValueAt, 0, 1, 33, 1e-7)
}

// TestFit_Errors tests the sample validation.
func TestFit_Errors(t *testing.T) {
	_, err := Fit([]float64{0, 1}, []float64{0}, 1)
	assert.ErrorIs(t, err, ErrInvalidSamples)
	_, err = Fit([]float64{0, 0.5, 1}, []float64{0, 1, 2}, 2)
	assert.ErrorIs(t, err, ErrInvalidSamples)
	_, err = Fit([]float64{0, math.NaN()}, []float64{0, 1}, 1)
	assert.ErrorIs(t, err, ErrInvalidSamples)
	_, err = Fit([]float64{0, 1}, []float64{0, 1}, 0)
	assert.ErrorIs(t, err, ErrInvalidOrder)
}

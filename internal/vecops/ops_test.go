package vecops

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// naiveConvolve is the textbook double loop used as the reference.
func naiveConvolve(a, b []float64) []float64 {
	if len(a) == 0 || len(b) == 0 {
		return nil
	}
	out := make([]float64, len(a)+len(b)-1)
	for i := range a {
		for j := range b {
			out[i+j] += a[i] * b[j]
		}
	}
	return out
}

// TestConvolveAdd tests the dot-product convolution against the double loop.
func TestConvolveAdd(t *testing.T) {
	tests := []struct {
		name string
		a, b []float64
	}{
		{"Scalars", []float64{3}, []float64{-2}},
		{"Equal length", []float64{1, 2, 3}, []float64{4, 5, 6}},
		{"Long left", []float64{1, -1, 0.5, 2, 7}, []float64{0.25, 3}},
		{"Long right", []float64{2}, []float64{1, 2, 3, 4, 5, 6, 7, 8, 9}},
		{"With zeros", []float64{0, 1, 0}, []float64{1, 0, -1}},
		{"Long windows", []float64{1, 2, 3, 4, 5, 6, 7, 8}, []float64{0.5, -1, 1.5, -2, 2.5, -3, 3.5}},
	}

	for _, tt := range tests {
		for _, ops := range []*Ops{SIMD(), Scalar()} {
			t.Run(tt.name, func(t *testing.T) {
				want := naiveConvolve(tt.a, tt.b)
				got := make([]float64, len(want))
				ops.ConvolveAdd(got, tt.a, tt.b)
				require.Len(t, got, len(want))
				for i := range want {
					assert.InDelta(t, want[i], got[i], 1e-12, "index %d", i)
				}
			})
		}
	}
}

// TestConvolveAddReversed tests the pre-reversed form against ConvolveAdd
// and that it does not allocate.
func TestConvolveAddReversed(t *testing.T) {
	a := []float64{1, -2, 3, -4, 5, -6, 7, -8, 9}
	b := []float64{0.5, 0.25, -1, 2, 4, -0.125}

	want := naiveConvolve(a, b)
	rev := make([]float64, len(b))
	Reverse(rev, b)
	assert.Equal(t, []float64{-0.125, 4, 2, -1, 0.25, 0.5}, rev)

	for _, ops := range []*Ops{SIMD(), Scalar()} {
		got := make([]float64, len(want))
		ops.ConvolveAddReversed(got, a, rev)
		assert.InDeltaSlice(t, want, got, 1e-12)

		allocs := testing.AllocsPerRun(10, func() {
			ops.ConvolveAddReversed(got, a, rev)
		})
		assert.Zero(t, allocs)
	}
}

// TestConvolveAdd_Accumulates tests that existing dst contents are kept.
func TestConvolveAdd_Accumulates(t *testing.T) {
	dst := []float64{10, 20, 30}
	Scalar().ConvolveAdd(dst, []float64{1, 1}, []float64{1, 1})
	assert.Equal(t, []float64{11, 22, 31}, dst)
}

// TestConvolveAdd_Empty tests that empty operands leave dst untouched.
func TestConvolveAdd_Empty(t *testing.T) {
	dst := []float64{1, 2}
	SIMD().ConvolveAdd(dst, nil, []float64{1, 2})
	assert.Equal(t, []float64{1, 2}, dst)
}

// TestScaleAndSum tests that the SIMD kernels agree with the scalar ones.
func TestScaleAndSum(t *testing.T) {
	a := []float64{1, -2, 3.5, 4, 0.125, 6, 7, 8, 9}
	want := make([]float64, len(a))
	got := make([]float64, len(a))
	Scalar().Scale(want, a, -0.5)
	SIMD().Scale(got, a, -0.5)
	assert.InDeltaSlice(t, want, got, 1e-15)
	assert.InDelta(t, Scalar().Sum(a), SIMD().Sum(a), 1e-12)
}

// BenchmarkConvolveAdd measures the product kernel for a degree-16 pair.
func BenchmarkConvolveAdd(b *testing.B) {
	a := make([]float64, 16)
	c := make([]float64, 16)
	for i := range a {
		a[i] = float64(i) * 0.01
		c[i] = float64(i) * 0.02
	}
	dst := make([]float64, 31)

	b.ReportAllocs()
	for b.Loop() {
		SIMD().ConvolveAdd(dst, a, c)
	}
}

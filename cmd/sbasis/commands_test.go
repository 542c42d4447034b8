package main

import (
	"bytes"
	"context"
	"math"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/tphakala/go-sbasis"
	"github.com/tphakala/go-sbasis/internal/document"
	"github.com/tphakala/go-sbasis/internal/render"
)

const testDocument = `polynomials:
  - name: id
    fragments:
      - [0, 1]
  - name: sq
    fragments:
      - [0, 1]
      - [-1, -1]
  - name: ease
    fragments:
      - [0, 1]
      - [0.2, 0.2]
`

const quietConfig = `logging:
  console:
    level: none
`

type fixture struct {
	dir    string
	config string
	doc    string
}

func newFixture(t *testing.T) fixture {
	t.Helper()
	dir := t.TempDir()
	f := fixture{
		dir:    dir,
		config: filepath.Join(dir, "config.yaml"),
		doc:    filepath.Join(dir, "polys.yaml"),
	}
	require.NoError(t, os.WriteFile(f.config, []byte(quietConfig), 0o644))
	require.NoError(t, os.WriteFile(f.doc, []byte(testDocument), 0o644))
	return f
}

func (f fixture) path(name string) string {
	return filepath.Join(f.dir, name)
}

// run executes the program with args after the global flags and returns
// what it printed.
func (f fixture) run(t *testing.T, args ...string) (string, error) {
	t.Helper()
	var out bytes.Buffer
	ctx := contextWithEnv(context.Background(), &out)
	err := newApp(&out).Run(ctx, append([]string{"sbasis", "--config", f.config}, args...))
	return out.String(), err
}

func lines(s string) []string {
	return strings.Split(strings.TrimSpace(s), "\n")
}

// TestEval tests evaluation output for every polynomial and for a selected
// one.
func TestEval(t *testing.T) {
	f := newFixture(t)

	out, err := f.run(t, "eval", f.doc)
	require.NoError(t, err)
	assert.Len(t, lines(out), 3*len(defaultEvalPoints))

	out, err = f.run(t, "eval", "--name", "sq", "--at", "0.5", "--derivatives", "2", f.doc)
	require.NoError(t, err)
	got := lines(out)
	require.Len(t, got, 1)
	assert.True(t, strings.HasPrefix(got[0], "sq\tt=0.5\tp=0.25\td1="), got[0])
	assert.Len(t, strings.Split(got[0], "\t"), 5)
}

// TestEval_Errors tests missing input and unknown names.
func TestEval_Errors(t *testing.T) {
	f := newFixture(t)

	_, err := f.run(t, "eval")
	assert.ErrorIs(t, err, errNoDocument)

	_, err = f.run(t, "eval", "--name", "nope", f.doc)
	assert.ErrorIs(t, err, errNotFound)

	_, err = f.run(t, "eval", f.path("missing.yaml"))
	assert.Error(t, err)
}

// TestBounds tests that bounds enclose the sampled range.
func TestBounds(t *testing.T) {
	f := newFixture(t)

	out, err := f.run(t, "bounds", "--name", "id", f.doc)
	require.NoError(t, err)
	assert.Equal(t, "id\tbounds=[0, 1]\ttail=1.000000e+00\tsampled=[0, 1]\tconstant=false", strings.TrimSpace(out))

	out, err = f.run(t, "bounds", "--order", "1", f.doc)
	require.NoError(t, err)
	got := lines(out)
	require.Len(t, got, 3)
	assert.True(t, strings.HasPrefix(got[0], "id\tbounds=[0, 0]\ttail=0.000000e+00"), got[0])
}

// TestInverse tests inversion, the accuracy report and the output document.
func TestInverse(t *testing.T) {
	f := newFixture(t)
	dest := f.path("inv.yaml")

	out, err := f.run(t, "inverse", "--name", "ease", "--order", "8", "--output", dest, f.doc)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "ease\torder=8\t"), out)
	assert.Contains(t, out, "max=")

	doc, err := document.Load(dest)
	require.NoError(t, err)
	require.Len(t, doc.Polynomials, 1)

	a := sbasis.New(sbasis.NewLinear(0, 1), sbasis.NewLinear(0.2, 0.2))
	inv := doc.Polynomials[0].SBasis()
	for _, x := range []float64{0.1, 0.5, 0.9} {
		assert.InDelta(t, x, inv.ValueAt(a.ValueAt(x)), 1e-7)
	}
}

// TestInverse_NotInvertible tests that a failure is reported while the
// remaining polynomials are still processed.
func TestInverse_NotInvertible(t *testing.T) {
	f := newFixture(t)
	doc := f.path("flat.yaml")
	require.NoError(t, os.WriteFile(doc, []byte(`polynomials:
  - name: flat
    fragments:
      - [0.5, 0.5]
  - name: id
    fragments:
      - [0, 1]
`), 0o644))

	out, err := f.run(t, "inverse", doc)
	assert.ErrorIs(t, err, sbasis.ErrNotInvertible)
	assert.Contains(t, out, "id\torder=8\t")
	assert.NotContains(t, out, "flat")
}

// TestFit tests fitting reference functions.
func TestFit(t *testing.T) {
	f := newFixture(t)

	tests := []struct {
		args []string
		fn   func(float64) float64
	}{
		{[]string{"--func", "exp"}, math.Exp},
		{[]string{"--func", "log1p", "--order", "10"}, math.Log1p},
		{[]string{"--func", "pow", "--exponent", "3"}, func(x float64) float64 { return x * x * x }},
	}

	for _, tt := range tests {
		t.Run(tt.args[1], func(t *testing.T) {
			dest := f.path(tt.args[1] + ".yaml")
			args := append([]string{"fit", "--output", dest}, tt.args...)
			out, err := f.run(t, args...)
			require.NoError(t, err)
			assert.Len(t, lines(out), 2)

			doc, err := document.Load(dest)
			require.NoError(t, err)
			p, ok := doc.Find(tt.args[1])
			require.True(t, ok)

			a := p.SBasis()
			for _, x := range []float64{0, 0.3, 0.7, 1} {
				assert.InDelta(t, tt.fn(x), a.ValueAt(x), 1e-6, "x=%g", x)
			}
		})
	}
}

// TestFit_Errors tests rejected reference functions and orders.
func TestFit_Errors(t *testing.T) {
	f := newFixture(t)

	_, err := f.run(t, "fit", "--func", "sin")
	assert.ErrorIs(t, err, errFunction)

	_, err = f.run(t, "fit", "--order", "0")
	assert.ErrorIs(t, err, sbasis.ErrInvalidOrder)

	_, err = f.run(t, "fit", "--samples", "3", "--order", "4")
	assert.ErrorIs(t, err, sbasis.ErrInvalidSamples)
}

// TestRender tests that a rendered polynomial can be read back and fit.
func TestRender(t *testing.T) {
	f := newFixture(t)
	wavPath := f.path("id.wav")

	_, err := f.run(t, "render", "--name", "id", "--samples", "441", "--rate", "8000", "--bits", "24", f.doc, wavPath)
	require.NoError(t, err)

	in, err := os.Open(wavPath)
	require.NoError(t, err)
	clip, err := render.ReadWAV(in)
	require.NoError(t, in.Close())
	require.NoError(t, err)

	assert.Equal(t, 8000, clip.SampleRate)
	assert.Equal(t, 24, clip.BitDepth)
	require.Len(t, clip.Samples, 441)
	assert.InDelta(t, 0.0, clip.Samples[0], 1e-12)
	assert.InDelta(t, 1.0, clip.Samples[440], 1e-6)

	dest := f.path("fit.yaml")
	out, err := f.run(t, "fit", "--wav", wavPath, "--order", "2", "--output", dest)
	require.NoError(t, err)
	assert.True(t, strings.HasPrefix(out, "id\t"), out)

	doc, err := document.Load(dest)
	require.NoError(t, err)
	a := doc.Polynomials[0].SBasis()
	assert.InDelta(t, 0.5, a.ValueAt(0.5), 1e-5)
}

// TestRender_Errors tests argument and option validation.
func TestRender_Errors(t *testing.T) {
	f := newFixture(t)

	_, err := f.run(t, "render", f.doc)
	assert.ErrorIs(t, err, errNoDocument)

	_, err = f.run(t, "render", "--bits", "12", f.doc, f.path("bad.wav"))
	assert.ErrorIs(t, err, render.ErrBitDepth)

	_, err = f.run(t, "render", "--samples", "1", f.doc, f.path("short.wav"))
	assert.ErrorIs(t, err, errSamples)
}

// TestDumpConfig tests default and active configuration output.
func TestDumpConfig(t *testing.T) {
	f := newFixture(t)

	out, err := f.run(t, "dumpconfig", "--default")
	require.NoError(t, err)
	assert.Contains(t, out, "version: 1")
	assert.Contains(t, out, "level: normal")

	dest := f.path("active.yaml")
	out, err = f.run(t, "dumpconfig", dest)
	require.NoError(t, err)
	assert.Empty(t, out)

	data, err := os.ReadFile(dest)
	require.NoError(t, err)
	assert.Contains(t, string(data), "level: none")
	assert.Contains(t, string(data), "samples: 1024")
}

// TestDumpConfig_DestinationErrors tests that failures creating or writing
// the destination are returned.
func TestDumpConfig_DestinationErrors(t *testing.T) {
	f := newFixture(t)

	_, err := f.run(t, "dumpconfig", filepath.Join(f.dir, "missing", "config.yaml"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unable to create destination file")

	if _, statErr := os.Stat("/dev/full"); statErr != nil {
		t.Skip("/dev/full not available")
	}
	_, err = f.run(t, "dumpconfig", "--default", "/dev/full")
	assert.Error(t, err)
}

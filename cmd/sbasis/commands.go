package main

import (
	"context"
	"errors"
	"fmt"
	"io"
	"math"
	"os"
	"path/filepath"
	"strings"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"
	"gonum.org/v1/gonum/floats"

	"github.com/tphakala/go-sbasis"
	"github.com/tphakala/go-sbasis/internal/accuracy"
	"github.com/tphakala/go-sbasis/internal/config"
	"github.com/tphakala/go-sbasis/internal/document"
	"github.com/tphakala/go-sbasis/internal/render"
)

var (
	errNoDocument = errors.New("missing polynomial document")
	errNotFound   = errors.New("polynomial not found")
	errFunction   = errors.New("unknown reference function")
	errSamples    = errors.New("too few samples")
)

var defaultEvalPoints = []float64{0, 0.25, 0.5, 0.75, 1}

const documentHelp = `
DOCUMENT:
    YAML file with named polynomials, each fragment is the pair [a, b]
    multiplying s(t)^k where s(t) = t(1-t):

        polynomials:
          - name: ease
            fragments:
              - [0, 1]
              - [0.2, 0.2]
`

func evalCommand() *cli.Command {
	return &cli.Command{
		Name:         "eval",
		Usage:        "Evaluates polynomials and their derivatives",
		OnUsageError: usageErrorHandler,
		Action:       runEval,
		ArgsUsage:    "DOCUMENT",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "only process polynomial `NAME`"},
			&cli.FloatSliceFlag{Name: "at", Usage: "evaluation points `T` in [0, 1] (default: 0, 0.25, 0.5, 0.75, 1)"},
			&cli.IntFlag{Name: "derivatives", Value: defaultDerivatives, Usage: "also print the first `N` derivatives"},
		},
		CustomHelpTemplate: cli.CommandHelpTemplate + documentHelp,
	}
}

func boundsCommand() *cli.Command {
	return &cli.Command{
		Name:         "bounds",
		Usage:        "Prints fast range bounds and tail errors",
		OnUsageError: usageErrorHandler,
		Action:       runBounds,
		ArgsUsage:    "DOCUMENT",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "only process polynomial `NAME`"},
			&cli.IntFlag{Name: "order", Value: defaultBoundsOrder, Usage: "bound fragments from index `K` upward"},
			&cli.IntFlag{Name: "samples", Usage: "sample `COUNT` for the observed range (default from configuration)"},
		},
		CustomHelpTemplate: cli.CommandHelpTemplate + documentHelp,
	}
}

func inverseCommand() *cli.Command {
	return &cli.Command{
		Name:         "inverse",
		Usage:        "Inverts polynomials and reports round-trip accuracy",
		OnUsageError: usageErrorHandler,
		Action:       runInverse,
		ArgsUsage:    "DOCUMENT",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "only process polynomial `NAME`"},
			&cli.IntFlag{Name: "order", Aliases: []string{"k"}, Usage: "truncation order `K` of the inverse (default from configuration)"},
			&cli.IntFlag{Name: "samples", Usage: "sample `COUNT` for the accuracy report (default from configuration)"},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "write inverses to document `FILE`"},
		},
		CustomHelpTemplate: cli.CommandHelpTemplate + documentHelp,
	}
}

func fitCommand() *cli.Command {
	return &cli.Command{
		Name:         "fit",
		Usage:        "Fits a polynomial to a reference function or a WAV clip",
		OnUsageError: usageErrorHandler,
		Action:       runFit,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "func", Aliases: []string{"f"}, Value: funcExp,
				Usage: "reference `FUNCTION` over [0, 1] (supported: " + strings.Join([]string{funcExp, funcLog1p, funcPow}, ", ") + ")"},
			&cli.FloatFlag{Name: "exponent", Value: defaultExponent, Usage: "exponent `Y` for pow(t, Y)"},
			&cli.StringFlag{Name: "wav", Usage: "fit the first channel of WAV `FILE` instead of a reference function"},
			&cli.IntFlag{Name: "order", Aliases: []string{"k"}, Usage: "number of fragments `K` (default from configuration)"},
			&cli.IntFlag{Name: "samples", Usage: "sample `COUNT` of the reference function (default from configuration)"},
			&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "polynomial `NAME` in the output document"},
			&cli.StringFlag{Name: "output", Aliases: []string{"o"}, Usage: "write the fit to document `FILE`"},
		},
	}
}

func renderCommand() *cli.Command {
	return &cli.Command{
		Name:         "render",
		Usage:        "Samples a polynomial over [0, 1] into a mono WAV file",
		OnUsageError: usageErrorHandler,
		Action:       runRender,
		ArgsUsage:    "DOCUMENT DESTINATION",
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "name", Aliases: []string{"n"}, Usage: "render polynomial `NAME` (default: first in document)"},
			&cli.IntFlag{Name: "samples", Usage: "sample `COUNT` (default from configuration)"},
			&cli.IntFlag{Name: "rate", Usage: "sample `RATE` in Hz (default from configuration)"},
			&cli.IntFlag{Name: "bits", Usage: "bit `DEPTH`: 16, 24 or 32 (default from configuration)"},
			&cli.BoolFlag{Name: "normalize", Usage: "scale the peak to full scale instead of clipping"},
			&cli.BoolFlag{Name: "remove-dc", Usage: "subtract the mean before conversion"},
		},
		CustomHelpTemplate: cli.CommandHelpTemplate + documentHelp,
	}
}

func dumpConfigCommand() *cli.Command {
	return &cli.Command{
		Name:  "dumpconfig",
		Usage: "Dumps either default or actual configuration (YAML)",
		Flags: []cli.Flag{
			&cli.BoolFlag{Name: "default", Usage: "output default embedded configuration"},
		},
		OnUsageError: usageErrorHandler,
		Action:       outputConfiguration,
		ArgsUsage:    "DESTINATION",
		CustomHelpTemplate: fmt.Sprintf(`%s

DESTINATION:
    file name to write configuration to, if absent - STDOUT

Produces file with actual "active" configuration values which is composition of
default values and values specified in configuration file. To see default
configuration embedded into the program use --default flag.
`, cli.CommandHelpTemplate),
	}
}

// intFlag returns the named flag when it was given on the command line and
// def otherwise.
func intFlag(cmd *cli.Command, name string, def int) int {
	if cmd.IsSet(name) {
		return int(cmd.Int(name))
	}
	return def
}

// loadPolynomials reads the document named by the first argument and
// returns either every polynomial or the one selected by --name.
func loadPolynomials(env *localEnv, cmd *cli.Command) ([]document.Polynomial, error) {
	if cmd.NArg() == 0 {
		return nil, errNoDocument
	}
	path := cmd.Args().Get(0)
	doc, err := document.Load(path)
	if err != nil {
		return nil, err
	}
	env.Log.Debug("Loaded document", zap.String("file", path), zap.Int("polynomials", len(doc.Polynomials)))

	name := cmd.String("name")
	if len(name) == 0 {
		return doc.Polynomials, nil
	}
	p, ok := doc.Find(name)
	if !ok {
		return nil, fmt.Errorf("%w: %q in %s", errNotFound, name, path)
	}
	return []document.Polynomial{p}, nil
}

func writeDocument(env *localEnv, path string, polys []document.Polynomial) (err error) {
	doc := &document.Document{Polynomials: polys}
	if err := doc.Validate(); err != nil {
		return err
	}

	out, err := os.Create(path)
	if err != nil {
		return fmt.Errorf("unable to create destination file '%s': %w", path, err)
	}
	defer func() { err = multierr.Append(err, out.Close()) }()

	if err := document.Encode(out, doc); err != nil {
		return fmt.Errorf("unable to write document: %w", err)
	}
	env.Log.Info("Document written", zap.String("file", path), zap.Int("polynomials", len(polys)))
	return nil
}

func runEval(ctx context.Context, cmd *cli.Command) error {
	env := envFromContext(ctx)

	polys, err := loadPolynomials(env, cmd)
	if err != nil {
		return err
	}
	ts := defaultEvalPoints
	if cmd.IsSet("at") {
		ts = cmd.FloatSlice("at")
	}
	n := max(int(cmd.Int("derivatives")), 0)

	for _, p := range polys {
		a := p.SBasis()
		for _, t := range ts {
			vals := a.ValueAndDerivatives(t, n)
			fmt.Fprintf(env.Out, "%s\tt=%g\tp=%.17g", p.Name, t, vals[0])
			for i, d := range vals[1:] {
				fmt.Fprintf(env.Out, "\td%d=%.17g", i+1, d)
			}
			fmt.Fprintln(env.Out)
		}
	}
	return nil
}

func runBounds(ctx context.Context, cmd *cli.Command) error {
	env := envFromContext(ctx)

	polys, err := loadPolynomials(env, cmd)
	if err != nil {
		return err
	}
	order := max(int(cmd.Int("order")), 0)
	samples := intFlag(cmd, "samples", env.Cfg.Defaults.Samples)
	if samples < 2 {
		return fmt.Errorf("%w: %d", errSamples, samples)
	}

	for _, p := range polys {
		a := p.SBasis()
		ys := sbasis.Sample(a, samples)
		fmt.Fprintf(env.Out, "%s\tbounds=%v\ttail=%.6e\tsampled=[%g, %g]\tconstant=%t\n",
			p.Name, sbasis.BoundsFast(a, order), a.TailError(order),
			floats.Min(ys), floats.Max(ys), a.IsConstant(env.Cfg.Defaults.Epsilon))
	}
	return nil
}

func runInverse(ctx context.Context, cmd *cli.Command) error {
	env := envFromContext(ctx)

	polys, err := loadPolynomials(env, cmd)
	if err != nil {
		return err
	}
	order := intFlag(cmd, "order", env.Cfg.Defaults.Order)
	samples := intFlag(cmd, "samples", env.Cfg.Defaults.Samples)

	var (
		errs     error
		inverses = make([]document.Polynomial, 0, len(polys))
	)
	for _, p := range polys {
		a := p.SBasis()
		inv, err := sbasis.Inverse(a, order)
		if err != nil {
			env.Log.Warn("Unable to invert", zap.String("name", p.Name), zap.Error(err))
			errs = multierr.Append(errs, fmt.Errorf("%s: %w", p.Name, err))
			continue
		}
		rpt, err := accuracy.RoundTrip(a, inv, roundTripLo, roundTripHi, samples)
		if err != nil {
			return err
		}
		fmt.Fprintf(env.Out, "%s\torder=%d\tfragments=%d\t%v\n", p.Name, order, len(inv), rpt)
		inverses = append(inverses, document.FromSBasis(p.Name, inv))
	}

	if path := cmd.String("output"); len(path) > 0 && len(inverses) > 0 {
		errs = multierr.Append(errs, writeDocument(env, path, inverses))
	}
	return errs
}

// reference returns the named target function on [0, 1].
func reference(name string, exponent float64) (func(float64) float64, error) {
	switch name {
	case funcExp:
		return func(t float64) float64 { return accuracy.Exp(t, accuracy.DefaultPrec) }, nil
	case funcLog1p:
		return func(t float64) float64 { return accuracy.Log1p(t, accuracy.DefaultPrec) }, nil
	case funcPow:
		return func(t float64) float64 { return accuracy.Pow(t, exponent, accuracy.DefaultPrec) }, nil
	}
	return nil, fmt.Errorf("%w: %q", errFunction, name)
}

func readClip(path string) (clip *render.Clip, err error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("unable to open source file '%s': %w", path, err)
	}
	defer func() { err = multierr.Append(err, f.Close()) }()
	return render.ReadWAV(f)
}

func runFit(ctx context.Context, cmd *cli.Command) error {
	env := envFromContext(ctx)

	order := intFlag(cmd, "order", env.Cfg.Defaults.Order)
	name := cmd.String("name")

	var ts, ys []float64
	if path := cmd.String("wav"); len(path) > 0 {
		clip, err := readClip(path)
		if err != nil {
			return err
		}
		env.Log.Debug("Loaded clip", zap.String("file", path), zap.Int("samples", len(clip.Samples)),
			zap.Int("rate", clip.SampleRate), zap.Int("bits", clip.BitDepth))
		ys = clip.Samples
		ts = accuracy.Grid(0, 1, len(ys))
		if len(name) == 0 {
			name = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		}
	} else {
		fn, err := reference(cmd.String("func"), cmd.Float("exponent"))
		if err != nil {
			return err
		}
		ts = accuracy.Grid(0, 1, intFlag(cmd, "samples", env.Cfg.Defaults.Samples))
		ys = make([]float64, len(ts))
		for i, t := range ts {
			ys[i] = fn(t)
		}
		if len(name) == 0 {
			name = cmd.String("func")
		}
	}

	a, err := sbasis.Fit(ts, ys, order)
	if err != nil {
		return err
	}

	errs := make([]float64, len(ts))
	for i, t := range ts {
		errs[i] = a.ValueAt(t) - ys[i]
	}
	rpt, err := accuracy.Summarize(errs)
	if err != nil {
		return err
	}
	fmt.Fprintf(env.Out, "%s\t%v\n%s\t%v\n", name, a, name, rpt)

	if path := cmd.String("output"); len(path) > 0 {
		return writeDocument(env, path, []document.Polynomial{document.FromSBasis(name, a)})
	}
	return nil
}

func runRender(ctx context.Context, cmd *cli.Command) (err error) {
	env := envFromContext(ctx)

	if cmd.NArg() < 2 {
		return fmt.Errorf("%w and destination", errNoDocument)
	}
	polys, err := loadPolynomials(env, cmd)
	if err != nil {
		return err
	}
	p := polys[0]

	samples := intFlag(cmd, "samples", env.Cfg.Defaults.Samples)
	opts := render.Options{
		SampleRate: intFlag(cmd, "rate", env.Cfg.Defaults.SampleRate),
		BitDepth:   intFlag(cmd, "bits", env.Cfg.Defaults.BitDepth),
		RemoveDC:   cmd.Bool("remove-dc"),
		Normalize:  cmd.Bool("normalize"),
	}

	ys := sbasis.Sample(p.SBasis(), samples)
	if len(ys) < 2 {
		return fmt.Errorf("%w: %d", errSamples, samples)
	}
	if peak := floats.Norm(ys, math.Inf(1)); peak > 1 && !opts.Normalize {
		env.Log.Warn("Samples outside [-1, 1] will be clipped", zap.String("name", p.Name), zap.Float64("peak", peak))
	}

	fname := cmd.Args().Get(1)
	out, err := os.Create(fname)
	if err != nil {
		return fmt.Errorf("unable to create destination file '%s': %w", fname, err)
	}
	defer func() { err = multierr.Append(err, out.Close()) }()

	if err := render.WriteWAV(out, ys, opts); err != nil {
		return fmt.Errorf("unable to render %q: %w", p.Name, err)
	}
	env.Log.Info("Rendered", zap.String("name", p.Name), zap.String("file", fname),
		zap.Int("samples", len(ys)), zap.Int("rate", opts.SampleRate), zap.Int("bits", opts.BitDepth))
	return nil
}

func outputConfiguration(ctx context.Context, cmd *cli.Command) (err error) {
	env := envFromContext(ctx)
	if cmd.Args().Len() > 1 {
		env.Log.Warn("Malformed command line, too many destinations", zap.Strings("ignoring", cmd.Args().Slice()[1:]))
	}

	fname := cmd.Args().Get(0)

	var (
		data  []byte
		state string
		out   io.Writer = env.Out
	)

	if len(fname) > 0 {
		var f *os.File
		if f, err = os.Create(fname); err != nil {
			return fmt.Errorf("unable to create destination file '%s': %w", fname, err)
		}
		defer func() {
			if cerr := f.Close(); cerr != nil {
				err = multierr.Append(err, fmt.Errorf("unable to close destination file '%s': %w", fname, cerr))
			}
		}()
		out = f
	}

	if cmd.Bool("default") {
		state = "default"
		data, err = config.Prepare()
	} else {
		state = "actual"
		data, err = config.Dump(env.Cfg)
	}
	if err != nil {
		return fmt.Errorf("unable to get configuration: %w", err)
	}

	if len(fname) == 0 {
		fname = "STDOUT"
	}
	env.Log.Info("Outputting configuration", zap.String("state", state), zap.String("file", fname))

	if _, err = out.Write(data); err != nil {
		return fmt.Errorf("unable to write configuration: %w", err)
	}
	return nil
}

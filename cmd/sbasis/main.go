package main

import (
	"context"
	"fmt"
	"io"
	"os"
	"os/signal"
	"runtime"
	"syscall"

	cli "github.com/urfave/cli/v3"
	"go.uber.org/multierr"
	"go.uber.org/zap"

	"github.com/tphakala/go-sbasis"
	"github.com/tphakala/go-sbasis/internal/config"
)

// Version is set at build time.
var Version = "dev"

// initializeAppContext loads configuration and prepares logging after the
// command line has been parsed.
func initializeAppContext(ctx context.Context, cmd *cli.Command) (context.Context, error) {
	var err error

	env := envFromContext(ctx)

	configFile := cmd.String("config")
	if env.Cfg, err = config.LoadConfiguration(configFile); err != nil {
		return ctx, fmt.Errorf("unable to prepare configuration: %w", err)
	}
	if cmd.Bool("debug") {
		env.Cfg.Logging.ConsoleLogger.Level = "debug"
	}
	log, closeLog, err := env.Cfg.Logging.Prepare()
	if err != nil {
		return ctx, fmt.Errorf("unable to prepare logs: %w", err)
	}
	env.Log, env.closeLog = log, closeLog
	sbasis.SetLogger(env.Log)

	env.Log.Debug("Program started", zap.Strings("args", cmd.Args().Slice()), zap.String("ver", Version), zap.String("runtime", runtime.Version()))
	if len(configFile) == 0 {
		env.Log.Debug("Using defaults (no configuration file)")
	}
	return ctx, nil
}

func destroyAppContext(ctx context.Context, cmd *cli.Command) (err error) {
	env := envFromContext(ctx)

	env.Log.Debug("Program ended", zap.Duration("elapsed", env.uptime()), zap.Strings("parsed args", cmd.Args().Slice()))

	sbasis.SetLogger(nil)
	// syncing a terminal fails on some platforms, only the file matters
	_ = env.Log.Sync()
	if env.closeLog != nil {
		if er := env.closeLog(); er != nil {
			err = multierr.Append(err, fmt.Errorf("unable to close log file: %w", er))
		}
		env.closeLog = nil
	}
	return
}

// Subcommands return regular errors, they are logged here once and not
// reported again on exit.
var errWasHandled bool

func exitErrHandler(ctx context.Context, _ *cli.Command, err error) {
	env := envFromContext(ctx)
	if env.Cfg != nil {
		env.Log.Error("Program ended with error", zap.Error(err))
		errWasHandled = env.Cfg.Logging.ConsoleLogger.Level != "none"
	}
}

func usageErrorHandler(_ context.Context, _ *cli.Command, err error, _ bool) error {
	return err
}

func subcommandNotFoundHandler(ctx context.Context, _ *cli.Command, name string) {
	envFromContext(ctx).Log.Warn("Unknown command, nothing to do", zap.String("command", name))
}

// newApp builds the command tree. Results are written to out.
func newApp(out io.Writer) *cli.Command {
	return &cli.Command{
		Name:            config.AppName,
		Usage:           "evaluate, bound, invert and render S-basis polynomials",
		Version:         Version + " (" + runtime.Version() + ")",
		Writer:          out,
		HideHelpCommand: true,
		Before:          initializeAppContext,
		After:           destroyAppContext,
		OnUsageError:    usageErrorHandler,
		ExitErrHandler:  exitErrHandler,
		CommandNotFound: subcommandNotFoundHandler,
		Flags: []cli.Flag{
			&cli.StringFlag{Name: "config", Aliases: []string{"c"}, DefaultText: "", Usage: "load configuration from `FILE` (YAML)"},
			&cli.BoolFlag{Name: "debug", Aliases: []string{"d"}, Usage: "log at debug level, including every inversion step"},
		},
		Commands: []*cli.Command{
			evalCommand(),
			boundsCommand(),
			inverseCommand(),
			fitCommand(),
			renderCommand(),
			dumpConfigCommand(),
		},
	}
}

func main() {
	ctx, stop := signal.NotifyContext(contextWithEnv(context.Background(), os.Stdout), os.Interrupt, syscall.SIGTERM)

	var err error
	// os.Exit is called at the end of main to set the exit code, no other
	// deferred functions may follow
	defer func() {
		stop()
		if err != nil {
			if !errWasHandled {
				fmt.Fprintf(os.Stderr, "Program ended with error: %v\n", err)
			}
			os.Exit(1)
		}
	}()
	err = newApp(os.Stdout).Run(ctx, os.Args)
}

package main

import (
	"context"
	"io"
	"os"
	"time"

	"go.uber.org/zap"

	"github.com/tphakala/go-sbasis/internal/config"
)

type envKey struct{}

// localEnv keeps everything the program needs in a single place.
type localEnv struct {
	Cfg *config.Config
	Log *zap.Logger

	// Out receives command results; logs go elsewhere.
	Out io.Writer

	start    time.Time
	closeLog func() error
}

func envFromContext(ctx context.Context) *localEnv {
	if env, ok := ctx.Value(envKey{}).(*localEnv); ok {
		return env
	}
	// this should never happen
	panic("localenv not found in context")
}

func contextWithEnv(ctx context.Context, out io.Writer) context.Context {
	if out == nil {
		out = os.Stdout
	}
	return context.WithValue(ctx, envKey{}, &localEnv{
		Log:   zap.NewNop(),
		Out:   out,
		start: time.Now(),
	})
}

func (e *localEnv) uptime() time.Duration {
	return time.Since(e.start)
}

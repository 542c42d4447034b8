package sbasis

import (
	"sync/atomic"

	"go.uber.org/zap"
)

var logger atomic.Pointer[zap.Logger]

func init() {
	logger.Store(zap.NewNop())
}

// SetLogger installs the logger used for tracing series algorithms.
// Inverse writes per-step records at debug level. A nil logger restores the
// default no-op logger.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger.Store(l.Named("sbasis"))
}

// Logger returns the current package logger.
func Logger() *zap.Logger {
	return logger.Load()
}

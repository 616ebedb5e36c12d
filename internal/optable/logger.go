package optable

import (
	"sync"

	"go.uber.org/zap"
)

var (
	logger     *zap.Logger
	loggerOnce sync.Once
)

// Logger returns the logger receiving table-interning diagnostics, defaulting
// to a no-op logger.
func Logger() *zap.Logger {
	loggerOnce.Do(func() {
		if logger == nil {
			logger = zap.NewNop()
		}
	})
	return logger
}

// SetLogger routes interning diagnostics to l. Interning happens on the first
// construction per (type, kind), so install the logger before building any
// values or the events of already-warm types go unseen. A nil l restores the
// no-op default.
func SetLogger(l *zap.Logger) {
	if l == nil {
		l = zap.NewNop()
	}
	logger = l
}

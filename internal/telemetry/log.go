// Package telemetry provides the kernel's shared structured logger.
//
// Every package that used to carry a tracing::instrument span in the
// original implementation logs through L() instead: euler operators emit a
// debug line per primitive, the rebuild engine and validators emit an info
// line per pass with the same fields the original subscriber recorded
// (euler_valid, error_count, and so on).
package telemetry

import "go.uber.org/zap"

var logger = zap.NewNop()

// init installs a sane production logger so callers get console output
// without every binary having to remember to configure one; SetLogger lets
// a host application (the cmd/waffle CLI, a test harness) install its own.
func init() {
	l, err := zap.NewProduction()
	if err == nil {
		logger = l
	}
}

// L returns the shared logger.
func L() *zap.Logger {
	return logger
}

// SetLogger replaces the shared logger, returning the previous one so it
// can be restored (tests commonly swap in zap.NewNop() to silence output).
func SetLogger(l *zap.Logger) *zap.Logger {
	prev := logger
	logger = l
	return prev
}

// Package testutil provides shared test helpers: a structured logger that
// writes to the test log and a small natives fixture.
package testutil

import (
	"log/slog"
	"strings"
	"testing"
)

// NewTestLogger returns a debug logger writing to t.Log, so server and
// command logs show up next to the failing assertion.
func NewTestLogger(t testing.TB) *slog.Logger {
	t.Helper()
	return slog.New(slog.NewTextHandler(logWriter{t}, &slog.HandlerOptions{
		Level: slog.LevelDebug,
	}))
}

type logWriter struct {
	t testing.TB
}

func (w logWriter) Write(p []byte) (int, error) {
	w.t.Helper()
	// t.Log terminates the line itself.
	w.t.Log(strings.TrimRight(string(p), "\n"))
	return len(p), nil
}

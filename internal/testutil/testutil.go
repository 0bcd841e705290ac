// Package testutil provides test utilities and constructors with pre-injected dependencies.
package testutil

import (
	"bytes"
	"log/slog"

	"stardrain/internal/logging"
)

// Logger returns a test logger for use in tests.
func Logger() *slog.Logger {
	return logging.NewTestLogger()
}

// CaptureLogger returns a text logger at debug level writing into the returned buffer.
// Read the buffer only after the code under test has finished logging.
func CaptureLogger() (*slog.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return logging.NewLogger(logging.Config{
		Level:  slog.LevelDebug,
		Format: logging.FormatText,
		Output: buf,
	}), buf
}

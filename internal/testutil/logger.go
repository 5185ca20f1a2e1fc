package testutil

import (
	"bytes"
	"io"

	"github.com/dtroode/panorama-auth/internal/logger"
)

// MakeNoopLogger returns a logger that discards everything.
func MakeNoopLogger() *logger.Logger {
	return logger.NewWithWriter(io.Discard, 0, logger.FormatText)
}

// MakeBufferLogger returns a JSON logger at debug level and the buffer it writes to.
func MakeBufferLogger() (*logger.Logger, *bytes.Buffer) {
	buf := &bytes.Buffer{}
	return logger.NewWithWriter(buf, -4, logger.FormatJSON), buf
}

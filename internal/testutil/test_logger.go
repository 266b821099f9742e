package testutil

import (
	"bytes"
	"io"
	"os"

	"github.com/rs/zerolog"
)

// NewTestLogger writes to stderr so tests that capture stdout stay clean.
func NewTestLogger() *zerolog.Logger {
	logger := zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).With().Timestamp().Logger()
	return &logger
}

// NewBufferedLogger also keeps the JSON output in the returned buffer.
func NewBufferedLogger() (*zerolog.Logger, *bytes.Buffer) {
	var buf bytes.Buffer
	consoleWriter := zerolog.ConsoleWriter{
		Out: os.Stderr,
	}
	logger := zerolog.New(io.MultiWriter(consoleWriter, &buf)).With().Timestamp().Logger()
	return &logger, &buf
}

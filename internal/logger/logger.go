package logger

import (
	"io"
	"os"
	"path/filepath"

	"github.com/rs/zerolog"
)

const DefaultLogLevel = "info"

// New creates a new logger instance
func New(opts ...Option) *zerolog.Logger {
	config := &Config{
		output:       os.Stdout,
		level:        zerolog.InfoLevel,
		excludeParts: []string{zerolog.TimestampFieldName, zerolog.LevelFieldName},
		isDev:        true,
	}

	for _, opt := range opts {
		opt.apply(config)
	}

	ctx := zerolog.New(config.output).
		Level(config.level).
		With()
	if config.timestamp {
		ctx = ctx.Timestamp()
	}
	logger := ctx.Logger()

	if config.isDev {
		logger = logger.Output(zerolog.ConsoleWriter{
			Out:          config.output,
			PartsExclude: config.excludeParts,
			NoColor:      config.noColor,
		})
	}

	return &logger
}

func NewConsoleLogger() *zerolog.Logger {
	return New(
		WithLevel(DefaultLogLevel),
		WithOutput(os.Stderr),
		WithConsoleWriter(true),
	)
}

// NewFileLogger appends JSON lines to path, creating parent directories as
// needed. The full-screen wizard owns the terminal, so it logs here instead
// of to stderr. The caller closes the returned file.
func NewFileLogger(path, level string) (*zerolog.Logger, io.Closer, error) {
	if err := os.MkdirAll(filepath.Dir(path), 0o755); err != nil {
		return nil, nil, err
	}
	f, err := os.OpenFile(path, os.O_CREATE|os.O_APPEND|os.O_WRONLY, 0o600) // #nosec G304 -- log path comes from CLI configuration
	if err != nil {
		return nil, nil, err
	}
	return New(
		WithOutput(f),
		WithLevel(level),
		WithConsoleWriter(false),
		WithTimestamp(true),
	), f, nil
}

// NewDiscardLogger drops everything.
func NewDiscardLogger() *zerolog.Logger {
	l := zerolog.Nop()
	return &l
}

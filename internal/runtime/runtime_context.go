package runtime

import (
	"fmt"

	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/medalytics/medalytics-cli/internal/client/optimizerclient"
	"github.com/medalytics/medalytics-cli/internal/settings"
)

// Context carries what every command needs once the root command has run.
type Context struct {
	Logger   *zerolog.Logger
	Viper    *viper.Viper
	Settings *settings.Settings
}

func NewContext(logger *zerolog.Logger, viper *viper.Viper) *Context {
	return &Context{
		Logger: logger,
		Viper:  viper,
	}
}

func (ctx *Context) AttachSettings() error {
	var err error

	ctx.Settings, err = settings.New(ctx.Logger, ctx.Viper)
	if err != nil {
		return fmt.Errorf("failed to load settings: %w", err)
	}

	return nil
}

// NewOptimizerClient builds a client from the attached settings.
func (ctx *Context) NewOptimizerClient(opts ...optimizerclient.Option) (*optimizerclient.Client, error) {
	return ctx.NewOptimizerClientWithLogger(ctx.Logger, opts...)
}

// NewOptimizerClientWithLogger is NewOptimizerClient with a different logger,
// for the wizard which must not write to the terminal.
func (ctx *Context) NewOptimizerClientWithLogger(log *zerolog.Logger, opts ...optimizerclient.Option) (*optimizerclient.Client, error) {
	if ctx.Settings == nil {
		return nil, fmt.Errorf("settings not loaded")
	}
	base := []optimizerclient.Option{
		optimizerclient.WithTimeout(ctx.Settings.FetchTimeout),
		optimizerclient.WithRetryAttempts(ctx.Settings.RetryAttempts),
	}
	if env := ctx.Settings.Environment; env != "" {
		base = append(base, optimizerclient.WithHeader(optimizerclient.EnvironmentHeader, env))
	}
	return optimizerclient.New(ctx.Settings.BaseURL, log, append(base, opts...)...), nil
}

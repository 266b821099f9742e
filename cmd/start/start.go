package start

import (
	"context"
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/medalytics/medalytics-cli/internal/logger"
	"github.com/medalytics/medalytics-cli/internal/runtime"
	"github.com/medalytics/medalytics-cli/internal/settings"
	"github.com/medalytics/medalytics-cli/internal/tui"
	"github.com/medalytics/medalytics-cli/internal/ui"
	"github.com/medalytics/medalytics-cli/internal/validation"
	"github.com/medalytics/medalytics-cli/internal/wizard"
)

var ErrNoTerminal = errors.New("start needs an interactive terminal; use optimize or quant when scripting")

func New(runtimeContext *runtime.Context) *cobra.Command {
	startCmd := &cobra.Command{
		Use:   "start",
		Short: "Opens the MedDash wizard",
		Long: `Opens the full-screen wizard: enter your organization and resource figures,
then review them on the dashboard next to the network optimization chart.`,
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if !ui.IsTerminal(os.Stdin) || !ui.IsTerminal(os.Stdout) {
				return ErrNoTerminal
			}
			h := newHandler(runtimeContext)
			return h.Execute(cmd.Context())
		},
	}

	settings.AddWizardFlags(startCmd)

	return startCmd
}

type handler struct {
	runtimeContext *runtime.Context
	verbose        bool
	run            func(ctx context.Context, m tui.Model) (tui.Model, error)
}

func newHandler(ctx *runtime.Context) *handler {
	return &handler{
		runtimeContext: ctx,
		verbose:        ctx.Viper.GetBool(settings.Flags.Verbose.Name),
		run:            tui.Run,
	}
}

func (h *handler) Execute(ctx context.Context) error {
	log, closer := h.openLog()
	defer func() {
		if err := closer.Close(); err != nil {
			h.runtimeContext.Logger.Warn().Err(err).Msg("Failed to close wizard log")
		}
	}()

	m, err := h.newModel(ctx, log)
	if err != nil {
		return err
	}

	log.Info().Str("baseURL", h.runtimeContext.Settings.BaseURL).Msg("Wizard started")
	final, err := h.run(ctx, m)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			log.Info().Msg("Wizard interrupted")
			return nil
		}
		log.Error().Err(err).Msg("Wizard stopped")
		return err
	}

	log.Info().
		Stringer("step", final.Controller().Step()).
		Object("form", logger.FormWrapper{Form: final.Controller().Form()}).
		Msg("Wizard closed")
	return nil
}

// openLog returns the wizard's file logger. The terminal belongs to the
// wizard, so when the file cannot be opened logging is dropped instead.
func (h *handler) openLog() (*zerolog.Logger, io.Closer) {
	s := h.runtimeContext.Settings
	if s == nil || s.LogFile == "" {
		return logger.NewDiscardLogger(), io.NopCloser(nil)
	}

	level := logger.DefaultLogLevel
	if h.verbose {
		level = "debug"
	}
	log, f, err := logger.NewFileLogger(s.LogFile, level)
	if err != nil {
		h.runtimeContext.Logger.Warn().Err(err).Str("path", s.LogFile).Msg("Wizard logging disabled")
		return logger.NewDiscardLogger(), io.NopCloser(nil)
	}
	return log, f
}

func (h *handler) newModel(ctx context.Context, log *zerolog.Logger) (tui.Model, error) {
	s := h.runtimeContext.Settings
	client, err := h.runtimeContext.NewOptimizerClientWithLogger(log)
	if err != nil {
		return tui.Model{}, err
	}

	opts := []wizard.Option{
		wizard.WithLayout(s.Layout),
		wizard.WithRestartPolicy(s.RestartPolicy),
	}
	if s.StrictMetrics {
		v, err := validation.NewValidator()
		if err != nil {
			return tui.Model{}, fmt.Errorf("failed to initialize validator: %w", err)
		}
		opts = append(opts, wizard.WithStrictMetrics(v))
	}

	return tui.New(wizard.New(opts...), client,
		tui.WithLogger(log),
		tui.WithContext(ctx),
	), nil
}

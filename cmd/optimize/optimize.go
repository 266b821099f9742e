package optimize

import (
	"context"
	"fmt"
	"os"
	"strings"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/medalytics/medalytics-cli/cmd/utils"
	"github.com/medalytics/medalytics-cli/internal/chart"
	"github.com/medalytics/medalytics-cli/internal/constants"
	"github.com/medalytics/medalytics-cli/internal/runtime"
	"github.com/medalytics/medalytics-cli/internal/settings"
	"github.com/medalytics/medalytics-cli/internal/ui"
	"github.com/medalytics/medalytics-cli/internal/validation"
)

// Allocator runs the optimization for a CSV on the optimizer host.
type Allocator interface {
	Optimize(ctx context.Context, filePath string) ([]float64, error)
}

type Inputs struct {
	FilePath       string
	NonInteractive bool
}

func New(runtimeContext *runtime.Context) *cobra.Command {
	var output utils.OutputOptions

	optimizeCmd := &cobra.Command{
		Use:   "optimize",
		Short: "Optimizes resource allocation across hospitals",
		Long: `Sends a hospitals CSV to the optimizer and prints the optimized allocation.
The file path is resolved on the optimizer host, not on this machine.`,
		Example: "  medalytics optimize --file-path data/hospitals.csv\n" +
			"  medalytics optimize -f data/hospitals.csv -o json",
		Args: cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			client, err := runtimeContext.NewOptimizerClient()
			if err != nil {
				return err
			}
			h, err := newHandler(runtimeContext.Logger, client, output)
			if err != nil {
				return err
			}

			inputs, err := h.ResolveInputs(runtimeContext.Viper)
			if err != nil {
				return err
			}
			h.inputs = inputs
			if err := h.ValidateInputs(); err != nil {
				return err
			}
			return h.Execute(cmd.Context())
		},
	}

	optimizeCmd.Flags().StringP(
		settings.Flags.FilePath.Name,
		settings.Flags.FilePath.Short,
		"",
		"Path of the hospitals CSV on the optimizer host",
	)
	settings.AddNonInteractiveFlag(optimizeCmd)
	utils.AddOutputFlags(optimizeCmd, &output)

	return optimizeCmd
}

type handler struct {
	log         *zerolog.Logger
	client      Allocator
	validator   *validation.Validator
	output      utils.OutputOptions
	inputs      Inputs
	interactive bool
	// prompt asks for the file path when none was given.
	prompt func(validate func(string) error) (string, error)
}

func newHandler(log *zerolog.Logger, client Allocator, output utils.OutputOptions) (*handler, error) {
	v, err := validation.NewValidator()
	if err != nil {
		return nil, fmt.Errorf("failed to initialize validator: %w", err)
	}
	return &handler{
		log:         log,
		client:      client,
		validator:   v,
		output:      output,
		interactive: ui.IsTerminal(os.Stdin) && ui.IsTerminal(os.Stdout),
		prompt:      promptFilePath,
	}, nil
}

func promptFilePath(validate func(string) error) (string, error) {
	return ui.Input("Hospitals CSV",
		ui.WithInputDescription("Path of the file on the optimizer host. Leave empty for "+constants.DefaultOptimizeFilePath+"."),
		ui.WithPlaceholder(constants.DefaultOptimizeFilePath),
		ui.WithValidate(func(s string) error {
			if strings.TrimSpace(s) == "" {
				return nil
			}
			return validate(s)
		}),
	)
}

func (h *handler) ResolveInputs(v *viper.Viper) (Inputs, error) {
	inputs := Inputs{
		FilePath:       strings.TrimSpace(v.GetString(settings.Flags.FilePath.Name)),
		NonInteractive: v.GetBool(settings.Flags.NonInteractive.Name),
	}
	if inputs.FilePath != "" || inputs.NonInteractive || !h.interactive {
		return inputs, nil
	}

	path, err := h.prompt(h.validator.FilePath)
	if err != nil {
		return Inputs{}, fmt.Errorf("failed to read file path: %w", err)
	}
	inputs.FilePath = strings.TrimSpace(path)
	if inputs.FilePath == "" {
		inputs.FilePath = constants.DefaultOptimizeFilePath
	}
	return inputs, nil
}

func (h *handler) ValidateInputs() error {
	if err := h.output.Validate(); err != nil {
		return err
	}
	return h.validator.FilePath(h.inputs.FilePath)
}

func (h *handler) Execute(ctx context.Context) error {
	values, err := ui.WithSpinnerResult(os.Stderr, "Optimizing allocation...", func() ([]float64, error) {
		return h.client.Optimize(ctx, h.inputs.FilePath)
	})
	if err != nil {
		h.log.Error().Err(err).Str("filePath", h.inputs.FilePath).Msg("Optimization failed")
		return fmt.Errorf("optimization failed: %w", err)
	}

	series := chart.NewSeries(chart.AllocationLabelPrefix, values)
	if !h.output.Raw() {
		return utils.HandleJsonOrYamlFormat(h.log, h.output, "optimized allocation", series)
	}

	ui.Title("Optimized allocation")
	ui.Dim(h.inputs.FilePath)
	ui.Line()
	ui.Print(chart.RenderBars(series, chart.DefaultWidth))
	ui.Line()
	ui.Print(utils.FormatSeriesTable(series, "Hospital", "Allocation"))
	return nil
}

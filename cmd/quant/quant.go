package quant

import (
	"context"
	"fmt"
	"os"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"

	"github.com/medalytics/medalytics-cli/cmd/utils"
	"github.com/medalytics/medalytics-cli/internal/chart"
	"github.com/medalytics/medalytics-cli/internal/runtime"
	"github.com/medalytics/medalytics-cli/internal/ui"
)

// SeriesFetcher loads the network optimization series.
type SeriesFetcher interface {
	Quant(ctx context.Context) ([]float64, error)
}

func New(runtimeContext *runtime.Context) *cobra.Command {
	var output utils.OutputOptions

	quantCmd := &cobra.Command{
		Use:   "quant",
		Short: "Prints the network optimization series",
		Long:  "Fetches the series behind the Network Optimization tab and prints it without opening the wizard.",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			if err := output.Validate(); err != nil {
				return err
			}
			client, err := runtimeContext.NewOptimizerClient()
			if err != nil {
				return err
			}
			h := newHandler(runtimeContext.Logger, client, output)
			return h.Execute(cmd.Context())
		},
	}

	utils.AddOutputFlags(quantCmd, &output)

	return quantCmd
}

type handler struct {
	log    *zerolog.Logger
	client SeriesFetcher
	output utils.OutputOptions
}

func newHandler(log *zerolog.Logger, client SeriesFetcher, output utils.OutputOptions) *handler {
	return &handler{log: log, client: client, output: output}
}

func (h *handler) Execute(ctx context.Context) error {
	values, err := ui.WithSpinnerResult(os.Stderr, "Fetching network optimization data...", func() ([]float64, error) {
		return h.client.Quant(ctx)
	})
	if err != nil {
		h.log.Error().Err(err).Msg("Quant fetch failed")
		return fmt.Errorf("failed to fetch quant series: %w", err)
	}

	series := chart.NewSeries(chart.QuantLabelPrefix, values)
	if !h.output.Raw() {
		return utils.HandleJsonOrYamlFormat(h.log, h.output, "quant series", series)
	}

	ui.Title("Network Optimization")
	ui.Line()
	ui.Print(chart.RenderLine(series))
	ui.Line()
	ui.Print(utils.FormatSeriesTable(series, "Label", "Value"))
	return nil
}

package utils

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/jedib0t/go-pretty/v6/table"
	"github.com/jedib0t/go-pretty/v6/text"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"gopkg.in/yaml.v2"

	"github.com/medalytics/medalytics-cli/internal/chart"
)

const (
	RawOutputFormat  = "raw"
	JsonOutputFormat = "json"
	YamlOutputFormat = "yaml"
)

const (
	outputFlag     = "output"
	outputPathFlag = "output-path"
)

// OutputOptions selects how a command prints a series.
type OutputOptions struct {
	Format string
	Path   string
}

// AddOutputFlags registers --output and --output-path on cmd.
func AddOutputFlags(cmd *cobra.Command, opts *OutputOptions) {
	cmd.Flags().StringVarP(&opts.Format, outputFlag, "o", RawOutputFormat, "Output format: raw, json or yaml")
	cmd.Flags().StringVar(&opts.Path, outputPathFlag, "", "Write json or yaml output to this file instead of stdout")
}

// Validate rejects unknown formats and an output path without a structured format.
func (o OutputOptions) Validate() error {
	switch strings.ToLower(o.Format) {
	case RawOutputFormat:
		if o.Path != "" {
			return fmt.Errorf("--%s needs --%s json or yaml", outputPathFlag, outputFlag)
		}
		return nil
	case JsonOutputFormat, YamlOutputFormat:
		return nil
	default:
		return fmt.Errorf("unsupported output format %q, expected raw, json or yaml", o.Format)
	}
}

func (o OutputOptions) Raw() bool {
	return strings.EqualFold(o.Format, RawOutputFormat)
}

// SeriesPointSerialized is one labelled value as written in json and yaml output.
type SeriesPointSerialized struct {
	Label string  `yaml:"label" json:"label"`
	Value float64 `yaml:"value" json:"value"`
}

func SerializeSeries(s chart.Series) []SeriesPointSerialized {
	points := make([]SeriesPointSerialized, 0, s.Len())
	for i, v := range s.Values {
		points = append(points, SeriesPointSerialized{Label: s.Labels[i], Value: v})
	}
	return points
}

// FormatSeriesTable renders s as a two column table headed by labelHeader
// and valueHeader.
func FormatSeriesTable(s chart.Series, labelHeader, valueHeader string) string {
	if s.Empty() {
		return "No data"
	}

	t := table.NewWriter()
	t.AppendHeader(table.Row{labelHeader, valueHeader})
	for i, v := range s.Values {
		t.AppendRow(table.Row{s.Labels[i], chart.FormatValue(v)})
	}
	t.SetColumnConfigs([]table.ColumnConfig{
		{Number: 1, Align: text.AlignLeft},
		{Number: 2, Align: text.AlignRight},
	})
	return t.Render()
}

// HandleJsonOrYamlFormat writes s in the requested structured format to
// stdout, or to the output path when one is set.
func HandleJsonOrYamlFormat(log *zerolog.Logger, opts OutputOptions, what string, s chart.Series) error {
	return writeJsonOrYaml(os.Stdout, log, opts, what, s)
}

func writeJsonOrYaml(stdout io.Writer, log *zerolog.Logger, opts OutputOptions, what string, s chart.Series) error {
	points := SerializeSeries(s)
	format := strings.ToLower(opts.Format)

	var out []byte
	var err error
	switch format {
	case JsonOutputFormat:
		out, err = json.MarshalIndent(points, "", "  ")
	case YamlOutputFormat:
		out, err = yaml.Marshal(points)
	default:
		return fmt.Errorf("format %q not supported", opts.Format)
	}
	if err != nil {
		return fmt.Errorf("could not serialize %s as %s: %w", what, strings.ToUpper(format), err)
	}

	if opts.Path == "" {
		_, err = fmt.Fprintln(stdout, strings.TrimRight(string(out), "\n"))
		return err
	}

	log.Debug().
		Str("Output path", opts.Path).
		Msgf("Writing %s to an output %s file", what, strings.ToUpper(format))

	if err := os.WriteFile(opts.Path, out, 0o600); err != nil {
		return fmt.Errorf("could not write %s to %s: %w", what, opts.Path, err)
	}

	log.Info().
		Str("Output path", opts.Path).
		Msgf("Wrote %s to the output file", what)
	return nil
}

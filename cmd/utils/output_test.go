package utils

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v2"

	"github.com/medalytics/medalytics-cli/internal/chart"
	"github.com/medalytics/medalytics-cli/internal/testutil"
)

func TestOutputOptionsValidate(t *testing.T) {
	tests := []struct {
		name    string
		opts    OutputOptions
		wantErr string
	}{
		{name: "raw", opts: OutputOptions{Format: "raw"}},
		{name: "json upper case", opts: OutputOptions{Format: "JSON"}},
		{name: "yaml to file", opts: OutputOptions{Format: "yaml", Path: "out.yaml"}},
		{name: "unknown format", opts: OutputOptions{Format: "csv"}, wantErr: `unsupported output format "csv"`},
		{name: "raw to file", opts: OutputOptions{Format: "raw", Path: "out.txt"}, wantErr: "--output-path needs --output json or yaml"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.opts.Validate()
			if tt.wantErr == "" {
				assert.NoError(t, err)
				return
			}
			assert.ErrorContains(t, err, tt.wantErr)
		})
	}
}

func TestFormatSeriesTable(t *testing.T) {
	out := FormatSeriesTable(chart.NewSeries(chart.AllocationLabelPrefix, []float64{12, 7.5}), "Hospital", "Allocation")

	assert.Contains(t, out, "HOSPITAL")
	assert.Contains(t, out, "ALLOCATION")
	assert.Contains(t, out, "Hospital 1")
	assert.Contains(t, out, "7.5")
	assert.Less(t, strings.Index(out, "Hospital 1"), strings.Index(out, "Hospital 2"))

	assert.Equal(t, "No data", FormatSeriesTable(chart.Series{}, "Hospital", "Allocation"))
}

func TestWriteJsonToStdout(t *testing.T) {
	var buf bytes.Buffer
	s := chart.NewSeries(chart.QuantLabelPrefix, []float64{1, 2.25})

	err := writeJsonOrYaml(&buf, testutil.NewTestLogger(), OutputOptions{Format: "json"}, "quant series", s)
	require.NoError(t, err)

	var got []SeriesPointSerialized
	require.NoError(t, json.Unmarshal(buf.Bytes(), &got))
	assert.Equal(t, []SeriesPointSerialized{
		{Label: "Label 1", Value: 1},
		{Label: "Label 2", Value: 2.25},
	}, got)
}

func TestWriteYamlToFile(t *testing.T) {
	var buf bytes.Buffer
	path := filepath.Join(t.TempDir(), "allocation.yaml")
	s := chart.NewSeries(chart.AllocationLabelPrefix, []float64{3})

	err := writeJsonOrYaml(&buf, testutil.NewTestLogger(), OutputOptions{Format: "yaml", Path: path}, "allocation", s)
	require.NoError(t, err)
	assert.Empty(t, buf.String())

	data, err := os.ReadFile(path)
	require.NoError(t, err)

	var got []SeriesPointSerialized
	require.NoError(t, yaml.Unmarshal(data, &got))
	assert.Equal(t, []SeriesPointSerialized{{Label: "Hospital 1", Value: 3}}, got)
}

func TestWriteJsonOrYamlRejectsRaw(t *testing.T) {
	err := writeJsonOrYaml(&bytes.Buffer{}, testutil.NewTestLogger(), OutputOptions{Format: "raw"}, "allocation", chart.Series{})
	assert.ErrorContains(t, err, "not supported")
}

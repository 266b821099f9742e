// Package chart turns optimizer responses into labelled series and draws them
// in the terminal.
package chart

import (
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/progress"
	"github.com/charmbracelet/lipgloss"

	"github.com/medalytics/medalytics-cli/internal/ui"
)

const (
	QuantLabelPrefix      = "Label"
	AllocationLabelPrefix = "Hospital"

	DefaultWidth = 40
)

var sparkLevels = []rune("▁▂▃▄▅▆▇█")

// Series is an ordered list of values with one label per value.
type Series struct {
	Labels []string
	Values []float64
}

// NewSeries labels values positionally, starting from "<prefix> 1".
func NewSeries(prefix string, values []float64) Series {
	labels := make([]string, len(values))
	for i := range values {
		labels[i] = fmt.Sprintf("%s %d", prefix, i+1)
	}
	return Series{Labels: labels, Values: values}
}

func (s Series) Len() int { return len(s.Values) }

func (s Series) Empty() bool { return len(s.Values) == 0 }

// FormatValue prints v without trailing zeros.
func FormatValue(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

// RenderBars draws one horizontal bar per value, scaled to the largest value.
// Negative values draw as empty bars.
func RenderBars(s Series, width int) string {
	if s.Empty() {
		return ui.RenderDim("No data")
	}
	if width <= 0 {
		width = DefaultWidth
	}

	peak := 0.0
	for _, v := range s.Values {
		peak = math.Max(peak, v)
	}

	bar := progress.New(
		progress.WithSolidFill(ui.BarColor),
		progress.WithoutPercentage(),
		progress.WithWidth(width),
	)
	bar.EmptyColor = ui.ColorGray800

	labelWidth := 0
	for _, l := range s.Labels {
		labelWidth = max(labelWidth, lipgloss.Width(l))
	}
	labelStyle := lipgloss.NewStyle().Width(labelWidth).Align(lipgloss.Right)

	rows := make([]string, len(s.Values))
	for i, v := range s.Values {
		ratio := 0.0
		if peak > 0 && v > 0 {
			ratio = v / peak
		}
		rows[i] = fmt.Sprintf("%s %s %s", labelStyle.Render(s.Labels[i]), bar.ViewAs(ratio), FormatValue(v))
	}
	return strings.Join(rows, "\n")
}

// RenderLine draws the series as a sparkline, one glyph per point, with the
// range and the first and last labels underneath.
func RenderLine(s Series) string {
	if s.Empty() {
		return ui.RenderDim("No data")
	}

	lo, hi := s.Values[0], s.Values[0]
	for _, v := range s.Values[1:] {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
	}

	var b strings.Builder
	for _, v := range s.Values {
		b.WriteRune(sparkGlyph(v, lo, hi))
	}
	line := lipgloss.NewStyle().Foreground(lipgloss.Color(ui.BarColor)).Render(b.String())

	axis := s.Labels[0]
	if s.Len() > 1 {
		axis = fmt.Sprintf("%s … %s", s.Labels[0], s.Labels[s.Len()-1])
	}
	return strings.Join([]string{
		line,
		ui.RenderDim(fmt.Sprintf("min %s  max %s", FormatValue(lo), FormatValue(hi))),
		ui.RenderDim(axis),
	}, "\n")
}

func sparkGlyph(v, lo, hi float64) rune {
	if hi == lo {
		return sparkLevels[len(sparkLevels)/2]
	}
	// Halving keeps both differences finite across the whole float64 range.
	t := (v/2 - lo/2) / (hi/2 - lo/2)
	if math.IsNaN(t) {
		t = 0
	}
	t = math.Max(0, math.Min(1, t))
	idx := int(math.Round(t * float64(len(sparkLevels)-1)))
	return sparkLevels[idx]
}

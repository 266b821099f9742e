package logger

import (
	"math"

	"github.com/rs/zerolog"

	"github.com/medalytics/medalytics-cli/internal/wizard"
)

// FormWrapper logs the wizard form as a nested object.
type FormWrapper struct {
	Form wizard.Form
}

func (w FormWrapper) MarshalZerologObject(e *zerolog.Event) {
	e.Str("organization", w.Form.OrganizationName).
		Str("role", w.Form.Role.String()).
		Str("icuBeds", w.Form.Metrics.ICUBeds).
		Str("ppeStock", w.Form.Metrics.PPEStock).
		Str("ventilatorUsage", w.Form.Metrics.VentilatorUsage)
}

// SeriesWrapper logs a summary of a numeric series rather than every point.
type SeriesWrapper struct {
	Values []float64
}

func (w SeriesWrapper) MarshalZerologObject(e *zerolog.Event) {
	e.Int("points", len(w.Values))
	if len(w.Values) == 0 {
		return
	}
	lo, hi, sum := math.Inf(1), math.Inf(-1), 0.0
	for _, v := range w.Values {
		lo = math.Min(lo, v)
		hi = math.Max(hi, v)
		sum += v
	}
	e.Float64("min", lo).Float64("max", hi).Float64("sum", sum)
}

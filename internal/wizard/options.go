package wizard

// MetricsValidator checks the raw metric fields before the operator may leave
// the metrics step.
type MetricsValidator interface {
	ValidateMetrics(icuBeds, ppeStock, ventilatorUsage string) error
}

type config struct {
	layout    Layout
	restart   RestartPolicy
	validator MetricsValidator
}

// Option configures a Controller.
type Option interface {
	apply(*config)
}

type optionFunc func(*config)

func (f optionFunc) apply(cfg *config) {
	f(cfg)
}

// WithLayout sets the number of steps in the flow.
func WithLayout(layout Layout) Option {
	return optionFunc(func(cfg *config) {
		cfg.layout = layout
	})
}

// WithRestartPolicy sets whether Restart keeps or clears the form.
func WithRestartPolicy(policy RestartPolicy) Option {
	return optionFunc(func(cfg *config) {
		cfg.restart = policy
	})
}

// WithStrictMetrics refuses to leave the metrics step until v accepts the
// entered figures. A nil validator disables the check.
func WithStrictMetrics(v MetricsValidator) Option {
	return optionFunc(func(cfg *config) {
		cfg.validator = v
	})
}

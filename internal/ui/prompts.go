package ui

import (
	"github.com/charmbracelet/huh"
)

// InputOption configures an Input prompt.
type InputOption func(*inputConfig)

type inputConfig struct {
	description string
	placeholder string
	validate    func(string) error
}

// WithInputDescription sets the description for an Input prompt.
func WithInputDescription(desc string) InputOption {
	return func(c *inputConfig) {
		c.description = desc
	}
}

// WithPlaceholder sets the placeholder text for an Input prompt.
func WithPlaceholder(placeholder string) InputOption {
	return func(c *inputConfig) {
		c.placeholder = placeholder
	}
}

// WithValidate rejects submissions for which fn returns an error; the error
// text is shown under the field.
func WithValidate(fn func(string) error) InputOption {
	return func(c *inputConfig) {
		c.validate = fn
	}
}

// Input displays a single text input prompt and returns the entered value.
func Input(title string, opts ...InputOption) (string, error) {
	cfg := inputConfig{}
	for _, o := range opts {
		o(&cfg)
	}

	var result string
	input := huh.NewInput().
		Title(title).
		Value(&result)

	if cfg.description != "" {
		input = input.Description(cfg.description)
	}
	if cfg.placeholder != "" {
		input = input.Placeholder(cfg.placeholder)
	}
	if cfg.validate != nil {
		input = input.Validate(cfg.validate)
	}

	form := huh.NewForm(
		huh.NewGroup(input),
	).WithTheme(MedalyticsTheme())

	if err := form.Run(); err != nil {
		return "", err
	}
	return result, nil
}

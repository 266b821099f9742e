package validation

import "errors"

// MetricsInput holds the raw resource figures entered in the wizard.
type MetricsInput struct {
	ICUBeds         string `validate:"required,non_negative_int" cli:"ICU beds"`
	PPEStock        string `validate:"required,non_negative_int" cli:"PPE stock"`
	VentilatorUsage string `validate:"required,non_negative_int" cli:"Ventilator usage"`
}

// ValidateMetrics checks that every figure is a whole number of zero or more.
// Failures come back as ValidationErrors.
func (v *Validator) ValidateMetrics(icuBeds, ppeStock, ventilatorUsage string) error {
	return v.Check(MetricsInput{
		ICUBeds:         icuBeds,
		PPEStock:        ppeStock,
		VentilatorUsage: ventilatorUsage,
	})
}

// FilePath checks a path given to the optimize command.
func (v *Validator) FilePath(path string) error {
	input := struct {
		FilePath string `validate:"required,csv_file" cli:"--file-path"`
	}{FilePath: path}

	err := v.Check(input)
	var errs ValidationErrors
	if errors.As(err, &errs) {
		return &errs[0]
	}
	return err
}

package validation

import (
	"errors"
	"fmt"
	"reflect"

	"github.com/go-playground/locales/en"
	ut "github.com/go-playground/universal-translator"
	"github.com/go-playground/validator/v10"
	en_translations "github.com/go-playground/validator/v10/translations/en"

	"github.com/medalytics/medalytics-cli/internal/validation/files"
)

// Tags registered on top of the validator's built-in ones.
var customValidators = map[string]validator.Func{
	"csv_file":         isCSVFile,
	"non_negative_int": isNonNegativeInt,
	"path_read":        files.HasReadAccessToPath,
	"yaml":             files.IsValidYAML,
}

// Messages shown for failed tags. {0} is the field name, {1} the rejected value.
var customTranslations = map[string]string{
	"csv_file":         "{0} must point to a .csv file: {1}",
	"http_url":         "{0} must be a valid HTTP URL: {1}",
	"non_negative_int": "{0} must be a whole number of zero or more: {1}",
	"path_read":        "{0} must have read access to path: {1}",
	"yaml":             "{0} must be a valid YAML file: {1}",
}

// ValidationError is one failed field, named the way the user typed it.
type ValidationError struct {
	Field  string
	Detail string
}

func (e *ValidationError) Error() string {
	return e.Detail
}

type ValidationErrors []ValidationError

func (ve ValidationErrors) Error() string {
	msg := "validation error\n"
	for _, err := range ve {
		msg += err.Detail + "\n"
	}
	return msg
}

// Details returns the translated message of every error, in order.
func (ve ValidationErrors) Details() []string {
	details := make([]string, len(ve))
	for i, err := range ve {
		details[i] = err.Detail
	}
	return details
}

// Validator wraps a validator instance and a translator.
type Validator struct {
	validate *validator.Validate
	trans    ut.Translator
}

// NewValidator creates a Validator with English messages and the medalytics tags.
func NewValidator() (*Validator, error) {
	validate := validator.New()

	// Report fields by their flag or label ("--base-url", "ICU beds") when the
	// struct carries a cli tag.
	validate.RegisterTagNameFunc(func(fld reflect.StructField) string {
		if name := fld.Tag.Get("cli"); name != "" {
			return name
		}
		return fld.Name
	})

	enLocale := en.New()
	trans, found := ut.New(enLocale, enLocale).GetTranslator("en")
	if !found {
		return nil, errors.New("translator not found")
	}

	if err := en_translations.RegisterDefaultTranslations(validate, trans); err != nil {
		return nil, fmt.Errorf("failed to register default translations: %w", err)
	}

	v := &Validator{validate: validate, trans: trans}
	for tag, message := range customTranslations {
		if err := v.RegisterCustomTranslation(tag, message); err != nil {
			return nil, fmt.Errorf("failed to register custom translation for %s: %w", tag, err)
		}
	}
	for name, fn := range customValidators {
		if err := validate.RegisterValidation(name, fn); err != nil {
			return nil, err
		}
	}

	return v, nil
}

// RegisterCustomTranslation replaces the message for tag.
func (v *Validator) RegisterCustomTranslation(tag, msg string) error {
	return v.validate.RegisterTranslation(tag, v.trans,
		func(ut ut.Translator) error {
			return ut.Add(tag, msg, true)
		},
		func(ut ut.Translator, fe validator.FieldError) string {
			t, _ := ut.T(tag, fe.Field(), fmt.Sprintf("%v", fe.Value()))
			return t
		},
	)
}

// Struct validates a struct and returns translated errors if any. The
// validator's own errors stay reachable with errors.As.
func (v *Validator) Struct(s any) error {
	err := v.validate.Struct(s)
	if err == nil {
		return nil
	}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		var msg string
		for _, e := range verrs {
			msg += e.Translate(v.trans) + "\n"
		}
		return fmt.Errorf("validation error:\n%s: %w", msg, verrs)
	}
	return err
}

// Check validates s and reports field failures as ValidationErrors. Anything
// else, such as a non-struct input, is returned unchanged.
func (v *Validator) Check(s any) error {
	err := v.Struct(s)
	if err == nil {
		return nil
	}
	if errs := v.ParseValidationErrors(err); len(errs) > 0 {
		return errs
	}
	return err
}

// ParseValidationErrors flattens err into one ValidationError per failed field.
func (v *Validator) ParseValidationErrors(err error) ValidationErrors {
	ves := ValidationErrors{}

	var verrs validator.ValidationErrors
	if errors.As(err, &verrs) {
		for _, verr := range verrs {
			ves = append(ves, ValidationError{
				Field:  verr.StructNamespace(),
				Detail: verr.Translate(v.trans),
			})
		}
	}

	return ves
}

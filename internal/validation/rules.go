package validation

import (
	"fmt"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"

	"github.com/go-playground/validator/v10"
)

func isNonNegativeInt(fl validator.FieldLevel) bool {
	_, err := strconv.ParseUint(strings.TrimSpace(stringField(fl)), 10, 64)
	return err == nil
}

// isCSVFile only looks at the name: the optimizer reads the file from its own
// filesystem.
func isCSVFile(fl validator.FieldLevel) bool {
	path := strings.TrimSpace(stringField(fl))
	return path != "" && strings.EqualFold(filepath.Ext(path), ".csv")
}

func stringField(fl validator.FieldLevel) string {
	field := fl.Field()
	if field.Kind() != reflect.String {
		panic(fmt.Sprintf("input field name is not a string: %s", fl.FieldName()))
	}
	return field.String()
}

package files

import (
	"fmt"
	"os"
	"reflect"

	"github.com/go-playground/validator/v10"
)

// HasReadAccessToPath reports whether the field names a file or directory
// that can be opened.
func HasReadAccessToPath(fl validator.FieldLevel) bool {
	path := stringField(fl)

	f, err := os.Open(path) // #nosec G304 -- path is user-supplied configuration
	if err != nil {
		return false
	}
	_ = f.Close()
	return true
}

func stringField(fl validator.FieldLevel) string {
	field := fl.Field()
	if field.Kind() != reflect.String {
		panic(fmt.Sprintf("input field name is not a string: %s", fl.FieldName()))
	}
	return field.String()
}

package files

import (
	"errors"
	"io"
	"os"

	"github.com/go-playground/validator/v10"
	"gopkg.in/yaml.v3"
)

// IsValidYAML reports whether the field names a regular file holding a YAML
// document. An empty file passes.
func IsValidYAML(fl validator.FieldLevel) bool {
	path := stringField(fl)

	info, err := os.Stat(path)
	if err != nil || info.IsDir() {
		return false
	}

	f, err := os.Open(path) // #nosec G304 -- path is user-supplied configuration
	if err != nil {
		return false
	}
	defer f.Close()

	var content any
	if err := yaml.NewDecoder(f).Decode(&content); err != nil && !errors.Is(err, io.EOF) {
		return false
	}
	return true
}

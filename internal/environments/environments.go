package environments

import (
	"embed"
	"fmt"
	"os"
	"sort"
	"strings"

	"gopkg.in/yaml.v2"
)

const (
	EnvVarEnv          = "MEDALYTICS_ENV"
	EnvVarOptimizerURL = "MEDALYTICS_OPTIMIZER_URL"

	DefaultEnv = "LOCAL"
)

//go:embed environments.yaml
var envFileContent embed.FS

type EnvironmentSet struct {
	Name         string `yaml:"-"`
	OptimizerURL string `yaml:"MEDALYTICS_OPTIMIZER_URL"`
}

type fileFormat struct {
	Envs map[string]EnvironmentSet `yaml:"ENVIRONMENTS"`
}

func loadEmbeddedEnvironmentFile() (*fileFormat, error) {
	data, err := envFileContent.ReadFile("environments.yaml")
	if err != nil {
		return nil, fmt.Errorf("reading embedded environments file: %w", err)
	}
	return parseEnvironmentFile(data)
}

func loadEnvironmentFile(path string) (*fileFormat, error) {
	data, err := os.ReadFile(path) // #nosec G304 -- only used with test fixtures
	if err != nil {
		return nil, fmt.Errorf("reading environments file: %w", err)
	}
	return parseEnvironmentFile(data)
}

func parseEnvironmentFile(data []byte) (*fileFormat, error) {
	var ff fileFormat
	if err := yaml.Unmarshal(data, &ff); err != nil {
		return nil, fmt.Errorf("unmarshalling environments file: %w", err)
	}
	return &ff, nil
}

// Names lists the known environments in alphabetical order.
func (ff *fileFormat) Names() []string {
	names := make([]string, 0, len(ff.Envs))
	for name := range ff.Envs {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// NewEnvironmentSet picks envName, falling back to DefaultEnv for unknown
// names, and applies the MEDALYTICS_OPTIMIZER_URL override.
func NewEnvironmentSet(ff *fileFormat, envName string) *EnvironmentSet {
	envName = strings.ToUpper(strings.TrimSpace(envName))
	set, ok := ff.Envs[envName]
	if !ok {
		envName = DefaultEnv
		set = ff.Envs[DefaultEnv]
	}
	set.Name = envName

	if v := os.Getenv(EnvVarOptimizerURL); v != "" {
		set.OptimizerURL = v
	}
	return &set
}

// New resolves the environment named by MEDALYTICS_ENV.
func New() (*EnvironmentSet, error) {
	return Named(os.Getenv(EnvVarEnv))
}

// Named resolves the given environment. An empty name means DefaultEnv.
func Named(envName string) (*EnvironmentSet, error) {
	ff, err := loadEmbeddedEnvironmentFile()
	if err != nil {
		return nil, err
	}
	if envName == "" {
		envName = DefaultEnv
	}
	return NewEnvironmentSet(ff, envName), nil
}

// Known reports the embedded environment names.
func Known() ([]string, error) {
	ff, err := loadEmbeddedEnvironmentFile()
	if err != nil {
		return nil, err
	}
	return ff.Names(), nil
}

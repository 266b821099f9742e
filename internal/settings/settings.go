package settings

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog"
	"github.com/spf13/viper"

	"github.com/medalytics/medalytics-cli/internal/constants"
	"github.com/medalytics/medalytics-cli/internal/environments"
	"github.com/medalytics/medalytics-cli/internal/validation"
	"github.com/medalytics/medalytics-cli/internal/wizard"
)

// EnvPrefix namespaces every environment variable, e.g. MEDALYTICS_BASE_URL.
const EnvPrefix = "MEDALYTICS"

const loadEnvErrorMessage = "Not able to load configuration from .env file, skipping this optional step.\n" +
	"Settings are still read from exported MEDALYTICS_* variables, the config file and flags."

// Settings is the resolved configuration of one CLI invocation.
type Settings struct {
	Environment   string
	BaseURL       string
	FetchTimeout  time.Duration
	RetryAttempts uint
	RestartPolicy wizard.RestartPolicy
	StrictMetrics bool
	Layout        wizard.Layout
	LogFile       string
	ConfigFile    string
}

type settingsInput struct {
	BaseURL       string        `validate:"required,http_url" cli:"--base-url"`
	FetchTimeout  time.Duration `validate:"gt=0" cli:"--fetch-timeout"`
	RetryAttempts uint          `validate:"min=1,max=10" cli:"--retry-attempts"`
	RestartPolicy string        `validate:"oneof=keep clear" cli:"--restart-policy"`
	Steps         int           `validate:"oneof=3 4" cli:"--steps"`
	ConfigFile    string        `validate:"omitempty,path_read,yaml" cli:"--config"`
}

// New resolves settings from, highest first: flags, MEDALYTICS_* variables
// (exported or from .env), the config file, then defaults.
func New(logger *zerolog.Logger, v *viper.Viper) (*Settings, error) {
	if err := LoadEnv(v.GetString(Flags.EnvFile.Name)); err != nil {
		logger.Debug().Err(err).Msg(loadEnvErrorMessage)
	}

	BindEnv(v)
	setDefaults(v)

	configFile, err := LoadSettingsIntoViper(v)
	if err != nil {
		return nil, fmt.Errorf("failed to load settings: %w", err)
	}
	if configFile != "" {
		logger.Debug().Str("path", configFile).Msg("Loaded config file")
	}

	env, err := environments.Named(v.GetString(Flags.Environment.Name))
	if err != nil {
		return nil, err
	}

	baseURL := strings.TrimSpace(v.GetString(Flags.BaseURL.Name))
	if baseURL == "" {
		baseURL = env.OptimizerURL
	}

	input := settingsInput{
		BaseURL:       baseURL,
		FetchTimeout:  v.GetDuration(Flags.FetchTimeout.Name),
		RetryAttempts: v.GetUint(Flags.RetryAttempts.Name),
		RestartPolicy: strings.ToLower(strings.TrimSpace(v.GetString(Flags.RestartPolicy.Name))),
		Steps:         v.GetInt(Flags.Steps.Name),
		ConfigFile:    configFile,
	}
	if err := validate(input); err != nil {
		return nil, err
	}

	policy, err := wizard.ParseRestartPolicy(input.RestartPolicy)
	if err != nil {
		return nil, err
	}
	layout, err := wizard.ParseLayout(input.Steps)
	if err != nil {
		return nil, err
	}

	s := &Settings{
		Environment:   env.Name,
		BaseURL:       input.BaseURL,
		FetchTimeout:  input.FetchTimeout,
		RetryAttempts: input.RetryAttempts,
		RestartPolicy: policy,
		StrictMetrics: v.GetBool(Flags.StrictMetrics.Name),
		Layout:        layout,
		LogFile:       v.GetString(Flags.LogFile.Name),
		ConfigFile:    configFile,
	}
	logger.Debug().
		Str("env", s.Environment).
		Str("baseURL", s.BaseURL).
		Dur("fetchTimeout", s.FetchTimeout).
		Uint("retryAttempts", s.RetryAttempts).
		Msg("Settings resolved")
	return s, nil
}

func validate(input settingsInput) error {
	v, err := validation.NewValidator()
	if err != nil {
		return fmt.Errorf("failed to initialize validator: %w", err)
	}
	return v.Check(input)
}

func setDefaults(v *viper.Viper) {
	v.SetDefault(Flags.FetchTimeout.Name, constants.DefaultFetchTimeout)
	v.SetDefault(Flags.RetryAttempts.Name, constants.DefaultRetryAttempts)
	v.SetDefault(Flags.RestartPolicy.Name, constants.DefaultRestartPolicy)
	v.SetDefault(Flags.Steps.Name, constants.DefaultSteps)
}

// BindEnv maps every setting to its MEDALYTICS_* variable, with dashes
// becoming underscores.
func BindEnv(v *viper.Viper) {
	v.SetEnvPrefix(EnvPrefix)
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
}

func LoadEnv(envPath string) error {
	if envPath != "" {
		if _, err := os.Stat(envPath); err == nil {
			if err := godotenv.Load(envPath); err != nil {
				return fmt.Errorf("error loading file from %s: %w", envPath, err)
			}
			return nil
		}
	}

	cwd, err := os.Getwd()
	if err != nil {
		return fmt.Errorf("error getting working directory: %w", err)
	}

	foundEnvPath, err := findEnvFile(cwd, constants.DefaultEnvFileName)
	if err != nil {
		return fmt.Errorf("error loading environment: %w", err)
	}

	if err := godotenv.Load(foundEnvPath); err != nil {
		return fmt.Errorf("error loading file from %s: %w", foundEnvPath, err)
	}
	return nil
}

func findEnvFile(startDir, fileName string) (string, error) {
	dir := startDir

	for {
		filePath := filepath.Join(dir, fileName)

		if info, err := os.Stat(filePath); err == nil && !info.IsDir() {
			return filePath, nil
		}

		parentDir := filepath.Dir(dir)
		if parentDir == dir {
			break
		}
		dir = parentDir
	}
	return "", fmt.Errorf("file %s not found in any parent directory starting from %s", fileName, startDir)
}

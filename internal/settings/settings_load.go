package settings

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"

	"github.com/medalytics/medalytics-cli/internal/constants"
)

type Flag struct {
	Name  string
	Short string
}

type flagNames struct {
	Environment    Flag
	EnvFile        Flag
	ConfigFile     Flag
	Verbose        Flag
	BaseURL        Flag
	FetchTimeout   Flag
	RetryAttempts  Flag
	RestartPolicy  Flag
	StrictMetrics  Flag
	Steps          Flag
	LogFile        Flag
	FilePath       Flag
	NonInteractive Flag
}

var Flags = flagNames{
	Environment:    Flag{"env", "e"},
	EnvFile:        Flag{"env-file", ""},
	ConfigFile:     Flag{"config", "c"},
	Verbose:        Flag{"verbose", "v"},
	BaseURL:        Flag{"base-url", ""},
	FetchTimeout:   Flag{"fetch-timeout", ""},
	RetryAttempts:  Flag{"retry-attempts", ""},
	RestartPolicy:  Flag{"restart-policy", ""},
	StrictMetrics:  Flag{"strict-metrics", ""},
	Steps:          Flag{"steps", ""},
	LogFile:        Flag{"log-file", ""},
	FilePath:       Flag{"file-path", "f"},
	NonInteractive: Flag{"non-interactive", ""},
}

// AddGlobalFlags registers the flags every command understands.
func AddGlobalFlags(fs *pflag.FlagSet) {
	fs.StringP(Flags.Environment.Name, Flags.Environment.Short, "", "Optimizer environment (LOCAL, STAGING, PRODUCTION)")
	fs.String(Flags.EnvFile.Name, "", "Path to a .env file (default: nearest .env from the working directory up)")
	fs.StringP(Flags.ConfigFile.Name, Flags.ConfigFile.Short, "", fmt.Sprintf("Path to a YAML config file (default: ./%s if present)", constants.DefaultConfigFileName))
	fs.BoolP(Flags.Verbose.Name, Flags.Verbose.Short, false, "Run command in VERBOSE mode")
	fs.String(Flags.BaseURL.Name, "", "Optimizer base URL, overrides the environment")
	fs.Duration(Flags.FetchTimeout.Name, constants.DefaultFetchTimeout, "Timeout for each optimizer request")
	fs.Uint(Flags.RetryAttempts.Name, constants.DefaultRetryAttempts, "Attempts per optimizer request; only network failures and 5xx responses are retried")
}

// AddWizardFlags registers the flags of the interactive wizard.
func AddWizardFlags(cmd *cobra.Command) {
	cmd.Flags().String(Flags.RestartPolicy.Name, constants.DefaultRestartPolicy, "What Restart does with entered data: keep or clear")
	cmd.Flags().Bool(Flags.StrictMetrics.Name, false, "Refuse to leave the metrics step unless every figure is a whole number of zero or more")
	cmd.Flags().Int(Flags.Steps.Name, constants.DefaultSteps, "Number of wizard steps: 4 ends on a completion screen, 3 ends on the dashboard")
	cmd.Flags().String(Flags.LogFile.Name, DefaultLogFilePath(), "File the wizard writes its log to; empty disables logging")
}

// AddNonInteractiveFlag registers --non-interactive.
func AddNonInteractiveFlag(cmd *cobra.Command) {
	cmd.Flags().Bool(Flags.NonInteractive.Name, false, "Never prompt; fail when a required value is missing")
}

// DefaultLogFilePath is medalytics.log under the user cache directory, or in
// the working directory when there is none.
func DefaultLogFilePath() string {
	dir, err := os.UserCacheDir()
	if err != nil {
		return constants.DefaultLogFileName
	}
	return filepath.Join(dir, constants.AppName, constants.DefaultLogFileName)
}

func mergeConfigToViper(v *viper.Viper, filePath string) error {
	v.SetConfigFile(filePath)
	err := v.MergeInConfig()
	if err != nil {
		return fmt.Errorf("error loading config file %s: %w", filePath, err)
	}
	return nil
}

// LoadSettingsIntoViper merges the config file into v. An explicit --config
// must exist; otherwise medalytics.yaml in the working directory is used when
// present. It returns the file that was loaded, if any.
func LoadSettingsIntoViper(v *viper.Viper) (string, error) {
	v.SetConfigType("yaml")

	if path := v.GetString(Flags.ConfigFile.Name); path != "" {
		if err := mergeConfigToViper(v, path); err != nil {
			return "", err
		}
		return path, nil
	}

	cwd, err := os.Getwd()
	if err != nil {
		return "", fmt.Errorf("failed to get current working directory: %w", err)
	}
	path := filepath.Join(cwd, constants.DefaultConfigFileName)
	if _, err := os.Stat(path); err != nil {
		if errors.Is(err, os.ErrNotExist) {
			return "", nil
		}
		return "", fmt.Errorf("failed to inspect %s: %w", path, err)
	}
	if err := mergeConfigToViper(v, path); err != nil {
		return "", err
	}
	return path, nil
}

package test

import (
	"fmt"
	"os"
	"strings"

	"github.com/medalytics/medalytics-cli/internal/settings"
)

// LookupAndUnsetMedalyticsEnv unsets every MEDALYTICS_* variable and returns
// the removed values for RestoreEnvVars.
func LookupAndUnsetMedalyticsEnv() map[string]string {
	removed := map[string]string{}
	for _, kv := range os.Environ() {
		name, _, _ := strings.Cut(kv, "=")
		if !strings.HasPrefix(name, settings.EnvPrefix+"_") {
			continue
		}
		if value := LookupAndUnsetEnvVar(name); value != "" {
			removed[name] = value
		}
	}
	return removed
}

func LookupAndUnsetEnvVar(envVar string) string {
	value, found := os.LookupEnv(envVar)
	if found {
		fmt.Printf("Found %s env var\n", envVar)
		err := os.Unsetenv(envVar)
		if err != nil {
			fmt.Printf("Not able to unset %s env var\n", envVar)
			return ""
		}
	}
	return value
}

func RestoreEnvVars(values map[string]string) {
	for name, value := range values {
		RestoreEnvVar(name, value)
	}
}

func RestoreEnvVar(envVar string, value string) {
	if value == "" {
		fmt.Printf("There was nothing to restore for %s env var\n", envVar)
		return
	}
	err := os.Setenv(envVar, value)
	if err != nil {
		fmt.Printf("Not able to restore %s env var\n", envVar)
		return
	}
	fmt.Printf("Restored %s env var\n", envVar)
}

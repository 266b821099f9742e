package constants

import (
	"time"
)

const (
	AppName = "medalytics"

	// Default settings
	DefaultFetchTimeout  = 10 * time.Second
	DefaultRetryAttempts = 1
	MaxRetryAttempts     = 10
	DefaultRestartPolicy = "keep"
	DefaultSteps         = 4

	DefaultConfigFileName = "medalytics.yaml"
	DefaultEnvFileName    = ".env"
	DefaultLogFileName    = "medalytics.log"

	// Where the optimize command looks for the hospital CSV when none is given
	// and prompting is not possible.
	DefaultOptimizeFilePath = "hospitals.csv"
)

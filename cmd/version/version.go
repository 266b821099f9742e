package version

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/medalytics/medalytics-cli/internal/constants"
	"github.com/medalytics/medalytics-cli/internal/runtime"
)

// Default placeholder value, replaced at build time with -ldflags.
var Version = "development"

func New(runtimeContext *runtime.Context) *cobra.Command {
	var versionCmd = &cobra.Command{
		Use:   "version",
		Short: "Print the medalytics version",
		Long:  "This command prints the current version of the medalytics CLI",
		RunE: func(cmd *cobra.Command, args []string) error {
			fmt.Println(constants.AppName, Version)
			return nil
		},
	}

	return versionCmd
}

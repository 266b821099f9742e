package cmd

import (
	"context"
	"fmt"
	"os"
	"os/signal"

	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/medalytics/medalytics-cli/cmd/optimize"
	"github.com/medalytics/medalytics-cli/cmd/quant"
	"github.com/medalytics/medalytics-cli/cmd/start"
	"github.com/medalytics/medalytics-cli/cmd/version"
	"github.com/medalytics/medalytics-cli/internal/logger"
	medruntime "github.com/medalytics/medalytics-cli/internal/runtime"
	"github.com/medalytics/medalytics-cli/internal/settings"
	"github.com/medalytics/medalytics-cli/update"
)

// RootCmd represents the base command when called without any subcommands
var RootCmd = newRootCommand()

func Execute() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt)
	defer stop()

	err := RootCmd.ExecuteContext(ctx)
	if err != nil {
		stop()
		os.Exit(1)
	}
}

func newRootCommand() *cobra.Command {
	rootLogger := createLogger()
	rootViper := createViper()
	runtimeContext := medruntime.NewContext(rootLogger, rootViper)

	// By defining a Run func, we force PersistentPreRunE to execute
	// even when 'medalytics' is called with no subcommand
	helpRunE := func(cmd *cobra.Command, args []string) error {
		err := cmd.Help()
		if err != nil {
			return fmt.Errorf("fail to show help: %w", err)
		}
		return nil
	}

	rootCmd := &cobra.Command{
		Use:               "medalytics",
		Short:             "Medalytics CLI tool",
		Long:              `A command line tool for recording hospital resource figures and reviewing network optimization results.`,
		DisableAutoGenTag: true,
		SilenceUsage:      true,
		RunE:              helpRunE,

		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			log := runtimeContext.Logger
			v := runtimeContext.Viper

			if err := v.BindPFlags(cmd.Flags()); err != nil {
				return fmt.Errorf("failed to bind flags: %w", err)
			}

			if verbose := v.GetBool(settings.Flags.Verbose.Name); verbose {
				newLogger := log.Level(zerolog.DebugLevel)
				runtimeContext.Logger = &newLogger
			}

			if isLoadSettings(cmd) {
				if err := runtimeContext.AttachSettings(); err != nil {
					return err
				}
			}

			return nil
		},

		PersistentPostRun: func(cmd *cobra.Command, args []string) {
			if isCheckForUpdates(cmd) {
				update.CheckForUpdates(version.Version, runtimeContext.Logger)
			}
		},
	}

	cobra.AddTemplateFunc("hasUngrouped", func(c *cobra.Command) bool {
		for _, cmd := range c.Commands() {
			if cmd.IsAvailableCommand() && !cmd.Hidden && cmd.GroupID == "" {
				return true
			}
		}
		return false
	})

	rootCmd.SetHelpTemplate(helpTemplate)

	// Definition of global flags, present for every subcommand
	settings.AddGlobalFlags(rootCmd.PersistentFlags())
	rootCmd.CompletionOptions.HiddenDefaultCmd = true

	startCmd := start.New(runtimeContext)
	optimizeCmd := optimize.New(runtimeContext)
	quantCmd := quant.New(runtimeContext)
	versionCmd := version.New(runtimeContext)

	// Define groups (order controls display order)
	rootCmd.AddGroup(&cobra.Group{ID: "getting-started", Title: "Getting Started"})
	rootCmd.AddGroup(&cobra.Group{ID: "optimizer", Title: "Optimizer"})

	startCmd.GroupID = "getting-started"
	optimizeCmd.GroupID = "optimizer"
	quantCmd.GroupID = "optimizer"

	rootCmd.AddCommand(
		startCmd,
		optimizeCmd,
		quantCmd,
		versionCmd,
	)

	return rootCmd
}

func isLoadSettings(cmd *cobra.Command) bool {
	// These commands never talk to the optimizer, so a broken config must not stop them
	var excludedCommands = map[string]struct{}{
		"version":    {},
		"bash":       {},
		"fish":       {},
		"powershell": {},
		"zsh":        {},
		"help":       {},
		"medalytics": {},
	}

	_, exists := excludedCommands[cmd.Name()]
	return !exists
}

func isCheckForUpdates(cmd *cobra.Command) bool {
	switch cmd.Name() {
	case "bash", "zsh", "fish", "powershell", "help":
		return false
	}
	return true
}

func createLogger() *zerolog.Logger {
	return logger.NewConsoleLogger()
}

func createViper() *viper.Viper {
	return viper.New() //nolint:forbidigo
}

const helpTemplate = `
{{- with (or .Long .Short)}}{{.}}{{end}}

Usage:
{{- if .Runnable}}
  {{.UseLine}}
{{- else if .HasAvailableSubCommands}}
  {{.CommandPath}} [command]
{{- end}}

{{- if .HasAvailableSubCommands}}

Available Commands:
  {{- $groupsUsed := false -}}
  {{- $firstGroup := true -}}

  {{- range $grp := .Groups}}
    {{- $has := false -}}
    {{- range $.Commands}}
      {{- if (and (not .Hidden) (.IsAvailableCommand) (eq .GroupID $grp.ID))}}
        {{- $has = true}}
      {{- end}}
    {{- end}}

    {{- if $has}}
      {{- $groupsUsed = true -}}
      {{- if $firstGroup}}{{- $firstGroup = false -}}{{else}}

{{- end}}

  {{printf "%s:" $grp.Title}}
      {{- range $.Commands}}
        {{- if (and (not .Hidden) (.IsAvailableCommand) (eq .GroupID $grp.ID))}}
    {{rpad .Name .NamePadding}}  {{.Short}}
        {{- end}}
      {{- end}}
    {{- end}}
  {{- end}}

  {{- if $groupsUsed }}
    {{- if hasUngrouped .}}

  Other:
      {{- range .Commands}}
        {{- if (and (not .Hidden) (.IsAvailableCommand) (eq .GroupID ""))}}
    {{rpad .Name .NamePadding}}  {{.Short}}
        {{- end}}
      {{- end}}
    {{- end}}
  {{- else }}
    {{- range .Commands}}
      {{- if (and (not .Hidden) (.IsAvailableCommand))}}
    {{rpad .Name .NamePadding}}  {{.Short}}
      {{- end}}
    {{- end}}
  {{- end }}
{{- end }}

{{- if .HasExample}}

Examples:
{{.Example}}
{{- end }}

{{- $local := (.LocalFlags.FlagUsagesWrapped 100 | trimTrailingWhitespaces) -}}
{{- if $local }}

Flags:
{{$local}}
{{- end }}

{{- $inherited := (.InheritedFlags.FlagUsagesWrapped 100 | trimTrailingWhitespaces) -}}
{{- if $inherited }}

Global Flags:
{{$inherited}}
{{- end }}

{{- if .HasAvailableSubCommands }}

Use "{{.CommandPath}} [command] --help" for more information about a command.
{{- end }}

Tip: New here? Run:
  $ medalytics start
    to enter your organization's figures, or:
  $ medalytics optimize --file-path hospitals.csv
    to run an allocation from the command line.
`

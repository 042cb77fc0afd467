/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package cmd

import (
	"errors"
	"os"

	"github.com/spf13/cobra"

	"github.com/fightkeep/fightkeep/pkg/buildinfo"
	"github.com/fightkeep/fightkeep/pkg/exitcode"
	"github.com/fightkeep/fightkeep/pkg/logger"
)

// newRootCommand creates a fresh root command instance.
// This factory pattern allows tests to create isolated command trees without shared state.
func newRootCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fightkeep",
		Short: "Content integrity engine for fighting game libraries",
		Long: `Fightkeep keeps a MUGEN-style content library healthy: it finds duplicate
and outdated characters, stages, and screenpacks, validates that definition
files reference assets that actually exist, and repairs what it safely can.

Examples:
   fightkeep scan               # Find duplicate and outdated content
   fightkeep validate           # Check definition files against the disk
   fightkeep fix                # Repair fixable issues atomically
   fightkeep roster list        # Show the select.def roster`,
		PersistentPreRun: func(cmd *cobra.Command, _ []string) {
			initializeLogger(cmd)
		},
	}

	// Add global flags
	cmd.PersistentFlags().String("log-level", "info", "Set log level (debug|info|warn|error)")
	cmd.PersistentFlags().Bool("json-logs", false, "Output logs in JSON format")
	cmd.PersistentFlags().Bool("no-color", false, "Disable colored output")
	cmd.PersistentFlags().String("root", "", "Content library root (overrides config)")

	// Wire Cobra's built-in --version using the binary version
	cmd.Version = buildinfo.BinaryVersion
	cmd.SetVersionTemplate("fightkeep {{.Version}}\n")

	return cmd
}

// registerSubcommands adds all subcommands to the root command.
// This is called from init() for production and can be called explicitly in tests.
func registerSubcommands(cmd *cobra.Command) {
	cmd.AddCommand(newScanCommand())
	cmd.AddCommand(newValidateCommand())
	cmd.AddCommand(newFixCommand())
	cmd.AddCommand(newRosterCommand())
	cmd.AddCommand(newConfigCommand())
	cmd.AddCommand(newVersionCommand())
}

// rootCmd represents the base command when called without any subcommands
var rootCmd = newRootCommand()

// Execute adds all child commands to the root command and sets flags appropriately.
// This is called by main.main(). It only needs to happen once to the rootCmd.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		logger.Error("Command execution failed", logger.Err(err))
		os.Exit(exitCodeFor(err))
	}
}

// exitCodeFor maps a command error to the process exit code.
func exitCodeFor(err error) int {
	if errors.Is(err, errConfig) {
		return exitcode.ConfigError
	}
	return exitcode.GeneralError
}

func init() {
	registerSubcommands(rootCmd)
}

// initializeLogger sets up the logger based on command flags
func initializeLogger(cmd *cobra.Command) {
	logLevelStr, _ := cmd.Flags().GetString("log-level")
	jsonLogs, _ := cmd.Flags().GetBool("json-logs")
	noColor, _ := cmd.Flags().GetBool("no-color")

	logger.Initialize(logger.Config{
		Level:     logger.ParseLevel(logLevelStr),
		UseColor:  !noColor,
		JSON:      jsonLogs,
		Component: "fightkeep",
	})
}

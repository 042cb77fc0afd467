/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package cmd

import (
	"fmt"
	"runtime"

	"github.com/spf13/cobra"

	"github.com/fightkeep/fightkeep/pkg/buildinfo"
)

func newVersionCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "version",
		Short: "Show version information",
		RunE:  runVersion,
	}
	cmd.Flags().Bool("extended", false, "Include module and runtime details")
	return cmd
}

func runVersion(cmd *cobra.Command, _ []string) error {
	out := cmd.OutOrStdout()
	extended, _ := cmd.Flags().GetBool("extended")

	fmt.Fprintf(out, "fightkeep %s\n", buildinfo.BinaryVersion)
	if extended {
		fmt.Fprintf(out, "module: %s\n", buildinfo.ModuleVersion())
		fmt.Fprintf(out, "go: %s\n", runtime.Version())
		fmt.Fprintf(out, "platform: %s/%s\n", runtime.GOOS, runtime.GOARCH)
	}
	return nil
}

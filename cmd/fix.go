/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package cmd

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/fightkeep/fightkeep/internal/integrity"
	"github.com/fightkeep/fightkeep/pkg/exitcode"
)

func newFixCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "fix",
		Short: "Repair fixable integrity issues",
		Long: `Fix validates the library and applies every fixable repair: rewriting
case-mismatched file references inside definition files and renaming
misnamed character folders. Definition files are rewritten atomically and
only the broken values are touched. Repairs are best effort; a failed
repair never blocks the remaining ones.`,
		RunE: runFix,
	}
	cmd.Flags().Bool("dry-run", false, "Show what would be fixed without changing anything")
	return cmd
}

func runFix(cmd *cobra.Command, _ []string) error {
	dryRun, _ := cmd.Flags().GetBool("dry-run")
	out := cmd.OutOrStdout()

	report, err := validateLibrary(cmd)
	if err != nil {
		return err
	}

	_, _, fixable := report.totals()
	if fixable == 0 {
		fmt.Fprintln(out, "Nothing to fix")
		return nil
	}

	if dryRun {
		fmt.Fprintf(out, "Would fix %d issues:\n", fixable)
		for _, res := range report.Results {
			for _, issue := range res.Issues {
				if issue.Fixable {
					fmt.Fprintf(out, "  %s: %s\n", res.ContentName, issue.Message)
				}
			}
		}
		return nil
	}

	fixed, failed := integrity.NewRepairer(nil).FixAll(report.Results)
	fmt.Fprintf(out, "Fixed %d issues, %d failed\n", fixed, failed)
	if failed > 0 {
		os.Exit(exitcode.FileSystemError)
	}
	return nil
}

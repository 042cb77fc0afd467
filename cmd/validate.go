/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package cmd

import (
	"os"

	"github.com/spf13/cobra"

	"github.com/fightkeep/fightkeep/internal/content"
	"github.com/fightkeep/fightkeep/internal/integrity"
	"github.com/fightkeep/fightkeep/pkg/exitcode"
)

func newValidateCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "validate",
		Short: "Check definition files against the assets on disk",
		Long: `Validate loads every discovered character, stage, and screenpack and checks
that each definition file names required sections and references files that
exist. Case-only mismatches and misnamed folders are reported as fixable.`,
		RunE: runValidate,
	}
	cmd.Flags().String("format", formatConcise, "Output format (concise|json|markdown)")
	return cmd
}

func runValidate(cmd *cobra.Command, _ []string) error {
	format, _ := cmd.Flags().GetString("format")
	if err := validFormat(format); err != nil {
		return err
	}

	report, err := validateLibrary(cmd)
	if err != nil {
		return err
	}
	if err := renderValidateReport(cmd.OutOrStdout(), report, format); err != nil {
		return err
	}

	if errors, _, _ := report.totals(); errors > 0 {
		os.Exit(exitcode.ValidationError)
	}
	return nil
}

// validateLibrary discovers all content and validates each asset in turn.
func validateLibrary(cmd *cobra.Command) (validateReport, error) {
	cfg, lib, _, err := loadEngine(cmd)
	if err != nil {
		return validateReport{}, err
	}

	chars, stages, packs, err := discoverAll(cmd.Context(), lib)
	if err != nil {
		return validateReport{}, err
	}

	validator := integrity.NewValidator()
	report := validateReport{Root: cfg.Root, Results: []integrity.ValidationResult{}}
	for _, d := range append(append(append([]content.AssetDescriptor{}, chars...), stages...), packs...) {
		report.Results = append(report.Results, validator.Validate(d))
	}
	return report, nil
}

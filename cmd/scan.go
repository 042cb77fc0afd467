/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package cmd

import (
	"github.com/spf13/cobra"

	"github.com/fightkeep/fightkeep/internal/content"
	"github.com/fightkeep/fightkeep/internal/dupes"
	"github.com/fightkeep/fightkeep/pkg/logger"
)

func newScanCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "scan",
		Short: "Find duplicate and outdated content",
		Long: `Scan walks the content library, groups equivalent characters, stages, and
screenpacks, and ranks each group to surface copies superseded by a newer
version. Scanning never modifies the library.`,
		RunE: runScan,
	}
	cmd.Flags().String("format", formatConcise, "Output format (concise|json|markdown)")
	cmd.Flags().Bool("outdated-only", false, "Report only outdated copies, not full duplicate groups")
	return cmd
}

func runScan(cmd *cobra.Command, _ []string) error {
	format, _ := cmd.Flags().GetString("format")
	if err := validFormat(format); err != nil {
		return err
	}
	outdatedOnly, _ := cmd.Flags().GetBool("outdated-only")

	cfg, lib, detector, err := loadEngine(cmd)
	if err != nil {
		return err
	}

	chars, stages, packs, err := discoverAll(cmd.Context(), lib)
	if err != nil {
		return err
	}
	logger.Debug("Discovered content",
		logger.Int("characters", len(chars)),
		logger.Int("stages", len(stages)),
		logger.Int("screenpacks", len(packs)))

	all := append(append(append([]content.AssetDescriptor{}, chars...), stages...), packs...)
	groups := map[content.Kind][]dupes.DuplicateGroup{
		content.KindCharacter:  detector.FindDuplicateCharacters(all),
		content.KindStage:      detector.FindDuplicateStages(all),
		content.KindScreenpack: detector.FindDuplicateScreenpacks(all),
	}
	outdated := map[content.Kind][]dupes.OutdatedItem{
		content.KindCharacter: detector.FindOutdatedCharacters(all),
		content.KindStage:     detector.FindOutdatedStages(all),
	}

	report := buildScanReport(cfg.Root, groups, outdated)
	if outdatedOnly {
		report.Duplicates = []duplicateReport{}
	}
	return renderScanReport(cmd.OutOrStdout(), report, format)
}

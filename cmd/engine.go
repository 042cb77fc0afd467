/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package cmd

import (
	"context"
	"errors"
	"fmt"

	"github.com/spf13/cobra"
	"golang.org/x/sync/errgroup"

	"github.com/fightkeep/fightkeep/internal/content"
	"github.com/fightkeep/fightkeep/internal/dupes"
	"github.com/fightkeep/fightkeep/pkg/config"
	"github.com/fightkeep/fightkeep/pkg/safeio"
)

// errConfig marks failures loading or validating configuration, so Execute
// can exit with the configuration error code instead of the general one.
var errConfig = errors.New("invalid configuration")

// resolveRoot returns the sanitized --root flag value. User-supplied roots go
// through the same traversal check as every other user path.
func resolveRoot(cmd *cobra.Command) (string, error) {
	root, _ := cmd.Flags().GetString("root")
	if root == "" {
		return "", nil
	}
	cleaned, err := safeio.CleanUserPath(root)
	if err != nil {
		return "", fmt.Errorf("%w: root %q: %v", errConfig, root, err)
	}
	return cleaned, nil
}

// loadEngine resolves configuration for the invoked command and builds the
// library walker and duplicate detector from it.
func loadEngine(cmd *cobra.Command) (*config.Config, *content.Library, *dupes.Detector, error) {
	root, err := resolveRoot(cmd)
	if err != nil {
		return nil, nil, nil, err
	}
	cfg, err := config.Load(root)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%w: %v", errConfig, err)
	}

	rules, err := dupes.ParseRuleOrder(cfg.Rules.Order)
	if err != nil {
		return nil, nil, nil, fmt.Errorf("%w: %v", errConfig, err)
	}

	detector := dupes.NewDetector(dupes.Options{
		RuleOrder:         rules,
		ManifestThreshold: cfg.Rules.ManifestSimilarity,
		DateLayouts:       cfg.Dates.Layouts,
	})
	return cfg, content.NewLibrary(cfg.Root, cfg.Exclude), detector, nil
}

// discoverAll walks the three content kinds concurrently. The walks touch
// disjoint subtrees (chars/, stages/, data/) so they can run in parallel.
func discoverAll(ctx context.Context, lib *content.Library) (chars, stages, packs []content.AssetDescriptor, err error) {
	g, _ := errgroup.WithContext(ctx)
	g.Go(func() error {
		var err error
		chars, err = lib.Characters()
		return err
	})
	g.Go(func() error {
		var err error
		stages, err = lib.Stages()
		return err
	})
	g.Go(func() error {
		var err error
		packs, err = lib.Screenpacks()
		return err
	})
	if err := g.Wait(); err != nil {
		return nil, nil, nil, err
	}
	return chars, stages, packs, nil
}

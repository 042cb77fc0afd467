/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package dupes

import (
	"github.com/fightkeep/fightkeep/internal/content"
)

// Detector orchestrates classification and ranking per asset kind. Pure:
// same descriptor list in, same groups and outdated items out, no side
// effects, so concurrent calls over different lists are safe.
type Detector struct {
	classifier *Classifier
	ranker     *Ranker
}

// Options tunes the detector. Zero values select the defaults.
type Options struct {
	RuleOrder         []Rule
	ManifestThreshold float64
	DateLayouts       []string
}

// NewDetector builds a detector from options.
func NewDetector(opts Options) *Detector {
	return &Detector{
		classifier: NewClassifier(opts.RuleOrder, opts.ManifestThreshold),
		ranker:     NewRanker(opts.DateLayouts),
	}
}

// FindDuplicateCharacters groups duplicate characters.
func (d *Detector) FindDuplicateCharacters(descriptors []content.AssetDescriptor) []DuplicateGroup {
	return d.classifier.Classify(ofKind(descriptors, content.KindCharacter))
}

// FindDuplicateStages groups duplicate stages.
func (d *Detector) FindDuplicateStages(descriptors []content.AssetDescriptor) []DuplicateGroup {
	return d.classifier.Classify(ofKind(descriptors, content.KindStage))
}

// FindDuplicateScreenpacks groups duplicate screenpacks.
func (d *Detector) FindDuplicateScreenpacks(descriptors []content.AssetDescriptor) []DuplicateGroup {
	return d.classifier.Classify(ofKind(descriptors, content.KindScreenpack))
}

// FindOutdatedCharacters reports characters superseded by a newer duplicate.
func (d *Detector) FindOutdatedCharacters(descriptors []content.AssetDescriptor) []OutdatedItem {
	return d.outdated(d.FindDuplicateCharacters(descriptors))
}

// FindOutdatedStages reports stages superseded by a newer duplicate.
func (d *Detector) FindOutdatedStages(descriptors []content.AssetDescriptor) []OutdatedItem {
	return d.outdated(d.FindDuplicateStages(descriptors))
}

// Rank exposes per-group ranking for callers that already hold groups.
func (d *Detector) Rank(group DuplicateGroup) []OutdatedItem {
	return d.ranker.Rank(group)
}

func (d *Detector) outdated(groups []DuplicateGroup) []OutdatedItem {
	var items []OutdatedItem
	for _, group := range groups {
		items = append(items, d.ranker.Rank(group)...)
	}
	return items
}

// Kinds are never cross-compared; drop anything that does not belong.
func ofKind(descriptors []content.AssetDescriptor, kind content.Kind) []content.AssetDescriptor {
	filtered := make([]content.AssetDescriptor, 0, len(descriptors))
	for _, d := range descriptors {
		if d.Kind == kind {
			filtered = append(filtered, d)
		}
	}
	return filtered
}

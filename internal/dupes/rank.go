/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package dupes

import (
	"github.com/fightkeep/fightkeep/internal/content"
	"github.com/fightkeep/fightkeep/pkg/versioning"
)

// OutdatedItem reports a duplicate-group member superseded by a newer
// sibling. Outdatedness is a relation between duplicates, never a standalone
// property of an asset.
type OutdatedItem struct {
	Item         content.AssetDescriptor `json:"item"`
	ItemVersion  content.VersionInfo     `json:"item_version"`
	NewerVersion content.VersionInfo     `json:"newer_version"`
}

// Ranker orders duplicate-group members by parsed version or date.
type Ranker struct {
	dateLayouts []string
}

// NewRanker builds a ranker using the given accepted date layouts; nil means
// the default set.
func NewRanker(dateLayouts []string) *Ranker {
	return &Ranker{dateLayouts: dateLayouts}
}

// Rank returns one OutdatedItem for every group member strictly older than
// some other member, paired with the newest sibling it is comparable with.
// Comparisons are pairwise, so members comparable only by date never block
// members comparable only by version; when no pair is comparable the result
// is empty rather than a guess.
func (r *Ranker) Rank(group DuplicateGroup) []OutdatedItem {
	if len(group.Items) < 2 {
		return nil
	}

	var outdated []OutdatedItem
	for i, item := range group.Items {
		newer := -1
		for j := range group.Items {
			if j == i {
				continue
			}
			cmp, ok := r.compare(item.Version, group.Items[j].Version)
			if !ok || cmp != versioning.ComparisonLess {
				continue
			}
			if newer < 0 {
				newer = j
				continue
			}
			cmp, ok = r.compare(group.Items[j].Version, group.Items[newer].Version)
			if ok && cmp == versioning.ComparisonGreater {
				newer = j
			}
		}
		if newer < 0 {
			continue
		}
		outdated = append(outdated, OutdatedItem{
			Item:         item,
			ItemVersion:  item.Version,
			NewerVersion: group.Items[newer].Version,
		})
	}
	return outdated
}

// compare applies the comparison policy: numeric versions when both sides
// have one, dates when both sides have one, incomparable otherwise.
func (r *Ranker) compare(a, b content.VersionInfo) (versioning.Comparison, bool) {
	if cmp, err := versioning.CompareNumeric(a.Version, b.Version); err == nil {
		return cmp, true
	}
	if cmp, err := versioning.CompareDates(a.Date, b.Date, r.dateLayouts); err == nil {
		return cmp, true
	}
	return versioning.ComparisonUnknown, false
}

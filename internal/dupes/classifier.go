/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/

// Package dupes finds duplicate installed assets and ranks duplicates by
// version. Classification answers "are these the same content?"; ranking
// answers "which copy should I keep?". The two stay separate so the reason
// taxonomy holds up under partial metadata.
package dupes

import (
	"fmt"
	"strings"

	"golang.org/x/text/cases"

	"github.com/fightkeep/fightkeep/internal/content"
)

// Rule identifies the equivalence rule that produced a duplicate group.
type Rule string

const (
	// RuleNameAuthor matches on normalized display name plus author.
	RuleNameAuthor Rule = "name+author"
	// RuleName matches on normalized display name alone.
	RuleName Rule = "name"
	// RuleManifest matches structurally similar manifests.
	RuleManifest Rule = "manifest"
)

// DefaultRuleOrder returns the rules strongest first. The order is
// configuration: see config.RulesConfig.
func DefaultRuleOrder() []Rule {
	return []Rule{RuleNameAuthor, RuleName, RuleManifest}
}

// ParseRuleOrder maps configured rule names to Rules, preserving order.
func ParseRuleOrder(names []string) ([]Rule, error) {
	if len(names) == 0 {
		return DefaultRuleOrder(), nil
	}
	rules := make([]Rule, 0, len(names))
	for _, name := range names {
		switch Rule(name) {
		case RuleNameAuthor, RuleName, RuleManifest:
			rules = append(rules, Rule(name))
		default:
			return nil, fmt.Errorf("unknown equivalence rule %q", name)
		}
	}
	return rules, nil
}

// DuplicateGroup is a set of two or more equivalent descriptors of one kind.
type DuplicateGroup struct {
	Reason Rule                      `json:"reason"`
	Items  []content.AssetDescriptor `json:"items"`
}

// NormalizeName folds case, trims, and collapses internal whitespace runs.
// Authors routinely vary only capitalization and spacing. A Caser is
// stateful, so each call gets its own.
func NormalizeName(s string) string {
	return strings.Join(strings.Fields(cases.Fold().String(s)), " ")
}

// Classifier partitions descriptors of one kind into duplicate groups.
type Classifier struct {
	rules             []Rule
	manifestThreshold float64
}

// NewClassifier builds a classifier with the given rule order. A zero
// threshold gets the default of 0.8.
func NewClassifier(rules []Rule, manifestThreshold float64) *Classifier {
	if len(rules) == 0 {
		rules = DefaultRuleOrder()
	}
	if manifestThreshold <= 0 {
		manifestThreshold = 0.8
	}
	return &Classifier{rules: rules, manifestThreshold: manifestThreshold}
}

// Classify partitions descriptors into duplicate groups. Rules are applied
// strongest first; a descriptor grouped under a rule is out of play for every
// weaker rule, so groups never overlap. Output order is deterministic for a
// fixed input order: groups appear ordered by rule, then by first member.
func (c *Classifier) Classify(descriptors []content.AssetDescriptor) []DuplicateGroup {
	available := make([]bool, len(descriptors))
	for i := range available {
		available[i] = true
	}

	var groups []DuplicateGroup
	for _, rule := range c.rules {
		partitions := c.partition(rule, descriptors, available)
		for _, members := range partitions {
			if len(members) < 2 {
				continue // not duplicates
			}
			group := DuplicateGroup{Reason: rule}
			for _, idx := range members {
				group.Items = append(group.Items, descriptors[idx])
				available[idx] = false
			}
			groups = append(groups, group)
		}
	}
	return groups
}

// partition returns the equivalence classes the rule induces over the still
// available descriptors, in order of each class's first member.
func (c *Classifier) partition(rule Rule, descriptors []content.AssetDescriptor, available []bool) [][]int {
	switch rule {
	case RuleNameAuthor, RuleName:
		return keyPartition(descriptors, available, func(d content.AssetDescriptor) (string, bool) {
			name := NormalizeName(d.DisplayName)
			if name == "" {
				return "", false
			}
			if rule == RuleName {
				return name, true
			}
			author := NormalizeName(d.Author)
			if author == "" {
				return "", false
			}
			return name + "\x00" + author, true
		})
	case RuleManifest:
		return c.manifestPartition(descriptors, available)
	default:
		return nil
	}
}

// keyPartition groups descriptors sharing an exact key. Descriptors missing
// the fields the rule needs simply cannot be grouped by it.
func keyPartition(descriptors []content.AssetDescriptor, available []bool, keyFn func(content.AssetDescriptor) (string, bool)) [][]int {
	byKey := make(map[string][]int)
	var keys []string
	for i, d := range descriptors {
		if !available[i] {
			continue
		}
		key, ok := keyFn(d)
		if !ok {
			continue
		}
		if _, seen := byKey[key]; !seen {
			keys = append(keys, key)
		}
		byKey[key] = append(byKey[key], i)
	}

	partitions := make([][]int, 0, len(keys))
	for _, key := range keys {
		partitions = append(partitions, byKey[key])
	}
	return partitions
}

// manifestPartition groups descriptors whose manifests are structurally
// similar. Similarity is transitive within the partition: if A~B and B~C,
// all three land in one group even when A and C were never compared directly.
func (c *Classifier) manifestPartition(descriptors []content.AssetDescriptor, available []bool) [][]int {
	var candidates []int
	shapes := make(map[int]map[string]bool)
	for i, d := range descriptors {
		if !available[i] || len(d.Manifest) == 0 {
			continue
		}
		candidates = append(candidates, i)
		shapes[i] = manifestShape(d)
	}

	parent := make(map[int]int, len(candidates))
	for _, i := range candidates {
		parent[i] = i
	}
	var find func(int) int
	find = func(x int) int {
		for parent[x] != x {
			parent[x] = parent[parent[x]]
			x = parent[x]
		}
		return x
	}
	union := func(a, b int) {
		ra, rb := find(a), find(b)
		if ra != rb {
			if rb < ra {
				ra, rb = rb, ra
			}
			parent[rb] = ra // smaller index roots keep output order stable
		}
	}

	for ai := 0; ai < len(candidates); ai++ {
		for bi := ai + 1; bi < len(candidates); bi++ {
			a, b := candidates[ai], candidates[bi]
			if jaccard(shapes[a], shapes[b]) >= c.manifestThreshold {
				union(a, b)
			}
		}
	}

	byRoot := make(map[int][]int)
	var roots []int
	for _, i := range candidates {
		root := find(i)
		if _, seen := byRoot[root]; !seen {
			roots = append(roots, root)
		}
		byRoot[root] = append(byRoot[root], i)
	}

	partitions := make([][]int, 0, len(roots))
	for _, root := range roots {
		partitions = append(partitions, byRoot[root])
	}
	return partitions
}

// manifestShape reduces a manifest to the set of (role, lowercased filename)
// pairs. Directory layout and authored case vary between repacks of the same
// content; roles and filenames mostly do not.
func manifestShape(d content.AssetDescriptor) map[string]bool {
	shape := make(map[string]bool, len(d.Manifest))
	for _, ref := range d.Manifest {
		path := strings.ToLower(strings.ReplaceAll(ref.Path, "\\", "/"))
		if idx := strings.LastIndexByte(path, '/'); idx >= 0 {
			path = path[idx+1:]
		}
		shape[ref.Role+"="+path] = true
	}
	return shape
}

func jaccard(a, b map[string]bool) float64 {
	if len(a) == 0 || len(b) == 0 {
		return 0
	}
	intersection := 0
	for k := range a {
		if b[k] {
			intersection++
		}
	}
	union := len(a) + len(b) - intersection
	return float64(intersection) / float64(union)
}

/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package integrity

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/fightkeep/fightkeep/internal/content"
	"github.com/fightkeep/fightkeep/internal/defparse"
	"github.com/fightkeep/fightkeep/pkg/logger"
	"github.com/fightkeep/fightkeep/pkg/safeio"
)

// Repairer applies the fixable subset of validation issues. Every write goes
// through the Replacer: full content composed in memory, written to a
// temporary file, renamed over the original, with a content-hash precondition
// so a concurrent external edit turns into a counted failure instead of a
// silent overwrite.
type Repairer struct {
	replacer    safeio.Replacer
	renameFixer func(content.AssetDescriptor) error
}

// NewRepairer creates a Repairer writing through replacer. A nil replacer
// gets the disk-backed default.
func NewRepairer(replacer safeio.Replacer) *Repairer {
	if replacer == nil {
		replacer = safeio.FileReplacer{}
	}
	return &Repairer{
		replacer:    replacer,
		renameFixer: content.FixMisnamedFolder,
	}
}

// FixAll iterates every fixable issue across every result, in the order
// given, and returns best-effort totals. Per-issue failures never abort the
// remaining fixes. The results slice is not mutated; callers re-validate to
// observe the new state.
func (r *Repairer) FixAll(results []ValidationResult) (fixed, failed int) {
	for _, result := range results {
		for _, issue := range result.Issues {
			if !issue.Fixable {
				continue
			}
			if err := r.apply(issue.fix); err != nil {
				failed++
				logger.Warn("fix failed",
					logger.String("content", result.ContentName),
					logger.Err(err))
				continue
			}
			fixed++
			logger.Debug("fix applied",
				logger.String("content", result.ContentName),
				logger.String("issue", issue.Message))
		}
	}
	return fixed, failed
}

func (r *Repairer) apply(fix fixContext) error {
	switch fix.kind {
	case fixRewriteRef:
		return r.rewriteRef(fix)
	case fixRenameFolder:
		return r.renameFixer(fix.descriptor)
	default:
		return fmt.Errorf("issue carries no fix context")
	}
}

// rewriteRef re-reads the definition file and rewrites the single value the
// issue points at. Re-locating the entry by section, key, and the value seen
// at validation time means a file edited since the scan fails the lookup
// instead of being clobbered.
func (r *Repairer) rewriteRef(fix fixContext) error {
	data, err := os.ReadFile(fix.defPath) // #nosec G304 -- path originates from discovered asset definitions
	if err != nil {
		return fmt.Errorf("read %s: %w", fix.defPath, err)
	}

	def := defparse.Parse(data)
	section, ok := def.Section(fix.section)
	if !ok {
		return fmt.Errorf("%s: section [%s] no longer present", filepath.Base(fix.defPath), fix.section)
	}

	var entry defparse.Entry
	found := false
	for _, e := range section.Entries {
		if e.Key == fix.key && e.Value == fix.oldValue {
			entry = e
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("%s: %s = %q no longer present in [%s]",
			filepath.Base(fix.defPath), fix.key, fix.oldValue, fix.section)
	}

	if !def.SetValue(entry, fix.newValue) {
		return fmt.Errorf("%s: could not rewrite %s line", filepath.Base(fix.defPath), fix.key)
	}

	return r.replacer.Replace(fix.defPath, def.Bytes(), safeio.ContentHash(data))
}

/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package integrity

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/fightkeep/fightkeep/internal/content"
	"github.com/fightkeep/fightkeep/internal/defparse"
	"github.com/fightkeep/fightkeep/pkg/safeio"
)

// Validator inspects one asset at a time. It holds no state, so a single
// instance is safe for concurrent use over different descriptors.
type Validator struct{}

// NewValidator creates a Validator.
func NewValidator() *Validator {
	return &Validator{}
}

// Validate checks the descriptor's manifest against the files on disk and
// the definition file's structure. Filesystem trouble becomes an
// error-severity issue rather than a returned error, so one broken asset can
// never abort a batch scan. Issues accumulate; nothing short-circuits.
func (v *Validator) Validate(d content.AssetDescriptor) ValidationResult {
	result := ValidationResult{
		ContentName: displayName(d),
		ContentType: d.Kind,
	}

	data, err := safeio.ReadFileContained(d.Directory, d.DefPath)
	if err != nil {
		result.Issues = append(result.Issues, ValidationIssue{
			Severity: SeverityError,
			Message:  fmt.Sprintf("cannot read definition file %s: %v", d.DefPath, err),
		})
		return result
	}
	def := defparse.Parse(data)

	for _, section := range content.RequiredSections(d.Kind) {
		if !def.HasSection(section) {
			result.Issues = append(result.Issues, ValidationIssue{
				Severity: SeverityError,
				Message:  fmt.Sprintf("definition file is missing required section [%s]", section),
			})
		}
	}

	if expected, mismatched := content.DetectMismatchedFolder(d); mismatched {
		result.Issues = append(result.Issues, ValidationIssue{
			Severity:   SeverityWarning,
			Message:    fmt.Sprintf("folder %q does not match definition file name %q", filepath.Base(d.Directory), expected),
			Suggestion: expected,
			Fixable:    true,
			fix: fixContext{
				kind:       fixRenameFolder,
				descriptor: d,
			},
		})
	}

	for _, ref := range d.Manifest {
		if issue, ok := v.checkRef(d, ref); ok {
			result.Issues = append(result.Issues, issue)
		}
	}

	return result
}

// checkRef confirms one manifest reference exists under the asset directory,
// first case-sensitively, then case-insensitively.
func (v *Validator) checkRef(d content.AssetDescriptor, ref content.ManifestRef) (ValidationIssue, bool) {
	relPath := filepath.FromSlash(strings.ReplaceAll(ref.Path, "\\", "/"))
	full := filepath.Join(d.Directory, relPath)

	if _, err := os.Stat(full); err == nil {
		return ValidationIssue{}, false
	} else if !os.IsNotExist(err) {
		return ValidationIssue{
			Severity: SeverityError,
			Message:  fmt.Sprintf("%s reference %q could not be checked: %v", ref.Role, ref.Path, err),
		}, true
	}

	onDisk, found := findCaseInsensitive(d.Directory, relPath)
	if !found {
		return ValidationIssue{
			Severity: SeverityError,
			Message:  fmt.Sprintf("%s reference %q not found under %s", ref.Role, ref.Path, d.Directory),
		}, true
	}

	suggestion := restoreSeparators(onDisk, ref.Path)
	return ValidationIssue{
		Severity:   SeverityWarning,
		Message:    fmt.Sprintf("%s reference %q differs in case from on-disk file %q", ref.Role, ref.Path, suggestion),
		Suggestion: suggestion,
		Fixable:    true,
		fix: fixContext{
			kind:     fixRewriteRef,
			defPath:  d.DefPath,
			section:  roleSection(d.Kind, ref.Role),
			key:      ref.Role,
			oldValue: ref.Path,
			newValue: suggestion,
		},
	}, true
}

// findCaseInsensitive resolves relPath under dir one component at a time,
// ignoring case. The exact-case entry wins when both exist; otherwise the
// first match in sorted order keeps the result deterministic.
func findCaseInsensitive(dir, relPath string) (string, bool) {
	components := strings.Split(filepath.ToSlash(relPath), "/")
	current := dir
	var resolved []string

	for _, component := range components {
		if component == "" {
			continue
		}
		entries, err := os.ReadDir(current)
		if err != nil {
			return "", false
		}
		names := make([]string, 0, len(entries))
		for _, e := range entries {
			names = append(names, e.Name())
		}
		sort.Strings(names)

		match := ""
		for _, name := range names {
			if name == component {
				match = name
				break
			}
			if match == "" && strings.EqualFold(name, component) {
				match = name
			}
		}
		if match == "" {
			return "", false
		}
		resolved = append(resolved, match)
		current = filepath.Join(current, match)
	}

	return strings.Join(resolved, "/"), true
}

// restoreSeparators rewrites the resolved path using the separator style the
// author used, so the repaired line reads like the rest of the file.
func restoreSeparators(resolved, authored string) string {
	if strings.Contains(authored, "\\") && !strings.Contains(authored, "/") {
		return strings.ReplaceAll(resolved, "/", "\\")
	}
	return resolved
}

// roleSection maps a manifest role to the definition-file section it was
// declared in, for the repair engine's line lookup.
func roleSection(kind content.Kind, role string) string {
	switch kind {
	case content.KindStage:
		if role == "bgmusic" {
			return "music"
		}
		return "bgdef"
	case content.KindCharacter:
		if role == "intro.storyboard" || role == "ending.storyboard" {
			return "arcade"
		}
		return "files"
	default:
		return "files"
	}
}

func displayName(d content.AssetDescriptor) string {
	if d.DisplayName != "" {
		return d.DisplayName
	}
	return d.ID
}

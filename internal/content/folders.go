/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package content

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
)

// DetectMismatchedFolder reports whether the asset's folder name disagrees
// with its definition-file identifier, and if so, the folder name it should
// have. Comparison ignores case: "Ryu" holding ryu.def is fine.
func DetectMismatchedFolder(d AssetDescriptor) (string, bool) {
	if d.Kind != KindCharacter {
		return "", false
	}
	folder := filepath.Base(d.Directory)
	stem := strings.TrimSuffix(filepath.Base(d.DefPath), filepath.Ext(d.DefPath))
	if strings.EqualFold(folder, stem) {
		return "", false
	}
	return stem, true
}

// FixMisnamedFolder renames the asset's folder to match its definition file.
// The rename is refused when the target already exists.
func FixMisnamedFolder(d AssetDescriptor) error {
	expected, mismatched := DetectMismatchedFolder(d)
	if !mismatched {
		return nil
	}
	target := filepath.Join(filepath.Dir(d.Directory), expected)
	if _, err := os.Stat(target); err == nil {
		return fmt.Errorf("cannot rename %s: %s already exists", d.Directory, target)
	}
	if err := os.Rename(d.Directory, target); err != nil {
		return fmt.Errorf("rename %s: %w", d.Directory, err)
	}
	return nil
}

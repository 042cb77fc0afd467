/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package content

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bmatcuk/doublestar/v4"

	"github.com/fightkeep/fightkeep/pkg/logger"
)

// Library discovers installed assets under a content root laid out the way
// the engine expects: chars/<folder>/<name>.def, stages/*.def, and
// data/<pack>/system.def.
type Library struct {
	Root    string
	Exclude []string // doublestar globs against slash-separated paths relative to Root
}

// NewLibrary creates a Library rooted at root.
func NewLibrary(root string, exclude []string) *Library {
	return &Library{Root: root, Exclude: exclude}
}

func (l *Library) excluded(path string) bool {
	rel, err := filepath.Rel(l.Root, path)
	if err != nil {
		return false
	}
	rel = filepath.ToSlash(rel)
	for _, pattern := range l.Exclude {
		if ok, err := doublestar.Match(pattern, rel); err == nil && ok {
			return true
		}
	}
	return false
}

// Characters enumerates chars/<folder>/ and loads one descriptor per folder.
// The definition file named after the folder wins; otherwise the first .def
// found (sorted for determinism) is used. Unreadable assets are logged and
// skipped rather than failing the whole enumeration.
func (l *Library) Characters() ([]AssetDescriptor, error) {
	charsDir := filepath.Join(l.Root, "chars")
	folders, err := sortedSubdirs(charsDir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("enumerate %s: %w", charsDir, err)
	}

	var descriptors []AssetDescriptor
	for _, folder := range folders {
		dir := filepath.Join(charsDir, folder)
		if l.excluded(dir) {
			continue
		}
		defPath, ok := pickCharacterDef(dir, folder)
		if !ok {
			logger.Warn("character folder has no definition file", logger.String("dir", dir))
			continue
		}
		d, err := LoadDescriptor(KindCharacter, defPath)
		if err != nil {
			logger.Warn("skipping unreadable character", logger.String("def", defPath), logger.Err(err))
			continue
		}
		descriptors = append(descriptors, d)
	}
	return descriptors, nil
}

// Stages enumerates stages/*.def.
func (l *Library) Stages() ([]AssetDescriptor, error) {
	stagesDir := filepath.Join(l.Root, "stages")
	entries, err := os.ReadDir(stagesDir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("enumerate %s: %w", stagesDir, err)
	}

	var descriptors []AssetDescriptor
	for _, entry := range entries {
		if entry.IsDir() || !strings.EqualFold(filepath.Ext(entry.Name()), ".def") {
			continue
		}
		defPath := filepath.Join(stagesDir, entry.Name())
		if l.excluded(defPath) {
			continue
		}
		d, err := LoadDescriptor(KindStage, defPath)
		if err != nil {
			logger.Warn("skipping unreadable stage", logger.String("def", defPath), logger.Err(err))
			continue
		}
		descriptors = append(descriptors, d)
	}
	return descriptors, nil
}

// Screenpacks enumerates data/<pack>/system.def.
func (l *Library) Screenpacks() ([]AssetDescriptor, error) {
	dataDir := filepath.Join(l.Root, "data")
	folders, err := sortedSubdirs(dataDir)
	if os.IsNotExist(err) {
		return nil, nil
	}
	if err != nil {
		return nil, fmt.Errorf("enumerate %s: %w", dataDir, err)
	}

	var descriptors []AssetDescriptor
	for _, folder := range folders {
		defPath := filepath.Join(dataDir, folder, "system.def")
		if l.excluded(defPath) {
			continue
		}
		if _, err := os.Stat(defPath); err != nil {
			continue
		}
		d, err := LoadDescriptor(KindScreenpack, defPath)
		if err != nil {
			logger.Warn("skipping unreadable screenpack", logger.String("def", defPath), logger.Err(err))
			continue
		}
		// system.def stems are all "system"; the pack folder is the identity.
		d.ID = strings.ToLower(folder)
		descriptors = append(descriptors, d)
	}
	return descriptors, nil
}

func sortedSubdirs(dir string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, err
	}
	var names []string
	for _, entry := range entries {
		if entry.IsDir() {
			names = append(names, entry.Name())
		}
	}
	sort.Strings(names)
	return names, nil
}

func pickCharacterDef(dir, folder string) (string, bool) {
	preferred := filepath.Join(dir, folder+".def")
	if _, err := os.Stat(preferred); err == nil {
		return preferred, true
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		return "", false
	}
	var defs []string
	for _, entry := range entries {
		if !entry.IsDir() && strings.EqualFold(filepath.Ext(entry.Name()), ".def") {
			defs = append(defs, entry.Name())
		}
	}
	if len(defs) == 0 {
		return "", false
	}
	sort.Strings(defs)
	return filepath.Join(dir, defs[0]), true
}

/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package content

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func scaffoldLibrary(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	writeFile(t, filepath.Join(root, "chars", "kfm", "kfm.def"),
		"[Info]\nname = \"Kung Fu Man\"\nauthor = \"Elecbyte\"\n[Files]\nsprite = kfm.sff\n")
	writeFile(t, filepath.Join(root, "chars", "ryu", "ryu.def"),
		"[Info]\nname = \"Ryu\"\nauthor = \"Capcom\"\n[Files]\nsprite = ryu.sff\n")
	// Folder whose def file is named differently from the folder.
	writeFile(t, filepath.Join(root, "chars", "Ken_v2", "ken.def"),
		"[Info]\nname = \"Ken\"\n[Files]\nsprite = ken.sff\n")
	// Folder with no def at all: skipped.
	require.NoError(t, os.MkdirAll(filepath.Join(root, "chars", "empty"), 0o755))

	writeFile(t, filepath.Join(root, "stages", "stage0.def"),
		"[Info]\nname = \"Training Room\"\n[BGdef]\nspr = stage0.sff\n")
	writeFile(t, filepath.Join(root, "stages", "dojo.def"),
		"[Info]\nname = \"Dojo\"\n[BGdef]\nspr = dojo.sff\n")
	writeFile(t, filepath.Join(root, "stages", "readme.txt"), "not a stage")

	writeFile(t, filepath.Join(root, "data", "classic", "system.def"),
		"[Info]\nname = \"Classic Motif\"\n[Files]\nspr = system.sff\n")
	writeFile(t, filepath.Join(root, "data", "nopack", "other.def"), "[Info]\n")

	return root
}

func TestLibraryCharacters(t *testing.T) {
	lib := NewLibrary(scaffoldLibrary(t), nil)

	chars, err := lib.Characters()
	require.NoError(t, err)
	require.Len(t, chars, 3)

	// sortedSubdirs gives deterministic ordering.
	assert.Equal(t, "ken", chars[0].ID)
	assert.Equal(t, "kfm", chars[1].ID)
	assert.Equal(t, "ryu", chars[2].ID)
	assert.Equal(t, KindCharacter, chars[0].Kind)
}

func TestLibraryCharactersExclude(t *testing.T) {
	lib := NewLibrary(scaffoldLibrary(t), []string{"chars/ryu/**", "chars/ryu"})

	chars, err := lib.Characters()
	require.NoError(t, err)
	for _, c := range chars {
		assert.NotEqual(t, "ryu", c.ID)
	}
}

func TestLibraryStages(t *testing.T) {
	lib := NewLibrary(scaffoldLibrary(t), nil)

	stages, err := lib.Stages()
	require.NoError(t, err)
	require.Len(t, stages, 2)
	for _, s := range stages {
		assert.Equal(t, KindStage, s.Kind)
	}
}

func TestLibraryScreenpacks(t *testing.T) {
	lib := NewLibrary(scaffoldLibrary(t), nil)

	packs, err := lib.Screenpacks()
	require.NoError(t, err)
	require.Len(t, packs, 1, "only folders holding system.def count")
	assert.Equal(t, "classic", packs[0].ID, "pack folder, not def stem, is the identity")
	assert.Equal(t, "Classic Motif", packs[0].DisplayName)
}

func TestLibraryMissingSubtreesAreEmpty(t *testing.T) {
	// A stages-only library has no chars/ or data/; that is not an error.
	lib := NewLibrary(filepath.Join(t.TempDir(), "nope"), nil)

	chars, err := lib.Characters()
	assert.NoError(t, err)
	assert.Empty(t, chars)
	stages, err := lib.Stages()
	assert.NoError(t, err)
	assert.Empty(t, stages)
	packs, err := lib.Screenpacks()
	assert.NoError(t, err)
	assert.Empty(t, packs)
}

func TestDetectMismatchedFolder(t *testing.T) {
	lib := NewLibrary(scaffoldLibrary(t), nil)
	chars, err := lib.Characters()
	require.NoError(t, err)

	byID := map[string]AssetDescriptor{}
	for _, c := range chars {
		byID[c.ID] = c
	}

	_, mismatched := DetectMismatchedFolder(byID["kfm"])
	assert.False(t, mismatched)

	expected, mismatched := DetectMismatchedFolder(byID["ken"])
	assert.True(t, mismatched)
	assert.Equal(t, "ken", expected)
}

func TestFixMisnamedFolder(t *testing.T) {
	root := scaffoldLibrary(t)
	lib := NewLibrary(root, nil)
	chars, err := lib.Characters()
	require.NoError(t, err)

	var ken AssetDescriptor
	for _, c := range chars {
		if c.ID == "ken" {
			ken = c
		}
	}
	require.NotEmpty(t, ken.ID)

	require.NoError(t, FixMisnamedFolder(ken))

	_, err = os.Stat(filepath.Join(root, "chars", "ken", "ken.def"))
	assert.NoError(t, err, "folder renamed to match def stem")
	_, err = os.Stat(filepath.Join(root, "chars", "Ken_v2"))
	assert.True(t, os.IsNotExist(err))
}

func TestFixMisnamedFolderTargetExists(t *testing.T) {
	root := scaffoldLibrary(t)
	// A "ken" folder already exists; rename must be refused.
	writeFile(t, filepath.Join(root, "chars", "ken", "placeholder.def"), "[Info]\n[Files]\n")

	lib := NewLibrary(root, nil)
	chars, err := lib.Characters()
	require.NoError(t, err)

	for _, c := range chars {
		if filepath.Base(c.Directory) == "Ken_v2" {
			assert.Error(t, FixMisnamedFolder(c))
		}
	}
}

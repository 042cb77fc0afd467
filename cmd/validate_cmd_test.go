/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package cmd

import (
	"encoding/json"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// brokenLibrary has one character whose sprite reference differs from the
// on-disk file only by case. That is a fixable warning, not an error.
func brokenLibrary(t *testing.T) string {
	t.Helper()
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "chars", "kfm", "kfm.def"),
		"[Info]\nname = \"KFM\"\nauthor = \"Elecbyte\"\n\n[Files]\nsprite = kfm.sff\n")
	writeFile(t, filepath.Join(root, "chars", "kfm", "KFM.SFF"), "sprite data")
	return root
}

func TestValidateReportsFixableWarning(t *testing.T) {
	root := brokenLibrary(t)

	out, err := execCommand(t, "validate", "--root", root, "--format", "json")
	require.NoError(t, err)

	var report validateReport
	require.NoError(t, json.Unmarshal([]byte(out), &report))
	require.Len(t, report.Results, 1)

	res := report.Results[0]
	assert.Equal(t, "KFM", res.ContentName)
	assert.Equal(t, 0, res.ErrorCount())
	assert.Equal(t, 1, res.WarningCount())
	assert.Equal(t, 1, res.FixableCount())
}

func TestValidateConciseCleanLibrary(t *testing.T) {
	root := t.TempDir()
	writeFile(t, filepath.Join(root, "stages", "dojo.def"),
		"[Info]\nname = \"Dojo\"\n\n[BGdef]\n")

	out, err := execCommand(t, "validate", "--root", root)
	require.NoError(t, err)
	assert.Contains(t, out, "is intact")
}

func TestValidateMarkdown(t *testing.T) {
	root := brokenLibrary(t)

	out, err := execCommand(t, "validate", "--root", root, "--format", "markdown")
	require.NoError(t, err)
	assert.Contains(t, out, "# Content Integrity Report")
	assert.Contains(t, out, "0 errors, 1 warnings (1 fixable)")
	assert.Contains(t, out, "## KFM (character)")
}

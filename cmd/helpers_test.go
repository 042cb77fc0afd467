/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package cmd

import (
	"bytes"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/require"
)

// execCommand runs a fresh command tree so tests never share flag state.
func execCommand(t *testing.T, args ...string) (string, error) {
	t.Helper()
	root := newRootCommand()
	registerSubcommands(root)
	var buf bytes.Buffer
	root.SetOut(&buf)
	root.SetErr(&buf)
	root.SetArgs(args)
	err := root.Execute()
	return buf.String(), err
}

func writeFile(t *testing.T, path, content string) {
	t.Helper()
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

// scaffoldLibrary builds a small content library with two copies of the same
// character at different versions plus a stage.
func scaffoldLibrary(t *testing.T) string {
	t.Helper()
	root := t.TempDir()

	writeFile(t, filepath.Join(root, "chars", "ryu", "ryu.def"),
		"[Info]\nname = \"Ryu\"\nauthor = \"Capcom\"\nversion = 1.0\n\n[Files]\n")
	writeFile(t, filepath.Join(root, "chars", "ryu_hd", "ryu_hd.def"),
		"[Info]\nname = \"Ryu\"\nauthor = \"Capcom\"\nversion = 1.2\n\n[Files]\n")
	writeFile(t, filepath.Join(root, "stages", "dojo.def"),
		"[Info]\nname = \"Dojo\"\n\n[BGdef]\n")

	return root
}

/*
Copyright © 2025 3 Leaps <info@3leaps.net>
*/
package cmd

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gopkg.in/yaml.v3"

	"github.com/fightkeep/fightkeep/pkg/config"
)

// chdirTemp switches the working directory to a fresh temp dir for the
// duration of the test; *testing.T.Chdir is unavailable before Go 1.24.
func chdirTemp(t *testing.T) {
	t.Helper()
	old, err := os.Getwd()
	require.NoError(t, err)
	require.NoError(t, os.Chdir(t.TempDir()))
	t.Cleanup(func() { _ = os.Chdir(old) })
}

func TestConfigShowPrintsDefaults(t *testing.T) {
	chdirTemp(t)

	out, err := execCommand(t, "config", "show")
	require.NoError(t, err)

	var cfg config.Config
	require.NoError(t, yaml.Unmarshal([]byte(out), &cfg))
	assert.Equal(t, ".", cfg.Root)
	assert.Equal(t, []string{"name+author", "name", "manifest"}, cfg.Rules.Order)
	assert.InDelta(t, 0.8, cfg.Rules.ManifestSimilarity, 1e-9)
}

func TestConfigInitWritesFile(t *testing.T) {
	chdirTemp(t)

	out, err := execCommand(t, "config", "init")
	require.NoError(t, err)
	assert.Contains(t, out, "Wrote .fightkeep.yaml")

	data, err := os.ReadFile(".fightkeep.yaml")
	require.NoError(t, err)
	assert.Contains(t, string(data), "manifest_similarity: 0.8")

	// A second init without --force refuses to clobber the file.
	_, err = execCommand(t, "config", "init")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "already exists")

	_, err = execCommand(t, "config", "init", "--force")
	assert.NoError(t, err)
}

func TestConfigInitForcePreservesMode(t *testing.T) {
	chdirTemp(t)
	require.NoError(t, os.WriteFile(".fightkeep.yaml", []byte("root: .\n"), 0o600))

	_, err := execCommand(t, "config", "init", "--force")
	require.NoError(t, err)

	st, err := os.Stat(".fightkeep.yaml")
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0o600), st.Mode()&0o777)
}

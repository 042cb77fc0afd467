package config

import (
	"os"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
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

func TestLoadDefaults(t *testing.T) {
	chdirTemp(t) // no config file in reach

	cfg, err := Load("")
	require.NoError(t, err)

	assert.Equal(t, ".", cfg.Root)
	assert.Equal(t, []string{"name+author", "name", "manifest"}, cfg.Rules.Order)
	assert.InDelta(t, 0.8, cfg.Rules.ManifestSimilarity, 0.001)
	assert.Empty(t, cfg.Dates.Layouts)
}

func TestLoadRootOverride(t *testing.T) {
	chdirTemp(t)

	cfg, err := Load("/srv/mugen")
	require.NoError(t, err)
	assert.Equal(t, "/srv/mugen", cfg.Root)
}

func TestValidateRejectsUnknownRule(t *testing.T) {
	cfg := &Config{
		Root:  ".",
		Rules: RulesConfig{Order: []string{"name", "vibes"}, ManifestSimilarity: 0.8},
	}
	err := cfg.Validate()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}

func TestValidateRejectsEmptyRuleOrder(t *testing.T) {
	cfg := &Config{
		Root:  ".",
		Rules: RulesConfig{Order: nil, ManifestSimilarity: 0.8},
	}
	assert.Error(t, cfg.Validate())
}

func TestValidateRejectsOutOfRangeSimilarity(t *testing.T) {
	cfg := &Config{
		Root:  ".",
		Rules: RulesConfig{Order: []string{"name"}, ManifestSimilarity: 1.5},
	}
	assert.Error(t, cfg.Validate())
}

func TestValidateAcceptsCustomLayouts(t *testing.T) {
	cfg := &Config{
		Root: "/library",
		Rules: RulesConfig{
			Order:              []string{"name+author", "manifest"},
			ManifestSimilarity: 0.9,
		},
		Dates: DatesConfig{Layouts: []string{"02/01/2006"}},
	}
	assert.NoError(t, cfg.Validate())
}

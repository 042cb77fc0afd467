// Package config loads fightkeep configuration: defaults, an optional
// .fightkeep.yaml, and FIGHTKEEP_* environment overrides, validated against
// an embedded JSON schema before anything consumes it. The equivalence rule
// order and the accepted date layouts are deliberately configuration, not
// code: they are policy confirmed against real content libraries.
package config

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"

	"github.com/spf13/viper"
)

// Config holds all configuration for fightkeep.
type Config struct {
	Root    string      `mapstructure:"root" json:"root" yaml:"root"`
	Exclude []string    `mapstructure:"exclude" json:"exclude,omitempty" yaml:"exclude,omitempty"`
	Rules   RulesConfig `mapstructure:"rules" json:"rules" yaml:"rules"`
	Dates   DatesConfig `mapstructure:"dates" json:"dates" yaml:"dates"`
}

// RulesConfig tunes the equivalence classifier.
type RulesConfig struct {
	// Order lists equivalence rules strongest first. Valid names:
	// "name+author", "name", "manifest".
	Order []string `mapstructure:"order" json:"order" yaml:"order"`
	// ManifestSimilarity is the Jaccard threshold for the manifest rule.
	ManifestSimilarity float64 `mapstructure:"manifest_similarity" json:"manifest_similarity" yaml:"manifest_similarity"`
}

// DatesConfig tunes version-date comparison.
type DatesConfig struct {
	// Layouts are Go time layouts tried in order against versiondate
	// strings. Empty means the built-in defaults.
	Layouts []string `mapstructure:"layouts" json:"layouts,omitempty" yaml:"layouts,omitempty"`
}

func setDefaults(v *viper.Viper) {
	v.SetDefault("root", ".")
	v.SetDefault("exclude", []string{})
	v.SetDefault("rules.order", []string{"name+author", "name", "manifest"})
	v.SetDefault("rules.manifest_similarity", 0.8)
	v.SetDefault("dates.layouts", []string{})
}

// Load reads configuration for the given content root. An empty rootOverride
// keeps whatever the config file or defaults say.
func Load(rootOverride string) (*Config, error) {
	v := viper.New()
	setDefaults(v)

	v.SetConfigName(".fightkeep")
	v.SetConfigType("yaml")
	v.AddConfigPath(".")
	if home, err := os.UserHomeDir(); err == nil {
		v.AddConfigPath(home)
	}
	if err := v.ReadInConfig(); err != nil {
		var notFound viper.ConfigFileNotFoundError
		if !errors.As(err, &notFound) {
			return nil, fmt.Errorf("read config: %w", err)
		}
	}

	v.SetEnvPrefix("FIGHTKEEP")
	v.AutomaticEnv()

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("unmarshal config: %w", err)
	}
	if rootOverride != "" {
		cfg.Root = rootOverride
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// Validate checks the config against the embedded schema.
func (c *Config) Validate() error {
	data, err := json.Marshal(c)
	if err != nil {
		return fmt.Errorf("marshal config for validation: %w", err)
	}
	return validateAgainstSchema(data)
}

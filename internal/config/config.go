// Package config resolves the bumpr configuration from built-in
// defaults, ini-style config files, a pyproject.toml section, and
// command-line overrides, merged with field-level precedence.
package config

import (
	"github.com/bumpr-dev/bumpr/internal/hooks"
	"github.com/bumpr-dev/bumpr/internal/version"
)

// Config is the root configuration for bumpr. All optional fields are
// pointers to support merge semantics during configuration building:
// a nil field contributes nothing when its layer is merged.
type Config struct {
	File          *string   `yaml:"file"`
	Pattern       *string   `yaml:"regex"`
	Files         *[]string `yaml:"files"`
	Module        *string   `yaml:"module"`
	Attribute     *string   `yaml:"attribute"`
	VCS           *string   `yaml:"vcs"`
	Commit        *bool     `yaml:"commit"`
	Tag           *bool     `yaml:"tag"`
	TagFormat     *string   `yaml:"tag_format"`
	TagAnnotation *string   `yaml:"tag_annotation"`
	Push          *bool     `yaml:"push"`
	Verbose       *bool     `yaml:"verbose"`
	DryRun        *bool     `yaml:"dryrun"`
	Clean         *string   `yaml:"clean"`
	Tests         *string   `yaml:"tests"`
	SkipTests     *bool     `yaml:"skip_tests"`
	Publish       *string   `yaml:"publish"`
	BumpOnly      *bool     `yaml:"bump_only"`
	PrepareOnly   *bool     `yaml:"prepare_only"`

	Bump    *StepConfig `yaml:"bump"`
	Prepare *StepConfig `yaml:"prepare"`

	// Hooks holds one sub-namespace per enabled hook. A hook absent
	// from the map is disabled; merging may add or override entries
	// but never removes one.
	Hooks map[string]hooks.Settings `yaml:"hooks,omitempty"`
}

// StepConfig configures one version transition: the main bump or the
// prepare step that moves to the next development version.
type StepConfig struct {
	Part     *version.Part `yaml:"part"`
	Suffix   *string       `yaml:"suffix"`
	Unsuffix *bool         `yaml:"unsuffix"`
	Message  *string       `yaml:"message"`
}

// HookEnabled reports whether the hook with the given key has been
// configured.
func (c *Config) HookEnabled(key string) bool {
	_, ok := c.Hooks[key]
	return ok
}

// HookSettings returns the resolved settings for an enabled hook.
func (c *Config) HookSettings(key string) (hooks.Settings, bool) {
	s, ok := c.Hooks[key]
	return s, ok
}

package config

import (
	"github.com/bumpr-dev/bumpr/internal/files"
	"github.com/bumpr-dev/bumpr/internal/hooks"
	"github.com/bumpr-dev/bumpr/internal/version"
)

// CreateDefaultConfiguration returns a Config with every field of the
// schema populated with its default value. Hooks start disabled: the
// Hooks map is allocated but holds no entry until a layer enables one.
func CreateDefaultConfiguration() *Config {
	return &Config{
		File:          stringPtr(""),
		Pattern:       stringPtr(files.DefaultPattern),
		Files:         strSlicePtr([]string{}),
		Module:        stringPtr(""),
		Attribute:     stringPtr(""),
		VCS:           stringPtr("git"),
		Commit:        boolPtr(true),
		Tag:           boolPtr(true),
		TagFormat:     stringPtr("{version}"),
		TagAnnotation: stringPtr(""),
		Push:          boolPtr(false),
		Verbose:       boolPtr(false),
		DryRun:        boolPtr(false),
		Clean:         stringPtr(""),
		Tests:         stringPtr(""),
		SkipTests:     boolPtr(false),
		Publish:       stringPtr(""),
		BumpOnly:      boolPtr(false),
		PrepareOnly:   boolPtr(false),
		Bump: &StepConfig{
			Part:     partPtr(version.PartPatch),
			Suffix:   stringPtr(""),
			Unsuffix: boolPtr(true),
			Message:  stringPtr("Bump version {version}"),
		},
		Prepare: &StepConfig{
			Part:     partPtr(version.PartNone),
			Suffix:   stringPtr(""),
			Unsuffix: boolPtr(false),
			Message:  stringPtr("Update to version {version} for next development cycle"),
		},
		Hooks: map[string]hooks.Settings{},
	}
}

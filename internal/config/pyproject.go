package config

import (
	"fmt"
	"strings"

	"github.com/BurntSushi/toml"

	"github.com/bumpr-dev/bumpr/internal/hooks"
	"github.com/bumpr-dev/bumpr/internal/version"
)

// pyprojectDoc mirrors the [tool.bumpr] table of a pyproject.toml.
// Pointer fields distinguish "absent" from zero values, matching the
// merge semantics of Config.
type pyprojectDoc struct {
	Tool struct {
		Bumpr *pyprojectBumpr `toml:"bumpr"`
	} `toml:"tool"`
}

type pyprojectBumpr struct {
	File          *string   `toml:"file"`
	Regex         *string   `toml:"regex"`
	Files         *[]string `toml:"files"`
	Module        *string   `toml:"module"`
	Attribute     *string   `toml:"attribute"`
	VCS           *string   `toml:"vcs"`
	Commit        *bool     `toml:"commit"`
	Tag           *bool     `toml:"tag"`
	TagFormat     *string   `toml:"tag_format"`
	TagAnnotation *string   `toml:"tag_annotation"`
	Push          *bool     `toml:"push"`
	Verbose       *bool     `toml:"verbose"`
	DryRun        *bool     `toml:"dryrun"`
	Clean         *string   `toml:"clean"`
	Tests         *string   `toml:"tests"`
	SkipTests     *bool     `toml:"skip_tests"`
	Publish       *string   `toml:"publish"`
	BumpOnly      *bool     `toml:"bump_only"`
	PrepareOnly   *bool     `toml:"prepare_only"`

	Bump    *pyprojectStep            `toml:"bump"`
	Prepare *pyprojectStep            `toml:"prepare"`
	Hooks   map[string]map[string]any `toml:"hooks"`
}

type pyprojectStep struct {
	Part     *string `toml:"part"`
	Suffix   *string `toml:"suffix"`
	Unsuffix *bool   `toml:"unsuffix"`
	Message  *string `toml:"message"`
}

// LoadPyproject parses the [tool.bumpr] table of a pyproject.toml.
// A file without that table contributes no overrides.
func LoadPyproject(path string, registry *hooks.Registry) (*Config, error) {
	var doc pyprojectDoc
	if _, err := toml.DecodeFile(path, &doc); err != nil {
		return nil, &FileError{Path: path, Err: err}
	}
	raw := doc.Tool.Bumpr
	if raw == nil {
		return &Config{}, nil
	}

	cfg := &Config{
		File:          raw.File,
		Pattern:       raw.Regex,
		Files:         raw.Files,
		Module:        raw.Module,
		Attribute:     raw.Attribute,
		VCS:           raw.VCS,
		Commit:        raw.Commit,
		Tag:           raw.Tag,
		TagFormat:     raw.TagFormat,
		TagAnnotation: raw.TagAnnotation,
		Push:          raw.Push,
		Verbose:       raw.Verbose,
		DryRun:        raw.DryRun,
		Clean:         raw.Clean,
		Tests:         raw.Tests,
		SkipTests:     raw.SkipTests,
		Publish:       raw.Publish,
		BumpOnly:      raw.BumpOnly,
		PrepareOnly:   raw.PrepareOnly,
	}

	var err error
	if cfg.Bump, err = convertStep(path, raw.Bump); err != nil {
		return nil, err
	}
	if cfg.Prepare, err = convertStep(path, raw.Prepare); err != nil {
		return nil, err
	}

	for key, table := range raw.Hooks {
		if _, known := registry.Get(key); !known {
			continue
		}
		settings := hooks.Settings{}
		for k, v := range table {
			settings[k] = stringifyTOML(v)
		}
		if cfg.Hooks == nil {
			cfg.Hooks = map[string]hooks.Settings{}
		}
		cfg.Hooks[key] = settings
	}

	return cfg, nil
}

func convertStep(path string, raw *pyprojectStep) (*StepConfig, error) {
	if raw == nil {
		return nil, nil
	}
	step := &StepConfig{
		Suffix:   raw.Suffix,
		Unsuffix: raw.Unsuffix,
		Message:  raw.Message,
	}
	if raw.Part != nil {
		part, err := version.ParsePart(strings.ToLower(*raw.Part))
		if err != nil {
			return nil, &FileError{Path: path, Key: "part", Err: err}
		}
		step.Part = &part
	}
	return step, nil
}

func stringifyTOML(v any) string {
	switch val := v.(type) {
	case string:
		return val
	case bool:
		if val {
			return "true"
		}
		return "false"
	default:
		return fmt.Sprintf("%v", val)
	}
}

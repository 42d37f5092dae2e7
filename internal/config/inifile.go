package config

import (
	"fmt"
	"strings"

	"github.com/bumpr-dev/bumpr/internal/hooks"
	"github.com/bumpr-dev/bumpr/internal/version"

	"gopkg.in/ini.v1"
)

// FileError reports a config document that could not be parsed or
// carries a value the schema cannot accept.
type FileError struct {
	Path string
	Key  string
	Err  error
}

func (e *FileError) Error() string {
	if e.Key != "" {
		return fmt.Sprintf("config file %s: key %q: %v", e.Path, e.Key, e.Err)
	}
	return fmt.Sprintf("config file %s: %v", e.Path, e.Err)
}

func (e *FileError) Unwrap() error {
	return e.Err
}

// LoadRC parses a bumpr rc file: a [bumpr] section for top-level
// keys, [bump] and [prepare] sections, and one section per hook key.
func LoadRC(path string, registry *hooks.Registry) (*Config, error) {
	return loadINI(path, "", registry)
}

// LoadSetupCfg parses the packaging-config variant, where every
// section name is prefixed so bumpr settings can coexist in a shared
// setup.cfg: [bumpr], [bumpr:bump], [bumpr:prepare], [bumpr:<hook>].
func LoadSetupCfg(path string, registry *hooks.Registry) (*Config, error) {
	return loadINI(path, "bumpr", registry)
}

func loadINI(path, prefix string, registry *hooks.Registry) (*Config, error) {
	// Python-style multiline values keep parity with configparser,
	// which is what writes and reads these files on the Python side.
	doc, err := ini.LoadSources(ini.LoadOptions{AllowPythonMultilineValues: true}, path)
	if err != nil {
		return nil, &FileError{Path: path, Err: err}
	}

	sectionName := func(name string) string {
		if prefix == "" {
			return name
		}
		return prefix + ":" + name
	}

	cfg := &Config{}

	rootName := "bumpr"
	if prefix != "" {
		rootName = prefix
	}
	if sec, err := doc.GetSection(rootName); err == nil {
		if err := applyRootSection(cfg, path, sec); err != nil {
			return nil, err
		}
	}

	if sec, err := doc.GetSection(sectionName("bump")); err == nil {
		cfg.Bump, err = parseStepSection(path, sec)
		if err != nil {
			return nil, err
		}
	}
	if sec, err := doc.GetSection(sectionName("prepare")); err == nil {
		cfg.Prepare, err = parseStepSection(path, sec)
		if err != nil {
			return nil, err
		}
	}

	for _, key := range registry.Keys() {
		sec, err := doc.GetSection(sectionName(key))
		if err != nil {
			continue
		}
		settings := hooks.Settings{}
		for _, k := range sec.Keys() {
			settings[k.Name()] = k.String()
		}
		if cfg.Hooks == nil {
			cfg.Hooks = map[string]hooks.Settings{}
		}
		cfg.Hooks[key] = settings
	}

	return cfg, nil
}

// applyRootSection maps [bumpr] keys onto the typed schema. Unknown
// keys are ignored; a value the schema cannot coerce is an error.
func applyRootSection(cfg *Config, path string, sec *ini.Section) error {
	for _, k := range sec.Keys() {
		value := k.String()
		var err error

		switch k.Name() {
		case "file":
			cfg.File = stringPtr(value)
		case "regex":
			cfg.Pattern = stringPtr(value)
		case "files":
			cfg.Files = strSlicePtr(parseList(value))
		case "module":
			cfg.Module = stringPtr(value)
		case "attribute":
			cfg.Attribute = stringPtr(value)
		case "vcs":
			cfg.VCS = stringPtr(value)
		case "commit":
			cfg.Commit, err = parseBool(value)
		case "tag":
			cfg.Tag, err = parseBool(value)
		case "tag_format":
			cfg.TagFormat = stringPtr(value)
		case "tag_annotation":
			cfg.TagAnnotation = stringPtr(value)
		case "push":
			cfg.Push, err = parseBool(value)
		case "verbose":
			cfg.Verbose, err = parseBool(value)
		case "dryrun":
			cfg.DryRun, err = parseBool(value)
		case "clean":
			cfg.Clean = stringPtr(value)
		case "tests":
			cfg.Tests = stringPtr(value)
		case "skip_tests":
			cfg.SkipTests, err = parseBool(value)
		case "publish":
			cfg.Publish = stringPtr(value)
		case "bump_only":
			cfg.BumpOnly, err = parseBool(value)
		case "prepare_only":
			cfg.PrepareOnly, err = parseBool(value)
		}

		if err != nil {
			return &FileError{Path: path, Key: k.Name(), Err: err}
		}
	}
	return nil
}

func parseStepSection(path string, sec *ini.Section) (*StepConfig, error) {
	step := &StepConfig{}
	for _, k := range sec.Keys() {
		value := k.String()
		var err error

		switch k.Name() {
		case "part":
			var part version.Part
			part, err = version.ParsePart(strings.ToLower(value))
			if err == nil {
				step.Part = &part
			}
		case "suffix":
			step.Suffix = stringPtr(value)
		case "unsuffix":
			step.Unsuffix, err = parseBool(value)
		case "message":
			step.Message = stringPtr(value)
		}

		if err != nil {
			return nil, &FileError{Path: path, Key: k.Name(), Err: err}
		}
	}
	return step, nil
}

// parseBool coerces true/false in any case. Anything else is an error
// for a boolean-typed key.
func parseBool(value string) (*bool, error) {
	switch strings.ToLower(value) {
	case "true":
		return boolPtr(true), nil
	case "false":
		return boolPtr(false), nil
	default:
		return nil, fmt.Errorf("expected a boolean, got %q", value)
	}
}

// parseList splits a comma-or-newline-separated value into an ordered
// list of strings.
func parseList(value string) []string {
	items := strings.FieldsFunc(value, func(r rune) bool {
		return r == ',' || r == '\n'
	})
	out := make([]string, 0, len(items))
	for _, item := range items {
		item = strings.TrimSpace(item)
		if item != "" {
			out = append(out, item)
		}
	}
	return out
}

package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/bumpr-dev/bumpr/internal/hooks"
)

// ValidationError reports a resolved configuration that cannot drive
// a release.
type ValidationError struct {
	Field  string
	Reason string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid configuration: %s: %s", e.Field, e.Reason)
}

// Validate checks the resolved configuration for required fields and
// internal consistency, with file paths taken relative to the current
// directory. It never mutates the configuration.
func Validate(cfg *Config, registry *hooks.Registry) error {
	return ValidateIn(cfg, registry, ".")
}

// ValidateIn is Validate with configured file paths resolved relative
// to dir.
func ValidateIn(cfg *Config, registry *hooks.Registry, dir string) error {
	if deref(cfg.File) == "" && deref(cfg.Module) == "" {
		return &ValidationError{Field: "file", Reason: "a version file is required"}
	}

	if file := deref(cfg.File); file != "" {
		if _, err := os.Stat(resolvePath(dir, file)); err != nil {
			return &ValidationError{Field: "file", Reason: fmt.Sprintf("%s does not exist", file)}
		}
	}

	if deref(cfg.Module) != "" && deref(cfg.Attribute) == "" {
		return &ValidationError{Field: "attribute", Reason: "required when module is set"}
	}

	if cfg.Files != nil {
		for _, extra := range *cfg.Files {
			if _, err := os.Stat(resolvePath(dir, extra)); err != nil {
				return &ValidationError{Field: "files", Reason: fmt.Sprintf("%s does not exist", extra)}
			}
		}
	}

	switch deref(cfg.VCS) {
	case "", "git", "hg", "bzr":
	default:
		return &ValidationError{Field: "vcs", Reason: fmt.Sprintf("unknown engine %q", deref(cfg.VCS))}
	}

	for key, settings := range cfg.Hooks {
		hook, ok := registry.Get(key)
		if !ok {
			continue
		}
		if err := hook.Validate(settings); err != nil {
			return &ValidationError{Field: key, Reason: err.Error()}
		}
	}

	return nil
}

func resolvePath(dir, path string) string {
	if filepath.IsAbs(path) {
		return path
	}
	return filepath.Join(dir, path)
}

func deref(s *string) string {
	if s == nil {
		return ""
	}
	return *s
}
